package handlers_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

func sampleGoal(id string, current int64) *domain.GoalWithProgress {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	g := domain.SavingsGoal{
		GoalID:        id,
		UserID:        testUserID,
		Name:          "Emergency fund",
		TargetAmount:  decimal.NewFromInt(1000),
		CurrentAmount: decimal.NewFromInt(current),
		Deadline:      now.AddDate(0, 6, 0),
		Category:      domain.GoalEmergency,
		Priority:      domain.PriorityHigh,
		Milestones:    []domain.Milestone{},
		Contributions: []domain.Contribution{},
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: testUserID, LastUpdatedAt: now, LastUpdatedBy: testUserID, Version: 1},
	}
	g.RecordMilestones(now)
	g.ReconcileCompletion(now)
	return &domain.GoalWithProgress{Goal: g, Progress: domain.DeriveGoalProgress(&g, now)}
}

func (suite *HandlerTestSuite) TestCreateGoal_Success() {
	suite.mockGoalService.On("CreateGoal", mock.Anything, testUserID,
		mock.MatchedBy(func(req dto.CreateGoalRequest) bool {
			return req.Name == "Emergency fund" && req.TargetAmount.Equal(decimal.NewFromInt(1000)) && req.Category == ""
		}),
	).Return(sampleGoal("goal-1", 0), nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/goals", `{"name":"Emergency fund","targetAmount":"1000","deadline":"2030-01-01T00:00:00Z"}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.GoalResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("goal-1", resp.GoalID)
	suite.Equal(domain.GoalEmergency, resp.Category)
	suite.NotNil(resp.Milestones)
	suite.NotNil(resp.Contributions)
	suite.True(resp.ProgressPercentage.IsZero())
}

func (suite *HandlerTestSuite) TestCreateGoal_ValidationError() {
	verr := apperrors.NewValidationError(
		apperrors.FieldError{Field: "name", Message: "is required"},
		apperrors.FieldError{Field: "deadline", Message: "must be in the future"},
	)
	suite.mockGoalService.On("CreateGoal", mock.Anything, testUserID, mock.Anything).Return(nil, verr).Once()

	w := suite.do(http.MethodPost, "/api/v1/goals", `{"targetAmount":"100","deadline":"2000-01-01T00:00:00Z"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(dto.ErrorKindValidation, resp.Kind)
	suite.Len(resp.Fields, 2)
}

func (suite *HandlerTestSuite) TestListGoals() {
	suite.mockGoalService.On("ListGoals", mock.Anything, testUserID).
		Return([]domain.GoalWithProgress{*sampleGoal("goal-2", 800), *sampleGoal("goal-1", 100)}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/goals", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListGoalsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Require().Len(resp.Goals, 2)
	suite.Equal("goal-2", resp.Goals[0].GoalID)
	suite.Len(resp.Goals[0].Milestones, 3)
}

func (suite *HandlerTestSuite) TestGetGoal_OtherUsersGoalIsNotFound() {
	suite.mockGoalService.On("GetGoal", mock.Anything, testUserID, "goal-x").
		Return(nil, apperrors.NewNotFoundError("goal goal-x not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/goals/goal-x", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("goal not found", suite.decodeError(w).Error)
}

func (suite *HandlerTestSuite) TestUpdateGoal_TargetOnly() {
	suite.mockGoalService.On("UpdateGoal", mock.Anything, testUserID, "goal-1",
		mock.MatchedBy(func(req dto.UpdateGoalRequest) bool {
			return req.TargetAmount != nil && req.TargetAmount.Equal(decimal.NewFromInt(1500)) && req.Name == nil && req.Deadline == nil
		}),
	).Return(sampleGoal("goal-1", 100), nil).Once()

	w := suite.do(http.MethodPut, "/api/v1/goals/goal-1", `{"targetAmount":"1500"}`)

	suite.Equal(http.StatusOK, w.Code)
}

func (suite *HandlerTestSuite) TestDeleteGoal() {
	suite.mockGoalService.On("DeleteGoal", mock.Anything, testUserID, "goal-1").Return(nil).Once()

	w := suite.do(http.MethodDelete, "/api/v1/goals/goal-1", nil)

	suite.Equal(http.StatusNoContent, w.Code)
}

func (suite *HandlerTestSuite) TestAddContribution() {
	suite.Run("ReportsReachedMilestones", func() {
		goal := sampleGoal("goal-1", 600)
		reached := goal.Goal.Milestones[:2]
		suite.mockGoalService.On("AddContribution", mock.Anything, testUserID, "goal-1",
			mock.MatchedBy(func(req dto.AddContributionRequest) bool {
				return req.Amount.Equal(decimal.NewFromInt(600)) && req.Source == domain.SourceBonus
			}),
		).Return(goal, reached, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/goals/goal-1/contributions", `{"amount":"600","source":"bonus"}`)

		suite.Equal(http.StatusOK, w.Code)
		var resp dto.ContributionResponse
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.Require().Len(resp.MilestonesReached, 2)
		suite.Equal(25, resp.MilestonesReached[0].Percentage)
		suite.Equal(50, resp.MilestonesReached[1].Percentage)
		suite.True(resp.CurrentAmount.Equal(decimal.NewFromInt(600)))
		suite.Equal("goal-1", resp.GoalID)

		var raw map[string]json.RawMessage
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &raw))
		suite.Contains(raw, "currentAmount", "the goal is the response root")
		suite.Contains(raw, "progressPercentage")
		suite.NotContains(raw, "goal")
	})

	suite.Run("NoMilestonesIsEmptyArray", func() {
		suite.mockGoalService.On("AddContribution", mock.Anything, testUserID, "goal-4", mock.Anything).
			Return(sampleGoal("goal-4", 100), nil, nil).Once()

		w := suite.do(http.MethodPost, "/api/v1/goals/goal-4/contributions", `{"amount":"100"}`)

		suite.Equal(http.StatusOK, w.Code)
		suite.Contains(w.Body.String(), `"milestonesReached":[]`)
	})

	suite.Run("RetriesExhausted", func() {
		conflict := fmt.Errorf("goal goal-2: %w", apperrors.NewConflictError("goal goal-2 changed"))
		suite.mockGoalService.On("AddContribution", mock.Anything, testUserID, "goal-2", mock.Anything).Return(nil, nil, conflict).Once()

		w := suite.do(http.MethodPost, "/api/v1/goals/goal-2/contributions", `{"amount":"10"}`)

		suite.Equal(http.StatusConflict, w.Code)
		suite.Equal(dto.ErrorKindConflict, suite.decodeError(w).Kind)
	})

	suite.Run("NonPositiveAmount", func() {
		verr := apperrors.NewValidationError(apperrors.FieldError{Field: "amount", Message: "must be greater than 0"})
		suite.mockGoalService.On("AddContribution", mock.Anything, testUserID, "goal-3", mock.Anything).Return(nil, nil, verr).Once()

		w := suite.do(http.MethodPost, "/api/v1/goals/goal-3/contributions", `{"amount":"-5"}`)

		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Equal("amount", suite.decodeError(w).Fields[0].Field)
	})
}

func (suite *HandlerTestSuite) TestGetGoalsSummary() {
	suite.mockAggregationService.On("GoalsSummary", mock.Anything, testUserID).Return(domain.GoalsSummary{
		TotalGoals:         3,
		CompletedGoals:     1,
		TotalTargetAmount:  decimal.NewFromInt(3000),
		TotalCurrentAmount: decimal.NewFromInt(1500),
		UrgentGoals:        2,
		OverdueGoals:       1,
		OverallProgress:    decimal.NewFromInt(50),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/goals/summary", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GoalsSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(3, resp.TotalGoals)
	suite.Equal(2, resp.UrgentGoals)
	suite.Equal(1, resp.OverdueGoals)
	suite.True(resp.OverallProgress.Equal(decimal.NewFromInt(50)))
}

func (suite *HandlerTestSuite) TestGetDashboard() {
	suite.Run("Success", func() {
		now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
		goals := []domain.GoalWithProgress{*sampleGoal("goal-1", 250)}
		suite.mockAggregationService.On("DashboardSummary", mock.Anything, testUserID).Return(&domain.DashboardSummary{
			AsOf:         now,
			Balance:      domain.Balance{Income: decimal.NewFromInt(100), Expense: decimal.NewFromInt(40), Balance: decimal.NewFromInt(60)},
			CurrentMonth: domain.MonthlyBreakdown{Year: 2024, Month: time.March},
			Goals:        domain.SummarizeGoals([]domain.SavingsGoal{goals[0].Goal}, now),
			GoalList:     goals,
		}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/dashboard", nil)

		suite.Equal(http.StatusOK, w.Code)
		var resp dto.DashboardResponse
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.True(resp.Balance.Balance.Equal(decimal.NewFromInt(60)))
		suite.Equal(1, resp.Goals.TotalGoals)
		suite.Len(resp.GoalList, 1)
		suite.Equal(3, resp.CurrentMonth.Month)
	})

	suite.Run("StoreFailure", func() {
		suite.mockAggregationService.On("DashboardSummary", mock.Anything, testUserID).Return(nil, errors.New("boom")).Once()

		w := suite.do(http.MethodGet, "/api/v1/dashboard", nil)

		suite.Equal(http.StatusInternalServerError, w.Code)
	})
}
