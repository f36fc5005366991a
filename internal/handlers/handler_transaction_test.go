package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/empower_finance_app/internal/apperrors"
	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/SscSPs/empower_finance_app/internal/handlers"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testUserID = "user-1"

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router                 *gin.Engine
	mockTransactionService *MockTransactionService
	mockGoalService        *MockGoalService
	mockAggregationService *MockAggregationService
	jwtSecret              string
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

// generateTestToken creates a signed JWT for testing.
func (suite *HandlerTestSuite) generateTestToken(userID string, secret string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finance-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockTransactionService = new(MockTransactionService)
	suite.mockGoalService = new(MockGoalService)
	suite.mockAggregationService = new(MockAggregationService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret, ""))
	handlers.RegisterTransactionRoutes(v1, suite.mockTransactionService, suite.mockAggregationService)
	handlers.RegisterGoalRoutes(v1, suite.mockGoalService, suite.mockAggregationService)
	handlers.RegisterDashboardRoutes(v1, suite.mockAggregationService)
}

func (suite *HandlerTestSuite) TearDownTest() {
	suite.mockTransactionService.AssertExpectations(suite.T())
	suite.mockGoalService.AssertExpectations(suite.T())
	suite.mockAggregationService.AssertExpectations(suite.T())
}

// do sends an authenticated request and returns the recorded response.
func (suite *HandlerTestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID, suite.jwtSecret))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *HandlerTestSuite) decodeError(w *httptest.ResponseRecorder) dto.ErrorResponse {
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func sampleTransaction(id string) *domain.Transaction {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return &domain.Transaction{
		TransactionID: id,
		UserID:        testUserID,
		Type:          domain.Expense,
		Category:      "food",
		Amount:        decimal.RequireFromString("12.50"),
		Date:          now,
		Tags:          []string{"lunch"},
		AuditFields:   domain.AuditFields{CreatedAt: now, CreatedBy: testUserID, LastUpdatedAt: now, LastUpdatedBy: testUserID, Version: 1},
	}
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestCreateTransaction_Success() {
	expected := sampleTransaction("txn-1")
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, testUserID,
		mock.MatchedBy(func(req dto.CreateTransactionRequest) bool {
			return req.Type == domain.Expense && req.Category == "food" && req.Amount.Equal(decimal.RequireFromString("12.50"))
		}),
	).Return(expected, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", `{"type":"expense","category":"food","amount":"12.50","tags":["lunch"]}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.TransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("txn-1", resp.TransactionID)
	suite.Equal(domain.Expense, resp.Type)
	suite.True(resp.Amount.Equal(expected.Amount))
	suite.Equal([]string{"lunch"}, resp.Tags)
}

func (suite *HandlerTestSuite) TestCreateTransaction_ValidationErrorListsAllFields() {
	verr := apperrors.NewValidationError(
		apperrors.FieldError{Field: "amount", Message: "must be greater than 0"},
		apperrors.FieldError{Field: "category", Message: "is required"},
	)
	suite.mockTransactionService.On("CreateTransaction", mock.Anything, testUserID, mock.Anything).Return(nil, verr).Once()

	w := suite.do(http.MethodPost, "/api/v1/transactions", `{"type":"expense","amount":"0"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(dto.ErrorKindValidation, resp.Kind)
	suite.Len(resp.Fields, 2)
	suite.Equal("amount", resp.Fields[0].Field)
	suite.Equal("category", resp.Fields[1].Field)
}

func (suite *HandlerTestSuite) TestCreateTransaction_MalformedBody() {
	w := suite.do(http.MethodPost, "/api/v1/transactions", `{"type":`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(dto.ErrorKindValidation, suite.decodeError(w).Kind)
	suite.mockTransactionService.AssertNotCalled(suite.T(), "CreateTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(dto.ErrorKindUnauthorized, suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestWrongSecret_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(testUserID, "another-secret"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *HandlerTestSuite) TestListTransactions_PassesFiltersAndToken() {
	token := "next-page"
	suite.mockTransactionService.On("ListTransactions", mock.Anything, testUserID,
		mock.MatchedBy(func(p dto.ListTransactionsParams) bool {
			return p.Type == "expense" && p.Category == "food" && p.Limit == 2 && p.NextToken != nil && *p.NextToken == "abc"
		}),
	).Return([]domain.Transaction{*sampleTransaction("txn-2"), *sampleTransaction("txn-1")}, &token, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions?type=expense&category=food&limit=2&nextToken=abc", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListTransactionsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal(token, *resp.NextToken)
}

func (suite *HandlerTestSuite) TestGetTransaction_NotFound() {
	suite.mockTransactionService.On("GetTransaction", mock.Anything, testUserID, "missing").
		Return(nil, apperrors.NewNotFoundError("transaction missing not found")).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/missing", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(dto.ErrorKindNotFound, resp.Kind)
	suite.Equal("transaction not found", resp.Error)
}

func (suite *HandlerTestSuite) TestUpdateTransaction_Conflict() {
	suite.mockTransactionService.On("UpdateTransaction", mock.Anything, testUserID, "txn-1",
		mock.MatchedBy(func(req dto.UpdateTransactionRequest) bool {
			return req.Amount != nil && req.Amount.Equal(decimal.NewFromInt(20)) && req.Category == nil
		}),
	).Return(nil, apperrors.NewConflictError("transaction txn-1 changed")).Once()

	w := suite.do(http.MethodPut, "/api/v1/transactions/txn-1", `{"amount":"20"}`)

	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal(dto.ErrorKindConflict, suite.decodeError(w).Kind)
}

func (suite *HandlerTestSuite) TestDeleteTransaction() {
	suite.Run("Success", func() {
		suite.mockTransactionService.On("DeleteTransaction", mock.Anything, testUserID, "txn-1").Return(nil).Once()

		w := suite.do(http.MethodDelete, "/api/v1/transactions/txn-1", nil)

		suite.Equal(http.StatusNoContent, w.Code)
		suite.Empty(w.Body.String())
	})

	suite.Run("StoreFailureIsHidden", func() {
		suite.mockTransactionService.On("DeleteTransaction", mock.Anything, testUserID, "txn-2").
			Return(apperrors.NewAppError(500, "failed to delete transaction txn-2", errors.New("connection reset"))).Once()

		w := suite.do(http.MethodDelete, "/api/v1/transactions/txn-2", nil)

		suite.Equal(http.StatusInternalServerError, w.Code)
		resp := suite.decodeError(w)
		suite.Equal(dto.ErrorKindInternal, resp.Kind)
		suite.NotContains(resp.Error, "connection reset")
	})
}

func (suite *HandlerTestSuite) TestGetBalance_DateOnlyToCoversWholeDay() {
	wantFrom := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, 1, 31, 23, 59, 59, 999999999, time.UTC)
	suite.mockAggregationService.On("BalanceFor", mock.Anything, testUserID,
		mock.MatchedBy(func(r domain.DateRange) bool {
			return r.From != nil && r.From.Equal(wantFrom) && r.To != nil && r.To.Equal(wantTo)
		}),
	).Return(domain.Balance{
		Income:  decimal.NewFromInt(1000),
		Expense: decimal.NewFromInt(300),
		Balance: decimal.NewFromInt(700),
	}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/transactions/balance?from=2024-01-01&to=2024-01-31", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.BalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Balance.Equal(decimal.NewFromInt(700)))
}

func (suite *HandlerTestSuite) TestGetBalance_InvalidRange() {
	w := suite.do(http.MethodGet, "/api/v1/transactions/balance?from=2024-02-01&to=2024-01-01", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(dto.ErrorKindInvalidRange, resp.Kind)
	suite.mockAggregationService.AssertNotCalled(suite.T(), "BalanceFor", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestGetBalance_MalformedDate() {
	w := suite.do(http.MethodGet, "/api/v1/transactions/balance?from=yesterday", nil)

	suite.Equal(http.StatusBadRequest, w.Code)
	resp := suite.decodeError(w)
	suite.Equal(dto.ErrorKindValidation, resp.Kind)
	suite.Require().Len(resp.Fields, 1)
	suite.Equal("from", resp.Fields[0].Field)
}

func (suite *HandlerTestSuite) TestGetMonthlySummary() {
	suite.Run("ExplicitMonth", func() {
		breakdown := domain.BuildMonthlyBreakdown(2024, time.March, []domain.Transaction{*sampleTransaction("txn-1")})
		suite.mockAggregationService.On("MonthlyBreakdown", mock.Anything, testUserID, 2024, 3).Return(breakdown, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/transactions/summary?year=2024&month=3", nil)

		suite.Equal(http.StatusOK, w.Code)
		var resp dto.MonthlyBreakdownResponse
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
		suite.Equal(3, resp.Month)
		suite.Require().Len(resp.Types, 1)
		suite.Equal(domain.Expense, resp.Types[0].Type)
		suite.True(resp.Types[0].TotalAmount.Equal(decimal.RequireFromString("12.50")))
	})

	suite.Run("DefaultsToCurrentMonth", func() {
		now := time.Now().UTC()
		suite.mockAggregationService.On("MonthlyBreakdown", mock.Anything, testUserID, now.Year(), int(now.Month())).
			Return(domain.MonthlyBreakdown{Year: now.Year(), Month: now.Month()}, nil).Once()

		w := suite.do(http.MethodGet, "/api/v1/transactions/summary", nil)

		suite.Equal(http.StatusOK, w.Code)
	})

	suite.Run("InvalidMonth", func() {
		verr := apperrors.NewValidationError(apperrors.FieldError{Field: "month", Message: "must be between 1 and 12"})
		suite.mockAggregationService.On("MonthlyBreakdown", mock.Anything, testUserID, 2024, 13).Return(domain.MonthlyBreakdown{}, verr).Once()

		w := suite.do(http.MethodGet, "/api/v1/transactions/summary?year=2024&month=13", nil)

		suite.Equal(http.StatusBadRequest, w.Code)
		suite.Equal("month", suite.decodeError(w).Fields[0].Field)
	})
}

func (suite *HandlerTestSuite) TestListCategories() {
	w := suite.do(http.MethodGet, "/api/v1/transactions/categories", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CategoriesResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.IncomeCategories, resp.Income)
	suite.Equal(domain.ExpenseCategories, resp.Expense)
	suite.Contains(resp.Expense, "food")
}

func (suite *HandlerTestSuite) TestRouteIDIsForwarded() {
	for _, id := range []string{"a", "b-2"} {
		suite.mockTransactionService.On("GetTransaction", mock.Anything, testUserID, id).Return(sampleTransaction(id), nil).Once()

		w := suite.do(http.MethodGet, fmt.Sprintf("/api/v1/transactions/%s", id), nil)

		suite.Equal(http.StatusOK, w.Code)
	}
}
