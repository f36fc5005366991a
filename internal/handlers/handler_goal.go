package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	portssvc "github.com/SscSPs/empower_finance_app/internal/core/ports/services"
	"github.com/SscSPs/empower_finance_app/internal/dto"
	"github.com/SscSPs/empower_finance_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// goalHandler handles HTTP requests related to savings goals.
type goalHandler struct {
	goalService        portssvc.GoalSvcFacade
	aggregationService portssvc.AggregationService
}

// RegisterGoalRoutes registers the savings goal routes on the given group.
func RegisterGoalRoutes(rg *gin.RouterGroup, goalService portssvc.GoalSvcFacade, aggregationService portssvc.AggregationService) {
	h := &goalHandler{
		goalService:        goalService,
		aggregationService: aggregationService,
	}

	goals := rg.Group("/goals")
	{
		goals.POST("", h.createGoal)
		goals.GET("", h.listGoals)
		goals.GET("/summary", h.getGoalsSummary)
		goals.GET("/:id", h.getGoal)
		goals.PUT("/:id", h.updateGoal)
		goals.DELETE("/:id", h.deleteGoal)
		goals.POST("/:id/contributions", h.addContribution)
	}
}

// createGoal godoc
// @Summary Create a savings goal
// @Description Opens an active goal with no contributions
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   goal body dto.CreateGoalRequest true "Goal details"
// @Success 201 {object} dto.GoalResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to create goal"
// @Security BearerAuth
// @Router /goals [post]
func (h *goalHandler) createGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create goal", slog.String("name", req.Name))

	goal, err := h.goalService.CreateGoal(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "goal")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGoalResponse(*goal))
}

// listGoals godoc
// @Summary List savings goals
// @Description Lists the logged-in user's goals, newest first, with derived fields computed now
// @Tags goals
// @Produce  json
// @Success 200 {object} dto.ListGoalsResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to list goals"
// @Security BearerAuth
// @Router /goals [get]
func (h *goalHandler) listGoals(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "goal")
		return
	}
	c.JSON(http.StatusOK, dto.ListGoalsResponse{Goals: dto.ToGoalResponses(goals)})
}

// getGoal godoc
// @Summary Get a savings goal
// @Tags goals
// @Produce  json
// @Param   id path string true "Goal ID"
// @Success 200 {object} dto.GoalResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to retrieve goal"
// @Security BearerAuth
// @Router /goals/{id} [get]
func (h *goalHandler) getGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		respondError(c, err, "goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(*goal))
}

// updateGoal godoc
// @Summary Update a savings goal
// @Description Edits the non-derived fields. currentAmount only changes through contributions.
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   goal body dto.UpdateGoalRequest true "Fields to change"
// @Success 200 {object} dto.GoalResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 409 {object} dto.ErrorResponse "Modified concurrently, retries exhausted"
// @Failure 500 {object} dto.ErrorResponse "Failed to update goal"
// @Security BearerAuth
// @Router /goals/{id} [put]
func (h *goalHandler) updateGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	goal, err := h.goalService.UpdateGoal(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalResponse(*goal))
}

// deleteGoal godoc
// @Summary Delete a savings goal
// @Tags goals
// @Param   id path string true "Goal ID"
// @Success 204 "No Content"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to delete goal"
// @Security BearerAuth
// @Router /goals/{id} [delete]
func (h *goalHandler) deleteGoal(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err, "goal")
		return
	}
	c.Status(http.StatusNoContent)
}

// addContribution godoc
// @Summary Contribute to a savings goal
// @Description Deposits toward the goal and reports the milestones this deposit reached
// @Tags goals
// @Accept  json
// @Produce  json
// @Param   id path string true "Goal ID"
// @Param   contribution body dto.AddContributionRequest true "Contribution"
// @Success 200 {object} dto.ContributionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input format or validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.ErrorResponse "Goal not found"
// @Failure 409 {object} dto.ErrorResponse "Modified concurrently, retries exhausted"
// @Failure 500 {object} dto.ErrorResponse "Failed to add contribution"
// @Security BearerAuth
// @Router /goals/{id}/contributions [post]
func (h *goalHandler) addContribution(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.AddContributionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "request format", err)
		return
	}

	goal, reached, err := h.goalService.AddContribution(c.Request.Context(), userID, c.Param("id"), req)
	if err != nil {
		respondError(c, err, "goal")
		return
	}
	if reached == nil {
		reached = []domain.Milestone{}
	}
	c.JSON(http.StatusOK, dto.ContributionResponse{
		GoalResponse:      dto.ToGoalResponse(*goal),
		MilestonesReached: reached,
	})
}

// getGoalsSummary godoc
// @Summary Summarise savings goals
// @Tags goals
// @Produce  json
// @Success 200 {object} dto.GoalsSummaryResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Failed to summarise goals"
// @Security BearerAuth
// @Router /goals/summary [get]
func (h *goalHandler) getGoalsSummary(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	summary, err := h.aggregationService.GoalsSummary(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "goal")
		return
	}
	c.JSON(http.StatusOK, dto.ToGoalsSummaryResponse(summary))
}
