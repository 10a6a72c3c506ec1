package handlers

import (
	"net/http"
	"strconv"

	"github.com/clubhub-dev/clubhub-backend/internal/api/middleware"
	"github.com/clubhub-dev/clubhub-backend/internal/models"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// DutyHandler handles duty completion HTTP requests
type DutyHandler struct {
	dutyService service.DutyService
}

// MarkCompleted records the authenticated user finishing a duty
func (h *DutyHandler) MarkCompleted(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.MarkDutyCompletedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	completion, err := h.dutyService.MarkCompleted(c.Request.Context(), req.EventID, req.DutyRole, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, completion)
}

// Approve approves a completion and credits points
func (h *DutyHandler) Approve(c *gin.Context) {
	completionID := c.Param("completionId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	completion, err := h.dutyService.Approve(c.Request.Context(), completionID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completion)
}

// ListByEvent returns all completions of an event
func (h *DutyHandler) ListByEvent(c *gin.Context) {
	eventID := c.Param("eventId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	completions, err := h.dutyService.ListByEvent(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completions)
}

// MyCompletions returns the authenticated user's completions
func (h *DutyHandler) MyCompletions(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	completions, err := h.dutyService.MyCompletions(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, completions)
}

// MyBalance returns the authenticated user's point balance
func (h *DutyHandler) MyBalance(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	balance, err := h.dutyService.Balance(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}

// Leaderboard ranks a club's members by points
func (h *DutyHandler) Leaderboard(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	balances, err := h.dutyService.Leaderboard(c.Request.Context(), clubID, userID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, balances)
}
