package handlers

import (
	"net/http"

	"github.com/clubhub-dev/clubhub-backend/internal/api/middleware"
	"github.com/clubhub-dev/clubhub-backend/internal/models"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	eventService service.EventService
}

// Create creates an event under a club
func (h *EventHandler) Create(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), clubID, userID, req.Title, req.StartsAt, req.TeamID, req.DutyRoles)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toEventResponse(event))
}

// ListByClub returns a club's events
func (h *EventHandler) ListByClub(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	events, err := h.eventService.ListByClub(c.Request.Context(), clubID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]models.EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, toEventResponse(event))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one event
func (h *EventHandler) Get(c *gin.Context) {
	eventID := c.Param("eventId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), eventID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toEventResponse(event))
}

// Delete removes an event
func (h *EventHandler) Delete(c *gin.Context) {
	eventID := c.Param("eventId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.eventService.Delete(c.Request.Context(), eventID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}
