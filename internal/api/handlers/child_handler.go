package handlers

import (
	"net/http"

	"github.com/clubhub-dev/clubhub-backend/internal/api/middleware"
	"github.com/clubhub-dev/clubhub-backend/internal/models"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ChildHandler handles child record HTTP requests
type ChildHandler struct {
	childService service.ChildService
}

// Create registers a child for the authenticated guardian
func (h *ChildHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child, err := h.childService.Create(c.Request.Context(), userID, req.Name, req.TeamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toChildResponse(child))
}

// List returns the guardian's children
func (h *ChildHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	children, err := h.childService.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]models.ChildResponse, 0, len(children))
	for _, child := range children {
		resp = append(resp, toChildResponse(child))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one child record
func (h *ChildHandler) Get(c *gin.Context) {
	childID := c.Param("childId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	child, err := h.childService.GetByID(c.Request.Context(), childID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toChildResponse(child))
}

// Update modifies a child record
func (h *ChildHandler) Update(c *gin.Context) {
	childID := c.Param("childId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateChildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	child, err := h.childService.Update(c.Request.Context(), childID, userID, req.Name, req.TeamID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toChildResponse(child))
}

// Delete removes a child record
func (h *ChildHandler) Delete(c *gin.Context) {
	childID := c.Param("childId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.childService.Delete(c.Request.Context(), childID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Child removed"})
}
