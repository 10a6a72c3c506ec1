package handlers

import (
	"net/http"

	"github.com/clubhub-dev/clubhub-backend/internal/api/middleware"
	"github.com/clubhub-dev/clubhub-backend/internal/models"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// TeamHandler handles team HTTP requests
type TeamHandler struct {
	teamService service.TeamService
}

// Create creates a team under a club
func (h *TeamHandler) Create(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Create(c.Request.Context(), clubID, userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTeamResponse(team))
}

// ListByClub returns the teams of a club
func (h *TeamHandler) ListByClub(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	teams, err := h.teamService.ListByClub(c.Request.Context(), clubID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]models.TeamResponse, 0, len(teams))
	for _, team := range teams {
		resp = append(resp, toTeamResponse(team))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one team
func (h *TeamHandler) Get(c *gin.Context) {
	teamID := c.Param("teamId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	team, err := h.teamService.GetByID(c.Request.Context(), teamID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if team == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	c.JSON(http.StatusOK, toTeamResponse(team))
}

// Update modifies a team
func (h *TeamHandler) Update(c *gin.Context) {
	teamID := c.Param("teamId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	team, err := h.teamService.Update(c.Request.Context(), teamID, userID, req.Name, req.Description)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTeamResponse(team))
}

// Delete removes a team
func (h *TeamHandler) Delete(c *gin.Context) {
	teamID := c.Param("teamId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.teamService.Delete(c.Request.Context(), teamID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

// ListMembers returns direct team memberships
func (h *TeamHandler) ListMembers(c *gin.Context) {
	teamID := c.Param("teamId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	memberships, err := h.teamService.ListMembers(c.Request.Context(), teamID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]models.TeamMemberResponse, 0, len(memberships))
	for _, m := range memberships {
		resp = append(resp, toTeamMemberResponse(m))
	}
	c.JSON(http.StatusOK, resp)
}

// AddMember adds a user to the team
func (h *TeamHandler) AddMember(c *gin.Context) {
	teamID := c.Param("teamId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.teamService.AddMember(c.Request.Context(), teamID, userID, req.UserID, req.Roles)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTeamMemberResponse(m))
}

// UpdateMemberRoles replaces a team member's role set
func (h *TeamHandler) UpdateMemberRoles(c *gin.Context) {
	teamID := c.Param("teamId")
	targetID := c.Param("userId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateMemberRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.teamService.UpdateMemberRoles(c.Request.Context(), teamID, userID, targetID, req.Roles); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Roles updated"})
}

// RemoveMember removes a member from the team
func (h *TeamHandler) RemoveMember(c *gin.Context) {
	teamID := c.Param("teamId")
	targetID := c.Param("userId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, userID, targetID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
