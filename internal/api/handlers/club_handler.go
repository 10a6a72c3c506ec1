package handlers

import (
	"net/http"

	"github.com/clubhub-dev/clubhub-backend/internal/api/middleware"
	"github.com/clubhub-dev/clubhub-backend/internal/models"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// ClubHandler handles club HTTP requests
type ClubHandler struct {
	clubService service.ClubService
}

// Create creates a new club
func (h *ClubHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club, err := h.clubService.Create(c.Request.Context(), userID, req.Name, req.Description, req.Avatar)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toClubResponse(club))
}

// List returns clubs the user created or belongs to
func (h *ClubHandler) List(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	clubs, err := h.clubService.ListMine(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]models.ClubResponse, 0, len(clubs))
	for _, club := range clubs {
		resp = append(resp, toClubResponse(club))
	}
	c.JSON(http.StatusOK, resp)
}

// Get returns one club
func (h *ClubHandler) Get(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	club, err := h.clubService.GetByID(c.Request.Context(), clubID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if club == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
		return
	}
	c.JSON(http.StatusOK, toClubResponse(club))
}

// Update modifies a club
func (h *ClubHandler) Update(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UpdateClubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	club, err := h.clubService.Update(c.Request.Context(), clubID, userID, req.Name, req.Description, req.Avatar)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toClubResponse(club))
}

// Delete removes a club
func (h *ClubHandler) Delete(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.clubService.Delete(c.Request.Context(), clubID, userID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Club deleted"})
}

// ListMembers returns the aggregated member view of a club
func (h *ClubHandler) ListMembers(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	members, err := h.clubService.ListMembers(c.Request.Context(), clubID, userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if members == nil {
		members = []*service.Member{}
	}
	c.JSON(http.StatusOK, members)
}

// AddMember adds a user to the club with a role set
func (h *ClubHandler) AddMember(c *gin.Context) {
	clubID := c.Param("clubId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.AddClubMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := h.clubService.AddMember(c.Request.Context(), clubID, userID, req.UserID, req.Roles)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"clubId":   m.ClubID,
		"userId":   m.UserID,
		"roles":    safeStringSlice(m.Roles),
		"joinedAt": m.JoinedAt,
	})
}

// UpdateMemberRoles replaces a member's role set
func (h *ClubHandler) UpdateMemberRoles(c *gin.Context) {
	clubID := c.Param("clubId")
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

	if err := h.clubService.UpdateMemberRoles(c.Request.Context(), clubID, userID, targetID, req.Roles); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Roles updated"})
}

// RemoveMemberRole drops one role from a member
func (h *ClubHandler) RemoveMemberRole(c *gin.Context) {
	clubID := c.Param("clubId")
	targetID := c.Param("userId")
	role := c.Param("role")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.clubService.RemoveMemberRole(c.Request.Context(), clubID, userID, targetID, role); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Role removed"})
}

// RemoveMember removes a member from the club
func (h *ClubHandler) RemoveMember(c *gin.Context) {
	clubID := c.Param("clubId")
	targetID := c.Param("userId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.clubService.RemoveMember(c.Request.Context(), clubID, userID, targetID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}
