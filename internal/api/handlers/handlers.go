package handlers

import (
	"net/http"

	"github.com/clubhub-dev/clubhub-backend/internal/models"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Auth         *AuthHandler
	User         *UserHandler
	Club         *ClubHandler
	Team         *TeamHandler
	Child        *ChildHandler
	Event        *EventHandler
	Vault        *VaultHandler
	Duty         *DutyHandler
	Notification *NotificationHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Auth:         &AuthHandler{authService: services.Auth},
		User:         &UserHandler{userService: services.User},
		Club:         &ClubHandler{clubService: services.Club},
		Team:         &TeamHandler{teamService: services.Team},
		Child:        &ChildHandler{childService: services.Child},
		Event:        &EventHandler{eventService: services.Event},
		Vault:        &VaultHandler{vaultService: services.Vault},
		Duty:         &DutyHandler{dutyService: services.Duty},
		Notification: &NotificationHandler{notificationService: services.Notification},
	}
}

// handleServiceError maps service errors to HTTP responses
func handleServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case service.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case service.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case service.ErrConflict:
		c.JSON(http.StatusConflict, gin.H{"error": "Resource already exists"})
	case service.ErrUserNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case service.ErrInvalidToken:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
	case service.ErrInvalidInput:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
	case service.ErrInvalidFolderID:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid folder id"})
	case service.ErrInvalidFolderName:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid subfolder name"})
	case service.ErrDutyNotAssignable:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Duty role is not defined on this event"})
	case service.ErrDutyCompleted:
		c.JSON(http.StatusConflict, gin.H{"error": "Duty already marked completed"})
	case service.ErrDutyApproved:
		c.JSON(http.StatusConflict, gin.H{"error": "Duty already approved"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// ============================================
// Response Mappers
// ============================================

func toUserResponse(u *repository.User) models.UserResponse {
	return models.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Avatar:    u.Avatar,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

func toClubResponse(c *repository.Club) models.ClubResponse {
	return models.ClubResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Avatar:      c.Avatar,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toTeamResponse(t *repository.Team) models.TeamResponse {
	return models.TeamResponse{
		ID:          t.ID,
		ClubID:      t.ClubID,
		Name:        t.Name,
		Description: t.Description,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTeamMemberResponse(m *repository.TeamMembership) models.TeamMemberResponse {
	return models.TeamMemberResponse{
		UserID:   m.UserID,
		TeamID:   m.TeamID,
		Roles:    safeStringSlice(m.Roles),
		JoinedAt: m.JoinedAt,
	}
}

func toChildResponse(c *repository.Child) models.ChildResponse {
	return models.ChildResponse{
		ID:         c.ID,
		GuardianID: c.GuardianID,
		Name:       c.Name,
		TeamID:     c.TeamID,
		CreatedAt:  c.CreatedAt,
	}
}

func toEventResponse(e *repository.Event) models.EventResponse {
	return models.EventResponse{
		ID:        e.ID,
		ClubID:    e.ClubID,
		TeamID:    e.TeamID,
		Title:     e.Title,
		StartsAt:  e.StartsAt,
		DutyRoles: safeStringSlice(e.DutyRoles),
		CreatedBy: e.CreatedBy,
		CreatedAt: e.CreatedAt,
	}
}

func toSubfolderResponse(sf *repository.Subfolder) models.SubfolderResponse {
	return models.SubfolderResponse{
		ID:        sf.ID,
		Name:      sf.Name,
		FolderID:  sf.ParentKind + "_" + sf.ParentID,
		CreatedBy: sf.CreatedBy,
		CreatedAt: sf.CreatedAt,
	}
}

func toVaultItemResponse(item *repository.VaultItem) models.VaultItemResponse {
	return models.VaultItemResponse{
		ID:          item.ID,
		FileName:    item.FileName,
		StoragePath: item.StoragePath,
		ContentType: item.ContentType,
		SizeBytes:   item.SizeBytes,
		SubfolderID: item.SubfolderID,
		UploadedBy:  item.UploadedBy,
		UploadedAt:  item.UploadedAt,
	}
}

func toNotificationResponse(n *repository.Notification) models.NotificationResponse {
	resp := models.NotificationResponse{
		ID:        n.ID,
		UserID:    n.UserID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
	if n.Data != nil {
		resp.Data = &n.Data
	}
	return resp
}

// Helper to ensure nil slices become empty slices
func safeStringSlice(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
