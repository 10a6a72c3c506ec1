package models

import "time"

// ============================================
// Auth DTOs
// ============================================

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type AuthResponse struct {
	User         UserResponse `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

// ============================================
// User DTOs
// ============================================

type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    *string   `json:"avatar,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

type UpdateUserRequest struct {
	Name   *string `json:"name,omitempty"`
	Avatar *string `json:"avatar,omitempty"`
}

// ============================================
// Club DTOs
// ============================================

type CreateClubRequest struct {
	Name        string  `json:"name" binding:"required,min=1"`
	Description *string `json:"description"`
	Avatar      *string `json:"avatar"`
}

type UpdateClubRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Avatar      *string `json:"avatar"`
}

type ClubResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AddClubMemberRequest struct {
	UserID string   `json:"userId" binding:"required"`
	Roles  []string `json:"roles" binding:"required"`
}

type UpdateMemberRolesRequest struct {
	Roles []string `json:"roles" binding:"required"`
}

// ============================================
// Team DTOs
// ============================================

type CreateTeamRequest struct {
	Name        string  `json:"name" binding:"required,min=1"`
	Description *string `json:"description"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type TeamResponse struct {
	ID          string    `json:"id"`
	ClubID      string    `json:"clubId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AddTeamMemberRequest struct {
	UserID string   `json:"userId" binding:"required"`
	Roles  []string `json:"roles" binding:"required"`
}

type TeamMemberResponse struct {
	UserID   string    `json:"userId"`
	TeamID   string    `json:"teamId"`
	Roles    []string  `json:"roles"`
	JoinedAt time.Time `json:"joinedAt"`
}

// ============================================
// Child DTOs
// ============================================

type CreateChildRequest struct {
	Name   string  `json:"name" binding:"required,min=1"`
	TeamID *string `json:"teamId"`
}

type UpdateChildRequest struct {
	Name   *string `json:"name"`
	TeamID *string `json:"teamId"`
}

type ChildResponse struct {
	ID         string    `json:"id"`
	GuardianID string    `json:"guardianId"`
	Name       string    `json:"name"`
	TeamID     *string   `json:"teamId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ============================================
// Event DTOs
// ============================================

type CreateEventRequest struct {
	Title     string    `json:"title" binding:"required,min=1"`
	StartsAt  time.Time `json:"startsAt" binding:"required"`
	TeamID    *string   `json:"teamId"`
	DutyRoles []string  `json:"dutyRoles"`
}

type EventResponse struct {
	ID        string    `json:"id"`
	ClubID    string    `json:"clubId"`
	TeamID    *string   `json:"teamId,omitempty"`
	Title     string    `json:"title"`
	StartsAt  time.Time `json:"startsAt"`
	DutyRoles []string  `json:"dutyRoles"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

// ============================================
// Vault DTOs
// ============================================

type CreateSubfolderRequest struct {
	Name string `json:"name" binding:"required"`
}

type SubfolderResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	FolderID  string    `json:"folderId"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
}

type UploadRequest struct {
	FileName    string  `json:"fileName" binding:"required"`
	ContentType *string `json:"contentType"`
	SizeBytes   int64   `json:"sizeBytes"`
	SubfolderID *string `json:"subfolderId"`
}

type VaultItemResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"fileName"`
	StoragePath string    `json:"storagePath"`
	ContentType *string   `json:"contentType,omitempty"`
	SizeBytes   int64     `json:"sizeBytes"`
	SubfolderID *string   `json:"subfolderId,omitempty"`
	UploadedBy  string    `json:"uploadedBy"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

// ============================================
// Duty DTOs
// ============================================

type MarkDutyCompletedRequest struct {
	EventID  string `json:"eventId" binding:"required"`
	DutyRole string `json:"dutyRole" binding:"required"`
}

// ============================================
// Notification DTOs
// ============================================

type NotificationResponse struct {
	ID        string                  `json:"id"`
	UserID    string                  `json:"userId"`
	Type      string                  `json:"type"`
	Title     string                  `json:"title"`
	Message   string                  `json:"message"`
	Data      *map[string]interface{} `json:"data,omitempty"`
	Read      bool                    `json:"read"`
	CreatedAt time.Time               `json:"createdAt"`
}
