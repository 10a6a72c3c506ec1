package handlers

import (
	"net/http"

	"github.com/clubhub-dev/clubhub-backend/internal/api/middleware"
	"github.com/clubhub-dev/clubhub-backend/internal/models"
	"github.com/clubhub-dev/clubhub-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// VaultHandler handles vault HTTP requests
type VaultHandler struct {
	vaultService service.VaultService
}

// ListFolders returns the top-level vault folders visible to the user
func (h *VaultHandler) ListFolders(c *gin.Context) {
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	folders, err := h.vaultService.ListFolders(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if folders == nil {
		folders = []*service.VaultFolder{}
	}
	c.JSON(http.StatusOK, folders)
}

// ListSubfolders returns the subfolders of a folder
func (h *VaultHandler) ListSubfolders(c *gin.Context) {
	folderID := c.Param("folderId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	subfolders, err := h.vaultService.ListSubfolders(c.Request.Context(), userID, folderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]models.SubfolderResponse, 0, len(subfolders))
	for _, sf := range subfolders {
		resp = append(resp, toSubfolderResponse(sf))
	}
	c.JSON(http.StatusOK, resp)
}

// ListContents returns a folder's photos or files, newest first. The
// kind path segment is "photos" or "files"; an optional subfolderId
// query scopes the listing.
func (h *VaultHandler) ListContents(c *gin.Context) {
	folderID := c.Param("folderId")
	kind := c.Param("kind")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var subfolderID *string
	if v := c.Query("subfolderId"); v != "" {
		subfolderID = &v
	}

	items, err := h.vaultService.ListFolderContents(c.Request.Context(), userID, folderID, kind, subfolderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	resp := make([]models.VaultItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, toVaultItemResponse(item))
	}
	c.JSON(http.StatusOK, resp)
}

// CreateSubfolder creates a named grouping under a folder
func (h *VaultHandler) CreateSubfolder(c *gin.Context) {
	folderID := c.Param("folderId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.CreateSubfolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sf, err := h.vaultService.CreateSubfolder(c.Request.Context(), userID, folderID, req.Name)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSubfolderResponse(sf))
}

// DeleteSubfolder removes a subfolder, reparenting its contents
func (h *VaultHandler) DeleteSubfolder(c *gin.Context) {
	subfolderID := c.Param("subfolderId")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	if err := h.vaultService.DeleteSubfolder(c.Request.Context(), userID, subfolderID); err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Subfolder deleted"})
}

// Upload records a photo or file upload into a folder
func (h *VaultHandler) Upload(c *gin.Context) {
	folderID := c.Param("folderId")
	kind := c.Param("kind")
	userID, ok := middleware.RequireUserID(c)
	if !ok {
		return
	}

	var req models.UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.vaultService.Upload(c.Request.Context(), userID, kind, &service.UploadRequest{
		FolderID:    folderID,
		SubfolderID: req.SubfolderID,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toVaultItemResponse(item))
}
