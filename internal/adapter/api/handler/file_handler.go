package handler

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"griyapasar/internal/adapter/api/middleware"
	"griyapasar/internal/domain/entity"
	"griyapasar/internal/domain/repository"
	"griyapasar/internal/infrastructure/storage"
	"griyapasar/internal/rules"
	"griyapasar/pkg/errors"
	"griyapasar/pkg/logger"
	"griyapasar/pkg/response"
)

type FileHandler struct {
	storageClient    *storage.CloudStorageClient
	fileMetadataRepo repository.FileMetadataRepository
}

var fileHandler *FileHandler

func SetupFileHandler(storageClient *storage.CloudStorageClient, fileMetadataRepo repository.FileMetadataRepository) {
	fileHandler = &FileHandler{
		storageClient:    storageClient,
		fileMetadataRepo: fileMetadataRepo,
	}
}

func GetFileHandler() *FileHandler {
	return fileHandler
}

var allowedEntityTypes = map[string]bool{
	"property": true,
	"provider": true,
	"user":     true,
}

func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	entityType := c.FormValue("entityType")
	if !allowedEntityTypes[entityType] {
		return response.Error(c, errors.BadRequest("Unknown entity type", nil))
	}

	category := c.FormValue("category")
	uploadClass := "image"
	if category == "license" {
		uploadClass = "document"
	}

	fileType := file.Header.Get("Content-Type")
	if err := h.storageClient.ValidateUpload(fileType, file.Size, uploadClass); err != nil {
		logger.Warn("Rejected upload from %s: %v", c.Get("uid"), err)
		return response.Error(c, errors.BadRequest(err.Error(), nil))
	}

	uid := c.Get("uid").(string)
	isPublic := uploadClass == "image"

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Unable to read file", err))
	}
	defer src.Close()

	objectPath := storage.ObjectPath(entityType, uid, category, fileType)
	url, err := h.storageClient.UploadFile(c.Request().Context(), src, fileType, objectPath, isPublic)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to upload file", err))
	}

	metadata := &entity.FileMetadata{
		ID:         uuid.New().String(),
		URL:        url,
		ObjectName: objectPath,
		EntityType: entityType,
		EntityID:   c.FormValue("entityId"),
		Category:   category,
		UploadedBy: uid,
		Filename:   file.Filename,
		FileType:   fileType,
		FileSize:   file.Size,
		IsPublic:   isPublic,
		CreatedAt:  time.Now(),
	}
	if err := h.fileMetadataRepo.Create(c.Request().Context(), metadata); err != nil {
		logger.Warn("Failed to persist file metadata for %s: %v", objectPath, err)
	}

	return response.Created(c, metadata)
}

func (h *FileHandler) ListByEntity(c echo.Context) error {
	entityType := c.QueryParam("entityType")
	entityID := c.QueryParam("entityId")
	if !allowedEntityTypes[entityType] || entityID == "" {
		return response.Error(c, errors.BadRequest("entityType and entityId are required", nil))
	}

	files, err := h.fileMetadataRepo.ListByEntity(c.Request().Context(), entityType, entityID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, files)
}

func (h *FileHandler) DeleteFile(c echo.Context) error {
	metadata, err := h.fileMetadataRepo.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	actor := middleware.ActorFrom(c)
	if !rules.CanWriteUser(actor, metadata.UploadedBy) {
		return response.Error(c, errors.Forbidden("You don't have permission to delete this file", nil))
	}

	if err := h.storageClient.DeleteFile(c.Request().Context(), metadata.URL); err != nil {
		logger.Warn("Failed to delete object %s: %v", metadata.ObjectName, err)
	}
	if err := h.fileMetadataRepo.Delete(c.Request().Context(), metadata.ID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"status": "deleted"})
}

type signedURLRequest struct {
	EntityType string `json:"entity_type" validate:"required"`
	Category   string `json:"category" validate:"required"`
	FileType   string `json:"file_type" validate:"required"`
}

func (h *FileHandler) GenerateSignedURL(c echo.Context) error {
	var req signedURLRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}
	if !allowedEntityTypes[req.EntityType] {
		return response.Error(c, errors.BadRequest("Unknown entity type", nil))
	}

	uid := c.Get("uid").(string)
	objectPath := storage.ObjectPath(req.EntityType, uid, req.Category, req.FileType)

	url, err := h.storageClient.GenerateSignedUploadURL(c.Request().Context(), req.FileType, objectPath)
	if err != nil {
		return response.Error(c, errors.Internal("Failed to generate upload URL", err))
	}

	return response.Success(c, map[string]string{
		"upload_url":  url,
		"object_name": objectPath,
	})
}
