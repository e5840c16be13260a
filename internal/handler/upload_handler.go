package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type UploadHandler struct {
	svc service.UploadService
}

func NewUploadHandler(svc service.UploadService) *UploadHandler {
	return &UploadHandler{svc: svc}
}

type UploadFileResponse struct {
	ID          uint64  `json:"id"`
	ItemID      *uint64 `json:"itemId,omitempty"`
	Filename    string  `json:"filename"`
	ContentType string  `json:"contentType"`
	Size        int64   `json:"size"`
	SortOrder   int     `json:"sortOrder"`
	CreatedAt   string  `json:"createdAt"`
}

type PresignResponse struct {
	File      UploadFileResponse `json:"file"`
	UploadURL string             `json:"uploadUrl"`
}

type PresignRequest struct {
	Filename    string `json:"filename" validate:"required,max=255"`
	ContentType string `json:"contentType" validate:"required,max=128"`
	Size        int64  `json:"size" validate:"required,gt=0"`
}

func (h *UploadHandler) Presign(c echo.Context) error {
	var req PresignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	presigned, err := h.svc.Presign(c.Request().Context(), appmw.CurrentIdentity(c), req.Filename, req.ContentType, req.Size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, PresignResponse{
		File:      toUploadFileResponse(&presigned.File),
		UploadURL: presigned.UploadURL,
	})
}

func (h *UploadHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toUploadFileResponse(f *model.UploadFile) UploadFileResponse {
	return UploadFileResponse{
		ID:          f.ID,
		ItemID:      f.ItemID,
		Filename:    f.Filename,
		ContentType: f.ContentType,
		Size:        f.Size,
		SortOrder:   f.SortOrder,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
}
