package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type LocationHandler struct {
	svc service.LocationService
}

func NewLocationHandler(svc service.LocationService) *LocationHandler {
	return &LocationHandler{svc: svc}
}

type LocationResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type LocationRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description"`
}

func (h *LocationHandler) List(c echo.Context) error {
	ident := appmw.CurrentIdentity(c)
	search := c.QueryParam("search")

	if p := bindPageParams(c); p != nil {
		page, err := h.svc.ListPage(c.Request().Context(), ident, search, *p)
		if err != nil {
			return respondError(c, err)
		}
		data := make([]LocationResponse, 0, len(page.Items))
		for i := range page.Items {
			data = append(data, toLocationResponse(&page.Items[i]))
		}
		return c.JSON(http.StatusOK, PagedResponse{Data: data, Pagination: pageMeta(page)})
	}

	ls, err := h.svc.List(c.Request().Context(), ident, search)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]LocationResponse, 0, len(ls))
	for i := range ls {
		resp = append(resp, toLocationResponse(&ls[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *LocationHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	loc, err := h.svc.Get(c.Request().Context(), appmw.CurrentIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toLocationResponse(loc))
}

func (h *LocationHandler) Create(c echo.Context) error {
	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	loc, err := h.svc.Create(c.Request().Context(), appmw.CurrentIdentity(c), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toLocationResponse(loc))
}

func (h *LocationHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req LocationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	loc, err := h.svc.Update(c.Request().Context(), appmw.CurrentIdentity(c), id, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toLocationResponse(loc))
}

func (h *LocationHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toLocationResponse(loc *model.Location) LocationResponse {
	return LocationResponse{
		ID:          loc.ID,
		Name:        loc.Name,
		Description: loc.Description,
		CreatedAt:   loc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   loc.UpdatedAt.Format(time.RFC3339),
	}
}
