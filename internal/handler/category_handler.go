package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(svc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

type CategoryResponse struct {
	ID          uint64  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type CategoryRequest struct {
	Name        string  `json:"name" validate:"required,max=120"`
	Description *string `json:"description"`
}

func (h *CategoryHandler) List(c echo.Context) error {
	ident := appmw.CurrentIdentity(c)
	search := c.QueryParam("search")

	if p := bindPageParams(c); p != nil {
		page, err := h.svc.ListPage(c.Request().Context(), ident, search, *p)
		if err != nil {
			return respondError(c, err)
		}
		data := make([]CategoryResponse, 0, len(page.Items))
		for i := range page.Items {
			data = append(data, toCategoryResponse(&page.Items[i]))
		}
		return c.JSON(http.StatusOK, PagedResponse{Data: data, Pagination: pageMeta(page)})
	}

	cs, err := h.svc.List(c.Request().Context(), ident, search)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]CategoryResponse, 0, len(cs))
	for i := range cs {
		resp = append(resp, toCategoryResponse(&cs[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *CategoryHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	cat, err := h.svc.Get(c.Request().Context(), appmw.CurrentIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) Create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	cat, err := h.svc.Create(c.Request().Context(), appmw.CurrentIdentity(c), req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toCategoryResponse(cat))
}

func (h *CategoryHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	cat, err := h.svc.Update(c.Request().Context(), appmw.CurrentIdentity(c), id, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toCategoryResponse(cat))
}

func (h *CategoryHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toCategoryResponse(cat *model.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		CreatedAt:   cat.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   cat.UpdatedAt.Format(time.RFC3339),
	}
}
