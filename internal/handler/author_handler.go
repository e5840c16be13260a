package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type AuthorHandler struct {
	svc service.AuthorService
}

func NewAuthorHandler(svc service.AuthorService) *AuthorHandler {
	return &AuthorHandler{svc: svc}
}

type AuthorResponse struct {
	ID        uint64  `json:"id"`
	Name      string  `json:"name"`
	Memo      *string `json:"memo,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type AuthorRequest struct {
	Name string  `json:"name" validate:"required,max=120"`
	Memo *string `json:"memo"`
}

func (h *AuthorHandler) List(c echo.Context) error {
	ident := appmw.CurrentIdentity(c)
	search := c.QueryParam("search")

	if p := bindPageParams(c); p != nil {
		page, err := h.svc.ListPage(c.Request().Context(), ident, search, *p)
		if err != nil {
			return respondError(c, err)
		}
		data := make([]AuthorResponse, 0, len(page.Items))
		for i := range page.Items {
			data = append(data, toAuthorResponse(&page.Items[i]))
		}
		return c.JSON(http.StatusOK, PagedResponse{Data: data, Pagination: pageMeta(page)})
	}

	as, err := h.svc.List(c.Request().Context(), ident, search)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]AuthorResponse, 0, len(as))
	for i := range as {
		resp = append(resp, toAuthorResponse(&as[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *AuthorHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	a, err := h.svc.Get(c.Request().Context(), appmw.CurrentIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthorResponse(a))
}

func (h *AuthorHandler) Create(c echo.Context) error {
	var req AuthorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	a, err := h.svc.Create(c.Request().Context(), appmw.CurrentIdentity(c), req.Name, req.Memo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toAuthorResponse(a))
}

func (h *AuthorHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req AuthorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	a, err := h.svc.Update(c.Request().Context(), appmw.CurrentIdentity(c), id, req.Name, req.Memo)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toAuthorResponse(a))
}

func (h *AuthorHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toAuthorResponse(a *model.Author) AuthorResponse {
	return AuthorResponse{
		ID:        a.ID,
		Name:      a.Name,
		Memo:      a.Memo,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
		UpdatedAt: a.UpdatedAt.Format(time.RFC3339),
	}
}
