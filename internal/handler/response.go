package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/monooki-app/monooki-backend/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// respondError maps the service error taxonomy to HTTP statuses. Unmapped
// errors become an opaque 500.
func respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
	case errors.Is(err, service.ErrForbidden):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "Permission denied"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "Not found"})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrConflict):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		slog.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// respondValidation renders field-level messages for binding/validation
// failures.
func respondValidation(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Validation failed", Fields: fields})
	}
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
}

type PaginationMeta struct {
	NextCursor  *string `json:"nextCursor"`
	PrevCursor  *string `json:"prevCursor"`
	HasNextPage bool    `json:"hasNextPage"`
	HasPrevPage bool    `json:"hasPrevPage"`
}

type PagedResponse struct {
	Data       any            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

func pageMeta[T any](p pagination.Page[T]) PaginationMeta {
	return PaginationMeta{
		NextCursor:  p.NextCursor,
		PrevCursor:  p.PrevCursor,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPrevPage,
	}
}

// bindPageParams returns nil when the request carries no pagination
// parameters at all; callers then bypass the engine and return a bare
// array. A malformed cursor still selects paginated mode (first page).
func bindPageParams(c echo.Context) *pagination.Params {
	limitStr := c.QueryParam("limit")
	cursor := c.QueryParam("cursor")
	if limitStr == "" && cursor == "" {
		return nil
	}
	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return &pagination.Params{
		Limit:     limit,
		Cursor:    cursor,
		Direction: pagination.ParseDirection(c.QueryParam("direction")),
	}
}

func parseID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
