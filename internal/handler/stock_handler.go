package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type StockHandler struct {
	svc service.StockService
}

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

type StockEntryResponse struct {
	ID        uint64  `json:"id"`
	ItemID    uint64  `json:"itemId"`
	Quantity  int     `json:"quantity"`
	Note      *string `json:"note,omitempty"`
	CreatedAt string  `json:"createdAt"`
}

// StockListResponse carries the history together with the derived current
// quantity so clients never have to sum deltas themselves.
type StockListResponse struct {
	Quantity int64                `json:"quantity"`
	History  []StockEntryResponse `json:"history"`
}

type StockPagedResponse struct {
	Quantity   int64                `json:"quantity"`
	Data       []StockEntryResponse `json:"data"`
	Pagination PaginationMeta       `json:"pagination"`
}

type AddStockRequest struct {
	Quantity int     `json:"quantity" validate:"required"`
	Note     *string `json:"note" validate:"omitempty,max=255"`
}

func (h *StockHandler) List(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	ident := appmw.CurrentIdentity(c)

	if p := bindPageParams(c); p != nil {
		page, err := h.svc.ListPage(c.Request().Context(), ident, itemID, *p)
		if err != nil {
			return respondError(c, err)
		}
		data := make([]StockEntryResponse, 0, len(page.Page.Items))
		for i := range page.Page.Items {
			data = append(data, toStockEntryResponse(&page.Page.Items[i]))
		}
		return c.JSON(http.StatusOK, StockPagedResponse{
			Quantity:   page.Quantity,
			Data:       data,
			Pagination: pageMeta(page.Page),
		})
	}

	hs, qty, err := h.svc.List(c.Request().Context(), ident, itemID)
	if err != nil {
		return respondError(c, err)
	}
	history := make([]StockEntryResponse, 0, len(hs))
	for i := range hs {
		history = append(history, toStockEntryResponse(&hs[i]))
	}
	return c.JSON(http.StatusOK, StockListResponse{Quantity: qty, History: history})
}

func (h *StockHandler) Add(c echo.Context) error {
	itemID, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req AddStockRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	entry, err := h.svc.Add(c.Request().Context(), appmw.CurrentIdentity(c), itemID, req.Quantity, req.Note)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toStockEntryResponse(entry))
}

func (h *StockHandler) Delete(c echo.Context) error {
	if _, err := parseID(c, "id"); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	entryID, err := parseID(c, "entryId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid entry id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), entryID); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toStockEntryResponse(h *model.StockHistory) StockEntryResponse {
	return StockEntryResponse{
		ID:        h.ID,
		ItemID:    h.ItemID,
		Quantity:  h.Quantity,
		Note:      h.Note,
		CreatedAt: h.CreatedAt.Format(time.RFC3339),
	}
}
