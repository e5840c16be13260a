package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"github.com/monooki-app/monooki-backend/internal/service"
)

type ItemHandler struct {
	svc service.ItemService
}

func NewItemHandler(svc service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

type ItemResponse struct {
	ID             uint64  `json:"id"`
	OwnerUserID    string  `json:"ownerUserId"`
	Title          string  `json:"title"`
	Description    *string `json:"description,omitempty"`
	OriginalQRCode *string `json:"originalQrCode,omitempty"`
	CategoryID     *uint64 `json:"categoryId,omitempty"`
	LocationID     *uint64 `json:"locationId,omitempty"`
	AuthorID       *uint64 `json:"authorId,omitempty"`
	ParentID       *uint64 `json:"parentId,omitempty"`
	Price          *uint   `json:"price,omitempty"`
	Currency       string  `json:"currency"`
	Visibility     string  `json:"visibility"`
	CreatedAt      string  `json:"createdAt"`
	UpdatedAt      string  `json:"updatedAt"`
}

type ItemDetailResponse struct {
	ItemResponse
	Category   *CategoryResponse    `json:"category"`
	Location   *LocationResponse    `json:"location"`
	Author     *AuthorResponse      `json:"author"`
	Children   []ItemResponse       `json:"children"`
	Contents   []ContentResponse    `json:"contents"`
	Images     []UploadFileResponse `json:"images"`
	Quantity   int64                `json:"quantity"`
	PreviewURL *string              `json:"previewUrl,omitempty"`
}

type ItemRequest struct {
	Title          string  `json:"title" validate:"required,max=120"`
	Description    *string `json:"description"`
	OriginalQRCode *string `json:"originalQrCode"`
	CategoryID     *uint64 `json:"categoryId"`
	LocationID     *uint64 `json:"locationId"`
	AuthorID       *uint64 `json:"authorId"`
	ParentID       *uint64 `json:"parentId"`
	Price          *uint   `json:"price"`
	Currency       string  `json:"currency" validate:"omitempty,len=3"`
	Visibility     string  `json:"visibility" validate:"omitempty,oneof=public private"`
	ImageFileIDs   []uint64 `json:"imageFileIds"`
}

func (r ItemRequest) toInput() service.ItemInput {
	return service.ItemInput{
		Title:          r.Title,
		Description:    r.Description,
		OriginalQRCode: r.OriginalQRCode,
		CategoryID:     r.CategoryID,
		LocationID:     r.LocationID,
		AuthorID:       r.AuthorID,
		ParentID:       r.ParentID,
		Price:          r.Price,
		Currency:       r.Currency,
		Visibility:     model.Visibility(r.Visibility),
		ImageFileIDs:   r.ImageFileIDs,
	}
}

func (h *ItemHandler) List(c echo.Context) error {
	ident := appmw.CurrentIdentity(c)
	f := itemFilter(c)

	if p := bindPageParams(c); p != nil {
		page, err := h.svc.ListPage(c.Request().Context(), ident, f, *p)
		if err != nil {
			return respondError(c, err)
		}
		data := make([]ItemResponse, 0, len(page.Items))
		for i := range page.Items {
			data = append(data, toItemResponse(&page.Items[i]))
		}
		return c.JSON(http.StatusOK, PagedResponse{Data: data, Pagination: pageMeta(page)})
	}

	items, err := h.svc.List(c.Request().Context(), ident, f)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]ItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toItemResponse(&items[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func itemFilter(c echo.Context) repository.ItemFilter {
	f := repository.ItemFilter{Search: c.QueryParam("search")}
	if v := c.QueryParam("categoryId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.CategoryID = &id
		}
	}
	if v := c.QueryParam("locationId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.LocationID = &id
		}
	}
	if v := c.QueryParam("authorId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.AuthorID = &id
		}
	}
	if v := c.QueryParam("parentId"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.ParentID = &id
		}
	}
	if v := c.QueryParam("visibility"); v == string(model.VisibilityPublic) || v == string(model.VisibilityPrivate) {
		vis := model.Visibility(v)
		f.Visibility = &vis
	}
	return f
}

func (h *ItemHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	detail, err := h.svc.Get(c.Request().Context(), appmw.CurrentIdentity(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toItemDetailResponse(detail))
}

func (h *ItemHandler) Create(c echo.Context) error {
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	item, err := h.svc.Create(c.Request().Context(), appmw.CurrentIdentity(c), req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, toItemResponse(item))
}

func (h *ItemHandler) Update(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid json"})
	}
	if err := c.Validate(&req); err != nil {
		return respondValidation(c, err)
	}
	item, err := h.svc.Update(c.Request().Context(), appmw.CurrentIdentity(c), id, req.toInput())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, toItemResponse(item))
}

func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}
	if err := h.svc.Delete(c.Request().Context(), appmw.CurrentIdentity(c), id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toItemResponse(item *model.Item) ItemResponse {
	return ItemResponse{
		ID:             item.ID,
		OwnerUserID:    item.OwnerUserID,
		Title:          item.Title,
		Description:    item.Description,
		OriginalQRCode: item.OriginalQRCode,
		CategoryID:     item.CategoryID,
		LocationID:     item.LocationID,
		AuthorID:       item.AuthorID,
		ParentID:       item.ParentID,
		Price:          item.Price,
		Currency:       item.Currency,
		Visibility:     string(item.Visibility),
		CreatedAt:      item.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      item.UpdatedAt.Format(time.RFC3339),
	}
}

func toItemDetailResponse(d *service.ItemDetail) ItemDetailResponse {
	resp := ItemDetailResponse{
		ItemResponse: toItemResponse(&d.Item),
		Children:     make([]ItemResponse, 0, len(d.Children)),
		Contents:     make([]ContentResponse, 0, len(d.Contents)),
		Images:       make([]UploadFileResponse, 0, len(d.Images)),
		Quantity:     d.Quantity,
		PreviewURL:   d.PreviewURL,
	}
	if d.Category != nil {
		cr := toCategoryResponse(d.Category)
		resp.Category = &cr
	}
	if d.Location != nil {
		lr := toLocationResponse(d.Location)
		resp.Location = &lr
	}
	if d.Author != nil {
		ar := toAuthorResponse(d.Author)
		resp.Author = &ar
	}
	for i := range d.Children {
		resp.Children = append(resp.Children, toItemResponse(&d.Children[i]))
	}
	for i := range d.Contents {
		resp.Contents = append(resp.Contents, toContentResponse(&d.Contents[i]))
	}
	for i := range d.Images {
		resp.Images = append(resp.Images, toUploadFileResponse(&d.Images[i]))
	}
	return resp
}
