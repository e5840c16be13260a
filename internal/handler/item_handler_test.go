package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/monooki-app/monooki-backend/internal/identity"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"github.com/monooki-app/monooki-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type handlerEnv struct {
	echo       *echo.Echo
	items      *ItemHandler
	itemSvc    service.ItemService
	whitelists service.WhitelistService
}

func newHandlerEnv(t *testing.T) *handlerEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Item{},
		&model.Category{},
		&model.Location{},
		&model.Author{},
		&model.PositionSchema{},
		&model.Position{},
		&model.Content{},
		&model.StockHistory{},
		&model.ItemWhitelist{},
		&model.UploadFile{},
		&model.AccountDeletion{},
	))

	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	contentRepo := repository.NewContentRepository(db)
	whitelistRepo := repository.NewWhitelistRepository(db)
	stockRepo := repository.NewStockHistoryRepository(db)
	uploadRepo := repository.NewUploadFileRepository(db)
	cascadeRepo := repository.NewCascadeRepository(db)
	deletionRepo := repository.NewAccountDeletionRepository(db)

	deletionSvc := service.NewDeletionService(itemRepo, uploadRepo, cascadeRepo, deletionRepo, nil, time.Hour)
	itemSvc := service.NewItemService(itemRepo, categoryRepo, locationRepo, authorRepo, contentRepo, whitelistRepo, stockRepo, uploadRepo, nil, deletionSvc)

	e := echo.New()
	e.Validator = NewValidator()

	return &handlerEnv{
		echo:       e,
		items:      NewItemHandler(itemSvc),
		itemSvc:    itemSvc,
		whitelists: service.NewWhitelistService(whitelistRepo, itemRepo),
	}
}

func (env *handlerEnv) request(t *testing.T, method, target string, body string, ident *identity.Identity) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	c := env.echo.NewContext(req, rec)
	if ident != nil {
		appmw.SetIdentity(c, ident)
	}
	return c, rec
}

func TestItemGetWhitelistedCallerSucceeds(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()
	owner := &identity.Identity{UserID: "alice", Email: "alice@example.com"}

	item, err := env.itemSvc.Create(ctx, owner, service.ItemInput{Title: "private camera"})
	require.NoError(t, err)
	_, err = env.whitelists.Add(ctx, owner, item.ID, "friend@example.com")
	require.NoError(t, err)

	friend := &identity.Identity{UserID: "friend-uid", Email: "Friend@Example.com"}
	c, rec := env.request(t, http.MethodGet, "/api/items/"+strconv.FormatUint(item.ID, 10), "", friend)
	c.SetPath("/api/items/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(item.ID, 10))

	require.NoError(t, env.items.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ItemDetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, item.ID, resp.ID)
	assert.Equal(t, "private camera", resp.Title)
}

func TestItemGetStrangerIsForbidden(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()
	owner := &identity.Identity{UserID: "alice", Email: "alice@example.com"}

	item, err := env.itemSvc.Create(ctx, owner, service.ItemInput{Title: "private camera"})
	require.NoError(t, err)

	stranger := &identity.Identity{UserID: "mallory", Email: "mallory@example.com"}
	c, rec := env.request(t, http.MethodGet, "/api/items/"+strconv.FormatUint(item.ID, 10), "", stranger)
	c.SetPath("/api/items/:id")
	c.SetParamNames("id")
	c.SetParamValues(strconv.FormatUint(item.ID, 10))

	require.NoError(t, env.items.Get(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Permission denied"}`, rec.Body.String())
}

func TestItemListPaginatedEnvelope(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()
	owner := &identity.Identity{UserID: "alice", Email: "alice@example.com"}

	for _, title := range []string{"one", "two", "three"} {
		_, err := env.itemSvc.Create(ctx, owner, service.ItemInput{Title: title})
		require.NoError(t, err)
	}

	c, rec := env.request(t, http.MethodGet, "/api/items?limit=2", "", owner)
	require.NoError(t, env.items.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data       []ItemResponse `json:"data"`
		Pagination PaginationMeta `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 2)
	assert.True(t, resp.Pagination.HasNextPage)
	assert.False(t, resp.Pagination.HasPrevPage)
	assert.Nil(t, resp.Pagination.PrevCursor)
	require.NotNil(t, resp.Pagination.NextCursor)

	c, rec = env.request(t, http.MethodGet, "/api/items?limit=2&cursor="+*resp.Pagination.NextCursor, "", owner)
	require.NoError(t, env.items.List(c))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 1)
	assert.False(t, resp.Pagination.HasNextPage)
	assert.True(t, resp.Pagination.HasPrevPage)
}

func TestItemListBareArrayWithoutPaginationParams(t *testing.T) {
	env := newHandlerEnv(t)
	ctx := context.Background()
	owner := &identity.Identity{UserID: "alice", Email: "alice@example.com"}
	_, err := env.itemSvc.Create(ctx, owner, service.ItemInput{Title: "one"})
	require.NoError(t, err)

	c, rec := env.request(t, http.MethodGet, "/api/items", "", owner)
	require.NoError(t, env.items.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp, 1)
}

func TestItemCreateValidation(t *testing.T) {
	env := newHandlerEnv(t)
	owner := &identity.Identity{UserID: "alice", Email: "alice@example.com"}

	c, rec := env.request(t, http.MethodPost, "/api/items", `{"title":""}`, owner)
	require.NoError(t, env.items.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = env.request(t, http.MethodPost, "/api/items", `{"title":"camera","visibility":"public"}`, owner)
	require.NoError(t, env.items.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ItemResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "public", resp.Visibility)
	assert.Equal(t, "JPY", resp.Currency)
}
