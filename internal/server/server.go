package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/monooki-app/monooki-backend/internal/config"
	"github.com/monooki-app/monooki-backend/internal/handler"
	appmw "github.com/monooki-app/monooki-backend/internal/middleware"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"github.com/monooki-app/monooki-backend/internal/service"
	"github.com/monooki-app/monooki-backend/internal/storage"
	"gorm.io/gorm"
)

type Server struct {
	e     *echo.Echo
	sha   string
	build string
}

func New(cfg *config.Config, db *gorm.DB, store storage.ObjectStore, authMw *appmw.AuthMiddleware, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			if strings.HasSuffix(u.Hostname(), "monooki.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	itemRepo := repository.NewItemRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	authorRepo := repository.NewAuthorRepository(db)
	schemaRepo := repository.NewPositionSchemaRepository(db)
	positionRepo := repository.NewPositionRepository(db)
	contentRepo := repository.NewContentRepository(db)
	whitelistRepo := repository.NewWhitelistRepository(db)
	stockRepo := repository.NewStockHistoryRepository(db)
	uploadRepo := repository.NewUploadFileRepository(db)
	cascadeRepo := repository.NewCascadeRepository(db)
	deletionRepo := repository.NewAccountDeletionRepository(db)

	deletionSvc := service.NewDeletionService(itemRepo, uploadRepo, cascadeRepo, deletionRepo, store, cfg.AccountDeletionDelay)
	itemSvc := service.NewItemService(itemRepo, categoryRepo, locationRepo, authorRepo, contentRepo, whitelistRepo, stockRepo, uploadRepo, store, deletionSvc)
	categorySvc := service.NewCategoryService(categoryRepo, itemRepo)
	locationSvc := service.NewLocationService(locationRepo, itemRepo)
	authorSvc := service.NewAuthorService(authorRepo, itemRepo)
	schemaSvc := service.NewPositionSchemaService(schemaRepo)
	positionSvc := service.NewPositionService(positionRepo, schemaRepo, itemRepo)
	contentSvc := service.NewContentService(contentRepo, itemRepo)
	whitelistSvc := service.NewWhitelistService(whitelistRepo, itemRepo)
	stockSvc := service.NewStockService(stockRepo, itemRepo)
	uploadSvc := service.NewUploadService(uploadRepo, store)

	itemHandler := handler.NewItemHandler(itemSvc)
	categoryHandler := handler.NewCategoryHandler(categorySvc)
	locationHandler := handler.NewLocationHandler(locationSvc)
	authorHandler := handler.NewAuthorHandler(authorSvc)
	schemaHandler := handler.NewPositionSchemaHandler(schemaSvc)
	positionHandler := handler.NewPositionHandler(positionSvc)
	contentHandler := handler.NewContentHandler(contentSvc)
	whitelistHandler := handler.NewWhitelistHandler(whitelistSvc)
	stockHandler := handler.NewStockHandler(stockSvc)
	uploadHandler := handler.NewUploadHandler(uploadSvc)
	accountHandler := handler.NewAccountHandler(deletionSvc)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	// Reads on items are open to anonymous callers; visibility filtering
	// happens in the query layer.
	api.GET("/items", itemHandler.List, authMw.OptionalAuth)
	api.GET("/items/:id", itemHandler.Get, authMw.OptionalAuth)
	api.POST("/items", itemHandler.Create, authMw.RequireAuth)
	api.PUT("/items/:id", itemHandler.Update, authMw.RequireAuth)
	api.DELETE("/items/:id", itemHandler.Delete, authMw.RequireAuth)

	api.GET("/categories", categoryHandler.List, authMw.OptionalAuth)
	api.GET("/categories/:id", categoryHandler.Get, authMw.RequireAuth)
	api.POST("/categories", categoryHandler.Create, authMw.RequireAuth)
	api.PUT("/categories/:id", categoryHandler.Update, authMw.RequireAuth)
	api.DELETE("/categories/:id", categoryHandler.Delete, authMw.RequireAuth)

	api.GET("/locations", locationHandler.List, authMw.OptionalAuth)
	api.GET("/locations/:id", locationHandler.Get, authMw.RequireAuth)
	api.POST("/locations", locationHandler.Create, authMw.RequireAuth)
	api.PUT("/locations/:id", locationHandler.Update, authMw.RequireAuth)
	api.DELETE("/locations/:id", locationHandler.Delete, authMw.RequireAuth)

	api.GET("/authors", authorHandler.List, authMw.OptionalAuth)
	api.GET("/authors/:id", authorHandler.Get, authMw.RequireAuth)
	api.POST("/authors", authorHandler.Create, authMw.RequireAuth)
	api.PUT("/authors/:id", authorHandler.Update, authMw.RequireAuth)
	api.DELETE("/authors/:id", authorHandler.Delete, authMw.RequireAuth)

	api.GET("/position-schemas", schemaHandler.List, authMw.OptionalAuth)
	api.GET("/position-schemas/:id", schemaHandler.Get, authMw.RequireAuth)
	api.POST("/position-schemas", schemaHandler.Create, authMw.RequireAuth)
	api.PUT("/position-schemas/:id", schemaHandler.Update, authMw.RequireAuth)
	api.DELETE("/position-schemas/:id", schemaHandler.Delete, authMw.RequireAuth)

	api.GET("/items/:id/positions", positionHandler.ListByItem, authMw.RequireAuth)
	api.POST("/items/:id/positions", positionHandler.Create, authMw.RequireAuth)
	api.PUT("/items/:id/positions/:positionId", positionHandler.Update, authMw.RequireAuth)
	api.DELETE("/items/:id/positions/:positionId", positionHandler.Delete, authMw.RequireAuth)

	api.GET("/items/:id/contents", contentHandler.ListByItem, authMw.RequireAuth)
	api.POST("/items/:id/contents", contentHandler.Create, authMw.RequireAuth)
	api.PUT("/items/:id/contents/:contentId", contentHandler.Update, authMw.RequireAuth)
	api.DELETE("/items/:id/contents/:contentId", contentHandler.Delete, authMw.RequireAuth)

	api.GET("/items/:id/whitelist", whitelistHandler.List, authMw.RequireAuth)
	api.POST("/items/:id/whitelist", whitelistHandler.Add, authMw.RequireAuth)
	api.DELETE("/items/:id/whitelist/:entryId", whitelistHandler.Remove, authMw.RequireAuth)

	api.GET("/items/:id/stock", stockHandler.List, authMw.RequireAuth)
	api.POST("/items/:id/stock", stockHandler.Add, authMw.RequireAuth)
	api.DELETE("/items/:id/stock/:entryId", stockHandler.Delete, authMw.RequireAuth)

	api.POST("/uploads/presign", uploadHandler.Presign, authMw.RequireAuth)
	api.DELETE("/uploads/:id", uploadHandler.Delete, authMw.RequireAuth)

	api.GET("/account/delete", accountHandler.DeletionStatus, authMw.RequireAuth)
	api.POST("/account/delete", accountHandler.RequestDeletion, authMw.RequireAuth)
	api.DELETE("/account/delete", accountHandler.CancelDeletion, authMw.RequireAuth)
	api.POST("/account/delete/callback", accountHandler.DeletionCallback, appmw.RequireSchedulerToken(cfg.SchedulerSecret))

	return &Server{e: e, sha: sha, build: buildTime}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}
