package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// fakeStore stands in for the object store; it records deletes so cascade
// tests can assert on them.
type fakeStore struct {
	deleted []string
	signErr error
}

func (f *fakeStore) SignedUploadURL(_ context.Context, key, _ string) (string, error) {
	return "https://signed.test/put/" + key, nil
}

func (f *fakeStore) SignedDownloadURL(_ context.Context, key string) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://signed.test/get/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

type testEnv struct {
	db    *gorm.DB
	store *fakeStore

	itemRepo      repository.ItemRepository
	categoryRepo  repository.CategoryRepository
	locationRepo  repository.LocationRepository
	authorRepo    repository.AuthorRepository
	schemaRepo    repository.PositionSchemaRepository
	positionRepo  repository.PositionRepository
	contentRepo   repository.ContentRepository
	whitelistRepo repository.WhitelistRepository
	stockRepo     repository.StockHistoryRepository
	uploadRepo    repository.UploadFileRepository

	items      ItemService
	categories CategoryService
	whitelists WhitelistService
	stocks     StockService
	uploads    UploadService
	deletions  *DeletionService
}

func newTestEnv(t *testing.T) *testEnv {
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

	env := &testEnv{
		db:            db,
		store:         &fakeStore{},
		itemRepo:      repository.NewItemRepository(db),
		categoryRepo:  repository.NewCategoryRepository(db),
		locationRepo:  repository.NewLocationRepository(db),
		authorRepo:    repository.NewAuthorRepository(db),
		schemaRepo:    repository.NewPositionSchemaRepository(db),
		positionRepo:  repository.NewPositionRepository(db),
		contentRepo:   repository.NewContentRepository(db),
		whitelistRepo: repository.NewWhitelistRepository(db),
		stockRepo:     repository.NewStockHistoryRepository(db),
		uploadRepo:    repository.NewUploadFileRepository(db),
	}

	cascadeRepo := repository.NewCascadeRepository(db)
	deletionRepo := repository.NewAccountDeletionRepository(db)
	env.deletions = NewDeletionService(env.itemRepo, env.uploadRepo, cascadeRepo, deletionRepo, env.store, 7*24*time.Hour)
	env.items = NewItemService(env.itemRepo, env.categoryRepo, env.locationRepo, env.authorRepo, env.contentRepo, env.whitelistRepo, env.stockRepo, env.uploadRepo, env.store, env.deletions)
	env.categories = NewCategoryService(env.categoryRepo, env.itemRepo)
	env.whitelists = NewWhitelistService(env.whitelistRepo, env.itemRepo)
	env.stocks = NewStockService(env.stockRepo, env.itemRepo)
	env.uploads = NewUploadService(env.uploadRepo, env.store)
	return env
}

func ident(userID, email string) *identity.Identity {
	return &identity.Identity{UserID: userID, Email: email}
}

func (e *testEnv) createItem(t *testing.T, owner *identity.Identity, title string, vis model.Visibility) *model.Item {
	t.Helper()
	item, err := e.items.Create(context.Background(), owner, ItemInput{Title: title, Visibility: vis})
	require.NoError(t, err)
	return item
}

func count[T any](t *testing.T, db *gorm.DB, where string, args ...any) int64 {
	t.Helper()
	var n int64
	var zero T
	require.NoError(t, db.Model(&zero).Where(where, args...).Count(&n).Error)
	return n
}
