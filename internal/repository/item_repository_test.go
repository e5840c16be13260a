package repository

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/monooki-app/monooki-backend/internal/identity"
	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
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
	return db
}

func createItem(t *testing.T, db *gorm.DB, owner, title string, vis model.Visibility, updatedAt time.Time) *model.Item {
	t.Helper()
	item := model.Item{OwnerUserID: owner, Title: title, Visibility: vis, UpdatedAt: updatedAt}
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func TestItemListScopesToOwner(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	createItem(t, db, "alice", "camera", model.VisibilityPrivate, base)
	createItem(t, db, "alice", "tripod", model.VisibilityPublic, base.Add(time.Minute))
	createItem(t, db, "bob", "lens", model.VisibilityPublic, base.Add(2*time.Minute))

	items, err := repo.List(ctx, &identity.Identity{UserID: "alice"}, ItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	// Most recently updated first.
	assert.Equal(t, "tripod", items[0].Title)
	assert.Equal(t, "camera", items[1].Title)

	items, err = repo.List(ctx, nil, ItemFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "lens", items[0].Title)
	assert.Equal(t, "tripod", items[1].Title)
}

func TestItemListFilters(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()
	alice := &identity.Identity{UserID: "alice"}
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	catID := uint64(7)
	boxed := model.Item{OwnerUserID: "alice", Title: "boxed film", Visibility: model.VisibilityPrivate, CategoryID: &catID, UpdatedAt: base}
	require.NoError(t, db.Create(&boxed).Error)
	createItem(t, db, "alice", "loose film", model.VisibilityPrivate, base.Add(time.Minute))

	items, err := repo.List(ctx, alice, ItemFilter{CategoryID: &catID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "boxed film", items[0].Title)

	items, err = repo.List(ctx, alice, ItemFilter{Search: "loose"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "loose film", items[0].Title)
}

func TestItemListPageWalksInUpdatedAtOrder(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()
	alice := &identity.Identity{UserID: "alice"}
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		createItem(t, db, "alice", "item", model.VisibilityPrivate, base.Add(time.Duration(i)*time.Minute))
	}
	// Another user's rows never leak into the page.
	createItem(t, db, "bob", "intruder", model.VisibilityPublic, base.Add(time.Hour))

	page, err := repo.ListPage(ctx, alice, ItemFilter{}, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, uint64(5), page.Items[0].ID)
	assert.Equal(t, uint64(4), page.Items[1].ID)
	assert.True(t, page.HasNextPage)
	assert.False(t, page.HasPrevPage)

	page, err = repo.ListPage(ctx, alice, ItemFilter{}, pagination.Params{Limit: 2, Cursor: *page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, uint64(3), page.Items[0].ID)
	assert.Equal(t, uint64(2), page.Items[1].ID)

	page, err = repo.ListPage(ctx, alice, ItemFilter{}, pagination.Params{Limit: 2, Cursor: *page.NextCursor})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, uint64(1), page.Items[0].ID)
	assert.False(t, page.HasNextPage)
}

func TestClearCategoryBreaksReferences(t *testing.T) {
	db := openTestDB(t)
	repo := NewItemRepository(db)
	ctx := context.Background()
	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	catID := uint64(3)
	tagged := model.Item{OwnerUserID: "alice", Title: "tagged", Visibility: model.VisibilityPrivate, CategoryID: &catID, UpdatedAt: base}
	require.NoError(t, db.Create(&tagged).Error)

	require.NoError(t, repo.ClearCategory(ctx, catID))

	got, err := repo.FindByID(ctx, tagged.ID)
	require.NoError(t, err)
	assert.Nil(t, got.CategoryID)
}
