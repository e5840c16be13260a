package service

import (
	"context"
	"testing"

	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestDeleteItemCascades(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := ident("alice", "alice@example.com")

	item := env.createItem(t, owner, "camera bag", model.VisibilityPrivate)
	child, err := env.items.Create(ctx, owner, ItemInput{Title: "strap", ParentID: &item.ID})
	require.NoError(t, err)

	require.NoError(t, env.contentRepo.Create(ctx, &model.Content{ItemID: item.ID, Type: model.ContentTypeImage, Data: datatypes.JSONMap{"k": "v"}}))
	require.NoError(t, env.stockRepo.Create(ctx, &model.StockHistory{OwnerUserID: "alice", ItemID: item.ID, Quantity: 2}))
	require.NoError(t, env.whitelistRepo.Create(ctx, &model.ItemWhitelist{ItemID: item.ID, Email: "friend@example.com"}))

	schema := model.PositionSchema{OwnerUserID: "alice", Name: "shelf", Schema: datatypes.JSONMap{"row": "string"}}
	require.NoError(t, env.schemaRepo.Create(ctx, &schema))
	require.NoError(t, env.positionRepo.Create(ctx, &model.Position{OwnerUserID: "alice", ItemID: item.ID, PositionSchemaID: schema.ID, Data: datatypes.JSONMap{"row": "3"}}))

	file := model.UploadFile{OwnerUserID: "alice", ItemID: &item.ID, Key: "uploads/alice/photo.jpg", Filename: "photo.jpg", ContentType: "image/jpeg", Size: 100}
	require.NoError(t, env.uploadRepo.Create(ctx, &file))

	require.NoError(t, env.deletions.DeleteItem(ctx, item.ID))

	assert.Equal(t, int64(0), count[model.Item](t, env.db, "id = ?", item.ID))
	assert.Equal(t, int64(0), count[model.Content](t, env.db, "item_id = ?", item.ID))
	assert.Equal(t, int64(0), count[model.StockHistory](t, env.db, "item_id = ?", item.ID))
	assert.Equal(t, int64(0), count[model.ItemWhitelist](t, env.db, "item_id = ?", item.ID))
	assert.Equal(t, int64(0), count[model.Position](t, env.db, "item_id = ?", item.ID))
	assert.Equal(t, int64(0), count[model.UploadFile](t, env.db, "item_id = ?", item.ID))
	assert.Contains(t, env.store.deleted, "uploads/alice/photo.jpg")

	// Children survive, detached from the deleted parent.
	got, err := env.itemRepo.FindByID(ctx, child.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	// Rerunning the cascade after the rows are gone is a no-op.
	require.NoError(t, env.deletions.DeleteItem(ctx, item.ID))
}

func TestDeleteAccountWipesOnlyThatOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")
	bob := ident("bob", "bob@example.com")

	aliceItem := env.createItem(t, alice, "camera", model.VisibilityPrivate)
	env.createItem(t, bob, "lens", model.VisibilityPublic)

	cat, err := env.categories.Create(ctx, alice, "photo gear", nil)
	require.NoError(t, err)
	require.NoError(t, env.whitelistRepo.Create(ctx, &model.ItemWhitelist{ItemID: aliceItem.ID, Email: "friend@example.com"}))
	require.NoError(t, env.uploadRepo.Create(ctx, &model.UploadFile{OwnerUserID: "alice", Key: "uploads/alice/a.jpg", Filename: "a.jpg", ContentType: "image/jpeg", Size: 10}))

	require.NoError(t, env.deletions.DeleteAccount(ctx, "alice"))

	assert.Equal(t, int64(0), count[model.Item](t, env.db, "owner_user_id = ?", "alice"))
	assert.Equal(t, int64(0), count[model.Category](t, env.db, "id = ?", cat.ID))
	assert.Equal(t, int64(0), count[model.ItemWhitelist](t, env.db, "item_id = ?", aliceItem.ID))
	assert.Equal(t, int64(0), count[model.UploadFile](t, env.db, "owner_user_id = ?", "alice"))
	assert.Contains(t, env.store.deleted, "uploads/alice/a.jpg")

	assert.Equal(t, int64(1), count[model.Item](t, env.db, "owner_user_id = ?", "bob"))
}

func TestAccountDeletionStateMachine(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	_, err := env.deletions.RequestAccountDeletion(ctx, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	req, err := env.deletions.RequestAccountDeletion(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, model.AccountDeletionStatusPending, req.Status)
	require.NotNil(t, req.ExternalJobRef)

	// Only one pending request per user.
	_, err = env.deletions.RequestAccountDeletion(ctx, alice)
	assert.ErrorIs(t, err, ErrConflict)

	status, err := env.deletions.AccountDeletionStatus(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, req.ID, status.ID)

	cancelled, err := env.deletions.CancelAccountDeletion(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, model.AccountDeletionStatusCancelled, cancelled.Status)

	_, err = env.deletions.AccountDeletionStatus(ctx, alice)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.deletions.CancelAccountDeletion(ctx, alice)
	assert.ErrorIs(t, err, ErrConflict)

	// A cancelled request does not block a new one.
	_, err = env.deletions.RequestAccountDeletion(ctx, alice)
	require.NoError(t, err)
}

func TestCompleteAccountDeletion(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")
	env.createItem(t, alice, "camera", model.VisibilityPrivate)

	req, err := env.deletions.RequestAccountDeletion(ctx, alice)
	require.NoError(t, err)

	err = env.deletions.CompleteAccountDeletion(ctx, "alice", "wrong-ref")
	assert.ErrorIs(t, err, ErrConflict)

	require.NoError(t, env.deletions.CompleteAccountDeletion(ctx, "alice", *req.ExternalJobRef))

	assert.Equal(t, int64(0), count[model.Item](t, env.db, "owner_user_id = ?", "alice"))
	assert.Equal(t, int64(1), count[model.AccountDeletion](t, env.db, "user_id = ? AND status = ?", "alice", model.AccountDeletionStatusCompleted))

	// Nothing pending remains, so the callback cannot run twice.
	err = env.deletions.CompleteAccountDeletion(ctx, "alice", *req.ExternalJobRef)
	assert.ErrorIs(t, err, ErrConflict)
}
