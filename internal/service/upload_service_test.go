package service

import (
	"context"
	"strings"
	"testing"

	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignCreatesRowAndURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	presigned, err := env.uploads.Presign(ctx, alice, "photo.jpg", "image/jpeg", 1024)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(presigned.File.Key, "uploads/alice/"))
	assert.True(t, strings.HasSuffix(presigned.File.Key, ".jpg"))
	assert.Nil(t, presigned.File.ItemID)
	assert.Equal(t, "https://signed.test/put/"+presigned.File.Key, presigned.UploadURL)

	stored, err := env.uploadRepo.FindByID(ctx, presigned.File.ID)
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", stored.Filename)
}

func TestPresignValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	_, err := env.uploads.Presign(ctx, nil, "photo.jpg", "image/jpeg", 10)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = env.uploads.Presign(ctx, alice, "", "image/jpeg", 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.uploads.Presign(ctx, alice, "photo.jpg", "", 10)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.uploads.Presign(ctx, alice, "photo.jpg", "image/jpeg", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.uploads.Presign(ctx, alice, "photo.jpg", "image/jpeg", maxUploadSize+1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUploadDeleteRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	presigned, err := env.uploads.Presign(ctx, alice, "photo.jpg", "image/jpeg", 10)
	require.NoError(t, err)

	err = env.uploads.Delete(ctx, ident("mallory", ""), presigned.File.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	// An attached file cannot be deleted directly.
	item, err := env.items.Create(ctx, alice, ItemInput{Title: "camera", ImageFileIDs: []uint64{presigned.File.ID}})
	require.NoError(t, err)
	err = env.uploads.Delete(ctx, alice, presigned.File.ID)
	assert.ErrorIs(t, err, ErrConflict)

	// Detach, then delete removes the row and the object.
	_, err = env.items.Update(ctx, alice, item.ID, ItemInput{Title: "camera"})
	require.NoError(t, err)
	require.NoError(t, env.uploads.Delete(ctx, alice, presigned.File.ID))
	assert.Contains(t, env.store.deleted, presigned.File.Key)
	assert.Equal(t, int64(0), count[model.UploadFile](t, env.db, "id = ?", presigned.File.ID))
}
