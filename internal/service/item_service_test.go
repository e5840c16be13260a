package service

import (
	"context"
	"testing"

	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCreateDefaultsAndValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	item, err := env.items.Create(ctx, alice, ItemInput{Title: "  vintage camera  "})
	require.NoError(t, err)
	assert.Equal(t, "vintage camera", item.Title)
	assert.Equal(t, "JPY", item.Currency)
	assert.Equal(t, model.VisibilityPrivate, item.Visibility)

	_, err = env.items.Create(ctx, alice, ItemInput{Title: "   "})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.items.Create(ctx, alice, ItemInput{Title: "x", Visibility: "secret"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = env.items.Create(ctx, nil, ItemInput{Title: "x"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestItemCreateRejectsForeignLookupReferences(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")
	bob := ident("bob", "bob@example.com")

	bobCat, err := env.categories.Create(ctx, bob, "bob gear", nil)
	require.NoError(t, err)

	_, err = env.items.Create(ctx, alice, ItemInput{Title: "camera", CategoryID: &bobCat.ID})
	assert.ErrorIs(t, err, ErrValidation)

	missing := uint64(9999)
	_, err = env.items.Create(ctx, alice, ItemInput{Title: "camera", CategoryID: &missing})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestItemGetVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := ident("alice", "alice@example.com")

	private := env.createItem(t, owner, "private camera", model.VisibilityPrivate)
	public := env.createItem(t, owner, "public tripod", model.VisibilityPublic)

	// Owner always sees their own rows.
	_, err := env.items.Get(ctx, owner, private.ID)
	require.NoError(t, err)

	// Anyone, including anonymous, may fetch a public item by id.
	_, err = env.items.Get(ctx, nil, public.ID)
	require.NoError(t, err)
	_, err = env.items.Get(ctx, ident("mallory", "m@example.com"), public.ID)
	require.NoError(t, err)

	// An existing but invisible row is forbidden, never not-found.
	_, err = env.items.Get(ctx, ident("mallory", "m@example.com"), private.ID)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.items.Get(ctx, nil, private.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.items.Get(ctx, owner, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestItemGetWhitelistOpensPrivateItem(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := ident("alice", "alice@example.com")
	private := env.createItem(t, owner, "private camera", model.VisibilityPrivate)

	_, err := env.whitelists.Add(ctx, owner, private.ID, "friend@example.com")
	require.NoError(t, err)

	// The caller's email matches case-insensitively.
	friend := ident("friend-uid", "Friend@Example.com")
	detail, err := env.items.Get(ctx, friend, private.ID)
	require.NoError(t, err)
	assert.Equal(t, private.ID, detail.Item.ID)

	// The whitelist grants that one item only.
	other := env.createItem(t, owner, "other private", model.VisibilityPrivate)
	_, err = env.items.Get(ctx, friend, other.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestItemParentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")
	bob := ident("bob", "bob@example.com")

	a := env.createItem(t, alice, "shelf", model.VisibilityPrivate)
	b, err := env.items.Create(ctx, alice, ItemInput{Title: "box", ParentID: &a.ID})
	require.NoError(t, err)

	// Self-parenting.
	_, err = env.items.Update(ctx, alice, a.ID, ItemInput{Title: "shelf", ParentID: &a.ID})
	assert.ErrorIs(t, err, ErrValidation)

	// a -> b -> a would be a cycle.
	_, err = env.items.Update(ctx, alice, a.ID, ItemInput{Title: "shelf", ParentID: &b.ID})
	assert.ErrorIs(t, err, ErrValidation)

	// Another user's item cannot be a parent.
	bobItem := env.createItem(t, bob, "bob shelf", model.VisibilityPublic)
	_, err = env.items.Update(ctx, alice, b.ID, ItemInput{Title: "box", ParentID: &bobItem.ID})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestItemImageAssociation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	f1 := model.UploadFile{OwnerUserID: "alice", Key: "uploads/alice/1.jpg", Filename: "1.jpg", ContentType: "image/jpeg", Size: 10}
	f2 := model.UploadFile{OwnerUserID: "alice", Key: "uploads/alice/2.jpg", Filename: "2.jpg", ContentType: "image/jpeg", Size: 10}
	require.NoError(t, env.uploadRepo.Create(ctx, &f1))
	require.NoError(t, env.uploadRepo.Create(ctx, &f2))

	item, err := env.items.Create(ctx, alice, ItemInput{Title: "camera", ImageFileIDs: []uint64{f2.ID, f1.ID}})
	require.NoError(t, err)

	images, err := env.uploadRepo.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, images, 2)
	// Request order becomes sort order.
	assert.Equal(t, f2.ID, images[0].ID)
	assert.Equal(t, f1.ID, images[1].ID)

	// Dropping a file from the list detaches it but keeps the row.
	_, err = env.items.Update(ctx, alice, item.ID, ItemInput{Title: "camera", ImageFileIDs: []uint64{f1.ID}})
	require.NoError(t, err)
	images, err = env.uploadRepo.ListByItem(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, images, 1)
	assert.Equal(t, f1.ID, images[0].ID)

	detached, err := env.uploadRepo.FindByID(ctx, f2.ID)
	require.NoError(t, err)
	assert.Nil(t, detached.ItemID)
}

func TestItemImageValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	bobFile := model.UploadFile{OwnerUserID: "bob", Key: "uploads/bob/1.jpg", Filename: "1.jpg", ContentType: "image/jpeg", Size: 10}
	require.NoError(t, env.uploadRepo.Create(ctx, &bobFile))

	_, err := env.items.Create(ctx, alice, ItemInput{Title: "camera", ImageFileIDs: []uint64{bobFile.ID}})
	assert.ErrorIs(t, err, ErrValidation)

	f := model.UploadFile{OwnerUserID: "alice", Key: "uploads/alice/1.jpg", Filename: "1.jpg", ContentType: "image/jpeg", Size: 10}
	require.NoError(t, env.uploadRepo.Create(ctx, &f))
	first, err := env.items.Create(ctx, alice, ItemInput{Title: "camera", ImageFileIDs: []uint64{f.ID}})
	require.NoError(t, err)
	require.NotNil(t, first)

	// The file is now attached to the first item.
	_, err = env.items.Create(ctx, alice, ItemInput{Title: "another", ImageFileIDs: []uint64{f.ID}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestItemDetailIncludesDerivedFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")

	cat, err := env.categories.Create(ctx, alice, "cameras", nil)
	require.NoError(t, err)

	f := model.UploadFile{OwnerUserID: "alice", Key: "uploads/alice/cover.jpg", Filename: "cover.jpg", ContentType: "image/jpeg", Size: 10}
	require.NoError(t, env.uploadRepo.Create(ctx, &f))

	item, err := env.items.Create(ctx, alice, ItemInput{Title: "camera", CategoryID: &cat.ID, ImageFileIDs: []uint64{f.ID}})
	require.NoError(t, err)
	_, err = env.stocks.Add(ctx, alice, item.ID, 3, nil)
	require.NoError(t, err)
	_, err = env.items.Create(ctx, alice, ItemInput{Title: "lens cap", ParentID: &item.ID})
	require.NoError(t, err)

	detail, err := env.items.Get(ctx, alice, item.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.Category)
	assert.Equal(t, "cameras", detail.Category.Name)
	assert.Equal(t, int64(3), detail.Quantity)
	assert.Len(t, detail.Children, 1)
	require.NotNil(t, detail.PreviewURL)
	assert.Equal(t, "https://signed.test/get/uploads/alice/cover.jpg", *detail.PreviewURL)
}

func TestItemDeleteRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	alice := ident("alice", "alice@example.com")
	item := env.createItem(t, alice, "camera", model.VisibilityPublic)

	err := env.items.Delete(ctx, ident("mallory", ""), item.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	err = env.items.Delete(ctx, nil, item.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	require.NoError(t, env.items.Delete(ctx, alice, item.ID))
	_, err = env.items.Get(ctx, alice, item.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
