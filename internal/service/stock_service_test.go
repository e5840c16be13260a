package service

import (
	"context"
	"testing"

	"github.com/monooki-app/monooki-backend/internal/model"
	"github.com/monooki-app/monooki-backend/internal/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockQuantityIsDerivedFromDeltas(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := ident("alice", "alice@example.com")
	item := env.createItem(t, owner, "film rolls", model.VisibilityPrivate)

	note := "restock"
	_, err := env.stocks.Add(ctx, owner, item.ID, 5, &note)
	require.NoError(t, err)
	_, err = env.stocks.Add(ctx, owner, item.ID, -2, nil)
	require.NoError(t, err)
	_, err = env.stocks.Add(ctx, owner, item.ID, 1, nil)
	require.NoError(t, err)

	history, qty, err := env.stocks.List(ctx, owner, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), qty)
	assert.Len(t, history, 3)
}

func TestStockDeleteRecomputesQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := ident("alice", "alice@example.com")
	item := env.createItem(t, owner, "film rolls", model.VisibilityPrivate)

	first, err := env.stocks.Add(ctx, owner, item.ID, 5, nil)
	require.NoError(t, err)
	_, err = env.stocks.Add(ctx, owner, item.ID, -2, nil)
	require.NoError(t, err)

	require.NoError(t, env.stocks.Delete(ctx, owner, first.ID))

	qty, err := env.stocks.Quantity(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(-2), qty)
}

func TestStockPageCarriesQuantity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := ident("alice", "alice@example.com")
	item := env.createItem(t, owner, "film rolls", model.VisibilityPrivate)

	for _, q := range []int{3, 4, -1, 2} {
		_, err := env.stocks.Add(ctx, owner, item.ID, q, nil)
		require.NoError(t, err)
	}

	page, err := env.stocks.ListPage(ctx, owner, item.ID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, page.Page.Items, 2)
	assert.True(t, page.Page.HasNextPage)
	assert.Equal(t, int64(8), page.Quantity)
}

func TestStockIsOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := ident("alice", "alice@example.com")
	// Public visibility does not open the stock ledger.
	item := env.createItem(t, owner, "film rolls", model.VisibilityPublic)

	_, _, err := env.stocks.List(ctx, ident("mallory", ""), item.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = env.stocks.Add(ctx, nil, item.ID, 1, nil)
	assert.ErrorIs(t, err, ErrUnauthorized)

	entry, err := env.stocks.Add(ctx, owner, item.ID, 1, nil)
	require.NoError(t, err)
	err = env.stocks.Delete(ctx, ident("mallory", ""), entry.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}
