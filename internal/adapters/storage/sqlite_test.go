package storage_test

import (
	"context"
	"math"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endix-foundation/hyper-evm-lib/internal/adapters/storage"
)

var acct = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

const endpoint = "http://fork.example:8545"

func TestSQLiteCache_MissThenHit(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	_, ok, err := cache.Get(ctx, endpoint, acct, "spot:0")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Put(ctx, endpoint, acct, "spot:0", 12345, "run-1"))

	v, ok, err := cache.Get(ctx, endpoint, acct, "spot:0")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(12345), v)
}

func TestSQLiteCache_UpsertOverwrites(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, endpoint, acct, "margin", 1, "run-1"))
	require.NoError(t, cache.Put(ctx, endpoint, acct, "margin", 2, "run-2"))

	v, ok, err := cache.Get(ctx, endpoint, acct, "margin")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(2), v)
}

func TestSQLiteCache_KeysAreScoped(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, endpoint, acct, "spot:0", 10, "run-1"))

	// Otro endpoint no ve el valor: snapshots distintos no se mezclan.
	_, ok, err := cache.Get(ctx, "http://other:8545", acct, "spot:0")
	require.NoError(t, err)
	assert.False(t, ok)

	// Otra cuenta tampoco.
	other := common.HexToAddress("0x0000000000000000000000000000000000000001")
	_, ok, err = cache.Get(ctx, endpoint, other, "spot:0")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCache_FullUint64Range(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)
	defer cache.Close()

	ctx := context.Background()

	require.NoError(t, cache.Put(ctx, endpoint, acct, "spot:150", math.MaxUint64, "run-1"))

	v, ok, err := cache.Get(ctx, endpoint, acct, "spot:150")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)
}
