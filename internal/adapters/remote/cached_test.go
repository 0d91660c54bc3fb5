package remote_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endix-foundation/hyper-evm-lib/internal/adapters/remote"
	"github.com/endix-foundation/hyper-evm-lib/internal/adapters/storage"
)

var acct = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// countingReader cuenta cuántas lecturas llegan realmente al "snapshot".
type countingReader struct {
	spot   uint64
	margin uint64
	err    error
	calls  int
}

func (r *countingReader) SpotBalance(context.Context, common.Address, uint32) (uint64, error) {
	r.calls++
	return r.spot, r.err
}

func (r *countingReader) MarginBalance(context.Context, common.Address) (uint64, error) {
	r.calls++
	return r.margin, r.err
}

func (r *countingReader) Endpoint() string { return "http://fork.example:8545" }
func (r *countingReader) Close() error     { return nil }

func TestCachedReader_SecondReadServedFromCache(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)

	inner := &countingReader{spot: 123, margin: 456}
	reader := remote.NewCachedReader(inner, cache, "run-1")
	defer reader.Close()

	ctx := context.Background()

	v, err := reader.SpotBalance(ctx, acct, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), v)
	assert.Equal(t, 1, inner.calls)

	// Segunda lectura: mismo valor, sin tocar la red.
	v, err = reader.SpotBalance(ctx, acct, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), v)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedReader_SlotsAreIndependent(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)

	inner := &countingReader{spot: 1, margin: 2}
	reader := remote.NewCachedReader(inner, cache, "run-1")
	defer reader.Close()

	ctx := context.Background()

	_, err = reader.SpotBalance(ctx, acct, 0)
	require.NoError(t, err)
	_, err = reader.SpotBalance(ctx, acct, 150)
	require.NoError(t, err)
	_, err = reader.MarginBalance(ctx, acct)
	require.NoError(t, err)

	// Tres slots distintos → tres lecturas remotas.
	assert.Equal(t, 3, inner.calls)
}

func TestCachedReader_RemoteErrorNotCached(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)

	inner := &countingReader{err: errors.New("snapshot unavailable")}
	reader := remote.NewCachedReader(inner, cache, "run-1")
	defer reader.Close()

	ctx := context.Background()

	_, err = reader.SpotBalance(ctx, acct, 0)
	require.Error(t, err)

	// El error no dejó nada en cache: el siguiente intento vuelve a la red.
	inner.err = nil
	inner.spot = 9
	v, err := reader.SpotBalance(ctx, acct, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), v)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedReader_Endpoint(t *testing.T) {
	cache, err := storage.NewSQLiteCache(":memory:")
	require.NoError(t, err)

	reader := remote.NewCachedReader(&countingReader{}, cache, "run-1")
	defer reader.Close()

	assert.Equal(t, "http://fork.example:8545", reader.Endpoint())
}
