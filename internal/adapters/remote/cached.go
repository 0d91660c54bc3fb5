package remote

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/endix-foundation/hyper-evm-lib/internal/ports"
)

// CachedReader wraps a RemoteReader with a read-through cache, so repeated
// test runs against the same snapshot stop hitting the network. Cache
// errors degrade to a plain remote read: the cache is an optimization,
// never a correctness dependency.
type CachedReader struct {
	inner ports.RemoteReader
	cache ports.ReadCache
	runID string
}

var _ ports.RemoteReader = (*CachedReader)(nil)

// NewCachedReader builds the wrapper. runID tags the rows this run writes.
func NewCachedReader(inner ports.RemoteReader, cache ports.ReadCache, runID string) *CachedReader {
	return &CachedReader{inner: inner, cache: cache, runID: runID}
}

// SpotBalance serves from cache when possible, otherwise reads remotely
// and stores the result.
func (r *CachedReader) SpotBalance(ctx context.Context, addr common.Address, tokenIndex uint32) (uint64, error) {
	return r.readThrough(ctx, addr, fmt.Sprintf("spot:%d", tokenIndex), func() (uint64, error) {
		return r.inner.SpotBalance(ctx, addr, tokenIndex)
	})
}

// MarginBalance serves from cache when possible, otherwise reads remotely
// and stores the result.
func (r *CachedReader) MarginBalance(ctx context.Context, addr common.Address) (uint64, error) {
	return r.readThrough(ctx, addr, "margin", func() (uint64, error) {
		return r.inner.MarginBalance(ctx, addr)
	})
}

// Endpoint returns the wrapped reader's endpoint.
func (r *CachedReader) Endpoint() string { return r.inner.Endpoint() }

// Close closes the remote connection and the cache.
func (r *CachedReader) Close() error {
	err := r.inner.Close()
	if cerr := r.cache.Close(); err == nil {
		err = cerr
	}
	return err
}

func (r *CachedReader) readThrough(ctx context.Context, addr common.Address, slot string, fetch func() (uint64, error)) (uint64, error) {
	endpoint := r.inner.Endpoint()

	if v, ok, err := r.cache.Get(ctx, endpoint, addr, slot); err != nil {
		slog.Warn("remote: cache get failed, reading remotely", "slot", slot, "err", err)
	} else if ok {
		return v, nil
	}

	v, err := fetch()
	if err != nil {
		return 0, err
	}

	if err := r.cache.Put(ctx, endpoint, addr, slot, v, r.runID); err != nil {
		slog.Warn("remote: cache put failed", "slot", slot, "err", err)
	}
	return v, nil
}
