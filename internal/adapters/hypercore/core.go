package hypercore

// core.go — In-memory HyperCore ledger simulator.
//
// Behaves like a simulated backend for tests: balances live in a local map,
// mutations require prior account activation, and reads for state the test
// never mocked either fall back to the fork snapshot (useRealReads, fork
// mode) or synthesize a deterministic zero (offline mode).

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/endix-foundation/hyper-evm-lib/internal/domain"
	"github.com/endix-foundation/hyper-evm-lib/internal/ports"
)

var (
	// ErrNotActivated is returned when a balance mutation targets an
	// account that was never activated.
	ErrNotActivated = errors.New("hypercore: account not activated")

	// ErrUnknownToken is returned for token indexes outside the fixed table.
	ErrUnknownToken = errors.New("hypercore: unknown token index")

	// ErrZeroAddress is returned for the zero address, which the core
	// never tracks.
	ErrZeroAddress = errors.New("hypercore: zero address")
)

// accountState holds the locally mocked balances of one activated account.
// seededSpot distinguishes "mocked as zero" from "never mocked": only the
// latter may fall back to the remote snapshot.
type accountState struct {
	spot         map[uint32]uint64
	seededSpot   map[uint32]bool
	margin       uint64
	seededMargin bool
}

// Core implements ports.CoreSimulator. One instance per test, exclusively
// owned by that test's setup; the mutex only guards against accidental
// cross-goroutine use inside a single test.
type Core struct {
	mu           sync.Mutex
	accounts     map[common.Address]*accountState
	useRealReads bool
	reader       ports.RemoteReader // nil in offline mode
}

var _ ports.CoreSimulator = (*Core)(nil)

// New builds a core bound to the given remote reader. reader is nil for
// offline mode. useRealReads starts enabled, matching the fork-mode default.
func New(reader ports.RemoteReader) *Core {
	return &Core{
		accounts:     make(map[common.Address]*accountState),
		useRealReads: true,
		reader:       reader,
	}
}

// SetUseRealReads toggles the remote fallback for unmocked reads.
func (c *Core) SetUseRealReads(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.useRealReads = enabled
}

// ActivateAccount marks the address as a tracked participant. Activating an
// already-active account is a no-op.
func (c *Core) ActivateAccount(addr common.Address) error {
	if addr == (common.Address{}) {
		return fmt.Errorf("hypercore.ActivateAccount: %w", ErrZeroAddress)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.accounts[addr]; !ok {
		c.accounts[addr] = &accountState{
			spot:       make(map[uint32]uint64),
			seededSpot: make(map[uint32]bool),
		}
	}
	return nil
}

// SeedSpotBalance mocks the spot balance for the given token. The account
// must be activated first and the token must exist in the fixed table.
func (c *Core) SeedSpotBalance(addr common.Address, tokenIndex uint32, amount uint64) error {
	if !domain.KnownTokenIndex(tokenIndex) {
		return fmt.Errorf("hypercore.SeedSpotBalance: index %d: %w", tokenIndex, ErrUnknownToken)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.accounts[addr]
	if !ok {
		return fmt.Errorf("hypercore.SeedSpotBalance: %s: %w", addr, ErrNotActivated)
	}
	state.spot[tokenIndex] = amount
	state.seededSpot[tokenIndex] = true
	return nil
}

// SeedMarginBalance mocks the perp margin balance of the account.
func (c *Core) SeedMarginBalance(addr common.Address, amount uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	state, ok := c.accounts[addr]
	if !ok {
		return fmt.Errorf("hypercore.SeedMarginBalance: %s: %w", addr, ErrNotActivated)
	}
	state.margin = amount
	state.seededMargin = true
	return nil
}

// SpotBalance answers through the normal read path: mocked state wins,
// unmocked state goes remote when real reads are enabled, and is a
// deterministic zero otherwise.
func (c *Core) SpotBalance(ctx context.Context, addr common.Address, tokenIndex uint32) (uint64, error) {
	c.mu.Lock()
	if state, ok := c.accounts[addr]; ok && state.seededSpot[tokenIndex] {
		v := state.spot[tokenIndex]
		c.mu.Unlock()
		return v, nil
	}
	fallback := c.useRealReads && c.reader != nil
	c.mu.Unlock()

	if fallback {
		v, err := c.reader.SpotBalance(ctx, addr, tokenIndex)
		if err != nil {
			return 0, fmt.Errorf("hypercore.SpotBalance: remote read: %w", err)
		}
		return v, nil
	}
	return 0, nil
}

// MarginBalance mirrors SpotBalance for the perp margin.
func (c *Core) MarginBalance(ctx context.Context, addr common.Address) (uint64, error) {
	c.mu.Lock()
	if state, ok := c.accounts[addr]; ok && state.seededMargin {
		v := state.margin
		c.mu.Unlock()
		return v, nil
	}
	fallback := c.useRealReads && c.reader != nil
	c.mu.Unlock()

	if fallback {
		v, err := c.reader.MarginBalance(ctx, addr)
		if err != nil {
			return 0, fmt.Errorf("hypercore.MarginBalance: remote read: %w", err)
		}
		return v, nil
	}
	return 0, nil
}

// Close releases the remote connection, if any.
func (c *Core) Close() error {
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
