package remote

// client.go — JSON-RPC reader for HyperCore precompiles in fork mode.
//
// Dial pins the snapshot: it verifies the endpoint with an eth_chainId
// round-trip and captures the current block number, so every later read is
// answered at the same height for the life of the fixture. Reads go through
// eth_call against the read precompiles:
//   - 0x...0801 spotBalance(address, uint64 token)
//   - 0x...0803 withdrawable(address)

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"golang.org/x/time/rate"

	"github.com/endix-foundation/hyper-evm-lib/internal/ports"
)

var (
	spotBalancePrecompile  = common.HexToAddress("0x0000000000000000000000000000000000000801")
	withdrawablePrecompile = common.HexToAddress("0x0000000000000000000000000000000000000803")
)

const (
	// Rate limit conservador para el RPC público de HyperEVM.
	readsPerSec = 20

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client implements ports.RemoteReader over an ethclient bound to one
// endpoint and one pinned block.
type Client struct {
	ec       *ethclient.Client
	endpoint string
	limiter  *rate.Limiter
	chainID  *big.Int
	block    *big.Int // snapshot height pinned at dial time
}

var _ ports.RemoteReader = (*Client)(nil)

// Dial opens the fork connection. Any failure here — unreachable endpoint,
// failed chainId probe, failed head fetch — is a fatal connection failure
// for the fixture; there is no fallback.
func Dial(ctx context.Context, endpoint string) (*Client, error) {
	rc, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("remote.Dial: dial %q: %w", endpoint, err)
	}
	ec := ethclient.NewClient(rc)

	chainID, err := ec.ChainID(ctx)
	if err != nil {
		ec.Close()
		return nil, fmt.Errorf("remote.Dial: chain id probe %q: %w", endpoint, err)
	}

	head, err := ec.BlockNumber(ctx)
	if err != nil {
		ec.Close()
		return nil, fmt.Errorf("remote.Dial: pin snapshot block %q: %w", endpoint, err)
	}

	return &Client{
		ec:       ec,
		endpoint: endpoint,
		limiter:  rate.NewLimiter(rate.Limit(readsPerSec), readsPerSec),
		chainID:  chainID,
		block:    new(big.Int).SetUint64(head),
	}, nil
}

// Endpoint returns the RPC endpoint the snapshot is pinned to.
func (c *Client) Endpoint() string { return c.endpoint }

// ChainID returns the chain id reported by the endpoint at dial time.
func (c *Client) ChainID() *big.Int { return new(big.Int).Set(c.chainID) }

// BlockNumber returns the pinned snapshot height.
func (c *Client) BlockNumber() *big.Int { return new(big.Int).Set(c.block) }

// SpotBalance reads the spot balance for (addr, token) from the snapshot.
func (c *Client) SpotBalance(ctx context.Context, addr common.Address, tokenIndex uint32) (uint64, error) {
	out, err := c.call(ctx, spotBalancePrecompile, encodeSpotBalanceCall(addr, tokenIndex))
	if err != nil {
		return 0, fmt.Errorf("remote.SpotBalance: %s token %d: %w", addr, tokenIndex, err)
	}
	v, err := decodeUint64Word(out)
	if err != nil {
		return 0, fmt.Errorf("remote.SpotBalance: %s token %d: %w", addr, tokenIndex, err)
	}
	return v, nil
}

// MarginBalance reads the withdrawable perp margin from the snapshot.
func (c *Client) MarginBalance(ctx context.Context, addr common.Address) (uint64, error) {
	out, err := c.call(ctx, withdrawablePrecompile, encodeAddressCall(addr))
	if err != nil {
		return 0, fmt.Errorf("remote.MarginBalance: %s: %w", addr, err)
	}
	v, err := decodeUint64Word(out)
	if err != nil {
		return 0, fmt.Errorf("remote.MarginBalance: %s: %w", addr, err)
	}
	return v, nil
}

// Close closes the underlying RPC connection.
func (c *Client) Close() error {
	c.ec.Close()
	return nil
}

// call runs one rate-limited eth_call at the pinned block, retrying
// transient failures with linear backoff like the rest of our RPC clients.
func (c *Client) call(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := ethereum.CallMsg{To: &to, Data: data}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		out, err := c.ec.CallContract(ctx, msg, c.block)
		if err == nil {
			return out, nil
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(baseRetryWait * time.Duration(attempt+1)):
		}
	}
	return nil, fmt.Errorf("after %d retries: %w", maxRetries, lastErr)
}
