package hypercore

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endix-foundation/hyper-evm-lib/internal/domain"
)

var testAddr = common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266")

// stubReader answers remote reads with fixed values and counts calls.
type stubReader struct {
	spot   uint64
	margin uint64
	err    error
	calls  int
}

func (r *stubReader) SpotBalance(context.Context, common.Address, uint32) (uint64, error) {
	r.calls++
	return r.spot, r.err
}

func (r *stubReader) MarginBalance(context.Context, common.Address) (uint64, error) {
	r.calls++
	return r.margin, r.err
}

func (r *stubReader) Endpoint() string { return "stub" }
func (r *stubReader) Close() error     { return nil }

func TestActivateAccount_ZeroAddress(t *testing.T) {
	core := New(nil)
	err := core.ActivateAccount(common.Address{})
	assert.ErrorIs(t, err, ErrZeroAddress)
}

func TestActivateAccount_Idempotent(t *testing.T) {
	core := New(nil)
	require.NoError(t, core.ActivateAccount(testAddr))
	require.NoError(t, core.SeedMarginBalance(testAddr, 123))

	// Re-activar no borra el estado ya sembrado.
	require.NoError(t, core.ActivateAccount(testAddr))

	v, err := core.MarginBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(123), v)
}

func TestSeed_RequiresActivation(t *testing.T) {
	core := New(nil)

	err := core.SeedSpotBalance(testAddr, domain.USDC.Index, 1)
	assert.ErrorIs(t, err, ErrNotActivated)

	err = core.SeedMarginBalance(testAddr, 1)
	assert.ErrorIs(t, err, ErrNotActivated)
}

func TestSeedSpotBalance_UnknownToken(t *testing.T) {
	core := New(nil)
	require.NoError(t, core.ActivateAccount(testAddr))

	err := core.SeedSpotBalance(testAddr, 9999, 1)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestReads_OfflineUnmockedIsDeterministicZero(t *testing.T) {
	core := New(nil)
	core.SetUseRealReads(false)

	spot, err := core.SpotBalance(context.Background(), testAddr, domain.USDC.Index)
	require.NoError(t, err)
	assert.Zero(t, spot)

	margin, err := core.MarginBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Zero(t, margin)
}

func TestReads_SeededValueWinsOverRemote(t *testing.T) {
	reader := &stubReader{spot: 999, margin: 999}
	core := New(reader)

	require.NoError(t, core.ActivateAccount(testAddr))
	require.NoError(t, core.SeedSpotBalance(testAddr, domain.USDC.Index, 55))
	require.NoError(t, core.SeedMarginBalance(testAddr, 66))

	spot, err := core.SpotBalance(context.Background(), testAddr, domain.USDC.Index)
	require.NoError(t, err)
	assert.Equal(t, uint64(55), spot)

	margin, err := core.MarginBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(66), margin)

	assert.Zero(t, reader.calls)
}

func TestReads_UnmockedFallsBackToRemote(t *testing.T) {
	reader := &stubReader{spot: 777, margin: 888}
	core := New(reader) // useRealReads arranca activado

	spot, err := core.SpotBalance(context.Background(), testAddr, domain.HYPE.Index)
	require.NoError(t, err)
	assert.Equal(t, uint64(777), spot)

	margin, err := core.MarginBalance(context.Background(), testAddr)
	require.NoError(t, err)
	assert.Equal(t, uint64(888), margin)

	assert.Equal(t, 2, reader.calls)
}

func TestReads_DisablingRealReadsStopsFallback(t *testing.T) {
	reader := &stubReader{spot: 777}
	core := New(reader)
	core.SetUseRealReads(false)

	spot, err := core.SpotBalance(context.Background(), testAddr, domain.HYPE.Index)
	require.NoError(t, err)
	assert.Zero(t, spot)
	assert.Zero(t, reader.calls)
}

func TestReads_RemoteErrorPropagates(t *testing.T) {
	reader := &stubReader{err: errors.New("snapshot unavailable")}
	core := New(reader)

	_, err := core.SpotBalance(context.Background(), testAddr, domain.USDC.Index)
	require.Error(t, err)
	assert.ErrorIs(t, err, reader.err)
}

// Mockear explícitamente cero es distinto de no mockear: no va a la red.
func TestReads_SeededZeroDoesNotFallBack(t *testing.T) {
	reader := &stubReader{spot: 777}
	core := New(reader)

	require.NoError(t, core.ActivateAccount(testAddr))
	require.NoError(t, core.SeedSpotBalance(testAddr, domain.USDC.Index, 0))

	spot, err := core.SpotBalance(context.Background(), testAddr, domain.USDC.Index)
	require.NoError(t, err)
	assert.Zero(t, spot)
	assert.Zero(t, reader.calls)
}

func TestClose_ClosesReader(t *testing.T) {
	core := New(nil)
	assert.NoError(t, core.Close())
}
