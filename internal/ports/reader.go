package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// RemoteReader resuelve lecturas de estado contra el snapshot de la red real.
// Solo se usa en modo fork, para estado que el core no tiene mockeado.
type RemoteReader interface {
	// SpotBalance lee el balance spot desde el precompile del snapshot.
	SpotBalance(ctx context.Context, addr common.Address, tokenIndex uint32) (uint64, error)

	// MarginBalance lee el margen retirable desde el precompile del snapshot.
	MarginBalance(ctx context.Context, addr common.Address) (uint64, error)

	// Endpoint devuelve el endpoint RPC al que está anclado el snapshot.
	Endpoint() string

	// Close cierra la conexión RPC.
	Close() error
}

// ReadCache persiste lecturas remotas para que runs repetidos contra el
// mismo snapshot no vuelvan a ir a la red.
type ReadCache interface {
	// Get devuelve el valor cacheado para (endpoint, cuenta, slot) y si existía.
	Get(ctx context.Context, endpoint string, addr common.Address, slot string) (uint64, bool, error)

	// Put guarda o reemplaza el valor para (endpoint, cuenta, slot).
	Put(ctx context.Context, endpoint string, addr common.Address, slot string, value uint64, runID string) error

	// Close cierra la base de datos limpiamente.
	Close() error
}
