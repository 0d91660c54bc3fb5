package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// CoreSimulator es el contrato del motor de simulación del ledger. El
// fixture lo trata como caja negra: activa cuentas, siembra balances y lee
// por el camino normal de lectura.
type CoreSimulator interface {
	// SetUseRealReads controla si las lecturas no mockeadas caen al
	// snapshot remoto. Arranca activado; en modo offline se desactiva.
	SetUseRealReads(enabled bool)

	// ActivateAccount marca la cuenta como participante conocido.
	// Es precondición de cualquier mutación de balance.
	ActivateAccount(addr common.Address) error

	// SeedSpotBalance fija el balance spot de la cuenta para el token dado.
	SeedSpotBalance(addr common.Address, tokenIndex uint32, amount uint64) error

	// SeedMarginBalance fija el balance de margen perp de la cuenta.
	SeedMarginBalance(addr common.Address, amount uint64) error

	// SpotBalance lee el balance spot por el camino normal de lectura.
	SpotBalance(ctx context.Context, addr common.Address, tokenIndex uint32) (uint64, error)

	// MarginBalance lee el balance de margen por el camino normal de lectura.
	MarginBalance(ctx context.Context, addr common.Address) (uint64, error)

	// Close libera los recursos del handle (conexión remota incluida).
	Close() error
}
