package fixture

import "github.com/endix-foundation/hyper-evm-lib/internal/domain"

// defaultEndpoint es el RPC público de HyperEVM usado en modo fork cuando
// la configuración no trae override.
const defaultEndpoint = "https://rpc.hyperliquid.xyz/evm"

// Options son los knobs de configuración que el selector de modo consume.
// El cmd los mapea desde config.Config; los tests los construyen a mano.
type Options struct {
	ForkMode bool
	RPCURL   string
	CacheDSN string // cache SQLite de lecturas fork; "" lo desactiva
}

// SelectStrategy deriva la estrategia de inicialización desde configuración.
// Es una función pura: sin efectos observables más allá del valor devuelto.
// Flag apagado → offline (el endpoint es irrelevante). Flag encendido →
// fork con el override si existe, o el endpoint por defecto.
func SelectStrategy(opts Options) domain.InitStrategy {
	if !opts.ForkMode {
		return domain.InitStrategy{Mode: domain.ModeOffline}
	}

	endpoint := opts.RPCURL
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	return domain.InitStrategy{Mode: domain.ModeFork, Endpoint: endpoint}
}
