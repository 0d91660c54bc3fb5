package fixture

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/endix-foundation/hyper-evm-lib/internal/domain"
	"github.com/endix-foundation/hyper-evm-lib/internal/ports"
)

// DialFunc abre la conexión fork contra el endpoint dado. Es el único paso
// falible por red de la inicialización. runID identifica este setup, para
// que el caller etiquete lo que persista (cache de lecturas).
type DialFunc func(ctx context.Context, endpoint, runID string) (ports.RemoteReader, error)

// CoreFactory construye el core simulado. reader es nil en modo offline.
type CoreFactory func(reader ports.RemoteReader) ports.CoreSimulator

// Provisioner orquesta un setup completo: selección de modo, inicialización
// del core y seeding de la cuenta de prueba. Un Provisioner se usa una vez
// por test; no comparte estado entre setups.
type Provisioner struct {
	opts     Options
	dial     DialFunc
	newCore  CoreFactory
	reporter ports.Reporter // opcional
	account  domain.TestAccount
}

// New crea un Provisioner con la cuenta de prueba por defecto.
func New(opts Options, dial DialFunc, newCore CoreFactory) *Provisioner {
	return &Provisioner{
		opts:    opts,
		dial:    dial,
		newCore: newCore,
		account: domain.DefaultTestAccount(),
	}
}

// WithReporter registra un reporter que recibe el resumen tras el seeding.
func (p *Provisioner) WithReporter(r ports.Reporter) *Provisioner {
	p.reporter = r
	return p
}

// WithAccount reemplaza la cuenta de prueba designada.
func (p *Provisioner) WithAccount(account domain.TestAccount) *Provisioner {
	p.account = account
	return p
}

// Fixture es el resultado de un setup: el handle del core listo para el
// test, más el resumen de lo sembrado. Propiedad exclusiva de un test.
type Fixture struct {
	RunID     string
	Strategy  domain.InitStrategy
	Account   domain.TestAccount
	Core      ports.CoreSimulator
	Provision domain.Provision
}

// Close libera el core y su conexión remota si la hay.
func (f *Fixture) Close() error {
	return f.Core.Close()
}

// Provision ejecuta el setup completo. Cualquier fallo de conexión,
// activación o seeding aborta todo: no hay downgrade silencioso a offline
// ni reintentos — un entorno mal configurado tiene que fallar ruidosamente.
func (p *Provisioner) Provision(ctx context.Context) (*Fixture, error) {
	runID := uuid.New().String()
	strategy := SelectStrategy(p.opts)

	slog.Debug("fixture: strategy selected",
		"run_id", runID,
		"mode", strategy.Mode.String(),
		"endpoint", strategy.Endpoint,
	)

	core, err := p.initialize(ctx, strategy, runID)
	if err != nil {
		return nil, err
	}

	if err := SeedDefaults(core, p.account); err != nil {
		core.Close()
		return nil, fmt.Errorf("fixture.Provision: seed: %w", err)
	}

	// Verificación por el read path normal: los balances leídos tienen que
	// ser exactamente los sembrados, en ambos modos.
	spot, err := core.SpotBalance(ctx, p.account.Address, domain.USDC.Index)
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("fixture.Provision: verify spot: %w", err)
	}
	margin, err := core.MarginBalance(ctx, p.account.Address)
	if err != nil {
		core.Close()
		return nil, fmt.Errorf("fixture.Provision: verify margin: %w", err)
	}

	prov := domain.Provision{
		RunID:    runID,
		Mode:     strategy.Mode,
		Endpoint: strategy.Endpoint,
		Account:  p.account.Address,
		Spot:     spot,
		Margin:   margin,
	}

	slog.Info("fixture: provisioned",
		"run_id", runID,
		"mode", strategy.Mode.String(),
		"account", p.account.Address.Hex(),
		"spot", spot,
		"margin", margin,
	)

	if p.reporter != nil {
		if err := p.reporter.Report(ctx, prov); err != nil {
			slog.Warn("fixture: reporter error", "err", err)
		}
	}

	return &Fixture{
		RunID:     runID,
		Strategy:  strategy,
		Account:   p.account,
		Core:      core,
		Provision: prov,
	}, nil
}

// initialize construye el handle del core según la estrategia. El handle
// devuelto está completamente inicializado: ningún estado parcial escapa.
func (p *Provisioner) initialize(ctx context.Context, s domain.InitStrategy, runID string) (ports.CoreSimulator, error) {
	switch s.Mode {
	case domain.ModeFork:
		reader, err := p.dial(ctx, s.Endpoint, runID)
		if err != nil {
			// Fatal: el caller pidió fork explícitamente, degradar a
			// offline violaría ese contrato.
			return nil, fmt.Errorf("fixture.initialize: connect %q: %w", s.Endpoint, err)
		}
		// useRealReads queda en su default (activado): lo no mockeado se
		// resuelve contra el snapshot.
		return p.newCore(reader), nil

	case domain.ModeOffline:
		core := p.newCore(nil)
		core.SetUseRealReads(false)
		return core, nil

	default:
		return nil, fmt.Errorf("fixture.initialize: unknown mode %d", s.Mode)
	}
}
