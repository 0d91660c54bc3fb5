package fixture

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/endix-foundation/hyper-evm-lib/internal/domain"
	"github.com/endix-foundation/hyper-evm-lib/internal/ports"
)

// ActivatedAccount es una cuenta ya activada en el core. Las operaciones de
// seeding solo son alcanzables desde este tipo: la precondición
// activar-antes-de-sembrar queda garantizada por construcción, no por
// convención de orden en el caller.
type ActivatedAccount struct {
	core ports.CoreSimulator
	addr common.Address
}

// Activate marca la cuenta en el core y devuelve el handle desde el que se
// puede sembrar. Si el core rechaza la activación, el setup entero falla.
func Activate(core ports.CoreSimulator, account domain.TestAccount) (*ActivatedAccount, error) {
	if err := core.ActivateAccount(account.Address); err != nil {
		return nil, fmt.Errorf("fixture.Activate: %s: %w", account.Address, err)
	}
	return &ActivatedAccount{core: core, addr: account.Address}, nil
}

// Address devuelve la dirección de la cuenta activada.
func (a *ActivatedAccount) Address() common.Address {
	return a.addr
}

// SeedSpot siembra el balance spot para el token dado.
func (a *ActivatedAccount) SeedSpot(token domain.Token, amount uint64) error {
	if err := a.core.SeedSpotBalance(a.addr, token.Index, amount); err != nil {
		return fmt.Errorf("fixture.SeedSpot: %s %s: %w", a.addr, token.Symbol, err)
	}
	return nil
}

// SeedMargin siembra el balance de margen perp.
func (a *ActivatedAccount) SeedMargin(amount uint64) error {
	if err := a.core.SeedMarginBalance(a.addr, amount); err != nil {
		return fmt.Errorf("fixture.SeedMargin: %s: %w", a.addr, err)
	}
	return nil
}

// SeedDefaults ejecuta la secuencia estándar del fixture: activar la cuenta,
// sembrar 1000 USDC spot y 1000 USDC de margen perp. Los dos seeds son
// independientes entre sí; cualquier fallo aborta el resto sin reintentos.
func SeedDefaults(core ports.CoreSimulator, account domain.TestAccount) error {
	acct, err := Activate(core, account)
	if err != nil {
		return err
	}
	if err := acct.SeedSpot(domain.USDC, domain.SpotSeedUnits); err != nil {
		return err
	}
	if err := acct.SeedMargin(domain.MarginSeedUnits); err != nil {
		return err
	}
	return nil
}
