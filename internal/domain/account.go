package domain

import "github.com/ethereum/go-ethereum/common"

// TestAccount identifica la cuenta de prueba designada. Siempre se activa y
// se financia con los mismos montos al inicio de cada test, en ambos modos.
type TestAccount struct {
	Address common.Address
}

const (
	// SpotSeedUnits es el balance spot inicial de USDC: 1000 × 10^8.
	SpotSeedUnits uint64 = 1000 * 1e8

	// MarginSeedUnits es el balance de margen perp inicial: 1000 × 10^6.
	MarginSeedUnits uint64 = 1000 * 1e6
)

// defaultTestAddress es la primera cuenta determinista de anvil/hardhat.
const defaultTestAddress = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"

// DefaultTestAccount devuelve la cuenta de prueba por defecto.
func DefaultTestAccount() TestAccount {
	return TestAccount{Address: common.HexToAddress(defaultTestAddress)}
}

// Provision resume el estado que un setup de fixture dejó sembrado,
// verificado a través del read path normal del core.
type Provision struct {
	RunID    string
	Mode     ExecutionMode
	Endpoint string // vacío en modo offline
	Account  common.Address
	Spot     uint64 // balance spot USDC tras el seed
	Margin   uint64 // balance de margen perp tras el seed
}
