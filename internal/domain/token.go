package domain

import "github.com/ethereum/go-ethereum/common"

// Token es un activo conocido de HyperCore: símbolo, índice de token en el
// core y dirección del sistema en el lado EVM.
type Token struct {
	Symbol      string
	Index       uint32
	Address     common.Address
	WeiDecimals uint8
}

// Tabla fija de tokens conocidos. Solo lectura; cargada una vez por proceso.
var (
	// USDC es el token de valor estable, índice 0. En el core no tiene
	// contrato EVM propio (la dirección queda en cero).
	USDC = Token{Symbol: "USDC", Index: 0, WeiDecimals: 8}

	// HYPE es el activo nativo envuelto, índice 150.
	HYPE = Token{
		Symbol:      "HYPE",
		Index:       150,
		Address:     common.HexToAddress("0x2222222222222222222222222222222222222222"),
		WeiDecimals: 8,
	}
)

var tokensByIndex = map[uint32]Token{
	USDC.Index: USDC,
	HYPE.Index: HYPE,
}

// TokenByIndex devuelve el token con el índice dado, si existe.
func TokenByIndex(index uint32) (Token, bool) {
	t, ok := tokensByIndex[index]
	return t, ok
}

// KnownTokenIndex devuelve true si el índice pertenece a la tabla fija.
func KnownTokenIndex(index uint32) bool {
	_, ok := tokensByIndex[index]
	return ok
}
