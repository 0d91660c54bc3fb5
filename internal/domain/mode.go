package domain

// ExecutionMode indica contra qué backing store se inicializa el core simulado.
// Se deriva una sola vez por setup y no se muta después.
type ExecutionMode int

const (
	// ModeOffline es la simulación local determinista, sin red.
	ModeOffline ExecutionMode = iota
	// ModeFork ancla la simulación a un snapshot de la red real.
	ModeFork
)

// String devuelve el nombre legible del modo.
func (m ExecutionMode) String() string {
	switch m {
	case ModeFork:
		return "fork"
	case ModeOffline:
		return "offline"
	default:
		return "unknown"
	}
}

// InitStrategy es la estrategia de inicialización resuelta desde configuración.
// Endpoint solo tiene significado en ModeFork.
type InitStrategy struct {
	Mode     ExecutionMode
	Endpoint string
}
