package ports

import (
	"context"

	"github.com/endix-foundation/hyper-evm-lib/internal/domain"
)

// Reporter presenta al usuario el estado sembrado por el fixture.
type Reporter interface {
	// Report muestra el resumen de la provisión.
	// En la implementación de consola, imprime una tabla formateada.
	Report(ctx context.Context, p domain.Provision) error
}
