package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/endix-foundation/hyper-evm-lib/internal/domain"
)

// Console implementa ports.Reporter.
type Console struct {
	out   io.Writer
	table bool
}

// NewConsole crea un reporter que escribe a stdout.
func NewConsole(table bool) *Console {
	return &Console{out: os.Stdout, table: table}
}

// NewConsoleWriter crea un reporter para tests.
func NewConsoleWriter(w io.Writer, table bool) *Console {
	return &Console{out: w, table: table}
}

// Report imprime el resumen de la provisión en el modo configurado.
func (c *Console) Report(_ context.Context, p domain.Provision) error {
	if c.table {
		c.printTable(p)
	} else {
		c.printCompact(p)
	}
	return nil
}

// printCompact imprime lo esencial en una línea.
func (c *Console) printCompact(p domain.Provision) {
	now := time.Now().Format("15:04:05")
	endpoint := p.Endpoint
	if p.Mode == domain.ModeOffline {
		endpoint = "-"
	}
	fmt.Fprintf(c.out, "[%s] fixture %s mode=%s endpoint=%s acct=%s spot=%d margin=%d\n",
		now, shortID(p.RunID), p.Mode, endpoint, p.Account.Hex(), p.Spot, p.Margin)
}

// printTable imprime la tabla completa de la provisión.
func (c *Console) printTable(p domain.Provision) {
	fmt.Fprintf(c.out, "\n=== FIXTURE %s (%s mode) ===\n", shortID(p.RunID), p.Mode)

	table := tablewriter.NewWriter(c.out)
	table.Header("Account", "Endpoint", "Spot USDC", "Perp margin")

	endpoint := p.Endpoint
	if p.Mode == domain.ModeOffline {
		endpoint = "(local)"
	}

	table.Append(
		p.Account.Hex(),
		endpoint,
		fmt.Sprintf("%d (%.0f USDC)", p.Spot, float64(p.Spot)/1e8),
		fmt.Sprintf("%d (%.0f USDC)", p.Margin, float64(p.Margin)/1e6),
	)

	table.Render()
}

// shortID recorta el UUID del run para logs compactos.
func shortID(runID string) string {
	if len(runID) > 8 {
		return runID[:8]
	}
	return runID
}
