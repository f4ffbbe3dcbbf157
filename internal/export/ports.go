package export

import "context"

// Ports for outbound adapters.
type (
	// ReportWriter replaces one spreadsheet tab with a rendered report table.
	ReportWriter interface {
		WriteTable(ctx context.Context, t Table) error
	}
)
