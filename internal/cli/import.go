package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/credvault/internal/importx"
)

// Import reads a CSV file through the import adapter and feeds the
// normalized rows to the vault. Skipped rows are reported per row; they do
// not abort the batch.
func (a *App) Import(ctx context.Context, path string) error {
	rows, err := importx.ReadFile(path)
	if err != nil {
		return err
	}

	result, err := a.vaultService.Import(ctx, a.token, rows)
	if result != nil {
		fmt.Printf("Imported %d entr%s.\n", result.Added, plural(result.Added, "y", "ies"))
		for _, s := range result.Skipped {
			fmt.Printf("Skipped %q: %s\n", s.Row.ServiceName, s.Reason)
		}
	}
	return err
}
