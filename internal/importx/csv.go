// Package importx adapts external tabular files into the normalized row
// shape the vault's bulk import consumes. It lives outside the core
// contract: the vault only ever sees []vault.ImportRow.
package importx

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/credvault/internal/vault"
)

// Column headers recognized in the first CSV record, case-insensitive.
// "supplier_name" and "password" are accepted as legacy synonyms.
var headerAliases = map[string]string{
	"service_name":  "service",
	"supplier_name": "service",
	"user_id":       "user",
	"password":      "secret",
	"secret":        "secret",
	"office_id":     "office",
	"site_url":      "site",
}

// ReadFile parses a CSV file into normalized import rows.
func ReadFile(path string) ([]vault.ImportRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Read parses CSV data with a header record. The service name, user id, and
// secret columns must be present; office id and site url are optional.
// Rows with missing values are still returned; the vault reports them as
// skipped with a reason, which keeps one bad row from failing the batch.
func Read(r io.Reader) ([]vault.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	cols := map[string]int{}
	for i, h := range header {
		if name, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[name] = i
		}
	}
	for _, required := range []string{"service", "user", "secret"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("csv is missing a required column (service_name, user_id, password)")
		}
	}

	var rows []vault.ImportRow
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv record: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		rows = append(rows, vault.ImportRow{
			ServiceName: field("service"),
			UserID:      field("user"),
			Secret:      field("secret"),
			OfficeID:    field("office"),
			SiteURL:     field("site"),
		})
	}

	return rows, nil
}
