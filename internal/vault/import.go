package vault

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/credvault/internal/common"
)

// ImportRow is the normalized shape produced by external import adapters.
// The core never parses tabular files itself.
type ImportRow struct {
	ServiceName string
	UserID      string
	Secret      string
	OfficeID    string
	SiteURL     string
}

// SkippedRow reports one rejected import row and why it was rejected.
type SkippedRow struct {
	Row    ImportRow
	Reason string
}

// ImportResult summarizes a bulk import.
type ImportResult struct {
	Added   int
	Skipped []SkippedRow
}

// Import adds each row through the same validation and uniqueness path as
// Add. Invalid or duplicate rows are skipped and reported; they never abort
// the batch. A persistence failure does: the result accumulated so far is
// returned together with the error.
func (s *Service) Import(ctx context.Context, token string, rows []ImportRow) (*ImportResult, error) {
	owner, err := s.owner(token)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for _, row := range rows {
		req := AddRequest{
			ServiceName: row.ServiceName,
			OfficeID:    row.OfficeID,
			UserID:      row.UserID,
			Secret:      row.Secret,
			SiteURL:     row.SiteURL,
		}

		_, err := s.addForOwner(ctx, owner, req)
		if err == nil {
			result.Added++
			continue
		}
		if errors.Is(err, common.ErrorPersistence) {
			return result, err
		}

		result.Skipped = append(result.Skipped, SkippedRow{Row: row, Reason: err.Error()})
	}

	s.log.Info(ctx, "import finished", "owner", owner,
		"added", result.Added, "skipped", len(result.Skipped))
	return result, nil
}
