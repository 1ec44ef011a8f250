package importer

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/pdmedical/crm-import/internal/model"
	"github.com/pdmedical/crm-import/internal/store"
)

// Verify reads back totals and groupings after an import. It is purely
// informational; callers treat a failure as a warning, not a run error.
func Verify(ctx context.Context, st store.Store) (*model.VerifyReport, error) {
	counts, err := st.TotalCounts(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "verify: counts")
	}

	byCategory, err := st.ProductsByCategory(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "verify: by category")
	}

	byPriority, err := st.ProductsByPriority(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "verify: by priority")
	}

	return &model.VerifyReport{
		TotalProducts:      counts.Products,
		TotalContacts:      counts.Contacts,
		TotalInterests:     counts.Interests,
		TotalOrganizations: counts.Organizations,
		ByCategory:         byCategory,
		ByPriority:         byPriority,
	}, nil
}
