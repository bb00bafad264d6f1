package persistence

import (
	"slices"
	"strings"

	"github.com/surgishop/backend/internal/domain/shared"
	"gorm.io/gorm/clause"
)

// sortColumns whitelists the columns a list endpoint may order by.
// The first column is the fallback.
type sortColumns []string

var customerSortColumns = sortColumns{
	"created_at",
	"updated_at",
	"code",
	"name",
	"facility_type",
	"overdue_days",
	"outstanding_balance",
}

// orderBy builds the ORDER BY clause for filter. Unknown columns fall back to the
// first whitelisted one and anything other than "asc" sorts descending.
func (s sortColumns) orderBy(filter shared.Filter) clause.OrderByColumn {
	column := strings.ToLower(strings.TrimSpace(filter.OrderBy))
	if !slices.Contains(s, column) {
		column = s[0]
	}
	return clause.OrderByColumn{
		Column: clause.Column{Name: column},
		Desc:   !strings.EqualFold(strings.TrimSpace(filter.OrderDir), "asc"),
	}
}
