package store

import (
	"strings"

	"github.com/PabloGitu/bookmanagerrmh2/internal/paging"
)

// OrderClause renders an ORDER BY clause from requested sort orders,
// keeping only properties present in the column whitelist. The fallback
// column is appended as a tiebreaker so pages stay stable.
func OrderClause(sort []paging.Order, columns map[string]string, fallback string) string {
	clauses := make([]string, 0, len(sort)+1)
	usedFallback := false
	for _, o := range sort {
		col, ok := columns[o.Property]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		if col == fallback {
			usedFallback = true
		}
		clauses = append(clauses, col+" "+dir)
	}
	if !usedFallback {
		clauses = append(clauses, fallback+" ASC")
	}
	return "ORDER BY " + strings.Join(clauses, ", ")
}
