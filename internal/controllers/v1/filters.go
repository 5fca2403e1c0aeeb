package v1

import (
	"fmt"

	"github.com/spendwise/backend/internal/types"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

func stringFilters(db, query *gorm.DB, setFields []string, name, note, search string) *gorm.DB {
	if name != "" {
		query = query.Where("name LIKE ?", fmt.Sprintf("%%%s%%", name))
	} else if slices.Contains(setFields, "Name") {
		query = query.Where("name = ''")
	}

	if note != "" {
		query = query.Where("note LIKE ?", fmt.Sprintf("%%%s%%", note))
	} else if slices.Contains(setFields, "Note") {
		query = query.Where("note = ''")
	}

	if search != "" {
		query = query.Where(
			db.Where("note LIKE ?", fmt.Sprintf("%%%s%%", search)).Or(
				db.Where("name LIKE ?", fmt.Sprintf("%%%s%%", search)),
			),
		)
	}

	return query
}

// paginate applies offset and limit to the query and returns the limit used.
func paginate(query *gorm.DB, setFields []string, offset uint, limit int) (*gorm.DB, int) {
	if !slices.Contains(setFields, "Limit") {
		limit = defaultLimit
	}

	return query.Offset(int(offset)).Limit(limit), limit
}

// parseDate parses an optional date from the query string.
func parseDate(value string) (types.Date, error) {
	if value == "" {
		return types.Date{}, nil
	}

	d, err := types.ParseDate(value)
	if err != nil {
		return types.Date{}, errDateInvalid
	}

	return d, nil
}
