package report

import (
	"strings"

	"gorm.io/gorm"

	"coolcare/database"
)

// Option is a single combobox entry; value and label are identical.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Scope optionally pre-filters an option query with the same additive
// semantics as Params (exact building match, apartment membership).
type Scope struct {
	BuildingName     string
	ApartmentNumbers []string
}

// UniqueOptions returns the distinct non-blank values of the given
// scalar column, sorted ascending, one option per case-insensitive key
// (apartment "12A" and " 12a " collapse to the first-seen variant).
func UniqueOptions(db *gorm.DB, column Criterion, scope *Scope) ([]Option, error) {
	col, ok := criterionColumns[column]
	if !ok {
		return nil, ErrInvalidColumn
	}

	q := db.Model(&database.Complaint{}).
		Distinct(col).
		Where(col + " IS NOT NULL AND " + col + " <> ''").
		Order(col + " ASC")

	if scope != nil {
		if b := strings.TrimSpace(scope.BuildingName); b != "" {
			q = q.Where("building_name = ?", b)
		}
		if apts := normalizeApartments(scope.ApartmentNumbers); len(apts) > 0 {
			q = q.Where("apartment_number IN ?", apts)
		}
	}

	var values []string
	if err := q.Pluck(col, &values).Error; err != nil {
		return nil, err
	}

	options := make([]Option, 0, len(values))
	seen := map[string]bool{}
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		key := strings.ToUpper(v)
		if seen[key] {
			continue
		}
		seen[key] = true
		options = append(options, Option{Value: v, Label: v})
	}

	return options, nil
}
