// Package report implements the admin report subsystem: filter
// composition, picker option resolution, dataset fetching and PDF
// rendering. It is independent of the HTTP layer and operates on a
// plain *gorm.DB so the query logic can be tested in isolation.
package report

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Criterion identifies the primary column a report is filtered by.
type Criterion string

const (
	CriterionPhone     Criterion = "customer_phone"
	CriterionBuilding  Criterion = "building_name"
	CriterionApartment Criterion = "apartment_number"
	CriterionDate      Criterion = "created_date"
)

// MatchAll is the sentinel criterion value that skips the value restriction.
const MatchAll = "ALL"

var (
	ErrInvalidColumn = errors.New("report: unsupported filter column")
	ErrInvalidFilter = errors.New("report: date criterion requires both start and end dates")
)

// Closed mapping from scalar criteria to complaint columns. Anything
// outside this set is rejected instead of resolved dynamically.
var criterionColumns = map[Criterion]string{
	CriterionPhone:     "phone",
	CriterionBuilding:  "building_name",
	CriterionApartment: "apartment_number",
}

const dateLayout = "2006-01-02"

// Params are the report filter dimensions. All supplied dimensions
// compose with logical AND; there is no OR support.
type Params struct {
	Criterion        Criterion `json:"criterion"`
	Value            string    `json:"value"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	BuildingName     string    `json:"building_name"`
	ApartmentNumbers []string  `json:"apartment_numbers"`
}

// Apply composes the filter predicate onto q. Validation failures are
// reported before any storage access happens.
func (p Params) Apply(q *gorm.DB) (*gorm.DB, error) {
	switch {
	case p.Criterion == CriterionDate:
		if p.StartDate == "" || p.EndDate == "" {
			return nil, ErrInvalidFilter
		}
		start, err := time.ParseInLocation(dateLayout, p.StartDate, time.UTC)
		if err != nil {
			return nil, ErrInvalidFilter
		}
		end, err := time.ParseInLocation(dateLayout, p.EndDate, time.UTC)
		if err != nil {
			return nil, ErrInvalidFilter
		}
		// Both endpoints are calendar-inclusive: [start 00:00 UTC, end+1d 00:00 UTC)
		q = q.Where("created_at >= ? AND created_at < ?", start, end.AddDate(0, 0, 1))

	case p.Criterion == "":
		// No primary criterion; building/apartment scopes may still apply.

	default:
		column, ok := criterionColumns[p.Criterion]
		if !ok {
			return nil, ErrInvalidColumn
		}
		if v := strings.TrimSpace(p.Value); v != "" && v != MatchAll {
			q = q.Where(column+" = ?", v)
		}
	}

	if b := strings.TrimSpace(p.BuildingName); b != "" {
		q = q.Where("building_name = ?", b)
	}

	if apts := normalizeApartments(p.ApartmentNumbers); len(apts) > 0 {
		q = q.Where("apartment_number IN ?", apts)
	}

	return q, nil
}

// normalizeApartments trims, drops blanks and deduplicates
// case-insensitively, keeping the first-seen variant.
func normalizeApartments(values []string) []string {
	var out []string
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
		out = append(out, v)
	}
	return out
}
