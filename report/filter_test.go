package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"coolcare/database"
	"coolcare/report"
)

func countMatching(t *testing.T, db *gorm.DB, p report.Params) int64 {
	t.Helper()

	q, err := p.Apply(db.Model(&database.Complaint{}))
	require.NoError(t, err)

	var count int64
	require.NoError(t, q.Count(&count).Error)
	return count
}

// TestDateRangeCalendarDays verifies the UTC calendar-day semantics:
// both endpoints are inclusive from the caller's point of view.
func TestDateRangeCalendarDays(t *testing.T) {
	// Arrange
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{CustomerName: "Edge High", Phone: "1"},
		mustDate(t, "2024-03-10T23:59:59Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "Day After", Phone: "2"},
		mustDate(t, "2024-03-11T00:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "Day Before", Phone: "3"},
		mustDate(t, "2024-03-09T23:59:59Z"))

	p := report.Params{Criterion: report.CriterionDate, StartDate: "2024-03-10", EndDate: "2024-03-10"}

	// Act
	q, err := p.Apply(db.Model(&database.Complaint{}))
	require.NoError(t, err)

	var matched []database.Complaint
	require.NoError(t, q.Find(&matched).Error)

	// Assert
	require.Len(t, matched, 1, "only the 23:59:59 complaint falls inside the day")
	assert.Equal(t, "Edge High", matched[0].CustomerName)
}

func TestDateCriterionRequiresBothBounds(t *testing.T) {
	db := openTestDB(t)

	for _, p := range []report.Params{
		{Criterion: report.CriterionDate, StartDate: "2024-03-10"},
		{Criterion: report.CriterionDate, EndDate: "2024-03-10"},
		{Criterion: report.CriterionDate},
	} {
		_, err := p.Apply(db.Model(&database.Complaint{}))
		assert.ErrorIs(t, err, report.ErrInvalidFilter)
	}
}

func TestUnknownCriterionRejected(t *testing.T) {
	db := openTestDB(t)

	_, err := report.Params{Criterion: "customer_email"}.Apply(db.Model(&database.Complaint{}))
	assert.ErrorIs(t, err, report.ErrInvalidColumn)
}

// TestFiltersComposeConjunctively checks that removing any one
// dimension can only grow or hold the result set, never shrink it.
func TestFiltersComposeConjunctively(t *testing.T) {
	// Arrange
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{
		CustomerName: "A", Phone: "050-111", BuildingName: "Marina Tower", ApartmentNumber: "12A",
	}, mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{
		CustomerName: "B", Phone: "050-111", BuildingName: "Marina Tower", ApartmentNumber: "7C",
	}, mustDate(t, "2024-03-11T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{
		CustomerName: "C", Phone: "050-222", BuildingName: "Palm Residence", ApartmentNumber: "12A",
	}, mustDate(t, "2024-03-10T12:00:00Z"))

	full := report.Params{
		Criterion:        report.CriterionPhone,
		Value:            "050-111",
		BuildingName:     "Marina Tower",
		ApartmentNumbers: []string{"12A"},
	}

	// Act
	allDims := countMatching(t, db, full)
	noPhone := countMatching(t, db, report.Params{
		BuildingName: full.BuildingName, ApartmentNumbers: full.ApartmentNumbers,
	})
	noBuilding := countMatching(t, db, report.Params{
		Criterion: full.Criterion, Value: full.Value, ApartmentNumbers: full.ApartmentNumbers,
	})
	noApartments := countMatching(t, db, report.Params{
		Criterion: full.Criterion, Value: full.Value, BuildingName: full.BuildingName,
	})

	// Assert
	assert.EqualValues(t, 1, allDims)
	assert.GreaterOrEqual(t, noPhone, allDims)
	assert.GreaterOrEqual(t, noBuilding, allDims)
	assert.GreaterOrEqual(t, noApartments, allDims)
}

func TestMatchAllSentinelSkipsValueRestriction(t *testing.T) {
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{CustomerName: "A", Phone: "050-111"},
		mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "B", Phone: "050-222"},
		mustDate(t, "2024-03-10T11:00:00Z"))

	count := countMatching(t, db, report.Params{Criterion: report.CriterionPhone, Value: report.MatchAll})
	assert.EqualValues(t, 2, count)

	count = countMatching(t, db, report.Params{Criterion: report.CriterionPhone, Value: "  "})
	assert.EqualValues(t, 2, count, "blank value means no restriction")
}

func TestApartmentSubsetDeduplicated(t *testing.T) {
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{CustomerName: "A", Phone: "1", ApartmentNumber: "12A"},
		mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "B", Phone: "2", ApartmentNumber: "12B"},
		mustDate(t, "2024-03-10T11:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "C", Phone: "3", ApartmentNumber: "9F"},
		mustDate(t, "2024-03-10T12:00:00Z"))

	count := countMatching(t, db, report.Params{
		ApartmentNumbers: []string{" 12A ", "12A", "", "12B"},
	})
	assert.EqualValues(t, 2, count)
}
