package report_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coolcare/database"
	"coolcare/report"
)

func TestUniqueOptionsRejectsUnknownColumn(t *testing.T) {
	db := openTestDB(t)

	_, err := report.UniqueOptions(db, report.CriterionDate, nil)
	assert.ErrorIs(t, err, report.ErrInvalidColumn)

	_, err = report.UniqueOptions(db, "description", nil)
	assert.ErrorIs(t, err, report.ErrInvalidColumn)
}

func TestUniqueOptionsExcludesBlanks(t *testing.T) {
	// Arrange
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{CustomerName: "A", Phone: "050-111", BuildingName: "Marina Tower"},
		mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "B", Phone: "050-222", BuildingName: ""},
		mustDate(t, "2024-03-10T11:00:00Z"))

	// Act
	options, err := report.UniqueOptions(db, report.CriterionBuilding, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, options, 1, "blank building names are never returned as options")
	assert.Equal(t, "Marina Tower", options[0].Value)
	assert.Equal(t, options[0].Value, options[0].Label)
}

// TestApartmentOptionsCaseInsensitiveDedup verifies the §dedup rule:
// "12A" and " 12a " collapse into one option keeping the first-seen
// casing, while "12B" stays separate.
func TestApartmentOptionsCaseInsensitiveDedup(t *testing.T) {
	// Arrange
	db := openTestDB(t)
	building := "Marina Tower"
	seedComplaint(t, db, database.Complaint{CustomerName: "A", Phone: "1", BuildingName: building, ApartmentNumber: "12A"},
		mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "B", Phone: "2", BuildingName: building, ApartmentNumber: " 12a "},
		mustDate(t, "2024-03-10T11:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "C", Phone: "3", BuildingName: building, ApartmentNumber: "12B"},
		mustDate(t, "2024-03-10T12:00:00Z"))

	// Act
	options, err := report.UniqueOptions(db, report.CriterionApartment,
		&report.Scope{BuildingName: building})

	// Assert
	require.NoError(t, err)
	require.Len(t, options, 2)

	values := []string{options[0].Value, options[1].Value}
	assert.Contains(t, values, "12B")
	// one of the two seen variants survives, trimmed
	other := values[0]
	if other == "12B" {
		other = values[1]
	}
	assert.Contains(t, []string{"12A", "12a"}, other)
}

func TestApartmentOptionsScopedToBuilding(t *testing.T) {
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{CustomerName: "A", Phone: "1", BuildingName: "Marina Tower", ApartmentNumber: "12A"},
		mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "B", Phone: "2", BuildingName: "Palm Residence", ApartmentNumber: "7C"},
		mustDate(t, "2024-03-10T11:00:00Z"))

	options, err := report.UniqueOptions(db, report.CriterionApartment,
		&report.Scope{BuildingName: "Marina Tower"})

	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "12A", options[0].Value)
}

func TestPhoneOptionsSortedAscending(t *testing.T) {
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{CustomerName: "A", Phone: "055-900"},
		mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "B", Phone: "050-100"},
		mustDate(t, "2024-03-10T11:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "C", Phone: "052-500"},
		mustDate(t, "2024-03-10T12:00:00Z"))

	options, err := report.UniqueOptions(db, report.CriterionPhone, nil)

	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, "050-100", options[0].Value)
	assert.Equal(t, "052-500", options[1].Value)
	assert.Equal(t, "055-900", options[2].Value)
}
