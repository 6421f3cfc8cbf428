package report_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coolcare/config"
	"coolcare/database"
	"coolcare/report"
)

func TestPreviewCapAndOrdering(t *testing.T) {
	// Arrange
	db := openTestDB(t)
	base := mustDate(t, "2024-03-01T00:00:00Z")
	for i := 0; i < 50; i++ {
		seedComplaint(t, db, database.Complaint{
			CustomerName: fmt.Sprintf("Customer %02d", i),
			Phone:        "050-111",
		}, base.Add(time.Duration(i)*time.Hour))
	}

	// Act - an absurdly large limit is clamped, then capped at the dataset size
	rows, err := report.FetchPreview(db, report.Params{}, 10000)

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 50, "never more rows than exist")
	assert.Equal(t, "Customer 49", rows[0].CustomerName, "newest first")
	assert.Equal(t, "Customer 00", rows[49].CustomerName)
}

func TestFetchLimitClampedToLowerBound(t *testing.T) {
	db := openTestDB(t)
	seedComplaint(t, db, database.Complaint{CustomerName: "A", Phone: "1"},
		mustDate(t, "2024-03-10T10:00:00Z"))
	seedComplaint(t, db, database.Complaint{CustomerName: "B", Phone: "2"},
		mustDate(t, "2024-03-10T11:00:00Z"))

	rows, err := report.FetchPreview(db, report.Params{}, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 1, "limit below 1 clamps to 1")

	rows, err = report.FetchPreview(db, report.Params{}, -7)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

// TestTimestampTieBrokenByID verifies deterministic ordering when
// creation timestamps collide: higher id first.
func TestTimestampTieBrokenByID(t *testing.T) {
	db := openTestDB(t)
	ts := mustDate(t, "2024-03-10T10:00:00Z")
	first := seedComplaint(t, db, database.Complaint{CustomerName: "First", Phone: "1"}, ts)
	second := seedComplaint(t, db, database.Complaint{CustomerName: "Second", Phone: "2"}, ts)

	rows, err := report.FetchPreview(db, report.Params{}, 10)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestFetchProjectionResolvesImageURLs(t *testing.T) {
	// Arrange
	prev := config.AppConfig.StorageBaseURL
	config.AppConfig.StorageBaseURL = "https://cdn.example.com/uploads/"
	t.Cleanup(func() { config.AppConfig.StorageBaseURL = prev })

	db := openTestDB(t)
	c := seedComplaint(t, db, database.Complaint{
		CustomerName:    "Aisha",
		Phone:           "050-111",
		Email:           "aisha@example.com",
		Address:         "12 Corniche Rd",
		BuildingName:    "Marina Tower",
		ApartmentNumber: "12A",
		Description:     "AC leaking in the bedroom",
		ConvenientTime:  "08_10",
	}, mustDate(t, "2024-03-10T09:30:00Z"))
	require.NoError(t, db.Create(&database.ComplaintImage{ComplaintID: c.ID, Path: "a1.jpg"}).Error)
	require.NoError(t, db.Create(&database.ComplaintImage{ComplaintID: c.ID, Path: "a2.jpg"}).Error)

	// Act
	rows, err := report.FetchPreview(db, report.Params{}, 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "Aisha", row.CustomerName)
	assert.Equal(t, "2024-03-10T09:30:00Z", row.CreatedAt)
	assert.Equal(t, []string{
		"https://cdn.example.com/uploads/a1.jpg",
		"https://cdn.example.com/uploads/a2.jpg",
	}, row.ImageURLs)
	assert.Empty(t, row.Responses, "preview omits response detail")
}

func TestReportFetchIncludesResponsesAndWorkTimes(t *testing.T) {
	// Arrange
	db := openTestDB(t)
	responder := database.User{Name: "Omar", Username: "omar", Role: database.RoleEmployee}
	require.NoError(t, db.Create(&responder).Error)

	c := seedComplaint(t, db, database.Complaint{CustomerName: "Aisha", Phone: "050-111"},
		mustDate(t, "2024-03-10T09:30:00Z"))

	started := mustDate(t, "2024-03-10T10:00:00Z")
	completed := mustDate(t, "2024-03-10T12:05:00Z")
	require.NoError(t, db.Create(&database.Response{
		ComplaintID: c.ID,
		ResponderID: responder.ID,
		Text:        "Replaced the condenser fan",
		StartedAt:   &started,
		CompletedAt: &completed,
	}).Error)
	require.NoError(t, db.Create(&database.WorkTime{
		ComplaintID: c.ID,
		UserID:      responder.ID,
		WorkDate:    mustDate(t, "2024-03-10T00:00:00Z"),
		StartTime:   started,
		EndTime:     &completed,
	}).Error)

	// Act
	rows, err := report.FetchReportRows(db, report.Params{}, 10)

	// Assert
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0].Responses, 1)
	assert.Equal(t, "Omar", rows[0].Responses[0].ResponderName)
	require.Len(t, rows[0].WorkTimes, 1)
	assert.Equal(t, "Omar", rows[0].WorkTimes[0].UserName)
}

func TestFetchPropagatesFilterValidation(t *testing.T) {
	db := openTestDB(t)

	_, err := report.FetchPreview(db, report.Params{Criterion: report.CriterionDate}, 10)
	assert.ErrorIs(t, err, report.ErrInvalidFilter)

	_, err = report.FetchReportRows(db, report.Params{Criterion: "bogus"}, 10)
	assert.ErrorIs(t, err, report.ErrInvalidColumn)
}
