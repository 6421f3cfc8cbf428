package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"coolcare/database"
	"coolcare/report"
)

// setupReportTest swaps the global DB for an isolated in-memory SQLite
// database and returns a router with the report routes mounted.
func setupReportTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&database.Complaint{},
		&database.ComplaintImage{},
		&database.Response{},
		&database.ResponseImage{},
		&database.WorkTime{},
		&database.User{},
	))

	orig := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = orig })

	r := gin.New()
	r.GET("/reports/options", GetReportOptions)
	r.POST("/reports/preview", PreviewReport)
	r.POST("/reports/generate", GenerateReport)
	return r
}

func seedReportComplaints(t *testing.T, phones ...string) {
	t.Helper()
	for i, phone := range phones {
		c := database.Complaint{
			CustomerName:    fmt.Sprintf("Customer %d", i+1),
			Phone:           phone,
			BuildingName:    "Marina Heights",
			ApartmentNumber: fmt.Sprintf("%d0%d", i+1, i+1),
			Description:     "AC not cooling",
			ConvenientTime:  "10_12",
		}
		require.NoError(t, database.DB.Create(&c).Error)
	}
}

func TestGetReportOptions(t *testing.T) {
	r := setupReportTest(t)
	seedReportComplaints(t, "0501111111", "0502222222", "0501111111")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/options?column=customer_phone", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var options []report.Option
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &options))
	assert.Len(t, options, 2)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reports/options?column=description", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPreviewReport(t *testing.T) {
	r := setupReportTest(t)
	seedReportComplaints(t, "0501111111", "0502222222")

	body := func(p report.Params) *bytes.Buffer {
		data, err := json.Marshal(ReportRequest{Params: p})
		require.NoError(t, err)
		return bytes.NewBuffer(data)
	}

	// Incomplete selection is refused before touching the database
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reports/preview", body(report.Params{Criterion: report.CriterionPhone}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/reports/preview",
		body(report.Params{Criterion: report.CriterionPhone, Value: "0501111111"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Rows  []report.Row `json:"rows"`
		Count int          `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, "0501111111", resp.Rows[0].Phone)
}

func TestGenerateReport(t *testing.T) {
	r := setupReportTest(t)
	seedReportComplaints(t, "0501111111")

	data, err := json.Marshal(ReportRequest{Params: report.Params{
		Criterion: report.CriterionPhone,
		Value:     "0501111111",
	}})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/reports/generate", bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		FileName string `json:"file_name"`
		Content  []byte `json:"content"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.FileName, "complaints-")
	assert.True(t, bytes.HasPrefix(resp.Content, []byte("%PDF-")), "content should be a PDF")
}
