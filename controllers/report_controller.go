package controllers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"coolcare/database"
	"coolcare/report"
	"coolcare/storage"
)

// ReportRequest carries the filter parameters plus fetch options for
// the preview and generate endpoints
type ReportRequest struct {
	report.Params
	Limit       int  `json:"limit"`
	RequireRows bool `json:"require_rows"`
}

// GetReportOptions returns distinct picker options for a scalar
// column, optionally scoped (e.g. apartments within a building)
func GetReportOptions(c *gin.Context) {
	column := report.Criterion(c.Query("column"))

	var scope *report.Scope
	if building := c.Query("building"); building != "" {
		scope = &report.Scope{BuildingName: building}
	}

	options, err := report.UniqueOptions(database.DB, column, scope)
	if err != nil {
		if errors.Is(err, report.ErrInvalidColumn) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported filter column"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, options)
}

// PreviewReport runs the composed filter with the preview cap and
// returns the flat row projection
func PreviewReport(c *gin.Context) {
	var request ReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !sessionFor(request.Params).CanPreview() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selection is not complete enough for a preview"})
		return
	}

	rows, err := report.FetchPreview(database.DB, request.Params, request.Limit)
	if err != nil {
		writeReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"count": len(rows),
	})
}

// GenerateReport produces the PDF document and returns it as
// {file_name, content}; content is base64 by virtue of JSON []byte
// encoding
func GenerateReport(c *gin.Context) {
	var request ReportRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !sessionFor(request.Params).CanDownload() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Selection is not complete enough for a report"})
		return
	}

	rows, err := report.FetchReportRows(database.DB, request.Params, request.Limit)
	if err != nil {
		writeReportError(c, err)
		return
	}

	assets := report.PrepareAssets(storage.NewHTTPFetcher(),
		report.BoundedTranscoder{MaxWidth: 900, MaxHeight: 900}, rows)

	content, fileName, err := report.Render(report.Document{
		Params:      request.Params,
		GeneratedAt: time.Now(),
		Rows:        rows,
		Assets:      assets,
		RequireRows: request.RequireRows,
	})
	if err != nil {
		writeReportError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"file_name": fileName,
		"content":   content,
	})
}

// sessionFor replays the filter parameters onto a fresh picker state
// machine so the server enforces the same readiness predicate as the
// client flow.
func sessionFor(p report.Params) *report.Session {
	s := report.NewSession()
	s.SelectCriterion(p.Criterion)
	s.SelectValue(p.Value)
	if p.BuildingName != "" {
		s.SelectBuilding(p.BuildingName)
	}
	s.SetApartments(p.ApartmentNumbers)
	s.SetDateRange(p.StartDate, p.EndDate)
	return s
}

func writeReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, report.ErrInvalidColumn):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported filter column"})
	case errors.Is(err, report.ErrInvalidFilter):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Start and end dates are required for a date report"})
	case errors.Is(err, report.ErrEmptyDataset):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "No complaints matched the selected filters"})
	case errors.Is(err, report.ErrRender):
		log.Printf("Report render error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate report"})
	default:
		log.Printf("Report error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
