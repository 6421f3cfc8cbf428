package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"coolcare/database"
)

// AdminDashboard returns key statistics for the admin dashboard.
// The aggregates run on the raw SQL handle.
func AdminDashboard(c *gin.Context) {
	var totalComplaints int64
	var unassignedComplaints int64
	var openWorkSessions int64
	var totalEmployees int64

	row := database.LegacyDB.QueryRow(
		`SELECT COUNT(*) FROM complaints WHERE deleted_at IS NULL`)
	if err := row.Scan(&totalComplaints); err != nil {
		log.Printf("Dashboard query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count complaints"})
		return
	}

	row = database.LegacyDB.QueryRow(
		`SELECT COUNT(*) FROM complaints WHERE assignee_id IS NULL AND deleted_at IS NULL`)
	if err := row.Scan(&unassignedComplaints); err != nil {
		log.Printf("Dashboard query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count unassigned complaints"})
		return
	}

	row = database.LegacyDB.QueryRow(
		`SELECT COUNT(*) FROM responses
		 WHERE started_at IS NOT NULL AND completed_at IS NULL AND deleted_at IS NULL`)
	if err := row.Scan(&openWorkSessions); err != nil {
		log.Printf("Dashboard query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count open work sessions"})
		return
	}

	row = database.LegacyDB.QueryRow(
		`SELECT COUNT(*) FROM users WHERE role = 'employee' AND deleted_at IS NULL`)
	if err := row.Scan(&totalEmployees); err != nil {
		log.Printf("Dashboard query error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count employees"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"totalComplaints":      totalComplaints,
			"unassignedComplaints": unassignedComplaints,
			"openWorkSessions":     openWorkSessions,
			"totalEmployees":       totalEmployees,
		},
	})
}
