package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coolcare/database"
)

// WorkTimeRequest contains the data for logging a work session
type WorkTimeRequest struct {
	WorkDate  string `json:"work_date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time"` // empty = in progress
}

// CreateWorkTime logs a work session against a complaint
func CreateWorkTime(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var request WorkTimeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userIDValue, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	workDate, err := time.ParseInLocation("2006-01-02", request.WorkDate, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work date format"})
		return
	}

	startTime, err := time.Parse(time.RFC3339, request.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time format"})
		return
	}

	var endTime *time.Time
	if request.EndTime != "" {
		parsed, err := time.Parse(time.RFC3339, request.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time format"})
			return
		}
		endTime = &parsed
	}

	// Check the complaint exists
	var count int64
	if err := database.DB.Model(&database.Complaint{}).Where("id = ?", complaintID).Count(&count).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}
	if count == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	entry := database.WorkTime{
		ComplaintID: uint(complaintID),
		UserID:      userID,
		WorkDate:    workDate,
		StartTime:   startTime,
		EndTime:     endTime,
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Error creating work time entry: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log work time"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      entry.ID,
		"message": "Work time logged successfully",
	})
}

// FinishWorkTime sets the end time of an in-progress work entry
func FinishWorkTime(c *gin.Context) {
	entryID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid work time ID"})
		return
	}

	userIDValue, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}
	userID, ok := userIDValue.(uint)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		return
	}

	var entry database.WorkTime
	if err := database.DB.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Work time entry not found or doesn't belong to you"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if entry.EndTime != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Work time entry is already finished"})
		return
	}

	now := time.Now()
	if err := database.DB.Model(&entry).Update("end_time", now).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to finish work time entry"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work time entry finished successfully"})
}

// GetWorkTimes returns all work time entries for a complaint
func GetWorkTimes(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var entries []database.WorkTime
	if err := database.DB.
		Preload("User").
		Where("complaint_id = ?", complaintID).
		Order("work_date DESC, start_time DESC").
		Find(&entries).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	for i := range entries {
		entries[i].User.PasswordHash = ""
	}

	c.JSON(http.StatusOK, entries)
}
