package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coolcare/database"
	"coolcare/storage"
)

// CreateResponse adds a staff response to a complaint (multipart:
// text, optional start_work=true to open a work session, optional
// images[])
func CreateResponse(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
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

	text := c.PostForm("text")
	startWork := c.PostForm("start_work") == "true"

	if text == "" && !startWork {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Response text is required"})
		return
	}

	// Check the complaint exists
	var complaint database.Complaint
	if err := database.DB.First(&complaint, complaintID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	response := database.Response{
		ComplaintID: uint(complaintID),
		ResponderID: userID,
		Text:        text,
	}

	if startWork {
		// At most one open session per (complaint, responder). A partial
		// unique index backs this up on Postgres.
		var openCount int64
		if err := database.DB.Model(&database.Response{}).
			Where("complaint_id = ? AND responder_id = ? AND started_at IS NOT NULL AND completed_at IS NULL",
				complaintID, userID).
			Count(&openCount).Error; err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if openCount > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "You already have an open work session on this complaint"})
			return
		}

		now := time.Now()
		response.StartedAt = &now
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := tx.Create(&response).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating response: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create response"})
		return
	}

	form, formErr := c.MultipartForm()
	if formErr == nil && form != nil {
		for _, file := range form.File["images"] {
			path, err := storage.SaveUpload(file)
			if err != nil {
				tx.Rollback()
				log.Printf("Error saving upload: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
			if err := tx.Create(&database.ResponseImage{ResponseID: response.ID, Path: path}).Error; err != nil {
				tx.Rollback()
				log.Printf("Error recording image: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create response"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      response.ID,
		"message": "Response created successfully",
	})
}

// CompleteResponse closes an open work session on a response
func CompleteResponse(c *gin.Context) {
	responseID, err := strconv.ParseUint(c.Param("rid"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid response ID"})
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

	var response database.Response
	if err := database.DB.Where("id = ? AND responder_id = ?", responseID, userID).First(&response).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Response not found or doesn't belong to you"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if response.StartedAt == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Response has no work session"})
		return
	}
	if response.CompletedAt != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Work session already completed"})
		return
	}

	now := time.Now()
	if err := database.DB.Model(&response).Update("completed_at", now).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete work session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Work session completed successfully"})
}

// GetResponses returns all responses for a complaint
func GetResponses(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var responses []database.Response
	if err := database.DB.
		Preload("Responder").
		Preload("Images").
		Where("complaint_id = ?", complaintID).
		Order("created_at ASC").
		Find(&responses).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	for i := range responses {
		responses[i].Responder.PasswordHash = ""
	}

	c.JSON(http.StatusOK, responses)
}
