package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coolcare/database"
	"coolcare/report"
	"coolcare/storage"
)

const maxDescriptionLength = 2000

// CreateComplaint handles the public intake form (multipart: fields
// plus optional images[])
func CreateComplaint(c *gin.Context) {
	customerName := c.PostForm("customer_name")
	phone := c.PostForm("phone")
	email := c.PostForm("email")
	address := c.PostForm("address")
	buildingName := c.PostForm("building_name")
	apartmentNumber := c.PostForm("apartment_number")
	area := c.PostForm("area")
	description := c.PostForm("description")
	convenientTime := c.PostForm("convenient_time")

	if customerName == "" || phone == "" || address == "" || description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, phone, address and description are required"})
		return
	}

	if len(description) > maxDescriptionLength {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description is too long"})
		return
	}

	if convenientTime != "" && !report.IsValidSlot(convenientTime) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid convenient time slot"})
		return
	}

	// Building must come from the managed reference list
	if buildingName != "" {
		var count int64
		if err := database.DB.Model(&database.Building{}).Where("name = ?", buildingName).Count(&count).Error; err != nil {
			log.Printf("Database error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}
		if count == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown building"})
			return
		}
	}

	complaint := database.Complaint{
		CustomerName:    customerName,
		Phone:           phone,
		Email:           email,
		Address:         address,
		BuildingName:    buildingName,
		ApartmentNumber: apartmentNumber,
		Area:            area,
		Description:     description,
		ConvenientTime:  convenientTime,
	}

	tx := database.DB.Begin()
	if tx.Error != nil {
		log.Printf("Transaction error: %v", tx.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := tx.Create(&complaint).Error; err != nil {
		tx.Rollback()
		log.Printf("Error creating complaint: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}

	// Save uploaded images, if any
	form, err := c.MultipartForm()
	if err == nil && form != nil {
		for _, file := range form.File["images"] {
			path, err := storage.SaveUpload(file)
			if err != nil {
				tx.Rollback()
				log.Printf("Error saving upload: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
			if err := tx.Create(&database.ComplaintImage{ComplaintID: complaint.ID, Path: path}).Error; err != nil {
				tx.Rollback()
				log.Printf("Error recording image: %v", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
				return
			}
		}
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("Error committing transaction: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit complaint"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":      complaint.ID,
		"message": "Complaint submitted successfully",
	})
}

// GetTimeSlots returns the 12 convenient-time windows for the form
func GetTimeSlots(c *gin.Context) {
	slots := make([]gin.H, 0, len(report.SlotKeys))
	for _, key := range report.SlotKeys {
		slots = append(slots, gin.H{"key": key, "label": report.TimeSlots[key]})
	}
	c.JSON(http.StatusOK, slots)
}

// GetComplaints returns complaints based on user role: admins see all,
// employees only their assigned ones
func GetComplaints(c *gin.Context) {
	roleValue, exists := c.Get("role")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User role not found"})
		return
	}
	role, ok := roleValue.(string)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid role format"})
		return
	}

	query := database.DB.Model(&database.Complaint{}).
		Preload("Images").
		Preload("Assignee")

	switch role {
	case database.RoleAdmin:
		// Admin can see all complaints
	case database.RoleEmployee:
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
		query = query.Where("assignee_id = ?", userID)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid role"})
		return
	}

	if building := c.Query("building"); building != "" {
		query = query.Where("building_name = ?", building)
	}
	if phone := c.Query("phone"); phone != "" {
		query = query.Where("phone = ?", phone)
	}

	var complaints []database.Complaint
	if err := query.Order("created_at DESC, id DESC").Find(&complaints).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, complaints)
}

// GetComplaintByID returns a specific complaint with all detail
func GetComplaintByID(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var complaint database.Complaint
	query := database.DB.
		Preload("Images").
		Preload("Assignee").
		Preload("Responses.Responder").
		Preload("Responses.Images").
		Preload("WorkTimes.User")

	if err := query.First(&complaint, complaintID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	// Employees may only view complaints assigned to them
	if role, _ := c.Get("role"); role == database.RoleEmployee {
		userIDValue, _ := c.Get("user_id")
		userID, _ := userIDValue.(uint)
		if complaint.AssigneeID == nil || *complaint.AssigneeID != userID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have permission to view this complaint"})
			return
		}
	}

	c.JSON(http.StatusOK, complaint)
}

// AssignComplaintRequest contains the assignment payload
type AssignComplaintRequest struct {
	AssigneeID uint `json:"assignee_id" binding:"required"`
}

// AssignComplaint assigns a complaint to an employee (admin endpoint)
func AssignComplaint(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	var request AssignComplaintRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Verify the assignee exists and is staff
	var assignee database.User
	if err := database.DB.First(&assignee, request.AssigneeID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid assignee"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	result := database.DB.Model(&database.Complaint{}).
		Where("id = ?", complaintID).
		Update("assignee_id", request.AssigneeID)
	if result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign complaint"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	recordAudit(c, database.AuditActionAssign, "complaint", int64(complaintID),
		"Assigned to "+assignee.Username)

	c.JSON(http.StatusOK, gin.H{"message": "Complaint assigned successfully"})
}

// DeleteComplaint removes a complaint (admin endpoint)
func DeleteComplaint(c *gin.Context) {
	complaintID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid complaint ID"})
		return
	}

	result := database.DB.Delete(&database.Complaint{}, complaintID)
	if result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete complaint"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Complaint not found"})
		return
	}

	recordAudit(c, database.AuditActionDelete, "complaint", int64(complaintID), "Complaint deleted")

	c.JSON(http.StatusOK, gin.H{"message": "Complaint deleted successfully"})
}
