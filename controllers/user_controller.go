package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coolcare/database"
	"coolcare/utils"
)

// CreateUserRequest contains the data for creating a staff member
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=admin employee"`
}

// CreateUser creates a staff user (admin endpoint)
func CreateUser(c *gin.Context) {
	var request CreateUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Check if username already exists
	var count int64
	database.DB.Model(&database.User{}).Where("username = ?", request.Username).Count(&count)

	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	passwordHash, err := utils.HashPassword(request.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	user := database.User{
		Name:         request.Name,
		Username:     request.Username,
		PasswordHash: passwordHash,
		Role:         request.Role,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating user"})
		return
	}

	recordAudit(c, database.AuditActionCreate, "user", int64(user.ID), "Created "+user.Role+" "+user.Username)

	user.PasswordHash = ""
	c.JSON(http.StatusCreated, user)
}

// GetUsers returns all staff users (admin endpoint)
func GetUsers(c *gin.Context) {
	var users []database.User
	query := database.DB.Order("name ASC")

	if role := c.Query("role"); role != "" {
		query = query.Where("role = ?", role)
	}

	if err := query.Find(&users).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	for i := range users {
		users[i].PasswordHash = ""
	}

	c.JSON(http.StatusOK, users)
}

// GetUserByID returns a specific staff user (admin endpoint)
func GetUserByID(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	var user database.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	user.PasswordHash = ""
	c.JSON(http.StatusOK, user)
}

// DeleteUser removes a staff user (admin endpoint)
func DeleteUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	// An admin cannot delete their own account
	if selfID, exists := c.Get("user_id"); exists {
		if id, ok := selfID.(uint); ok && uint64(id) == userID {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot delete your own account"})
			return
		}
	}

	var user database.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	recordAudit(c, database.AuditActionRemove, "user", int64(user.ID), "Deleted "+user.Role+" "+user.Username)

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// recordAudit stores an audit log entry for an admin action. Failures
// are logged, not surfaced.
func recordAudit(c *gin.Context, action, entityType string, entityID int64, description string) {
	var actorID int64
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			actorID = int64(id)
		}
	}

	entry := database.AuditLog{
		UserID:      actorID,
		Action:      action,
		EntityType:  entityType,
		EntityID:    entityID,
		Description: description,
		IP:          c.ClientIP(),
	}

	if err := database.DB.Create(&entry).Error; err != nil {
		log.Printf("Failed to record audit entry: %v", err)
	}
}
