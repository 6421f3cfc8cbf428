package controllers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"coolcare/database"
)

// BuildingRequest contains the data for creating/updating a building
type BuildingRequest struct {
	Name    string `json:"name" binding:"required"`
	Emirate string `json:"emirate" binding:"required"`
}

// GetBuildings returns the building list for the public form picker
func GetBuildings(c *gin.Context) {
	var buildings []database.Building
	query := database.DB.Order("name ASC")

	if emirate := c.Query("emirate"); emirate != "" {
		query = query.Where("emirate = ?", emirate)
	}

	if err := query.Find(&buildings).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	c.JSON(http.StatusOK, buildings)
}

// CreateBuilding adds a building (admin endpoint)
func CreateBuilding(c *gin.Context) {
	var request BuildingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var count int64
	database.DB.Model(&database.Building{}).Where("name = ?", request.Name).Count(&count)
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Building already exists"})
		return
	}

	building := database.Building{
		Name:    request.Name,
		Emirate: request.Emirate,
	}

	if err := database.DB.Create(&building).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create building"})
		return
	}

	c.JSON(http.StatusCreated, building)
}

// UpdateBuilding updates a building (admin endpoint)
func UpdateBuilding(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
		return
	}

	var request BuildingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var building database.Building
	if err := database.DB.First(&building, buildingID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
			return
		}
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
		return
	}

	building.Name = request.Name
	building.Emirate = request.Emirate

	if err := database.DB.Save(&building).Error; err != nil {
		log.Printf("Database error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update building"})
		return
	}

	c.JSON(http.StatusOK, building)
}

// DeleteBuilding removes a building (admin endpoint)
func DeleteBuilding(c *gin.Context) {
	buildingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid building ID"})
		return
	}

	result := database.DB.Delete(&database.Building{}, buildingID)
	if result.Error != nil {
		log.Printf("Database error: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete building"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Building not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Building deleted successfully"})
}
