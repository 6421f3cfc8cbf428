package database

import (
	"time"

	"gorm.io/gorm"
)

// User represents a staff member (admin or employee)
type User struct {
	gorm.Model
	Name         string `json:"name"`
	Username     string `json:"username" gorm:"uniqueIndex;size:100"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// Building represents a serviced building (admin-managed reference data)
type Building struct {
	gorm.Model
	Name    string `json:"name" gorm:"size:255;not null"`
	Emirate string `json:"emirate" gorm:"size:100"`
}

// Complaint represents a customer-filed service issue
type Complaint struct {
	gorm.Model
	CustomerName    string           `json:"customer_name" gorm:"size:255;not null"`
	Phone           string           `json:"phone" gorm:"size:50;not null;index"`
	Email           string           `json:"email" gorm:"size:255"`
	Address         string           `json:"address" gorm:"size:500"`
	BuildingName    string           `json:"building_name" gorm:"size:255;index"`
	ApartmentNumber string           `json:"apartment_number" gorm:"size:50"`
	Area            string           `json:"area" gorm:"size:255"`
	Description     string           `json:"description" gorm:"size:2000"`
	ConvenientTime  string           `json:"convenient_time" gorm:"size:20"`
	AssigneeID      *uint            `json:"assignee_id"`
	Assignee        *User            `gorm:"foreignKey:AssigneeID" json:"assignee"`
	Images          []ComplaintImage `gorm:"foreignKey:ComplaintID" json:"images"`
	Responses       []Response       `gorm:"foreignKey:ComplaintID" json:"responses"`
	WorkTimes       []WorkTime       `gorm:"foreignKey:ComplaintID" json:"work_times"`
}

// ComplaintImage stores an opaque object-storage path attached to a complaint
type ComplaintImage struct {
	gorm.Model
	ComplaintID uint   `json:"complaint_id" gorm:"index;not null"`
	Path        string `json:"path" gorm:"size:500;not null"`
}

// Response represents a staff note against a complaint, optionally
// tracking an active work session via StartedAt/CompletedAt
type Response struct {
	gorm.Model
	ComplaintID uint            `json:"complaint_id" gorm:"index;not null"`
	ResponderID uint            `json:"responder_id" gorm:"index;not null"`
	Text        string          `json:"text" gorm:"size:2000"`
	StartedAt   *time.Time      `json:"started_at"`
	CompletedAt *time.Time      `json:"completed_at"`
	Responder   User            `gorm:"foreignKey:ResponderID" json:"responder"`
	Images      []ResponseImage `gorm:"foreignKey:ResponseID" json:"images"`
}

// ResponseImage stores an image path attached to a response
type ResponseImage struct {
	gorm.Model
	ResponseID uint   `json:"response_id" gorm:"index;not null"`
	Path       string `json:"path" gorm:"size:500;not null"`
}

// WorkTime represents a logged work session against a complaint.
// A nil EndTime means the session is still in progress.
type WorkTime struct {
	gorm.Model
	ComplaintID uint       `json:"complaint_id" gorm:"index;not null"`
	UserID      uint       `json:"user_id" gorm:"index;not null"`
	WorkDate    time.Time  `json:"work_date"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	User        User       `gorm:"foreignKey:UserID" json:"user"`
}

// Constants for roles and statuses
const (
	// User roles
	RoleAdmin    = "admin"
	RoleEmployee = "employee"
)
