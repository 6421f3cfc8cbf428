package database

import (
	"log"

	"coolcare/config"
)

// RunMigrations runs all database migrations
func RunMigrations() error {
	log.Println("Running database migrations...")

	// AutoMigrate will create tables if they don't exist
	if err := DB.AutoMigrate(
		&User{},
		&Building{},
		&Complaint{},
		&ComplaintImage{},
		&Response{},
		&ResponseImage{},
		&WorkTime{},
		&AuditLog{},
	); err != nil {
		log.Printf("Migration failed: %v", err)
		return err
	}

	// At most one open work session per (complaint, responder). The action
	// layer checks this too, but a double-submit race loses here instead.
	if config.AppConfig.DBDriver == "postgres" {
		if err := DB.Exec(
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_responses_open_session
			 ON responses (complaint_id, responder_id)
			 WHERE started_at IS NOT NULL AND completed_at IS NULL AND deleted_at IS NULL`,
		).Error; err != nil {
			log.Printf("Failed to create open-session index: %v", err)
			return err
		}
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultAdmin creates a default admin if none exists
func SeedDefaultAdmin(passwordHash string) {
	var count int64
	if err := DB.Model(&User{}).Where("role = ?", RoleAdmin).Count(&count).Error; err != nil {
		log.Printf("❌ Failed to check existing admin: %v", err)
		return
	}

	if count == 0 {
		admin := User{
			Name:         "Super Admin",
			Username:     "admin",
			PasswordHash: passwordHash,
			Role:         RoleAdmin,
		}

		if err := DB.Create(&admin).Error; err != nil {
			log.Printf("❌ Failed to create admin: %v", err)
		} else {
			log.Println("✅ Default admin user created successfully.")
		}
	} else {
		log.Println("ℹ️ Admin user already exists.")
	}
}
