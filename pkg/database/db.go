package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/arnavshah/jobshop-scheduler-go/pkg/models"
)

// APIKey represents the api_keys table
type APIKey struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Key       string     `gorm:"unique;not null" json:"key"`
	Name      string     `gorm:"not null" json:"name"`
	RateLimit int        `gorm:"default:10000" json:"rate_limit"`
	CreatedAt time.Time  `json:"created_at"`
	LastUsed  *time.Time `json:"last_used"`
}

// APIUsage represents the api_usage table
type APIUsage struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	KeyID        uint   `gorm:"uniqueIndex:idx_key_date;not null" json:"key_id"`
	Date         string `gorm:"uniqueIndex:idx_key_date;not null" json:"date"`
	RequestCount int    `gorm:"default:0" json:"request_count"`
	TotalJobs    int    `gorm:"default:0" json:"total_jobs"`
	TotalEvents  int    `gorm:"default:0" json:"total_events"`
}

// MasterUser represents the master_users table
type MasterUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"unique;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// JobRecord represents the jobs table
type JobRecord struct {
	ID             string    `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"not null" json:"title"`
	Client         string    `json:"client"`
	EstimatedHours float64   `gorm:"not null" json:"estimated_hours"`
	Deadline       time.Time `json:"deadline"`
	Priority       string    `json:"priority"`
	Status         string    `gorm:"default:pending" json:"status"`
	JobType        string    `json:"job_type"`
	CreatedAt      time.Time `json:"created_at"`
}

// StaffRecord represents the staff_members table
type StaffRecord struct {
	ID                string                      `gorm:"primaryKey" json:"id"`
	Name              string                      `gorm:"not null" json:"name"`
	Skills            []string                    `gorm:"serializer:json" json:"skills"`
	Availability      map[string]bool             `gorm:"serializer:json" json:"availability"`
	AvailabilityHours map[string]models.DayWindow `gorm:"serializer:json" json:"availability_hours"`
	CreatedAt         time.Time                   `json:"created_at"`
}

// MachineRecord represents the machines table
type MachineRecord struct {
	ID              string     `gorm:"primaryKey" json:"id"`
	Name            string     `gorm:"not null" json:"name"`
	Type            string     `json:"type"`
	Capabilities    []string   `gorm:"serializer:json" json:"capabilities"`
	HoursPerDay     float64    `json:"hours_per_day"`
	Status          string     `gorm:"default:operational" json:"status"`
	LastMaintenance *time.Time `json:"last_maintenance"`
	NextMaintenance *time.Time `json:"next_maintenance"`
	CreatedAt       time.Time  `json:"created_at"`
}

// EventRecord represents the schedule_events table (commitments)
type EventRecord struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	JobID     string    `gorm:"index;not null" json:"job_id"`
	StaffID   string    `gorm:"index" json:"staff_id"`
	MachineID string    `gorm:"index" json:"machine_id"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// InitDB initializes the database connection and migrates the schema
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "scheduler.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	Migrate(db)

	return db
}

// Migrate runs the auto migration for every table
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&APIKey{}, &APIUsage{}, &MasterUser{},
		&JobRecord{}, &StaffRecord{}, &MachineRecord{}, &EventRecord{},
	)
}
