package usecase

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-clinic-api/internal/domain/entity"
)

// newTestDB opens an in-memory SQLite database with the subset of the
// schema the usecase tests touch. Postgres-only column defaults are left
// out, so tests must set IDs explicitly.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection keeps every query on the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	statements := []string{
		`CREATE TABLE roles (
			id INTEGER PRIMARY KEY,
			role_name TEXT NOT NULL,
			description TEXT
		)`,
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			role_id INTEGER NOT NULL,
			email TEXT NOT NULL,
			password TEXT NOT NULL,
			full_name TEXT NOT NULL,
			avatar_url TEXT,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE students (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			profile_id TEXT,
			full_name TEXT NOT NULL,
			roll_number TEXT NOT NULL,
			date_of_birth DATETIME,
			sex TEXT,
			home_address TEXT,
			contact TEXT,
			academic_level TEXT,
			year_level TEXT,
			academic_program TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE guardians (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			full_name TEXT NOT NULL,
			contact TEXT,
			email TEXT NOT NULL UNIQUE,
			created_at DATETIME
		)`,
		`CREATE TABLE student_guardians (
			student_id TEXT NOT NULL,
			guardian_id TEXT NOT NULL,
			relationship TEXT NOT NULL,
			PRIMARY KEY (student_id, guardian_id)
		)`,
		`CREATE TABLE health_records (
			id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(16)))),
			student_id TEXT NOT NULL,
			allergies TEXT,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'Pending',
			submitted_by TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE medical_histories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			health_record_id TEXT NOT NULL,
			condition TEXT NOT NULL,
			had_condition BOOLEAN NOT NULL DEFAULT FALSE
		)`,
		`CREATE TABLE activity_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id TEXT,
			role TEXT,
			action TEXT NOT NULL,
			metadata TEXT,
			created_at DATETIME
		)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}

	for id, name := range map[int]string{
		entity.RoleIDAdmin:     entity.RoleAdmin,
		entity.RoleIDStudent:   entity.RoleStudent,
		entity.RoleIDDoctor:    entity.RoleDoctor,
		entity.RoleIDNurse:     entity.RoleNurse,
		entity.RoleIDSecretary: entity.RoleSecretary,
	} {
		require.NoError(t, db.Create(&entity.Role{ID: id, RoleName: name}).Error)
	}

	return db
}
