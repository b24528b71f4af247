package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/sekolah-admin-api/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Announcement{},
		&models.Alert{},
		&models.Exam{},
		&models.Expense{},
		&models.Student{},
		&models.Teacher{},
		&models.Bus{},
		&models.StudentAttendance{},
		&models.TeacherAttendance{},
		&models.Invoice{},
	))
	return db
}

func campusRef(id uint) *uint {
	return &id
}
