// Package testutil provides the in-memory database used across package tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mindfunnel/mindfunnel-api/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory sqlite database with all tables migrated.
// Each call returns an isolated database, so tests never share state.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.QuestionSet{},
		&model.Affiliate{},
		&model.Prompt{},
		&model.QuizAttempt{},
		&model.Order{},
		&model.ReportJob{},
		&model.Report{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
