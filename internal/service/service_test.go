package service

import (
	"fmt"
	"io"
	"testing"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database for one test
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.ChatMessage{},
		&models.Product{},
		&models.Color{},
		&models.ShippingInfo{},
		&models.Order{},
		&models.OrderDetail{},
	))
	return db
}

// testLogger returns a logger that swallows output
func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", JSON: true, Output: io.Discard})
}
