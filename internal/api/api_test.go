package api

import (
	"fmt"
	"io"
	"testing"
	"time"

	"chat-powered-ecommerce/backend/internal/models"
	"chat-powered-ecommerce/backend/internal/repository"
	"chat-powered-ecommerce/backend/internal/service"
	"chat-powered-ecommerce/backend/pkg/jwt"
	"chat-powered-ecommerce/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

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
	))
	return db
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: "error", JSON: true, Output: io.Discard})
}

// asUser injects an authenticated identity the way the JWT middleware would
func asUser(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	}
}

func newSessionService(t *testing.T, db *gorm.DB) *service.SessionService {
	t.Helper()
	return service.NewSessionService(repository.NewGormSessionRepository(db), testLogger())
}

func newUserService(t *testing.T, db *gorm.DB) *service.UserService {
	t.Helper()
	return service.NewUserService(db, jwt.NewService("test-secret", time.Hour))
}
