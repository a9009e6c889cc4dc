package helpers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vfxworks_backend/database"
	"vfxworks_backend/internal/app"
	"vfxworks_backend/internal/config"
	"vfxworks_backend/internal/logger"
	"vfxworks_backend/pkg/contextkeys"
)

// TestServer wraps the fully wired router and the test database. Requests are
// served in-process so each test can pin its own transaction to the request
// context and roll everything back afterwards.
type TestServer struct {
	Router *gin.Engine
	DB     *gorm.DB
}

// NewTestServer connects to the database named by DATABASE_URL, migrates it,
// and builds the router. Tests are skipped when DATABASE_URL is not set.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration tests")
	}
	if os.Getenv("JWT_SECRET") == "" {
		os.Setenv("JWT_SECRET", "integration-test-secret")
	}

	gin.SetMode(gin.TestMode)
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestServer{
		Router: app.SetupRouter(cfg, db),
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	sqlDB, err := ts.DB.DB()
	if err == nil {
		sqlDB.Close()
	}
}

// BeginTransaction opens a transaction for one test's data. Everything the
// test creates, directly or through the API, lives inside it.
func (ts *TestServer) BeginTransaction(t *testing.T) *gorm.DB {
	t.Helper()
	tx := ts.DB.Begin()
	if tx.Error != nil {
		t.Fatalf("failed to begin transaction: %v", tx.Error)
	}
	return tx
}

func (ts *TestServer) RollbackTransaction(t *testing.T, tx *gorm.DB) {
	t.Helper()
	tx.Rollback()
}

// SendRequest serves an API request in-process with the given transaction
// bound to the request context, so handlers operate on the test's data.
func (ts *TestServer) SendRequest(t *testing.T, tx *gorm.DB, method, path, token string, body interface{}) (*http.Response, string) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, path, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	if tx != nil {
		ctx := context.WithValue(req.Context(), contextkeys.DBContextKey, tx)
		req = req.WithContext(ctx)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	recorder := httptest.NewRecorder()
	ts.Router.ServeHTTP(recorder, req)

	res := recorder.Result()
	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	res.Body.Close()

	return res, string(resBody)
}
