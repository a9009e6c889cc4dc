package integration_test

import (
	"os"
	"sync"
	"testing"

	"vfxworks_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer returns the shared test server, building it on first use.
func GetTestServer(t *testing.T) *helpers.TestServer {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration tests")
	}
	serverOnce.Do(func() {
		globalTestServer = helpers.NewTestServer(t)
	})
	return globalTestServer
}

func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		globalTestServer.Close()
	}

	os.Exit(code)
}
