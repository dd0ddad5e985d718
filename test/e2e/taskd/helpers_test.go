package taskd_test

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	httpapi "github.com/broadleaf/taskd/internal/http"
	"github.com/broadleaf/taskd/internal/service"
	"github.com/broadleaf/taskd/internal/store/drivers/sqlite"
	"github.com/broadleaf/taskd/pkg/cryptox"
	"github.com/broadleaf/taskd/pkg/jwtx"
	"github.com/broadleaf/taskd/pkg/slogx"
	"github.com/broadleaf/taskd/pkg/tasksdk"
	"github.com/stretchr/testify/require"
)

/*
 * Common helpers for end-to-end tests. Each test gets a fully wired service
 * (sqlite in-memory store, HS256 token signer, real router) behind an
 * httptest server, exercised through the SDK client.
 */

const (
	testIssuer = "taskd-test"
	testSecret = "e2e-signing-secret-not-for-prod"

	aliceEmail    = "alice@example.com"
	alicePassword = "AlicePass123!"
	aliceName     = "Alice Smith"

	bobEmail    = "bob@example.com"
	bobPassword = "BobPass123!"
	bobName     = "Bob Jones"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "taskd-e2e-*")
	if err != nil {
		os.Exit(1)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()

	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// setupServer wires the full service in-process and returns an SDK client
// pointed at it.
func setupServer(t *testing.T) *tasksdk.SDKClient {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	tokens, err := jwtx.NewHS256(jwtx.AlgHS256, []byte(testSecret), testIssuer)
	require.NoError(t, err)

	logger := slogx.New(slogx.Config{
		Service: "taskd",
		Version: "test",
		Env:     "test",
		Level:   "error",
		Format:  "text",
	})

	router := httpapi.NewRouter("test", st, logger)
	router.AuthService = &service.AuthService{
		Store:     st,
		Signer:    tokens,
		Issuer:    testIssuer,
		AccessTTL: jwtx.DefaultAccessTokenTTL,
	}
	router.IdentityService = &service.IdentityService{Store: st, Verifier: tokens}
	router.TaskService = &service.TaskService{Store: st}
	router.ApplyRoutes()

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return tasksdk.NewSDKClient(server.URL)
}

// registerAndLogin creates an account and returns an authenticated session.
func registerAndLogin(t *testing.T, client *tasksdk.SDKClient, email, password, fullName string) *tasksdk.Session {
	t.Helper()
	ctx := context.Background()

	user, err := client.Register(ctx, email, password, fullName)
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)

	session, err := client.Login(ctx, email, password)
	require.NoError(t, err)
	require.NotNil(t, session)

	return session
}

// requireAPIError asserts an error is an *APIError with the given status and code.
func requireAPIError(t *testing.T, err error, statusCode int, code string) {
	t.Helper()

	require.Error(t, err)
	apiErr, ok := err.(*tasksdk.APIError)
	require.True(t, ok, "expected *tasksdk.APIError, got %T: %v", err, err)
	require.Equal(t, statusCode, apiErr.StatusCode)
	require.Equal(t, code, apiErr.Code)
}

func futureDate(d time.Duration) *time.Time {
	due := time.Now().UTC().Add(d).Truncate(time.Second)
	return &due
}
