// Package testserver runs the full habits stack behind a streamable HTTP
// MCP endpoint for end-to-end tests.
package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/invalidation"
	"github.com/habitxp/habits-mcp/internal/listview"
	"github.com/habitxp/habits-mcp/internal/mcp"
	"github.com/habitxp/habits-mcp/internal/sqlite"
)

type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Token  string
	UserID string

	Habits *habit.Service
	Spaces *space.Service
}

// New starts a server whose clock is now. A nil now uses time.Now.
func New(t *testing.T, token, userID string, now func() time.Time) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	habitRepo := sqlite.NewHabitRepository(db)
	spaceRepo := sqlite.NewSpaceRepository(db)
	activityRepo := sqlite.NewActivityRepository(db)
	apiKeys := sqlite.NewAPIKeyRepository(db)

	bus := invalidation.NewBus()
	habitSvc := habit.NewService(habitRepo, sqlite.NewCompletionRepository(db), spaceRepo, activityRepo, bus, nil)
	if now != nil {
		habitSvc.WithClock(now)
	}
	spaceSvc := space.NewService(spaceRepo, habitRepo, activityRepo, bus, nil)
	listSvc := listview.NewService(habitSvc, spaceSvc, language.German, bus, time.Minute, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Habits:   habitSvc,
			Spaces:   spaceSvc,
			Lists:    listSvc,
			Activity: activity.NewService(activityRepo, nil),
		},
		Resolver:      apiKeys,
		AuthEnabled:   true,
		TransportMode: "http",
		Locale:        language.German,
	})
	handler := sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server { return mcpServer }, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	server := httptest.NewServer(mux)

	ts := &TestServer{
		Server: server,
		DB:     db,
		Token:  token,
		UserID: userID,
		Habits: habitSvc,
		Spaces: spaceSvc,
	}
	require.NoError(t, apiKeys.Create(context.Background(), userID, token, "test"))

	t.Cleanup(func() {
		server.Close()
		listSvc.Close()
		_ = db.Close()
	})

	return ts
}

// AddAPIKey registers another token.
func (ts *TestServer) AddAPIKey(t *testing.T, token, userID string) {
	t.Helper()
	require.NoError(t, sqlite.NewAPIKeyRepository(ts.DB).Create(context.Background(), userID, token, "test"))
}

// Connect opens an MCP client session authenticated with token.
func (ts *TestServer) Connect(t *testing.T, token string) (*sdkmcp.ClientSession, error) {
	t.Helper()

	transport := &sdkmcp.StreamableClientTransport{
		Endpoint:   ts.Server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearerTransport{token: token, base: http.DefaultTransport}},
	}
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(context.Background(), transport, nil)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { session.Close() })
	return session, nil
}

type bearerTransport struct {
	token string
	base  http.RoundTripper
}

func (b bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}
	return b.base.RoundTrip(req)
}
