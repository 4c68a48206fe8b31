package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/listview"
)

type resolverStub map[string]string

func (r resolverStub) ResolveUser(_ context.Context, token string) (string, error) {
	if userID, ok := r[token]; ok {
		return userID, nil
	}
	return "", errors.New("unknown token")
}

func testServices(seenUser *string) Services {
	return Services{
		Habits: habitStub{
			completeFn: func(_ context.Context, userID, id string) (*habit.CompleteResult, error) {
				*seenUser = userID
				if id == "cooling" {
					return nil, habit.ErrCooldownActive
				}
				return &habit.CompleteResult{Habit: &habit.Habit{ID: id}, Completed: true}, nil
			},
		},
		Spaces: spaceStub{},
		Lists: listStub{listFn: func(_ context.Context, userID string, _ listview.Scope, _ language.Tag) ([]listview.Entry, error) {
			*seenUser = userID
			return sampleEntries(), nil
		}},
		Activity: activityStub{},
	}
}

func clientSession(t *testing.T, srv *sdkmcp.Server) *sdkmcp.ClientSession {
	t.Helper()

	ctx := context.Background()
	ct, st := sdkmcp.NewInMemoryTransports()

	ss, err := srv.Connect(ctx, st, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ss.Close() })

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(ctx, ct, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	return cs
}

func resultText(t *testing.T, result *sdkmcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*sdkmcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestServer_ListsCatalogTools(t *testing.T) {
	var user string
	cs := clientSession(t, NewServer(Config{Services: testServices(&user), TransportMode: "stdio"}))

	result, err := cs.ListTools(context.Background(), &sdkmcp.ListToolsParams{})
	require.NoError(t, err)

	names := map[string]bool{}
	for _, tool := range result.Tools {
		names[tool.Name] = true
	}
	for _, def := range buildToolCatalog() {
		require.True(t, names[def.Name], def.Name)
	}
	require.Len(t, result.Tools, len(buildToolCatalog()))
}

func TestServer_CallTools(t *testing.T) {
	var user string
	cs := clientSession(t, NewServer(Config{
		Services:      testServices(&user),
		TransportMode: "stdio",
		DefaultUser:   "local",
		Locale:        language.English,
	}))
	ctx := context.Background()

	result, err := cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: "list_habits", Arguments: map[string]any{"scope": "all"}})
	require.NoError(t, err)
	require.False(t, result.IsError)
	require.Equal(t, "local", user)

	var list ListHabitsResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &list))
	require.Equal(t, "en", list.Locale)
	require.Equal(t, "All", list.ScopeLabel)
	require.Equal(t, []listview.EntryKind{listview.KindHabit, listview.KindDivider, listview.KindHabit},
		[]listview.EntryKind{list.Entries[0].Kind, list.Entries[1].Kind, list.Entries[2].Kind})
	require.Equal(t, "h1", list.Entries[0].Habit.ID)
	require.Equal(t, "3x daily (1/3)", list.Entries[0].Habit.Progress)

	result, err = cs.CallTool(ctx, &sdkmcp.CallToolParams{Name: "complete_habit", Arguments: map[string]any{"id": "cooling"}})
	require.NoError(t, err)
	require.True(t, result.IsError)

	var apiErr APIError
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &apiErr))
	require.Equal(t, "COOLDOWN_ACTIVE", apiErr.Code)
	require.NotEmpty(t, apiErr.RecoveryHint)
}

func TestServer_DocResources(t *testing.T) {
	var user string
	cs := clientSession(t, NewServer(Config{Services: testServices(&user), TransportMode: "stdio"}))

	for _, doc := range docResources {
		result, err := cs.ReadResource(context.Background(), &sdkmcp.ReadResourceParams{URI: doc.URI})
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		require.Equal(t, doc.Content, result.Contents[0].Text)
	}
}

func TestServer_HTTPAuthRejectsMissingToken(t *testing.T) {
	var user string
	cs := clientSession(t, NewServer(Config{
		Services:      testServices(&user),
		Resolver:      resolverStub{"secret": "user1"},
		AuthEnabled:   true,
		TransportMode: "http",
	}))

	_, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: "list_habits"})
	require.ErrorContains(t, err, "unauthorized")
	require.Empty(t, user)
}

func TestAuthMiddleware(t *testing.T) {
	var gotUser string
	next := func(ctx context.Context, _ string, _ sdkmcp.Request) (sdkmcp.Result, error) {
		gotUser = getUserID(ctx)
		return &sdkmcp.CallToolResult{}, nil
	}
	handler := authMiddleware(resolverStub{"secret": "user1"})(next)

	request := func(authorization string) *sdkmcp.CallToolRequest {
		header := http.Header{}
		if authorization != "" {
			header.Set("Authorization", authorization)
		}
		return &sdkmcp.CallToolRequest{Params: &sdkmcp.CallToolParamsRaw{Name: "list_habits"}, Extra: &sdkmcp.RequestExtra{Header: header}}
	}

	_, err := handler(context.Background(), "tools/call", request("Bearer secret"))
	require.NoError(t, err)
	require.Equal(t, "user1", gotUser)

	_, err = handler(context.Background(), "tools/call", request("Bearer nope"))
	require.ErrorContains(t, err, "unauthorized")

	_, err = handler(context.Background(), "tools/call", request(""))
	require.ErrorContains(t, err, "missing bearer token")

	gotUser = ""
	_, err = handler(context.Background(), "ping", &sdkmcp.CallToolRequest{})
	require.NoError(t, err)
	require.Empty(t, gotUser)
}
