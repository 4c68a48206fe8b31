package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// newStdioSession spawns the server binary in stdio mode against an
// in-memory database.
func newStdioSession(t *testing.T, extraEnv ...string) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "./bin/habits-mcp"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/habits-mcp"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'go build -o bin/habits-mcp ./cmd/server' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"HABITS_CONFIG_PATH=",
		"HABITS_TRANSPORT_MODE=stdio",
		"HABITS_DB_PATH=:memory:",
		"HABITS_RESET_INTERVAL=0s",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		session.Close()
		cancel()
	})
	return session
}

func TestStdioFunctional_Protocol(t *testing.T) {
	session := newStdioSession(t)
	ctx := context.Background()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.Equal(t, "habits-mcp", initResult.ServerInfo.Name)
		require.Equal(t, "0.1.0", initResult.ServerInfo.Version)
		require.Contains(t, initResult.Instructions, "list_habits")
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, &sdkmcp.ListToolsParams{})
		require.NoError(t, err)
		names := map[string]bool{}
		for _, tool := range tools.Tools {
			names[tool.Name] = true
			require.NotNil(t, tool.InputSchema, tool.Name)
		}
		for _, want := range []string{"list_habits", "complete_habit", "create_space", "get_recent_activity"} {
			require.True(t, names[want], want)
		}
	})

	t.Run("Resources", func(t *testing.T) {
		res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "habits://docs/list-ordering"})
		require.NoError(t, err)
		require.Contains(t, res.Contents[0].Text, "divider")
	})

	t.Run("Ping", func(t *testing.T) {
		require.NoError(t, session.Ping(ctx, nil))
	})
}

func TestStdioFunctional_Workflow(t *testing.T) {
	session := newStdioSession(t, "HABITS_LOCALE=en")

	var sp struct {
		ID string `json:"id"`
	}
	decodeTool(t, session, "create_space", map[string]any{"name": "Home"}, &sp)
	decodeTool(t, session, "create_habit", map[string]any{"id": "read", "title": "Read", "duration": "1pcs", "space_id": sp.ID}, &struct{}{})
	decodeTool(t, session, "complete_habit", map[string]any{"id": "read"}, &struct{}{})

	var list habitList
	decodeTool(t, session, "list_habits", nil, &list)
	require.Equal(t, []string{"DIVIDER", "read"}, rowIDs(list))
	require.Equal(t, "Completed", list.Entries[0].Label)
	require.Equal(t, "1 piece", list.Entries[1].Habit.DurationLabel)

	raw := callTool(t, session, "list_spaces", nil)
	var spaces struct {
		Spaces  []json.RawMessage `json:"spaces"`
		Palette []string          `json:"palette"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw.Content[0].(*sdkmcp.TextContent).Text), &spaces))
	require.Len(t, spaces.Spaces, 1)
	require.Contains(t, spaces.Palette, "teal")
}
