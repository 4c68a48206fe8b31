package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
	ReadOnly    bool
}

var (
	scopeEnum     = []string{"ALL", "DAILY", "WEEKLY", "MONTHLY"}
	frequencyEnum = []string{"DAILY", "WEEKLY", "MONTHLY", "NONE"}
	unitEnum      = []string{"MINUTES", "HOURS", "PIECES", "METERS", "KILOMETERS", "LITERS"}
)

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func prop(typ, description string) map[string]any {
	return map[string]any{"type": typ, "description": description}
}

func enumProp(description string, values []string) map[string]any {
	return map[string]any{"type": "string", "description": description, "enum": values}
}

// buildToolCatalog returns all available MCP tools.
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		// List
		{
			Name:        "list_habits",
			Description: "List habits for a scope: open habits first, then a divider, then completed habits. Labels are localized.",
			InputSchema: objectSchema(map[string]any{
				"scope":  enumProp("Scope to show (default ALL)", scopeEnum),
				"tab":    prop("integer", "Tab index 0-3 (all, day, week, month); wins over scope"),
				"locale": prop("string", "Locale for sorting and labels, e.g. de or en"),
			}),
			ReadOnly: true,
		},
		{
			Name:        "list_scopes",
			Description: "List the scope tabs with localized labels",
			InputSchema: objectSchema(map[string]any{
				"locale": prop("string", "Locale for labels, e.g. de or en"),
			}),
			ReadOnly: true,
		},

		// Habits
		{
			Name:        "get_habit",
			Description: "Get a habit with its completion state for the current period",
			InputSchema: objectSchema(map[string]any{
				"id": prop("string", "Habit ID"),
			}, "id"),
			ReadOnly: true,
		},
		{
			Name:        "create_habit",
			Description: "Create a habit in an existing space",
			InputSchema: objectSchema(map[string]any{
				"id":             prop("string", "Habit ID (optional, generated if omitted)"),
				"title":          prop("string", "Habit title"),
				"duration":       prop("string", "Encoded duration such as 30min, 1h or 5km"),
				"duration_value": prop("string", "Duration magnitude, used with duration_unit when duration is omitted"),
				"duration_unit":  enumProp("Duration unit", unitEnum),
				"frequency":      enumProp("Repetition window (default DAILY)", frequencyEnum),
				"times":          prop("integer", "Completions needed per period (default 1)"),
				"space_id":       prop("string", "Space the habit belongs to"),
				"deadline":       prop("string", "Deadline (RFC 3339)"),
			}, "title", "space_id"),
		},
		{
			Name:        "update_habit",
			Description: "Update fields of a habit; omitted fields stay unchanged",
			InputSchema: objectSchema(map[string]any{
				"id":             prop("string", "Habit ID"),
				"title":          prop("string", "New title"),
				"duration_value": prop("string", "New duration magnitude"),
				"duration_unit":  enumProp("New duration unit", unitEnum),
				"frequency":      enumProp("New repetition window", frequencyEnum),
				"times":          prop("integer", "New completions per period"),
				"space_id":       prop("string", "Move to this space"),
			}, "id"),
		},
		{
			Name:        "delete_habit",
			Description: "Delete a habit and its completions",
			InputSchema: objectSchema(map[string]any{
				"id": prop("string", "Habit ID"),
			}, "id"),
		},
		{
			Name:        "complete_habit",
			Description: "Record one completion of a habit for the current period",
			InputSchema: objectSchema(map[string]any{
				"id": prop("string", "Habit ID"),
			}, "id"),
		},

		// Spaces
		{
			Name:        "list_spaces",
			Description: "List spaces and the color palette",
			InputSchema: objectSchema(map[string]any{}),
			ReadOnly:    true,
		},
		{
			Name:        "create_space",
			Description: "Create a space to group habits",
			InputSchema: objectSchema(map[string]any{
				"id":        prop("string", "Space ID (optional, generated if omitted)"),
				"name":      prop("string", "Space name"),
				"color_key": prop("string", "Palette color key (default blue)"),
			}, "name"),
		},
		{
			Name:        "update_space_color",
			Description: "Change the color of a space",
			InputSchema: objectSchema(map[string]any{
				"id":        prop("string", "Space ID"),
				"color_key": prop("string", "Palette color key"),
			}, "id", "color_key"),
		},
		{
			Name:        "delete_space",
			Description: "Delete a space together with its habits",
			InputSchema: objectSchema(map[string]any{
				"id": prop("string", "Space ID"),
			}, "id"),
		},

		// History
		{
			Name:        "get_recent_activity",
			Description: "Get recent activity entries, newest first",
			InputSchema: objectSchema(map[string]any{
				"habit_id": prop("string", "Habit ID to filter by"),
				"space_id": prop("string", "Space ID to filter by"),
				"type":     prop("string", "Activity type to filter by, e.g. habit_completed"),
				"limit":    prop("integer", "Maximum number of entries"),
				"offset":   prop("integer", "Offset for pagination"),
			}),
			ReadOnly: true,
		},
	}
}

// registerTools exposes every catalog tool on the server through handler.
func registerTools(server *sdkmcp.Server, handler *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		tool := &sdkmcp.Tool{
			Name:        name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}
		if def.ReadOnly {
			tool.Annotations = &sdkmcp.ToolAnnotations{ReadOnlyHint: true}
		}

		server.AddTool(tool, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := handler.Handle(ctx, getUserID(ctx), name, args)
			if err != nil {
				if logger != nil {
					logger.Debug("tool call failed", "tool", name, "error", err)
				}
				return errorResult(err), nil
			}
			return textResult(result)
		})
	}
}

func textResult(v any) (*sdkmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}, nil
}

// errorResult reports a tool failure in-band so the model can read the code
// and recovery hint.
func errorResult(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr == nil {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
