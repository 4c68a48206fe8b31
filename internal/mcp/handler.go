package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/habitxp/habits-mcp/internal/domain/activity"
	"github.com/habitxp/habits-mcp/internal/domain/habit"
	"github.com/habitxp/habits-mcp/internal/domain/space"
	"github.com/habitxp/habits-mcp/internal/i18n"
	"github.com/habitxp/habits-mcp/internal/listview"
)

// HabitService defines habit operations needed by MCP.
type HabitService interface {
	Create(ctx context.Context, userID string, req habit.CreateRequest) (*habit.Habit, error)
	Update(ctx context.Context, userID string, req habit.UpdateRequest) (*habit.Habit, error)
	Delete(ctx context.Context, userID, id string) error
	Get(ctx context.Context, userID, id string) (*habit.Habit, error)
	Complete(ctx context.Context, userID, id string) (*habit.CompleteResult, error)
}

// SpaceService defines space operations needed by MCP.
type SpaceService interface {
	Create(ctx context.Context, userID string, req space.CreateRequest) (*space.Space, error)
	List(ctx context.Context, userID string) ([]space.Space, error)
	UpdateColorKey(ctx context.Context, userID, id, colorKey string) (*space.Space, error)
	Delete(ctx context.Context, userID, id string) error
}

// ListService serves projected habit lists.
type ListService interface {
	List(ctx context.Context, userID string, scope listview.Scope, locale language.Tag) ([]listview.Entry, error)
}

// ActivityService defines activity operations needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, userID string, opts activity.ListActivityOptions) ([]activity.ActivityEntry, error)
}

// Handler dispatches MCP tool calls.
type Handler struct {
	habits   HabitService
	spaces   SpaceService
	lists    ListService
	activity ActivityService
	locale   language.Tag
}

// NewHandler creates a new MCP handler. locale is used for labels when a
// call names none.
func NewHandler(habits HabitService, spaces SpaceService, lists ListService, activitySvc ActivityService, locale language.Tag) *Handler {
	if locale == language.Und {
		locale = i18n.Default()
	}
	return &Handler{
		habits:   habits,
		spaces:   spaces,
		lists:    lists,
		activity: activitySvc,
		locale:   locale,
	}
}

// Handle dispatches a tool call to the domain services.
func (h *Handler) Handle(ctx context.Context, userID, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_habits":
		var req ListHabitsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		return h.listHabits(ctx, userID, req)
	case "list_scopes":
		var req ListScopesParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		labels := h.labels(req.Locale)
		resp := ListScopesResponse{Locale: labels.Tag().String(), Tabs: make([]ScopeTabResponse, 0, len(listview.Scopes))}
		for i, scope := range listview.Scopes {
			resp.Tabs = append(resp.Tabs, ScopeTabResponse{Index: i, Scope: scope, Label: labels.Scope(scope)})
		}
		return resp, nil
	case "get_habit":
		var req GetHabitParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.habits.Get(ctx, userID, req.ID)
		return result, mapError(err)
	case "create_habit":
		var req CreateHabitParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.habits.Create(ctx, userID, habit.CreateRequest{
			ID:            req.ID,
			Title:         req.Title,
			Duration:      req.Duration,
			DurationValue: req.DurationValue,
			DurationUnit:  req.DurationUnit,
			Frequency:     req.Frequency,
			Times:         req.Times,
			SpaceID:       req.SpaceID,
			Deadline:      req.Deadline,
		})
		return result, mapError(err)
	case "update_habit":
		var req UpdateHabitParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.habits.Update(ctx, userID, habit.UpdateRequest{
			ID:            req.ID,
			Title:         req.Title,
			DurationValue: req.DurationValue,
			DurationUnit:  req.DurationUnit,
			Frequency:     req.Frequency,
			Times:         req.Times,
			SpaceID:       req.SpaceID,
		})
		return result, mapError(err)
	case "delete_habit":
		var req DeleteHabitParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.habits.Delete(ctx, userID, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResponse{ID: req.ID, Deleted: true}, nil
	case "complete_habit":
		var req CompleteHabitParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.habits.Complete(ctx, userID, req.ID)
		return result, mapError(err)
	case "list_spaces":
		spaces, err := h.spaces.List(ctx, userID)
		if err != nil {
			return nil, mapError(err)
		}
		return map[string]any{"spaces": spaces, "palette": space.Palette}, nil
	case "create_space":
		var req CreateSpaceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.spaces.Create(ctx, userID, space.CreateRequest{
			ID:       req.ID,
			Name:     req.Name,
			ColorKey: req.ColorKey,
		})
		return result, mapError(err)
	case "update_space_color":
		var req UpdateSpaceColorParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		result, err := h.spaces.UpdateColorKey(ctx, userID, req.ID, req.ColorKey)
		return result, mapError(err)
	case "delete_space":
		var req DeleteSpaceParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		if err := h.spaces.Delete(ctx, userID, req.ID); err != nil {
			return nil, mapError(err)
		}
		return DeleteResponse{ID: req.ID, Deleted: true}, nil
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		entries, err := h.activity.GetRecentActivity(ctx, userID, activity.ListActivityOptions{
			HabitID:      req.HabitID,
			SpaceID:      req.SpaceID,
			ActivityType: req.Type,
			Limit:        req.Limit,
			Offset:       req.Offset,
		})
		if err != nil {
			return nil, mapError(err)
		}
		resp := make([]ActivityEntryResponse, 0, len(entries))
		for _, entry := range entries {
			resp = append(resp, ActivityEntryResponse{
				Timestamp: entry.CreatedAt,
				Type:      entry.ActivityType,
				HabitID:   stringValue(entry.HabitID),
				SpaceID:   stringValue(entry.SpaceID),
				Summary:   entry.Summary,
				Details:   entry.Details,
			})
		}
		return map[string]any{"entries": resp}, nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

func (h *Handler) listHabits(ctx context.Context, userID string, req ListHabitsParams) (*ListHabitsResponse, error) {
	scope, err := listview.ParseScope(req.Scope)
	if req.Tab != nil {
		scope, err = listview.ScopeFromTab(*req.Tab)
	}
	if err != nil {
		return nil, mapError(err)
	}

	labels := h.labels(req.Locale)
	entries, err := h.lists.List(ctx, userID, scope, labels.Tag())
	if err != nil {
		return nil, mapError(err)
	}

	resp := &ListHabitsResponse{
		Scope:      scope,
		ScopeLabel: labels.Scope(scope),
		Locale:     labels.Tag().String(),
		Entries:    make([]ListEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		if e.IsDivider() {
			resp.Entries = append(resp.Entries, ListEntryResponse{Kind: e.Kind, Label: labels.Divider()})
			continue
		}
		v := *e.Habit
		resp.Entries = append(resp.Entries, ListEntryResponse{
			Kind: e.Kind,
			Habit: &HabitRowResponse{
				HabitView:      v,
				DurationLabel:  labels.Duration(v.DurationMagnitude, v.DurationUnit),
				FrequencyLabel: labels.Frequency(v.Frequency),
				Progress:       labels.Progress(v.Frequency, v.TimesTarget, v.CompletionsCount),
			},
		})
	}
	return resp, nil
}

func (h *Handler) labels(locale string) i18n.Labels {
	if strings.TrimSpace(locale) == "" {
		return i18n.ForTag(h.locale)
	}
	return i18n.For(locale)
}

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_PARAMS", Message: err.Error(), RecoveryHint: "Check argument names and types"}
	}
	return nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func stringValue(val *string) string {
	if val == nil {
		return ""
	}
	return *val
}
