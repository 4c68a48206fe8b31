package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverInstructions = `habits-mcp keeps a user's recurring habits grouped in colored spaces.

Core concepts:
- Space: a named group with a palette color. Deleting a space deletes its habits.
- Habit: a title, a duration like 30min or 5km, a frequency (DAILY, WEEKLY, MONTHLY, NONE) and a target count per period.
- Completion: one check-off. A habit is completed once the period's count reaches its target.
- List: habits of a scope (ALL, DAILY, WEEKLY, MONTHLY). Open habits come first, then a divider, then completed ones.

Default workflow:
1) Orient: call list_habits (scope ALL) and list_spaces.
2) Act: complete_habit to check one off; create_habit, update_habit and delete_habit to manage them.
3) Review: get_recent_activity shows what changed.

Errors come back as tool results with a code and a recovery hint (e.g. COOLDOWN_ACTIVE, ALREADY_COMPLETED).

Docs:
- habits://docs/concepts
- habits://docs/list-ordering
`

type docResource struct {
	URI         string
	Name        string
	Title       string
	Description string
	Content     string
}

var docResources = []docResource{
	{
		URI:         "habits://docs/concepts",
		Name:        "concepts",
		Title:       "Habit concepts",
		Description: "Frequencies, targets, durations and cooldowns",
		Content: `# Habit concepts

## Frequencies and periods

| Frequency | Period            | Completed when                 |
|-----------|-------------------|--------------------------------|
| DAILY     | calendar day      | target reached today           |
| WEEKLY    | ISO week (Mon-Sun) | target reached this week      |
| MONTHLY   | calendar month    | target reached this month      |
| NONE      | none              | one completion                 |

Periods follow the server's local time zone. Completion counts restart each period.

## Durations

A duration is a magnitude followed by a unit code: min, h, pcs, m, km, l.
Examples: 30min, 1h, 10pcs, 5km.

## Cooldowns

- Time-based habits (min, h) cannot be completed again until their duration
  has passed since the last completion.
- Other daily habits need one minute between completions.
- Other weekly and monthly habits can be completed once per day.

## Deadlines

Habits past their deadline and still incomplete are reset periodically. A habit
without a frequency is removed instead.
`,
	},
	{
		URI:         "habits://docs/list-ordering",
		Name:        "list-ordering",
		Title:       "How the habit list is ordered",
		Description: "Sort keys and the completed divider",
		Content: `# List ordering

1. Habits outside the selected scope are hidden. ALL shows every habit.
2. Open habits come before completed habits.
3. Within each group, habits sort by title using the collation of the
   requested locale (de by default, so Äpfel sorts next to apfelsaft).
4. Equal titles sort by duration, shortest first. Only min and h durations
   are compared; other units sort after them.
5. A single divider separates open and completed habits. It is omitted when
   nothing is completed.

Habits whose space no longer exists are skipped.
`,
	},
}

func registerDocResources(server *sdkmcp.Server) {
	for _, doc := range docResources {
		server.AddResource(&sdkmcp.Resource{
			URI:         doc.URI,
			Name:        doc.Name,
			Title:       doc.Title,
			Description: doc.Description,
			MIMEType:    "text/markdown",
			Size:        int64(len(doc.Content)),
		}, func(_ context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
			uri := doc.URI
			if req != nil && req.Params != nil && req.Params.URI != "" {
				uri = req.Params.URI
			}
			return &sdkmcp.ReadResourceResult{
				Contents: []*sdkmcp.ResourceContents{{
					URI:      uri,
					MIMEType: "text/markdown",
					Text:     doc.Content,
				}},
			}, nil
		})
	}
}
