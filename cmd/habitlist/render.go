package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/habitxp/habits-mcp/internal/i18n"
	"github.com/habitxp/habits-mcp/internal/listview"
	"github.com/habitxp/habits-mcp/internal/snapshot"
)

func newRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render <snapshot.yaml>",
		Short: "Print the ordered habit list of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
	cmd.Flags().String("scope", "ALL", "scope to show: ALL, DAILY, WEEKLY or MONTHLY")
	cmd.Flags().Int("tab", -1, "tab index 0-3; overrides --scope")
	cmd.Flags().String("locale", "de", "locale for sorting and labels")
	cmd.Flags().Bool("json", false, "print entries as JSON")
	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	snap, err := snapshot.LoadFile(args[0])
	if err != nil {
		return err
	}

	scope, err := scopeFromFlags(cmd)
	if err != nil {
		return err
	}
	locale, _ := cmd.Flags().GetString("locale")
	labels := i18n.For(locale)

	entries := listview.Projector{Locale: labels.Tag()}.Project(snap.Habits, snap.SpaceIndex(), scope)
	commandLogger(cmd).Debug("projected snapshot", "path", args[0], "habits", len(snap.Habits), "entries", len(entries), "scope", scope)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	return writeList(cmd.OutOrStdout(), labels, scope, entries)
}

func scopeFromFlags(cmd *cobra.Command) (listview.Scope, error) {
	if tab, _ := cmd.Flags().GetInt("tab"); tab >= 0 {
		return listview.ScopeFromTab(tab)
	}
	name, _ := cmd.Flags().GetString("scope")
	return listview.ParseScope(name)
}

// writeList prints one row per habit and a heading line for the divider.
func writeList(w io.Writer, labels i18n.Labels, scope listview.Scope, entries []listview.Entry) error {
	fmt.Fprintf(w, "%s\n\n", labels.Scope(scope))

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, e := range entries {
		if e.IsDivider() {
			tw.Flush()
			fmt.Fprintf(w, "\n%s\n", labels.Divider())
			continue
		}
		v := e.Habit
		mark := "[ ]"
		if v.Completed {
			mark = "[x]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			mark,
			v.Title,
			labels.Duration(v.DurationMagnitude, v.DurationUnit),
			labels.Progress(v.Frequency, v.TimesTarget, v.CompletionsCount),
			v.SpaceColorKey,
		)
	}
	return tw.Flush()
}
