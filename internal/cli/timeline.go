package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/tOgg1/doula/internal/doulatui/styles"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

// timelineRow is the JSON shape of one classified event.
type timelineRow struct {
	models.TimelineEvent
	Status string `json:"status"`
}

func newTimelineCmd(a *app) *cobra.Command {
	var week, userID int
	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Show your medical timeline",
		Long:  "Fetch the timeline from the backend and classify each event against your current week.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTimeline(cmd, a, week, userID)
		},
	}
	cmd.Flags().IntVar(&week, "week", 0, "classify against this week instead of today")
	cmd.Flags().IntVar(&userID, "user", 0, "backend user id (defaults to the stored profile)")
	return cmd
}

func runTimeline(cmd *cobra.Command, a *app, week, userID int) error {
	ctx := contextOf(cmd)
	if userID == 0 || week == 0 {
		store, err := a.openStore(ctx)
		if err != nil {
			return err
		}
		profile, err := requireProfile(ctx, store)
		store.Close()
		if err != nil {
			return err
		}
		if userID == 0 {
			userID = profile.UserID
		}
		if week == 0 {
			week = profile.CurrentWeek(a.today())
		}
	}

	client, err := a.client()
	if err != nil {
		return Exitf(ExitCodeUsage, "%v", err)
	}
	logger := logging.WithUser(a.logger, userID)
	events, err := client.FetchTimeline(logging.WithContext(ctx, logger), userID)
	if err != nil {
		logger.Error().Err(err).Msg("timeline fetch failed")
		return exitForAPI("timeline", err)
	}

	if a.jsonOutput {
		rows := make([]timelineRow, 0, len(events))
		for _, event := range events {
			rows = append(rows, timelineRow{TimelineEvent: event, Status: event.StatusAt(week).String()})
		}
		return writeJSON(stdout(cmd), rows)
	}

	out := stdout(cmd)
	if len(events) == 0 {
		fmt.Fprintln(out, "No timeline events yet.")
		return nil
	}
	theme := styles.Lookup(a.cfg.TUI.Theme)
	rows := make([][]string, 0, len(events))
	for _, event := range events {
		status := event.StatusAt(week)
		label := lipgloss.NewStyle().Foreground(lipgloss.Color(styles.StatusColor(theme, status))).Render(status.String())
		if status == models.StatusCurrent {
			label = styles.CurrentTag(theme)
		}
		rows = append(rows, []string{
			strconv.Itoa(event.WeekStart) + "-" + strconv.Itoa(event.WeekEnd),
			label,
			styles.CategoryBadge(theme, event.Category),
			event.Title,
			formatYesNo(event.IsCompleted),
		})
	}
	fmt.Fprintf(out, "Week %d\n\n", week)
	return writeTable(out, []string{"WEEKS", "STATUS", "CATEGORY", "TITLE", "DONE"}, rows)
}
