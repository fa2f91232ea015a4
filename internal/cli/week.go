package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tOgg1/doula/internal/models"
)

func newWeekCmd(a *app) *cobra.Command {
	var due, lmp string
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show this week's summary",
		Long:  "Print gestational age, baby size and the weekly checklist. Uses the stored profile unless --due or --lmp is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWeek(cmd, a, due, lmp)
		},
	}
	cmd.Flags().StringVar(&due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&lmp, "lmp", "", "first day of last period (YYYY-MM-DD)")
	cmd.MarkFlagsMutuallyExclusive("due", "lmp")
	return cmd
}

// weekSummary is the JSON shape printed by `doula week --json`.
type weekSummary struct {
	DueDate   string   `json:"due_date"`
	Weeks     int      `json:"weeks"`
	Days      int      `json:"days"`
	Trimester int      `json:"trimester"`
	Size      string   `json:"size"`
	Baby      string   `json:"baby"`
	Body      string   `json:"body"`
	Checklist []string `json:"checklist"`
}

func runWeek(cmd *cobra.Command, a *app, due, lmp string) error {
	dueDate, err := resolveDueDate(cmd, a, due, lmp)
	if err != nil {
		return err
	}

	age := models.GestationalAgeAt(dueDate, a.today())
	if age.TotalDays < 0 {
		return Exitf(ExitCodeUsage, "that date is in the future")
	}
	content := models.WeeklyContentFor(age.Weeks)
	summary := weekSummary{
		DueDate:   dueDate.Format(models.DateLayout),
		Weeks:     age.Weeks,
		Days:      age.Days,
		Trimester: models.Trimester(age.Weeks),
		Size:      content.Size,
		Baby:      content.BabyDevelopment,
		Body:      content.MomBody,
		Checklist: content.Checklist,
	}
	if a.jsonOutput {
		return writeJSON(stdout(cmd), summary)
	}

	out := stdout(cmd)
	fmt.Fprintf(out, "Week %d, day %d (trimester %d)\n", summary.Weeks, summary.Days, summary.Trimester)
	fmt.Fprintf(out, "Due date: %s\n\n", summary.DueDate)
	fmt.Fprintf(out, "Baby: size of a %s. %s\n", summary.Size, summary.Baby)
	fmt.Fprintf(out, "You: %s\n\n", summary.Body)
	fmt.Fprintln(out, "This week:")
	for _, item := range summary.Checklist {
		fmt.Fprintf(out, "  - %s\n", item)
	}
	return nil
}

func resolveDueDate(cmd *cobra.Command, a *app, due, lmp string) (time.Time, error) {
	switch {
	case due != "":
		parsed, err := models.ParseDate(due)
		if err != nil {
			return time.Time{}, Exitf(ExitCodeUsage, "--due must look like %s", models.DateLayout)
		}
		return parsed, nil
	case lmp != "":
		parsed, err := models.ParseDate(lmp)
		if err != nil {
			return time.Time{}, Exitf(ExitCodeUsage, "--lmp must look like %s", models.DateLayout)
		}
		return models.DueDateFromLMP(parsed), nil
	}

	ctx := contextOf(cmd)
	store, err := a.openStore(ctx)
	if err != nil {
		return time.Time{}, err
	}
	defer store.Close()
	profile, err := requireProfile(ctx, store)
	if err != nil {
		return time.Time{}, err
	}
	return profile.DueDate, nil
}
