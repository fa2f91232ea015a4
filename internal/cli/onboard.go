package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

type onboardFlags struct {
	name           string
	lmp            string
	due            string
	firstPregnancy bool
	risks          string
}

func newOnboardCmd(a *app) *cobra.Command {
	flags := &onboardFlags{}
	cmd := &cobra.Command{
		Use:   "onboard",
		Short: "Create your profile",
		Long:  "Register with the backend using either the first day of your last period or your due date.",
		Example: `  doula onboard --name Dana --lmp 2025-12-31
  doula onboard --name Dana --due 2026-10-07 --first-pregnancy=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOnboard(cmd, a, flags)
		},
	}
	cmd.Flags().StringVar(&flags.name, "name", "", "your name")
	cmd.Flags().StringVar(&flags.lmp, "lmp", "", "first day of last period (YYYY-MM-DD)")
	cmd.Flags().StringVar(&flags.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&flags.firstPregnancy, "first-pregnancy", true, "is this your first pregnancy")
	cmd.Flags().StringVar(&flags.risks, "risks", "", "high risk factors, free text")
	cmd.MarkFlagsMutuallyExclusive("lmp", "due")
	return cmd
}

func (f *onboardFlags) request() (models.OnboardingRequest, error) {
	req := models.OnboardingRequest{
		Name:             strings.TrimSpace(f.name),
		IsFirstPregnancy: f.firstPregnancy,
		HighRiskFactors:  strings.TrimSpace(f.risks),
		Mode:             models.DateModeLMP,
	}
	raw := f.lmp
	if f.due != "" {
		req.Mode = models.DateModeDueDate
		raw = f.due
	}
	if raw != "" {
		date, err := models.ParseDate(raw)
		if err != nil {
			return req, fmt.Errorf("date must look like %s", models.DateLayout)
		}
		req.Date = date
	}
	return req, nil
}

func runOnboard(cmd *cobra.Command, a *app, flags *onboardFlags) error {
	ctx := contextOf(cmd)
	req, err := flags.request()
	if err != nil {
		return Exitf(ExitCodeUsage, "%v", err)
	}
	if err := req.Validate(a.today()); err != nil {
		return Exitf(ExitCodeUsage, "%v", err)
	}

	client, err := a.client()
	if err != nil {
		return Exitf(ExitCodeUsage, "%v", err)
	}
	result, err := client.Onboard(ctx, req)
	if err != nil {
		return exitForAPI("onboarding", err)
	}

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	profile := models.ProfileFromOnboarding(req, result)
	if err := db.NewProfileRepository(store).Save(ctx, &profile); err != nil {
		return Exitf(ExitCodeFailure, "save profile: %v", err)
	}
	userLog := logging.WithUser(a.logger, profile.UserID)
	userLog.Info().Msg("profile created")

	week := profile.CurrentWeek(a.today())
	if a.jsonOutput {
		return writeJSON(stdout(cmd), struct {
			Profile     models.Profile `json:"profile"`
			CurrentWeek int            `json:"current_week"`
			Message     string         `json:"message,omitempty"`
		}{profile, week, result.Message})
	}

	out := stdout(cmd)
	if msg := strings.TrimSpace(result.Message); msg != "" {
		fmt.Fprintln(out, msg)
	}
	fmt.Fprintf(out, "Welcome, %s! You are in week %d (trimester %d).\n", profile.Name, week, models.Trimester(week))
	fmt.Fprintf(out, "Due date: %s\n", profile.DueDate.Format(models.DateLayout))
	return nil
}
