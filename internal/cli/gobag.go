package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/models"
)

func newGoBagCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "gobag",
		Aliases: []string{"bag"},
		Short:   "Show the hospital bag checklist",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGoBagList(cmd, a)
		},
	}
	cmd.AddCommand(
		newGoBagMarkCmd(a, "check", true),
		newGoBagMarkCmd(a, "uncheck", false),
	)
	return cmd
}

func newGoBagMarkCmd(a *app, use string, checked bool) *cobra.Command {
	short := "Mark an item as packed"
	if !checked {
		short = "Mark an item as not packed"
	}
	return &cobra.Command{
		Use:   use + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return Exitf(ExitCodeUsage, "item id must be a number: %q", args[0])
			}
			return runGoBagMark(cmd, a, id, checked)
		},
	}
}

func runGoBagList(cmd *cobra.Command, a *app) error {
	ctx := contextOf(cmd)
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	profile, err := requireProfile(ctx, store)
	if err != nil {
		return err
	}
	items, err := db.NewGoBagRepository(store).Items(ctx, profile.UserID)
	if err != nil {
		return Exitf(ExitCodeFailure, "load go-bag: %v", err)
	}
	return writeGoBag(cmd, a, items)
}

func runGoBagMark(cmd *cobra.Command, a *app, id int, checked bool) error {
	ctx := contextOf(cmd)
	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()
	profile, err := requireProfile(ctx, store)
	if err != nil {
		return err
	}
	repo := db.NewGoBagRepository(store)
	if err := repo.SetChecked(ctx, profile.UserID, id, checked); err != nil {
		if errors.Is(err, db.ErrUnknownGoBagItem) {
			return Exitf(ExitCodeUsage, "no go-bag item with id %d", id)
		}
		return Exitf(ExitCodeFailure, "update go-bag: %v", err)
	}
	items, err := repo.Items(ctx, profile.UserID)
	if err != nil {
		return Exitf(ExitCodeFailure, "load go-bag: %v", err)
	}
	return writeGoBag(cmd, a, items)
}

func writeGoBag(cmd *cobra.Command, a *app, items []models.GoBagItem) error {
	if a.jsonOutput {
		return writeJSON(stdout(cmd), items)
	}
	packed := 0
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		box := "[ ]"
		if item.Checked {
			box = "[x]"
			packed++
		}
		rows = append(rows, []string{strconv.Itoa(item.ID), box, item.Category, item.Text})
	}
	out := stdout(cmd)
	fmt.Fprintf(out, "Pack by week %d: %d/%d packed\n\n", models.GoBagPackByWeek, packed, len(items))
	return writeTable(out, []string{"ID", "", "CATEGORY", "ITEM"}, rows)
}
