package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHealthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return Exitf(ExitCodeUsage, "%v", err)
			}
			if err := client.Health(contextOf(cmd)); err != nil {
				return exitForAPI("health", err)
			}
			if a.jsonOutput {
				return writeJSON(stdout(cmd), map[string]string{"status": "healthy", "base_url": client.BaseURL()})
			}
			fmt.Fprintf(stdout(cmd), "%s is healthy\n", client.BaseURL())
			return nil
		},
	}
}
