package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"viralclip/internal/ipc"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the analysis service is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Health()
				if err != nil {
					return err
				}
				if !resp.ServiceReachable {
					return fmt.Errorf("analysis service unreachable: %s", resp.Detail)
				}
				fmt.Fprintln(cmd.OutOrStdout(), resp.Detail)
				return nil
			})
		},
	}
}
