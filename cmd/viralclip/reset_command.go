package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"viralclip/internal/ipc"
)

func newResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard the current results and return the session to idle",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				if _, err := client.Reset(); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Session reset. Ready for a new analysis.")
				return nil
			})
		},
	}
}
