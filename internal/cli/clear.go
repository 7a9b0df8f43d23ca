package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newClearCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every key from the store",
		Long:  "Clear removes every slot in the configured store. It cannot be undone and requires --yes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return userError(errors.New("clear removes every key; pass --yes to confirm"))
			}

			backend, prefs, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := prefs.Clear(); err != nil {
				return sysError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm removal of every key")
	return cmd
}
