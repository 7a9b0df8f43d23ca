package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := slotName(args[0])

			backend, prefs, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if !prefs.Contains(key) {
				return userError(fmt.Errorf("key %q is not set", key))
			}
			if err := prefs.Remove(key); err != nil {
				return classify(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", key)
			return nil
		},
	}
}
