package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value stored under a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			backend, prefs, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			v, ok, err := prefs.Store().Get(key)
			if err != nil {
				return classify(fmt.Errorf("get %s: %w", key, err))
			}
			if !ok {
				return userError(fmt.Errorf("key %q is not set", key))
			}
			return printValue(cmd.OutOrStdout(), v, a.flags.jsonMode)
		},
	}
}
