package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/shelf"
)

func (a *app) newSetCmd() *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a value under a key",
		Long: `Set parses value according to --kind and stores it under key,
replacing any previous value.

Kinds: string, int, float, bool, data (base64), object (RFC 3339 time),
array and map (JSON), json (any JSON value).

Example:
  shelf set followerCount 12 --kind int
  shelf set followers '["Lisi","Wangwu"]' --kind json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, text := args[0], args[1]

			v, err := parseValue(kind, text)
			if err != nil {
				return userError(fmt.Errorf("parse %s value: %w", kind, err))
			}

			backend, prefs, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			if err := shelf.Set(prefs, rawKey(key), v); err != nil {
				return classify(err)
			}
			if a.flags.jsonMode {
				return printValue(cmd.OutOrStdout(), map[string]any{"key": key, "value": v}, true)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "string", "value kind: string, int, float, bool, data, object, array, map or json")
	return cmd
}
