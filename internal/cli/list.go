package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/pkg/types"
)

// listEntry is one row of list output.
type listEntry struct {
	Key  string `json:"key"`
	Kind string `json:"kind"`
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every key and the kind of its value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, prefs, err := a.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			keys, err := prefs.Keys()
			if err != nil {
				return sysError(err)
			}

			entries := make([]listEntry, 0, len(keys))
			for _, k := range keys {
				v, ok, err := prefs.Store().Get(k)
				if err != nil || !ok {
					a.logger.Warn("slot unreadable", "key", k)
					entries = append(entries, listEntry{Key: k, Kind: types.KindInvalid.String()})
					continue
				}
				kind, _ := types.KindOf(v)
				entries = append(entries, listEntry{Key: k, Kind: kind.String()})
			}

			out := cmd.OutOrStdout()
			if a.flags.jsonMode {
				return printValue(out, entries, true)
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s\t%s\n", e.Key, e.Kind)
			}
			return nil
		},
	}
}
