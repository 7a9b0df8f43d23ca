package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// dumper is implemented by backends that can export and import JSONL.
type dumper interface {
	Dump(path string) (int, error)
	Load(path string) (int, error)
}

func (a *app) newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <file>",
		Short: "Write every slot to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDumper(func(d dumper) error {
				n, err := d.Dump(args[0])
				if err != nil {
					return sysError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Dumped %d slots to %s\n", n, args[0])
				return nil
			})
		},
	}
}

func (a *app) newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <file>",
		Short: "Store every slot found in a JSONL file",
		Long:  "Load upserts each record of a file written by dump. Malformed lines are skipped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withDumper(func(d dumper) error {
				n, err := d.Load(args[0])
				if err != nil {
					return sysError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d slots from %s\n", n, args[0])
				return nil
			})
		},
	}
}

// withDumper attaches the backend and calls fn when it supports JSONL.
func (a *app) withDumper(fn func(dumper) error) error {
	backend, _, err := a.attachBackend()
	if err != nil {
		return err
	}
	defer backend.Detach()

	d, ok := backend.(dumper)
	if !ok {
		return userError(fmt.Errorf("the %s backend does not support dump and load", a.backendName()))
	}
	return fn(d)
}

func (a *app) backendName() string {
	if a.flags.backend != "" {
		return a.flags.backend
	}
	return a.config.GetString(cfgKeyBackend)
}
