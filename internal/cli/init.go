package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/shelf/internal/paths"
	"github.com/mesh-intelligence/shelf/pkg/types"
)

func (a *app) newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize shelf configuration and storage",
		Long:  "Write config.yaml if it is missing, then attach and detach the configured backend so its storage exists.",
		Args:  cobra.NoArgs,
		RunE:  a.runInit,
	}
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}

	cfg, err := a.backendConfig()
	if err != nil {
		return userError(err)
	}

	written, err := writeConfigIfMissing(configDir, configFile{
		Backend: cfg.Backend,
		DataDir: cfg.DataDir,
		DSN:     a.config.GetString(cfgKeyDSN),
	})
	if err != nil {
		return sysError(fmt.Errorf("write config: %w", err))
	}

	backend, _, err := a.attachBackend()
	if err != nil {
		return err
	}
	if err := backend.Detach(); err != nil {
		return sysError(fmt.Errorf("finalize storage: %w", err))
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "Wrote %s/%s\n", configDir, configFileExt)
	}
	if cfg.Backend == types.BackendSQLite {
		fmt.Fprintf(out, "Shelf initialized (%s, %s)\n", cfg.Backend, cfg.DataDir)
	} else {
		fmt.Fprintf(out, "Shelf initialized (%s)\n", cfg.Backend)
	}
	return nil
}
