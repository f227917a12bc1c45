package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/milk9111/vitals/common"
	"github.com/milk9111/vitals/config"
	"github.com/milk9111/vitals/health"
	"github.com/milk9111/vitals/prefabs"
	"github.com/milk9111/vitals/scenario"
)

type app struct {
	cfg config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var prefabDir string

	root := &cobra.Command{
		Use:           "healthsim",
		Short:         "Play scripted health scenarios against prefab actors",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if prefabDir != "" {
				cfg.PrefabDir = prefabDir
			}
			a.cfg = cfg
			a.log = common.LoggerFromConfig(cfg, cmd.ErrOrStderr())
			prefabs.SetDir(cfg.PrefabDir)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&prefabDir, "prefabs", "", "prefab override directory (default $VITALS_PREFAB_DIR)")

	root.AddCommand(a.runCmd(), a.validateCmd())
	return root
}

func (a *app) runCmd() *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and print the final actor states",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if err := a.runOnce(cmd.Context(), path, cmd.OutOrStdout()); err != nil {
				return err
			}
			if !watch && !a.cfg.Watch {
				return nil
			}
			return a.watch(cmd.Context(), path, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "re-run when prefabs or scripts change")
	return cmd
}

func (a *app) runOnce(ctx context.Context, path string, out io.Writer) error {
	spec, err := scenario.Load(path)
	if err != nil {
		return err
	}
	res, err := scenario.NewRunner(scenario.WithLogger(a.log)).Run(ctx, spec)
	if err != nil {
		return err
	}
	return res.WriteSummary(out)
}

func (a *app) watch(ctx context.Context, path string, out io.Writer) error {
	w, err := prefabs.NewWatcher(a.cfg.PrefabDir)
	if err != nil {
		return err
	}
	defer w.Close()
	a.log.Info().Str("dir", a.cfg.PrefabDir).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-w.Events:
			if !ok {
				return nil
			}
			a.log.Info().Str("path", change.Path).Str("kind", change.Kind.String()).Msg("change detected, re-running")
			if err := a.runOnce(ctx, path, out); err != nil {
				a.log.Error().Err(err).Msg("scenario failed")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			a.log.Warn().Err(err).Msg("watcher error")
		}
	}
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <prefab>...",
		Short: "Check the health config of prefabs",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			failed := 0
			for _, name := range args {
				cfg, err := prefabs.LoadHealthConfig(name)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", name, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s)\n", name, describe(cfg))
			}
			if failed > 0 {
				return eris.Errorf("%d of %d prefabs invalid", failed, len(args))
			}
			return nil
		},
	}
}

func describe(cfg health.Config) string {
	initial := cfg.MaxHealth
	if cfg.InitialHealth != nil {
		initial = *cfg.InitialHealth
	}
	return fmt.Sprintf("max=%g critical=%g initial=%g invincible=%t", cfg.MaxHealth, cfg.CriticalHealthRatio, initial, cfg.Invincible)
}
