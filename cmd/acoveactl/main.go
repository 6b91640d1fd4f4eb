package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"acovea/cmd/acoveactl/internal/cliui"
	"acovea/pkg/acovea"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "acoveactl",
		Short: "Evolve compiler flag combinations against a target",
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		targetPath string
		runConfig  string
		inputPath  string
		storeKind  string
		sqlitePath string
		scratchDir string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run an evolutionary search against a target definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			ui := cliui.New(os.Stdout)

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				ui.RequestAbort()
			}()

			client, err := acovea.NewClient(ctx, acovea.Options{
				StoreKind:  storeKind,
				SQLitePath: sqlitePath,
				ScratchDir: scratchDir,
			})
			if err != nil {
				return err
			}
			defer client.Close()

			hyper, sigma, err := client.LoadRunConfig(runConfig)
			if err != nil {
				return err
			}

			tgt, err := client.LoadTarget(targetPath, hyper.Seed)
			if err != nil {
				return err
			}

			summary, err := client.Run(ctx, acovea.RunRequest{
				Target:       tgt,
				Hyper:        hyper,
				SigmaScaling: sigma,
				InputPath:    inputPath,
				Sink:         ui,
			})
			if summary.RunID != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "run id: %s\n", summary.RunID)
			}
			return err
		},
	}

	cmd.Flags().StringVar(&targetPath, "target", "", "path to the target YAML definition (required)")
	cmd.Flags().StringVar(&runConfig, "config", "", "path to the run hyperparameters INI file (required)")
	cmd.Flags().StringVar(&inputPath, "input", "", "source file substituted for ACOVEA_INPUT")
	cmd.Flags().StringVar(&storeKind, "store", "memory", "run history backend: memory or sqlite")
	cmd.Flags().StringVar(&sqlitePath, "sqlite-path", "acovea.db", "sqlite database path when --store=sqlite")
	cmd.Flags().StringVar(&scratchDir, "scratch-dir", ".", "directory for temporary compile artifacts")
	_ = cmd.MarkFlagRequired("target")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
