package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"coursemanagement/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "coursemgmt",
		Short:         "University course, student and marks administration",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("config", "config/config.yaml", "path to the YAML config file")
	root.AddCommand(newAPICmd(), newWebCmd(), newImportCmd())
	return root
}

func loadConfig(cmd *cobra.Command, flags ...config.FlagBinding) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path, flags...)
}

func newAPICmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "api",
		Short: "Serve the REST API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, config.FlagBinding{Key: "http.addr", Flag: cmd.Flags().Lookup("addr")})
			if err != nil {
				return err
			}
			app, err := InitAPIApp(cfg)
			if err != nil {
				return err
			}
			app.Scheduler.Start()
			defer app.Scheduler.Stop()
			return app.Server.Start(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address, overrides http.addr")
	return cmd
}

func newWebCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "web",
		Short: "Serve the admin screens",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd,
				config.FlagBinding{Key: "web.addr", Flag: cmd.Flags().Lookup("addr")},
				config.FlagBinding{Key: "web.apibaseurl", Flag: cmd.Flags().Lookup("api")},
			)
			if err != nil {
				return err
			}
			server, err := InitWebServer(cfg)
			if err != nil {
				return err
			}
			return server.Start(cmd.Context())
		},
	}
	cmd.Flags().String("addr", "", "listen address, overrides web.addr")
	cmd.Flags().String("api", "", "REST API base URL, overrides web.apibaseurl")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import student registrations from CSV or XLSX files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			importer, err := InitImportService(cfg)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			var failed int
			for _, path := range args {
				if err := importer.ProcessFile(cmd.Context(), path); err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", path, err)
					continue
				}
				p, err := importer.GetFileProgress(cmd.Context(), filepath.Base(path))
				if err != nil || p == nil {
					fmt.Fprintf(out, "%s: imported\n", path)
					continue
				}
				fmt.Fprintf(out, "%s: %d of %d rows imported\n", path, p.Imported, p.TotalRecords)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}
