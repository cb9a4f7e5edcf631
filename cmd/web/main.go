// Command shutters-web serves the Shutters by Senators site.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"shuttersbysenators.com/web/internal/config"
	"shuttersbysenators.com/web/internal/httpserver"
	"shuttersbysenators.com/web/internal/nav"
	"shuttersbysenators.com/web/internal/observability"
	"shuttersbysenators.com/web/internal/routing"
)

type options struct {
	configPath string
	addr       string
	dev        bool
	logLevel   string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "shutters-web",
		Short:         "Photography portfolio site for Shutters by Senators",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("SHUTTERS_WEB_CONFIG"), "YAML config file")
	root.PersistentFlags().StringVar(&opts.addr, "addr", "", "listen address (overrides server.addr)")
	root.PersistentFlags().BoolVar(&opts.dev, "dev", false, "reparse templates on every request")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "routes",
		Short: "Print the route table and navigation entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printRoutes(cmd.OutOrStdout())
		},
	})
	return root
}

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Server.Addr = opts.addr
	}
	if flags.Changed("dev") {
		cfg.Server.Dev = opts.dev
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func runServe(cmd *cobra.Command, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger, err := observability.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	srv, err := httpserver.New(cfg, httpserver.Deps{Logger: logger})
	if err != nil {
		return fmt.Errorf("build server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("web listening", zap.String("addr", cfg.Server.Addr), zap.Bool("dev", cfg.Server.Dev))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func printRoutes(out io.Writer) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATTERN\tVIEW\tPARAMS")
	for _, rt := range routing.Default().Routes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", rt.Pattern, rt.View, strings.Join(rt.ParamNames(), ","))
	}
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "MENU\tPATH\tLABEL\tMATCH")
	for _, group := range []struct {
		name  string
		items []nav.Item
	}{{"main", nav.Main}, {"footer", nav.Footer}} {
		for _, it := range group.items {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", group.name, it.Path, it.Label, it.Match)
		}
	}
	return tw.Flush()
}
