package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"nextstep/internal/web"

	"github.com/spf13/cobra"
)

var flagServeAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	Long:  "Serves the study dashboard over HTTP until interrupted.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	s, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	addr := cfg.Server.Addr
	if flagServeAddr != "" {
		addr = flagServeAddr
	}

	svc, err := web.New(web.Config{
		Addr:               addr,
		DefaultSessionMins: cfg.General.DefaultSessionMins,
	}, s)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("  Dashboard on http://%s (ctrl-c to stop)\n", addr)
	return svc.Run(ctx)
}
