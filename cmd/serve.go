package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gofluid/internal/api"
	"github.com/alexiusacademia/gofluid/internal/history"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculators over HTTP",
	Long: `Start the HTTP API.

Routes:
  GET    /healthz
  GET    /api/v1/presets
  GET    /api/v1/calculators
  POST   /api/v1/calc/{calculator}        ?format=pdf|text  ?record=true
  POST   /api/v1/batch/pipe               multipart field "file", ?format=json
  GET    /api/v1/batch/pipe/template
  GET    /api/v1/history                  ?calculator=  ?limit=
  GET    /api/v1/history/{id}             ?format=pdf|text
  DELETE /api/v1/history/{id}
  GET    /ws/{calculator}                 websocket result stream

History routes require a bearer token when server.token_key is set
(see 'gofluid token').

Examples:
  gofluid serve
  gofluid serve --addr :9090 --log-level info`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	var store *history.Store
	if cfg.History.Enabled {
		s, err := openHistory()
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		defer s.Close()
		store = s
	} else {
		log.Warn("history disabled, record and history routes will answer 404")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("gofluid API listening on %s\n", cfg.Server.Addr)
	return api.New(cfg, store).ListenAndServe(ctx)
}
