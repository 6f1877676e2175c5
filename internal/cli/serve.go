package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/veridict/veridict/internal/pipeline"
	"github.com/veridict/veridict/internal/server"
)

var (
	servePort      int
	serveLive      bool
	serveWikipedia bool
	serveStatic    string
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API for the web frontend",
	Long: `Serve exposes analysis, annotation and evaluation over HTTP:

  POST /api/analyze                       analyze one question
  GET  /api/health                        liveness probe
  GET  /api/models                        configured and annotated models
  POST /api/annotations                   save an annotation session
  GET  /api/annotations/:model/:question  load saved annotations
  GET  /api/metrics/:model                precision/recall for one model
  GET  /api/metrics                       comparison across models`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config)")
	serveCmd.Flags().BoolVar(&serveLive, "live", false, "use real provider APIs instead of simulation")
	serveCmd.Flags().BoolVar(&serveWikipedia, "wikipedia", false, "corroborate claims against Wikipedia")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "serve a frontend build from this directory under /app")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
	}
	if serveLive {
		cfg.Simulation = false
	}
	if serveWikipedia {
		cfg.Wikipedia.Enabled = true
	}
	if serveStatic != "" {
		cfg.Server.StaticDir = serveStatic
	}

	p, err := pipeline.New(context.Background(), cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Listening on :%d (target %s, simulation %v)\n",
		cfg.Server.Port, cfg.Target.Provider, cfg.Simulation)
	return server.New(cfg, p).Run()
}
