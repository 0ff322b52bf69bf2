package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/medilink/reportgen/internal/api"
	"github.com/medilink/reportgen/internal/report"
	"github.com/medilink/reportgen/internal/storage"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the report generation server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadRuntime()
			if err != nil {
				return err
			}

			// Ensure all data directories exist
			if err := cfg.EnsureDirectories(); err != nil {
				return err
			}

			fileStore, err := storage.NewLocalStore(cfg.GetUploadDir())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}

			e := api.NewServer(&api.Dependencies{
				Store:     fileStore,
				Generator: report.NewGenerator(log),
				Log:       log,
				Version:   Version,
			}, api.MiddlewareOptions{
				Log:            log,
				RequestLogging: cfg.Advanced.EnableRequestLogging,
				BodyLimit:      cfg.Server.BodyLimit,
				EnableCORS:     cfg.Server.EnableCORS,
				AllowOrigins:   cfg.AllowedOrigins(),
			})

			s := &http.Server{
				Addr:         cfg.GetServerAddr(),
				ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
				WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
				IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
			}

			fmt.Printf("\n")
			fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
			fmt.Printf("║           Patient Report Server                           ║\n")
			fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
			fmt.Printf("║  Version:    %-45s║\n", Version)
			fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
			fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
			fmt.Printf("║  Config:    %-46s║\n", configPath)
			fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
			fmt.Printf("║  Uploads:   %-46s║\n", cfg.GetUploadDir())
			fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
			fmt.Printf("\n")

			return e.StartServer(s)
		},
	}
}
