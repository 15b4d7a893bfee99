package main

import (
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/awaistahir/energy-opt/internal/config"
	"github.com/awaistahir/energy-opt/internal/energy"
	"github.com/awaistahir/energy-opt/internal/store"
	"github.com/awaistahir/energy-opt/internal/uiapi"
	"github.com/spf13/cobra"
)

func main() {
	var cfgFile string
	var port int
	var dbPath string
	var webDir string

	rootCmd := &cobra.Command{
		Use:   "energy-optd",
		Short: "Energy Optimizer HTTP server with web dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if webDir != "" {
				cfg.WebDir = webDir
			}

			// Open store
			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			// Seed settings from config on first run
			seed := &energy.Settings{ID: "default", Days: cfg.Days, TableRows: cfg.TableRows}
			if err := st.EnsureSettings(seed); err != nil {
				return fmt.Errorf("seeding settings: %w", err)
			}

			srv := uiapi.NewServer(st, cfg.WebDir)

			addr := fmt.Sprintf(":%d", cfg.Port)
			log.Printf("Energy Optimizer dashboard starting on port %d", cfg.Port)
			log.Printf("Database: %s", cfg.DBPath)
			log.Printf("Dashboard files: %s", cfg.WebDir)
			log.Printf("Access from this device: http://localhost:%d", cfg.Port)

			return http.ListenAndServe(addr, srv.Handler())
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.energyopt/config.yaml)")
	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Database path")
	rootCmd.Flags().StringVar(&webDir, "web-dir", "", "Directory holding index.html and static/")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
