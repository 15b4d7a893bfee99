package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/awaistahir/energy-opt/internal/config"
	"github.com/awaistahir/energy-opt/internal/energy"
	"github.com/awaistahir/energy-opt/internal/store"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	dbPath  string
	cfg     *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "energy-opt",
		Short: "Energy Optimizer - Simulate building consumption and estimate savings",
		Long: `Energy Optimizer simulates hourly building energy use and applies
rule-based adjustments to estimate how much could be saved.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			if dbPath != "" {
				loaded.DBPath = dbPath
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.energyopt/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default is $HOME/.energyopt/energyopt.db)")

	rootCmd.AddCommand(simulateCmd())
	rootCmd.AddCommand(summaryCmd())
	rootCmd.AddCommand(settingsCmd())

	return rootCmd
}

func simulateCmd() *cobra.Command {
	var days int
	var limit int

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Print the optimized hourly table as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = cfg.Days
			}

			records, err := energy.Simulate(days)
			if err != nil {
				return err
			}
			if limit > 0 && limit < len(records) {
				records = records[:limit]
			}

			// Output as JSON
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(records)
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", energy.DefaultDays, "Simulation duration in days")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Only print the first N hours (0 = all)")

	return cmd
}

func summaryCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print total energy saved for a simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = cfg.Days
			}

			records, err := energy.Simulate(days)
			if err != nil {
				return err
			}

			printSummary(cmd.OutOrStdout(), days, energy.Summarize(records))
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", energy.DefaultDays, "Simulation duration in days")

	return cmd
}

func printSummary(w io.Writer, days int, s energy.Summary) {
	fmt.Fprintf(w, "Simulated %d day(s), %d hours\n", days, s.Hours)
	fmt.Fprintf(w, "%-12s %10.2f kWh\n", "Original:", s.TotalLoad)
	fmt.Fprintf(w, "%-12s %10.2f kWh\n", "Optimized:", s.OptimizedTotal)
	fmt.Fprintf(w, "Total Energy Saved: %.2f kWh (%.2f%%)\n", s.Savings, s.SavingsPercent)
}

func settingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage stored dashboard settings",
	}

	cmd.AddCommand(settingsShowCmd())
	cmd.AddCommand(settingsSetCmd())

	return cmd
}

func settingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show stored dashboard settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			settings, err := st.GetSettings("default")
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Days:       %d\n", settings.Days)
			fmt.Fprintf(cmd.OutOrStdout(), "Table rows: %d\n", settings.TableRows)
			fmt.Fprintf(cmd.OutOrStdout(), "Database:   %s\n", cfg.DBPath)
			return nil
		},
	}
}

func settingsSetCmd() *cobra.Command {
	var days int
	var rows int

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update stored dashboard settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer st.Close()

			settings, err := st.GetSettings("default")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("days") {
				settings.Days = days
			}
			if cmd.Flags().Changed("rows") {
				settings.TableRows = rows
			}

			if settings.Days < energy.MinDays || settings.Days > energy.MaxDays {
				return fmt.Errorf("%w: days must be between %d and %d", energy.ErrInvalidInput, energy.MinDays, energy.MaxDays)
			}
			if settings.TableRows <= 0 {
				return fmt.Errorf("%w: rows must be positive", energy.ErrInvalidInput)
			}

			if err := st.SaveSettings(settings); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved settings: %d day(s), %d table rows\n", settings.Days, settings.TableRows)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "d", energy.DefaultDays, "Default simulation duration in days")
	cmd.Flags().IntVarP(&rows, "rows", "r", energy.DefaultTableRows, "Rows shown in the dashboard table")

	return cmd
}
