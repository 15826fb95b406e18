package cmd

import (
	"fmt"

	"github.com/LucasAust/forecaster/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Default horizon: %d days\n", cfg.General.DefaultHorizonDays)
	fmt.Printf("    Default method:  %s\n", cfg.General.DefaultMethod)
	if cfg.General.ScenarioPath != "" {
		fmt.Printf("    Scenario:        %s\n", cfg.General.ScenarioPath)
	} else {
		fmt.Println("    Scenario:        not set (run `forecaster init`)")
	}
	fmt.Println()

	fmt.Println("  [Forecast]")
	fmt.Printf("    Hybrid window:     %d days\n", cfg.Forecast.HybridWindowDays)
	fmt.Printf("    Noise scale:       %.2f\n", cfg.Forecast.NoiseScale)
	fmt.Printf("    Variance fraction: %.2f\n", cfg.Forecast.VarianceFraction)
	fmt.Printf("    Band multiplier:   %.1f\n", cfg.Forecast.BandMultiplier)
	fmt.Println()

	fmt.Println("  [Advice]")
	fmt.Printf("    Low balance threshold: $%.0f\n", cfg.Advice.LowBalanceThreshold)
	fmt.Printf("    Subscription floor:    $%.0f/mo (%s)\n", cfg.Advice.SubscriptionFloor, cfg.Advice.SubscriptionCategory)
	fmt.Printf("    High spend floor:      $%.0f (%s)\n", cfg.Advice.HighSpendFloor, cfg.Advice.HighSpendCategory)
	fmt.Printf("    Savings transfer:      %.0f%% of excess over $%.0f\n",
		cfg.Advice.SavingsTransferRatio*100, cfg.Advice.SavingsExcessFloor)
	fmt.Println()

	fmt.Println("  [Server]")
	fmt.Printf("    Address:   %s\n", cfg.Server.Addr)
	if cfg.Server.CacheDisabled {
		fmt.Println("    Cache:     disabled")
	} else {
		fmt.Printf("    Cache TTL: %dh\n", cfg.Server.CacheTTLHours)
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `forecaster init` to create a scenario.")
	return nil
}
