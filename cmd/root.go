// Package cmd implements the forecaster CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/LucasAust/forecaster/internal/cli"
	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/engine"
	"github.com/LucasAust/forecaster/internal/model"
	"github.com/LucasAust/forecaster/internal/scenario"

	"github.com/spf13/cobra"
)

var (
	flagScenario  string
	flagDays      int
	flagMethod    string
	flagSeed      int64
	flagThreshold float64
	flagAsOf      string
	flagJSON      bool
)

var rootCmd = &cobra.Command{
	Use:   "forecaster",
	Short: "Cash-flow forecasting CLI",
	Long:  "Project your account balance forward: scheduled bills, income, spending trends, and alerts.",
	RunE:  runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario file (JSON request)")
	rootCmd.PersistentFlags().IntVarP(&flagDays, "days", "n", 0, "Forecast horizon in days (default from config)")
	rootCmd.PersistentFlags().StringVarP(&flagMethod, "method", "m", "", "Forecast method: hybrid, autoregressive, decomposition")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Random seed for reproducible forecasts (0 = clock)")
	rootCmd.PersistentFlags().Float64Var(&flagThreshold, "threshold", 0, "Low balance alert threshold (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagAsOf, "as-of", "", "Pin the forecast start date (YYYY-MM-DD)")

	rootCmd.Flags().BoolVar(&flagJSON, "json", false, "Print the raw JSON response")
}

// loadRequest builds the forecast request from the scenario file and flag
// overrides. Commands share this path so flags behave identically everywhere.
func loadRequest(cmd *cobra.Command) (model.Request, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return model.Request{}, cfg, err
	}

	path := flagScenario
	if path == "" {
		path = cfg.General.ScenarioPath
	}

	var req model.Request
	if path != "" {
		loaded, err := scenario.Load(path)
		if err != nil {
			return model.Request{}, cfg, fmt.Errorf("loading scenario: %w", err)
		}
		req = loaded
	}

	if flagDays > 0 {
		req.HorizonDays = flagDays
	}
	if req.HorizonDays == 0 {
		req.HorizonDays = cfg.General.DefaultHorizonDays
	}
	if flagMethod != "" {
		req.Method = flagMethod
	}
	if flagSeed != 0 {
		req.Seed = flagSeed
	}
	if flagAsOf != "" {
		req.AsOf = flagAsOf
	}
	if cmd.Flags().Changed("threshold") {
		t := flagThreshold
		req.LowBalanceThreshold = &t
	}

	return req, cfg, nil
}

func runForecast(cmd *cobra.Command) (*model.Response, model.Request, error) {
	req, cfg, err := loadRequest(cmd)
	if err != nil {
		return nil, req, err
	}
	resp, err := engine.New(cfg).Run(context.Background(), req)
	return resp, req, err
}

func runSummary(cmd *cobra.Command, _ []string) error {
	resp, req, err := runForecast(cmd)
	if err != nil {
		return err
	}

	if flagJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	sum := resp.Summary

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("CASH-FLOW FORECAST  Next %dd", req.HorizonDays)))
	fmt.Println()

	rows := [][]string{
		{"Opening balance", cli.FormatMoney(sum.OpeningBalance)},
		{"Projected balance", cli.FormatMoney(sum.FinalBalance)},
		{"Net change", cli.FormatSignedMoney(sum.NetChange)},
		{"---"},
		{"Projected income", cli.FormatMoney(sum.TotalIncome)},
		{"Projected expenses", cli.FormatMoney(sum.TotalExpenses)},
		{"---"},
		{"Lowest point", fmt.Sprintf("%s on %s", cli.FormatMoney(sum.MinimumBalance), cli.FormatDate(sum.MinimumBalanceDate))},
	}
	if sum.DaysToZero >= 0 {
		rows = append(rows, []string{"Days until zero", fmt.Sprintf("%d", sum.DaysToZero)})
	}
	rows = append(rows, []string{"Method", sum.MethodUsed})

	fmt.Print(cli.RenderTable(cli.Table{Rows: rows}))

	balances := make([]float64, len(resp.Forecast))
	for i, p := range resp.Forecast {
		balances[i] = p.Balance
	}
	fmt.Println()
	fmt.Println("  " + cli.RenderSparkline(balances))
	fmt.Println()

	for _, a := range resp.Alerts {
		fmt.Println(cli.RenderAlert(a))
	}
	if len(resp.Alerts) > 0 {
		fmt.Println()
	}

	printDiagnostics(resp.Diagnostics)
	return nil
}

func printDiagnostics(d model.Diagnostics) {
	for _, r := range d.SkippedRules {
		fmt.Fprintf(os.Stderr, "  skipped rule: %s\n", r)
	}
	if d.SkippedTransactions > 0 {
		fmt.Fprintf(os.Stderr, "  skipped %d unparsable transaction(s)\n", d.SkippedTransactions)
	}
}
