package cmd

import (
	"fmt"

	"github.com/LucasAust/forecaster/internal/cli"

	"github.com/spf13/cobra"
)

var adviceCmd = &cobra.Command{
	Use:   "advice",
	Short: "Alerts and recommendations for the forecast",
	RunE:  runAdvice,
}

func init() {
	rootCmd.AddCommand(adviceCmd)
}

func runAdvice(cmd *cobra.Command, _ []string) error {
	resp, req, err := runForecast(cmd)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("FORECAST ADVICE  Next %dd", req.HorizonDays)))
	fmt.Println()

	if len(resp.Alerts) == 0 && len(resp.Recommendations) == 0 {
		fmt.Println("  Nothing to report.")
		return nil
	}

	for _, a := range resp.Alerts {
		fmt.Println(cli.RenderAlert(a))
		if a.ActionSuggestion != "" {
			fmt.Printf("     %s\n", a.ActionSuggestion)
		}
	}
	if len(resp.Alerts) > 0 {
		fmt.Println()
	}

	for _, r := range resp.Recommendations {
		fmt.Println(cli.RenderRecommendation(r))
	}
	if len(resp.Recommendations) > 0 {
		fmt.Println()
	}

	printDiagnostics(resp.Diagnostics)
	return nil
}
