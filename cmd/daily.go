package cmd

import (
	"fmt"
	"time"

	"github.com/LucasAust/forecaster/internal/cli"
	"github.com/LucasAust/forecaster/internal/model"

	"github.com/spf13/cobra"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Day-by-day balance table",
	RunE:  runDaily,
}

func init() {
	rootCmd.AddCommand(dailyCmd)
}

func runDaily(cmd *cobra.Command, _ []string) error {
	resp, req, err := runForecast(cmd)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("DAILY BALANCE  Next %dd", req.HorizonDays)))
	fmt.Println()

	rows := make([][]string, 0, len(resp.Forecast))
	for _, p := range resp.Forecast {
		rows = append(rows, []string{
			p.Date,
			dayOfWeek(p.Date),
			cli.FormatSignedMoney(p.NetChange),
			cli.FormatMoney(p.Balance),
			cli.FormatMoney(p.BalanceLower),
			cli.FormatMoney(p.BalanceUpper),
		})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Day", "Net", "Balance", "Low", "High"},
		Rows:    rows,
	}))

	printDiagnostics(resp.Diagnostics)
	return nil
}

func dayOfWeek(iso string) string {
	t, err := time.Parse(model.DateFormat, iso)
	if err != nil {
		return "???"
	}
	return cli.FormatDayOfWeek((int(t.Weekday()) + 6) % 7)
}
