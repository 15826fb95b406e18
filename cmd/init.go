package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/model"
	"github.com/LucasAust/forecaster/internal/scenario"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a scenario file interactively",
	RunE:  runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func validateFloat(s string) error {
	if s == "" {
		return errors.New("required")
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

func validateDay(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("enter a day number")
	}
	if n > 31 {
		return errors.New("day must be 31 or less")
	}
	return nil
}

func runInit(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	var (
		openingStr   string
		horizon      string
		method       string
		thresholdStr string
		path         = filepath.Join(config.Dir(), "scenario.json")
		setDefault   = true
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Opening balance").
				Description("Your account balance today, in dollars.").
				Value(&openingStr).
				Validate(validateFloat),
			huh.NewSelect[string]().
				Title("Forecast horizon").
				Options(
					huh.NewOption("30 days", "30"),
					huh.NewOption("90 days", "90"),
					huh.NewOption("180 days", "180"),
				).
				Value(&horizon),
			huh.NewSelect[string]().
				Title("Forecast method").
				Options(
					huh.NewOption("Hybrid (recommended)", "hybrid"),
					huh.NewOption("Autoregressive", "autoregressive"),
					huh.NewOption("Trend + weekly pattern", "decomposition"),
				).
				Value(&method),
			huh.NewInput().
				Title("Low balance alert threshold").
				Description("Leave empty to use the configured default.").
				Value(&thresholdStr).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					return validateFloat(s)
				}),
			huh.NewInput().
				Title("Save scenario to").
				Value(&path),
			huh.NewConfirm().
				Title("Use this scenario by default?").
				Value(&setDefault),
		),
	)
	if err := form.Run(); err != nil {
		return err
	}

	opening, _ := strconv.ParseFloat(openingStr, 64)
	days, _ := strconv.Atoi(horizon)
	req := model.Request{
		OpeningBalance: opening,
		HorizonDays:    days,
		Method:         method,
	}
	if thresholdStr != "" {
		t, _ := strconv.ParseFloat(thresholdStr, 64)
		req.LowBalanceThreshold = &t
	}

	// Recurring cash flows, one small form per entry.
	for {
		addRule := false
		if err := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title("Add a recurring cash flow (rent, paycheck, ...)?").
				Value(&addRule),
		)).Run(); err != nil {
			return err
		}
		if !addRule {
			break
		}

		var (
			desc      string
			amountStr string
			pattern   = string(model.PatternMonthly)
			dayStr    = "1"
		)
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Description").
				Value(&desc),
			huh.NewInput().
				Title("Amount").
				Description("Negative for expenses, positive for income.").
				Value(&amountStr).
				Validate(validateFloat),
			huh.NewSelect[string]().
				Title("Repeats").
				Options(
					huh.NewOption("Monthly", string(model.PatternMonthly)),
					huh.NewOption("Weekly", string(model.PatternWeekly)),
					huh.NewOption("Every two weeks", string(model.PatternBiweekly)),
				).
				Value(&pattern),
			huh.NewInput().
				Title("Day").
				Description("Day of month (monthly, 0 = last day) or weekday 0-6, Monday = 0.").
				Value(&dayStr).
				Validate(validateDay),
		)).Run(); err != nil {
			return err
		}

		amount, _ := strconv.ParseFloat(amountStr, 64)
		day, _ := strconv.Atoi(dayStr)
		rule := model.ScheduleRule{
			Pattern:     model.Pattern(pattern),
			Amount:      amount,
			Description: desc,
		}
		if rule.Pattern == model.PatternMonthly {
			rule.DayOfMonth = &day
		} else {
			rule.Weekday = &day
		}
		req.Scheduled = append(req.Scheduled, rule)
	}

	if err := scenario.Save(path, req); err != nil {
		return err
	}
	fmt.Printf("\n  Scenario written to %s\n", path)

	if setDefault {
		cfg.General.ScenarioPath = path
		if err := config.Save(cfg); err != nil {
			return err
		}
		fmt.Printf("  Default scenario set in %s\n", config.Path())
	}

	fmt.Println("\n  Run `forecaster` to see your projection.")
	return nil
}
