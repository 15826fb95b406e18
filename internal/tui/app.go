// Package tui provides the interactive Bubble Tea forecast dashboard.
package tui

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/LucasAust/forecaster/internal/cli"
	"github.com/LucasAust/forecaster/internal/config"
	"github.com/LucasAust/forecaster/internal/engine"
	"github.com/LucasAust/forecaster/internal/model"
	"github.com/LucasAust/forecaster/internal/schedule"
	"github.com/LucasAust/forecaster/internal/tui/components"
	"github.com/LucasAust/forecaster/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ForecastDoneMsg is sent when the engine finishes a run.
type ForecastDoneMsg struct {
	Resp    *model.Response
	Err     error
	Elapsed time.Duration
}

// App is the root Bubble Tea model.
type App struct {
	cfg config.Config
	eng *engine.Engine
	req model.Request

	// Result state
	resp    *model.Response
	runErr  error
	loaded  bool
	elapsed time.Duration

	// Upcoming scheduled events for the schedule tab
	events []model.ScheduledEvent

	// UI state
	width     int
	height    int
	activeTab int
	scroll    int

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	maxContentWidth  = 140
)

// NewApp creates a new dashboard model for the given request.
func NewApp(cfg config.Config, req model.Request) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		cfg:     cfg,
		eng:     engine.New(cfg),
		req:     req,
		spinner: sp,
	}
}

func runForecastCmd(eng *engine.Engine, req model.Request) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		resp, err := eng.Run(context.Background(), req)
		return ForecastDoneMsg{Resp: resp, Err: err, Elapsed: time.Since(start)}
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		runForecastCmd(a.eng, a.req),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case ForecastDoneMsg:
		a.resp = msg.Resp
		a.runErr = msg.Err
		a.elapsed = msg.Elapsed
		a.loaded = true
		if msg.Err == nil {
			a.events = upcomingEvents(a.req, a.cfg)
		}
		return a, nil

	case spinner.TickMsg:
		if a.loaded {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" || key == "q" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}

		switch key {
		case "tab", "right", "l":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
			a.scroll = 0
			return a, nil
		case "shift+tab", "left", "h":
			a.activeTab = (a.activeTab + len(components.Tabs) - 1) % len(components.Tabs)
			a.scroll = 0
			return a, nil
		case "up", "k":
			if a.scroll > 0 {
				a.scroll--
			}
			return a, nil
		case "down", "j":
			a.scroll++
			return a, nil
		case "r":
			a.loaded = false
			a.resp = nil
			a.runErr = nil
			return a, tea.Batch(runForecastCmd(a.eng, a.req), a.spinner.Tick)
		}

		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
				a.scroll = 0
			}
		}
		return a, nil
	}

	return a, nil
}

func (a App) contentWidth() int {
	w := a.width
	if w > maxContentWidth {
		w = maxContentWidth
	}
	return w
}

// View implements tea.Model.
func (a App) View() string {
	if a.width > 0 && a.width < minTerminalWidth {
		return fmt.Sprintf("\n  Terminal too narrow (%d cols, need %d).\n  [q]uit\n", a.width, minTerminalWidth)
	}
	if !a.loaded {
		return fmt.Sprintf("\n\n   %s computing forecast...\n", a.spinner.View())
	}
	if a.runErr != nil {
		errStyle := lipgloss.NewStyle().Foreground(theme.Active.Red)
		return fmt.Sprintf("\n  %s\n\n  [r]etry  [q]uit\n", errStyle.Render("forecast failed: "+a.runErr.Error()))
	}

	var b strings.Builder
	b.WriteString(components.RenderTabBar(a.activeTab, a.contentWidth()))
	b.WriteString("\n\n")

	switch a.activeTab {
	case 0:
		b.WriteString(a.viewOverview())
	case 1:
		b.WriteString(a.viewAdvice())
	case 2:
		b.WriteString(a.viewSchedule())
	case 3:
		b.WriteString(a.viewCategories())
	}

	b.WriteString("\n")
	b.WriteString(components.RenderStatusBar(a.contentWidth(), a.resp.Summary.MethodUsed))
	return b.String()
}

func (a App) viewOverview() string {
	sum := a.resp.Summary
	w := a.contentWidth()

	netTone := components.ToneGood
	if sum.NetChange < 0 {
		netTone = components.ToneBad
	}
	minTone := components.ToneNeutral
	if sum.MinimumBalance < 0 {
		minTone = components.ToneBad
	} else if sum.MinimumBalance < a.cfg.Advice.LowBalanceThreshold {
		minTone = components.ToneWarn
	}

	cards := components.MetricCardRow([]components.Metric{
		{Label: "Opening", Value: cli.FormatMoney(sum.OpeningBalance)},
		{Label: "Projected", Value: cli.FormatMoney(sum.FinalBalance)},
		{Label: "Net change", Value: cli.FormatSignedMoney(sum.NetChange), Tone: netTone},
		{Label: "Lowest point", Value: cli.FormatMoney(sum.MinimumBalance), Note: cli.FormatDate(sum.MinimumBalanceDate), Tone: minTone},
	}, w)

	balances := make([]float64, len(a.resp.Forecast))
	labels := make([]string, len(a.resp.Forecast))
	for i, p := range a.resp.Forecast {
		balances[i] = p.Balance
		labels[i] = cli.FormatDate(p.Date)
	}

	chartH := a.height - 14
	if chartH < 6 {
		chartH = 6
	}
	if chartH > 20 {
		chartH = 20
	}
	chart := components.ContentCard("Projected balance",
		components.BalanceChart(balances, labels, components.CardInnerWidth(w), chartH), w)

	return cards + "\n" + chart
}

func (a App) viewAdvice() string {
	w := a.contentWidth()

	var alerts strings.Builder
	if len(a.resp.Alerts) == 0 {
		alerts.WriteString(lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("  no alerts"))
	}
	for _, al := range a.resp.Alerts {
		alerts.WriteString(cli.RenderAlert(al))
		alerts.WriteString("\n")
	}

	var recs strings.Builder
	if len(a.resp.Recommendations) == 0 {
		recs.WriteString(lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("  nothing to suggest"))
	}
	for _, r := range a.resp.Recommendations {
		recs.WriteString(cli.RenderRecommendation(r))
		recs.WriteString("\n")
	}

	out := components.ContentCard("Alerts", strings.TrimRight(alerts.String(), "\n"), w) + "\n" +
		components.ContentCard("Recommendations", strings.TrimRight(recs.String(), "\n"), w)

	if d := a.resp.Diagnostics; len(d.SkippedRules) > 0 || d.SkippedTransactions > 0 {
		var diag strings.Builder
		for _, r := range d.SkippedRules {
			diag.WriteString("  skipped rule: " + r + "\n")
		}
		if d.SkippedTransactions > 0 {
			fmt.Fprintf(&diag, "  skipped %d unparsable transaction(s)\n", d.SkippedTransactions)
		}
		out += "\n" + components.ContentCard("Diagnostics", strings.TrimRight(diag.String(), "\n"), w)
	}
	return out
}

func (a App) viewSchedule() string {
	w := a.contentWidth()

	if len(a.events) == 0 {
		return components.ContentCard("Upcoming scheduled",
			lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("  no scheduled cash flows in the horizon"), w)
	}

	rows := a.events
	visible := a.height - 10
	if visible < 5 {
		visible = 5
	}
	start := a.scroll
	if start > len(rows)-1 {
		start = len(rows) - 1
	}
	end := start + visible
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	for _, ev := range rows[start:end] {
		amt := cli.FormatSignedMoney(ev.Amount)
		style := lipgloss.NewStyle().Foreground(theme.Active.Green)
		if ev.Amount < 0 {
			style = lipgloss.NewStyle().Foreground(theme.Active.Red)
		}
		fmt.Fprintf(&b, "  %s  %s  %s\n",
			ev.Date.Format("Mon Jan 02"), style.Render(fmt.Sprintf("%12s", amt)), ev.Description)
	}
	title := fmt.Sprintf("Upcoming scheduled (%d)", len(rows))
	return components.ContentCard(title, strings.TrimRight(b.String(), "\n"), w)
}

func (a App) viewCategories() string {
	w := a.contentWidth()
	breakdown := a.resp.Summary.ExpenseBreakdown
	if len(breakdown) == 0 {
		return components.ContentCard("Spending by category",
			lipgloss.NewStyle().Foreground(theme.Active.TextDim).Render("  no categorized spending in history"), w)
	}

	names := make([]string, 0, len(breakdown))
	maxSpend := 0.0
	for name, v := range breakdown {
		names = append(names, name)
		if v > maxSpend {
			maxSpend = v
		}
	}
	sort.Slice(names, func(i, j int) bool { return breakdown[names[i]] > breakdown[names[j]] })

	barW := components.CardInnerWidth(w) - 32
	if barW < 10 {
		barW = 10
	}
	var b strings.Builder
	for _, name := range names {
		b.WriteString(cli.RenderHorizontalBar(name, breakdown[name], maxSpend, barW))
		b.WriteString("\n")
	}
	return components.ContentCard("Spending by category", strings.TrimRight(b.String(), "\n"), w)
}

// upcomingEvents expands the request's schedule for the schedule tab,
// soonest first.
func upcomingEvents(req model.Request, cfg config.Config) []model.ScheduledEvent {
	now := time.Now().UTC()
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if req.AsOf != "" {
		if t, err := time.Parse(model.DateFormat, req.AsOf); err == nil {
			asOf = t
		}
	}
	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = cfg.General.DefaultHorizonDays
	}
	events, _ := schedule.Expand(req.Scheduled, asOf, horizon)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Date.Before(events[j].Date) })
	return events
}
