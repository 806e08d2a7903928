package console

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/rustyeddy/fxtrigger/journal"
	"github.com/rustyeddy/fxtrigger/trade"
)

var (
	successStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#10B981")).
			Padding(0, 2)

	failureStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#EF4444")).
			Padding(0, 2)

	previewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")).Width(14)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
)

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

func price(v float64) string {
	return fmt.Sprintf("%.5f", v)
}

// RenderReport shows the result of one trade.
func RenderReport(rep trade.Report) string {
	o := rep.Order
	rows := []string{
		row("Symbol", o.Symbol),
		row("Direction", string(o.Side)),
		row("Entry Price", price(o.EntryPrice)),
		row("Stop Loss", price(o.StopLoss)),
		row("Take Profit", price(o.TakeProfit)),
		row("Lot Size", fmt.Sprintf("%.2f", o.LotSize)),
		row("R-Value", fmt.Sprintf("%.2f", o.RewardToRisk)),
	}

	if rep.Outcome.Filled {
		rows = append(rows,
			row("Fill Mode", string(rep.Outcome.FillMode)),
			row("Order", rep.Outcome.OrderID),
			row("Elapsed", rep.Elapsed.Round(time.Millisecond).String()),
		)
		body := lipgloss.JoinVertical(lipgloss.Left,
			append([]string{titleStyle.Render("Trade executed"), ""}, rows...)...)
		return successStyle.Render(body)
	}

	for _, a := range rep.Outcome.Attempts {
		rows = append(rows, row(string(a.FillMode), fmt.Sprintf("retcode %d %s", a.Retcode, a.Comment)))
	}
	body := lipgloss.JoinVertical(lipgloss.Left,
		append([]string{titleStyle.Render("Trade not executed: " + rep.Outcome.Reason), ""}, rows...)...)
	return failureStyle.Render(body)
}

// RenderPreview shows a sized order and the policy decision without
// submitting anything.
func RenderPreview(rep trade.Report) string {
	s, d := rep.Order, rep.Decision
	rows := []string{
		titleStyle.Render("Sizing preview"),
		"",
		row("Symbol", s.Symbol),
		row("Direction", string(s.Side)),
		row("Entry Price", price(s.EntryPrice)),
		row("Stop Loss", fmt.Sprintf("%s (%.1f pips)", price(s.StopLoss), s.StopPips)),
		row("Take Profit", price(s.TakeProfit)),
		row("Balance", fmt.Sprintf("%.2f", s.Balance)),
		row("Risk", fmt.Sprintf("%.2f%% = %.2f", s.RiskPercent, s.RiskAmount)),
		row("Pip Value", fmt.Sprintf("%.2f / lot", s.PipValue)),
	}
	if rep.AccountPipValue > 0 && rep.AccountPipValue != s.PipValue {
		rows = append(rows, row("", fmt.Sprintf("%.2f %s / lot", rep.AccountPipValue, rep.AccountCurrency)))
	}
	rows = append(rows,
		row("Lot Size", fmt.Sprintf("%.2f", s.LotSize)),
		row("R-Value", fmt.Sprintf("%.2f", s.RewardToRisk)),
		row("Spread", fmt.Sprintf("%.1f pips = %.2f", s.SpreadPips, s.SpreadCost)),
	)
	if d.Allowed {
		rows = append(rows, row("Policy", "ok"))
	} else {
		for _, v := range d.Violations {
			rows = append(rows, row("Policy", errorStyle.Render(v.Code+": "+v.Msg)))
		}
	}
	return previewStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func RenderError(err error) string {
	return errorStyle.Render(fmt.Sprintf("✗ %s error: %v", trade.Classify(err), err))
}

// RenderExecutions lists journal rows, one per line.
func RenderExecutions(recs []journal.ExecutionRecord) string {
	if len(recs) == 0 {
		return "no executions recorded"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%-26s  %-19s  %-7s  %-4s  %6s  %-8s  %-6s  %s\n",
		"EXEC ID", "TIME", "SYMBOL", "SIDE", "LOTS", "RESULT", "MODE", "ORDER/REASON")
	for _, r := range recs {
		detail := r.OrderID
		if detail == "" {
			detail = r.Reason
		}
		fmt.Fprintf(&b, "%-26s  %-19s  %-7s  %-4s  %6.2f  %-8s  %-6s  %s\n",
			r.ExecID, r.Time.Local().Format("2006-01-02 15:04:05"), r.Symbol, r.Side,
			r.LotSize, r.Result, r.FillMode, detail)
	}
	return strings.TrimRight(b.String(), "\n")
}
