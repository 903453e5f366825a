package tui

import (
	"fmt"
	"strings"
	"time"

	"botdeck/internal/domain"
)

// FormatSignal renders a signal as a single line.
func FormatSignal(st Styles, s domain.Signal) string {
	dirStyle := st.Positive
	if s.Direction == domain.DirectionPut {
		dirStyle = st.Negative
	}

	status := string(s.Status)
	switch s.Status {
	case domain.SignalExecuted:
		status = st.Positive.Render(status)
	case domain.SignalExpired, domain.SignalCancelled:
		status = st.Subtext.Render(status)
	default:
		status = st.Warning.Render(status)
	}

	return fmt.Sprintf("%-8s %s %3d%%  @%.5f  %-9s %s",
		s.Asset,
		dirStyle.Render(fmt.Sprintf("%-4s", s.Direction)),
		s.Confidence,
		s.EntryPrice,
		status,
		st.Subtext.Render(s.CreatedAt.Format("Jan 02 15:04")),
	)
}

// FormatTrade renders a trade as a single line.
func FormatTrade(st Styles, t domain.Trade) string {
	dirStyle := st.Positive
	if t.Direction == domain.DirectionPut {
		dirStyle = st.Negative
	}

	pnl := signedUSD(t.PnL)
	switch {
	case t.PnL > 0:
		pnl = st.Positive.Render(pnl)
	case t.PnL < 0:
		pnl = st.Negative.Render(pnl)
	default:
		pnl = st.Subtext.Render(pnl)
	}

	status := string(t.Status)
	switch t.Status {
	case domain.TradeWon:
		status = st.Positive.Render(status)
	case domain.TradeLost:
		status = st.Negative.Render(status)
	case domain.TradeOpen:
		status = st.Warning.Render(status)
	default:
		status = st.Subtext.Render(status)
	}

	return fmt.Sprintf("%-8s %s %8s  %-9s %10s  %s",
		t.Asset,
		dirStyle.Render(fmt.Sprintf("%-4s", t.Direction)),
		formatUSD(t.Amount),
		status,
		pnl,
		st.Subtext.Render(t.CreatedAt.Format("Jan 02 15:04")),
	)
}

// FormatAccount renders an account as a single line.
func FormatAccount(st Styles, a domain.Account, marker string) string {
	status := string(a.Status)
	switch a.Status {
	case domain.AccountConnected:
		status = st.Positive.Render(status)
	case domain.AccountDisconnected, domain.AccountError:
		status = st.Negative.Render(status)
	default:
		status = st.Warning.Render(status)
	}

	def := " "
	if a.IsDefault {
		def = "*"
	}

	return fmt.Sprintf("%s %s %-22s %-4s %-10s %12s  %-12s %s",
		marker,
		def,
		a.Name,
		strings.ToUpper(string(a.Type)),
		a.Broker,
		formatUSD(a.Balance),
		status,
		st.Subtext.Render("win "+fmt.Sprintf("%.1f%%", a.WinRate)),
	)
}

// FormatActivity renders an activity feed entry as a single line.
func FormatActivity(st Styles, item domain.ActivityItem) string {
	return fmt.Sprintf("%s  %s %s",
		st.Subtext.Render(item.Timestamp.Format("15:04")),
		st.Header.Render(item.Title),
		st.Subtext.Render(item.Description),
	)
}

// FormatChatMessage renders a support-chat message, possibly multi-line.
func FormatChatMessage(st Styles, m domain.ChatMessage) string {
	ts := st.Subtext.Render(m.Timestamp.Format("15:04"))

	if m.Sender == domain.SenderSupport {
		var lines []string
		lines = append(lines, fmt.Sprintf("  %s  %s", ts, st.SupportMsg.Render("Support:")))
		for _, line := range strings.Split(m.Content, "\n") {
			lines = append(lines, "         "+line)
		}
		return strings.Join(lines, "\n")
	}

	suffix := ""
	switch m.Status {
	case domain.MessageSending:
		suffix = st.Subtext.Render("  ⋯ sending")
	case domain.MessageFailed:
		suffix = st.FailedMsg.Render("  ✗ failed (ctrl+r to retry)")
	}
	return fmt.Sprintf("  %s  %s %s%s", ts, st.UserMsg.Render("You:"), m.Content, suffix)
}

// RenderPnLBar renders one row of a daily profit/loss chart.
func RenderPnLBar(st Styles, day domain.DailyPnL, scale float64, barWidth int) string {
	if barWidth <= 0 {
		barWidth = 20
	}
	if scale <= 0 {
		scale = 1
	}

	profitCells := int(day.Profit / scale * float64(barWidth))
	lossCells := int(-day.Loss / scale * float64(barWidth))
	if profitCells > barWidth {
		profitCells = barWidth
	}
	if lossCells > barWidth {
		lossCells = barWidth
	}

	bar := st.Positive.Render(strings.Repeat("█", profitCells)) +
		st.Negative.Render(strings.Repeat("█", lossCells))

	return fmt.Sprintf("%-8s %s %s", day.Date, bar,
		st.Subtext.Render(signedUSD(day.Profit+day.Loss)))
}

func formatUSD(v float64) string {
	if v >= 1000 || v <= -1000 {
		return "$" + addCommas(fmt.Sprintf("%.0f", v))
	}
	return fmt.Sprintf("$%.2f", v)
}

func signedUSD(v float64) string {
	if v > 0 {
		return "+" + formatUSD(v)
	}
	if v < 0 {
		return "-" + formatUSD(-v)
	}
	return formatUSD(0)
}

func addCommas(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	n := len(s)
	if n > 3 {
		var b strings.Builder
		for i, ch := range s {
			if i > 0 && (n-i)%3 == 0 {
				b.WriteByte(',')
			}
			b.WriteRune(ch)
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// relativeTime is used by list footers ("synced 2m ago").
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}
