package api

import (
	"fmt"
	"math"
	"time"

	"botdeck/internal/domain"
)

// Payload generators. Callers must hold c.mu while c.rng is used.

var assets = []string{"EURUSD", "GBPUSD", "USDJPY", "BTCUSD", "ETHUSD", "GOLD", "AUDUSD", "NZDUSD"}

var signalSources = []string{"Premium Channel", "VIP Signals", "AI Bot", "Manual Analysis"}

var signalStatuses = []domain.SignalStatus{
	domain.SignalPending, domain.SignalExecuted, domain.SignalExpired, domain.SignalCancelled,
}

var tradeStatuses = []domain.TradeStatus{
	domain.TradeOpen, domain.TradeWon, domain.TradeLost, domain.TradeCancelled,
}

func (c *MockClient) between(min, max float64) float64 {
	return min + c.rng.Float64()*(max-min)
}

func (c *MockClient) intBetween(min, max int) int {
	return min + c.rng.Intn(max-min)
}

func (c *MockClient) direction() domain.SignalDirection {
	if c.rng.Intn(2) == 0 {
		return domain.DirectionCall
	}
	return domain.DirectionPut
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (c *MockClient) generateSignals(count int) []domain.Signal {
	now := time.Now()
	out := make([]domain.Signal, 0, count)
	for i := 0; i < count; i++ {
		status := signalStatuses[c.rng.Intn(len(signalStatuses))]
		s := domain.Signal{
			ID:         fmt.Sprintf("sig-%d", 1000+i),
			Asset:      assets[c.rng.Intn(len(assets))],
			Direction:  c.direction(),
			Confidence: c.intBetween(65, 98),
			EntryPrice: round2(c.between(1.0, 2000)),
			ExpiryTime: now.Add(time.Duration(c.intBetween(60, 3600)) * time.Second),
			Source:     signalSources[c.rng.Intn(len(signalSources))],
			Status:     status,
			CreatedAt:  now.Add(-time.Duration(c.intBetween(0, 86400)) * time.Second),
		}
		if status == domain.SignalExecuted {
			s.Profit = round2(c.between(-50, 100))
		}
		out = append(out, s)
	}
	return out
}

func (c *MockClient) generateTrades(count int) []domain.Trade {
	now := time.Now()
	amounts := []float64{5, 10, 25, 50, 100}
	out := make([]domain.Trade, 0, count)
	for i := 0; i < count; i++ {
		status := tradeStatuses[c.rng.Intn(len(tradeStatuses))]
		amount := amounts[c.rng.Intn(len(amounts))]
		entry := round2(c.between(1.0, 2000))

		var pnl float64
		switch status {
		case domain.TradeWon:
			pnl = round2(amount * 0.85)
		case domain.TradeLost:
			pnl = -amount
		}

		t := domain.Trade{
			ID:         fmt.Sprintf("trade-%d", 2000+i),
			Asset:      assets[c.rng.Intn(len(assets))],
			Direction:  c.direction(),
			Amount:     amount,
			EntryPrice: entry,
			ExpiryTime: now.Add(time.Duration(c.intBetween(60, 3600)) * time.Second),
			Status:     status,
			PnL:        pnl,
			CreatedAt:  now.Add(-time.Duration(c.intBetween(0, 604800)) * time.Second),
		}
		if c.rng.Float64() > 0.3 {
			t.SignalID = fmt.Sprintf("sig-%d", 1000+c.rng.Intn(20))
		}
		if status != domain.TradeOpen {
			t.ExitPrice = round2(entry + c.between(-0.001, 0.001))
			closed := now.Add(-time.Duration(c.intBetween(0, 86400)) * time.Second)
			t.ClosedAt = &closed
		}
		out = append(out, t)
	}
	return out
}

func generateAccounts() []domain.Account {
	return []domain.Account{
		{
			ID: "acc-1", Name: "Demo Practice", Type: domain.AccountDemo, Broker: "Quotex",
			Balance: 50000, Equity: 52340, Currency: "USD",
			Status: domain.AccountConnected, IsDefault: false,
			TotalTrades: 156, WinRate: 68.5, TotalPnL: 2340, ProfitPercent: 4.68,
			LastSync:  time.Date(2024, 1, 15, 10, 28, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: "acc-2", Name: "Primary Trading", Type: domain.AccountLive, Broker: "Quotex",
			Balance: 10432.50, Equity: 10890.25, Currency: "USD",
			Status: domain.AccountConnected, IsDefault: true,
			TotalTrades: 89, WinRate: 72.1, TotalPnL: 2890.25, ProfitPercent: 38.5,
			LastSync:  time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC),
		},
		{
			ID: "acc-3", Name: "IQ Option Live", Type: domain.AccountLive, Broker: "IQ Option",
			Balance: 5200, Equity: 5420, Currency: "USD",
			Status: domain.AccountDisconnected, IsDefault: false,
			TotalTrades: 45, WinRate: 55.6, TotalPnL: 420, ProfitPercent: 8.4,
			LastSync:  time.Date(2024, 1, 14, 18, 0, 0, 0, time.UTC),
			CreatedAt: time.Date(2024, 9, 10, 14, 0, 0, 0, time.UTC),
		},
	}
}

func (c *MockClient) generatePerformance() []domain.PerformancePoint {
	const days = 30
	balance := 2000.0
	out := make([]domain.PerformancePoint, 0, days+1)
	for i := days; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		profit := round2(c.between(0, 150))
		loss := round2(c.between(0, 100))
		balance = round2(balance + profit - loss)
		out = append(out, domain.PerformancePoint{
			Date:    date.Format("2006-01-02"),
			Profit:  profit,
			Loss:    loss,
			Balance: balance,
			Trades:  c.intBetween(5, 25),
		})
	}
	return out
}

func (c *MockClient) generateDashboard() *domain.DashboardData {
	recentSignals := c.generateSignals(10)
	recentTrades := c.generateTrades(15)
	performance := c.generatePerformance()

	today := time.Now().Format("2006-01-02")
	var totalPnL, todayPnL float64
	var won, open, todayTrades int
	for _, t := range recentTrades {
		totalPnL += t.PnL
		if t.CreatedAt.Format("2006-01-02") == today {
			todayPnL += t.PnL
			todayTrades++
		}
		if t.Status == domain.TradeWon {
			won++
		}
		if t.Status == domain.TradeOpen {
			open++
		}
	}
	winRate := round2(float64(won) / float64(len(recentTrades)) * 100)

	var pending int
	for _, s := range recentSignals {
		if s.Status == domain.SignalPending {
			pending++
		}
	}

	history := make([]domain.ProfitHistoryPoint, 0, len(performance))
	var cumulative float64
	for _, p := range performance {
		cumulative += p.Profit - p.Loss
		history = append(history, domain.ProfitHistoryPoint{
			Date:       p.Date,
			Profit:     round2(p.Profit - p.Loss),
			Cumulative: round2(cumulative),
		})
	}

	todayChange := 15.3
	if todayPnL < 0 {
		todayChange = -8.7
	}

	return &domain.DashboardData{
		Stats: domain.DashboardStats{
			TotalProfit:    round2(totalPnL),
			ProfitChange:   12.5,
			WinRate:        winRate,
			WinRateChange:  2.3,
			TotalTrades:    len(recentTrades),
			TradesChange:   8,
			ActiveSignals:  pending,
			AccountBalance: 2547.83,
			BalanceChange:  5.2,
			TodayProfit:    round2(todayPnL),
			TodayChange:    todayChange,
			OpenPositions:  open,
		},
		BotStats: domain.BotStats{
			TotalBalance:    2547.83,
			TodayPnL:        round2(todayPnL),
			TodayPnLPercent: round2(todayPnL / 2547.83 * 100),
			TotalTrades:     len(recentTrades),
			TodayTrades:     todayTrades,
			WinRate:         winRate,
			ActiveSignals:   pending,
			OpenPositions:   open,
			MaxDrawdown:     8.5,
			ProfitFactor:    1.85,
			IsRunning:       true,
		},
		ActivityFeed:     generateActivityFeed(),
		RecentSignals:    recentSignals,
		RecentTrades:     recentTrades,
		Performance:      performance,
		AssetPerformance: c.generateAssetPerformance(),
		ProfitHistory:    history,
	}
}

func (c *MockClient) generateAssetPerformance() []domain.AssetPerformance {
	out := make([]domain.AssetPerformance, 0, len(assets))
	for _, a := range assets {
		out = append(out, domain.AssetPerformance{
			Asset:   a,
			Trades:  c.intBetween(10, 100),
			WinRate: round2(c.between(50, 85)),
			PnL:     round2(c.between(-200, 500)),
			Volume:  c.intBetween(500, 5000),
		})
	}
	return out
}

func generateActivityFeed() []domain.ActivityItem {
	now := time.Now()
	return []domain.ActivityItem{
		{ID: "act-1", Type: domain.ActivityTrade, Title: "Trade Won",
			Description: "EURUSD CALL trade closed with +$8.50 profit",
			Timestamp:   now.Add(-5 * time.Minute), Status: "success"},
		{ID: "act-2", Type: domain.ActivitySignal, Title: "New Signal",
			Description: "BTCUSD PUT signal received with 85% confidence",
			Timestamp:   now.Add(-10 * time.Minute), Status: "info"},
		{ID: "act-3", Type: domain.ActivityTrade, Title: "Trade Lost",
			Description: "GBPUSD PUT trade closed with -$10.00 loss",
			Timestamp:   now.Add(-15 * time.Minute), Status: "error"},
		{ID: "act-4", Type: domain.ActivitySystem, Title: "Bot Started",
			Description: "Auto-trading bot started successfully",
			Timestamp:   now.Add(-30 * time.Minute), Status: "success"},
		{ID: "act-5", Type: domain.ActivityAccount, Title: "Balance Updated",
			Description: "Account balance updated to $2,547.83",
			Timestamp:   now.Add(-time.Hour), Status: "info"},
		{ID: "act-6", Type: domain.ActivitySystem, Title: "Daily Limit Warning",
			Description: "Approaching daily loss limit (80% used)",
			Timestamp:   now.Add(-2 * time.Hour), Status: "warning"},
	}
}

// rangeProfile scales analytics output by window length.
var rangeProfile = map[domain.TimeRange]struct {
	days   int
	trades int
}{
	domain.Range7D:  {7, 35},
	domain.Range30D: {30, 145},
	domain.Range90D: {90, 410},
	domain.Range1Y:  {365, 1620},
}

func (c *MockClient) generateAnalytics(timeRange domain.TimeRange) *domain.AnalyticsData {
	profile := rangeProfile[timeRange]

	daily := make([]domain.DailyPnL, 0, 7)
	for _, day := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		daily = append(daily, domain.DailyPnL{
			Date:   day,
			Profit: round2(c.between(40, 200)),
			Loss:   round2(c.between(-90, -10)),
		})
	}

	weeks := profile.days / 7
	if weeks < 4 {
		weeks = 4
	}
	if weeks > 12 {
		weeks = 12
	}
	cumulative := make([]domain.CumulativePnL, 0, weeks)
	balance := 10000.0
	var total float64
	for i := 1; i <= weeks; i++ {
		pnl := round2(c.between(-120, 580))
		balance = round2(balance + pnl)
		total += pnl
		cumulative = append(cumulative, domain.CumulativePnL{
			Date:    fmt.Sprintf("Week %d", i),
			PnL:     pnl,
			Balance: balance,
		})
	}

	breakdown := make([]domain.AssetBreakdown, 0, 5)
	for _, a := range assets[:5] {
		breakdown = append(breakdown, domain.AssetBreakdown{
			Asset:   a,
			Trades:  c.intBetween(15, 50),
			WinRate: round2(c.between(55, 80)),
			Profit:  round2(c.between(100, 600)),
		})
	}

	callShare := round2(c.between(45, 65))
	winShare := round2(c.between(55, 75))

	return &domain.AnalyticsData{
		Metrics: domain.AnalyticsMetrics{
			TotalProfit:        round2(total),
			TotalProfitPercent: round2(total / 10000 * 100),
			WinRate:            winShare,
			WinRateChange:      3.2,
			TotalTrades:        profile.trades,
			ProfitFactor:       1.85,
			AvgTradeProfit:     round2(total / float64(profile.trades)),
			MaxDrawdown:        8.2,
			SharpeRatio:        1.45,
			BestTrade:          245,
			WorstTrade:         -89,
			AvgHoldingTime:     "4m 32s",
		},
		DailyPnL:         daily,
		CumulativePnL:    cumulative,
		AssetPerformance: breakdown,
		Directions: []domain.SplitSlice{
			{Name: "CALL", Value: callShare},
			{Name: "PUT", Value: round2(100 - callShare)},
		},
		ResultDistribution: []domain.SplitSlice{
			{Name: "Wins", Value: winShare},
			{Name: "Losses", Value: round2(100 - winShare)},
		},
	}
}
