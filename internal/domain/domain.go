package domain

import "time"

// ThemeMode is the UI color scheme.
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
)

func (m ThemeMode) IsValid() bool {
	return m == ThemeLight || m == ThemeDark
}

// User is the session user record.
type User struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Session is the result of a successful login or registration.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type SignalDirection string

const (
	DirectionCall SignalDirection = "CALL"
	DirectionPut  SignalDirection = "PUT"
)

type SignalStatus string

const (
	SignalPending   SignalStatus = "pending"
	SignalExecuted  SignalStatus = "executed"
	SignalExpired   SignalStatus = "expired"
	SignalCancelled SignalStatus = "cancelled"
)

// Signal is a trading signal emitted by the bot.
type Signal struct {
	ID         string          `json:"id"`
	Asset      string          `json:"asset"`
	Direction  SignalDirection `json:"direction"`
	Confidence int             `json:"confidence"`
	EntryPrice float64         `json:"entryPrice"`
	ExpiryTime time.Time       `json:"expiryTime"`
	Source     string          `json:"source"`
	Status     SignalStatus    `json:"status"`
	CreatedAt  time.Time       `json:"createdAt"`
	Profit     float64         `json:"profit,omitempty"`
}

type TradeStatus string

const (
	TradeOpen      TradeStatus = "open"
	TradeWon       TradeStatus = "won"
	TradeLost      TradeStatus = "lost"
	TradeCancelled TradeStatus = "cancelled"
)

// Trade is an executed position, possibly originating from a signal.
type Trade struct {
	ID         string          `json:"id"`
	SignalID   string          `json:"signalId,omitempty"`
	Asset      string          `json:"asset"`
	Direction  SignalDirection `json:"direction"`
	Amount     float64         `json:"amount"`
	EntryPrice float64         `json:"entryPrice"`
	ExitPrice  float64         `json:"exitPrice,omitempty"`
	ExpiryTime time.Time       `json:"expiryTime"`
	Status     TradeStatus     `json:"status"`
	PnL        float64         `json:"pnl"`
	CreatedAt  time.Time       `json:"createdAt"`
	ClosedAt   *time.Time      `json:"closedAt,omitempty"`
}

type AccountStatus string

const (
	AccountConnected    AccountStatus = "connected"
	AccountDisconnected AccountStatus = "disconnected"
	AccountConnecting   AccountStatus = "connecting"
	AccountError        AccountStatus = "error"
)

type AccountType string

const (
	AccountDemo AccountType = "demo"
	AccountLive AccountType = "live"
)

// Account is a linked broker account.
type Account struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Type          AccountType   `json:"type"`
	Broker        string        `json:"broker"`
	Balance       float64       `json:"balance"`
	Equity        float64       `json:"equity"`
	Currency      string        `json:"currency"`
	Status        AccountStatus `json:"status"`
	IsDefault     bool          `json:"isDefault"`
	TotalTrades   int           `json:"totalTrades"`
	WinRate       float64       `json:"winRate"`
	TotalPnL      float64       `json:"totalPnL"`
	ProfitPercent float64       `json:"profitPercent"`
	LastSync      time.Time     `json:"lastSync"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// AccountPatch is a partial account mutation. Nil fields are left untouched.
type AccountPatch struct {
	Name      *string
	Status    *AccountStatus
	Balance   *float64
	Equity    *float64
	IsDefault *bool
	LastSync  *time.Time
}

// Apply returns a copy of a with the patch's non-nil fields set.
func (p AccountPatch) Apply(a Account) Account {
	if p.Name != nil {
		a.Name = *p.Name
	}
	if p.Status != nil {
		a.Status = *p.Status
	}
	if p.Balance != nil {
		a.Balance = *p.Balance
	}
	if p.Equity != nil {
		a.Equity = *p.Equity
	}
	if p.IsDefault != nil {
		a.IsDefault = *p.IsDefault
	}
	if p.LastSync != nil {
		a.LastSync = *p.LastSync
	}
	return a
}

// Merge combines two patches; fields set in next win over p.
func (p AccountPatch) Merge(next AccountPatch) AccountPatch {
	if next.Name != nil {
		p.Name = next.Name
	}
	if next.Status != nil {
		p.Status = next.Status
	}
	if next.Balance != nil {
		p.Balance = next.Balance
	}
	if next.Equity != nil {
		p.Equity = next.Equity
	}
	if next.IsDefault != nil {
		p.IsDefault = next.IsDefault
	}
	if next.LastSync != nil {
		p.LastSync = next.LastSync
	}
	return p
}

// TradingSettings controls the bot's risk and execution parameters.
type TradingSettings struct {
	DefaultAmount        float64  `json:"defaultAmount"`
	MaxDailyLoss         float64  `json:"maxDailyLoss"`
	MaxDailyTrades       int      `json:"maxDailyTrades"`
	AllowedAssets        []string `json:"allowedAssets"`
	MinConfidence        int      `json:"minConfidence"`
	AutoTrading          bool     `json:"autoTrading"`
	Martingale           bool     `json:"martingale"`
	MartingaleMultiplier float64  `json:"martingaleMultiplier"`
	MaxMartingaleSteps   int      `json:"maxMartingaleSteps"`
	TradingHoursStart    string   `json:"tradingHoursStart"`
	TradingHoursEnd      string   `json:"tradingHoursEnd"`
}

// DefaultSettings returns the factory trading settings.
func DefaultSettings() TradingSettings {
	return TradingSettings{
		DefaultAmount:        10,
		MaxDailyLoss:         100,
		MaxDailyTrades:       50,
		AllowedAssets:        []string{"EURUSD", "GBPUSD", "USDJPY", "BTCUSD", "ETHUSD"},
		MinConfidence:        70,
		AutoTrading:          true,
		Martingale:           false,
		MartingaleMultiplier: 2,
		MaxMartingaleSteps:   3,
		TradingHoursStart:    "09:00",
		TradingHoursEnd:      "17:00",
	}
}

// DashboardStats are the headline numbers on the dashboard.
type DashboardStats struct {
	TotalProfit    float64 `json:"totalProfit"`
	ProfitChange   float64 `json:"profitChange"`
	WinRate        float64 `json:"winRate"`
	WinRateChange  float64 `json:"winRateChange"`
	TotalTrades    int     `json:"totalTrades"`
	TradesChange   int     `json:"tradesChange"`
	ActiveSignals  int     `json:"activeSignals"`
	AccountBalance float64 `json:"accountBalance"`
	BalanceChange  float64 `json:"balanceChange"`
	TodayProfit    float64 `json:"todayProfit"`
	TodayChange    float64 `json:"todayChange"`
	OpenPositions  int     `json:"openPositions"`
}

// BotStats describe the running bot process.
type BotStats struct {
	TotalBalance    float64 `json:"totalBalance"`
	TodayPnL        float64 `json:"todayPnL"`
	TodayPnLPercent float64 `json:"todayPnLPercent"`
	TotalTrades     int     `json:"totalTrades"`
	TodayTrades     int     `json:"todayTrades"`
	WinRate         float64 `json:"winRate"`
	ActiveSignals   int     `json:"activeSignals"`
	OpenPositions   int     `json:"openPositions"`
	MaxDrawdown     float64 `json:"maxDrawdown"`
	ProfitFactor    float64 `json:"profitFactor"`
	IsRunning       bool    `json:"isRunning"`
}

type ActivityType string

const (
	ActivityTrade   ActivityType = "trade"
	ActivitySignal  ActivityType = "signal"
	ActivitySystem  ActivityType = "system"
	ActivityAccount ActivityType = "account"
)

// ActivityItem is one entry in the dashboard activity feed.
type ActivityItem struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	Status      string       `json:"status,omitempty"`
}

// PerformancePoint is one day of trading performance.
type PerformancePoint struct {
	Date    string  `json:"date"`
	Profit  float64 `json:"profit"`
	Loss    float64 `json:"loss"`
	Balance float64 `json:"balance"`
	Trades  int     `json:"trades"`
}

// AssetPerformance aggregates results per traded asset.
type AssetPerformance struct {
	Asset   string  `json:"asset"`
	Trades  int     `json:"trades"`
	WinRate float64 `json:"winRate"`
	PnL     float64 `json:"pnl"`
	Volume  int     `json:"volume"`
}

// ProfitHistoryPoint is one point in the cumulative profit chart.
type ProfitHistoryPoint struct {
	Date       string  `json:"date"`
	Profit     float64 `json:"profit"`
	Cumulative float64 `json:"cumulative"`
}

// DashboardData is the full dashboard snapshot returned by the backend.
type DashboardData struct {
	Stats            DashboardStats       `json:"stats"`
	BotStats         BotStats             `json:"botStats"`
	ActivityFeed     []ActivityItem       `json:"activityFeed"`
	RecentSignals    []Signal             `json:"recentSignals"`
	RecentTrades     []Trade              `json:"recentTrades"`
	Performance      []PerformancePoint   `json:"performanceData"`
	AssetPerformance []AssetPerformance   `json:"assetPerformance"`
	ProfitHistory    []ProfitHistoryPoint `json:"profitHistory"`
}

// TimeRange selects the analytics window.
type TimeRange string

const (
	Range7D  TimeRange = "7d"
	Range30D TimeRange = "30d"
	Range90D TimeRange = "90d"
	Range1Y  TimeRange = "1y"
)

func (r TimeRange) IsValid() bool {
	switch r {
	case Range7D, Range30D, Range90D, Range1Y:
		return true
	}
	return false
}

// AnalyticsMetrics are the summary figures on the analytics page.
type AnalyticsMetrics struct {
	TotalProfit        float64 `json:"totalProfit"`
	TotalProfitPercent float64 `json:"totalProfitPercent"`
	WinRate            float64 `json:"winRate"`
	WinRateChange      float64 `json:"winRateChange"`
	TotalTrades        int     `json:"totalTrades"`
	ProfitFactor       float64 `json:"profitFactor"`
	AvgTradeProfit     float64 `json:"avgTradeProfit"`
	MaxDrawdown        float64 `json:"maxDrawdown"`
	SharpeRatio        float64 `json:"sharpeRatio"`
	BestTrade          float64 `json:"bestTrade"`
	WorstTrade         float64 `json:"worstTrade"`
	AvgHoldingTime     string  `json:"avgHoldingTime"`
}

// DailyPnL is one bar of the daily profit/loss chart.
type DailyPnL struct {
	Date   string  `json:"date"`
	Profit float64 `json:"profit"`
	Loss   float64 `json:"loss"`
}

// CumulativePnL is one point of the cumulative P&L chart.
type CumulativePnL struct {
	Date    string  `json:"date"`
	PnL     float64 `json:"pnl"`
	Balance float64 `json:"balance"`
}

// AssetBreakdown is per-asset analytics.
type AssetBreakdown struct {
	Asset   string  `json:"asset"`
	Trades  int     `json:"trades"`
	WinRate float64 `json:"winRate"`
	Profit  float64 `json:"profit"`
}

// SplitSlice is one slice of a direction or result distribution.
type SplitSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// AnalyticsData is the analytics snapshot for one time range.
type AnalyticsData struct {
	Metrics            AnalyticsMetrics `json:"metrics"`
	DailyPnL           []DailyPnL       `json:"dailyPnL"`
	CumulativePnL      []CumulativePnL  `json:"cumulativePnL"`
	AssetPerformance   []AssetBreakdown `json:"assetPerformance"`
	Directions         []SplitSlice     `json:"directionData"`
	ResultDistribution []SplitSlice     `json:"resultDistribution"`
}

// ContactForm is a support ticket submission.
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type ChatSender string

const (
	SenderUser    ChatSender = "user"
	SenderSupport ChatSender = "support"
)

type MessageStatus string

const (
	MessageSending MessageStatus = "sending"
	MessageSent    MessageStatus = "sent"
	MessageFailed  MessageStatus = "failed"
)

// ChatMessage is one message in the support conversation. While a message is
// unconfirmed its ID equals its TempID; a final ID is assigned on delivery.
type ChatMessage struct {
	ID        string        `json:"id"`
	Content   string        `json:"content"`
	Sender    ChatSender    `json:"sender"`
	Timestamp time.Time     `json:"timestamp"`
	Status    MessageStatus `json:"status"`
	TempID    string        `json:"tempId,omitempty"`
}
