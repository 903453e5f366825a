package api

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"botdeck/internal/domain"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"
)

type mockUser struct {
	user         domain.User
	passwordHash []byte
}

// MockClient simulates the bot backend: generated payloads behind an
// artificial latency. Safe for concurrent use.
type MockClient struct {
	tracer  trace.Tracer
	latency time.Duration

	mu    sync.Mutex
	rng   *rand.Rand
	users []mockUser
}

// Option configures a MockClient.
type Option func(*MockClient)

// WithLatency sets the base artificial latency per call. Zero disables it.
func WithLatency(d time.Duration) Option {
	return func(c *MockClient) { c.latency = d }
}

// WithSeed makes generated payloads reproducible.
func WithSeed(seed int64) Option {
	return func(c *MockClient) { c.rng = rand.New(rand.NewSource(seed)) }
}

// NewMockClient creates the simulated backend with two seeded users
// (admin@dashboard.com/admin123 and demo@dashboard.com/demo123).
func NewMockClient(tracer trace.Tracer, opts ...Option) *MockClient {
	c := &MockClient{
		tracer:  tracer,
		latency: 300 * time.Millisecond,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.users = []mockUser{
		{
			user: domain.User{
				ID:    "1",
				Email: "admin@dashboard.com",
				Name:  "Lilian Trader",
				Role:  "Administrator",
			},
			passwordHash: mustHash("admin123"),
		},
		{
			user: domain.User{
				ID:    "2",
				Email: "demo@dashboard.com",
				Name:  "John Doe",
				Role:  "Trader",
			},
			passwordHash: mustHash("demo123"),
		},
	}
	return c
}

func mustHash(password string) []byte {
	// MinCost keeps construction fast; these are demo credentials.
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}
	return h
}

// settle blocks for the artificial latency, honoring cancellation.
func (c *MockClient) settle(ctx context.Context) error {
	if c.latency <= 0 {
		return ctx.Err()
	}
	c.mu.Lock()
	jitter := time.Duration(c.rng.Int63n(int64(c.latency)/2 + 1))
	c.mu.Unlock()
	t := time.NewTimer(c.latency + jitter)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *MockClient) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.login")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range c.users {
		if u.user.Email != email {
			continue
		}
		if bcrypt.CompareHashAndPassword(u.passwordHash, []byte(password)) != nil {
			break
		}
		return &domain.Session{
			User:  u.user,
			Token: fmt.Sprintf("mock-jwt-%s-%d", u.user.ID, time.Now().UnixMilli()),
		}, nil
	}
	return nil, ErrInvalidCredentials
}

func (c *MockClient) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.register")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return nil, err
	}

	email = strings.ToLower(strings.TrimSpace(email))
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, u := range c.users {
		if u.user.Email == email {
			return nil, ErrEmailTaken
		}
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("password must be at least 6 characters")
	}

	user := domain.User{
		ID:    uuid.NewString(),
		Email: email,
		Name:  name,
		Role:  "Trader",
	}
	c.users = append(c.users, mockUser{user: user, passwordHash: mustHash(password)})
	return &domain.Session{
		User:  user,
		Token: fmt.Sprintf("mock-jwt-%s-%d", user.ID, time.Now().UnixMilli()),
	}, nil
}

func (c *MockClient) FetchDashboard(ctx context.Context) (*domain.DashboardData, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.fetch-dashboard")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generateDashboard(), nil
}

func (c *MockClient) FetchSignals(ctx context.Context) ([]domain.Signal, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.fetch-signals")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generateSignals(50), nil
}

func (c *MockClient) FetchTrades(ctx context.Context) ([]domain.Trade, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.fetch-trades")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generateTrades(100), nil
}

func (c *MockClient) FetchAccounts(ctx context.Context) ([]domain.Account, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.fetch-accounts")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return nil, err
	}
	return generateAccounts(), nil
}

func (c *MockClient) FetchAnalytics(ctx context.Context, timeRange domain.TimeRange) (*domain.AnalyticsData, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.fetch-analytics")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return nil, err
	}
	if !timeRange.IsValid() {
		return nil, fmt.Errorf("unsupported time range: %s", timeRange)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generateAnalytics(timeRange), nil
}

func (c *MockClient) UpdateSettings(ctx context.Context, settings domain.TradingSettings) (domain.TradingSettings, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.update-settings")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return domain.TradingSettings{}, err
	}
	// The mock backend accepts whatever it is given.
	return settings, nil
}

func (c *MockClient) SubmitContactForm(ctx context.Context, form domain.ContactForm) (string, error) {
	ctx, span := c.tracer.Start(ctx, "mock-api.submit-contact")
	defer span.End()

	if err := c.settle(ctx); err != nil {
		return "", err
	}
	if err := form.Validate(); err != nil {
		return "", err
	}
	return "TKT-" + strings.ToUpper(uuid.NewString()[:8]), nil
}
