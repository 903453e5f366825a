package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"botdeck/internal/advisor"
	"botdeck/internal/api"
	"botdeck/internal/chat"
	"botdeck/internal/config"
	"botdeck/internal/effect"
	"botdeck/internal/handler"
	"botdeck/internal/session"
	"botdeck/internal/store"
	"botdeck/internal/tui"
	"botdeck/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Tracing is best-effort: without a collector the dashboard still runs.
	var tracer trace.Tracer
	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Printf("tracing disabled: %v", err)
		tracer = noop.NewTracerProvider().Tracer("botdeck")
	} else {
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				log.Printf("error shutting down tracer provider: %v", err)
			}
		}()
	}

	// Session cache: Redis when reachable, in-memory otherwise.
	var sess session.Store
	if rs, err := session.NewRedis(ctx, cfg.RedisURL); err != nil {
		log.Printf("redis unavailable, session state will not survive restarts: %v", err)
		sess = session.NewMemory()
	} else {
		sess = rs
	}

	st := store.New(session.LoadSeed(ctx, sess))

	client := api.NewMockClient(tracer,
		api.WithLatency(time.Duration(cfg.APILatencyMillis)*time.Millisecond))
	coord := effect.New(ctx, tracer, client, st)
	st.AddHook(coord.Hook())
	st.AddHook(session.Hook(ctx, sess))

	conv := chat.NewConversation(
		chat.NewMockTransport(cfg.ChatFailureRate, 500*time.Millisecond, 1500*time.Millisecond, time.Now().UnixNano()),
		newReplySource(cfg),
	)

	// Read-only HTTP view of the state, plus the websocket feed.
	hub := handler.NewHub(st)
	go hub.Run(ctx)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.Default())
	r.Use(otelgin.Middleware("botdeck"))
	handler.New(tracer, st, hub).RegisterRoutes(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTPBind, cfg.HTTPPort),
		Handler: r,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("http server: %v", err)
		}
	}()

	p := tea.NewProgram(
		tui.NewAppModel(tui.Services{Store: st, Conversation: conv}),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Printf("tui exited with error: %v", err)
	}

	cancel()
	coord.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
}

// newReplySource picks the support-chat reply backend: the OpenAI advisor
// when a key is configured, canned replies otherwise.
func newReplySource(cfg *config.Config) chat.ReplySource {
	if cfg.OpenAIAPIKey != "" {
		return advisor.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
	}
	return advisor.NewCanned(time.Now().UnixNano())
}
