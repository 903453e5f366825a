// Command server exposes the dashboard over SSH. Every session gets its own
// store, effect coordinator, and support conversation, so concurrent users
// never share state.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"botdeck/internal/advisor"
	"botdeck/internal/api"
	"botdeck/internal/chat"
	"botdeck/internal/config"
	"botdeck/internal/effect"
	"botdeck/internal/session"
	"botdeck/internal/store"
	"botdeck/internal/tui"
	"botdeck/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	srv, err := wish.NewServer(
		wish.WithAddress(fmt.Sprintf("%s:%d", cfg.SSHBind, cfg.SSHPort)),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(sessionHandler(ctx, cfg, tracer)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
	if err != nil {
		log.Fatalf("could not create ssh server: %v", err)
	}

	go func() {
		log.Printf("ssh server listening on %s:%d", cfg.SSHBind, cfg.SSHPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatalf("ssh server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	ossignal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down ssh server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("ssh shutdown: %v", err)
	}
}

// sessionHandler composes a fresh dashboard graph per SSH session. Session
// state lives in memory only; nothing persists once the connection closes.
func sessionHandler(base context.Context, cfg *config.Config, tracer trace.Tracer) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		ctx, cancel := context.WithCancel(base)
		go func() {
			<-s.Context().Done()
			cancel()
		}()

		sess := session.NewMemory()
		st := store.New(session.LoadSeed(ctx, sess))

		client := api.NewMockClient(tracer,
			api.WithLatency(time.Duration(cfg.APILatencyMillis)*time.Millisecond))
		coord := effect.New(ctx, tracer, client, st)
		st.AddHook(coord.Hook())
		st.AddHook(session.Hook(ctx, sess))

		var replies chat.ReplySource
		if cfg.OpenAIAPIKey != "" {
			replies = advisor.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.AdvisorMaxHistory)
		} else {
			replies = advisor.NewCanned(time.Now().UnixNano())
		}
		conv := chat.NewConversation(
			chat.NewMockTransport(cfg.ChatFailureRate, 500*time.Millisecond, 1500*time.Millisecond, time.Now().UnixNano()),
			replies,
		)

		model := tui.NewAppModel(tui.Services{Store: st, Conversation: conv})
		return model, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
