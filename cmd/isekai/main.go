package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/jwebster45206/isekai-sim/internal/config"
	"github.com/jwebster45206/isekai-sim/internal/logger"
	"github.com/jwebster45206/isekai-sim/internal/telemetry"
	"github.com/jwebster45206/isekai-sim/pkg/script"
	"github.com/jwebster45206/isekai-sim/pkg/session"
)

func main() {
	os.Exit(run())
}

func run() int {
	// .env is optional, for local development
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Setup(cfg)
	ctx := context.Background()

	tracer := telemetry.NoopTracer()
	if telemetry.Enabled() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.Warn("telemetry setup failed, continuing without tracing", "error", err)
		} else {
			tracer = telemetry.Tracer("session")
			defer func() {
				if err := shutdown(ctx); err != nil {
					log.Warn("telemetry shutdown failed", "error", err)
				}
			}()
		}
	}

	scr, err := script.Default()
	if err != nil {
		log.Error("failed to load embedded script", "error", err)
		return 1
	}
	validator := &script.Validator{}
	if err := validator.Validate(scr); err != nil {
		log.Error("embedded script is invalid", "error", err)
		return 1
	}

	sess, err := session.New(scr, log)
	if err != nil {
		log.Error("failed to create session", "error", err)
		return 1
	}
	sess.WithRoller(session.NewSeededRoller(cfg.Seed)).WithTracer(tracer)

	p := tea.NewProgram(NewGameUI(sess),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	m, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		return 1
	}

	ui, ok := m.(GameUI)
	if !ok || !ui.completed {
		// Session was interrupted before the epilogue.
		return 1
	}

	// The session culminates in the epilogue block on stdout.
	fmt.Println(sess.Epilogue())
	fmt.Println()
	fmt.Println(sess.Farewell())
	return 0
}
