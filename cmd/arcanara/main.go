// Package main implements the entry point for the Arcanara reading engine.
// It wires configuration, logging, the card catalog, the Postgres stores,
// and the command handler, then serves invocations line by line on stdin.
// A messaging front end would drive the same handler.
package main

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/arcanara/arcanara/internal/catalog"
	"github.com/arcanara/arcanara/internal/commands"
	"github.com/arcanara/arcanara/internal/config"
	"github.com/arcanara/arcanara/internal/deck"
	"github.com/arcanara/arcanara/internal/message"
	"github.com/arcanara/arcanara/internal/platform/logger"
	"github.com/arcanara/arcanara/internal/platform/postgres"
	"github.com/arcanara/arcanara/internal/reading"
	"github.com/arcanara/arcanara/internal/session"
)

func main() {
	handler, cleanup, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer cleanup()

	runLoop(handler)
}

// initializeApp loads configuration and wires every component. Returns the
// command handler, a cleanup function, and any initialization error.
func initializeApp() (*commands.Handler, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("unit_budget", cfg.Reading.UnitBudget))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			appLogger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to reach database: %w", err)
	}

	if err := postgres.Migrate(db); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	cat, err := catalog.Load()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load card catalog: %w", err)
	}
	appLogger.Info("card catalog loaded", slog.Int("cards", cat.Size()))

	prefStore := postgres.NewPostgresPreferenceStore(db, appLogger)
	dailyStore := postgres.NewPostgresDailyCardStore(db, appLogger)
	historyStore := postgres.NewPostgresHistoryStore(db, appLogger)

	engine := deck.NewEngine(cat, dailyStore, nil, appLogger)
	sessions := session.NewStore()
	svc := reading.NewService(
		engine,
		db,
		prefStore,
		dailyStore,
		historyStore,
		sessions,
		cfg.Reading.DefaultTone,
		cfg.Reading.HistoryLimit,
		time.Duration(cfg.Reading.StoreTimeoutSeconds)*time.Second,
		appLogger,
	)

	handler := commands.NewHandler(cat, svc, message.NoImages, cfg.Reading.UnitBudget, appLogger)
	return handler, cleanup, nil
}

// runLoop reads "user command [args]" lines from stdin and prints the
// resulting units. It stands in for a messaging front end.
func runLoop(handler *commands.Handler) {
	fmt.Println("arcanara ready; lines are: <user> <command> [args]")

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		parts := strings.SplitN(strings.TrimSpace(scanner.Text()), " ", 3)
		if len(parts) < 2 || parts[0] == "" {
			fmt.Println("usage: <user> <command> [args]")
			continue
		}
		inv := commands.Invocation{UserID: parts[0], Name: parts[1]}
		if len(parts) == 3 {
			inv.Arg = parts[2]
		}

		units, err := handler.Handle(context.Background(), inv)
		if err != nil {
			slog.Error("command failed",
				slog.String("command", inv.Name),
				slog.String("error", err.Error()))
			fmt.Println("something went wrong; the cards are silent")
			continue
		}
		for _, unit := range units {
			fmt.Printf("== %s ==\n%s\n", unit.Title, unit.Body)
			if unit.ImageRef != "" {
				fmt.Printf("[image: %s]\n", unit.ImageRef)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("stdin read failed", slog.String("error", err.Error()))
	}
}
