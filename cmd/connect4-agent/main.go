package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connect4-agent/internals/config"
	"connect4-agent/internals/engine"
	"connect4-agent/internals/handlers/matchmaking"
	"connect4-agent/internals/handlers/users"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/cors"
)

func main() {
	cfg := config.MustLoad()

	// The knowledge base load is strict: a missing or malformed table file
	// stops the process here instead of letting the agent play blind.
	table, err := engine.LoadScoreTable(cfg.Engine.ScoreTable)
	if err != nil {
		log.Fatalf("Failed to load score table: %v", err)
	}
	strategy, err := engine.ParseStrategy(cfg.Engine.Strategy)
	if err != nil {
		log.Fatalf("Bad engine config: %v", err)
	}
	agent := engine.NewAgent(strategy, cfg.Engine.SearchDepth, engine.NewEvaluator(table))
	log.Printf("Agent ready: strategy=%s depth=%d patterns=%d", strategy, cfg.Engine.SearchDepth, table.Len())

	db, err := sql.Open("sqlite3", cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := createTables(db); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	matchmaking.InitStore(db)
	matchmaking.Init(agent,
		time.Duration(cfg.Game.BotQueueTimeoutSeconds)*time.Second,
		time.Duration(cfg.Game.ReconnectTimeoutSeconds)*time.Second,
	)

	router := http.NewServeMux()
	router.HandleFunc("/api/signup", users.SignupHandler(db))
	router.HandleFunc("/api/login", users.LoginHandler(db))
	router.HandleFunc("/ws/game", matchmaking.HandleGame)
	router.HandleFunc("/api/rankings", matchmaking.HandleRanking)
	router.HandleFunc("/api/games", matchmaking.HandleRecentGames)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS", "PATCH", "PUT", "DELETE"},
		AllowedHeaders: []string{"Content-Type"},
	})

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: c.Handler(router),
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Server listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to gracefully shutdown server: %v", err)
	}
	log.Println("Server stopped")
}

func createTables(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS rankings (
			username TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			winner TEXT,
			strategy TEXT NOT NULL DEFAULT '',
			moves TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);`,
		`INSERT INTO rankings (username, score)
			SELECT username, 0 FROM users
			WHERE username NOT IN (SELECT username FROM rankings);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
