/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the performance engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Load config (defaults <- PERFORM_CONFIG yaml <- PERFORM_* env)
  2. Apply command-line flag overrides
  3. Open the SQLite snapshot store, if configured, and rehydrate
  4. Seed the demo roster when starting empty (config seed_demo)
  5. Wire ledger, weight store, handler, router
  6. Serve with graceful shutdown; snapshot state on exit

COMMAND-LINE FLAGS:
  -addr    HTTP listen address (overrides config)
  -db      SQLite snapshot path; ":memory:" for in-memory, "" disables

EXAMPLES:
  ./server -db="./data/perform.db"
  PERFORM_ADDR=:3000 ./server

SEE ALSO:
  - config: Loading order and defaults
  - api/server.go: Router configuration
  - store/sqlite: Snapshot persistence
*/
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warp/perform-engine/api"
	"github.com/warp/perform-engine/config"
	"github.com/warp/perform-engine/perform"
	"github.com/warp/perform-engine/rewards"
	"github.com/warp/perform-engine/roster"
	"github.com/warp/perform-engine/store/sqlite"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DBPath, "SQLite snapshot path (empty disables persistence)")
	flag.Parse()

	store := roster.NewStore()
	ledger := rewards.NewLedger()
	weights := perform.NewWeightStore(cfg.WeightConfig())

	var snapshots *sqlite.Store
	if *dbPath != "" {
		snapshots, err = sqlite.New(*dbPath)
		if err != nil {
			log.Fatalf("Failed to open snapshot store: %v", err)
		}
		defer snapshots.Close()

		employees, accounts, err := snapshots.LoadSnapshot(context.Background())
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
		for _, e := range employees {
			store.Put(e)
		}
		for _, acc := range accounts {
			ledger.Restore(acc)
		}
		if len(employees) > 0 {
			log.Printf("Rehydrated %d employees from %s", len(employees), *dbPath)
		}
	}

	if store.Len() == 0 && cfg.SeedDemo {
		roster.Seed(store, ledger)
		log.Printf("Seeded demo roster (%d employees)", store.Len())
	}
	roster.OpenAccounts(store, ledger)

	handler := api.NewHandler(store, ledger, weights, nil)
	handler.Awards = cfg.AwardAmounts

	server := &http.Server{
		Addr:         *addr,
		Handler:      api.NewRouter(handler, cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on http://localhost%s", *addr)
		log.Printf("📊 API available at http://localhost%s/api", *addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	if snapshots != nil {
		if err := snapshots.SaveSnapshot(ctx, store.List(), ledger.Accounts()); err != nil {
			log.Printf("Warning: failed to save snapshot: %v", err)
		} else {
			log.Printf("Snapshot saved to %s", *dbPath)
		}
	}

	log.Println("Server stopped")
}
