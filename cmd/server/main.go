package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "gymtracker/internal/adapters/email"
	web "gymtracker/internal/adapters/http"
	"gymtracker/internal/adapters/http/perf"
	"gymtracker/internal/adapters/storage"
	accountStore "gymtracker/internal/adapters/storage/account"
	memberStore "gymtracker/internal/adapters/storage/member"
	trainingTypeStore "gymtracker/internal/adapters/storage/trainingtype"
	"gymtracker/internal/application/live"
	"gymtracker/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	// WAL mode, foreign keys, and a busy timeout keep the single-writer
	// SQLite file usable under concurrent HTTP handlers.
	dbPath := envOrDefault("GYMTRACKER_DB", "gymtracker.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:      acctStore,
		MemberStore:       memberStore.NewSQLiteStore(timedDB),
		TrainingTypeStore: trainingTypeStore.NewSQLiteStore(timedDB),
	}

	// Seed the operator account on first boot.
	adminEmail := os.Getenv("GYMTRACKER_ADMIN_EMAIL")
	adminPassword := os.Getenv("GYMTRACKER_ADMIN_PASSWORD")
	err = orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.SeedAdminInput{
		Email:    adminEmail,
		Password: adminPassword,
	}, orchestrators.SeedAdminDeps{AccountStore: acctStore})
	if err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Seed default training categories on an empty database.
	err = orchestrators.ExecuteSeedTrainingTypes(context.Background(), orchestrators.SeedTrainingTypesDeps{
		TrainingTypeStore: stores.TrainingTypeStore,
	})
	if err != nil {
		log.Fatalf("failed to seed training types: %v", err)
	}

	// Configure email sender for the expiry summary mail.
	resendKey := os.Getenv("GYMTRACKER_RESEND_KEY")
	emailFrom := envOrDefault("GYMTRACKER_RESEND_FROM", "Gym Tracker <noreply@localhost>")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("GYMTRACKER_ENV") == "production" {
			log.Println("WARNING: GYMTRACKER_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set GYMTRACKER_RESEND_KEY for real delivery)")
		}
	}
	web.SetEmailSender(sender)

	// Change hub drives the SSE endpoint; the sweep publishes through it so
	// connected clients see expirations without reloading.
	hub := live.NewHub()

	// The sweep also reruns on every member change, so a stale window left by
	// an edit is reconciled right away instead of waiting for the ticker.
	memberChanges := hub.Subscribe(live.TopicMembers)
	defer memberChanges.Close()

	sweepCfg := orchestrators.DefaultSweepConfig()
	sweepCfg.Changes = memberChanges.C
	stopSweep := orchestrators.StartSweepScheduler(context.Background(), orchestrators.ReconcilePaymentsDeps{
		MemberStore:   stores.MemberStore,
		EmailSender:   sender,
		NotifyTo:      os.Getenv("GYMTRACKER_NOTIFY_TO"),
		NotifyChanged: func() { hub.Publish(live.TopicMembers) },
	}, sweepCfg)
	defer stopSweep()

	mux := web.NewMux("static", stores, collector, hub)

	addr := envOrDefault("GYMTRACKER_ADDR", ":8080")
	log.Printf("Gym Tracker %s starting on %s (env=%s)", version, addr, envOrDefault("GYMTRACKER_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
