package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"gymtracker/internal/adapters/email"
	"gymtracker/internal/adapters/http/middleware"
	"gymtracker/internal/adapters/http/perf"
	accountStore "gymtracker/internal/adapters/storage/account"
	memberStore "gymtracker/internal/adapters/storage/member"
	trainingTypeStore "gymtracker/internal/adapters/storage/trainingtype"
	"gymtracker/internal/application/live"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore      accountStore.Store
	MemberStore       memberStore.Store
	TrainingTypeStore trainingTypeStore.Store
}

// loadCSRFKey reads the CSRF secret from GYMTRACKER_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("GYMTRACKER_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("GYMTRACKER_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("GYMTRACKER_ENV") == "production" {
		log.Fatal("GYMTRACKER_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set GYMTRACKER_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// Global change hub for live client updates (set by NewMux)
var changeHub *live.Hub

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector, hub *live.Hub) http.Handler {
	stores = s
	perfCollector = collector
	changeHub = hub
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("GYMTRACKER_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}

// notifyMembersChanged publishes a members change if the hub is wired.
func notifyMembersChanged() {
	if changeHub != nil {
		changeHub.Publish(live.TopicMembers)
	}
}

// notifyTrainingTypesChanged publishes a trainingTypes change if the hub is wired.
func notifyTrainingTypesChanged() {
	if changeHub != nil {
		changeHub.Publish(live.TopicTrainingTypes)
	}
}
