package web

import (
	"net/http"

	"gymtracker/internal/adapters/http/middleware"
)

// registerRoutes attaches all application handlers to the mux.
// Login and session probing are public; everything else requires a session.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/login", handleLogin)
	mux.HandleFunc("/api/logout", handleLogout)
	mux.HandleFunc("/api/session", handleSession)

	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.RequireAuth(h)
	}

	mux.Handle("/api/members", authed(handleMembers))
	mux.Handle("/api/members/", authed(handleMemberItem))
	mux.Handle("/api/training-types", authed(handleTrainingTypes))
	mux.Handle("/api/training-types/", authed(handleTrainingTypeItem))
	mux.Handle("/api/events", authed(handleEvents))
	mux.Handle("/api/admin/perf", authed(handleAdminPerf))
	mux.Handle("/api/admin/sweep", authed(handleAdminSweep))
}
