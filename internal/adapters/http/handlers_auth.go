package web

import (
	"errors"
	"net/http"

	"gymtracker/internal/adapters/http/middleware"
	"gymtracker/internal/application/orchestrators"
)

// handleLogin handles POST /api/login.
// PRE: body carries email and password
// POST: session cookie set on success; 401 on bad credentials or lockout
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	result, err := orchestrators.ExecuteLogin(r.Context(), orchestrators.LoginInput{
		Email:    payload.Email,
		Password: payload.Password,
	}, orchestrators.LoginDeps{
		AccountStore: stores.AccountStore,
		Now:          timeNow,
	})
	if err != nil {
		if errors.Is(err, orchestrators.ErrInvalidCredentials) || errors.Is(err, orchestrators.ErrAccountLocked) {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		internalError(w, err)
		return
	}

	token, err := sessions.Create(result.AccountID, result.Email, result.Role)
	if err != nil {
		internalError(w, err)
		return
	}
	middleware.SetSessionCookie(w, token)

	writeJSON(w, http.StatusOK, map[string]string{
		"email": result.Email,
		"role":  result.Role,
	})
}

// handleLogout handles POST /api/logout.
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if cookie, err := r.Cookie(middleware.SessionCookieName()); err == nil {
		sessions.Delete(cookie.Value)
	}
	middleware.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// handleSession handles GET /api/session: reports the current login state.
func handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"email":         sess.Email,
		"role":          sess.Role,
	})
}
