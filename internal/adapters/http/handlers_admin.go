package web

import (
	"net/http"
	"os"
	"strconv"
	"time"

	"gymtracker/internal/application/orchestrators"
)

// handleAdminPerf handles GET /api/admin/perf: aggregated request and query
// timings from the in-memory collector.
// Query params: window_minutes (default 60), top (default 10).
// PRE: caller is authenticated
func handleAdminPerf(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if perfCollector == nil {
		http.Error(w, "perf collection disabled", http.StatusNotFound)
		return
	}

	windowMinutes := 60
	if v, err := strconv.Atoi(r.URL.Query().Get("window_minutes")); err == nil && v > 0 {
		windowMinutes = v
	}
	topN := 10
	if v, err := strconv.Atoi(r.URL.Query().Get("top")); err == nil && v > 0 {
		topN = v
	}

	since := timeNow().Add(-time.Duration(windowMinutes) * time.Minute)
	snap := perfCollector.Snapshot(since, topN)

	writeJSON(w, http.StatusOK, map[string]any{
		"totalRequests":  snap.TotalRequests,
		"requestP50Ms":   snap.RequestP50Ms,
		"requestP95Ms":   snap.RequestP95Ms,
		"requestP99Ms":   snap.RequestP99Ms,
		"slowestPaths":   snap.SlowestPaths,
		"slowestQueries": snap.SlowestQueries,
	})
}

// handleAdminSweep handles POST /api/admin/sweep: runs the payment
// reconciliation pass on demand instead of waiting for the scheduler.
// PRE: caller is authenticated
// POST: stale windows expired; counts returned
func handleAdminSweep(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	result, err := orchestrators.ExecuteReconcilePayments(r.Context(), orchestrators.ReconcilePaymentsDeps{
		MemberStore:   stores.MemberStore,
		EmailSender:   emailSender,
		NotifyTo:      os.Getenv("GYMTRACKER_NOTIFY_TO"),
		Now:           timeNow,
		NotifyChanged: notifyMembersChanged,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"checked": result.Checked,
		"expired": result.Expired,
		"failed":  result.Failed,
	})
}
