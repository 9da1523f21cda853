package web

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"gymtracker/internal/application/live"
	"gymtracker/internal/application/projections"
)

// handleEvents handles GET /api/events: a server-sent event stream that
// pushes the full current snapshot of the changed collection (never deltas)
// on connect and whenever members or training categories change.
// PRE: caller is authenticated
// POST: stream stays open until the client disconnects
func handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	members := changeHub.Subscribe(live.TopicMembers)
	defer members.Close()
	types := changeHub.Subscribe(live.TopicTrainingTypes)
	defer types.Close()

	ctx := r.Context()

	// Initial snapshots so clients have state as soon as they connect.
	writeMemberSnapshot(w, r)
	writeTrainingTypeSnapshot(w, r)
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case <-members.C:
			writeMemberSnapshot(w, r)
			flusher.Flush()
		case <-types.C:
			writeTrainingTypeSnapshot(w, r)
			flusher.Flush()
		}
	}
}

// writeMemberSnapshot emits the unfiltered member list as one SSE event.
// Query failures become an error event; transient snapshots may be skipped,
// the next change re-delivers full state.
func writeMemberSnapshot(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryListMembers(r.Context(), projections.ListMembersQuery{},
		projections.ListMembersDeps{MemberStore: stores.MemberStore})
	if err != nil {
		writeEventError(w, live.TopicMembers, err)
		return
	}
	list := make([]memberJSON, 0, len(result.Members))
	for _, m := range result.Members {
		list = append(list, toMemberJSON(m, false))
	}
	writeEvent(w, live.TopicMembers, map[string]any{"members": list})
}

// writeTrainingTypeSnapshot emits the category list with usage counts.
func writeTrainingTypeSnapshot(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryListTrainingTypes(r.Context(), projections.ListTrainingTypesDeps{
		TrainingTypeStore: stores.TrainingTypeStore,
		MemberStore:       stores.MemberStore,
	})
	if err != nil {
		writeEventError(w, live.TopicTrainingTypes, err)
		return
	}
	list := make([]trainingTypeJSON, 0, len(result.TrainingTypes))
	for _, tt := range result.TrainingTypes {
		entry := trainingTypeJSON{ID: tt.ID, Name: tt.Name, MemberCount: tt.MemberCount}
		if !tt.CreatedAt.IsZero() {
			entry.CreatedAt = tt.CreatedAt.UTC().Format(time.RFC3339)
		}
		list = append(list, entry)
	}
	writeEvent(w, live.TopicTrainingTypes, map[string]any{"trainingTypes": list})
}

func writeEvent(w http.ResponseWriter, topic string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		writeEventError(w, topic, err)
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", topic, data)
}

func writeEventError(w http.ResponseWriter, topic string, err error) {
	slog.Warn("sse_snapshot_failed", "topic", topic, "error", err)
	fmt.Fprintf(w, "event: error\ndata: {\"topic\":%q,\"error\":\"snapshot unavailable\"}\n\n", topic)
}
