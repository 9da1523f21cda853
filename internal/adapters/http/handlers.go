package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"gymtracker/internal/application/orchestrators"
	memberDomain "gymtracker/internal/domain/member"
	trainingTypeDomain "gymtracker/internal/domain/trainingtype"
)

// timeNow is a variable for testability.
var timeNow = time.Now

// mdRenderer is a goldmark instance configured for safe HTML output.
// Raw HTML in markdown input is escaped (WithUnsafe is NOT set), preventing XSS.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// generateID creates a new UUID string.
func generateID() string {
	return uuid.New().String()
}

// internalError logs the real error and returns a generic message to the client.
// This prevents leaking internal details per OWASP A05.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// strictDecode decodes JSON from the request body, rejecting unknown fields.
func strictDecode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDomainError maps known domain errors to HTTP statuses. Anything
// unrecognised is a store or connectivity failure and becomes a generic 500;
// only sentinel errors ever echo their text to the client.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, memberDomain.ErrNotFound), errors.Is(err, trainingTypeDomain.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, trainingTypeDomain.ErrDuplicate), errors.Is(err, trainingTypeDomain.ErrInUse):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, orchestrators.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		internalError(w, err)
	}
}

// renderMarkdown converts member notes markdown to sanitised HTML.
func renderMarkdown(md string) string {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		slog.Warn("markdown_render_failed", "error", err)
		return ""
	}
	return buf.String()
}

// memberJSON is the wire shape for a member.
type memberJSON struct {
	ID            string  `json:"id"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	JoinDate      string  `json:"joinDate"`
	TrainingType  string  `json:"trainingType"`
	PaymentStatus bool    `json:"paymentStatus"`
	PaymentAmount float64 `json:"paymentAmount"`
	PaidUntil     string  `json:"paidUntil,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	NotesHTML     string  `json:"notesHtml,omitempty"`
	CreatedAt     string  `json:"createdAt,omitempty"`
}

func toMemberJSON(m memberDomain.Member, withNotesHTML bool) memberJSON {
	out := memberJSON{
		ID:            m.ID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		JoinDate:      m.JoinDate,
		TrainingType:  m.TrainingType,
		PaymentStatus: m.PaymentStatus,
		PaymentAmount: m.PaymentAmount,
		PaidUntil:     m.PaidUntil,
		Notes:         m.Notes,
	}
	if !m.CreatedAt.IsZero() {
		out.CreatedAt = m.CreatedAt.UTC().Format(time.RFC3339)
	}
	if withNotesHTML {
		out.NotesHTML = renderMarkdown(m.Notes)
	}
	return out
}

// trainingTypeJSON is the wire shape for a training category.
type trainingTypeJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MemberCount int    `json:"memberCount"`
	CreatedAt   string `json:"createdAt,omitempty"`
}
