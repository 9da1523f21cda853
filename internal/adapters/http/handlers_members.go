package web

import (
	"net/http"
	"strings"

	"gymtracker/internal/application/listutil"
	"gymtracker/internal/application/orchestrators"
	"gymtracker/internal/application/projections"
)

// memberPayload is the request body for create.
type memberPayload struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	JoinDate      string  `json:"joinDate"`
	TrainingType  string  `json:"trainingType"`
	PaymentStatus bool    `json:"paymentStatus"`
	PaymentAmount float64 `json:"paymentAmount"`
	Notes         string  `json:"notes"`
}

// editMemberPayload is the request body for update. It carries no payment
// fields: the paid flag and window change only via the payment toggle, so a
// rename can never silently unpay a member.
type editMemberPayload struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	JoinDate      string  `json:"joinDate"`
	TrainingType  string  `json:"trainingType"`
	PaymentAmount float64 `json:"paymentAmount"`
	Notes         string  `json:"notes"`
}

// handleMembers handles GET and POST /api/members.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		handleMemberList(w, r)
	case "POST":
		handleMemberCreate(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleMemberList returns the filtered member list.
// Query params: status (paid|unpaid), training (category name), q (name search).
// PRE: caller is authenticated
// POST: members in creation order, filters applied in sequence
func handleMemberList(w http.ResponseWriter, r *http.Request) {
	fp := listutil.ParseFilterParams(r.URL.Query(), []string{"status", "training"})

	result, err := projections.QueryListMembers(r.Context(), projections.ListMembersQuery{
		Status:   fp.Filters["status"],
		Training: fp.Filters["training"],
		Search:   fp.Search,
	}, projections.ListMembersDeps{MemberStore: stores.MemberStore})
	if err != nil {
		internalError(w, err)
		return
	}

	members := make([]memberJSON, 0, len(result.Members))
	for _, m := range result.Members {
		members = append(members, toMemberJSON(m, false))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"members": members,
		"total":   result.Total,
	})
}

// handleMemberCreate adds a member.
// PRE: caller is authenticated; body is valid JSON
// POST: member persisted; 201 with the new id
func handleMemberCreate(w http.ResponseWriter, r *http.Request) {
	var payload memberPayload
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	id, err := orchestrators.ExecuteAddMember(r.Context(), orchestrators.AddMemberInput{
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		JoinDate:      payload.JoinDate,
		TrainingType:  payload.TrainingType,
		PaymentStatus: payload.PaymentStatus,
		PaymentAmount: payload.PaymentAmount,
		Notes:         payload.Notes,
	}, orchestrators.AddMemberDeps{
		MemberStore:   stores.MemberStore,
		Now:           timeNow,
		GenerateID:    generateID,
		NotifyChanged: notifyMembersChanged,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleMemberItem handles /api/members/{id} and /api/members/{id}/payment.
func handleMemberItem(w http.ResponseWriter, r *http.Request) {
	// Path shapes: /api/members/:id or /api/members/:id/payment
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "members" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	memberID := parts[2]

	if len(parts) == 4 && parts[3] == "payment" {
		if r.Method != "POST" {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handleTogglePayment(w, r, memberID)
		return
	}
	if len(parts) != 3 {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case "GET":
		handleMemberDetail(w, r, memberID)
	case "PUT":
		handleMemberUpdate(w, r, memberID)
	case "DELETE":
		handleMemberDelete(w, r, memberID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleMemberDetail returns one member, notes rendered to HTML.
func handleMemberDetail(w http.ResponseWriter, r *http.Request, memberID string) {
	m, err := stores.MemberStore.GetByID(r.Context(), memberID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberJSON(m, true))
}

// handleMemberUpdate replaces a member's editable fields. Payment fields are
// not accepted here.
func handleMemberUpdate(w http.ResponseWriter, r *http.Request, memberID string) {
	var payload editMemberPayload
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	err := orchestrators.ExecuteEditMember(r.Context(), orchestrators.EditMemberInput{
		ID:            memberID,
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		JoinDate:      payload.JoinDate,
		TrainingType:  payload.TrainingType,
		PaymentAmount: payload.PaymentAmount,
		Notes:         payload.Notes,
	}, orchestrators.EditMemberDeps{
		MemberStore:   stores.MemberStore,
		NotifyChanged: notifyMembersChanged,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	m, err := stores.MemberStore.GetByID(r.Context(), memberID)
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toMemberJSON(m, false))
}

// handleMemberDelete removes a member permanently.
func handleMemberDelete(w http.ResponseWriter, r *http.Request, memberID string) {
	err := orchestrators.ExecuteDeleteMember(r.Context(), memberID, orchestrators.DeleteMemberDeps{
		MemberStore:   stores.MemberStore,
		NotifyChanged: notifyMembersChanged,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleTogglePayment flips a member's payment status.
// Unpaid -> paid grants a billing window; paid -> unpaid clears it.
func handleTogglePayment(w http.ResponseWriter, r *http.Request, memberID string) {
	result, err := orchestrators.ExecuteTogglePayment(r.Context(), memberID, orchestrators.TogglePaymentDeps{
		MemberStore:   stores.MemberStore,
		Now:           timeNow,
		NotifyChanged: notifyMembersChanged,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"paymentStatus": result.PaymentStatus,
		"paidUntil":     result.PaidUntil,
	})
}
