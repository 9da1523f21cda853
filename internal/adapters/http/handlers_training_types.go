package web

import (
	"net/http"
	"strings"
	"time"

	"gymtracker/internal/application/orchestrators"
	"gymtracker/internal/application/projections"
)

// handleTrainingTypes handles GET and POST /api/training-types.
func handleTrainingTypes(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "GET":
		handleTrainingTypeList(w, r)
	case "POST":
		handleTrainingTypeCreate(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// handleTrainingTypeList returns all categories with usage counts.
func handleTrainingTypeList(w http.ResponseWriter, r *http.Request) {
	result, err := projections.QueryListTrainingTypes(r.Context(), projections.ListTrainingTypesDeps{
		TrainingTypeStore: stores.TrainingTypeStore,
		MemberStore:       stores.MemberStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}

	types := make([]trainingTypeJSON, 0, len(result.TrainingTypes))
	for _, tt := range result.TrainingTypes {
		entry := trainingTypeJSON{
			ID:          tt.ID,
			Name:        tt.Name,
			MemberCount: tt.MemberCount,
		}
		if !tt.CreatedAt.IsZero() {
			entry.CreatedAt = tt.CreatedAt.UTC().Format(time.RFC3339)
		}
		types = append(types, entry)
	}
	writeJSON(w, http.StatusOK, map[string]any{"trainingTypes": types})
}

// handleTrainingTypeCreate adds a category.
// PRE: body carries a non-empty name
// POST: 201 with the new id, or 409 when the name already exists
func handleTrainingTypeCreate(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := strictDecode(r, &payload); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	id, err := orchestrators.ExecuteAddTrainingType(r.Context(), payload.Name, orchestrators.AddTrainingTypeDeps{
		TrainingTypeStore: stores.TrainingTypeStore,
		Now:               timeNow,
		GenerateID:        generateID,
		NotifyChanged:     notifyTrainingTypesChanged,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// handleTrainingTypeItem handles DELETE /api/training-types/{id}.
func handleTrainingTypeItem(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 3 || parts[0] != "api" || parts[1] != "training-types" {
		http.Error(w, "invalid path", http.StatusBadRequest)
		return
	}
	if r.Method != "DELETE" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	err := orchestrators.ExecuteDeleteTrainingType(r.Context(), parts[2], orchestrators.DeleteTrainingTypeDeps{
		TrainingTypeStore: stores.TrainingTypeStore,
		MemberStore:       stores.MemberStore,
		NotifyChanged:     notifyTrainingTypesChanged,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
