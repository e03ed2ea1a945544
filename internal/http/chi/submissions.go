package chi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog"
	"github.com/marcelsud/formie-filemaker/filemaker"
)

/* HTTP layer DTOs for the integration API
 * Separate from domain entities to avoid leaking internal structure
 */

// submissionRequest is a completed submission posted by the form host
type submissionRequest struct {
	ID          string         `json:"id"`
	FormID      string         `json:"formId"`
	FormHandle  string         `json:"formHandle"`
	Title       string         `json:"title"`
	Values      map[string]any `json:"values"`
	DateCreated time.Time      `json:"dateCreated"`
}

func (s submissionRequest) toSubmission() filemaker.Submission {
	return filemaker.Submission{
		ID:         s.ID,
		FormID:     s.FormID,
		FormHandle: s.FormHandle,
		Title:      s.Title,
		Values:     s.Values,
		CreatedAt:  s.DateCreated,
	}
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// resultResponse is the outcome of a boolean operation
type resultResponse struct {
	Success bool       `json:"success"`
	Error   *errorBody `json:"error,omitempty"`
}

// settingsResponse is a settings preview
type settingsResponse struct {
	Response *filemaker.ResponseSnapshot `json:"response"`
	JSON     any                         `json:"json"`
}

// postSubmission handles POST /v1/submissions
func postSubmission(useCase filemaker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		var req submissionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("invalid submission: %v", err), http.StatusBadRequest)
			return
		}
		if req.ID == "" || req.FormID == "" {
			http.Error(w, "id and formId are required", http.StatusBadRequest)
			return
		}
		httplog.LogEntrySetField(r.Context(), "form_id", req.FormID)

		result := useCase.Dispatch(r.Context(), req.toSubmission())

		resp := resultResponse{Success: result.Success}
		status := http.StatusOK
		if !result.Success {
			status = http.StatusBadGateway
			if result.Error != nil {
				resp.Error = &errorBody{Kind: result.Error.Kind.String(), Message: result.Error.Message}
			}
		}
		writeJSON(w, status, resp)
	})
}

// getFormSettings handles GET /v1/forms/{form_id}/settings
func getFormSettings(useCase filemaker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		formID := chi.URLParam(r, "form_id")
		httplog.LogEntrySetField(r.Context(), "form_id", formID)

		settings := useCase.FetchFormSettings(r.Context(), formID)
		if settings.IsEmpty() {
			writeJSON(w, http.StatusBadGateway, resultResponse{Success: false})
			return
		}
		writeJSON(w, http.StatusOK, settingsResponse{
			Response: settings.Response,
			JSON:     settings.JSON,
		})
	})
}

// getConnection handles GET /v1/connection
func getConnection(useCase filemaker.UseCase) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok := useCase.FetchConnection(r.Context())

		status := http.StatusOK
		if !ok {
			status = http.StatusBadGateway
		}
		writeJSON(w, status, resultResponse{Success: ok})
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
