// Package api exposes HTTP handlers for the workout calculator.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"example.com/workout/internal/auth"
	"example.com/workout/internal/domain"
	"example.com/workout/internal/training"
)

const maxPackagesPerRequest = 500

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/trainings/summaries", h.summaries)
	mux.HandleFunc("/v1/trainings/codes", h.codes)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) summaries(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasScope(auth.ScopeTrainingsSummarize) {
		writeError(w, http.StatusForbidden, "forbidden", "scope trainings:summarize required")
		return
	}

	var req SummariesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "validation_failed", err.Error())
		return
	}

	rep, err := h.service.RunBatch(r.Context(), domain.Batch{
		TenantID:    claims.TenantID,
		RequestedBy: claims.Subject,
		Packages:    req.Packages,
	})
	if err != nil && !training.IsRejection(err) {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}

	resp := SummariesResponse{
		TenantID:    rep.TenantID,
		RequestedBy: rep.RequestedBy,
		Items:       make([]SummaryItem, 0, len(rep.Outcomes)),
		Failed:      rep.Failed,
	}
	for _, out := range rep.Outcomes {
		resp.Items = append(resp.Items, toSummaryItem(out))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) codes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	claims, ok := auth.FromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
		return
	}
	if !claims.HasAnyScope(auth.ScopeTrainingsRead, auth.ScopeTrainingsSummarize) {
		writeError(w, http.StatusForbidden, "forbidden", "scope trainings:read required")
		return
	}

	layouts := training.Codes()
	resp := CodesResponse{Items: make([]CodeView, 0, len(layouts))}
	for _, layout := range layouts {
		resp.Items = append(resp.Items, CodeView{
			Code:  layout.Code,
			Label: layout.Kind.String(),
			Arity: layout.Arity,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// SummariesRequest is the payload for POST /v1/trainings/summaries.
type SummariesRequest struct {
	Packages []domain.Package `json:"packages"`
}

// Validate ensures request correctness. Per-package problems are reported per item.
func (r SummariesRequest) Validate() error {
	if len(r.Packages) == 0 {
		return errors.New("packages are required")
	}
	if len(r.Packages) > maxPackagesPerRequest {
		return errors.New("too many packages in one request")
	}
	return nil
}

// SummaryView exposes the computed metrics of a training.
type SummaryView struct {
	TrainingType  string  `json:"training_type"`
	DurationHours float64 `json:"duration_hours"`
	DistanceKm    float64 `json:"distance_km"`
	MeanSpeedKmh  float64 `json:"mean_speed_kmh"`
	CaloriesKcal  float64 `json:"calories_kcal"`
}

// ErrorView describes why a package was rejected.
type ErrorView struct {
	Type   string `json:"type"`
	Detail string `json:"detail"`
}

// SummaryItem is one entry of the summaries response, in request order.
type SummaryItem struct {
	Index       int          `json:"index"`
	WorkoutType string       `json:"workout_type"`
	Summary     *SummaryView `json:"summary,omitempty"`
	Message     string       `json:"message,omitempty"`
	Error       *ErrorView   `json:"error,omitempty"`
}

// SummariesResponse packages batch results.
type SummariesResponse struct {
	TenantID    string        `json:"tenant_id,omitempty"`
	RequestedBy string        `json:"requested_by"`
	Items       []SummaryItem `json:"items"`
	Failed      int           `json:"failed"`
}

// CodeView describes a supported workout code.
type CodeView struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	Arity int    `json:"arity"`
}

// CodesResponse lists supported workout codes.
type CodesResponse struct {
	Items []CodeView `json:"items"`
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

// writeJSON encodes before writing the status so an encoding failure still
// yields a 500 JSON error instead of a truncated success response.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		status = http.StatusInternalServerError
		body, _ = json.Marshal(map[string]string{
			"type":   "server_error",
			"detail": "unable to encode response",
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func toSummaryItem(out domain.Outcome) SummaryItem {
	item := SummaryItem{
		Index:       out.Index,
		WorkoutType: out.Package.WorkoutType,
	}
	if out.Err != nil {
		item.Error = &ErrorView{Type: training.ErrorType(out.Err), Detail: out.Err.Error()}
		return item
	}
	item.Summary = &SummaryView{
		TrainingType:  out.Summary.Label,
		DurationHours: out.Summary.DurationHours,
		DistanceKm:    out.Summary.DistanceKm,
		MeanSpeedKmh:  out.Summary.MeanSpeedKmh,
		CaloriesKcal:  out.Summary.CaloriesKcal,
	}
	item.Message = out.Message
	return item
}
