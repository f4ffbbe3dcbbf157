package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"teate/internal/core"
	"teate/internal/importer"
	"teate/internal/services"
	"teate/internal/storage"
)

const maxImportBytes = 1 << 20 // 1 MiB CSV upload cap

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// handleImportSchedules accepts a duty-calendar CSV body and imports it.
func (s *Server) handleImportSchedules(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "csv body too large")
		return
	}

	result, err := s.schedules.ImportCSV(r.Context(), string(body))
	if errors.Is(err, importer.ErrNoValidRows) {
		writeError(w, http.StatusUnprocessableEntity, "no valid rows in csv")
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Schedule import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{
		"accepted": len(result.Accepted),
		"rejected": result.Rejected,
	})
}

func (s *Server) handleListSchedules(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}

	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusBadRequest, "from and to query parameters are required")
		return
	}

	records, err := s.schedules.ListSchedules(r.Context(), from, to)
	if errors.Is(err, core.ErrInvalidDate) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		slog.ErrorContext(r.Context(), "Schedule list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "list failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"schedules": records})
}

type allowanceRequest struct {
	Date              string `json:"date"`
	OwnerEmail        string `json:"owner_email"`
	ActivityCode      string `json:"activity_code"`
	DestinationType   string `json:"destination_type"`
	DestinationDetail string `json:"destination_detail"`
	IsDriving         bool   `json:"is_driving"`
	IsAccommodation   bool   `json:"is_accommodation"`
}

func (s *Server) handleCreateAllowance(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req allowanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	entry, err := s.allowances.RecordEntry(r.Context(), services.EntryInput{
		Date:              req.Date,
		OwnerEmail:        req.OwnerEmail,
		ActivityCode:      req.ActivityCode,
		DestinationType:   req.DestinationType,
		DestinationDetail: req.DestinationDetail,
		IsDriving:         req.IsDriving,
		IsAccommodation:   req.IsAccommodation,
	})
	switch {
	case errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyOwner),
		errors.Is(err, services.ErrUnknownActivity):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Allowance create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "create failed")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleListRates(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rates": s.allowances.Rates()})
}

type profileRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		profiles, err := s.directory.ListProfiles(r.Context())
		if err != nil {
			slog.ErrorContext(r.Context(), "Profile list failed", "error", err)
			writeError(w, http.StatusInternalServerError, "list failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"profiles": profiles})

	case http.MethodPost:
		var req profileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Email) == "" {
			writeError(w, http.StatusUnprocessableEntity, "email is required")
			return
		}
		if err := s.directory.UpsertProfile(r.Context(), req.Email, req.DisplayName); err != nil {
			slog.ErrorContext(r.Context(), "Profile upsert failed", "error", err)
			writeError(w, http.StatusInternalServerError, "upsert failed")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"email": req.Email})

	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

type exportRequest struct {
	Kind       string `json:"kind"`
	OwnerEmail string `json:"owner_email"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (s *Server) handleRequestExport(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	var req exportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	if err := s.allowances.RequestExport(r.Context(), req.Kind, req.OwnerEmail, req.Year, req.Month); err != nil {
		slog.ErrorContext(r.Context(), "Export request failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "export queue unavailable")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleIndividualMonthly(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	year, okY := queryInt(r, "year")
	month, okM := queryInt(r, "month")
	if owner == "" || !okY || !okM || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "owner, year and month query parameters are required")
		return
	}

	rows, err := s.reports.IndividualMonthly(r.Context(), owner, year, month)
	if err != nil {
		s.reportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleIndividualYearly(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	owner := strings.TrimSpace(r.URL.Query().Get("owner"))
	year, ok := queryInt(r, "year")
	if owner == "" || !ok {
		writeError(w, http.StatusBadRequest, "owner and year query parameters are required")
		return
	}

	rows, err := s.reports.IndividualYearly(r.Context(), owner, year)
	if err != nil {
		s.reportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleAllStaffMonthly(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	year, okY := queryInt(r, "year")
	month, okM := queryInt(r, "month")
	if !okY || !okM || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "year and month query parameters are required")
		return
	}

	rows, err := s.reports.AllStaffMonthly(r.Context(), year, month)
	if err != nil {
		s.reportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) handleAllStaffYearly(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	year, ok := queryInt(r, "year")
	if !ok {
		writeError(w, http.StatusBadRequest, "year query parameter is required")
		return
	}

	rows, err := s.reports.AllStaffYearly(r.Context(), year)
	if err != nil {
		s.reportError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}

func (s *Server) reportError(w http.ResponseWriter, r *http.Request, err error) {
	if storage.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	slog.ErrorContext(r.Context(), "Report build failed", "error", err)
	writeError(w, http.StatusInternalServerError, "report failed")
}

func queryInt(r *http.Request, key string) (int, bool) {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
