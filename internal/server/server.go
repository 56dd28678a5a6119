package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/rent-vs-buy/internal/analysis"
	"github.com/iwvelando/rent-vs-buy/internal/store"
	"github.com/iwvelando/rent-vs-buy/pkg/constants"
	"github.com/iwvelando/rent-vs-buy/pkg/output"
	"github.com/iwvelando/rent-vs-buy/pkg/scenario"
	"github.com/iwvelando/rent-vs-buy/pkg/validation"
	"go.uber.org/zap"
)

// ScenarioStore persists named scenarios.
type ScenarioStore interface {
	Save(name string, inputs scenario.Inputs) error
	Load(name string) (scenario.Inputs, error)
	Metadata(name string) (store.SavedScenario, error)
	List() ([]string, error)
	Delete(name string) error
}

type handler struct {
	logger        *zap.Logger
	analyzer      *analysis.Analyzer
	scenarios     ScenarioStore
	maxUploadSize int64
	publicURL     string
	version       string
	now           func() time.Time
}

// NewHandler constructs the HTTP handler that serves the projection API. A nil
// store disables the saved scenario endpoints.
func NewHandler(logger *zap.Logger, analyzer *analysis.Analyzer, scenarios ScenarioStore, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if analyzer == nil {
		analyzer = analysis.NewAnalyzer(logger, nil)
	}

	maxUploadSize := constants.DefaultMaxUploadSizeBytes
	publicURL := ""
	if cfg != nil {
		if cfg.UploadSizeBytes() > 0 {
			maxUploadSize = cfg.UploadSizeBytes()
		}
		publicURL = cfg.PublicURL
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:        logger,
		analyzer:      analyzer,
		scenarios:     scenarios,
		maxUploadSize: maxUploadSize,
		publicURL:     publicURL,
		version:       trimmedVersion,
		now:           time.Now,
	}

	mux := http.NewServeMux()

	// Projection for a posted scenario or a share code
	mux.HandleFunc("/api/project", h.handleProject)

	mux.HandleFunc("/api/share", h.handleShare)
	mux.HandleFunc("/api/export/csv", h.handleExportCSV)
	mux.HandleFunc("/api/export/packet", h.handleExportPacket)

	// Saved scenarios
	mux.HandleFunc("/api/scenarios", h.handleScenarioList)
	mux.HandleFunc("/api/scenarios/{name}", h.handleScenario)

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// scenarioRequest is the body accepted by endpoints that take a scenario. The
// scenario may also be posted bare, without the wrapper.
type scenarioRequest struct {
	Scenario json.RawMessage `json:"scenario"`
	Notes    string          `json:"notes"`
}

// readScenario decodes a scenario from the request body on top of the default
// scenario, so omitted fields keep their defaults.
func (h *handler) readScenario(w http.ResponseWriter, r *http.Request) (scenario.Inputs, string, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r.Body); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return scenario.Inputs{}, "", http.StatusRequestEntityTooLarge,
				fmt.Errorf("request exceeds limit of %d bytes", h.maxUploadSize)
		}
		return scenario.Inputs{}, "", http.StatusBadRequest, fmt.Errorf("failed to read request: %w", err)
	}

	body := bytes.TrimSpace(buf.Bytes())
	if len(body) == 0 {
		return scenario.Inputs{}, "", http.StatusBadRequest, errors.New("missing scenario")
	}

	var req scenarioRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return scenario.Inputs{}, "", http.StatusBadRequest, fmt.Errorf("failed to decode scenario: %w", err)
	}
	raw := body
	if len(req.Scenario) > 0 {
		raw = req.Scenario
	}

	in := scenario.Defaults()
	if err := json.Unmarshal(raw, &in); err != nil {
		return scenario.Inputs{}, "", http.StatusBadRequest, fmt.Errorf("failed to decode scenario: %w", err)
	}
	return in, req.Notes, http.StatusOK, nil
}

func (h *handler) handleProject(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleProject"

	var in scenario.Inputs
	switch r.Method {
	case http.MethodGet:
		code := r.URL.Query().Get(constants.ShareQueryParam)
		if code == "" {
			h.respondErrorWithOp(w, http.StatusBadRequest,
				fmt.Sprintf("missing %s query parameter", constants.ShareQueryParam), op)
			return
		}
		decoded, err := scenario.DecodeShareCode(code)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		in = decoded
	case http.MethodPost:
		decoded, _, status, err := h.readScenario(w, r)
		if err != nil {
			h.respondErrorWithOp(w, status, err.Error(), op)
			return
		}
		in = decoded
	default:
		h.methodNotAllowed(w, http.MethodGet, http.MethodPost)
		return
	}

	result, err := h.analyzer.Analyze(r.Context(), in)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleShare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleShare"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	in, _, status, err := h.readScenario(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	if err := validation.ValidateInputs(in); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	code, err := scenario.EncodeShareCode(in)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	shareURL, err := scenario.ShareURL(h.baseURL(r), in)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"code": code,
		"url":  shareURL,
	})
}

// baseURL returns the configured public URL or one derived from the request.
func (h *handler) baseURL(r *http.Request) string {
	if h.publicURL != "" {
		return h.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := r.Header.Get("X-Forwarded-Proto"); forwarded != "" {
		scheme = forwarded
	}
	return scheme + "://" + r.Host + "/"
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportCSV"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	in, _, status, err := h.readScenario(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	result, err := h.analyzer.Analyze(r.Context(), in)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	csv, err := output.CsvString(result.Timeline)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="rent-vs-buy-timeline.csv"`)
	w.WriteHeader(http.StatusOK)
	if _, err := io.WriteString(w, csv); err != nil {
		h.logger.Error("failed to write CSV response",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

func (h *handler) handleExportPacket(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportPacket"
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, http.MethodPost)
		return
	}

	in, notes, status, err := h.readScenario(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	result, err := h.analyzer.Analyze(r.Context(), in)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	w.Header().Set("Content-Disposition", `attachment; filename="rent-vs-buy-analysis.json"`)
	h.writeJSON(w, http.StatusOK, analysis.NewPacket(result, notes, h.now()))
}

func (h *handler) handleScenarioList(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarioList"
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}
	if !h.requireStore(w, op) {
		return
	}

	names, err := h.scenarios.List()
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string][]string{"scenarios": names})
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenario"
	if !h.requireStore(w, op) {
		return
	}

	name := strings.TrimSpace(r.PathValue("name"))
	if name == "" {
		h.respondErrorWithOp(w, http.StatusBadRequest, "missing scenario name", op)
		return
	}

	switch r.Method {
	case http.MethodGet:
		saved, err := h.scenarios.Metadata(name)
		if err != nil {
			h.respondStoreError(w, err, op)
			return
		}
		h.writeJSON(w, http.StatusOK, saved)

	case http.MethodPut:
		in, _, status, err := h.readScenario(w, r)
		if err != nil {
			h.respondErrorWithOp(w, status, err.Error(), op)
			return
		}
		if err := validation.ValidateInputs(in); err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		if err := h.scenarios.Save(name, in); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		saved, err := h.scenarios.Metadata(name)
		if err != nil {
			h.respondStoreError(w, err, op)
			return
		}
		h.logger.Info("saved scenario",
			zap.String("op", op),
			zap.String("name", name),
		)
		h.writeJSON(w, http.StatusOK, saved)

	case http.MethodDelete:
		if err := h.scenarios.Delete(name); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		h.methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}

func (h *handler) requireStore(w http.ResponseWriter, op string) bool {
	if h.scenarios == nil {
		h.respondErrorWithOp(w, http.StatusServiceUnavailable, "scenario storage is not configured", op)
		return false
	}
	return true
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, store.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		h.methodNotAllowed(w, http.MethodGet)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	h.writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": http.StatusText(http.StatusMethodNotAllowed),
	})
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
