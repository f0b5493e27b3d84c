// Package handler provides HTTP handlers for the API.
package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"pdf-processing-service/internal/domain"
	apperrors "pdf-processing-service/pkg/errors"
)

const (
	// engineBackend and engineVersion identify the remote layout-parsing
	// engine in per-page result objects.
	engineBackend = "pipeline"
	engineVersion = "2.5.4"

	busyMessage = "system busy, single-concurrency only: a PDF is already being processed, try again later"
)

// ProcessResponse is the success body of POST /process-pdf.
type ProcessResponse struct {
	Success    bool         `json:"success"`
	Filename   string       `json:"filename"`
	TotalPages int          `json:"total_pages"`
	Results    []PageResult `json:"results"`
}

// PageResult is one per-page entry in the results array.
type PageResult struct {
	Page       int        `json:"page"`
	OCRContent OCRContent `json:"ocrContent"`
}

// OCRContent nests the extracted markdown under the engine identity.
type OCRContent struct {
	Backend string     `json:"backend"`
	Version string     `json:"version"`
	Results OCRResults `json:"results"`
}

// OCRResults holds the per-image extraction output.
type OCRResults struct {
	Image OCRImage `json:"image"`
}

// OCRImage carries the markdown extracted from one page image.
type OCRImage struct {
	MDContent string `json:"md_content"`
}

// ProcessHandler handles PDF processing requests
type ProcessHandler struct {
	gate     domain.AdmissionGate
	pipeline domain.PipelineService
	config   domain.Config
	logger   domain.Logger
}

// NewProcessHandler creates a new process handler
func NewProcessHandler(gate domain.AdmissionGate, pipeline domain.PipelineService, config domain.Config, logger domain.Logger) *ProcessHandler {
	return &ProcessHandler{
		gate:     gate,
		pipeline: pipeline,
		config:   config,
		logger:   logger,
	}
}

// ProcessPDF handles POST /process-pdf: it validates the upload, takes
// the single admission slot, runs the pipeline and returns the ordered
// per-page results. Validation happens before the gate is tried so that
// a bad request never consumes the slot.
func (h *ProcessHandler) ProcessPDF(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(h.config.GetMaxFileSize()); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pdf") {
		writeError(w, http.StatusBadRequest, "unsupported file type, only PDF files are accepted")
		return
	}

	apiURL := r.FormValue("api_url")
	if apiURL == "" {
		apiURL = h.config.GetOCRAPIURL()
	}

	longestSide := h.config.GetDefaultLongestSide()
	if raw := r.FormValue("longest_side"); raw != "" {
		longestSide, err = strconv.Atoi(raw)
		if err != nil || longestSide <= 0 {
			writeError(w, http.StatusBadRequest, "longest_side must be a positive integer")
			return
		}
	}

	if !h.gate.TryAcquire() {
		h.logger.Warn("Request rejected, pipeline busy", "filename", header.Filename)
		writeError(w, http.StatusTooManyRequests, busyMessage)
		return
	}
	defer h.gate.Release()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read uploaded file")
		return
	}

	h.logger.Info("Processing PDF", "filename", header.Filename, "size", len(data), "longest_side", longestSide)

	result, err := h.pipeline.Process(r.Context(), domain.FromBytes(data), domain.ProcessOptions{
		APIURL:      apiURL,
		LongestSide: longestSide,
	})
	if err != nil {
		h.logger.Error("Pipeline run failed", err, "filename", header.Filename)
		writeError(w, apperrors.GetStatusCode(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, buildResponse(header.Filename, result))
}

func buildResponse(filename string, result *domain.ProcessResult) ProcessResponse {
	return ProcessResponse{
		Success:    true,
		Filename:   filename,
		TotalPages: result.TotalPages,
		Results:    BuildPageResults(result.Records),
	}
}

// BuildPageResults maps page records to the response shape. Failed pages
// stay in the array with empty content so page N is always at
// results[N-1]; callers detect partial failure by comparing total_pages
// against the number of non-empty entries.
func BuildPageResults(records []domain.PageRecord) []PageResult {
	results := make([]PageResult, 0, len(records))
	for _, rec := range records {
		results = append(results, PageResult{
			Page: rec.Page,
			OCRContent: OCRContent{
				Backend: engineBackend,
				Version: engineVersion,
				Results: OCRResults{
					Image: OCRImage{MDContent: rec.Content},
				},
			},
		})
	}
	return results
}
