package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"pdf-processing-service/internal/domain"
	apperrors "pdf-processing-service/pkg/errors"
)

// Mock implementations for handler testing

type MockPipelineService struct {
	mu     sync.Mutex
	calls  int
	result *domain.ProcessResult
	err    error
	// block, when set, holds Process until released. Used to simulate an
	// in-flight run. started is closed when the first call enters.
	block   chan struct{}
	started chan struct{}
}

func (m *MockPipelineService) Process(ctx context.Context, source domain.DocumentSource, opts domain.ProcessOptions) (*domain.ProcessResult, error) {
	m.mu.Lock()
	m.calls++
	if m.calls == 1 && m.started != nil {
		close(m.started)
	}
	block := m.block
	m.mu.Unlock()
	if block != nil {
		<-block
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *MockPipelineService) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type MockGate struct {
	mu       sync.Mutex
	held     bool
	acquires int
	releases int
}

func (g *MockGate) TryAcquire() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return false
	}
	g.held = true
	g.acquires++
	return true
}

func (g *MockGate) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.held = false
	g.releases++
}

type MockConfig struct{}

func (c *MockConfig) GetServerPort() string      { return "8000" }
func (c *MockConfig) GetOCRAPIURL() string       { return "http://ocr.local/layout-parsing" }
func (c *MockConfig) GetDefaultLongestSide() int { return 1280 }
func (c *MockConfig) GetMaxFileSize() int64      { return 50 * 1024 * 1024 }
func (c *MockConfig) GetRequestTimeout() int     { return 30 }
func (c *MockConfig) GetLogLevel() string        { return "info" }
func (c *MockConfig) GetLogFormat() string       { return "console" }

func nPageResult(n int) *domain.ProcessResult {
	records := make([]domain.PageRecord, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, domain.PageRecord{
			Page:    i,
			Success: true,
			Content: fmt.Sprintf("Page %d", i),
		})
	}
	return &domain.ProcessResult{TotalPages: n, Records: records}
}

func multipartRequest(t *testing.T, filename string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if filename != "" {
		part, err := writer.CreateFormFile("file", filename)
		if err != nil {
			t.Fatalf("failed to create form file: %v", err)
		}
		if _, err := part.Write([]byte("%PDF-1.4 fake content")); err != nil {
			t.Fatalf("failed to write form file: %v", err)
		}
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("failed to write field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/process-pdf", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func newTestHandler(pipeline domain.PipelineService, gate domain.AdmissionGate) *ProcessHandler {
	return NewProcessHandler(gate, pipeline, &MockConfig{}, NewMockHandlerLogger())
}

func TestProcessPDF_Success(t *testing.T) {
	gate := &MockGate{}
	pipeline := &MockPipelineService{result: nPageResult(3)}
	h := newTestHandler(pipeline, gate)

	rr := httptest.NewRecorder()
	h.ProcessPDF(rr, multipartRequest(t, "doc.pdf", map[string]string{"longest_side": "1280"}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp ProcessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success true")
	}
	if resp.Filename != "doc.pdf" {
		t.Fatalf("expected filename doc.pdf, got %s", resp.Filename)
	}
	if resp.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", resp.TotalPages)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(resp.Results))
	}
	if got := resp.Results[1].OCRContent.Results.Image.MDContent; got != "Page 2" {
		t.Fatalf("expected results[1] to hold Page 2, got %q", got)
	}
	if resp.Results[1].OCRContent.Backend != "pipeline" {
		t.Fatalf("unexpected backend: %s", resp.Results[1].OCRContent.Backend)
	}
	if resp.Results[1].OCRContent.Version != "2.5.4" {
		t.Fatalf("unexpected engine version: %s", resp.Results[1].OCRContent.Version)
	}

	if gate.acquires != 1 || gate.releases != 1 {
		t.Fatalf("expected one acquire and one release, got %d/%d", gate.acquires, gate.releases)
	}
}

func TestProcessPDF_ZeroPageDocument(t *testing.T) {
	h := newTestHandler(&MockPipelineService{result: nPageResult(0)}, &MockGate{})

	rr := httptest.NewRecorder()
	h.ProcessPDF(rr, multipartRequest(t, "empty.pdf", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp ProcessResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.TotalPages != 0 {
		t.Fatalf("expected total_pages 0, got %d", resp.TotalPages)
	}
	if len(resp.Results) != 0 {
		t.Fatalf("expected empty results, got %d entries", len(resp.Results))
	}
}

func TestProcessPDF_NonPDFFilename(t *testing.T) {
	gate := &MockGate{}
	pipeline := &MockPipelineService{result: nPageResult(1)}
	h := newTestHandler(pipeline, gate)

	rr := httptest.NewRecorder()
	h.ProcessPDF(rr, multipartRequest(t, "notes.txt", nil))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if pipeline.Calls() != 0 {
		t.Fatal("pipeline should not run for a rejected upload")
	}
	if gate.acquires != 0 {
		t.Fatalf("gate must not be touched by input validation, got %d acquires", gate.acquires)
	}
}

func TestProcessPDF_MissingFile(t *testing.T) {
	gate := &MockGate{}
	h := newTestHandler(&MockPipelineService{result: nPageResult(1)}, gate)

	rr := httptest.NewRecorder()
	h.ProcessPDF(rr, multipartRequest(t, "", map[string]string{"longest_side": "1280"}))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	if gate.acquires != 0 {
		t.Fatal("gate must not be touched when the file field is missing")
	}
}

func TestProcessPDF_InvalidLongestSide(t *testing.T) {
	for _, raw := range []string{"abc", "0", "-3"} {
		t.Run(raw, func(t *testing.T) {
			gate := &MockGate{}
			h := newTestHandler(&MockPipelineService{result: nPageResult(1)}, gate)

			rr := httptest.NewRecorder()
			h.ProcessPDF(rr, multipartRequest(t, "doc.pdf", map[string]string{"longest_side": raw}))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
			}
			if gate.acquires != 0 {
				t.Fatal("gate must not be touched for invalid longest_side")
			}
		})
	}
}

func TestProcessPDF_BusyReturns429(t *testing.T) {
	gate := &MockGate{held: true}
	pipeline := &MockPipelineService{result: nPageResult(1)}
	h := newTestHandler(pipeline, gate)

	rr := httptest.NewRecorder()
	h.ProcessPDF(rr, multipartRequest(t, "doc.pdf", nil))

	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
	if pipeline.Calls() != 0 {
		t.Fatal("pipeline should not run while busy")
	}
}

func TestProcessPDF_ConcurrentRequestRejectedFirstUnaffected(t *testing.T) {
	gate := &MockGate{}
	block := make(chan struct{})
	started := make(chan struct{})
	pipeline := &MockPipelineService{result: nPageResult(2), block: block, started: started}
	h := newTestHandler(pipeline, gate)

	firstDone := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		rr := httptest.NewRecorder()
		h.ProcessPDF(rr, multipartRequest(t, "first.pdf", nil))
		firstDone <- rr
	}()

	// Wait for the first request to enter the pipeline.
	<-started

	second := httptest.NewRecorder()
	h.ProcessPDF(second, multipartRequest(t, "second.pdf", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("expected second request to get %d, got %d", http.StatusTooManyRequests, second.Code)
	}

	close(block)
	first := <-firstDone
	if first.Code != http.StatusOK {
		t.Fatalf("first request should still complete with %d, got %d", http.StatusOK, first.Code)
	}

	// Slot is free again after the first run finished.
	pipeline.block = nil
	third := httptest.NewRecorder()
	h.ProcessPDF(third, multipartRequest(t, "third.pdf", nil))
	if third.Code != http.StatusOK {
		t.Fatalf("expected third request to succeed after release, got %d", third.Code)
	}
}

func TestProcessPDF_PipelineErrorsMappedToStatus(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		expected int
	}{
		{"document open error", apperrors.NewDocumentError("failed to open PDF", errors.New("bad header")), http.StatusBadRequest},
		{"internal error", apperrors.NewInternalError("session setup failed", errors.New("disk full")), http.StatusInternalServerError},
		{"untyped error", errors.New("something odd"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gate := &MockGate{}
			h := newTestHandler(&MockPipelineService{err: tc.err}, gate)

			rr := httptest.NewRecorder()
			h.ProcessPDF(rr, multipartRequest(t, "doc.pdf", nil))

			if rr.Code != tc.expected {
				t.Fatalf("expected status %d, got %d", tc.expected, rr.Code)
			}
			if gate.releases != 1 {
				t.Fatal("gate must be released even when the pipeline fails")
			}
		})
	}
}
