package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"pdf-processing-service/internal/domain"
	apperrors "pdf-processing-service/pkg/errors"
)

// fileTypeImage is the remote service's discriminator for "single image".
const fileTypeImage = 1

// layoutParsingResponse mirrors the remote service's success envelope.
type layoutParsingResponse struct {
	Result *struct {
		LayoutParsingResults []struct {
			Markdown struct {
				Text string `json:"text"`
			} `json:"markdown"`
		} `json:"layoutParsingResults"`
	} `json:"result"`
}

// ParsingClient calls the remote layout-parsing service. It performs a
// single synchronous call per page and applies no retries; a failed call
// fails that page only.
type ParsingClient struct {
	httpClient *http.Client
	logger     domain.Logger
}

// NewParsingClient creates a new parsing client with the given remote
// call timeout.
func NewParsingClient(timeout time.Duration, logger domain.Logger) *ParsingClient {
	return &ParsingClient{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Parse sends one base64-encoded page image to apiURL and returns the
// markdown the service extracted from it.
func (c *ParsingClient) Parse(ctx context.Context, apiURL string, payload string) (domain.ParsingResult, error) {
	body, err := json.Marshal(domain.ParsingRequest{
		File:     payload,
		FileType: fileTypeImage,
	})
	if err != nil {
		return domain.ParsingResult{}, apperrors.NewInternalError("failed to marshal parsing request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return domain.ParsingResult{}, apperrors.NewInternalError("failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.ParsingResult{}, apperrors.NewRemoteCallError(0, err.Error())
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ParsingResult{}, apperrors.NewRemoteFormatError("failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.ParsingResult{}, apperrors.NewRemoteCallError(resp.StatusCode, string(respBody))
	}

	var parsed layoutParsingResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return domain.ParsingResult{}, apperrors.NewRemoteFormatError("response is not valid JSON", err)
	}
	if parsed.Result == nil {
		return domain.ParsingResult{}, apperrors.NewRemoteFormatError("response is missing result envelope", nil)
	}
	if len(parsed.Result.LayoutParsingResults) == 0 {
		return domain.ParsingResult{}, apperrors.NewRemoteFormatError("response contains no layout parsing results", nil)
	}

	// One image per request means one entry per response.
	if extra := len(parsed.Result.LayoutParsingResults); extra > 1 {
		c.logger.Warn("Remote service returned multiple results for a single image", "count", extra)
	}

	return domain.ParsingResult{
		Markdown: parsed.Result.LayoutParsingResults[0].Markdown.Text,
	}, nil
}
