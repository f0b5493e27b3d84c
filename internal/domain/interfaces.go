package domain

import "context"

// AdmissionGate limits the pipeline to a single in-flight run. TryAcquire
// never blocks: it reports false immediately when the slot is held.
// Release must be called exactly once per successful acquire.
type AdmissionGate interface {
	TryAcquire() bool
	Release()
}

// PageRenderer turns a PDF into one raster image per page, in ascending
// page order. A zero-page document yields an empty slice and no error.
type PageRenderer interface {
	Render(source DocumentSource, artifactDir string) ([]PageImage, error)
}

// ImageNormalizer rescales a page image so its longest edge matches a
// target pixel size and encodes it for transport.
type ImageNormalizer interface {
	Normalize(img PageImage, longestSide int) (PageImage, error)
	Encode(img PageImage) (string, error)
}

// LayoutParser sends one encoded page image to the remote layout-parsing
// service and returns the extracted markdown.
type LayoutParser interface {
	Parse(ctx context.Context, apiURL string, payload string) (ParsingResult, error)
}

// PipelineService runs the full render/normalize/parse/aggregate pipeline
// for one document.
type PipelineService interface {
	Process(ctx context.Context, source DocumentSource, opts ProcessOptions) (*ProcessResult, error)
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetOCRAPIURL() string
	GetDefaultLongestSide() int
	GetMaxFileSize() int64
	GetRequestTimeout() int
	GetLogLevel() string
	GetLogFormat() string
}
