// Package domain defines the core types and interfaces of the PDF
// processing pipeline.
package domain

import "image"

// DocumentSource is a tagged variant identifying where a PDF comes from:
// a file on disk or an in-memory byte buffer. Exactly one of the two
// fields is set; it is resolved once at the renderer boundary.
type DocumentSource struct {
	Path string
	Data []byte
}

// FromPath creates a DocumentSource backed by a file on disk.
func FromPath(path string) DocumentSource {
	return DocumentSource{Path: path}
}

// FromBytes creates a DocumentSource backed by an in-memory PDF.
func FromBytes(data []byte) DocumentSource {
	return DocumentSource{Data: data}
}

// InMemory reports whether the source holds raw bytes rather than a path.
func (s DocumentSource) InMemory() bool {
	return s.Path == ""
}

// PageImage is one rendered PDF page. Index is 1-based and matches the
// page's position in the source document.
type PageImage struct {
	Index  int
	Image  image.Image
	Width  int
	Height int
	// Path of the transient on-disk artifact inside the session
	// directory, empty when artifacts were not written.
	Path string
	// Err is set when this page failed to rasterize. Image is nil in
	// that case and the page is recorded as failed downstream.
	Err error
}

// ParsingRequest is the JSON body sent to the remote layout-parsing
// service. File holds a base64-encoded image; FileType 1 means "single
// image" on the remote side.
type ParsingRequest struct {
	File     string `json:"file"`
	FileType int    `json:"fileType"`
}

// ParsingResult is the markdown extracted from one page image by the
// remote service.
type ParsingResult struct {
	Markdown string
}

// PageRecord is the immutable per-page outcome of a pipeline run.
type PageRecord struct {
	Page    int
	Success bool
	Content string
	Err     error
}

// ProcessResult is the aggregate outcome of one pipeline run. Records
// are sorted by page index ascending and hold exactly one entry per
// rendered page.
type ProcessResult struct {
	TotalPages int
	Records    []PageRecord
}

// ProcessOptions carries the per-run parameters of a pipeline run.
type ProcessOptions struct {
	APIURL      string
	LongestSide int
}
