package service

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"

	"github.com/gen2brain/go-fitz"

	"pdf-processing-service/internal/domain"
	apperrors "pdf-processing-service/pkg/errors"
)

// Pages are rasterized at 2x the PDF's native 72-dpi geometry before any
// downstream resizing. The oversampling keeps text edges crisp enough
// for the layout parser.
const renderDPI = 144

// PageRenderer rasterizes PDF pages with go-fitz.
type PageRenderer struct {
	logger domain.Logger
}

// NewPageRenderer creates a new page renderer
func NewPageRenderer(logger domain.Logger) *PageRenderer {
	return &PageRenderer{
		logger: logger,
	}
}

// Render opens the PDF and produces one image per page in ascending
// 1-based page order. A zero-page document returns an empty slice. When
// artifactDir is non-empty each page is also written there as a PNG.
func (r *PageRenderer) Render(source domain.DocumentSource, artifactDir string) ([]domain.PageImage, error) {
	var (
		doc *fitz.Document
		err error
	)
	if source.InMemory() {
		doc, err = fitz.NewFromMemory(source.Data)
	} else {
		doc, err = fitz.New(source.Path)
	}
	if err != nil {
		return nil, apperrors.NewDocumentError("failed to open PDF", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	pages := make([]domain.PageImage, 0, numPages)

	for pageNum := 0; pageNum < numPages; pageNum++ {
		img, err := doc.ImageDPI(pageNum, renderDPI)
		if err != nil {
			// A single bad page does not abort the run; it travels
			// through the pipeline as a failed page.
			r.logger.Warn("Failed to rasterize page", "page", pageNum+1, "total", numPages, "error", err)
			pages = append(pages, domain.PageImage{
				Index: pageNum + 1,
				Err:   apperrors.NewPageError(pageNum+1, err),
			})
			continue
		}

		bounds := img.Bounds()
		page := domain.PageImage{
			Index:  pageNum + 1,
			Image:  img,
			Width:  bounds.Dx(),
			Height: bounds.Dy(),
		}

		if artifactDir != "" {
			path := filepath.Join(artifactDir, fmt.Sprintf("page_%03d.png", pageNum+1))
			if err := writePNG(path, page); err != nil {
				// The artifact is a debugging aid; the in-memory
				// image is what the pipeline consumes.
				r.logger.Warn("Failed to write page artifact", "page", page.Index, "path", path, "error", err)
			} else {
				page.Path = path
			}
		}

		r.logger.Debug("Rendered page", "page", page.Index, "total", numPages, "width", page.Width, "height", page.Height)
		pages = append(pages, page)
	}

	return pages, nil
}

func writePNG(path string, page domain.PageImage) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, page.Image)
}
