package service

import (
	"context"

	"pdf-processing-service/internal/domain"
)

// Pipeline sequences the full run: render all pages, then for each page
// normalize, call the remote parser, and aggregate the outcome. Pages
// are processed strictly sequentially in ascending order; the remote
// service is treated as a scarce, rate-sensitive dependency.
type Pipeline struct {
	renderer   domain.PageRenderer
	normalizer domain.ImageNormalizer
	parser     domain.LayoutParser
	logger     domain.Logger
}

// NewPipeline creates a new pipeline orchestrator
func NewPipeline(
	renderer domain.PageRenderer,
	normalizer domain.ImageNormalizer,
	parser domain.LayoutParser,
	logger domain.Logger,
) *Pipeline {
	return &Pipeline{
		renderer:   renderer,
		normalizer: normalizer,
		parser:     parser,
		logger:     logger,
	}
}

// Process runs one document through the pipeline. A document-open
// failure aborts the whole run; a single page's normalize-or-parse
// failure is recorded and the loop advances to the next page. The
// session's temporary directory is removed on every exit path.
func (p *Pipeline) Process(ctx context.Context, source domain.DocumentSource, opts domain.ProcessOptions) (*domain.ProcessResult, error) {
	session, err := NewSession()
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := session.Close(); err != nil {
			p.logger.Warn("Failed to clean up session directory", "session", session.ID, "error", err)
		}
	}()

	p.logger.Info("Pipeline run started", "session", session.ID, "longest_side", opts.LongestSide)

	pages, err := p.renderer.Render(source, session.Dir)
	if err != nil {
		p.logger.Error("Failed to render document", err, "session", session.ID)
		return nil, err
	}
	p.logger.Info("Document rendered", "session", session.ID, "pages", len(pages))

	aggregator := NewResultAggregator()
	for _, page := range pages {
		if err := p.processPage(ctx, page, opts, aggregator); err != nil {
			p.logger.Warn("Page failed", "session", session.ID, "page", page.Index, "error", err)
		}
	}

	records := aggregator.Finalize()
	succeeded := 0
	for _, rec := range records {
		if rec.Success {
			succeeded++
		}
	}
	p.logger.Info("Pipeline run finished", "session", session.ID, "pages", len(records), "succeeded", succeeded)

	return &domain.ProcessResult{
		TotalPages: len(records),
		Records:    records,
	}, nil
}

// processPage runs one page through normalize → encode → parse and
// records the outcome. The returned error is the recorded diagnostic;
// it never aborts the run.
func (p *Pipeline) processPage(ctx context.Context, page domain.PageImage, opts domain.ProcessOptions, aggregator *ResultAggregator) error {
	if page.Err != nil {
		aggregator.RecordFailure(page.Index, page.Err)
		return page.Err
	}

	normalized, err := p.normalizer.Normalize(page, opts.LongestSide)
	if err != nil {
		aggregator.RecordFailure(page.Index, err)
		return err
	}
	p.logger.Debug("Page normalized", "page", page.Index,
		"from_width", page.Width, "from_height", page.Height,
		"to_width", normalized.Width, "to_height", normalized.Height)

	payload, err := p.normalizer.Encode(normalized)
	if err != nil {
		aggregator.RecordFailure(page.Index, err)
		return err
	}

	result, err := p.parser.Parse(ctx, opts.APIURL, payload)
	if err != nil {
		aggregator.RecordFailure(page.Index, err)
		return err
	}

	aggregator.RecordSuccess(page.Index, result.Markdown)
	return nil
}
