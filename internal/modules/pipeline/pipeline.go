package pipeline

import (
	"context"

	"quote-scraper/internal/failure"
	"quote-scraper/internal/models"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Fetcher returns the rendered markup for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Extractor reads a Listing from a parsed page.
type Extractor interface {
	Extract(doc *goquery.Document) (models.Listing, error)
}

// ParseFunc turns markup into a document tree.
type ParseFunc func(html string) (*goquery.Document, error)

// Pipeline runs fetch, parse and extract for each URL, one URL at a time.
type Pipeline struct {
	fetcher   Fetcher
	parse     ParseFunc
	extractor Extractor
	logger    *zap.Logger
}

// New creates a new Pipeline.
//
// Parameters:
//   - fetcher: Source of rendered markup.
//   - parse: Markup parser, usually extractor.Parse.
//   - extractor: Reads the listing out of the parsed page.
//   - logger: Logger for pipeline events.
//
// Returns:
//   - A pointer to a new Pipeline instance.
func New(fetcher Fetcher, parse ParseFunc, extractor Extractor, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		fetcher:   fetcher,
		parse:     parse,
		extractor: extractor,
		logger:    logger,
	}
}

// Run processes urls in order and returns one Quote per URL in the same order.
//
// The first failure stops the run: no further URL is fetched and the
// returned slice is nil. On success the slice is never nil, so an empty
// input serializes as an empty array.
//
// Parameters:
//   - ctx: Context passed to every fetch.
//   - urls: Pages to scrape. Duplicates are processed again.
//
// Returns:
//   - The quotes, or the first error wrapped with the failing URL.
func (p *Pipeline) Run(ctx context.Context, urls []string) ([]models.Quote, error) {
	if len(urls) == 0 {
		p.logger.Warn("no URLs to process")
	}

	quotes := make([]models.Quote, 0, len(urls))
	for i, url := range urls {
		listing, err := p.process(ctx, url)
		if err != nil {
			p.logger.Error("processing failed",
				zap.Int("index", i),
				zap.String("url", url),
				zap.Error(err))
			return nil, failure.WithURL(err, url)
		}

		p.logger.Info("extracted quote",
			zap.String("url", url),
			zap.String("name", listing.Name),
			zap.String("price", listing.Price),
			zap.String("change", listing.Change))
		quotes = append(quotes, models.Quote{URL: url, Data: listing})
	}

	p.logger.Info("pipeline completed successfully", zap.Int("quotes", len(quotes)))
	return quotes, nil
}

func (p *Pipeline) process(ctx context.Context, url string) (models.Listing, error) {
	html, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return models.Listing{}, err
	}

	doc, err := p.parse(html)
	if err != nil {
		return models.Listing{}, err
	}

	return p.extractor.Extract(doc)
}
