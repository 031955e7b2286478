package extractor

import (
	"strings"

	"quote-scraper/internal/config"
	"quote-scraper/internal/failure"
	"quote-scraper/internal/models"

	"github.com/PuerkitoBio/goquery"
)

// TextExtractor reads the text of one named field inside a region of the page.
// Implementations own the coupling to the page's markup.
type TextExtractor interface {
	Locate(region *goquery.Selection, field string) (string, error)
}

// ClassLocator finds a field as the first div carrying a fixed class.
type ClassLocator struct {
	classes map[string]string // field key -> class name
}

// NewClassLocator creates a ClassLocator from field key to class name.
func NewClassLocator(classes map[string]string) *ClassLocator {
	return &ClassLocator{classes: classes}
}

// Locate returns the untouched text content of the field's element.
func (cl *ClassLocator) Locate(region *goquery.Selection, field string) (string, error) {
	class, ok := cl.classes[field]
	if !ok || class == "" {
		return "", failure.Newf(failure.Extraction, "locate "+field, "no selector for field")
	}

	sel := region.Find("div." + class).First()
	if sel.Length() == 0 {
		return "", failure.Newf(failure.Extraction, "locate "+field, "missing element div.%s", class)
	}
	return sel.Text(), nil
}

// Extractor pulls a Listing out of a rendered quote page.
type Extractor struct {
	region  string
	locator TextExtractor
}

// New creates an Extractor that scopes lookups to the first element matching
// region and delegates each field to locator.
func New(region string, locator TextExtractor) *Extractor {
	return &Extractor{region: region, locator: locator}
}

// FromConfig builds the default class-based Extractor.
func FromConfig(cfg config.SelectorConfig) *Extractor {
	return New(cfg.Region, NewClassLocator(cfg.Fields))
}

// Parse turns markup into a document tree.
func Parse(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, failure.New(failure.Parse, "parse markup", err)
	}
	return doc, nil
}

// Extract reads name, price and change. Either all three are found or an
// Extraction error is returned.
func (e *Extractor) Extract(doc *goquery.Document) (models.Listing, error) {
	region := doc.Find(e.region).First()
	if region.Length() == 0 {
		return models.Listing{}, failure.Newf(failure.Extraction, "locate region", "missing element %s", e.region)
	}

	var listing models.Listing
	fields := []struct {
		key string
		dst *string
	}{
		{config.FieldName, &listing.Name},
		{config.FieldPrice, &listing.Price},
		{config.FieldChange, &listing.Change},
	}

	for _, f := range fields {
		text, err := e.locator.Locate(region, f.key)
		if err != nil {
			return models.Listing{}, err
		}
		*f.dst = text
	}

	return listing, nil
}
