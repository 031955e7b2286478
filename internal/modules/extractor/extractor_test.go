package extractor

import (
	"errors"
	"testing"

	"quote-scraper/internal/config"
	"quote-scraper/internal/failure"
	"quote-scraper/internal/models"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quotePage = `<html><body>
<div class="zzDege">Decoy outside main</div>
<main>
  <div class="wrapper"><div class="zzDege">BNP Paribas</div></div>
  <div class="YMlKec fxKbKc AHmHk"><span>€</span>61.02</div>
  <div class="JwB6zf" style="font-size:16px">  +0.34% </div>
  <div class="AHmHk">second price</div>
</main>
</body></html>`

func TestExtractor_Extract(t *testing.T) {
	doc, err := Parse(quotePage)
	require.NoError(t, err)

	listing, err := FromConfig(config.Default().Selector).Extract(doc)
	require.NoError(t, err)

	assert.Equal(t, models.Listing{
		Name:   "BNP Paribas",
		Price:  "€61.02",
		Change: "  +0.34% ",
	}, listing)
}

func TestExtractor_Extract_missing(t *testing.T) {
	tests := []struct {
		name string
		html string
		op   string
	}{
		{
			name: "no main region",
			html: `<div class="zzDege">a</div><div class="AHmHk">b</div><div class="JwB6zf">c</div>`,
			op:   "locate region",
		},
		{
			name: "missing name",
			html: `<main><div class="AHmHk">b</div><div class="JwB6zf">c</div></main>`,
			op:   "locate name",
		},
		{
			name: "missing price",
			html: `<main><div class="zzDege">a</div><div class="JwB6zf">c</div></main>`,
			op:   "locate price",
		},
		{
			name: "missing change",
			html: `<main><div class="zzDege">a</div><div class="AHmHk">b</div></main>`,
			op:   "locate change",
		},
		{
			name: "class on wrong element",
			html: `<main><span class="zzDege">a</span><div class="AHmHk">b</div><div class="JwB6zf">c</div></main>`,
			op:   "locate name",
		},
	}

	ex := FromConfig(config.Default().Selector)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(tt.html)
			require.NoError(t, err)

			listing, err := ex.Extract(doc)
			require.Error(t, err)
			assert.Equal(t, models.Listing{}, listing)

			var fe *failure.Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, failure.Extraction, fe.Kind)
			assert.Equal(t, tt.op, fe.Op)
		})
	}
}

type mapLocator map[string]string

func (m mapLocator) Locate(region *goquery.Selection, field string) (string, error) {
	v, ok := m[field]
	if !ok {
		return "", failure.Newf(failure.Extraction, "locate "+field, "not stubbed")
	}
	return v, nil
}

func TestExtractor_customLocator(t *testing.T) {
	doc, err := Parse(`<article>anything</article>`)
	require.NoError(t, err)

	ex := New("article", mapLocator{
		config.FieldName:   "Dow Jones",
		config.FieldPrice:  "34,000.00",
		config.FieldChange: "-0.10%",
	})

	listing, err := ex.Extract(doc)
	require.NoError(t, err)
	assert.Equal(t, models.Listing{Name: "Dow Jones", Price: "34,000.00", Change: "-0.10%"}, listing)
}

func TestClassLocator_unknownField(t *testing.T) {
	doc, err := Parse(`<main><div class="x">1</div></main>`)
	require.NoError(t, err)

	_, err = NewClassLocator(map[string]string{}).Locate(doc.Find("main"), "volume")
	assert.True(t, failure.Is(err, failure.Extraction))
}
