package persistence

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"quote-scraper/internal/failure"
	"quote-scraper/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestJSONPersister_Save(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tests := []struct {
		name   string
		quotes []models.Quote
		want   string
	}{
		{
			name:   "nil result set",
			quotes: nil,
			want:   "[]\n",
		},
		{
			name:   "empty result set",
			quotes: []models.Quote{},
			want:   "[]\n",
		},
		{
			name: "single quote keeps raw text",
			quotes: []models.Quote{
				{URL: "https://example.com/?a=1&b=2", Data: models.Listing{Name: "S&P 500 <idx>", Price: "€61.02", Change: "+0.34%"}},
			},
			want: `[
    {
        "url": "https://example.com/?a=1&b=2",
        "data": {
            "name": "S&P 500 <idx>",
            "price": "€61.02",
            "change": "+0.34%"
        }
    }
]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "data.json")
			jp := New(path)

			require.NoError(t, jp.Save(tt.quotes, logger))

			got, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))

			leftovers, _ := filepath.Glob(filepath.Join(filepath.Dir(path), ".*.tmp"))
			assert.Empty(t, leftovers)
		})
	}
}

func TestJSONPersister_Save_roundTrip(t *testing.T) {
	quotes := []models.Quote{
		{URL: "u1", Data: models.Listing{Name: "BNP Paribas", Price: "€61.02", Change: "+0.34%"}},
		{URL: "u2", Data: models.Listing{Name: "Dow Jones", Price: "34,000.00", Change: "-0.10%"}},
		{URL: "u3", Data: models.Listing{Name: "Société Générale", Price: "¥1,000", Change: "−0.5 %"}},
	}

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")
	require.NoError(t, New(path).Save(quotes, zaptest.NewLogger(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []models.Quote
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, quotes, decoded)
}

func TestJSONPersister_Save_overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new one"), 0644))

	require.NoError(t, New(path).Save(nil, zaptest.NewLogger(t)))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(got))
}

func TestJSONPersister_Save_unwritable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	// Parent "directory" is a regular file.
	err := New(filepath.Join(blocker, "data.json")).Save(nil, zaptest.NewLogger(t))

	require.Error(t, err)
	assert.True(t, failure.Is(err, failure.Write))
}

func TestNew_defaultPath(t *testing.T) {
	assert.Equal(t, "data.json", New().Path())
	assert.Equal(t, "data.json", New("").Path())
	assert.Equal(t, "x.json", New("x.json").Path())
}
