package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every registry entry pins its transport and builds an extractor that
// stamps its own canonical platform label on the record.
func TestForPlatform(t *testing.T) {
	tests := []struct {
		label        string
		needsBrowser bool
	}{
		{"Amazon", true},
		{"eBay", false},
		{"AliExpress", true},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			spec, ok := ForPlatform(tt.label)
			require.True(t, ok)
			assert.Equal(t, tt.needsBrowser, spec.NeedsBrowser)

			ex := spec.New(&stubFetcher{})
			p := ex.Extract(context.Background(), parseDoc(t, "<html><body></body></html>"), "https://example.com/p/1")
			assert.Equal(t, tt.label, p.Platform)
		})
	}
}

func TestForPlatform_UnknownLabel(t *testing.T) {
	_, ok := ForPlatform("Walmart")
	assert.False(t, ok)
}

func TestGeneric(t *testing.T) {
	spec := Generic()
	assert.True(t, spec.NeedsBrowser, "unknown pages' rendering needs are unknown; default to a browser")

	ex := spec.New(&stubFetcher{})
	require.IsType(t, &GenericExtractor{}, ex)
}
