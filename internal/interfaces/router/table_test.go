package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(Params) {}

func TestNewTable_RejectsBadDeclarations(t *testing.T) {
	tests := []struct {
		name   string
		routes []Route
	}{
		{"empty pattern", []Route{{Pattern: "", Handler: noop}}},
		{"missing leading slash", []Route{{Pattern: "products", Handler: noop}}},
		{"nil handler", []Route{{Pattern: "/x", Handler: nil}}},
		{"duplicate pattern", []Route{{Pattern: "/x", Handler: noop}, {Pattern: "/x", Handler: noop}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.routes)
			assert.Error(t, err)
		})
	}
}

func TestTable_ExactMatchBeatsPattern(t *testing.T) {
	var hit string
	table, err := NewTable([]Route{
		{Pattern: "/supplier/:id", Handler: func(Params) { hit = "pattern" }},
		{Pattern: "/supplier/products", Handler: func(Params) { hit = "exact" }},
	})
	require.NoError(t, err)

	h, params := table.Match("/supplier/products")
	require.NotNil(t, h)
	h(params)
	assert.Equal(t, "exact", hit)
	assert.Empty(t, params)

	h, params = table.Match("/supplier/s-42")
	require.NotNil(t, h)
	h(params)
	assert.Equal(t, "pattern", hit)
	assert.Equal(t, Params{"id": "s-42"}, params)
}

func TestTable_FirstDeclaredPatternWins(t *testing.T) {
	var hit string
	table, err := NewTable([]Route{
		{Pattern: "/a/:x", Handler: func(Params) { hit = "first" }},
		{Pattern: "/a/:y", Handler: func(Params) { hit = "second" }},
	})
	require.NoError(t, err)

	h, params := table.Match("/a/1")
	require.NotNil(t, h)
	h(params)
	assert.Equal(t, "first", hit)
	assert.Equal(t, Params{"x": "1"}, params)
}

func TestTable_ParamExtraction(t *testing.T) {
	table, err := NewTable([]Route{
		{Pattern: "/order/:region/:id", Handler: noop},
	})
	require.NoError(t, err)

	tests := []struct {
		path   string
		want   Params
		hasHit bool
	}{
		{"/order/eu-west/ord.2024.001", Params{"region": "eu-west", "id": "ord.2024.001"}, true},
		{"/order/us/12345", Params{"region": "us", "id": "12345"}, true},
		{"/order/us", nil, false},
		{"/order/us/1/extra", nil, false},
		{"/order//1", nil, false}, // a param consumes at least one character
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			h, params := table.Match(tt.path)
			if !tt.hasHit {
				assert.Nil(t, h)
				return
			}
			require.NotNil(t, h)
			assert.Equal(t, tt.want, params)
		})
	}
}

func TestTable_NoMatch(t *testing.T) {
	table, err := NewTable([]Route{{Pattern: "/", Handler: noop}})
	require.NoError(t, err)

	h, _ := table.Match("/missing")
	assert.Nil(t, h)
}
