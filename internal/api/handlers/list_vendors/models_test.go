package list_vendors

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	req, err := parseQuery(url.Values{
		"category": {" Photography "},
		"city":     {"Pune"},
		"q":        {"studio"},
		"featured": {"true"},
		"limit":    {"5"},
		"offset":   {"10"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Photography", *req.Category)
	assert.Equal(t, "Pune", *req.City)
	assert.Equal(t, "studio", *req.Search)
	assert.True(t, req.FeaturedOnly)
	assert.Equal(t, uint64(5), req.Limit)
	assert.Equal(t, uint64(10), req.Offset)

	req, err = parseQuery(url.Values{})
	require.NoError(t, err)
	assert.Nil(t, req.Category)
	assert.Equal(t, uint64(defaultLimit), req.Limit)

	for _, bad := range []url.Values{
		{"featured": {"maybe"}},
		{"limit": {"0"}},
		{"limit": {"-1"}},
		{"offset": {"x"}},
	} {
		_, err = parseQuery(bad)
		assert.Error(t, err, bad.Encode())
	}
}
