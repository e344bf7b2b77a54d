package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFoldsDuplicates(t *testing.T) {
	h := NewHeaders()
	h.Set("X-Example-Dup", "val1")
	h.Set("X-Example-Dup", "val2")
	h.Set("X-Example-Dup", "val3")
	assert.Equal(t, "val1,val2,val3", h.Get("X-Example-Dup"))
}

func TestGetIsCaseInsensitive(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/plain")
	assert.Equal(t, "text/plain", h.Get("content-type"))
	assert.Equal(t, "text/plain", h.Get("CONTENT-TYPE"))
	assert.Equal(t, "text/plain", h.Get("Content-Type"))
}

func TestOverrideReplacesRatherThanFolds(t *testing.T) {
	h := NewHeaders()
	h.Set("Content-Type", "text/plain")
	h.Override("Content-Type", "text/html")
	assert.Equal(t, "text/html", h.Get("Content-Type"))
}

func TestHasDistinguishesAbsentFromEmpty(t *testing.T) {
	h := NewHeaders()
	h.Set("X-Empty", "")
	require.True(t, h.Has("X-Empty"))
	require.False(t, h.Has("X-Missing"))
	assert.Equal(t, "", h.Get("X-Missing"))
}

func TestValidTokenChar(t *testing.T) {
	for _, c := range []byte("Content-Type9_~!") {
		assert.True(t, ValidTokenChar(c), "expected %q to be a valid token char", c)
	}
	for _, c := range []byte(" :\t\"") {
		assert.False(t, ValidTokenChar(c), "expected %q to be an invalid token char", c)
	}
}
