package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRequestTargetStripsFragmentFromURI(t *testing.T) {
	url, _ := splitRequestTarget("/you/got/served?reason=science#idet")
	assert.Equal(t, "/you/got/served?reason=science", url.URI)
	assert.Equal(t, "/you/got/served", url.Path)
	assert.Equal(t, "reason=science", url.Query)
	assert.Equal(t, "idet", url.Fragment)
}

func TestSplitRequestTargetNoQueryNoFragment(t *testing.T) {
	url, params := splitRequestTarget("/plain/path")
	assert.Equal(t, "/plain/path", url.URI)
	assert.Equal(t, "/plain/path", url.Path)
	assert.Equal(t, "", url.Query)
	assert.Equal(t, "", url.Fragment)
	assert.Empty(t, params)
}

func TestParseQueryParamsLastWriteWins(t *testing.T) {
	params := parseQueryParams("a=1&a=2")
	assert.Equal(t, "2", params["a"])
}

func TestParseQueryParamsLenientOnMalformedInput(t *testing.T) {
	// Documented open question: these are accepted rather than rejected.
	params := parseQueryParams("?thisiswrong&")
	assert.Equal(t, "", params["?thisiswrong"])

	params = parseQueryParams("t=r&wrong")
	assert.Equal(t, "r", params["t"])
	assert.Equal(t, "", params["wrong"])
}

func TestPercentDecodeBasics(t *testing.T) {
	assert.Equal(t, "%", percentDecode("%25"))
	assert.Equal(t, "$", percentDecode("%24"))
	assert.Equal(t, "the$$", percentDecode("the%24%24"))
	assert.Equal(t, "reason%", percentDecode("reason%25"))
}

func TestPercentDecodePlusIsLiteral(t *testing.T) {
	assert.Equal(t, "a+b", percentDecode("a+b"))
}

func TestPercentDecodePassesThroughMalformedEscape(t *testing.T) {
	assert.Equal(t, "100%", percentDecode("100%"))
	assert.Equal(t, "50%off", percentDecode("50%off"))
	assert.Equal(t, "%zz", percentDecode("%zz"))
}
