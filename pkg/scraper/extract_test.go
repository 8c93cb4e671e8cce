package scraper

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractImageURLs(t *testing.T) {
	html := `<html><body>
		<div class="XiG zI7 iyn Hsu">
			<img src="https://cdn.example.com/1.jpg"/>
			<div><img src="https://cdn.example.com/2.jpg"/></div>
		</div>
		<div class="zI7 XiG Hsu iyn extra">
			<img src="https://cdn.example.com/3.jpg"/>
		</div>
	</body></html>`

	urls, err := ExtractImageURLs(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://cdn.example.com/1.jpg",
		"https://cdn.example.com/2.jpg",
		"https://cdn.example.com/3.jpg",
	}, urls)
}

func TestExtractImageURLsIgnoresOtherImages(t *testing.T) {
	html := `<html><body>
		<img src="https://cdn.example.com/banner.jpg"/>
		<div class="XiG zI7"><img src="https://cdn.example.com/partial.jpg"/></div>
		<div class="XiG zI7 iyn Hsu"><img src="https://cdn.example.com/grid.jpg"/></div>
	</body></html>`

	urls, err := ExtractImageURLs(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/grid.jpg"}, urls)
}

func TestExtractImageURLsSkipsEmptySrc(t *testing.T) {
	html := `<div class="XiG zI7 iyn Hsu">
		<img src=""/>
		<img/>
		<img src="https://cdn.example.com/real.jpg"/>
	</div>`

	urls, err := ExtractImageURLs(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/real.jpg"}, urls)
}

func TestExtractImageURLsEmptyDocument(t *testing.T) {
	urls, err := ExtractImageURLs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, urls)
}

func TestExtractImageURLsPreservesDocumentOrder(t *testing.T) {
	html := `<div class="XiG zI7 iyn Hsu">
		<img src="u3"/><img src="u1"/><img src="u2"/>
	</div>`

	urls, err := ExtractImageURLs(strings.NewReader(html))
	require.NoError(t, err)
	assert.Equal(t, []string{"u3", "u1", "u2"}, urls)
}
