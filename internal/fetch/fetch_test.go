package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/job", "https://"} {
		_, err := URL(context.Background(), raw, nil)
		require.Error(t, err, raw)

		var fetchErr *Error
		assert.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, nil)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)

	var fetchErr *Error
	assert.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_CustomHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "en-US", r.Header.Get("Accept-Language"))
		assert.Equal(t, "tester", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	_, err := URL(context.Background(), server.URL, &Options{
		UserAgent: "tester",
		Headers:   map[string]string{"Accept-Language": "en-US"},
	})
	require.NoError(t, err)
}

func TestExtractMainText(t *testing.T) {
	tests := []struct {
		name       string
		html       string
		selectors  []string
		noise      []string
		contains   []string
		notContain []string
	}{
		{
			name:       "main element",
			html:       `<html><body><nav>Navigation</nav><main><h1>Main Content</h1><p>This is the important text.</p></main><footer>Footer</footer></body></html>`,
			selectors:  JobPostingSelectors(),
			contains:   []string{"Main Content", "important text"},
			notContain: []string{"Navigation", "Footer"},
		},
		{
			name:      "fallback to body",
			html:      `<html><body><div>Some content here.</div></body></html>`,
			selectors: []string{".missing"},
			contains:  []string{"Some content here."},
		},
		{
			name:       "job description class",
			html:       `<html><body><div class="sidebar">Sidebar junk</div><div class="job-description"><h2>Requirements</h2><p>5 years experience in Go</p></div></body></html>`,
			selectors:  JobPostingSelectors(),
			contains:   []string{"Requirements", "5 years experience in Go"},
			notContain: []string{"Sidebar junk"},
		},
		{
			name:       "caller noise",
			html:       `<html><body><main><p>Build systems</p><form>Apply now</form></main></body></html>`,
			selectors:  JobPostingSelectors(),
			noise:      []string{"form"},
			contains:   []string{"Build systems"},
			notContain: []string{"Apply now"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := ExtractMainText(tt.html, tt.selectors, tt.noise...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, text, s)
			}
		})
	}
}

func TestExtractMainText_KeepsParagraphBreaks(t *testing.T) {
	html := `<main><h2>About</h2><p>First   paragraph.</p><ul><li>Go</li><li>Kubernetes</li></ul></main>`
	text, err := ExtractMainText(html, []string{"main"})
	require.NoError(t, err)
	assert.Equal(t, "About\nFirst paragraph.\nGo\nKubernetes", text)
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b\nc", cleanWhitespace("  a \t b \n\n\n   c  "))
	assert.Equal(t, "", cleanWhitespace(" \n \n"))
}

func TestJobPostingSelectors(t *testing.T) {
	selectors := JobPostingSelectors()
	assert.Contains(t, selectors, ".job-description")
	assert.Contains(t, selectors, "main")
	assert.True(t, strings.HasPrefix(selectors[0], ".job"))
}
