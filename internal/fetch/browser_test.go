package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-as-code/internal/logging"
)

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("  short  "))
	assert.False(t, ShouldUseBrowser(strings.Repeat("x", MinContentLength)))
}

func postingServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestJobPosting_HTTPOnly(t *testing.T) {
	long := strings.Repeat("Operate Kubernetes clusters. ", 30)
	server := postingServer(t, `<html><body><nav>Jobs</nav><div class="job-description"><p>`+long+`</p></div><form>Apply</form></body></html>`)

	rendered := false
	posting, err := JobPosting(context.Background(), server.URL, JobOptions{
		UseBrowser: true,
		render: func(context.Context, string, time.Duration, *logging.Logger) (string, error) {
			rendered = true
			return "", nil
		},
	})
	require.NoError(t, err)
	assert.False(t, rendered)
	assert.False(t, posting.Rendered)
	assert.Equal(t, PlatformUnknown, posting.Platform)
	assert.Contains(t, posting.Text, "Operate Kubernetes clusters.")
	assert.NotContains(t, posting.Text, "Apply")
}

func TestJobPosting_FallsBackToBrowser(t *testing.T) {
	server := postingServer(t, `<html><body><div id="root"></div></body></html>`)
	logger := logging.NewTestLogger()

	posting, err := JobPosting(context.Background(), server.URL, JobOptions{
		UseBrowser: true,
		Logger:     logger.Logger,
		render: func(_ context.Context, url string, _ time.Duration, _ *logging.Logger) (string, error) {
			assert.Equal(t, server.URL, url)
			return `<html><body><main><p>Rendered description</p></main></body></html>`, nil
		},
	})
	require.NoError(t, err)
	assert.True(t, posting.Rendered)
	assert.Equal(t, "Rendered description", posting.Text)
	assert.NotEmpty(t, logger.FilterMessage("rendering in browser").All())
}

func TestJobPosting_BrowserDisabled(t *testing.T) {
	server := postingServer(t, `<html><body><main><p>Short but real</p></main></body></html>`)

	posting, err := JobPosting(context.Background(), server.URL, JobOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Short but real", posting.Text)

	empty := postingServer(t, `<html><body></body></html>`)
	_, err = JobPosting(context.Background(), empty.URL, JobOptions{})
	assert.Error(t, err)
}

func TestJobPosting_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := postingServer(t, `<html><body><main><p>Short text</p></main></body></html>`)

	posting, err := JobPosting(context.Background(), server.URL, JobOptions{
		UseBrowser: true,
		render: func(context.Context, string, time.Duration, *logging.Logger) (string, error) {
			return "", errors.New("chrome not found")
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Short text", posting.Text)
	assert.False(t, posting.Rendered)
}

func TestJobPosting_HTTPFailure(t *testing.T) {
	_, err := JobPosting(context.Background(), "not a url", JobOptions{})
	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)

	_, err = JobPosting(context.Background(), "not a url", JobOptions{
		UseBrowser: true,
		render: func(context.Context, string, time.Duration, *logging.Logger) (string, error) {
			return "", errors.New("chrome not found")
		},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrome not found")
	assert.Contains(t, err.Error(), "invalid URL")
}
