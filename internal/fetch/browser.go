package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/resume-as-code/internal/logging"
)

// MinContentLength is the shortest extracted text accepted from a plain HTTP fetch.
// Shorter text usually means the page renders client-side.
const MinContentLength = 500

// DefaultBrowserTimeout bounds a headless render.
const DefaultBrowserTimeout = 45 * time.Second

// ShouldUseBrowser reports whether extracted text is too short to be a posting.
func ShouldUseBrowser(extractedText string) bool {
	return len(strings.TrimSpace(extractedText)) < MinContentLength
}

// BrowserOptions returns the exec allocator flags used for every headless session.
func BrowserOptions() []chromedp.ExecAllocatorOption {
	return append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
}

// RenderPage loads url in headless Chrome and returns the rendered document.
// Chrome or Chromium must be installed.
func RenderPage(ctx context.Context, url string, timeout time.Duration, logger *logging.Logger) (string, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	if timeout <= 0 {
		timeout = DefaultBrowserTimeout
	}
	logger.Debug(ctx, "starting headless browser", zap.String("url", url))

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, BrowserOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		// client-side boards fill the description after load
		chromedp.Sleep(3*time.Second),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}

	logger.Debug(ctx, "rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}

// Posting is the text of a job posting and how it was obtained.
type Posting struct {
	URL      string
	Platform Platform
	Text     string
	Rendered bool
}

// JobOptions configure JobPosting.
type JobOptions struct {
	HTTP *Options
	// UseBrowser allows a headless render when the HTTP body is too thin.
	UseBrowser     bool
	BrowserTimeout time.Duration
	Logger         *logging.Logger
	// render replaces RenderPage in tests.
	render func(ctx context.Context, url string, timeout time.Duration, logger *logging.Logger) (string, error)
}

// JobPosting fetches a posting and extracts its description with the selectors of
// the detected job board.
func JobPosting(ctx context.Context, url string, opts JobOptions) (*Posting, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	render := opts.render
	if render == nil {
		render = RenderPage
	}

	platform := DetectPlatform(url)
	posting := &Posting{URL: url, Platform: platform}

	res, fetchErr := URL(ctx, url, opts.HTTP)
	if fetchErr == nil {
		text, err := ExtractMainText(res.HTML, ContentSelectors(platform), NoiseSelectors(platform)...)
		if err != nil {
			return nil, &Error{URL: url, Message: "failed to extract text", Cause: err}
		}
		posting.Text = text
		if !ShouldUseBrowser(text) || !opts.UseBrowser {
			if strings.TrimSpace(text) == "" {
				return nil, &Error{URL: url, Message: "page has no readable text"}
			}
			return posting, nil
		}
		logger.Info(ctx, "posting text is short, rendering in browser",
			zap.String("url", url), zap.Int("chars", len(text)))
	} else if !opts.UseBrowser {
		return nil, fetchErr
	}

	html, err := render(ctx, url, opts.BrowserTimeout, logger)
	if err != nil {
		if posting.Text != "" {
			logger.Warn(ctx, "browser render failed, keeping HTTP text", zap.Error(err))
			return posting, nil
		}
		if fetchErr != nil {
			return nil, fmt.Errorf("%w (HTTP fetch: %v)", err, fetchErr)
		}
		return nil, err
	}
	text, err := ExtractMainText(html, ContentSelectors(platform), NoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: url, Message: "failed to extract rendered text", Cause: err}
	}
	posting.Text = text
	posting.Rendered = true
	return posting, nil
}
