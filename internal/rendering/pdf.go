package rendering

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/jonathan/resume-as-code/internal/fetch"
)

// DefaultPDFTimeout bounds a single print job.
const DefaultPDFTimeout = 60 * time.Second

// Letter paper in inches.
const (
	paperWidth  = 8.5
	paperHeight = 11
)

// PrintPDF prints an HTML document to outPath with headless Chrome.
func PrintPDF(ctx context.Context, html, outPath string) error {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, fetch.BrowserOptions()...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, DefaultPDFTimeout)
	defer cancel()

	var buf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			buf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return &RenderError{Message: "failed to print PDF", Cause: err}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to create directory for %s", outPath), Cause: err}
	}
	if err := os.WriteFile(outPath, buf, 0644); err != nil {
		return &RenderError{Message: fmt.Sprintf("failed to write %s", outPath), Cause: err}
	}
	return nil
}
