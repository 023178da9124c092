package infrastructure

import (
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

const renderTimeout = 60 * time.Second

// Paper is a sheet size in inches.
type Paper struct{ Width, Height float64 }

var papers = map[string]Paper{
	"a4":     {8.27, 11.69},
	"letter": {8.5, 11},
}

// ChromedpRenderer prints HTML pages to PDF with headless Chrome.
type ChromedpRenderer struct {
	execPath string
}

// NewChromedpRenderer uses the browser at execPath, or the one chromedp
// finds on the PATH when it is empty.
func NewChromedpRenderer(execPath string) *ChromedpRenderer {
	return &ChromedpRenderer{execPath: execPath}
}

// RenderHTMLToPDF prints html on format paper ("a4" or "letter"). Unknown
// formats print as A4; a CSS @page size in the document wins either way.
func (r *ChromedpRenderer) RenderHTMLToPDF(ctx context.Context, html, format string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if r.execPath != "" {
		opts = append(opts, chromedp.ExecPath(r.execPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	cctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	runCtx, cancelRun := context.WithTimeout(cctx, renderTimeout)
	defer cancelRun()

	size := PaperSize(format)
	var pdfBuf []byte
	err := chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().WithPrintBackground(true).
				WithPaperWidth(size.Width).
				WithPaperHeight(size.Height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdfBuf, nil
}

// PaperSize returns the paper for a page format, defaulting to A4.
func PaperSize(format string) Paper {
	if p, ok := papers[format]; ok {
		return p
	}
	return papers["a4"]
}
