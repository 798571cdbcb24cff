package service

import (
	"context"
	"fmt"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// A4 paper size in inches for PrintToPDF.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// DocumentRenderer turns generated report HTML into a fixed-page-size PDF.
// The caller's context deadline bounds the whole browser session.
type DocumentRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

type chromeRenderer struct{}

// NewChromeRenderer renders through a headless Chrome instance spawned per
// job. One job is in flight at a time, so there is no browser pooling.
func NewChromeRenderer() DocumentRenderer {
	return &chromeRenderer{}
}

func (r *chromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPaperWidth(a4WidthInches).
				WithPaperHeight(a4HeightInches).
				WithPrintBackground(true).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		log.Error().Err(err).Msg("Headless PDF rendering failed")
		return nil, fmt.Errorf("pdf rendering failed: %w", err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("pdf rendering produced no output")
	}
	return pdf, nil
}
