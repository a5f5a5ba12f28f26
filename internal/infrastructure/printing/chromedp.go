package printing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/koperasi/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const defaultChromeTimeout = 30 * time.Second

// ChromedpConverter prints HTML to PDF using the Chrome DevTools Protocol.
// It connects to a remote Chrome when a URL is configured and otherwise
// launches a local headless browser on first use.
type ChromedpConverter struct {
	timeout     time.Duration
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpConverter creates a converter from the receipt configuration
func NewChromedpConverter(cfg config.ReceiptConfig, logger *zap.Logger) *ChromedpConverter {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultChromeTimeout
	}

	c := &ChromedpConverter{timeout: timeout, logger: logger}
	if cfg.RemoteChromeURL != "" {
		c.allocCtx, c.allocCancel = chromedp.NewRemoteAllocator(context.Background(), cfg.RemoteChromeURL)
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-first-run", true),
			chromedp.Flag("disable-extensions", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("font-render-hinting", "none"),
		)
		c.allocCtx, c.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
	return c
}

// HTMLToPDF loads html into a blank tab and prints it on receipt paper
func (c *ChromedpConverter) HTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(c.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			c.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// Tie the tab to the caller's deadline.
	stop := context.AfterFunc(ctx, browserCancel)
	defer stop()

	params := receiptPrintParams()
	var pdfData []byte
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
			data, _, err := params.Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", c.timeout), err)
		}
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, NewRenderError(ErrCodeRenderTimeout, "PDF rendering was cancelled", err)
		}
		c.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}
	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	c.logger.Debug("Receipt PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(start)))
	return pdfData, nil
}

// Close releases the browser allocator
func (c *ChromedpConverter) Close() error {
	if c.allocCancel != nil {
		c.allocCancel()
	}
	return nil
}

// receiptPrintParams sizes the page as a continuous 80mm roll
func receiptPrintParams() *page.PrintToPDFParams {
	return page.PrintToPDF().
		WithPrintBackground(true).
		WithPaperWidth(mmToInches(ReceiptPaperWidthMM)).
		WithPaperHeight(mmToInches(receiptPaperHeightMM)).
		WithMarginTop(mmToInches(receiptMarginMM)).
		WithMarginBottom(mmToInches(receiptMarginMM)).
		WithMarginLeft(mmToInches(receiptMarginMM)).
		WithMarginRight(mmToInches(receiptMarginMM)).
		WithScale(1.0).
		WithPreferCSSPageSize(true)
}

// mmToInches converts millimeters to inches
func mmToInches(mm float64) float64 {
	return mm / 25.4
}

var _ PDFConverter = (*ChromedpConverter)(nil)
