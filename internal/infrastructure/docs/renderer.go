package docs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	appdocument "github.com/eujim/backend/internal/application/document"
	"go.uber.org/zap"
)

const defaultRenderTimeout = 30 * time.Second

// RendererConfig contains configuration for the chromedp renderer
type RendererConfig struct {
	// Timeout for a single render
	Timeout time.Duration
	// ChromePath overrides the browser binary; empty means look up on PATH
	ChromePath string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Logger for debug output
	Logger *zap.Logger
}

// ChromedpRenderer renders document HTML to PDF using Chrome DevTools
// Protocol. It implements the application layer's Renderer.
type ChromedpRenderer struct {
	config      RendererConfig
	orgName     string
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a new chromedp-based PDF renderer
func NewChromedpRenderer(config RendererConfig, orgName string) *ChromedpRenderer {
	if config.Timeout == 0 {
		config.Timeout = defaultRenderTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &ChromedpRenderer{
		config:  config,
		orgName: orgName,
		logger:  logger,
	}
	r.initAllocator()
	return r
}

func (r *ChromedpRenderer) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if r.config.ChromePath != "" {
		opts = append(opts, chromedp.ExecPath(r.config.ChromePath))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// Render converts the document data to PDF bytes
func (r *ChromedpRenderer) Render(ctx context.Context, data appdocument.RenderData) ([]byte, error) {
	qr, err := qrDataURL(data.VerifyURL)
	if err != nil {
		return nil, fmt.Errorf("qr encode: %w", err)
	}

	html, err := renderHTML(templateData{
		RenderData: data,
		OrgName:    r.orgName,
		QRDataURL:  qr,
	})
	if err != nil {
		return nil, fmt.Errorf("render template: %w", err)
	}
	if strings.TrimSpace(html) == "" {
		return nil, fmt.Errorf("rendered HTML is empty")
	}

	startTime := time.Now()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	// The timeout must wrap the browser context, not the caller's: chromedp
	// only honors deadlines on contexts descending from its own.
	runCtx, runCancel := context.WithTimeout(browserCtx, r.config.Timeout)
	defer runCancel()

	// Caller cancellation still aborts the render
	go func() {
		select {
		case <-ctx.Done():
			runCancel()
		case <-runCtx.Done():
		}
	}()

	width, height := paperFor(data.Kind)

	var pdfData []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(width).
				WithPaperHeight(height).
				WithMarginTop(0).
				WithMarginRight(0).
				WithMarginBottom(0).
				WithMarginLeft(0).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("pdf rendering timed out after %v: %w", r.config.Timeout, err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(pdfData) == 0 {
		return nil, fmt.Errorf("generated PDF is empty")
	}

	r.logger.Info("document rendered",
		zap.String("kind", data.Kind.String()),
		zap.String("tracking_id", data.TrackingID),
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(startTime)))

	return pdfData, nil
}

// Close releases resources held by the renderer
func (r *ChromedpRenderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

// Ensure ChromedpRenderer implements Renderer
var _ appdocument.Renderer = (*ChromedpRenderer)(nil)
