package pdf

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/p3mo/userdir/internal/models"
	"gorm.io/gorm"
)

// ErrUserNotFound reports a render request for a user id that does not
// exist. It is returned before any browser process is started.
var ErrUserNotFound = errors.New("user not found")

const (
	// Hard cap on one render request end to end: launch, navigation,
	// waits, and the print itself.
	renderTimeout = 30 * time.Second

	// How long to wait for the frontend's loading indicator to go away
	// before rendering whatever is on screen.
	loadingSelector = "#loading"
	loadingWait     = 10 * time.Second

	// A4 in inches.
	paperWidth  = 8.27
	paperHeight = 11.69

	headerTemplate = `<div style="font-size:10px; text-align:center; width:100%;">User Profile Report</div>`
)

// renderPage is the browser side of PDF generation, broken out so
// tests can substitute a double and assert it never runs on the
// not-found path.
var renderPage = renderWithChromium

// GenerateUserPDF renders the frontend profile page for one user to a
// PDF byte stream. The user lookup short-circuits before any browser
// work begins.
func GenerateUserPDF(db *gorm.DB, userID uint, frontendURL string) ([]byte, error) {
	var u models.User
	if err := db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	pageURL := fmt.Sprintf("%s/user/%d", frontendURL, userID)
	return renderPage(pageURL)
}

// renderWithChromium drives one isolated headless Chromium through
// navigate, wait-for-ready, and print-to-PDF. The browser and its page
// are torn down on every exit path via the deferred cancels.
func renderWithChromium(pageURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, chromedp.DefaultExecAllocatorOptions[:]...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	var buf []byte
	err := chromedp.Run(browserCtx,
		enableLifecycleEvents(),
		navigateAndWaitIdle(pageURL),
		waitLoadingHidden(loadingSelector, loadingWait),
		printToPDF(&buf),
	)
	if err != nil {
		return nil, err
	}

	return buf, nil
}

func enableLifecycleEvents() chromedp.ActionFunc {
	return func(ctx context.Context) error {
		if err := page.Enable().Do(ctx); err != nil {
			return err
		}
		return page.SetLifecycleEventsEnabled(true).Do(ctx)
	}
}

// navigateAndWaitIdle opens the URL and blocks until the page reports
// the networkIdle lifecycle event. The surrounding context carries the
// render deadline, so the wait is bounded.
func navigateAndWaitIdle(pageURL string) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		idle := make(chan struct{})
		var once sync.Once

		lctx, cancel := context.WithCancel(ctx)
		defer cancel()
		chromedp.ListenTarget(lctx, func(ev interface{}) {
			if e, ok := ev.(*page.EventLifecycleEvent); ok && e.Name == "networkIdle" {
				once.Do(func() { close(idle) })
			}
		})

		_, _, errorText, err := page.Navigate(pageURL).Do(ctx)
		if err != nil {
			return err
		}
		if errorText != "" {
			return fmt.Errorf("navigation to %s failed: %s", pageURL, errorText)
		}

		select {
		case <-idle:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// waitLoadingHidden waits for the loading indicator to disappear. The
// wait is best-effort: on timeout the condition is logged and the
// render proceeds against whatever is currently on the page.
func waitLoadingHidden(selector string, timeout time.Duration) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		wctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := chromedp.WaitNotVisible(selector, chromedp.ByQuery).Do(wctx)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				log.Printf("Loading indicator %q still visible after %s, rendering anyway", selector, timeout)
				return nil
			}
			return err
		}
		return nil
	}
}

func printToPDF(res *[]byte) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		footer := fmt.Sprintf(
			`<div style="font-size:8px; text-align:center; width:100%%;">Generated on %s</div>`,
			time.Now().Format("2006-01-02 15:04:05"),
		)

		buf, _, err := page.PrintToPDF().
			WithPaperWidth(paperWidth).
			WithPaperHeight(paperHeight).
			WithPrintBackground(true).
			WithDisplayHeaderFooter(true).
			WithHeaderTemplate(headerTemplate).
			WithFooterTemplate(footer).
			Do(ctx)
		if err != nil {
			return err
		}

		*res = buf
		return nil
	}
}
