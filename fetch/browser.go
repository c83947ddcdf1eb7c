package fetch

import (
	"context"
	"errors"
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/merchstat/scout/config"
	"github.com/merchstat/scout/models"
)

// BrowserFetcher renders pages in a headless browser before returning their
// HTML. Each fetcher owns at most one renderer process, launched lazily on
// first use and reused across consecutive fetches. It is NOT safe for
// concurrent use: concurrent extractions must each own their own fetcher.
//
// The caller must Close the fetcher when done; an unclosed fetcher leaks an
// OS process.
type BrowserFetcher struct {
	scraperCfg config.ScraperConfig
	browserCfg config.BrowserConfig

	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewBrowserFetcher creates a browser fetcher. The renderer process is not
// started until the first Fetch.
func NewBrowserFetcher(scraperCfg config.ScraperConfig, browserCfg config.BrowserConfig) *BrowserFetcher {
	return &BrowserFetcher{
		scraperCfg: scraperCfg,
		browserCfg: browserCfg,
	}
}

// start launches the renderer and connects to it.
func (f *BrowserFetcher) start() error {
	l := launcher.New().
		Headless(f.browserCfg.Headless).
		NoSandbox(f.browserCfg.NoSandbox)

	if f.browserCfg.Bin != "" {
		l = l.Bin(f.browserCfg.Bin)
	}
	if f.scraperCfg.ProxyURL != "" {
		l = l.Proxy(f.scraperCfg.ProxyURL)
	}

	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("ignore-certificate-errors"))
	// Images are never extracted from pixels, only from src attributes.
	l.Set(flags.Flag("blink-settings"), "imagesEnabled=false")
	l.Set(flags.Flag("user-agent"), f.scraperCfg.UserAgent)

	controlURL, err := l.Launch()
	if err != nil {
		return models.NewExtractError(models.ErrCodeBrowserCrash, "failed to launch browser", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return models.NewExtractError(models.ErrCodeBrowserCrash, "failed to connect to browser", err)
	}

	f.launcher = l
	f.browser = browser
	slog.Debug("browser launched", "controlURL", controlURL)
	return nil
}

// Fetch navigates the renderer to the URL and returns the rendered HTML.
// The retry policy matches the HTTP fetcher, but a failed attempt also
// tears down and relaunches the renderer: a wedged process must not be
// reused.
func (f *BrowserFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	html, err := retryFetch(ctx, targetURL, f.scraperCfg.MaxRetries, f.scraperCfg.RetryBackoff, func() (string, error) {
		return f.fetchOnce(ctx, targetURL)
	}, func() {
		f.Close()
	})
	if err != nil {
		return "", models.NewExtractError(models.ErrCodeFetchFailed, "all fetch attempts failed", err)
	}
	return html, nil
}

func (f *BrowserFetcher) fetchOnce(ctx context.Context, targetURL string) (string, error) {
	if f.browser == nil {
		if err := f.start(); err != nil {
			return "", err
		}
	}

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", models.NewExtractError(models.ErrCodeBrowserCrash, "failed to open page", err)
	}
	defer func() { _ = page.Close() }()

	ctx, cancel := context.WithTimeout(ctx, f.scraperCfg.Timeout)
	defer cancel()
	p := page.Context(ctx)

	_ = proto.NetworkSetExtraHTTPHeaders{
		Headers: toHeadersMap(map[string]string{"Accept-Language": AcceptLanguage}),
	}.Call(p)

	if err := p.Navigate(targetURL); err != nil {
		return "", categorizeNavError(err)
	}

	// Eager readiness: wait (bounded) for <body>, then proceed even if the
	// page is only partially rendered. Extraction degrades gracefully.
	if _, err := p.Timeout(f.browserCfg.ReadyWait).Element("body"); err != nil {
		slog.Debug("body wait timed out, proceeding with partial render",
			"url", targetURL, "error", err)
	}

	html, err := p.HTML()
	if err != nil {
		return "", models.NewExtractError(models.ErrCodeBrowserCrash, "failed to read rendered HTML", err)
	}
	return html, nil
}

// Close tears down the renderer process. Safe to call multiple times and on
// a fetcher that never launched. The next Fetch starts a fresh process.
func (f *BrowserFetcher) Close() {
	if f.browser != nil {
		if err := f.browser.Close(); err != nil {
			slog.Warn("browser close failed", "error", err)
		}
		f.browser = nil
	}
	if f.launcher != nil {
		f.launcher.Cleanup()
		f.launcher = nil
	}
}

// categorizeNavError wraps navigation failures into typed errors so the
// caller can tell a timeout from a renderer crash.
func categorizeNavError(err error) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewExtractError(models.ErrCodeTimeout, "navigation timed out", err)
	case errors.Is(err, context.Canceled):
		return models.NewExtractError(models.ErrCodeTimeout, "navigation canceled", err)
	default:
		return models.NewExtractError(models.ErrCodeFetchFailed, "navigation failed", err)
	}
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
