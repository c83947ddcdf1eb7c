package fetch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"

	tls "github.com/refraction-networking/utls"
	"golang.org/x/net/html"
	"golang.org/x/net/proxy"

	"github.com/merchstat/scout/config"
	"github.com/merchstat/scout/models"
)

// HTTPFetcher performs plain GET requests with a Chrome TLS fingerprint.
// It is stateless and safe for concurrent use.
type HTTPFetcher struct {
	cfg config.ScraperConfig
}

// NewHTTPFetcher creates an HTTP fetcher from the scraper configuration.
func NewHTTPFetcher(cfg config.ScraperConfig) *HTTPFetcher {
	return &HTTPFetcher{cfg: cfg}
}

// Fetch retrieves the URL, retrying on any transport error (network,
// timeout, non-2xx status) with linearly increasing backoff.
func (f *HTTPFetcher) Fetch(ctx context.Context, targetURL string) (string, error) {
	body, err := retryFetch(ctx, targetURL, f.cfg.MaxRetries, f.cfg.RetryBackoff, func() (string, error) {
		return f.fetchOnce(ctx, targetURL)
	}, nil)
	if err != nil {
		return "", models.NewExtractError(models.ErrCodeFetchFailed, "all fetch attempts failed", err)
	}
	return body, nil
}

func (f *HTTPFetcher) fetchOnce(ctx context.Context, targetURL string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	transport := &http.Transport{
		DialTLSContext: f.dialTLSChrome,
	}
	if proxyURL := f.socksProxyURL(); proxyURL != nil {
		// SOCKS targets are dialed through the negotiated proxy stream for
		// both plain-http requests and the utls path below.
		if dialer, err := socksDialer(proxyURL); err == nil {
			transport.DialContext = dialer.DialContext
		}
	} else if f.cfg.ProxyURL != "" {
		if proxyURL, err := url.Parse(f.cfg.ProxyURL); err == nil && (proxyURL.Scheme == "http" || proxyURL.Scheme == "https") {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	client := &http.Client{Transport: transport}
	defer client.CloseIdleConnections()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return "", fmt.Errorf("httpfetch: build request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", AcceptLanguage)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("httpfetch: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("httpfetch: HTTP %d for %s", resp.StatusCode, targetURL)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024)) // 10 MB cap
	if err != nil {
		return "", fmt.Errorf("httpfetch: read body: %w", err)
	}

	slog.Debug("page fetched over http",
		"url", targetURL,
		"status", resp.StatusCode,
		"bytes", len(body),
		"title", extractTitle(body),
	)
	return string(body), nil
}

// dialTLSChrome establishes a TLS connection with a Chrome ClientHello via
// utls. Certificate verification follows the VerifySSL config flag. With a
// SOCKS proxy configured, the proxy handshake completes before any TLS
// bytes are sent.
func (f *HTTPFetcher) dialTLSChrome(ctx context.Context, network, addr string) (net.Conn, error) {
	rawConn, err := f.dialRaw(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	host, _, _ := net.SplitHostPort(addr)
	tlsConn := tls.UClient(rawConn, &tls.Config{
		ServerName:         host,
		InsecureSkipVerify: !f.cfg.VerifySSL,
	}, tls.HelloChrome_Auto)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		rawConn.Close()
		return nil, err
	}
	return tlsConn, nil
}

// dialRaw opens the underlying TCP stream to addr, negotiating through the
// SOCKS proxy when one is configured.
func (f *HTTPFetcher) dialRaw(ctx context.Context, network, addr string) (net.Conn, error) {
	if proxyURL := f.socksProxyURL(); proxyURL != nil {
		dialer, err := socksDialer(proxyURL)
		if err != nil {
			return nil, err
		}
		return dialer.DialContext(ctx, network, addr)
	}
	return (&net.Dialer{}).DialContext(ctx, network, addr)
}

// socksProxyURL returns the configured proxy URL when it uses a SOCKS
// scheme, nil otherwise.
func (f *HTTPFetcher) socksProxyURL() *url.URL {
	if f.cfg.ProxyURL == "" {
		return nil
	}
	proxyURL, err := url.Parse(f.cfg.ProxyURL)
	if err != nil || (proxyURL.Scheme != "socks5" && proxyURL.Scheme != "socks5h") {
		return nil
	}
	return proxyURL
}

// socksDialer builds a SOCKS5 dialer for the proxy, carrying any userinfo
// credentials from the URL.
func socksDialer(proxyURL *url.URL) (proxy.ContextDialer, error) {
	var auth *proxy.Auth
	if u := proxyURL.User; u != nil {
		password, _ := u.Password()
		auth = &proxy.Auth{User: u.Username(), Password: password}
	}
	dialer, err := proxy.SOCKS5("tcp", proxyURL.Host, auth, &net.Dialer{})
	if err != nil {
		return nil, fmt.Errorf("socks5 proxy: %w", err)
	}
	return dialer.(proxy.ContextDialer), nil
}

// extractTitle extracts the <title> content from raw HTML bytes. Used for
// debug logging only.
func extractTitle(body []byte) string {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return ""
		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			if string(tn) == "title" {
				if tokenizer.Next() == html.TextToken {
					return strings.TrimSpace(string(tokenizer.Text()))
				}
				return ""
			}
		}
	}
}
