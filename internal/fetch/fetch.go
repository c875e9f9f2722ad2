// Package fetch downloads hazard dataset files before ingestion. WRI
// Aqueduct and OS-C mirrors serve bulk data over both HTTP and anonymous
// FTP, so both schemes are supported behind one Download call.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/jlaffaye/ftp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the download client.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
	RatePerSec float64 // HTTP requests per second
}

// Client downloads files over HTTP(S) or FTP with rate limiting and
// retry on transient HTTP failures.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	opts    Options
}

// New creates a download client with defaults applied.
func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 60 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "hazard-cli/1.0"
	}
	if opts.RatePerSec == 0 {
		opts.RatePerSec = 5
	}
	return &Client{
		http:    &http.Client{Timeout: opts.Timeout},
		limiter: rate.NewLimiter(rate.Limit(opts.RatePerSec), 1),
		opts:    opts,
	}
}

// Download fetches rawURL to the dest file path, dispatching on scheme.
func (c *Client) Download(ctx context.Context, rawURL, dest string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return eris.Wrap(err, "fetch: parse url")
	}
	switch u.Scheme {
	case "http", "https":
		return c.downloadHTTP(ctx, rawURL, dest)
	case "ftp":
		return c.downloadFTP(ctx, u, dest)
	default:
		return eris.Errorf("fetch: unsupported scheme %q", u.Scheme)
	}
}

func (c *Client) downloadHTTP(ctx context.Context, rawURL, dest string) error {
	log := zap.L().With(zap.String("component", "fetch"), zap.String("url", rawURL))

	var lastErr error
	for attempt := 0; attempt <= c.opts.MaxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return eris.Wrap(err, "fetch: rate limit wait")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return eris.Wrap(err, "fetch: build request")
		}
		req.Header.Set("User-Agent", c.opts.UserAgent)

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = err
			log.Warn("fetch: request failed, retrying", zap.Int("attempt", attempt), zap.Error(err))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			lastErr = eris.Errorf("fetch: unexpected status %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return lastErr
			}
			log.Warn("fetch: retryable status", zap.Int("status", resp.StatusCode), zap.Int("attempt", attempt))
			continue
		}

		err = writeFile(dest, resp.Body)
		resp.Body.Close()
		if err != nil {
			return err
		}
		log.Debug("fetch: downloaded", zap.String("dest", dest))
		return nil
	}
	return eris.Wrapf(lastErr, "fetch: download %s after %d attempts", rawURL, c.opts.MaxRetries+1)
}

func (c *Client) downloadFTP(ctx context.Context, u *url.URL, dest string) error {
	host := u.Host
	if _, _, err := net.SplitHostPort(host); err != nil {
		host = net.JoinHostPort(host, "21")
	}
	if u.Path == "" {
		return eris.New("fetch: empty path in ftp url")
	}

	conn, err := ftp.Dial(host, ftp.DialWithTimeout(c.opts.Timeout), ftp.DialWithContext(ctx))
	if err != nil {
		return eris.Wrapf(err, "fetch: ftp dial %s", host)
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Login("anonymous", "anonymous"); err != nil {
		return eris.Wrap(err, "fetch: ftp login")
	}

	resp, err := conn.Retr(u.Path)
	if err != nil {
		return eris.Wrapf(err, "fetch: ftp retrieve %s", u.Path)
	}
	defer resp.Close()

	return writeFile(dest, resp)
}

func writeFile(dest string, r io.Reader) error {
	f, err := os.Create(dest)
	if err != nil {
		return eris.Wrap(err, "fetch: create dest file")
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return eris.Wrap(err, "fetch: write dest file")
	}
	return eris.Wrap(f.Close(), "fetch: close dest file")
}
