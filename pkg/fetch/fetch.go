package fetch

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	DefaultTimeout = 60 * time.Second

	// errBodyLimit bounds how much of a failed response ends up in the error.
	errBodyLimit = 256
)

type Client struct {
	Cli *http.Client
}

type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d: %s", e.URL, e.StatusCode, e.Body)
}

// New returns a client whose requests give up after timeout.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tr := &http.Transport{
		Proxy:              http.ProxyFromEnvironment,
		IdleConnTimeout:    timeout,
		DisableCompression: true,
	}

	return &Client{
		Cli: &http.Client{
			Transport: tr,
			Timeout:   timeout,
		},
	}
}

// Open returns the content of src, which may be an http(s) URL, a local
// path or "-" for stdin. Sources ending in .gz are decompressed.
func (c *Client) Open(ctx context.Context, src string) (io.ReadCloser, error) {
	var (
		rc  io.ReadCloser
		err error
	)

	switch {
	case src == "-":
		rc = io.NopCloser(os.Stdin)
	case IsURL(src):
		rc, err = c.get(ctx, src)
	default:
		rc, err = os.Open(src)
	}
	if err != nil {
		return nil, err
	}

	if !strings.HasSuffix(strings.ToLower(src), ".gz") {
		return rc, nil
	}

	gz, err := gzip.NewReader(rc)
	if err != nil {
		rc.Close()
		return nil, fmt.Errorf("decompress %s: %w", src, err)
	}

	return &gzipBody{Reader: gz, body: rc}, nil
}

func (c *Client) get(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	log.Debugf("Requesting %s", url)

	res, err := c.Cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	if res.StatusCode != http.StatusOK {
		defer res.Body.Close()

		body, _ := io.ReadAll(io.LimitReader(res.Body, errBodyLimit))
		return nil, &StatusError{
			URL:        url,
			StatusCode: res.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	return res.Body, nil
}

func IsURL(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

type gzipBody struct {
	*gzip.Reader
	body io.Closer
}

func (g *gzipBody) Close() error {
	g.Reader.Close()
	return g.body.Close()
}
