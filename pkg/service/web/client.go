package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/notework-lab/notework/pkg/utils/safe"
)

// maxBodySize caps how much of a page is read (pages beyond this are truncated)
const maxBodySize = 2 << 20 // 2 MiB

// Client fetches web pages and reduces them to analyzable text
type Client struct {
	http *http.Client
}

// New creates a web client with the standard timeouts
func New() *Client {
	return &Client{
		http: &http.Client{
			Timeout: 60 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 15 * time.Second,
				}).DialContext,
			},
		},
	}
}

// Resolve fetches the URL and returns its visible text. HTML is stripped
// to plain text; other content types are returned as-is.
func (c *Client) Resolve(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", goerr.Wrap(err, "invalid URL", goerr.V("url", url))
	}
	req.Header.Set("User-Agent", "notework/1.0")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to fetch page", goerr.V("url", url))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("unexpected response status",
			goerr.V("url", url),
			goerr.V("status", resp.StatusCode),
		)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read response body", goerr.V("url", url))
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(contentType, "text/html") {
		return StripHTML(string(body)), nil
	}

	return string(body), nil
}

var (
	scriptPattern  = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	blockPattern   = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|br|section|article)>|<br\s*/?>`)
	tagPattern     = regexp.MustCompile(`(?s)<[^>]+>`)
	spacePattern   = regexp.MustCompile(`[ \t]+`)
	linePattern    = regexp.MustCompile(`\n{3,}`)
)

// StripHTML reduces an HTML document to whitespace-normalized visible text
func StripHTML(html string) string {
	text := scriptPattern.ReplaceAllString(html, " ")
	text = commentPattern.ReplaceAllString(text, " ")
	text = blockPattern.ReplaceAllString(text, "\n")
	text = tagPattern.ReplaceAllString(text, " ")
	text = unescapeEntities(text)
	text = spacePattern.ReplaceAllString(text, " ")

	// Trim each line and collapse runs of blank lines
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	text = strings.Join(lines, "\n")
	text = linePattern.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}

var entityReplacer = strings.NewReplacer(
	"&nbsp;", " ",
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

func unescapeEntities(s string) string {
	return entityReplacer.Replace(s)
}
