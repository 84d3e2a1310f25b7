// Package citation reads bibliographic metadata from article pages.
package citation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 2 << 20
	userAgent      = "medialit-citation/1.0"
)

var ErrInvalidURL = errors.New("url must be an absolute http(s) url")

// Meta is what could be read from a page. Fields the page does not declare stay empty.
type Meta struct {
	Title     string
	Author    string
	Published string
	Site      string
	URL       string
}

// Fetcher downloads a page and extracts its citation metadata.
type Fetcher struct {
	httpClient *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Fetch retrieves rawURL and parses it. Network failures and non-2xx answers are errors.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Meta, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrInvalidURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("failed to fetch %s: status %d", u.Host, resp.StatusCode)
	}

	meta, err := Parse(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	// the final URL after redirects is a better default than the one asked for
	final := resp.Request.URL
	if meta.URL == "" {
		meta.URL = final.String()
	}
	if meta.Site == "" {
		meta.Site = strings.TrimPrefix(final.Hostname(), "www.")
	}
	return meta, nil
}

// Parse extracts metadata from an HTML document. OpenGraph properties win over plain meta
// tags, which win over the <title> element.
func Parse(r io.Reader) (*Meta, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}

	tags := map[string]string{}
	var title, canonical string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				key := strings.ToLower(attr(n, "property"))
				if key == "" {
					key = strings.ToLower(attr(n, "name"))
				}
				if key == "" {
					key = strings.ToLower(attr(n, "itemprop"))
				}
				if v := strings.TrimSpace(attr(n, "content")); key != "" && v != "" {
					if _, seen := tags[key]; !seen {
						tags[key] = v
					}
				}
			case "link":
				if strings.EqualFold(attr(n, "rel"), "canonical") && canonical == "" {
					canonical = strings.TrimSpace(attr(n, "href"))
				}
			case "title":
				if title == "" && n.FirstChild != nil {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return &Meta{
		Title:     first(tags["og:title"], tags["twitter:title"], title),
		Author:    first(tags["author"], tags["article:author"], tags["byl"], tags["parsely-author"]),
		Published: first(tags["article:published_time"], tags["datepublished"], tags["pubdate"], tags["date"]),
		Site:      first(tags["og:site_name"], tags["application-name"]),
		URL:       first(canonical, tags["og:url"]),
	}, nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

func first(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
