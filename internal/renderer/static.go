package renderer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	robotstxt "github.com/temoto/robotstxt"
)

// DefaultUserAgent imitates a desktop browser so pages that gate on
// user agent serve their normal markup.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// ErrRobotsDisallowed is returned when robots.txt forbids fetching the
// requested path.
var ErrRobotsDisallowed = errors.New("fetch disallowed by robots.txt")

// StaticRenderer fetches the page over plain HTTP. It sees only
// author-written markup and inline styles; scripts never run.
type StaticRenderer struct {
	client        *http.Client
	respectRobots bool
}

func NewStaticRenderer(timeout time.Duration, respectRobots bool) *StaticRenderer {
	return &StaticRenderer{
		client:        &http.Client{Timeout: timeout},
		respectRobots: respectRobots,
	}
}

func (r *StaticRenderer) Render(ctx context.Context, req Request) (*Result, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}

	ua := req.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	if r.respectRobots {
		if robots, err := fetchRobots(ctx, r.client, u, ua); err == nil && robots != nil {
			group := robots.FindGroup(ua)
			if group != nil && !group.Test(u.Path) {
				return nil, ErrRobotsDisallowed
			}
		}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("User-Agent", ua)
	httpReq.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	httpReq.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch %s: status %d", u.String(), resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	htmlStr := string(body)

	res := &Result{
		URL:    u.String(),
		HTML:   htmlStr,
		Status: resp.StatusCode,
		Engine: "static",
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr)); err == nil {
		res.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	return res, nil
}

// fetchRobots fetches and parses robots.txt for the page's origin.
func fetchRobots(ctx context.Context, client *http.Client, base *url.URL, userAgent string) (*robotstxt.RobotsData, error) {
	robotsURL := &url.URL{
		Scheme: base.Scheme,
		Host:   base.Host,
		Path:   "/robots.txt",
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, err
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("non-200 robots.txt")
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return robotstxt.FromBytes(body)
}
