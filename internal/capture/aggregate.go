package capture

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"sitecap/internal/cssval"
)

// Color usage kinds.
const (
	UsageText       = "text"
	UsageBackground = "background"
	UsageBorder     = "border"
)

// ColorEntry is one deduplicated color discovered during a capture.
// Deduplication is by exact lowercased string only: "red", "#ff0000"
// and "rgb(255,0,0)" stay distinct entries. That mirrors how browsers
// report author styles and is an accepted limitation.
type ColorEntry struct {
	Value string      `json:"value"`
	Usage []string    `json:"usage,omitempty"`
	Count int         `json:"count"`
	RGB   *cssval.RGB `json:"rgb,omitempty"`
}

// ImageRef is one image resource discovered during a capture.
type ImageRef struct {
	Type   string `json:"type"`
	URL    string `json:"url,omitempty"`
	Markup string `json:"markup,omitempty"`
	Alt    string `json:"alt,omitempty"`
}

// CollectFonts returns the deduplicated fontFamily strings in
// insertion order, as written by page authors (comma stacks intact).
func CollectFonts(records []ElementRecord) []string {
	seen := map[string]bool{}
	var out []string
	for _, rec := range records {
		f := strings.TrimSpace(rec.Typography.FontFamily)
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out
}

// colorCollector accumulates ColorEntry values keyed by exact
// lowercased string, preserving first-seen order.
type colorCollector struct {
	order   []string
	entries map[string]*ColorEntry
}

func newColorCollector() *colorCollector {
	return &colorCollector{entries: map[string]*ColorEntry{}}
}

func (cc *colorCollector) add(raw, usage string) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == "transparent" || raw == "none" || raw == "rgba(0,0,0,0)" || raw == "rgba(0, 0, 0, 0)" {
		return
	}
	e, ok := cc.entries[raw]
	if !ok {
		e = &ColorEntry{Value: raw, RGB: cssval.ParseColor(raw)}
		cc.entries[raw] = e
		cc.order = append(cc.order, raw)
	}
	e.Count++
	if usage != "" && !contains(e.Usage, usage) {
		e.Usage = append(e.Usage, usage)
	}
}

func (cc *colorCollector) list() []ColorEntry {
	out := make([]ColorEntry, 0, len(cc.order))
	for _, k := range cc.order {
		out = append(out, *cc.entries[k])
	}
	return out
}

// CollectColors gathers colors from the element records (text,
// background, and border usages) and additionally scans the raw
// stylesheet/markup text for color-looking strings.
func CollectColors(records []ElementRecord, rawStyleText string) []ColorEntry {
	cc := newColorCollector()
	for _, rec := range records {
		cc.add(rec.Typography.Color, UsageText)
		cc.add(rec.Visual.BackgroundColor, UsageBackground)
		for _, raw := range []string{rec.Visual.Border, rec.Visual.BorderTop, rec.Visual.BorderRight, rec.Visual.BorderBottom, rec.Visual.BorderLeft} {
			if raw == "" {
				continue
			}
			b := ParseBorderShorthand(raw)
			if b.Width > 0 {
				cc.add(b.Color, UsageBorder)
			}
		}
	}
	for _, c := range cssval.ScanColors(rawStyleText) {
		cc.add(c, "")
	}
	return cc.list()
}

// CollectTextStyles deduplicates typography records by the composite
// (fontFamily, fontSize, fontWeight) key, keeping the first-seen full
// record per key.
func CollectTextStyles(records []ElementRecord) []TypographyStyle {
	type key struct{ family, size, weight string }
	seen := map[key]bool{}
	var out []TypographyStyle
	for _, rec := range records {
		if rec.TextContent == "" {
			continue
		}
		k := key{rec.Typography.FontFamily, rec.Typography.FontSize, rec.Typography.FontWeight}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, rec.Typography)
	}
	return out
}

// CollectImages extracts image resources from the parsed document:
// <img> src and srcset, <picture><source> entries, inline SVG
// snippets, and CSS background-image URLs. Relative, root-relative,
// and protocol-relative URLs are resolved against the page URL.
func CollectImages(doc *goquery.Document, pageURL string) []ImageRef {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	seen := map[string]bool{}
	var out []ImageRef

	resolve := func(src string) string {
		src = strings.TrimSpace(src)
		if src == "" || strings.HasPrefix(src, "data:") {
			return ""
		}
		u, err := url.Parse(src)
		if err != nil {
			return ""
		}
		if base != nil && !u.IsAbs() {
			u = base.ResolveReference(u)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return ""
		}
		return u.String()
	}

	addURL := func(typ, src, alt string) {
		resolved := resolve(src)
		if resolved == "" || seen[typ+"|"+resolved] {
			return
		}
		seen[typ+"|"+resolved] = true
		out = append(out, ImageRef{Type: typ, URL: resolved, Alt: alt})
	}

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		alt := sel.AttrOr("alt", "")
		addURL("img", sel.AttrOr("src", ""), alt)
		for _, cand := range srcsetCandidates(sel.AttrOr("srcset", "")) {
			addURL("srcset", cand, alt)
		}
	})

	doc.Find("picture source").Each(func(_ int, sel *goquery.Selection) {
		for _, cand := range srcsetCandidates(sel.AttrOr("srcset", "")) {
			addURL("source", cand, "")
		}
	})

	doc.Find("svg").Each(func(_ int, sel *goquery.Selection) {
		if len(sel.Nodes) == 0 {
			return
		}
		var b strings.Builder
		if err := html.Render(&b, sel.Nodes[0]); err != nil {
			return
		}
		markup := b.String()
		if len(markup) > DefaultHTMLLimit {
			markup = markup[:DefaultHTMLLimit]
		}
		out = append(out, ImageRef{Type: "svg", Markup: markup})
	})

	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style := sel.AttrOr("style", "")
		for _, u := range backgroundImageURLs(style) {
			addURL("background", u, "")
		}
	})
	doc.Find("style").Each(func(_ int, sel *goquery.Selection) {
		for _, u := range backgroundImageURLs(sel.Text()) {
			addURL("background", u, "")
		}
	})

	return out
}

// srcsetCandidates splits a srcset attribute into its URL tokens,
// dropping the density/width descriptors.
func srcsetCandidates(srcset string) []string {
	srcset = strings.TrimSpace(srcset)
	if srcset == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(srcset, ",") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) > 0 {
			out = append(out, fields[0])
		}
	}
	return out
}

// backgroundImageURLs pulls url(...) references out of CSS text.
func backgroundImageURLs(cssText string) []string {
	var out []string
	rest := cssText
	for {
		idx := strings.Index(rest, "url(")
		if idx < 0 {
			return out
		}
		rest = rest[idx+4:]
		end := strings.Index(rest, ")")
		if end < 0 {
			return out
		}
		u := strings.Trim(strings.TrimSpace(rest[:end]), `"'`)
		if u != "" {
			out = append(out, u)
		}
		rest = rest[end+1:]
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
