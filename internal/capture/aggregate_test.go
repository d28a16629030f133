package capture

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func textRecord(text, family, size, weight, color string) ElementRecord {
	return ElementRecord{
		TextContent: text,
		Typography: TypographyStyle{
			FontFamily: family,
			FontSize:   size,
			FontWeight: weight,
			Color:      color,
		},
	}
}

func TestCollectFonts(t *testing.T) {
	records := []ElementRecord{
		textRecord("a", "Arial, sans-serif", "16px", "400", "#000"),
		textRecord("b", "Georgia, serif", "16px", "400", "#000"),
		textRecord("c", "Arial, sans-serif", "20px", "700", "#000"),
		textRecord("", "", "", "", ""),
	}
	fonts := CollectFonts(records)
	want := []string{"Arial, sans-serif", "Georgia, serif"}
	if len(fonts) != len(want) {
		t.Fatalf("got %d fonts, want %d: %v", len(fonts), len(want), fonts)
	}
	for i := range want {
		if fonts[i] != want[i] {
			t.Fatalf("font[%d] = %q, want %q", i, fonts[i], want[i])
		}
	}
}

func TestCollectColors(t *testing.T) {
	records := []ElementRecord{
		textRecord("a", "Arial", "16px", "400", "#2563EB"),
		textRecord("b", "Arial", "16px", "400", "#2563eb"),
		{
			Visual: VisualStyle{
				BackgroundColor: "#ffffff",
				Border:          "1px solid #333",
			},
		},
		{
			Visual: VisualStyle{BackgroundColor: "transparent"},
		},
	}
	colors := CollectColors(records, ".hero { color: #abcdef; }")

	byValue := map[string]ColorEntry{}
	for _, c := range colors {
		byValue[c.Value] = c
	}

	blue, ok := byValue["#2563eb"]
	if !ok {
		t.Fatalf("expected #2563eb in %v", colors)
	}
	if blue.Count != 2 {
		t.Fatalf("expected case-insensitive dedup to give count 2, got %d", blue.Count)
	}
	if !contains(blue.Usage, UsageText) {
		t.Fatalf("expected text usage on %+v", blue)
	}
	if blue.RGB == nil || blue.RGB.R != 37.0/255 || blue.RGB.G != 99.0/255 || blue.RGB.B != 235.0/255 {
		t.Fatalf("unexpected rgb for #2563eb: %+v", blue.RGB)
	}

	if bg, ok := byValue["#ffffff"]; !ok || !contains(bg.Usage, UsageBackground) {
		t.Fatalf("expected background usage for #ffffff, got %+v", byValue["#ffffff"])
	}
	if bd, ok := byValue["#333"]; !ok || !contains(bd.Usage, UsageBorder) {
		t.Fatalf("expected border usage for #333, got %+v", byValue["#333"])
	}
	if _, ok := byValue["#abcdef"]; !ok {
		t.Fatal("expected stylesheet scan to contribute #abcdef")
	}
	if _, ok := byValue["transparent"]; ok {
		t.Fatal("transparent must never be collected")
	}
}

func TestCollectTextStyles(t *testing.T) {
	records := []ElementRecord{
		textRecord("one", "Arial", "16px", "400", "#000"),
		textRecord("two", "Arial", "16px", "400", "#111"), // same key, different color
		textRecord("三", "Arial", "20px", "700", "#000"),
		textRecord("", "Georgia", "16px", "400", "#000"), // no text, ignored
	}
	styles := CollectTextStyles(records)
	if len(styles) != 2 {
		t.Fatalf("got %d text styles, want 2: %+v", len(styles), styles)
	}
	if styles[0].Color != "#000" {
		t.Fatalf("expected first-seen record kept, got %+v", styles[0])
	}
}

func TestCollectImages(t *testing.T) {
	page := `<html><head>
		<style>.hero { background-image: url("/assets/hero.png"); }</style>
	</head><body>
		<img src="/logo.png" alt="Logo" srcset="/logo-2x.png 2x, /logo-3x.png 3x">
		<img src="data:image/png;base64,AAAA" alt="inline">
		<img src="/logo.png" alt="dup">
		<picture><source srcset="//cdn.example.com/wide.webp 1200w"></picture>
		<svg viewBox="0 0 10 10"><circle cx="5" cy="5" r="4"/></svg>
		<div style="background-image: url('banner.jpg')"></div>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	images := CollectImages(doc, "https://example.com/blog/post")

	find := func(typ, url string) *ImageRef {
		for i := range images {
			if images[i].Type == typ && images[i].URL == url {
				return &images[i]
			}
		}
		return nil
	}

	img := find("img", "https://example.com/logo.png")
	if img == nil {
		t.Fatalf("missing resolved img in %+v", images)
	}
	if img.Alt != "Logo" {
		t.Fatalf("expected first-seen alt kept, got %q", img.Alt)
	}
	if find("srcset", "https://example.com/logo-2x.png") == nil || find("srcset", "https://example.com/logo-3x.png") == nil {
		t.Fatalf("missing srcset candidates in %+v", images)
	}
	if find("source", "https://cdn.example.com/wide.webp") == nil {
		t.Fatalf("protocol-relative source not resolved in %+v", images)
	}
	if find("background", "https://example.com/assets/hero.png") == nil {
		t.Fatalf("stylesheet background url not collected in %+v", images)
	}
	if find("background", "https://example.com/blog/banner.jpg") == nil {
		t.Fatalf("relative inline background url not resolved in %+v", images)
	}

	var svgCount, imgCount int
	for _, ref := range images {
		switch ref.Type {
		case "svg":
			svgCount++
			if !strings.Contains(ref.Markup, "circle") {
				t.Fatalf("svg markup missing content: %q", ref.Markup)
			}
		case "img":
			imgCount++
		}
	}
	if svgCount != 1 {
		t.Fatalf("got %d svg refs, want 1", svgCount)
	}
	if imgCount != 1 {
		t.Fatalf("data: URI or duplicate img leaked through, got %d img refs", imgCount)
	}
}
