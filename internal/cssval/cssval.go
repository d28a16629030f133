// Package cssval parses raw CSS-like string values ("16px",
// "rgba(10, 20, 30, 0.4)", "#2563eb") into numeric and structured
// values. All functions are pure and never fail: unparseable input
// degrades to a zero value or nil.
package cssval

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe = regexp.MustCompile(`-?\d*\.?\d+`)
	rgbRe    = regexp.MustCompile(`^rgba?\((\d+),\s*(\d+),\s*(\d+)(?:,\s*([\d.]+))?\)`)
	hexRe    = regexp.MustCompile(`^#([0-9a-fA-F]{6})`)

	// Permissive patterns used when scanning stylesheet and markup text
	// for color-looking strings. These intentionally accept more than
	// ParseColor does (3-digit hex, hsl, named colors); the aggregator
	// keeps the raw strings, it does not resolve them.
	scanHexRe  = regexp.MustCompile(`#(?:[0-9a-fA-F]{6}|[0-9a-fA-F]{3})\b`)
	scanFuncRe = regexp.MustCompile(`(?:rgba?|hsla?)\([^)]*\)`)
)

// RGB is a parsed color with channels normalized to [0, 1].
type RGB struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// ParseLength extracts the first signed or unsigned decimal number
// found in a CSS value string. Empty input, "auto", "none", or a
// string without digits all return 0.
func ParseLength(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "auto" || raw == "none" {
		return 0
	}
	m := numberRe.FindString(raw)
	if m == "" {
		return 0
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseColor parses rgb()/rgba() with integer channels and 6-digit hex
// colors. Fully transparent values ("transparent", "rgba(0,0,0,0)")
// and anything else it does not recognize return nil. The alpha
// channel of rgba() is ignored.
func ParseColor(raw string) *RGB {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "transparent") {
		return nil
	}

	if m := rgbRe.FindStringSubmatch(raw); m != nil {
		r, _ := strconv.Atoi(m[1])
		g, _ := strconv.Atoi(m[2])
		b, _ := strconv.Atoi(m[3])
		if r == 0 && g == 0 && b == 0 && m[4] == "0" {
			return nil
		}
		return &RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	}

	if m := hexRe.FindStringSubmatch(raw); m != nil {
		r, _ := strconv.ParseInt(m[1][0:2], 16, 32)
		g, _ := strconv.ParseInt(m[1][2:4], 16, 32)
		b, _ := strconv.ParseInt(m[1][4:6], 16, 32)
		return &RGB{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	}

	return nil
}

// namedColors are the CSS keyword colors the scanner recognizes. The
// list covers the common keywords; it is deliberately not the full
// CSS4 set.
var namedColors = []string{
	"black", "white", "red", "green", "blue", "yellow", "orange",
	"purple", "pink", "gray", "grey", "brown", "cyan", "magenta",
	"silver", "gold", "navy", "teal", "maroon", "olive",
}

// ScanColors finds color-looking substrings (hex, rgb/rgba, hsl/hsla,
// common named colors) in arbitrary stylesheet or markup text. Matches
// are lowercased but otherwise kept verbatim; distinct spellings of
// the same visual color stay distinct.
func ScanColors(text string) []string {
	var out []string
	for _, m := range scanHexRe.FindAllString(text, -1) {
		out = append(out, strings.ToLower(m))
	}
	for _, m := range scanFuncRe.FindAllString(text, -1) {
		out = append(out, strings.ToLower(m))
	}
	lower := strings.ToLower(text)
	for _, name := range namedColors {
		re := regexp.MustCompile(`\b` + name + `\b`)
		if re.MatchString(lower) {
			out = append(out, name)
		}
	}
	return out
}

// LooksLikeColor reports whether a single token reads as a color
// value. Border and box-shadow shorthand parsing use it to find the
// color component positionally.
func LooksLikeColor(token string) bool {
	token = strings.ToLower(strings.TrimSpace(token))
	if token == "" {
		return false
	}
	if strings.HasPrefix(token, "#") ||
		strings.HasPrefix(token, "rgb(") || strings.HasPrefix(token, "rgba(") ||
		strings.HasPrefix(token, "hsl(") || strings.HasPrefix(token, "hsla(") {
		return true
	}
	if token == "transparent" || token == "currentcolor" {
		return true
	}
	for _, name := range namedColors {
		if token == name {
			return true
		}
	}
	return false
}
