package capture

import (
	"strings"

	"sitecap/internal/cssval"
)

// StyleBag maps normalized (camelCase) CSS property names to raw
// string values. It is seeded from a baseline default table plus
// per-tag overrides, then overlaid with parsed inline declarations,
// so every property a consumer asks for resolves to either a default
// or an explicitly declared value, never to "missing".
type StyleBag struct {
	props map[string]string
}

// baselineDefaults covers every property downstream consumers read.
// Unknown inline properties extend the bag beyond this table but never
// shrink it.
var baselineDefaults = map[string]string{
	"display":         "inline",
	"visibility":      "visible",
	"backgroundColor": "transparent",
	"backgroundImage": "none",
	"color":           "#000000",
	"border":          "",
	"borderTop":       "",
	"borderRight":     "",
	"borderBottom":    "",
	"borderLeft":      "",
	"borderRadius":    "0px",
	"opacity":         "1",
	"boxShadow":       "none",
	"transform":       "none",
	"fontFamily":      "Arial, sans-serif",
	"fontSize":        "16px",
	"fontWeight":      "400",
	"fontStyle":       "normal",
	"lineHeight":      "normal",
	"letterSpacing":   "normal",
	"textAlign":       "left",
	"textDecoration":  "none",
	"width":           "auto",
	"height":          "auto",
	"paddingTop":      "0px",
	"paddingRight":    "0px",
	"paddingBottom":   "0px",
	"paddingLeft":     "0px",
	"marginTop":       "0px",
	"marginRight":     "0px",
	"marginBottom":    "0px",
	"marginLeft":      "0px",
	"gap":             "0px",
	"flexDirection":   "row",
	"justifyContent":  "flex-start",
	"alignItems":      "stretch",
	"zIndex":          "auto",
	"cursor":          "auto",
}

// blockTags default to display:block; everything else inherits the
// baseline inline display.
var blockTags = map[string]bool{
	"div": true, "p": true, "section": true, "article": true,
	"header": true, "footer": true, "main": true, "nav": true,
	"aside": true, "ul": true, "ol": true, "li": true, "form": true,
	"table": true, "blockquote": true, "pre": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "body": true,
}

// tagDefaults documents browser-default typography per tag, the same
// assumptions the static pipeline makes in place of computed styles.
var tagDefaults = map[string]map[string]string{
	"h1":     {"fontSize": "32px", "fontWeight": "700"},
	"h2":     {"fontSize": "24px", "fontWeight": "700"},
	"h3":     {"fontSize": "20px", "fontWeight": "700"},
	"h4":     {"fontSize": "16px", "fontWeight": "700"},
	"h5":     {"fontSize": "13px", "fontWeight": "700"},
	"h6":     {"fontSize": "11px", "fontWeight": "700"},
	"strong": {"fontWeight": "700"},
	"b":      {"fontWeight": "700"},
	"em":     {"fontStyle": "italic"},
	"i":      {"fontStyle": "italic"},
	"code":   {"fontFamily": "monospace", "fontSize": "14px"},
	"pre":    {"fontFamily": "monospace", "fontSize": "14px"},
	"kbd":    {"fontFamily": "monospace"},
	"samp":   {"fontFamily": "monospace"},
	"a":      {"color": "#0000ee", "textDecoration": "underline", "cursor": "pointer"},
	"small":  {"fontSize": "13px"},
	"button": {"display": "inline-block", "cursor": "pointer", "textAlign": "center"},
	"img":    {"display": "inline-block"},
	"center": {"textAlign": "center"},
}

// NewStyleBag builds the style bag for one element: baseline defaults,
// then tag defaults, then inline declarations, last declaration wins.
func NewStyleBag(tag, inlineStyle string) *StyleBag {
	props := make(map[string]string, len(baselineDefaults)+8)
	for k, v := range baselineDefaults {
		props[k] = v
	}
	if blockTags[tag] {
		props["display"] = "block"
	}
	for k, v := range tagDefaults[tag] {
		props[k] = v
	}
	for k, v := range parseInlineStyle(inlineStyle) {
		props[k] = v
	}
	expandBoxShorthand(props, "padding")
	expandBoxShorthand(props, "margin")
	return &StyleBag{props: props}
}

// expandBoxShorthand distributes a "padding: a b c d" style shorthand
// onto the four per-side properties using the standard 1/2/3/4-value
// rules. Explicit per-side declarations were already applied by the
// inline overlay and are only replaced when the shorthand itself was
// declared, matching last-declaration-wins.
func expandBoxShorthand(props map[string]string, name string) {
	raw, ok := props[name]
	if !ok || strings.TrimSpace(raw) == "" {
		return
	}
	fields := strings.Fields(raw)
	var top, right, bottom, left string
	switch len(fields) {
	case 1:
		top, right, bottom, left = fields[0], fields[0], fields[0], fields[0]
	case 2:
		top, right, bottom, left = fields[0], fields[1], fields[0], fields[1]
	case 3:
		top, right, bottom, left = fields[0], fields[1], fields[2], fields[1]
	default:
		top, right, bottom, left = fields[0], fields[1], fields[2], fields[3]
	}
	props[name+"Top"] = top
	props[name+"Right"] = right
	props[name+"Bottom"] = bottom
	props[name+"Left"] = left
}

// Get returns the resolved value for a camelCase property name. For
// properties outside the baseline table that were never declared it
// returns the empty string.
func (b *StyleBag) Get(prop string) string {
	return b.props[prop]
}

// Declared reports whether the property resolves to something other
// than its baseline default (either a tag default or an inline value).
func (b *StyleBag) Declared(prop string) bool {
	v, ok := b.props[prop]
	if !ok {
		return false
	}
	return v != baselineDefaults[prop]
}

// Len returns the number of resolved properties; used by tests.
func (b *StyleBag) Len() int { return len(b.props) }

// parseInlineStyle splits an inline style attribute into camelCase
// property/value pairs. Malformed declarations are skipped, duplicate
// properties keep the last declaration.
func parseInlineStyle(style string) map[string]string {
	out := map[string]string{}
	for _, decl := range strings.Split(style, ";") {
		idx := strings.Index(decl, ":")
		if idx <= 0 {
			continue
		}
		name := strings.TrimSpace(decl[:idx])
		value := strings.TrimSpace(decl[idx+1:])
		if name == "" || value == "" {
			continue
		}
		out[CamelCase(name)] = value
	}
	return out
}

// CamelCase normalizes a CSS property name ("background-color") to
// its camelCase form ("backgroundColor"). Already-camelCase names pass
// through unchanged.
func CamelCase(prop string) string {
	prop = strings.TrimSpace(prop)
	if !strings.Contains(prop, "-") {
		return prop
	}
	parts := strings.Split(prop, "-")
	var b strings.Builder
	first := true
	for _, p := range parts {
		if p == "" {
			continue
		}
		if first {
			b.WriteString(strings.ToLower(p))
			first = false
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	return b.String()
}

// Border is a decomposed border shorthand.
type Border struct {
	Width float64
	Color string
}

// ParseBorderShorthand decomposes "1px solid #000" positionally: the
// first token supplies the width, the last color-looking token the
// color. Malformed input degrades to width 0 and color #000000.
func ParseBorderShorthand(raw string) Border {
	b := Border{Width: 0, Color: "#000000"}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return b
	}
	b.Width = cssval.ParseLength(fields[0])
	for _, f := range fields {
		if cssval.LooksLikeColor(f) {
			b.Color = f
		}
	}
	return b
}
