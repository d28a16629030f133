package figma

import "strings"

// DefaultFont is the fallback design-tool font when no stack entry
// matches the mapping table.
const DefaultFont = "Inter"

// fontMapping translates well-known web font names (and the CSS
// generic families) to fonts available in the design tool. Loaded once
// at startup, never mutated.
var fontMapping = map[string]string{
	"Arial":         "Arial",
	"Helvetica":     "Arial",
	"Times":         "Times New Roman",
	"Georgia":       "Georgia",
	"Verdana":       "Verdana",
	"Courier":       "Courier New",
	"Impact":        "Impact",
	"Comic Sans MS": "Comic Sans MS",
	"Trebuchet MS":  "Trebuchet MS",
	"Arial Black":   "Arial Black",
	"Palatino":      "Palatino",
	"Garamond":      "Garamond",
	"Bookman":       "Bookman",
	"Tahoma":        "Tahoma",
	"sans-serif":    "Inter",
	"serif":         "Times New Roman",
	"monospace":     "Courier New",
	"cursive":       "Comic Sans MS",
	"fantasy":       "Impact",
}

// weightVariants maps numeric font weights to named style variants.
var weightVariants = map[int]string{
	100: "Thin",
	200: "Extra Light",
	300: "Light",
	400: "Regular",
	500: "Medium",
	600: "Semi Bold",
	700: "Bold",
	800: "Extra Bold",
	900: "Black",
}

// MapFontFamily resolves a CSS font-family stack to a design-tool
// font. Candidates are tried in author order, quotes and whitespace
// stripped; the first candidate present in the mapping table wins.
func MapFontFamily(stack string) string {
	for _, cand := range strings.Split(stack, ",") {
		cand = strings.Trim(strings.TrimSpace(cand), `"'`)
		if cand == "" {
			continue
		}
		if mapped, ok := fontMapping[cand]; ok {
			return mapped
		}
	}
	return DefaultFont
}

// MapFonts maps a list of raw font stacks to deduplicated design-tool
// fonts, preserving insertion order.
func MapFonts(stacks []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range stacks {
		mapped := MapFontFamily(s)
		if seen[mapped] {
			continue
		}
		seen[mapped] = true
		out = append(out, mapped)
	}
	return out
}

// FontStyleVariant derives the named style variant from a CSS weight
// and font-style. "700" yields Bold, "400" Regular; italic appends to
// the weight name, with plain italic collapsing to "Italic".
func FontStyleVariant(weight, fontStyle string) string {
	name := "Regular"
	switch strings.TrimSpace(weight) {
	case "", "normal":
		name = "Regular"
	case "bold":
		name = "Bold"
	default:
		w := 0
		for _, r := range weight {
			if r < '0' || r > '9' {
				w = 0
				break
			}
			w = w*10 + int(r-'0')
		}
		if v, ok := weightVariants[w]; ok {
			name = v
		}
	}

	if strings.Contains(strings.ToLower(fontStyle), "italic") {
		if name == "Regular" {
			return "Italic"
		}
		return name + " Italic"
	}
	return name
}
