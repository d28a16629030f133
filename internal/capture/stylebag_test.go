package capture

import "testing"

func TestStyleBagDefaultsAndOverrides(t *testing.T) {
	bag := NewStyleBag("h1", "color: #2563eb; font-size: 40px")

	if got := bag.Get("fontSize"); got != "40px" {
		t.Fatalf("expected inline font-size to win, got %q", got)
	}
	if got := bag.Get("fontWeight"); got != "700" {
		t.Fatalf("expected h1 default weight 700, got %q", got)
	}
	if got := bag.Get("color"); got != "#2563eb" {
		t.Fatalf("expected inline color, got %q", got)
	}
	if got := bag.Get("backgroundColor"); got != "transparent" {
		t.Fatalf("expected baseline default background, got %q", got)
	}
}

func TestStyleBagNeverMissing(t *testing.T) {
	bag := NewStyleBag("span", "")
	for _, prop := range []string{"display", "color", "fontSize", "fontFamily", "opacity", "boxShadow", "textAlign", "lineHeight"} {
		if bag.Get(prop) == "" {
			t.Fatalf("property %q resolved to empty, want a default", prop)
		}
	}
}

func TestStyleBagUnknownPropertyPreserved(t *testing.T) {
	bag := NewStyleBag("div", "mix-blend-mode: multiply")
	if got := bag.Get("mixBlendMode"); got != "multiply" {
		t.Fatalf("expected unknown property preserved under camelCase key, got %q", got)
	}
}

func TestStyleBagLastDeclarationWins(t *testing.T) {
	bag := NewStyleBag("div", "color: red; color: blue")
	if got := bag.Get("color"); got != "blue" {
		t.Fatalf("expected last declaration to win, got %q", got)
	}
}

func TestStyleBagPaddingShorthand(t *testing.T) {
	bag := NewStyleBag("div", "padding: 10px 20px")
	if bag.Get("paddingTop") != "10px" || bag.Get("paddingBottom") != "10px" {
		t.Fatalf("unexpected vertical padding: %q/%q", bag.Get("paddingTop"), bag.Get("paddingBottom"))
	}
	if bag.Get("paddingLeft") != "20px" || bag.Get("paddingRight") != "20px" {
		t.Fatalf("unexpected horizontal padding: %q/%q", bag.Get("paddingLeft"), bag.Get("paddingRight"))
	}
}

func TestCamelCase(t *testing.T) {
	cases := map[string]string{
		"background-color": "backgroundColor",
		"border-top-width": "borderTopWidth",
		"color":            "color",
		"fontSize":         "fontSize",
		"-webkit-box":      "webkitBox",
	}
	for in, want := range cases {
		if got := CamelCase(in); got != want {
			t.Fatalf("CamelCase(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestParseBorderShorthand(t *testing.T) {
	b := ParseBorderShorthand("1px solid #000")
	if b.Width != 1 || b.Color != "#000" {
		t.Fatalf("unexpected border: %+v", b)
	}

	b = ParseBorderShorthand("2px solid #333")
	if b.Width != 2 || b.Color != "#333" {
		t.Fatalf("unexpected border: %+v", b)
	}

	b = ParseBorderShorthand("thick dashed")
	if b.Width != 0 || b.Color != "#000000" {
		t.Fatalf("malformed shorthand should degrade to zero width and #000000, got %+v", b)
	}

	b = ParseBorderShorthand("")
	if b.Width != 0 || b.Color != "#000000" {
		t.Fatalf("empty shorthand should degrade, got %+v", b)
	}
}
