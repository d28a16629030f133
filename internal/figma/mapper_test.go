package figma

import (
	"testing"

	"sitecap/internal/capture"
)

func TestBuildModelTextElement(t *testing.T) {
	records := []capture.ElementRecord{
		{
			ID:          "h1_1_0",
			Tag:         "h1",
			Depth:       1,
			TextContent: "Hello",
			Position:    capture.Position{X: 20, Y: 0, Width: 40, Height: 25},
			Typography: capture.TypographyStyle{
				FontFamily:    "Arial, sans-serif",
				FontSize:      "32px",
				FontWeight:    "700",
				LineHeight:    "1.5",
				LetterSpacing: "normal",
				TextAlign:     "center",
				Color:         "#2563eb",
			},
			Role: capture.RoleText,
		},
	}
	m := BuildModel(records, Aggregates{Fonts: []string{"Arial, sans-serif"}})

	if len(m.TextElements) != 1 {
		t.Fatalf("got %d text elements, want 1", len(m.TextElements))
	}
	node := m.TextElements[0]
	if node.Type != NodeTypeText || node.Characters != "Hello" {
		t.Fatalf("unexpected node: %+v", node)
	}
	if node.FontName.Family != "Arial" || node.FontName.Style != "Bold" {
		t.Fatalf("unexpected font name: %+v", node.FontName)
	}
	if node.FontSize != 32 {
		t.Fatalf("fontSize = %v, want 32", node.FontSize)
	}
	if node.LineHeight.Unit != LineHeightPercent || node.LineHeight.Value != 150 {
		t.Fatalf("unexpected line height: %+v", node.LineHeight)
	}
	if node.LetterSpacing != 0 {
		t.Fatalf("letterSpacing = %v, want 0 for normal", node.LetterSpacing)
	}
	if node.TextAlignHorizontal != "CENTER" {
		t.Fatalf("textAlign = %q, want CENTER", node.TextAlignHorizontal)
	}
	if len(node.Fills) != 1 || node.Fills[0].Type != "SOLID" {
		t.Fatalf("unexpected fills: %+v", node.Fills)
	}
	c := node.Fills[0].Color
	if c == nil || c.R != 37.0/255 || c.G != 99.0/255 || c.B != 235.0/255 {
		t.Fatalf("unexpected fill color: %+v", c)
	}
	if m.Summary.TotalTextElements != 1 || m.Summary.UniqueFonts != 1 {
		t.Fatalf("unexpected summary: %+v", m.Summary)
	}
}

func TestBuildModelRectangleWithAutoLayout(t *testing.T) {
	records := []capture.ElementRecord{
		{
			ID:       "div_1_0",
			Tag:      "div",
			Depth:    1,
			Position: capture.Position{Width: 190, Height: 50},
			Visual: capture.VisualStyle{
				BackgroundColor: "#ffffff",
				Border:          "1px solid #cccccc",
				BorderRadius:    "8px",
				BoxShadow:       "0px 2px 4px rgba(0,0,0,0.25)",
				Opacity:         "0.9",
				Display:         "flex",
				Visibility:      "visible",
			},
			LayoutProps: capture.LayoutStyle{
				Display:        "flex",
				FlexDirection:  "column",
				JustifyContent: "space-between",
				AlignItems:     "center",
				Gap:            "12px",
			},
			Spacing: capture.Spacing{PaddingTop: 10, PaddingRight: 10, PaddingBottom: 10, PaddingLeft: 10},
			Layout:  capture.LayoutFlags{IsFlexContainer: true},
			Role:    capture.RoleContainer,
		},
	}
	m := BuildModel(records, Aggregates{})

	if len(m.Shapes.Rectangles) != 1 {
		t.Fatalf("got %d rectangles, want 1", len(m.Shapes.Rectangles))
	}
	r := m.Shapes.Rectangles[0]
	if r.CornerRadius != 8 {
		t.Fatalf("cornerRadius = %v, want 8", r.CornerRadius)
	}
	if r.Opacity != 0.9 || !r.Visible {
		t.Fatalf("opacity/visible = %v/%v", r.Opacity, r.Visible)
	}
	if r.LayoutMode != LayoutModeVertical {
		t.Fatalf("layoutMode = %q, want VERTICAL", r.LayoutMode)
	}
	if r.PrimaryAxisAlignItems != "SPACE_BETWEEN" || r.CounterAxisAlignItems != "CENTER" {
		t.Fatalf("axis alignment = %q/%q", r.PrimaryAxisAlignItems, r.CounterAxisAlignItems)
	}
	if r.ItemSpacing != 12 {
		t.Fatalf("itemSpacing = %v, want 12", r.ItemSpacing)
	}
	if r.PaddingTop != 10 || r.PaddingLeft != 10 {
		t.Fatalf("paddings = %v/%v, want 10/10", r.PaddingTop, r.PaddingLeft)
	}
	if r.StrokeWeight != 1 || len(r.Strokes) != 1 {
		t.Fatalf("strokes = %v weight %v", r.Strokes, r.StrokeWeight)
	}
	if len(r.Effects) != 1 {
		t.Fatalf("effects = %+v, want one drop shadow", r.Effects)
	}
	e := r.Effects[0]
	if e.Type != "DROP_SHADOW" || e.Offset.X != 0 || e.Offset.Y != 2 || e.Radius != 4 {
		t.Fatalf("unexpected effect: %+v", e)
	}
	if m.Layout.FlexContainers != 1 || !m.Layout.HasFlexLayouts {
		t.Fatalf("unexpected layout summary: %+v", m.Layout)
	}
}

func TestDetectLine(t *testing.T) {
	hr := capture.ElementRecord{
		ID:       "hr_2_3",
		Tag:      "hr",
		Position: capture.Position{X: 40, Y: 90, Width: 190},
	}
	line, ok := detectLine(hr)
	if !ok {
		t.Fatal("hr should yield a line")
	}
	if line.Thickness != 1 || line.Color != "#000000" || line.Length != 190 {
		t.Fatalf("unexpected hr line: %+v", line)
	}

	bordered := capture.ElementRecord{
		ID:       "div_1_4",
		Tag:      "div",
		Position: capture.Position{Width: 300},
		Visual:   capture.VisualStyle{BorderTop: "2px solid #333"},
	}
	line, ok = detectLine(bordered)
	if !ok {
		t.Fatal("border-top element should yield a line")
	}
	if line.Thickness != 2 || line.Color != "#333" {
		t.Fatalf("unexpected border line: %+v", line)
	}

	plain := capture.ElementRecord{Tag: "div"}
	if _, ok := detectLine(plain); ok {
		t.Fatal("plain div should not yield a line")
	}
}

func TestDetectDot(t *testing.T) {
	dotRec := capture.ElementRecord{
		ID:       "span_3_7",
		Tag:      "span",
		Position: capture.Position{X: 5, Y: 5, Width: 12, Height: 12},
		Visual:   capture.VisualStyle{BorderRadius: "50%", BackgroundColor: "#ff0000"},
	}
	dot, ok := detectDot(dotRec)
	if !ok {
		t.Fatal("small rounded element should yield a dot")
	}
	if dot.Radius != 6 {
		t.Fatalf("radius = %v, want 6", dot.Radius)
	}
	if dot.Fill == nil || dot.Fill.Color == nil || dot.Fill.Color.R != 1 {
		t.Fatalf("unexpected fill: %+v", dot.Fill)
	}

	big := dotRec
	big.Position.Width, big.Position.Height = 80, 80
	if _, ok := detectDot(big); ok {
		t.Fatal("elements at or above the size threshold are not dots")
	}

	square := dotRec
	square.Visual.BorderRadius = "0"
	if _, ok := detectDot(square); ok {
		t.Fatal("zero border radius should not yield a dot")
	}
}

func TestParseBoxShadowMalformed(t *testing.T) {
	for _, raw := range []string{"", "none", "garbage", "red"} {
		if got := parseBoxShadow(raw); got != nil {
			t.Fatalf("parseBoxShadow(%q) = %+v, want nil", raw, got)
		}
	}

	e := parseBoxShadow("inset 1px 2px 3px 4px #00000040")
	if e == nil {
		t.Fatal("valid shadow should parse")
	}
	if e.Offset.X != 1 || e.Offset.Y != 2 || e.Radius != 3 || e.Spread != 4 {
		t.Fatalf("unexpected shadow: %+v", e)
	}
}

func TestParseBoxShadowNamedColor(t *testing.T) {
	e := parseBoxShadow("1px 1px red")
	if e == nil {
		t.Fatal("named-color shadow should parse")
	}
	if e.Offset.X != 1 || e.Offset.Y != 1 {
		t.Fatalf("unexpected offset: %+v", e.Offset)
	}
	if e.ColorValue != "red" {
		t.Fatalf("colorValue = %q, want %q", e.ColorValue, "red")
	}
}

func TestOpacityOrDefault(t *testing.T) {
	cases := map[string]float64{
		"":     1,
		"1":    1,
		"0.5":  0.5,
		"0":    0,
		"2":    1,
		"-0.3": 1,
	}
	for in, want := range cases {
		if got := opacityOrDefault(in); got != want {
			t.Fatalf("opacityOrDefault(%q) = %v, want %v", in, got, want)
		}
	}
}
