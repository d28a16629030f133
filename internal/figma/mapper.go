package figma

import (
	"regexp"
	"strings"

	"sitecap/internal/capture"
	"sitecap/internal/cssval"
)

// dotSizeThreshold is the largest width/height (in estimated pixels)
// for an element with border-radius to be treated as a dot shape.
const dotSizeThreshold = 50

// Aggregates carries the cross-cutting collections produced by the
// capture aggregators, consumed read-only by the mapper.
type Aggregates struct {
	Fonts      []string
	Colors     []capture.ColorEntry
	TextStyles []capture.TypographyStyle
	Images     []capture.ImageRef
}

// BuildModel translates the flat element record list plus aggregates
// into the design model. The mapping is total and defensive: a
// malformed style value degrades to its documented default, never to
// an error.
func BuildModel(records []capture.ElementRecord, aggs Aggregates) *DesignModel {
	m := &DesignModel{
		Shapes: Shapes{
			Lines:      []Line{},
			Dots:       []Dot{},
			Rectangles: []Rectangle{},
		},
		TextElements: []TextNode{},
		Images:       aggs.Images,
		Colors:       aggs.Colors,
	}

	interactive := false
	for _, rec := range records {
		if rec.TextContent != "" {
			m.TextElements = append(m.TextElements, mapText(rec))
		}
		if line, ok := detectLine(rec); ok {
			m.Shapes.Lines = append(m.Shapes.Lines, line)
		}
		if dot, ok := detectDot(rec); ok {
			m.Shapes.Dots = append(m.Shapes.Dots, dot)
		}
		if capture.IsContainerTag(rec.Tag) {
			m.Shapes.Rectangles = append(m.Shapes.Rectangles, mapRectangle(rec))
		}
		if capture.IsInteractive(rec.Tag, rec.Attributes.OnClick, rec.CursorStyle) {
			interactive = true
		}

		if rec.Layout.IsFlexContainer {
			m.Layout.FlexContainers++
		}
		if rec.Layout.IsGridContainer {
			m.Layout.GridContainers++
		}
		if rec.Depth > m.Layout.MaxDepth {
			m.Layout.MaxDepth = rec.Depth
		}
	}

	m.Layout.HasFlexLayouts = m.Layout.FlexContainers > 0
	m.Layout.HasGridLayouts = m.Layout.GridContainers > 0

	m.Summary = Summary{
		TotalTextElements:      len(m.TextElements),
		TotalShapes:            len(m.Shapes.Lines) + len(m.Shapes.Dots) + len(m.Shapes.Rectangles),
		TotalImages:            len(m.Images),
		TotalColors:            len(m.Colors),
		UniqueFonts:            len(MapFonts(aggs.Fonts)),
		HasInteractiveElements: interactive,
	}

	return m
}

func mapText(rec capture.ElementRecord) TextNode {
	t := rec.Typography

	node := TextNode{
		ID:         rec.ID,
		Name:       rec.Tag,
		Type:       NodeTypeText,
		Characters: rec.TextContent,
		X:          rec.Position.X,
		Y:          rec.Position.Y,
		Width:      rec.Position.Width,
		Height:     rec.Position.Height,
		FontName: FontName{
			Family: MapFontFamily(t.FontFamily),
			Style:  FontStyleVariant(t.FontWeight, t.FontStyle),
		},
		FontSize:            fontSizeOrDefault(t.FontSize),
		LineHeight:          classifyLineHeight(t.LineHeight),
		LetterSpacing:       letterSpacingPixels(t.LetterSpacing),
		TextAlignHorizontal: mapTextAlign(t.TextAlign),
		TextDecoration:      mapTextDecoration(t.TextDecoration),
	}

	if c := colorFromCSS(t.Color); c != nil {
		node.Fills = []Paint{SolidPaint(c)}
	}

	return node
}

func mapRectangle(rec capture.ElementRecord) Rectangle {
	r := Rectangle{
		ID:           rec.ID,
		Name:         rec.Tag,
		Type:         NodeTypeRectangle,
		X:            rec.Position.X,
		Y:            rec.Position.Y,
		Width:        rec.Position.Width,
		Height:       rec.Position.Height,
		CornerRadius: cssval.ParseLength(rec.Visual.BorderRadius),
		LayoutMode:   LayoutModeNone,
		Opacity:      opacityOrDefault(rec.Visual.Opacity),
		Visible:      rec.Visual.Visibility != "hidden" && rec.Visual.Display != "none",
	}

	if c := colorFromCSS(rec.Visual.BackgroundColor); c != nil {
		r.Fills = []Paint{SolidPaint(c)}
	}

	if border := firstBorder(rec.Visual); border != "" {
		b := capture.ParseBorderShorthand(border)
		if b.Width > 0 {
			r.StrokeWeight = b.Width
			if c := colorFromCSS(b.Color); c != nil {
				r.Strokes = []Paint{SolidPaint(c)}
			} else {
				r.Strokes = []Paint{SolidPaint(&Color{})}
			}
		}
	}

	if effect := parseBoxShadow(rec.Visual.BoxShadow); effect != nil {
		r.Effects = []Effect{*effect}
	}

	if rec.LayoutProps.Display == "flex" {
		switch rec.LayoutProps.FlexDirection {
		case "column", "column-reverse":
			r.LayoutMode = LayoutModeVertical
		default:
			r.LayoutMode = LayoutModeHorizontal
		}
		r.PrimaryAxisAlignItems = mapJustifyContent(rec.LayoutProps.JustifyContent)
		r.CounterAxisAlignItems = mapAlignItems(rec.LayoutProps.AlignItems)
		r.ItemSpacing = cssval.ParseLength(rec.LayoutProps.Gap)
	}

	r.PaddingTop = rec.Spacing.PaddingTop
	r.PaddingRight = rec.Spacing.PaddingRight
	r.PaddingBottom = rec.Spacing.PaddingBottom
	r.PaddingLeft = rec.Spacing.PaddingLeft

	return r
}

// detectLine recognizes <hr> elements and elements that draw a
// top/bottom border as horizontal lines.
func detectLine(rec capture.ElementRecord) (Line, bool) {
	if rec.Tag == "hr" {
		thickness := rec.Position.Height
		if thickness <= 0 {
			thickness = 1
		}
		return Line{
			ID:        rec.ID,
			Name:      rec.Tag,
			X:         rec.Position.X,
			Y:         rec.Position.Y,
			Length:    rec.Position.Width,
			Thickness: thickness,
			Color:     "#000000",
		}, true
	}

	for _, raw := range []string{rec.Visual.BorderTop, rec.Visual.BorderBottom} {
		if raw == "" {
			continue
		}
		b := capture.ParseBorderShorthand(raw)
		if b.Width <= 0 {
			continue
		}
		return Line{
			ID:        rec.ID,
			Name:      rec.Tag,
			X:         rec.Position.X,
			Y:         rec.Position.Y,
			Length:    rec.Position.Width,
			Thickness: b.Width,
			Color:     b.Color,
		}, true
	}

	return Line{}, false
}

// detectDot recognizes small elements with a border radius as dots.
func detectDot(rec capture.ElementRecord) (Dot, bool) {
	radius := cssval.ParseLength(rec.Visual.BorderRadius)
	if radius == 0 {
		return Dot{}, false
	}
	w, h := rec.Position.Width, rec.Position.Height
	if w <= 0 || h <= 0 || w >= dotSizeThreshold || h >= dotSizeThreshold {
		return Dot{}, false
	}
	dot := Dot{
		ID:     rec.ID,
		X:      rec.Position.X,
		Y:      rec.Position.Y,
		Radius: w / 2,
	}
	if c := colorFromCSS(rec.Visual.BackgroundColor); c != nil {
		p := SolidPaint(c)
		dot.Fill = &p
	}
	return dot, true
}

// firstBorder returns the first declared border shorthand, preferring
// the all-sides form over per-side declarations.
func firstBorder(v capture.VisualStyle) string {
	for _, raw := range []string{v.Border, v.BorderTop, v.BorderRight, v.BorderBottom, v.BorderLeft} {
		if strings.TrimSpace(raw) != "" {
			return raw
		}
	}
	return ""
}

func colorFromCSS(raw string) *Color {
	c := cssval.ParseColor(raw)
	if c == nil {
		return nil
	}
	return &Color{R: c.R, G: c.G, B: c.B}
}

func fontSizeOrDefault(raw string) float64 {
	if v := cssval.ParseLength(raw); v > 0 {
		return v
	}
	return 16
}

func opacityOrDefault(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	v := cssval.ParseLength(raw)
	if v < 0 || v > 1 {
		return 1
	}
	return v
}

// classifyLineHeight buckets a raw line-height into AUTO, PIXELS, or
// PERCENT. A bare multiplier ("1.5") becomes a percentage (150%).
func classifyLineHeight(raw string) LineHeight {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "normal" {
		return LineHeight{Unit: LineHeightAuto}
	}
	if strings.HasSuffix(raw, "px") {
		return LineHeight{Value: cssval.ParseLength(raw), Unit: LineHeightPixels}
	}
	if strings.HasSuffix(raw, "%") {
		return LineHeight{Value: cssval.ParseLength(raw), Unit: LineHeightPercent}
	}
	if v := cssval.ParseLength(raw); v > 0 {
		return LineHeight{Value: v * 100, Unit: LineHeightPercent}
	}
	return LineHeight{Unit: LineHeightAuto}
}

func letterSpacingPixels(raw string) float64 {
	if strings.TrimSpace(raw) == "normal" {
		return 0
	}
	return cssval.ParseLength(raw)
}

func mapTextAlign(raw string) string {
	switch strings.TrimSpace(raw) {
	case "center":
		return "CENTER"
	case "right":
		return "RIGHT"
	case "justify":
		return "JUSTIFIED"
	default:
		return "LEFT"
	}
}

// mapTextDecoration checks underline before line-through so values
// carrying both substrings resolve to underline.
func mapTextDecoration(raw string) string {
	raw = strings.ToLower(raw)
	if strings.Contains(raw, "underline") {
		return "UNDERLINE"
	}
	if strings.Contains(raw, "line-through") {
		return "STRIKETHROUGH"
	}
	return "NONE"
}

// justifyContent and alignItems map through fixed tables; unknown
// values fall back to MIN.
func mapJustifyContent(raw string) string {
	switch strings.TrimSpace(raw) {
	case "center":
		return "CENTER"
	case "flex-end", "end":
		return "MAX"
	case "space-between", "space-around", "space-evenly":
		return "SPACE_BETWEEN"
	default:
		return "MIN"
	}
}

func mapAlignItems(raw string) string {
	switch strings.TrimSpace(raw) {
	case "center":
		return "CENTER"
	case "flex-end", "end":
		return "MAX"
	case "baseline":
		return "BASELINE"
	default:
		return "MIN"
	}
}

var shadowColorRe = regexp.MustCompile(`(?:rgba?|hsla?)\([^)]*\)|#[0-9a-fA-F]{3,8}`)

// parseBoxShadow decomposes a box-shadow value positionally: the first
// length tokens are offset-x, offset-y, blur, and spread; the first
// color-looking token supplies the shadow color. Malformed values
// yield no effect rather than an error.
func parseBoxShadow(raw string) *Effect {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "none" {
		return nil
	}

	colorStr := shadowColorRe.FindString(raw)
	rest := raw
	if colorStr != "" {
		rest = strings.Replace(rest, colorStr, " ", 1)
	} else {
		// Named colors (red, rebeccapurple) fall outside the regex.
		for _, tok := range strings.Fields(raw) {
			if tok == "inset" {
				continue
			}
			if cssval.LooksLikeColor(tok) {
				colorStr = tok
				rest = strings.Replace(rest, colorStr, " ", 1)
				break
			}
		}
	}

	var nums []float64
	for _, tok := range strings.Fields(rest) {
		if tok == "inset" {
			continue
		}
		first := tok[0]
		if first != '-' && first != '.' && (first < '0' || first > '9') {
			continue
		}
		nums = append(nums, cssval.ParseLength(tok))
	}
	if len(nums) < 2 {
		return nil
	}

	effect := &Effect{
		Type:   "DROP_SHADOW",
		Offset: Vector{X: nums[0], Y: nums[1]},
	}
	if len(nums) > 2 {
		effect.Radius = nums[2]
	}
	if len(nums) > 3 {
		effect.Spread = nums[3]
	}
	if colorStr != "" {
		effect.ColorValue = strings.ToLower(colorStr)
		effect.Color = colorFromCSS(colorStr)
	}
	return effect
}
