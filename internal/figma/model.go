// Package figma maps captured element records to the design model a
// design tool reconstructs from: text nodes, rectangles with
// auto-layout hints, heuristic line/dot shapes, and the aggregated
// color and image inventories.
package figma

import "sitecap/internal/capture"

// Node type names used in the design model.
const (
	NodeTypeText      = "TEXT"
	NodeTypeFrame     = "FRAME"
	NodeTypeRectangle = "RECTANGLE"
)

// Layout modes for auto-layout containers.
const (
	LayoutModeNone       = "NONE"
	LayoutModeHorizontal = "HORIZONTAL"
	LayoutModeVertical   = "VERTICAL"
)

// Line-height units.
const (
	LineHeightAuto    = "AUTO"
	LineHeightPixels  = "PIXELS"
	LineHeightPercent = "PERCENT"
)

// Color is an RGB color with channels in [0, 1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Vector is a 2D offset.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Paint is a solid fill or stroke.
type Paint struct {
	Type  string `json:"type"`
	Color *Color `json:"color,omitempty"`
}

// SolidPaint builds a SOLID paint from a parsed color.
func SolidPaint(c *Color) Paint {
	return Paint{Type: "SOLID", Color: c}
}

// Effect is a drop-shadow effect parsed from a box-shadow value.
type Effect struct {
	Type       string `json:"type"`
	Offset     Vector `json:"offset"`
	Radius     float64 `json:"radius"`
	Spread     float64 `json:"spread,omitempty"`
	Color      *Color `json:"color,omitempty"`
	ColorValue string `json:"colorValue,omitempty"`
}

// FontName is a resolved design-tool font family plus style variant.
type FontName struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// LineHeight is a classified line-height value.
type LineHeight struct {
	Value float64 `json:"value,omitempty"`
	Unit  string  `json:"unit"`
}

// TextNode is one mapped text element.
type TextNode struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Type                string     `json:"type"`
	Characters          string     `json:"characters"`
	X                   float64    `json:"x"`
	Y                   float64    `json:"y"`
	Width               float64    `json:"width"`
	Height              float64    `json:"height"`
	FontName            FontName   `json:"fontName"`
	FontSize            float64    `json:"fontSize"`
	Fills               []Paint    `json:"fills,omitempty"`
	LineHeight          LineHeight `json:"lineHeight"`
	LetterSpacing       float64    `json:"letterSpacing"`
	TextAlignHorizontal string     `json:"textAlignHorizontal"`
	TextDecoration      string     `json:"textDecoration"`
}

// Rectangle is one mapped container/shape element, carrying the
// auto-layout intent needed to reconstruct it as a layout container.
type Rectangle struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Type                  string   `json:"type"`
	X                     float64  `json:"x"`
	Y                     float64  `json:"y"`
	Width                 float64  `json:"width"`
	Height                float64  `json:"height"`
	Fills                 []Paint  `json:"fills,omitempty"`
	Strokes               []Paint  `json:"strokes,omitempty"`
	StrokeWeight          float64  `json:"strokeWeight,omitempty"`
	CornerRadius          float64  `json:"cornerRadius,omitempty"`
	Effects               []Effect `json:"effects,omitempty"`
	LayoutMode            string   `json:"layoutMode"`
	PrimaryAxisAlignItems string   `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems string   `json:"counterAxisAlignItems,omitempty"`
	ItemSpacing           float64  `json:"itemSpacing,omitempty"`
	PaddingTop            float64  `json:"paddingTop,omitempty"`
	PaddingRight          float64  `json:"paddingRight,omitempty"`
	PaddingBottom         float64  `json:"paddingBottom,omitempty"`
	PaddingLeft           float64  `json:"paddingLeft,omitempty"`
	Opacity               float64  `json:"opacity"`
	Visible               bool     `json:"visible"`
}

// Line is a heuristic horizontal-rule shape.
type Line struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Length    float64 `json:"length"`
	Thickness float64 `json:"thickness"`
	Color     string  `json:"color"`
}

// Dot is a small rounded shape detected from border-radius on a
// small-footprint element.
type Dot struct {
	ID     string  `json:"id"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Fill   *Paint  `json:"fill,omitempty"`
}

// Shapes groups the non-text primitives.
type Shapes struct {
	Lines      []Line      `json:"lines"`
	Dots       []Dot       `json:"dots"`
	Rectangles []Rectangle `json:"rectangles"`
}

// LayoutSummary describes the layout systems observed on the page.
type LayoutSummary struct {
	HasFlexLayouts bool `json:"hasFlexLayouts"`
	HasGridLayouts bool `json:"hasGridLayouts"`
	FlexContainers int  `json:"flexContainers"`
	GridContainers int  `json:"gridContainers"`
	MaxDepth       int  `json:"maxDepth"`
}

// Summary carries derived counts for the capture.
type Summary struct {
	TotalTextElements      int  `json:"totalTextElements"`
	TotalShapes            int  `json:"totalShapes"`
	TotalImages            int  `json:"totalImages"`
	TotalColors            int  `json:"totalColors"`
	UniqueFonts            int  `json:"uniqueFonts"`
	HasInteractiveElements bool `json:"hasInteractiveElements"`
}

// DesignModel is the structured output describing the page's design
// primitives. It is produced once per (url, viewport) pair and never
// mutated afterwards.
type DesignModel struct {
	TextElements []TextNode           `json:"textElements"`
	Shapes       Shapes               `json:"shapes"`
	Images       []capture.ImageRef   `json:"images"`
	Colors       []capture.ColorEntry `json:"colors"`
	Layout       LayoutSummary        `json:"layout"`
	Summary      Summary              `json:"summary"`
}
