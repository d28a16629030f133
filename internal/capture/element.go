// Package capture implements the static DOM-to-element extraction
// pipeline: classification, style extraction, depth- and
// count-bounded traversal, and the cross-cutting aggregators that run
// over the extracted element list.
package capture

// Role is the design-primitive classification of an element.
type Role string

const (
	RoleText      Role = "TEXT"
	RoleContainer Role = "CONTAINER"
	RoleImage     Role = "IMAGE"
	RoleShape     Role = "SHAPE"
)

// Position is a heuristic location estimate. The static pipeline does
// not run a layout engine; x/y are sequential index-based guesses and
// width/height fall back to content-derived defaults unless inline
// styles declare them.
type Position struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// VisualStyle carries the resolved visual properties of one element.
type VisualStyle struct {
	BackgroundColor string `json:"backgroundColor"`
	BackgroundImage string `json:"backgroundImage,omitempty"`
	Border          string `json:"border,omitempty"`
	BorderTop       string `json:"borderTop,omitempty"`
	BorderRight     string `json:"borderRight,omitempty"`
	BorderBottom    string `json:"borderBottom,omitempty"`
	BorderLeft      string `json:"borderLeft,omitempty"`
	BorderRadius    string `json:"borderRadius"`
	Opacity         string `json:"opacity"`
	BoxShadow       string `json:"boxShadow"`
	Transform       string `json:"transform"`
	Display         string `json:"display"`
	Visibility      string `json:"visibility"`
}

// TypographyStyle carries the resolved text properties of one element.
type TypographyStyle struct {
	FontFamily     string `json:"fontFamily"`
	FontSize       string `json:"fontSize"`
	FontWeight     string `json:"fontWeight"`
	FontStyle      string `json:"fontStyle"`
	LineHeight     string `json:"lineHeight"`
	LetterSpacing  string `json:"letterSpacing"`
	TextAlign      string `json:"textAlign"`
	TextDecoration string `json:"textDecoration"`
	Color          string `json:"color"`
}

// LayoutFlags are the layout-intent hints derived per element.
type LayoutFlags struct {
	IsFlexContainer bool `json:"isFlexContainer"`
	IsGridContainer bool `json:"isGridContainer"`
	IsBlock         bool `json:"isBlock"`
	IsInline        bool `json:"isInline"`
	IsImage         bool `json:"isImage"`
	IsForm          bool `json:"isForm"`
	HasChildren     bool `json:"hasChildren"`
	ChildrenCount   int  `json:"childrenCount"`
}

// LayoutStyle carries the flex/grid placement properties consulted by
// the auto-layout mapping.
type LayoutStyle struct {
	Display        string `json:"display"`
	FlexDirection  string `json:"flexDirection"`
	JustifyContent string `json:"justifyContent"`
	AlignItems     string `json:"alignItems"`
	Gap            string `json:"gap"`
}

// Spacing holds the four padding and margin sides as numbers.
type Spacing struct {
	PaddingTop    float64 `json:"paddingTop"`
	PaddingRight  float64 `json:"paddingRight"`
	PaddingBottom float64 `json:"paddingBottom"`
	PaddingLeft   float64 `json:"paddingLeft"`
	MarginTop     float64 `json:"marginTop"`
	MarginRight   float64 `json:"marginRight"`
	MarginBottom  float64 `json:"marginBottom"`
	MarginLeft    float64 `json:"marginLeft"`
}

// AttributeBag collects the attributes worth carrying into the design
// model for context (links, alt text, accessibility labels).
type AttributeBag struct {
	ID        string            `json:"id,omitempty"`
	Href      string            `json:"href,omitempty"`
	Src       string            `json:"src,omitempty"`
	Alt       string            `json:"alt,omitempty"`
	Title     string            `json:"title,omitempty"`
	Role      string            `json:"role,omitempty"`
	AriaLabel string            `json:"ariaLabel,omitempty"`
	OnClick   string            `json:"onclick,omitempty"`
	Data      map[string]string `json:"dataAttributes,omitempty"`
}

// ElementRecord is the extracted data for one DOM node that passed
// inclusion filtering. Records are appended during traversal and are
// read-only afterwards.
type ElementRecord struct {
	ID          string          `json:"id"`
	Tag         string          `json:"tagName"`
	Classes     []string        `json:"className,omitempty"`
	Depth       int             `json:"depth"`
	ParentID    string          `json:"parentId,omitempty"`
	TextContent string          `json:"textContent"`
	InnerHTML   string          `json:"innerHTML,omitempty"`
	Attributes  AttributeBag    `json:"attributes"`
	Position    Position        `json:"position"`
	Visual      VisualStyle     `json:"visual"`
	Typography  TypographyStyle `json:"typography"`
	LayoutProps LayoutStyle     `json:"layout"`
	Spacing     Spacing         `json:"spacing"`
	Layout      LayoutFlags     `json:"layoutDetection"`
	ZIndex      int             `json:"zIndex"`
	CursorStyle string          `json:"cursor,omitempty"`
	Role        Role            `json:"figmaNodeType"`

	// Style keeps the full resolved bag for the mapper; it is not part
	// of the wire payload.
	Style *StyleBag `json:"-"`
}
