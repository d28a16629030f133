package capture

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"sitecap/internal/cssval"
)

// Default traversal budgets. The walker is the primary defense against
// pathological documents: once either budget is hit the entire
// traversal stops, not just the current branch.
const (
	DefaultMaxDepth    = 15
	DefaultMaxElements = 100
	DefaultTextLimit   = 500
	DefaultHTMLLimit   = 1000
)

// Walker performs a pre-order, budget-bounded traversal of a parsed
// document and produces the flat, ordered ElementRecord list.
type Walker struct {
	MaxDepth    int
	MaxElements int
	TextLimit   int
	HTMLLimit   int
}

// NewWalker returns a walker with the default budgets.
func NewWalker() *Walker {
	return &Walker{
		MaxDepth:    DefaultMaxDepth,
		MaxElements: DefaultMaxElements,
		TextLimit:   DefaultTextLimit,
		HTMLLimit:   DefaultHTMLLimit,
	}
}

type walkState struct {
	records []ElementRecord
	stopped bool
}

// Walk traverses the document starting at <body>, or at the document
// root when no body exists. Children are visited in document order.
// Rejected nodes are skipped but their subtrees still visited, except
// skip-tags, which prune the whole subtree.
func (w *Walker) Walk(doc *goquery.Document) []ElementRecord {
	root := w.findRoot(doc)
	if root == nil {
		return nil
	}

	st := &walkState{records: make([]ElementRecord, 0, 32)}
	w.visit(root, 0, "", st)
	return st.records
}

func (w *Walker) findRoot(doc *goquery.Document) *html.Node {
	if body := doc.Find("body"); body.Length() > 0 {
		return body.Nodes[0]
	}
	if len(doc.Nodes) > 0 {
		return doc.Nodes[0]
	}
	return nil
}

func (w *Walker) visit(n *html.Node, depth int, parentID string, st *walkState) {
	if st.stopped || n == nil || n.Type != html.ElementNode {
		return
	}
	if len(st.records) >= w.MaxElements {
		st.stopped = true
		return
	}
	if depth > w.MaxDepth {
		st.stopped = true
		return
	}

	tag := strings.ToLower(n.Data)
	if SkipSubtree(tag) {
		return
	}

	bag := NewStyleBag(tag, getAttr(n, "style"))
	text := truncate(textContent(n), w.TextLimit)
	childCount := countElementChildren(n)
	hasImage := (tag == "img" && getAttr(n, "src") != "") || bag.Get("backgroundImage") != "none"
	pos := w.estimatePosition(bag, tag, text, depth, len(st.records))

	cand := Candidate{
		Tag:        tag,
		Style:      bag,
		Width:      pos.Width,
		Height:     pos.Height,
		ChildCount: childCount,
		Text:       text,
		HasImage:   hasImage,
	}

	nextParent := parentID
	childDepth := depth

	if Include(cand) {
		rec := w.buildRecord(n, tag, bag, text, pos, childCount, depth, len(st.records), parentID)
		rec.Role = Classify(cand)
		st.records = append(st.records, rec)
		nextParent = rec.ID
		childDepth = depth + 1
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if st.stopped {
			return
		}
		w.visit(c, childDepth, nextParent, st)
	}
}

func (w *Walker) buildRecord(n *html.Node, tag string, bag *StyleBag, text string, pos Position, childCount, depth, ordinal int, parentID string) ElementRecord {
	display := bag.Get("display")

	rec := ElementRecord{
		ID:          fmt.Sprintf("%s_%d_%d", tag, depth, ordinal),
		Tag:         tag,
		Classes:     splitClasses(getAttr(n, "class")),
		Depth:       depth,
		ParentID:    parentID,
		TextContent: text,
		InnerHTML:   truncate(innerMarkup(n), w.HTMLLimit),
		Position:    pos,
		ZIndex:      int(cssval.ParseLength(bag.Get("zIndex"))),
		CursorStyle: bag.Get("cursor"),
		Style:       bag,
	}

	rec.Attributes = AttributeBag{
		ID:        getAttr(n, "id"),
		Href:      getAttr(n, "href"),
		Src:       getAttr(n, "src"),
		Alt:       getAttr(n, "alt"),
		Title:     getAttr(n, "title"),
		Role:      getAttr(n, "role"),
		AriaLabel: getAttr(n, "aria-label"),
		OnClick:   getAttr(n, "onclick"),
		Data:      dataAttrs(n),
	}

	rec.Visual = VisualStyle{
		BackgroundColor: bag.Get("backgroundColor"),
		BackgroundImage: bag.Get("backgroundImage"),
		Border:          bag.Get("border"),
		BorderTop:       bag.Get("borderTop"),
		BorderRight:     bag.Get("borderRight"),
		BorderBottom:    bag.Get("borderBottom"),
		BorderLeft:      bag.Get("borderLeft"),
		BorderRadius:    bag.Get("borderRadius"),
		Opacity:         bag.Get("opacity"),
		BoxShadow:       bag.Get("boxShadow"),
		Transform:       bag.Get("transform"),
		Display:         display,
		Visibility:      bag.Get("visibility"),
	}

	rec.Typography = TypographyStyle{
		FontFamily:     bag.Get("fontFamily"),
		FontSize:       bag.Get("fontSize"),
		FontWeight:     bag.Get("fontWeight"),
		FontStyle:      bag.Get("fontStyle"),
		LineHeight:     bag.Get("lineHeight"),
		LetterSpacing:  bag.Get("letterSpacing"),
		TextAlign:      bag.Get("textAlign"),
		TextDecoration: bag.Get("textDecoration"),
		Color:          bag.Get("color"),
	}

	rec.LayoutProps = LayoutStyle{
		Display:        display,
		FlexDirection:  bag.Get("flexDirection"),
		JustifyContent: bag.Get("justifyContent"),
		AlignItems:     bag.Get("alignItems"),
		Gap:            bag.Get("gap"),
	}

	rec.Spacing = Spacing{
		PaddingTop:    cssval.ParseLength(bag.Get("paddingTop")),
		PaddingRight:  cssval.ParseLength(bag.Get("paddingRight")),
		PaddingBottom: cssval.ParseLength(bag.Get("paddingBottom")),
		PaddingLeft:   cssval.ParseLength(bag.Get("paddingLeft")),
		MarginTop:     cssval.ParseLength(bag.Get("marginTop")),
		MarginRight:   cssval.ParseLength(bag.Get("marginRight")),
		MarginBottom:  cssval.ParseLength(bag.Get("marginBottom")),
		MarginLeft:    cssval.ParseLength(bag.Get("marginLeft")),
	}

	rec.Layout = LayoutFlags{
		IsFlexContainer: display == "flex",
		IsGridContainer: display == "grid",
		IsBlock:         display == "block",
		IsInline:        display == "inline",
		IsImage:         tag == "img",
		IsForm:          tag == "form" || tag == "input" || tag == "textarea" || tag == "select" || tag == "button",
		HasChildren:     childCount > 0,
		ChildrenCount:   childCount,
	}

	return rec
}

// estimatePosition applies the heuristic, non-laid-out position model:
// inline width/height declarations win, otherwise text elements get a
// content-proportional width and containers a depth-shrunk default.
func (w *Walker) estimatePosition(bag *StyleBag, tag, text string, depth, ordinal int) Position {
	pos := Position{
		X: float64(depth * 20),
		Y: float64(ordinal * 30),
	}

	if bag.Declared("width") {
		pos.Width = cssval.ParseLength(bag.Get("width"))
	} else if text != "" {
		est := float64(len(text) * 8)
		if est > 800 {
			est = 800
		}
		pos.Width = est
	} else {
		est := float64(200 - depth*10)
		if est < 0 {
			est = 0
		}
		pos.Width = est
	}

	if bag.Declared("height") {
		pos.Height = cssval.ParseLength(bag.Get("height"))
	} else if text != "" {
		pos.Height = 25
	} else {
		pos.Height = 50
	}

	if tag == "hr" {
		pos.Height = cssval.ParseLength(bag.Get("height"))
		if pos.Height == 0 {
			pos.Height = 1
		}
	}

	return pos
}

// textContent concatenates the trimmed text nodes of the subtree.
func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(node.Data))
			return
		}
		if node.Type == html.ElementNode && SkipSubtree(strings.ToLower(node.Data)) {
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

// innerMarkup renders the node's children back to HTML.
func innerMarkup(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			break
		}
	}
	return b.String()
}

func countElementChildren(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			count++
		}
	}
	return count
}

func splitClasses(raw string) []string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil
	}
	return fields
}

// truncate caps s at limit bytes, backing up so a multi-byte rune is
// never split.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// getAttr retrieves an attribute value case-insensitively.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}

func dataAttrs(n *html.Node) map[string]string {
	var out map[string]string
	for _, attr := range n.Attr {
		if strings.HasPrefix(attr.Key, "data-") {
			if out == nil {
				out = map[string]string{}
			}
			out[attr.Key] = attr.Val
		}
	}
	return out
}
