package capture

// skipTags are non-visual elements. A skip-tag prunes its whole
// subtree during traversal.
var skipTags = map[string]bool{
	"script": true, "style": true, "meta": true, "link": true,
	"title": true, "head": true, "noscript": true, "iframe": true,
}

// visualLeafTags are elements that carry visual meaning even with no
// text and no children (form controls, media, rules). Anything else
// that is textless, childless, and imageless is dropped to avoid
// emitting empty leaves.
var visualLeafTags = map[string]bool{
	"img": true, "hr": true,
	"input": true, "textarea": true, "select": true, "button": true,
	"svg": true, "video": true, "canvas": true, "embed": true,
	"object": true, "audio": true, "progress": true, "meter": true,
}

// containerTags are the structural tags that always map to a
// rectangle in the design model.
var containerTags = map[string]bool{
	"div": true, "section": true, "article": true, "header": true,
	"footer": true, "main": true, "nav": true, "aside": true,
}

// interactiveTags mark elements counted as interactive in the capture
// summary.
var interactiveTags = map[string]bool{
	"a": true, "button": true, "input": true, "textarea": true, "select": true,
}

// Candidate bundles the facts the classifier needs about one node.
type Candidate struct {
	Tag        string
	Style      *StyleBag
	Width      float64
	Height     float64
	ChildCount int
	Text       string
	HasImage   bool
}

// SkipSubtree reports whether the tag excludes the node and its whole
// subtree from traversal.
func SkipSubtree(tag string) bool {
	return skipTags[tag]
}

// Include decides whether a node becomes an ElementRecord. Rejected
// nodes (other than skip-tags) still have their children visited.
func Include(c Candidate) bool {
	if skipTags[c.Tag] {
		return false
	}
	if c.Style != nil {
		if c.Style.Get("display") == "none" || c.Style.Get("visibility") == "hidden" {
			return false
		}
	}
	if c.Width == 0 && c.Height == 0 && c.ChildCount == 0 {
		return false
	}
	// Drop textless, childless, imageless leaves unless the tag is
	// visually meaningful on its own (hr, img, form controls).
	if c.Text == "" && c.ChildCount == 0 && !c.HasImage && !visualLeafTags[c.Tag] {
		return false
	}
	return true
}

// Classify derives the design-primitive role. Text wins over container
// and shape whenever any non-whitespace text is present; the element
// is still walked for children afterwards.
func Classify(c Candidate) Role {
	if c.Tag == "img" {
		return RoleImage
	}
	if c.Text != "" {
		return RoleText
	}
	flex := c.Style != nil && c.Style.Get("display") == "flex"
	grid := c.Style != nil && c.Style.Get("display") == "grid"
	if flex || grid || c.ChildCount > 0 {
		return RoleContainer
	}
	return RoleShape
}

// IsContainerTag reports whether the tag belongs to the structural
// rectangle set used by the design-model mapper.
func IsContainerTag(tag string) bool {
	return containerTags[tag]
}

// IsInteractive reports whether the element counts as interactive:
// interactive tag, onclick handler, or a pointer cursor.
func IsInteractive(tag, onclick, cursor string) bool {
	return interactiveTags[tag] || onclick != "" || cursor == "pointer"
}
