package renderer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"sitecap/internal/capture"
)

// RodRenderer renders pages in a real browser via rod, then runs an
// in-page script that walks the live DOM with computed styles and real
// bounding boxes. Budgets and skip rules match the static pipeline so
// both engines produce the same record shape.
type RodRenderer struct {
	BrowserURL string
	Timeout    time.Duration
}

func NewRodRenderer(browserURL string, timeout time.Duration) *RodRenderer {
	return &RodRenderer{BrowserURL: browserURL, Timeout: timeout}
}

func (r *RodRenderer) Render(ctx context.Context, req Request) (*Result, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "http"
	}

	browser := rod.New().Context(ctx).Timeout(r.Timeout)
	if r.BrowserURL != "" {
		browser = browser.ControlURL(r.BrowserURL)
	}
	if err := browser.Connect(); err != nil {
		return nil, err
	}
	defer browser.MustClose()

	page, err := browser.Page(proto.TargetCreateTarget{URL: u.String()})
	if err != nil {
		return nil, err
	}
	defer page.MustClose()

	vp := req.Viewport
	if vp.Width > 0 && vp.Height > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:             vp.Width,
			Height:            vp.Height,
			DeviceScaleFactor: 1,
			Mobile:            vp.Device == "mobile",
		}); err != nil {
			return nil, err
		}
	}

	if err := page.WaitLoad(); err != nil {
		return nil, err
	}

	htmlStr, err := page.HTML()
	if err != nil {
		return nil, err
	}

	res := &Result{
		URL:    u.String(),
		HTML:   htmlStr,
		Status: 200,
		Engine: "browser",
	}
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr)); err == nil {
		res.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	eval, err := page.Eval(extractScript)
	if err != nil {
		return nil, fmt.Errorf("extract elements: %w", err)
	}
	var payload struct {
		Elements     []capture.ElementRecord `json:"elements"`
		ScrollHeight float64                 `json:"scrollHeight"`
	}
	if err := json.Unmarshal([]byte(eval.Value.Str()), &payload); err != nil {
		return nil, fmt.Errorf("decode extracted elements: %w", err)
	}
	res.Elements = payload.Elements
	res.ScrollHeight = payload.ScrollHeight

	return res, nil
}

// extractScript walks the rendered DOM breadth-limited by the same
// depth and element budgets as the static walker, reading computed
// styles and getBoundingClientRect for each kept element. It returns a
// JSON object carrying the element array (shaped exactly like
// capture.ElementRecord) and the document scroll height.
const extractScript = `() => {
	const SKIP = new Set(['script','style','meta','link','title','head','noscript','iframe']);
	const VISUAL_LEAF = new Set(['img','hr','input','textarea','select','button','svg','video','canvas','embed','object','audio','progress','meter']);
	const MAX_DEPTH = 15;
	const MAX_ELEMENTS = 100;
	const TEXT_LIMIT = 500;
	const HTML_LIMIT = 1000;

	const records = [];
	let stopped = false;

	const px = (v) => {
		const n = parseFloat(v);
		return isNaN(n) ? 0 : n;
	};

	const classify = (tag, text, style, childCount) => {
		if (tag === 'img') return 'IMAGE';
		if (text !== '') return 'TEXT';
		if (style.display === 'flex' || style.display === 'grid' || childCount > 0) return 'CONTAINER';
		return 'SHAPE';
	};

	const visit = (el, depth, parentId) => {
		if (stopped) return;
		if (depth > MAX_DEPTH || records.length >= MAX_ELEMENTS) {
			stopped = true;
			return;
		}

		const tag = el.tagName.toLowerCase();
		if (SKIP.has(tag)) return;

		const style = getComputedStyle(el);
		const rect = el.getBoundingClientRect();
		const children = Array.from(el.children);
		const text = Array.from(el.childNodes)
			.filter((n) => n.nodeType === Node.TEXT_NODE)
			.map((n) => n.textContent.trim())
			.filter((t) => t !== '')
			.join(' ');

		let include = true;
		if (style.display === 'none' || style.visibility === 'hidden') include = false;
		if (rect.width === 0 && rect.height === 0 && children.length === 0) include = false;
		if (text === '' && children.length === 0 && tag !== 'img' && !VISUAL_LEAF.has(tag)) include = false;

		let nextParent = parentId;
		let childDepth = depth;
		if (include) {
			const id = tag + '_' + depth + '_' + records.length;
			const data = {};
			for (const attr of el.attributes) {
				if (attr.name.startsWith('data-')) data[attr.name.slice(5)] = attr.value;
			}
			records.push({
				id: id,
				tagName: tag,
				className: el.classList.length ? Array.from(el.classList) : undefined,
				depth: depth,
				parentId: parentId || undefined,
				textContent: text.slice(0, TEXT_LIMIT),
				innerHTML: el.innerHTML.slice(0, HTML_LIMIT),
				attributes: {
					id: el.id || undefined,
					href: el.getAttribute('href') || undefined,
					src: el.getAttribute('src') || undefined,
					alt: el.getAttribute('alt') || undefined,
					title: el.getAttribute('title') || undefined,
					role: el.getAttribute('role') || undefined,
					ariaLabel: el.getAttribute('aria-label') || undefined,
					onclick: el.getAttribute('onclick') || undefined,
					dataAttributes: Object.keys(data).length ? data : undefined,
				},
				position: {
					x: rect.x + window.scrollX,
					y: rect.y + window.scrollY,
					width: rect.width,
					height: rect.height,
				},
				visual: {
					backgroundColor: style.backgroundColor,
					backgroundImage: style.backgroundImage === 'none' ? undefined : style.backgroundImage,
					border: style.border || undefined,
					borderTop: style.borderTop || undefined,
					borderRight: style.borderRight || undefined,
					borderBottom: style.borderBottom || undefined,
					borderLeft: style.borderLeft || undefined,
					borderRadius: style.borderRadius,
					opacity: style.opacity,
					boxShadow: style.boxShadow,
					transform: style.transform,
					display: style.display,
					visibility: style.visibility,
				},
				typography: {
					fontFamily: style.fontFamily,
					fontSize: style.fontSize,
					fontWeight: style.fontWeight,
					fontStyle: style.fontStyle,
					lineHeight: style.lineHeight,
					letterSpacing: style.letterSpacing,
					textAlign: style.textAlign,
					textDecoration: style.textDecoration,
					color: style.color,
				},
				layout: {
					display: style.display,
					flexDirection: style.flexDirection,
					justifyContent: style.justifyContent,
					alignItems: style.alignItems,
					gap: style.gap,
				},
				spacing: {
					paddingTop: px(style.paddingTop),
					paddingRight: px(style.paddingRight),
					paddingBottom: px(style.paddingBottom),
					paddingLeft: px(style.paddingLeft),
					marginTop: px(style.marginTop),
					marginRight: px(style.marginRight),
					marginBottom: px(style.marginBottom),
					marginLeft: px(style.marginLeft),
				},
				layoutDetection: {
					isFlexContainer: style.display === 'flex',
					isGridContainer: style.display === 'grid',
					isBlock: style.display === 'block',
					isInline: style.display === 'inline' || style.display === 'inline-block',
					isImage: tag === 'img',
					isForm: tag === 'form' || tag === 'input' || tag === 'textarea' || tag === 'select' || tag === 'button',
					hasChildren: children.length > 0,
					childrenCount: children.length,
				},
				zIndex: parseInt(style.zIndex, 10) || 0,
				cursor: style.cursor === 'auto' ? undefined : style.cursor,
				figmaNodeType: classify(tag, text, style, children.length),
			});
			nextParent = id;
			childDepth = depth + 1;
		}

		for (const child of children) {
			if (stopped) return;
			visit(child, childDepth, nextParent);
		}
	};

	visit(document.body, 0, '');
	return JSON.stringify({
		elements: records,
		scrollHeight: document.body.scrollHeight,
	});
}`
