package compiler

import (
	"fmt"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vcrobe/nojs-views/jsx"
)

// SetMarkup assigns the node's HTML and recomputes everything derived from
// it: children, scripts, sockets, markup and JSX. Previous values are
// discarded.
func (n *Node) SetMarkup(markup string) {
	n.children = nil
	n.scripts = nil
	n.sockets = nil
	n.boundSockets = nil
	n.socketRefs = nil
	n.scoped = false
	n.markup = ""
	n.jsx = ""

	if strings.TrimSpace(markup) == "" {
		return
	}

	// Reading from a string cannot fail.
	root, _ := parseMarkup(markup)

	// Order matters: each step may remove what the next one looks at.
	n.extractComponents(root)
	n.applyIgnore(root)
	n.applyEmpty(root)
	applyFormDefaults(root)
	n.captureScripts(root)

	n.markup = renderChildren(root)

	n.tagSockets(root)
	normalizePaths(root)

	draft := jsx.Convert(childNodes(root))
	if draft == nil {
		return
	}
	n.jsx = jsx.Render(n.bind(draft))
}

// extractComponents replaces each wfr-c element with a placeholder tag and
// turns it into a child node, until none are left.
func (n *Node) extractComponents(root *html.Node) {
	for el := findFirst(root, hasAttr(attrComponent)); el != nil; el = findFirst(root, hasAttr(attrComponent)) {
		name, _ := getAttr(el, attrComponent)
		removeAttr(el, attrComponent)
		setAttr(el, attrProps, "binder")

		words := splitWords(resolveStatusName(name))
		placeholder := &html.Node{Type: html.ElementNode, Data: placeholderPrefix + kebab(words)}
		el.Parent.InsertBefore(placeholder, el.NextSibling)

		markup := renderNode(el)
		detach(el)

		n.children = append(n.children, NewNode(Options{
			Name:        name,
			IsComponent: true,
			Markup:      markup,
			Scripts:     n.scriptSink,
		}))
	}
}

// applyIgnore runs after extraction so that components inside an ignored
// wrapper are still surfaced.
func (n *Node) applyIgnore(root *html.Node) {
	for _, el := range findAll(root, hasAttr(attrIgnore)) {
		detach(el)
	}
}

func (n *Node) applyEmpty(root *html.Node) {
	for _, el := range findAll(root, hasAttr(attrEmpty)) {
		removeChildren(el)
		removeAttr(el, attrEmpty)
	}
}

func applyFormDefaults(root *html.Node) {
	for _, form := range findAll(root, isTag(atom.Form)) {
		if _, ok := getAttr(form, "action"); !ok {
			setAttr(form, "action", "/")
		}
	}
}

// captureScripts records and removes JavaScript <script> elements. Scripts
// with a non-JavaScript type are left in place.
func (n *Node) captureScripts(root *html.Node) {
	for _, el := range findAll(root, isTag(atom.Script)) {
		if typ, ok := getAttr(el, "type"); ok && typ != "" && !strings.Contains(strings.ToLower(typ), "javascript") {
			continue
		}

		if src, ok := getAttr(el, "src"); ok && src != "" {
			src = rootRelative(src)
			n.scripts = append(n.scripts, Script{Kind: ScriptExternal, Body: src})
			if n.scriptSink != nil {
				n.scriptSink.RecordScript(src, "")
			}
		} else {
			body := textContent(el)
			n.scripts = append(n.scripts, Script{Kind: ScriptInline, Body: body})
			if n.scriptSink != nil {
				n.scriptSink.RecordScript("", body)
			}
		}
		detach(el)
	}
}

// tagSockets records wfr-d elements in document order and swaps the marker
// for a side-table reference the binder resolves after conversion.
func (n *Node) tagSockets(root *html.Node) {
	for i, el := range findAll(root, hasAttr(attrSocket)) {
		name, _ := getAttr(el, attrSocket)
		removeAttr(el, attrSocket)

		id := fmt.Sprintf("s%d", i)
		setAttr(el, attrSocketRef, id)
		if n.socketRefs == nil {
			n.socketRefs = make(map[string]string)
		}
		n.socketRefs[id] = name
		n.sockets = append(n.sockets, name)
	}
}

// normalizePaths makes anchor and image paths root-relative and strips the
// page extension from internal links.
func normalizePaths(root *html.Node) {
	for _, a := range findAll(root, isTag(atom.A)) {
		if href, ok := getAttr(a, "href"); ok {
			setAttr(a, "href", normalizeHref(href))
		}
	}
	for _, img := range findAll(root, isTag(atom.Img)) {
		if src, ok := getAttr(img, "src"); ok {
			setAttr(img, "src", rootRelative(src))
		}
	}
}

func isExternal(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return true
	}
	if schemeRe.MatchString(ref) {
		return true
	}
	for _, prefix := range []string{"mailto:", "tel:", "javascript:", "data:"} {
		if strings.HasPrefix(strings.ToLower(ref), prefix) {
			return true
		}
	}
	return false
}

func rootRelative(ref string) string {
	if isExternal(ref) || strings.HasPrefix(ref, "/") {
		return ref
	}
	rest := ""
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref, rest = ref[:i], ref[i:]
	}
	return path.Clean("/"+ref) + rest
}

func normalizeHref(href string) string {
	if isExternal(href) {
		return href
	}
	rest := ""
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href, rest = href[:i], href[i:]
	}
	if path.Base(href) == "index.html" {
		href = strings.TrimSuffix(href, "index.html")
	}
	href = strings.TrimSuffix(href, ".html")
	if href == "" || href == "." {
		return "/" + rest
	}
	if strings.HasPrefix(href, "/") {
		return href + rest
	}
	cleaned := path.Clean("/" + href)
	if strings.HasSuffix(href, "/") && cleaned != "/" {
		cleaned += "/"
	}
	return cleaned + rest
}
