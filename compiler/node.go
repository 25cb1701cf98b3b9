package compiler

import (
	"path"
	"regexp"
	"strings"
)

// Node is one page or extracted component. Fields are set once by NewNode
// and SetMarkup and then only read through the accessors.
type Node struct {
	name          string
	className     string
	ctrlClassName string
	metaClassName string
	elName        string
	parent        string
	isComponent   bool

	children []*Node
	scripts  []Script
	styles   []Style

	// sockets are discovered in this node's own markup; boundSockets are
	// registered by the binder for proxy-driven children.
	sockets      []string
	boundSockets []string
	socketRefs   map[string]string
	scoped       bool

	markup string
	jsx    string

	scriptSink ScriptSink
}

// NewNode builds a node and fully resolves its markup, including the
// recursive extraction of child components.
func NewNode(opts Options) *Node {
	n := &Node{
		parent:      opts.Parent,
		isComponent: opts.IsComponent,
		scriptSink:  opts.Scripts,
	}
	n.setName(opts.Name)
	for _, s := range opts.Styles {
		n.addStyle(s)
	}
	n.SetMarkup(opts.Markup)
	return n
}

func (n *Node) setName(name string) {
	words := splitWords(resolveStatusName(name))
	n.className = pascal(words)
	n.ctrlClassName = pascal(words)
	n.metaClassName = pascal(append(words[:len(words):len(words)], "meta"))
	n.elName = kebab(words)
	n.name = kebab(append(words[:len(words):len(words)], "view"))
}

func (n *Node) Name() string          { return n.name }
func (n *Node) ClassName() string     { return n.className }
func (n *Node) CtrlClassName() string { return n.ctrlClassName }
func (n *Node) MetaClassName() string { return n.metaClassName }
func (n *Node) ElName() string        { return n.elName }
func (n *Node) Parent() string        { return n.parent }
func (n *Node) IsComponent() bool     { return n.isComponent }

// Markup is the node's HTML after directives were applied.
func (n *Node) Markup() string { return n.markup }

// JSX is the bound component syntax derived from Markup.
func (n *Node) JSX() string { return n.jsx }

// Children returns the extracted components in document order of first
// occurrence. The same component may appear more than once.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

func (n *Node) Scripts() []Script {
	return append([]Script(nil), n.scripts...)
}

func (n *Node) Styles() []Style {
	return append([]Style(nil), n.styles...)
}

// Sockets lists the socket names declared in this node's own markup.
func (n *Node) Sockets() []string {
	return append([]string(nil), n.sockets...)
}

// BoundSockets lists the sockets the binder registered for children that
// are fed through proxies.
func (n *Node) BoundSockets() []string {
	return append([]string(nil), n.boundSockets...)
}

// ProxyKeys returns every proxy key the generated module reads, declared
// sockets first.
func (n *Node) ProxyKeys() []string {
	keys := make([]string, 0, len(n.sockets)+len(n.boundSockets))
	keys = append(keys, n.sockets...)
	return append(keys, n.boundSockets...)
}

// Sheets returns the bodies of the node's inline style sheets.
func (n *Node) Sheets() []string {
	var sheets []string
	for _, s := range n.styles {
		if s.Kind == StyleSheet && strings.TrimSpace(s.Body) != "" {
			sheets = append(sheets, s.Body)
		}
	}
	return sheets
}

var schemeRe = regexp.MustCompile(`^\w+://`)

// SetStyle records a style on the node. Links are made root-relative unless
// they are absolute URLs; duplicates by body are ignored.
func (n *Node) SetStyle(href, content string) {
	if href != "" {
		n.addStyle(Style{Kind: StyleExternal, Body: styleHref(href)})
		return
	}
	n.addStyle(Style{Kind: StyleSheet, Body: content})
}

func styleHref(href string) string {
	if schemeRe.MatchString(href) || strings.HasPrefix(href, "//") {
		return href
	}
	return path.Clean("/" + href)
}

func (n *Node) addStyle(s Style) {
	for _, existing := range n.styles {
		if existing.Body == s.Body {
			return
		}
	}
	n.styles = append(n.styles, s)
}

func (n *Node) registerBoundSocket(name string) {
	for _, s := range n.boundSockets {
		if s == name {
			return
		}
	}
	n.boundSockets = append(n.boundSockets, name)
}

// proxyKey strips type markers from a socket name.
func proxyKey(socket string) string {
	return strings.ReplaceAll(socket, stringSocketMarker, "")
}
