// Package jsx holds the draft component syntax produced from HTML markup.
// A draft is a small tree of elements, text runs and embedded expressions
// that the compiler rewrites structurally before serializing it with Render.
package jsx

import "strings"

// Fragment is the tag used to group sibling nodes without a wrapper element.
const Fragment = "React.Fragment"

// Node is one entry of a draft tree: *Element, *Text or *Expr.
type Node interface {
	isNode()
}

// AttrKind tells Render how an attribute value is written.
type AttrKind int

const (
	// AttrString renders name="value".
	AttrString AttrKind = iota
	// AttrExpr renders name={value}.
	AttrExpr
	// AttrSpread renders {...value}; Name is ignored.
	AttrSpread
)

// Attr is one attribute of an element.
type Attr struct {
	Kind  AttrKind
	Name  string
	Value string
}

// Element is a tag with attributes and children. An element without
// children renders self-closing.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []Node
}

// Text is a run of literal character data, stored unescaped.
type Text struct {
	Value string
}

// Expr is a JavaScript expression embedded as {Code}.
type Expr struct {
	Code string
}

func (*Element) isNode() {}
func (*Text) isNode()    {}
func (*Expr) isNode()    {}

// Attr returns the attribute with the given name.
func (e *Element) Attr(name string) (Attr, bool) {
	for _, a := range e.Attrs {
		if a.Kind != AttrSpread && a.Name == name {
			return a, true
		}
	}
	return Attr{}, false
}

// RemoveAttr deletes every attribute with the given name and reports
// whether one was present.
func (e *Element) RemoveAttr(name string) bool {
	kept := e.Attrs[:0]
	removed := false
	for _, a := range e.Attrs {
		if a.Kind != AttrSpread && a.Name == name {
			removed = true
			continue
		}
		kept = append(kept, a)
	}
	e.Attrs = kept
	return removed
}

// IsWhitespace reports whether n is a text run made only of white space.
func IsWhitespace(n Node) bool {
	t, ok := n.(*Text)
	return ok && strings.TrimSpace(t.Value) == ""
}

// Walk calls fn for every element in the tree rooted at n, parents first.
// Children appended by fn are visited as well.
func Walk(n Node, fn func(*Element)) {
	el, ok := n.(*Element)
	if !ok {
		return
	}
	fn(el)
	for i := 0; i < len(el.Children); i++ {
		Walk(el.Children[i], fn)
	}
}

// Render serializes nodes back to component syntax.
func Render(nodes ...Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		render(&sb, n)
	}
	return sb.String()
}

func render(sb *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Text:
		sb.WriteString(escapeText(n.Value))
	case *Expr:
		sb.WriteByte('{')
		sb.WriteString(n.Code)
		sb.WriteByte('}')
	case *Element:
		sb.WriteByte('<')
		sb.WriteString(n.Tag)
		for _, a := range n.Attrs {
			sb.WriteByte(' ')
			switch a.Kind {
			case AttrSpread:
				sb.WriteString("{...")
				sb.WriteString(a.Value)
				sb.WriteByte('}')
			case AttrExpr:
				sb.WriteString(a.Name)
				sb.WriteString("={")
				sb.WriteString(a.Value)
				sb.WriteByte('}')
			default:
				sb.WriteString(a.Name)
				sb.WriteString(`="`)
				sb.WriteString(escapeAttr(a.Value))
				sb.WriteByte('"')
			}
		}
		if len(n.Children) == 0 {
			sb.WriteString(" />")
			return
		}
		sb.WriteByte('>')
		for _, c := range n.Children {
			render(sb, c)
		}
		sb.WriteString("</")
		sb.WriteString(n.Tag)
		sb.WriteByte('>')
	}
}

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"{", "{'{'}",
	"}", "{'}'}",
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
)

func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// String quotes s as a double-quoted JavaScript string literal.
func String(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028':
			sb.WriteString(`\u2028`)
		case '\u2029':
			sb.WriteString(`\u2029`)
		case '<':
			// keeps "</script>" inert when the module is inlined
			sb.WriteString(`\x3c`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
