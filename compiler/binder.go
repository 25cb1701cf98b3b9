package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vcrobe/nojs-views/jsx"
)

// bind rewrites a draft so that child placeholders and socket elements become
// renderable component syntax. The returned root is always an element.
func (n *Node) bind(draft jsx.Node) jsx.Node {
	holder := &jsx.Element{Children: []jsx.Node{draft}}

	// Every extracted element has its own child entry, so a placeholder left
	// over after a list match is bound by a later entry of the same name.
	for i, child := range n.children {
		if n.bindList(holder, child, i) {
			continue
		}
		n.bindSingular(holder, child)
	}

	// Spreads land inside socket renders too, so resolve them first.
	jsx.Walk(holder, func(el *jsx.Element) {
		if el.RemoveAttr(attrProps) {
			el.Attrs = append(el.Attrs, jsx.Attr{Kind: jsx.AttrSpread, Value: "this.props"})
		}
	})

	n.bindSockets(holder)

	if root, ok := holder.Children[0].(*jsx.Element); ok {
		return root
	}
	return &jsx.Element{Tag: jsx.Fragment, Children: holder.Children}
}

// bindList collapses the first run of two or more sibling placeholders for
// child into one proxy-mapped render and reports whether it found one.
func (n *Node) bindList(holder *jsx.Element, child *Node, index int) bool {
	tag := placeholderPrefix + child.elName
	parent, start, end, ok := findPlaceholderRun(holder, tag)
	if !ok {
		return false
	}

	socket := camelize(child.className) + "List" + strconv.Itoa(index)
	n.registerBoundSocket(socket)

	render := mapRender(socket, &jsx.Element{
		Tag:      child.className + ".Controller",
		Attrs:    mergeProps(nil),
		Children: []jsx.Node{&jsx.Expr{Code: "props.children ? props.children : null"}},
	})

	replaced := append([]jsx.Node{}, parent.Children[:start]...)
	replaced = append(replaced, render)
	parent.Children = append(replaced, parent.Children[end+1:]...)
	return true
}

// findPlaceholderRun locates, in document order, the first run of two or more
// tag elements separated only by white space.
func findPlaceholderRun(root *jsx.Element, tag string) (*jsx.Element, int, int, bool) {
	isPlaceholder := func(node jsx.Node) bool {
		el, ok := node.(*jsx.Element)
		return ok && el.Tag == tag
	}

	for i, c := range root.Children {
		if isPlaceholder(c) {
			end, count := i, 1
			for j := i + 1; j < len(root.Children); j++ {
				if jsx.IsWhitespace(root.Children[j]) {
					continue
				}
				if !isPlaceholder(root.Children[j]) {
					break
				}
				end, count = j, count+1
			}
			if count >= 2 {
				return root, i, end, true
			}
			continue
		}
		if el, ok := c.(*jsx.Element); ok {
			if parent, start, end, found := findPlaceholderRun(el, tag); found {
				return parent, start, end, true
			}
		}
	}
	return nil, 0, 0, false
}

// bindSingular replaces the remaining placeholders of child. Pages forward
// their own props; components feed the child through a proxy.
func (n *Node) bindSingular(holder *jsx.Element, child *Node) {
	tag := placeholderPrefix + child.elName
	controller := child.className + ".Controller"

	jsx.Walk(holder, func(el *jsx.Element) {
		for i, c := range el.Children {
			placeholder, ok := c.(*jsx.Element)
			if !ok || placeholder.Tag != tag {
				continue
			}
			if !n.isComponent {
				el.Children[i] = &jsx.Element{
					Tag:   controller,
					Attrs: []jsx.Attr{{Kind: jsx.AttrSpread, Value: "this.props"}},
				}
				continue
			}
			n.registerBoundSocket(child.className)
			el.Children[i] = mapRender(child.className, &jsx.Element{
				Tag:      controller,
				Attrs:    mergeProps(nil),
				Children: []jsx.Node{&jsx.Expr{Code: "props.children ? props.children : null"}},
			})
		}
	})
}

// bindSockets replaces every socket-tagged element below parent with its
// proxy-mapped render. Nested sockets are bound from inside the outer render.
func (n *Node) bindSockets(parent *jsx.Element) {
	for i, c := range parent.Children {
		el, ok := c.(*jsx.Element)
		if !ok {
			continue
		}
		ref, ok := el.Attr(attrSocketRef)
		if !ok {
			n.bindSockets(el)
			continue
		}
		el.RemoveAttr(attrSocketRef)
		parent.Children[i] = n.socketRender(n.socketRefs[ref.Value], el)
	}
}

func (n *Node) socketRender(socket string, el *jsx.Element) jsx.Node {
	wrapper := &jsx.Element{Tag: el.Tag, Attrs: mergeProps(el.Attrs)}

	switch {
	case len(el.Children) == 0:
		wrapper.Children = []jsx.Node{&jsx.Expr{Code: "props.children"}}

	case containsSocket(el.Children):
		n.scoped = true
		inner := &jsx.Element{Children: el.Children}
		n.bindSockets(inner)
		scope := &jsx.Element{
			Tag: jsx.Fragment,
			Children: append([]jsx.Node{
				&jsx.Expr{Code: "props.topelement ? props.topelement() : null"},
			}, inner.Children...),
		}
		wrapper.Children = []jsx.Node{&jsx.Expr{
			Code: fmt.Sprintf("createScope(props.children, proxies => %s)", jsx.Render(scope)),
		}}

	default:
		fallback := &jsx.Element{Tag: jsx.Fragment, Children: el.Children}
		wrapper.Children = []jsx.Node{&jsx.Expr{
			Code: "props.children ? props.children : " + jsx.Render(fallback),
		}}
	}

	return mapRender(proxyKey(socket), wrapper)
}

func containsSocket(nodes []jsx.Node) bool {
	found := false
	for _, c := range nodes {
		jsx.Walk(c, func(el *jsx.Element) {
			if _, ok := el.Attr(attrSocketRef); ok {
				found = true
			}
		})
	}
	return found
}

// mapRender renders body once per item of the named proxy list.
func mapRender(key string, body *jsx.Element) *jsx.Expr {
	return &jsx.Expr{Code: fmt.Sprintf("map(proxies['%s'], props => %s)", key, jsx.Render(body))}
}

// mergeProps combines static attributes with the proxy item's props. A static
// class name is joined with the proxy's instead of being overwritten.
func mergeProps(attrs []jsx.Attr) []jsx.Attr {
	var className string
	hasClass := false
	merged := make([]jsx.Attr, 0, len(attrs)+1)
	for _, a := range attrs {
		if a.Kind == jsx.AttrString && a.Name == "className" && !hasClass {
			className, hasClass = a.Value, true
			continue
		}
		merged = append(merged, a)
	}

	if !hasClass {
		return append(merged, jsx.Attr{Kind: jsx.AttrSpread, Value: "props"})
	}
	return append(merged, jsx.Attr{
		Kind:  jsx.AttrSpread,
		Value: fmt.Sprintf("{...props, className: `%s ${props.className || ''}`}", escapeTemplate(className)),
	})
}

var templateEscaper = strings.NewReplacer("\\", "\\\\", "`", "\\`", "${", "\\${")

func escapeTemplate(s string) string {
	return templateEscaper.Replace(s)
}
