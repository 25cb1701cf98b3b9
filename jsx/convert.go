package jsx

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ConvertString parses an HTML fragment in a <body> context and converts it.
func ConvertString(markup string) (Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fragment: %w", err)
	}
	return Convert(nodes), nil
}

// Convert turns sibling HTML nodes into a single draft root. A lone element
// is returned as is; anything else is grouped in a Fragment. Leading and
// trailing white space at the top level is dropped. Convert returns nil when
// nothing renderable is left.
func Convert(nodes []*html.Node) Node {
	var converted []Node
	for _, n := range nodes {
		if c := convertNode(n); c != nil {
			converted = append(converted, c)
		}
	}
	for len(converted) > 0 && IsWhitespace(converted[0]) {
		converted = converted[1:]
	}
	for len(converted) > 0 && IsWhitespace(converted[len(converted)-1]) {
		converted = converted[:len(converted)-1]
	}

	switch {
	case len(converted) == 0:
		return nil
	case len(converted) == 1:
		if el, ok := converted[0].(*Element); ok {
			return el
		}
	}
	return &Element{Tag: Fragment, Children: converted}
}

func convertNode(n *html.Node) Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return &Text{Value: n.Data}
	case html.CommentNode:
		body := strings.ReplaceAll(n.Data, "*/", "* /")
		return &Expr{Code: "/*" + body + "*/"}
	case html.ElementNode:
		return convertElement(n)
	}
	return nil
}

func convertElement(n *html.Node) *Element {
	el := &Element{Tag: n.Data}
	for _, a := range n.Attr {
		el.Attrs = append(el.Attrs, convertAttr(n, a))
	}

	// Raw text elements keep their body verbatim.
	if n.DataAtom == atom.Style || n.DataAtom == atom.Script {
		var body strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			body.WriteString(c.Data)
		}
		if body.Len() > 0 {
			el.Attrs = append(el.Attrs, Attr{
				Kind:  AttrExpr,
				Name:  "dangerouslySetInnerHTML",
				Value: "{ __html: " + String(body.String()) + " }",
			})
		}
		return el
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if child := convertNode(c); child != nil {
			el.Children = append(el.Children, child)
		}
	}
	return el
}

func convertAttr(n *html.Node, a html.Attribute) Attr {
	name := a.Key
	if a.Namespace != "" {
		name = a.Namespace + ":" + a.Key
	}

	if name == "style" {
		return Attr{Kind: AttrExpr, Name: "style", Value: styleObject(a.Val)}
	}
	if mapped, ok := attributeNames[name]; ok {
		name = mapped
	}
	// React treats value/checked as controlled; the authored markup only
	// ever means the initial state.
	if n.DataAtom == atom.Input || n.DataAtom == atom.Textarea || n.DataAtom == atom.Select {
		switch name {
		case "value":
			name = "defaultValue"
		case "checked":
			name = "defaultChecked"
		}
	}
	if standardBooleanAttrs[a.Key] && (a.Val == "" || strings.EqualFold(a.Val, a.Key)) {
		return Attr{Kind: AttrExpr, Name: name, Value: "true"}
	}
	return Attr{Kind: AttrString, Name: name, Value: a.Val}
}

// styleObject converts an inline CSS declaration list into an object literal.
func styleObject(css string) string {
	var props []string
	for _, decl := range strings.Split(css, ";") {
		key, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			continue
		}
		props = append(props, fmt.Sprintf("%s: %s", styleKey(key), styleValue(value)))
	}
	return "{ " + strings.Join(props, ", ") + " }"
}

func styleKey(key string) string {
	if strings.HasPrefix(key, "--") {
		return "'" + key + "'"
	}
	key = strings.ToLower(key)
	vendor := strings.HasPrefix(key, "-") && !strings.HasPrefix(key, "-ms-")
	key = strings.TrimPrefix(key, "-")

	var sb strings.Builder
	upper := vendor
	for _, r := range key {
		if r == '-' {
			upper = true
			continue
		}
		if upper {
			sb.WriteString(strings.ToUpper(string(r)))
			upper = false
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func styleValue(value string) string {
	if value != "" && strings.Trim(value, "0123456789") == "" && value[0] != '0' {
		return value
	}
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "'", `\'`)
	return "'" + value + "'"
}
