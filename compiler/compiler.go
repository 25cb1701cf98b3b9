package compiler

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PageOptions configure LoadPage.
type PageOptions struct {
	Name    string
	Parent  string
	Scripts ScriptSink
	Styles  StyleSink
	// StylesDir is handed to the style sink with each record.
	StylesDir string
}

// LoadPage parses a full HTML document into a page node. Head scripts and
// styles go to the sinks; the body, wrapped in a <div> carrying the body's
// attributes, becomes the node's markup.
func LoadPage(r io.Reader, opts PageOptions) (*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page %s: %w", opts.Name, err)
	}

	page := NewNode(Options{
		Name:    opts.Name,
		Parent:  opts.Parent,
		Scripts: opts.Scripts,
	})

	if head := findFirst(doc, isTag(atom.Head)); head != nil {
		recordHeadScripts(head, opts.Scripts)
		recordHeadStyles(page, head, opts)
	}

	body := findBody(doc)
	if body == nil {
		return page, nil
	}

	wrapper := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	wrapper.Attr = append(wrapper.Attr, body.Attr...)
	for c := body.FirstChild; c != nil; c = body.FirstChild {
		body.RemoveChild(c)
		wrapper.AppendChild(c)
	}
	page.SetMarkup(renderNode(wrapper))
	return page, nil
}

func recordHeadScripts(head *html.Node, sink ScriptSink) {
	if sink == nil {
		return
	}
	for _, el := range findAll(head, isTag(atom.Script)) {
		if typ, _ := getAttr(el, "type"); !strings.EqualFold(typ, "text/javascript") {
			continue
		}
		src, _ := getAttr(el, "src")
		if src != "" {
			sink.RecordScript(rootRelative(src), "")
			continue
		}
		sink.RecordScript("", textContent(el))
	}
}

func recordHeadStyles(page *Node, head *html.Node, opts PageOptions) {
	for _, el := range findAll(head, func(n *html.Node) bool {
		if n.DataAtom == atom.Style {
			return true
		}
		rel, _ := getAttr(n, "rel")
		return n.DataAtom == atom.Link && strings.EqualFold(rel, "stylesheet")
	}) {
		href, _ := getAttr(el, "href")
		body := ""
		if el.DataAtom == atom.Style {
			href = ""
			body = textContent(el)
		}
		if href == "" && strings.TrimSpace(body) == "" {
			continue
		}

		page.SetStyle(href, body)
		if href != "" {
			href = styleHref(href)
		}
		if opts.Styles != nil {
			opts.Styles.RecordStyle(href, body, opts.StylesDir)
		}
	}
}
