package compiler

import (
	_ "embed"
	"fmt"
	"strings"
)

//go:embed helpers.js
var helpersSource string

// HelpersSource returns the runtime helpers module imported by components
// that declare sockets.
func HelpersSource() string {
	return helpersSource
}

// ComposeOptions holds import paths relative to the directory the composed
// module is written to.
type ComposeOptions struct {
	ComponentsDir  string // e.g. "../../components"
	HelpersPath    string // e.g. "../../helpers"
	MetaDir        string // e.g. "../../meta"
	ControllersDir string // e.g. "../../controllers"
}

// Compose renders the module source for one node.
func (n *Node) Compose(opts ComposeOptions) string {
	var sb strings.Builder
	w := func(format string, args ...any) {
		fmt.Fprintf(&sb, format, args...)
		sb.WriteByte('\n')
	}

	w("import React from 'react'")
	if keys := n.ProxyKeys(); len(keys) > 0 {
		helpers := "map, transformProxies"
		if n.scoped {
			helpers = "createScope, map, transformProxies"
		}
		w("import { %s } from '%s'", helpers, opts.HelpersPath)
	}
	if len(n.Sheets()) > 0 {
		w("import './styles/index.css'")
	}
	for _, className := range n.childClassNames() {
		w("import %s from '%s/%s'", className, opts.ComponentsDir, className)
	}
	w("")

	ctrlDir := opts.ControllersDir + "/views"
	if n.isComponent {
		ctrlDir = opts.ControllersDir + "/components"
	}

	w("let Controller")
	w("")
	w("class %s extends React.Component {", n.className)
	w("    static get Controller() {")
	w("        if (Controller) return Controller")
	w("")
	w("        try {")
	w("            Controller = require('%s/%s')", ctrlDir, n.ctrlClassName)
	w("            Controller = Controller.default || Controller")
	w("")
	w("            return Controller")
	w("        }")
	w("        catch (e) {")
	w("            if (e.code === 'MODULE_NOT_FOUND') {")
	w("                Controller = %s", n.className)
	w("")
	w("                return Controller")
	w("            }")
	w("")
	w("            throw e")
	w("        }")
	w("    }")
	w("")
	w("    render() {")

	if len(n.ProxyKeys()) > 0 {
		w("        const proxies = Controller !== %s ? transformProxies(this.props) : {", n.className)
		sb.WriteString(n.composeProxiesDefault("            "))
		w("        }")
		w("")
	}

	body := n.jsx
	if body == "" {
		body = "null"
	}

	if n.isComponent {
		w("        return (")
		w("            %s", body)
		w("        )")
	} else {
		w("        let Metadata = null")
		w("        try {")
		w("            Metadata = require('%s/%s')", opts.MetaDir, n.metaClassName)
		w("        } catch (e) {")
		w("            try {")
		w("                Metadata = require('%s/defaultMeta')", opts.MetaDir)
		w("            } catch (e) {")
		w("                Metadata = null")
		w("            }")
		w("        }")
		w("        Metadata = Metadata && (Metadata.default || Metadata)")
		w("")
		w("        return (")
		w("            <React.Fragment>")
		w("                {Metadata ? <Metadata {...this.props} /> : null}")
		w("                %s", body)
		w("            </React.Fragment>")
		w("        )")
	}

	w("    }")
	w("}")
	w("")
	w("export default %s", n.className)
	return sb.String()
}

// composeProxiesDefault renders one default per proxy key: '' for sockets
// marked %string%, [] otherwise.
func (n *Node) composeProxiesDefault(indent string) string {
	var sb strings.Builder
	for _, socket := range n.ProxyKeys() {
		def := "[]"
		if strings.Contains(socket, stringSocketMarker) {
			def = "''"
		}
		fmt.Fprintf(&sb, "%s'%s': %s,\n", indent, proxyKey(socket), def)
	}
	return sb.String()
}

func (n *Node) childClassNames() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range n.children {
		if seen[c.className] {
			continue
		}
		seen[c.className] = true
		names = append(names, c.className)
	}
	return names
}

// ComposeIndex renders the manifest re-exporting every page module.
func ComposeIndex(pages []*Node) string {
	var sb strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&sb, "export { default as %s } from './%s'\n", p.className, p.className)
	}
	return sb.String()
}

// RoutePath derives the URL path of a page: the parent group, if any,
// followed by the class name words without "view" and "home" tokens.
func (n *Node) RoutePath() string {
	var parentWords []string
	if n.parent != "" {
		parentWords = splitWords(n.parent)
	}

	words := splitWords(n.className)
	if len(parentWords) > 0 && len(words) >= len(parentWords) && equalFoldWords(words[:len(parentWords)], parentWords) {
		words = words[len(parentWords):]
	}

	var slug []string
	for _, w := range words {
		if strings.EqualFold(w, "view") || strings.EqualFold(w, "home") {
			continue
		}
		slug = append(slug, w)
	}

	prefix := ""
	if len(parentWords) > 0 {
		prefix = "/" + kebab(parentWords)
	}
	return prefix + "/" + kebab(slug)
}

// RouteConst is the exported constant name holding the page's path.
func (n *Node) RouteConst() string {
	var words []string
	for _, w := range splitWords(n.className) {
		if strings.EqualFold(w, "view") {
			continue
		}
		words = append(words, strings.ToUpper(w))
	}
	return strings.Join(words, "_")
}

func equalFoldWords(a, b []string) bool {
	for i := range a {
		if !strings.EqualFold(a[i], b[i]) {
			return false
		}
	}
	return true
}

// ComposeRoutes renders the routing table. viewsImport is the path of the
// page index relative to the routes module.
func ComposeRoutes(pages []*Node, viewsImport string) string {
	var sb strings.Builder
	sb.WriteString("import React from 'react'\n")
	sb.WriteString("import { Route, BrowserRouter } from 'react-router-dom'\n")
	fmt.Fprintf(&sb, "import * as Views from '%s'\n\n", viewsImport)

	for _, p := range pages {
		fmt.Fprintf(&sb, "export const %s = '%s'\n", p.RouteConst(), p.RoutePath())
	}

	sb.WriteString("\nconst Router = () => (\n")
	sb.WriteString("    <BrowserRouter>\n")
	for _, p := range pages {
		fmt.Fprintf(&sb, "        <Route key=\"%s\" path={%s} component={Views.%s.Controller} exact />\n",
			p.className, p.RouteConst(), p.className)
	}
	sb.WriteString("    </BrowserRouter>\n")
	sb.WriteString(")\n\n")
	sb.WriteString("export default Router\n")
	return sb.String()
}

// ComposeApp renders the application shell. routesImport is the routes
// module path relative to the shell.
func ComposeApp(routesImport string) string {
	return fmt.Sprintf(`import React from 'react'
import Router from '%s'

import './styles'
import './scripts'

const App = () => <Router />

export default App
`, routesImport)
}

// ComposePage renders the empty page shell.
func ComposePage() string {
	return `import React from 'react'

const Page = () => {
    return (
        <div></div>
    )
}

export default Page
`
}
