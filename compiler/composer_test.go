package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var testComposeOptions = ComposeOptions{
	ComponentsDir:  "../../components",
	HelpersPath:    "../../helpers",
	MetaDir:        "../../meta",
	ControllersDir: "../../controllers",
}

func TestCompose_Page(t *testing.T) {
	n := page(`<div><header wfr-d="nav">Menu</header><card wfr-c="card">A</card><card wfr-c="card">A</card></div>`)
	src := n.Compose(testComposeOptions)

	assert.True(t, strings.HasPrefix(src, "import React from 'react'\n"))
	assert.Contains(t, src, "import { map, transformProxies } from '../../helpers'\n")
	assert.Equal(t, 1, strings.Count(src, "import Card from '../../components/Card'"))
	assert.NotContains(t, src, "import './styles/index.css'")

	assert.Contains(t, src, "class Home extends React.Component {")
	assert.Contains(t, src, "Controller = require('../../controllers/views/Home')")
	assert.Contains(t, src, "if (e.code === 'MODULE_NOT_FOUND') {\n                Controller = Home")
	assert.Contains(t, src, "throw e")

	assert.Contains(t, src, "const proxies = Controller !== Home ? transformProxies(this.props) : {\n"+
		"            'nav': [],\n"+
		"            'cardList0': [],\n"+
		"        }\n")

	assert.Contains(t, src, "Metadata = require('../../meta/HomeMeta')")
	assert.Contains(t, src, "Metadata = require('../../meta/defaultMeta')")
	assert.Contains(t, src, "{Metadata ? <Metadata {...this.props} /> : null}")
	assert.Contains(t, src, "                "+n.JSX()+"\n")
	assert.True(t, strings.HasSuffix(src, "export default Home\n"))
}

func TestCompose_Component(t *testing.T) {
	n := page(`<div><section wfr-c="panel" class="p"><span wfr-c="badge">b</span></section></div>`)
	panel := n.Children()[0]
	src := panel.Compose(testComposeOptions)

	assert.Contains(t, src, "import Badge from '../../components/Badge'")
	assert.Contains(t, src, "Controller = require('../../controllers/components/Panel')")
	assert.Contains(t, src, "'Badge': [],")
	assert.NotContains(t, src, "Metadata")
	assert.Contains(t, src, "        return (\n            "+panel.JSX()+"\n        )")
}

func TestCompose_WithoutSocketsSkipsHelpers(t *testing.T) {
	n := page(`<p>plain</p>`)
	src := n.Compose(testComposeOptions)

	assert.NotContains(t, src, "transformProxies")
	assert.NotContains(t, src, "const proxies")
}

func TestCompose_ScopedSocketsImportCreateScope(t *testing.T) {
	n := page(`<ul wfr-d="groups"><li><span wfr-d="items">x</span></li></ul>`)
	src := n.Compose(testComposeOptions)

	assert.Contains(t, src, "import { createScope, map, transformProxies } from '../../helpers'")
}

func TestCompose_StringSocketDefaultsToEmptyString(t *testing.T) {
	n := page(`<div><h1 wfr-d="title%string%">T</h1><ul wfr-d="items"><li>x</li></ul></div>`)
	src := n.Compose(testComposeOptions)

	assert.Contains(t, src, "'title': '',")
	assert.Contains(t, src, "'items': [],")
	assert.NotContains(t, src, "%string%")
}

func TestCompose_StylesheetImport(t *testing.T) {
	n := page(`<p>x</p>`)
	n.SetStyle("", "p { color: red }")

	assert.Contains(t, n.Compose(testComposeOptions), "import './styles/index.css'")
}

func TestCompose_EmptyMarkupRendersNull(t *testing.T) {
	n := NewNode(Options{Name: "blank", IsComponent: true})

	assert.Contains(t, n.Compose(testComposeOptions), "        return (\n            null\n        )")
}

func TestHelpersSource(t *testing.T) {
	src := HelpersSource()
	for _, name := range []string{"transformProxies", "map", "createScope"} {
		assert.Contains(t, src, "export const "+name)
	}
}

func TestRoutes(t *testing.T) {
	tests := []struct {
		name, parent string
		path, konst  string
	}{
		{name: "home", path: "/", konst: "HOME"},
		{name: "about", path: "/about", konst: "ABOUT"},
		{name: "BlogPost", parent: "blog", path: "/blog/post", konst: "BLOG_POST"},
		{name: "404", path: "/not-found", konst: "NOT_FOUND"},
		{name: "contact-view", path: "/contact", konst: "CONTACT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewNode(Options{Name: tt.name, Parent: tt.parent})
			assert.Equal(t, tt.path, n.RoutePath())
			assert.Equal(t, tt.konst, n.RouteConst())
		})
	}
}

func TestComposeIndex(t *testing.T) {
	pages := []*Node{NewNode(Options{Name: "home"}), NewNode(Options{Name: "about"})}

	assert.Equal(t,
		"export { default as Home } from './Home'\nexport { default as About } from './About'\n",
		ComposeIndex(pages))
}

func TestComposeRoutes(t *testing.T) {
	pages := []*Node{NewNode(Options{Name: "home"}), NewNode(Options{Name: "BlogPost", Parent: "blog"})}
	src := ComposeRoutes(pages, "./views")

	assert.Contains(t, src, "import * as Views from './views'\n")
	assert.Contains(t, src, "export const HOME = '/'\n")
	assert.Contains(t, src, "export const BLOG_POST = '/blog/post'\n")
	assert.Contains(t, src, `<Route key="BlogPost" path={BLOG_POST} component={Views.BlogPost.Controller} exact />`)
	assert.True(t, strings.HasSuffix(src, "export default Router\n"))
}

func TestComposeApp(t *testing.T) {
	src := ComposeApp("../../routes")

	assert.Contains(t, src, "import Router from '../../routes'")
	assert.Contains(t, src, "import './styles'")
	assert.Contains(t, src, "import './scripts'")
}
