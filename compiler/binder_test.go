package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-views/jsx"
)

func TestBind_PageWithSocketAndCardList(t *testing.T) {
	n := page(`<div><header wfr-d="nav">Menu</header><card wfr-c="card">A</card><card wfr-c="card">A</card></div>`)

	assert.Equal(t, []string{"nav"}, n.Sockets())
	assert.Equal(t, []string{"cardList0"}, n.BoundSockets())
	assert.Equal(t, []string{"nav", "cardList0"}, n.ProxyKeys())

	require.Len(t, n.Children(), 2)
	for _, c := range n.Children() {
		assert.Equal(t, "Card", c.ClassName())
	}

	want := `<div>` +
		`{map(proxies['nav'], props => <header {...props}>{props.children ? props.children : <React.Fragment>Menu</React.Fragment>}</header>)}` +
		`{map(proxies['cardList0'], props => <Card.Controller {...props}>{props.children ? props.children : null}</Card.Controller>)}` +
		`</div>`
	assert.Equal(t, want, n.JSX())
}

func TestBind_ConsecutivePlaceholdersBecomeOneList(t *testing.T) {
	for _, count := range []int{2, 3, 5} {
		markup := "<ul>\n" + strings.Repeat("  <li wfr-c=\"item\">x</li>\n", count) + "</ul>"
		n := page(markup)

		require.Len(t, n.Children(), count)
		assert.Equal(t, []string{"itemList0"}, n.BoundSockets(), "count %d", count)
		assert.Equal(t, 1, strings.Count(n.JSX(), "map(proxies['itemList0']"), "count %d", count)
		assert.NotContains(t, n.JSX(), "<Item.Controller {...this.props}", "count %d", count)
		assert.NotContains(t, n.JSX(), "af-item", "count %d", count)
	}
}

func TestBind_SeparatedPlaceholdersStaySingular(t *testing.T) {
	n := page(`<div><card wfr-c="card">A</card><hr><card wfr-c="card">B</card></div>`)

	assert.Empty(t, n.BoundSockets())
	assert.Equal(t, `<div><Card.Controller {...this.props} /><hr /><Card.Controller {...this.props} /></div>`, n.JSX())
}

func TestBind_SecondRunGetsItsOwnList(t *testing.T) {
	n := page(`<div><i wfr-c="tag">a</i><i wfr-c="tag">b</i><hr><i wfr-c="tag">c</i><i wfr-c="tag">d</i></div>`)

	assert.Equal(t, []string{"tagList0", "tagList1"}, n.BoundSockets())
	item := `props => <Tag.Controller {...props}>{props.children ? props.children : null}</Tag.Controller>)}`
	assert.Equal(t,
		`<div>{map(proxies['tagList0'], `+item+`<hr />{map(proxies['tagList1'], `+item+`</div>`,
		n.JSX())
	assert.NotContains(t, n.JSX(), "{...this.props}")
}

func TestBind_LeftoverAfterListStaysSingular(t *testing.T) {
	n := page(`<div><i wfr-c="tag">a</i><i wfr-c="tag">b</i><hr><i wfr-c="tag">c</i></div>`)

	assert.Equal(t, []string{"tagList0"}, n.BoundSockets())
	assert.Equal(t,
		`<div>{map(proxies['tagList0'], props => <Tag.Controller {...props}>{props.children ? props.children : null}</Tag.Controller>)}`+
			`<hr /><Tag.Controller {...this.props} /></div>`,
		n.JSX())
}

func TestBind_ComponentFeedsChildrenThroughProxies(t *testing.T) {
	n := page(`<div><section wfr-c="panel"><span wfr-c="badge">b</span></section></div>`)
	panel := n.Children()[0]

	assert.Equal(t, []string{"Badge"}, panel.BoundSockets())
	assert.Equal(t,
		`<section {...this.props}>{map(proxies['Badge'], props => <Badge.Controller {...props}>{props.children ? props.children : null}</Badge.Controller>)}</section>`,
		panel.JSX())
}

func TestBind_NestedSocketsUseScope(t *testing.T) {
	n := page(`<ul wfr-d="groups"><li><span wfr-d="items">x</span></li></ul>`)

	assert.Equal(t, []string{"groups", "items"}, n.Sockets())
	want := `<React.Fragment>{map(proxies['groups'], props => <ul {...props}>{createScope(props.children, proxies => ` +
		`<React.Fragment>{props.topelement ? props.topelement() : null}` +
		`<li>{map(proxies['items'], props => <span {...props}>{props.children ? props.children : <React.Fragment>x</React.Fragment>}</span>)}</li>` +
		`</React.Fragment>)}</ul>)}</React.Fragment>`
	assert.Equal(t, want, n.JSX())
}

func TestBind_DoublyNestedSocketsAreAllResolved(t *testing.T) {
	n := page(`<div wfr-d="a"><div wfr-d="b"><p wfr-d="c">x</p></div></div>`)

	jsxText := n.JSX()
	for _, key := range []string{"a", "b", "c"} {
		assert.Equal(t, 1, strings.Count(jsxText, "map(proxies['"+key+"']"), key)
	}
	assert.Equal(t, 2, strings.Count(jsxText, "createScope("))
	assert.NotContains(t, jsxText, attrSocketRef)
}

func TestBind_SelfClosingSocketForwardsChildren(t *testing.T) {
	n := page(`<div><img wfr-d="avatar" class="pic"></div>`)

	assert.Equal(t,
		"<div>{map(proxies['avatar'], props => <img {...{...props, className: `pic ${props.className || ''}`}}>{props.children}</img>)}</div>",
		n.JSX())
}

func TestBind_StringSocketUsesBareKey(t *testing.T) {
	n := page(`<h1 wfr-d="title%string%">T</h1>`)

	assert.Equal(t, []string{"title%string%"}, n.Sockets())
	assert.Contains(t, n.JSX(), "map(proxies['title']")
}

func TestMergeProps(t *testing.T) {
	t.Run("no attributes spreads props", func(t *testing.T) {
		el := &jsx.Element{Tag: "div", Attrs: mergeProps(nil)}
		assert.Equal(t, `<div {...props} />`, jsx.Render(el))
	})

	t.Run("attributes pass through before the spread", func(t *testing.T) {
		el := &jsx.Element{Tag: "div", Attrs: mergeProps([]jsx.Attr{{Kind: jsx.AttrString, Name: "id", Value: "x"}})}
		assert.Equal(t, `<div id="x" {...props} />`, jsx.Render(el))
	})

	t.Run("class names are joined static first", func(t *testing.T) {
		el := &jsx.Element{Tag: "div", Attrs: mergeProps([]jsx.Attr{
			{Kind: jsx.AttrString, Name: "className", Value: "a"},
			{Kind: jsx.AttrString, Name: "id", Value: "x"},
		})}
		assert.Equal(t, "<div id=\"x\" {...{...props, className: `a ${props.className || ''}`}} />", jsx.Render(el))
	})

	t.Run("template characters in class names are escaped", func(t *testing.T) {
		attrs := mergeProps([]jsx.Attr{{Kind: jsx.AttrString, Name: "className", Value: "a`${b}"}})
		require.Len(t, attrs, 1)
		assert.Equal(t, "{...props, className: `a\\`\\${b} ${props.className || ''}`}", attrs[0].Value)
	})
}
