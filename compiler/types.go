package compiler

// Directive attributes recognized in authored markup.
const (
	attrComponent = "wfr-c"      // extract the element as a component named by the value
	attrSocket    = "wfr-d"      // bind the element to a runtime data socket
	attrIgnore    = "wfr-ignore" // drop the element
	attrEmpty     = "wfr-empty"  // drop the element's content
	attrProps     = "wfr-props"  // spread the enclosing component's props here

	// attrSocketRef replaces a socket marker between scanning and binding; its
	// value keys into Node.socketRefs.
	attrSocketRef = "data-wfr-socket"

	// placeholderPrefix starts the tag left behind by an extracted component.
	placeholderPrefix = "af-"

	// stringSocketMarker in a socket name makes its proxy default '' instead of [].
	stringSocketMarker = "%string%"
)

// ScriptKind tells how a script body should be loaded.
type ScriptKind int

const (
	ScriptInline   ScriptKind = iota // Body is JavaScript source
	ScriptExternal                   // Body is a src URL
)

// Script is one <script> captured from a node's markup.
type Script struct {
	Kind ScriptKind
	Body string
}

// StyleKind tells whether a style is an inline sheet or an external link.
type StyleKind int

const (
	StyleSheet    StyleKind = iota // Body is CSS text
	StyleExternal                  // Body is an href
)

// Style is one style sheet attached to a node.
type Style struct {
	Kind StyleKind
	Body string
}

// ScriptSink receives every script found while scanning markup. Exactly one
// of src and body is non-empty.
type ScriptSink interface {
	RecordScript(src, body string)
}

// StyleSink receives every style found while loading a page. Exactly one of
// href and body is non-empty.
type StyleSink interface {
	RecordStyle(href, body, targetDir string)
}

// Options configure NewNode.
type Options struct {
	// Name is the directive value or the file-derived page name.
	Name string
	// Parent is the enclosing page group, used for routing only.
	Parent string
	// IsComponent is false for pages.
	IsComponent bool
	// Markup is assigned with SetMarkup after the node is set up.
	Markup string
	// Styles seed the node's style list.
	Styles []Style
	// Scripts, when set, receives each script captured by SetMarkup,
	// including those of extracted children.
	Scripts ScriptSink
}
