package assets

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-views/compiler"
)

func discard() *log.Logger {
	return log.New(io.Discard)
}

func TestScriptWriter_RecordScript(t *testing.T) {
	w := NewScriptWriter(afero.NewMemMapFs(), discard())

	w.RecordScript("/js/app.js", "")
	w.RecordScript("", "init()")
	w.RecordScript("/js/app.js", "")
	w.RecordScript("", "init()")
	w.RecordScript("", "   ")

	assert.Equal(t, []compiler.Script{
		{Kind: compiler.ScriptExternal, Body: "/js/app.js"},
		{Kind: compiler.ScriptInline, Body: "init()"},
	}, w.Scripts())
}

func TestScriptWriter_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewScriptWriter(fs, discard())
	w.RecordScript("/js/app.js", "")
	w.RecordScript("", `alert("</script>")`)

	written, err := w.Write(context.Background(), "build/src/layout/App/scripts")
	require.NoError(t, err)
	require.Equal(t, []string{"build/src/layout/App/scripts/index.js"}, written)

	data, err := afero.ReadFile(fs, written[0])
	require.NoError(t, err)
	src := string(data)
	assert.Contains(t, src, `fetch("/js/app.js").then(body => body.text()),`)
	assert.Contains(t, src, `Promise.resolve("alert(\"\x3c/script>\")"),`)
	assert.Contains(t, src, "new Function(script).call(window)")
}

func TestScriptWriter_WriteWithoutScripts(t *testing.T) {
	fs := afero.NewMemMapFs()
	written, err := NewScriptWriter(fs, discard()).Write(context.Background(), "scripts")
	require.NoError(t, err)

	data, err := afero.ReadFile(fs, written[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "const scripts = [\n]")
}

func TestStyleWriter_RecordStyle(t *testing.T) {
	w := NewStyleWriter(afero.NewMemMapFs(), discard())

	w.RecordStyle("/css/a.css", "", "")
	w.RecordStyle("/css/a.css", "", "")
	w.RecordStyle("", "p{}", "")
	w.RecordStyle("", "p{}", "other")
	w.RecordStyle("", "\n", "")

	assert.Equal(t, []compiler.Style{
		{Kind: compiler.StyleExternal, Body: "/css/a.css"},
		{Kind: compiler.StyleSheet, Body: "p{}"},
		{Kind: compiler.StyleSheet, Body: "p{}"},
	}, w.Styles())
}

func TestCSSString(t *testing.T) {
	tests := []struct{ in, want string }{
		{"/css/site.css", `"/css/site.css"`},
		{"/css/café.css", `"/css/café.css"`},
		{`/css/a "b".css`, `"/css/a \"b\".css"`},
		{`/css/a\b.css`, `"/css/a\\b.css"`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, cssString(tt.in), tt.in)
	}
}

func TestStyleWriter_ImportKeepsNonASCII(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewStyleWriter(fs, discard())
	w.RecordStyle(`/css/café "x".css`, "", "")

	_, err := w.Write(context.Background(), "styles")
	require.NoError(t, err)

	css, err := afero.ReadFile(fs, "styles/index.css")
	require.NoError(t, err)
	assert.Equal(t, "@import url(\"/css/café \\\"x\\\".css\");\n", string(css))
	assert.NotContains(t, string(css), `\u00e9`)
}

func TestStyleWriter_Write(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewStyleWriter(fs, discard())
	w.RecordStyle("", "  p { color: red }  ", "")
	w.RecordStyle("/css/site.css", "", "")
	w.RecordStyle("", "h1 {}", "")
	w.RecordStyle("", "nav {}", "custom")

	written, err := w.Write(context.Background(), "styles")
	require.NoError(t, err)
	assert.Equal(t, []string{"styles/index.css", "styles/index.js", "custom/index.css", "custom/index.js"}, written)

	css, err := afero.ReadFile(fs, "styles/index.css")
	require.NoError(t, err)
	assert.Equal(t, "@import url(\"/css/site.css\");\n\np { color: red }\n\nh1 {}\n", string(css))

	js, err := afero.ReadFile(fs, "styles/index.js")
	require.NoError(t, err)
	assert.Equal(t, "import './index.css'\n", string(js))

	custom, err := afero.ReadFile(fs, "custom/index.css")
	require.NoError(t, err)
	assert.Equal(t, "nav {}\n", string(custom))
}

func TestStyleWriter_WriteWithoutStyles(t *testing.T) {
	fs := afero.NewMemMapFs()
	written, err := NewStyleWriter(fs, discard()).Write(context.Background(), "styles")
	require.NoError(t, err)
	assert.Equal(t, []string{"styles/index.css", "styles/index.js"}, written)
}

func TestWriters_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	fs := afero.NewMemMapFs()

	_, err := NewScriptWriter(fs, discard()).Write(ctx, "scripts")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = NewStyleWriter(fs, discard()).Write(ctx, "styles")
	assert.ErrorIs(t, err, context.Canceled)
}
