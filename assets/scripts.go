// Package assets collects the scripts and styles found in pages and writes
// them as modules loaded once by the application shell.
package assets

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/vcrobe/nojs-views/compiler"
	"github.com/vcrobe/nojs-views/jsx"
)

// ScriptWriter implements compiler.ScriptSink.
type ScriptWriter struct {
	fs     afero.Fs
	logger *log.Logger

	mu      sync.Mutex
	scripts []compiler.Script
}

var _ compiler.ScriptSink = (*ScriptWriter)(nil)

// NewScriptWriter returns an empty ScriptWriter.
func NewScriptWriter(fs afero.Fs, logger *log.Logger) *ScriptWriter {
	return &ScriptWriter{fs: fs, logger: logger}
}

// RecordScript records an external src or an inline body. Recording the same
// script twice has no effect.
func (w *ScriptWriter) RecordScript(src, body string) {
	s := compiler.Script{Kind: compiler.ScriptInline, Body: body}
	if src != "" {
		s = compiler.Script{Kind: compiler.ScriptExternal, Body: src}
	} else if strings.TrimSpace(body) == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.scripts {
		if existing == s {
			return
		}
	}
	w.scripts = append(w.scripts, s)
}

// Scripts returns the recorded scripts in first-seen order.
func (w *ScriptWriter) Scripts() []compiler.Script {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]compiler.Script(nil), w.scripts...)
}

// Write writes dir/index.js, which fetches and evaluates the recorded
// scripts in order.
func (w *ScriptWriter) Write(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scripts directory: %w", err)
	}

	path := filepath.Join(dir, "index.js")
	if err := afero.WriteFile(w.fs, path, []byte(w.compose()), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}
	w.logger.Debug("wrote scripts", "path", path, "count", len(w.Scripts()))
	return []string{path}, nil
}

func (w *ScriptWriter) compose() string {
	var sb strings.Builder
	sb.WriteString("const scripts = [\n")
	for _, s := range w.Scripts() {
		if s.Kind == compiler.ScriptExternal {
			fmt.Fprintf(&sb, "    fetch(%s).then(body => body.text()),\n", jsx.String(s.Body))
			continue
		}
		fmt.Fprintf(&sb, "    Promise.resolve(%s),\n", jsx.String(s.Body))
	}
	sb.WriteString("]\n\n")
	sb.WriteString(`scripts.concat(Promise.resolve()).reduce((loaded, loading) => {
    return loaded.then(script => {
        if (script) new Function(script).call(window)

        return loading
    })
})
`)
	return sb.String()
}
