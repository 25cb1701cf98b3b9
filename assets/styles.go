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
)

var cssEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// cssString quotes s as a CSS string token.
func cssString(s string) string {
	return `"` + cssEscaper.Replace(s) + `"`
}

type styleRecord struct {
	style     compiler.Style
	targetDir string
}

// StyleWriter implements compiler.StyleSink.
type StyleWriter struct {
	fs     afero.Fs
	logger *log.Logger

	mu     sync.Mutex
	styles []styleRecord
}

var _ compiler.StyleSink = (*StyleWriter)(nil)

// NewStyleWriter returns an empty StyleWriter.
func NewStyleWriter(fs afero.Fs, logger *log.Logger) *StyleWriter {
	return &StyleWriter{fs: fs, logger: logger}
}

// RecordStyle records an external href or an inline sheet. Records with a
// targetDir are written there; the rest go to the directory given to Write.
// Recording the same style twice has no effect.
func (w *StyleWriter) RecordStyle(href, body, targetDir string) {
	s := compiler.Style{Kind: compiler.StyleSheet, Body: body}
	if href != "" {
		s = compiler.Style{Kind: compiler.StyleExternal, Body: href}
	} else if strings.TrimSpace(body) == "" {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.styles {
		if existing.style == s && existing.targetDir == targetDir {
			return
		}
	}
	w.styles = append(w.styles, styleRecord{style: s, targetDir: targetDir})
}

// Styles returns the recorded styles in first-seen order.
func (w *StyleWriter) Styles() []compiler.Style {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]compiler.Style, len(w.styles))
	for i, r := range w.styles {
		out[i] = r.style
	}
	return out
}

// Write writes index.css and an index.js importing it into every target
// directory. External links become @import rules ahead of inline sheets.
func (w *StyleWriter) Write(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	w.mu.Lock()
	groups := make(map[string][]compiler.Style)
	var order []string
	for _, r := range w.styles {
		target := r.targetDir
		if target == "" {
			target = dir
		}
		if _, ok := groups[target]; !ok {
			order = append(order, target)
		}
		groups[target] = append(groups[target], r.style)
	}
	w.mu.Unlock()
	if len(order) == 0 {
		order = []string{dir}
	}

	var written []string
	for _, target := range order {
		paths, err := w.writeGroup(target, groups[target])
		if err != nil {
			return written, err
		}
		written = append(written, paths...)
	}
	return written, nil
}

func (w *StyleWriter) writeGroup(dir string, styles []compiler.Style) ([]string, error) {
	if err := w.fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create styles directory: %w", err)
	}

	var css strings.Builder
	for _, s := range styles {
		if s.Kind == compiler.StyleExternal {
			fmt.Fprintf(&css, "@import url(%s);\n", cssString(s.Body))
		}
	}
	for _, s := range styles {
		if s.Kind == compiler.StyleSheet {
			css.WriteString("\n")
			css.WriteString(strings.TrimSpace(s.Body))
			css.WriteString("\n")
		}
	}

	cssPath := filepath.Join(dir, "index.css")
	jsPath := filepath.Join(dir, "index.js")
	if err := afero.WriteFile(w.fs, cssPath, []byte(strings.TrimLeft(css.String(), "\n")), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", cssPath, err)
	}
	if err := afero.WriteFile(w.fs, jsPath, []byte("import './index.css'\n"), 0o644); err != nil {
		return []string{cssPath}, fmt.Errorf("failed to write %s: %w", jsPath, err)
	}
	w.logger.Debug("wrote styles", "dir", dir, "count", len(styles))
	return []string{cssPath, jsPath}, nil
}
