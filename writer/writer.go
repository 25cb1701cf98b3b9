// Package writer persists a compiled component tree: one module per distinct
// page or component, plus the index, routes, helpers and layout shells.
package writer

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/nojs-views/compiler"
)

// Dirs are the output directories of a run.
type Dirs struct {
	Pages       string
	Components  string
	Meta        string
	Layout      string
	Controllers string
}

// Writer writes compiled nodes to a filesystem. Existing page and component
// modules belong to the user and are never overwritten.
type Writer struct {
	fs     afero.Fs
	dirs   Dirs
	logger *log.Logger
}

// New returns a Writer for the given directories.
func New(fs afero.Fs, dirs Dirs, logger *log.Logger) *Writer {
	return &Writer{fs: fs, dirs: dirs, logger: logger}
}

func (w *Writer) helpersPath() string {
	return filepath.Join(filepath.Dir(w.dirs.Pages), "helpers.js")
}

func (w *Writer) routesPath() string {
	return filepath.Join(filepath.Dir(w.dirs.Pages), "routes.js")
}

// WriteAll writes every page tree in a fresh session and returns the paths of
// all artifacts produced. I/O failures are logged and skipped; the returned
// error is only set when ctx is done.
func (w *Writer) WriteAll(ctx context.Context, pages []*compiler.Node) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, dir := range []string{w.dirs.Pages, w.dirs.Components, w.dirs.Layout, w.dirs.Meta} {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			w.logger.Error("failed to create directory", "dir", dir, "err", err)
		}
	}

	var unique []*compiler.Node
	seen := make(map[string]bool)
	for _, p := range pages {
		if seen[p.ClassName()] {
			continue
		}
		seen[p.ClassName()] = true
		unique = append(unique, p)
	}

	out := &paths{}
	indexPath := filepath.Join(w.dirs.Pages, "index.js")
	viewsImport := relImport(filepath.Dir(w.routesPath()), w.dirs.Pages)
	w.writeFile(out, indexPath, compiler.ComposeIndex(unique))
	w.writeFile(out, w.helpersPath(), compiler.HelpersSource())
	w.writeFile(out, w.routesPath(), compiler.ComposeRoutes(unique, viewsImport))

	appDir := filepath.Join(w.dirs.Layout, "App")
	routesImport := relImport(appDir, strings.TrimSuffix(w.routesPath(), ".js"))
	w.writeScaffold(out, filepath.Join(appDir, "index.js"), compiler.ComposeApp(routesImport))
	w.writeScaffold(out, filepath.Join(w.dirs.Layout, "Page", "index.js"), compiler.ComposePage())

	session := NewSession()
	var g errgroup.Group
	for _, p := range unique {
		g.Go(func() error {
			out.add(w.Write(ctx, session, p)...)
			return nil
		})
	}
	_ = g.Wait()

	return out.all(), ctx.Err()
}

// Write writes n and its descendants that session has not seen yet and
// returns the paths produced. Children are always visited so that
// components first introduced deeper in the tree are still written.
func (w *Writer) Write(ctx context.Context, session *Session, n *compiler.Node) []string {
	out := &paths{}
	w.writeTree(ctx, session, out, n)
	return out.all()
}

func (w *Writer) writeTree(ctx context.Context, session *Session, out *paths, n *compiler.Node) {
	if ctx.Err() != nil {
		return
	}

	var g errgroup.Group
	for _, child := range n.Children() {
		g.Go(func() error {
			w.writeTree(ctx, session, out, child)
			return nil
		})
	}

	if session.Claim(ArtifactID(n)) {
		w.writeNode(out, n)
	}
	_ = g.Wait()
}

// ArtifactID is the session key of a node. Pages and components live in
// different directories, so a page may share a class name with a component.
func ArtifactID(n *compiler.Node) string {
	if n.IsComponent() {
		return "component:" + n.ClassName()
	}
	return "page:" + n.ClassName()
}

func (w *Writer) writeNode(out *paths, n *compiler.Node) {
	dir := w.dirs.Pages
	if n.IsComponent() {
		dir = w.dirs.Components
	}
	nodeDir := filepath.Join(dir, n.ClassName())
	modulePath := filepath.Join(nodeDir, "index.js")
	exists, err := afero.Exists(w.fs, modulePath)
	if err != nil {
		w.logger.Error("failed to stat artifact", "path", modulePath, "err", err)
		return
	}
	if exists {
		w.logger.Debug("keeping existing artifact", "path", modulePath)
		return
	}
	if err := w.fs.MkdirAll(nodeDir, 0o755); err != nil {
		w.logger.Error("failed to create directory", "dir", nodeDir, "err", err)
		return
	}

	if sheets := n.Sheets(); len(sheets) > 0 {
		stylesDir := filepath.Join(nodeDir, "styles")
		if err := w.fs.MkdirAll(stylesDir, 0o755); err != nil {
			w.logger.Error("failed to create directory", "dir", stylesDir, "err", err)
		} else {
			w.writeFile(out, filepath.Join(stylesDir, "index.css"), strings.TrimSpace(strings.Join(sheets, "\n\n"))+"\n")
		}
	}

	source := n.Compose(compiler.ComposeOptions{
		ComponentsDir:  relImport(nodeDir, w.dirs.Components),
		HelpersPath:    relImport(nodeDir, strings.TrimSuffix(w.helpersPath(), ".js")),
		MetaDir:        relImport(nodeDir, w.dirs.Meta),
		ControllersDir: relImport(nodeDir, w.dirs.Controllers),
	})
	w.writeFile(out, modulePath, source)
}

// writeScaffold writes content unless a file already exists at path.
func (w *Writer) writeScaffold(out *paths, path, content string) {
	exists, err := afero.Exists(w.fs, path)
	if err != nil {
		w.logger.Error("failed to stat artifact", "path", path, "err", err)
		return
	}
	if exists {
		w.logger.Debug("keeping existing artifact", "path", path)
		return
	}
	if err := w.fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		w.logger.Error("failed to create directory", "dir", filepath.Dir(path), "err", err)
		return
	}
	w.writeFile(out, path, content)
}

func (w *Writer) writeFile(out *paths, path, content string) {
	if err := afero.WriteFile(w.fs, path, []byte(content), 0o644); err != nil {
		w.logger.Error("failed to write artifact", "path", path, "err", err)
		return
	}
	w.logger.Debug("wrote artifact", "path", path)
	out.add(path)
}

// relImport returns the module specifier of to as seen from the directory from.
func relImport(from, to string) string {
	rel, err := filepath.Rel(from, to)
	if err != nil {
		return filepath.ToSlash(to)
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		return "."
	}
	if !strings.HasPrefix(rel, "../") && rel != ".." {
		rel = "./" + rel
	}
	return rel
}
