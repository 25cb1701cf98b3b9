// Package transpile runs a full generation: it discovers the HTML pages of an
// input directory, compiles each into a component tree and writes the
// resulting application skeleton.
package transpile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/nojs-views/assets"
	"github.com/vcrobe/nojs-views/compiler"
	"github.com/vcrobe/nojs-views/config"
	"github.com/vcrobe/nojs-views/writer"
)

// publicDirs are copied verbatim instead of being scanned for pages.
var publicDirs = map[string]bool{"css": true, "fonts": true, "images": true, "js": true}

// Run compiles every page under cfg.Input and writes the output. Failures on
// individual artifacts are logged and skipped; the returned error reports
// only problems that prevent the run from starting.
func Run(ctx context.Context, fs afero.Fs, cfg config.Config, logger *log.Logger) ([]string, error) {
	pageFiles, publicSubDirs, err := discover(fs, cfg.Input, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("discovered pages", "count", len(pageFiles), "input", cfg.Input)

	scripts := assets.NewScriptWriter(fs, logger)
	styles := assets.NewStyleWriter(fs, logger)

	var pages []*compiler.Node
	for _, file := range pageFiles {
		page, err := loadPage(fs, cfg.Input, file, scripts, styles)
		if err != nil {
			logger.Error("failed to load page", "file", file, "err", err)
			continue
		}
		logger.Debug("compiled page", "file", file, "class", page.ClassName(), "components", len(page.Children()))
		pages = append(pages, page)
	}

	for _, w := range compiler.Validate(pages) {
		logger.Warn("questionable name", "node", w.Node, "reason", w.Message)
	}

	views := writer.New(fs, writer.Dirs{
		Pages:       cfg.Views,
		Components:  cfg.Components,
		Meta:        cfg.Meta,
		Layout:      cfg.Layout,
		Controllers: cfg.Controllers,
	}, logger)

	var (
		g       errgroup.Group
		results = make([][]string, 4)
	)
	g.Go(func() error {
		var err error
		results[0], err = views.WriteAll(ctx, pages)
		return err
	})
	g.Go(func() error {
		written, err := scripts.Write(ctx, filepath.Join(cfg.Layout, "App", "scripts"))
		if err != nil {
			logger.Error("failed to write scripts", "err", err)
		}
		results[1] = written
		return nil
	})
	g.Go(func() error {
		written, err := styles.Write(ctx, filepath.Join(cfg.Layout, "App", "styles"))
		if err != nil {
			logger.Error("failed to write styles", "err", err)
		}
		results[2] = written
		return nil
	})
	g.Go(func() error {
		results[3] = copyPublic(fs, cfg.Input, cfg.Public, publicSubDirs, logger)
		return nil
	})
	err = g.Wait()

	var written []string
	for _, r := range results {
		written = append(written, r...)
	}
	return written, err
}

// discover lists the HTML pages at the input root and one folder deep, as
// slash-separated paths relative to input, and the public folders present.
// Only an unreadable input root is an error; unreadable folders are logged
// and skipped.
func discover(fs afero.Fs, input string, logger *log.Logger) ([]string, []string, error) {
	entries, err := afero.ReadDir(fs, input)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read input directory %s: %w", input, err)
	}

	var pages, public []string
	for _, e := range entries {
		switch {
		case e.IsDir() && publicDirs[e.Name()]:
			public = append(public, e.Name())
		case e.IsDir():
			dir := filepath.Join(input, e.Name())
			sub, err := afero.ReadDir(fs, dir)
			if err != nil {
				logger.Error("failed to read page directory", "dir", dir, "err", err)
				continue
			}
			for _, f := range sub {
				if !f.IsDir() && path.Ext(f.Name()) == ".html" {
					pages = append(pages, e.Name()+"/"+f.Name())
				}
			}
		case path.Ext(e.Name()) == ".html":
			pages = append(pages, e.Name())
		}
	}
	sort.Strings(pages)
	return pages, public, nil
}

// pageName derives the node name and parent group of a page file:
// "index.html" is the home page and "blog/post.html" is BlogPost under blog.
func pageName(file string) (name, parent string) {
	if file == "index.html" {
		file = "home.html"
	}
	segments := strings.Split(strings.TrimSuffix(file, ".html"), "/")
	if len(segments) > 1 {
		parent = segments[0]
	}
	for i, s := range segments {
		if r, size := utf8.DecodeRuneInString(s); size > 0 {
			segments[i] = string(unicode.ToUpper(r)) + s[size:]
		}
	}
	return strings.Join(segments, ""), parent
}

func loadPage(fs afero.Fs, input, file string, scripts compiler.ScriptSink, styles compiler.StyleSink) (*compiler.Node, error) {
	f, err := fs.Open(filepath.Join(input, filepath.FromSlash(file)))
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	name, parent := pageName(file)
	return compiler.LoadPage(f, compiler.PageOptions{
		Name:    name,
		Parent:  parent,
		Scripts: scripts,
		Styles:  styles,
	})
}

// copyPublic copies the public folders of input into dst.
func copyPublic(fs afero.Fs, input, dst string, dirs []string, logger *log.Logger) []string {
	var written []string
	for _, dir := range dirs {
		src := filepath.Join(input, dir)
		err := afero.Walk(fs, src, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			rel, err := filepath.Rel(input, p)
			if err != nil {
				return err
			}
			target := filepath.Join(dst, rel)
			if info.IsDir() {
				return fs.MkdirAll(target, 0o755)
			}
			if err := copyFile(fs, p, target); err != nil {
				logger.Error("failed to copy public file", "path", p, "err", err)
				return nil
			}
			written = append(written, target)
			return nil
		})
		if err != nil {
			logger.Error("failed to copy public directory", "dir", src, "err", err)
		}
	}
	return written
}

func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := fs.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
