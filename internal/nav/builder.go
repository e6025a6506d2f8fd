package nav

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"

	derrors "git.home.luguber.info/inful/rhaidoc/internal/foundation/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/frontmatter"
	"git.home.luguber.info/inful/rhaidoc/internal/logfields"
	"git.home.luguber.info/inful/rhaidoc/internal/markdown"
	naverrors "git.home.luguber.info/inful/rhaidoc/internal/nav/errors"
	"git.home.luguber.info/inful/rhaidoc/internal/script"
)

// ScriptParser extracts function definitions from one script file.
type ScriptParser interface {
	Parse(path string) (*script.File, error)
}

// ParserFunc adapts a function to ScriptParser.
type ParserFunc func(path string) (*script.File, error)

// Parse calls f(path).
func (f ParserFunc) Parse(path string) (*script.File, error) { return f(path) }

// Options configures discovery.
type Options struct {
	PagesDir        string
	ScriptsDir      string
	PageExtension   string // without leading dot; defaults to "md"
	ScriptExtension string // without leading dot; defaults to "rhai"
	// Index is the page file name, relative to PagesDir, rendered as index.html.
	Index          string
	IncludePrivate bool
	// Parser defaults to script.Parse.
	Parser ScriptParser
}

// Builder discovers pages and scripts and produces a Graph.
type Builder struct {
	opts Options
}

// NewBuilder creates a Builder, filling unset options with defaults.
func NewBuilder(opts Options) *Builder {
	if opts.PageExtension == "" {
		opts.PageExtension = "md"
	}
	if opts.ScriptExtension == "" {
		opts.ScriptExtension = "rhai"
	}
	if opts.Parser == nil {
		opts.Parser = ParserFunc(script.Parse)
	}
	return &Builder{opts: opts}
}

// Build runs discovery.
//
// Unreadable files and pages without a leading heading are logged and skipped.
// A script that fails to parse, or two inputs that map to the same output
// link, abort the build.
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		Parsed:         make(map[string]*script.File),
		Bodies:         make(map[string][]byte),
		includePrivate: b.opts.IncludePrivate,
	}

	pages, err := b.pages(g)
	if err != nil {
		return nil, err
	}
	g.Pages = pages

	scripts, err := b.scripts(g)
	if err != nil {
		return nil, err
	}
	g.Scripts = scripts

	if err := checkCollisions(g.Pages, g.Scripts); err != nil {
		return nil, err
	}

	slog.Debug("Discovery complete", slog.Int("pages", len(g.Pages)), slog.Int("scripts", len(g.Scripts)))
	return g, nil
}

func (b *Builder) pages(g *Graph) ([]Entry, error) {
	files, err := walk(b.opts.PagesDir, b.opts.PageExtension)
	if err != nil {
		return nil, err
	}
	slices.Sort(files)

	index := ""
	if b.opts.Index != "" {
		index = filepath.Clean(filepath.Join(b.opts.PagesDir, b.opts.Index))
		if i := slices.Index(files, index); i > 0 {
			files = slices.Insert(slices.Delete(files, i, i+1), 0, index)
		}
	}

	entries := make([]Entry, 0, len(files))
	for _, path := range files {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Warn("Skipping unreadable page", logfields.Path(path),
				logfields.Error(fmt.Errorf("%w: %w", naverrors.ErrFileReadFailed, err)))
			continue
		}
		meta, body, err := frontmatter.Parse(content)
		if err != nil {
			slog.Warn("Skipping page with invalid frontmatter", logfields.Path(path), logfields.Error(err))
			continue
		}
		heading, ok := markdown.FirstHeading(body)
		if !ok {
			slog.Debug("Skipping page", logfields.Path(path), logfields.Reason(naverrors.ErrNoHeading.Error()))
			continue
		}

		name := heading
		if meta.Title != "" {
			name = meta.Title
		}
		link := outputLink(path, b.opts.PagesDir)
		if path == index {
			link = IndexLink
		}

		entries = append(entries, Entry{
			SourcePath: path,
			Name:       norm.NFC.String(name),
			Link:       link,
		})
		g.Bodies[path] = body
		slog.Debug("Discovered page", logfields.Path(path), logfields.Link(link))
	}
	return entries, nil
}

func (b *Builder) scripts(g *Graph) ([]Entry, error) {
	files, err := walk(b.opts.ScriptsDir, b.opts.ScriptExtension)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(files))
	for _, path := range files {
		parsed, err := b.opts.Parser.Parse(path)
		if err != nil {
			var perr *script.ParseError
			if stderrors.As(err, &perr) {
				return nil, derrors.WrapError(err, derrors.CategoryParse, "failed to parse script").
					WithPath(path).Fatal().Build()
			}
			slog.Warn("Skipping unreadable script", logfields.Path(path),
				logfields.Error(fmt.Errorf("%w: %w", naverrors.ErrFileReadFailed, err)))
			continue
		}
		if len(parsed.Documented(b.opts.IncludePrivate)) == 0 {
			slog.Debug("Skipping script", logfields.Path(path), logfields.Reason(naverrors.ErrNoFunctions.Error()))
			continue
		}

		link := outputLink(path, b.opts.ScriptsDir)
		entries = append(entries, Entry{
			SourcePath: path,
			Name:       displayName(path, b.opts.ScriptsDir),
			Link:       link,
		})
		g.Parsed[path] = parsed
		slog.Debug("Discovered script", logfields.Path(path), logfields.Link(link),
			logfields.Count(len(parsed.Functions)))
	}
	return entries, nil
}

// walk lists files under root with the given extension in WalkDir order.
// A missing root yields no files.
func walk(root, ext string) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	if _, err := os.Stat(root); stderrors.Is(err, fs.ErrNotExist) {
		slog.Debug("Directory not found", logfields.Path(root))
		return nil, nil
	}

	suffix := "." + ext
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Warn("Skipping unreadable directory", logfields.Path(path), logfields.Error(err))
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == suffix {
			files = append(files, filepath.Clean(path))
		}
		return nil
	})
	if err != nil {
		return nil, derrors.WrapError(fmt.Errorf("%w: %w", naverrors.ErrDirWalkFailed, err),
			derrors.CategoryFileSystem, "failed to list directory").WithPath(root).Build()
	}
	return files, nil
}

// outputLink maps a source file to its slash-separated output path relative to
// root with an html extension. Files outside root keep their full path.
func outputLink(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = path
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return norm.NFC.String(filepath.ToSlash(rel))
}

func displayName(path, root string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = path
	}
	return norm.NFC.String(filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel))))
}

func checkCollisions(lists ...[]Entry) error {
	owners := make(map[string]string)
	for _, list := range lists {
		for _, e := range list {
			if other, dup := owners[e.Link]; dup {
				return derrors.WrapError(fmt.Errorf("%w: %s", naverrors.ErrPathCollision, e.Link),
					derrors.CategoryValidation, "two inputs map to the same output file").
					WithPath(e.SourcePath).
					WithContext("other", other).
					WithContext("link", e.Link).
					Fatal().Build()
			}
			owners[e.Link] = e.SourcePath
		}
	}
	return nil
}
