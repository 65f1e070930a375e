// Package loader reads roadmap documents from disk.
//
// A roadmap file may start with YAML front matter carrying per-document
// settings. Front matter is only honoured when it sets at least one known
// key, because many roadmaps open with a plain "---" separator.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/gubarz/roadforge/internal/parser"
	"gopkg.in/yaml.v3"
)

// ErrNotMarkdown is returned for files without a markdown extension
var ErrNotMarkdown = errors.New("not a markdown file")

var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Meta holds per-document settings from front matter
type Meta struct {
	Title           string   `yaml:"title"`
	StartDate       string   `yaml:"start_date"`
	ExcludeSections []string `yaml:"exclude_sections"`
}

// IsZero reports whether no known key was set
func (m Meta) IsZero() bool {
	return m.Title == "" && m.StartDate == "" && len(m.ExcludeSections) == 0
}

// Document is a roadmap file with its front matter split off
type Document struct {
	Path string
	Meta Meta
	Body string
}

// Load reads and splits a markdown file
func Load(path string) (*Document, error) {
	if !IsMarkdown(path) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotMarkdown)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(path, f)
}

// Read splits a document from any reader. name is only used for reporting.
func Read(name string, r io.Reader) (*Document, error) {
	source, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	doc := &Document{Path: name, Body: string(source)}

	var meta Meta
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta, yamlFormat)
	if err != nil || meta.IsZero() {
		// Not front matter after all; keep the document untouched
		return doc, nil
	}

	doc.Meta = meta
	doc.Body = string(body)
	return doc, nil
}

// Parse parses the document body. Sections listed in the front matter
// replace the exclusion set given by opts, and a front matter title
// replaces the extracted one.
func (d *Document) Parse(opts ...parser.Option) *parser.Roadmap {
	roadmap := d.Parser(opts...).Parse(d.Body)
	if title := strings.TrimSpace(d.Meta.Title); title != "" {
		roadmap.Title = title
	}
	return roadmap
}

// Parser returns a parser configured by opts and then by the front matter,
// so front matter exclusions win over the caller's
func (d *Document) Parser(opts ...parser.Option) *parser.Parser {
	if len(d.Meta.ExcludeSections) > 0 {
		opts = append(opts, parser.WithExcludedSections(d.Meta.ExcludeSections...))
	}
	return parser.NewParser(opts...)
}

// IsMarkdown reports whether path has a markdown extension
func IsMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}

// Discover lists markdown files under root matching a doublestar pattern
// such as "**/*.md". Paths are joined with root and sorted.
func Discover(root, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern %q", pattern)
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", root, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if !IsMarkdown(m) {
			continue
		}
		paths = append(paths, filepath.Join(root, filepath.FromSlash(m)))
	}
	sort.Strings(paths)

	return paths, nil
}

// LoadAll loads every path, stopping at the first error
func LoadAll(paths []string) ([]*Document, error) {
	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		doc, err := Load(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("roadmap vanished during scan: %w", err)
			}
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
