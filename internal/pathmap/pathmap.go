// Package pathmap computes where every exported note, resource and folder
// lands in the content tree.
package pathmap

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// CollisionSuffix is appended to a markdown stem that clashes with a sibling folder.
const CollisionSuffix = "-nested"

// InputPath is an entry discovered under the export root.
type InputPath struct {
	Abs        string
	Rel        string // slash-separated, "" for the root
	IsDir      bool
	IsMarkdown bool
}

// NewInputPath builds an InputPath for abs under root.
func NewInputPath(root, abs string, isDir bool) (InputPath, error) {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return InputPath{}, err
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}
	return InputPath{
		Abs:        abs,
		Rel:        rel,
		IsDir:      isDir,
		IsMarkdown: !isDir && filepath.Ext(abs) == ".md",
	}, nil
}

// Mapping is the destination of an InputPath.
type Mapping struct {
	Rel     string // slash-separated, relative to the content root
	Section string // tag-routed section, "" when the directory layout is kept
	Abs     string
}

// Dir is the absolute directory the mapped entry lives in. For directories it
// is the directory itself.
func (m Mapping) Dir(isDir bool) string {
	if isDir {
		return m.Abs
	}
	return filepath.Dir(m.Abs)
}

// Options control slugification.
type Options struct {
	Slugify   bool
	Lowercase bool
}

// Mapper maps export paths onto the content tree.
type Mapper struct {
	content string
	opts    Options
}

// New returns a Mapper writing under contentRoot.
func New(contentRoot string, opts Options) *Mapper {
	return &Mapper{content: filepath.Clean(contentRoot), opts: opts}
}

// ContentRoot is the absolute content directory.
func (m *Mapper) ContentRoot() string { return m.content }

// SlugifyPath applies the configured slug rules to a relative path, or returns
// it unchanged when slugification is off.
func (m *Mapper) SlugifyPath(rel string, isDir bool) string {
	if !m.opts.Slugify {
		return strings.Trim(rel, "/")
	}
	return SlugifyPath(rel, isDir, m.opts.Lowercase)
}

// Map computes the destination of in. It never fails.
func (m *Mapper) Map(in InputPath) Mapping {
	rel := in.Rel
	if in.IsMarkdown && hasSiblingDir(in.Abs) {
		dir, name := path.Split(rel)
		ext := path.Ext(name)
		rel = dir + strings.TrimSuffix(name, ext) + CollisionSuffix + ext
	}

	mapped := m.SlugifyPath(rel, in.IsDir)
	return Mapping{
		Rel: mapped,
		Abs: filepath.Join(m.content, filepath.FromSlash(mapped)),
	}
}

// WithSection moves a file mapping into <content>/<section>/<file name>.
func (m *Mapper) WithSection(mp Mapping, section string) Mapping {
	rel := path.Join(section, path.Base(mp.Rel))
	return Mapping{
		Rel:     rel,
		Section: section,
		Abs:     filepath.Join(m.content, filepath.FromSlash(rel)),
	}
}

// PageURL is the site URL of a mapped markdown page: the mapped path without
// ".md", escaped per segment.
func PageURL(mp Mapping) string {
	return EscapePath(strings.TrimSuffix(mp.Rel, ".md"))
}

// EscapePath percent-escapes every segment of a slash path and roots it at "/".
func EscapePath(rel string) string {
	rel = strings.Trim(rel, "/")
	if rel == "" || rel == "." {
		return "/"
	}
	segments := strings.Split(rel, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return "/" + strings.Join(segments, "/")
}

func hasSiblingDir(abs string) bool {
	stem := strings.TrimSuffix(abs, filepath.Ext(abs))
	info, err := os.Stat(stem)
	return err == nil && info.IsDir()
}
