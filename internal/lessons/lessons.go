// Package lessons serves the short theory pages attached to every cipher.
//
// Lessons are markdown files embedded in the binary. A directory of
// overrides may replace or extend them; files are matched by slug, which
// is the file name without its extension.
package lessons

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

//go:embed content/*.md
var embedded embed.FS

// Lesson is one markdown page.
type Lesson struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	Body    string `json:"-"`
}

// Library holds every known lesson.
type Library struct {
	md      goldmark.Markdown
	lessons map[string]Lesson
}

// Load reads the embedded lessons and then applies overrides from dir.
// An empty dir skips the overrides.
func Load(dir string) (*Library, error) {
	lib := &Library{
		md:      newMarkdown(),
		lessons: make(map[string]Lesson),
	}
	if err := lib.addFS(embedded, "content/*.md", "embedded"); err != nil {
		return nil, err
	}
	if dir == "" {
		return lib, nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("reading lessons dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("lessons dir %s is not a directory", dir)
	}
	if err := lib.addFS(os.DirFS(dir), "**/*.md", dir); err != nil {
		return nil, err
	}
	return lib, nil
}

func newMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
}

func (l *Library) addFS(fsys fs.FS, pattern, source string) error {
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return fmt.Errorf("listing lessons in %s: %w", source, err)
	}
	for _, name := range matches {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading lesson %s: %w", name, err)
		}
		slug := strings.TrimSuffix(path.Base(name), path.Ext(name))
		body := string(data)
		l.lessons[slug] = Lesson{
			Slug:    slug,
			Title:   extractTitle(body, slug),
			Summary: extractSummary(body),
			Source:  source,
			Body:    body,
		}
	}
	return nil
}

// List returns all lessons sorted by slug.
func (l *Library) List() []Lesson {
	out := make([]Lesson, 0, len(l.lessons))
	for _, lesson := range l.lessons {
		out = append(out, lesson)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}

// Get returns the lesson with the given slug.
func (l *Library) Get(slug string) (Lesson, bool) {
	lesson, ok := l.lessons[slug]
	return lesson, ok
}

// Render converts a lesson to HTML.
func (l *Library) Render(slug string) (string, error) {
	lesson, ok := l.lessons[slug]
	if !ok {
		return "", fmt.Errorf("unknown lesson %q", slug)
	}
	var buf bytes.Buffer
	if err := l.md.Convert([]byte(lesson.Body), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return buf.String(), nil
}

// extractTitle returns the first level-one heading, or a title made from
// the slug.
func extractTitle(body, slug string) string {
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	words := strings.Fields(strings.ReplaceAll(slug, "-", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// extractSummary returns the first paragraph joined onto one line.
func extractSummary(body string) string {
	var para []string
	inFence := false
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			inFence = !inFence
			continue
		}
		if inFence || strings.HasPrefix(trimmed, "#") {
			if len(para) > 0 {
				break
			}
			continue
		}
		if trimmed == "" {
			if len(para) > 0 {
				break
			}
			continue
		}
		para = append(para, trimmed)
	}
	return strings.Join(para, " ")
}
