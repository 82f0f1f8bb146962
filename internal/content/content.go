// Package content loads the reading library: topics are directories, texts
// are markdown files inside them.
//
// A text file starts with a "# Title" heading followed by paragraphs
// separated by blank lines. A file named _topic.md holds the topic title
// and description. A numeric prefix such as "01-" orders files and is not
// part of the id.
package content

import (
	"bufio"
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

//go:embed all:texts
var embedded embed.FS

// ErrNotFound is returned for unknown topics and texts.
var ErrNotFound = errors.New("not found")

const topicFile = "_topic.md"

// Text is one reading text.
type Text struct {
	TopicID    string   `json:"topic_id"`
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Paragraphs []string `json:"paragraphs"`
}

// TextInfo is the listing form of a text.
type TextInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Topic groups texts.
type Topic struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Texts       []TextInfo `json:"texts"`
}

// Library is an immutable set of topics and texts.
type Library struct {
	topics []Topic
	texts  map[string]*Text
}

// Default loads the library compiled into the binary.
func Default() (*Library, error) {
	sub, err := fs.Sub(embedded, "texts")
	if err != nil {
		return nil, fmt.Errorf("open embedded texts: %w", err)
	}
	return Load(sub)
}

// LoadDir loads a library from a directory on disk.
func LoadDir(dir string) (*Library, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("open content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s: not a directory", dir)
	}
	return Load(os.DirFS(dir))
}

type loadedTopic struct {
	topic Topic
	texts []*Text
}

// Load reads every topic directory at the root of fsys. Topics are parsed
// concurrently. Topics without texts are skipped.
func Load(fsys fs.FS) (*Library, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			dirs = append(dirs, e.Name())
		}
	}

	loaded := make([]loadedTopic, len(dirs))
	var g errgroup.Group
	g.SetLimit(4)
	for i, dir := range dirs {
		g.Go(func() error {
			lt, err := loadTopic(fsys, dir)
			if err != nil {
				return err
			}
			loaded[i] = lt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lib := &Library{texts: make(map[string]*Text)}
	for _, lt := range loaded {
		if len(lt.texts) == 0 {
			continue
		}
		lib.topics = append(lib.topics, lt.topic)
		for _, t := range lt.texts {
			lib.texts[key(t.TopicID, t.ID)] = t
		}
	}
	return lib, nil
}

func loadTopic(fsys fs.FS, dir string) (loadedTopic, error) {
	id := stripOrder(dir)
	lt := loadedTopic{topic: Topic{ID: id, Title: id}}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return lt, fmt.Errorf("read topic %s: %w", dir, err)
	}

	seen := make(map[string]string)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || path.Ext(name) != ".md" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return lt, fmt.Errorf("read %s/%s: %w", dir, name, err)
		}

		if name == topicFile {
			title, paragraphs := Parse(data)
			if title != "" {
				lt.topic.Title = title
			}
			lt.topic.Description = strings.Join(paragraphs, "\n\n")
			continue
		}

		textID := stripOrder(strings.TrimSuffix(name, ".md"))
		if prev, ok := seen[textID]; ok {
			return lt, fmt.Errorf("topic %s: %s and %s share the id %q", dir, prev, name, textID)
		}
		seen[textID] = name

		title, paragraphs := Parse(data)
		if title == "" {
			title = textID
		}
		if len(paragraphs) == 0 {
			continue
		}
		lt.texts = append(lt.texts, &Text{
			TopicID:    id,
			ID:         textID,
			Title:      title,
			Paragraphs: paragraphs,
		})
		lt.topic.Texts = append(lt.topic.Texts, TextInfo{ID: textID, Title: title})
	}
	return lt, nil
}

// Parse splits a markdown text into its title and paragraphs. Lines of one
// paragraph are joined with a space. Headings other than the first level-one
// heading are dropped.
func Parse(data []byte) (title string, paragraphs []string) {
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			paragraphs = append(paragraphs, strings.Join(cur, " "))
			cur = nil
		}
	}

	sc := bufio.NewScanner(bytes.NewReader(data))
	// A paragraph may be one long line; no line is longer than data.
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, "# ") && title == "":
			flush()
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, "#"):
			flush()
		default:
			cur = append(cur, line)
		}
	}
	flush()
	return title, paragraphs
}

// stripOrder removes a leading "NN-" ordering prefix.
func stripOrder(name string) string {
	i := strings.IndexFunc(name, func(r rune) bool { return r < '0' || r > '9' })
	if i > 0 && name[i] == '-' && i+1 < len(name) {
		return name[i+1:]
	}
	return name
}

func key(topicID, textID string) string {
	return topicID + "/" + textID
}

// Topics returns all topics in directory order.
func (l *Library) Topics() []Topic {
	return slices.Clone(l.topics)
}

// Topic returns one topic.
func (l *Library) Topic(id string) (Topic, error) {
	for _, t := range l.topics {
		if t.ID == id {
			return t, nil
		}
	}
	return Topic{}, fmt.Errorf("topic %q: %w", id, ErrNotFound)
}

// Text returns one text.
func (l *Library) Text(topicID, textID string) (*Text, error) {
	t, ok := l.texts[key(topicID, textID)]
	if !ok {
		return nil, fmt.Errorf("text %s/%s: %w", topicID, textID, ErrNotFound)
	}
	return t, nil
}

// Len returns the number of texts.
func (l *Library) Len() int {
	return len(l.texts)
}
