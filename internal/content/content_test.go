package content

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	md := "# Im Café\n\nErste Zeile.\nZweite Zeile.\n\n## Zwischentitel\n\nNoch ein Absatz.\n"
	title, paragraphs := Parse([]byte(md))
	assert.Equal(t, "Im Café", title)
	assert.Equal(t, []string{"Erste Zeile. Zweite Zeile.", "Noch ein Absatz."}, paragraphs)
}

func TestParse_NoTitle(t *testing.T) {
	title, paragraphs := Parse([]byte("Nur Text.\n"))
	assert.Empty(t, title)
	assert.Equal(t, []string{"Nur Text."}, paragraphs)
}

func TestParse_LongParagraph(t *testing.T) {
	long := strings.TrimSpace(strings.Repeat("Ein sehr langer Satz ohne Umbruch. ", 4000))
	require.Greater(t, len(long), 64*1024)

	title, paragraphs := Parse([]byte("# Lang\n\n" + long + "\n\nEnde.\n"))
	assert.Equal(t, "Lang", title)
	require.Len(t, paragraphs, 2)
	assert.Equal(t, long, paragraphs[0])
	assert.Equal(t, "Ende.", paragraphs[1])
}

func TestStripOrder(t *testing.T) {
	assert.Equal(t, "im-cafe", stripOrder("01-im-cafe"))
	assert.Equal(t, "im-cafe", stripOrder("im-cafe"))
	assert.Equal(t, "2024", stripOrder("2024"))
	assert.Equal(t, "01-", stripOrder("01-"))
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"alltag/_topic.md":     {Data: []byte("# Alltag\n\nTexte über den Alltag.\n")},
		"alltag/02-markt.md":   {Data: []byte("# Der Markt\n\nEin Absatz.\n")},
		"alltag/01-cafe.md":    {Data: []byte("# Im Café\n\nErster Absatz.\n\nZweiter Absatz.\n")},
		"alltag/notes.txt":     {Data: []byte("ignored")},
		"leer/_topic.md":       {Data: []byte("# Leer\n")},
		"reisen/bahn.md":       {Data: []byte("Ohne Titel.\n")},
		"reisen/nur-titel.md":  {Data: []byte("# Nur Titel\n")},
	}

	lib, err := Load(fsys)
	require.NoError(t, err)

	topics := lib.Topics()
	require.Len(t, topics, 2)
	assert.Equal(t, "alltag", topics[0].ID)
	assert.Equal(t, "Alltag", topics[0].Title)
	assert.Equal(t, "Texte über den Alltag.", topics[0].Description)
	assert.Equal(t, []TextInfo{{ID: "cafe", Title: "Im Café"}, {ID: "markt", Title: "Der Markt"}}, topics[0].Texts)

	assert.Equal(t, "reisen", topics[1].Title)
	assert.Equal(t, []TextInfo{{ID: "bahn", Title: "bahn"}}, topics[1].Texts)

	text, err := lib.Text("alltag", "cafe")
	require.NoError(t, err)
	assert.Equal(t, []string{"Erster Absatz.", "Zweiter Absatz."}, text.Paragraphs)

	_, err = lib.Text("alltag", "kino")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = lib.Topic("leer")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 3, lib.Len())
}

func TestLoad_DuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"alltag/01-cafe.md": {Data: []byte("# A\n\nx\n")},
		"alltag/02-cafe.md": {Data: []byte("# B\n\ny\n")},
	}
	_, err := Load(fsys)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	lib, err := Default()
	require.NoError(t, err)
	require.NotEmpty(t, lib.Topics())

	for _, topic := range lib.Topics() {
		for _, info := range topic.Texts {
			text, err := lib.Text(topic.ID, info.ID)
			require.NoError(t, err)
			assert.NotEmpty(t, text.Paragraphs, "%s/%s", topic.ID, info.ID)
		}
	}

	text, err := lib.Text("alltag", "im-cafe")
	require.NoError(t, err)
	assert.Equal(t, "Im Café", text.Title)
}

func TestLoadDir(t *testing.T) {
	_, err := LoadDir(t.TempDir() + "/missing")
	assert.Error(t, err)

	lib, err := LoadDir("texts")
	require.NoError(t, err)
	assert.Greater(t, lib.Len(), 0)
}
