package ingest

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReaderReadsPlainText(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cps.txt")
	writeFile(t, path, "\n  CAHIER DES PRESCRIPTIONS SPECIALES\nArticle 1  \n\n")

	doc, err := NewReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, "cps.txt", doc.Name)
	assert.Equal(t, path, doc.Path)
	assert.Equal(t, "CAHIER DES PRESCRIPTIONS SPECIALES\nArticle 1", doc.Text)
}

func TestReaderConvertsHTMLToMarkdown(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notice.HTML")
	writeFile(t, path, `<html><head><style>body{}</style><script>track()</script></head><body>
<h1>Request for Tender</h1>
<p>Deadline: <strong>30 April 2026</strong></p>
<table><tr><th>Lot</th><th>Scope</th></tr><tr><td>1</td><td>Civil works</td></tr></table>
</body></html>`)

	doc, err := NewReader().Read(path)
	require.NoError(t, err)
	assert.Contains(t, doc.Text, "# Request for Tender")
	assert.Contains(t, doc.Text, "**30 April 2026**")
	assert.Contains(t, doc.Text, "| Lot | Scope |")
	assert.NotContains(t, doc.Text, "track()")
	assert.NotContains(t, doc.Text, "body{}")
}

func TestReaderRejectsUnsupportedAndEmptyDocuments(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	pdf := filepath.Join(dir, "cps.pdf")
	writeFile(t, pdf, "%PDF-1.7")
	empty := filepath.Join(dir, "empty.md")
	writeFile(t, empty, "  \n")

	reader := NewReader()

	_, err := reader.Read(pdf)
	require.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = reader.Read(empty)
	require.ErrorContains(t, err, "is empty")

	_, err = reader.Read(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestExpandResolvesGlobsAndLiterals(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "lots", "b.md"), "b")
	writeFile(t, filepath.Join(dir, "lots", "deep", "c.html"), "<p>c</p>")
	writeFile(t, filepath.Join(dir, "lots", "annex.pdf"), "pdf")
	writeFile(t, filepath.Join(dir, "z.pdf"), "pdf")

	paths, err := Expand([]string{
		filepath.Join(dir, "**", "*"),
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "z.pdf"),
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "lots", "b.md"),
		filepath.Join(dir, "lots", "deep", "c.html"),
		filepath.Join(dir, "z.pdf"),
	}, paths)
}

func TestExpandErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	_, err := Expand([]string{filepath.Join(dir, "*.txt")})
	require.ErrorIs(t, err, ErrNoDocuments)

	_, err = Expand([]string{filepath.Join(dir, "missing.txt")})
	require.ErrorIs(t, err, os.ErrNotExist)

	_, err = Expand([]string{dir})
	require.ErrorContains(t, err, "is a directory")
}

func TestWatcherReportsNewDocumentsOnce(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	watcher, err := NewWatcher(dir, 20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watcher.Run(ctx)

	path := filepath.Join(dir, "tender.txt")
	writeFile(t, path, "CPS lot 1")
	writeFile(t, filepath.Join(dir, "ignored.pdf"), "pdf")

	select {
	case got := <-watcher.Events():
		assert.Equal(t, path, got)
	case <-time.After(5 * time.Second):
		t.Fatal("no watch event")
	}

	// Same content again is not reported.
	writeFile(t, path, "CPS lot 1")
	select {
	case got := <-watcher.Events():
		t.Fatalf("unexpected event for %s", got)
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	for range watcher.Events() {
	}
}

func TestNewWatcherRequiresDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	writeFile(t, file, "x")

	_, err := NewWatcher(file, 0, nil)
	require.ErrorContains(t, err, "is not a directory")

	_, err = NewWatcher(filepath.Join(dir, "missing"), 0, nil)
	require.ErrorIs(t, err, os.ErrNotExist)
}
