package extract

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dgallion1/shelters/internal/parser"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func runOn(t *testing.T, path string, opts Options) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e := NewExtractor(&parser.HTMLTokenizer{}, &out, nil, opts)
	err := e.Run(context.Background(), path)
	return out.String(), err
}

func TestRun_PrintsEachTextNode(t *testing.T) {
	path := writeFile(t, "page.html", "<p>Hello <b>world</b></p>")
	got, err := runOn(t, path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Encountered some data  : Hello \nEncountered some data  : world\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRun_EmbeddedNewlinesVerbatim(t *testing.T) {
	path := writeFile(t, "multi.html", "<pre>line one\nline two</pre>")
	got, err := runOn(t, path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "Encountered some data  : line one\nline two\n"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestRun_NoTagsIsSingleNode(t *testing.T) {
	path := writeFile(t, "plain.html", "no markup here")
	got, err := runOn(t, path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Encountered some data  : no markup here\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRun_OnlyTagsPrintsNothing(t *testing.T) {
	path := writeFile(t, "tags.html", "<html><body><div></div></body></html>")
	got, err := runOn(t, path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestRun_Idempotent(t *testing.T) {
	path := writeFile(t, "twice.html", "<h1>A</h1>\n<p>B &amp; C</p>\n")
	first, err := runOn(t, path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := runOn(t, path, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Errorf("expected byte-identical output, got %q and %q", first, second)
	}
}

func TestRun_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.html")
	got, err := runOn(t, path, Options{})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, ErrFileAccess) {
		t.Errorf("expected ErrFileAccess, got %v", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected wrapped fs.ErrNotExist, got %v", err)
	}
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestRun_DirectoryIsUnreadable(t *testing.T) {
	got, err := runOn(t, t.TempDir(), Options{})
	if !errors.Is(err, ErrFileAccess) {
		t.Fatalf("expected ErrFileAccess, got %v", err)
	}
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestRun_MaxInputBytes(t *testing.T) {
	path := writeFile(t, "big.html", "<p>"+strings.Repeat("x", 100)+"</p>")
	_, err := runOn(t, path, Options{MaxInputBytes: 10})
	if !errors.Is(err, ErrFileAccess) {
		t.Fatalf("expected ErrFileAccess for oversized input, got %v", err)
	}

	got, err := runOn(t, path, Options{MaxInputBytes: 1024})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(got, DataPrefix) {
		t.Errorf("expected output to start with prefix, got %q", got)
	}
}

func TestRun_AutoEncoding(t *testing.T) {
	path := writeFile(t, "latin1.html", "<meta charset=\"iso-8859-1\"><p>caf\xe9</p>")
	got, err := runOn(t, path, Options{Encoding: parser.EncodingAuto})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Encountered some data  : café\n" {
		t.Errorf("unexpected output %q", got)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	path := writeFile(t, "page.html", "<p>x</p>")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	e := NewExtractor(nil, &out, nil, Options{})
	if err := e.Run(ctx, path); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no output, got %q", out.String())
	}
}

func TestRun_InvalidUTF8IsUnreadable(t *testing.T) {
	path := writeFile(t, "bad.html", "<p>caf\xe9</p>")
	got, err := runOn(t, path, Options{})
	if !errors.Is(err, ErrFileAccess) {
		t.Fatalf("expected ErrFileAccess, got %v", err)
	}
	if !errors.Is(err, parser.ErrInvalidUTF8) {
		t.Errorf("expected wrapped ErrInvalidUTF8, got %v", err)
	}
	if got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestRun_UnknownEncodingLabel(t *testing.T) {
	path := writeFile(t, "page.html", "<p>x</p>")
	_, err := runOn(t, path, Options{Encoding: "no-such-charset"})
	if !errors.Is(err, parser.ErrUnknownEncoding) {
		t.Fatalf("expected ErrUnknownEncoding, got %v", err)
	}
	if errors.Is(err, ErrFileAccess) {
		t.Errorf("unknown label is not a file access error: %v", err)
	}
}

func TestLoad_KeepsPathAndContent(t *testing.T) {
	path := writeFile(t, "doc.html", "<p>x</p>")
	e := NewExtractor(nil, nil, nil, Options{})
	doc, err := e.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Path != path {
		t.Errorf("expected path %q, got %q", path, doc.Path)
	}
	if doc.Content != "<p>x</p>" {
		t.Errorf("expected content %q, got %q", "<p>x</p>", doc.Content)
	}
}
