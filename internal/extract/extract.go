package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dgallion1/shelters/internal/doctree"
	"github.com/dgallion1/shelters/internal/parser"
)

// DataPrefix starts every printed text node line.
const DataPrefix = "Encountered some data  :"

// ErrFileAccess wraps any failure to open or read the input file.
var ErrFileAccess = errors.New("file not found or unreadable")

// Extractor prints the text nodes of an HTML file.
type Extractor struct {
	tokenizer     parser.Tokenizer
	out           io.Writer
	log           *slog.Logger
	encoding      string
	maxInputBytes int64
}

// Options tunes how input files are read.
type Options struct {
	Encoding      string // Passed to parser.Decode
	MaxInputBytes int64  // 0 means unlimited
}

func NewExtractor(tok parser.Tokenizer, out io.Writer, log *slog.Logger, opts Options) *Extractor {
	if tok == nil {
		tok = &parser.HTMLTokenizer{}
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Extractor{
		tokenizer:     tok,
		out:           out,
		log:           log,
		encoding:      opts.Encoding,
		maxInputBytes: opts.MaxInputBytes,
	}
}

// Run reads the whole file at path, feeds it to the tokenizer and writes
// one line per text node.
func (e *Extractor) Run(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	doc, err := e.Load(path)
	if err != nil {
		return err
	}

	count := 0
	var writeErr error
	err = e.tokenizer.Feed(doc.Content, parser.Handlers{
		Data: func(data string) {
			if writeErr != nil {
				return
			}
			writeErr = WriteNode(e.out, doctree.TextNode{Data: data})
			count++
		},
	})
	if err != nil {
		return err
	}
	if writeErr != nil {
		return fmt.Errorf("write output: %w", writeErr)
	}

	e.log.Debug("extraction complete", "path", doc.Path, "nodes", count)
	return nil
}

// Load reads and decodes the file at path.
func (e *Extractor) Load(path string) (*doctree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	var r io.Reader = f
	if e.maxInputBytes > 0 {
		r = io.LimitReader(f, e.maxInputBytes+1)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrFileAccess, path, err)
	}
	if e.maxInputBytes > 0 && int64(len(raw)) > e.maxInputBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFileAccess, path, e.maxInputBytes)
	}

	content, encName, err := parser.Decode(raw, e.encoding)
	if errors.Is(err, parser.ErrUnknownEncoding) {
		return nil, err
	}
	if err != nil {
		// Bytes that do not decode as text make the file unreadable.
		return nil, fmt.Errorf("%w: decode %s: %w", ErrFileAccess, path, err)
	}
	e.log.Debug("loaded input", "path", path, "bytes", len(raw), "encoding", encName)

	return &doctree.Document{Path: path, Content: content}, nil
}

// WriteNode prints a single text node line. The data is written verbatim,
// so embedded newlines span several output lines.
func WriteNode(w io.Writer, n doctree.TextNode) error {
	_, err := fmt.Fprintln(w, DataPrefix, n.Data)
	return err
}
