package parser

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrUnknownEncoding is returned for an encoding label no decoder exists for.
var ErrUnknownEncoding = errors.New("unknown input encoding")

// ErrInvalidUTF8 is returned when input read as UTF-8 is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("input is not valid utf-8")

// EncodingAuto asks Decode to sniff the encoding from the document itself.
const EncodingAuto = "auto"

// Decode converts raw file bytes to the document string. An empty label or
// "utf-8" passes valid UTF-8 through untouched, BOM included, and rejects
// anything else with ErrInvalidUTF8. It returns the name of the
// encoding that was applied.
func Decode(raw []byte, label string) (string, string, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	switch label {
	case "", "utf-8", "utf8":
		if off := invalidUTF8Offset(raw); off >= 0 {
			return "", "", fmt.Errorf("%w: invalid byte 0x%02x at offset %d", ErrInvalidUTF8, raw[off], off)
		}
		return string(raw), "utf-8", nil

	case EncodingAuto:
		enc, name, _ := charset.DetermineEncoding(raw, "text/html")
		out, err := enc.NewDecoder().Bytes(raw)
		if err != nil {
			return "", "", fmt.Errorf("decode %s: %w", name, err)
		}
		return strings.TrimPrefix(string(out), "\ufeff"), name, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return "", "", fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, _ := htmlindex.Name(enc)
	out, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), name, nil
}

// invalidUTF8Offset returns the offset of the first byte that does not start
// a valid UTF-8 sequence, or -1.
func invalidUTF8Offset(b []byte) int {
	if utf8.Valid(b) {
		return -1
	}
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return -1
}
