package parser

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultFallbackEncoding covers GBK/GB2312 manuscripts, the common case for
// non-UTF-8 web novels.
const DefaultFallbackEncoding = "gb18030"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// decodeText turns raw manuscript bytes into NFC-normalized UTF-8 with LF
// line endings. BOM-marked input is decoded per its BOM; other input that is
// not valid UTF-8 is decoded with the fallback encoding.
func decodeText(data []byte, fallback string) (string, error) {
	var text string
	switch {
	case bytes.HasPrefix(data, bomUTF8), bytes.HasPrefix(data, bomUTF16BE), bytes.HasPrefix(data, bomUTF16LE):
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
		if err != nil {
			return "", fmt.Errorf("decode bom text: %w", err)
		}
		text = string(out)
	case utf8.Valid(data):
		text = string(data)
	default:
		if fallback == "" {
			fallback = DefaultFallbackEncoding
		}
		enc, err := htmlindex.Get(fallback)
		if err != nil {
			return "", fmt.Errorf("fallback encoding %q: %w", fallback, err)
		}
		out, _, err := transform.Bytes(enc.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("decode %s text: %w", fallback, err)
		}
		text = string(out)
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return norm.NFC.String(text), nil
}
