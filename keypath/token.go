package keypath

import (
	"strings"
	"sync"
)

type tokenKind uint8

const (
	tokText tokenKind = iota
	tokDot
	tokIndexOpen
	tokIndexClose
	tokMetaOpen
	tokMetaClose
)

// token is one lexical element of a path. Text tokens carry the unescaped
// text; raw always holds the source form.
type token struct {
	kind tokenKind
	text string
	raw  string
}

// tokenCacheSize bounds the memoized tokenizations. The cache is dropped
// wholesale when full.
const tokenCacheSize = 1024

//nolint:gochecknoglobals // memo for a pure function
var tokenCache = struct {
	sync.Mutex

	entries map[string][]token
}{entries: make(map[string][]token)}

func cachedTokenize(path string) []token {
	tokenCache.Lock()
	defer tokenCache.Unlock()

	if toks, ok := tokenCache.entries[path]; ok {
		return toks
	}

	toks := tokenize(path)
	if len(tokenCache.entries) >= tokenCacheSize {
		clear(tokenCache.entries)
	}

	tokenCache.entries[path] = toks

	return toks
}

func syntaxKind(c byte) (tokenKind, bool) {
	switch c {
	case '.':
		return tokDot, true
	case '[':
		return tokIndexOpen, true
	case ']':
		return tokIndexClose, true
	case '{':
		return tokMetaOpen, true
	case '}':
		return tokMetaClose, true
	default:
		return tokText, false
	}
}

// tokenize splits path into syntax and text tokens. Bytes are scanned
// directly: every syntax character is ASCII and never part of a multi-byte
// UTF-8 sequence.
func tokenize(path string) []token {
	var (
		toks      []token
		text      strings.Builder
		textStart = -1
	)

	flush := func(end int) {
		if textStart < 0 {
			return
		}

		toks = append(toks, token{kind: tokText, text: text.String(), raw: path[textStart:end]})
		text.Reset()

		textStart = -1
	}

	for i := 0; i < len(path); i++ {
		c := path[i]
		if c == '\\' && i+1 < len(path) {
			next := path[i+1]
			if kind, ok := syntaxKind(next); ok {
				flush(i)
				toks = append(toks, token{kind: kind, raw: path[i : i+2]})
				i++

				continue
			}

			if textStart < 0 {
				textStart = i
			}

			if next == '\\' {
				text.WriteByte('\\')
				i++

				continue
			}
		}

		if textStart < 0 {
			textStart = i
		}

		text.WriteByte(c)
	}

	flush(len(path))

	return toks
}
