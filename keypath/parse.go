package keypath

import (
	"fmt"
	"log/slog"
	"strconv"
)

// Parse converts a path string into a Path.
//
// Unbalanced or misordered brackets and braces, an index that is not a
// non-negative integer, and a meta tag that does not precede a segment are
// reported as *SyntaxError matching ErrPathSyntax. Text that cannot be
// classified, such as text right after \], additionally matches
// ErrUnknownTokenType.
func Parse(text string) (Path, error) {
	toks := cachedTokenize(text)
	keys := make([]Key, 0, len(toks))

	var (
		meta    string
		hasMeta bool
	)

	emit := func(k Key) {
		if hasMeta {
			k = k.WithMeta(meta)
			meta, hasMeta = "", false
		}

		keys = append(keys, k)
	}

	for i := 0; i < len(toks); i++ {
		switch toks[i].kind {
		case tokMetaOpen:
			j := i + 1
			if j < len(toks) && toks[j].kind == tokText {
				meta = toks[j].text
				j++
			}

			if j >= len(toks) || toks[j].kind != tokMetaClose {
				return Path{}, syntaxError(toks, i, `unclosed meta tag, expected \}`, false)
			}

			if j+1 >= len(toks) || (toks[j+1].kind != tokDot && toks[j+1].kind != tokIndexOpen) {
				return Path{}, syntaxError(toks, j, "meta tag must be followed by a segment", false)
			}

			hasMeta = true
			i = j
		case tokDot:
			name := ""
			if i+1 < len(toks) && toks[i+1].kind == tokText {
				name = toks[i+1].text
				i++
			}

			emit(Attr(name))
		case tokIndexOpen:
			position, err := parseIndex(toks, i)
			if err != nil {
				return Path{}, err
			}

			emit(Index(position))

			i += 2
		case tokText:
			if i != 0 {
				return Path{}, syntaxError(toks, i, "text is not part of any segment", true)
			}

			slog.Warn("path segment without leading separator is deprecated",
				slog.String("path", text),
				slog.String("suggest", `\.`+toks[i].raw))
			emit(Attr(toks[i].text))
		case tokIndexClose:
			return Path{}, syntaxError(toks, i, `unbalanced \], no matching \[`, false)
		case tokMetaClose:
			return Path{}, syntaxError(toks, i, `unbalanced \}, no matching \{`, false)
		}
	}

	return Path{keys: keys}, nil
}

// MustParse is like Parse but panics on error. It is meant for path literals.
func MustParse(text string) Path {
	p, err := Parse(text)
	if err != nil {
		panic(fmt.Sprintf("keypath: MustParse(%q): %v", text, err))
	}

	return p
}

// parseIndex reads \[ <digits> \] starting at toks[open].
func parseIndex(toks []token, open int) (int, error) {
	if open+1 >= len(toks) || toks[open+1].kind != tokText {
		return 0, syntaxError(toks, open, `expected index after \[`, false)
	}

	if open+2 >= len(toks) || toks[open+2].kind != tokIndexClose {
		return 0, syntaxError(toks, open, `unclosed index, expected \]`, false)
	}

	digits := toks[open+1].text
	for i := range len(digits) {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, syntaxError(toks, open+1, "index must be a non-negative integer", false)
		}
	}

	position, err := strconv.Atoi(digits)
	if err != nil {
		return 0, syntaxError(toks, open+1, "index out of range", false)
	}

	return position, nil
}

func syntaxError(toks []token, index int, msg string, unknown bool) *SyntaxError {
	raw := make([]string, len(toks))
	for i, t := range toks {
		raw[i] = t.raw
	}

	return &SyntaxError{
		TokenInfo: TokenInfo{Tokens: raw, Index: index},
		Msg:       msg,
		unknown:   unknown,
	}
}
