// Package llmjson recovers JSON values from model output that may be wrapped
// in prose, markdown fences, or a CLI result envelope.
package llmjson

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
)

// maxCandidates bounds how many opening brackets are scanned from, closed
// or not, before giving up.
const maxCandidates = 64

var (
	// ErrEmpty is reported for blank input.
	ErrEmpty = errors.New("empty input")

	// ErrNoJSON is reported when no decodable JSON value is present.
	ErrNoJSON = errors.New("no JSON value found")

	// ErrCLIReported is reported when a CLI result envelope carries is_error.
	ErrCLIReported = errors.New("CLI reported an error")
)

// Value is the outcome of a parse. Exactly one of Data or Err is meaningful:
// a successful parse of the JSON literal null has OK() == true and Data == nil.
type Value struct {
	Data any
	Err  error
}

// OK reports whether a JSON value was recovered.
func (v Value) OK() bool {
	return v.Err == nil
}

// Object returns the recovered value when it is a JSON object.
func (v Value) Object() (map[string]any, bool) {
	if !v.OK() {
		return nil, false
	}
	m, ok := v.Data.(map[string]any)
	return m, ok
}

func failure(err error) Value {
	return Value{Err: err}
}

// Parse recovers the first JSON value found in text. It never panics and never
// returns a Go error; failures are carried in Value.Err.
//
// Strategies, in order: CLI envelope unwrap, strict decode, fenced code blocks,
// then balanced {...} or [...] spans with a light repair pass.
func Parse(text string) Value {
	s := strings.TrimSpace(text)
	if s == "" {
		return failure(ErrEmpty)
	}

	if inner, isErr, ok := unwrapCLI(s); ok {
		if isErr {
			return failure(fmt.Errorf("%w: %s", ErrCLIReported, clip(inner, 200)))
		}
		s = strings.TrimSpace(inner)
		if s == "" {
			return failure(ErrEmpty)
		}
	}

	if v, ok := decode(s); ok {
		return Value{Data: v}
	}

	for _, block := range fencedBlocks(s) {
		if v, ok := decode(block); ok {
			return Value{Data: v}
		}
	}

	tried := 0
	for i := 0; i < len(s) && tried < maxCandidates; i++ {
		if s[i] != '{' && s[i] != '[' {
			continue
		}
		tried++
		span, ok := balancedSpan(s, i)
		if !ok {
			continue
		}
		if v, ok := decode(span); ok {
			return Value{Data: v}
		}
		if v, ok := decode(repair(span)); ok {
			return Value{Data: v}
		}
	}

	return failure(ErrNoJSON)
}

// ParseAny accepts either raw text or an already-decoded value. Strings are
// parsed; maps, slices and scalars are returned as they are.
func ParseAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return failure(ErrEmpty)
	case string:
		return Parse(t)
	case []byte:
		return Parse(string(t))
	default:
		return Value{Data: t}
	}
}

func decode(s string) (any, bool) {
	if !gjson.Valid(s) {
		return nil, false
	}
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	return v, true
}

// unwrapCLI handles {"type":"result","result":"...","is_error":false}.
func unwrapCLI(s string) (inner string, isErr bool, ok bool) {
	if !strings.HasPrefix(s, "{") || !gjson.Valid(s) {
		return "", false, false
	}
	env := gjson.Parse(s)
	if env.Get("type").String() != "result" || env.Get("result").Type != gjson.String {
		return "", false, false
	}
	return env.Get("result").Str, env.Get("is_error").Bool(), true
}

var fenceRe = regexp.MustCompile("(?s)```[a-zA-Z0-9_-]*[ \t]*\r?\n(.*?)```")

func fencedBlocks(s string) []string {
	matches := fenceRe.FindAllStringSubmatch(s, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		if b := strings.TrimSpace(m[1]); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}

// balancedSpan returns the text from s[start] to its matching close bracket,
// skipping brackets inside string literals.
func balancedSpan(s string, start int) (string, bool) {
	var stack []byte
	inString, escaped := false, false

	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return "", false
			}
			top := stack[len(stack)-1]
			if (c == '}' && top != '{') || (c == ']' && top != '[') {
				return "", false
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

var trailingCommaRe = regexp.MustCompile(`,(\s*[}\]])`)

var smartQuotes = strings.NewReplacer("“", `"`, "”", `"`)

// repair fixes the mistakes models make most often: trailing commas, curly
// quotes and raw control characters inside strings.
func repair(span string) string {
	s := smartQuotes.Replace(span)
	s = trailingCommaRe.ReplaceAllString(s, "$1")
	return escapeControlInStrings(s)
}

func escapeControlInStrings(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString, escaped := false, false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			b.WriteByte(c)
			continue
		}
		switch {
		case escaped:
			escaped = false
			b.WriteByte(c)
		case c == '\\':
			escaped = true
			b.WriteByte(c)
		case c == '"':
			inString = false
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\r':
			b.WriteString(`\r`)
		case c == '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
