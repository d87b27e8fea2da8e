package llmjson

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRecoversObjects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		want  any
	}{
		{"plain object", `{"prd_title": "Widget"}`, "prd_title", "Widget"},
		{"surrounding whitespace", "\n\t {\"a\": 1}  \n", "a", float64(1)},
		{"prose prefix", `Sure! Here is the result: {"a": "b"} Hope it helps.`, "a", "b"},
		{"json fence", "```json\n{\"a\": \"fenced\"}\n```", "a", "fenced"},
		{"bare fence", "```\n{\"a\": \"bare\"}\n```", "a", "bare"},
		{"fence after prose", "Result below\n```json\n{\"a\": 2}\n```\nDone.", "a", float64(2)},
		{"trailing comma", `text {"a": "x", "b": [1, 2,],} more`, "a", "x"},
		{"braces inside strings", `note {"a": "has } and { inside"}`, "a", "has } and { inside"},
		{"raw newline in string", "{\"a\": \"line one\nline two\"}", "a", "line one\nline two"},
		{"cli envelope", `{"type":"result","is_error":false,"result":"{\"a\": \"wrapped\"}"}`, "a", "wrapped"},
		{"skips unparseable span", `see [link] then {"a": "second"}`, "a", "second"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Parse(tt.input)
			require.True(t, v.OK(), "unexpected failure: %v", v.Err)
			obj, ok := v.Object()
			require.True(t, ok, "expected object, got %T", v.Data)
			assert.Equal(t, tt.want, obj[tt.key])
		})
	}
}

func TestParseArraysAndScalars(t *testing.T) {
	v := Parse(`prefix [1, {"b": 2}] suffix`)
	require.True(t, v.OK())
	arr, ok := v.Data.([]any)
	require.True(t, ok)
	assert.Len(t, arr, 2)

	_, isObj := v.Object()
	assert.False(t, isObj)

	v = Parse(`"just a string"`)
	require.True(t, v.OK())
	assert.Equal(t, "just a string", v.Data)
}

func TestParseFailures(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"empty", "", ErrEmpty},
		{"whitespace", "   \n ", ErrEmpty},
		{"prose only", "This PRD describes a widget tracker.", ErrNoJSON},
		{"unterminated", `{"a": "b"`, ErrNoJSON},
		{"mismatched", `{"a": [1, 2}`, ErrNoJSON},
		{"cli error", `{"type":"result","is_error":true,"result":"rate limited"}`, ErrCLIReported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Parse(tt.input)
			assert.False(t, v.OK())
			assert.ErrorIs(t, v.Err, tt.want)
			assert.Nil(t, v.Data)
		})
	}
}

func TestParseUnclosedBracketsStayLinear(t *testing.T) {
	for _, opener := range []string{"[", "{"} {
		input := "note " + strings.Repeat(opener, 200000)

		start := time.Now()
		v := Parse(input)
		elapsed := time.Since(start)

		assert.False(t, v.OK())
		assert.ErrorIs(t, v.Err, ErrNoJSON)
		assert.Less(t, elapsed, 2*time.Second, "opener %q", opener)
	}
}

func TestParseSkipsUnclosedPrefix(t *testing.T) {
	v := Parse(`see [note [draft {"a": 1} end`)
	obj, ok := v.Object()
	require.True(t, ok)
	assert.Equal(t, float64(1), obj["a"])
}

func TestParseNullIsDistinctFromFailure(t *testing.T) {
	v := Parse("null")
	assert.True(t, v.OK())
	assert.Nil(t, v.Data)
}

func TestParseAny(t *testing.T) {
	m := map[string]any{"a": 1}
	v := ParseAny(m)
	require.True(t, v.OK())
	assert.Equal(t, m, v.Data)

	v = ParseAny(`{"a": 1}`)
	obj, ok := v.Object()
	require.True(t, ok)
	assert.Equal(t, float64(1), obj["a"])

	assert.False(t, ParseAny(nil).OK())
}
