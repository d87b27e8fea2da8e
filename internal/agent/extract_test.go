package agent

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustResult(t *testing.T, v any) *Result {
	t.Helper()
	r, err := FromValue(v)
	require.NoError(t, err)
	return r
}

func TestExtractDataFastPathKeepsObject(t *testing.T) {
	for _, key := range SchemaKeys {
		t.Run(key, func(t *testing.T) {
			obj := map[string]any{
				key:     "value",
				"extra": []any{"x", float64(2)},
				"nested": map[string]any{
					"deep": true,
				},
			}
			r := mustResult(t, map[string]any{
				"success":  true,
				"response": map[string]any{"result": obj},
			})

			got := ExtractData(r)
			require.True(t, got.Found)
			assert.Equal(t, "response.result", got.Stage)
			assert.Equal(t, Record(obj), got.Record)
		})
	}
}

func TestExtractDataStrategyOrder(t *testing.T) {
	tests := []struct {
		name      string
		payload   string
		wantStage string
		wantKey   string
		wantValue any
	}{
		{
			name:      "stringified json in result",
			payload:   `{"success":true,"response":{"result":"{\"prd_title\":\"From String\"}"}}`,
			wantStage: "response.result text",
			wantKey:   "prd_title",
			wantValue: "From String",
		},
		{
			name:      "fenced json in result",
			payload:   "{\"success\":true,\"response\":{\"result\":\"```json\\n{\\\"document_title\\\":\\\"Fenced\\\"}\\n```\"}}",
			wantStage: "response.result text",
			wantKey:   "document_title",
			wantValue: "Fenced",
		},
		{
			name:      "object without schema keys is accepted whole",
			payload:   `{"success":true,"response":{"result":{"text":"hello"}}}`,
			wantStage: "response",
			wantKey:   "text",
			wantValue: "hello",
		},
		{
			name:      "response used when result is empty",
			payload:   `{"success":true,"response":{"result":"","status":"ok"}}`,
			wantStage: "response",
			wantKey:   "status",
			wantValue: "ok",
		},
		{
			name:      "raw response",
			payload:   `{"success":true,"response":"plain prose","raw_response":"noise {\"prd_title\":\"Raw\"} noise"}`,
			wantStage: "raw_response",
			wantKey:   "prd_title",
			wantValue: "Raw",
		},
		{
			name:      "earlier stage wins over later",
			payload:   `{"success":true,"response":{"result":"{\"prd_title\":\"First\"}"},"raw_response":"{\"prd_title\":\"Second\"}"}`,
			wantStage: "response.result text",
			wantKey:   "prd_title",
			wantValue: "First",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractData(NewResult([]byte(tt.payload)))
			require.True(t, got.Found)
			assert.Equal(t, tt.wantStage, got.Stage)
			assert.Equal(t, tt.wantValue, got.Record[tt.wantKey])
		})
	}
}

func TestExtractDataMessageStage(t *testing.T) {
	// response is a non-object string holding no JSON, so stage 3 fails and
	// only the message field can supply the record.
	r := NewResult([]byte(`{"success":true,"response":{"result":"# Heading only","message":"{\"content_summary\":\"From message\"}"}}`))
	got := ExtractData(r)
	require.True(t, got.Found)
	assert.Equal(t, "response.message", got.Stage)
	assert.Equal(t, "From message", got.Record.String("content_summary"))
}

func TestExtractDataRejectsFailureEnvelopeAtEveryStage(t *testing.T) {
	envelope := `{\"success\":false,\"data\":null,\"error\":\"could not parse\"}`
	tests := []struct {
		name    string
		payload string
	}{
		{"result object", `{"success":true,"response":{"result":{"success":false,"data":null,"industry":"x"}}}`},
		{"result string", `{"success":true,"response":{"result":"` + envelope + `"}}`},
		{"whole response", `{"success":true,"response":{"success":false,"data":null}}`},
		{"raw response", `{"success":true,"raw_response":"` + envelope + `"}`},
		{"message", `{"success":true,"response":{"result":"prose","message":"` + envelope + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractData(NewResult([]byte(tt.payload)))
			assert.False(t, got.Found, "unexpected record %v", got.Record)
		})
	}
}

func TestExtractDataNothingPresent(t *testing.T) {
	for _, payload := range []string{
		`{}`,
		`{"success":true}`,
		`not json`,
		`{"response":null}`,
		`{"success":true,"response":{}}`,
		`{"success":true,"response":{"result":null,"message":""}}`,
		`{"success":true,"response":{"result":{},"message":"  "}}`,
		`{"success":true,"response":{"result":0,"message":null}}`,
		`{"success":true,"response":{"result":42}}`,
		`{"success":true,"response":{"result":[]}}`,
		`{"success":true,"response":{"result":false},"raw_response":false}`,
		`{"success":true,"response":{"message":7},"raw_response":""}`,
	} {
		got := ExtractData(NewResult([]byte(payload)))
		assert.False(t, got.Found, payload)
		assert.Equal(t, NotFound(), got, payload)
		assert.Empty(t, ExtractText(NewResult([]byte(payload))), payload)
	}
	assert.False(t, ExtractData(nil).Found)
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"result string", `{"response":{"result":"# Title"}}`, "# Title"},
		{"message", `{"response":{"result":{},"message":"msg"}}`, "msg"},
		{"result text", `{"response":{"result":{"text":"t"}}}`, "t"},
		{"result message", `{"response":{"result":{"message":"m"}}}`, "m"},
		{"result content", `{"response":{"result":{"content":"c"}}}`, "c"},
		{"prd markdown", `{"response":{"result":{"prd_markdown":"## A"}}}`, "## A"},
		{"raw response", `{"raw_response":"raw"}`, "raw"},
		{"empty strings skipped", `{"response":{"result":"","message":"","result2":"x"},"raw_response":"last"}`, "last"},
		{"json text is not parsed", `{"response":{"result":"{\"a\":1}"}}`, `{"a":1}`},
		{"nothing", `{"response":{"result":{"other":1}}}`, ""},
		{"absent", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText(NewResult([]byte(tt.payload))))
		})
	}
	assert.Equal(t, "", ExtractText(nil))
}

func TestResultAccessors(t *testing.T) {
	r := NewResult([]byte(`{
		"success": true,
		"session_id": "sess-1",
		"usage": {"input_tokens": 1200, "output_tokens": 340},
		"module_outputs": {"artifact_files": [
			{"file_url": "https://files/prd.pdf", "name": "prd.pdf", "format_type": "pdf"},
			{"name": "missing-url"},
			"garbage"
		]}
	}`))

	assert.True(t, r.Success())
	assert.Equal(t, "sess-1", r.SessionID())
	usage, ok := r.Usage()
	assert.True(t, ok)
	assert.Equal(t, Usage{InputTokens: 1200, OutputTokens: 340}, usage)
	assert.Equal(t, []ArtifactFile{{FileURL: "https://files/prd.pdf", Name: "prd.pdf", FormatType: "pdf"}}, r.Artifacts())

	failed := NewResult([]byte(`{"success":"true","error":{"message":"quota exceeded"}}`))
	assert.False(t, failed.Success(), "only a literal true counts")
	assert.Equal(t, "quota exceeded", failed.ErrorMessage())
	_, ok = failed.Usage()
	assert.False(t, ok)

	var nilResult *Result
	assert.False(t, nilResult.Success())
	assert.Empty(t, nilResult.Artifacts())

	broken := NewResult([]byte("{oops"))
	assert.JSONEq(t, `{}`, string(broken.Raw()))
}

func TestRecordPickers(t *testing.T) {
	var rec Record
	require.NoError(t, json.Unmarshal([]byte(`{
		"title": "T",
		"n": 12.7,
		"neg": -3,
		"tags": ["a", " b ", "a", 3, ""],
		"obj": {"k": "v"},
		"null": null,
		"empty": []
	}`), &rec))

	assert.Equal(t, "T", rec.String("title"))
	assert.Equal(t, "", rec.String("n"))
	assert.Equal(t, 12, rec.Int("n"))
	assert.Equal(t, 0, rec.Int("neg"))
	assert.Equal(t, []string{"a", "b"}, rec.Strings("tags"))
	assert.Equal(t, "v", rec.Map("obj").String("k"))
	assert.Nil(t, rec.Map("title"))
	assert.True(t, rec.Has("null"))
	assert.False(t, rec.Truthy("null"))
	assert.True(t, rec.Truthy("empty"))
	assert.False(t, rec.Truthy("missing"))
}
