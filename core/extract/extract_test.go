package extract

import (
	"errors"
	"strings"
	"testing"

	"github.com/typecast-ai/typecast/core/tree"
)

func TestPayloadDirectJSON(t *testing.T) {
	payload, err := Payload(`  {"name": "Ada", "age": 36}  `, JSON)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != `{"name": "Ada", "age": 36}` {
		t.Errorf("payload = %q", payload)
	}
}

func TestPayloadFencedBlock(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "tagged fence",
			text: "Here you go:\n```json\n{\"ok\": true}\n```\nEnjoy.",
			want: `{"ok": true}`,
		},
		{
			name: "untagged fence",
			text: "Result:\n```\n{\"ok\": true}\n```",
			want: `{"ok": true}`,
		},
		{
			name: "tagged fence preferred over earlier untagged",
			text: "```\nnot the payload\n```\n```json\n{\"ok\": true}\n```",
			want: `{"ok": true}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Payload(tt.text, JSON)
			if err != nil {
				t.Fatalf("Payload: %v", err)
			}
			if payload != tt.want {
				t.Errorf("payload = %q, want %q", payload, tt.want)
			}
		})
	}
}

func TestPayloadObjectSpan(t *testing.T) {
	text := `Sure! The record is {"name": "Ada", "tags": {"a": 1}} as requested.`
	payload, err := Payload(text, JSON)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != `{"name": "Ada", "tags": {"a": 1}}` {
		t.Errorf("payload = %q", payload)
	}
}

func TestObjectSpanIgnoresBracesInStrings(t *testing.T) {
	text := `{"text": "closing } inside a string", "n": 1}`
	payload, err := Payload("prefix "+text, JSON)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != text {
		t.Errorf("payload = %q", payload)
	}
}

func TestPayloadFilterRepair(t *testing.T) {
	// Single quotes and a trailing comma: only the repair tactic fixes this.
	text := `{'name': 'Ada', 'age': 36,}`
	payload, parsed, err := Tree(text, JSON)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	obj, ok := parsed.(*tree.Object)
	if !ok {
		t.Fatalf("parsed = %T, want *tree.Object", parsed)
	}
	if v, ok := obj.Get("name"); !ok || v.(tree.String) != "Ada" {
		t.Errorf("name = %v from %q", v, payload)
	}
}

func TestArrayRootOptIn(t *testing.T) {
	text := `The winners are [1, 2, 3] this round.`

	if _, err := Payload(text, JSON); err == nil {
		t.Fatal("expected failure without array-root tactic")
	}

	payload, err := Payload(text, JSON, WithArrayRoot())
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != "[1, 2, 3]" {
		t.Errorf("payload = %q", payload)
	}
}

func TestExtractionErrorAttempts(t *testing.T) {
	_, err := Payload("nothing structured here", JSON)
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, ErrNoPayload) {
		t.Errorf("errors.Is(err, ErrNoPayload) = false for %v", err)
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %T, want *ExtractionError", err)
	}
	if extErr.Strategy != JSON {
		t.Errorf("Strategy = %q", extErr.Strategy)
	}
	if extErr.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", extErr.Attempts)
	}
}

func TestUnknownStrategy(t *testing.T) {
	_, err := Payload("{}", Strategy("toml"))
	if err == nil || !strings.Contains(err.Error(), "unknown extraction strategy") {
		t.Errorf("err = %v", err)
	}
}

func TestPayloadDirectXML(t *testing.T) {
	text := `<person><name>Ada</name></person>`
	payload, err := Payload(text, XML)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != text {
		t.Errorf("payload = %q", payload)
	}
}

func TestXMLTagSpan(t *testing.T) {
	text := "Of course. <person><name>Ada</name></person> Let me know."
	payload, err := Payload(text, XML)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != "<person><name>Ada</name></person>" {
		t.Errorf("payload = %q", payload)
	}
}

func TestXMLFencedBlock(t *testing.T) {
	text := "```xml\n<item id=\"1\">ok</item>\n```"
	payload, err := Payload(text, XML)
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != `<item id="1">ok</item>` {
		t.Errorf("payload = %q", payload)
	}
}

func TestXMLCleanup(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare ampersand",
			text: `<note>Tom & Jerry</note>`,
			want: `<note>Tom &amp; Jerry</note>`,
		},
		{
			name: "unquoted attribute",
			text: `<item id=42>ok</item>`,
			want: `<item id="42">ok</item>`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload, err := Payload(tt.text, XML)
			if err != nil {
				t.Fatalf("Payload: %v", err)
			}
			if payload != tt.want {
				t.Errorf("payload = %q, want %q", payload, tt.want)
			}
		})
	}
}

func TestXMLFailure(t *testing.T) {
	_, err := Payload("just words, no markup", XML)
	if !errors.Is(err, ErrNoPayload) {
		t.Errorf("err = %v, want ErrNoPayload", err)
	}
	var extErr *ExtractionError
	if !errors.As(err, &extErr) {
		t.Fatalf("err = %T", err)
	}
	if extErr.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", extErr.Attempts)
	}
}

func TestTreeReturnsParsedValue(t *testing.T) {
	_, parsed, err := Tree(`{"a": 1, "b": 2}`, JSON)
	if err != nil {
		t.Fatalf("Tree: %v", err)
	}
	obj, ok := parsed.(*tree.Object)
	if !ok {
		t.Fatalf("parsed = %T", parsed)
	}
	if keys := obj.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("keys = %v", keys)
	}
}

func TestHTMLPreprocessing(t *testing.T) {
	text := `<html><body><p>Here it is:</p><pre><code>{"name": "Ada"}</code></pre></body></html>`
	payload, err := Payload(text, JSON, WithHTMLPreprocessing())
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if payload != `{"name": "Ada"}` {
		t.Errorf("payload = %q", payload)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	if looksLikeHTML(`{"a": 1}`) {
		t.Error("plain JSON flagged as HTML")
	}
	if !looksLikeHTML(`<div>{"a": 1}</div>`) {
		t.Error("div markup not flagged as HTML")
	}
}

func TestFencedBlockEmptyContent(t *testing.T) {
	if _, ok := fencedBlock("```json\n\n```", "json"); ok {
		t.Error("empty fence accepted")
	}
}
