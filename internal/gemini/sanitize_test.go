package gemini

import (
	"reflect"
	"testing"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no fences", `{"a":1}`, `{"a":1}`},
		{"json tagged fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"leading fence only", "```json\n{\"a\":1}", `{"a":1}`},
		{"trailing fence only", "{\"a\":1}\n```", `{"a":1}`},
		{"interior backticks untouched", "```json\n{\"a\":\"`x`\"}\n```", "{\"a\":\"`x`\"}"},
		{"newline after closing fence", "```json\n{\"a\":1}\n```\n", `{"a":1}`},
		{"trailing spaces after closing fence", "```\n{\"a\":1}\n```  \n", `{"a":1}`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripFences(tt.in); got != tt.want {
				t.Errorf("StripFences(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDecodeObject(t *testing.T) {
	t.Run("fenced and unfenced parse identically", func(t *testing.T) {
		fenced, ok1 := DecodeObject("```json\n{\"questions\":[{\"answer\":\"C\",\"type\":\"MCQ\"}]}\n```")
		plain, ok2 := DecodeObject(`{"questions":[{"answer":"C","type":"MCQ"}]}`)
		if !ok1 || !ok2 {
			t.Fatalf("expected both to parse, got ok1=%v ok2=%v", ok1, ok2)
		}
		if !reflect.DeepEqual(fenced, plain) {
			t.Errorf("fenced result %v differs from plain result %v", fenced, plain)
		}
	})

	t.Run("fence followed by trailing newline still parses", func(t *testing.T) {
		obj, ok := DecodeObject("```json\n{\"questions\":[]}\n```\n")
		if !ok {
			t.Fatal("expected parse to succeed")
		}
		if _, has := obj["questions"]; !has {
			t.Errorf("parsed object = %v", obj)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		if obj, ok := DecodeObject("I could not read the image, sorry!"); ok {
			t.Errorf("expected failure, got %v", obj)
		}
	})

	t.Run("JSON array is not an object", func(t *testing.T) {
		if _, ok := DecodeObject(`[1,2,3]`); ok {
			t.Error("expected failure for non-object JSON")
		}
	})
}

func TestDefensiveFieldAccess(t *testing.T) {
	obj := map[string]any{
		"student_name": "Abebe B.",
		"score":        4.5,
		"grades":       []any{map[string]any{"student_answer": "True"}},
		"wrong_type":   42.0,
	}

	if got := StringField(obj, "student_name", "Unknown Student"); got != "Abebe B." {
		t.Errorf("StringField = %q", got)
	}
	if got := StringField(obj, "missing", "Unknown Student"); got != "Unknown Student" {
		t.Errorf("StringField fallback = %q", got)
	}
	if got := StringField(obj, "wrong_type", "fallback"); got != "fallback" {
		t.Errorf("StringField on number = %q", got)
	}

	if got := NumberField(obj, "score"); got != 4.5 {
		t.Errorf("NumberField = %v", got)
	}
	if got := NumberField(obj, "missing"); got != 0 {
		t.Errorf("NumberField fallback = %v", got)
	}
	if got := NumberField(obj, "student_name"); got != 0 {
		t.Errorf("NumberField on string = %v", got)
	}

	if got := ListField(obj, "grades"); len(got) != 1 {
		t.Errorf("ListField len = %d", len(got))
	}
	if got := ListField(obj, "student_name"); got != nil {
		t.Errorf("ListField on string = %v", got)
	}
}
