package typecast

import (
	"errors"
	"strings"
	"testing"

	"github.com/typecast-ai/typecast/core/convert"
	"github.com/typecast-ai/typecast/core/extract"
)

type review struct {
	ProductName string  `json:"product_name" typecast:"required"`
	Rating      int     `json:"rating"`
	Summary     *string `json:"summary"`
}

func TestExtractFromProse(t *testing.T) {
	text := "Sure! Here is the review you asked for:\n" +
		"```json\n" +
		`{"product_name": "Widget", "rating": 4, "summary": "solid"}` + "\n" +
		"```\n" +
		"Let me know if you need anything else."

	got, err := Extract[review](text)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.ProductName != "Widget" || got.Rating != 4 {
		t.Errorf("got %+v", got)
	}
	if got.Summary == nil || *got.Summary != "solid" {
		t.Errorf("Summary = %v", got.Summary)
	}
}

func TestExtractPointerTarget(t *testing.T) {
	got, err := Extract[*review](`{"product_name": "Widget", "rating": 5}`)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got == nil || got.ProductName != "Widget" {
		t.Errorf("got %+v", got)
	}
	if got.Summary != nil {
		t.Errorf("Summary = %v, want nil", got.Summary)
	}
}

func TestExtractListRoot(t *testing.T) {
	// A top-level slice target enables the array recovery tactic.
	got, err := Extract[[]int]("The lucky numbers are [7, 11, 13] today.")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(got) != 3 || got[0] != 7 || got[2] != 13 {
		t.Errorf("got %v", got)
	}
}

func TestExtractXMLStrategy(t *testing.T) {
	type person struct {
		Name string `json:"name"`
		Age  string `json:"age"`
	}
	text := "Here you go: <person><name>Ada</name><age>36</age></person> done."

	got, err := Extract[person](text, WithStrategy(XML))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Name != "Ada" || got.Age != "36" {
		t.Errorf("got %+v", got)
	}
}

func TestExtractXMLFlexibleNumbers(t *testing.T) {
	// XML scalars parse as strings; flexible mode coerces them.
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	text := "<person><name>Ada</name><age>36</age></person>"

	if _, err := Extract[person](text, WithStrategy(XML)); err == nil {
		t.Fatal("strict mode should reject string age")
	}

	got, err := Extract[person](text, WithStrategy(XML), WithFlexibleMode())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Age != 36 {
		t.Errorf("Age = %d", got.Age)
	}
}

func TestErrorClassSeparation(t *testing.T) {
	// No payload at all: extraction fails.
	_, err := Extract[review]("no structured content in sight")
	var exErr *extract.ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("err = %v, want *extract.ExtractionError", err)
	}

	// Valid payload, wrong structure: conversion fails.
	_, err = Extract[review](`{"rating": 4}`)
	var cvErr *convert.ConversionError
	if !errors.As(err, &cvErr) {
		t.Fatalf("err = %v, want *convert.ConversionError", err)
	}
	if !errors.Is(err, convert.ErrMissingField) {
		t.Errorf("err = %v, want ErrMissingField", err)
	}
}

func TestExtraFieldErrorsOption(t *testing.T) {
	text := `{"product_name": "Widget", "rating": 4, "vendor": "acme"}`

	if _, err := Extract[review](text); err != nil {
		t.Fatalf("extra field should be ignored by default: %v", err)
	}

	_, err := Extract[review](text, WithExtraFieldErrors())
	if !errors.Is(err, convert.ErrUnexpectedField) {
		t.Errorf("err = %v, want ErrUnexpectedField", err)
	}
}

func TestFlexibleModeCoercions(t *testing.T) {
	text := `{"product_name": "Widget", "rating": "4"}`

	if _, err := Extract[review](text); err == nil {
		t.Fatal("strict mode should reject quoted rating")
	}

	got, err := Extract[review](text, WithFlexibleMode())
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.Rating != 4 {
		t.Errorf("Rating = %d", got.Rating)
	}
}

func TestCleanPayload(t *testing.T) {
	payload, err := CleanPayload("Result: {\"ok\": true} thanks!", JSON)
	if err != nil {
		t.Fatalf("CleanPayload: %v", err)
	}
	if payload != `{"ok": true}` {
		t.Errorf("payload = %q", payload)
	}
}

func TestDescribe(t *testing.T) {
	out, err := Describe[review]()
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	for _, want := range []string{
		"- `product_name` (string, required)",
		"- `rating` (integer, required)",
		"- `summary` (string, optional)",
		"```json",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Describe output missing %q:\n%s", want, out)
		}
	}
}

func TestDescribeRejectsUnsupportedType(t *testing.T) {
	type bad struct {
		M map[string]int `json:"m"`
	}
	if _, err := Describe[bad](); err == nil {
		t.Error("expected schema error")
	}
}
