package model

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestValueOfKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		want ValueKind
	}{
		{"nil", nil, KindNull},
		{"string", "x", KindString},
		{"int", 20, KindNumber},
		{"uint8", uint8(3), KindNumber},
		{"float", 1.5, KindNumber},
		{"bool", true, KindBool},
		{"slice", []any{1, "a"}, KindArray},
		{"typed slice", []string{"a", "b"}, KindArray},
		{"map", map[string]any{"a": 1}, KindObject},
		{"typed map", map[string]int{"a": 1}, KindObject},
		{"time", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), KindString},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := ValueOf(tc.raw).Kind(); got != tc.want {
				t.Fatalf("ValueOf(%#v).Kind() = %s, want %s", tc.raw, got, tc.want)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		value Value
		want  string
	}{
		"null":        {Null(), ""},
		"integer":     {NumberValue(20), "20"},
		"fraction":    {NumberValue(1234.5), "1234.5"},
		"negative 0":  {NumberValue(-0.0), "0"},
		"bool":        {BoolValue(false), "false"},
		"array":       {ValueOf([]any{1, "b", true}), "1,b,true"},
		"object json": {ValueOf(map[string]any{"b": 2, "a": "x"}), `{"a":"x","b":2}`},
	}
	for name, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Fatalf("%s: String() = %q, want %q", name, got, tc.want)
		}
	}
}

func TestValueNumberCoercion(t *testing.T) {
	t.Parallel()

	coercible := map[string]float64{
		"20":     20,
		" 3.25 ": 3.25,
		"-1e3":   -1000,
	}
	for raw, want := range coercible {
		got, ok := StringValue(raw).Number()
		if !ok || got != want {
			t.Fatalf("StringValue(%q).Number() = %v, %v; want %v, true", raw, got, ok, want)
		}
	}

	for _, value := range []Value{
		StringValue(""),
		StringValue("eighteen"),
		StringValue("NaN"),
		StringValue("Inf"),
		BoolValue(true),
		Null(),
		ArrayValue(NumberValue(1)),
	} {
		if _, ok := value.Number(); ok {
			t.Fatalf("expected %#v to be non-coercible", value)
		}
	}
}

func TestValuesLookup(t *testing.T) {
	t.Parallel()

	values := NewValues(map[string]any{
		"user":       map[string]any{"profile": map[string]any{"name": "Ann"}},
		"cta.header": "flat",
	})

	got, ok := values.Lookup("user.profile.name")
	if !ok || got.String() != "Ann" {
		t.Fatalf("nested lookup = %q, %v", got.String(), ok)
	}
	got, ok = values.Lookup("cta.header")
	if !ok || got.String() != "flat" {
		t.Fatalf("flattened lookup = %q, %v", got.String(), ok)
	}
	if _, ok := values.Lookup("user.missing"); ok {
		t.Fatalf("expected missing path to fail")
	}
}

func TestValueInterfaceRoundTrip(t *testing.T) {
	t.Parallel()

	raw := map[string]any{
		"items": []any{"a", float64(2)},
		"ok":    true,
	}
	if diff := cmp.Diff(raw, ValueOf(raw).Interface()); diff != "" {
		t.Fatalf("interface mismatch (-want +got):\n%s", diff)
	}
}
