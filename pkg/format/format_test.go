package format

import (
	"testing"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

func TestFormatBuiltins(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  any
		kind model.FormatterKind
		want string
	}{
		{"none number", 20, model.FormatterNone, "20"},
		{"none missing", nil, model.FormatterNone, ""},
		{"currency float", 1234.5, model.FormatterCurrency, "$1,234.50"},
		{"currency string", "1000000", model.FormatterCurrency, "$1,000,000.00"},
		{"currency small", 0.5, model.FormatterCurrency, "$0.50"},
		{"currency negative", -1234.5, model.FormatterCurrency, "-$1,234.50"},
		{"currency negative rounds to zero", -0.004, model.FormatterCurrency, "$0.00"},
		{"currency negative rounds to a cent", -0.006, model.FormatterCurrency, "-$0.01"},
		{"currency rounds up", 2.999, model.FormatterCurrency, "$3.00"},
		{"currency passthrough", "x", model.FormatterCurrency, "x"},
		{"currency bool passthrough", true, model.FormatterCurrency, "true"},
		{"percentage", 12.345, model.FormatterPercentage, "12.345%"},
		{"percentage string", "50", model.FormatterPercentage, "50%"},
		{"percentage passthrough", "half", model.FormatterPercentage, "half"},
		{"date iso", "2024-03-05", model.FormatterDate, "03/05/2024"},
		{"date rfc3339", "2024-12-31T23:30:00Z", model.FormatterDate, "12/31/2024"},
		{"date millis", 0, model.FormatterDate, "01/01/1970"},
		{"date passthrough", "someday", model.FormatterDate, "someday"},
		{"datetime", "2024-03-05T14:07:09Z", model.FormatterDateTime, "03/05/2024 14:07:09"},
		{"datetime passthrough", "later", model.FormatterDateTime, "later"},
		{"time", "2024-03-05T09:05:00+02:00", model.FormatterTime, "09:05"},
		{"time passthrough", "noon", model.FormatterTime, "noon"},
		{"uppercase", "Hello World", model.FormatterUppercase, "HELLO WORLD"},
		{"lowercase", "Hello World", model.FormatterLowercase, "hello world"},
		{"capitalize", "hello  wORLD\tfoo-bar", model.FormatterCapitalize, "Hello  WORLD\tFoo-bar"},
		{"capitalize unicode", "élan vital", model.FormatterCapitalize, "Élan Vital"},
		{"unknown kind", "as is", model.FormatterKind("roman"), "as is"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Format(tc.raw, tc.kind); got != tc.want {
				t.Fatalf("Format(%#v, %s) = %q, want %q", tc.raw, tc.kind, got, tc.want)
			}
		})
	}
}

func TestUppercaseIsIdempotent(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"straße", "mIxEd Case", "ǆ", ""} {
		once := Format(input, model.FormatterUppercase)
		twice := Format(once, model.FormatterUppercase)
		if once != twice {
			t.Fatalf("uppercase not idempotent for %q: %q vs %q", input, once, twice)
		}
	}
}

func TestRegistryCustomFormatter(t *testing.T) {
	t.Parallel()

	reg := NewRegistry()
	if err := reg.Register("shout", func(v model.Value) string { return v.String() + "!" }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("shout", func(v model.Value) string { return "" }); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if err := reg.Register(model.FormatterNone, nil); err == nil {
		t.Fatalf("expected nil formatter error")
	}
	if got := reg.Format(model.StringValue("hey"), "shout"); got != "hey!" {
		t.Fatalf("custom formatter = %q", got)
	}
	if Default().Has("shout") {
		t.Fatalf("custom formatter leaked into the default registry")
	}
}

func TestRegistryVariables(t *testing.T) {
	t.Parallel()

	values := model.NewValues(map[string]any{"price": 9.99, "name": "ann"})
	got := Default().Variables(values, []model.Variable{
		{Name: "price", Formatter: model.FormatterCurrency},
		{Name: "name", Formatter: model.FormatterCapitalize},
		{Name: "missing"},
	})
	if got["price"] != "$9.99" || got["name"] != "Ann" || got["missing"] != "" {
		t.Fatalf("unexpected formatted values: %#v", got)
	}
}
