package format

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/goliatone/go-mailtmpl/pkg/model"
)

func builtins() map[model.FormatterKind]Func {
	return map[model.FormatterKind]Func{
		model.FormatterNone:       identity,
		model.FormatterCurrency:   currency,
		model.FormatterDate:       date,
		model.FormatterDateTime:   dateTime,
		model.FormatterTime:       clock,
		model.FormatterPercentage: percentage,
		model.FormatterUppercase:  upper,
		model.FormatterLowercase:  lower,
		model.FormatterCapitalize: capitalize,
	}
}

func identity(v model.Value) string { return v.String() }

// currency renders "$1,234.50"; negative amounts carry the sign before the
// currency symbol. Amounts that round to zero cents are never negative.
func currency(v model.Value) string {
	amount, ok := v.Number()
	if !ok {
		return v.String()
	}
	amount = math.Round(amount*100) / 100
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	amount = math.Abs(amount)
	p := message.NewPrinter(language.English)
	return sign + "$" + p.Sprintf("%.2f", amount)
}

func percentage(v model.Value) string {
	n, ok := v.Number()
	if !ok {
		return v.String()
	}
	return model.FormatNumber(n) + "%"
}

func date(v model.Value) string {
	t, ok := parseTime(v)
	if !ok {
		return v.String()
	}
	return t.Format("01/02/2006")
}

func dateTime(v model.Value) string {
	t, ok := parseTime(v)
	if !ok {
		return v.String()
	}
	return t.Format("01/02/2006 15:04:05")
}

func clock(v model.Value) string {
	t, ok := parseTime(v)
	if !ok {
		return v.String()
	}
	return t.Format("15:04")
}

func upper(v model.Value) string {
	return cases.Upper(language.Und).String(v.String())
}

func lower(v model.Value) string {
	return cases.Lower(language.Und).String(v.String())
}

// capitalize upper-cases the first rune of every whitespace-delimited word and
// leaves the remaining runes untouched.
func capitalize(v model.Value) string {
	s := v.String()
	var b strings.Builder
	b.Grow(len(s))

	atWordStart := true
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(s[0])
			s = s[1:]
			atWordStart = false
			continue
		}
		s = s[size:]
		if unicode.IsSpace(r) {
			atWordStart = true
			b.WriteRune(r)
			continue
		}
		if atWordStart {
			r = unicode.ToUpper(r)
			atWordStart = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
