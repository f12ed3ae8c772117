package markup

import (
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-mailtmpl/pkg/model"
	"github.com/goliatone/go-mailtmpl/pkg/placeholder"
)

func TestMarkers(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		Variable("name"):                    "{{name}}",
		ConditionPlaceholder("isVip"):       "{{%isVip%}}",
		WrapCondition("<p>Hi</p>", "isVip"): "{{%isVip%}}\n<p>Hi</p>\n{{/%isVip%}}",
		WrapConditionElse("A", "B", "vip"):  "{{%vip%}}\nA\n{{else}}\nB\n{{/%vip%}}",
		WrapLoop("<li>{{this}}</li>", "xs"): "{{#each xs}}\n<li>{{this}}</li>\n{{/each}}",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
}

func TestWrappedMarkupRenders(t *testing.T) {
	t.Parallel()

	cond := model.ConditionDefinition{
		Name:    "vip",
		Clauses: []model.ConditionClause{{Variable: "tier", Operator: model.OpEqual, Value: "gold"}},
	}
	defs := placeholder.Definitions{
		Variables:  []model.Variable{{Name: "tags", Type: model.VariableTypeArray}},
		Conditions: []model.ConditionDefinition{cond},
	}
	body := WrapConditionElse("Gold", "Basic", "vip") + "|" + WrapLoop("{{this}}", "tags")
	values := model.NewValues(map[string]any{"tags": []any{"a", "b"}})

	got := placeholder.Render(body, defs, map[string]bool{"vip": false}, values)
	if got != "\nBasic\n|\na\n\nb\n" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"example.com":                "https://example.com",
		"  example.com/a  ":          "https://example.com/a",
		"http://example.com":         "http://example.com",
		"https://example.com":        "https://example.com",
		"/relative":                  "/relative",
		"mailto:someone@example.com": "mailto:someone@example.com",
		"":                           "",
	}
	for in, want := range cases {
		if got := NormalizeURL(in); got != want {
			t.Fatalf("NormalizeURL(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewRecords(t *testing.T) {
	t.Parallel()

	link := NewHyperlink("example.com", "Docs")
	if link.ID == "" || link.URL != "https://example.com" || link.Text != "Docs" {
		t.Fatalf("unexpected hyperlink %#v", link)
	}
	if link.CreatedAt.IsZero() || link.CreatedAt.Location().String() != "UTC" {
		t.Fatalf("expected UTC timestamp, got %v", link.CreatedAt)
	}

	button := NewCTAButton("Buy", "/shop")
	if button.ID == "" || button.ID == link.ID || button.URL != "/shop" {
		t.Fatalf("unexpected button %#v", button)
	}
}

func TestLinkHTMLIsRebindable(t *testing.T) {
	t.Parallel()

	link := model.Hyperlink{ID: "l1", URL: "https://old.example", Text: "Read <more>"}
	button := model.CTAButton{ID: "c1", URL: "https://old.example/buy", Text: "Buy"}
	body := "<p>" + HyperlinkHTML(link, Style{}) + "</p>" + CTAButtonHTML(button, DefaultStyle())

	if !strings.Contains(body, `data-hyperlink-id="l1"`) || !strings.Contains(body, `data-cta-id="c1"`) {
		t.Fatalf("missing id attributes: %s", body)
	}
	if !strings.Contains(body, "Read &lt;more&gt;") {
		t.Fatalf("label not escaped: %s", body)
	}
	if !strings.Contains(body, "background-color: #D71E28") || !strings.Contains(body, "color: #FFFFFF") {
		t.Fatalf("default colours missing: %s", body)
	}

	link.URL = "https://new.example"
	button.URL = "https://new.example/buy"
	defs := placeholder.Definitions{Hyperlinks: []model.Hyperlink{link}, CTAButtons: []model.CTAButton{button}}
	got := placeholder.Render(body, defs, nil, nil)

	if !strings.Contains(got, `href="https://new.example"`) || !strings.Contains(got, `href="https://new.example/buy"`) {
		t.Fatalf("links not rebound: %s", got)
	}
	if strings.Contains(got, "old.example") {
		t.Fatalf("stale url left behind: %s", got)
	}
	if !strings.Contains(got, "Read &lt;more&gt;") {
		t.Fatalf("label changed: %s", got)
	}
}

type stubSelector struct {
	selection *theme.Selection
	err       error
	name      string
	variant   string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.name, s.variant = name, variant
	return s.selection, s.err
}

func TestStyleFromTheme(t *testing.T) {
	t.Parallel()

	selector := &stubSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name: "acme",
			Tokens: map[string]string{
				TokenButtonBackground: "#111111",
				TokenLinkColor:        "#222222",
			},
			Variants: map[string]theme.Variant{
				"dark": {Tokens: map[string]string{TokenLinkColor: "#333333"}},
			},
		},
	}}

	style, err := StyleFromTheme(selector, "acme", "dark")
	if err != nil {
		t.Fatalf("style from theme: %v", err)
	}
	if selector.name != "acme" || selector.variant != "dark" {
		t.Fatalf("unexpected selector args %q %q", selector.name, selector.variant)
	}
	want := Style{ButtonBackground: "#111111", ButtonText: DefaultButtonText, LinkColor: "#333333"}
	if style != want {
		t.Fatalf("style = %#v, want %#v", style, want)
	}

	if style, err := StyleFromTheme(nil, "", ""); err != nil || style != DefaultStyle() {
		t.Fatalf("nil selector = %#v, %v", style, err)
	}

	failing := &stubSelector{err: errors.New("missing")}
	if style, err := StyleFromTheme(failing, "ghost", ""); err == nil || style != DefaultStyle() {
		t.Fatalf("expected error with default style, got %#v, %v", style, err)
	}
}
