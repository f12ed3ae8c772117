package markup

import (
	"html"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-mailtmpl/pkg/model"
	"github.com/goliatone/go-mailtmpl/pkg/placeholder"
)

var now = time.Now

// NewHyperlink creates a hyperlink record with a fresh id. url is normalized.
func NewHyperlink(url, text string) model.Hyperlink {
	return model.Hyperlink{
		ID:        uuid.NewString(),
		URL:       NormalizeURL(url),
		Text:      text,
		CreatedAt: now().UTC(),
	}
}

// NewCTAButton creates a CTA button record with a fresh id. url is normalized.
func NewCTAButton(text, url string) model.CTAButton {
	return model.CTAButton{
		ID:        uuid.NewString(),
		Text:      text,
		URL:       NormalizeURL(url),
		CreatedAt: now().UTC(),
	}
}

// HyperlinkHTML renders link as an anchor carrying its record id.
func HyperlinkHTML(link model.Hyperlink, style Style) string {
	style = style.withDefaults()

	var b strings.Builder
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(link.URL))
	b.WriteString(`" ` + placeholder.HyperlinkAttr + `="`)
	b.WriteString(html.EscapeString(link.ID))
	b.WriteString(`" target="_blank" style="color: `)
	b.WriteString(html.EscapeString(style.LinkColor))
	b.WriteString(`; text-decoration: underline;">`)
	b.WriteString(html.EscapeString(link.Text))
	b.WriteString(`</a>`)
	return b.String()
}

// CTAButtonHTML renders button as an email-safe table wrapping an anchor that
// carries the record id.
func CTAButtonHTML(button model.CTAButton, style Style) string {
	style = style.withDefaults()
	bg := html.EscapeString(style.ButtonBackground)
	fg := html.EscapeString(style.ButtonText)

	var b strings.Builder
	b.WriteString(`<table role="presentation" cellspacing="0" cellpadding="0" border="0" style="margin: 16px 0;"><tr>`)
	b.WriteString(`<td style="border-radius: 8px; background-color: ` + bg + `;">`)
	b.WriteString(`<a href="`)
	b.WriteString(html.EscapeString(button.URL))
	b.WriteString(`" ` + placeholder.CTAAttr + `="`)
	b.WriteString(html.EscapeString(button.ID))
	b.WriteString(`" style="background-color: ` + bg + `; border: none; color: ` + fg + `; padding: 12px 24px; text-decoration: none; display: inline-block; font-size: 16px; font-weight: 700; border-radius: 8px;" target="_blank">`)
	b.WriteString(html.EscapeString(button.Text))
	b.WriteString(`</a></td></tr></table>`)
	return b.String()
}
