package pongo

import (
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var filtersOnce sync.Once

// pongo2 filters are process wide.
func registerFilters() {
	filtersOnce.Do(func() {
		if !pongo2.FilterExists("mdcell") {
			_ = pongo2.RegisterFilter("mdcell", filterMarkdownCell)
		}
	})
}

var cellReplacer = strings.NewReplacer(
	"|", `\|`,
	"\r\n", "<br>",
	"\n", "<br>",
	"\r", "<br>",
)

// filterMarkdownCell makes a value safe to place inside a Markdown table
// cell. Empty values render as "-". The result is marked safe so the <br>
// line breaks survive autoescaping.
func filterMarkdownCell(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	text := strings.TrimSpace(in.String())
	if text == "" {
		return pongo2.AsValue("-"), nil
	}
	return pongo2.AsSafeValue(cellReplacer.Replace(text)), nil
}
