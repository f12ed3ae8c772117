package orchestrator

import (
	"github.com/goliatone/go-mailtmpl/internal/cache"
	"github.com/goliatone/go-mailtmpl/pkg/placeholder"
)

// programKey digests every input Compile reads, so any edit to the body or to
// a definition produces a different key.
func programKey(body string, defs placeholder.Definitions) uint64 {
	k := cache.NewKey().Field(body)
	for _, v := range defs.Variables {
		k.Field("v").Field(v.Name).Field(string(v.Type)).Field(string(v.Formatter))
	}
	for _, c := range defs.Conditions {
		k.Field("c").Field(c.Name).Field(c.Content).Bool(c.HasElse).Field(c.ElseContent)
	}
	for _, link := range defs.Hyperlinks {
		k.Field("l").Field(link.ID).Field(link.URL)
	}
	for _, button := range defs.CTAButtons {
		k.Field("b").Field(button.ID).Field(button.URL)
	}
	return k.Sum64()
}
