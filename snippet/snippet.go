// Package snippet renders the LGTM markup fragment for one catalog
// identifier.
package snippet

import "fmt"

// Formatter builds the anchor-wrapping-image fragment from a fixed service
// origin and file extension.
type Formatter struct {
	Origin string // e.g. "https://lgtm.kkhys.me"
	Ext    string // dot-prefixed, e.g. ".avif"
}

// Format returns the markup for id. The output shape is a compatibility
// contract: consumers paste it verbatim into reviews, so attribute order,
// quoting, and whitespace must never change.
func (f Formatter) Format(id string) string {
	link := f.Origin + "/" + id
	img := f.Origin + "/" + id + f.Ext
	return fmt.Sprintf(`<a href="%s"><img src="%s" alt="LGTM!!" width="400" /></a>`, link, img)
}
