package pongo

import (
	"strings"
	"unicode"

	"github.com/flosch/pongo2/v6"
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("dom_id") {
		_ = pongo2.RegisterFilter("dom_id", filterDOMID)
	}
}

// filterDOMID turns a name into a lowercase id: letters and digits are kept,
// runs of anything else collapse to a single dash. An optional parameter is
// used as prefix.
func filterDOMID(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	var b strings.Builder
	if param != nil && param.String() != "" {
		b.WriteString(param.String())
		b.WriteByte('-')
	}
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(in.String())) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return pongo2.AsValue(strings.TrimSuffix(b.String(), "-")), nil
}
