package access

import "startup-marketplace/internal/domain/startups"

// View is a redacted profile: core attributes at the top level, granted sections under their keys.
type View map[string]any

// Filter reduces d to what tokens grant. It never fails; no tokens yield an empty view.
//
// Order: core section, whole optional sections, then field groups. Field groups only add
// attributes, so a group applied after a full section copy leaves that copy intact.
func Filter(d *startups.Details, tokens TokenSet) View {
	out := View{}
	if d == nil {
		return out
	}

	if tokens.Has(TokenStartup) {
		for k, v := range d.CoreAttributes() {
			out[k] = v
		}
	}

	for t, section := range sectionTokens {
		if section == startups.SectionCore || !tokens.Has(t) {
			continue
		}
		if attrs, ok := d.SectionAttributes(section); ok {
			out[string(section)] = attrs
		}
	}

	for _, g := range fieldGroups {
		if !tokens.Has(g.token) {
			continue
		}
		src, ok := d.SectionAttributes(g.section)
		if !ok {
			continue
		}
		dst, ok := out[string(g.section)].(map[string]any)
		if !ok {
			dst = map[string]any{}
			out[string(g.section)] = dst
		}
		for _, a := range g.attrs {
			dst[a] = src[a]
		}
	}

	if d.ViewCount != nil {
		out["view_count"] = *d.ViewCount
	}
	return out
}
