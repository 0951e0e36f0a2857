package brflags

import (
	"strconv"
	"strings"
)

// IconPaths maps an icon key ("{style}_{format}") to a path relative to the
// icon root. A complete set has one entry per style and format.
type IconPaths map[string]string

// IconKey returns the IconPaths key for a style and format, e.g. "circle_png-200".
func IconKey(s Style, f Format) string {
	return string(s) + "_" + string(f)
}

// IconKeys returns the 12 keys of a complete icon set, style-major.
func IconKeys() []string {
	keys := make([]string, 0, len(AllStyles())*len(AllFormats()))
	for _, s := range AllStyles() {
		for _, f := range AllFormats() {
			keys = append(keys, IconKey(s, f))
		}
	}
	return keys
}

// Get returns the path for a style and format.
func (p IconPaths) Get(s Style, f Format) (string, bool) {
	path, ok := p[IconKey(s, f)]
	return path, ok
}

// BuildFlagPath constructs an icon path from its components without consulting
// the dataset:
//
//	{style}/{format}/{uf}/{code}-{slug}-{suffix}.{ext}
//
// It never fails; the caller is responsible for passing matching components.
func BuildFlagPath(uf UF, code int, slug string, s Style, f Format) string {
	var b strings.Builder
	b.Grow(len(s) + len(f) + len(uf) + len(slug) + 24)
	b.WriteString(string(s))
	b.WriteByte('/')
	b.WriteString(string(f))
	b.WriteByte('/')
	b.WriteString(string(uf))
	b.WriteByte('/')
	b.WriteString(strconv.Itoa(code))
	b.WriteByte('-')
	b.WriteString(slug)
	b.WriteByte('-')
	b.WriteString(s.Suffix())
	b.WriteByte('.')
	b.WriteString(f.Ext())
	return b.String()
}

// JoinURL joins a base URL and a relative icon path with exactly one '/'.
// A single trailing '/' on base is dropped first.
func JoinURL(base, path string) string {
	return strings.TrimSuffix(base, "/") + "/" + path
}

// FlagPath resolves the stored icon path for a municipality. It reports false
// when the code is unknown, the municipality has no icons, or the combination
// is missing from its icon set.
func (db *DB) FlagPath(code int, s Style, f Format) (string, bool) {
	m, ok := db.Municipio(code)
	if !ok || !m.HasIcons || m.Icons == nil {
		return "", false
	}
	return m.Icons.Get(s, f)
}

// FlagURL is FlagPath joined onto base.
func (db *DB) FlagURL(base string, code int, s Style, f Format) (string, bool) {
	path, ok := db.FlagPath(code, s, f)
	if !ok {
		return "", false
	}
	return JoinURL(base, path), true
}

// FlagPaths returns the full icon set of a municipality, or false if it has none.
// The returned map is a copy.
func (db *DB) FlagPaths(code int) (IconPaths, bool) {
	m, ok := db.Municipio(code)
	if !ok || !m.HasIcons || len(m.Icons) == 0 {
		return nil, false
	}
	out := make(IconPaths, len(m.Icons))
	for k, v := range m.Icons {
		out[k] = v
	}
	return out, true
}
