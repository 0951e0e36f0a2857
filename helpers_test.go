package brflags

import (
	"encoding/json"
	"testing"
	"testing/fstest"
)

// testMunicipio builds a consistent record; icons are generated when hasIcons is set.
func testMunicipio(code int, name string, uf UF, hasFlag, hasIcons bool) Municipio {
	m := Municipio{
		IBGECode:   code,
		Name:       name,
		Slug:       Slugify(name),
		UF:         uf,
		UFName:     uf.Name(),
		Region:     uf.Region(),
		RegionName: uf.Region().Name(),
		HasFlag:    hasFlag,
		HasIcons:   hasIcons,
	}
	if hasFlag {
		m.FlagSource = "wikidata"
	}
	if hasIcons {
		m.Icons = make(IconPaths)
		for _, s := range AllStyles() {
			for _, f := range AllFormats() {
				m.Icons[IconKey(s, f)] = BuildFlagPath(uf, code, m.Slug, s, f)
			}
		}
	}
	return m
}

// sampleMunicipios is a small, valid, code-sorted record list.
func sampleMunicipios() []Municipio {
	return []Municipio{
		testMunicipio(3300100, "Angra dos Reis", UFRJ, true, true),
		testMunicipio(3301702, "Duque de Caxias", UFRJ, false, false),
		testMunicipio(3304557, "Rio de Janeiro", UFRJ, true, true),
		testMunicipio(3509502, "Campinas", UFSP, true, false),
		testMunicipio(3550308, "São Paulo", UFSP, true, true),
		testMunicipio(5300108, "Brasília", UFDF, true, true),
	}
}

// tablesFS encodes the three tables as given, so tests can make them disagree.
func tablesFS(t testing.TB, ms []Municipio, byUF map[UF][]Municipio, st Stats) fstest.MapFS {
	t.Helper()
	enc := func(v any) *fstest.MapFile {
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		return &fstest.MapFile{Data: b}
	}
	return fstest.MapFS{
		MunicipiosFile: enc(ms),
		ByUFFile:       enc(byUF),
		StatsFile:      enc(st),
	}
}

// datasetFS encodes ms with derived tables computed from it.
func datasetFS(t testing.TB, ms []Municipio) fstest.MapFS {
	t.Helper()
	byUF := make(map[UF][]Municipio)
	for _, m := range ms {
		byUF[m.UF] = append(byUF[m.UF], m)
	}
	return tablesFS(t, ms, byUF, ComputeStats(ms))
}

func openFS(t testing.TB, ms []Municipio) *DB {
	t.Helper()
	db, err := Open(WithFS(datasetFS(t, ms)))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	return db
}

func codes(ms []Municipio) []int {
	out := make([]int, len(ms))
	for i, m := range ms {
		out[i] = m.IBGECode
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
