package brflags

import (
	"testing"
)

func TestParseUF(t *testing.T) {
	tests := []struct {
		input  string
		want   UF
		wantOK bool
	}{
		{"SP", UFSP, true},
		{"sp", UFSP, true},
		{" rj ", UFRJ, true},
		{"Df", UFDF, true},
		{"", "", false},
		{"XX", "", false},
		{"SAO PAULO", "", false},
		{"S", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := ParseUF(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseUF(%q) = %q, %v, want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestAllUFs(t *testing.T) {
	ufs := AllUFs()
	if len(ufs) != 27 {
		t.Fatalf("len(AllUFs()) = %d, want 27", len(ufs))
	}
	seen := make(map[UF]bool)
	for _, uf := range ufs {
		if seen[uf] {
			t.Errorf("duplicate UF %s", uf)
		}
		seen[uf] = true
		if uf.Name() == "" {
			t.Errorf("%s has no name", uf)
		}
		if !uf.Region().Valid() {
			t.Errorf("%s has invalid region %q", uf, uf.Region())
		}
	}
}

// TestRegionPartition checks that the five regions split the UFs into
// disjoint sets covering all 27, each agreeing with UF.Region.
func TestRegionPartition(t *testing.T) {
	owner := make(map[UF]Region)
	for _, r := range AllRegions() {
		for _, uf := range r.UFs() {
			if prev, ok := owner[uf]; ok {
				t.Errorf("%s owned by both %s and %s", uf, prev, r)
			}
			owner[uf] = r
			if uf.Region() != r {
				t.Errorf("%s.Region() = %s, want %s", uf, uf.Region(), r)
			}
		}
	}
	if len(owner) != 27 {
		t.Errorf("regions cover %d UFs, want 27", len(owner))
	}

	sizes := map[Region]int{
		RegionNorte: 7, RegionNordeste: 9, RegionSudeste: 4, RegionSul: 3, RegionCentroOeste: 4,
	}
	for r, want := range sizes {
		if got := len(r.UFs()); got != want {
			t.Errorf("len(%s.UFs()) = %d, want %d", r, got, want)
		}
	}
}

func TestRegionNames(t *testing.T) {
	tests := []struct {
		region Region
		want   string
	}{
		{RegionNorte, "Norte"},
		{RegionNordeste, "Nordeste"},
		{RegionSudeste, "Sudeste"},
		{RegionSul, "Sul"},
		{RegionCentroOeste, "Centro-Oeste"},
		{Region("X"), ""},
	}
	for _, tt := range tests {
		if got := tt.region.Name(); got != tt.want {
			t.Errorf("Region(%q).Name() = %q, want %q", tt.region, got, tt.want)
		}
	}

	if r, ok := ParseRegion("co"); !ok || r != RegionCentroOeste {
		t.Errorf("ParseRegion(%q) = %q, %v", "co", r, ok)
	}
	if _, ok := ParseRegion("Sudeste"); ok {
		t.Errorf("ParseRegion accepted a region name")
	}
}

func TestUFForCode(t *testing.T) {
	tests := []struct {
		code   int
		want   UF
		wantOK bool
	}{
		{3550308, UFSP, true},
		{3304557, UFRJ, true},
		{5300108, UFDF, true},
		{1100205, UFRO, true},
		{1900000, "", false}, // prefix 19 is unassigned
		{355030, "", false},
		{35503080, "", false},
		{0, "", false},
		{-3550308, "", false},
	}
	for _, tt := range tests {
		got, ok := UFForCode(tt.code)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("UFForCode(%d) = %q, %v, want %q, %v", tt.code, got, ok, tt.want, tt.wantOK)
		}
	}

	for _, uf := range AllUFs() {
		got, ok := UFForCode(uf.Prefix()*100000 + 1)
		if !ok || got != uf {
			t.Errorf("UFForCode(prefix of %s) = %q, %v", uf, got, ok)
		}
	}
}

func TestStyleSuffix(t *testing.T) {
	tests := []struct {
		input  string
		style  Style
		suffix string
	}{
		{"full", StyleFull, "full"},
		{"rounded", StyleRounded, "rounded"},
		{"circle", StyleCircle, "circle"},
		{"square-rounded", StyleSquareRounded, "sq"},
		{"CIRCLE", StyleCircle, "circle"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, ok := ParseStyle(tt.input)
			if !ok || s != tt.style {
				t.Fatalf("ParseStyle(%q) = %q, %v, want %q", tt.input, s, ok, tt.style)
			}
			if got := s.Suffix(); got != tt.suffix {
				t.Errorf("%s.Suffix() = %q, want %q", s, got, tt.suffix)
			}
		})
	}

	for _, bad := range []string{"", "sq", "square", "round"} {
		if _, ok := ParseStyle(bad); ok {
			t.Errorf("ParseStyle(%q) accepted", bad)
		}
	}
	if len(AllStyles()) != 4 {
		t.Errorf("len(AllStyles()) = %d, want 4", len(AllStyles()))
	}
}

func TestFormatExt(t *testing.T) {
	tests := []struct {
		format Format
		ext    string
	}{
		{FormatSVG, "svg"},
		{FormatPNG200, "png"},
		{FormatPNG800, "png"},
	}
	for _, tt := range tests {
		if got := tt.format.Ext(); got != tt.ext {
			t.Errorf("%s.Ext() = %q, want %q", tt.format, got, tt.ext)
		}
		if f, ok := ParseFormat(string(tt.format)); !ok || f != tt.format {
			t.Errorf("ParseFormat(%q) = %q, %v", tt.format, f, ok)
		}
	}

	for _, bad := range []string{"", "png", "png-400", "jpg"} {
		if _, ok := ParseFormat(bad); ok {
			t.Errorf("ParseFormat(%q) accepted", bad)
		}
	}
}
