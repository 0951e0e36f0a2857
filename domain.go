package brflags

import (
	"strings"
)

// UF is a Brazilian federative unit (26 states plus the Federal District),
// identified by its two-letter sigla.
type UF string

const (
	UFRO UF = "RO"
	UFAC UF = "AC"
	UFAM UF = "AM"
	UFRR UF = "RR"
	UFPA UF = "PA"
	UFAP UF = "AP"
	UFTO UF = "TO"
	UFMA UF = "MA"
	UFPI UF = "PI"
	UFCE UF = "CE"
	UFRN UF = "RN"
	UFPB UF = "PB"
	UFPE UF = "PE"
	UFAL UF = "AL"
	UFSE UF = "SE"
	UFBA UF = "BA"
	UFMG UF = "MG"
	UFES UF = "ES"
	UFRJ UF = "RJ"
	UFSP UF = "SP"
	UFPR UF = "PR"
	UFSC UF = "SC"
	UFRS UF = "RS"
	UFMS UF = "MS"
	UFMT UF = "MT"
	UFGO UF = "GO"
	UFDF UF = "DF"
)

// Region is one of the five IBGE macro-regions.
type Region string

const (
	RegionNorte       Region = "N"
	RegionNordeste    Region = "NE"
	RegionSudeste     Region = "SE"
	RegionSul         Region = "S"
	RegionCentroOeste Region = "CO"
)

// ufInfo holds the fixed attributes of a UF.
type ufInfo struct {
	Name   string
	Prefix int // first two digits of every IBGE municipality code in the UF
	Region Region
}

// ufTable lists every UF in IBGE numeric order.
var ufTable = []struct {
	UF UF
	ufInfo
}{
	{UFRO, ufInfo{"Rondônia", 11, RegionNorte}},
	{UFAC, ufInfo{"Acre", 12, RegionNorte}},
	{UFAM, ufInfo{"Amazonas", 13, RegionNorte}},
	{UFRR, ufInfo{"Roraima", 14, RegionNorte}},
	{UFPA, ufInfo{"Pará", 15, RegionNorte}},
	{UFAP, ufInfo{"Amapá", 16, RegionNorte}},
	{UFTO, ufInfo{"Tocantins", 17, RegionNorte}},
	{UFMA, ufInfo{"Maranhão", 21, RegionNordeste}},
	{UFPI, ufInfo{"Piauí", 22, RegionNordeste}},
	{UFCE, ufInfo{"Ceará", 23, RegionNordeste}},
	{UFRN, ufInfo{"Rio Grande do Norte", 24, RegionNordeste}},
	{UFPB, ufInfo{"Paraíba", 25, RegionNordeste}},
	{UFPE, ufInfo{"Pernambuco", 26, RegionNordeste}},
	{UFAL, ufInfo{"Alagoas", 27, RegionNordeste}},
	{UFSE, ufInfo{"Sergipe", 28, RegionNordeste}},
	{UFBA, ufInfo{"Bahia", 29, RegionNordeste}},
	{UFMG, ufInfo{"Minas Gerais", 31, RegionSudeste}},
	{UFES, ufInfo{"Espírito Santo", 32, RegionSudeste}},
	{UFRJ, ufInfo{"Rio de Janeiro", 33, RegionSudeste}},
	{UFSP, ufInfo{"São Paulo", 35, RegionSudeste}},
	{UFPR, ufInfo{"Paraná", 41, RegionSul}},
	{UFSC, ufInfo{"Santa Catarina", 42, RegionSul}},
	{UFRS, ufInfo{"Rio Grande do Sul", 43, RegionSul}},
	{UFMS, ufInfo{"Mato Grosso do Sul", 50, RegionCentroOeste}},
	{UFMT, ufInfo{"Mato Grosso", 51, RegionCentroOeste}},
	{UFGO, ufInfo{"Goiás", 52, RegionCentroOeste}},
	{UFDF, ufInfo{"Distrito Federal", 53, RegionCentroOeste}},
}

var (
	ufByCode   = make(map[UF]ufInfo, len(ufTable))
	ufByPrefix = make(map[int]UF, len(ufTable))
)

func init() {
	for _, u := range ufTable {
		ufByCode[u.UF] = u.ufInfo
		ufByPrefix[u.Prefix] = u.UF
	}
}

// regionNames maps region codes to the names used in the dataset.
var regionNames = map[Region]string{
	RegionNorte:       "Norte",
	RegionNordeste:    "Nordeste",
	RegionSudeste:     "Sudeste",
	RegionSul:         "Sul",
	RegionCentroOeste: "Centro-Oeste",
}

// AllUFs returns the 27 UFs in IBGE numeric order.
func AllUFs() []UF {
	out := make([]UF, len(ufTable))
	for i, u := range ufTable {
		out[i] = u.UF
	}
	return out
}

// ParseUF accepts a sigla in any case, surrounded by optional whitespace.
func ParseUF(s string) (UF, bool) {
	u := UF(toUpper(strings.TrimSpace(s)))
	if _, ok := ufByCode[u]; !ok {
		return "", false
	}
	return u, true
}

// Valid reports whether u is one of the 27 known UFs.
func (u UF) Valid() bool {
	_, ok := ufByCode[u]
	return ok
}

// Name returns the full name (e.g. "São Paulo"), or "" for an unknown UF.
func (u UF) Name() string {
	return ufByCode[u].Name
}

// Prefix returns the two-digit IBGE prefix of the UF, or 0 if unknown.
func (u UF) Prefix() int {
	return ufByCode[u].Prefix
}

// Region returns the macro-region owning u, or "" if unknown.
func (u UF) Region() Region {
	return ufByCode[u].Region
}

// UFForCode derives the UF from the first two digits of a 7-digit IBGE code.
func UFForCode(code int) (UF, bool) {
	if code < 1000000 || code > 9999999 {
		return "", false
	}
	u, ok := ufByPrefix[code/100000]
	return u, ok
}

// AllRegions returns the five regions from north to centre-west.
func AllRegions() []Region {
	return []Region{RegionNorte, RegionNordeste, RegionSudeste, RegionSul, RegionCentroOeste}
}

// ParseRegion accepts a region code in any case.
func ParseRegion(s string) (Region, bool) {
	r := Region(toUpper(strings.TrimSpace(s)))
	if _, ok := regionNames[r]; !ok {
		return "", false
	}
	return r, true
}

func (r Region) Valid() bool {
	_, ok := regionNames[r]
	return ok
}

// Name returns the region name as written in the dataset (e.g. "Centro-Oeste").
func (r Region) Name() string {
	return regionNames[r]
}

// UFs returns the UFs owned by r in IBGE numeric order. The five sets are
// disjoint and together cover all 27 UFs.
func (r Region) UFs() []UF {
	var out []UF
	for _, u := range ufTable {
		if u.Region == r {
			out = append(out, u.UF)
		}
	}
	return out
}

// Style is a visual rendering of a flag icon.
type Style string

const (
	StyleFull          Style = "full"
	StyleRounded       Style = "rounded"
	StyleCircle        Style = "circle"
	StyleSquareRounded Style = "square-rounded"
)

// styleSuffixes maps each style to the suffix used in icon file names.
var styleSuffixes = map[Style]string{
	StyleFull:          "full",
	StyleRounded:       "rounded",
	StyleCircle:        "circle",
	StyleSquareRounded: "sq",
}

// AllStyles returns the four styles in dataset order.
func AllStyles() []Style {
	return []Style{StyleFull, StyleRounded, StyleCircle, StyleSquareRounded}
}

func ParseStyle(s string) (Style, bool) {
	st := Style(toLower(strings.TrimSpace(s)))
	if _, ok := styleSuffixes[st]; !ok {
		return "", false
	}
	return st, true
}

func (s Style) Valid() bool {
	_, ok := styleSuffixes[s]
	return ok
}

// Suffix returns the file-name suffix for s ("sq" for square-rounded).
func (s Style) Suffix() string {
	return styleSuffixes[s]
}

// Format is an output encoding: vector or one of two raster sizes.
type Format string

const (
	FormatSVG    Format = "svg"
	FormatPNG200 Format = "png-200"
	FormatPNG800 Format = "png-800"
)

// AllFormats returns the three formats in dataset order.
func AllFormats() []Format {
	return []Format{FormatSVG, FormatPNG200, FormatPNG800}
}

func ParseFormat(s string) (Format, bool) {
	f := Format(toLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", false
	}
	return f, true
}

func (f Format) Valid() bool {
	switch f {
	case FormatSVG, FormatPNG200, FormatPNG800:
		return true
	}
	return false
}

// Ext returns the file extension for f: "svg", or "png" for every raster size.
func (f Format) Ext() string {
	if f == FormatSVG {
		return "svg"
	}
	return "png"
}

// toLower and toUpper are the case folds used for every comparison in the
// package; names carry accents, so they must stay Unicode-aware.
func toLower(s string) string {
	return strings.ToLower(s)
}

func toUpper(s string) string {
	return strings.ToUpper(s)
}
