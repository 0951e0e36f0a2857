package brflags

import (
	"compress/bzip2"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"os"

	"github.com/pkg/errors"
)

//go:embed database
var embeddedData embed.FS

// Database file names, relative to the database root.
const (
	MunicipiosFile = "municipios.json"
	ByUFFile       = "municipios-by-uf.json"
	StatsFile      = "stats.json"
)

// embeddedRoot is the directory inside embeddedData holding the database files.
const embeddedRoot = "database"

// Municipio is one municipality (or the Federal District) of the dataset.
// Records are shared between all callers of a DB and must not be modified.
type Municipio struct {
	IBGECode   int       `json:"ibge_code"`
	Name       string    `json:"name"`
	Slug       string    `json:"slug"`
	UF         UF        `json:"uf"`
	UFName     string    `json:"uf_name"`
	Region     Region    `json:"region"`
	RegionName string    `json:"region_name"`
	HasFlag    bool      `json:"has_flag"`    // a raw flag source was found
	HasIcons   bool      `json:"has_icons"`   // the full icon set was generated
	FlagSource string    `json:"flag_source"` // wikidata, wikimedia, wikipedia, prefeitura...
	Icons      IconPaths `json:"icons,omitempty"`
}

// Coverage is a per-UF or per-region breakdown in Stats.
type Coverage struct {
	Total       int     `json:"total"`
	WithFlag    int     `json:"with_flag"`
	WithIcons   int     `json:"with_icons"`
	CoveragePct float64 `json:"coverage_pct"`
}

// Stats holds the precomputed aggregate counts of the dataset.
type Stats struct {
	TotalMunicipios  int                 `json:"total_municipios"`
	TotalWithRawFlag int                 `json:"total_with_raw_flag"`
	TotalWithIcons   int                 `json:"total_with_icons"`
	RawCoveragePct   float64             `json:"raw_coverage_pct"`
	IconCoveragePct  float64             `json:"icon_coverage_pct"`
	TotalUFs         int                 `json:"total_ufs"`
	Styles           []Style             `json:"styles"`
	Formats          map[Format][]string `json:"formats"`
	ByUF             map[UF]Coverage     `json:"by_uf"`
	ByRegion         map[string]Coverage `json:"by_region"` // keyed by region name
}

// dataset is the decoded form of the three database tables.
type dataset struct {
	municipios []Municipio
	byUF       map[UF][]Municipio
	stats      Stats
}

// loadDataset decodes all three tables from fsys.
func loadDataset(fsys fs.FS) (*dataset, error) {
	d := &dataset{}
	if err := decodeFile(fsys, MunicipiosFile, &d.municipios); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, ByUFFile, &d.byUF); err != nil {
		return nil, err
	}
	if err := decodeFile(fsys, StatsFile, &d.stats); err != nil {
		return nil, err
	}
	return d, nil
}

func decodeFile(fsys fs.FS, name string, v any) error {
	r, cleanup, err := openOptionallyBzippedFile(fsys, name)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := json.NewDecoder(r).Decode(v); err != nil {
		return errors.Wrapf(err, "decoding %s", name)
	}
	return nil
}

// openOptionallyBzippedFile prefers name+".bz2" and falls back to the plain file.
func openOptionallyBzippedFile(fsys fs.FS, name string) (io.Reader, func() error, error) {
	fh, err := fsys.Open(name + ".bz2")
	if err != nil {
		fh, err = fsys.Open(name)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "opening %s", name)
		}
		return fh, fh.Close, nil
	}
	return bzip2.NewReader(fh), fh.Close, nil
}

// resolveFS picks the database source: explicit FS, then DataDir, then the
// embedded copy. The returned label is used in log lines.
func (c *Config) resolveFS() (fs.FS, string, error) {
	switch {
	case c.FS != nil:
		return c.FS, "fs", nil
	case c.DataDir != "":
		if _, err := os.Stat(c.DataDir); err != nil {
			return nil, "", errors.Wrapf(err, "data directory %s", c.DataDir)
		}
		return os.DirFS(c.DataDir), c.DataDir, nil
	}
	sub, err := fs.Sub(embeddedData, embeddedRoot)
	if err != nil {
		return nil, "", errors.Wrap(err, "embedded database")
	}
	return sub, "embedded", nil
}
