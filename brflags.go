// Package brflags looks up flag icons of Brazilian municipalities.
//
// The dataset (one record per IBGE municipality code, a by-UF grouping and
// coverage statistics) is embedded in the package and loaded once. All lookups
// are reads over immutable in-memory data, so a DB is safe for concurrent use.
//
//	db, err := brflags.Default()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, ok := db.FlagPath(3550308, brflags.StyleCircle, brflags.FormatSVG)
//	// "circle/svg/SP/3550308-sao-paulo-circle.svg", true
package brflags

import (
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrDuplicateCode is returned by Open when two records share an IBGE code.
var ErrDuplicateCode = errors.New("duplicate ibge_code")

// Config contains configuration options for opening a DB.
type Config struct {
	DataDir string             // Directory holding the database files (default: embedded copy)
	FS      fs.FS              // Database filesystem; takes precedence over DataDir
	Logger  logrus.FieldLogger // Default: logrus.StandardLogger()
}

// Option is a functional option for configuring a DB.
type Option func(*Config)

// WithDataDir loads the database from a directory on disk instead of the
// embedded copy.
func WithDataDir(dir string) Option {
	return func(c *Config) {
		c.DataDir = dir
	}
}

// WithFS loads the database from fsys.
func WithFS(fsys fs.FS) Option {
	return func(c *Config) {
		c.FS = fsys
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

func defaultConfig() *Config {
	return &Config{
		Logger: logrus.StandardLogger(),
	}
}

// DB is a loaded, read-only municipality flag dataset.
type DB struct {
	municipios []Municipio
	storedByUF map[UF][]Municipio // by-UF table as stored; only compared by Validate
	stats      Stats
	config     *Config

	// Built on first use, at most once.
	index func() map[int]int
	byUF  func() map[UF][]Municipio
}

// Singleton for the embedded dataset.
var (
	defaultDB     *DB
	defaultDBOnce sync.Once
	defaultDBErr  error
)

// Default returns a shared DB over the embedded dataset, opening it on first call.
func Default() (*DB, error) {
	defaultDBOnce.Do(func() {
		defaultDB, defaultDBErr = Open()
	})
	return defaultDB, defaultDBErr
}

// Open loads a dataset. Without options it reads the embedded database.
//
//	db, err := brflags.Open(brflags.WithDataDir("/srv/flags/database"))
//
// Open rejects a record list that repeats an IBGE code.
func Open(opts ...Option) (*DB, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	fsys, source, err := cfg.resolveFS()
	if err != nil {
		return nil, err
	}
	d, err := loadDataset(fsys)
	if err != nil {
		return nil, errors.Wrapf(err, "loading database from %s", source)
	}
	if err := checkDuplicates(d.municipios); err != nil {
		return nil, err
	}

	db := newDB(d, cfg)
	cfg.Logger.WithFields(logrus.Fields{
		"component":  "brflags",
		"source":     source,
		"municipios": len(db.municipios),
		"ufs":        len(db.storedByUF),
	}).Debug("database loaded")
	return db, nil
}

func newDB(d *dataset, cfg *Config) *DB {
	db := &DB{
		municipios: d.municipios,
		storedByUF: d.byUF,
		stats:      d.stats,
		config:     cfg,
	}
	db.index = sync.OnceValue(db.buildIndex)
	db.byUF = sync.OnceValue(db.buildByUF)
	return db
}

// checkDuplicates rejects repeated codes. The artifact is sorted by code, so a
// single ascending scan usually suffices; an unsorted list falls back to a set.
func checkDuplicates(ms []Municipio) error {
	sorted := true
	for i := 1; i < len(ms); i++ {
		if ms[i].IBGECode == ms[i-1].IBGECode {
			return errors.Wrapf(ErrDuplicateCode, "code %d", ms[i].IBGECode)
		}
		if ms[i].IBGECode < ms[i-1].IBGECode {
			sorted = false
			break
		}
	}
	if sorted {
		return nil
	}

	seen := make(map[int]struct{}, len(ms))
	for _, m := range ms {
		if _, ok := seen[m.IBGECode]; ok {
			return errors.Wrapf(ErrDuplicateCode, "code %d", m.IBGECode)
		}
		seen[m.IBGECode] = struct{}{}
	}
	return nil
}

// buildIndex maps each code to its position in the record list. Open has
// already rejected duplicates, so every code maps to exactly one record.
func (db *DB) buildIndex() map[int]int {
	idx := make(map[int]int, len(db.municipios))
	for i, m := range db.municipios {
		idx[m.IBGECode] = i
	}
	return idx
}

// buildByUF partitions the record list by UF, keeping source order.
func (db *DB) buildByUF() map[UF][]Municipio {
	out := make(map[UF][]Municipio, len(ufTable))
	for _, m := range db.municipios {
		out[m.UF] = append(out[m.UF], m)
	}
	return out
}

// Municipios returns every record in source order. The slice is shared and
// must not be modified.
func (db *DB) Municipios() []Municipio {
	return db.municipios
}

// Len returns the number of records.
func (db *DB) Len() int {
	return len(db.municipios)
}

// Municipio looks up a record by IBGE code.
func (db *DB) Municipio(code int) (Municipio, bool) {
	i, ok := db.index()[code]
	if !ok {
		return Municipio{}, false
	}
	return db.municipios[i], true
}

// ByUF returns the records of a UF in source order. An unknown UF yields an
// empty result.
func (db *DB) ByUF(uf UF) []Municipio {
	return db.byUF()[uf]
}

// ByUFString is ByUF for raw input such as query parameters; anything that is
// not a valid sigla yields an empty result.
func (db *DB) ByUFString(s string) []Municipio {
	uf, ok := ParseUF(s)
	if !ok {
		return nil
	}
	return db.ByUF(uf)
}

// MunicipiosWithFlags returns the records that have a generated icon set, in
// source order. A zero UF means every UF; an unknown UF yields an empty result.
func (db *DB) MunicipiosWithFlags(uf UF) []Municipio {
	src := db.municipios
	if uf != "" {
		src = db.ByUF(uf)
	}
	var out []Municipio
	for _, m := range src {
		if m.HasIcons {
			out = append(out, m)
		}
	}
	return out
}

// Search returns every record whose name (case-insensitively) or slug contains
// the trimmed, lower-cased query, in source order. A blank query matches nothing.
func (db *DB) Search(query string) []Municipio {
	q := toLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []Municipio
	for _, m := range db.municipios {
		if strings.Contains(toLower(m.Name), q) || strings.Contains(m.Slug, q) {
			out = append(out, m)
		}
	}
	return out
}

// maxSuggestDistance caps Suggest so a typo search never degrades into a
// near full listing.
const maxSuggestDistance = 3

// Suggest returns records whose slug is within maxDist edits of the slugified
// query, closest first and in source order among equals. maxDist is capped at 3.
func (db *DB) Suggest(query string, maxDist int) []Municipio {
	q := Slugify(query)
	if q == "" || maxDist <= 0 {
		return nil
	}
	if maxDist > maxSuggestDistance {
		maxDist = maxSuggestDistance
	}

	type match struct {
		i, dist int
	}
	var matches []match
	for i, m := range db.municipios {
		if d := levenshtein.ComputeDistance(q, m.Slug); d <= maxDist {
			matches = append(matches, match{i, d})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].dist < matches[b].dist
	})

	out := make([]Municipio, len(matches))
	for j, mt := range matches {
		out[j] = db.municipios[mt.i]
	}
	return out
}

// Stats returns the aggregate statistics stored with the dataset.
func (db *DB) Stats() Stats {
	return db.stats
}
