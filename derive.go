package brflags

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
)

// RegenerateDerived rewrites the derived tables of the database in dir from
// its record list: municipios.json is re-sorted by code, and
// municipios-by-uf.json and stats.json are recomputed. It rejects a record
// list with duplicate codes and writes nothing in that case.
func RegenerateDerived(dir string) error {
	var ms []Municipio
	if err := decodeFile(os.DirFS(dir), MunicipiosFile, &ms); err != nil {
		return err
	}

	sort.SliceStable(ms, func(i, j int) bool { return ms[i].IBGECode < ms[j].IBGECode })
	if err := checkDuplicates(ms); err != nil {
		return err
	}

	byUF := make(map[UF][]Municipio)
	for _, m := range ms {
		byUF[m.UF] = append(byUF[m.UF], m)
	}

	return store(dir, &dataset{municipios: ms, byUF: byUF, stats: ComputeStats(ms)})
}

// store writes the three tables to dir.
func store(dir string, d *dataset) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating database directory")
	}

	tables := []struct {
		name string
		v    any
	}{
		{MunicipiosFile, d.municipios},
		{ByUFFile, d.byUF},
		{StatsFile, d.stats},
	}
	for _, t := range tables {
		b := new(bytes.Buffer)
		enc := json.NewEncoder(b)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(t.v); err != nil {
			return errors.Wrapf(err, "encoding %s", t.name)
		}
		if err := os.WriteFile(filepath.Join(dir, t.name), b.Bytes(), 0644); err != nil {
			return errors.Wrapf(err, "writing %s", t.name)
		}
		// A compressed copy would shadow the file just written.
		if err := os.Remove(filepath.Join(dir, t.name+".bz2")); err != nil && !os.IsNotExist(err) {
			return errors.Wrapf(err, "removing stale %s.bz2", t.name)
		}
	}
	return nil
}
