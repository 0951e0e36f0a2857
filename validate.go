package brflags

import (
	"fmt"
	"math"
	"strings"
)

// pctTolerance absorbs rounding differences between producers (half-even vs
// half-away-from-zero) when comparing one-decimal percentages.
const pctTolerance = 0.05 + 1e-9

// ValidationError lists every integrity problem found by Validate.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("dataset invalid (%d problems): %s", len(e.Problems), strings.Join(e.Problems, "; "))
}

func (e *ValidationError) addf(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

// roundPct returns part/total as a percentage rounded to one decimal; 0 when
// total is 0.
func roundPct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}

// ComputeStats derives the aggregate statistics from a record list.
func ComputeStats(ms []Municipio) Stats {
	st := Stats{
		TotalMunicipios: len(ms),
		Styles:          AllStyles(),
		Formats:         make(map[Format][]string, len(AllFormats())),
		ByUF:            make(map[UF]Coverage),
		ByRegion:        make(map[string]Coverage),
	}
	for _, f := range AllFormats() {
		for _, s := range AllStyles() {
			st.Formats[f] = append(st.Formats[f], string(s)+"/"+string(f))
		}
	}

	for _, m := range ms {
		uc := st.ByUF[m.UF]
		rc := st.ByRegion[m.RegionName]
		uc.Total++
		rc.Total++
		if m.HasFlag {
			st.TotalWithRawFlag++
			uc.WithFlag++
			rc.WithFlag++
		}
		if m.HasIcons {
			st.TotalWithIcons++
			uc.WithIcons++
			rc.WithIcons++
		}
		st.ByUF[m.UF] = uc
		st.ByRegion[m.RegionName] = rc
	}

	for k, c := range st.ByUF {
		c.CoveragePct = roundPct(c.WithIcons, c.Total)
		st.ByUF[k] = c
	}
	for k, c := range st.ByRegion {
		c.CoveragePct = roundPct(c.WithIcons, c.Total)
		st.ByRegion[k] = c
	}
	st.RawCoveragePct = roundPct(st.TotalWithRawFlag, st.TotalMunicipios)
	st.IconCoveragePct = roundPct(st.TotalWithIcons, st.TotalMunicipios)
	st.TotalUFs = len(st.ByUF)
	return st
}

// Validate checks the dataset against its integrity rules: unique 7-digit
// codes whose prefix matches the UF, valid UF and region per record, complete
// icon sets exactly when has_icons is set, a stored by-UF table equal to the
// partition of the records, and stats consistent with the records. It returns
// nil or a *ValidationError.
func (db *DB) Validate() error {
	verr := &ValidationError{}
	validateRecords(db.municipios, verr)
	validateByUF(db.ByUF, db.storedByUF, verr)
	validateStats(db.municipios, db.stats, verr)
	if len(verr.Problems) > 0 {
		return verr
	}
	return nil
}

func validateRecords(ms []Municipio, verr *ValidationError) {
	seen := make(map[int]struct{}, len(ms))
	keys := IconKeys()

	for _, m := range ms {
		if _, dup := seen[m.IBGECode]; dup {
			verr.addf("%d: duplicate code", m.IBGECode)
		}
		seen[m.IBGECode] = struct{}{}

		if !m.UF.Valid() {
			verr.addf("%d: unknown uf %q", m.IBGECode, m.UF)
		} else {
			if want, ok := UFForCode(m.IBGECode); !ok || want != m.UF {
				verr.addf("%d: code prefix does not belong to uf %s", m.IBGECode, m.UF)
			}
			if m.Region != m.UF.Region() {
				verr.addf("%d: region %q, want %q for uf %s", m.IBGECode, m.Region, m.UF.Region(), m.UF)
			}
		}
		if !m.Region.Valid() {
			verr.addf("%d: unknown region %q", m.IBGECode, m.Region)
		} else if m.RegionName != m.Region.Name() {
			verr.addf("%d: region_name %q, want %q", m.IBGECode, m.RegionName, m.Region.Name())
		}
		if m.Slug == "" {
			verr.addf("%d: empty slug", m.IBGECode)
		}

		if !m.HasIcons {
			if m.Icons != nil {
				verr.addf("%d: icons present without has_icons", m.IBGECode)
			}
			continue
		}
		if len(m.Icons) != len(keys) {
			verr.addf("%d: %d icon paths, want %d", m.IBGECode, len(m.Icons), len(keys))
		}
		for _, k := range keys {
			if _, ok := m.Icons[k]; !ok {
				verr.addf("%d: missing icon %s", m.IBGECode, k)
			}
		}
	}
}

// validateByUF compares the stored grouping with the partition derived from
// the record list, by membership and order.
func validateByUF(derived func(UF) []Municipio, stored map[UF][]Municipio, verr *ValidationError) {
	for uf := range stored {
		if !uf.Valid() {
			verr.addf("by-uf: unknown uf %q", uf)
		}
	}
	for _, uf := range AllUFs() {
		want := derived(uf)
		got := stored[uf]
		if len(got) != len(want) {
			verr.addf("by-uf %s: %d records, want %d", uf, len(got), len(want))
			continue
		}
		for i := range want {
			if got[i].IBGECode != want[i].IBGECode {
				verr.addf("by-uf %s[%d]: code %d, want %d", uf, i, got[i].IBGECode, want[i].IBGECode)
				break
			}
		}
	}
}

func validateStats(ms []Municipio, stored Stats, verr *ValidationError) {
	want := ComputeStats(ms)

	checkInt := func(what string, got, want int) {
		if got != want {
			verr.addf("stats %s: %d, want %d", what, got, want)
		}
	}
	checkPct := func(what string, got, want float64) {
		if math.Abs(got-want) > pctTolerance {
			verr.addf("stats %s: %.1f, want %.1f", what, got, want)
		}
	}
	checkCoverage := func(what string, got, want Coverage) {
		checkInt(what+".total", got.Total, want.Total)
		checkInt(what+".with_flag", got.WithFlag, want.WithFlag)
		checkInt(what+".with_icons", got.WithIcons, want.WithIcons)
		checkPct(what+".coverage_pct", got.CoveragePct, want.CoveragePct)
	}

	checkInt("total_municipios", stored.TotalMunicipios, want.TotalMunicipios)
	checkInt("total_with_raw_flag", stored.TotalWithRawFlag, want.TotalWithRawFlag)
	checkInt("total_with_icons", stored.TotalWithIcons, want.TotalWithIcons)
	checkInt("total_ufs", stored.TotalUFs, want.TotalUFs)
	checkPct("raw_coverage_pct", stored.RawCoveragePct, want.RawCoveragePct)
	checkPct("icon_coverage_pct", stored.IconCoveragePct, want.IconCoveragePct)

	checkInt("by_uf entries", len(stored.ByUF), len(want.ByUF))
	for _, uf := range AllUFs() {
		if w, ok := want.ByUF[uf]; ok {
			checkCoverage("by_uf."+string(uf), stored.ByUF[uf], w)
		}
	}
	checkInt("by_region entries", len(stored.ByRegion), len(want.ByRegion))
	for _, r := range AllRegions() {
		if w, ok := want.ByRegion[r.Name()]; ok {
			checkCoverage("by_region."+r.Name(), stored.ByRegion[r.Name()], w)
		}
	}
}
