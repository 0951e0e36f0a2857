package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/ahmetb/go-linq/v3"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/andreiashu/brflags"
	"github.com/andreiashu/brflags/internal/httpapi"
)

func cmdLookup(db *brflags.DB, c *lookupCmd, out io.Writer) error {
	m, ok := db.Municipio(c.Code)
	if !ok {
		return errors.Wrapf(errNotFound, "municipio %d", c.Code)
	}
	return writeJSON(out, m)
}

func cmdUF(db *brflags.DB, c *ufCmd, out io.Writer) error {
	ufs, err := normalizeUFs(c.UFs)
	if err != nil {
		return err
	}
	var ms []brflags.Municipio
	for _, uf := range ufs {
		ms = append(ms, db.ByUF(uf)...)
	}
	return writeList(out, ms)
}

func cmdIcons(db *brflags.DB, c *iconsCmd, out io.Writer) error {
	var uf brflags.UF
	if c.UF != "" {
		var ok bool
		if uf, ok = brflags.ParseUF(c.UF); !ok {
			return errors.Errorf("invalid UF %q", c.UF)
		}
	}
	return writeList(out, db.MunicipiosWithFlags(uf))
}

func cmdSearch(db *brflags.DB, c *searchCmd, out io.Writer) error {
	ms := db.Search(c.Query)
	if len(ms) == 0 && c.Fuzzy > 0 {
		ms = db.Suggest(c.Query, c.Fuzzy)
	}
	return writeList(out, ms)
}

func cmdPath(db *brflags.DB, c *pathCmd, out io.Writer) error {
	style, format, err := parseStyleFormat(c.Style, c.Format)
	if err != nil {
		return err
	}

	if c.UF != "" {
		uf, ok := brflags.ParseUF(c.UF)
		if !ok {
			return errors.Errorf("invalid UF %q", c.UF)
		}
		slug := c.Slug
		if slug == "" {
			slug = brflags.Slugify(c.Name)
		}
		if slug == "" {
			return errors.New("component mode needs --slug or --name")
		}
		_, err := fmt.Fprintln(out, brflags.BuildFlagPath(uf, c.Code, slug, style, format))
		return err
	}

	path, ok := db.FlagPath(c.Code, style, format)
	if !ok {
		return errors.Wrapf(errNotFound, "flag %d %s %s", c.Code, style, format)
	}
	_, err = fmt.Fprintln(out, path)
	return err
}

func cmdURL(db *brflags.DB, c *urlCmd, out io.Writer) error {
	style, format, err := parseStyleFormat(c.Style, c.Format)
	if err != nil {
		return err
	}
	u, ok := db.FlagURL(c.Base, c.Code, style, format)
	if !ok {
		return errors.Wrapf(errNotFound, "flag %d %s %s", c.Code, style, format)
	}
	_, err = fmt.Fprintln(out, u)
	return err
}

// cmdStats prints the coverage summary the database build prints.
func cmdStats(db *brflags.DB, out io.Writer) error {
	st := db.Stats()
	fmt.Fprintf(out, "  Total municipalities:  %6d\n", st.TotalMunicipios)
	fmt.Fprintf(out, "  With raw flag:         %6d (%.1f%%)\n", st.TotalWithRawFlag, st.RawCoveragePct)
	fmt.Fprintf(out, "  With generated icons:  %6d (%.1f%%)\n", st.TotalWithIcons, st.IconCoveragePct)
	fmt.Fprintf(out, "  Missing flags:         %6d\n", st.TotalMunicipios-st.TotalWithRawFlag)
	fmt.Fprintln(out)

	ufs := make([]string, 0, len(st.ByUF))
	for uf := range st.ByUF {
		ufs = append(ufs, string(uf))
	}
	sort.Strings(ufs)

	fmt.Fprintf(out, "%-4s %6s %6s %6s %10s\n", "UF", "Total", "Flag", "Icons", "Coverage")
	fmt.Fprintln(out, strings.Repeat("-", 36))
	for _, uf := range ufs {
		c := st.ByUF[brflags.UF(uf)]
		fmt.Fprintf(out, "%-4s %6d %6d %6d %9.1f%%\n", uf, c.Total, c.WithFlag, c.WithIcons, c.CoveragePct)
	}
	return nil
}

func cmdValidate(db *brflags.DB, out io.Writer) error {
	if err := db.Validate(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "OK: %d municipios\n", db.Len())
	return err
}

func cmdServe(db *brflags.DB, c *serveCmd, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              c.Addr,
		Handler:           httpapi.New(db, httpapi.WithBaseURL(c.Base), httpapi.WithLogger(log)),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("component", "serve").Infof("listening on %s", c.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "serving")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// normalizeUFs upper-cases and de-duplicates UF arguments; no arguments or
// "all" selects every UF.
func normalizeUFs(params []string) ([]brflags.UF, error) {
	if len(params) == 0 || (len(params) == 1 && strings.EqualFold(params[0], "all")) {
		logger.Info("no UF chosen, using all of them")
		return brflags.AllUFs(), nil
	}

	var siglas, invalid []string
	linq.From(params).SelectT(func(s string) string {
		return strings.ToUpper(strings.TrimSpace(s))
	}).ToSlice(&siglas)

	linq.From(siglas).WhereT(func(s string) bool {
		return !brflags.UF(s).Valid()
	}).ToSlice(&invalid)
	if len(invalid) > 0 {
		return nil, errors.Errorf("invalid UFs %v", invalid)
	}

	var ufs []brflags.UF
	linq.From(siglas).Distinct().SelectT(func(s string) brflags.UF {
		return brflags.UF(s)
	}).ToSlice(&ufs)
	return ufs, nil
}

func parseStyleFormat(s, f string) (brflags.Style, brflags.Format, error) {
	style, ok := brflags.ParseStyle(s)
	if !ok {
		return "", "", errors.Errorf("invalid style %q", s)
	}
	format, ok := brflags.ParseFormat(f)
	if !ok {
		return "", "", errors.Errorf("invalid format %q", f)
	}
	return style, format, nil
}

func writeList(out io.Writer, ms []brflags.Municipio) error {
	if ms == nil {
		ms = []brflags.Municipio{}
	}
	return writeJSON(out, ms)
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
