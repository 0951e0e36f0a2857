// Command brflags queries the municipality flag database from the shell or
// serves it over HTTP.
//
// Usage:
//
//	brflags lookup 3550308
//	brflags uf rj sp
//	brflags icons RJ
//	brflags search "são paulo" --fuzzy 2
//	brflags path 3550308 circle svg
//	brflags path 3550308 square-rounded png-800 --uf SP --name "São Paulo"
//	brflags url 3550308 full png-200 --base https://cdn.example.com/flags/
//	brflags stats
//	brflags validate
//	brflags serve --addr :8080
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alexflint/go-arg"
	nested "github.com/antonfisher/nested-logrus-formatter"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"

	"github.com/andreiashu/brflags"
)

type lookupCmd struct {
	Code int `arg:"positional,required" help:"IBGE municipality code, e.g. 3550308"`
}

type ufCmd struct {
	UFs []string `arg:"positional" help:"UF siglas in any case, or 'all' (default)"`
}

type iconsCmd struct {
	UF string `arg:"positional" help:"restrict to one UF"`
}

type searchCmd struct {
	Query string `arg:"positional,required" help:"substring of the name or slug"`
	Fuzzy int    `arg:"-f,--fuzzy" placeholder:"N" help:"when nothing matches, suggest slugs within N edits (max 3)"`
}

type pathCmd struct {
	Code   int    `arg:"positional,required" help:"IBGE municipality code"`
	Style  string `arg:"positional,required" help:"full, rounded, circle or square-rounded"`
	Format string `arg:"positional,required" help:"svg, png-200 or png-800"`
	UF     string `arg:"--uf" help:"build the path from components instead of the database"`
	Slug   string `arg:"--slug" help:"slug for component mode"`
	Name   string `arg:"--name" help:"name to slugify when --slug is omitted"`
}

type urlCmd struct {
	Code   int    `arg:"positional,required" help:"IBGE municipality code"`
	Style  string `arg:"positional,required" help:"full, rounded, circle or square-rounded"`
	Format string `arg:"positional,required" help:"svg, png-200 or png-800"`
	Base   string `arg:"--base,required,env:BRFLAGS_BASE_URL" help:"base URL of the icon tree"`
}

type statsCmd struct{}

type validateCmd struct{}

type serveCmd struct {
	Addr string `arg:"--addr,env:BRFLAGS_ADDR" default:":8080" help:"listen address"`
	Base string `arg:"--base,env:BRFLAGS_BASE_URL" help:"base URL added to flag responses"`
}

type options struct {
	DataDir   string       `arg:"-d,--data-dir,env:BRFLAGS_DATA_DIR" placeholder:"DIR" help:"database directory; the embedded database is used when empty"`
	Verbosity logger.Level `arg:"-v,--verbosity" placeholder:"LEVEL" help:"panic, fatal, error, warn, info, debug or trace"`

	Lookup   *lookupCmd   `arg:"subcommand:lookup" help:"look up a municipality by IBGE code"`
	UF       *ufCmd       `arg:"subcommand:uf" help:"list the municipalities of one or more UFs"`
	Icons    *iconsCmd    `arg:"subcommand:icons" help:"list municipalities with generated icons"`
	Search   *searchCmd   `arg:"subcommand:search" help:"search municipalities by name or slug"`
	Path     *pathCmd     `arg:"subcommand:path" help:"print the relative path of a flag icon"`
	URL      *urlCmd      `arg:"subcommand:url" help:"print the absolute URL of a flag icon"`
	Stats    *statsCmd    `arg:"subcommand:stats" help:"print coverage statistics"`
	Validate *validateCmd `arg:"subcommand:validate" help:"check the database integrity rules"`
	Serve    *serveCmd    `arg:"subcommand:serve" help:"serve the database as a JSON API"`
}

func (options) Description() string {
	return "brflags looks up flag icons of Brazilian municipalities by IBGE code."
}

// errNotFound makes the process exit non-zero without extra output.
var errNotFound = errors.New("not found")

func main() {
	params := options{Verbosity: logger.WarnLevel}
	p := arg.MustParse(&params)
	if p.Subcommand() == nil {
		p.Fail("missing subcommand")
	}

	logger.SetLevel(params.Verbosity)
	logger.SetFormatter(&nested.Formatter{
		HideKeys:    true,
		FieldsOrder: []string{"component", "category"},
	})

	err := run(params, os.Stdout, logger.StandardLogger())
	switch {
	case err == nil:
	case errors.Is(err, errNotFound):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run opens the database and dispatches to the selected subcommand.
func run(params options, out io.Writer, log *logger.Logger) error {
	opts := []brflags.Option{brflags.WithLogger(log)}
	if params.DataDir != "" {
		opts = append(opts, brflags.WithDataDir(params.DataDir))
	}
	db, err := brflags.Open(opts...)
	if err != nil {
		return err
	}

	switch {
	case params.Lookup != nil:
		return cmdLookup(db, params.Lookup, out)
	case params.UF != nil:
		return cmdUF(db, params.UF, out)
	case params.Icons != nil:
		return cmdIcons(db, params.Icons, out)
	case params.Search != nil:
		return cmdSearch(db, params.Search, out)
	case params.Path != nil:
		return cmdPath(db, params.Path, out)
	case params.URL != nil:
		return cmdURL(db, params.URL, out)
	case params.Stats != nil:
		return cmdStats(db, out)
	case params.Validate != nil:
		return cmdValidate(db, out)
	case params.Serve != nil:
		return cmdServe(db, params.Serve, log)
	}
	return errors.New("missing subcommand")
}
