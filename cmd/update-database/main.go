// Command update-database regenerates the derived tables of a database
// directory from its municipios.json and validates the result.
//
// Usage:
//
//	go run ./cmd/update-database [--dir ./database]
//
// Rewrites municipios.json (sorted by code), municipios-by-uf.json and
// stats.json. The embedded copy is updated by pointing --dir at ./database.
package main

import (
	"fmt"
	"os"

	"github.com/alexflint/go-arg"

	"github.com/andreiashu/brflags"
)

type options struct {
	Dir string `arg:"-d,--dir" default:"./database" placeholder:"DIR" help:"database directory"`
}

func main() {
	var opts options
	arg.MustParse(&opts)
	dir := opts.Dir

	fmt.Printf("Regenerating derived tables in %s...\n", dir)
	if err := brflags.RegenerateDerived(dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	db, err := brflags.Open(brflags.WithDataDir(dir))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := db.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	st := db.Stats()
	fmt.Printf("Database regenerated: %d municipios, %d with icons (%.1f%%).\n",
		st.TotalMunicipios, st.TotalWithIcons, st.IconCoveragePct)
}
