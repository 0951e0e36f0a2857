package main

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/alexflint/go-arg"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andreiashu/brflags"
)

// runArgs parses argv like main does and runs the selected subcommand.
func runArgs(t *testing.T, argv ...string) (string, error) {
	t.Helper()
	params := options{Verbosity: logger.WarnLevel}
	p, err := arg.NewParser(arg.Config{}, &params)
	require.NoError(t, err)
	require.NoError(t, p.Parse(argv))

	quiet := logger.New()
	quiet.SetOutput(io.Discard)

	var out bytes.Buffer
	err = run(params, &out, quiet)
	return out.String(), err
}

func decodeCodes(t *testing.T, out string) []int {
	t.Helper()
	var ms []brflags.Municipio
	require.NoError(t, json.Unmarshal([]byte(out), &ms))
	codes := make([]int, len(ms))
	for i, m := range ms {
		codes[i] = m.IBGECode
	}
	return codes
}

func TestLookup(t *testing.T) {
	out, err := runArgs(t, "lookup", "3304557")
	require.NoError(t, err)

	var m brflags.Municipio
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "Rio de Janeiro", m.Name)
	assert.Equal(t, brflags.RegionSudeste, m.Region)

	_, err = runArgs(t, "lookup", "9999999")
	assert.True(t, errors.Is(err, errNotFound), "err = %v", err)
}

func TestUF(t *testing.T) {
	out, err := runArgs(t, "uf", "df", "Rj", "DF")
	require.NoError(t, err)
	assert.Equal(t, []int{5300108, 3300100, 3301702, 3303302, 3303906, 3304557}, decodeCodes(t, out))

	out, err = runArgs(t, "uf", "all")
	require.NoError(t, err)
	assert.Len(t, decodeCodes(t, out), 35)

	_, err = runArgs(t, "uf", "sp", "xx", "yy")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[XX YY]")
}

func TestIcons(t *testing.T) {
	out, err := runArgs(t, "icons", "rj")
	require.NoError(t, err)
	assert.Equal(t, []int{3300100, 3303302, 3304557}, decodeCodes(t, out))

	out, err = runArgs(t, "icons")
	require.NoError(t, err)
	assert.Len(t, decodeCodes(t, out), 31)

	_, err = runArgs(t, "icons", "zz")
	assert.Error(t, err)
}

func TestSearch(t *testing.T) {
	out, err := runArgs(t, "search", "são paulo")
	require.NoError(t, err)
	assert.Equal(t, []int{1303908, 3550308}, decodeCodes(t, out))

	out, err = runArgs(t, "search", "   ")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	out, err = runArgs(t, "search", "Florianopoliz", "--fuzzy", "1")
	require.NoError(t, err)
	assert.Equal(t, []int{4205407}, decodeCodes(t, out))
}

func TestPath(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want string
	}{
		{"dataset", []string{"path", "3550308", "circle", "svg"}, "circle/svg/SP/3550308-sao-paulo-circle.svg"},
		{"component slug", []string{"path", "3550308", "square-rounded", "png-800", "--uf", "sp", "--slug", "sao-paulo"}, "square-rounded/png-800/SP/3550308-sao-paulo-sq.png"},
		{"component name", []string{"path", "2927408", "full", "png-200", "--uf", "BA", "--name", "Salvador"}, "full/png-200/BA/2927408-salvador-full.png"},
		// Component mode does not consult the dataset.
		{"component unknown code", []string{"path", "9999999", "rounded", "svg", "--uf", "MG", "--name", "São Tomé das Letras"}, "rounded/svg/MG/9999999-sao-tome-das-letras-rounded.svg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := runArgs(t, tt.argv...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, strings.TrimSpace(out))
		})
	}

	_, err := runArgs(t, "path", "3303906", "full", "svg")
	assert.True(t, errors.Is(err, errNotFound), "err = %v", err)

	_, err = runArgs(t, "path", "3550308", "oval", "svg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid style "oval"`)

	_, err = runArgs(t, "path", "3550308", "full", "jpg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "jpg"`)

	_, err = runArgs(t, "path", "3550308", "full", "svg", "--uf", "SP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--slug or --name")
}

func TestURL(t *testing.T) {
	a, err := runArgs(t, "url", "3550308", "full", "png-200", "--base", "https://cdn.example.com/flags/")
	require.NoError(t, err)
	b, err := runArgs(t, "url", "3550308", "full", "png-200", "--base", "https://cdn.example.com/flags")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Equal(t, "https://cdn.example.com/flags/full/png-200/SP/3550308-sao-paulo-full.png\n", a)
}

func TestStats(t *testing.T) {
	out, err := runArgs(t, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Total municipalities:      35")
	assert.Contains(t, out, "With generated icons:      31 (88.6%)")
	assert.Contains(t, out, "RJ        5      4      3      60.0%")
}

func TestValidate(t *testing.T) {
	out, err := runArgs(t, "validate")
	require.NoError(t, err)
	assert.Equal(t, "OK: 35 municipios\n", out)
}

func TestDataDir(t *testing.T) {
	_, err := runArgs(t, "--data-dir", "/nonexistent/brflags", "stats")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/nonexistent/brflags")
}

func TestNormalizeUFs(t *testing.T) {
	ufs, err := normalizeUFs(nil)
	require.NoError(t, err)
	assert.Len(t, ufs, 27)

	ufs, err = normalizeUFs([]string{"ALL"})
	require.NoError(t, err)
	assert.Equal(t, brflags.AllUFs(), ufs)

	ufs, err = normalizeUFs([]string{" sp", "SP", "rj"})
	require.NoError(t, err)
	assert.Equal(t, []brflags.UF{brflags.UFSP, brflags.UFRJ}, ufs)

	_, err = normalizeUFs([]string{"sp", "all"})
	assert.Error(t, err)
}
