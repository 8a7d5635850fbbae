package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullConfig = `build_path = "src/Shared/Enums.luau"
use_union_types_for_export = true
use_union_types_for_parameters = true
assign_static_strings = true

[enums]
MapType = ["City", "PowerLab"]
RunMode = ["Dev", "Live"]
EffectClassId = ["None", "Grow", "Forcefield"]

[enums.Device]
Tablet = 3
Phone = 1
Desktop = 2
`

func TestInitThenLoadEqualsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)

	require.NoError(t, Init(path))

	got, err := Load(path)
	require.NoError(t, err)

	if diff := cmp.Diff(Default(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestInitDoesNotOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	const existing = "build_path = \"mine.luau\"\n"
	require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

	err := Init(path)
	require.ErrorIs(t, err, ErrConfigExists)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, existing, string(data))
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), DefaultPath))
	require.ErrorIs(t, err, ErrConfigNotFound)
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultPath)
	require.NoError(t, os.WriteFile(path, []byte("build_path = \n[enums"), 0o644))

	_, err := Load(path)
	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, path, pe.Path)
}

func TestParse(t *testing.T) {
	cfg, err := Parse("test.toml", []byte(fullConfig))
	require.NoError(t, err)

	assert.Equal(t, "src/Shared/Enums.luau", cfg.BuildPath)
	assert.True(t, cfg.AssignStaticStrings)
	assert.Empty(t, cfg.Missing)

	want := []Enum{
		{Name: "MapType", Items: []Item{{"City", 1}, {"PowerLab", 2}}},
		{Name: "RunMode", Items: []Item{{"Dev", 1}, {"Live", 2}}},
		{Name: "EffectClassId", Items: []Item{{"None", 1}, {"Grow", 2}, {"Forcefield", 3}}},
		{Name: "Device", Items: []Item{{"Phone", 1}, {"Desktop", 2}, {"Tablet", 3}}},
	}
	if diff := cmp.Diff(want, cfg.Enums); diff != "" {
		t.Errorf("Enums mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeclarationOrder(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "table",
			doc:  "[enums]\nZeta = [\"A\"]\nAlpha = [\"A\"]\nMid = [\"A\"]\n",
			want: []string{"Zeta", "Alpha", "Mid"},
		},
		{
			name: "dotted keys",
			doc:  "enums.Zeta = [\"A\"]\nenums.Alpha = [\"A\"]\n",
			want: []string{"Zeta", "Alpha"},
		},
		{
			name: "inline table",
			doc:  "enums = { Zeta = [\"A\"], Alpha = [\"A\"] }\n",
			want: []string{"Zeta", "Alpha"},
		},
		{
			name: "sub tables",
			doc:  "[enums.Zeta]\nA = 1\n[enums.Alpha]\nA = 1\n",
			want: []string{"Zeta", "Alpha"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse("test.toml", []byte(tt.doc))
			require.NoError(t, err)

			var got []string
			for _, e := range cfg.Enums {
				got = append(got, e.Name)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMissingFlags(t *testing.T) {
	cfg, err := Parse("old.toml", []byte("build_path = \"out.luau\"\n[enums]\nColor = [\"Red\"]\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		KeyUseUnionTypesForExport,
		KeyUseUnionTypesForParameters,
		KeyAssignStaticStrings,
	}, cfg.Missing)

	def := Default()
	assert.Equal(t, "out.luau", cfg.BuildPath)
	assert.Equal(t, def.UseUnionTypesForExport, cfg.UseUnionTypesForExport)
	assert.Equal(t, def.UseUnionTypesForParameters, cfg.UseUnionTypesForParameters)
	assert.Equal(t, def.AssignStaticStrings, cfg.AssignStaticStrings)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		doc        string
		validation bool
	}{
		{name: "unknown key", doc: "frobnicate = true\n"},
		{name: "wrong flag type", doc: "assign_static_strings = \"yes\"\n"},
		{name: "non string member", doc: "[enums]\nColor = [\"Red\", 2]\n"},
		{name: "non integer value", doc: "[enums.Color]\nRed = \"1\"\n"},
		{name: "value out of range", doc: "[enums.Color]\nRed = 70000\n"},
		{name: "scalar enum", doc: "[enums]\nColor = \"Red\"\n"},
		{name: "duplicate member", doc: "[enums]\nColor = [\"A\", \"A\"]\n", validation: true},
		{name: "duplicate value", doc: "[enums.Color]\nRed = 1\nBlue = 1\n", validation: true},
		{name: "bad member identifier", doc: "[enums]\nColor = [\"Light Red\"]\n", validation: true},
		{name: "keyword member", doc: "[enums]\nColor = [\"end\"]\n", validation: true},
		{name: "bad enum identifier", doc: "[enums]\n\"2Color\" = [\"Red\"]\n", validation: true},
		{name: "reserved enum name", doc: "[enums]\nEnumName = [\"Red\"]\n", validation: true},
		{name: "typeof enum name", doc: "[enums]\ntypeof = [\"x\"]\n", validation: true},
		{name: "empty enum", doc: "[enums]\nColor = []\n", validation: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("test.toml", []byte(tt.doc))
			require.Error(t, err)

			var ve *ValidationError
			var pe *ParseError
			if tt.validation {
				assert.ErrorAs(t, err, &ve)
			} else {
				assert.ErrorAs(t, err, &pe)
			}
		})
	}
}

func TestParseUnknownKeysAreNamed(t *testing.T) {
	_, err := Parse("test.toml", []byte("frobnicate = true\nbuild_path = \"a\"\ncolour = 1\n[enums]\nA = [\"x\"]\n"))

	var pe *ParseError
	require.ErrorAs(t, err, &pe)
	assert.Contains(t, err.Error(), "frobnicate")
	assert.Contains(t, err.Error(), "colour")
}

func TestParseDeprecatedImportAsClass(t *testing.T) {
	cfg, err := Parse("old.toml", []byte("import_as_class = true\nbuild_path = \"a\"\n[enums]\nA = [\"x\"]\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{KeyImportAsClass}, cfg.Deprecated)
	assert.Equal(t, "a", cfg.BuildPath)
	require.Len(t, cfg.Enums, 1)

	data, err := Encode(cfg)
	require.NoError(t, err)
	assert.NotContains(t, string(data), KeyImportAsClass)
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg, err := Parse("test.toml", []byte(fullConfig))
	require.NoError(t, err)

	data, err := Encode(cfg)
	require.NoError(t, err)

	again, err := Parse("again.toml", data)
	require.NoError(t, err)

	// map encoding does not keep declaration order
	sortEnums := cmpopts.SortSlices(func(a, b Enum) bool { return a.Name < b.Name })
	if diff := cmp.Diff(cfg, again, sortEnums); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDefaultIsFresh(t *testing.T) {
	a := Default()
	a.Enums = append(a.Enums, Enum{Name: "Color"})
	a.BuildPath = "changed"

	b := Default()
	assert.Empty(t, b.Enums)
	assert.Equal(t, DefaultBuildPath, b.BuildPath)
}
