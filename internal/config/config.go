// Package config reads and writes pseudo-enum.toml, the document that lists
// the enums to generate and how to render them.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

const (
	// DefaultPath is the well-known location of the configuration file,
	// relative to the working directory.
	DefaultPath = "pseudo-enum.toml"

	// DefaultBuildPath is used when build_path is absent.
	DefaultBuildPath = "src/Shared/Enums.luau"
)

// Keys of the optional settings that are reported in Config.Missing.
const (
	KeyBuildPath                  = "build_path"
	KeyUseUnionTypesForExport     = "use_union_types_for_export"
	KeyUseUnionTypesForParameters = "use_union_types_for_parameters"
	KeyAssignStaticStrings        = "assign_static_strings"

	// KeyImportAsClass is accepted for older files and otherwise ignored.
	KeyImportAsClass = "import_as_class"
)

// Item is a single enum member.
type Item struct {
	Name  string
	Value int
}

// Enum is a named, ordered set of members.
type Enum struct {
	Name  string
	Items []Item
}

// Config is the typed form of pseudo-enum.toml.
type Config struct {
	BuildPath                  string
	UseUnionTypesForExport     bool
	UseUnionTypesForParameters bool
	AssignStaticStrings        bool

	// GoBuildPath, when not empty, is where build writes the Go companion file.
	GoBuildPath string
	GoPackage   string

	// Enums in the order they were declared.
	Enums []Enum

	// Missing lists the optional keys that were absent from the document.
	// The matching fields hold the values from Default.
	Missing []string

	// Deprecated lists keys that were present but no longer have any effect.
	Deprecated []string
}

// Default returns the configuration written by Init.
func Default() Config {
	return Config{
		BuildPath:                  DefaultBuildPath,
		UseUnionTypesForExport:     true,
		UseUnionTypesForParameters: true,
		AssignStaticStrings:        false,
		Enums:                      []Enum{},
	}
}

// document mirrors the on-disk layout. Pointers distinguish an absent key
// from its zero value.
type document struct {
	BuildPath                  *string        `toml:"build_path"`
	UseUnionTypesForExport     *bool          `toml:"use_union_types_for_export"`
	UseUnionTypesForParameters *bool          `toml:"use_union_types_for_parameters"`
	AssignStaticStrings        *bool          `toml:"assign_static_strings"`
	GoBuildPath                string         `toml:"go_build_path,omitempty"`
	GoPackage                  string         `toml:"go_package,omitempty"`
	Enums                      map[string]any `toml:"enums"`

	ImportAsClass *bool `toml:"import_as_class,omitempty"`
}

// Init writes the default configuration to path. It never overwrites an
// existing file.
func Init(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}

	data, err := Encode(Default())
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}

// Load reads and validates the configuration at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return Parse(path, data)
}

// Parse decodes data, which was read from name, into a Config.
func Parse(name string, data []byte) (Config, error) {
	var doc document
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		return Config{}, &ParseError{Path: name, Err: describeDecodeError(err)}
	}

	order, err := declarationOrder(data)
	if err != nil {
		return Config{}, &ParseError{Path: name, Err: err}
	}

	cfg := Default()
	if doc.BuildPath != nil {
		cfg.BuildPath = *doc.BuildPath
	} else {
		cfg.Missing = append(cfg.Missing, KeyBuildPath)
	}

	setFlag(&cfg, &cfg.UseUnionTypesForExport, doc.UseUnionTypesForExport, KeyUseUnionTypesForExport)
	setFlag(&cfg, &cfg.UseUnionTypesForParameters, doc.UseUnionTypesForParameters, KeyUseUnionTypesForParameters)
	setFlag(&cfg, &cfg.AssignStaticStrings, doc.AssignStaticStrings, KeyAssignStaticStrings)

	if doc.ImportAsClass != nil {
		cfg.Deprecated = append(cfg.Deprecated, KeyImportAsClass)
	}

	cfg.GoBuildPath = doc.GoBuildPath
	cfg.GoPackage = doc.GoPackage

	for _, enumName := range sortedByDeclaration(doc.Enums, order) {
		e, err := decodeEnum(enumName, doc.Enums[enumName])
		if err != nil {
			return Config{}, &ParseError{Path: name, Err: err}
		}
		cfg.Enums = append(cfg.Enums, e)
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// describeDecodeError names the offending keys when the document has fields
// the schema does not know.
func describeDecodeError(err error) error {
	var strict *toml.StrictMissingError
	if !errors.As(err, &strict) {
		return err
	}

	keys := make([]string, 0, len(strict.Errors))
	for i := range strict.Errors {
		keys = append(keys, strings.Join(strict.Errors[i].Key(), "."))
	}
	return fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), err)
}

func setFlag(cfg *Config, dst *bool, src *bool, key string) {
	if src == nil {
		cfg.Missing = append(cfg.Missing, key)
		return
	}
	*dst = *src
}

// sortedByDeclaration returns the keys of enums in the order given by order.
// Keys that order does not know about go last, alphabetically.
func sortedByDeclaration(enums map[string]any, order []string) []string {
	ret := make([]string, 0, len(enums))
	seen := make(map[string]bool, len(enums))
	for _, name := range order {
		if _, ok := enums[name]; !ok || seen[name] {
			continue
		}
		seen[name] = true
		ret = append(ret, name)
	}

	var rest []string
	for name := range enums {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	return append(ret, rest...)
}

// decodeEnum converts either the array form or the table form of an enum.
func decodeEnum(name string, raw any) (Enum, error) {
	e := Enum{Name: name}
	switch v := raw.(type) {
	case []any:
		for i, elem := range v {
			s, ok := elem.(string)
			if !ok {
				return Enum{}, fmt.Errorf("enums.%s[%d]: expected string, got %T", name, i, elem)
			}
			e.Items = append(e.Items, Item{Name: s, Value: i + 1})
		}
	case map[string]any:
		for member, elem := range v {
			n, ok := elem.(int64)
			if !ok {
				return Enum{}, fmt.Errorf("enums.%s.%s: expected integer, got %T", name, member, elem)
			}
			if n < 0 || n > math.MaxUint16 {
				return Enum{}, fmt.Errorf("enums.%s.%s: value %d out of range [0, %d]", name, member, n, math.MaxUint16)
			}
			e.Items = append(e.Items, Item{Name: member, Value: int(n)})
		}
		sort.Slice(e.Items, func(i, j int) bool {
			return e.Items[i].Value < e.Items[j].Value ||
				e.Items[i].Value == e.Items[j].Value && e.Items[i].Name < e.Items[j].Name
		})
	default:
		return Enum{}, fmt.Errorf("enums.%s: expected array or table, got %T", name, raw)
	}

	return e, nil
}

// Encode renders cfg as a TOML document. Enums whose values are 1..n in
// order are written in array form, the rest as tables.
func Encode(cfg Config) ([]byte, error) {
	doc := document{
		BuildPath:                  &cfg.BuildPath,
		UseUnionTypesForExport:     &cfg.UseUnionTypesForExport,
		UseUnionTypesForParameters: &cfg.UseUnionTypesForParameters,
		AssignStaticStrings:        &cfg.AssignStaticStrings,
		GoBuildPath:                cfg.GoBuildPath,
		GoPackage:                  cfg.GoPackage,
		Enums:                      make(map[string]any, len(cfg.Enums)),
	}

	for _, e := range cfg.Enums {
		if sequential(e) {
			names := make([]string, 0, len(e.Items))
			for _, item := range e.Items {
				names = append(names, item.Name)
			}
			doc.Enums[e.Name] = names
			continue
		}

		values := make(map[string]int, len(e.Items))
		for _, item := range e.Items {
			values[item.Name] = item.Value
		}
		doc.Enums[e.Name] = values
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}

	return data, nil
}

func sequential(e Enum) bool {
	for i, item := range e.Items {
		if item.Value != i+1 {
			return false
		}
	}
	return true
}
