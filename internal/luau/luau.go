// Package luau renders a configuration as a strict-mode Luau module.
//
// For every enum the module declares a type, a frozen list of its members,
// a dictionary of member names, and value lookup tables. It then returns a
// table with accessor functions and one field per enum.
package luau

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/a-jentleman/pseudo-enum/internal/config"
)

// Header starts every generated file.
const Header = "--!strict\n-- DO NOT EDIT MANUALLY!! This file was generated by pseudo-enum, edits will likely be overwritten!\n"

// Dump renders cfg. Identical configurations produce identical output.
func Dump(cfg config.Config) ([]byte, error) {
	if err := checkLocals(cfg.Enums); err != nil {
		return nil, err
	}

	var w writer
	w.raw(Header)

	for _, e := range cfg.Enums {
		w.line("")
		writeEnum(&w, cfg, e)
	}

	w.line("")
	writeTree(&w, "listTree", cfg.Enums, listName)
	writeTree(&w, "valueTree", cfg.Enums, valueDictName)
	writeTree(&w, "invValueTree", cfg.Enums, inverseDictName)

	w.line("")
	w.line("export type EnumName = %s", enumNameType(cfg))

	w.line("")
	writeInterface(&w, cfg)

	return w.buf.Bytes(), nil
}

func listName(e config.Enum) string        { return e.Name + "List" }
func dictName(e config.Enum) string        { return e.Name + "Dict" }
func valueDictName(e config.Enum) string   { return e.Name + "ValueDict" }
func inverseDictName(e config.Enum) string { return e.Name + "InverseValueDict" }

// checkLocals rejects configurations where two enums would generate the same
// local, e.g. Color's ColorValueDict and ColorValue's ColorValueDict.
func checkLocals(enums []config.Enum) error {
	owners := make(map[string]string)
	for _, e := range enums {
		for _, name := range []string{listName(e), dictName(e), valueDictName(e), inverseDictName(e)} {
			if other, ok := owners[name]; ok {
				return fmt.Errorf("enums %q and %q both generate local %q", other, e.Name, name)
			}
			owners[name] = e.Name
		}
	}
	return nil
}

func quote(s string) string {
	return strconv.Quote(s)
}

// typeExpr is the right-hand side of the enum's type declaration.
func typeExpr(cfg config.Config, e config.Enum) string {
	if !cfg.UseUnionTypesForExport {
		return "string"
	}

	parts := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		parts = append(parts, quote(item.Name))
	}
	return strings.Join(parts, " | ")
}

// cast is the type assertion appended to a member's string value.
func cast(cfg config.Config, e config.Enum, item config.Item) string {
	switch {
	case cfg.AssignStaticStrings:
		return " :: " + quote(item.Name)
	case cfg.UseUnionTypesForExport:
		return " :: " + e.Name
	default:
		return ""
	}
}

func writeEnum(w *writer, cfg config.Config, e config.Enum) {
	w.line("export type %s = %s", e.Name, typeExpr(cfg, e))

	members := make([]string, 0, len(e.Items))
	for _, item := range e.Items {
		members = append(members, quote(item.Name))
	}
	w.line("local %s = table.freeze({ %s })", listName(e), strings.Join(members, ", "))

	w.line("local %s = table.freeze({", dictName(e))
	for _, item := range e.Items {
		w.line("\t%s = %s%s,", item.Name, quote(item.Name), cast(cfg, e, item))
	}
	w.line("})")

	w.line("local %s = table.freeze({", valueDictName(e))
	for _, item := range e.Items {
		w.line("\t%s = %d,", item.Name, item.Value)
	}
	w.line("})")

	w.line("local %s = table.freeze({", inverseDictName(e))
	for _, item := range e.Items {
		w.line("\t[%d] = %s%s,", item.Value, quote(item.Name), cast(cfg, e, item))
	}
	w.line("})")
}

func writeTree(w *writer, name string, enums []config.Enum, local func(config.Enum) string) {
	w.line("local %s = table.freeze({", name)
	for _, e := range enums {
		w.line("\t%s = %s,", e.Name, local(e))
	}
	w.line("})")
}

func enumNameType(cfg config.Config) string {
	if !cfg.UseUnionTypesForParameters {
		return "string"
	}
	if len(cfg.Enums) == 0 {
		return "never"
	}

	parts := make([]string, 0, len(cfg.Enums))
	for _, e := range cfg.Enums {
		parts = append(parts, quote(e.Name))
	}
	return strings.Join(parts, " | ")
}

// overloads joins one function signature per enum into an intersection type.
// It returns "" when accessors should keep their inferred type.
func overloads(cfg config.Config, sig func(config.Enum) string) string {
	if !cfg.UseUnionTypesForParameters || len(cfg.Enums) == 0 {
		return ""
	}

	parts := make([]string, 0, len(cfg.Enums))
	for _, e := range cfg.Enums {
		parts = append(parts, "("+sig(e)+")")
	}
	return " :: " + strings.Join(parts, " & ")
}

func writeInterface(w *writer, cfg config.Config) {
	w.line("return {")

	w.line("\tgetEnumItems = function(enumName: EnumName)")
	w.line("\t\tlocal list = listTree[enumName]")
	w.line("\t\tassert(list, `invalid enumName: \"{enumName}\"`)")
	w.line("\t\treturn list")
	w.line("\tend%s,", overloads(cfg, func(e config.Enum) string {
		return fmt.Sprintf("(%s) -> { %s }", quote(e.Name), e.Name)
	}))

	w.line("\tgetEnumItemFromValue = function(enumName: EnumName, value: number)")
	w.line("\t\tlocal dict = invValueTree[enumName]")
	w.line("\t\tassert(dict, `invalid enumName: \"{enumName}\"`)")
	w.line("\t\tlocal name = dict[value]")
	w.line("\t\tassert(name, `invalid value: \"{enumName}\" -> {value}`)")
	w.line("\t\treturn name")
	w.line("\tend%s,", overloads(cfg, func(e config.Enum) string {
		return fmt.Sprintf("(%s, number) -> %s", quote(e.Name), e.Name)
	}))

	w.line("\tgetValueFromEnumItem = function(enumName: EnumName, name: string): number")
	w.line("\t\tlocal dict = valueTree[enumName]")
	w.line("\t\tassert(dict, `invalid enumName: \"{enumName}\"`)")
	w.line("\t\tlocal value = dict[name]")
	w.line("\t\tassert(value, `invalid value: \"{enumName}\" -> \"{name}\"`)")
	w.line("\t\treturn value")
	w.line("\tend%s,", overloads(cfg, func(e config.Enum) string {
		return fmt.Sprintf("(%s, %s) -> number", quote(e.Name), e.Name)
	}))

	for _, e := range cfg.Enums {
		w.line("\t%s = %s,", e.Name, dictName(e))
	}

	w.line("}")
}

type writer struct {
	buf bytes.Buffer
}

func (w *writer) raw(s string) {
	w.buf.WriteString(s)
}

func (w *writer) line(format string, args ...any) {
	if len(args) == 0 {
		w.buf.WriteString(format)
	} else {
		fmt.Fprintf(&w.buf, format, args...)
	}
	w.buf.WriteByte('\n')
}
