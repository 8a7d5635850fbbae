// Package gogen renders the configured enums as Go string constants so Go
// code can share identifiers with the generated Luau module.
package gogen

import (
	"fmt"
	"go/ast"
	"go/token"
	"io"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dave/jennifer/jen"
	"github.com/stoewer/go-strcase"

	"github.com/a-jentleman/pseudo-enum/internal/config"
)

// fallbackPackage is used when no package name can be derived from the output path.
const fallbackPackage = "enums"

// PackageName derives a package clause from the directory that will hold
// outputPath.
func PackageName(outputPath string) string {
	dir := filepath.Base(filepath.Dir(filepath.Clean(outputPath)))

	var b strings.Builder
	for _, r := range strings.ToLower(dir) {
		if r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
		}
	}

	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) || token.IsKeyword(name) {
		return fallbackPackage
	}
	return name
}

// TypeName returns the Go type generated for e.
func TypeName(e config.Enum) string {
	return strcase.UpperCamelCase(e.Name)
}

// ConstName returns the Go constant generated for item of e.
func ConstName(e config.Enum, item config.Item) string {
	return TypeName(e) + strcase.UpperCamelCase(item.Name)
}

// Generate builds a Go file in package pkgName declaring every enum in cfg.
func Generate(cfg config.Config, pkgName string) (*jen.File, error) {
	if err := checkIdents(cfg.Enums); err != nil {
		return nil, err
	}

	f := jen.NewFile(pkgName)
	f.HeaderComment("Code generated by pseudo-enum; DO NOT EDIT.")

	for _, e := range cfg.Enums {
		typeName := TypeName(e)
		receiver := safeIndent(defaultReceiverName(typeName))

		f.Line()
		f.Commentf("%s is generated from the %s enum.", typeName, e.Name)
		f.Type().Id(typeName).String()

		f.Line()
		f.Const().DefsFunc(func(g *jen.Group) {
			for _, item := range e.Items {
				g.Id(ConstName(e, item)).Id(typeName).Op("=").Lit(item.Name)
			}
		})

		f.Line()
		f.Commentf("%sValues lists every %s in declaration order.", typeName, typeName)
		f.Var().Id(typeName+"Values").Op("=").Index().Id(typeName).ValuesFunc(func(g *jen.Group) {
			for _, item := range e.Items {
				g.Id(ConstName(e, item))
			}
		})

		f.Line()
		generateValueMethod(f, receiver, typeName, e)

		f.Line()
		generateDefinedMethod(f, receiver, typeName, e)

		f.Line()
		generateFromValueFunc(f, typeName, e)

		f.Line()
		generateScanMethod(f, receiver, typeName, e)

		f.Line()
		generateTextMarshal(f, receiver, typeName)

		f.Line()
		generateTextUnmarshal(f, receiver, typeName, e)

		f.Line()
		generateTypeAssertions(f, typeName)
	}

	return f, nil
}

// Render writes the generated Go file for cfg to w.
func Render(w io.Writer, cfg config.Config, pkgName string) error {
	f, err := Generate(cfg, pkgName)
	if err != nil {
		return err
	}
	return f.Render(w)
}

// checkIdents rejects enums whose Go identifiers collide after case conversion.
func checkIdents(enums []config.Enum) error {
	owners := make(map[string]string)
	claim := func(ident, owner string) error {
		if !token.IsIdentifier(ident) || !ast.IsExported(ident) {
			return fmt.Errorf("%s does not map to an exported Go identifier (got %q)", owner, ident)
		}
		if other, ok := owners[ident]; ok {
			return fmt.Errorf("%s and %s both generate Go identifier %q", other, owner, ident)
		}
		owners[ident] = owner
		return nil
	}

	for _, e := range enums {
		typeName := TypeName(e)
		if err := claim(typeName, e.Name); err != nil {
			return err
		}
		if err := claim(typeName+"Values", e.Name); err != nil {
			return err
		}
		if err := claim(typeName+"FromValue", e.Name); err != nil {
			return err
		}
		for _, item := range e.Items {
			if err := claim(ConstName(e, item), e.Name+"."+item.Name); err != nil {
				return err
			}
		}
	}

	return nil
}

// generateValueMethod generates the Value() method for the enum.
func generateValueMethod(f *jen.File, receiver, typeName string, e config.Enum) {
	f.Commentf("Value returns the numeric value of %s, or 0 if %s is not defined.", receiver, receiver)
	f.Func().Params(jen.Id(receiver).Id(typeName)).Id("Value").Params().Int().Block(
		jen.Switch(jen.Id(receiver)).BlockFunc(func(g *jen.Group) {
			for _, item := range e.Items {
				g.Case(jen.Id(ConstName(e, item))).Block(jen.Return(jen.Lit(item.Value)))
			}
		}),
		jen.Return(jen.Lit(0)),
	)
}

// generateDefinedMethod generates the Defined() method for the enum.
func generateDefinedMethod(f *jen.File, receiver, typeName string, e config.Enum) {
	f.Commentf("Defined returns true if %s holds a defined value.", receiver)
	f.Func().Params(jen.Id(receiver).Id(typeName)).Id("Defined").Params().Bool().Block(
		jen.Switch(jen.Id(receiver)).Block(
			jen.CaseFunc(func(g *jen.Group) {
				for _, item := range e.Items {
					g.Id(ConstName(e, item))
				}
			}).Block(jen.Return(jen.True())),
			jen.Default().Block(jen.Return(jen.False())),
		),
	)
}

// generateFromValueFunc generates the <Type>FromValue() lookup for the enum.
func generateFromValueFunc(f *jen.File, typeName string, e config.Enum) {
	name := typeName + "FromValue"
	f.Commentf("%s returns the %s whose numeric value is v.", name, typeName)
	f.Func().Id(name).Params(jen.Id("v").Int()).Params(jen.Id(typeName), jen.Bool()).Block(
		jen.Switch(jen.Id("v")).BlockFunc(func(g *jen.Group) {
			for _, item := range e.Items {
				g.Case(jen.Lit(item.Value)).Block(jen.Return(jen.Id(ConstName(e, item)), jen.True()))
			}
		}),
		jen.Return(jen.Lit(""), jen.False()),
	)
}

// generateScanMethod generates the Scan() method for the enum.
func generateScanMethod(f *jen.File, receiver, typeName string, e config.Enum) {
	tokenVarName := safeIndent("token", receiver)
	scanStateVarName := safeIndent("scanState", receiver, tokenVarName)
	verbVarName := safeIndent("verb", receiver, tokenVarName, scanStateVarName)

	f.Commentf("Scan implements [fmt.Scanner]. Use [fmt.Scan] to parse strings into %s values", typeName)
	f.Func().Params(jen.Id(receiver).Op("*").Id(typeName)).Id("Scan").Params(jen.Id(scanStateVarName).Qual("fmt", "ScanState"), jen.Id(verbVarName).Rune()).Error().Block(
		jen.List(jen.Id(tokenVarName), jen.Err()).Op(":=").Id(scanStateVarName).Dot("Token").Call(jen.True(), jen.Nil()),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Err()),
		),

		jen.Line(),
		jen.Switch(jen.String().Parens(jen.Id(tokenVarName))).BlockFunc(func(g *jen.Group) {
			for _, item := range e.Items {
				g.Case(jen.Lit(item.Name)).Block(
					jen.Op("*").Id(receiver).Op("=").Id(ConstName(e, item)),
				)
			}
			g.Default().Block(
				jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("unknown "+typeName+" value: %s"), jen.Id(tokenVarName))),
			)
		}),

		jen.Return(jen.Nil()),
	)
}

// generateTextMarshal generates MarshalText(), which refuses undefined values.
func generateTextMarshal(f *jen.File, receiver, typeName string) {
	f.Commentf("MarshalText implements [encoding.TextMarshaler]")
	f.Func().Params(jen.Id(receiver).Id(typeName)).Id("MarshalText").Params().Params(jen.Op("[]").Byte(), jen.Error()).Block(
		jen.If(jen.Op("!").Id(receiver).Dot("Defined").Call()).Block(
			jen.Return(jen.Nil(), jen.Qual("fmt", "Errorf").Call(jen.Lit("unknown "+typeName+" value: %q"), jen.String().Parens(jen.Id(receiver)))),
		),
		jen.Return(jen.Op("[]").Byte().Parens(jen.Id(receiver)), jen.Nil()),
	)
}

// generateTextUnmarshal generates UnmarshalText(), which only accepts members of the enum.
func generateTextUnmarshal(f *jen.File, receiver, typeName string, e config.Enum) {
	varName := safeIndent("x", receiver)

	f.Commentf("UnmarshalText implements [encoding.TextUnmarshaler]")
	f.Func().Params(jen.Id(receiver).Op("*").Id(typeName)).Id("UnmarshalText").Params(jen.Id(varName).Op("[]").Byte()).Params(jen.Error()).Block(
		jen.Switch(jen.String().Parens(jen.Id(varName))).BlockFunc(func(g *jen.Group) {
			for _, item := range e.Items {
				g.Case(jen.Lit(item.Name)).Block(jen.Op("*").Id(receiver).Op("=").Id(ConstName(e, item)), jen.Return(jen.Nil()))
			}
			g.Default().Block(jen.Return(jen.Qual("fmt", "Errorf").Call(jen.Lit("unknown "+typeName+" value: %q"), jen.Id(varName))))
		}),
	)
}

func generateTypeAssertions(f *jen.File, typeName string) {
	f.Var().Defs(
		jen.Id("_").Qual("fmt", "Scanner").Op("=").New(jen.Id(typeName)),
		jen.Id("_").Qual("encoding", "TextMarshaler").Op("=").Id(typeName).Parens(jen.Lit("")),
		jen.Id("_").Qual("encoding", "TextUnmarshaler").Op("=").New(jen.Id(typeName)),
	)
}

// defaultReceiverName returns the default receiver name to use for typeName
func defaultReceiverName(typeName string) string {
	s, _ := utf8.DecodeRuneInString(typeName)
	return unexportedName(string(s))
}

// safeIndent returns an identifier that is safe to use (not a keyword,
// and not already used). want is the requested identifier; not is a
// list of identifiers that are already used.
func safeIndent(want string, not ...string) string {
	if token.IsKeyword(want) {
		return safeIndent("_"+want, not...)
	}

	for _, s := range not {
		if want == s {
			return safeIndent("_"+want, not...)
		}
	}

	return want
}

// unexportedName returns s with the first character replaced
// with its lower case version if it is upper case.
func unexportedName(s string) string {
	if !ast.IsExported(s) {
		return s
	}

	start, size := utf8.DecodeRuneInString(s)
	start = unicode.ToLower(start)
	return string(start) + s[size:]
}
