package config

import (
	"fmt"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var luauKeywords = map[string]bool{
	"and": true, "break": true, "do": true, "else": true, "elseif": true,
	"end": true, "false": true, "for": true, "function": true, "if": true,
	"in": true, "local": true, "nil": true, "not": true, "or": true,
	"repeat": true, "return": true, "then": true, "true": true,
	"until": true, "while": true,
}

// reservedEnumNames are names the generated module already uses at its top level.
var reservedEnumNames = map[string]bool{
	"EnumName":             true,
	"getEnumItems":         true,
	"getEnumItemFromValue": true,
	"getValueFromEnumItem": true,
	"typeof":               true,
}

// IsIdentifier reports whether s can be used as a Luau identifier.
func IsIdentifier(s string) bool {
	return identifierPattern.MatchString(s) && !luauKeywords[s]
}

// Validate checks the invariants of the enums in cfg.
func Validate(cfg Config) error {
	names := make(map[string]bool, len(cfg.Enums))
	for _, e := range cfg.Enums {
		if !IsIdentifier(e.Name) {
			return &ValidationError{Enum: e.Name, Reason: "name is not a valid identifier"}
		}

		if reservedEnumNames[e.Name] {
			return &ValidationError{Enum: e.Name, Reason: "name is reserved by the generated module"}
		}

		if names[e.Name] {
			return &ValidationError{Enum: e.Name, Reason: "declared more than once"}
		}
		names[e.Name] = true

		if len(e.Items) == 0 {
			return &ValidationError{Enum: e.Name, Reason: "has no members"}
		}

		uniqueNames := make(map[string]bool, len(e.Items))
		uniqueValues := make(map[int]string, len(e.Items))
		for _, item := range e.Items {
			if !IsIdentifier(item.Name) {
				return &ValidationError{Enum: e.Name, Member: item.Name, Reason: "name is not a valid identifier"}
			}

			if uniqueNames[item.Name] {
				return &ValidationError{Enum: e.Name, Member: item.Name, Reason: "duplicate member"}
			}
			uniqueNames[item.Name] = true

			if other, ok := uniqueValues[item.Value]; ok {
				return &ValidationError{Enum: e.Name, Member: item.Name, Reason: fmt.Sprintf("value %d already used by %q", item.Value, other)}
			}
			uniqueValues[item.Value] = item.Name
		}
	}

	return nil
}
