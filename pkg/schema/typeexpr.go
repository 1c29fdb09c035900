// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strconv"
	"strings"
)

// Primitive type names recognized by the type-expression grammar (§3.2).
var Primitives = map[string]bool{
	"string": true, "int": true, "float": true, "decimal": true,
	"bool": true, "datetime": true, "duration": true, "uuid": true,
	"bytes": true, "number": true, "null": true, "any": true,
	"object": true,
}

// IsGeometry reports whether t is a `geometry[<subtype>]` type expression.
func IsGeometry(t string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(t)), "geometry[")
}

// IsGeneric reports whether t's outermost form is one of the generic
// container types (array, set, record, option, range).
func IsGeneric(t string) bool {
	t = strings.ToLower(strings.TrimSpace(t))
	for _, g := range []string{"array<", "set<", "record[", "option<", "range["} {
		if strings.HasPrefix(t, g) {
			return true
		}
	}
	return false
}

// IsUnion reports whether t is a literal-union type expression ("a" | "b"
// | 1 | true).
func IsUnion(t string) bool {
	return strings.Contains(t, "|")
}

func ArrayType(elem string) string { return "array<" + elem + ">" }

func ArrayTypeBounded(elem string, min int, max ...int) string {
	if len(max) > 0 {
		return arrayBounds("array", elem, min, &max[0])
	}
	return arrayBounds("array", elem, min, nil)
}

func SetType(elem string) string { return "set<" + elem + ">" }

func SetTypeBounded(elem string, min int, max ...int) string {
	if len(max) > 0 {
		return arrayBounds("set", elem, min, &max[0])
	}
	return arrayBounds("set", elem, min, nil)
}

func arrayBounds(kind, elem string, min int, max *int) string {
	out := kind + "<" + elem + ", " + strconv.Itoa(min)
	if max != nil {
		out += ", " + strconv.Itoa(*max)
	}
	return out + ">"
}

func RecordType(tables ...string) string {
	return "record[" + strings.Join(tables, " | ") + "]"
}

func OptionType(elem string) string { return "option<" + elem + ">" }

func RangeType(elem string) string { return "range[" + elem + "]" }
