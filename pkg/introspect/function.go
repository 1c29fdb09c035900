// SPDX-License-Identifier: Apache-2.0

package introspect

import (
	"regexp"
	"strings"

	"github.com/xataio/smig/pkg/schema"
)

var (
	functionHeaderRE = regexp.MustCompile(`(?is)^DEFINE\s+FUNCTION\s+(?:IF\s+NOT\s+EXISTS\s+)?(?:OVERWRITE\s+)?(\S+)\s*\(`)
	functionRetRE    = regexp.MustCompile(`(?is)\)\s*->\s*(\S+)\s*\{`)
)

// ParseFunction parses a single `DEFINE FUNCTION fn::name(...) -> Ret { ... }`
// DDL string into a *schema.Function. Parameters and the return type
// are extracted from the parenthesized/arrow clauses; the body is
// extracted via brace-depth scanning because it may be multi-statement.
func ParseFunction(ddl string) (*schema.Function, error) {
	m := functionHeaderRE.FindStringSubmatch(ddl)
	if m == nil {
		return nil, errUnrecognized("function", ddl)
	}
	name := m[1]

	parenStart := strings.Index(ddl, "(")
	if parenStart < 0 {
		return nil, errUnrecognized("function", ddl)
	}
	parenEnd := matchingParen(ddl, parenStart)
	if parenEnd < 0 {
		return nil, errUnrecognized("function", ddl)
	}
	paramList := ddl[parenStart+1 : parenEnd]

	fn := &schema.Function{Name: name}
	for _, raw := range splitTopLevelComma(paramList) {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parts := strings.SplitN(raw, ":", 2)
		if len(parts) != 2 {
			continue
		}
		fn.Params = append(fn.Params, schema.FunctionParam{
			Name: strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(parts[0]), "$")),
			Type: strings.TrimSpace(parts[1]),
		})
	}

	if mm := functionRetRE.FindStringSubmatch(ddl[parenEnd:]); mm != nil {
		fn.ReturnType = strings.TrimSpace(mm[1])
	}

	body, bodyEnd, ok := scanBraceBlock(ddl, parenEnd)
	if !ok {
		return nil, errUnrecognized("function", ddl)
	}
	fn.Body = "{ " + strings.TrimSpace(body) + " }"

	if mm := regexp.MustCompile(`(?is)\bPERMISSIONS\s+(.+)$`).FindStringSubmatch(ddl[bodyEnd:]); mm != nil {
		fn.Permissions = strings.TrimSpace(mm[1])
	}

	return fn, nil
}

// ParseFunctionSafe never returns an error: a failure yields a Function
// flagged Unknown, carrying only its name.
func ParseFunctionSafe(ddl string) *schema.Function {
	fn, err := ParseFunction(ddl)
	if err == nil {
		return fn
	}
	return &schema.Function{Name: extractFallbackName(ddl, "FUNCTION"), Unknown: true}
}

func matchingParen(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func splitTopLevelComma(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '<', '[':
			depth++
		case ')', '>', ']':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	parts = append(parts, s[last:])
	return parts
}
