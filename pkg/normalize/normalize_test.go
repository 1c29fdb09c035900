// SPDX-License-Identifier: Apache-2.0

package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xataio/smig/pkg/normalize"
)

func TestTypeIdempotent(t *testing.T) {
	inputs := []string{"string?", "none | string", "OPTION<STRING>", "array<int, 1, 4>", `"a" | "b" | 1 | true`}
	for _, in := range inputs {
		once := normalize.Type(in)
		twice := normalize.Type(once)
		assert.Equal(t, once, twice, "Type should be idempotent for %q", in)
	}
}

func TestTypeOptionEquivalence(t *testing.T) {
	assert.Equal(t, normalize.Type("option<string>"), normalize.Type("none | string"))
	assert.Equal(t, normalize.Type("option<string>"), normalize.Type("string?"))
}

func TestDefaultIdempotent(t *testing.T) {
	inputs := []string{"3.14f", `"3.14f"`, `"hello"`, "[1,2,3]", `{"b":1,"a":2}`, "true"}
	for _, in := range inputs {
		once := normalize.Default(in)
		twice := normalize.Default(once)
		assert.Equal(t, once, twice, "Default should be idempotent for %q", in)
	}
}

func TestDefaultFloatRoundTrip(t *testing.T) {
	assert.Equal(t, "3.14", normalize.Default(`3.14f`))
}

func TestDefaultFloatRoundTripQuoted(t *testing.T) {
	assert.Equal(t, "3.14", normalize.Default(`"3.14f"`))
	assert.Equal(t, normalize.Default("3.14"), normalize.Default(`"3.14f"`))
}

func TestExprIdempotent(t *testing.T) {
	inputs := []string{"(a = b)", "1w", "RETURN (SELECT * FROM user)", "DELETE user;\n}"}
	for _, in := range inputs {
		once := normalize.Expr(in)
		twice := normalize.Expr(once)
		assert.Equal(t, once, twice, "Expr should be idempotent for %q", in)
	}
}

func TestExprDurationFolding(t *testing.T) {
	assert.Equal(t, normalize.Expr("7d"), normalize.Expr("1w"))
}

func TestPermsIdempotent(t *testing.T) {
	inputs := []string{"", "NONE", "FULL", "FOR select WHERE true", "FOR select WHERE true, FOR delete WHERE false"}
	for _, in := range inputs {
		once := normalize.Perms(in)
		twice := normalize.Perms(once)
		assert.Equal(t, once, twice, "Perms should be idempotent for %q", in)
	}
}

func TestPermsDefaultsAndDeleteRemoval(t *testing.T) {
	assert.Equal(t, "FULL", normalize.Perms(""))
	assert.Equal(t, "FULL", normalize.Perms("NONE"))
	assert.Equal(t, "FULL", normalize.Perms("FULL"))

	withoutDelete := normalize.Perms("FOR select WHERE true, FOR delete WHERE false")
	assert.NotContains(t, withoutDelete, "DELETE")
}

func TestCommentIdempotent(t *testing.T) {
	inputs := []string{"null", "undefined", "a real comment", ""}
	for _, in := range inputs {
		once := normalize.Comment(in)
		twice := normalize.Comment(once)
		assert.Equal(t, once, twice, "Comment should be idempotent for %q", in)
	}
}

func TestCommentNullCoalescing(t *testing.T) {
	assert.Equal(t, normalize.NullSentinel, normalize.Comment("null"))
	assert.Equal(t, normalize.NullSentinel, normalize.Comment("undefined"))
	assert.Equal(t, normalize.NullSentinel, normalize.Comment(""))
}
