// SPDX-License-Identifier: Apache-2.0

package diff

import (
	"github.com/xataio/smig/pkg/normalize"
	"github.com/xataio/smig/pkg/schema"
)

// canonicalize returns a copy of s with every field passed through the
// §4.2 normalizer functions, so that Diff never has to special-case
// cosmetic differences introduced by the database's own DDL rewriting.
func canonicalize(s *schema.Schema) *schema.Schema {
	out := schema.New()
	for name, t := range s.Tables {
		out.Tables[name] = canonicalizeTable(t)
	}
	for name, r := range s.Relations {
		ct := canonicalizeTable(r.Table)
		out.Relations[name] = &schema.Relation{Table: ct, From: r.From, To: r.To, Enforced: r.Enforced}
	}
	for name, fn := range s.Functions {
		out.Functions[name] = canonicalizeFunction(fn)
	}
	for name, an := range s.Analyzers {
		a := *an
		out.Analyzers[name] = &a
	}
	for name, am := range s.AccessMethods {
		c := *am
		if !c.Unknown {
			c.Signup = normalize.Expr(c.Signup)
			c.Signin = normalize.Expr(c.Signin)
			c.Authenticate = normalize.Expr(c.Authenticate)
		}
		out.AccessMethods[name] = &c
	}
	for name, p := range s.Params {
		c := *p
		if !c.Unknown {
			c.Value = normalize.Expr(c.Value)
			c.Comment = normalize.Comment(c.Comment)
		}
		out.Params[name] = &c
	}
	for name, sq := range s.Sequences {
		c := *sq
		out.Sequences[name] = &c
	}
	return out
}

func canonicalizeTable(t *schema.Table) *schema.Table {
	c := *t
	if c.Unknown {
		return &c
	}
	if t.Permissions != nil {
		c.Permissions = make(map[string]string, len(t.Permissions))
		for op, expr := range t.Permissions {
			c.Permissions[op] = normalize.Perms(expr)
		}
	}
	c.Comments = normalizeComments(t.Comments)
	c.Fields = make([]*schema.Field, len(t.Fields))
	for i, f := range t.Fields {
		c.Fields[i] = canonicalizeField(f)
	}
	c.Indexes = make([]*schema.Index, len(t.Indexes))
	for i, idx := range t.Indexes {
		c.Indexes[i] = canonicalizeIndex(idx)
	}
	c.Events = make([]*schema.Event, len(t.Events))
	for i, e := range t.Events {
		c.Events[i] = canonicalizeEvent(e)
	}
	return &c
}

func canonicalizeField(f *schema.Field) *schema.Field {
	c := *f
	if c.Unknown {
		return &c
	}
	c.Type = normalize.Type(f.Type)
	c.Default = normalize.Default(f.Default)
	c.Value = normalize.Expr(f.Value)
	c.Computed = normalize.Expr(f.Computed)
	c.Permissions = normalize.Perms(f.Permissions)
	c.Comments = normalizeComments(f.Comments)
	c.Assert = make([]string, len(f.Assert))
	for i, a := range f.Assert {
		c.Assert[i] = normalize.Expr(a)
	}
	return &c
}

func canonicalizeIndex(idx *schema.Index) *schema.Index {
	c := *idx
	c.Comments = normalizeComments(idx.Comments)
	return &c
}

func canonicalizeEvent(e *schema.Event) *schema.Event {
	c := *e
	if c.Unknown {
		return &c
	}
	c.When = normalize.Expr(e.When)
	c.Then = normalize.Expr(e.Then)
	return &c
}

func canonicalizeFunction(fn *schema.Function) *schema.Function {
	c := *fn
	if c.Unknown {
		return &c
	}
	c.ReturnType = normalize.Type(fn.ReturnType)
	c.Body = normalize.Expr(fn.Body)
	c.Permissions = normalize.Perms(fn.Permissions)
	c.Params = make([]schema.FunctionParam, len(fn.Params))
	for i, p := range fn.Params {
		c.Params[i] = schema.FunctionParam{Name: p.Name, Type: normalize.Type(p.Type)}
	}
	return &c
}

func normalizeComments(cs []string) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = normalize.Comment(c)
	}
	return out
}
