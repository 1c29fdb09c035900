// SPDX-License-Identifier: Apache-2.0

package schema

// IndexKind identifies the storage/search structure backing an index.
type IndexKind string

const (
	IndexBTree  IndexKind = "BTREE"
	IndexHash   IndexKind = "HASH"
	IndexSearch IndexKind = "SEARCH"
	IndexMTree  IndexKind = "MTREE"
	IndexHNSW   IndexKind = "HNSW"
)

// DistanceFunction is the vector distance metric used by MTREE/HNSW
// indexes.
type DistanceFunction string

const (
	DistCosine    DistanceFunction = "COSINE"
	DistEuclidean DistanceFunction = "EUCLIDEAN"
	DistManhattan DistanceFunction = "MANHATTAN"
	DistMinkowski DistanceFunction = "MINKOWSKI"
	DistChebyshev DistanceFunction = "CHEBYSHEV"
	DistHamming   DistanceFunction = "HAMMING"
	DistJaccard   DistanceFunction = "JACCARD"
	DistPearson   DistanceFunction = "PEARSON"
)

// BM25Params configures the BM25 ranking function for a SEARCH index.
type BM25Params struct {
	K1 float64
	B  float64
}

// Index is a table index in the IR.
type Index struct {
	Name    string
	Columns []string
	Kind    IndexKind
	Unique  bool

	// SEARCH-specific.
	Analyzer        string
	Highlights      bool
	BM25            *BM25Params
	DocIDsCache     int
	DocLengthsCache int
	PostingsCache   int
	TermsCache      int

	// MTREE/HNSW-specific.
	Dimension int
	Dist      DistanceFunction
	Capacity  int // MTREE only

	// HNSW-specific.
	EFC int
	M   int
	M0  int
	LM  float64

	Concurrently bool
	IfNotExists  bool
	Overwrite    bool
	Was          []string
	Comments     []string

	Unknown bool
}

// IndexBuilder builds an Index through chained modifier calls.
type IndexBuilder struct {
	i *Index
}

// NewIndex starts building an index named name over the given columns.
func NewIndex(name string, columns ...string) *IndexBuilder {
	return &IndexBuilder{i: &Index{
		Name:    name,
		Columns: columns,
		Kind:    IndexBTree,
	}}
}

func (b *IndexBuilder) Unique() *IndexBuilder { b.i.Unique = true; return b }

func (b *IndexBuilder) Search(analyzer string) *IndexBuilder {
	b.i.Kind = IndexSearch
	b.i.Analyzer = analyzer
	return b
}

func (b *IndexBuilder) Highlights() *IndexBuilder { b.i.Highlights = true; return b }

func (b *IndexBuilder) BM25(k1, bVal float64) *IndexBuilder {
	b.i.BM25 = &BM25Params{K1: k1, B: bVal}
	return b
}

// Caches sets the SEARCH index's DOC_IDS/DOC_LENGTHS/POSTINGS/TERMS
// cache sizes. A zero value means "use the database default" and is
// omitted from emitted DDL.
func (b *IndexBuilder) Caches(docIDs, docLengths, postings, terms int) *IndexBuilder {
	b.i.DocIDsCache = docIDs
	b.i.DocLengthsCache = docLengths
	b.i.PostingsCache = postings
	b.i.TermsCache = terms
	return b
}

func (b *IndexBuilder) Hash() *IndexBuilder { b.i.Kind = IndexHash; return b }

func (b *IndexBuilder) MTree(dimension int, dist DistanceFunction, capacity int) *IndexBuilder {
	b.i.Kind = IndexMTree
	b.i.Dimension = dimension
	b.i.Dist = dist
	b.i.Capacity = capacity
	return b
}

func (b *IndexBuilder) HNSW(dimension int, dist DistanceFunction) *IndexBuilder {
	b.i.Kind = IndexHNSW
	b.i.Dimension = dimension
	b.i.Dist = dist
	return b
}

func (b *IndexBuilder) EFC(n int) *IndexBuilder { b.i.EFC = n; return b }
func (b *IndexBuilder) M(n int) *IndexBuilder   { b.i.M = n; return b }
func (b *IndexBuilder) M0(n int) *IndexBuilder  { b.i.M0 = n; return b }
func (b *IndexBuilder) LM(v float64) *IndexBuilder { b.i.LM = v; return b }

func (b *IndexBuilder) Concurrently() *IndexBuilder { b.i.Concurrently = true; return b }
func (b *IndexBuilder) IfNotExists() *IndexBuilder  { b.i.IfNotExists = true; return b }
func (b *IndexBuilder) Overwrite() *IndexBuilder    { b.i.Overwrite = true; return b }

func (b *IndexBuilder) Was(names ...string) *IndexBuilder {
	b.i.Was = append(b.i.Was, names...)
	return b
}

func (b *IndexBuilder) Comment(c string) *IndexBuilder {
	b.i.Comments = append(b.i.Comments, c)
	return b
}

// Build returns an immutable snapshot of the index under construction.
func (b *IndexBuilder) Build() *Index {
	i := *b.i
	i.Columns = append([]string(nil), b.i.Columns...)
	i.Was = append([]string(nil), b.i.Was...)
	i.Comments = append([]string(nil), b.i.Comments...)
	return &i
}
