package isurf

// PageArena is a bump-allocated arena of fixed-size pages for
// cell-to-primitive-index lists of the kind spec §9 describes. The
// tessellation and reconciliation passes in this package do not use
// it: cells keep no primitive-index list, and each primitive records
// its owning cell in surf.Triangle.CellGlobal. Grounded on the teacher's generic
// DynBuffer[T] idiom, generalised to fixed-size spans rather than a
// single growable slice, since cells need stable (ptr,len) handles
// into shared backing storage rather than per-cell allocations.
type PageArena struct {
	pageSize int
	pages    [][]int32
	cur      int // page index with free space
	curLen   int // entries used in pages[cur]
}

// Span is a (ptr,len) handle into a PageArena: ptr is the page index
// plus the offset within that page.
type Span struct {
	page, offset, length int
}

// NewPageArena allocates an arena with the given page size.
func NewPageArena(pageSize int) *PageArena {
	return &PageArena{pageSize: pageSize, pages: [][]int32{make([]int32, 0, pageSize)}}
}

// Alloc returns a fresh span of length n, initialised to the given
// values (or zeroed if values is nil).
func (a *PageArena) Alloc(n int, values []int32) Span {
	if a.pageSize-len(a.pages[a.cur]) < n {
		a.pages = append(a.pages, make([]int32, 0, max(a.pageSize, n)))
		a.cur = len(a.pages) - 1
	}
	page := a.pages[a.cur]
	offset := len(page)
	if values != nil {
		page = append(page, values...)
	} else {
		page = append(page, make([]int32, n)...)
	}
	a.pages[a.cur] = page
	return Span{page: a.cur, offset: offset, length: n}
}

// Get returns the live slice backing span s. Callers must not retain
// it past a subsequent Grow/Shrink of the same cell's span, which may
// reallocate.
func (a *PageArena) Get(s Span) []int32 {
	return a.pages[s.page][s.offset : s.offset+s.length]
}

// Grow allocates a new span of length s.length+extra, copies s's
// contents into it, and returns the new span. The old span is
// abandoned: its entries stay in their page, and the arena has no
// operation that reclaims them.
func (a *PageArena) Grow(s Span, extra []int32) Span {
	old := a.Get(s)
	merged := make([]int32, len(old)+len(extra))
	copy(merged, old)
	copy(merged[len(old):], extra)
	return a.Alloc(len(merged), merged)
}

// Shrink allocates a new span containing only the entries at keep
// indices into s's current contents, in order.
func (a *PageArena) Shrink(s Span, keep []int) Span {
	old := a.Get(s)
	vals := make([]int32, len(keep))
	for i, k := range keep {
		vals[i] = old[k]
	}
	return a.Alloc(len(vals), vals)
}
