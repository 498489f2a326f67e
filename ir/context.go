package ir

import "sync"

// Context is the expression interning table: it maps opaque ExprRef handles
// to Expr nodes and structurally deduplicates equal nodes on construction,
// mirroring core.Graph's muVert/muEdgeAdj locking split (core/types.go) with
// a single mutex here since there is only one table to guard.
type Context struct {
	mu     sync.RWMutex
	nodes  []Expr          // nodes[0] is an unused placeholder (NoRef == 0)
	intern map[Expr]ExprRef // structural dedup: identical Expr -> same ref
	names  map[string]ExprRef
}

// NewContext returns an empty Context ready for symbol/expression construction.
func NewContext() *Context {
	return &Context{
		nodes:  make([]Expr, 1), // index 0 reserved for NoRef
		intern: make(map[Expr]ExprRef),
		names:  make(map[string]ExprRef),
	}
}

// Get returns the Expr backing ref. Panics on NoRef or an out-of-range ref,
// since every caller in this core is expected to hold only refs it received
// from this same Context (handles are borrowed, never fabricated).
func (c *Context) Get(ref ExprRef) Expr {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if ref == NoRef || int(ref) >= len(c.nodes) {
		panic(ErrUnknownRef)
	}
	return c.nodes[ref]
}

// Width returns the bit-width of ref's result.
func (c *Context) Width(ref ExprRef) uint32 {
	return c.Get(ref).Width
}

// intern inserts e if no structurally-identical node already exists, and
// returns its (possibly pre-existing) ExprRef.
func (c *Context) intern_(e Expr) ExprRef {
	c.mu.Lock()
	defer c.mu.Unlock()
	if ref, ok := c.intern[e]; ok {
		return ref
	}
	ref := ExprRef(len(c.nodes))
	c.nodes = append(c.nodes, e)
	c.intern[e] = ref
	return ref
}

// Not returns the expression ¬a, reusing ctx-level interning and collapsing
// double negation (¬¬a ≡ a) the way the conjunction splitter's De Morgan
// rule expects "Not constructions [to be] materialized in the IR context"
// (spec §4.A).
func (c *Context) Not(a ExprRef) ExprRef {
	node := c.Get(a)
	if node.Width != 1 {
		panic(ErrNotBoolean)
	}
	if node.Op == OpNot {
		return node.A
	}
	return c.intern_(Expr{Op: OpNot, Width: 1, A: a})
}

// bin interns a two-operand node of the given width.
func (c *Context) bin(op Op, width uint32, a, b ExprRef) ExprRef {
	return c.intern_(Expr{Op: op, Width: width, A: a, B: b})
}

func (c *Context) And(a, b ExprRef) ExprRef  { return c.bin(OpAnd, c.Width(a), a, b) }
func (c *Context) Or(a, b ExprRef) ExprRef   { return c.bin(OpOr, c.Width(a), a, b) }
func (c *Context) Xor(a, b ExprRef) ExprRef  { return c.bin(OpXor, c.Width(a), a, b) }
func (c *Context) Add(a, b ExprRef) ExprRef  { return c.bin(OpAdd, c.Width(a), a, b) }
func (c *Context) Sub(a, b ExprRef) ExprRef  { return c.bin(OpSub, c.Width(a), a, b) }
func (c *Context) Mul(a, b ExprRef) ExprRef  { return c.bin(OpMul, c.Width(a), a, b) }
func (c *Context) Udiv(a, b ExprRef) ExprRef { return c.bin(OpUdiv, c.Width(a), a, b) }
func (c *Context) Urem(a, b ExprRef) ExprRef { return c.bin(OpUrem, c.Width(a), a, b) }
func (c *Context) Sll(a, b ExprRef) ExprRef  { return c.bin(OpSll, c.Width(a), a, b) }
func (c *Context) Srl(a, b ExprRef) ExprRef  { return c.bin(OpSrl, c.Width(a), a, b) }
func (c *Context) Sra(a, b ExprRef) ExprRef  { return c.bin(OpSra, c.Width(a), a, b) }

func (c *Context) Eq(a, b ExprRef) ExprRef   { return c.bin(OpEq, 1, a, b) }
func (c *Context) Neq(a, b ExprRef) ExprRef  { return c.bin(OpNeq, 1, a, b) }
func (c *Context) Ult(a, b ExprRef) ExprRef  { return c.bin(OpUlt, 1, a, b) }
func (c *Context) Ulte(a, b ExprRef) ExprRef { return c.bin(OpUlte, 1, a, b) }
func (c *Context) Ugt(a, b ExprRef) ExprRef  { return c.bin(OpUgt, 1, a, b) }
func (c *Context) Ugte(a, b ExprRef) ExprRef { return c.bin(OpUgte, 1, a, b) }
func (c *Context) Slt(a, b ExprRef) ExprRef  { return c.bin(OpSlt, 1, a, b) }
func (c *Context) Slte(a, b ExprRef) ExprRef { return c.bin(OpSlte, 1, a, b) }
func (c *Context) Sgt(a, b ExprRef) ExprRef  { return c.bin(OpSgt, 1, a, b) }
func (c *Context) Sgte(a, b ExprRef) ExprRef { return c.bin(OpSgte, 1, a, b) }

func (c *Context) Concat(a, b ExprRef) ExprRef {
	return c.bin(OpConcat, c.Width(a)+c.Width(b), a, b)
}

func (c *Context) Ite(cond, t, f ExprRef) ExprRef {
	return c.intern_(Expr{Op: OpIte, Width: c.Width(t), A: cond, B: t, C: f})
}

func (c *Context) Slice(a ExprRef, hi, lo uint32) ExprRef {
	return c.intern_(Expr{Op: OpSlice, Width: hi - lo + 1, A: a, Hi: hi, Lo: lo})
}

func (c *Context) Uext(a ExprRef, bits uint32) ExprRef {
	return c.intern_(Expr{Op: OpUext, Width: c.Width(a) + bits, A: a, Ext: bits})
}

func (c *Context) Sext(a ExprRef, bits uint32) ExprRef {
	return c.intern_(Expr{Op: OpSext, Width: c.Width(a) + bits, A: a, Ext: bits})
}

func (c *Context) Redand(a ExprRef) ExprRef { return c.intern_(Expr{Op: OpRedand, Width: 1, A: a}) }
func (c *Context) Redor(a ExprRef) ExprRef  { return c.intern_(Expr{Op: OpRedor, Width: 1, A: a}) }
func (c *Context) Redxor(a ExprRef) ExprRef { return c.intern_(Expr{Op: OpRedxor, Width: 1, A: a}) }

// Const interns a width-bit constant, masked to width.
func (c *Context) Const(width uint32, value uint64) ExprRef {
	if width == 0 || width > 64 {
		panic(ErrBadWidth)
	}
	return c.intern_(Expr{Op: OpConst, Width: width, Value: value & Mask(width)})
}

// Input declares a new free input symbol. Names are unique within a Context;
// ErrDuplicateName panics on collision since the parser is expected to
// de-duplicate declarations itself.
func (c *Context) Input(name string, width uint32, isArray bool) ExprRef {
	return c.declareSymbol(OpInput, name, width, isArray)
}

// State declares a new free state symbol (its init/next are tracked
// separately by TransitionSystem, not by the Expr node itself).
func (c *Context) State(name string, width uint32, isArray bool) ExprRef {
	return c.declareSymbol(OpState, name, width, isArray)
}

func (c *Context) declareSymbol(op Op, name string, width uint32, isArray bool) ExprRef {
	c.mu.Lock()
	if _, dup := c.names[name]; dup {
		c.mu.Unlock()
		panic(ErrDuplicateName)
	}
	c.mu.Unlock()
	// Symbols are never structurally interned with one another (two
	// same-named declarations are a caller bug, not a program fact), so
	// construct the node directly rather than through intern_.
	c.mu.Lock()
	defer c.mu.Unlock()
	ref := ExprRef(len(c.nodes))
	c.nodes = append(c.nodes, Expr{Op: op, Width: width, IsArray: isArray, Name: name})
	c.names[name] = ref
	return ref
}

// Clone returns an independent Context with the same node table. Per the
// concurrency model (spec §5), every worker clones ctx once at setup time;
// nodes is copied (not aliased) so later constructions in one clone never
// race with another, matching core.Graph.Clone's full-copy semantics
// (core/methods_clone.go).
func (c *Context) Clone() *Context {
	c.mu.RLock()
	defer c.mu.RUnlock()
	nodes := make([]Expr, len(c.nodes))
	copy(nodes, c.nodes)
	intern := make(map[Expr]ExprRef, len(c.intern))
	for k, v := range c.intern {
		intern[k] = v
	}
	names := make(map[string]ExprRef, len(c.names))
	for k, v := range c.names {
		names[k] = v
	}
	return &Context{nodes: nodes, intern: intern, names: names}
}
