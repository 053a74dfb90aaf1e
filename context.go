package jsonish

import "fmt"

// SchemaId is a stable identity for a schema node, usable as a hash-map key
// even for lazily-resolved or recursive schemas (§3.2). The adapter derives
// it from the underlying schemahost.Schema pointer identity, which is
// stable across a single compiled schema graph including $ref cycles.
type SchemaId uintptr

// visitKey pairs a SchemaId with a value fingerprint (§3.2): "same value at
// same schema", not "value serializes the same", which is what actually
// detects a cycle without false positives on structurally-equal siblings.
type visitKey struct {
	schema SchemaId
	value  string
}

// Context carries per-call coercion state (§3.2). It must never be shared
// across concurrent parse calls or across threads (§5).
type Context struct {
	scope         []string
	visitedTry    map[visitKey]bool
	visitedCoerce map[visitKey]bool
	depth         int
	options       Options

	// inUnionAttempt is set on the child context pushed for a Union arm
	// being tried under Phase 2 (§4.10); it changes how a Refined schema
	// reachable from that subtree handles a failed refinement (§4.11:
	// "In Union Phase 2 -> attach a penalty ... but keep the candidate").
	inUnionAttempt bool
}

func newContext(opts Options) *Context {
	return &Context{
		visitedTry:    make(map[visitKey]bool),
		visitedCoerce: make(map[visitKey]bool),
		options:       opts,
	}
}

// push returns a child context scoped one level deeper, sharing the visited
// sets (cycle tracking is call-global) but with its own scope breadcrumb and
// depth counter.
func (c *Context) push(segment string) (*Context, *ParseError) {
	if c.depth+1 > c.options.MaxDepth {
		return nil, NewParseError(ReasonDepthExceeded, c.scope).WithDetail(fmt.Sprintf("max depth %d exceeded", c.options.MaxDepth))
	}
	child := &Context{
		scope:          append(append([]string{}, c.scope...), segment),
		visitedTry:     c.visitedTry,
		visitedCoerce:  c.visitedCoerce,
		depth:          c.depth + 1,
		options:        c.options,
		inUnionAttempt: c.inUnionAttempt,
	}
	return child, nil
}

func (c *Context) markTry(id SchemaId, v *Value) (already bool, unmark func()) {
	k := visitKey{id, fingerprint(v)}
	if c.visitedTry[k] {
		return true, func() {}
	}
	c.visitedTry[k] = true
	return false, func() { delete(c.visitedTry, k) }
}

func (c *Context) markCoerce(id SchemaId, v *Value) (already bool, unmark func()) {
	k := visitKey{id, fingerprint(v)}
	if c.visitedCoerce[k] {
		return true, func() {}
	}
	c.visitedCoerce[k] = true
	return false, func() { delete(c.visitedCoerce, k) }
}
