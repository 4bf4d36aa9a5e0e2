package inlineparser

import "github.com/bukvar/bukvar/pkg/dast"

// eventKind tags what an event carries: either a finished node, or an
// unresolved marker waiting for a later pass (bracket matching, then
// emphasis pairing) to decide its fate.
type eventKind uint8

const (
	eNode eventKind = iota
	eDelim
	eBracketOpen
	eBracketClose
)

// event is one slot in the flat left-to-right scan of a leaf's text.
// Finished leaves (text runs, code spans, autolinks, ...) carry Node;
// unresolved delimiter runs and brackets carry the remaining fields and
// are rewritten in place by the bracket and emphasis passes.
type event struct {
	kind eventKind
	node *dast.Node

	delimChar byte
	delimLen  int
	canOpen   bool
	canClose  bool

	isImage bool // eBracketOpen only
	active  bool // eBracketOpen only: false once consumed or shadowed

	start, end int // byte offsets into parser.src
}
