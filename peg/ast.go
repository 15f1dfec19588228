package peg

type nodeType int

const (
	textNode nodeType = iota
	classNode
	anyCharNode
	refNode
	sequenceNode
	choiceNode
	optionNode
	repetitionNode
	lookaheadNode
	exclusionNode
	selectionNode
)

type node interface {
	Type() nodeType
}

// text holds quoted literal with escapes not yet decoded.
type text struct {
	raw string
}

func (n *text) Type() nodeType { return textNode }

type classItem struct {
	// first and last characters of a range, possibly escaped; last is empty for single character
	first, last string
}

type class struct {
	source  string
	negated bool
	items   []classItem
}

func (n *class) Type() nodeType { return classNode }

type anyChar struct{}

func (n *anyChar) Type() nodeType { return anyCharNode }

type ref struct {
	name string
}

func (n *ref) Type() nodeType { return refNode }

type sequence struct {
	items  []node
	labels []string
}

func (n *sequence) Type() nodeType { return sequenceNode }

type choice struct {
	items []node
}

func (n *choice) Type() nodeType { return choiceNode }

type option struct {
	item node
}

func (n *option) Type() nodeType { return optionNode }

type repetition struct {
	item, sep node
	min       int
}

func (n *repetition) Type() nodeType { return repetitionNode }

type lookahead struct {
	item     node
	negative bool
}

func (n *lookahead) Type() nodeType { return lookaheadNode }

type exclusion struct {
	item, except node
}

func (n *exclusion) Type() nodeType { return exclusionNode }

type selection struct {
	item node
	key  any
}

func (n *selection) Type() nodeType { return selectionNode }

type labeled struct {
	label string
	item  node
}

type ruleDef struct {
	name string
	body node
}
