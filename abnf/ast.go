package abnf

type nodeType int

const (
	textNode nodeType = iota
	rangeNode
	regexpNode
	anyCharNode
	refNode
	sequenceNode
	choiceNode
	optionNode
	repetitionNode
	exclusionNode
	selectionNode
)

// node is an element of parsed grammar text.
type node interface {
	Type() nodeType
}

// text matches a literal, case-insensitive if fold is set.
type text struct {
	value string
	fold  bool
}

func (n *text) Type() nodeType { return textNode }

// codeRange matches a single character in [min, max].
type codeRange struct {
	min, max int
}

func (n *codeRange) Type() nodeType { return rangeNode }

type regexpTerm struct {
	expr string
}

func (n *regexpTerm) Type() nodeType { return regexpNode }

type anyChar struct{}

func (n *anyChar) Type() nodeType { return anyCharNode }

type ref struct {
	name string
}

func (n *ref) Type() nodeType { return refNode }

// sequence yields a map if any item is labeled, labels are empty for unlabeled items.
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

// repetition folds items into a map if joined is set.
type repetition struct {
	item, sep        node
	min, max         int
	joined           bool
	joinKey, joinVal any
}

func (n *repetition) Type() nodeType { return repetitionNode }

type exclusion struct {
	item, except node
}

func (n *exclusion) Type() nodeType { return exclusionNode }

// selection picks an element of group result, key is int or string.
type selection struct {
	item node
	key  any
}

func (n *selection) Type() nodeType { return selectionNode }

// labeled is an intermediate value for a labeled concatenation item.
type labeled struct {
	label string
	item  node
}

// ruleDef is a rule of a rule list.
type ruleDef struct {
	name        string
	incremental bool
	body        node
	pos         int
}
