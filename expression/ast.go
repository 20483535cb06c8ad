package expression

// node is an element of a parsed expression. Nodes never carry their own
// leading whitespace; the enclosing node records it where it matters.
type node interface {
	node()
}

type literalKind int

const (
	literalString literalKind = iota
	literalNumber
	literalBool
	literalNull
)

type (
	identNode struct {
		name string
	}

	literalNode struct {
		kind literalKind
		raw  string
		// value is the decoded text of a string literal
		value string
	}

	memberNode struct {
		x    node
		name string
	}

	indexNode struct {
		x       node
		index   node
		ws      string
		closeWS string
	}

	callNode struct {
		fn      node
		args    []node
		argWS   []string
		closeWS string
	}

	unaryNode struct {
		op string
		x  node
	}

	binaryNode struct {
		op    string
		left  node
		right node
		// opWS precedes the operator, rightWS follows it
		opWS    string
		rightWS string
	}

	parenNode struct {
		x       node
		ws      string
		closeWS string
	}

	conditionalNode struct {
		cond node
		then node
		els  node
	}
)

func (*identNode) node()       {}
func (*literalNode) node()     {}
func (*memberNode) node()      {}
func (*indexNode) node()       {}
func (*callNode) node()        {}
func (*unaryNode) node()       {}
func (*binaryNode) node()      {}
func (*parenNode) node()       {}
func (*conditionalNode) node() {}
