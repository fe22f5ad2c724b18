package cst

// New creates a named internal node
func New(kind string, children ...*Node) *Node {
	n := &Node{kind: kind, named: true}
	for _, c := range children {
		n.Append(c)
	}
	return n
}

// Leaf creates a named token such as an identifier or a literal
func Leaf(kind, text string) *Node {
	return &Node{kind: kind, text: text, named: true}
}

// Sym creates an anonymous token, a keyword or punctuation
func Sym(text string) *Node {
	return &Node{kind: text, text: text}
}

// Ident is shorthand for an identifier leaf
func Ident(name string) *Node {
	return Leaf("identifier", name)
}

// Append adds c as the last child of n
func (n *Node) Append(c *Node) *Node {
	if c == nil {
		return n
	}
	c.parent = n
	n.children = append(n.children, c)
	return n
}

// Field names the grammar field that holds n and returns n
func (n *Node) Field(name string) *Node {
	n.field = name
	return n
}

// At pins a token to a source position. Place lays out the following tokens
// from there.
func (n *Node) At(line, column int) *Node {
	n.start = Position{Line: line, Column: column}
	return n
}

// Place assigns positions to a hand-built tree. Tokens without a position are
// laid out left to right separated by one space, continuing from the last
// pinned token. Internal nodes span their tokens.
func Place(root *Node) *Node {
	cursor := Position{Line: 1, Column: 1}
	for _, leaf := range root.Leaves() {
		if leaf.start.Line == 0 {
			leaf.start = cursor
		}
		leaf.end = Advance(leaf.start, leaf.text)
		cursor = Position{Line: leaf.end.Line, Column: leaf.end.Column + 1}
	}
	spanInternal(root)
	return root
}

func spanInternal(n *Node) {
	if n.IsLeaf() {
		return
	}
	for _, c := range n.children {
		spanInternal(c)
	}
	n.start = n.children[0].start
	n.end = n.children[len(n.children)-1].end
}
