// Package tree stores a game with its variations. Nodes live in a flat
// arena and refer to each other by index, so a tree can be copied or
// walked without pointer chasing.
package tree

import (
	"fmt"

	"github.com/lgbarn/chesscore-go/internal/chess"
	"github.com/lgbarn/chesscore-go/internal/game"
)

// Root is the index of the root node.
const Root = 0

// NoParent marks the root's parent.
const NoParent = -1

// Node is one position in the tree. Children[0] continues the main line;
// later children are alternatives.
type Node struct {
	Parent   int
	Children []int
	Game     *game.Game
	SAN      string // Move that led here; empty at the root
	Comment  string
	NAGs     []int
}

// Tree is an arena of game nodes rooted at a starting position.
type Tree struct {
	nodes []Node
}

// New returns a tree whose root is g.
func New(g *game.Game) *Tree {
	return &Tree{nodes: []Node{{Parent: NoParent, Game: g}}}
}

// Len returns the number of nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns a copy of the node at id.
func (t *Tree) Node(id int) (Node, error) {
	if err := t.check(id); err != nil {
		return Node{}, err
	}
	n := t.nodes[id]
	n.Children = append([]int(nil), n.Children...)
	n.NAGs = append([]int(nil), n.NAGs...)
	return n, nil
}

// Add plays move from the node at parent and returns the child's index.
// Playing a move that is already a child returns the existing node.
func (t *Tree) Add(parent int, move chess.Move) (int, error) {
	if err := t.check(parent); err != nil {
		return 0, err
	}
	for _, c := range t.nodes[parent].Children {
		if last, _ := t.nodes[c].Game.LastMove(); last == move {
			return c, nil
		}
	}
	next, err := t.nodes[parent].Game.Move(move)
	if err != nil {
		return 0, err
	}
	return t.attach(parent, next), nil
}

// AddSAN is Add with the move given in SAN.
func (t *Tree) AddSAN(parent int, san string) (int, error) {
	if err := t.check(parent); err != nil {
		return 0, err
	}
	next, err := t.nodes[parent].Game.MoveSAN(san)
	if err != nil {
		return 0, err
	}
	last, _ := next.LastMove()
	for _, c := range t.nodes[parent].Children {
		if m, _ := t.nodes[c].Game.LastMove(); m == last {
			return c, nil
		}
	}
	return t.attach(parent, next), nil
}

func (t *Tree) attach(parent int, g *game.Game) int {
	hm, _ := g.LastHalfMove()
	id := len(t.nodes)
	t.nodes = append(t.nodes, Node{
		Parent: parent,
		Game:   g,
		SAN:    hm.SAN,
	})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Annotate sets the comment and NAGs of the node at id.
func (t *Tree) Annotate(id int, comment string, nags ...int) error {
	if err := t.check(id); err != nil {
		return err
	}
	t.nodes[id].Comment = comment
	t.nodes[id].NAGs = append([]int(nil), nags...)
	return nil
}

// Mainline returns the node indices along the first child of each node,
// starting at the root.
func (t *Tree) Mainline() []int {
	line := []int{Root}
	for id := Root; len(t.nodes[id].Children) > 0; {
		id = t.nodes[id].Children[0]
		line = append(line, id)
	}
	return line
}

// Path returns the indices from the root down to id.
func (t *Tree) Path(id int) ([]int, error) {
	if err := t.check(id); err != nil {
		return nil, err
	}
	var path []int
	for ; id != NoParent; id = t.nodes[id].Parent {
		path = append(path, id)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// Promote makes the line through id the main line by moving each node on
// its path to the front of its parent's children.
func (t *Tree) Promote(id int) error {
	if err := t.check(id); err != nil {
		return err
	}
	for ; t.nodes[id].Parent != NoParent; id = t.nodes[id].Parent {
		parent := &t.nodes[t.nodes[id].Parent]
		for i, c := range parent.Children {
			if c == id {
				copy(parent.Children[1:i+1], parent.Children[:i])
				parent.Children[0] = id
				break
			}
		}
	}
	return nil
}

// Leaf returns the game at the end of the main line.
func (t *Tree) Leaf() *game.Game {
	line := t.Mainline()
	return t.nodes[line[len(line)-1]].Game
}

func (t *Tree) check(id int) error {
	if id < 0 || id >= len(t.nodes) {
		return fmt.Errorf("node %d out of range [0,%d)", id, len(t.nodes))
	}
	return nil
}
