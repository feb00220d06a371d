package parser

// Tag is a PGN tag pair.
type Tag struct {
	Name  string
	Value string
}

// Move is one SAN move of the movetext with its annotations.
type Move struct {
	SAN        string
	NAGs       []int
	Comment    string
	Variations [][]*Move
	Line       uint
}

// Game is a game as written in PGN, before any move is checked against the
// rules.
type Game struct {
	Tags          []Tag
	PrefixComment string
	Moves         []*Move
	Result        string
	StartLine     uint
	EndLine       uint
}

// Tag returns the value of the named tag, or "" when absent.
func (g *Game) Tag(name string) string {
	for _, t := range g.Tags {
		if t.Name == name {
			return t.Value
		}
	}
	return ""
}

// SetTag sets a tag, replacing an existing value in place.
func (g *Game) SetTag(name, value string) {
	for i := range g.Tags {
		if g.Tags[i].Name == name {
			g.Tags[i].Value = value
			return
		}
	}
	g.Tags = append(g.Tags, Tag{Name: name, Value: value})
}

// PlyCount returns the number of moves on the main line.
func (g *Game) PlyCount() int {
	return len(g.Moves)
}

// TagMap returns the tags as a map.
func (g *Game) TagMap() map[string]string {
	m := make(map[string]string, len(g.Tags))
	for _, t := range g.Tags {
		m[t.Name] = t.Value
	}
	return m
}
