package syllabify

import (
	"fmt"
	"maps"
	"slices"

	"github.com/bastiangx/syllabix/pkg/spelling"
)

// EdgeProperties describes one syllable spanning an edge of the graph.
type EdgeProperties struct {
	End          int
	Type         spelling.Type
	Credibility  float64
	IsCorrection bool
}

// EdgeRef addresses an EdgeProperties record in the graph's arena. Both the
// edge map and the transposed index hold refs, so an update made through one
// view is seen by the other.
type EdgeRef int

type (
	// SpellingMap maps syllables on a single (start, end) edge to their properties.
	SpellingMap map[spelling.SyllableID]EdgeRef
	// EndVertexMap maps end positions reachable from one start.
	EndVertexMap map[int]SpellingMap
	// SpellingIndex groups the edges leaving one start by syllable, longest first.
	SpellingIndex map[spelling.SyllableID][]EdgeRef
)

// SyllableGraph is the lattice produced by a Syllabifier. Vertices are input
// positions, edges are syllables spanning two positions.
type SyllableGraph struct {
	InputLength       int
	InterpretedLength int
	StrictSpelling    bool

	Vertices        map[int]spelling.Type
	Edges           map[int]EndVertexMap
	Indices         map[int]SpellingIndex
	AmbiguousJoints map[int]struct{}

	arena []EdgeProperties
}

// NewSyllableGraph returns an empty graph ready to be built.
func NewSyllableGraph() *SyllableGraph {
	g := &SyllableGraph{}
	g.reset(0)
	return g
}

func (g *SyllableGraph) reset(inputLength int) {
	g.InputLength = inputLength
	g.InterpretedLength = 0
	g.Vertices = make(map[int]spelling.Type)
	g.Edges = make(map[int]EndVertexMap)
	g.Indices = make(map[int]SpellingIndex)
	g.AmbiguousJoints = make(map[int]struct{})
	g.arena = g.arena[:0]
}

// Vertex returns the classification of the vertex at pos.
func (g *SyllableGraph) Vertex(pos int) (spelling.Type, bool) {
	t, ok := g.Vertices[pos]
	return t, ok
}

// Properties returns a copy of the record ref points to.
func (g *SyllableGraph) Properties(ref EdgeRef) EdgeProperties {
	return g.arena[ref]
}

// Edge returns the properties of syllable id spanning [start, end).
func (g *SyllableGraph) Edge(start, end int, id spelling.SyllableID) (EdgeProperties, bool) {
	ref, ok := g.Edges[start][end][id]
	if !ok {
		return EdgeProperties{}, false
	}
	return g.arena[ref], true
}

// Spellings returns every syllable spanning [start, end) with its properties.
func (g *SyllableGraph) Spellings(start, end int) map[spelling.SyllableID]EdgeProperties {
	spellings := g.Edges[start][end]
	if len(spellings) == 0 {
		return nil
	}
	out := make(map[spelling.SyllableID]EdgeProperties, len(spellings))
	for id, ref := range spellings {
		out[id] = g.arena[ref]
	}
	return out
}

// Ends lists the end positions of edges leaving start in ascending order.
func (g *SyllableGraph) Ends(start int) []int {
	return slices.Sorted(maps.Keys(g.Edges[start]))
}

// Starts lists every position that has outgoing edges in ascending order.
func (g *SyllableGraph) Starts() []int {
	return slices.Sorted(maps.Keys(g.Edges))
}

// Index returns the edges leaving start that spell id, longest first.
// It panics when start was never visited.
func (g *SyllableGraph) Index(start int, id spelling.SyllableID) []EdgeProperties {
	g.mustBeVisited(start)
	refs := g.Indices[start][id]
	out := make([]EdgeProperties, len(refs))
	for i, ref := range refs {
		out[i] = g.arena[ref]
	}
	return out
}

// EdgeCount returns the number of (start, end, syllable) edges.
func (g *SyllableGraph) EdgeCount() int {
	n := 0
	for _, ends := range g.Edges {
		for _, spellings := range ends {
			n += len(spellings)
		}
	}
	return n
}

// IsAmbiguousJoint reports whether pos was found to split a span two ways.
func (g *SyllableGraph) IsAmbiguousJoint(pos int) bool {
	_, ok := g.AmbiguousJoints[pos]
	return ok
}

func (g *SyllableGraph) mustBeVisited(pos int) {
	if _, ok := g.Vertices[pos]; !ok {
		panic(fmt.Sprintf("syllabify: position %d was never visited", pos))
	}
}

// addEdge records props for [start, props.End) spelling id. An existing record
// for the same key is replaced only by a more credible one; at equal
// credibility a non-correction replaces a correction.
func (g *SyllableGraph) addEdge(start int, id spelling.SyllableID, props EdgeProperties) {
	g.mustBeVisited(start)
	ends, ok := g.Edges[start]
	if !ok {
		ends = make(EndVertexMap)
		g.Edges[start] = ends
	}
	spellings, ok := ends[props.End]
	if !ok {
		spellings = make(SpellingMap)
		ends[props.End] = spellings
	}
	if ref, exists := spellings[id]; exists {
		if preferred(props, g.arena[ref]) {
			g.arena[ref] = props
		}
		return
	}
	g.arena = append(g.arena, props)
	spellings[id] = EdgeRef(len(g.arena) - 1)
}

func preferred(candidate, current EdgeProperties) bool {
	if candidate.Credibility != current.Credibility {
		return candidate.Credibility > current.Credibility
	}
	return current.IsCorrection && !candidate.IsCorrection
}

func (g *SyllableGraph) adjust(ref EdgeRef, delta float64) {
	g.arena[ref].Credibility += delta
}
