/*
Package syllabify builds syllable graphs out of raw keystroke input.

A Syllabifier walks the input best-first, asking a spelling.Dictionary (and
optionally a spelling.Corrector) which syllables can start at each reachable
position. The result is a SyllableGraph: a lattice whose vertices are input
positions and whose edges carry a syllable id with a log-domain credibility.

	syl := syllabify.New(prism, syllabify.DefaultOptions())
	graph := syllabify.NewSyllableGraph()
	farthest := syl.BuildSyllableGraph("xian", graph)

After expansion the edges are transposed into a per-syllable index and spans
that can be segmented two ways ("xian" as one syllable or "xi'an" as two) are
penalized so that downstream path search favours the unambiguous reading.
*/
package syllabify

import (
	"container/heap"
	"math"

	"github.com/bastiangx/syllabix/pkg/spelling"
	"github.com/charmbracelet/log"
)

const (
	// CompletionPenalty is log(0.5), charged to spellings that only match
	// a prefix of a syllable at the end of the input.
	CompletionPenalty = -0.6931471805599453
	// CorrectionCredibility is log(0.01), charged to corrector suggestions.
	CorrectionCredibility = -4.605170185988091
	// PenaltyForAmbiguousSyllable is log(1e-10).
	PenaltyForAmbiguousSyllable = -23.025850929940457
)

// Options controls how a graph is built.
type Options struct {
	// Delimiters are explicit syllable separators. The syllabifier only
	// carries them; dictionaries consume them.
	Delimiters string
	// EnableCompletion accepts partial syllables at the end of the input.
	EnableCompletion bool
	// StrictSpelling is recorded on the graph for ranking.
	StrictSpelling bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		Delimiters:       " '",
		EnableCompletion: false,
		StrictSpelling:   false,
	}
}

// Syllabifier turns input strings into syllable graphs. It holds no state
// between builds and may be reused.
type Syllabifier struct {
	opts      Options
	dict      spelling.Dictionary
	corrector spelling.Corrector
}

// New creates a Syllabifier that reads spellings from dict.
func New(dict spelling.Dictionary, opts Options) *Syllabifier {
	return &Syllabifier{
		opts: opts,
		dict: dict,
	}
}

// EnableCorrection sets the corrector consulted at each vertex. Passing nil
// disables correction.
func (s *Syllabifier) EnableCorrection(corrector spelling.Corrector) {
	s.corrector = corrector
}

// Options returns the options s was created with.
func (s *Syllabifier) Options() Options {
	return s.opts
}

// BuildSyllableGraph fills graph with every segmentation of input reachable
// from position 0 and returns the farthest position reached. A result smaller
// than len(input) means the tail of the input could not be interpreted.
func (s *Syllabifier) BuildSyllableGraph(input string, graph *SyllableGraph) int {
	graph.reset(len(input))
	graph.StrictSpelling = s.opts.StrictSpelling
	if input == "" {
		return 0
	}

	farthest := 0
	queue := &vertexQueue{{pos: 0, typ: spelling.Normal}}
	for queue.Len() > 0 {
		v := heap.Pop(queue).(vertex)
		// the first visit carries the preferred type
		if _, visited := graph.Vertices[v.pos]; visited {
			continue
		}
		graph.Vertices[v.pos] = v.typ
		if v.pos > farthest {
			farthest = v.pos
		}
		for _, c := range s.candidates(input, v.pos) {
			graph.addEdge(v.pos, c.id, c.props)
			heap.Push(queue, vertex{pos: c.props.End, typ: c.props.Type})
		}
	}
	graph.InterpretedLength = farthest
	log.Debugf("syllabify: input %q interpreted up to %d/%d, %d vertices, %d edges",
		input, farthest, len(input), len(graph.Vertices), graph.EdgeCount())

	s.Transpose(graph)
	s.resolveAmbiguousJoints(graph)
	return farthest
}

type candidate struct {
	id    spelling.SyllableID
	props EdgeProperties
}

// candidates collects the edges leaving pos, applying correction and
// completion penalties.
func (s *Syllabifier) candidates(input string, pos int) []candidate {
	var out []candidate
	add := func(sp spelling.Spelling, isCorrection bool) {
		if !sp.Type.Valid() {
			return
		}
		if sp.End <= pos || sp.End > len(input) {
			log.Warnf("syllabify: dropping spelling %d at %d with end %d out of range", sp.SyllableID, pos, sp.End)
			return
		}
		credibility := math.Min(sp.Credibility, 0)
		if isCorrection {
			credibility += CorrectionCredibility
		}
		if sp.Type == spelling.Completion {
			if !s.opts.EnableCompletion {
				return
			}
			credibility += CompletionPenalty
		}
		out = append(out, candidate{
			id: sp.SyllableID,
			props: EdgeProperties{
				End:          sp.End,
				Type:         sp.Type,
				Credibility:  credibility,
				IsCorrection: isCorrection,
			},
		})
	}

	if s.dict != nil {
		for _, sp := range s.dict.Lookup(input, pos) {
			add(sp, false)
		}
	}
	if s.corrector != nil {
		for _, sp := range s.corrector.Suggest(input, pos) {
			add(sp, true)
		}
	}
	return out
}

// Transpose rebuilds graph.Indices from graph.Edges. For each start the
// refs of a syllable are ordered by descending end position.
func (s *Syllabifier) Transpose(graph *SyllableGraph) {
	graph.Indices = make(map[int]SpellingIndex, len(graph.Edges))
	for start, ends := range graph.Edges {
		index := make(SpellingIndex)
		endPositions := graph.Ends(start)
		for i := len(endPositions) - 1; i >= 0; i-- {
			for id, ref := range ends[endPositions[i]] {
				index[id] = append(index[id], ref)
			}
		}
		graph.Indices[start] = index
	}
}

// resolveAmbiguousJoints checks every edge made of normal or fuzzy spellings
// for a competing two-syllable segmentation.
func (s *Syllabifier) resolveAmbiguousJoints(graph *SyllableGraph) {
	for _, start := range graph.Starts() {
		for _, end := range graph.Ends(start) {
			best := spelling.Invalid
			for _, ref := range graph.Edges[start][end] {
				props := graph.arena[ref]
				if !props.IsCorrection && props.Type.Better(best) {
					best = props.Type
				}
			}
			if best.Better(spelling.AbbreviatedWholeSyllable) {
				s.CheckOverlappedSpellings(graph, start, end)
			}
		}
	}
}

// CheckOverlappedSpellings penalizes the syllables that end at end from any
// joint between start and end, when [start, end) is also spanned by a single
// edge. "Z" = "YX": the vertex between Y and X is an ambiguous joint.
func (s *Syllabifier) CheckOverlappedSpellings(graph *SyllableGraph, start, end int) {
	graph.mustBeVisited(start)
	ys, ok := graph.Edges[start]
	if !ok {
		return
	}
	if _, direct := ys[end]; !direct {
		return
	}
	for _, joint := range graph.Ends(start) {
		if joint >= end {
			break
		}
		xs, ok := graph.Edges[joint][end]
		if !ok {
			continue
		}
		for _, ref := range xs {
			graph.adjust(ref, PenaltyForAmbiguousSyllable)
		}
		graph.AmbiguousJoints[joint] = struct{}{}
		log.Debugf("syllabify: ambiguous joint at %d in [%d, %d)", joint, start, end)
	}
}
