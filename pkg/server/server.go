package server

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/bastiangx/syllabix/internal/utils"
	"github.com/bastiangx/syllabix/pkg/spelling"
	"github.com/bastiangx/syllabix/pkg/syllabify"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Lexicon names syllables and reports what was loaded. *prism.Prism
// satisfies it.
type Lexicon interface {
	SyllableText(id spelling.SyllableID) string
	Stats() map[string]int
}

// Server answers graph requests over a msgpack stream.
type Server struct {
	syllabifier *syllabify.Syllabifier
	lexicon     Lexicon
	maxInput    int

	graph   *syllabify.SyllableGraph
	decoder *msgpack.Decoder
	encoder *msgpack.Encoder
	writer  *bufio.Writer

	requestCount int
}

// NewServer creates a server reading requests from r and writing responses
// to w. Inputs longer than maxInput bytes are rejected; zero means no limit.
func NewServer(syl *syllabify.Syllabifier, lexicon Lexicon, maxInput int, r io.Reader, w io.Writer) *Server {
	writer := bufio.NewWriter(w)
	return &Server{
		syllabifier: syl,
		lexicon:     lexicon,
		maxInput:    maxInput,
		graph:       syllabify.NewSyllableGraph(),
		decoder:     msgpack.NewDecoder(bufio.NewReader(r)),
		encoder:     msgpack.NewEncoder(writer),
		writer:      writer,
	}
}

// Start serves requests until the input stream ends or ctx is cancelled.
// A clean end of stream returns nil.
func (s *Server) Start(ctx context.Context) error {
	log.Debug("Starting server")
	if err := s.send(map[string]string{"status": "ready"}); err != nil {
		return err
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		raw, err := s.decoder.DecodeRaw()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debugf("Input closed after %d requests", s.requestCount)
				return nil
			}
			return fmt.Errorf("reading request: %w", err)
		}
		s.requestCount++

		var req Request
		if err := msgpack.Unmarshal(raw, &req); err != nil {
			log.Errorf("Decoding request: %v", err)
			if err := s.sendError("", "invalid msgpack request", 400); err != nil {
				return err
			}
			continue
		}
		if err := s.handle(req); err != nil {
			return err
		}
	}
}

func (s *Server) handle(req Request) error {
	switch req.Action {
	case "graph", "":
		return s.handleGraph(req)
	case "health":
		stats := s.lexicon.Stats()
		return s.send(HealthResponse{
			ID:        req.ID,
			Status:    "ok",
			Syllables: stats["syllables"],
			Keys:      stats["keys"],
			Spellings: stats["spellings"],
		})
	default:
		return s.sendError(req.ID, fmt.Sprintf("unknown action: %s", req.Action), 400)
	}
}

func (s *Server) handleGraph(req Request) error {
	input := strings.ToLower(req.Input)
	if s.maxInput > 0 && len(input) > s.maxInput {
		log.Debugf("Rejecting input of %d bytes", len(input))
		return s.sendError(req.ID, fmt.Sprintf("input exceeds maximum length of %d", s.maxInput), 400)
	}
	if input != "" && !utils.IsValidInput(input, s.syllabifier.Options().Delimiters) {
		return s.sendError(req.ID, "input must be letters and delimiters", 400)
	}

	start := time.Now()
	farthest := s.syllabifier.BuildSyllableGraph(input, s.graph)
	elapsed := time.Since(start)

	vertices, edges := DescribeGraph(s.graph, s.lexicon)
	joints := slices.Sorted(maps.Keys(s.graph.AmbiguousJoints))
	if joints == nil {
		joints = []int{}
	}
	return s.send(GraphResponse{
		ID:              req.ID,
		InputLength:     s.graph.InputLength,
		Farthest:        farthest,
		Vertices:        vertices,
		Edges:           edges,
		AmbiguousJoints: joints,
		Strict:          s.graph.StrictSpelling,
		TimeTaken:       elapsed.Microseconds(),
	})
}

// DescribeGraph flattens g into vertices ordered by position and edges
// ordered by start, end and syllable id.
func DescribeGraph(g *syllabify.SyllableGraph, lexicon Lexicon) ([]Vertex, []Edge) {
	vertices := make([]Vertex, 0, len(g.Vertices))
	for _, pos := range slices.Sorted(maps.Keys(g.Vertices)) {
		vertices = append(vertices, Vertex{Pos: pos, Type: g.Vertices[pos].String()})
	}

	edges := make([]Edge, 0, g.EdgeCount())
	for _, start := range g.Starts() {
		for _, end := range g.Ends(start) {
			spellings := g.Spellings(start, end)
			for _, id := range slices.Sorted(maps.Keys(spellings)) {
				props := spellings[id]
				edges = append(edges, Edge{
					Start:       start,
					End:         end,
					Syllable:    int32(id),
					Text:        lexicon.SyllableText(id),
					Type:        props.Type.String(),
					Credibility: props.Credibility,
					Correction:  props.IsCorrection,
				})
			}
		}
	}
	return vertices, edges
}

func (s *Server) send(response any) error {
	if err := s.encoder.Encode(response); err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return s.writer.Flush()
}

func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
