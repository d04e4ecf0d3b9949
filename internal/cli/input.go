// Package cli reads keystrokes line by line and prints the syllable graph
// built for each, for debugging dictionaries and spelling rules.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/bastiangx/syllabix/internal/utils"
	"github.com/bastiangx/syllabix/pkg/server"
	"github.com/bastiangx/syllabix/pkg/syllabify"
	"github.com/charmbracelet/log"
)

// InputHandler builds and prints a graph for every line it reads.
type InputHandler struct {
	syllabifier  *syllabify.Syllabifier
	lexicon      server.Lexicon
	maxInput     int
	graph        *syllabify.SyllableGraph
	out          io.Writer
	requestCount int
}

// NewInputHandler creates a handler printing to out. Lines longer than
// maxInput bytes are refused; zero means no limit.
func NewInputHandler(syl *syllabify.Syllabifier, lexicon server.Lexicon, maxInput int, out io.Writer) *InputHandler {
	return &InputHandler{
		syllabifier: syl,
		lexicon:     lexicon,
		maxInput:    maxInput,
		graph:       syllabify.NewSyllableGraph(),
		out:         out,
	}
}

// Start reads lines from r until it is exhausted.
func (h *InputHandler) Start(r io.Reader) error {
	fmt.Fprintln(h.out, titleStyle.Render("syllabix CLI"))
	fmt.Fprintln(h.out, "type some keystrokes and press Enter to see the syllable graph (Ctrl+D to exit):")

	scanner := bufio.NewScanner(r)
	for {
		fmt.Fprint(h.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(h.out)
			return scanner.Err()
		}
		input := utils.NormalizeInput(scanner.Text())
		if input == "" {
			continue
		}
		h.handleInput(input)
	}
}

func (h *InputHandler) handleInput(input string) {
	h.requestCount++
	if h.maxInput > 0 && len(input) > h.maxInput {
		log.Errorf("Input too long: %d > %d", len(input), h.maxInput)
		return
	}
	if !utils.IsValidInput(input, h.syllabifier.Options().Delimiters) {
		log.Warnf("Input %q has characters that cannot be syllabified", input)
		return
	}

	start := time.Now()
	farthest := h.syllabifier.BuildSyllableGraph(input, h.graph)
	log.Debugf("Took [ %v ] for input %q (request %d)", time.Since(start), input, h.requestCount)

	printGraph(h.out, input, farthest, h.graph, h.lexicon)
}
