/*
Package server exposes syllable graphs over msgpack IPC on stdin/stdout.

Clients write a stream of msgpack maps to the server's stdin and read one
response per request from its stdout. Each request carries an ID that is
echoed back.

# IPC

A graph request asks for the syllable graph of one input string:

	{"id": "req_001", "action": "graph", "i": "xian"}

The server answers with every vertex and edge of the graph, the positions
marked as ambiguous joints and the time the build took in microseconds:

	{"id": "req_001", "n": 4, "f": 4,
	 "v": [{"p": 0, "t": "normal"}, {"p": 2, "t": "normal"}, {"p": 4, "t": "normal"}],
	 "g": [{"s": 0, "e": 4, "y": 2, "x": "xian", "t": "normal", "c": -2}, ...],
	 "a": [2], "s": false, "t": 37}

A health request reports the size of the loaded prism:

	{"id": "h_1", "action": "health"}
	{"id": "h_1", "status": "ok", "syllables": 412, "keys": 1210, "spellings": 1630}

Failures are reported with an error message under "e" and an HTTP-like
code under "c". No other response has a top-level "e" key:

	{"id": "req_002", "e": "input exceeds maximum length of 64", "c": 400}

The server sends {"status": "ready"} once before reading the first request.
*/
package server

// Request is one client message.
type Request struct {
	ID     string `msgpack:"id"`
	Action string `msgpack:"action"`
	Input  string `msgpack:"i"`
}

// Vertex is a reached input position and the best spelling type that
// reached it.
type Vertex struct {
	Pos  int    `msgpack:"p"`
	Type string `msgpack:"t"`
}

// Edge is one syllable spanning [Start, End).
type Edge struct {
	Start       int     `msgpack:"s"`
	End         int     `msgpack:"e"`
	Syllable    int32   `msgpack:"y"`
	Text        string  `msgpack:"x"`
	Type        string  `msgpack:"t"`
	Credibility float64 `msgpack:"c"`
	Correction  bool    `msgpack:"k,omitempty"`
}

// GraphResponse describes a built syllable graph.
type GraphResponse struct {
	ID              string   `msgpack:"id"`
	InputLength     int      `msgpack:"n"`
	Farthest        int      `msgpack:"f"`
	Vertices        []Vertex `msgpack:"v"`
	Edges           []Edge   `msgpack:"g"`
	AmbiguousJoints []int    `msgpack:"a"`
	Strict          bool     `msgpack:"s"`
	TimeTaken       int64    `msgpack:"t"`
}

// HealthResponse reports that the server is serving and what it loaded.
type HealthResponse struct {
	ID        string `msgpack:"id"`
	Status    string `msgpack:"status"`
	Syllables int    `msgpack:"syllables"`
	Keys      int    `msgpack:"keys"`
	Spellings int    `msgpack:"spellings"`
}

// ErrorResponse holds basic error information for a failed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
