package dictionary

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
	"github.com/vmihailenco/msgpack/v5"
)

// Load reads a syllable table, picking the reader by file format.
func Load(path string) (*Table, error) {
	format, err := DetectFileFormat(path)
	if err != nil {
		return nil, err
	}
	log.Debugf("Loading %s from %s", format, path)

	var table *Table
	switch format {
	case FormatBinary:
		table, err = LoadBinary(path)
	case FormatMsgpack:
		table, err = LoadMsgpack(path)
	case FormatText:
		table, err = LoadText(path)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return nil, err
	}
	if table.Len() == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}
	return table, nil
}

// LoadText reads a text table from path.
func LoadText(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer file.Close()
	return ReadText(file)
}

// ReadText parses one syllable per line, optionally followed by a tab or
// space and a positive weight. Blank lines and lines starting with '#' are
// ignored. Credibility is the log of the weight relative to the heaviest row.
func ReadText(r io.Reader) (*Table, error) {
	var (
		texts   []string
		weights []float64
	)
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		weight := 1.0
		if len(fields) > 1 {
			w, err := strconv.ParseFloat(fields[1], 64)
			if err != nil || w <= 0 {
				log.Warnf("Skipping line %d: invalid weight %q", lineNo, fields[1])
				continue
			}
			weight = w
		}
		texts = append(texts, strings.ToLower(fields[0]))
		weights = append(weights, weight)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read text table: %w", err)
	}

	table := NewTable()
	for i, cred := range WeightsToCredibility(weights) {
		table.Add(texts[i], cred)
	}
	return table, nil
}

// LoadBinary maps a compiled table into memory and decodes it.
func LoadBinary(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table %s: %w", path, err)
	}
	defer file.Close()

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to map table %s: %w", path, err)
	}
	defer data.Unmap()

	table, err := ReadBinary(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode table %s: %w", path, err)
	}
	return table, nil
}

// ReadBinary decodes the compiled layout: a little-endian int32 count, then
// per syllable a uint16 length, the text bytes and a float64 credibility.
func ReadBinary(r io.Reader) (*Table, error) {
	reader := bufio.NewReader(r)

	var count int32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read table header: %w", err)
	}
	if count < 0 || count > maxSyllables {
		return nil, fmt.Errorf("invalid syllable count %d", count)
	}

	table := NewTable()
	for i := 0; i < int(count); i++ {
		var textLen uint16
		if err := binary.Read(reader, binary.LittleEndian, &textLen); err != nil {
			return nil, fmt.Errorf("failed to read length of syllable %d: %w", i, err)
		}
		text := make([]byte, textLen)
		if _, err := io.ReadFull(reader, text); err != nil {
			return nil, fmt.Errorf("failed to read syllable %d: %w", i, err)
		}
		var cred float64
		if err := binary.Read(reader, binary.LittleEndian, &cred); err != nil {
			return nil, fmt.Errorf("failed to read credibility of syllable %d: %w", i, err)
		}
		table.Add(string(text), cred)
	}
	return table, nil
}

// WriteBinary encodes table in the layout ReadBinary expects.
func WriteBinary(w io.Writer, table *Table) error {
	writer := bufio.NewWriter(w)
	if err := binary.Write(writer, binary.LittleEndian, int32(table.Len())); err != nil {
		return fmt.Errorf("failed to write table header: %w", err)
	}
	for _, s := range table.Syllables {
		if len(s.Text) > 0xFFFF {
			return fmt.Errorf("syllable %q is too long", s.Text)
		}
		if err := binary.Write(writer, binary.LittleEndian, uint16(len(s.Text))); err != nil {
			return err
		}
		if _, err := writer.WriteString(s.Text); err != nil {
			return err
		}
		if err := binary.Write(writer, binary.LittleEndian, s.Credibility); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// Compile writes table to path as a binary table.
func Compile(table *Table, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteBinary(file, table); err != nil {
		file.Close()
		return fmt.Errorf("failed to compile %s: %w", path, err)
	}
	return file.Close()
}

// LoadMsgpack decodes a msgpack table from path.
func LoadMsgpack(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", path, err)
	}
	table := NewTable()
	if err := msgpack.Unmarshal(data, table); err != nil {
		return nil, fmt.Errorf("failed to decode table %s: %w", path, err)
	}
	table.reindex()
	return table, nil
}

// SaveMsgpack encodes table to path.
func SaveMsgpack(table *Table, path string) error {
	data, err := msgpack.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode table: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
