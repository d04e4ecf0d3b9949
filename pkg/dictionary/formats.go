package dictionary

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnknownFormat is returned when a file matches no supported format.
var ErrUnknownFormat = errors.New("dictionary: unknown file format")

// FileFormat represents different syllable table file formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatBinary             // Compiled binary table
	FormatMsgpack            // msgpack encoded table
	FormatText               // Plain text table
)

// maxSyllables bounds the count header of binary tables.
const maxSyllables = 1 << 20

// FormatInfo contains metadata about a table file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatBinary: {
		Format:      FormatBinary,
		Description: "Binary Syllable Table",
		Extensions:  []string{".bin"},
		MinSize:     4, // count header
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Description: "Msgpack Syllable Table",
		Extensions:  []string{".mpk", ".msgpack"},
		MinSize:     1,
	},
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Syllable Table",
		Extensions:  []string{".txt"},
		MinSize:     1, // At least one character
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}

	formatInfo, exists := supportedFormats[expectedFormat]
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	validExt := false
	for _, validExtension := range formatInfo.Extensions {
		if ext == validExtension {
			validExt = true
			break
		}
	}
	if !validExt {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	if expectedFormat == FormatBinary {
		return validateBinaryFormat(filename)
	}
	return nil
}

// validateBinaryFormat checks the count header of a binary table
func validateBinaryFormat(filename string) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	var count int32
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("failed to read header from %s: %w", filename, err)
	}
	if count < 0 {
		return fmt.Errorf("invalid syllable count in %s: %d (negative)", filename, count)
	}
	if count > maxSyllables {
		return fmt.Errorf("suspicious syllable count in %s: %d (too large)", filename, count)
	}

	log.Debugf("Binary table %s validated: %d syllables", filename, count)
	return nil
}

// DetectFileFormat attempts to detect the format of a file
func DetectFileFormat(filename string) (FileFormat, error) {
	for _, format := range []FileFormat{FormatBinary, FormatMsgpack, FormatText} {
		if err := ValidateFileFormat(filename, format); err == nil {
			return format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}
