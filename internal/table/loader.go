package table

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	apperrors "csvlate/cli/internal/errors"

	"golang.org/x/text/encoding/charmap"
)

// expectedColHints is the vocabulary a candidate header line is scored
// against. Two or more hits fix the header row, delimiter and encoding
// for the whole file.
var expectedColHints = map[string]bool{
	"name":              true,
	"description":       true,
	"short description": true,
	"regular price":     true,
	"sku":               true,
	"categories":        true,
	"images":            true,
}

var (
	defaultEncodings  = []string{"utf-8-sig", "utf-8", "cp1250", "latin1"}
	defaultDelimiters = []rune{',', ';', '\t', '|'}
)

// sniffLines caps how many physical lines header sniffing inspects.
const sniffLines = 100

// Load reads a delimited file into a Table. delim and encoding are
// optional overrides; when empty, both are detected. Detection runs in
// two phases: header sniffing against the expected column vocabulary,
// then a brute-force pass over every (encoding, delimiter) pair with
// delimiter inference tried first. Failure of every phase surfaces a
// FormatFailed error wrapping the last underlying parse error.
func Load(path, delim, encoding string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.FormatFailed, "cannot read input file", err)
	}

	encodings := defaultEncodings
	if encoding != "" {
		encodings = []string{encoding}
	}
	delims := defaultDelimiters
	if delim != "" {
		d, err := ParseDelimiter(delim)
		if err != nil {
			return nil, err
		}
		delims = []rune{d}
	}

	// Phase 1: locate the real header row.
	if hdr, sep, enc, ok := findHeader(data, encodings, delims); ok {
		if t, err := parse(data, enc, sep, hdr); err == nil {
			return t, nil
		}
		// A sniffed combination that fails to parse falls through to brute force.
	}

	// Phase 2: brute force over encoding x delimiter, inference first.
	// A parse that collapses to a single column under an inferred delimiter
	// is a failure in disguise, not a success.
	var lastErr error
	for _, enc := range encodings {
		for i := -1; i < len(delims); i++ {
			inferred := i < 0
			var sep rune
			if inferred {
				s, err := inferDelimiter(data, enc)
				if err != nil {
					lastErr = err
					continue
				}
				sep = s
			} else {
				sep = delims[i]
			}
			t, err := parse(data, enc, sep, 0)
			if err != nil {
				lastErr = err
				continue
			}
			if inferred && len(t.Columns) == 1 {
				continue
			}
			return t, nil
		}
	}
	return nil, apperrors.Wrap(apperrors.FormatFailed,
		"no viable (encoding, delimiter, header) combination found", lastErr)
}

// ParseDelimiter turns a user-supplied delimiter string into a rune.
// The literal escapes "\t" and the word "tab" mean a tab character.
func ParseDelimiter(s string) (rune, error) {
	switch s {
	case "\\t", "tab", "\t":
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, apperrors.New(apperrors.ConfigInvalid, "delimiter must be a single character: "+s)
	}
	return r, nil
}

// findHeader scans up to the first sniffLines lines of the file under each
// candidate encoding, scoring every (line, delimiter) split against the
// expected column vocabulary. The first combination scoring >=2 wins.
func findHeader(data []byte, encodings []string, delims []rune) (line int, sep rune, enc string, ok bool) {
	for _, e := range encodings {
		text, err := decode(data, e)
		if err != nil {
			continue
		}
		lines := strings.Split(text, "\n")
		if len(lines) > sniffLines {
			lines = lines[:sniffLines]
		}
		for i, l := range lines {
			l = strings.TrimRight(l, "\r")
			for _, s := range delims {
				score := 0
				for _, p := range strings.Split(l, string(s)) {
					p = strings.ToLower(strings.Trim(strings.TrimSpace(p), `"`))
					if expectedColHints[p] {
						score++
					}
				}
				if score >= 2 {
					return i, s, e, true
				}
			}
		}
	}
	return 0, 0, "", false
}

// inferDelimiter picks the candidate delimiter whose per-line occurrence
// count is non-zero and identical across the sampled lines, preferring the
// highest count when several qualify.
func inferDelimiter(data []byte, enc string) (rune, error) {
	text, err := decode(data, enc)
	if err != nil {
		return 0, err
	}
	var sample []string
	for _, l := range strings.Split(text, "\n") {
		l = strings.TrimRight(l, "\r")
		if strings.TrimSpace(l) == "" {
			continue
		}
		sample = append(sample, l)
		if len(sample) == 10 {
			break
		}
	}
	if len(sample) == 0 {
		return 0, fmt.Errorf("empty input")
	}
	best, bestCount := rune(0), 0
	for _, s := range defaultDelimiters {
		count := strings.Count(sample[0], string(s))
		if count == 0 {
			continue
		}
		consistent := true
		for _, l := range sample[1:] {
			if strings.Count(l, string(s)) != count {
				consistent = false
				break
			}
		}
		if consistent && count > bestCount {
			best, bestCount = s, count
		}
	}
	if bestCount == 0 {
		return 0, fmt.Errorf("cannot infer delimiter")
	}
	return best, nil
}

// decode converts raw file bytes to a string under the named encoding.
// UTF-8 variants are strict so that brute force can fall through to the
// legacy 8-bit encodings, which accept any byte sequence.
func decode(data []byte, name string) (string, error) {
	switch canonicalEncoding(name) {
	case "utf-8-sig":
		data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
		if !utf8.Valid(data) {
			return "", fmt.Errorf("input is not valid UTF-8")
		}
		return string(data), nil
	case "utf-8":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("input is not valid UTF-8")
		}
		return string(data), nil
	case "cp1250":
		out, err := charmap.Windows1250.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	case "latin1":
		out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		return string(out), nil
	default:
		return "", fmt.Errorf("unsupported encoding %q", name)
	}
}

// canonicalEncoding folds common aliases onto the supported encoding names.
func canonicalEncoding(name string) string {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8-sig", "utf8-sig":
		return "utf-8-sig"
	case "utf-8", "utf8":
		return "utf-8"
	case "cp1250", "windows-1250", "win1250":
		return "cp1250"
	case "latin1", "latin-1", "iso-8859-1":
		return "latin1"
	default:
		return strings.ToLower(strings.TrimSpace(name))
	}
}

// parse builds a Table from the decoded file, treating headerLine as the
// physical line index of the header row. Lines before the header are
// metadata and are discarded without parsing.
func parse(data []byte, enc string, sep rune, headerLine int) (*Table, error) {
	text, err := decode(data, enc)
	if err != nil {
		return nil, err
	}
	if headerLine > 0 {
		parts := strings.SplitAfterN(text, "\n", headerLine+1)
		if len(parts) <= headerLine {
			return nil, fmt.Errorf("header line %d beyond end of file", headerLine)
		}
		text = parts[headerLine]
	}
	records, err := parseRecords(text, sep)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no records in input")
	}

	header := uniqueNames(records[0])
	rows := make([]Row, 0, len(records)-1)
	for n, rec := range records[1:] {
		if len(rec) > len(header) {
			return nil, fmt.Errorf("record %d has %d fields, header has %d", n+2, len(rec), len(header))
		}
		row := make(Row, len(header))
		for i, name := range header {
			if i < len(rec) {
				row[name] = rec[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return &Table{Columns: header, Rows: rows}, nil
}

// uniqueNames disambiguates duplicate header names by appending .1, .2, ...
func uniqueNames(names []string) []string {
	seen := make(map[string]int, len(names))
	out := make([]string, len(names))
	for i, n := range names {
		n = strings.TrimSpace(n)
		if c, dup := seen[n]; dup {
			seen[n] = c + 1
			n = fmt.Sprintf("%s.%d", n, c)
		} else {
			seen[n] = 1
		}
		out[i] = n
	}
	return out
}

// parseRecords splits decoded text into records. Quoted fields may contain
// the delimiter and newlines; a doubled quote inside a quoted field is a
// literal quote; a backslash escapes the next character anywhere. Ragged
// quoting is a hard failure for the whole parse.
func parseRecords(text string, sep rune) ([][]string, error) {
	const (
		fieldStart = iota
		inUnquoted
		inQuoted
		afterQuoted
	)

	var (
		records [][]string
		fields  []string
		field   strings.Builder
		state   = fieldStart
	)
	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
		state = fieldStart
	}
	endRecord := func() {
		endField()
		records = append(records, fields)
		fields = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch == '\r' && state != inQuoted {
			if i+1 < len(runes) && runes[i+1] == '\n' {
				continue
			}
			ch = '\n'
		}
		switch state {
		case fieldStart:
			switch {
			case ch == '"':
				state = inQuoted
			case ch == sep:
				endField()
			case ch == '\n':
				if len(fields) == 0 {
					continue // blank line
				}
				endRecord()
			case ch == '\\':
				if i+1 < len(runes) {
					i++
					field.WriteRune(runes[i])
				} else {
					field.WriteRune(ch)
				}
				state = inUnquoted
			default:
				field.WriteRune(ch)
				state = inUnquoted
			}
		case inUnquoted:
			switch {
			case ch == sep:
				endField()
			case ch == '\n':
				endRecord()
			case ch == '\\':
				if i+1 < len(runes) {
					i++
					field.WriteRune(runes[i])
				} else {
					field.WriteRune(ch)
				}
			default:
				// A quote in the middle of an unquoted field is a literal.
				field.WriteRune(ch)
			}
		case inQuoted:
			switch {
			case ch == '\\':
				if i+1 < len(runes) {
					i++
					field.WriteRune(runes[i])
				} else {
					field.WriteRune(ch)
				}
			case ch == '"':
				if i+1 < len(runes) && runes[i+1] == '"' {
					field.WriteRune('"')
					i++
				} else {
					state = afterQuoted
				}
			default:
				field.WriteRune(ch)
			}
		case afterQuoted:
			switch {
			case ch == sep:
				endField()
			case ch == '\n':
				endRecord()
			default:
				return nil, fmt.Errorf("malformed quoting in record %d", len(records)+1)
			}
		}
	}

	if state == inQuoted {
		return nil, fmt.Errorf("unterminated quoted field at end of input")
	}
	if field.Len() > 0 || len(fields) > 0 || state == afterQuoted {
		endRecord()
	}
	return records, nil
}
