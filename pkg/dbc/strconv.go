package dbc

import "strconv"

// readCharString strips the surrounding quotes from a raw string token.
// Escapes are never interpreted (spec.md §4.1): the text between the
// quotes is taken verbatim, mirroring original_source/parser_tatsu.py's
// read_char_string, which does the same stripping with no unescaping.
func readCharString(raw string) string {
	if len(raw) >= 2 && raw[0] == '"' && raw[len(raw)-1] == '"' {
		return raw[1 : len(raw)-1]
	}
	return raw
}

// parseSignedInt parses a joined numeric token (as produced by
// parser.readNumber) as a base-10 integer.
func parseSignedInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

// parseFloat parses a joined numeric token as a float64, accepting the
// integer-only form DBC uses interchangeably with decimal notation.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseValueCode parses a value-table/value-description numeric code.
// These are integers in canonical DBC, but some exporters write them with
// a trailing ".0"; tolerate that form by falling back to a float parse.
func parseValueCode(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
