package dbc

import "strings"

// parser turns a token stream into an *astFile following the canonical
// section order of spec.md §4.2:
//
//	version? ns_section? bs_section nodes value_tables messages
//	message_transmitters environment_variables environment_variables_data
//	signal_types signal_type_refs comments attribute_definitions
//	attribute_defaults attribute_values value_descriptions signal_groups
type parser struct {
	lex  *lexer
	tok  token
	prev token
}

func newParser(src string) (*parser, error) {
	p := &parser{lex: newLexer(src)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) advance() error {
	p.prev = p.tok
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) atEOF() bool { return p.tok.kind == tokEOF }

func (p *parser) identIs(text string) bool {
	return p.tok.kind == tokIdent && p.tok.text == text
}

func (p *parser) punctIs(ch byte) bool {
	return p.tok.kind == tokPunct && len(p.tok.text) == 1 && p.tok.text[0] == ch
}

// adjacentToPrev reports whether the current token immediately follows the
// previously consumed token with no intervening bytes (used to tell a
// number's fractional part / exponent apart from an unrelated next token).
func (p *parser) adjacentToPrev() bool {
	return p.tok.start == p.prev.end
}

func (p *parser) expectIdent(text string) error {
	if !p.identIs(text) {
		return newSyntaxError(p.tok.line, p.tok.col, "expected %q, got %q", text, p.tok.text)
	}
	return p.advance()
}

func (p *parser) expectPunct(ch byte) error {
	if !p.punctIs(ch) {
		return newSyntaxError(p.tok.line, p.tok.col, "expected %q, got %q", string(ch), p.tok.text)
	}
	return p.advance()
}

// readIdent consumes and returns any identifier token.
func (p *parser) readIdent() (string, error) {
	if p.tok.kind != tokIdent {
		return "", newSyntaxError(p.tok.line, p.tok.col, "expected identifier, got %q", p.tok.text)
	}
	text := p.tok.text
	return text, p.advance()
}

// readString consumes and returns a quoted string token's raw text
// (including quotes — callers apply readCharString to unquote).
func (p *parser) readString() (string, error) {
	if p.tok.kind != tokString {
		return "", newSyntaxError(p.tok.line, p.tok.col, "expected string literal, got %q", p.tok.text)
	}
	text := p.tok.text
	return text, p.advance()
}

// isDigitIdent reports whether the current token is an identifier made
// entirely of ASCII digits (a bare integer fragment).
func (p *parser) isDigitIdent() bool {
	if p.tok.kind != tokIdent || p.tok.text == "" {
		return false
	}
	for i := 0; i < len(p.tok.text); i++ {
		if p.tok.text[i] < '0' || p.tok.text[i] > '9' {
			return false
		}
	}
	return true
}

// splitExponentMarker splits a digit-led identifier token into its leading
// digit run and an embedded exponent marker, if any. The lexer glues a
// following 'e'/'E' (and any digits immediately after it) onto the same
// token, since both are identifier bytes to it; only a sign would split
// them into a separate token, since '+'/'-' are punctuation.
func splitExponentMarker(s string) (digits, expPart string) {
	for i := 1; i < len(s); i++ {
		if s[i] == 'e' || s[i] == 'E' {
			return s[:i], s[i:]
		}
	}
	return s, ""
}

func isDigitByte(b byte) bool {
	return b >= '0' && b <= '9'
}

// readNumber scans a compound numeric token by concatenating adjacent
// lexical fragments: optional sign, digits, optional '.' + digits,
// optional exponent. This mirrors read_int/read_float in
// original_source/parser_tatsu.py, which join the leaf fragments a PEG
// grammar produces for a single NUMBER production; our lexer does not
// special-case numbers, so the parser reassembles them the same way. The
// wrinkle our lexer adds over a PEG one: digits and letters are both
// identifier bytes, so "1e5" arrives as a single token and "1e-3" arrives
// as "1e", "-", "3" — splitExponentMarker peels the marker off whichever
// fragment carries it.
func (p *parser) readNumber(allowSign bool) (string, error) {
	var b strings.Builder
	line, col := p.tok.line, p.tok.col

	if allowSign && (p.punctIs('+') || p.punctIs('-')) {
		b.WriteString(p.tok.text)
		if err := p.advance(); err != nil {
			return "", err
		}
	}

	if p.tok.kind != tokIdent || p.tok.text == "" || !isDigitByte(p.tok.text[0]) {
		return "", newSyntaxError(line, col, "expected number, got %q", p.tok.text)
	}
	digits, expPart := splitExponentMarker(p.tok.text)
	b.WriteString(digits)
	if err := p.advance(); err != nil {
		return "", err
	}

	if expPart == "" && p.punctIs('.') && p.adjacentToPrev() {
		b.WriteString(".")
		if err := p.advance(); err != nil {
			return "", err
		}
		if p.tok.kind == tokIdent && p.adjacentToPrev() && len(p.tok.text) > 0 && isDigitByte(p.tok.text[0]) {
			var fracDigits string
			fracDigits, expPart = splitExponentMarker(p.tok.text)
			b.WriteString(fracDigits)
			if err := p.advance(); err != nil {
				return "", err
			}
		}
	}

	if expPart == "" && p.tok.kind == tokIdent && p.adjacentToPrev() && len(p.tok.text) > 0 &&
		(p.tok.text[0] == 'e' || p.tok.text[0] == 'E') {
		expPart = p.tok.text
		if err := p.advance(); err != nil {
			return "", err
		}
	}

	if expPart != "" {
		b.WriteString(expPart)
		if len(expPart) == 1 {
			if (p.punctIs('+') || p.punctIs('-')) && p.adjacentToPrev() {
				b.WriteString(p.tok.text)
				if err := p.advance(); err != nil {
					return "", err
				}
			}
			if p.isDigitIdent() && p.adjacentToPrev() {
				b.WriteString(p.tok.text)
				if err := p.advance(); err != nil {
					return "", err
				}
			}
		}
	}

	return b.String(), nil
}

// skipStatement consumes tokens up to and including the next top-level
// ';' terminator. It is used for sections the data model does not carry
// (message_transmitters / signal_types) which the grammar recognizes
// syntactically but which original_source/parser_tatsu.py never binds
// into the DbcFile either.
func (p *parser) skipStatement() error {
	for !p.atEOF() && !p.punctIs(';') {
		if err := p.advance(); err != nil {
			return err
		}
	}
	if p.punctIs(';') {
		return p.advance()
	}
	return nil
}

// topLevelKeywords is the closed set of identifiers that can start a
// top-level statement after the node list, used to decide when an
// identifier list (like BU_'s node names) has ended.
var topLevelKeywords = map[string]bool{
	"VAL_TABLE_": true, "BO_": true, "BO_TX_BU_": true, "EV_": true,
	"ENVVAR_DATA_": true, "SGTYPE_": true, "SIG_VALTYPE_": true, "CM_": true,
	"BA_DEF_": true, "BA_DEF_REL_": true, "BA_DEF_DEF_": true, "BA_DEF_DEF_REL_": true,
	"BA_": true, "BA_REL_": true, "VAL_": true, "SIG_GROUP_": true,
}

func parseFile(src string) (*astFile, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	f := &astFile{}

	if p.identIs("VERSION") {
		v, err := p.parseVersion()
		if err != nil {
			return nil, err
		}
		f.version = v
	}

	if p.identIs("NS_") {
		if err := p.parseNS(); err != nil {
			return nil, err
		}
	}

	if err := p.parseBS(); err != nil {
		return nil, err
	}

	nodes, err := p.parseNodes()
	if err != nil {
		return nil, err
	}
	f.nodes = nodes

	for p.identIs("VAL_TABLE_") {
		vt, err := p.parseValueTable()
		if err != nil {
			return nil, err
		}
		f.valueTables = append(f.valueTables, *vt)
	}

	for p.identIs("BO_") {
		m, err := p.parseMessage()
		if err != nil {
			return nil, err
		}
		f.messages = append(f.messages, *m)
	}

	for p.identIs("BO_TX_BU_") {
		if err := p.skipStatement(); err != nil {
			return nil, err
		}
	}

	for p.identIs("EV_") {
		ev, err := p.parseEnvVar()
		if err != nil {
			return nil, err
		}
		f.environmentVariables = append(f.environmentVariables, *ev)
	}

	for p.identIs("ENVVAR_DATA_") {
		evd, err := p.parseEnvVarData()
		if err != nil {
			return nil, err
		}
		f.environmentVariablesData = append(f.environmentVariablesData, *evd)
	}

	for p.identIs("SGTYPE_") {
		if err := p.skipStatement(); err != nil {
			return nil, err
		}
	}

	for p.identIs("SIG_VALTYPE_") {
		st, err := p.parseSignalTypeRef()
		if err != nil {
			return nil, err
		}
		f.signalTypeRefs = append(f.signalTypeRefs, *st)
	}

	for p.identIs("CM_") {
		c, err := p.parseComment()
		if err != nil {
			return nil, err
		}
		f.comments = append(f.comments, *c)
	}

	for p.identIs("BA_DEF_") || p.identIs("BA_DEF_REL_") {
		ad, err := p.parseAttributeDefinition()
		if err != nil {
			return nil, err
		}
		f.attributeDefinitions = append(f.attributeDefinitions, *ad)
	}

	for p.identIs("BA_DEF_DEF_") || p.identIs("BA_DEF_DEF_REL_") {
		ad, err := p.parseAttributeDefault()
		if err != nil {
			return nil, err
		}
		f.attributeDefaults = append(f.attributeDefaults, *ad)
	}

	for p.identIs("BA_") || p.identIs("BA_REL_") {
		av, err := p.parseAttributeValue()
		if err != nil {
			return nil, err
		}
		f.attributeValues = append(f.attributeValues, *av)
	}

	for p.identIs("VAL_") {
		vd, err := p.parseValueDescription()
		if err != nil {
			return nil, err
		}
		f.valueDescriptions = append(f.valueDescriptions, *vd)
	}

	for p.identIs("SIG_GROUP_") {
		sg, err := p.parseSignalGroup()
		if err != nil {
			return nil, err
		}
		f.signalGroups = append(f.signalGroups, *sg)
	}

	if !p.atEOF() {
		return nil, newSyntaxError(p.tok.line, p.tok.col, "unexpected token %q", p.tok.text)
	}

	return f, nil
}

func (p *parser) parseVersion() (*astVersion, error) {
	if err := p.expectIdent("VERSION"); err != nil {
		return nil, err
	}
	s, err := p.readString()
	if err != nil {
		return nil, err
	}
	return &astVersion{text: s}, nil
}

// parseNS tolerantly consumes the NS_ section: any run of tokens up to the
// next section keyword (BS_), per spec.md §4.2. This is what lets a typo
// like EV_DATA (missing trailing underscore) inside the NS_ block parse
// without error.
func (p *parser) parseNS() error {
	if err := p.expectIdent("NS_"); err != nil {
		return err
	}
	if err := p.expectPunct(':'); err != nil {
		return err
	}
	for !p.atEOF() && !p.identIs("BS_") {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

// parseBS consumes the (almost always empty) "BS_:" bus-speed section.
func (p *parser) parseBS() error {
	if err := p.expectIdent("BS_"); err != nil {
		return err
	}
	if err := p.expectPunct(':'); err != nil {
		return err
	}
	for !p.atEOF() && !p.identIs("BU_") {
		if err := p.advance(); err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) parseNodes() ([]string, error) {
	if err := p.expectIdent("BU_"); err != nil {
		return nil, err
	}
	if err := p.expectPunct(':'); err != nil {
		return nil, err
	}
	var names []string
	for p.tok.kind == tokIdent && !topLevelKeywords[p.tok.text] {
		names = append(names, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func (p *parser) parseValueTable() (*astValueTable, error) {
	if err := p.expectIdent("VAL_TABLE_"); err != nil {
		return nil, err
	}
	name, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	entries, err := p.parseValuePairs()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return &astValueTable{name: name, entries: entries}, nil
}

// parseValuePairs reads a run of "<number> <quoted_string>" pairs, used by
// both VAL_TABLE_ and VAL_.
func (p *parser) parseValuePairs() ([]astValuePair, error) {
	var entries []astValuePair
	for p.isDigitIdent() || p.punctIs('+') || p.punctIs('-') {
		v, err := p.readNumber(true)
		if err != nil {
			return nil, err
		}
		label, err := p.readString()
		if err != nil {
			return nil, err
		}
		entries = append(entries, astValuePair{value: v, label: readCharString(label)})
	}
	return entries, nil
}

func (p *parser) parseMessage() (*astMessage, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("BO_"); err != nil {
		return nil, err
	}
	id, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	name, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(':'); err != nil {
		return nil, err
	}
	size, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	transmitter, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	m := &astMessage{id: id, name: name, size: size, transmitter: transmitter, line: line, col: col}
	for p.identIs("SG_") {
		s, err := p.parseSignal()
		if err != nil {
			return nil, err
		}
		m.signals = append(m.signals, *s)
	}
	return m, nil
}

func (p *parser) parseSignal() (*astSignal, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("SG_"); err != nil {
		return nil, err
	}
	name, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	s := &astSignal{name: name, line: line, col: col}

	// optional multiplexor indicator ("M" or "m<digits>"), recognized
	// syntactically only (spec.md Non-goals: no multiplexor resolution
	// beyond syntactic recognition). The grammar places at most one
	// identifier between the signal name and the start-bit ':', so any
	// identifier token here can only be the multiplexor.
	if p.tok.kind == tokIdent {
		s.multiplexor = p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if err := p.expectPunct(':'); err != nil {
		return nil, err
	}
	startBit, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	s.startBit = startBit
	if err := p.expectPunct('|'); err != nil {
		return nil, err
	}
	size, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	s.size = size
	if err := p.expectPunct('@'); err != nil {
		return nil, err
	}
	byteOrder, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	s.byteOrder = byteOrder
	if p.punctIs('+') {
		s.sign = "+"
	} else if p.punctIs('-') {
		s.sign = "-"
	} else {
		return nil, newSyntaxError(p.tok.line, p.tok.col, "expected signal sign '+' or '-', got %q", p.tok.text)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}

	if err := p.expectPunct('('); err != nil {
		return nil, err
	}
	factor, err := p.readNumber(true)
	if err != nil {
		return nil, err
	}
	s.factor = factor
	if err := p.expectPunct(','); err != nil {
		return nil, err
	}
	offset, err := p.readNumber(true)
	if err != nil {
		return nil, err
	}
	s.offset = offset
	if err := p.expectPunct(')'); err != nil {
		return nil, err
	}

	if err := p.expectPunct('['); err != nil {
		return nil, err
	}
	if !p.punctIs('|') {
		min, err := p.readNumber(true)
		if err != nil {
			return nil, err
		}
		s.min, s.hasMin = min, true
	}
	if err := p.expectPunct('|'); err != nil {
		return nil, err
	}
	if !p.punctIs(']') {
		max, err := p.readNumber(true)
		if err != nil {
			return nil, err
		}
		s.max, s.hasMax = max, true
	}
	if err := p.expectPunct(']'); err != nil {
		return nil, err
	}

	unit, err := p.readString()
	if err != nil {
		return nil, err
	}
	s.unit = readCharString(unit)

	receivers, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	s.receivers = receivers

	return s, nil
}

func (p *parser) parseIdentList() ([]string, error) {
	first, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	names := []string{first}
	for p.punctIs(',') {
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, nil
}

func (p *parser) parseEnvVar() (*astEnvVar, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("EV_"); err != nil {
		return nil, err
	}
	name, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(':'); err != nil {
		return nil, err
	}
	typeCode, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	ev := &astEnvVar{name: name, typeCode: typeCode, line: line, col: col}

	if err := p.expectPunct('['); err != nil {
		return nil, err
	}
	min, err := p.readNumber(true)
	if err != nil {
		return nil, err
	}
	ev.min, ev.hasMin = min, true
	if err := p.expectPunct('|'); err != nil {
		return nil, err
	}
	max, err := p.readNumber(true)
	if err != nil {
		return nil, err
	}
	ev.max, ev.hasMax = max, true
	if err := p.expectPunct(']'); err != nil {
		return nil, err
	}

	unit, err := p.readString()
	if err != nil {
		return nil, err
	}
	ev.unit = readCharString(unit)

	initValue, err := p.readNumber(true)
	if err != nil {
		return nil, err
	}
	ev.initValue = initValue

	id, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	ev.id = id

	accessType, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	ev.accessType = accessType

	accessNodes, err := p.parseIdentList()
	if err != nil {
		return nil, err
	}
	ev.accessNodes = accessNodes

	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return ev, nil
}

func (p *parser) parseEnvVarData() (*astEnvVarData, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("ENVVAR_DATA_"); err != nil {
		return nil, err
	}
	name, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(':'); err != nil {
		return nil, err
	}
	size, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return &astEnvVarData{name: name, dataSize: size, line: line, col: col}, nil
}

func (p *parser) parseSignalTypeRef() (*astSignalTypeRef, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("SIG_VALTYPE_"); err != nil {
		return nil, err
	}
	msgID, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	sigName, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(':'); err != nil {
		return nil, err
	}
	code, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return &astSignalTypeRef{messageID: msgID, signalName: sigName, code: code, line: line, col: col}, nil
}

func (p *parser) parseComment() (*astComment, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("CM_"); err != nil {
		return nil, err
	}
	c := &astComment{line: line, col: col}
	switch {
	case p.identIs("BU_"):
		c.kind = "node"
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		c.nodeName = n
	case p.identIs("BO_"):
		c.kind = "message"
		if err := p.advance(); err != nil {
			return nil, err
		}
		id, err := p.readNumber(false)
		if err != nil {
			return nil, err
		}
		c.messageID = id
	case p.identIs("SG_"):
		c.kind = "signal"
		if err := p.advance(); err != nil {
			return nil, err
		}
		id, err := p.readNumber(false)
		if err != nil {
			return nil, err
		}
		c.messageID = id
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		c.signalName = n
	case p.identIs("EV_"):
		c.kind = "envvar"
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		c.envVarName = n
	default:
		c.kind = "global"
	}
	text, err := p.readString()
	if err != nil {
		return nil, err
	}
	c.text = readCharString(text)
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return c, nil
}

func (p *parser) parseAttrTypeSpec() (astAttrTypeSpec, error) {
	kind, err := p.readIdent()
	if err != nil {
		return astAttrTypeSpec{}, err
	}
	switch kind {
	case "INT", "HEX", "FLOAT":
		min, err := p.readNumber(true)
		if err != nil {
			return astAttrTypeSpec{}, err
		}
		max, err := p.readNumber(true)
		if err != nil {
			return astAttrTypeSpec{}, err
		}
		return astAttrTypeSpec{kind: kind, min: min, max: max}, nil
	case "ENUM":
		var labels []string
		for p.tok.kind == tokString {
			s, err := p.readString()
			if err != nil {
				return astAttrTypeSpec{}, err
			}
			labels = append(labels, readCharString(s))
			if p.punctIs(',') {
				if err := p.advance(); err != nil {
					return astAttrTypeSpec{}, err
				}
			} else {
				break
			}
		}
		return astAttrTypeSpec{kind: kind, labels: labels}, nil
	case "STRING":
		return astAttrTypeSpec{kind: kind}, nil
	default:
		return astAttrTypeSpec{}, newSyntaxError(p.tok.line, p.tok.col, "unknown attribute type %q", kind)
	}
}

func (p *parser) parseAttributeDefinition() (*astAttributeDefinition, error) {
	line, col := p.tok.line, p.tok.col
	isRelation := p.identIs("BA_DEF_REL_")
	if isRelation {
		if err := p.expectIdent("BA_DEF_REL_"); err != nil {
			return nil, err
		}
	} else {
		if err := p.expectIdent("BA_DEF_"); err != nil {
			return nil, err
		}
	}

	// A scope token (BU_, BO_, SG_, EV_, BU_BO_REL_, BU_SG_REL_, BU_EV_REL_)
	// is present only when absent a GLOBAL schema goes straight to the
	// quoted attribute-name string.
	var scopeToken string
	if p.tok.kind == tokIdent {
		scopeToken = p.tok.text
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	nameTok, err := p.readString()
	if err != nil {
		return nil, err
	}
	typeSpec, err := p.parseAttrTypeSpec()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return &astAttributeDefinition{
		isRelation: isRelation,
		scopeToken: scopeToken,
		name:       readCharString(nameTok),
		typeSpec:   typeSpec,
		line:       line, col: col,
	}, nil
}

func (p *parser) parseAttributeDefault() (*astAttributeDefault, error) {
	line, col := p.tok.line, p.tok.col
	isRelation := p.identIs("BA_DEF_DEF_REL_")
	if isRelation {
		if err := p.expectIdent("BA_DEF_DEF_REL_"); err != nil {
			return nil, err
		}
	} else {
		if err := p.expectIdent("BA_DEF_DEF_"); err != nil {
			return nil, err
		}
	}
	nameTok, err := p.readString()
	if err != nil {
		return nil, err
	}
	value, err := p.parseAttrValueToken()
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return &astAttributeDefault{isRelation: isRelation, name: readCharString(nameTok), value: value, line: line, col: col}, nil
}

// parseAttrValueToken reads either a quoted string or a signed number,
// without yet knowing the schema's declared type (decoding against the
// schema happens in the binder, per spec.md §4.3's "Value decoding is
// driven by the schema's value_type").
func (p *parser) parseAttrValueToken() (astValueToken, error) {
	if p.tok.kind == tokString {
		s, err := p.readString()
		if err != nil {
			return astValueToken{}, err
		}
		return astValueToken{isString: true, raw: s}, nil
	}
	n, err := p.readNumber(true)
	if err != nil {
		return astValueToken{}, err
	}
	return astValueToken{isString: false, raw: n}, nil
}

func (p *parser) parseAttributeValue() (*astAttributeValue, error) {
	line, col := p.tok.line, p.tok.col
	isRelation := p.identIs("BA_REL_")
	if isRelation {
		if err := p.expectIdent("BA_REL_"); err != nil {
			return nil, err
		}
	} else {
		if err := p.expectIdent("BA_"); err != nil {
			return nil, err
		}
	}
	nameTok, err := p.readString()
	if err != nil {
		return nil, err
	}
	av := &astAttributeValue{isRelation: isRelation, name: readCharString(nameTok), line: line, col: col}

	if isRelation {
		relScope, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		av.relScope = relScope
		nodeName, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		av.nodeName = nodeName
		switch relScope {
		case "BU_BO_REL_":
			if err := p.expectIdent("BO_"); err != nil {
				return nil, err
			}
			id, err := p.readNumber(false)
			if err != nil {
				return nil, err
			}
			av.messageID = id
		case "BU_SG_REL_":
			if err := p.expectIdent("SG_"); err != nil {
				return nil, err
			}
			id, err := p.readNumber(false)
			if err != nil {
				return nil, err
			}
			av.messageID = id
			sigName, err := p.readIdent()
			if err != nil {
				return nil, err
			}
			av.signalName = sigName
		case "BU_EV_REL_":
			if err := p.expectIdent("EV_"); err != nil {
				return nil, err
			}
			evName, err := p.readIdent()
			if err != nil {
				return nil, err
			}
			av.envVarName = evName
		default:
			return nil, newSyntaxError(line, col, "unknown relation scope %q", relScope)
		}
	} else if p.identIs("BU_") {
		av.scope = "BU_"
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		av.nodeName = n
	} else if p.identIs("BO_") {
		av.scope = "BO_"
		if err := p.advance(); err != nil {
			return nil, err
		}
		id, err := p.readNumber(false)
		if err != nil {
			return nil, err
		}
		av.messageID = id
	} else if p.identIs("SG_") {
		av.scope = "SG_"
		if err := p.advance(); err != nil {
			return nil, err
		}
		id, err := p.readNumber(false)
		if err != nil {
			return nil, err
		}
		av.messageID = id
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		av.signalName = n
	} else if p.identIs("EV_") {
		av.scope = "EV_"
		if err := p.advance(); err != nil {
			return nil, err
		}
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		av.envVarName = n
	}

	value, err := p.parseAttrValueToken()
	if err != nil {
		return nil, err
	}
	av.value = value
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return av, nil
}

func (p *parser) parseValueDescription() (*astValueDescription, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("VAL_"); err != nil {
		return nil, err
	}
	vd := &astValueDescription{line: line, col: col}
	if p.identIs("BO_") {
		// Some exporters prefix VAL_ signal references with "BO_" even
		// though canonical DBC omits it; tolerate either form.
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if p.isDigitIdent() {
		vd.isSignal = true
		id, err := p.readNumber(false)
		if err != nil {
			return nil, err
		}
		vd.messageID = id
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		vd.signalName = n
	} else {
		n, err := p.readIdent()
		if err != nil {
			return nil, err
		}
		vd.envVarName = n
	}
	entries, err := p.parseValuePairs()
	if err != nil {
		return nil, err
	}
	vd.entries = entries
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return vd, nil
}

func (p *parser) parseSignalGroup() (*astSignalGroup, error) {
	line, col := p.tok.line, p.tok.col
	if err := p.expectIdent("SIG_GROUP_"); err != nil {
		return nil, err
	}
	msgID, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	name, err := p.readIdent()
	if err != nil {
		return nil, err
	}
	repetitions, err := p.readNumber(false)
	if err != nil {
		return nil, err
	}
	if err := p.expectPunct(':'); err != nil {
		return nil, err
	}
	var signalNames []string
	for p.tok.kind == tokIdent {
		signalNames = append(signalNames, p.tok.text)
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	if err := p.expectPunct(';'); err != nil {
		return nil, err
	}
	return &astSignalGroup{messageID: msgID, name: name, repetitions: repetitions, signalNames: signalNames, line: line, col: col}, nil
}
