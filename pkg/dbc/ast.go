package dbc

// The parse tree produced by parseFile mirrors spec.md §4.2's section
// sequence field-for-field. It is an intermediate representation only:
// the binder passes (binder.go, binder_*.go) consume it once and it is
// discarded — the object model in model.go is what outlives the parse
// (spec.md §5, "parse-tree memory is released after the binder completes").

type astFile struct {
	version                   *astVersion
	nodes                     []string
	valueTables               []astValueTable
	messages                  []astMessage
	environmentVariables      []astEnvVar
	environmentVariablesData  []astEnvVarData
	signalTypeRefs            []astSignalTypeRef
	comments                  []astComment
	attributeDefinitions      []astAttributeDefinition
	attributeDefaults         []astAttributeDefault
	attributeValues           []astAttributeValue
	valueDescriptions         []astValueDescription
	signalGroups              []astSignalGroup
}

type astVersion struct {
	text string
}

type astValuePair struct {
	value string // joined numeric text
	label string // unquoted label
}

type astValueTable struct {
	name    string
	entries []astValuePair
}

type astSignal struct {
	name        string
	multiplexor string // "" if signal carries no multiplexor indicator
	startBit    string
	size        string
	byteOrder   string // "0" or "1" (raw token, not yet decoded)
	sign        string // "+" or "-"
	factor      string
	offset      string
	hasMin      bool
	min         string
	hasMax      bool
	max         string
	unit        string
	receivers   []string
	line, col   int
}

type astMessage struct {
	id          string
	name        string
	size        string
	transmitter string
	signals     []astSignal
	line, col   int
}

type astEnvVar struct {
	name        string
	typeCode    string
	hasMin      bool
	min         string
	hasMax      bool
	max         string
	unit        string
	initValue   string
	id          string
	accessType  string
	accessNodes []string
	line, col   int
}

type astEnvVarData struct {
	name     string
	dataSize string
	line     int
	col      int
}

type astSignalTypeRef struct {
	messageID  string
	signalName string
	code       string
	line, col  int
}

type astComment struct {
	kind       string // "global", "node", "message", "signal", "envvar"
	nodeName   string
	messageID  string
	signalName string
	envVarName string
	text       string
	line, col  int
}

// astAttrTypeSpec is the raw (undecoded) form of an attribute schema's
// type specification: INT/HEX/FLOAT carry min/max, ENUM carries labels,
// STRING carries neither.
type astAttrTypeSpec struct {
	kind   string // "INT", "HEX", "FLOAT", "ENUM", "STRING"
	min    string
	max    string
	labels []string
}

type astAttributeDefinition struct {
	isRelation bool
	scopeToken string // "", "BU_", "BO_", "SG_", "EV_", "BU_BO_REL_", "BU_SG_REL_", "BU_EV_REL_"
	name       string
	typeSpec   astAttrTypeSpec
	line, col  int
}

// astValueToken is an attribute value before type-directed decoding: it is
// either a quoted string (raw including quotes) or a joined numeric token.
type astValueToken struct {
	isString bool
	raw      string
}

type astAttributeDefault struct {
	isRelation bool
	name       string
	value      astValueToken
	line, col  int
}

type astAttributeValue struct {
	isRelation bool
	name       string
	scope      string // "", "BU_", "BO_", "SG_", "EV_" (plain BA_)
	relScope   string // "BU_BO_REL_", "BU_SG_REL_", "BU_EV_REL_" (BA_REL_)
	nodeName   string // relation source node
	messageID  string
	signalName string
	envVarName string
	value      astValueToken
	line, col  int
}

type astValueDescription struct {
	isSignal   bool
	messageID  string
	signalName string
	envVarName string
	entries    []astValuePair
	line, col  int
}

type astSignalGroup struct {
	messageID   string
	name        string
	repetitions string
	signalNames []string
	line, col   int
}
