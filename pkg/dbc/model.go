package dbc

// ByteOrder is a signal's multiplexed-byte transmission order. Source
// token "0" means LITTLE_ENDIAN, "1" means BIG_ENDIAN, per
// original_source/parser_tatsu.py's read_byte_order.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func decodeByteOrder(tok string, line, col int) (ByteOrder, error) {
	switch tok {
	case "0":
		return LittleEndian, nil
	case "1":
		return BigEndian, nil
	default:
		return 0, newUnexpectedToken(line, col, "unknown byte order token %q", tok)
	}
}

// SignalValueType is a signal's interpretation of its raw bits: the sign
// convention from the '+'/'-' token, later overridable to a float kind by
// a SIG_VALTYPE_ statement (pass 10).
type SignalValueType int

const (
	Unsigned SignalValueType = iota
	Signed
	Float32
	Float64
)

func decodeSignalSign(tok string, line, col int) (SignalValueType, error) {
	switch tok {
	case "+":
		return Unsigned, nil
	case "-":
		return Signed, nil
	default:
		return 0, newUnexpectedToken(line, col, "unknown signal sign token %q", tok)
	}
}

// EnvironmentVariableType is an environment variable's declared kind.
// DATA is never produced by the EV_ type code itself; it is only reached
// via promotion from an ENVVAR_DATA_ statement (pass 6).
type EnvironmentVariableType int

const (
	EnvInteger EnvironmentVariableType = iota
	EnvFloat
	EnvString
	EnvData
)

func decodeEnvVarType(tok string, line, col int) (EnvironmentVariableType, error) {
	switch tok {
	case "0":
		return EnvInteger, nil
	case "1":
		return EnvFloat, nil
	case "2":
		return EnvString, nil
	default:
		return 0, newUnexpectedToken(line, col, "unknown environment variable type code %q", tok)
	}
}

// EnvironmentVariableAccessType is an environment variable's access
// restriction, decoded from the closed DUMMY_NODE_VECTOR* token set.
type EnvironmentVariableAccessType int

const (
	Unrestricted EnvironmentVariableAccessType = iota
	ReadOnly
	WriteOnly
	ReadWrite
)

func decodeEnvVarAccessType(tok string, line, col int) (EnvironmentVariableAccessType, error) {
	switch tok {
	case "DUMMY_NODE_VECTOR0":
		return Unrestricted, nil
	case "DUMMY_NODE_VECTOR1":
		return ReadOnly, nil
	case "DUMMY_NODE_VECTOR2":
		return WriteOnly, nil
	case "DUMMY_NODE_VECTOR3":
		return ReadWrite, nil
	case "DUMMY_NODE_VECTOR8000":
		return Unrestricted, nil
	default:
		return 0, newUnexpectedToken(line, col, "unknown environment variable access token %q", tok)
	}
}

// VectorSentinel is the reserved node name meaning "no such node" in
// transmitter/receiver/access lists.
const VectorSentinel = "Vector__XXX"

// ValuePair is one entry of a value table or a signal/envvar value
// description: a numeric code paired with its human-readable label.
// Duplicate values are preserved, and order is insertion order
// (spec.md §3, §8 property 7).
type ValuePair struct {
	Value int64
	Label string
}

// Node is a CAN network participant declared by BU_.
type Node struct {
	Name            string
	Description     string
	attributeValues map[string]*AttributeValue
}

func newNode(name string) *Node {
	return &Node{Name: name, attributeValues: map[string]*AttributeValue{}}
}

func (n *Node) HasAttribute(name string) bool {
	_, ok := n.attributeValues[name]
	return ok
}

func (n *Node) GetAttribute(name string) *AttributeValue {
	return n.attributeValues[name]
}

// ValueTable is a named, shared value-to-label mapping declared by
// VAL_TABLE_.
type ValueTable struct {
	Name    string
	Entries []ValuePair
}

// Signal is a bit-field within a message's payload, declared by SG_.
type Signal struct {
	MessageID   int64
	Name        string
	Multiplexor string
	StartBit    int64
	Size        int64
	ByteOrder   ByteOrder
	ValueType   SignalValueType
	Factor      float64
	Offset      float64
	HasMinimum  bool
	Minimum     float64
	HasMaximum  bool
	Maximum     float64
	Unit        string
	Receivers   []*Node
	Description string

	ValueDescriptions []ValuePair

	attributeValues     map[string]*AttributeValue
	nodeAttributeValues map[string]*AttributeValue
}

func newSignal(messageID int64, name string) *Signal {
	return &Signal{
		MessageID:           messageID,
		Name:                name,
		attributeValues:     map[string]*AttributeValue{},
		nodeAttributeValues: map[string]*AttributeValue{},
	}
}

func (s *Signal) HasAttribute(name string) bool {
	_, ok := s.attributeValues[name]
	return ok
}

func (s *Signal) GetAttribute(name string) *AttributeValue {
	return s.attributeValues[name]
}

// HasNodeAttribute/GetNodeAttribute answer the per-node attribute map
// populated by BU_SG_REL_ assignments (spec.md §8 property 9). Both take
// an attribute name: HasNodeAttribute reports whether any node has a value
// for it, and GetNodeAttribute returns those values keyed by node name.
func (s *Signal) HasNodeAttribute(name string) bool {
	for key := range s.nodeAttributeValues {
		if attrNameFromNodeKey(key) == name {
			return true
		}
	}
	return false
}

// GetNodeAttribute returns the node-name → AttributeValue mapping for the
// named relation attribute.
func (s *Signal) GetNodeAttribute(name string) map[string]*AttributeValue {
	out := map[string]*AttributeValue{}
	for key, av := range s.nodeAttributeValues {
		attrName, nodeName := splitNodeKey(key)
		if attrName == name {
			out[nodeName] = av
		}
	}
	return out
}

func nodeAttrKey(attrName, nodeName string) string {
	return attrName + "\x00" + nodeName
}

func splitNodeKey(key string) (attrName, nodeName string) {
	for i := 0; i < len(key); i++ {
		if key[i] == 0 {
			return key[:i], key[i+1:]
		}
	}
	return key, ""
}

func attrNameFromNodeKey(key string) string {
	attrName, _ := splitNodeKey(key)
	return attrName
}

// SignalGroup is a named set of signals within one message, declared by
// SIG_GROUP_.
type SignalGroup struct {
	MessageID   int64
	Name        string
	Repetitions int64
	Signals     []*Signal
}

// Message is a CAN frame description declared by BO_.
type Message struct {
	ID          int64
	Name        string
	Size        int64
	Transmitter *Node
	Description string

	signalsByName map[string]*Signal
	signalOrder   []string
	SignalGroups  []*SignalGroup

	attributeValues map[string]*AttributeValue
}

func newMessage(id int64, name string, size int64) *Message {
	return &Message{
		ID:              id,
		Name:            name,
		Size:            size,
		signalsByName:   map[string]*Signal{},
		attributeValues: map[string]*AttributeValue{},
	}
}

func (m *Message) addSignal(s *Signal) {
	m.signalsByName[s.Name] = s
	m.signalOrder = append(m.signalOrder, s.Name)
}

func (m *Message) HasSignal(name string) bool {
	_, ok := m.signalsByName[name]
	return ok
}

func (m *Message) GetSignal(name string) *Signal {
	return m.signalsByName[name]
}

// GetSignals returns the message's signals in declaration order.
func (m *Message) GetSignals() []*Signal {
	out := make([]*Signal, 0, len(m.signalOrder))
	for _, name := range m.signalOrder {
		out = append(out, m.signalsByName[name])
	}
	return out
}

func (m *Message) HasAttribute(name string) bool {
	_, ok := m.attributeValues[name]
	return ok
}

func (m *Message) GetAttribute(name string) *AttributeValue {
	return m.attributeValues[name]
}

// EnvironmentVariable is a simulation-side value declared by EV_.
type EnvironmentVariable struct {
	Name        string
	Type        EnvironmentVariableType
	Min         float64
	Max         float64
	Unit        string
	InitValue   float64
	ID          int64
	AccessType  EnvironmentVariableAccessType
	AccessNodes []*Node
	Description string
	HasDataSize bool
	DataSize    int64

	ValueDescriptions []ValuePair

	attributeValues map[string]*AttributeValue
}

func newEnvironmentVariable(name string) *EnvironmentVariable {
	return &EnvironmentVariable{Name: name, attributeValues: map[string]*AttributeValue{}}
}

func (e *EnvironmentVariable) HasAttribute(name string) bool {
	_, ok := e.attributeValues[name]
	return ok
}

func (e *EnvironmentVariable) GetAttribute(name string) *AttributeValue {
	return e.attributeValues[name]
}

// AttributeDefinition is a typed attribute schema declared by BA_DEF_ or
// BA_DEF_REL_.
type AttributeDefinition struct {
	Name       string
	ObjectType AttributeObjectType
	ValueType  AttributeValueType
	Default    *AttributeValue
}

// AttributeValue is a single typed value bound to an attribute schema,
// owned by whichever entity (or relation) it was assigned against.
type AttributeValue struct {
	Attribute *AttributeDefinition
	Value     any
}

// Name returns the owning schema's attribute name.
func (av *AttributeValue) Name() string {
	return av.Attribute.Name
}
