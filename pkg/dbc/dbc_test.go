package dbc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionFromDirective(t *testing.T) {
	text := `
VERSION "TEST"

BS_:

BU_:
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.Equal(t, "TEST", f.Version)
}

func TestNamespaceSectionTolerated(t *testing.T) {
	text := `
VERSION "TEST"

NS_ :
	NS_DESC_
	CM_
	BA_DEF_
	BA_
	VAL_
	CAT_DEF_
	CAT_
	FILTER
	BA_DEF_DEF_
	EV_DATA_
	ENVVAR_DATA_
	SGTYPE_
	SGTYPE_VAL_
	BA_DEF_SGTYPE_
	BA_SGTYPE_
	SIG_TYPE_REF_
	VAL_TABLE_
	SIG_GROUP_
	SIG_VALTYPE_
	SIGTYPE_VALTYPE_
	BO_TX_BU_
	BA_DEF_REL_
	BA_REL_
	BA_DEF_DEF_REL_
	BU_SG_REL_
	BU_EV_REL_
	BU_BO_REL_
	SG_MUL_VAL_

BS_:

BU_:
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.Equal(t, "TEST", f.Version)
}

// TestNamespaceSectionToleratesTypo exercises the EV_DATA / EV_DATA_
// typo: since NS_ is parsed tolerantly as a raw token run, a missing
// trailing underscore must not be a syntax error.
func TestNamespaceSectionToleratesTypo(t *testing.T) {
	text := `
VERSION "TEST"

NS_ :
	EV_DATA
	ENVVAR_DATA_

BS_:

BU_:
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.Equal(t, "TEST", f.Version)
}

func TestNodes(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.True(t, f.HasNode("NODE1"))
	require.True(t, f.HasNode("NODE2"))
	require.Equal(t, "NODE1", f.GetNode("NODE1").Name)
	require.Equal(t, "NODE2", f.GetNode("NODE2").Name)
}

func TestDuplicateNodeIsFatal(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE1
`
	_, err := ParseText(text)
	require.Error(t, err)
	derr, ok := AsError(err, KindDuplicateEntity)
	require.True(t, ok)
	require.NotEmpty(t, derr.Message)
}

func TestValueTable(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

VAL_TABLE_ vtname 1 "LABEL1" 2 "LABEL2";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.True(t, f.HasValueTable("vtname"))
	vt := f.GetValueTable("vtname")
	require.Len(t, vt.Entries, 2)
	require.Equal(t, ValuePair{Value: 1, Label: "LABEL1"}, vt.Entries[0])
	require.Equal(t, ValuePair{Value: 2, Label: "LABEL2"}, vt.Entries[1])
}

func TestValueTableDuplicatesPreserved(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

VAL_TABLE_ vtname 1 "LABEL1" 2 "LABEL2" 3 "Not used" 4 "Not used";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	vt := f.GetValueTable("vtname")
	require.Len(t, vt.Entries, 4)
	require.Equal(t, "Not used", vt.Entries[2].Label)
	require.Equal(t, "Not used", vt.Entries[3].Label)
	require.EqualValues(t, 3, vt.Entries[2].Value)
	require.EqualValues(t, 4, vt.Entries[3].Value)
}

func TestCommentOverridesVersion(t *testing.T) {
	text := `
BS_:

BU_:

CM_ "COM_MATRIX";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.Equal(t, "COM_MATRIX", f.Version)
}

func TestCommentNode(t *testing.T) {
	text := `
BS_:

BU_: NODE1

CM_ BU_ NODE1 "Node 1";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.Equal(t, "Node 1", f.GetNode("NODE1").Description)
}

func TestCommentMessage(t *testing.T) {
	text := `
BS_:

BU_: NODE1

BO_ 123 MESSAGE1: 8 NODE1

CM_ BO_ 123 "Message 1";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.Equal(t, "Message 1", f.GetMessage(123).Description)
}

func TestCommentSignal(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|0] ""  NODE2

CM_ SG_ 123 SIGNAL11 "Signal 11";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	require.Equal(t, "Signal 11", sig.Description)
}

func TestCommentEnvironmentVariable(t *testing.T) {
	text := `
BS_:

BU_: NODE1

EV_ EVAR1: 0 [-10|10] "" 0 1 DUMMY_NODE_VECTOR0  NODE1;

CM_ EV_ EVAR1 "Evar 1";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	require.Equal(t, "Evar 1", f.GetEnvironmentVariable("EVAR1").Description)
}

func TestMessageWithTwoSignals(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|0] ""  NODE2
 SG_ SIGNAL12 : 18|2@1+ (1,0) [0|0] ""  NODE2
`
	f, err := ParseText(text)
	require.NoError(t, err)
	msg := f.GetMessage(123)
	require.Equal(t, "MESSAGE1", msg.Name)
	require.EqualValues(t, 123, msg.ID)
	require.EqualValues(t, 8, msg.Size)
	require.Equal(t, "NODE1", msg.Transmitter.Name)
	require.Len(t, msg.GetSignals(), 2)
}

func TestMessageWithoutSignals(t *testing.T) {
	text := `
BS_:

BU_: NODE1

BO_ 123 MESSAGE1: 8 NODE1
`
	f, err := ParseText(text)
	require.NoError(t, err)
	msg := f.GetMessage(123)
	require.Equal(t, "MESSAGE1", msg.Name)
	require.Len(t, msg.GetSignals(), 0)
}

// TestMessageTransmittersAreDiscarded mirrors the source, which parses
// BO_TX_BU_ syntactically but never binds it into the model.
func TestMessageTransmittersAreDiscarded(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2 NODE3

BO_ 123 MESSAGE1: 8 NODE1

BO_TX_BU_ 123 : NODE2,NODE3;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	msg := f.GetMessage(123)
	require.Len(t, msg.GetSignals(), 0)
}

func TestSignalRoundTrip(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2 NODE3

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2,NODE3
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	require.Equal(t, "SIGNAL11", sig.Name)
	require.Equal(t, BigEndian, sig.ByteOrder)
	require.Equal(t, Unsigned, sig.ValueType)
	require.Equal(t, 1.0, sig.Factor)
	require.Equal(t, 0.0, sig.Offset)
	require.True(t, sig.HasMinimum)
	require.Equal(t, 0.0, sig.Minimum)
	require.True(t, sig.HasMaximum)
	require.Equal(t, 10.0, sig.Maximum)
	require.EqualValues(t, 18, sig.StartBit)
	require.EqualValues(t, 2, sig.Size)
	require.Len(t, sig.Receivers, 2)
	require.Equal(t, "NODE2", sig.Receivers[0].Name)
	require.Equal(t, "NODE3", sig.Receivers[1].Name)
}

func TestSignalValueDescriptionOrder(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2

VAL_ 123 SIGNAL11 1 "LABEL1" 2 "LABEL2" ;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	require.Equal(t, []ValuePair{{Value: 1, Label: "LABEL1"}, {Value: 2, Label: "LABEL2"}}, sig.ValueDescriptions)
}

func TestSignalExtendedValueTypeOverride(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2

SIG_VALTYPE_ 123 SIGNAL11 : 2;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	require.Equal(t, Float64, sig.ValueType)
}

// TestSignalNameEmbeddingCommentKeyword exercises the identifier/keyword
// disambiguation property: a signal named CM_SIGNAL11 must not be
// mistaken for the CM_ keyword.
func TestSignalNameEmbeddingCommentKeyword(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ CM_SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2

SIG_VALTYPE_ 123 CM_SIGNAL11 : 2;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("CM_SIGNAL11")
	require.NotNil(t, sig)
	require.Equal(t, Float64, sig.ValueType)
}

func TestEnvironmentVariable(t *testing.T) {
	text := `
BS_:

BU_: NODE1

EV_ EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE1;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EVAR1")
	require.Equal(t, "EVAR1", ev.Name)
	require.EqualValues(t, 1, ev.ID)
	require.Equal(t, 0.0, ev.InitValue)
	require.Equal(t, "UNIT", ev.Unit)
	require.Equal(t, -10.0, ev.Min)
	require.Equal(t, 10.0, ev.Max)
	require.Equal(t, EnvInteger, ev.Type)
	require.Equal(t, Unrestricted, ev.AccessType)
	require.Len(t, ev.AccessNodes, 1)
	require.Equal(t, "NODE1", ev.AccessNodes[0].Name)
}

func TestEnvironmentVariableValueDescriptions(t *testing.T) {
	text := `
BS_:

BU_: NODE1

EV_ EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE1;

VAL_ EVAR1 1 "LABEL1" 2 "LABEL2" ;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EVAR1")
	require.Equal(t, []ValuePair{{Value: 1, Label: "LABEL1"}, {Value: 2, Label: "LABEL2"}}, ev.ValueDescriptions)
}

func TestEnvironmentVariableDataPromotion(t *testing.T) {
	text := `
BS_:

BU_: NODE1

EV_ EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE1;

ENVVAR_DATA_ EVAR1: 6;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EVAR1")
	require.Equal(t, EnvData, ev.Type)
	require.True(t, ev.HasDataSize)
	require.EqualValues(t, 6, ev.DataSize)
}

func TestEnvironmentVariableNameEmbeddingKeyword(t *testing.T) {
	text := `
BS_:

BU_: NODE1

EV_ EV_EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE1;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EV_EVAR1")
	require.NotNil(t, ev)
	require.Equal(t, "EV_EVAR1", ev.Name)
}

// TestEnvironmentVariableToleratesUnknownAccessNode mirrors the source's
// leniency: an access node the BU_ section never declared is stubbed in
// rather than rejected.
func TestEnvironmentVariableToleratesUnknownAccessNode(t *testing.T) {
	text := `
BS_:

BU_: NODE1

EV_ EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE2;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EVAR1")
	require.Len(t, ev.AccessNodes, 1)
	require.Equal(t, "NODE2", ev.AccessNodes[0].Name)
}

func TestEnvironmentVariableMultipleAccessNodes(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

EV_ EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE1,NODE2;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EVAR1")
	require.Len(t, ev.AccessNodes, 2)
	require.Equal(t, "NODE1", ev.AccessNodes[0].Name)
	require.Equal(t, "NODE2", ev.AccessNodes[1].Name)
}

// TestEnvironmentVariableSkipsVectorSentinelAccessNode mirrors the
// source's create_environment_variable, which drops a Vector__XXX token
// from the access-node list entirely rather than resolving it to the
// sentinel node.
func TestEnvironmentVariableSkipsVectorSentinelAccessNode(t *testing.T) {
	text := `
BS_:

BU_: NODE1

EV_ EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE1,Vector__XXX;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EVAR1")
	require.Len(t, ev.AccessNodes, 1)
	require.Equal(t, "NODE1", ev.AccessNodes[0].Name)
}

func TestGlobalAttribute(t *testing.T) {
	text := `
BS_:

BU_:

BA_DEF_ "ATTR" STRING ;
BA_DEF_DEF_ "ATTR" "DEFAULT";
BA_ "ATTR" "VALUE";
`
	f, err := ParseText(text)
	require.NoError(t, err)
	attr := f.GetAttributeValue("ATTR")
	require.Equal(t, "ATTR", attr.Name())
	require.Equal(t, "VALUE", attr.Value)
	require.Equal(t, "DEFAULT", attr.Attribute.Default.Value)
	require.IsType(t, &StringType{}, attr.Attribute.ValueType)
	require.Equal(t, ObjectGlobal, attr.Attribute.ObjectType)
}

func TestMessageAttribute(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1

BA_DEF_ BO_  "ATTR" INT 0 0;
BA_DEF_DEF_  "ATTR" 0;
BA_ "ATTR" BO_ 123 2660;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	msg := f.GetMessage(123)
	require.True(t, msg.HasAttribute("ATTR"))
	attr := msg.GetAttribute("ATTR")
	require.Equal(t, "ATTR", attr.Name())
	require.EqualValues(t, 2660, attr.Value)
	require.EqualValues(t, 0, attr.Attribute.Default.Value)
	require.IsType(t, &IntegerType{}, attr.Attribute.ValueType)
	require.Equal(t, ObjectMessage, attr.Attribute.ObjectType)
}

func TestSignalAttribute(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2

BA_DEF_ SG_  "ATTR" INT 0 0;
BA_DEF_DEF_  "ATTR" 0;
BA_ "ATTR" SG_ 123 SIGNAL11 2660;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	require.True(t, sig.HasAttribute("ATTR"))
	attr := sig.GetAttribute("ATTR")
	require.EqualValues(t, 2660, attr.Value)
	require.Equal(t, ObjectSignal, attr.Attribute.ObjectType)
}

func TestSignalAttributeDuplicateAssignmentTolerated(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2

BA_DEF_ SG_  "ATTR" INT 0 0;
BA_DEF_DEF_  "ATTR" 0;
BA_ "ATTR" SG_ 123 SIGNAL11 2660;
BA_ "ATTR" SG_ 123 SIGNAL11 2660;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	attr := sig.GetAttribute("ATTR")
	require.EqualValues(t, 2660, attr.Value)
}

func TestEnvironmentVariableAttribute(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

EV_ EVAR1: 0 [-10|10] "UNIT" 0 1 DUMMY_NODE_VECTOR0  NODE1;

BA_DEF_ EV_  "ATTR" INT 0 0;
BA_DEF_DEF_  "ATTR" 0;
BA_ "ATTR" EV_ EVAR1 2660;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	ev := f.GetEnvironmentVariable("EVAR1")
	require.True(t, ev.HasAttribute("ATTR"))
	attr := ev.GetAttribute("ATTR")
	require.EqualValues(t, 2660, attr.Value)
	require.Equal(t, ObjectEnvironmentVariable, attr.Attribute.ObjectType)
}

func TestPerNodeSignalAttributeMap(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2

BA_DEF_REL_ BU_SG_REL_  "ATTR" INT 0 65535;
BA_DEF_DEF_REL_ "ATTR" 0;
BA_REL_ "ATTR" BU_SG_REL_ NODE1 SG_ 123 SIGNAL11 3000;
BA_REL_ "ATTR" BU_SG_REL_ NODE2 SG_ 123 SIGNAL11 4000;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	require.True(t, sig.HasNodeAttribute("ATTR"))
	attrs := sig.GetNodeAttribute("ATTR")
	require.Contains(t, attrs, "NODE1")
	require.Contains(t, attrs, "NODE2")
	require.EqualValues(t, 3000, attrs["NODE1"].Value)
	require.EqualValues(t, 4000, attrs["NODE2"].Value)
}

// TestDuplicatePerNodeSignalAttributeTolerated is scenario E5: two
// identical BU_SG_REL_ assignments must not error.
func TestDuplicatePerNodeSignalAttributeTolerated(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 18|2@1+ (1,0) [0|10] ""  NODE2

BA_DEF_REL_ BU_SG_REL_  "ATTR" INT 0 65535;
BA_DEF_DEF_REL_ "ATTR" 0;
BA_REL_ "ATTR" BU_SG_REL_ NODE1 SG_ 123 SIGNAL11 3000;
BA_REL_ "ATTR" BU_SG_REL_ NODE1 SG_ 123 SIGNAL11 3000;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	attrs := sig.GetNodeAttribute("ATTR")
	require.Contains(t, attrs, "NODE1")
	require.EqualValues(t, 3000, attrs["NODE1"].Value)
}

// TestNodeMessageRelationAttributeDiscarded covers the BU_BO_REL_
// asymmetry: the value is accepted syntactically but never stored.
func TestNodeMessageRelationAttributeDiscarded(t *testing.T) {
	text := `
BS_:

BU_: NODE1

BO_ 123 MESSAGE1: 8 NODE1

BA_DEF_REL_ BU_BO_REL_  "ATTR" INT 0 65535;
BA_DEF_DEF_REL_ "ATTR" 0;
BA_REL_ "ATTR" BU_BO_REL_ NODE1 BO_ 123 3000;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	msg := f.GetMessage(123)
	require.False(t, msg.HasAttribute("ATTR"))
}

func TestSignalGroup(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 0|2@1+ (1,0) [0|0] ""  NODE2
 SG_ SIGNAL12 : 2|2@1+ (1,0) [0|0] ""  NODE2

SIG_GROUP_ 123 GROUP1 1 : SIGNAL11 SIGNAL12;
`
	f, err := ParseText(text)
	require.NoError(t, err)
	msg := f.GetMessage(123)
	require.Len(t, msg.SignalGroups, 1)
	group := msg.SignalGroups[0]
	require.Equal(t, "GROUP1", group.Name)
	require.Len(t, group.Signals, 2)
	require.Equal(t, "SIGNAL11", group.Signals[0].Name)
	require.Equal(t, "SIGNAL12", group.Signals[1].Name)
}

func TestUnresolvedCommentReferenceIsFatal(t *testing.T) {
	text := `
BS_:

BU_:

CM_ BU_ NODE1 "missing";
`
	_, err := ParseText(text)
	require.Error(t, err)
	_, ok := AsError(err, KindUnresolvedReference)
	require.True(t, ok)
}

func TestSignalNegativeOffsetAndScientificFactor(t *testing.T) {
	text := `
BS_:

BU_: NODE1 NODE2

BO_ 123 MESSAGE1: 8 NODE1
 SG_ SIGNAL11 : 0|8@1- (1e-3,-40) [-40|215] ""  NODE2
`
	f, err := ParseText(text)
	require.NoError(t, err)
	sig := f.GetMessage(123).GetSignal("SIGNAL11")
	require.Equal(t, Signed, sig.ValueType)
	require.Equal(t, 0.001, sig.Factor)
	require.Equal(t, -40.0, sig.Offset)
	require.Equal(t, -40.0, sig.Minimum)
	require.Equal(t, 215.0, sig.Maximum)
}

func TestParseFileMissingIsIoError(t *testing.T) {
	_, err := ParseFile("/nonexistent/path/does-not-exist.dbc")
	require.Error(t, err)
	_, ok := AsError(err, KindIoError)
	require.True(t, ok)
}

func TestVectorSentinelTransmitterPreserved(t *testing.T) {
	text := `
BS_:

BU_: NODE1

BO_ 123 MESSAGE1: 8 Vector__XXX
`
	f, err := ParseText(text)
	require.NoError(t, err)
	msg := f.GetMessage(123)
	require.Equal(t, VectorSentinel, msg.Transmitter.Name)
}
