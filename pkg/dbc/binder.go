package dbc

// bind runs the eleven-pass pipeline of spec.md §4.4 over a parse tree,
// in the fixed order pass N requires everything pass N-1..1 declared.
// Each pass is total over its section; the first error aborts binding
// with no partial File returned, per the "all errors are fatal at the
// parse call boundary" propagation policy.
func bind(tree *astFile) (*File, error) {
	f := newFile()

	bindVersion(f, tree.version)

	if err := bindNodes(f, tree.nodes); err != nil {
		return nil, err
	}
	if err := bindValueTables(f, tree.valueTables); err != nil {
		return nil, err
	}
	if err := bindMessages(f, tree.messages); err != nil {
		return nil, err
	}
	if err := bindEnvironmentVariables(f, tree.environmentVariables); err != nil {
		return nil, err
	}
	if err := bindEnvVarData(f, tree.environmentVariablesData); err != nil {
		return nil, err
	}
	if err := bindComments(f, tree.comments); err != nil {
		return nil, err
	}
	if err := bindAttributeDefinitions(f, tree.attributeDefinitions); err != nil {
		return nil, err
	}
	if err := bindAttributeDefaults(f, tree.attributeDefaults); err != nil {
		return nil, err
	}
	if err := bindAttributeValues(f, tree.attributeValues); err != nil {
		return nil, err
	}
	if err := bindValueDescriptions(f, tree.valueDescriptions); err != nil {
		return nil, err
	}
	if err := bindSignalTypeRefs(f, tree.signalTypeRefs); err != nil {
		return nil, err
	}
	if err := bindSignalGroups(f, tree.signalGroups); err != nil {
		return nil, err
	}

	return f, nil
}

func bindVersion(f *File, v *astVersion) {
	if v == nil {
		return
	}
	f.Version = readCharString(v.text)
}

func bindNodes(f *File, names []string) error {
	for _, name := range names {
		if f.HasNode(name) {
			return newDuplicateEntity(0, 0, "node %q declared more than once", name)
		}
		f.nodesByName[name] = newNode(name)
		f.nodeOrder = append(f.nodeOrder, name)
	}
	return nil
}

func bindValueTables(f *File, tables []astValueTable) error {
	for _, vt := range tables {
		if f.HasValueTable(vt.name) {
			return newDuplicateEntity(0, 0, "value table %q declared more than once", vt.name)
		}
		entries, err := decodeValuePairs(vt.entries)
		if err != nil {
			return err
		}
		f.valueTables[vt.name] = &ValueTable{Name: vt.name, Entries: entries}
		f.valueTableOrder = append(f.valueTableOrder, vt.name)
	}
	return nil
}

func decodeValuePairs(entries []astValuePair) ([]ValuePair, error) {
	out := make([]ValuePair, 0, len(entries))
	for _, e := range entries {
		v, err := parseValueCode(e.value)
		if err != nil {
			return nil, newSyntaxError(0, 0, "invalid value-pair code %q: %v", e.value, err)
		}
		out = append(out, ValuePair{Value: v, Label: e.label})
	}
	return out, nil
}

// resolveNode resolves a transmitter/receiver reference, which must have
// been previously declared unless it is the Vector__XXX sentinel.
func (f *File) resolveNode(name string) (*Node, error) {
	if name == VectorSentinel {
		if f.vectorSentinel == nil {
			f.vectorSentinel = newNode(VectorSentinel)
		}
		return f.vectorSentinel, nil
	}
	n, ok := f.nodesByName[name]
	if !ok {
		return nil, newUnresolvedReference(0, 0, "reference to undeclared node %q", name)
	}
	return n, nil
}

// resolveNodeTolerant resolves an environment-variable access-node
// reference. Unlike resolveNode, an unknown name is tolerated: a stub
// node is created and registered rather than rejected, matching the
// source's tolerance for malformed access lists (spec.md §4.4 pass 5).
func (f *File) resolveNodeTolerant(name string) *Node {
	if name == VectorSentinel {
		n, _ := f.resolveNode(name)
		return n
	}
	if n, ok := f.nodesByName[name]; ok {
		return n
	}
	n := newNode(name)
	f.nodesByName[name] = n
	f.nodeOrder = append(f.nodeOrder, name)
	return n
}
