package dbc

// bindEnvironmentVariables is pass 5. Access-node references are resolved
// tolerantly: an undeclared node name is a stub creation, not a fatal
// error, matching the source's leniency for malformed access lists.
func bindEnvironmentVariables(f *File, vars []astEnvVar) error {
	for _, ev := range vars {
		if f.HasEnvironmentVariable(ev.name) {
			return newDuplicateEntity(ev.line, ev.col, "environment variable %q declared more than once", ev.name)
		}
		typ, err := decodeEnvVarType(ev.typeCode, ev.line, ev.col)
		if err != nil {
			return err
		}
		min, err := parseFloat(ev.min)
		if err != nil {
			return newSyntaxError(ev.line, ev.col, "invalid environment variable minimum %q: %v", ev.min, err)
		}
		max, err := parseFloat(ev.max)
		if err != nil {
			return newSyntaxError(ev.line, ev.col, "invalid environment variable maximum %q: %v", ev.max, err)
		}
		initValue, err := parseFloat(ev.initValue)
		if err != nil {
			return newSyntaxError(ev.line, ev.col, "invalid environment variable initial value %q: %v", ev.initValue, err)
		}
		id, err := parseSignedInt(ev.id)
		if err != nil {
			return newSyntaxError(ev.line, ev.col, "invalid environment variable id %q: %v", ev.id, err)
		}
		accessType, err := decodeEnvVarAccessType(ev.accessType, ev.line, ev.col)
		if err != nil {
			return err
		}

		e := newEnvironmentVariable(ev.name)
		e.Type = typ
		e.Min, e.Max = min, max
		e.Unit = ev.unit
		e.InitValue = initValue
		e.ID = id
		e.AccessType = accessType
		for _, nodeName := range ev.accessNodes {
			if nodeName == VectorSentinel {
				continue
			}
			e.AccessNodes = append(e.AccessNodes, f.resolveNodeTolerant(nodeName))
		}

		f.envVarsByName[ev.name] = e
		f.envVarOrder = append(f.envVarOrder, ev.name)
	}
	return nil
}

// bindEnvVarData is pass 6: promote the named environment variable's type
// to DATA and record its data size.
func bindEnvVarData(f *File, entries []astEnvVarData) error {
	for _, evd := range entries {
		ev := f.GetEnvironmentVariable(evd.name)
		if ev == nil {
			return newUnresolvedReference(evd.line, evd.col, "ENVVAR_DATA_ references undeclared environment variable %q", evd.name)
		}
		size, err := parseSignedInt(evd.dataSize)
		if err != nil {
			return newSyntaxError(evd.line, evd.col, "invalid envvar data size %q: %v", evd.dataSize, err)
		}
		ev.Type = EnvData
		ev.HasDataSize = true
		ev.DataSize = size
	}
	return nil
}
