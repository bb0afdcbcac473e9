package dbc

// bindValueDescriptions is pass 9: attach a value-to-label mapping to the
// named signal or environment variable.
func bindValueDescriptions(f *File, descs []astValueDescription) error {
	for _, vd := range descs {
		entries, err := decodeValuePairs(vd.entries)
		if err != nil {
			return err
		}
		if vd.isSignal {
			id, err := parseSignedInt(vd.messageID)
			if err != nil {
				return newSyntaxError(vd.line, vd.col, "invalid message id %q in value description: %v", vd.messageID, err)
			}
			msg := f.GetMessage(id)
			if msg == nil {
				return newUnresolvedReference(vd.line, vd.col, "value description references undeclared message %d", id)
			}
			sig := msg.GetSignal(vd.signalName)
			if sig == nil {
				return newUnresolvedReference(vd.line, vd.col, "value description references undeclared signal %q in message %d", vd.signalName, id)
			}
			sig.ValueDescriptions = entries
			continue
		}
		ev := f.GetEnvironmentVariable(vd.envVarName)
		if ev == nil {
			return newUnresolvedReference(vd.line, vd.col, "value description references undeclared environment variable %q", vd.envVarName)
		}
		ev.ValueDescriptions = entries
	}
	return nil
}

// bindSignalTypeRefs is pass 10: override a signal's value type to a
// float kind. Code 0 is a no-op, code 1 promotes to FLOAT32, code 2 to
// FLOAT64 (spec.md §8 property 4).
func bindSignalTypeRefs(f *File, refs []astSignalTypeRef) error {
	for _, r := range refs {
		id, err := parseSignedInt(r.messageID)
		if err != nil {
			return newSyntaxError(r.line, r.col, "invalid message id %q in signal extended type: %v", r.messageID, err)
		}
		msg := f.GetMessage(id)
		if msg == nil {
			return newUnresolvedReference(r.line, r.col, "signal extended type references undeclared message %d", id)
		}
		sig := msg.GetSignal(r.signalName)
		if sig == nil {
			return newUnresolvedReference(r.line, r.col, "signal extended type references undeclared signal %q in message %d", r.signalName, id)
		}
		code, err := parseSignedInt(r.code)
		if err != nil {
			return newSyntaxError(r.line, r.col, "invalid signal extended type code %q: %v", r.code, err)
		}
		switch code {
		case 0:
			// leave value type unchanged
		case 1:
			sig.ValueType = Float32
		case 2:
			sig.ValueType = Float64
		default:
			return newUnexpectedToken(r.line, r.col, "unknown signal extended type code %d", code)
		}
	}
	return nil
}
