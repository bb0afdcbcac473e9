package dbc

// bindMessages is pass 4: create every message and its signals, resolving
// the transmitter and each signal's receiver list against the nodes pass
// created. Vector__XXX is preserved as the sentinel rather than rejected.
func bindMessages(f *File, messages []astMessage) error {
	for _, m := range messages {
		id, err := parseSignedInt(m.id)
		if err != nil {
			return newSyntaxError(m.line, m.col, "invalid message id %q: %v", m.id, err)
		}
		if f.HasMessage(id) {
			return newDuplicateEntity(m.line, m.col, "message %d declared more than once", id)
		}
		size, err := parseSignedInt(m.size)
		if err != nil {
			return newSyntaxError(m.line, m.col, "invalid message size %q: %v", m.size, err)
		}
		msg := newMessage(id, m.name, size)

		transmitter, err := f.resolveNode(m.transmitter)
		if err != nil {
			return err
		}
		msg.Transmitter = transmitter

		for _, s := range m.signals {
			sig, err := bindSignal(f, id, s)
			if err != nil {
				return err
			}
			if msg.HasSignal(sig.Name) {
				return newDuplicateEntity(s.line, s.col, "signal %q declared more than once in message %d", sig.Name, id)
			}
			msg.addSignal(sig)
		}

		f.messagesByID[id] = msg
		f.messageOrder = append(f.messageOrder, id)
	}
	return nil
}

func bindSignal(f *File, messageID int64, s astSignal) (*Signal, error) {
	startBit, err := parseSignedInt(s.startBit)
	if err != nil {
		return nil, newSyntaxError(s.line, s.col, "invalid signal start bit %q: %v", s.startBit, err)
	}
	size, err := parseSignedInt(s.size)
	if err != nil {
		return nil, newSyntaxError(s.line, s.col, "invalid signal size %q: %v", s.size, err)
	}
	byteOrder, err := decodeByteOrder(s.byteOrder, s.line, s.col)
	if err != nil {
		return nil, err
	}
	valueType, err := decodeSignalSign(s.sign, s.line, s.col)
	if err != nil {
		return nil, err
	}
	factor, err := parseFloat(s.factor)
	if err != nil {
		return nil, newSyntaxError(s.line, s.col, "invalid signal factor %q: %v", s.factor, err)
	}
	offset, err := parseFloat(s.offset)
	if err != nil {
		return nil, newSyntaxError(s.line, s.col, "invalid signal offset %q: %v", s.offset, err)
	}

	sig := newSignal(messageID, s.name)
	sig.Multiplexor = s.multiplexor
	sig.StartBit = startBit
	sig.Size = size
	sig.ByteOrder = byteOrder
	sig.ValueType = valueType
	sig.Factor = factor
	sig.Offset = offset
	sig.Unit = s.unit

	if s.hasMin {
		min, err := parseFloat(s.min)
		if err != nil {
			return nil, newSyntaxError(s.line, s.col, "invalid signal minimum %q: %v", s.min, err)
		}
		sig.HasMinimum, sig.Minimum = true, min
	}
	if s.hasMax {
		max, err := parseFloat(s.max)
		if err != nil {
			return nil, newSyntaxError(s.line, s.col, "invalid signal maximum %q: %v", s.max, err)
		}
		sig.HasMaximum, sig.Maximum = true, max
	}

	for _, r := range s.receivers {
		node, err := f.resolveNode(r)
		if err != nil {
			return nil, err
		}
		sig.Receivers = append(sig.Receivers, node)
	}

	return sig, nil
}
