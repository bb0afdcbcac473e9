package dbc

// bindSignalGroups is pass 11, the last pass: every referenced signal
// must belong to the same message id as the group (spec.md §3 invariant),
// which falls out naturally from looking signals up on that message.
func bindSignalGroups(f *File, groups []astSignalGroup) error {
	for _, g := range groups {
		id, err := parseSignedInt(g.messageID)
		if err != nil {
			return newSyntaxError(g.line, g.col, "invalid message id %q in signal group: %v", g.messageID, err)
		}
		msg := f.GetMessage(id)
		if msg == nil {
			return newUnresolvedReference(g.line, g.col, "signal group references undeclared message %d", id)
		}
		repetitions, err := parseSignedInt(g.repetitions)
		if err != nil {
			return newSyntaxError(g.line, g.col, "invalid repetitions %q in signal group: %v", g.repetitions, err)
		}
		group := &SignalGroup{MessageID: id, Name: g.name, Repetitions: repetitions}
		for _, sigName := range g.signalNames {
			sig := msg.GetSignal(sigName)
			if sig == nil {
				return newUnresolvedReference(g.line, g.col, "signal group references undeclared signal %q in message %d", sigName, id)
			}
			group.Signals = append(group.Signals, sig)
		}
		msg.SignalGroups = append(msg.SignalGroups, group)
	}
	return nil
}
