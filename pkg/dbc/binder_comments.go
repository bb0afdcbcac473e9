package dbc

// bindComments is pass 7. A file-level CM_ "<s>"; overrides version: this
// is preserved source behavior (spec.md §4.4, §9 open question), not
// treated as a bug to fix here.
func bindComments(f *File, comments []astComment) error {
	for _, c := range comments {
		switch c.kind {
		case "global":
			f.Version = c.text
		case "node":
			n := f.GetNode(c.nodeName)
			if n == nil {
				return newUnresolvedReference(c.line, c.col, "comment references undeclared node %q", c.nodeName)
			}
			n.Description = c.text
		case "message":
			id, err := parseSignedInt(c.messageID)
			if err != nil {
				return newSyntaxError(c.line, c.col, "invalid message id %q in comment: %v", c.messageID, err)
			}
			msg := f.GetMessage(id)
			if msg == nil {
				return newUnresolvedReference(c.line, c.col, "comment references undeclared message %d", id)
			}
			msg.Description = c.text
		case "signal":
			id, err := parseSignedInt(c.messageID)
			if err != nil {
				return newSyntaxError(c.line, c.col, "invalid message id %q in comment: %v", c.messageID, err)
			}
			msg := f.GetMessage(id)
			if msg == nil {
				return newUnresolvedReference(c.line, c.col, "comment references undeclared message %d", id)
			}
			sig := msg.GetSignal(c.signalName)
			if sig == nil {
				return newUnresolvedReference(c.line, c.col, "comment references undeclared signal %q in message %d", c.signalName, id)
			}
			sig.Description = c.text
		case "envvar":
			ev := f.GetEnvironmentVariable(c.envVarName)
			if ev == nil {
				return newUnresolvedReference(c.line, c.col, "comment references undeclared environment variable %q", c.envVarName)
			}
			ev.Description = c.text
		}
	}
	return nil
}
