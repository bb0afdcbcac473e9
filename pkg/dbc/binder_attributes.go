package dbc

import "log/slog"

// bindAttributeDefinitions is the first of the three attribute sub-passes
// making up pass 8: schema declarations (BA_DEF_ / BA_DEF_REL_).
func bindAttributeDefinitions(f *File, defs []astAttributeDefinition) error {
	for _, ad := range defs {
		if f.HasAttributeDefinition(ad.name) {
			return newDuplicateEntity(ad.line, ad.col, "attribute %q declared more than once", ad.name)
		}
		objectType, err := decodeAttributeObjectType(ad)
		if err != nil {
			return err
		}
		valueType, err := decodeAttrTypeSpec(ad.typeSpec)
		if err != nil {
			return err
		}
		f.attributeDefinitions[ad.name] = &AttributeDefinition{
			Name:       ad.name,
			ObjectType: objectType,
			ValueType:  valueType,
		}
		f.attributeDefOrder = append(f.attributeDefOrder, ad.name)
	}
	return nil
}

func decodeAttributeObjectType(ad astAttributeDefinition) (AttributeObjectType, error) {
	if ad.isRelation {
		switch ad.scopeToken {
		case "BU_BO_REL_":
			return ObjectNodeMessage, nil
		case "BU_SG_REL_":
			return ObjectNodeSignal, nil
		case "BU_EV_REL_":
			return ObjectNodeEnvironmentVariable, nil
		default:
			return 0, newUnexpectedToken(ad.line, ad.col, "unknown relation attribute scope %q", ad.scopeToken)
		}
	}
	switch ad.scopeToken {
	case "":
		return ObjectGlobal, nil
	case "BU_":
		return ObjectNode, nil
	case "BO_":
		return ObjectMessage, nil
	case "SG_":
		return ObjectSignal, nil
	case "EV_":
		return ObjectEnvironmentVariable, nil
	default:
		return 0, newUnexpectedToken(ad.line, ad.col, "unknown attribute scope %q", ad.scopeToken)
	}
}

// bindAttributeDefaults is the second attribute sub-pass (BA_DEF_DEF_ /
// BA_DEF_DEF_REL_): each default requires its schema to already exist.
func bindAttributeDefaults(f *File, defaults []astAttributeDefault) error {
	for _, ad := range defaults {
		def := f.GetAttributeDefinition(ad.name)
		if def == nil {
			return newUnresolvedReference(ad.line, ad.col, "default given for undeclared attribute %q", ad.name)
		}
		val, err := decodeAttrValue(def.ValueType, ad.value, ad.line, ad.col)
		if err != nil {
			return err
		}
		def.Default = &AttributeValue{Attribute: def, Value: val}
	}
	return nil
}

// bindAttributeValues is the third attribute sub-pass (BA_ / BA_REL_).
// The BU_BO_REL_ and BU_EV_REL_ relation shapes are warned-and-discarded;
// only BU_SG_REL_ values are actually stored. This asymmetry mirrors
// original_source/parser_tatsu.py's _process_attributes handler exactly
// (spec.md §9 open question: preserve, do not "fix").
func bindAttributeValues(f *File, values []astAttributeValue) error {
	for _, av := range values {
		def := f.GetAttributeDefinition(av.name)
		if def == nil {
			return newUnresolvedReference(av.line, av.col, "value given for undeclared attribute %q", av.name)
		}
		val, err := decodeAttrValue(def.ValueType, av.value, av.line, av.col)
		if err != nil {
			return err
		}
		attrVal := &AttributeValue{Attribute: def, Value: val}

		if av.isRelation {
			switch av.relScope {
			case "BU_BO_REL_":
				slog.Warn("discarding node-message relation attribute value", "attribute", av.name, "node", av.nodeName)
				continue
			case "BU_EV_REL_":
				slog.Warn("discarding node-environment-variable relation attribute value", "attribute", av.name, "node", av.nodeName)
				continue
			case "BU_SG_REL_":
				id, err := parseSignedInt(av.messageID)
				if err != nil {
					return newSyntaxError(av.line, av.col, "invalid message id %q in relation attribute: %v", av.messageID, err)
				}
				msg := f.GetMessage(id)
				if msg == nil {
					return newUnresolvedReference(av.line, av.col, "relation attribute references undeclared message %d", id)
				}
				sig := msg.GetSignal(av.signalName)
				if sig == nil {
					return newUnresolvedReference(av.line, av.col, "relation attribute references undeclared signal %q in message %d", av.signalName, id)
				}
				sig.nodeAttributeValues[nodeAttrKey(av.name, av.nodeName)] = attrVal
			default:
				return newUnexpectedToken(av.line, av.col, "unknown relation attribute scope %q", av.relScope)
			}
			continue
		}

		switch av.scope {
		case "":
			f.attributeValues[av.name] = attrVal
		case "BU_":
			node := f.GetNode(av.nodeName)
			if node == nil {
				return newUnresolvedReference(av.line, av.col, "attribute value references undeclared node %q", av.nodeName)
			}
			node.attributeValues[av.name] = attrVal
		case "BO_":
			id, err := parseSignedInt(av.messageID)
			if err != nil {
				return newSyntaxError(av.line, av.col, "invalid message id %q in attribute value: %v", av.messageID, err)
			}
			msg := f.GetMessage(id)
			if msg == nil {
				return newUnresolvedReference(av.line, av.col, "attribute value references undeclared message %d", id)
			}
			msg.attributeValues[av.name] = attrVal
		case "SG_":
			id, err := parseSignedInt(av.messageID)
			if err != nil {
				return newSyntaxError(av.line, av.col, "invalid message id %q in attribute value: %v", av.messageID, err)
			}
			msg := f.GetMessage(id)
			if msg == nil {
				return newUnresolvedReference(av.line, av.col, "attribute value references undeclared message %d", id)
			}
			sig := msg.GetSignal(av.signalName)
			if sig == nil {
				return newUnresolvedReference(av.line, av.col, "attribute value references undeclared signal %q in message %d", av.signalName, id)
			}
			sig.attributeValues[av.name] = attrVal
		case "EV_":
			ev := f.GetEnvironmentVariable(av.envVarName)
			if ev == nil {
				return newUnresolvedReference(av.line, av.col, "attribute value references undeclared environment variable %q", av.envVarName)
			}
			ev.attributeValues[av.name] = attrVal
		}
	}
	return nil
}
