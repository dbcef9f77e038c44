package figma

// VariableResolver resolves a bound variable ID to its human-readable name,
// e.g. "VariableID:12:34" -> "base/informational-weak".
type VariableResolver interface {
	VariableName(id string) (string, bool)
}

// VariableNames is a read-only VariableResolver backed by a map.
type VariableNames map[string]string

// VariableName implements VariableResolver. A nil map resolves nothing.
func (v VariableNames) VariableName(id string) (string, bool) {
	name, ok := v[id]
	return name, ok && name != ""
}

// NamesFromVariables builds a VariableNames lookup from a local variables response.
func NamesFromVariables(resp *VariablesResponse) VariableNames {
	names := make(VariableNames)
	if resp == nil {
		return names
	}

	for id, v := range resp.Meta.Variables {
		if v.ID != "" {
			id = v.ID
		}
		names[id] = v.Name
	}

	return names
}
