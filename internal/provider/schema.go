package provider

import "github.com/Cyclone1070/codereview/internal/tool"

// SchemaProperties renders the properties of an object schema as plain
// JSON Schema maps, the form the OpenAI and Anthropic SDKs accept.
func SchemaProperties(s *tool.Schema) map[string]any {
	props := make(map[string]any)
	if s == nil {
		return props
	}
	for name, prop := range s.Properties {
		props[name] = schemaMap(prop)
	}
	return props
}

// SchemaRequired returns the required parameter names, never nil.
func SchemaRequired(s *tool.Schema) []string {
	if s == nil || len(s.Required) == 0 {
		return []string{}
	}
	return s.Required
}

func schemaMap(s *tool.Schema) map[string]any {
	m := map[string]any{"type": string(s.Type)}
	if s.Description != "" {
		m["description"] = s.Description
	}
	if len(s.Enum) > 0 {
		m["enum"] = s.Enum
	}
	if s.Items != nil {
		m["items"] = schemaMap(s.Items)
	}
	if len(s.Properties) > 0 {
		m["properties"] = SchemaProperties(s)
		m["required"] = SchemaRequired(s)
	}
	return m
}
