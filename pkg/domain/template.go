package domain

// Template is a named ruleset. Templates are static configuration: constructed once at
// process start, looked up by ID and never mutated.
type Template struct {
	ID          string
	Name        string
	Description string
	Examples    []string
	Rule        Rule
}

// Info returns the serialisable projection of the template (everything but the rule).
func (t Template) Info() TemplateInfo {
	examples := make([]string, len(t.Examples))
	copy(examples, t.Examples)
	return TemplateInfo{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Examples:    examples,
	}
}

// TemplateInfo describes a template for listings (CLI, HTTP, MCP).
type TemplateInfo struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Examples    []string `json:"examples" yaml:"examples"`
}
