package core

// Step describes one entry of a pipeline plan for display purposes.
type Step struct {
	Name     string `json:"name"`
	Kind     string `json:"kind"` // "agent", "sequence", "while", "catch"
	Children []Step `json:"children,omitempty"`
}

// Describer is implemented by composite agents that expose their structure.
type Describer interface {
	Describe() Step
}

// Describe returns the plan of the wrapped agent.
func (h *Handler[R]) Describe() Step {
	h.mu.Lock()
	a := h.agent
	h.mu.Unlock()
	if d, ok := a.(Describer); ok {
		return d.Describe()
	}
	return Step{Name: h.name, Kind: "agent"}
}
