package llmprovider

import "context"

// Generator binds a Manager to fixed generation options and exposes
// a plain prompt-in, text-out call.
type Generator struct {
	manager *Manager
	opts    []GenerateOption
}

// NewGenerator creates a Generator over m.
func NewGenerator(m *Manager, opts ...GenerateOption) *Generator {
	return &Generator{manager: m, opts: opts}
}

// Generate sends prompt through the provider chain.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.manager.Generate(ctx, prompt, g.opts...)
}
