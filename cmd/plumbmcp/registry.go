package main

import (
	"sync"

	"github.com/glaszig/plumb/internal/maputil"
	"github.com/glaszig/plumb/schema"
	"github.com/glaszig/plumb/step"
	"github.com/glaszig/plumb/types"
)

// registry holds the named schemas an MCP client can validate against or
// request the JSON Schema projection of. It is exercised through the
// plumb public surface (schema, types, step) plus the internal/maputil
// helper for sorted names.
type registry struct {
	mu      sync.RWMutex
	schemas map[string]*types.HashClass
}

func newRegistry() *registry {
	r := &registry{schemas: make(map[string]*types.HashClass)}
	r.register("person", schema.From(schema.Def{
		"name":      step.Match(step.TypeOfValue("")),
		"age":       step.Match(step.TypeOfValue(0)),
		"nickname?": step.Any(),
	}))
	return r
}

func (r *registry) register(name string, h *types.HashClass) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schemas[name] = h
}

// loadYAML parses data as a YAML schema document and registers it under
// name, so an MCP client can grow the registry at runtime.
func (r *registry) loadYAML(name string, data []byte) error {
	h, err := schema.FromYAML(data)
	if err != nil {
		return err
	}
	r.register(name, h)
	return nil
}

func (r *registry) get(name string) (*types.HashClass, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.schemas[name]
	return h, ok
}

func (r *registry) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return maputil.SortedKeys(r.schemas)
}
