package gen

import (
	"context"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/modelc/compiler/load"
)

// Graph holds the nodes/entities of the loaded graph schema. Note that, it
// doesn't hold the edges of the graph. Instead, each Type holds the edges for
// other Types.
type Graph struct {
	*Config
	// Nodes are the declared types, in declaration order.
	Nodes []*Type
	// Joins are the synthesized many-to-many join types, sorted by name.
	Joins []*Type

	registry *load.Registry
	nodes    map[string]*Type
}

// NewGraph creates a new Graph for the given schema declarations: it
// resolves fields, relationships, composite identifiers and many-to-many
// joins, then validates the result. Structural failures of a stage are
// returned as soon as they are found; the validator aggregates every
// remaining violation into one ValidationError.
func NewGraph(c *Config, schemas ...*load.Schema) (*Graph, error) {
	return NewGraphContext(context.Background(), c, schemas...)
}

// NewGraphContext is like NewGraph, but stops the concurrent field
// resolution when ctx is done.
func NewGraphContext(ctx context.Context, c *Config, schemas ...*load.Schema) (*Graph, error) {
	if c == nil {
		c = &Config{}
	}
	r, err := load.NewRegistry(schemas...)
	if err != nil {
		return nil, err
	}
	g := &Graph{
		Config:   c,
		registry: r,
		nodes:    make(map[string]*Type, r.Len()),
	}
	log := c.logger()
	log.Debug("registered entities", "count", r.Len())
	for _, stage := range []struct {
		name string
		run  func() error
	}{
		{"fields", func() error { return g.resolveFields(ctx) }},
		{"relationships", g.resolveEdges},
		{"identifiers", g.resolveIdentifiers},
		{"joins", g.expandJoins},
		{"validate", g.validate},
	} {
		if err := stage.run(); err != nil {
			log.Debug("stage failed", "stage", stage.name, "error", err)
			return nil, err
		}
		log.Debug("stage done", "stage", stage.name)
	}
	return g, nil
}

// resolveFields runs the field resolver for every declaration concurrently.
// Each entity is independent at this stage; results are written to
// per-entity slots so the outcome does not depend on scheduling. On failure,
// the error of the first failing entity in declaration order is returned.
func (g *Graph) resolveFields(ctx context.Context) error {
	schemas := g.registry.Schemas()
	nodes := make([]*Type, len(schemas))
	errs := make([]error, len(schemas))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers())
	for i, s := range schemas {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			nodes[i], errs[i] = NewType(g.Config, s)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	g.Nodes = nodes
	for _, t := range nodes {
		g.nodes[t.Name] = t
		g.logger().Debug("resolved fields", "entity", t.Name, "fields", len(t.Fields))
	}
	return nil
}

// Type returns the declared or join type with the given name.
func (g *Graph) Type(name string) (*Type, bool) {
	if t, ok := g.nodes[name]; ok {
		return t, true
	}
	for _, t := range g.Joins {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Types returns the declared types followed by the join types. This is the
// emission order of the graph.
func (g *Graph) Types() []*Type {
	return slices.Concat(g.Nodes, g.Joins)
}

// Edges returns every edge of the graph in emission order.
func (g *Graph) Edges() []*Edge {
	var edges []*Edge
	for _, t := range g.Types() {
		edges = append(edges, t.Edges...)
	}
	return edges
}
