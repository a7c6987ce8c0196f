package gen

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

type (
	// Snapshot stores a snapshot of the resolved graph. Two compilations of
	// the same declarations produce byte-identical encodings.
	Snapshot struct {
		Nodes []NodeSnapshot `msgpack:"nodes"`
	}

	// NodeSnapshot represents a type in the snapshot.
	NodeSnapshot struct {
		Name       string          `msgpack:"name"`
		Table      string          `msgpack:"table"`
		Join       bool            `msgpack:"join,omitempty"`
		Identifier []string        `msgpack:"identifier"`
		Fields     []FieldSnapshot `msgpack:"fields"`
		Edges      []EdgeSnapshot  `msgpack:"edges,omitempty"`
	}

	// FieldSnapshot represents a field in the snapshot.
	FieldSnapshot struct {
		Name        string `msgpack:"name"`
		Type        string `msgpack:"type"`
		Optional    bool   `msgpack:"optional,omitempty"`
		Nillable    bool   `msgpack:"nillable,omitempty"`
		Default     string `msgpack:"default,omitempty"`
		UserDefined bool   `msgpack:"user_defined,omitempty"`
	}

	// EdgeSnapshot represents an edge in the snapshot.
	EdgeSnapshot struct {
		Name         string `msgpack:"name"`
		Kind         string `msgpack:"kind"`
		Target       string `msgpack:"target"`
		Rel          string `msgpack:"rel"`
		RelationName string `msgpack:"relation_name,omitempty"`
		Inverse      string `msgpack:"inverse"`
		Through      string `msgpack:"through,omitempty"`
		Synthesized  bool   `msgpack:"synthesized,omitempty"`
	}
)

// Snapshot returns the snapshot of the graph in emission order.
func (g *Graph) Snapshot() *Snapshot {
	s := &Snapshot{}
	for _, t := range g.Types() {
		n := NodeSnapshot{
			Name:       t.Name,
			Table:      t.Table(),
			Join:       t.Join,
			Identifier: t.Identifier,
		}
		for _, f := range t.Fields {
			fs := FieldSnapshot{
				Name:        f.Name,
				Type:        f.Kind(),
				Optional:    f.Optional,
				Nillable:    f.Nillable,
				UserDefined: f.UserDefined,
			}
			if f.Default != nil {
				fs.Default = fmt.Sprint(f.Default)
			}
			n.Fields = append(n.Fields, fs)
		}
		for _, e := range t.Edges {
			es := EdgeSnapshot{
				Name:         e.Name,
				Kind:         e.Kind.String(),
				Target:       e.Type.Name,
				Rel:          e.Rel.Type.String(),
				RelationName: e.RelationName,
				Synthesized:  e.Synthesized,
			}
			if e.Ref != nil {
				es.Inverse = e.Ref.Name
			}
			if e.Through != nil {
				es.Through = e.Through.Name
			}
			n.Edges = append(n.Edges, es)
		}
		s.Nodes = append(s.Nodes, n)
	}
	return s
}

// MarshalSnapshot encodes the snapshot of the graph with msgpack.
func (g *Graph) MarshalSnapshot() ([]byte, error) {
	return msgpack.Marshal(g.Snapshot())
}

// DecodeSnapshot decodes a snapshot encoded by MarshalSnapshot.
func DecodeSnapshot(b []byte) (*Snapshot, error) {
	s := &Snapshot{}
	if err := msgpack.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("gen: decode snapshot: %w", err)
	}
	return s, nil
}

// Node returns the snapshot of the named type.
func (s *Snapshot) Node(name string) (*NodeSnapshot, bool) {
	for i := range s.Nodes {
		if s.Nodes[i].Name == name {
			return &s.Nodes[i], true
		}
	}
	return nil, false
}
