package core

import (
	"encoding/json"
	"fmt"
)

// jsonNode is Node's on-the-wire shape: Kind as a lowercase string (the
// same spelling Kind.String() produces) instead of its numeric tag, so
// query/variant files stay stable across a reordering of the Kind enum.
type jsonNode struct {
	Kind     string     `json:"kind"`
	Label    string     `json:"label,omitempty"`
	Children []jsonNode `json:"children,omitempty"`
	Min      int        `json:"min,omitempty"`
	Max      int        `json:"max,omitempty"`
}

var kindFromName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = Kind(k)
	}
	return m
}()

// MarshalJSON encodes a Node using its string Kind name.
func (n Node) MarshalJSON() ([]byte, error) {
	return json.Marshal(toJSONNode(n))
}

// UnmarshalJSON decodes a Node from its string Kind name.
func (n *Node) UnmarshalJSON(data []byte) error {
	var jn jsonNode
	if err := json.Unmarshal(data, &jn); err != nil {
		return err
	}
	node, err := fromJSONNode(jn)
	if err != nil {
		return err
	}
	*n = node
	return nil
}

func toJSONNode(n Node) jsonNode {
	jn := jsonNode{
		Kind:  n.Kind.String(),
		Label: n.Label,
		Min:   n.Min,
		Max:   n.Max,
	}
	for _, c := range n.Children {
		jn.Children = append(jn.Children, toJSONNode(c))
	}
	return jn
}

func fromJSONNode(jn jsonNode) (Node, error) {
	kind, ok := kindFromName[jn.Kind]
	if !ok {
		return Node{}, fmt.Errorf("core: unknown node kind %q", jn.Kind)
	}
	n := Node{Kind: kind, Label: jn.Label, Min: jn.Min, Max: jn.Max}
	for _, c := range jn.Children {
		child, err := fromJSONNode(c)
		if err != nil {
			return Node{}, err
		}
		n.Children = append(n.Children, child)
	}
	return n, nil
}
