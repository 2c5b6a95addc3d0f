// Package graph maintains the knowledge graph connecting materials to
// their keyword nodes and to each other through shared keywords.
package graph

import (
	"strings"

	"github.com/google/uuid"

	"studymesh-backend/domain/material"
	apperrors "studymesh-backend/pkg/errors"
)

// NodeType distinguishes material nodes from keyword nodes.
type NodeType string

const (
	// NodeTypeMain represents a material. Its node ID equals the material ID.
	NodeTypeMain NodeType = "main"
	// NodeTypeSubtopic represents one keyword, deduplicated graph-wide by
	// its lowercased text.
	NodeTypeSubtopic NodeType = "subtopic"
)

// EdgeKind distinguishes ownership edges from similarity edges.
type EdgeKind string

const (
	// EdgeKindStructural links a material to one of its keywords, weight 1.
	EdgeKindStructural EdgeKind = "structural"
	// EdgeKindSimilarity links nodes whose names share a long token, weight 0.5.
	EdgeKindSimilarity EdgeKind = "similarity"
)

const (
	structuralWeight = 1.0
	similarityWeight = 0.5

	// minSharedTokenLen is the exclusive length bound a shared name token
	// must exceed to count as a similarity match.
	minSharedTokenLen = 4
)

// Node is one vertex of the knowledge graph. MaterialID names the material
// the node currently belongs to; for shared subtopic nodes it is re-homed
// when the owning material is deleted.
type Node struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Type       NodeType `json:"type"`
	MaterialID string   `json:"materialId"`
}

// Edge is one link of the knowledge graph. Endpoints and the owning
// material are explicit fields; ownership is never inferred from id
// string patterns.
type Edge struct {
	ID       string   `json:"id"`
	SourceID string   `json:"source"`
	TargetID string   `json:"target"`
	OwnerID  string   `json:"ownerId"`
	Weight   float64  `json:"weight"`
	Kind     EdgeKind `json:"kind"`
}

// Link is the wire form of an edge for the force-directed view.
type Link struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// Data is the node-link payload consumed by the visualization layer.
type Data struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`
}

// Graph is the aggregate holding all nodes and edges. Node and edge
// insertion order is preserved so rebuilds are deterministic. Not safe for
// concurrent use; callers serialize access.
type Graph struct {
	nodes     map[string]*Node
	nodeOrder []string
	edges     map[string]*Edge
	edgeOrder []string

	// keywords indexes subtopic node IDs by lowercased keyword text and
	// enforces the one-node-per-keyword invariant.
	keywords map[string]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		edges:    make(map[string]*Edge),
		keywords: make(map[string]string),
	}
}

// Rebuild replaces the graph content from an ordered material collection.
// Each material contributes one main node and, per keyword in order, a
// structural edge to the graph-wide subtopic node for that keyword.
// Rebuilding the same collection twice yields identical node and edge sets.
func (g *Graph) Rebuild(materials []material.Material) {
	g.nodes = make(map[string]*Node)
	g.nodeOrder = nil
	g.edges = make(map[string]*Edge)
	g.edgeOrder = nil
	g.keywords = make(map[string]string)

	for i := range materials {
		g.addMaterialNodes(&materials[i])
	}
}

// AddMaterial incrementally adds one material: its main node, its keyword
// nodes deduplicated against the entire existing graph, structural edges,
// and similarity edges between every newly added node and every
// pre-existing node with a related name.
func (g *Graph) AddMaterial(m *material.Material) error {
	if m == nil {
		return apperrors.NewValidationError("material cannot be nil")
	}
	if _, exists := g.nodes[m.ID]; exists {
		return apperrors.NewConflictError("material already in graph")
	}

	existing := make([]string, len(g.nodeOrder))
	copy(existing, g.nodeOrder)

	added := g.addMaterialNodes(m)

	for _, newID := range added {
		newNode := g.nodes[newID]
		for _, oldID := range existing {
			oldNode := g.nodes[oldID]
			if namesRelated(newNode.Name, oldNode.Name) {
				g.putEdge(&Edge{
					ID:       uuid.New().String(),
					SourceID: newNode.ID,
					TargetID: oldNode.ID,
					OwnerID:  m.ID,
					Weight:   similarityWeight,
					Kind:     EdgeKindSimilarity,
				})
			}
		}
	}

	return nil
}

// RemoveMaterial deletes a material's main node, its exclusively owned
// subtopic nodes, and every edge touching a removed node or owned by the
// material. Subtopic nodes still referenced by another material's
// structural edge are re-homed to that material instead of removed.
func (g *Graph) RemoveMaterial(materialID string) error {
	if _, exists := g.nodes[materialID]; !exists {
		return apperrors.NewNotFoundError("material node")
	}

	removed := map[string]bool{materialID: true}

	for _, id := range g.nodeOrder {
		node := g.nodes[id]
		if node.Type != NodeTypeSubtopic || node.MaterialID != materialID {
			continue
		}
		if owner := g.otherStructuralOwner(id, materialID); owner != "" {
			node.MaterialID = owner
		} else {
			removed[id] = true
		}
	}

	var keptEdges []string
	for _, id := range g.edgeOrder {
		edge := g.edges[id]
		if edge.OwnerID == materialID || removed[edge.SourceID] || removed[edge.TargetID] {
			delete(g.edges, id)
			continue
		}
		keptEdges = append(keptEdges, id)
	}
	g.edgeOrder = keptEdges

	var keptNodes []string
	for _, id := range g.nodeOrder {
		if removed[id] {
			delete(g.nodes, id)
			continue
		}
		keptNodes = append(keptNodes, id)
	}
	g.nodeOrder = keptNodes

	for keyword, nodeID := range g.keywords {
		if removed[nodeID] {
			delete(g.keywords, keyword)
		}
	}

	return nil
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	nodes := make([]Node, 0, len(g.nodeOrder))
	for _, id := range g.nodeOrder {
		nodes = append(nodes, *g.nodes[id])
	}
	return nodes
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, len(g.edgeOrder))
	for _, id := range g.edgeOrder {
		edges = append(edges, *g.edges[id])
	}
	return edges
}

// Data returns the node-link payload for the force-directed view.
func (g *Graph) Data() Data {
	data := Data{
		Nodes: g.Nodes(),
		Links: make([]Link, 0, len(g.edgeOrder)),
	}
	for _, id := range g.edgeOrder {
		edge := g.edges[id]
		data.Links = append(data.Links, Link{
			Source: edge.SourceID,
			Target: edge.TargetID,
			Value:  edge.Weight,
		})
	}
	return data
}

// SubtopicNode returns the graph-wide node ID for a keyword, if present.
func (g *Graph) SubtopicNode(keyword string) (string, bool) {
	id, ok := g.keywords[strings.ToLower(keyword)]
	return id, ok
}

// Validate checks the graph invariants: no dangling edge endpoints and at
// most one subtopic node per distinct lowercased keyword.
func (g *Graph) Validate() error {
	for _, id := range g.edgeOrder {
		edge := g.edges[id]
		if _, ok := g.nodes[edge.SourceID]; !ok {
			return apperrors.NewConflictError("edge references missing source node")
		}
		if _, ok := g.nodes[edge.TargetID]; !ok {
			return apperrors.NewConflictError("edge references missing target node")
		}
	}

	seen := make(map[string]string)
	for _, id := range g.nodeOrder {
		node := g.nodes[id]
		if node.Type != NodeTypeSubtopic {
			continue
		}
		key := strings.ToLower(node.Name)
		if prev, dup := seen[key]; dup && prev != node.ID {
			return apperrors.NewConflictError("duplicate subtopic node for keyword " + key)
		}
		seen[key] = node.ID
	}

	return nil
}

// addMaterialNodes inserts the main node, the (possibly shared) subtopic
// nodes, and structural edges for one material. Returns the IDs of nodes
// created by this call.
func (g *Graph) addMaterialNodes(m *material.Material) []string {
	var added []string

	main := &Node{
		ID:         m.ID,
		Name:       m.Title,
		Type:       NodeTypeMain,
		MaterialID: m.ID,
	}
	g.putNode(main)
	added = append(added, main.ID)

	for _, keyword := range m.Keywords {
		key := strings.ToLower(keyword)

		nodeID, exists := g.keywords[key]
		if !exists {
			node := &Node{
				ID:         uuid.New().String(),
				Name:       keyword,
				Type:       NodeTypeSubtopic,
				MaterialID: m.ID,
			}
			g.putNode(node)
			g.keywords[key] = node.ID
			nodeID = node.ID
			added = append(added, nodeID)
		}

		g.putEdge(&Edge{
			ID:       uuid.New().String(),
			SourceID: m.ID,
			TargetID: nodeID,
			OwnerID:  m.ID,
			Weight:   structuralWeight,
			Kind:     EdgeKindStructural,
		})
	}

	return added
}

// otherStructuralOwner finds the earliest structural edge to nodeID from a
// material other than excludeID and returns that material's ID.
func (g *Graph) otherStructuralOwner(nodeID, excludeID string) string {
	for _, id := range g.edgeOrder {
		edge := g.edges[id]
		if edge.Kind == EdgeKindStructural && edge.TargetID == nodeID && edge.OwnerID != excludeID {
			return edge.OwnerID
		}
	}
	return ""
}

func (g *Graph) putNode(node *Node) {
	g.nodes[node.ID] = node
	g.nodeOrder = append(g.nodeOrder, node.ID)
}

func (g *Graph) putEdge(edge *Edge) {
	g.edges[edge.ID] = edge
	g.edgeOrder = append(g.edgeOrder, edge.ID)
}

// namesRelated reports whether two node names share a token longer than
// four characters where one token contains the other, case-insensitively.
func namesRelated(a, b string) bool {
	tokensA := strings.Fields(strings.ToLower(a))
	tokensB := strings.Fields(strings.ToLower(b))

	for _, ta := range tokensA {
		if len(ta) <= minSharedTokenLen {
			continue
		}
		for _, tb := range tokensB {
			if len(tb) <= minSharedTokenLen {
				continue
			}
			if strings.Contains(ta, tb) || strings.Contains(tb, ta) {
				return true
			}
		}
	}
	return false
}
