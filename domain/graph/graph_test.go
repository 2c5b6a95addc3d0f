package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studymesh-backend/domain/material"
)

func mat(id, title string, keywords ...string) material.Material {
	return material.Material{
		ID:        id,
		Title:     title,
		Keywords:  keywords,
		CreatedAt: time.Now(),
	}
}

// shape flattens a graph into an id-independent form for comparisons, so
// determinism checks ignore generated uuids.
type edgeShape struct {
	source string
	target string
	weight float64
}

func shape(g *Graph) (nodes []string, edges []edgeShape) {
	names := make(map[string]string)
	for _, n := range g.Nodes() {
		names[n.ID] = string(n.Type) + ":" + n.Name
		nodes = append(nodes, names[n.ID])
	}
	for _, e := range g.Edges() {
		edges = append(edges, edgeShape{
			source: names[e.SourceID],
			target: names[e.TargetID],
			weight: e.Weight,
		})
	}
	return nodes, edges
}

func TestRebuild(t *testing.T) {
	materials := []material.Material{
		mat("m1", "Biology", "Cells", "Energy"),
		mat("m2", "Chemistry", "Energy", "Atoms"),
	}

	t.Run("deterministic and order-preserving", func(t *testing.T) {
		g1 := New()
		g1.Rebuild(materials)
		g2 := New()
		g2.Rebuild(materials)

		nodes1, edges1 := shape(g1)
		nodes2, edges2 := shape(g2)
		assert.Equal(t, nodes1, nodes2)
		assert.Equal(t, edges1, edges2)
	})

	t.Run("shared keyword is deduplicated with two structural edges", func(t *testing.T) {
		g := New()
		g.Rebuild(materials)

		energyID, ok := g.SubtopicNode("energy")
		require.True(t, ok)

		subtopics := 0
		for _, n := range g.Nodes() {
			if n.Type == NodeTypeSubtopic && n.Name == "Energy" {
				subtopics++
			}
		}
		assert.Equal(t, 1, subtopics)

		inbound := 0
		for _, e := range g.Edges() {
			if e.TargetID == energyID && e.Kind == EdgeKindStructural {
				inbound++
				assert.Equal(t, 1.0, e.Weight)
			}
		}
		assert.Equal(t, 2, inbound)

		require.NoError(t, g.Validate())
	})

	t.Run("main node id equals material id", func(t *testing.T) {
		g := New()
		g.Rebuild(materials)

		nodes := g.Nodes()
		require.NotEmpty(t, nodes)
		assert.Equal(t, "m1", nodes[0].ID)
		assert.Equal(t, NodeTypeMain, nodes[0].Type)
	})
}

func TestAddMaterial(t *testing.T) {
	t.Run("dedupes keywords against the whole graph", func(t *testing.T) {
		g := New()
		first := mat("m1", "Biology", "Energy")
		require.NoError(t, g.AddMaterial(&first))

		second := mat("m2", "Chemistry", "Energy")
		require.NoError(t, g.AddMaterial(&second))

		count := 0
		for _, n := range g.Nodes() {
			if n.Type == NodeTypeSubtopic {
				count++
			}
		}
		assert.Equal(t, 1, count)
		require.NoError(t, g.Validate())
	})

	t.Run("adds similarity edges for related names", func(t *testing.T) {
		g := New()
		first := mat("m1", "Alpha", "Thermodynamics")
		require.NoError(t, g.AddMaterial(&first))

		second := mat("m2", "Beta", "Thermo")
		require.NoError(t, g.AddMaterial(&second))

		var similarities []Edge
		for _, e := range g.Edges() {
			if e.Kind == EdgeKindSimilarity {
				similarities = append(similarities, e)
			}
		}
		require.NotEmpty(t, similarities)
		for _, e := range similarities {
			assert.Equal(t, 0.5, e.Weight)
			assert.Equal(t, "m2", e.OwnerID)
		}
	})

	t.Run("short shared tokens do not relate names", func(t *testing.T) {
		assert.False(t, namesRelated("The cat", "A cat nap"))
		assert.True(t, namesRelated("Quantum mechanics", "Quantum field theory"))
		assert.True(t, namesRelated("Thermodynamics", "Thermo"))
		assert.False(t, namesRelated("Algebra", "Geometry"))
	})

	t.Run("duplicate material is rejected", func(t *testing.T) {
		g := New()
		m := mat("m1", "Biology", "Cells")
		require.NoError(t, g.AddMaterial(&m))
		assert.Error(t, g.AddMaterial(&m))
	})
}

func TestRemoveMaterial(t *testing.T) {
	t.Run("removes nodes and every touching edge", func(t *testing.T) {
		g := New()
		first := mat("m1", "Biology", "Cells", "Energy")
		second := mat("m2", "Chemistry", "Atoms")
		require.NoError(t, g.AddMaterial(&first))
		require.NoError(t, g.AddMaterial(&second))

		require.NoError(t, g.RemoveMaterial("m1"))

		for _, n := range g.Nodes() {
			assert.NotEqual(t, "m1", n.MaterialID)
			assert.NotEqual(t, "m1", n.ID)
		}
		for _, e := range g.Edges() {
			assert.NotEqual(t, "m1", e.SourceID)
			assert.NotEqual(t, "m1", e.TargetID)
			assert.NotEqual(t, "m1", e.OwnerID)
		}
		require.NoError(t, g.Validate())
	})

	t.Run("shared subtopic node is re-homed, not orphaned", func(t *testing.T) {
		g := New()
		first := mat("m1", "Biology", "Energy")
		second := mat("m2", "Chemistry", "Energy")
		require.NoError(t, g.AddMaterial(&first))
		require.NoError(t, g.AddMaterial(&second))

		require.NoError(t, g.RemoveMaterial("m1"))

		energyID, ok := g.SubtopicNode("energy")
		require.True(t, ok, "shared keyword node must survive")

		var energy *Node
		for _, n := range g.Nodes() {
			if n.ID == energyID {
				node := n
				energy = &node
			}
		}
		require.NotNil(t, energy)
		assert.Equal(t, "m2", energy.MaterialID)

		// m2's structural edge to the shared node survives.
		found := false
		for _, e := range g.Edges() {
			if e.OwnerID == "m2" && e.TargetID == energyID && e.Kind == EdgeKindStructural {
				found = true
			}
		}
		assert.True(t, found)
		require.NoError(t, g.Validate())
	})

	t.Run("unknown material errors", func(t *testing.T) {
		g := New()
		assert.Error(t, g.RemoveMaterial("nope"))
	})
}

func TestData(t *testing.T) {
	g := New()
	m := mat("m1", "Biology", "Cells")
	require.NoError(t, g.AddMaterial(&m))

	data := g.Data()
	require.Len(t, data.Nodes, 2)
	require.Len(t, data.Links, 1)
	assert.Equal(t, "m1", data.Links[0].Source)
	assert.Equal(t, 1.0, data.Links[0].Value)
}
