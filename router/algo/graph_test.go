package algo_test

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"git.fiblab.net/sim/waygraph/router/algo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

// 1 <-> 2 -> 3, 2 -> 4
func sampleGraph() *algo.Graph {
	g := algo.NewGraph()
	g.Add(1, 2, 2)
	g.Add(2, 1, 2)
	g.Add(2, 3, 0.5)
	g.Add(2, 4, 1.5)
	return g
}

func sortNeighbors(ns []algo.Neighbor) []algo.Neighbor {
	sort.Slice(ns, func(i, j int) bool { return ns[i].ID < ns[j].ID })
	return ns
}

func testAdjacency(t *testing.T, a algo.Adjacency) {
	assert.Equal(t, 2, a.Len())
	assert.True(t, a.Has(1))
	assert.True(t, a.Has(2))
	// 只有入边的节点不是起点
	assert.False(t, a.Has(3))
	assert.False(t, a.Has(12))

	assert.True(t, a.HasConnection(1, 2))
	assert.True(t, a.HasConnection(2, 3))
	assert.False(t, a.HasConnection(3, 2))
	assert.False(t, a.HasConnection(12, 10))
	assert.False(t, a.HasConnection(1, 1024))

	assert.Equal(t, 2.0, a.Weight(1, 2))
	assert.Equal(t, 0.5, a.Weight(2, 3))
	assert.Equal(t, algo.CannotUse, a.Weight(3, 2))
	assert.Equal(t, algo.CannotUse, a.Weight(99, 100))

	assert.Equal(t, []algo.Neighbor{
		{ID: 1, Weight: 2}, {ID: 3, Weight: 0.5}, {ID: 4, Weight: 1.5},
	}, sortNeighbors(a.Neighbors(2)))
	assert.Empty(t, a.Neighbors(99))

	nodes := a.Nodes()
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	assert.Equal(t, []algo.NodeID{1, 2}, nodes)

	// 序列可重复遍历
	for range 2 {
		count := 0
		for to, w := range a.Edges(2) {
			assert.Equal(t, a.Weight(2, to), w)
			count++
		}
		assert.Equal(t, 3, count)
	}
	// 提前终止
	count := 0
	for range a.Edges(2) {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestGraph(t *testing.T) {
	testAdjacency(t, sampleGraph())
}

func TestCompact(t *testing.T) {
	g := sampleGraph()
	c := g.Freeze()
	testAdjacency(t, c)
	assert.Equal(t, g.EdgeCount(), c.EdgeCount())
	// 有序存储
	assert.Equal(t, []algo.Neighbor{
		{ID: 1, Weight: 2}, {ID: 3, Weight: 0.5}, {ID: 4, Weight: 1.5},
	}, c.Neighbors(2))
}

func TestCompactEmpty(t *testing.T) {
	c := algo.NewGraph().Freeze()
	assert.Equal(t, 0, c.Len())
	assert.False(t, c.Has(1))
	assert.Equal(t, algo.CannotUse, c.Weight(1, 2))
	assert.Empty(t, c.Neighbors(1))
	assert.Empty(t, c.Nodes())
}

func TestAddIgnoresImpassable(t *testing.T) {
	g := algo.NewGraph()
	assert.False(t, g.Add(1, 2, 0))
	assert.False(t, g.Add(1, 2, -1))
	assert.Equal(t, 0, g.Len())
	assert.False(t, g.Has(1))
}

func TestAddOverwrites(t *testing.T) {
	g := algo.NewGraph()
	g.Add(1, 2, 1)
	g.Add(1, 2, 3)
	assert.Equal(t, 3.0, g.Weight(1, 2))
	assert.Equal(t, 1, g.EdgeCount())
	assert.Len(t, g.Neighbors(1), 1)
}

func TestProject(t *testing.T) {
	a := sampleGraph().Freeze()
	options := algo.Project(a, 2, func(n algo.Neighbor) string {
		return fmt.Sprintf("%d:%.1f", n.ID, n.Weight)
	})
	sort.Strings(options)
	assert.Equal(t, []string{"1:2.0", "3:0.5", "4:1.5"}, options)
	assert.Empty(t, algo.Project(a, 99, func(n algo.Neighbor) int { return 0 }))
}

func TestEnsure(t *testing.T) {
	a := sampleGraph()
	assert.NotPanics(t, func() { algo.Ensure(a, 1, 2) })
	assert.Panics(t, func() { algo.Ensure(a, 1, 3) })
}

func TestToGonum(t *testing.T) {
	g := sampleGraph()
	g.Add(4, 4, 1)
	gg := algo.ToGonum(g.Freeze(), nil)

	e := gg.WeightedEdge(2, 3)
	require.NotNil(t, e)
	assert.Equal(t, 2.0, e.Weight())
	assert.Nil(t, gg.WeightedEdge(3, 2))
	assert.Nil(t, gg.WeightedEdge(4, 4))

	// 外部搜索：1 -> 2 -> 3 可达
	shortest, _ := path.AStar(simple.Node(1), simple.Node(3), gg, nil)
	nodes, cost := shortest.To(3)
	assert.Len(t, nodes, 3)
	assert.InDelta(t, 0.5+2.0, cost, 1e-9)

	// 3 无出边，到 1 不可达
	shortest, _ = path.AStar(simple.Node(3), simple.Node(1), gg, nil)
	nodes, cost = shortest.To(1)
	assert.Empty(t, nodes)
	assert.True(t, math.IsInf(cost, 1))
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "NoRoute", algo.NoRoute.String())
	assert.Equal(t, "Success", algo.Success.String())
	assert.Equal(t, "GaveUp", algo.GaveUp.String())
	assert.Equal(t, "Unknown", algo.Status(9).String())
}
