package algo

import (
	"iter"

	"github.com/samber/lo"
)

// Graph 构建期使用的邻接表
// from node -> to node -> weight
// 构建在单个goroutine内完成，不加锁
type Graph struct {
	edges map[NodeID]map[NodeID]float64
	// 有向边数
	size int
}

var _ Adjacency = (*Graph)(nil)

func NewGraph() *Graph {
	return &Graph{
		edges: make(map[NodeID]map[NodeID]float64),
	}
}

// Add 添加或覆盖from->to的边权，w<=CannotUse时忽略并返回false
func (g *Graph) Add(from, to NodeID, w float64) bool {
	if w <= CannotUse {
		return false
	}
	out, ok := g.edges[from]
	if !ok {
		out = make(map[NodeID]float64)
		g.edges[from] = out
	}
	if _, ok := out[to]; !ok {
		g.size++
	}
	out[to] = w
	return true
}

func (g *Graph) Len() int {
	return len(g.edges)
}

// EdgeCount 有向边数
func (g *Graph) EdgeCount() int {
	return g.size
}

func (g *Graph) Has(id NodeID) bool {
	_, ok := g.edges[id]
	return ok
}

func (g *Graph) HasConnection(from, to NodeID) bool {
	_, ok := g.edges[from][to]
	return ok
}

func (g *Graph) Weight(from, to NodeID) float64 {
	if w, ok := g.edges[from][to]; ok {
		return w
	}
	return CannotUse
}

func (g *Graph) Neighbors(id NodeID) []Neighbor {
	out := g.edges[id]
	return lo.MapToSlice(out, func(to NodeID, w float64) Neighbor {
		return Neighbor{ID: to, Weight: w}
	})
}

func (g *Graph) Edges(id NodeID) iter.Seq2[NodeID, float64] {
	return func(yield func(NodeID, float64) bool) {
		for to, w := range g.edges[id] {
			if !yield(to, w) {
				return
			}
		}
	}
}

func (g *Graph) Nodes() []NodeID {
	return lo.Keys(g.edges)
}
