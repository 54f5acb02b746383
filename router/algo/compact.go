package algo

import (
	"iter"
	"slices"
	"sort"
)

// Compact 只读的压缩邻接表（CSR）
// ids有序，节点ids[i]的出边为targets/weights[offsets[i]:offsets[i+1]]，按目标节点有序
type Compact struct {
	ids     []NodeID
	offsets []int
	targets []NodeID
	weights []float64
}

var _ Adjacency = (*Compact)(nil)

// Freeze 将邻接表转换为只读的压缩格式
func (g *Graph) Freeze() *Compact {
	ids := g.Nodes()
	slices.Sort(ids)
	c := &Compact{
		ids:     ids,
		offsets: make([]int, 0, len(ids)+1),
		targets: make([]NodeID, 0, g.size),
		weights: make([]float64, 0, g.size),
	}
	for _, id := range ids {
		c.offsets = append(c.offsets, len(c.targets))
		out := g.edges[id]
		tos := make([]NodeID, 0, len(out))
		for to := range out {
			tos = append(tos, to)
		}
		slices.Sort(tos)
		for _, to := range tos {
			c.targets = append(c.targets, to)
			c.weights = append(c.weights, out[to])
		}
	}
	c.offsets = append(c.offsets, len(c.targets))
	return c
}

// 节点出边在targets中的范围，不存在时ok为false
func (c *Compact) span(id NodeID) (lo, hi int, ok bool) {
	i, found := slices.BinarySearch(c.ids, id)
	if !found {
		return 0, 0, false
	}
	return c.offsets[i], c.offsets[i+1], true
}

func (c *Compact) Len() int {
	return len(c.ids)
}

// EdgeCount 有向边数
func (c *Compact) EdgeCount() int {
	return len(c.targets)
}

func (c *Compact) Has(id NodeID) bool {
	_, found := slices.BinarySearch(c.ids, id)
	return found
}

func (c *Compact) find(from, to NodeID) (int, bool) {
	lo, hi, ok := c.span(from)
	if !ok {
		return 0, false
	}
	run := c.targets[lo:hi]
	j := sort.Search(len(run), func(k int) bool { return run[k] >= to })
	if j < len(run) && run[j] == to {
		return lo + j, true
	}
	return 0, false
}

func (c *Compact) HasConnection(from, to NodeID) bool {
	_, ok := c.find(from, to)
	return ok
}

func (c *Compact) Weight(from, to NodeID) float64 {
	if i, ok := c.find(from, to); ok {
		return c.weights[i]
	}
	return CannotUse
}

func (c *Compact) Neighbors(id NodeID) []Neighbor {
	lo, hi, _ := c.span(id)
	out := make([]Neighbor, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, Neighbor{ID: c.targets[i], Weight: c.weights[i]})
	}
	return out
}

func (c *Compact) Edges(id NodeID) iter.Seq2[NodeID, float64] {
	return func(yield func(NodeID, float64) bool) {
		lo, hi, _ := c.span(id)
		for i := lo; i < hi; i++ {
			if !yield(c.targets[i], c.weights[i]) {
				return
			}
		}
	}
}

func (c *Compact) Nodes() []NodeID {
	return slices.Clone(c.ids)
}
