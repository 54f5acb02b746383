package algo

import "iter"

// Adjacency 有向带权邻接结构的只读查询接口
// 构建完成后不再修改，可无锁并发读
type Adjacency interface {
	// 至少有一条出边的节点数
	Len() int
	// 节点是否存在（作为出边起点）
	Has(id NodeID) bool
	// from到to是否有边
	HasConnection(from, to NodeID) bool
	// from到to的边权，不连通时返回CannotUse
	Weight(from, to NodeID) float64
	// 节点的所有出边，顺序不定
	Neighbors(id NodeID) []Neighbor
	// 节点出边的可重复遍历序列，顺序不定
	Edges(id NodeID) iter.Seq2[NodeID, float64]
	// 所有出边起点
	Nodes() []NodeID
}

// Project 将节点的每条出边经fn映射为结果，例如转换为候选路线
func Project[T any](a Adjacency, id NodeID, fn func(Neighbor) T) []T {
	out := make([]T, 0)
	for to, w := range a.Edges(id) {
		out = append(out, fn(Neighbor{ID: to, Weight: w}))
	}
	return out
}

// Ensure 检查所有节点都已在图中，仅用于开发调试，不满足时panic
func Ensure(a Adjacency, ids ...NodeID) {
	for _, id := range ids {
		if !a.Has(id) {
			log.Panicf("%v: %d", ErrNodeNotFound, id)
		}
	}
}
