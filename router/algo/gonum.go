package algo

import (
	"math"

	"gonum.org/v1/gonum/graph/simple"
)

// InverseWeight 默认代价：权重越大代价越小
func InverseWeight(w float64) float64 {
	return 1 / w
}

// ToGonum 转换为gonum有向带权图，供外部最短路算法使用
// cost将偏好权重转换为路径代价，为nil时使用InverseWeight；自环被忽略
func ToGonum(a Adjacency, cost func(float64) float64) *simple.WeightedDirectedGraph {
	if cost == nil {
		cost = InverseWeight
	}
	g := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for _, from := range a.Nodes() {
		if g.Node(int64(from)) == nil {
			g.AddNode(simple.Node(from))
		}
		for to, w := range a.Edges(from) {
			if to == from {
				continue
			}
			g.SetWeightedEdge(simple.WeightedEdge{
				F: simple.Node(from),
				T: simple.Node(to),
				W: cost(w),
			})
		}
	}
	return g
}
