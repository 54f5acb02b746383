package restriction

import (
	"slices"

	"git.fiblab.net/sim/waygraph/router/algo"
	"github.com/samber/lo"
)

// sequence 关系成员的节点分组：一个from组、若干via组、一个to组
type sequence struct {
	nodes [][]algo.NodeID
}

func newSequence(r Relation) (*sequence, error) {
	from, okFrom := lo.Find(r.Members, func(m Member) bool { return m.Role == RoleFrom })
	to, okTo := lo.Find(r.Members, func(m Member) bool { return m.Role == RoleTo })
	if !okFrom || !okTo || len(from.Nodes) == 0 || len(to.Nodes) < 2 {
		return nil, ErrIncomplete
	}
	s := &sequence{nodes: [][]algo.NodeID{slices.Clone(from.Nodes)}}
	for _, m := range r.Members {
		if m.Role != RoleVia {
			continue
		}
		if len(m.Nodes) == 0 {
			return nil, ErrIncomplete
		}
		s.nodes = append(s.nodes, slices.Clone(m.Nodes))
	}
	s.nodes = append(s.nodes, slices.Clone(to.Nodes))
	return s, nil
}

// sort 调整各组方向使相邻组首尾相接，例如 [[a b] [b c] [c] [c d e] [e f]]
func (s *sequence) sort() error {
	for i, j := 0, 1; j < len(s.nodes); i, j = i+1, j+1 {
		common, ok := lo.Find(s.nodes[i], func(n algo.NodeID) bool {
			return slices.Contains(s.nodes[j], n)
		})
		if !ok {
			return ErrUnsortable
		}
		if s.nodes[j][0] != common {
			slices.Reverse(s.nodes[j])
		}
		// 只有from组可以反转，否则中间组可能被反转两次
		if i == 0 && last(s.nodes[i]) != common {
			slices.Reverse(s.nodes[i])
		}
		if last(s.nodes[i]) != s.nodes[j][0] {
			return ErrUnsortable
		}
	}
	return nil
}

func last(nodes []algo.NodeID) algo.NodeID {
	return nodes[len(nodes)-1]
}

// fromNodes from组的最后一个独有节点和第一个连接节点
func (s *sequence) fromNodes() [2]algo.NodeID {
	from := s.nodes[0]
	nextToLast := from[len(from)-1]
	if len(from) > 1 {
		nextToLast = from[len(from)-2]
	}
	return [2]algo.NodeID{nextToLast, s.nodes[1][0]}
}

// viaNodes via组中的节点，不含与前一组共享的连接节点
func (s *sequence) viaNodes() []algo.NodeID {
	via := make([]algo.NodeID, 0)
	for i := 1; i < len(s.nodes)-1; i++ {
		via = append(via, s.nodes[i][1:]...)
	}
	return via
}

// toNode to组的第一个独有节点
func (s *sequence) toNode() algo.NodeID {
	return s.nodes[len(s.nodes)-1][1]
}

func (s *sequence) allNodes() []algo.NodeID {
	from := s.fromNodes()
	all := append(from[:], s.viaNodes()...)
	return append(all, s.toNode())
}
