// Package restriction 按出行方式解析OSM转向限制关系（no_* / only_*）
//
// 参考 https://wiki.openstreetmap.org/wiki/Relation:restriction
package restriction

import (
	"errors"
	"iter"
	"slices"
	"strings"

	"git.fiblab.net/sim/waygraph/router/algo"
	"git.fiblab.net/sim/waygraph/router/profile"
	"git.fiblab.net/sim/waygraph/router/tag"
	"github.com/samber/lo"
)

// 关系成员角色
const (
	RoleFrom = "from"
	RoleVia  = "via"
	RoleTo   = "to"
)

const (
	forbidPrefix  = "no_"
	requirePrefix = "only_"
)

var (
	// 错误：缺少from或to成员
	ErrIncomplete = errors.New("restriction relation is missing from/via/to nodes")
	// 错误：成员节点无法首尾相接
	ErrUnsortable = errors.New("restriction relation members are not connected")
)

// Member 关系成员，way成员展开为其节点序列，node成员为单个节点
type Member struct {
	Role  string
	Nodes []algo.NodeID
}

// Relation 转向限制关系
type Relation struct {
	ID      int64
	Tags    map[string]string
	Members []Member
}

// Set 某出行方式的禁止与强制节点序列
type Set struct {
	mode       string
	accessKeys []string
	// no_*：禁止经过的节点序列
	forbidden [][]algo.NodeID
	// only_*：经过from节点对后必须依次经过的节点
	required map[[2]algo.NodeID][]algo.NodeID
}

func NewSet(p *profile.Profile) *Set {
	return &Set{
		mode:       p.Name(),
		accessKeys: p.AccessKeys(),
		forbidden:  make([][]algo.NodeID, 0),
		required:   make(map[[2]algo.NodeID][]algo.NodeID),
	}
}

// rule 返回适用于当前出行方式的限制类型，不适用时ok为false
func (s *Set) rule(r Relation) (string, bool) {
	// 出行方式被豁免
	exceptions := strings.Split(r.Tags[tag.Exception], ";")
	for i := range exceptions {
		exceptions[i] = strings.TrimSpace(exceptions[i])
	}
	if len(lo.Intersect(exceptions, s.accessKeys)) > 0 {
		return "", false
	}
	modeRestriction := tag.ForMode(tag.Restriction, s.mode)
	if s.mode == tag.ByFoot {
		// 步行只遵守显式的限制
		if _, ok := r.Tags[modeRestriction]; !ok && r.Tags[tag.Type] != modeRestriction {
			return "", false
		}
	}
	rule, ok := r.Tags[modeRestriction]
	if !ok {
		rule, ok = r.Tags[tag.Restriction]
	}
	if !ok || !(strings.HasPrefix(rule, forbidPrefix) || strings.HasPrefix(rule, requirePrefix)) {
		return "", false
	}
	return rule, true
}

// Add 加入一条关系，不适用于当前出行方式的关系被忽略
func (s *Set) Add(r Relation) error {
	rule, ok := s.rule(r)
	if !ok {
		return nil
	}
	seq, err := newSequence(r)
	if err != nil {
		return err
	}
	if err := seq.sort(); err != nil {
		return err
	}
	if strings.HasPrefix(rule, forbidPrefix) {
		s.forbidden = append(s.forbidden, seq.allNodes())
	} else {
		s.required[seq.fromNodes()] = append(seq.viaNodes(), seq.toNode())
	}
	return nil
}

// Len 限制条目数
func (s *Set) Len() int {
	return len(s.forbidden) + len(s.required)
}

// Forbids 路线中是否包含被禁止的连续节点序列
func (s *Set) Forbids(route []algo.NodeID) bool {
	for _, pattern := range s.forbidden {
		if containsRun(route, pattern) {
			return true
		}
	}
	return false
}

// Required 路线以某个only_*限制的from节点对结尾时，返回之后必须经过的节点
func (s *Set) Required(route []algo.NodeID) []algo.NodeID {
	if len(route) < 2 {
		return nil
	}
	key := [2]algo.NodeID{route[len(route)-2], route[len(route)-1]}
	return slices.Clone(s.required[key])
}

// Forbidden 遍历所有禁止序列
func (s *Set) Forbidden() iter.Seq[[]algo.NodeID] {
	return func(yield func([]algo.NodeID) bool) {
		for _, p := range s.forbidden {
			if !yield(slices.Clone(p)) {
				return
			}
		}
	}
}

// Mandatory 遍历所有强制序列：from节点对 -> 必经节点
func (s *Set) Mandatory() iter.Seq2[[2]algo.NodeID, []algo.NodeID] {
	return func(yield func([2]algo.NodeID, []algo.NodeID) bool) {
		for from, nodes := range s.required {
			if !yield(from, slices.Clone(nodes)) {
				return
			}
		}
	}
}

func containsRun(route, pattern []algo.NodeID) bool {
	if len(pattern) == 0 || len(pattern) > len(route) {
		return false
	}
	for i := 0; i+len(pattern) <= len(route); i++ {
		if slices.Equal(route[i:i+len(pattern)], pattern) {
			return true
		}
	}
	return false
}
