package router

import (
	"git.fiblab.net/sim/waygraph/router/access"
	"git.fiblab.net/sim/waygraph/router/algo"
	"git.fiblab.net/sim/waygraph/router/profile"
	"git.fiblab.net/sim/waygraph/router/restriction"
	"git.fiblab.net/sim/waygraph/router/tag"
)

// Segment 带标签的路段（OSM way），节点按顺序排列
type Segment interface {
	access.Tagged
	NodeIDs() []algo.NodeID
}

// Direction 单行方向
type Direction int

const (
	Both Direction = iota
	// 仅沿节点顺序
	Forward
	// 仅逆节点顺序
	Reverse
)

// ParseOneWay 解析oneway取值，参考 https://wiki.openstreetmap.org/wiki/Key:oneway
func ParseOneWay(value string) Direction {
	switch value {
	case "yes", "true", "1":
		return Forward
	case "-1", "reverse":
		return Reverse
	default:
		return Both
	}
}

// Stats 构建过程计数
type Stats struct {
	Ingested int
	// 至少添加了一条边
	Accepted int
	// 权重不可用
	RejectedWeight int
	// 通行标签禁止
	RejectedAccess int
	// 少于2个节点
	Degenerate int
	// 无法解析的转向限制
	InvalidRelations int
}

// Builder 为单一出行方式构建有向带权图
// 非并发安全，每种出行方式使用独立的Builder
type Builder struct {
	profile    *profile.Profile
	accessKeys []string
	graph      *algo.Graph
	rules      *restriction.Set
	stats      Stats
}

func NewBuilder(p *profile.Profile) *Builder {
	return &Builder{
		profile:    p,
		accessKeys: p.AccessKeys(),
		graph:      algo.NewGraph(),
		rules:      restriction.NewSet(p),
	}
}

func (b *Builder) Mode() string {
	return b.profile.Name()
}

func tagValue(s access.Tagged, key string) string {
	v, _ := s.Tag(key)
	return v
}

// direction 路段对当前出行方式的通行方向
func (b *Builder) direction(s Segment) Direction {
	oneway := tagValue(s, tag.OneWay)
	if oneway == "" {
		// 环岛与高速公路默认单行
		junction := tagValue(s, tag.JunctionType)
		if junction == tag.Roundabout || junction == tag.Circular || tagValue(s, tag.RoadType) == tag.Freeway {
			oneway = "yes"
		}
	}
	dir := ParseOneWay(oneway)
	if b.Mode() == tag.ByFoot {
		// 步行不受单行限制
		return Both
	}
	if dir != Both && tagValue(s, tag.ForMode(tag.OneWay, b.Mode())) == "no" {
		return Both
	}
	return dir
}

// weight 优先按道路类型取权重，不可用时按轨道类型
func (b *Builder) weight(s Segment) float64 {
	weight := algo.CannotUse
	if roadType, ok := s.Tag(tag.RoadType); ok {
		if w, ok := b.profile.Weight(roadType); ok {
			weight = w
		}
	}
	if weight <= algo.CannotUse {
		// TODO: 道路类型不可用时改用轨道类型的依据不明确，需确认是否保留
		if railType, ok := s.Tag(tag.RailType); ok {
			if w, ok := b.profile.Weight(railType); ok {
				weight = w
			}
		}
	}
	return weight
}

// Ingest 将路段的相邻节点对按方向和权重加入图中，至少添加一条边时返回true
func (b *Builder) Ingest(s Segment) bool {
	b.stats.Ingested++
	dir := b.direction(s)
	weight := b.weight(s)
	if weight <= algo.CannotUse {
		b.stats.RejectedWeight++
		return false
	}
	res := access.Resolve(s, b.accessKeys)
	if res.Key != "" && res.Decision == access.Unrecognized {
		log.Debugf("%s: unrecognized %s=%s treated as allowed", b.Mode(), res.Key, res.Value)
	}
	if !res.Allowed {
		b.stats.RejectedAccess++
		return false
	}
	nodes := s.NodeIDs()
	if len(nodes) < 2 {
		b.stats.Degenerate++
		return false
	}
	added := false
	for i := 1; i < len(nodes); i++ {
		n1, n2 := nodes[i-1], nodes[i]
		if dir != Reverse {
			added = b.graph.Add(n1, n2, weight) || added
		}
		if dir != Forward {
			added = b.graph.Add(n2, n1, weight) || added
		}
	}
	if added {
		b.stats.Accepted++
	}
	return added
}

// AddRelation 加入转向限制关系，不适用于当前出行方式的关系被忽略
func (b *Builder) AddRelation(r restriction.Relation) error {
	if err := b.rules.Add(r); err != nil {
		b.stats.InvalidRelations++
		return err
	}
	return nil
}

// Graph 构建中的邻接表
func (b *Builder) Graph() *algo.Graph {
	return b.graph
}

// Freeze 构建完成后的只读图
func (b *Builder) Freeze() *algo.Compact {
	return b.graph.Freeze()
}

func (b *Builder) Restrictions() *restriction.Set {
	return b.rules
}

func (b *Builder) Stats() Stats {
	return b.stats
}
