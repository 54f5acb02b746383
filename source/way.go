// Package source 从OSM文件、MongoDB或本地缓存读取带标签的路段与转向限制关系
package source

import (
	"strings"

	"git.fiblab.net/sim/waygraph/router"
	"git.fiblab.net/sim/waygraph/router/algo"
	"git.fiblab.net/sim/waygraph/router/restriction"
	"git.fiblab.net/sim/waygraph/router/tag"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("module", "source")

// Way 路段，节点按顺序排列
type Way struct {
	ID    int64             `bson:"id"`
	Nodes []algo.NodeID     `bson:"nodes"`
	Tags  map[string]string `bson:"tags"`
}

var _ router.Segment = Way{}

func (w Way) Tag(key string) (string, bool) {
	v, ok := w.Tags[key]
	return v, ok
}

func (w Way) NodeIDs() []algo.NodeID {
	return w.Nodes
}

// Dataset 一次读取得到的全部路段与转向限制
type Dataset struct {
	Ways      []Way                  `bson:"ways"`
	Relations []restriction.Relation `bson:"relations"`
}

// Segments 以router.Segment形式返回全部路段
func (d *Dataset) Segments() []router.Segment {
	return lo.Map(d.Ways, func(w Way, _ int) router.Segment {
		return w
	})
}

// routable 是否为道路或轨道
func routable(tags map[string]string) bool {
	_, road := tags[tag.RoadType]
	_, rail := tags[tag.RailType]
	return road || rail
}

// normalize 归并道路类型的同义取值，原地修改
func normalize(tags map[string]string) {
	if roadType, ok := tags[tag.RoadType]; ok {
		if canonical, ok := tag.WayTypeSynonyms[roadType]; ok {
			tags[tag.RoadType] = canonical
		}
	}
}

// 关系成员类型
const (
	memberNode = "node"
	memberWay  = "way"
)

// rawMember 未展开的关系成员
type rawMember struct {
	Type string `bson:"type"`
	Ref  int64  `bson:"ref"`
	Role string `bson:"role"`
}

type rawRelation struct {
	ID      int64             `bson:"id"`
	Tags    map[string]string `bson:"tags"`
	Members []rawMember       `bson:"members"`
}

// isRestriction type=restriction 或 type=restriction:<mode>
func isRestriction(tags map[string]string) bool {
	return strings.HasPrefix(tags[tag.Type], tag.Restriction)
}

// resolve 将way成员展开为节点序列，找不到的way展开为空序列
func resolve(ways []Way, raws []rawRelation) []restriction.Relation {
	index := make(map[int64][]algo.NodeID, len(ways))
	for _, w := range ways {
		index[w.ID] = w.Nodes
	}
	relations := make([]restriction.Relation, 0, len(raws))
	for _, raw := range raws {
		rel := restriction.Relation{
			ID:      raw.ID,
			Tags:    raw.Tags,
			Members: make([]restriction.Member, 0, len(raw.Members)),
		}
		for _, m := range raw.Members {
			var nodes []algo.NodeID
			switch m.Type {
			case memberNode:
				nodes = []algo.NodeID{algo.NodeID(m.Ref)}
			case memberWay:
				nodes = index[m.Ref]
				if nodes == nil {
					log.Debugf("relation %d: way %d not found", raw.ID, m.Ref)
				}
			default:
				continue
			}
			rel.Members = append(rel.Members, restriction.Member{Role: m.Role, Nodes: nodes})
		}
		relations = append(relations, rel)
	}
	return relations
}
