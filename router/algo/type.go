package algo

import "github.com/sirupsen/logrus"

var log = logrus.WithField("module", "algo")

// NodeID OSM节点ID
type NodeID int64

// Neighbor 出边：到达节点与边权
type Neighbor struct {
	ID     NodeID
	Weight float64
}
