package algo

import "errors"

const (
	// 不可通行的边权，权重小于等于该值的边不会被存储
	CannotUse = 0.0
)

// Status 外部路径搜索的结果
type Status int

const (
	// 起终点不连通
	NoRoute Status = iota
	// 找到连接起终点的节点序列
	Success
	// 搜索次数超出上限
	GaveUp
)

func (s Status) String() string {
	switch s {
	case NoRoute:
		return "NoRoute"
	case Success:
		return "Success"
	case GaveUp:
		return "GaveUp"
	default:
		return "Unknown"
	}
}

var (
	// 错误：节点不在图中
	ErrNodeNotFound = errors.New("node does not exist in the graph")
)
