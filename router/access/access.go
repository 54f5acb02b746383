// Package access 根据OSM通行标签判断出行方式能否使用某条路
package access

import "strings"

// Tagged 可按键查询标签的对象
type Tagged interface {
	Tag(key string) (string, bool)
}

// Decision 通行标签取值的分类
type Decision int

const (
	Unrecognized Decision = iota
	Grant
	Deny
)

func (d Decision) String() string {
	switch d {
	case Grant:
		return "grant"
	case Deny:
		return "deny"
	default:
		return "unrecognized"
	}
}

var (
	denyValues  = []string{"no", "private"}
	grantValues = map[string]struct{}{
		"yes":          {},
		"true":         {},
		"1":            {},
		"designated":   {},
		"permissive":   {},
		"destination":  {},
		"delivery":     {},
		"customers":    {},
		"official":     {},
		"permit":       {},
		"agricultural": {},
		"forestry":     {},
		"discouraged":  {},
		"use_sidepath": {},
		"dismount":     {},
	}
)

// Classify 将标签取值归为禁止、允许或未识别，区分大小写
// 以no或private开头的取值一律禁止，包括 none、no;destination、private @ (Mo-Fr) 等
func Classify(value string) Decision {
	for _, d := range denyValues {
		if strings.HasPrefix(value, d) {
			return Deny
		}
	}
	if _, ok := grantValues[value]; ok {
		return Grant
	}
	return Unrecognized
}

// Result 通行判定结果
type Result struct {
	Allowed bool
	// 决定结果的最后一个出现的标签键，为空表示没有任何标签
	Key      string
	Value    string
	Decision Decision
}

// Resolve 按keys顺序（由一般到具体）依次检查标签，最后出现的键决定结果
// 未识别的取值与允许同等对待
func Resolve(t Tagged, keys []string) Result {
	res := Result{Allowed: true}
	for _, key := range keys {
		value, ok := t.Tag(key)
		if !ok {
			continue
		}
		d := Classify(value)
		res = Result{
			Allowed:  d != Deny,
			Key:      key,
			Value:    value,
			Decision: d,
		}
	}
	return res
}

// Allowed 出行方式是否可使用t
func Allowed(t Tagged, keys []string) bool {
	return Resolve(t, keys).Allowed
}

// Tags 以map表示的标签集合
type Tags map[string]string

func (t Tags) Tag(key string) (string, bool) {
	v, ok := t[key]
	return v, ok
}
