// Package profile 出行方式偏好配置：道路类型权重与通行标签优先级
package profile

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/samber/lo"
)

var (
	// 错误：出行方式名称为空
	ErrEmptyName = errors.New("profile name is empty")
	// 错误：权重为NaN或无穷
	ErrInvalidWeight = errors.New("profile weight must be finite")
	// 错误：重复注册同一出行方式
	ErrDuplicateMode = errors.New("duplicate travel mode")
)

// Profile 某种出行方式的路由偏好，构造后不可修改
type Profile struct {
	name string
	// 道路类型 -> 权重，越大越优先
	weights map[string]float64
	// 可用的通行标签键，按由一般到具体排列，后者覆盖前者
	accessKeys []string
}

// New 构造Profile，weights与accessKeys会被复制
func New(name string, weights map[string]float64, accessKeys []string) (*Profile, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	w := make(map[string]float64, len(weights))
	for class, v := range weights {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s.%s=%v", ErrInvalidWeight, name, class, v)
		}
		w[class] = v
	}
	return &Profile{
		name:       name,
		weights:    w,
		accessKeys: append([]string(nil), accessKeys...),
	}, nil
}

func mustNew(name string, weights map[string]float64, accessKeys []string) *Profile {
	p, err := New(name, weights, accessKeys)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Profile) Name() string {
	return p.name
}

// Weight 道路类型对应的权重，未配置时ok为false
func (p *Profile) Weight(class string) (w float64, ok bool) {
	w, ok = p.weights[class]
	return
}

// AccessKeys 返回通行标签键的副本
func (p *Profile) AccessKeys() []string {
	return append([]string(nil), p.accessKeys...)
}

// Classes 已配置权重的道路类型，按字典序
func (p *Profile) Classes() []string {
	classes := lo.Keys(p.weights)
	sort.Strings(classes)
	return classes
}

// Registry 出行方式 -> Profile
type Registry struct {
	profiles map[string]*Profile
}

func NewRegistry(profiles ...*Profile) (*Registry, error) {
	r := &Registry{profiles: make(map[string]*Profile, len(profiles))}
	for _, p := range profiles {
		if _, ok := r.profiles[p.name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMode, p.name)
		}
		r.profiles[p.name] = p
	}
	return r, nil
}

// Get 未注册的出行方式返回nil, false，不存在默认配置
func (r *Registry) Get(mode string) (*Profile, bool) {
	p, ok := r.profiles[mode]
	return p, ok
}

// Modes 已注册的出行方式，按字典序
func (r *Registry) Modes() []string {
	modes := lo.Keys(r.profiles)
	sort.Strings(modes)
	return modes
}

func (r *Registry) Len() int {
	return len(r.profiles)
}
