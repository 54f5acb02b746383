package router

import (
	"errors"
	"fmt"
	"runtime"
	"sort"

	"git.fiblab.net/sim/waygraph/router/algo"
	"git.fiblab.net/sim/waygraph/router/profile"
	"git.fiblab.net/sim/waygraph/router/restriction"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var log = logrus.WithField("module", "router")

var (
	// 错误：出行方式未配置
	ErrUnknownMode = errors.New("unknown travel mode")
)

// Router 各出行方式构建完成的图
// 每种出行方式独立构建，构建完成后只读
type Router struct {
	profiles *profile.Registry

	graphs *xsync.MapOf[string, *algo.Compact]
	rules  *xsync.MapOf[string, *restriction.Set]
	stats  *xsync.MapOf[string, Stats]
}

func New(profiles *profile.Registry) *Router {
	return &Router{
		profiles: profiles,
		graphs:   xsync.NewMapOf[string, *algo.Compact](),
		rules:    xsync.NewMapOf[string, *restriction.Set](),
		stats:    xsync.NewMapOf[string, Stats](),
	}
}

// Build 为指定出行方式（为空时为全部已配置方式）并行构建图
// 同一出行方式重复构建时覆盖之前的结果
func (r *Router) Build(segments []Segment, relations []restriction.Relation, modes ...string) error {
	if len(modes) == 0 {
		modes = r.profiles.Modes()
	}
	builders := make([]*Builder, 0, len(modes))
	for _, mode := range modes {
		p, ok := r.profiles.Get(mode)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownMode, mode)
		}
		builders = append(builders, NewBuilder(p))
	}

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for _, b := range builders {
		g.Go(func() error {
			for _, s := range segments {
				b.Ingest(s)
			}
			for _, rel := range relations {
				if err := b.AddRelation(rel); err != nil {
					log.Debugf("%s: skip relation %d: %v", b.Mode(), rel.ID, err)
				}
			}
			c := b.Freeze()
			stats := b.Stats()
			log.Infof("%s graph: %d nodes, %d edges, %d/%d ways accepted, %d restrictions",
				b.Mode(), c.Len(), c.EdgeCount(), stats.Accepted, stats.Ingested, b.Restrictions().Len())
			log.Debugf("%s stats: %+v", b.Mode(), stats)
			r.graphs.Store(b.Mode(), c)
			r.rules.Store(b.Mode(), b.Restrictions())
			r.stats.Store(b.Mode(), stats)
			return nil
		})
	}
	return g.Wait()
}

// Graph 出行方式对应的图，未构建时ok为false
func (r *Router) Graph(mode string) (algo.Adjacency, bool) {
	c, ok := r.graphs.Load(mode)
	if !ok {
		return nil, false
	}
	return c, true
}

func (r *Router) Restrictions(mode string) (*restriction.Set, bool) {
	return r.rules.Load(mode)
}

func (r *Router) Stats(mode string) (Stats, bool) {
	return r.stats.Load(mode)
}

// Modes 已构建的出行方式
func (r *Router) Modes() []string {
	modes := make([]string, 0, r.graphs.Size())
	r.graphs.Range(func(mode string, _ *algo.Compact) bool {
		modes = append(modes, mode)
		return true
	})
	sort.Strings(modes)
	return modes
}

func (r *Router) Profiles() *profile.Registry {
	return r.profiles
}

// close
func (r *Router) Close() {
	r.graphs.Clear()
	r.rules.Clear()
	r.stats.Clear()
}
