package main

import (
	"flag"
	"math"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"git.fiblab.net/sim/waygraph/router"
	"git.fiblab.net/sim/waygraph/router/algo"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

var (
	benchmarkCount = flag.Int("benchmark.count", 1000, "the random query count for benchmark")
	benchmarkMode  = flag.String("benchmark.mode", "car", "the travel mode for benchmark")
	benchmarkSeed  = flag.Int64("benchmark.seed", 0, "the seed for benchmark")
	benchmarkCPU   = flag.Int("benchmark.cpu", 1, "the cpu count for benchmark")
)

// search 在gonum图上搜索起终点之间的最短路
func search(g *simple.WeightedDirectedGraph, from, to algo.NodeID) algo.Status {
	shortest, _ := path.AStar(simple.Node(from), simple.Node(to), g, nil)
	if _, cost := shortest.To(int64(to)); math.IsInf(cost, 1) {
		return algo.NoRoute
	}
	return algo.Success
}

func runBenchmark(r *router.Router) {
	log.Logger.SetLevel(logrus.WarnLevel)
	g, ok := r.Graph(*benchmarkMode)
	if !ok {
		log.Fatalf("benchmark mode %s is not built", *benchmarkMode)
	}
	nodes := g.Nodes()
	if len(nodes) == 0 {
		log.Fatalf("benchmark mode %s has an empty graph", *benchmarkMode)
	}
	searchGraph := algo.ToGonum(g, algo.InverseWeight)
	// 设置随机种子
	e := rand.New(rand.NewSource(*benchmarkSeed))
	// 随机生成benchmarkCount个起终点对
	pairs := make([][2]algo.NodeID, *benchmarkCount)
	for i := range pairs {
		pairs[i] = [2]algo.NodeID{nodes[e.Intn(len(nodes))], nodes[e.Intn(len(nodes))]}
	}

	// 开始benchmark
	start := time.Now()
	var wg sync.WaitGroup
	var success atomic.Int32
	run := func(pair [2]algo.NodeID) {
		// 邻接查询与路径搜索
		for _, n := range g.Neighbors(pair[0]) {
			g.Weight(pair[0], n.ID)
		}
		if search(searchGraph, pair[0], pair[1]) == algo.Success {
			success.Add(1)
		}
	}
	if *benchmarkCPU == 1 {
		for _, pair := range pairs {
			run(pair)
		}
	} else {
		// 设置cpu数量
		runtime.GOMAXPROCS(*benchmarkCPU)
		wg.Add(*benchmarkCount)
		for _, pair := range pairs {
			go func() {
				defer wg.Done()
				run(pair)
			}()
		}
		wg.Wait()
	}
	timeCost := time.Since(start) * time.Duration(*benchmarkCPU)
	log.Error(
		"benchmark finished", "\n",
		"mode:", *benchmarkMode, "\n",
		"count:", *benchmarkCount, "\n",
		"time:", timeCost, "\n",
		"avg:", timeCost/time.Duration(*benchmarkCount), "\n",
		"success:", success.Load(), "\n",
	)
}
