package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"git.fiblab.net/sim/waygraph/router"
	"git.fiblab.net/sim/waygraph/router/algo"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

type NeighborBody struct {
	ID     algo.NodeID `json:"id"`
	Weight float64     `json:"weight"`
}

type GraphBody struct {
	Mode  string `json:"mode"`
	Nodes int    `json:"nodes"`
}

type NodeBody struct {
	ID        algo.NodeID    `json:"id"`
	Neighbors []NeighborBody `json:"neighbors"`
}

type EdgeBody struct {
	From      algo.NodeID `json:"from"`
	To        algo.NodeID `json:"to"`
	Weight    float64     `json:"weight"`
	Connected bool        `json:"connected"`
}

type ErrorBody struct {
	Error string `json:"error"`
}

// GraphServer 只读的图查询服务
type GraphServer struct {
	router *router.Router

	// 接口开启true或关闭false
	ok bool
	// 条件变量
	cond *sync.Cond
}

func NewGraphServer(r *router.Router) *GraphServer {
	return &GraphServer{
		router: r,
		ok:     true, cond: sync.NewCond(&sync.Mutex{}),
	}
}

// Handler 注册全部HTTP接口
func (s *GraphServer) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.waitMiddleware)
	r.HandleFunc("/modes", s.GetModes).Methods(http.MethodGet)
	r.HandleFunc("/graphs/{mode}", s.GetGraph).Methods(http.MethodGet)
	r.HandleFunc("/graphs/{mode}/nodes/{id}", s.GetNode).Methods(http.MethodGet)
	r.HandleFunc("/graphs/{mode}/edges/{from}/{to}", s.GetEdge).Methods(http.MethodGet)
	return r
}

// 暂停-恢复机制
func (s *GraphServer) waitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.cond.L.Lock()
		for !s.ok {
			// 暂停中
			s.cond.Wait()
		}
		s.cond.L.Unlock()
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Warnf("failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, ErrorBody{Error: err.Error()})
}

// graph 取请求路径中的出行方式对应的图，失败时已写入响应
func (s *GraphServer) graph(w http.ResponseWriter, r *http.Request) (string, algo.Adjacency, bool) {
	mode := mux.Vars(r)["mode"]
	g, ok := s.router.Graph(mode)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %s", router.ErrUnknownMode, mode))
		return mode, nil, false
	}
	return mode, g, true
}

// nodeID 解析路径参数中的节点ID，失败时已写入响应
func nodeID(w http.ResponseWriter, r *http.Request, name string) (algo.NodeID, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid node id %q", raw))
		return 0, false
	}
	return algo.NodeID(id), true
}

func (s *GraphServer) GetModes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.router.Modes())
}

func (s *GraphServer) GetGraph(w http.ResponseWriter, r *http.Request) {
	mode, g, ok := s.graph(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, GraphBody{Mode: mode, Nodes: g.Len()})
}

func (s *GraphServer) GetNode(w http.ResponseWriter, r *http.Request) {
	_, g, ok := s.graph(w, r)
	if !ok {
		return
	}
	id, ok := nodeID(w, r, "id")
	if !ok {
		return
	}
	if !g.Has(id) {
		writeError(w, http.StatusNotFound, fmt.Errorf("%w: %d", algo.ErrNodeNotFound, id))
		return
	}
	log.Debugf("get node %d", id)
	writeJSON(w, http.StatusOK, NodeBody{
		ID: id,
		Neighbors: lo.Map(g.Neighbors(id), func(n algo.Neighbor, _ int) NeighborBody {
			return NeighborBody{ID: n.ID, Weight: n.Weight}
		}),
	})
}

func (s *GraphServer) GetEdge(w http.ResponseWriter, r *http.Request) {
	_, g, ok := s.graph(w, r)
	if !ok {
		return
	}
	from, ok := nodeID(w, r, "from")
	if !ok {
		return
	}
	to, ok := nodeID(w, r, "to")
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, EdgeBody{
		From:      from,
		To:        to,
		Weight:    g.Weight(from, to),
		Connected: g.HasConnection(from, to),
	})
}

// 暂停查询服务
func (s *GraphServer) Suspend() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = false
}

// 恢复查询服务
func (s *GraphServer) Resume() {
	s.cond.L.Lock()
	defer s.cond.L.Unlock()
	s.ok = true
	s.cond.Broadcast()
}

// 关闭查询服务
func (s *GraphServer) Close() {
	s.router.Close()
}
