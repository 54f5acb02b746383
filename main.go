package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"git.fiblab.net/sim/waygraph/router"
	"git.fiblab.net/sim/waygraph/router/profile"
	"git.fiblab.net/sim/waygraph/source"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

var log = logrus.WithField("module", "main")

var (
	// 配置信息
	mongoURI     = flag.String("mongo_uri", "", "mongo db uri")
	dataPathStr  = flag.String("data", "", "OSM data [format: {fspath}.pbf|.osm or {db}.{col}]")
	cacheDir     = flag.String("cache", "", "input cache dir path (empty means disable cache)")
	profilesPath = flag.String("profiles", "", "travel mode profile file in HCL (empty means built-in profiles)")
	modesStr     = flag.String("modes", "", "comma separated travel modes to build (empty means all)")
	listenAddr   = flag.String("listen", "localhost:52101", "HTTP listening address")
	logLevel     = flag.String("log-level", "info", "log level [debug, info, warn, error, fatal, panic]")

	// 性能测试
	benchmark = flag.Bool("benchmark", false, "benchmark mode")
	pprofAddr = flag.String("pprof", "localhost:52102", "pprof listening address")

	LOG_LEVELS = map[string]logrus.Level{
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"fatal": logrus.FatalLevel,
		"panic": logrus.PanicLevel,
	}
)

// parseModes 解析逗号分隔的出行方式列表
func parseModes(s string) []string {
	return lo.Uniq(lo.Filter(
		lo.Map(strings.Split(s, ","), func(m string, _ int) string { return strings.TrimSpace(m) }),
		func(m string, _ int) bool { return m != "" },
	))
}

func loadProfiles(path string) (*profile.Registry, error) {
	if path == "" {
		return profile.Default(), nil
	}
	return profile.LoadFile(path)
}

func loadDataset(ctx context.Context, dataPath *Path, mongoURI, cacheDir string) (*source.Dataset, error) {
	if dataPath.IsFile() {
		return source.LoadWithCache(cacheDir, dataPath.CacheKey(), func() (*source.Dataset, error) {
			return source.ReadFile(ctx, dataPath.File)
		})
	}
	var client *mongo.Client
	defer func() {
		if client != nil {
			client.Disconnect(context.Background())
		}
	}()
	return source.LoadWithCache(cacheDir, dataPath.CacheKey(), func() (*source.Dataset, error) {
		var err error
		if client, err = source.NewClient(ctx, mongoURI); err != nil {
			return nil, err
		}
		return source.LoadMongo(ctx, client.Database(dataPath.DB).Collection(dataPath.Coll))
	})
}

// rebuild 绕过缓存重新读取数据并重建已配置的出行方式
func rebuild(r *router.Router, dataPath *Path) error {
	ds, err := loadDataset(context.Background(), dataPath, *mongoURI, "")
	if err != nil {
		return err
	}
	return r.Build(ds.Segments(), ds.Relations, parseModes(*modesStr)...)
}

func main() {
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	flag.Parse()
	if level, ok := LOG_LEVELS[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		logrus.Fatalf("invalid log level: %s", *logLevel)
	}

	dataPath, err := NewPath(*dataPathStr)
	if err != nil {
		log.Fatalf("invalid data path: %s", err)
	}
	profiles, err := loadProfiles(*profilesPath)
	if err != nil {
		log.Fatalf("invalid profiles: %s", err)
	}
	ds, err := loadDataset(context.Background(), dataPath, *mongoURI, *cacheDir)
	if err != nil {
		log.Fatalf("failed to load data from %s: %v", dataPath, err)
	}

	// 构建各出行方式的图
	r := router.New(profiles)
	start := time.Now()
	if err := r.Build(ds.Segments(), ds.Relations, parseModes(*modesStr)...); err != nil {
		log.Fatalf("failed to build graphs: %v", err)
	}
	log.Infof("built %d graphs in %v", len(r.Modes()), time.Since(start))
	server := NewGraphServer(r)

	if *pprofAddr != "" {
		// 启动pprof
		startHTTPDebugger(*pprofAddr)
	}

	if *benchmark {
		// 性能测试
		runBenchmark(r)
		return
	}

	// 使用HTTP/2 w.o. TLS
	s := &http.Server{
		Addr:    *listenAddr,
		Handler: h2c.NewHandler(server.Handler(), &http2.Server{}),
	}

	// 优雅退出
	// 创建监听退出chan
	signalCh := make(chan os.Signal, 1)
	//监听指定信号 ctrl+c kill
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-signalCh
		log.Info("stopping...")
		go func() {
			<-signalCh
			os.Exit(1) // 强制结束
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Shutdown(ctx); err != nil {
			log.Warnf("shutdown: %v", err)
		}
	}()

	// SIGHUP 重新读取数据并重建图，期间暂停查询
	reloadCh := make(chan os.Signal, 1)
	signal.Notify(reloadCh, syscall.SIGHUP)
	go func() {
		for range reloadCh {
			log.Info("reloading...")
			server.Suspend()
			if err := rebuild(r, dataPath); err != nil {
				log.Errorf("reload failed, keep previous graphs: %v", err)
			}
			server.Resume()
		}
	}()

	log.Infof("server listening at %v", s.Addr)
	if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("failed to serve: %v", err)
	}
	<-stopped // 等待处理中的请求结束
	server.Close()
	log.Info("waygraph closes")
}
