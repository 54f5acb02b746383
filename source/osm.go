package source

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"git.fiblab.net/sim/waygraph/router/algo"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

var (
	// 错误：无法识别的OSM文件扩展名
	ErrUnknownFormat = errors.New("unknown OSM file format")
)

// FromOSMWay 转换OSM way并归并道路类型同义词
func FromOSMWay(w *osm.Way) Way {
	tags := w.Tags.Map()
	normalize(tags)
	return Way{
		ID: int64(w.ID),
		Nodes: lo.Map(w.Nodes, func(n osm.WayNode, _ int) algo.NodeID {
			return algo.NodeID(n.ID)
		}),
		Tags: tags,
	}
}

func fromOSMRelation(r *osm.Relation) rawRelation {
	return rawRelation{
		ID:   int64(r.ID),
		Tags: r.Tags.Map(),
		Members: lo.Map(r.Members, func(m osm.Member, _ int) rawMember {
			return rawMember{Type: string(m.Type), Ref: m.Ref, Role: m.Role}
		}),
	}
}

// scan 读取全部道路/轨道way与转向限制关系，关系成员在读取结束后展开
func scan(ctx context.Context, scanner osm.Scanner) (*Dataset, error) {
	defer scanner.Close()
	ways := make([]Way, 0)
	raws := make([]rawRelation, 0)
	skipped := 0
	for scanner.Scan() {
		switch o := scanner.Object().(type) {
		case *osm.Way:
			if !routable(o.Tags.Map()) {
				skipped++
				continue
			}
			ways = append(ways, FromOSMWay(o))
			if len(ways)%100000 == 0 {
				log.Infof("scanning ways: %d...", len(ways))
			}
		case *osm.Relation:
			if isRestriction(o.Tags.Map()) {
				raws = append(raws, fromOSMRelation(o))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "scan OSM data")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Infof("read %d ways (%d skipped), %d restriction relations", len(ways), skipped, len(raws))
	return &Dataset{Ways: ways, Relations: resolve(ways, raws)}, nil
}

// ReadPBF 读取OSM PBF数据
func ReadPBF(ctx context.Context, r io.Reader) (*Dataset, error) {
	return scan(ctx, osmpbf.New(ctx, r, runtime.GOMAXPROCS(0)))
}

// ReadXML 读取OSM XML数据
func ReadXML(ctx context.Context, r io.Reader) (*Dataset, error) {
	return scan(ctx, osmxml.New(ctx, r))
}

// ReadFile 按扩展名读取 .pbf 或 .osm/.xml 文件
func ReadFile(ctx context.Context, path string) (*Dataset, error) {
	var read func(context.Context, io.Reader) (*Dataset, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pbf":
		read = ReadPBF
	case ".osm", ".xml":
		read = ReadXML
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "read %s", path)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	ds, err := read(ctx, f)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	return ds, nil
}
