package source

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.fiblab.net/sim/waygraph/router/restriction"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
)

// 每个缓存分块中的最大条目数，单个BSON文档长度为int32
const cacheChunkSize = 10000

// cacheChunk 缓存文件由若干首尾相接的BSON文档组成，每个文档是数据集的一部分
type cacheChunk struct {
	Ways      []Way                  `bson:"ways"`
	Relations []restriction.Relation `bson:"relations"`
}

// CachePath 缓存文件路径，key中的路径分隔符被替换
func CachePath(dir, key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", ":", "_").Replace(key)
	return filepath.Join(dir, name+".bson")
}

func writeCache(w io.Writer, ds *Dataset) error {
	write := func(c cacheChunk) error {
		data, err := bson.Marshal(c)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	for i := 0; i < len(ds.Ways); i += cacheChunkSize {
		if err := write(cacheChunk{Ways: ds.Ways[i:min(i+cacheChunkSize, len(ds.Ways))]}); err != nil {
			return err
		}
	}
	for i := 0; i < len(ds.Relations); i += cacheChunkSize {
		if err := write(cacheChunk{Relations: ds.Relations[i:min(i+cacheChunkSize, len(ds.Relations))]}); err != nil {
			return err
		}
	}
	return nil
}

func readCache(r io.Reader) (*Dataset, error) {
	ds := &Dataset{Ways: make([]Way, 0), Relations: make([]restriction.Relation, 0)}
	var header [4]byte
	for {
		if _, err := io.ReadFull(r, header[:]); err == io.EOF {
			return ds, nil
		} else if err != nil {
			return nil, err
		}
		// BSON文档以小端int32长度开头，长度包含自身
		size := binary.LittleEndian.Uint32(header[:])
		if size < 5 {
			return nil, errors.Errorf("invalid cache chunk size %d", size)
		}
		data := make([]byte, size)
		copy(data, header[:])
		if _, err := io.ReadFull(r, data[4:]); err != nil {
			return nil, err
		}
		var c cacheChunk
		if err := bson.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		ds.Ways = append(ds.Ways, c.Ways...)
		ds.Relations = append(ds.Relations, c.Relations...)
	}
}

// LoadWithCache 优先读取dir中key对应的缓存，不存在时调用load并写入缓存
// dir为空表示不使用缓存；缓存按分块写入，不受单个BSON文档2GiB的长度限制
func LoadWithCache(dir, key string, load func() (*Dataset, error)) (*Dataset, error) {
	if dir == "" {
		return load()
	}
	path := CachePath(dir, key)
	if f, err := os.Open(path); err == nil {
		defer f.Close()
		ds, err := readCache(bufio.NewReader(f))
		if err != nil {
			return nil, errors.Wrapf(err, "decode cache %s", path)
		}
		log.Infof("load %s from cache %s", key, path)
		return ds, nil
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "read cache %s", path)
	}

	ds, err := load()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "create cache dir %s", dir)
	}
	// 先写临时文件再重命名，避免留下不完整的缓存
	tmp := path + ".tmp"
	if err := saveCache(tmp, ds); err != nil {
		os.Remove(tmp)
		return nil, errors.Wrapf(err, "write cache %s", tmp)
	}
	if err := os.Rename(tmp, path); err != nil {
		return nil, errors.Wrapf(err, "rename cache %s", path)
	}
	log.Infof("save %s to cache %s", key, path)
	return ds, nil
}

func saveCache(path string, ds *Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := writeCache(w, ds); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
