package profile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// 配置文件格式：
//
//	profile "car" {
//	  access  = ["access", "vehicle", "motor_vehicle", "motorcar"]
//	  weights = { primary = 2.0, residential = 0.7 }
//	}
type fileConfig struct {
	Profiles []profileBlock `hcl:"profile,block"`
}

type profileBlock struct {
	Name    string             `hcl:"name,label"`
	Access  []string           `hcl:"access"`
	Weights map[string]float64 `hcl:"weights"`
}

// LoadFile 从HCL文件读取出行方式配置
func LoadFile(path string) (*Registry, error) {
	var cfg fileConfig
	if err := hclsimple.DecodeFile(path, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode profiles from %s: %w", path, err)
	}
	return fromConfig(cfg)
}

// Load 从内存中的HCL内容读取，filename仅用于错误信息和格式判断（.hcl/.json）
func Load(filename string, src []byte) (*Registry, error) {
	var cfg fileConfig
	if err := hclsimple.Decode(filename, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode profiles from %s: %w", filename, err)
	}
	return fromConfig(cfg)
}

func fromConfig(cfg fileConfig) (*Registry, error) {
	profiles := make([]*Profile, 0, len(cfg.Profiles))
	for _, b := range cfg.Profiles {
		p, err := New(b.Name, b.Weights, b.Access)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return NewRegistry(profiles...)
}
