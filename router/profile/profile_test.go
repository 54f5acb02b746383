package profile_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"git.fiblab.net/sim/waygraph/router/profile"
	"git.fiblab.net/sim/waygraph/router/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultModes(t *testing.T) {
	r := profile.Default()
	assert.Equal(t, []string{
		tag.ByBicycle, tag.ByBus, tag.ByCar, tag.ByFoot, tag.ByHorse, tag.ByTrain, tag.ByTram,
	}, r.Modes())

	car, ok := r.Get(tag.ByCar)
	require.True(t, ok)
	assert.Equal(t, tag.ByCar, car.Name())
	w, ok := car.Weight(tag.Primary)
	assert.True(t, ok)
	assert.Equal(t, 2.0, w)
	_, ok = car.Weight(tag.FootPath)
	assert.False(t, ok)
	assert.Equal(t, []string{tag.Access, tag.Vehicle, tag.MotorVehicle, tag.MotorCar}, car.AccessKeys())
}

func TestUnknownModeIsAbsent(t *testing.T) {
	p, ok := profile.Default().Get("hovercraft")
	assert.False(t, ok)
	assert.Nil(t, p)
}

func TestProfileIsImmutable(t *testing.T) {
	weights := map[string]float64{tag.Primary: 1}
	keys := []string{tag.Access}
	p, err := profile.New("test", weights, keys)
	require.NoError(t, err)

	weights[tag.Primary] = 5
	keys[0] = tag.Foot
	w, _ := p.Weight(tag.Primary)
	assert.Equal(t, 1.0, w)
	assert.Equal(t, []string{tag.Access}, p.AccessKeys())

	got := p.AccessKeys()
	got[0] = tag.Horse
	assert.Equal(t, []string{tag.Access}, p.AccessKeys())
}

func TestNewValidates(t *testing.T) {
	_, err := profile.New("", nil, nil)
	assert.ErrorIs(t, err, profile.ErrEmptyName)
	_, err = profile.New("x", map[string]float64{tag.Primary: math.NaN()}, nil)
	assert.ErrorIs(t, err, profile.ErrInvalidWeight)
	// 非正权重合法，表示不可用
	_, err = profile.New("x", map[string]float64{tag.Primary: 0}, nil)
	assert.NoError(t, err)
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	a, _ := profile.New("a", nil, nil)
	b, _ := profile.New("a", nil, nil)
	_, err := profile.NewRegistry(a, b)
	assert.ErrorIs(t, err, profile.ErrDuplicateMode)
}

const profilesHCL = `
profile "car" {
  access  = ["access", "motor_vehicle"]
  weights = { primary = 2.0, residential = 0.7 }
}

profile "tram" {
  access  = ["access"]
  weights = { tram = 1 }
}
`

func TestLoad(t *testing.T) {
	r, err := profile.Load("profiles.hcl", []byte(profilesHCL))
	require.NoError(t, err)
	assert.Equal(t, []string{"car", "tram"}, r.Modes())

	car, ok := r.Get("car")
	require.True(t, ok)
	assert.Equal(t, []string{"access", "motor_vehicle"}, car.AccessKeys())
	assert.Equal(t, []string{"primary", "residential"}, car.Classes())
	w, _ := car.Weight("residential")
	assert.Equal(t, 0.7, w)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.hcl")
	require.NoError(t, os.WriteFile(path, []byte(profilesHCL), 0o644))
	r, err := profile.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())

	_, err = profile.LoadFile(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}

func TestLoadDuplicate(t *testing.T) {
	src := `
profile "car" {
  access  = []
  weights = {}
}
profile "car" {
  access  = []
  weights = {}
}
`
	_, err := profile.Load("dup.hcl", []byte(src))
	assert.ErrorIs(t, err, profile.ErrDuplicateMode)
}
