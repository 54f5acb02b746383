package router_test

import (
	"sync"
	"testing"

	"git.fiblab.net/sim/waygraph/router"
	"git.fiblab.net/sim/waygraph/router/algo"
	"git.fiblab.net/sim/waygraph/router/profile"
	"git.fiblab.net/sim/waygraph/router/restriction"
	"git.fiblab.net/sim/waygraph/router/tag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//	1 --primary-- 2 --footway-- 3
//	              |
//	           rail (4-5)
func sampleSegments() []router.Segment {
	return []router.Segment{
		way(map[string]string{tag.RoadType: tag.Primary, tag.OneWay: "yes"}, 1, 2),
		way(map[string]string{tag.RoadType: tag.FootPath}, 2, 3),
		way(map[string]string{tag.RailType: tag.Rail}, 4, 5),
		way(map[string]string{tag.RoadType: tag.Primary}),
	}
}

func TestBuildAllModes(t *testing.T) {
	r := router.New(profile.Default())
	require.NoError(t, r.Build(sampleSegments(), nil))
	assert.Equal(t, profile.Default().Modes(), r.Modes())

	car, ok := r.Graph(tag.ByCar)
	require.True(t, ok)
	assert.Equal(t, 2.0, car.Weight(1, 2))
	assert.False(t, car.HasConnection(2, 1))
	assert.False(t, car.Has(3))

	foot, ok := r.Graph(tag.ByFoot)
	require.True(t, ok)
	assert.Equal(t, 0.3, foot.Weight(2, 1))
	assert.Equal(t, 2.0, foot.Weight(3, 2))

	train, ok := r.Graph(tag.ByTrain)
	require.True(t, ok)
	assert.Equal(t, 2, train.Len())
	assert.True(t, train.HasConnection(5, 4))

	stats, ok := r.Stats(tag.ByCar)
	require.True(t, ok)
	assert.Equal(t, 4, stats.Ingested)
	assert.Equal(t, 1, stats.Accepted)
	assert.Equal(t, 1, stats.Degenerate)
}

func TestBuildSelectedModes(t *testing.T) {
	r := router.New(profile.Default())
	require.NoError(t, r.Build(sampleSegments(), nil, tag.ByBicycle))
	assert.Equal(t, []string{tag.ByBicycle}, r.Modes())
	_, ok := r.Graph(tag.ByCar)
	assert.False(t, ok)
}

func TestBuildUnknownMode(t *testing.T) {
	r := router.New(profile.Default())
	err := r.Build(sampleSegments(), nil, tag.ByCar, "hovercraft")
	assert.ErrorIs(t, err, router.ErrUnknownMode)
	assert.Empty(t, r.Modes())
}

func TestBuildRestrictions(t *testing.T) {
	rel := restriction.Relation{
		ID:   1,
		Tags: map[string]string{tag.Type: tag.Restriction, tag.Restriction: "no_u_turn"},
		Members: []restriction.Member{
			{Role: restriction.RoleFrom, Nodes: []algo.NodeID{1, 2}},
			{Role: restriction.RoleTo, Nodes: []algo.NodeID{2, 3}},
		},
	}
	broken := restriction.Relation{ID: 2, Tags: rel.Tags}
	r := router.New(profile.Default())
	require.NoError(t, r.Build(sampleSegments(), []restriction.Relation{rel, broken}, tag.ByCar, tag.ByFoot))

	car, ok := r.Restrictions(tag.ByCar)
	require.True(t, ok)
	assert.True(t, car.Forbids([]algo.NodeID{1, 2, 3}))
	stats, _ := r.Stats(tag.ByCar)
	assert.Equal(t, 1, stats.InvalidRelations)

	foot, ok := r.Restrictions(tag.ByFoot)
	require.True(t, ok)
	assert.Equal(t, 0, foot.Len())
}

func TestConcurrentReads(t *testing.T) {
	r := router.New(profile.Default())
	require.NoError(t, r.Build(sampleSegments(), nil))
	g, _ := r.Graph(tag.ByFoot)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				assert.Equal(t, 2.0, g.Weight(2, 3))
				assert.Len(t, g.Neighbors(2), 2)
			}
		}()
	}
	wg.Wait()
}

func TestClose(t *testing.T) {
	r := router.New(profile.Default())
	require.NoError(t, r.Build(sampleSegments(), nil))
	r.Close()
	assert.Empty(t, r.Modes())
}
