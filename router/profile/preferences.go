package profile

import "git.fiblab.net/sim/waygraph/router/tag"

// Default 内置的出行方式配置，每次调用返回新的Registry
func Default() *Registry {
	r, err := NewRegistry(
		mustNew(tag.ByCar, map[string]float64{
			tag.Freeway:     10,
			tag.Trunk:       10,
			tag.Primary:     2,
			tag.Secondary:   1.5,
			tag.Tertiary:    1,
			tag.Minor:       1,
			tag.Residential: 0.7,
			tag.TwoTrack:    0.5,
			tag.ServiceRoad: 0.5,
		}, []string{tag.Access, tag.Vehicle, tag.MotorVehicle, tag.MotorCar}),

		mustNew(tag.ByBus, map[string]float64{
			tag.Freeway:     10,
			tag.Trunk:       10,
			tag.Primary:     2,
			tag.Secondary:   1.5,
			tag.Tertiary:    1,
			tag.Minor:       1,
			tag.Residential: 0.8,
			tag.TwoTrack:    0.3,
			tag.ServiceRoad: 0.9,
		}, []string{tag.Access, tag.Vehicle, tag.MotorVehicle, tag.ServiceVehicle, tag.Bus}),

		mustNew(tag.ByBicycle, map[string]float64{
			tag.Trunk:       0.05,
			tag.Primary:     0.3,
			tag.Secondary:   0.9,
			tag.Tertiary:    1,
			tag.Minor:       1,
			tag.BicyclePath: 2,
			tag.Residential: 2.5,
			tag.TwoTrack:    1,
			tag.ServiceRoad: 1,
			tag.HorsePath:   0.8,
			tag.FootPath:    0.8,
			tag.Stairs:      0.5,
			tag.Path:        1,
		}, []string{tag.Access, tag.Vehicle, tag.Bicycle}),

		mustNew(tag.ByHorse, map[string]float64{
			tag.Primary:     0.05,
			tag.Secondary:   0.15,
			tag.Tertiary:    0.3,
			tag.Minor:       1,
			tag.Residential: 1,
			tag.TwoTrack:    1,
			tag.ServiceRoad: 1,
			tag.HorsePath:   1,
			tag.FootPath:    1.2,
			tag.Stairs:      1.15,
			tag.Path:        1.2,
		}, []string{tag.Access, tag.Horse}),

		mustNew(tag.ByTram, map[string]float64{
			tag.Tram:      1,
			tag.LightRail: 1,
		}, []string{tag.Access}),

		mustNew(tag.ByTrain, map[string]float64{
			tag.Rail:        1,
			tag.LightRail:   1,
			tag.Subway:      1,
			tag.NarrowGauge: 1,
		}, []string{tag.Access}),

		// 步行不受单行限制，见router.Builder
		mustNew(tag.ByFoot, map[string]float64{
			tag.Trunk:       0.05,
			tag.Primary:     0.3,
			tag.Secondary:   0.5,
			tag.Tertiary:    0.6,
			tag.Minor:       0.8,
			tag.Residential: 1,
			tag.TwoTrack:    1,
			tag.ServiceRoad: 0.8,
			tag.BicyclePath: 0.7,
			tag.HorsePath:   0.7,
			tag.FootPath:    2,
			tag.Stairs:      1,
			tag.Path:        1.5,
		}, []string{tag.Access, tag.Foot}),
	)
	if err != nil {
		panic(err)
	}
	return r
}
