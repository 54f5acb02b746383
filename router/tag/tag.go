// Package tag 定义OSM标签键、道路/轨道类型与出行方式名称
package tag

// 标签键
const (
	RoadType     = "highway"
	RailType     = "railway"
	JunctionType = "junction"
	OneWay       = "oneway"
	Type         = "type"
	Restriction  = "restriction"
	Exception    = "except"

	Access         = "access"
	Vehicle        = "vehicle"
	MotorVehicle   = "motor_vehicle"
	MotorCar       = "motorcar"
	ServiceVehicle = "psv"
	Bus            = "bus"
	Bicycle        = "bicycle"
	Horse          = "horse"
	Foot           = "foot"
)

// 道路类型（highway=*）
const (
	Freeway     = "motorway"
	Trunk       = "trunk"
	Primary     = "primary"
	Secondary   = "secondary"
	Tertiary    = "tertiary"
	Minor       = "unclassified"
	Residential = "residential"
	TwoTrack    = "track"
	ServiceRoad = "service"
	BicyclePath = "cycleway"
	HorsePath   = "bridleway"
	FootPath    = "footway"
	Stairs      = "steps"
	Path        = "path"
)

// 轨道类型（railway=*）
const (
	Tram        = "tram"
	LightRail   = "light_rail"
	Rail        = "rail"
	Subway      = "subway"
	NarrowGauge = "narrow_gauge"
)

// 出行方式
const (
	ByCar     = "car"
	ByBus     = "bus"
	ByBicycle = "bicycle"
	ByHorse   = "horse"
	ByTram    = "tram"
	ByTrain   = "train"
	ByFoot    = "foot"
)

// 环岛类junction取值
const (
	Roundabout = "roundabout"
	Circular   = "circular"
)

// WayTypeSynonyms 将连接线等同义类型归并到主类型
var WayTypeSynonyms = map[string]string{
	"motorway_link":  Freeway,
	"trunk_link":     Trunk,
	"primary_link":   Primary,
	"secondary_link": Secondary,
	"tertiary_link":  Tertiary,
	"minor":          Minor,
	"pedestrian":     FootPath,
	"platform":       FootPath,
}

// ForMode 返回出行方式专属的标签键，如 oneway:bicycle
func ForMode(key, mode string) string {
	return key + ":" + mode
}
