package domain

import "math/rand"

// FieldKind 地图格子类型。
type FieldKind string

const (
	FieldValley FieldKind = "valley"
	FieldOasis  FieldKind = "oasis"
)

// ValleyTopology 山谷的资源田配比，四项相加恒为 18。
type ValleyTopology struct {
	Lumber uint8 `json:"lumber"`
	Clay   uint8 `json:"clay"`
	Iron   uint8 `json:"iron"`
	Crop   uint8 `json:"crop"`
}

// OasisKind 绿洲类型，决定产量加成。
type OasisKind string

const (
	OasisLumber     OasisKind = "lumber"
	OasisLumberCrop OasisKind = "lumber_crop"
	OasisClay       OasisKind = "clay"
	OasisClayCrop   OasisKind = "clay_crop"
	OasisIron       OasisKind = "iron"
	OasisIronCrop   OasisKind = "iron_crop"
	OasisCrop       OasisKind = "crop"
	OasisCrop50     OasisKind = "crop50"
)

// MapField 世界地图上的一个格子。山谷可建村，绿洲可被占领。
type MapField struct {
	ID        int64          `json:"id"`
	Position  Position       `json:"position"`
	Kind      FieldKind      `json:"kind"`
	Topology  ValleyTopology `json:"topology"`
	Oasis     OasisKind      `json:"oasis,omitempty"`
	VillageID *int64         `json:"village_id,omitempty"`
	PlayerID  *int64         `json:"player_id,omitempty"`
}

func (f *MapField) IsOccupied() bool {
	return f.VillageID != nil
}

// 山谷地貌的出现权重，标准 4-4-4-6 占大头。
var valleyTopologies = []struct {
	topo   ValleyTopology
	weight int
}{
	{ValleyTopology{4, 4, 4, 6}, 56},
	{ValleyTopology{3, 4, 5, 6}, 8},
	{ValleyTopology{4, 5, 3, 6}, 8},
	{ValleyTopology{5, 3, 4, 6}, 8},
	{ValleyTopology{4, 4, 3, 7}, 4},
	{ValleyTopology{3, 4, 4, 7}, 4},
	{ValleyTopology{4, 3, 4, 7}, 4},
	{ValleyTopology{3, 3, 3, 9}, 6},
	{ValleyTopology{1, 1, 1, 15}, 2},
}

var oasisKinds = []OasisKind{
	OasisLumber, OasisLumberCrop, OasisClay, OasisClayCrop,
	OasisIron, OasisIronCrop, OasisCrop, OasisCrop50,
}

// GenerateMap 生成整张世界地图。rng 由调用方注入以便结果可复现。
// 约 1/5 的格子是绿洲，其余为山谷。
func GenerateMap(worldSize int32, rng *rand.Rand) []MapField {
	side := int64(worldSize)*2 + 1
	fields := make([]MapField, 0, side*side)

	for y := worldSize; y >= -worldSize; y-- {
		for x := -worldSize; x <= worldSize; x++ {
			pos := Position{X: x, Y: y}
			f := MapField{
				ID:       pos.ToFieldID(worldSize),
				Position: pos,
			}
			if rng.Intn(5) == 0 {
				f.Kind = FieldOasis
				f.Oasis = oasisKinds[rng.Intn(len(oasisKinds))]
			} else {
				f.Kind = FieldValley
				f.Topology = pickTopology(rng)
			}
			fields = append(fields, f)
		}
	}
	return fields
}

func pickTopology(rng *rand.Rand) ValleyTopology {
	total := 0
	for _, t := range valleyTopologies {
		total += t.weight
	}
	n := rng.Intn(total)
	for _, t := range valleyTopologies {
		if n < t.weight {
			return t.topo
		}
		n -= t.weight
	}
	return valleyTopologies[0].topo
}
