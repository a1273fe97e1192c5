package domain

import "math"

// ResourceGroup 四种基础资源的一组数量，用于成本、产量和运输。
type ResourceGroup struct {
	Lumber uint64 `json:"lumber"`
	Clay   uint64 `json:"clay"`
	Iron   uint64 `json:"iron"`
	Crop   uint64 `json:"crop"`
}

func NewResourceGroup(lumber, clay, iron, crop uint64) ResourceGroup {
	return ResourceGroup{Lumber: lumber, Clay: clay, Iron: iron, Crop: crop}
}

// Total 资源总量。
func (r ResourceGroup) Total() uint64 {
	return r.Lumber + r.Clay + r.Iron + r.Crop
}

func (r ResourceGroup) IsZero() bool {
	return r.Total() == 0
}

// Add 各分量相加。
func (r ResourceGroup) Add(o ResourceGroup) ResourceGroup {
	return ResourceGroup{
		Lumber: r.Lumber + o.Lumber,
		Clay:   r.Clay + o.Clay,
		Iron:   r.Iron + o.Iron,
		Crop:   r.Crop + o.Crop,
	}
}

// MulScalar 各分量乘以系数，向下取整。
func (r ResourceGroup) MulScalar(f float64) ResourceGroup {
	return ResourceGroup{
		Lumber: uint64(math.Floor(float64(r.Lumber) * f)),
		Clay:   uint64(math.Floor(float64(r.Clay) * f)),
		Iron:   uint64(math.Floor(float64(r.Iron) * f)),
		Crop:   uint64(math.Floor(float64(r.Crop) * f)),
	}
}

// MulCount 按数量整数倍放大，训练 n 个单位时用。
func (r ResourceGroup) MulCount(n uint32) ResourceGroup {
	return ResourceGroup{
		Lumber: r.Lumber * uint64(n),
		Clay:   r.Clay * uint64(n),
		Iron:   r.Iron * uint64(n),
		Crop:   r.Crop * uint64(n),
	}
}
