package domain

import "math"

// Position 世界地图坐标。地图是以 (0,0) 为中心、边长 2*worldSize+1 的环形方格。
type Position struct {
	X int32 `json:"x"`
	Y int32 `json:"y"`
}

// ToFieldID 将坐标折算为地图格子的全局编号。编号从左上角 1 开始逐行递增。
func (p Position) ToFieldID(worldSize int32) int64 {
	return int64(worldSize-p.Y)*int64(worldSize*2+1) + int64(worldSize+p.X+1)
}

// PositionFromFieldID 编号反解回坐标，是 ToFieldID 的逆运算。
func PositionFromFieldID(id int64, worldSize int32) Position {
	side := int64(worldSize*2 + 1)
	row := (id - 1) / side
	col := (id - 1) % side
	return Position{
		X: int32(col) - worldSize,
		Y: worldSize - int32(row),
	}
}

// Distance 两点间的欧氏距离，坐标轴按环形世界回绕后取较短一侧，结果截断为整数。
func (p Position) Distance(o Position, worldSize int32) uint32 {
	xDiff := absDiff(p.X, o.X)
	yDiff := absDiff(p.Y, o.Y)

	wrap := 2*worldSize + 1
	if xDiff > worldSize {
		xDiff = wrap - xDiff
	}
	if yDiff > worldSize {
		yDiff = wrap - yDiff
	}

	return uint32(math.Sqrt(float64(xDiff)*float64(xDiff) + float64(yDiff)*float64(yDiff)))
}

// TravelTimeSecs 以 speed 格/小时的速度走完两点距离所需秒数，受服务器倍速加成。
func (p Position) TravelTimeSecs(o Position, speed uint8, worldSize int32, serverSpeed uint8) uint32 {
	if speed == 0 {
		return 0
	}
	distance := p.Distance(o, worldSize)
	hours := float64(distance) / float64(speed)
	return uint32(hours * 3600 / float64(serverSpeed))
}

func absDiff(a, b int32) int32 {
	if a > b {
		return a - b
	}
	return b - a
}
