package app

// Config 游戏世界参数。
type Config struct {
	// WorldSize 地图半径，地图边长为 2*WorldSize+1
	WorldSize int32
	// Speed 服务器倍速，1 到 5
	Speed uint8
}

const (
	DefaultWorldSize = 100
	MinSpeed         = 1
	MaxSpeed         = 5
)

// NewConfig 参数越界时收敛到合法区间。
func NewConfig(worldSize int32, speed uint8) Config {
	if worldSize <= 0 {
		worldSize = DefaultWorldSize
	}
	if speed < MinSpeed {
		speed = MinSpeed
	}
	if speed > MaxSpeed {
		speed = MaxSpeed
	}
	return Config{WorldSize: worldSize, Speed: speed}
}
