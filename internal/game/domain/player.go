package domain

import "time"

// Player 玩家账号在游戏世界内的化身。
type Player struct {
	ID            int64     `json:"id"`
	Username      string    `json:"username"`
	Tribe         Tribe     `json:"tribe"`
	CulturePoints uint64    `json:"culture_points"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewPlayer(id int64, username string, tribe Tribe) *Player {
	return &Player{ID: id, Username: username, Tribe: tribe, CreatedAt: time.Now()}
}

// MaxVillages 文化点决定的可拥有村庄上限。
func (p *Player) MaxVillages() int {
	threshold := uint64(2000)
	count := 1
	remaining := p.CulturePoints
	for remaining >= threshold {
		remaining -= threshold
		threshold = threshold * 3 / 2
		count++
	}
	return count
}
