// Package memory 提供纯内存的工作单元实现，事务语义与 MySQL 版一致：
// 提交前的写入对外不可见，回滚即丢弃。用于测试与本地开发。
package memory

import (
	"context"
	"sync"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
)

// Store 内存数据库。
type Store struct {
	mu       sync.Mutex
	players  map[int64]*domain.Player
	villages map[int64]*domain.Village
	armies   map[int64]*domain.Army
	heroes   map[int64]*domain.Hero
	fields   map[int64]*domain.MapField
	jobs     map[int64]*app.Job
	reports  map[int64]*domain.Report
}

func NewStore() *Store {
	return &Store{
		players:  make(map[int64]*domain.Player),
		villages: make(map[int64]*domain.Village),
		armies:   make(map[int64]*domain.Army),
		heroes:   make(map[int64]*domain.Hero),
		fields:   make(map[int64]*domain.MapField),
		jobs:     make(map[int64]*app.Job),
		reports:  make(map[int64]*domain.Report),
	}
}

// Begin 开启一个事务。写入先进暂存区，Commit 时一次性落库。
func (s *Store) Begin(ctx context.Context) (app.UnitOfWork, error) {
	return &unitOfWork{
		store:          s,
		stagedPlayers:  make(map[int64]*domain.Player),
		stagedVillages: make(map[int64]*domain.Village),
		stagedArmies:   make(map[int64]*domain.Army),
		deletedArmies:  make(map[int64]bool),
		stagedHeroes:   make(map[int64]*domain.Hero),
		stagedFields:   make(map[int64]*domain.MapField),
		stagedJobs:     make(map[int64]*app.Job),
		stagedReports:  make(map[int64]*domain.Report),
	}, nil
}

type unitOfWork struct {
	store *Store
	done  bool

	stagedPlayers  map[int64]*domain.Player
	stagedVillages map[int64]*domain.Village
	stagedArmies   map[int64]*domain.Army
	deletedArmies  map[int64]bool
	stagedHeroes   map[int64]*domain.Hero
	stagedFields   map[int64]*domain.MapField
	stagedJobs     map[int64]*app.Job
	stagedReports  map[int64]*domain.Report
}

func (u *unitOfWork) Players() app.PlayerRepository   { return &playerRepo{u} }
func (u *unitOfWork) Villages() app.VillageRepository { return &villageRepo{u} }
func (u *unitOfWork) Armies() app.ArmyRepository      { return &armyRepo{u} }
func (u *unitOfWork) Heroes() app.HeroRepository      { return &heroRepo{u} }
func (u *unitOfWork) Jobs() app.JobRepository         { return &jobRepo{u} }
func (u *unitOfWork) Map() app.MapRepository          { return &mapRepo{u} }
func (u *unitOfWork) Reports() app.ReportRepository   { return &reportRepo{u} }

func (u *unitOfWork) Commit() error {
	if u.done {
		return nil
	}
	u.done = true

	s := u.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, p := range u.stagedPlayers {
		s.players[id] = p
	}
	for id, v := range u.stagedVillages {
		s.villages[id] = v
	}
	for id := range u.deletedArmies {
		delete(s.armies, id)
	}
	for id, a := range u.stagedArmies {
		s.armies[id] = a
	}
	for id, h := range u.stagedHeroes {
		s.heroes[id] = h
	}
	for id, f := range u.stagedFields {
		s.fields[id] = f
	}
	for id, j := range u.stagedJobs {
		s.jobs[id] = j
	}
	for id, r := range u.stagedReports {
		s.reports[id] = r
	}
	return nil
}

func (u *unitOfWork) Rollback() error {
	u.done = true
	return nil
}
