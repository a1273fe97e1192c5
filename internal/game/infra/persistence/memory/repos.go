package memory

import (
	"context"
	"sort"
	"time"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
)

type playerRepo struct{ u *unitOfWork }

func (r *playerRepo) GetByID(ctx context.Context, id int64) (*domain.Player, error) {
	if p, ok := r.u.stagedPlayers[id]; ok {
		return clonePlayer(p), nil
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	p, ok := r.u.store.players[id]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return clonePlayer(p), nil
}

func (r *playerRepo) GetByUsername(ctx context.Context, username string) (*domain.Player, error) {
	for _, p := range r.u.stagedPlayers {
		if p.Username == username {
			return clonePlayer(p), nil
		}
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	for _, p := range r.u.store.players {
		if p.Username == username {
			return clonePlayer(p), nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

func (r *playerRepo) Save(ctx context.Context, p *domain.Player) error {
	r.u.stagedPlayers[p.ID] = clonePlayer(p)
	return nil
}

type villageRepo struct{ u *unitOfWork }

func (r *villageRepo) GetByID(ctx context.Context, id int64) (*domain.Village, error) {
	row := r.findRow(id)
	if row == nil {
		return nil, domain.ErrVillageNotFound
	}
	v := cloneVillageRow(row)
	r.attachArmies(v)
	return v, nil
}

func (r *villageRepo) findRow(id int64) *domain.Village {
	if v, ok := r.u.stagedVillages[id]; ok {
		return v
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	return r.u.store.villages[id]
}

// attachArmies 按当前驻扎格子还原驻军与援军。
func (r *villageRepo) attachArmies(v *domain.Village) {
	armies := r.u.armiesAtField(v.ID)
	for _, a := range armies {
		if a.VillageID == v.ID {
			v.Army = a
		} else {
			v.Reinforcements = append(v.Reinforcements, a)
		}
	}
}

func (r *villageRepo) ListByPlayer(ctx context.Context, playerID int64) ([]*domain.Village, error) {
	seen := make(map[int64]bool)
	var out []*domain.Village
	for id, v := range r.u.stagedVillages {
		if v.PlayerID == playerID {
			cv := cloneVillageRow(v)
			r.attachArmies(cv)
			out = append(out, cv)
			seen[id] = true
		}
	}
	r.u.store.mu.Lock()
	var rows []*domain.Village
	for id, v := range r.u.store.villages {
		if v.PlayerID == playerID && !seen[id] {
			rows = append(rows, v)
		}
	}
	r.u.store.mu.Unlock()
	for _, v := range rows {
		cv := cloneVillageRow(v)
		r.attachArmies(cv)
		out = append(out, cv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *villageRepo) Save(ctx context.Context, v *domain.Village) error {
	r.u.stagedVillages[v.ID] = cloneVillageRow(v)
	return nil
}

type armyRepo struct{ u *unitOfWork }

// armiesAtField 合并暂存与库内的军队，暂存优先，已删除的跳过。
func (u *unitOfWork) armiesAtField(fieldID int64) []*domain.Army {
	picked := make(map[int64]*domain.Army)
	u.store.mu.Lock()
	for id, a := range u.store.armies {
		if a.CurrentMapFieldID != nil && *a.CurrentMapFieldID == fieldID {
			picked[id] = a
		}
	}
	u.store.mu.Unlock()
	for id, a := range u.stagedArmies {
		if a.CurrentMapFieldID != nil && *a.CurrentMapFieldID == fieldID {
			picked[id] = a
		} else {
			delete(picked, id)
		}
	}
	for id := range u.deletedArmies {
		if _, staged := u.stagedArmies[id]; !staged {
			delete(picked, id)
		}
	}

	ids := make([]int64, 0, len(picked))
	for id := range picked {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*domain.Army, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneArmy(picked[id]))
	}
	return out
}

func (r *armyRepo) GetByID(ctx context.Context, id int64) (*domain.Army, error) {
	if r.u.deletedArmies[id] {
		if _, staged := r.u.stagedArmies[id]; !staged {
			return nil, domain.ErrArmyNotFound
		}
	}
	if a, ok := r.u.stagedArmies[id]; ok {
		return cloneArmy(a), nil
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	a, ok := r.u.store.armies[id]
	if !ok {
		return nil, domain.ErrArmyNotFound
	}
	return cloneArmy(a), nil
}

func (r *armyRepo) ListByMapField(ctx context.Context, fieldID int64) ([]*domain.Army, error) {
	return r.u.armiesAtField(fieldID), nil
}

func (r *armyRepo) Save(ctx context.Context, a *domain.Army) error {
	delete(r.u.deletedArmies, a.ID)
	r.u.stagedArmies[a.ID] = cloneArmy(a)
	return nil
}

func (r *armyRepo) Delete(ctx context.Context, id int64) error {
	delete(r.u.stagedArmies, id)
	r.u.deletedArmies[id] = true
	return nil
}

type heroRepo struct{ u *unitOfWork }

func (r *heroRepo) GetByID(ctx context.Context, id int64) (*domain.Hero, error) {
	if h, ok := r.u.stagedHeroes[id]; ok {
		return cloneHero(h), nil
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	h, ok := r.u.store.heroes[id]
	if !ok {
		return nil, domain.ErrHeroNotFound
	}
	return cloneHero(h), nil
}

func (r *heroRepo) GetByPlayer(ctx context.Context, playerID int64) (*domain.Hero, error) {
	for _, h := range r.u.stagedHeroes {
		if h.PlayerID == playerID {
			return cloneHero(h), nil
		}
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	for _, h := range r.u.store.heroes {
		if h.PlayerID == playerID {
			return cloneHero(h), nil
		}
	}
	return nil, domain.ErrHeroNotFound
}

func (r *heroRepo) Save(ctx context.Context, h *domain.Hero) error {
	r.u.stagedHeroes[h.ID] = cloneHero(h)
	return nil
}

type mapRepo struct{ u *unitOfWork }

func (r *mapRepo) GetFieldByID(ctx context.Context, id int64) (*domain.MapField, error) {
	if f, ok := r.u.stagedFields[id]; ok {
		return cloneField(f), nil
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	f, ok := r.u.store.fields[id]
	if !ok {
		return nil, domain.ErrMapFieldNotFound
	}
	return cloneField(f), nil
}

func (r *mapRepo) SaveField(ctx context.Context, f *domain.MapField) error {
	r.u.stagedFields[f.ID] = cloneField(f)
	return nil
}

func (r *mapRepo) BulkSaveFields(ctx context.Context, fields []domain.MapField) error {
	for i := range fields {
		f := fields[i]
		r.u.stagedFields[f.ID] = cloneField(&f)
	}
	return nil
}

func (r *mapRepo) CountFields(ctx context.Context) (int64, error) {
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	return int64(len(r.u.store.fields)), nil
}

type jobRepo struct{ u *unitOfWork }

func (r *jobRepo) Save(ctx context.Context, j *app.Job) error {
	r.u.stagedJobs[j.ID] = cloneJob(j)
	return nil
}

func (r *jobRepo) GetByID(ctx context.Context, id int64) (*app.Job, error) {
	if j, ok := r.u.stagedJobs[id]; ok {
		return cloneJob(j), nil
	}
	r.u.store.mu.Lock()
	defer r.u.store.mu.Unlock()
	j, ok := r.u.store.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	return cloneJob(j), nil
}

// ClaimDue 认领到期任务：按到期时间排序，置为 Processing。
func (r *jobRepo) ClaimDue(ctx context.Context, limit int, now time.Time) ([]*app.Job, error) {
	var due []*app.Job
	r.u.store.mu.Lock()
	for _, j := range r.u.store.jobs {
		if _, staged := r.u.stagedJobs[j.ID]; staged {
			continue
		}
		if j.Status == app.JobPending && j.IsDue(now) {
			due = append(due, j)
		}
	}
	r.u.store.mu.Unlock()
	for _, j := range r.u.stagedJobs {
		if j.Status == app.JobPending && j.IsDue(now) {
			due = append(due, j)
		}
	}

	sort.Slice(due, func(i, j int) bool { return due[i].CompletedAt.Before(due[j].CompletedAt) })
	if len(due) > limit {
		due = due[:limit]
	}

	out := make([]*app.Job, 0, len(due))
	for _, j := range due {
		cj := cloneJob(j)
		cj.Status = app.JobProcessing
		cj.UpdatedAt = now
		r.u.stagedJobs[cj.ID] = cj
		out = append(out, cloneJob(cj))
	}
	return out, nil
}

func (r *jobRepo) setStatus(id int64, status app.JobStatus, reason string) error {
	j, err := r.GetByID(context.Background(), id)
	if err != nil {
		return err
	}
	j.Status = status
	j.FailReason = reason
	j.UpdatedAt = time.Now()
	r.u.stagedJobs[id] = j
	return nil
}

func (r *jobRepo) MarkCompleted(ctx context.Context, id int64) error {
	return r.setStatus(id, app.JobCompleted, "")
}

func (r *jobRepo) MarkFailed(ctx context.Context, id int64, reason string) error {
	return r.setStatus(id, app.JobFailed, reason)
}

func (r *jobRepo) ListActiveByVillageAndType(ctx context.Context, villageID int64, taskType string) ([]*app.Job, error) {
	active := func(j *app.Job) bool {
		return j.VillageID == villageID && j.Payload.TaskType == taskType &&
			(j.Status == app.JobPending || j.Status == app.JobProcessing)
	}
	picked := make(map[int64]*app.Job)
	r.u.store.mu.Lock()
	for id, j := range r.u.store.jobs {
		if active(j) {
			picked[id] = j
		}
	}
	r.u.store.mu.Unlock()
	for id, j := range r.u.stagedJobs {
		if active(j) {
			picked[id] = j
		} else {
			delete(picked, id)
		}
	}

	out := make([]*app.Job, 0, len(picked))
	for _, j := range picked {
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

func (r *jobRepo) ListActiveByPlayer(ctx context.Context, playerID int64) ([]*app.Job, error) {
	active := func(j *app.Job) bool {
		return j.PlayerID == playerID &&
			(j.Status == app.JobPending || j.Status == app.JobProcessing)
	}
	picked := make(map[int64]*app.Job)
	r.u.store.mu.Lock()
	for id, j := range r.u.store.jobs {
		if active(j) {
			picked[id] = j
		}
	}
	r.u.store.mu.Unlock()
	for id, j := range r.u.stagedJobs {
		if active(j) {
			picked[id] = j
		} else {
			delete(picked, id)
		}
	}

	out := make([]*app.Job, 0, len(picked))
	for _, j := range picked {
		out = append(out, cloneJob(j))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out, nil
}

type reportRepo struct{ u *unitOfWork }

func (r *reportRepo) Save(ctx context.Context, rep *domain.Report) error {
	r.u.stagedReports[rep.ID] = cloneReport(rep)
	return nil
}

func (r *reportRepo) ListByPlayer(ctx context.Context, playerID int64, limit int) ([]*domain.Report, error) {
	hasAudience := func(rep *domain.Report) bool {
		for _, a := range rep.Audiences {
			if a.PlayerID == playerID {
				return true
			}
		}
		return false
	}
	picked := make(map[int64]*domain.Report)
	r.u.store.mu.Lock()
	for id, rep := range r.u.store.reports {
		if hasAudience(rep) {
			picked[id] = rep
		}
	}
	r.u.store.mu.Unlock()
	for id, rep := range r.u.stagedReports {
		if hasAudience(rep) {
			picked[id] = rep
		}
	}

	out := make([]*domain.Report, 0, len(picked))
	for _, rep := range picked {
		out = append(out, cloneReport(rep))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *reportRepo) MarkRead(ctx context.Context, reportID, playerID int64) error {
	rep, ok := r.u.stagedReports[reportID]
	if !ok {
		r.u.store.mu.Lock()
		stored, exists := r.u.store.reports[reportID]
		r.u.store.mu.Unlock()
		if !exists {
			return domain.ErrReportNotFound
		}
		rep = cloneReport(stored)
	}
	now := time.Now()
	for i := range rep.Audiences {
		if rep.Audiences[i].PlayerID == playerID {
			rep.Audiences[i].ReadAt = &now
		}
	}
	r.u.stagedReports[reportID] = rep
	return nil
}
