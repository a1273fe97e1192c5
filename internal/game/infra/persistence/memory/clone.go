package memory

import (
	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
)

// 所有读写都经过深拷贝，调用方持有的对象绝不与库内共享。

func clonePlayer(p *domain.Player) *domain.Player {
	if p == nil {
		return nil
	}
	cp := *p
	return &cp
}

func cloneHero(h *domain.Hero) *domain.Hero {
	if h == nil {
		return nil
	}
	ch := *h
	return &ch
}

// cloneVillageRow 只拷贝村庄自身，驻军与援军由军队表还原。
func cloneVillageRow(v *domain.Village) *domain.Village {
	if v == nil {
		return nil
	}
	cv := *v
	cv.Army = nil
	cv.Reinforcements = nil
	cv.Buildings = make([]domain.VillageBuilding, len(v.Buildings))
	copy(cv.Buildings, v.Buildings)
	if v.ParentVillageID != nil {
		id := *v.ParentVillageID
		cv.ParentVillageID = &id
	}
	return &cv
}

func cloneArmy(a *domain.Army) *domain.Army {
	if a == nil {
		return nil
	}
	ca := *a
	if a.CurrentMapFieldID != nil {
		id := *a.CurrentMapFieldID
		ca.CurrentMapFieldID = &id
	}
	ca.Hero = cloneHero(a.Hero)
	return &ca
}

func cloneField(f *domain.MapField) *domain.MapField {
	if f == nil {
		return nil
	}
	cf := *f
	if f.VillageID != nil {
		id := *f.VillageID
		cf.VillageID = &id
	}
	if f.PlayerID != nil {
		id := *f.PlayerID
		cf.PlayerID = &id
	}
	return &cf
}

func cloneJob(j *app.Job) *app.Job {
	if j == nil {
		return nil
	}
	cj := *j
	cj.Payload.Data = append([]byte(nil), j.Payload.Data...)
	return &cj
}

func cloneReport(r *domain.Report) *domain.Report {
	if r == nil {
		return nil
	}
	cr := *r
	cr.Audiences = make([]domain.ReportAudience, len(r.Audiences))
	copy(cr.Audiences, r.Audiences)
	return &cr
}
