package model

import (
	"encoding/json"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
)

func PlayerToModel(p *domain.Player) *Player {
	return &Player{
		ID:            p.ID,
		Username:      p.Username,
		Tribe:         string(p.Tribe),
		CulturePoints: p.CulturePoints,
		CreatedAt:     p.CreatedAt,
	}
}

func PlayerToDomain(m *Player) *domain.Player {
	return &domain.Player{
		ID:            m.ID,
		Username:      m.Username,
		Tribe:         domain.Tribe(m.Tribe),
		CulturePoints: m.CulturePoints,
		CreatedAt:     m.CreatedAt,
	}
}

func VillageToModel(v *domain.Village) (*Village, error) {
	buildings, err := json.Marshal(v.Buildings)
	if err != nil {
		return nil, err
	}
	smithy, err := json.Marshal(v.Smithy)
	if err != nil {
		return nil, err
	}
	research, err := json.Marshal(v.AcademyResearch)
	if err != nil {
		return nil, err
	}
	stocks, err := json.Marshal(v.Stocks)
	if err != nil {
		return nil, err
	}
	production, err := json.Marshal(v.Production)
	if err != nil {
		return nil, err
	}

	return &Village{
		ID:              v.ID,
		Name:            v.Name,
		PlayerID:        v.PlayerID,
		ParentVillageID: v.ParentVillageID,
		X:               v.Position.X,
		Y:               v.Position.Y,
		Tribe:           string(v.Tribe),
		IsCapital:       v.IsCapital,
		Loyalty:         v.Loyalty,
		Population:      v.Population,
		Buildings:       buildings,
		Smithy:          smithy,
		AcademyResearch: research,
		Stocks:          stocks,
		Production:      production,
		TotalMerchants:  v.TotalMerchants,
		BusyMerchants:   v.BusyMerchants,
		UpdatedAt:       v.UpdatedAt,
	}, nil
}

// VillageToDomain 只还原村庄本身，驻军与援军由仓储另行装配。
func VillageToDomain(m *Village) (*domain.Village, error) {
	v := &domain.Village{
		ID:              m.ID,
		Name:            m.Name,
		PlayerID:        m.PlayerID,
		ParentVillageID: m.ParentVillageID,
		Position:        domain.Position{X: m.X, Y: m.Y},
		Tribe:           domain.Tribe(m.Tribe),
		IsCapital:       m.IsCapital,
		Loyalty:         m.Loyalty,
		Population:      m.Population,
		TotalMerchants:  m.TotalMerchants,
		BusyMerchants:   m.BusyMerchants,
		UpdatedAt:       m.UpdatedAt,
	}
	if err := json.Unmarshal(m.Buildings, &v.Buildings); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(m.Smithy, &v.Smithy); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(m.AcademyResearch, &v.AcademyResearch); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(m.Stocks, &v.Stocks); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(m.Production, &v.Production); err != nil {
		return nil, err
	}
	return v, nil
}

func ArmyToModel(a *domain.Army) (*Army, error) {
	units, err := json.Marshal(a.Units)
	if err != nil {
		return nil, err
	}
	smithy, err := json.Marshal(a.Smithy)
	if err != nil {
		return nil, err
	}
	m := &Army{
		ID:                a.ID,
		PlayerID:          a.PlayerID,
		VillageID:         a.VillageID,
		Tribe:             string(a.Tribe),
		Units:             units,
		Smithy:            smithy,
		CurrentMapFieldID: a.CurrentMapFieldID,
	}
	if a.Hero != nil {
		m.HeroID = &a.Hero.ID
	}
	return m, nil
}

// ArmyToDomain 英雄由仓储按 hero_id 另行装配。
func ArmyToDomain(m *Army) (*domain.Army, error) {
	a := &domain.Army{
		ID:                m.ID,
		PlayerID:          m.PlayerID,
		VillageID:         m.VillageID,
		Tribe:             domain.Tribe(m.Tribe),
		CurrentMapFieldID: m.CurrentMapFieldID,
	}
	if err := json.Unmarshal(m.Units, &a.Units); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(m.Smithy, &a.Smithy); err != nil {
		return nil, err
	}
	return a, nil
}

func HeroToModel(h *domain.Hero) *Hero {
	return &Hero{
		ID:            h.ID,
		PlayerID:      h.PlayerID,
		VillageID:     h.VillageID,
		Health:        h.Health,
		Experience:    h.Experience,
		AttackPoints:  h.AttackPoints,
		DefensePoints: h.DefensePoints,
		OffBonus:      h.OffBonus,
		DefBonus:      h.DefBonus,
	}
}

func HeroToDomain(m *Hero) *domain.Hero {
	return &domain.Hero{
		ID:            m.ID,
		PlayerID:      m.PlayerID,
		VillageID:     m.VillageID,
		Health:        m.Health,
		Experience:    m.Experience,
		AttackPoints:  m.AttackPoints,
		DefensePoints: m.DefensePoints,
		OffBonus:      m.OffBonus,
		DefBonus:      m.DefBonus,
	}
}

func MapFieldToModel(f *domain.MapField) *MapField {
	return &MapField{
		ID:        f.ID,
		X:         f.Position.X,
		Y:         f.Position.Y,
		Kind:      string(f.Kind),
		Lumber:    f.Topology.Lumber,
		Clay:      f.Topology.Clay,
		Iron:      f.Topology.Iron,
		Crop:      f.Topology.Crop,
		Oasis:     string(f.Oasis),
		VillageID: f.VillageID,
		PlayerID:  f.PlayerID,
	}
}

func MapFieldToDomain(m *MapField) *domain.MapField {
	return &domain.MapField{
		ID:       m.ID,
		Position: domain.Position{X: m.X, Y: m.Y},
		Kind:     domain.FieldKind(m.Kind),
		Topology: domain.ValleyTopology{
			Lumber: m.Lumber,
			Clay:   m.Clay,
			Iron:   m.Iron,
			Crop:   m.Crop,
		},
		Oasis:     domain.OasisKind(m.Oasis),
		VillageID: m.VillageID,
		PlayerID:  m.PlayerID,
	}
}

func JobToModel(j *app.Job) *Job {
	return &Job{
		ID:          j.ID,
		PlayerID:    j.PlayerID,
		VillageID:   j.VillageID,
		TaskType:    j.Payload.TaskType,
		Data:        []byte(j.Payload.Data),
		Status:      string(j.Status),
		FailReason:  j.FailReason,
		CompletedAt: j.CompletedAt,
		CreatedAt:   j.CreatedAt,
		UpdatedAt:   j.UpdatedAt,
	}
}

func JobToDomain(m *Job) *app.Job {
	return &app.Job{
		ID:        m.ID,
		PlayerID:  m.PlayerID,
		VillageID: m.VillageID,
		Payload: app.JobPayload{
			TaskType: m.TaskType,
			Data:     json.RawMessage(m.Data),
		},
		Status:      app.JobStatus(m.Status),
		FailReason:  m.FailReason,
		CompletedAt: m.CompletedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
