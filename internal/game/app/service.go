package app

import (
	"context"

	"parabellum/internal/game/domain"
)

// App 对外的应用服务门面。命令经 Bus 管理事务，查询只读。
type App struct {
	bus *Bus
}

func New(provider UnitOfWorkProvider, cfg Config) *App {
	return &App{bus: NewBus(provider, cfg)}
}

func (a *App) Config() Config {
	return a.bus.Config()
}

func (a *App) RegisterPlayer(ctx context.Context, cmd RegisterPlayerCommand) (*domain.Player, error) {
	var player *domain.Player
	err := a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		var err error
		player, err = RegisterPlayer(ctx, uow, cfg, cmd)
		return err
	})
	return player, err
}

func (a *App) FoundVillage(ctx context.Context, cmd FoundVillageCommand) (*domain.Village, error) {
	var village *domain.Village
	err := a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		var err error
		village, err = FoundVillage(ctx, uow, cfg, cmd)
		return err
	})
	return village, err
}

func (a *App) AttackVillage(ctx context.Context, cmd AttackVillageCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return AttackVillage(ctx, uow, cfg, cmd)
	})
}

func (a *App) ScoutVillage(ctx context.Context, cmd ScoutVillageCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return ScoutVillage(ctx, uow, cfg, cmd)
	})
}

func (a *App) ReinforceVillage(ctx context.Context, cmd ReinforceVillageCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return ReinforceVillage(ctx, uow, cfg, cmd)
	})
}

func (a *App) SettleVillage(ctx context.Context, cmd SettleVillageCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return SettleVillage(ctx, uow, cfg, cmd)
	})
}

func (a *App) SendResources(ctx context.Context, cmd SendResourcesCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return SendResources(ctx, uow, cfg, cmd)
	})
}

func (a *App) TrainUnits(ctx context.Context, cmd TrainUnitsCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return TrainUnits(ctx, uow, cfg, cmd)
	})
}

func (a *App) ResearchAcademy(ctx context.Context, cmd ResearchAcademyCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return ResearchAcademy(ctx, uow, cfg, cmd)
	})
}

func (a *App) ResearchSmithy(ctx context.Context, cmd ResearchSmithyCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return ResearchSmithy(ctx, uow, cfg, cmd)
	})
}

func (a *App) AddBuilding(ctx context.Context, cmd AddBuildingCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return AddBuilding(ctx, uow, cfg, cmd)
	})
}

func (a *App) UpgradeBuilding(ctx context.Context, cmd UpgradeBuildingCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return UpgradeBuilding(ctx, uow, cfg, cmd)
	})
}

func (a *App) DowngradeBuilding(ctx context.Context, cmd DowngradeBuildingCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return DowngradeBuilding(ctx, uow, cfg, cmd)
	})
}

func (a *App) ReviveHero(ctx context.Context, cmd ReviveHeroCommand) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return ReviveHero(ctx, uow, cfg, cmd)
	})
}

func (a *App) GetVillage(ctx context.Context, villageID int64) (*VillageView, error) {
	var view *VillageView
	err := a.bus.Query(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		var err error
		view, err = GetVillage(ctx, uow, cfg, villageID)
		return err
	})
	return view, err
}

func (a *App) ListVillageJobs(ctx context.Context, villageID int64, taskType string) ([]*Job, error) {
	var jobs []*Job
	err := a.bus.Query(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		var err error
		jobs, err = uow.Jobs().ListActiveByVillageAndType(ctx, villageID, taskType)
		return err
	})
	return jobs, err
}

func (a *App) ListPlayerJobs(ctx context.Context, playerID int64) ([]*Job, error) {
	var jobs []*Job
	err := a.bus.Query(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		var err error
		jobs, err = uow.Jobs().ListActiveByPlayer(ctx, playerID)
		return err
	})
	return jobs, err
}

func (a *App) GetUnoccupiedValley(ctx context.Context, origin domain.Position) (*domain.MapField, error) {
	var field *domain.MapField
	err := a.bus.Query(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		var err error
		field, err = GetUnoccupiedValley(ctx, uow, cfg, origin)
		return err
	})
	return field, err
}

func (a *App) ListReports(ctx context.Context, playerID int64, limit int) ([]*domain.Report, error) {
	var reports []*domain.Report
	err := a.bus.Query(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		var err error
		reports, err = uow.Reports().ListByPlayer(ctx, playerID, limit)
		return err
	})
	return reports, err
}

func (a *App) MarkReportRead(ctx context.Context, reportID, playerID int64) error {
	return a.bus.Execute(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		return uow.Reports().MarkRead(ctx, reportID, playerID)
	})
}

func (a *App) GetMapField(ctx context.Context, x, y int32) (*domain.MapField, error) {
	var field *domain.MapField
	err := a.bus.Query(ctx, func(ctx context.Context, uow UnitOfWork, cfg Config) error {
		pos := domain.Position{X: x, Y: y}
		var err error
		field, err = uow.Map().GetFieldByID(ctx, pos.ToFieldID(cfg.WorldSize))
		return err
	})
	return field, err
}
