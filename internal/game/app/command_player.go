package app

import (
	"context"
	"errors"

	"parabellum/internal/game/domain"
	"parabellum/internal/shared/utils"
)

var ErrUsernameTaken = errors.New("username already taken")

type RegisterPlayerCommand struct {
	Username string
	Tribe    domain.Tribe
}

// RegisterPlayer 注册玩家。用户名唯一。
func RegisterPlayer(ctx context.Context, uow UnitOfWork, cfg Config, cmd RegisterPlayerCommand) (*domain.Player, error) {
	existing, err := uow.Players().GetByUsername(ctx, cmd.Username)
	if err != nil && !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	player := domain.NewPlayer(utils.GenID(), cmd.Username, cmd.Tribe)
	if err := uow.Players().Save(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

type FoundVillageCommand struct {
	PlayerID  int64
	Position  domain.Position
	Name      string
	IsCapital bool
}

// FoundVillage 直接在空山谷上落成村庄，注册后的首村走这里。
func FoundVillage(ctx context.Context, uow UnitOfWork, cfg Config, cmd FoundVillageCommand) (*domain.Village, error) {
	field, err := uow.Map().GetFieldByID(ctx, cmd.Position.ToFieldID(cfg.WorldSize))
	if err != nil {
		return nil, err
	}
	if field.Kind != domain.FieldValley {
		return nil, domain.ErrInvalidValley
	}
	if field.IsOccupied() {
		return nil, domain.ErrTargetOccupied
	}

	player, err := uow.Players().GetByID(ctx, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	village, err := domain.NewVillage(cmd.Name, field, player, cmd.IsCapital, cfg.WorldSize, cfg.Speed)
	if err != nil {
		return nil, err
	}
	if err := uow.Villages().Save(ctx, village); err != nil {
		return nil, err
	}

	field.VillageID = &village.ID
	field.PlayerID = &player.ID
	if err := uow.Map().SaveField(ctx, field); err != nil {
		return nil, err
	}
	return village, nil
}

// UpdatePlayerCulturePoints 重算玩家全部村庄的文化点。
func UpdatePlayerCulturePoints(ctx context.Context, uow UnitOfWork, playerID int64) error {
	player, err := uow.Players().GetByID(ctx, playerID)
	if err != nil {
		return err
	}
	villages, err := uow.Villages().ListByPlayer(ctx, playerID)
	if err != nil {
		return err
	}
	var total uint64
	for _, v := range villages {
		total += v.CulturePoints()
	}
	player.CulturePoints = total
	return uow.Players().Save(ctx, player)
}
