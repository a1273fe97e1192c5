package app

import "context"

// HandlerFunc 在一个事务内执行的业务逻辑。
type HandlerFunc func(ctx context.Context, uow UnitOfWork, cfg Config) error

// Bus 统一管理事务生命周期：命令成功即提交、失败即回滚，查询一律回滚。
type Bus struct {
	provider UnitOfWorkProvider
	cfg      Config
}

func NewBus(provider UnitOfWorkProvider, cfg Config) *Bus {
	return &Bus{provider: provider, cfg: cfg}
}

func (b *Bus) Config() Config {
	return b.cfg
}

// Execute 执行一条命令。fn 返回错误时事务回滚，任何写入都不落库。
func (b *Bus) Execute(ctx context.Context, fn HandlerFunc) error {
	uow, err := b.provider.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(ctx, uow, b.cfg); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

// Query 执行一条查询。事务始终回滚，保证查询不产生写入。
func (b *Bus) Query(ctx context.Context, fn HandlerFunc) error {
	uow, err := b.provider.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = uow.Rollback() }()
	return fn(ctx, uow, b.cfg)
}
