package app

import "context"

// JobHandlerFunc 处理一条到期任务。在传入的事务内完成全部读写，
// 返回错误时整个事务回滚。
type JobHandlerFunc func(ctx context.Context, uow UnitOfWork, cfg Config, job *Job) error

// Registry 任务类型到处理器的映射表。
type Registry struct {
	handlers map[string]JobHandlerFunc
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]JobHandlerFunc)}
}

func (r *Registry) Register(taskType string, h JobHandlerFunc) {
	r.handlers[taskType] = h
}

// Resolve 未注册的任务类型报 NoJobHandlerError。
func (r *Registry) Resolve(taskType string) (JobHandlerFunc, error) {
	h, ok := r.handlers[taskType]
	if !ok {
		return nil, &NoJobHandlerError{TaskType: taskType}
	}
	return h, nil
}

// TaskTypes 已注册的任务类型。
func (r *Registry) TaskTypes() []string {
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	return types
}

// DefaultRegistry 注册全部内置任务处理器。
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TaskAttack, HandleAttack)
	r.Register(TaskScout, HandleScout)
	r.Register(TaskArmyReturn, HandleArmyReturn)
	r.Register(TaskReinforcement, HandleReinforcement)
	r.Register(TaskTrainUnits, HandleTrainUnits)
	r.Register(TaskResearchAcademy, HandleResearchAcademy)
	r.Register(TaskResearchSmithy, HandleResearchSmithy)
	r.Register(TaskAddBuilding, HandleAddBuilding)
	r.Register(TaskBuildingUpgrade, HandleBuildingUpgrade)
	r.Register(TaskBuildingDowngrade, HandleBuildingDowngrade)
	r.Register(TaskMerchantGoing, HandleMerchantGoing)
	r.Register(TaskMerchantReturn, HandleMerchantReturn)
	r.Register(TaskHeroRevival, HandleHeroRevival)
	r.Register(TaskFoundVillage, HandleFoundVillage)
	return r
}
