package app

import "fmt"

// NoJobHandlerError 任务类型没有注册对应的处理器。
type NoJobHandlerError struct {
	TaskType string
}

func (e *NoJobHandlerError) Error() string {
	return fmt.Sprintf("no job handler registered for task type %q", e.TaskType)
}

// QueueLimitReachedError 队列容量已满。
type QueueLimitReachedError struct {
	Queue string
}

func (e *QueueLimitReachedError) Error() string {
	return fmt.Sprintf("queue %q is full", e.Queue)
}

// QueueItemAlreadyQueuedError 同一条目重复入队。
type QueueItemAlreadyQueuedError struct {
	Queue string
	Item  string
}

func (e *QueueItemAlreadyQueuedError) Error() string {
	return fmt.Sprintf("item %q already queued in %q", e.Item, e.Queue)
}
