package handler

import (
	"errors"
	nethttp "net/http"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
	"parabellum/internal/shared/errs"
)

// HandleError 把领域错误翻译成 HTTP 状态码和对外文案。
// 基础设施错误不向客户端透传细节。
func HandleError(err error) (int, string) {
	if err == nil {
		return nethttp.StatusOK, ""
	}

	switch {
	case errors.Is(err, domain.ErrPlayerNotFound),
		errors.Is(err, domain.ErrVillageNotFound),
		errors.Is(err, domain.ErrArmyNotFound),
		errors.Is(err, domain.ErrHeroNotFound),
		errors.Is(err, domain.ErrMapFieldNotFound),
		errors.Is(err, domain.ErrJobNotFound),
		errors.Is(err, domain.ErrReportNotFound):
		return nethttp.StatusNotFound, err.Error()

	case errors.Is(err, app.ErrUsernameTaken),
		errors.Is(err, domain.ErrTargetOccupied):
		return nethttp.StatusConflict, err.Error()
	}

	var notOwned *domain.VillageNotOwnedError
	var noHandler *app.NoJobHandlerError
	var queueFull *app.QueueLimitReachedError
	var alreadyQueued *app.QueueItemAlreadyQueuedError
	switch {
	case errors.As(err, &notOwned):
		return nethttp.StatusForbidden, err.Error()
	case errors.As(err, &queueFull), errors.As(err, &alreadyQueued):
		return nethttp.StatusConflict, err.Error()
	case errors.As(err, &noHandler):
		return nethttp.StatusInternalServerError, "系统繁忙，请稍后重试"
	}

	var infra *errs.Error
	if errors.As(err, &infra) && infra.Kind != errs.KindBusiness {
		return nethttp.StatusInternalServerError, "系统繁忙，请稍后重试"
	}

	// 其余领域校验错误一律按参数拒绝处理。
	return nethttp.StatusUnprocessableEntity, err.Error()
}
