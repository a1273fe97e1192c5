// Package handler 游戏 HTTP 接口层。参数绑定后直接调应用服务，
// 不做任何业务判断。
package handler

import (
	nethttp "net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
	"parabellum/internal/game/interfaces/handler/dto"
)

type HttpHandler struct {
	app *app.App
}

func NewHttpHandler(a *app.App) *HttpHandler {
	return &HttpHandler{app: a}
}

func (h *HttpHandler) RegisterRoutes(group *gin.RouterGroup) {
	players := group.Group("/players")
	players.POST("", h.RegisterPlayer)
	players.GET("/:id/reports", h.ListReports)
	players.GET("/:id/jobs", h.ListPlayerJobs)

	villages := group.Group("/villages")
	villages.POST("", h.FoundVillage)
	villages.GET("/:id", h.GetVillage)
	villages.GET("/:id/jobs", h.ListVillageJobs)
	villages.POST("/:id/buildings", h.AddBuilding)
	villages.POST("/:id/buildings/:slot/upgrade", h.UpgradeBuilding)
	villages.POST("/:id/buildings/:slot/downgrade", h.DowngradeBuilding)
	villages.POST("/:id/train", h.TrainUnits)
	villages.POST("/:id/research/academy", h.ResearchAcademy)
	villages.POST("/:id/research/smithy", h.ResearchSmithy)
	villages.POST("/:id/attack", h.AttackVillage)
	villages.POST("/:id/scout", h.ScoutVillage)
	villages.POST("/:id/reinforce", h.ReinforceVillage)
	villages.POST("/:id/settle", h.SettleVillage)
	villages.POST("/:id/market/send", h.SendResources)

	group.POST("/heroes/:id/revive", h.ReviveHero)
	group.POST("/reports/:id/read", h.MarkReportRead)
	group.GET("/map/field", h.GetMapField)
	group.GET("/map/unoccupied-valley", h.GetUnoccupiedValley)
}

type registerPlayerReq struct {
	Username string `json:"username" binding:"required"`
	Tribe    string `json:"tribe" binding:"required"`
}

func (h *HttpHandler) RegisterPlayer(c *gin.Context) {
	var req registerPlayerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	player, err := h.app.RegisterPlayer(c.Request.Context(), app.RegisterPlayerCommand{
		Username: req.Username,
		Tribe:    domain.Tribe(req.Tribe),
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, player)
}

type foundVillageReq struct {
	PlayerID  int64  `json:"player_id" binding:"required"`
	X         int32  `json:"x"`
	Y         int32  `json:"y"`
	Name      string `json:"name" binding:"required"`
	IsCapital bool   `json:"is_capital"`
}

func (h *HttpHandler) FoundVillage(c *gin.Context) {
	var req foundVillageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	village, err := h.app.FoundVillage(c.Request.Context(), app.FoundVillageCommand{
		PlayerID:  req.PlayerID,
		Position:  domain.Position{X: req.X, Y: req.Y},
		Name:      req.Name,
		IsCapital: req.IsCapital,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, village)
}

func (h *HttpHandler) GetVillage(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	view, err := h.app.GetVillage(c.Request.Context(), villageID)
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, view)
}

func (h *HttpHandler) ListVillageJobs(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	taskType := c.Query("type")
	if taskType == "" {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	jobs, err := h.app.ListVillageJobs(c.Request.Context(), villageID, taskType)
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, jobs)
}

type addBuildingReq struct {
	PlayerID int64  `json:"player_id" binding:"required"`
	SlotID   uint8  `json:"slot_id" binding:"required"`
	Building string `json:"building" binding:"required"`
}

func (h *HttpHandler) AddBuilding(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req addBuildingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.AddBuilding(c.Request.Context(), app.AddBuildingCommand{
		PlayerID:  req.PlayerID,
		VillageID: villageID,
		SlotID:    req.SlotID,
		Building:  domain.BuildingName(req.Building),
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type playerReq struct {
	PlayerID int64 `json:"player_id" binding:"required"`
}

func (h *HttpHandler) UpgradeBuilding(c *gin.Context) {
	villageID, slotID, ok := h.villageSlot(c)
	if !ok {
		return
	}
	var req playerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.UpgradeBuilding(c.Request.Context(), app.UpgradeBuildingCommand{
		PlayerID:  req.PlayerID,
		VillageID: villageID,
		SlotID:    slotID,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) DowngradeBuilding(c *gin.Context) {
	villageID, slotID, ok := h.villageSlot(c)
	if !ok {
		return
	}
	var req playerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.DowngradeBuilding(c.Request.Context(), app.DowngradeBuildingCommand{
		PlayerID:  req.PlayerID,
		VillageID: villageID,
		SlotID:    slotID,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type trainUnitsReq struct {
	PlayerID int64  `json:"player_id" binding:"required"`
	UnitIdx  uint8  `json:"unit_idx"`
	Building string `json:"building" binding:"required"`
	Quantity uint32 `json:"quantity" binding:"required"`
}

func (h *HttpHandler) TrainUnits(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req trainUnitsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.TrainUnits(c.Request.Context(), app.TrainUnitsCommand{
		PlayerID:  req.PlayerID,
		VillageID: villageID,
		UnitIdx:   req.UnitIdx,
		Building:  domain.BuildingName(req.Building),
		Quantity:  req.Quantity,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type researchReq struct {
	PlayerID int64 `json:"player_id" binding:"required"`
	UnitIdx  uint8 `json:"unit_idx"`
}

func (h *HttpHandler) ResearchAcademy(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req researchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.ResearchAcademy(c.Request.Context(), app.ResearchAcademyCommand{
		PlayerID:  req.PlayerID,
		VillageID: villageID,
		UnitIdx:   req.UnitIdx,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) ResearchSmithy(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req researchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.ResearchSmithy(c.Request.Context(), app.ResearchSmithyCommand{
		PlayerID:  req.PlayerID,
		VillageID: villageID,
		UnitIdx:   req.UnitIdx,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type attackReq struct {
	PlayerID        int64           `json:"player_id" binding:"required"`
	TargetVillageID int64           `json:"target_village_id" binding:"required"`
	Units           domain.TroopSet `json:"units"`
	HeroID          *int64          `json:"hero_id"`
	CatapultTargets []string        `json:"catapult_targets"`
	AttackType      string          `json:"attack_type"`
}

func (h *HttpHandler) AttackVillage(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req attackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	attackType := domain.AttackType(req.AttackType)
	if attackType == "" {
		attackType = domain.AttackNormal
	}
	targets := make([]domain.BuildingName, 0, len(req.CatapultTargets))
	for _, t := range req.CatapultTargets {
		targets = append(targets, domain.BuildingName(t))
	}
	err := h.app.AttackVillage(c.Request.Context(), app.AttackVillageCommand{
		PlayerID:        req.PlayerID,
		VillageID:       villageID,
		TargetVillageID: req.TargetVillageID,
		Units:           req.Units,
		HeroID:          req.HeroID,
		CatapultTargets: targets,
		AttackType:      attackType,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type scoutReq struct {
	PlayerID        int64           `json:"player_id" binding:"required"`
	TargetVillageID int64           `json:"target_village_id" binding:"required"`
	Units           domain.TroopSet `json:"units"`
}

func (h *HttpHandler) ScoutVillage(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req scoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.ScoutVillage(c.Request.Context(), app.ScoutVillageCommand{
		PlayerID:        req.PlayerID,
		VillageID:       villageID,
		TargetVillageID: req.TargetVillageID,
		Units:           req.Units,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type reinforceReq struct {
	PlayerID        int64           `json:"player_id" binding:"required"`
	TargetVillageID int64           `json:"target_village_id" binding:"required"`
	Units           domain.TroopSet `json:"units"`
	HeroID          *int64          `json:"hero_id"`
}

func (h *HttpHandler) ReinforceVillage(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req reinforceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.ReinforceVillage(c.Request.Context(), app.ReinforceVillageCommand{
		PlayerID:        req.PlayerID,
		VillageID:       villageID,
		TargetVillageID: req.TargetVillageID,
		Units:           req.Units,
		HeroID:          req.HeroID,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type settleReq struct {
	PlayerID int64 `json:"player_id" binding:"required"`
	X        int32 `json:"x"`
	Y        int32 `json:"y"`
}

func (h *HttpHandler) SettleVillage(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req settleReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.SettleVillage(c.Request.Context(), app.SettleVillageCommand{
		PlayerID:  req.PlayerID,
		VillageID: villageID,
		Position:  domain.Position{X: req.X, Y: req.Y},
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type sendResourcesReq struct {
	PlayerID        int64                `json:"player_id" binding:"required"`
	TargetVillageID int64                `json:"target_village_id" binding:"required"`
	Resources       domain.ResourceGroup `json:"resources"`
}

func (h *HttpHandler) SendResources(c *gin.Context) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req sendResourcesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.SendResources(c.Request.Context(), app.SendResourcesCommand{
		PlayerID:        req.PlayerID,
		VillageID:       villageID,
		TargetVillageID: req.TargetVillageID,
		Resources:       req.Resources,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

type reviveHeroReq struct {
	PlayerID  int64 `json:"player_id" binding:"required"`
	VillageID int64 `json:"village_id" binding:"required"`
	Reset     bool  `json:"reset"`
}

func (h *HttpHandler) ReviveHero(c *gin.Context) {
	heroID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req reviveHeroReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	err := h.app.ReviveHero(c.Request.Context(), app.ReviveHeroCommand{
		PlayerID:  req.PlayerID,
		HeroID:    heroID,
		VillageID: req.VillageID,
		Reset:     req.Reset,
	})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) ListReports(c *gin.Context) {
	playerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	reports, err := h.app.ListReports(c.Request.Context(), playerID, limit)
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, reports)
}

func (h *HttpHandler) MarkReportRead(c *gin.Context) {
	reportID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	var req playerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	if err := h.app.MarkReportRead(c.Request.Context(), reportID, req.PlayerID); err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, nil)
}

func (h *HttpHandler) GetMapField(c *gin.Context) {
	x, errX := strconv.ParseInt(c.Query("x"), 10, 32)
	y, errY := strconv.ParseInt(c.Query("y"), 10, 32)
	if errX != nil || errY != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	field, err := h.app.GetMapField(c.Request.Context(), int32(x), int32(y))
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, field)
}

func (h *HttpHandler) ListPlayerJobs(c *gin.Context) {
	playerID, ok := h.pathID(c, "id")
	if !ok {
		return
	}
	jobs, err := h.app.ListPlayerJobs(c.Request.Context(), playerID)
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, jobs)
}

func (h *HttpHandler) GetUnoccupiedValley(c *gin.Context) {
	x, errX := strconv.ParseInt(c.Query("x"), 10, 32)
	y, errY := strconv.ParseInt(c.Query("y"), 10, 32)
	if errX != nil || errY != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return
	}
	field, err := h.app.GetUnoccupiedValley(c.Request.Context(), domain.Position{X: int32(x), Y: int32(y)})
	if err != nil {
		h.error(c, err)
		return
	}
	h.ok(c, field)
}

func (h *HttpHandler) pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return 0, false
	}
	return id, true
}

func (h *HttpHandler) villageSlot(c *gin.Context) (int64, uint8, bool) {
	villageID, ok := h.pathID(c, "id")
	if !ok {
		return 0, 0, false
	}
	slot, err := strconv.ParseUint(c.Param("slot"), 10, 8)
	if err != nil {
		h.fail(c, nethttp.StatusBadRequest, "参数有误")
		return 0, 0, false
	}
	return villageID, uint8(slot), true
}

func (h *HttpHandler) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(data))
}

func (h *HttpHandler) fail(c *gin.Context, status int, msg string) {
	c.JSON(status, dto.Error(status, msg))
}

func (h *HttpHandler) error(c *gin.Context, err error) {
	status, msg := HandleError(err)
	h.fail(c, status, msg)
}
