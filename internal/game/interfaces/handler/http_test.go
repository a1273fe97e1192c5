package handler_test

import (
	"encoding/json"
	nethttp "net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"parabellum/internal/game/app"
	"parabellum/internal/game/domain"
	"parabellum/internal/game/infra/persistence/memory"
	"parabellum/internal/game/interfaces/handler"
)

func newTestRouter(t *testing.T) (*gin.Engine, *memory.Store, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	gameApp := app.New(store, app.NewConfig(100, 1))

	engine := gin.New()
	handler.NewHttpHandler(gameApp).RegisterRoutes(engine.Group("/api/v1"))
	return engine, store, gameApp
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)
	return w
}

func TestRegisterPlayerEndpoint(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	w := doJSON(t, engine, nethttp.MethodPost, "/api/v1/players",
		`{"username":"alaric","tribe":"teuton"}`)
	if w.Code != nethttp.StatusOK {
		t.Fatalf("unexpected status: got=%d body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Code int            `json:"code"`
		Data *domain.Player `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data == nil || resp.Data.Username != "alaric" {
		t.Fatalf("unexpected player payload: %+v", resp.Data)
	}

	// 用户名重复注册应报冲突
	w = doJSON(t, engine, nethttp.MethodPost, "/api/v1/players",
		`{"username":"alaric","tribe":"gaul"}`)
	if w.Code != nethttp.StatusConflict {
		t.Fatalf("duplicate username: got=%d want=%d", w.Code, nethttp.StatusConflict)
	}
}

func TestRegisterPlayerRejectsBadBody(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	w := doJSON(t, engine, nethttp.MethodPost, "/api/v1/players", `{"tribe":"teuton"}`)
	if w.Code != nethttp.StatusBadRequest {
		t.Fatalf("missing username: got=%d want=%d", w.Code, nethttp.StatusBadRequest)
	}
}

func TestGetVillageNotFound(t *testing.T) {
	engine, _, _ := newTestRouter(t)

	w := doJSON(t, engine, nethttp.MethodGet, "/api/v1/villages/12345", "")
	if w.Code != nethttp.StatusNotFound {
		t.Fatalf("missing village: got=%d want=%d", w.Code, nethttp.StatusNotFound)
	}
}

func TestAttackRejectsForeignVillage(t *testing.T) {
	engine, store, gameApp := newTestRouter(t)
	ctx := t.Context()

	pos := domain.Position{X: 3, Y: 4}
	uow, err := store.Begin(ctx)
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	field := &domain.MapField{
		ID:       pos.ToFieldID(100),
		Position: pos,
		Kind:     domain.FieldValley,
		Topology: domain.ValleyTopology{Lumber: 4, Clay: 4, Iron: 4, Crop: 6},
	}
	if err := uow.Map().SaveField(ctx, field); err != nil {
		t.Fatalf("save field: %v", err)
	}
	if err := uow.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}

	owner, err := gameApp.RegisterPlayer(ctx, app.RegisterPlayerCommand{Username: "brennus", Tribe: domain.TribeGaul})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	village, err := gameApp.FoundVillage(ctx, app.FoundVillageCommand{
		PlayerID:  owner.ID,
		Position:  pos,
		Name:      "gergovia",
		IsCapital: true,
	})
	if err != nil {
		t.Fatalf("found village: %v", err)
	}

	// 其他玩家操作该村庄应被拒绝
	w := doJSON(t, engine, nethttp.MethodPost,
		"/api/v1/villages/"+strconv.FormatInt(village.ID, 10)+"/attack",
		`{"player_id":999,"target_village_id":1,"units":[10,0,0,0,0,0,0,0,0,0]}`)
	if w.Code != nethttp.StatusForbidden {
		t.Fatalf("foreign village attack: got=%d body=%s", w.Code, w.Body.String())
	}
}
