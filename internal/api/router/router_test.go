package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gauravatalea/ShiftGenius-AI-New/config"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/api/handler"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/api/router"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/model"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/repository"
	"github.com/gauravatalea/ShiftGenius-AI-New/internal/service"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/database"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/jwt"
	"github.com/gauravatalea/ShiftGenius-AI-New/pkg/response"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

func testConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:      5000,
			BodyLimit: 1 << 20,
			CORS:      config.CORSConfig{AllowOrigins: []string{"http://localhost:5173"}},
		},
		Database: config.DatabaseConfig{
			Driver:     "sqlite",
			SQLitePath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
		},
		Auth: config.AuthConfig{
			JWTSecret:      "router-test-secret-key-2026",
			AccessTokenTTL: time.Hour,
			Username:       "supervisor",
		},
		Log:      config.LogConfig{Level: "error"},
		Alert:    config.AlertConfig{UnderstaffedRatio: 0.75},
		Cache:    config.CacheConfig{DashboardTTL: 30 * time.Second},
		Schedule: config.ScheduleConfig{MinRestHours: 8, LockTTL: time.Minute, Timezone: "UTC"},
	}
}

// setupServer 使用内存 SQLite 组装完整的 HTTP 栈，并写入示例数据
func setupServer(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	logger := zap.NewNop()

	db, err := database.NewDB(&cfg.Database, "error", logger)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db, cfg.Database.Driver, logger, model.All()...))

	repo := repository.NewRepository(db)
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := service.NewService(cfg, repo, nil, jwtMgr, logger)

	seeded, err := service.SeedSampleData(context.Background(), repo, logger)
	require.NoError(t, err)
	require.True(t, seeded)

	h := handler.NewHandler(svc, handler.HealthChecks{Database: sqlDB.PingContext})
	return router.Setup(cfg, h, jwtMgr, nil, logger)
}

func do(r *gin.Engine, method, path string, body interface{}, token string) (*httptest.ResponseRecorder, response.Response) {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp response.Response
	json.Unmarshal(w.Body.Bytes(), &resp)
	return w, resp
}

func listLen(t *testing.T, resp response.Response) int {
	t.Helper()
	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok, "data 应为对象")
	list, _ := data["list"].([]interface{})
	return len(list)
}

// ═══════════════════════════════════════════════════════════
// Tests
// ═══════════════════════════════════════════════════════════

func TestRouter_HealthAliases(t *testing.T) {
	r := setupServer(t, testConfig(t))

	for _, path := range []string{"/health", "/api/health", "/api/v1/health"} {
		w, _ := do(r, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Body.String(), `"status":"healthy"`, path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), path)
	}
}

func TestRouter_SeededResources(t *testing.T) {
	r := setupServer(t, testConfig(t))

	_, resp := do(r, http.MethodGet, "/api/v1/employees", nil, "")
	assert.Equal(t, 3, listLen(t, resp))

	_, resp = do(r, http.MethodGet, "/api/v1/production-areas", nil, "")
	assert.Equal(t, 3, listLen(t, resp))

	_, resp = do(r, http.MethodGet, "/api/v1/process-steps", nil, "")
	assert.Equal(t, 3, listLen(t, resp))

	_, resp = do(r, http.MethodGet, "/api/v1/alerts?resolved=false", nil, "")
	assert.Equal(t, 3, listLen(t, resp))

	w, resp := do(r, http.MethodGet, "/api/v1/dashboard/stats", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	stats := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(3), stats["production_areas"])
}

func TestRouter_UnversionedAlias(t *testing.T) {
	r := setupServer(t, testConfig(t))

	w, resp := do(r, http.MethodGet, "/api/employees", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, listLen(t, resp))

	w, resp = do(r, http.MethodPost, "/api/generate-schedule", map[string]interface{}{
		"start_date": "2026-04-06", "days": 1,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, resp.Data.(map[string]interface{})["success"])

	// 两个前缀读写同一份数据
	_, resp = do(r, http.MethodGet, "/api/v1/shift-assignments?from=2026-04-06&to=2026-04-07", nil, "")
	v1Len := listLen(t, resp)
	_, resp = do(r, http.MethodGet, "/api/shift-assignments?from=2026-04-06&to=2026-04-07", nil, "")
	assert.Equal(t, v1Len, listLen(t, resp))
	assert.Positive(t, v1Len)
}

func TestRouter_EmployeeLifecycle(t *testing.T) {
	r := setupServer(t, testConfig(t))

	w, resp := do(r, http.MethodPost, "/api/v1/employees", map[string]interface{}{
		"first_name": "Anna", "last_name": "Weber", "email": "anna.weber@company.com", "skills": []string{"welding"},
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	id := resp.Data.(map[string]interface{})["id"].(string)

	w, _ = do(r, http.MethodPost, "/api/v1/employees", map[string]interface{}{
		"first_name": "Anna", "last_name": "Clone", "email": "ANNA.WEBER@company.com",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = do(r, http.MethodPatch, "/api/v1/employees/"+id, map[string]interface{}{"is_active": false}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, resp.Data.(map[string]interface{})["is_active"])

	w, _ = do(r, http.MethodGet, "/api/v1/employees/not-a-real-id", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(r, http.MethodGet, "/api/v1/employees/utilization", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_GenerateAndExport(t *testing.T) {
	r := setupServer(t, testConfig(t))

	w, resp := do(r, http.MethodPost, "/api/v1/generate-schedule", map[string]interface{}{
		"start_date": "2026-04-06", "days": 2,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	result := resp.Data.(map[string]interface{})
	assert.Equal(t, true, result["success"])

	w, _ = do(r, http.MethodGet, "/api/v1/export/shift-plan?format=json", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".json")

	var export map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &export))
	assert.Equal(t, "JSON", export["format"])

	w, _ = do(r, http.MethodGet, "/api/v1/export/shift-plan?format=ics", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
}

func TestRouter_AuthEnabled(t *testing.T) {
	cfg := testConfig(t)
	hash, err := bcrypt.GenerateFromPassword([]byte("floor-lead"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.Auth.Enabled = true
	cfg.Auth.PasswordHash = string(hash)
	r := setupServer(t, cfg)

	body := map[string]interface{}{"order_number": "PO-2026-100", "product_name": "Gearbox", "quantity": 20}

	// 读操作无需认证
	w, _ := do(r, http.MethodGet, "/api/v1/production-orders", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// 写操作缺少 Token
	w, resp := do(r, http.MethodPost, "/api/v1/production-orders", body, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 10002, resp.Code)

	// 错误密码
	w, _ = do(r, http.MethodPost, "/api/v1/auth/token", map[string]string{"username": "supervisor", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, resp = do(r, http.MethodPost, "/api/v1/auth/token", map[string]string{"username": "supervisor", "password": "floor-lead"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	token := resp.Data.(map[string]interface{})["access_token"].(string)

	w, _ = do(r, http.MethodPost, "/api/v1/production-orders", body, token)
	assert.Equal(t, http.StatusCreated, w.Code)
}
