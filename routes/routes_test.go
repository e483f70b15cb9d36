package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"vetchat/config"
	"vetchat/handlers"
	"vetchat/models"
	"vetchat/services/appointment"
	"vetchat/services/chat"
	"vetchat/services/session"
	"vetchat/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type upcomingOnly struct {
	appointment.AppointmentService
}

func (upcomingOnly) GetUpcomingAppointments(context.Context, int) ([]models.Appointment, error) {
	return []models.Appointment{}, nil
}

func newEngine(t *testing.T, env, origins, secret string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "chatbot.js"), []byte("console.log('widget')"), 0o644))

	prev := config.AppConfig
	t.Cleanup(func() { config.AppConfig = prev })
	config.AppConfig = config.Config{Env: env, CORSOrigins: origins, PublicDir: dir, MaxRequestsPerMin: 1000}

	var (
		chatSvc    chat.ChatService
		sessionSvc session.SessionService
	)
	hb := handlers.NewHandlerBundle(chatSvc, sessionSvc, upcomingOnly{}, secret)
	r := gin.New()
	RegisterRoutes(r, hb)
	return r
}

func request(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNotFound(t *testing.T) {
	r := newEngine(t, "development", "", "")
	w := request(r, http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Route GET /api/nope not found"}`, w.Body.String())
}

func TestWidgetScript(t *testing.T) {
	r := newEngine(t, "development", "", "")
	w := request(r, http.MethodGet, "/chatbot.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "widget")

	w = request(r, http.MethodGet, "/static/chatbot.js", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminGuard(t *testing.T) {
	const secret = "s3cret"
	r := newEngine(t, "development", "", secret)

	w := request(r, http.MethodGet, "/api/appointments/upcoming", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = request(r, http.MethodGet, "/api/appointments/phone/5551234567", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token, err := utils.GenerateAdminToken("staff", secret, time.Hour)
	require.NoError(t, err)
	w = request(r, http.MethodGet, "/api/appointments/upcoming", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)

	open := newEngine(t, "development", "", "")
	w = request(open, http.MethodGet, "/api/appointments/upcoming", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORS(t *testing.T) {
	preflight := map[string]string{
		"Origin":                        "https://clinic.example",
		"Access-Control-Request-Method": http.MethodPost,
	}

	dev := newEngine(t, "development", "http://localhost:3000", "")
	w := request(dev, http.MethodOptions, "/api/chat/message", preflight)
	assert.Equal(t, "https://clinic.example", w.Header().Get("Access-Control-Allow-Origin"))

	prod := newEngine(t, "production", "http://localhost:3000, https://clinic.example", "")
	w = request(prod, http.MethodOptions, "/api/chat/message", preflight)
	assert.Equal(t, "https://clinic.example", w.Header().Get("Access-Control-Allow-Origin"))

	locked := newEngine(t, "production", "http://localhost:3000", "")
	w = request(locked, http.MethodOptions, "/api/chat/message", preflight)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
