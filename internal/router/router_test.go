package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/clinic-admin/internal/handler/appointment"
	"github.com/jwalitptl/clinic-admin/internal/handler/auth"
	"github.com/jwalitptl/clinic-admin/internal/handler/backup"
	"github.com/jwalitptl/clinic-admin/internal/handler/bundle"
	"github.com/jwalitptl/clinic-admin/internal/handler/client"
	"github.com/jwalitptl/clinic-admin/internal/handler/company"
	"github.com/jwalitptl/clinic-admin/internal/handler/dashboard"
	"github.com/jwalitptl/clinic-admin/internal/handler/expense"
	"github.com/jwalitptl/clinic-admin/internal/handler/finance"
	"github.com/jwalitptl/clinic-admin/internal/handler/health"
	"github.com/jwalitptl/clinic-admin/internal/handler/intake"
	promhandler "github.com/jwalitptl/clinic-admin/internal/handler/prometheus"
	"github.com/jwalitptl/clinic-admin/internal/handler/room"
	"github.com/jwalitptl/clinic-admin/internal/handler/therapist"
	"github.com/jwalitptl/clinic-admin/internal/handler/treatment"
	"github.com/jwalitptl/clinic-admin/internal/middleware"
	"github.com/jwalitptl/clinic-admin/internal/repository/document"
	"github.com/jwalitptl/clinic-admin/internal/router"
	appointmentService "github.com/jwalitptl/clinic-admin/internal/service/appointment"
	authService "github.com/jwalitptl/clinic-admin/internal/service/auth"
	backupService "github.com/jwalitptl/clinic-admin/internal/service/backup"
	bundleService "github.com/jwalitptl/clinic-admin/internal/service/bundle"
	clientService "github.com/jwalitptl/clinic-admin/internal/service/client"
	companyService "github.com/jwalitptl/clinic-admin/internal/service/company"
	dashboardService "github.com/jwalitptl/clinic-admin/internal/service/dashboard"
	expenseService "github.com/jwalitptl/clinic-admin/internal/service/expense"
	financeService "github.com/jwalitptl/clinic-admin/internal/service/finance"
	intakeService "github.com/jwalitptl/clinic-admin/internal/service/intake"
	navigationService "github.com/jwalitptl/clinic-admin/internal/service/navigation"
	roomService "github.com/jwalitptl/clinic-admin/internal/service/room"
	therapistService "github.com/jwalitptl/clinic-admin/internal/service/therapist"
	treatmentService "github.com/jwalitptl/clinic-admin/internal/service/treatment"
	"github.com/jwalitptl/clinic-admin/internal/testutil"
	jwtauth "github.com/jwalitptl/clinic-admin/pkg/auth"
)

// APIResponse mirrors httputil.Response with the payload left raw.
type APIResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// TestResponse wraps the API response for testing
type TestResponse struct {
	Code    int
	Status  string
	Message string
	Data    json.RawMessage
}

func (r TestResponse) IsSuccess() bool {
	return r.Status == "success"
}

func (r TestResponse) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Data, v), "payload: %s", string(r.Data))
}

func (r TestResponse) GetString(t *testing.T, key string) string {
	t.Helper()
	var m map[string]interface{}
	r.Decode(t, &m)
	s, _ := m[key].(string)
	return s
}

func (r TestResponse) GetInt(t *testing.T, key string) int {
	t.Helper()
	var m map[string]interface{}
	r.Decode(t, &m)
	f, _ := m[key].(float64)
	return int(f)
}

type testServer struct {
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store, kv := testutil.NewStore(t, testutil.EmptyDocument)
	clock := testutil.Clock()

	therapistRepo := document.NewTherapistRepository(store)
	adminRepo := document.NewAdminRepository(store)
	pending := document.NewPendingStore(kv)

	jwtSvc := jwtauth.NewJWTService("test-secret", time.Hour)
	authSvc := authService.NewService(adminRepo, therapistRepo, jwtSvc)
	intakeSvc := intakeService.NewService(store, pending, clock, intakeService.Options{})

	registry := prometheus.NewRegistry()
	metricsHandler := promhandler.New("test", registry, registry)
	limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{Rate: rate.Limit(100), Burst: 100})

	r := router.NewRouter(
		middleware.NewAuthMiddleware(authSvc),
		metricsHandler.Middleware(),
		router.RouterConfig{
			Mode:         gin.TestMode,
			CORSConfig:   middleware.DefaultCORSConfig(),
			MaxBodyBytes: 1 << 20,
		},
		health.NewHandler(kv),
		metricsHandler,
		auth.NewHandler(authSvc),
		therapist.NewHandler(therapistService.NewService(therapistRepo)),
		client.NewHandler(clientService.NewService(document.NewClientRepository(store), store, clock)),
		treatment.NewHandler(treatmentService.NewService(document.NewTreatmentRepository(store))),
		room.NewHandler(roomService.NewService(document.NewRoomRepository(store))),
		expense.NewHandler(expenseService.NewService(document.NewExpenseRepository(store))),
		bundle.NewHandler(bundleService.NewService(document.NewPackageRepository(store), store, clock)),
		appointment.NewHandler(appointmentService.NewService(document.NewAppointmentRepository(store), store)),
		company.NewHandler(companyService.NewService(document.NewCompanyRepository(store))),
		finance.NewHandler(financeService.NewService(store, clock)),
		intake.NewHandler(intakeSvc, limiter.RateLimit()),
		dashboard.NewHandler(dashboardService.NewService(store, intakeSvc, clock), navigationService.NewService(store)),
		backup.NewHandler(backupService.NewService(store)),
	)
	r.Setup()

	return &testServer{engine: r.Engine()}
}

func (s *testServer) do(t *testing.T, req *http.Request, token string) TestResponse {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var body APIResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return TestResponse{Code: w.Code, Status: body.Status, Message: body.Message, Data: body.Data}
}

func (s *testServer) makeRequest(t *testing.T, method, path string, payload interface{}, token string) TestResponse {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &body)
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req, token)
}

func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := s.makeRequest(t, http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "")
	require.True(t, resp.IsSuccess(), "login failed: %s", resp.Message)
	token := resp.GetString(t, "access_token")
	require.NotEmpty(t, token)
	return token
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready", "/api/v1/health/metrics"} {
		w := httptest.NewRecorder()
		s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/health/metrics", nil))
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	bad := s.makeRequest(t, http.MethodPost, "/auth/login", map[string]string{"username": "admin", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, bad.Code)

	missing := s.makeRequest(t, http.MethodPost, "/auth/login", map[string]string{"username": "admin"}, "")
	assert.Equal(t, http.StatusBadRequest, missing.Code)
	assert.Equal(t, "password is required", missing.Message)

	anon := s.makeRequest(t, http.MethodGet, "/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, anon.Code)

	token := s.login(t, "admin", "admin123")

	me := s.makeRequest(t, http.MethodGet, "/me", nil, token)
	require.True(t, me.IsSuccess())
	assert.Equal(t, "CEO", me.GetString(t, "name"))

	changed := s.makeRequest(t, http.MethodPut, "/auth/password", map[string]string{
		"new_password":     "s3cret!",
		"confirm_password": "s3cret!",
	}, token)
	require.True(t, changed.IsSuccess(), changed.Message)
	s.login(t, "admin", "s3cret!")

	out := s.makeRequest(t, http.MethodPost, "/auth/logout", nil, token)
	require.True(t, out.IsSuccess())

	revoked := s.makeRequest(t, http.MethodGet, "/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, revoked.Code)
}

func TestClinicFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "admin123")

	// Without therapists the clients module is blocked.
	nav := s.makeRequest(t, http.MethodGet, "/navigation", nil, admin)
	require.True(t, nav.IsSuccess())
	var menu navigationService.Menu
	nav.Decode(t, &menu)
	for _, e := range menu.Modules {
		if e.Module == navigationService.ModuleClients {
			assert.True(t, e.Blocked)
		}
	}

	th := s.makeRequest(t, http.MethodPost, "/therapists", map[string]string{
		"name":      "Ana Souza",
		"specialty": "Massage",
		"email":     "ana@clinic.com",
	}, admin)
	require.Equal(t, http.StatusCreated, th.Code, th.Message)
	therapistID := th.GetInt(t, "id")
	assert.Equal(t, 1, therapistID)

	dup := s.makeRequest(t, http.MethodPost, "/therapists", map[string]string{
		"name":  "Other",
		"email": "ana@clinic.com",
	}, admin)
	assert.Equal(t, http.StatusConflict, dup.Code)

	tr := s.makeRequest(t, http.MethodPost, "/treatments", map[string]interface{}{"name": "Relaxing massage", "price": 150}, admin)
	require.Equal(t, http.StatusCreated, tr.Code, tr.Message)
	assert.Equal(t, "T001", tr.GetString(t, "id"))

	rm := s.makeRequest(t, http.MethodPost, "/rooms", map[string]interface{}{"name": "Room 1", "capacity": 1}, admin)
	require.Equal(t, http.StatusCreated, rm.Code, rm.Message)
	assert.Equal(t, "S1", rm.GetString(t, "id"))

	invalid := s.makeRequest(t, http.MethodPost, "/clients", map[string]string{"phone": "123"}, admin)
	assert.Equal(t, http.StatusBadRequest, invalid.Code)
	assert.Equal(t, "name is required", invalid.Message)

	cl := s.makeRequest(t, http.MethodPost, "/clients", map[string]interface{}{
		"name":  "Bruno Lima",
		"email": "bruno@example.com",
		"intake": map[string]string{
			"chief_complaint": "back pain",
		},
	}, admin)
	require.Equal(t, http.StatusCreated, cl.Code, cl.Message)
	clientID := cl.GetInt(t, "id")

	ap := s.makeRequest(t, http.MethodPost, "/appointments", map[string]interface{}{
		"client_id":    clientID,
		"therapist_id": therapistID,
		"treatment_id": "T001",
		"room_id":      "S1",
		"date":         "2024-03-16",
		"time":         "10:00",
		"status":       "Agendado",
	}, admin)
	require.Equal(t, http.StatusCreated, ap.Code, ap.Message)

	badTime := s.makeRequest(t, http.MethodPost, "/appointments", map[string]interface{}{
		"client_id":    clientID,
		"therapist_id": therapistID,
		"treatment_id": "T001",
		"room_id":      "S1",
		"date":         "2024-03-16",
		"time":         "25:00",
		"status":       "Agendado",
	}, admin)
	assert.Equal(t, http.StatusBadRequest, badTime.Code)

	list := s.makeRequest(t, http.MethodGet, fmt.Sprintf("/appointments?client_id=%d", clientID), nil, admin)
	require.True(t, list.IsSuccess())
	var views []struct {
		ClientName    string `json:"client_name"`
		TherapistName string `json:"therapist_name"`
	}
	list.Decode(t, &views)
	require.Len(t, views, 1)
	assert.Equal(t, "Bruno Lima", views[0].ClientName)
	assert.Equal(t, "Ana Souza", views[0].TherapistName)

	pkg := s.makeRequest(t, http.MethodPost, "/packages", map[string]interface{}{
		"client_id":      clientID,
		"name":           "10 sessions",
		"total_sessions": 10,
		"total_price":    1200,
	}, admin)
	require.Equal(t, http.StatusCreated, pkg.Code, pkg.Message)
	assert.Equal(t, "2024-03-15", pkg.GetString(t, "dataCompra"))

	report := s.makeRequest(t, http.MethodGet, fmt.Sprintf("/packages/report?client_id=%d", clientID), nil, admin)
	require.True(t, report.IsSuccess())
	assert.Equal(t, "Package report - Bruno Lima", report.GetString(t, "title"))

	history := s.makeRequest(t, http.MethodGet, fmt.Sprintf("/clients/%d/history", clientID), nil, admin)
	require.True(t, history.IsSuccess())

	dash := s.makeRequest(t, http.MethodGet, "/dashboard", nil, admin)
	require.True(t, dash.IsSuccess())
	assert.Equal(t, 1, dash.GetInt(t, "upcoming_sessions"))

	exp := s.makeRequest(t, http.MethodPost, "/expenses", map[string]interface{}{
		"category": "Rent",
		"amount":   500,
		"date":     "2024-03-01",
	}, admin)
	require.Equal(t, http.StatusCreated, exp.Code, exp.Message)

	bal := s.makeRequest(t, http.MethodGet, "/finance/balance?month=2024-03", nil, admin)
	require.True(t, bal.IsSuccess())
	var balance financeService.Balance
	bal.Decode(t, &balance)
	assert.Equal(t, 500.0, balance.Expenses)
	// The only session is still scheduled, so nothing was earned yet.
	assert.Equal(t, 0.0, balance.Revenue)
	assert.Equal(t, -500.0, balance.Balance)

	// Updating a record that does not exist is a no-op.
	ghost := s.makeRequest(t, http.MethodPut, "/clients/99", map[string]string{"name": "Ghost"}, admin)
	assert.Equal(t, http.StatusOK, ghost.Code)
	assert.Empty(t, ghost.Data)
	ghostPkg := s.makeRequest(t, http.MethodPut, "/packages/99", map[string]interface{}{
		"client_id": clientID, "name": "Ghost", "total_sessions": 1, "total_price": 10,
	}, admin)
	assert.Equal(t, http.StatusOK, ghostPkg.Code)
	assert.Empty(t, ghostPkg.Data)
	gone := s.makeRequest(t, http.MethodGet, "/clients/99", nil, admin)
	assert.Equal(t, http.StatusNotFound, gone.Code)
}

func TestTherapistAccess(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "admin123")

	created := s.makeRequest(t, http.MethodPost, "/therapists", map[string]string{
		"name":  "Ana Souza",
		"email": "ana@clinic.com",
	}, admin)
	require.Equal(t, http.StatusCreated, created.Code, created.Message)

	// New therapists start with the default password.
	token := s.login(t, "ana@clinic.com", "123456")

	assert.Equal(t, http.StatusForbidden, s.makeRequest(t, http.MethodGet, "/therapists", nil, token).Code)
	assert.Equal(t, http.StatusForbidden, s.makeRequest(t, http.MethodGet, "/finance/balance", nil, token).Code)
	assert.Equal(t, http.StatusForbidden, s.makeRequest(t, http.MethodPost, "/rooms", map[string]interface{}{"name": "X", "capacity": 1}, token).Code)

	assert.True(t, s.makeRequest(t, http.MethodGet, "/clients", nil, token).IsSuccess())
	assert.True(t, s.makeRequest(t, http.MethodGet, "/rooms", nil, token).IsSuccess())

	nav := s.makeRequest(t, http.MethodGet, "/navigation", nil, token)
	require.True(t, nav.IsSuccess())
	var menu navigationService.Menu
	nav.Decode(t, &menu)
	for _, e := range menu.Modules {
		assert.NotEqual(t, navigationService.ModuleFinance, e.Module)
		assert.NotEqual(t, navigationService.ModuleTherapists, e.Module)
	}
}

func TestPublicIntake(t *testing.T) {
	s := newTestServer(t)

	noEmail := s.makeRequest(t, http.MethodPost, "/public/intake", map[string]string{"nome": "Carla"}, "")
	assert.Equal(t, http.StatusBadRequest, noEmail.Code)

	sub := s.makeRequest(t, http.MethodPost, "/public/intake", map[string]string{
		"nome":            "Carla Dias",
		"email":           "carla@example.com",
		"telefone":        "11 99999-0000",
		"queixaPrincipal": "stress",
	}, "")
	require.Equal(t, http.StatusCreated, sub.Code, sub.Message)

	admin := s.login(t, "admin", "admin123")

	// The dashboard merges the pending form.
	dash := s.makeRequest(t, http.MethodGet, "/dashboard", nil, admin)
	require.True(t, dash.IsSuccess())
	var summary struct {
		Intake *struct {
			ClientID int  `json:"client_id"`
			Created  bool `json:"created"`
		} `json:"intake"`
	}
	dash.Decode(t, &summary)
	require.NotNil(t, summary.Intake)
	assert.True(t, summary.Intake.Created)

	cl := s.makeRequest(t, http.MethodGet, fmt.Sprintf("/clients/%d", summary.Intake.ClientID), nil, admin)
	require.True(t, cl.IsSuccess())
	assert.Equal(t, "Carla Dias", cl.GetString(t, "nome"))

	// Nothing left to reconcile.
	again := s.makeRequest(t, http.MethodPost, "/intake/reconcile", nil, admin)
	require.True(t, again.IsSuccess())
	assert.Empty(t, again.Data)
}

func TestCompanyLogoUpload(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "admin123")

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("name", "Spa Vida"))
	require.NoError(t, mw.WriteField("tax_id", "12.345.678/0001-90"))
	require.NoError(t, mw.WriteField("header_color", "#112233"))
	fw, err := mw.CreateFormFile("logo", "logo.png")
	require.NoError(t, err)
	_, err = fw.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/company", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp := s.do(t, req, admin)
	require.True(t, resp.IsSuccess(), resp.Message)

	got := s.makeRequest(t, http.MethodGet, "/company", nil, admin)
	require.True(t, got.IsSuccess())
	assert.Equal(t, "Spa Vida", got.GetString(t, "nome"))
	assert.Equal(t, "#112233", got.GetString(t, "headerColor"))
	assert.True(t, strings.HasPrefix(got.GetString(t, "logoBase64"), "data:image/png;base64,"))
}

func TestDocumentExportImport(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin", "admin123")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/document", nil)
	req.Header.Set("Authorization", "Bearer "+admin)
	s.engine.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc, "adminUser")

	bad := s.makeRequest(t, http.MethodPut, "/document", map[string]interface{}{"clientes": []interface{}{}}, admin)
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	ok := s.makeRequest(t, http.MethodPut, "/document", map[string]interface{}{
		"adminUser": map[string]string{"username": "boss", "password": "pw123456"},
		"clientes":  []map[string]interface{}{{"id": 1, "nome": "Imported"}},
	}, admin)
	require.True(t, ok.IsSuccess(), ok.Message)

	s.login(t, "boss", "pw123456")
}
