package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"angoconnect/internal/database"
	"angoconnect/internal/domain"
	"angoconnect/internal/middleware"
	"angoconnect/internal/modules/admin"
	"angoconnect/internal/modules/auth"
	"angoconnect/internal/modules/catalog"
	"angoconnect/internal/modules/notification"
	"angoconnect/internal/modules/proposal"
	"angoconnect/internal/modules/request"
	"angoconnect/internal/modules/review"
	"angoconnect/internal/modules/ws"
	jwtsvc "angoconnect/internal/pkg/jwt"
	"angoconnect/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router *gin.Engine
	db     *gorm.DB
	jwt    *jwtsvc.Service
}

type TestResponse struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *ErrorDetail           `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func setupTestSuite(t *testing.T) *E2ETestSuite {
	db, err := database.Connect(":memory:")
	require.NoError(t, err, "Failed to connect to test database")

	models := repository.Models()
	models = append(models, notification.Model(), auth.RefreshTokenModel())
	for _, model := range models {
		require.NoError(t, db.AutoMigrate(model), fmt.Sprintf("Failed to migrate %T", model))
	}

	userRepo := repository.NewUserRepository(db)
	professionalRepo := repository.NewProfessionalRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	proposalRepo := repository.NewProposalRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := notification.NewNotificationRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := ws.NewHub()
	t.Cleanup(hub.Close)

	notificationService := notification.NewService(notificationRepo, hub)
	notificationHandler := notification.NewHandler(notificationService)

	authService := auth.NewService(userRepo, jwtService, "test-pepper", 168*time.Hour)
	authHandler := auth.NewHandler(authService)

	requestService := request.NewService(requestRepo, proposalRepo, notificationService)
	requestHandler := request.NewHandler(requestService)

	proposalService := proposal.NewService(proposalRepo, requestRepo, userRepo, notificationService)
	proposalHandler := proposal.NewHandler(proposalService)

	catalogService := catalog.NewService(professionalRepo, userRepo, reviewRepo)
	catalogHandler := catalog.NewHandler(catalogService)

	reviewService := review.NewService(reviewRepo, requestRepo, professionalRepo, notificationService)
	reviewHandler := review.NewHandler(reviewService)

	adminService := admin.NewService(userRepo, professionalRepo, requestRepo, notificationService)
	adminHandler := admin.NewHandler(adminService)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)
		catalogHandler.RegisterRoutes(v1)
		reviewHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(jwtService))
		{
			authHandler.RegisterProtectedRoutes(protected)
			requestHandler.RegisterRoutes(protected)
			proposalHandler.RegisterRoutes(protected)
			reviewHandler.RegisterRoutes(protected)
			notificationHandler.RegisterRoutes(protected)

			adminGroup := protected.Group("/")
			adminGroup.Use(middleware.AdminOnly())
			{
				adminHandler.RegisterRoutes(adminGroup)
			}
		}
	}

	suite := &E2ETestSuite{router: r, db: db, jwt: jwtService}
	suite.createAdmin(t)
	return suite
}

func (s *E2ETestSuite) createAdmin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	require.NoError(t, err)

	require.NoError(t, s.db.Table("users").Create(map[string]any{
		"email":         "admin@test.ao",
		"password_hash": string(hash),
		"role":          string(domain.RoleAdmin),
		"name":          "Admin",
		"created_at":    time.Now(),
		"updated_at":    time.Now(),
	}).Error)
}

func (s *E2ETestSuite) makeRequest(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	var bodyBytes []byte
	if body != nil {
		var err error
		bodyBytes, err = json.Marshal(body)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewBuffer(bodyBytes))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func parseResponse(t *testing.T, w *httptest.ResponseRecorder) *TestResponse {
	t.Helper()

	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) registerClient(t *testing.T, email, name string) string {
	w := s.makeRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     name,
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	return s.login(t, email, "password123")
}

// registerProfessional signs up a professional and has the admin approve the
// verification, returning the professional's token and user id.
func (s *E2ETestSuite) registerProfessional(t *testing.T, email, name, category string, adminToken string) (string, int64) {
	w := s.makeRequest(t, http.MethodPost, "/api/v1/auth/register-professional", map[string]any{
		"name":     name,
		"email":    email,
		"phone":    "+244923000100",
		"password": "password123",
		"category": category,
		"city":     "Luanda",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	resp := parseResponse(t, w)
	user := resp.Data["user"].(map[string]interface{})
	userID := int64(user["id"].(float64))
	assert.Equal(t, "pending", user["verification_status"])

	w = s.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/admin/professionals/%d/approve", userID), nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	return s.login(t, email, "password123"), userID
}

func (s *E2ETestSuite) login(t *testing.T, email, password string) string {
	w := s.makeRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	resp := parseResponse(t, w)
	return resp.Data["access_token"].(string)
}

func TestFlow_ClientRegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	w := suite.makeRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Ana Domingos",
		"email":    "ana@test.ao",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	// duplicate email refused
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/auth/register", map[string]any{
		"name":     "Ana Clone",
		"email":    "ana@test.ao",
		"password": "password123",
	}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	token := suite.login(t, "ana@test.ao", "password123")

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	user := resp.Data["user"].(map[string]interface{})
	assert.Equal(t, "ana@test.ao", user["email"])
	assert.Equal(t, "client", user["role"])
	assert.Equal(t, false, resp.Data["can_submit_proposals"])

	// wrong password
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "ana@test.ao",
		"password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlow_RefreshTokenRotation(t *testing.T) {
	suite := setupTestSuite(t)
	suite.registerClient(t, "carlos@test.ao", "Carlos Neto")

	w := suite.makeRequest(t, http.MethodPost, "/api/v1/auth/login", map[string]any{
		"email":    "carlos@test.ao",
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	firstRefresh := resp.Data["refresh_token"].(string)

	// rotate
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{
		"refresh_token": firstRefresh,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	resp = parseResponse(t, w)
	secondRefresh := resp.Data["refresh_token"].(string)
	assert.NotEqual(t, firstRefresh, secondRefresh)

	// reusing the rotated-out token revokes the whole family
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{
		"refresh_token": firstRefresh,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = suite.makeRequest(t, http.MethodPost, "/api/v1/auth/refresh", map[string]any{
		"refresh_token": secondRefresh,
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFlow_ProfessionalVerificationAndCatalog(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.login(t, "admin@test.ao", "admin123")

	_, proID := suite.registerProfessional(t, "joao@test.ao", "João Baptista", "eletricista", adminToken)

	// verified professional appears in the public directory
	w := suite.makeRequest(t, http.MethodGet, "/api/v1/professionals?category=eletricista", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	pros := resp.Data["professionals"].([]interface{})
	require.Len(t, pros, 1)
	assert.Equal(t, "João Baptista", pros[0].(map[string]interface{})["name"])

	w = suite.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/professionals/%d", proID), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// a pending professional stays out of the directory
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/auth/register-professional", map[string]any{
		"name":     "Teresa Quintas",
		"email":    "teresa@test.ao",
		"phone":    "+244923000200",
		"password": "password123",
		"category": "pintor",
		"city":     "Benguela",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/professionals?category=pintor", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Empty(t, resp.Data["professionals"])
}

// Accepting one of several proposals rejects every sibling and binds the
// request to the winning professional.
func TestFlow_ProposalAcceptance(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.login(t, "admin@test.ao", "admin123")

	clientToken := suite.registerClient(t, "cliente@test.ao", "Maria Van-Dúnem")
	tokenA, _ := suite.registerProfessional(t, "pro-a@test.ao", "Profissional A", "eletricista", adminToken)
	tokenB, proB := suite.registerProfessional(t, "pro-b@test.ao", "Profissional B", "eletricista", adminToken)
	tokenC, _ := suite.registerProfessional(t, "pro-c@test.ao", "Profissional C", "eletricista", adminToken)

	// client posts a request
	w := suite.makeRequest(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"title":    "Instalação elétrica",
		"category": "eletricista",
		"location": "Luanda",
		"budget":   100000,
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
	resp := parseResponse(t, w)
	sr := resp.Data["request"].(map[string]interface{})
	requestID := int64(sr["id"].(float64))
	assert.Equal(t, "pending", sr["status"])

	// three proposals come in
	proposalIDs := map[string]int64{}
	for _, bid := range []struct {
		token string
		key   string
		price float64
	}{
		{tokenA, "A", 100},
		{tokenB, "B", 80},
		{tokenC, "C", 120},
	} {
		w = suite.makeRequest(t, http.MethodPost, "/api/v1/proposals", map[string]any{
			"service_request_id": requestID,
			"price":              bid.price,
		}, bid.token)
		require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
		resp = parseResponse(t, w)
		p := resp.Data["proposal"].(map[string]interface{})
		proposalIDs[bid.key] = int64(p["id"].(float64))
	}

	// first proposal flipped the request to proposta_enviada; the owner
	// also sees the bid counter
	w = suite.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/requests/%d", requestID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, "proposta_enviada", resp.Data["request"].(map[string]interface{})["status"])
	assert.Equal(t, float64(3), resp.Data["proposal_count"])

	// client received one notification per proposal
	w = suite.makeRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, float64(3), resp.Data["unread_count"])

	// accept B's proposal
	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/proposals/%d/accept", proposalIDs["B"]), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())
	resp = parseResponse(t, w)
	assert.Equal(t, "accepted", resp.Data["proposal"].(map[string]interface{})["status"])

	// siblings are rejected, request is contratado and bound to B
	w = suite.makeRequest(t, http.MethodGet,
		fmt.Sprintf("/api/v1/requests/%d/proposals", requestID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	statuses := map[float64]string{}
	for _, raw := range resp.Data["proposals"].([]interface{}) {
		p := raw.(map[string]interface{})
		statuses[p["id"].(float64)] = p["status"].(string)
	}
	assert.Equal(t, "accepted", statuses[float64(proposalIDs["B"])])
	assert.Equal(t, "rejected", statuses[float64(proposalIDs["A"])])
	assert.Equal(t, "rejected", statuses[float64(proposalIDs["C"])])

	w = suite.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/requests/%d", requestID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	sr = resp.Data["request"].(map[string]interface{})
	assert.Equal(t, "contratado", sr["status"])
	assert.Equal(t, float64(proB), sr["professional_id"])

	// accepting the same proposal again is refused
	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/proposals/%d/accept", proposalIDs["B"]), nil, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// a new proposal on the closed request is refused
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/proposals", map[string]any{
		"service_request_id": requestID,
		"price":              50,
	}, tokenA)
	assert.Equal(t, http.StatusConflict, w.Code)
}

// Only verified professionals may bid: a client account and a professional
// still awaiting approval are both turned away.
func TestFlow_ProposalGating(t *testing.T) {
	suite := setupTestSuite(t)

	ownerToken := suite.registerClient(t, "dona@test.ao", "Dona do Pedido")

	w := suite.makeRequest(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"title":    "Instalação de ar condicionado",
		"category": "eletricista",
		"location": "Luanda",
		"budget":   50000,
	}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	requestID := int64(resp.Data["request"].(map[string]interface{})["id"].(float64))

	// another client cannot bid at all
	otherClient := suite.registerClient(t, "intruso@test.ao", "Outro Cliente")
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/proposals", map[string]any{
		"service_request_id": requestID,
		"price":              100,
	}, otherClient)
	assert.Equal(t, http.StatusForbidden, w.Code, "body: %s", w.Body.String())

	// a professional whose verification is still pending cannot bid either
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/auth/register-professional", map[string]any{
		"name":     "Profissional Pendente",
		"email":    "pendente@test.ao",
		"phone":    "+244923000300",
		"password": "password123",
		"category": "eletricista",
		"city":     "Luanda",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	pendingToken := suite.login(t, "pendente@test.ao", "password123")

	w = suite.makeRequest(t, http.MethodPost, "/api/v1/proposals", map[string]any{
		"service_request_id": requestID,
		"price":              100,
	}, pendingToken)
	assert.Equal(t, http.StatusForbidden, w.Code, "body: %s", w.Body.String())
	assert.Equal(t, "NOT_VERIFIED", parseResponse(t, w).Error.Code)

	// nothing slipped through
	w = suite.makeRequest(t, http.MethodGet,
		fmt.Sprintf("/api/v1/requests/%d/proposals", requestID), nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, parseResponse(t, w).Data["proposals"])
}

func TestFlow_ExecutionAndReview(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.login(t, "admin@test.ao", "admin123")

	clientToken := suite.registerClient(t, "cliente2@test.ao", "Cliente Dois")
	proToken, proID := suite.registerProfessional(t, "pro-d@test.ao", "Profissional D", "canalizador", adminToken)

	w := suite.makeRequest(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"title":    "Reparação de canalização",
		"category": "canalizador",
		"location": "Luanda",
		"budget":   25000,
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	requestID := int64(resp.Data["request"].(map[string]interface{})["id"].(float64))

	w = suite.makeRequest(t, http.MethodPost, "/api/v1/proposals", map[string]any{
		"service_request_id": requestID,
		"price":              20000,
	}, proToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp = parseResponse(t, w)
	proposalID := int64(resp.Data["proposal"].(map[string]interface{})["id"].(float64))

	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/proposals/%d/accept", proposalID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)

	// review before completion is refused
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/reviews", map[string]any{
		"service_request_id": requestID,
		"rating":             5,
	}, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// professional starts, client completes
	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/requests/%d/start", requestID), nil, proToken)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/requests/%d/complete", requestID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code, "body: %s", w.Body.String())

	// now the review goes through and feeds the rating aggregate
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/reviews", map[string]any{
		"service_request_id": requestID,
		"rating":             5,
		"comment":            "Excelente trabalho",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())

	// second review on the same request is refused
	w = suite.makeRequest(t, http.MethodPost, "/api/v1/reviews", map[string]any{
		"service_request_id": requestID,
		"rating":             4,
	}, clientToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = suite.makeRequest(t, http.MethodGet, fmt.Sprintf("/api/v1/professionals/%d", proID), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	pro := resp.Data["professional"].(map[string]interface{})
	assert.Equal(t, float64(5), pro["rating_avg"])
	assert.Equal(t, float64(1), pro["rating_count"])
	assert.Len(t, pro["reviews"].([]interface{}), 1)
}

func TestFlow_NotificationFeed(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.login(t, "admin@test.ao", "admin123")

	clientToken := suite.registerClient(t, "cliente3@test.ao", "Cliente Três")
	proToken, _ := suite.registerProfessional(t, "pro-e@test.ao", "Profissional E", "pintor", adminToken)

	w := suite.makeRequest(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"title":    "Pintura de sala",
		"category": "pintor",
		"location": "Luanda",
		"budget":   30000,
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)
	resp := parseResponse(t, w)
	requestID := int64(resp.Data["request"].(map[string]interface{})["id"].(float64))

	w = suite.makeRequest(t, http.MethodPost, "/api/v1/proposals", map[string]any{
		"service_request_id": requestID,
		"price":              28000,
	}, proToken)
	require.Equal(t, http.StatusCreated, w.Code)

	// client has one unread notification about the new proposal
	w = suite.makeRequest(t, http.MethodGet, "/api/v1/notifications", nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	items := resp.Data["notifications"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.Equal(t, "new_proposal", first["type"])
	assert.Equal(t, false, first["is_read"])
	notificationID := int64(first["id"].(float64))

	// another user cannot mark it as read
	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/notifications/%d/read", notificationID), nil, proToken)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/notifications/%d/read", notificationID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, true, resp.Data["notification"].(map[string]interface{})["is_read"])

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, float64(0), resp.Data["unread_count"])

	// cancelling the request notifies nobody yet (no professional hired),
	// but rejecting the proposal notifies the professional
	w = suite.makeRequest(t, http.MethodGet,
		fmt.Sprintf("/api/v1/requests/%d/proposals", requestID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	proposalID := int64(resp.Data["proposals"].([]interface{})[0].(map[string]interface{})["id"].(float64))

	w = suite.makeRequest(t, http.MethodPost,
		fmt.Sprintf("/api/v1/proposals/%d/reject", proposalID), nil, clientToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", nil, proToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, float64(1), resp.Data["unread_count"])

	w = suite.makeRequest(t, http.MethodPost, "/api/v1/notifications/read-all", nil, proToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, float64(1), resp.Data["marked"])

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/notifications/unread-count", nil, proToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp = parseResponse(t, w)
	assert.Equal(t, float64(0), resp.Data["unread_count"])
}

func TestFlow_AdminStatsAndAccessControl(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.login(t, "admin@test.ao", "admin123")
	clientToken := suite.registerClient(t, "cliente4@test.ao", "Cliente Quatro")

	// non-admin is rejected
	w := suite.makeRequest(t, http.MethodGet, "/api/v1/admin/stats", nil, clientToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = suite.makeRequest(t, http.MethodPost, "/api/v1/requests", map[string]any{
		"title":    "Montagem de móveis",
		"category": "carpinteiro",
		"location": "Luanda",
	}, clientToken)
	require.Equal(t, http.StatusCreated, w.Code)

	w = suite.makeRequest(t, http.MethodGet, "/api/v1/admin/stats", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	stats := resp.Data["stats"].(map[string]interface{})
	assert.Equal(t, float64(1), stats["total_requests"])
}
