package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"servistakip/internal/database"
	"servistakip/internal/domain"
	"servistakip/internal/middleware"
	"servistakip/internal/modules/admin"
	"servistakip/internal/modules/auth"
	"servistakip/internal/modules/chat"
	"servistakip/internal/modules/customer"
	"servistakip/internal/modules/device"
	"servistakip/internal/modules/service"
	jwtsvc "servistakip/internal/pkg/jwt"
	"servistakip/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type E2ETestSuite struct {
	router     *gin.Engine
	db         *gorm.DB
	jwtService *jwtsvc.Service
	adminID    int64
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

	require.NoError(t, repository.Migrate(db), "Failed to migrate test database")

	userRepo := repository.NewUserRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	devicePartRepo := repository.NewDevicePartRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	servicePartRepo := repository.NewServicePartRepository(db)
	messageRepo := repository.NewServiceMessageRepository(db)

	jwtService := jwtsvc.New("test_secret_key_32_characters_min", 24*time.Hour)

	hub := chat.NewHub()

	authHandler := auth.NewHandler(auth.NewService(userRepo, jwtService))
	customerHandler := customer.NewHandler(customer.NewService(customerRepo, serviceRepo))
	deviceHandler := device.NewHandler(device.NewService(deviceRepo, devicePartRepo, serviceRepo))
	serviceHandler := service.NewHandler(service.NewService(
		serviceRepo, servicePartRepo, customerRepo, deviceRepo, devicePartRepo, userRepo,
	))
	chatHandler := chat.NewHandler(chat.NewService(messageRepo, serviceRepo, userRepo, hub), hub)
	adminHandler := admin.NewHandler(admin.NewService(userRepo))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())

	v1 := r.Group("/api/v1")

	authHandler.RegisterRoutes(v1)

	public := v1.Group("/public")
	serviceHandler.RegisterPublicRoutes(public)
	chatHandler.RegisterPublicRoutes(public)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(jwtService))
	{
		authHandler.RegisterProtectedRoutes(protected)
		customerHandler.RegisterRoutes(protected)
		deviceHandler.RegisterRoutes(protected)
		serviceHandler.RegisterRoutes(protected)
		chatHandler.RegisterRoutes(protected)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.AdminOnly())
		adminHandler.RegisterRoutes(adminGroup)
	}

	hash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	adminUser := &domain.User{
		Name:         "Admin",
		Email:        "admin@test.com",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	require.NoError(t, userRepo.Create(context.Background(), adminUser), "Failed to create admin user")

	return &E2ETestSuite{
		router:     r,
		db:         db,
		jwtService: jwtService,
		adminID:    adminUser.ID,
	}
}

func (s *E2ETestSuite) makeRequest(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
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
	var resp TestResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "Failed to parse: %s", w.Body.String())
	return &resp
}

func (s *E2ETestSuite) adminToken(t *testing.T) string {
	token, err := s.jwtService.GenerateToken(s.adminID, string(domain.RoleAdmin))
	require.NoError(t, err)
	return token
}

func idFrom(t *testing.T, data map[string]interface{}, key string) int64 {
	obj, ok := data[key].(map[string]interface{})
	require.True(t, ok, "no %q object in response", key)
	idVal, ok := obj["id"].(float64)
	require.True(t, ok, "no id in %q object", key)
	return int64(idVal)
}

func TestFlow_RegistrationAndAuth(t *testing.T) {
	suite := setupTestSuite(t)

	t.Run("POST /auth/register", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"name":     "Mehmet Usta",
			"email":    "mehmet@test.com",
			"password": "Password123",
		}, "")

		assert.Equal(t, http.StatusCreated, w.Code)

		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])

		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "TEKNISYEN", user["role"])
	})

	t.Run("POST /auth/login", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "mehmet@test.com",
			"password": "Password123",
		}, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.True(t, resp.Success)
		assert.NotEmpty(t, resp.Data["token"])
	})

	t.Run("GET /auth/me", func(t *testing.T) {
		loginResp := parseResponse(t, suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "mehmet@test.com",
			"password": "Password123",
		}, ""))
		token := loginResp.Data["token"].(string)

		w := suite.makeRequest("GET", "/api/v1/auth/me", nil, token)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		user := resp.Data["user"].(map[string]interface{})
		assert.Equal(t, "mehmet@test.com", user["email"])
	})

	t.Run("Wrong password rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/auth/login", map[string]interface{}{
			"email":    "mehmet@test.com",
			"password": "wrong-password",
		}, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestFlow_TicketLifecycle(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.adminToken(t)

	var customerID, deviceID, partID, ticketID int64

	t.Run("Setup: customer, device, part", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/customers", map[string]interface{}{
			"name":  "Ayşe Yılmaz",
			"phone": "0534 649 67 48",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		customerID = idFrom(t, parseResponse(t, w).Data, "customer")

		w = suite.makeRequest("POST", "/api/v1/devices", map[string]interface{}{
			"customer_id": customerID,
			"type":        "Telefon",
			"brand":       "Apple",
			"model":       "iPhone 13",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		deviceID = idFrom(t, parseResponse(t, w).Data, "device")

		w = suite.makeRequest("POST", "/api/v1/device-parts", map[string]interface{}{
			"device_id": deviceID,
			"name":      "Ekran",
			"category":  "Ekran",
			"price":     4500.0,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		partID = idFrom(t, parseResponse(t, w).Data, "part")
	})

	t.Run("POST /services starts in BEKLEMEDE", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/services", map[string]interface{}{
			"customer_id":   customerID,
			"device_id":     deviceID,
			"technician_id": suite.adminID,
			"problem":       "Ekran kırık",
		}, token)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		resp := parseResponse(t, w)
		ticketID = idFrom(t, resp.Data, "service")

		ticket := resp.Data["service"].(map[string]interface{})
		assert.Equal(t, "BEKLEMEDE", ticket["status"])
	})

	t.Run("PATCH /services/:id forward transition", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/services/%d", ticketID), map[string]interface{}{
			"status": "INCELEMEDE",
		}, token)

		assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
	})

	t.Run("Quote: add same part twice increments", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/services/%d/parts", ticketID), map[string]interface{}{
			"part_id": partID,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/services/%d/parts", ticketID), map[string]interface{}{
			"part_id": partID,
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/services/%d/parts", ticketID), nil, token)
		require.Equal(t, http.StatusOK, w.Code)

		resp := parseResponse(t, w)
		parts := resp.Data["parts"].([]interface{})
		assert.Len(t, parts, 1)

		line := parts[0].(map[string]interface{})
		assert.Equal(t, 2.0, line["quantity"])
		assert.Equal(t, 9000.0, resp.Data["parts_total"])
	})

	t.Run("PATCH to delivered then further change rejected", func(t *testing.T) {
		w := suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/services/%d", ticketID), map[string]interface{}{
			"status": "TESLIM_EDILDI",
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("PATCH", fmt.Sprintf("/api/v1/services/%d", ticketID), map[string]interface{}{
			"status": "INCELEMEDE",
		}, token)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("GET /public/status by phone", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/public/status?phone=5346496748", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		services := resp.Data["services"].([]interface{})
		require.Len(t, services, 1)

		summary := services[0].(map[string]interface{})
		assert.Equal(t, "TESLIM_EDILDI", summary["status"])
		assert.Equal(t, "Apple", summary["device_brand"])
	})

	t.Run("GET /public/services/:id detail without auth", func(t *testing.T) {
		w := suite.makeRequest("GET", fmt.Sprintf("/api/v1/public/services/%d", ticketID), nil, "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		ticket := parseResponse(t, w).Data["service"].(map[string]interface{})
		assert.Equal(t, "TESLIM_EDILDI", ticket["status"])
		assert.Equal(t, "Ekran kırık", ticket["problem"])
		assert.NotNil(t, ticket["customer"])
		assert.NotNil(t, ticket["device"])

		w = suite.makeRequest("GET", "/api/v1/public/services/999999", nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		// the dashboard route still wants a token
		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/services/%d", ticketID), nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("GET /public/status unknown phone empty", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/public/status?phone=09998887766", nil, "")

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		assert.Empty(t, resp.Data["services"])
	})
}

func TestFlow_Chat(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.adminToken(t)

	var ticketID int64

	t.Run("Setup: ticket", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/customers", map[string]interface{}{
			"name":  "Ali Demir",
			"phone": "05434445566",
		}, token)
		customerID := idFrom(t, parseResponse(t, w).Data, "customer")

		w = suite.makeRequest("POST", "/api/v1/devices", map[string]interface{}{
			"customer_id": customerID,
			"type":        "Laptop",
			"brand":       "Lenovo",
			"model":       "ThinkPad T14",
		}, token)
		deviceID := idFrom(t, parseResponse(t, w).Data, "device")

		w = suite.makeRequest("POST", "/api/v1/services", map[string]interface{}{
			"customer_id":   customerID,
			"device_id":     deviceID,
			"technician_id": suite.adminID,
			"problem":       "Açılmıyor",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ticketID = idFrom(t, parseResponse(t, w).Data, "service")
	})

	t.Run("Customer sends without auth", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/public/services/%d/messages", ticketID), map[string]interface{}{
			"message": "Laptopum ne durumda?",
		}, "")

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		msg := parseResponse(t, w).Data["message"].(map[string]interface{})
		assert.Equal(t, true, msg["is_from_customer"])
	})

	t.Run("Staff reply carries user", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/services/%d/messages", ticketID), map[string]interface{}{
			"message": "İnceleme başladı",
		}, token)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		msg := parseResponse(t, w).Data["message"].(map[string]interface{})
		assert.Equal(t, false, msg["is_from_customer"])
		assert.NotNil(t, msg["user"])
	})

	t.Run("Both sides see the same thread in order", func(t *testing.T) {
		staff := suite.makeRequest("GET", fmt.Sprintf("/api/v1/services/%d/messages", ticketID), nil, token)
		public := suite.makeRequest("GET", fmt.Sprintf("/api/v1/public/services/%d/messages", ticketID), nil, "")

		require.Equal(t, http.StatusOK, staff.Code)
		require.Equal(t, http.StatusOK, public.Code)

		staffMsgs := parseResponse(t, staff).Data["messages"].([]interface{})
		publicMsgs := parseResponse(t, public).Data["messages"].([]interface{})
		require.Len(t, staffMsgs, 2)
		require.Len(t, publicMsgs, 2)

		first := staffMsgs[0].(map[string]interface{})
		assert.Equal(t, "Laptopum ne durumda?", first["message"])
	})

	t.Run("Blank message rejected", func(t *testing.T) {
		w := suite.makeRequest("POST", fmt.Sprintf("/api/v1/public/services/%d/messages", ticketID), map[string]interface{}{
			"message": "   ",
		}, "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestFlow_CustomerForceDelete(t *testing.T) {
	suite := setupTestSuite(t)
	token := suite.adminToken(t)

	var customerID, deviceID, ticketID int64

	t.Run("Setup: customer with a ticket and a message", func(t *testing.T) {
		w := suite.makeRequest("POST", "/api/v1/customers", map[string]interface{}{
			"name":  "Fatma Kaya",
			"phone": "05321112233",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		customerID = idFrom(t, parseResponse(t, w).Data, "customer")

		w = suite.makeRequest("POST", "/api/v1/devices", map[string]interface{}{
			"customer_id": customerID,
			"type":        "Telefon",
			"brand":       "Samsung",
			"model":       "Galaxy S21",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		deviceID = idFrom(t, parseResponse(t, w).Data, "device")

		w = suite.makeRequest("POST", "/api/v1/services", map[string]interface{}{
			"customer_id":   customerID,
			"device_id":     deviceID,
			"technician_id": suite.adminID,
			"problem":       "Şarj olmuyor",
		}, token)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		ticketID = idFrom(t, parseResponse(t, w).Data, "service")

		w = suite.makeRequest("POST", fmt.Sprintf("/api/v1/public/services/%d/messages", ticketID), map[string]interface{}{
			"message": "Ne zaman hazır olur?",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	})

	t.Run("Plain delete blocked while tickets exist", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/customers/%d", customerID), nil, token)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "HAS_SERVICE_RECORDS", parseResponse(t, w).Error.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/services/%d", ticketID), nil, token)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Force delete cascades", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/customers/%d?force=true", customerID), nil, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/customers/%d", customerID), nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/services/%d", ticketID), nil, token)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = suite.makeRequest("GET", fmt.Sprintf("/api/v1/public/services/%d/messages", ticketID), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestFlow_AdminUserManagement(t *testing.T) {
	suite := setupTestSuite(t)
	adminToken := suite.adminToken(t)

	t.Run("Technician denied", func(t *testing.T) {
		regResp := parseResponse(t, suite.makeRequest("POST", "/api/v1/auth/register", map[string]interface{}{
			"name":     "Tekniker",
			"email":    "tekniker@test.com",
			"password": "Password123",
		}, ""))
		techToken := regResp.Data["token"].(string)

		w := suite.makeRequest("GET", "/api/v1/admin/users", nil, techToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("Admin lists users", func(t *testing.T) {
		w := suite.makeRequest("GET", "/api/v1/admin/users", nil, adminToken)

		assert.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		users := resp.Data["users"].([]interface{})
		assert.GreaterOrEqual(t, len(users), 2)
	})

	t.Run("Last admin cannot be deleted", func(t *testing.T) {
		w := suite.makeRequest("DELETE", fmt.Sprintf("/api/v1/admin/users/%d", suite.adminID), nil, adminToken)

		// self-delete guard fires first, still a conflict
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}
