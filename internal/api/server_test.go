package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/kingrain94/tenant-items-api/internal/auth"
	"github.com/kingrain94/tenant-items-api/internal/config"
	"github.com/kingrain94/tenant-items-api/internal/domain"
	"github.com/kingrain94/tenant-items-api/internal/metrics"
	"github.com/kingrain94/tenant-items-api/internal/middleware"
	"github.com/kingrain94/tenant-items-api/internal/repository/memory"
	"github.com/kingrain94/tenant-items-api/internal/service"
	"github.com/kingrain94/tenant-items-api/pkg/logger"
)

type fakeExportQueue struct {
	mock.Mock
}

func (q *fakeExportQueue) SendExportMessage(ctx context.Context, schema, exportID string, requestedBy int64) error {
	return q.Called(schema, requestedBy).Error(0)
}

// ServerTestSuite drives the full router against the in-memory backend.
type ServerTestSuite struct {
	suite.Suite
	router *gin.Engine
	store  *memory.Store
	queue  *fakeExportQueue
}

func TestServerSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()

	s.store = memory.NewStore("acme", "globex")
	hasher := auth.NewHasher(bcrypt.MinCost)
	s.seedUser("acme", "alice", "acme-pass", true)
	s.seedUser("globex", "alice", "globex-pass", true)
	s.seedUser("acme", "mallory", "pw", false)

	m := metrics.New()
	repo := m.InstrumentRepository(memory.NewRepository(s.store))
	tokens := auth.NewTokenService(config.JWTConfig{
		SecretKey: "test", Issuer: "test", AccessTTL: 5 * time.Minute, RefreshTTL: time.Hour,
	})
	s.queue = new(fakeExportQueue)

	server := NewServer(
		service.NewItemService(repo, nil, log),
		service.NewAuthService(repo, tokens, hasher, log),
		service.NewExportService(s.queue),
		nil,
		middleware.NewAuthMiddleware(tokens),
		nil,
		middleware.NewValidationMiddleware(log),
		m,
		log,
		Limits{MaxRequestSize: 1 << 20},
	)
	s.router = server.NewRouter()
}

func (s *ServerTestSuite) seedUser(schema, username, password string, active bool) {
	hash, err := auth.NewHasher(bcrypt.MinCost).Hash(password)
	s.Require().NoError(err)
	_, err = s.store.SeedUser(schema, domain.User{Username: username, Password: hash, IsActive: active, Email: username + "@" + schema + ".test"})
	s.Require().NoError(err)
}

func (s *ServerTestSuite) do(method, host, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Host = host
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ServerTestSuite) login(host, username, password string) (int, map[string]any) {
	w := s.do(http.MethodPost, host, "/api/v1/login", "", map[string]string{"username": username, "password": password})
	var body map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func (s *ServerTestSuite) accessToken(host, username, password string) string {
	code, body := s.login(host, username, password)
	s.Require().Equal(http.StatusOK, code, body)
	return body["detail"].(map[string]any)["access_token"].(string)
}

func (s *ServerTestSuite) createItem(host, token, name string) int64 {
	w := s.do(http.MethodPost, host, "/api/v1/item-view", token, map[string]string{"name": name})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		Detail struct {
			ID int64 `json:"id"`
		} `json:"detail"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail.ID
}

func (s *ServerTestSuite) TestLogin_IsConfinedToTenant() {
	code, body := s.login("acme.example.com", "alice", "acme-pass")
	s.Equal(http.StatusOK, code)
	detail := body["detail"].(map[string]any)
	s.Equal("alice", detail["username"])
	s.Equal("alice@acme.test", detail["email"])
	s.NotEmpty(detail["refresh_token"])

	code, body = s.login("globex.example.com", "alice", "acme-pass")
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("Invalid credentials.", body["detail"])

	code, _ = s.login("globex.example.com", "alice", "globex-pass")
	s.Equal(http.StatusOK, code)
}

func (s *ServerTestSuite) TestLogin_InactiveAndMissing() {
	code, _ := s.login("acme.example.com", "mallory", "pw")
	s.Equal(http.StatusUnauthorized, code)

	code, body := s.login("acme.example.com", "alice", "")
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Schema name, username, and password are required.", body["detail"])
}

func (s *ServerTestSuite) TestItems_CreateThenDetailIsolation() {
	token := s.accessToken("acme.example.com", "alice", "acme-pass")
	id := s.createItem("acme.example.com", token, "Widget")

	w := s.do(http.MethodGet, "acme.example.com", fmt.Sprintf("/api/v1/ticket-detail?item_id=%d", id), "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(fmt.Sprintf(`{"code":200,"detail":{"id":%d,"name":"Widget"}}`, id), w.Body.String())

	w = s.do(http.MethodGet, "globex.example.com", fmt.Sprintf("/api/v1/ticket-detail?item_id=%d", id), "", nil)
	s.Equal(http.StatusNotFound, w.Code)

	globexToken := s.accessToken("globex.example.com", "alice", "globex-pass")
	w = s.do(http.MethodGet, "globex.example.com", "/api/v1/item-list", globexToken, nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *ServerTestSuite) TestItems_TokenIsNotPortableAcrossTenants() {
	token := s.accessToken("acme.example.com", "alice", "acme-pass")

	w := s.do(http.MethodGet, "globex.example.com", "/api/v1/item-list", token, nil)

	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *ServerTestSuite) TestItems_UpdateMissingLeavesCountUnchanged() {
	token := s.accessToken("acme.example.com", "alice", "acme-pass")
	s.createItem("acme.example.com", token, "Widget")

	w := s.do(http.MethodPut, "acme.example.com", "/api/v1/item-view", token, map[string]any{"item_id": 999, "name": "Ghost"})
	s.Equal(http.StatusNotFound, w.Code)
	s.JSONEq(`{"code":404,"detail":"Not Found"}`, w.Body.String())

	w = s.do(http.MethodGet, "acme.example.com", "/api/v1/item-list", token, nil)
	var items []map[string]any
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &items))
	s.Len(items, 1)
	s.Equal("Widget", items[0]["name"])
}

func (s *ServerTestSuite) TestItems_UpdateAppliesName() {
	token := s.accessToken("acme.example.com", "alice", "acme-pass")
	id := s.createItem("acme.example.com", token, "Widget")

	w := s.do(http.MethodPut, "acme.example.com", "/api/v1/item-view", token, map[string]any{"item_id": id, "name": "Gizmo"})
	s.Equal(http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, "acme.example.com", fmt.Sprintf("/api/v1/ticket-detail?item_id=%d", id), "", nil)
	s.Contains(w.Body.String(), "Gizmo")
}

func (s *ServerTestSuite) TestUnknownTenantFailsAsStorageError() {
	w := s.do(http.MethodGet, "ghost.example.com", "/api/v1/ticket-detail?item_id=1", "", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	s.Contains(w.Body.String(), "tenant schema does not exist")
}

func (s *ServerTestSuite) TestRefreshAndUserList() {
	_, body := s.login("acme.example.com", "alice", "acme-pass")
	refresh := body["detail"].(map[string]any)["refresh_token"].(string)

	w := s.do(http.MethodPost, "acme.example.com", "/api/v1/token/refresh", "", map[string]string{"refresh": refresh})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "globex.example.com", "/api/v1/token/refresh", "", map[string]string{"refresh": refresh})
	s.Equal(http.StatusUnauthorized, w.Code)

	token := s.accessToken("acme.example.com", "alice", "acme-pass")
	w = s.do(http.MethodGet, "acme.example.com", "/api/v1/user-list", token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "mallory")
	s.NotContains(w.Body.String(), "password")
}

func (s *ServerTestSuite) TestItemExport() {
	s.queue.On("SendExportMessage", "acme", int64(1)).Return(nil)
	token := s.accessToken("acme.example.com", "alice", "acme-pass")

	w := s.do(http.MethodPost, "acme.example.com", "/api/v1/item-export", token, nil)

	s.Equal(http.StatusAccepted, w.Code)
	s.Contains(w.Body.String(), "export_id")
	s.queue.AssertExpectations(s.T())
}

func (s *ServerTestSuite) TestHealthAndMetrics() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "", "/health", "", nil).Code)

	w := s.do(http.MethodGet, "", "/metrics", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "tenant_items_http_requests_total")
}

func (s *ServerTestSuite) TestConcurrentTenantsNeverInterfere() {
	hosts := map[string]string{"acme.example.com": "acme-pass", "globex.example.com": "globex-pass"}
	tokens := map[string]string{}
	for host, pw := range hosts {
		tokens[host] = s.accessToken(host, "alice", pw)
	}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		for host := range hosts {
			wg.Add(1)
			go func(host string, i int) {
				defer wg.Done()
				w := s.do(http.MethodPost, host, "/api/v1/item-view", tokens[host], map[string]string{"name": fmt.Sprintf("%s-%d", host, i)})
				s.Equal(http.StatusCreated, w.Code)
			}(host, i)
		}
	}
	wg.Wait()

	for host := range hosts {
		w := s.do(http.MethodGet, host, "/api/v1/item-list", tokens[host], nil)
		var items []map[string]any
		s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &items))
		s.Len(items, 40)
		for _, item := range items {
			s.Regexp("^"+host+"-", item["name"])
		}
	}
}
