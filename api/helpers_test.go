package api

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"auction/adapters/memory"
	"auction/models"
)

func init() {
	gin.SetMode(gin.TestMode)
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type testServer struct {
	impl       *ServerImpl
	router     *gin.Engine
	privateKey ed25519.PrivateKey
}

// setupTest 建立使用記憶體儲存的服務，並預先建立 alice、bob、carol 與管理員 root
func setupTest(t *testing.T, redisClient *redis.Client) *testServer {
	t.Helper()
	publicKey, privateKey, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	repo := memory.NewRepository()
	ctx := context.Background()
	for _, user := range []models.User{
		{Username: "alice", Role: models.RoleUser},
		{Username: "bob", Role: models.RoleUser},
		{Username: "carol", Role: models.RoleUser},
		{Username: "root", Role: models.RoleAdmin},
	} {
		require.NoError(t, repo.CreateUser(ctx, &user))
	}

	impl, err := newServer(ServerConfig{
		ID:      "test",
		Storage: StorageMemory,
		Redis: RedisConfig{
			KeyPrefix:  "auction:",
			StreamKeys: RedisStreamKeys{BidEvents: "bid-events"},
		},
		Auth: AuthConfig{PublicKey: publicKey},
	}, repo, redisClient)
	require.NoError(t, err)
	require.NoError(t, impl.Start(ctx))
	t.Cleanup(impl.Close)

	router := gin.New()
	impl.RegisterRoutes(router)
	return &testServer{impl: impl, router: router, privateKey: privateKey}
}

func (s *testServer) token(t *testing.T, username string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, JWT{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString(s.privateKey)
	require.NoError(t, err)
	return signed
}

// do 發送請求，username 為空時不帶 token
func (s *testServer) do(t *testing.T, method, path, username string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return s.doContext(t, context.Background(), method, path, username, body)
}

func (s *testServer) doContext(t *testing.T, ctx context.Context, method, path, username string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequestWithContext(ctx, method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if username != "" {
		req.Header.Set("Authorization", "Bearer "+s.token(t, username))
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), "body=%s", w.Body.String())
	return v
}

// createProduct 以 owner 身分上架商品並返回商品資料
func (s *testServer) createProduct(t *testing.T, owner string, published bool) ProductResponse {
	t.Helper()
	w := s.do(t, http.MethodPost, "/products", owner, gin.H{
		"title":      "Vintage Camera",
		"startPrice": "100",
		"published":  published,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[ProductResponse](t, w)
}
