package api

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	identityKey     = "identity"
	accessTokenName = "access_token"
)

// JWT 是外部認證服務簽發的 access token
type JWT struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Identity 是通過驗證的呼叫者
type Identity struct {
	Username string
}

func ParseAndValidateJWT(tokenString string, publicKey ed25519.PublicKey) (*JWT, error) {
	const op = "ParseJWT"
	if len(publicKey) == 0 {
		return nil, fmt.Errorf("%s: public key is not configured", op)
	}
	token, err := jwt.ParseWithClaims(tokenString, &JWT{}, func(token *jwt.Token) (interface{}, error) {
		return publicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*JWT)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: token claims are invalid", op)
	}
	if claims.Username == "" {
		return nil, fmt.Errorf("%s: token has no username", op)
	}
	return claims, nil
}

// Authenticate 解析 Authorization header 或 access_token cookie，驗證成功時將 Identity 放入 context
// 沒有帶 token 的請求照常放行，由需要身分的 handler 自行檢查
func (impl *ServerImpl) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}
		identity, err := impl.identify(tokenString)
		if err != nil {
			impl.logger.Warn("Fail to parse and validate JWT", slog.Any("error", err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid access token"})
			return
		}
		c.Set(identityKey, identity)
		c.Next()
	}
}

func (impl *ServerImpl) identify(tokenString string) (Identity, error) {
	token, err := ParseAndValidateJWT(tokenString, impl.config.Auth.PublicKey)
	if err != nil {
		return Identity{}, err
	}
	return Identity{Username: token.Username}, nil
}

func bearerToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		scheme, token, ok := strings.Cut(header, " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
		return ""
	}
	if cookie, err := c.Cookie(accessTokenName); err == nil {
		return cookie
	}
	return ""
}

var errNoIdentity = errors.New("no identity")

// identityFrom 取得呼叫者身分，未登入時返回 errNoIdentity
func identityFrom(c *gin.Context) (Identity, error) {
	value, ok := c.Get(identityKey)
	if !ok {
		return Identity{}, errNoIdentity
	}
	identity, ok := value.(Identity)
	if !ok {
		return Identity{}, errNoIdentity
	}
	return identity, nil
}
