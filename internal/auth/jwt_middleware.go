package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/freeboard/internal/session"
	"github.com/freeboard/pkg/utils"
)

const (
	// 存放在 gin.Context 中的键
	ContextKeySession   = "session"
	ContextKeyAccountID = "accountID"
	ContextKeyRole      = "role"
)

// errMissingToken 请求未携带 Authorization 头
var errMissingToken = errors.New("Authorization header is required")

// Authenticator 解析 Bearer Token 并关联到会话
type Authenticator struct {
	secret string
	store  session.Store
	ttl    time.Duration
}

// NewAuthenticator ...
func NewAuthenticator(secret string, store session.Store, ttl time.Duration) *Authenticator {
	return &Authenticator{secret: secret, store: store, ttl: ttl}
}

// NewSession 为一次登录创建新的会话句柄
func (a *Authenticator) NewSession(sessionID string) *session.Context {
	return session.NewContext(a.store, sessionID, a.ttl)
}

// IssueToken 为会话签发 token
func (a *Authenticator) IssueToken(sess *session.Context, identity session.Identity) (string, time.Time, error) {
	return IssueToken(a.secret, sess.ID(), identity.AccountID, string(identity.Role), a.ttl)
}

func (a *Authenticator) parseHeader(c *gin.Context) (*Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errMissingToken
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return nil, errors.New("Authorization header format must be Bearer {token}")
	}
	return ParseToken(a.secret, parts[1])
}

// JWTMiddleware 要求请求携带有效 token 且对应会话仍然存在
func (a *Authenticator) JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.parseHeader(c)
		if err != nil {
			utils.RespondUnauthorizedError(c, tokenErrorMessage(err))
			return
		}

		sess := a.NewSession(claims.ID)
		identity, err := sess.CurrentUser(c.Request.Context())
		if err != nil {
			if errors.Is(err, session.ErrNoIdentity) {
				utils.RespondUnauthorizedError(c, "Token has been invalidated (logged out)")
			} else {
				utils.RespondInternalServerError(c, "读取会话失败", err.Error())
			}
			return
		}
		if identity.AccountID != claims.AccountID {
			utils.RespondUnauthorizedError(c, "Token does not match session")
			return
		}

		setIdentity(c, sess, identity)
		c.Next()
	}
}

// OptionalJWTMiddleware 有合法 token 时关联会话，否则以匿名身份继续
func (a *Authenticator) OptionalJWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.parseHeader(c)
		if err != nil {
			c.Next()
			return
		}

		sess := a.NewSession(claims.ID)
		c.Set(ContextKeySession, sess)
		if identity, err := sess.CurrentUser(c.Request.Context()); err == nil && identity.AccountID == claims.AccountID {
			setIdentity(c, sess, identity)
		}
		c.Next()
	}
}

func setIdentity(c *gin.Context, sess *session.Context, identity *session.Identity) {
	c.Set(ContextKeySession, sess)
	c.Set(ContextKeyAccountID, identity.AccountID)
	c.Set(ContextKeyRole, string(identity.Role))
}

// CurrentAccountID 返回当前登录用户账号，匿名请求返回 false
func CurrentAccountID(c *gin.Context) (string, bool) {
	accountID := c.GetString(ContextKeyAccountID)
	return accountID, accountID != ""
}

// CurrentSession 返回请求关联的会话，没有 token 时返回 nil
func CurrentSession(c *gin.Context) *session.Context {
	v, ok := c.Get(ContextKeySession)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Context)
	return sess
}

func tokenErrorMessage(err error) string {
	// 使用 errors.Is 来判断特定的JWT错误类型
	switch {
	case errors.Is(err, errMissingToken):
		return err.Error()
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "Token is malformed"
	case errors.Is(err, jwt.ErrTokenExpired) || errors.Is(err, jwt.ErrTokenNotValidYet):
		return "Token is expired or not valid yet"
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return "Invalid token signature"
	case errors.Is(err, jwt.ErrTokenInvalidId):
		return "Token missing JTI (JWT ID)"
	default:
		return "Invalid token: " + err.Error()
	}
}
