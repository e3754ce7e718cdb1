package middleware

import (
	"errors"
	"net/http"
	"strings"

	"eventbooking/config"
	"eventbooking/internal/model"
	"eventbooking/internal/service"
	apperrors "eventbooking/pkg/app_errors"
	"eventbooking/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	// ContextPrincipalKey 認證中介層寫入的呼叫者身分
	ContextPrincipalKey = "principal"
	// ContextMemberKey 會員解析中介層寫入的會員檔案
	ContextMemberKey = "member"
)

// Authenticate 解析 Bearer token，將 Principal 放入 context
func Authenticate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := bearerPrincipal(c, cfg)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextPrincipalKey, principal)
		c.Next()
	}
}

// OptionalIdentity 公開路由的盡力身分解析：token 缺失或無效一律放行，
// 解析成功時額外掛上會員檔案
func OptionalIdentity(cfg *config.Config, memberService service.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := bearerPrincipal(c, cfg)
		if err != nil {
			c.Next()
			return
		}
		c.Set(ContextPrincipalKey, principal)

		member, err := memberService.EnsureProfile(c.Request.Context(), principal)
		if err != nil {
			logger.WithComponent("middleware").Warn("could not resolve member for optional identity",
				zap.String("user_id", principal.UserID),
				zap.Error(err))
			c.Next()
			return
		}
		c.Set(ContextMemberKey, member)
		c.Next()
	}
}

func bearerPrincipal(c *gin.Context, cfg *config.Config) (model.Principal, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return model.Principal{}, errors.New("missing Authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return model.Principal{}, errors.New("invalid Authorization header")
	}

	token, err := jwt.Parse(parts[1], func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Auth.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return model.Principal{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return model.Principal{}, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return model.Principal{}, errors.New("sub missing in token")
	}

	name, _ := claims["name"].(string)
	email, _ := claims["email"].(string)
	roleClaim, _ := claims["role"].(string)

	role := model.Role(roleClaim)
	if !role.IsValid() {
		role = model.RoleMember
	}

	return model.Principal{
		UserID: sub,
		Name:   name,
		Email:  email,
		Role:   role,
	}, nil
}

// RequireRoles 角色閘門：呼叫者角色不在清單內時回 403
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		for _, role := range roles {
			if principal.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": apperrors.ErrForbidden.Error()})
	}
}

// ResolveMember 冪等解析會員檔案並放入 context；解析失敗視為伺服器錯誤
func ResolveMember(memberService service.MemberService) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		member, err := memberService.EnsureProfile(c.Request.Context(), principal)
		if err != nil {
			logger.WithComponent("middleware").Error("failed to resolve member profile",
				zap.String("user_id", principal.UserID),
				zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": apperrors.ErrMemberResolution.Error()})
			return
		}

		c.Set(ContextMemberKey, member)
		c.Next()
	}
}

// PrincipalFrom 取出認證中介層寫入的 Principal
func PrincipalFrom(c *gin.Context) (model.Principal, bool) {
	value, exists := c.Get(ContextPrincipalKey)
	if !exists {
		return model.Principal{}, false
	}
	principal, ok := value.(model.Principal)
	return principal, ok
}

// MemberFrom 取出會員解析中介層寫入的會員檔案
func MemberFrom(c *gin.Context) (*model.Member, bool) {
	value, exists := c.Get(ContextMemberKey)
	if !exists {
		return nil, false
	}
	member, ok := value.(*model.Member)
	return member, ok
}
