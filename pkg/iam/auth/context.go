package auth

import (
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is the authenticated caller attached to a request
type AuthContext struct {
	UserID   *kernel.UserID
	Username string
	Email    kernel.Email
	IsStaff  bool
}

func (a *AuthContext) IsAuthenticated() bool {
	return a != nil && a.UserID != nil && !a.UserID.IsEmpty()
}

func newAuthContext(claims *TokenClaims) *AuthContext {
	id := claims.UserID
	return &AuthContext{
		UserID:   &id,
		Username: claims.Username,
		Email:    claims.Email,
		IsStaff:  claims.IsStaff,
	}
}

// SetAuthContext attaches the caller to the request
func SetAuthContext(c *fiber.Ctx, ac *AuthContext) {
	c.Locals(authContextKey, ac)
}

// GetAuthContext returns the caller if the request was authenticated
func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	ac, ok := c.Locals(authContextKey).(*AuthContext)
	if !ok || !ac.IsAuthenticated() {
		return nil, false
	}
	return ac, true
}

// ViewerID returns the caller id or nil for anonymous requests
func ViewerID(c *fiber.Ctx) *kernel.UserID {
	ac, ok := GetAuthContext(c)
	if !ok {
		return nil
	}
	return ac.UserID
}
