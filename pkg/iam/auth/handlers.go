package auth

import (
	"strings"
	"time"

	"github.com/Abraxas-365/jobboard/pkg/errx"
	"github.com/Abraxas-365/jobboard/pkg/iam/user"
	"github.com/Abraxas-365/jobboard/pkg/kernel"
	"github.com/Abraxas-365/jobboard/pkg/logx"
	"github.com/Abraxas-365/jobboard/pkg/validatex"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=150"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"first_name" validate:"max=150"`
	LastName  string `json:"last_name" validate:"max=150"`
}

// LoginRequest accepts either the username or the email in Username
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" validate:"required"`
}

type LoginResponse struct {
	TokenPair
	User user.UserResponse `json:"user"`
}

// AuthHandlers serves registration and token issuance
type AuthHandlers struct {
	users     user.UserRepository
	tokens    TokenService
	passwords PasswordService
}

func NewAuthHandlers(users user.UserRepository, tokens TokenService, passwords PasswordService) *AuthHandlers {
	return &AuthHandlers{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
	}
}

// Register creates a user account
// POST /auth/register
func (h *AuthHandlers) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	hash, err := h.passwords.Hash(req.Password)
	if err != nil {
		return err
	}

	u := &user.User{
		ID:           kernel.NewUserID(uuid.NewString()),
		Username:     strings.TrimSpace(req.Username),
		Email:        kernel.Email(req.Email).Normalize(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		IsActive:     true,
		DateJoined:   time.Now(),
	}
	if err := h.users.Create(c.Context(), u); err != nil {
		return errx.Wrap(err, "failed to register user", errx.TypeInternal)
	}

	logx.Infof("User registered: %s", u.Username)
	return c.Status(fiber.StatusCreated).JSON(u.ToResponse())
}

// Login exchanges credentials for an access/refresh pair
// POST /auth/login
func (h *AuthHandlers) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	var (
		u   *user.User
		err error
	)
	if strings.Contains(req.Username, "@") {
		u, err = h.users.FindByEmail(c.Context(), kernel.Email(req.Username).Normalize())
	} else {
		u, err = h.users.FindByUsername(c.Context(), req.Username)
	}
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return ErrInvalidCredentials()
		}
		return err
	}

	if !h.passwords.Compare(u.PasswordHash, req.Password) {
		return ErrInvalidCredentials()
	}
	if !u.CanLogin() {
		return user.ErrUserInactive()
	}

	pair, err := h.tokens.GeneratePair(u)
	if err != nil {
		return err
	}

	return c.JSON(LoginResponse{TokenPair: *pair, User: u.ToResponse()})
}

// Refresh issues a new pair from a refresh token
// POST /auth/refresh
func (h *AuthHandlers) Refresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return errx.New("invalid request body", errx.TypeValidation).WithDetail("parse_error", err.Error())
	}
	if err := validatex.Struct(req); err != nil {
		return err
	}

	claims, err := h.tokens.ValidateRefreshToken(req.Refresh)
	if err != nil {
		return err
	}

	u, err := h.users.FindByID(c.Context(), claims.UserID)
	if err != nil {
		if errx.IsType(err, errx.TypeNotFound) {
			return ErrInvalidToken()
		}
		return err
	}
	if !u.CanLogin() {
		return user.ErrUserInactive()
	}

	pair, err := h.tokens.GeneratePair(u)
	if err != nil {
		return err
	}
	return c.JSON(pair)
}

// Me returns the authenticated user
// GET /auth/me
func (h *AuthHandlers) Me(c *fiber.Ctx) error {
	ac, ok := GetAuthContext(c)
	if !ok {
		return ErrMissingToken()
	}

	u, err := h.users.FindByID(c.Context(), *ac.UserID)
	if err != nil {
		return err
	}
	return c.JSON(u.ToResponse())
}

// RegisterRoutes registers the /auth routes
func (h *AuthHandlers) RegisterRoutes(app *fiber.App, mw *TokenMiddleware) {
	api := app.Group("/auth")

	api.Post("/register", h.Register)
	api.Post("/login", h.Login)
	api.Post("/refresh", h.Refresh)
	api.Get("/me", mw.Authenticate(), h.Me)
}
