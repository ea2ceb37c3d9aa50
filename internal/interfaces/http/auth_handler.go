package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/pkg/logger"
)

// AuthService lo cumple auth.AuthUseCase.
type AuthService interface {
	RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
}

// AuthHandler maneja registro y login.
type AuthHandler struct {
	base
	svc AuthService
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(svc AuthService, log *logger.Logger, dev bool) *AuthHandler {
	return &AuthHandler{base: newBase(log, dev), svc: svc}
}

// Register godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, nombre, rol"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	if len(in.Password) < 8 {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "password debe tener al menos 8 caracteres")
	}
	user, err := h.svc.RegisterUser(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return errorJSON(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
		}
		return h.fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return errorJSON(c, fiber.StatusBadRequest, "VALIDATION", "email y password son requeridos")
	}
	out, err := h.svc.Login(c.UserContext(), in)
	if err != nil {
		// mismo mensaje para usuario inexistente y password incorrecto
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrUnauthorized) {
			return errorJSON(c, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas")
		}
		if errors.Is(err, domain.ErrForbidden) {
			return errorJSON(c, fiber.StatusForbidden, "USER_INACTIVE", "usuario inactivo")
		}
		return h.fail(c, err)
	}
	return c.JSON(out)
}
