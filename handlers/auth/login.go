package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hackagra/mindverse-api/model"
	authutil "github.com/hackagra/mindverse-api/utils/auth"
	"github.com/hackagra/mindverse-api/utils/response"
	"github.com/hackagra/mindverse-api/utils/validation"
)

// LoginRequest represents a user login request. The client states which role
// it is logging in as; a mismatch against the stored role is rejected.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"` // in seconds
}

// Login handles user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	req.Email = validation.NormalizeEmail(req.Email)

	if req.Email == "" || req.Password == "" || req.Role == "" {
		return response.BadRequest(c, "Email, password, and role are required")
	}

	if req.Role != model.RoleUser && req.Role != model.RoleAdmin {
		return response.BadRequest(c, "Invalid role. Must be 'user' or 'admin'")
	}

	ip := c.IP()

	// Find user by email
	var user model.User
	if err := h.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		// Record failed attempt even if user not found
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	// Verify password
	if err := authutil.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		if h.bruteForceProtection != nil {
			h.bruteForceProtection.RecordFailedAttempt(c, ip)
		}
		return response.Unauthorized(c, "Invalid email or password")
	}

	// Role must match the stored role. Password was correct, so this is a
	// permission problem, not an authentication one.
	if user.Role != req.Role {
		return response.Forbidden(c, "Account does not have the requested role")
	}

	// Clear failed attempts on successful login
	if h.bruteForceProtection != nil {
		h.bruteForceProtection.RecordSuccessfulAttempt(c, ip)
	}

	token, err := h.jwtManager.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return response.InternalServerError(c, "Failed to generate token")
	}

	res := LoginResponse{
		User:      toUserResponse(&user),
		Token:     token,
		ExpiresIn: int(TokenExpiry.Seconds()),
	}

	return response.Success(c, res)
}
