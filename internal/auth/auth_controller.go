package auth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/PatelKrunal-11/stride/config"
	"github.com/PatelKrunal-11/stride/internal/authz"
	"github.com/PatelKrunal-11/stride/internal/middleware"
	"github.com/PatelKrunal-11/stride/internal/user"
	"github.com/PatelKrunal-11/stride/pkg/responses"
	"github.com/PatelKrunal-11/stride/pkg/token"
	"github.com/PatelKrunal-11/stride/pkg/utils"
	hashutils "github.com/PatelKrunal-11/stride/utils"
)

const DefaultUserRole = string(authz.RoleCoach)

type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{
		repo:   repo,
		config: cfg,
	}
}

func (ac *AuthController) generateAndSaveTokens(u *user.User) (string, string, error) {
	accessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		return "", "", fmt.Errorf("access token generation failed: %w", err)
	}

	refreshTokenString, err := utils.GenerateRefreshToken(u.ID, ac.config.JWT.RefreshTokenSecret, ac.config.JWT.RefreshTokenExpiryDays)
	if err != nil {
		return "", "", fmt.Errorf("refresh token generation failed: %w", err)
	}

	refreshToken := &user.RefreshToken{
		UserID:    u.ID,
		Token:     refreshTokenString,
		ExpiresAt: time.Now().AddDate(0, 0, ac.config.JWT.RefreshTokenExpiryDays),
	}

	if err := ac.repo.SaveRefreshToken(refreshToken); err != nil {
		return "", "", fmt.Errorf("failed to save refresh token: %w", err)
	}
	return accessToken, refreshTokenString, nil
}

// @Summary      Register a new user
// @Description  Create a new account with name, email and password. Defaults to the coach role.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        user  body  RegisterRequest  true  "User registration details"
// @Success      201   {object} AuthResponse "User registered successfully, returns tokens and user info"
// @Failure      400   {object} responses.ErrorResponse "Validation error or invalid input"
// @Failure      409   {object} responses.ErrorResponse "User with this email already exists"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	// Check for existing users
	if _, err := ac.repo.GetUserByEmail(strings.ToLower(req.Email)); !errors.Is(err, gorm.ErrRecordNotFound) {
		responses.Conflict(c, "User with this email already exists")
		return
	}

	hashedPassword, err := hashutils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "Error hashing password")
		return
	}

	role := DefaultUserRole
	if req.Role != "" {
		role = req.Role
	}

	newUser := &user.User{
		Name:     req.Name,
		Email:    strings.ToLower(req.Email),
		Password: hashedPassword,
		Phone:    req.Phone,
		Role:     role,
	}

	if err := ac.repo.CreateUser(newUser); err != nil {
		responses.InternalServerError(c, "User creation failed: "+err.Error())
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(newUser)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(newUser),
	})
}

// @Summary      Login user
// @Description  Authenticate with email and password.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        credentials  body  LoginRequest  true  "Login credentials"
// @Success      200   {object} AuthResponse "Login successful, returns tokens and user info"
// @Failure      400   {object} responses.ErrorResponse "Invalid input"
// @Failure      401   {object} responses.ErrorResponse "Invalid credentials"
// @Failure      404   {object} responses.ErrorResponse "User not found"
// @Failure      500   {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	foundUser, err := ac.repo.GetUserByEmail(strings.ToLower(req.Email))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		responses.NotFound(c, "User")
		return
	}
	if err != nil {
		responses.InternalServerError(c, "Database error: "+err.Error())
		return
	}

	if !hashutils.CheckPassword(foundUser.Password, req.Password) {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, refreshToken, err := ac.generateAndSaveTokens(foundUser)
	if err != nil {
		responses.InternalServerError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         FilterUserRecord(foundUser),
	})
}

// @Summary      Refresh Access Token
// @Description  Refreshes the access token using a valid refresh token.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshTokenRequest true "Refresh Token Request"
// @Success      200 {object} map[string]string "Returns a new access token"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Invalid or expired refresh token"
// @Failure      500 {object} responses.ErrorResponse "Token generation failed"
// @Router       /auth/refresh-token [post]
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	rt, err := ac.repo.GetRefreshToken(req.RefreshToken)
	if err != nil {
		responses.Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	// Role may have changed since the refresh token was issued, so re-read it.
	u, err := ac.repo.GetUserByID(rt.UserID)
	if err != nil {
		responses.Unauthorized(c, "User no longer exists")
		return
	}

	newAccessToken, err := token.GenerateJWT(u.ID, u.Role, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "New access token generation failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": newAccessToken})
}

// @Summary      Get User Profile
// @Description  Retrieves the profile of the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Produce      json
// @Success      200 {object} UserResponse "User profile data"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      404 {object} responses.ErrorResponse "User not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	currentUser, err := ac.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve profile: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(currentUser))
}

// @Summary      Update User Profile
// @Description  Updates the profile of the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        profileData body UpdateProfileRequest true "Profile data to update"
// @Success      200 {object} UserResponse "Updated user profile data"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      404 {object} responses.ErrorResponse "User not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/me [put]
func (ac *AuthController) UpdateProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to retrieve user: "+err.Error())
		return
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.Phone != nil {
		u.Phone = *req.Phone
	}

	if err := ac.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Could not update profile: "+err.Error())
		return
	}
	c.JSON(http.StatusOK, FilterUserRecord(u))
}

// @Summary      Change Password
// @Description  Changes the password for the currently authenticated user.
// @Tags         Profile
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        passwordData body ChangePasswordRequest true "Old and new passwords"
// @Success      200 {object} map[string]string "Password changed successfully"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized or incorrect old password"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/change-password [post]
func (ac *AuthController) ChangePassword(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve user: "+err.Error())
		return
	}

	if !hashutils.CheckPassword(u.Password, req.OldPassword) {
		responses.Unauthorized(c, "Incorrect old password.")
		return
	}

	if req.OldPassword == req.NewPassword {
		responses.BadRequest(c, "New password cannot be the same as the old password.")
		return
	}

	newHashedPassword, err := hashutils.HashPassword(req.NewPassword)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash new password.")
		return
	}

	u.Password = newHashedPassword
	if err := ac.repo.UpdateUser(u); err != nil {
		responses.InternalServerError(c, "Failed to change password: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Password changed successfully.", nil)
}

// @Summary      Logout user
// @Description  Invalidates the provided refresh token, or all sessions when requested.
// @Tags         Auth
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request body LogoutRequest false "Logout options"
// @Success      200 {object} map[string]string "Logged out successfully"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /auth/logout [post]
func (ac *AuthController) Logout(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, err.Error())
		return
	}

	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		responses.SendValidationError(c, err)
		return
	}

	if req.RefreshToken != "" {
		if err := ac.repo.InvalidateRefreshToken(req.RefreshToken); err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				responses.InternalServerError(c, "Failed to invalidate refresh token: "+err.Error())
				return
			}
			// Token not found is acceptable (maybe already expired/revoked)
		}
	}

	if req.InvalidateAllSessions {
		if err := ac.repo.InvalidateAllRefreshTokensForUser(userID); err != nil {
			responses.InternalServerError(c, "Failed to invalidate all sessions: "+err.Error())
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":                  "Logged out successfully",
		"all_sessions_invalidated": req.InvalidateAllSessions,
	})
}

// @Summary      List users
// @Description  Lists all accounts with pagination. Admin only.
// @Tags         Admin
// @Security     BearerAuth
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        limit query int false "Items per page" default(10)
// @Success      200 {object} responses.PaginatedResponse "Users retrieved"
// @Failure      401 {object} responses.ErrorResponse "Unauthorized"
// @Failure      403 {object} responses.ErrorResponse "Forbidden"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /admin/users [get]
func (ac *AuthController) ListUsers(c *gin.Context) {
	page := utils.ParsePositiveQueryInt(c, "page", 1)
	limit := utils.ParsePositiveQueryInt(c, "limit", 10)

	users, total, err := ac.repo.ListUsers(page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list users: "+err.Error())
		return
	}

	filtered := make([]UserResponse, 0, len(users))
	for i := range users {
		filtered = append(filtered, FilterUserRecord(&users[i]))
	}

	responses.SendPaginated(c, http.StatusOK, "Users retrieved successfully", filtered, total, page, limit)
}

// @Summary      Update a user's role
// @Description  Sets the role column for a user. Admin only.
// @Tags         Admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id path int true "User ID"
// @Param        roleData body UpdateRoleRequest true "New role"
// @Success      200 {object} map[string]string "Role updated"
// @Failure      400 {object} responses.ErrorResponse "Invalid input"
// @Failure      403 {object} responses.ErrorResponse "Forbidden"
// @Failure      404 {object} responses.ErrorResponse "User not found"
// @Failure      500 {object} responses.ErrorResponse "Internal server error"
// @Router       /admin/users/{id}/role [put]
func (ac *AuthController) UpdateUserRole(c *gin.Context) {
	targetID, err := utils.ParseIDParam(c, "id")
	if err != nil {
		responses.BadRequest(c, "Invalid user ID format")
		return
	}

	var req UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendValidationError(c, err)
		return
	}

	if err := ac.repo.UpdateUserRole(targetID, req.Role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			responses.NotFound(c, "User")
			return
		}
		responses.InternalServerError(c, "Failed to update role: "+err.Error())
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Role updated successfully", gin.H{"user_id": targetID, "role": req.Role})
}
