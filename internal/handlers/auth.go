package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"teamboard-be/config"
	"teamboard-be/internal/models"
	"teamboard-be/internal/repository"
	"teamboard-be/internal/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type AuthHandler struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthHandler(cfg *config.Config, userRepo *repository.UserRepository) *AuthHandler {
	return &AuthHandler{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

func (h *AuthHandler) issueTokens(ctx context.Context, user *models.User) (*models.AuthResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID.Hex(), user.LoginID, h.cfg.JWTSecret, h.cfg.JWTAccessExpiration)
	if err != nil {
		return nil, err
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID.Hex(), user.LoginID, h.cfg.JWTSecret, h.cfg.JWTRefreshExpiration)
	if err != nil {
		return nil, err
	}
	if err := h.userRepo.UpdateRefreshToken(ctx, user.ID.Hex(), refreshToken); err != nil {
		return nil, err
	}
	return &models.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Signup registers a new account with a login id and password
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if existing, err := h.userRepo.FindByLoginID(ctx, req.ID); err == nil && existing != nil {
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Code:    "USER_EXISTS",
			Message: "login id already exists",
		})
		return
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "SERVER_ERROR",
			Message: "failed to process password",
		})
		return
	}

	user := &models.User{
		LoginID:    req.ID,
		Password:   hashedPassword,
		Name:       req.Name,
		Department: req.Department,
		GlobalRole: models.RoleUser,
		IsActive:   true,
	}

	if err := h.userRepo.Create(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Code:    "USER_EXISTS",
				Message: "login id already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "SERVER_ERROR",
			Message: "failed to create user",
		})
		return
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "SERVER_ERROR",
			Message: "failed to issue tokens",
		})
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login authenticates a login id and password pair
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindByLoginID(ctx, req.ID)
	if err != nil || !user.IsActive || utils.CheckPassword(user.Password, req.Password) != nil {
		// One answer for every failure mode so login ids cannot be probed.
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "invalid credentials",
		})
		return
	}

	if err := h.userRepo.UpdateLastLogin(ctx, user.ID.Hex()); err != nil {
		log.Printf("auth: update last login: %v", err)
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "SERVER_ERROR",
			Message: "failed to issue tokens",
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh rotates a valid refresh token into a new access/refresh pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	claims, err := utils.ValidateToken(req.RefreshToken, h.cfg.JWTSecret)
	if err != nil || claims.TokenType != "refresh" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "invalid refresh token",
		})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindByID(ctx, claims.UserID)
	if err != nil || !user.IsActive || user.RefreshToken != req.RefreshToken {
		// A token that is valid but not the stored one has been rotated out.
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "invalid refresh token",
		})
		return
	}

	resp, err := h.issueTokens(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "SERVER_ERROR",
			Message: "failed to issue tokens",
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Logout clears the stored refresh token
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.userRepo.UpdateRefreshToken(ctx, requesterID(c), ""); err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    "SERVER_ERROR",
			Message: "failed to log out",
		})
		return
	}
	c.JSON(http.StatusOK, models.OkResponse{Ok: true})
}

// Me returns the authenticated user's profile
func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	user, err := h.userRepo.FindByID(ctx, requesterID(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    "UNAUTHORIZED",
			Message: "user not found",
		})
		return
	}
	c.JSON(http.StatusOK, user)
}
