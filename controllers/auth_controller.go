package controllers

import (
	"errors"
	"net/http"

	"library_api/app"
	"library_api/auth"
	"library_api/db"
	"library_api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuthController struct{ *Srv }

func NewAuthController(s *Srv) *AuthController { return &AuthController{Srv: s} }

// POST /auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var in struct {
		Username    string `json:"username" binding:"required,min=3,max=50"`
		Email       string `json:"email" binding:"required,email,max=255"`
		Password    string `json:"password" binding:"required,min=8,max=128"`
		DisplayName string `json:"displayName" binding:"omitempty,max=255"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		storeError(c, err)
		return
	}
	u := &models.User{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		DisplayName:  in.DisplayName,
		PasswordHash: hash,
	}
	if err := ac.Repo.CreateUser(c.Request.Context(), u); err != nil {
		if errors.Is(err, db.ErrUserExists) {
			c.JSON(http.StatusConflict, app.H{"error": "username or email already exists"})
			return
		}
		storeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, u)
}

// POST /auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var in struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
		return
	}

	u, err := ac.Repo.FindUserByUsername(c.Request.Context(), in.Username)
	if err != nil || !auth.CheckPassword(in.Password, u.PasswordHash) {
		// 账号不存在与密码错误返回同一响应
		c.JSON(http.StatusUnauthorized, app.H{"error": "invalid credentials"})
		return
	}

	// 登录快照，不阻塞
	_ = ac.Repo.TouchUserLogin(c.Request.Context(), u.ID, c.ClientIP(), c.Request.UserAgent())

	token, err := auth.NewToken(u.ID, ac.Cfg.SecretKey, ac.Cfg.TokenTTL)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"access_token": token, "token_type": "bearer"})
}

// GET /users/me
func (ac *AuthController) Me(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	u, err := ac.Repo.FindUserByID(c.Request.Context(), uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
			return
		}
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// GET /users/me/loans
func (ac *AuthController) MyLoans(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, app.H{"error": "unauthorized"})
		return
	}
	ls, err := ac.Repo.ListLoansForUser(c.Request.Context(), uid)
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ls)
}
