package api

import (
	"errors"
	"net/http"

	"expo/config"
	"expo/middleware"
	"expo/models"
	"expo/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler signup, login and profile
type AuthHandler struct {
	cfg        *config.Config
	bcryptCost int
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg, bcryptCost: bcrypt.DefaultCost}
}

func (h *AuthHandler) accounts() *service.AccountService {
	return service.NewAccountService(userRepo()).WithCost(h.bcryptCost)
}

// RegisterRequest register request
type RegisterRequest struct {
	Username  string `json:"username" binding:"required,max=50" example:"alice"`
	Email     string `json:"email" binding:"omitempty,email" example:"alice@example.com"`
	Password  string `json:"password" binding:"required" example:"correct-horse-battery"`
	Password2 string `json:"password2" binding:"required" example:"correct-horse-battery"`
}

// LoginRequest login request
type LoginRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"correct-horse-battery"`
}

// LoginResponse login response
type LoginResponse struct {
	Token    string      `json:"token"`
	UserInfo models.User `json:"user_info"`
}

// Register creates an account
// @Summary Register
// @Description Creates an active account. password and password2 must match; the password must be at least 8 characters, not entirely numeric, not common and not similar to the username.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "account"
// @Success 200 {object} Response{data=models.User}
// @Failure 400 {object} Response
// @Router /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.accounts().Register(c.Request.Context(), service.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password1: req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		respondError(c, err, "", "failed to create account")
		return
	}
	SuccessWithMessage(c, "Account created successfully! Please login.", user)
}

// Login exchanges credentials for a token
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response{data=LoginResponse}
// @Failure 401 {object} Response
// @Failure 403 {object} Response
// @Failure 429 {object} Response
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.accounts().Authenticate(c.Request.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		Unauthorized(c, "Invalid username or password.")
		return
	case errors.Is(err, service.ErrAccountLocked):
		Forbidden(c, "This account is locked.")
		return
	case err != nil:
		respondError(c, err, "", "login failed")
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		InternalError(c, "failed to issue token")
		return
	}

	Success(c, LoginResponse{
		Token:    token,
		UserInfo: *user,
	})
}

// GetProfile current user
// @Summary Current user
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} Response{data=models.User}
// @Failure 401 {object} Response
// @Router /api/v1/auth/profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := userRepo().FindByID(c.Request.Context(), middleware.GetCurrentUserID(c))
	if err != nil {
		respondError(c, err, "user not found", "failed to load profile")
		return
	}
	Success(c, user)
}

// SignupForm signup page
func (h *AuthHandler) SignupForm(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign up"})
}

// SignupSubmit creates the account and sends the user to the login page
func (h *AuthHandler) SignupSubmit(c *gin.Context) {
	in := service.SignupInput{
		Username:  c.PostForm("username"),
		Email:     c.PostForm("email"),
		Password1: c.PostForm("password1"),
		Password2: c.PostForm("password2"),
	}

	_, err := h.accounts().Register(c.Request.Context(), in)
	if errs, ok := fieldErrors(err); ok {
		render(c, http.StatusBadRequest, "signup.html", gin.H{
			"Title":      "Sign up",
			"Errors":     errs,
			"SignupName": in.Username,
			"Email":      in.Email,
		})
		return
	}
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Could not create the account.", err)
		return
	}

	redirectWithFlash(c, "/login/", flashSuccess, "Account created successfully! Please login.")
}

// LoginForm login page
func (h *AuthHandler) LoginForm(c *gin.Context) {
	if middleware.IsAuthenticated(c) {
		c.Redirect(http.StatusFound, safeNext(c.Query("next")))
		return
	}
	render(c, http.StatusOK, "login.html", gin.H{
		"Title": "Login",
		"Next":  safeNext(c.Query("next")),
	})
}

// LoginSubmit sets the session cookie and follows next
func (h *AuthHandler) LoginSubmit(c *gin.Context) {
	username := c.PostForm("username")
	next := safeNext(c.DefaultPostForm("next", c.Query("next")))

	user, err := h.accounts().Authenticate(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		message := "Please enter a correct username and password."
		switch {
		case errors.Is(err, service.ErrAccountLocked):
			message = "This account is locked."
		case !errors.Is(err, service.ErrInvalidCredentials):
			errorPage(c, http.StatusInternalServerError, "Login failed. Please try again later.", err)
			return
		}
		render(c, http.StatusUnauthorized, "login.html", gin.H{
			"Title":     "Login",
			"Error":     message,
			"LoginName": username,
			"Next":      next,
		})
		return
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, h.cfg.JWT.ExpireTime)
	if err != nil {
		errorPage(c, http.StatusInternalServerError, "Login failed. Please try again later.", err)
		return
	}
	middleware.SetSessionCookie(c, token, h.cfg.JWT.ExpireTime)
	c.Redirect(http.StatusFound, next)
}

// Logout clears the session
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}
