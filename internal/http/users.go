package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mramadan/socialmedia/internal/audit"
	"github.com/mramadan/socialmedia/internal/auth"
	"github.com/mramadan/socialmedia/internal/tasks"
)

// UsersController handles registration, login and email confirmation.
type UsersController struct {
	authService *auth.Service
	taskClient  *tasks.Client
	auditor     *audit.Auditor
	baseURL     string
}

// NewUsersController creates a new UsersController. The task client may be
// nil, in which case confirmation emails are not dispatched.
func NewUsersController(authService *auth.Service, taskClient *tasks.Client, auditor *audit.Auditor, baseURL string) *UsersController {
	return &UsersController{
		authService: authService,
		taskClient:  taskClient,
		auditor:     auditor,
		baseURL:     baseURL,
	}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is the body returned on successful login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a new unconfirmed user and queues a confirmation email.
func (uc *UsersController) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := uc.authService.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			uc.auditor.Record("register", req.Email, audit.OutcomeFailure, err.Error())
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, err, "register user")
		return
	}

	uc.auditor.Record("register", user.Email, audit.OutcomeSuccess, "")
	uc.queueConfirmationEmail(user.Email)

	c.IndentedJSON(http.StatusCreated, gin.H{
		"detail": "User created. Please confirm your email.",
	})
}

// queueConfirmationEmail enqueues a registration email task containing a
// confirmation link. Failures are logged but never fail the registration.
func (uc *UsersController) queueConfirmationEmail(email string) {
	if uc.taskClient == nil {
		log.Printf("Task queue not configured, skipping confirmation email for %s", email)
		return
	}

	token, err := uc.authService.IssueConfirmationToken(email)
	if err != nil {
		log.Printf("Failed to issue confirmation token for %s: %v", email, err)
		return
	}

	task := tasks.RegistrationEmailTask{
		Email:           email,
		ConfirmationURL: uc.baseURL + "/confirm/" + token,
	}
	if _, err := uc.taskClient.Add(task).Save(); err != nil {
		log.Printf("Failed to enqueue registration email for %s: %v", email, err)
	}
}

// Token authenticates a user and returns a bearer access token.
func (uc *UsersController) Token(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := uc.authService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if auth.IsAuthFailure(err) {
			uc.auditor.Record("login", req.Email, audit.OutcomeFailure, err.Error())
			respondUnauthorized(c, err)
			return
		}
		respondInternalError(c, err, "authenticate user")
		return
	}

	token, err := uc.authService.IssueAccessToken(user.Email)
	if err != nil {
		respondInternalError(c, err, "issue access token")
		return
	}

	uc.auditor.Record("login", user.Email, audit.OutcomeSuccess, "")
	c.IndentedJSON(http.StatusCreated, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}

// Confirm marks the user identified by the confirmation token as confirmed.
func (uc *UsersController) Confirm(c *gin.Context) {
	token := c.Param("token")

	if err := uc.authService.Confirm(c.Request.Context(), token); err != nil {
		if auth.IsAuthFailure(err) {
			uc.auditor.Record("confirm", "", audit.OutcomeFailure, err.Error())
			respondUnauthorized(c, err)
			return
		}
		respondInternalError(c, err, "confirm user")
		return
	}

	uc.auditor.Record("confirm", "", audit.OutcomeSuccess, "")
	c.IndentedJSON(http.StatusOK, gin.H{"detail": "User confirmed"})
}
