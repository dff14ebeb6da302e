package handlers

import (
	"net/http"
	"strings"
	"time"

	"cityscope-backend/internal/models"
	"cityscope-backend/internal/repositories"
	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AuthHandler exchanges an external-IdP ID token for a session token. The
// engagement core never manages credentials itself; it only consumes the
// identity resolved here.
type AuthHandler struct {
	userRepository repositories.UserRepository
	firebaseAuth   *auth.Client
	jwtSecret      string
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(userRepo repositories.UserRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		userRepository: userRepo,
		firebaseAuth:   firebaseAuthClient,
		jwtSecret:      jwtSecret,
	}
}

// RegisterAuthRoutes registers the unprotected login route
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/firebase-login", h.FirebaseLogin)
}

// RegisterProtectedAuthRoutes registers identity routes behind the session middleware
func (h *AuthHandler) RegisterProtectedAuthRoutes(g *echo.Group) {
	g.GET("/auth/me", h.Me)
}

// FirebaseLogin verifies the IdP ID token, creates the application user on
// first login, and returns a session JWT for the API.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	var req models.FirebaseLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.firebaseAuth.VerifyIDToken(c.Request().Context(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
	}

	user, err := h.userRepository.GetUserByFirebaseUID(token.UID)
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		user, err = h.createUserFromToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	sessionToken, err := h.generateJWT(user)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate session token")
	}

	return c.JSON(http.StatusOK, echo.Map{"token": sessionToken, "user": user})
}

// Me returns the authenticated user's account.
func (h *AuthHandler) Me(c echo.Context) error {
	actor, err := requireActor(c, "")
	if err != nil {
		return err
	}

	user, err := h.userRepository.GetUserByUsername(actor)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Authenticated user not found in database")
	}

	return c.JSON(http.StatusOK, user)
}

// createUserFromToken bootstraps an account on first login. The username
// comes from the IdP profile, falling back to the email's local part and
// finally the IdP subject.
func (h *AuthHandler) createUserFromToken(token *auth.Token) (*models.User, error) {
	email, _ := token.Claims["email"].(string)
	username, _ := token.Claims["name"].(string)
	if username == "" && email != "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	if username == "" {
		username = token.UID
	}

	user := &models.User{
		Username:    username,
		Email:       email,
		Role:        "USER",
		FirebaseUID: token.UID,
	}
	if err := h.userRepository.CreateUser(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (h *AuthHandler) generateJWT(user *models.User) (string, error) {
	claims := &models.JwtCustomClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(72 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
