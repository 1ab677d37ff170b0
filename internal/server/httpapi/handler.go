package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/dmitrijs2005/authgate/internal/common"
)

type signUpRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (s *Server) signUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	s.logger.Info(c.Request.Context(), "Registration request", "username", req.Username)

	token, err := s.users.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		s.writeSignUpError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered", "username", req.Username)
	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": bindingErrors(err)})
		return
	}

	token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		if errors.Is(err, common.ErrorValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "email", Message: err.Error()}}})
			return
		}
		s.logger.Error(c.Request.Context(), "login failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (s *Server) me(c *gin.Context) {
	userID := c.GetString(ContextUserIDKey)

	user, err := s.users.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		s.logger.Error(c.Request.Context(), "profile lookup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.UserName,
		"email":    user.Email,
	})
}

// writeSignUpError maps service errors to responses. Conflicts stay generic
// on the wire so callers cannot probe which field collided; the detail is
// logged server-side only.
func (s *Server) writeSignUpError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorAlreadyExists):
		s.logger.Warn(c.Request.Context(), "signup conflict", "error", err.Error())
		c.JSON(http.StatusConflict, gin.H{"error": "cannot create account"})
	case errors.Is(err, common.ErrorValidation):
		c.JSON(http.StatusBadRequest, gin.H{"errors": []fieldError{{Field: "", Message: err.Error()}}})
	default:
		s.logger.Error(c.Request.Context(), "signup failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// bindingErrors converts gin binding failures into field-level messages.
func bindingErrors(err error) []fieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []fieldError{{Field: "", Message: "invalid request body"}}
	}

	out := make([]fieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Please enter a valid " + fe.Field()
	case "email":
		return "Please enter a valid email"
	case "min":
		return "Please enter a valid password"
	default:
		return "Invalid value"
	}
}
