package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/response"
	"github.com/komunitech/komunitech/pkg/utils"
)

// Auth handles authorization middleware
type Auth struct {
	repos *repository.Repos
}

func NewAuth(repos *repository.Repos) *Auth {
	return &Auth{repos: repos}
}

// Admin checks the stored role rather than the token flag, so a demoted or
// deactivated admin loses access before the token expires.
func (a *Auth) Admin() gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, err := utils.GetUserIDFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid token claims"})
			return
		}

		u, err := a.repos.User.GetUserByID(uid)
		if err != nil {
			if repository.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "user no longer exists"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
			return
		}
		if !u.IsActive || !u.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "admin only"})
			return
		}
		c.Next()
	}
}

// CurrentUser reloads the token's user and replaces the role carried in
// the claims with the stored one. Deleted users get 401, inactive ones 403.
func (a *Auth) CurrentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid token claims"})
			return
		}

		u, err := a.repos.User.GetUserByID(claims.UserID)
		if err != nil {
			if repository.IsNotFound(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "user no longer exists"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{Error: "internal error"})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "account is inactive"})
			return
		}

		current := *claims
		current.IsAdmin = u.IsAdmin()
		c.Set("claims", &current)
		c.Next()
	}
}

// UserOrAdmin lets through the user named by the :id param or an admin.
func (a *Auth) UserOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := utils.GetClaims(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.ErrorResponse{Error: "invalid token claims"})
			return
		}
		target, err := utils.ParseIDParam(c, "id")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
			return
		}
		if claims.UserID == target || claims.IsAdmin {
			c.Next()
			return
		}
		c.AbortWithStatusJSON(http.StatusForbidden, response.ErrorResponse{Error: "forbidden"})
	}
}
