package utils

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/pkg/types"
)

var ErrNoClaims = errors.New("user claims not found in context")

func GetClaims(c *gin.Context) (*types.Claims, error) {
	claimsVal, exists := c.Get("claims")
	if !exists {
		return nil, ErrNoClaims
	}

	claims, ok := claimsVal.(*types.Claims)
	if !ok {
		return nil, errors.New("invalid user claims type")
	}
	return claims, nil
}

var GetUserIDFromContext = func(c *gin.Context) (uint, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
