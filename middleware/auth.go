package middleware

import (
	"strings"

	"hotelbooking/errors"
	"hotelbooking/response"
	"hotelbooking/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware xử lý authentication, token do hệ thống auth bên ngoài cấp
func AuthMiddleware(roles ...int) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		userID, userRole, err := services.GetUserIDFromToken(tokenString)
		if err != nil {
			response.Unauthorized(c)
			c.Abort()
			return
		}

		// Kiểm tra role nếu có yêu cầu
		if len(roles) > 0 {
			hasRole := false
			for _, role := range roles {
				if role == userRole {
					hasRole = true
					break
				}
			}
			if !hasRole {
				response.Forbidden(c)
				c.Abort()
				return
			}
		}

		// Lưu thông tin user vào context
		c.Set("userID", userID)
		c.Set("userRole", userRole)
		c.Next()
	}
}

// ErrorHandler xử lý lỗi
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			if appErr := errors.GetAppError(err); appErr != nil {
				response.Error(c, 0, appErr.Message)
				return
			}

			response.ServerError(c)
		}
	}
}
