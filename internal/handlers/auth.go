package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Adetops/edu-progress-tracker/internal/cache"
	"github.com/Adetops/edu-progress-tracker/internal/models"
	"github.com/Adetops/edu-progress-tracker/internal/repositories"
	"github.com/Adetops/edu-progress-tracker/internal/services"
)

const userCacheTTL = 5 * time.Minute

// AuthMiddleware validates bearer tokens and loads the calling user
type AuthMiddleware struct {
	userService services.UserService
	userRepo    repositories.UserRepository
	cache       *cache.CacheManager
}

func NewAuthMiddleware(userService services.UserService, userRepo repositories.UserRepository, cm *cache.CacheManager) *AuthMiddleware {
	return &AuthMiddleware{
		userService: userService,
		userRepo:    userRepo,
		cache:       cm,
	}
}

// Authenticate validates the Authorization header and sets user info in context
func (am *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "authorization header missing",
			})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "invalid authorization header format",
			})
			c.Abort()
			return
		}

		claims, err := am.userService.ParseToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": fmt.Sprintf("invalid token: %v", err),
			})
			c.Abort()
			return
		}

		user, err := am.loadUser(c.Request.Context(), claims.Subject)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "unauthorized",
				"message": "user no longer exists",
			})
			c.Abort()
			return
		}

		if !user.IsActive {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "account is disabled",
			})
			c.Abort()
			return
		}

		c.Set("user_id", user.ID)
		c.Set("user", user)
		c.Set("user_role", user.Role)
		c.Set("user_email", user.Email)

		c.Next()
	}
}

// loadUser fetches the account, preferring the cache over the database
func (am *AuthMiddleware) loadUser(ctx context.Context, userID string) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", userID)

	if am.cache != nil {
		var cached models.User
		if err := am.cache.User.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := am.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if am.cache != nil {
		// Cache failures never block authentication.
		_ = am.cache.User.Set(ctx, cacheKey, user, userCacheTTL)
	}

	return user, nil
}

// RequireRole restricts a route to the listed roles; admin always passes
func (am *AuthMiddleware) RequireRole(requiredRoles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := c.Get("user_role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "user role not found in context",
			})
			c.Abort()
			return
		}

		role, ok := userRole.(models.UserRole)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": "invalid user role format",
			})
			c.Abort()
			return
		}

		hasRequiredRole := false
		for _, requiredRole := range requiredRoles {
			if role == requiredRole || role == models.RoleAdmin {
				hasRequiredRole = true
				break
			}
		}

		if !hasRequiredRole {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "forbidden",
				"message": fmt.Sprintf("insufficient permissions, required role: %v", requiredRoles),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserFromContext extracts user from Gin context
func GetUserFromContext(c *gin.Context) (*models.User, error) {
	user, exists := c.Get("user")
	if !exists {
		return nil, errors.New("user not found in context")
	}

	userModel, ok := user.(*models.User)
	if !ok {
		return nil, errors.New("invalid user type in context")
	}

	return userModel, nil
}

// GetUserIDFromContext extracts user ID from Gin context
func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("user_id")
	if !exists {
		return "", errors.New("user ID not found in context")
	}

	id, ok := userID.(string)
	if !ok {
		return "", errors.New("invalid user ID type in context")
	}

	return id, nil
}

// CanAccessStudent reports whether the caller may read the given student's
// data. Teachers and admins see everyone; students and parents only their
// linked student record.
func CanAccessStudent(user *models.User, studentID string) bool {
	if user.Role.CanViewAllStudents() {
		return true
	}
	return user.StudentID != nil && *user.StudentID == studentID
}
