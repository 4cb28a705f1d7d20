package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shegacafe/cafe-app/models"
	"github.com/shegacafe/cafe-app/utils"
	"gorm.io/gorm"
)

// ResolveCaller maps a bearer token to the user behind it. It never fails:
// a missing, invalid, revoked or orphaned token is simply Anonymous.
// The role comes from the users table so a demoted user loses access
// without waiting for the token to expire.
func ResolveCaller(ctx context.Context, db *gorm.DB, token string) models.Caller {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Anonymous
	}

	claims, err := utils.ParseToken(token)
	if err != nil {
		utils.InfoLogger.WithError(err).Debug("ignoring unusable session token")
		return models.Anonymous
	}

	var user models.User
	if err := db.WithContext(ctx).First(&user, claims.UserID).Error; err != nil {
		utils.InfoLogger.WithError(err).WithField("user_id", claims.UserID).Debug("session user lookup failed")
		return models.Anonymous
	}

	role, ok := models.ParseRole(string(user.Role))
	if !ok {
		utils.ErrorLogger.WithField("user_id", user.ID).Errorf("user has unknown role %q", user.Role)
		return models.Anonymous
	}

	return models.Caller{UserID: user.ID, Name: user.Name, Role: role}
}

// RequireRole returns ErrUnauthorized for anonymous callers and
// ErrForbidden when the caller's role is not listed.
func RequireRole(caller models.Caller, allowed ...models.Role) error {
	if caller.IsAnonymous() {
		return ErrUnauthorized
	}
	for _, r := range allowed {
		if caller.Role == r {
			return nil
		}
	}
	return fmt.Errorf("%w: role %s", ErrForbidden, caller.Role)
}
