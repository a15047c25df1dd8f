// permission_service.go
//
// jobtrack - job application tracking data service
//

package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/types"
	"gorm.io/gorm"
)

// Grant is a parsed elevated-permission token of the shape
// "<action>:<entity>:<own|any>".
type Grant struct {
	Action string
	Entity string
	Access string
}

// ParseGrant parses a permission token. Tokens with the wrong shape or an
// access part other than own/any are rejected.
func ParseGrant(token string) (Grant, error) {
	parts := strings.Split(token, ":")
	if len(parts) != 3 {
		return Grant{}, fmt.Errorf("malformed permission token: %q", token)
	}
	g := Grant{Action: parts[0], Entity: parts[1], Access: parts[2]}
	if g.Action == "" || g.Entity == "" {
		return Grant{}, fmt.Errorf("malformed permission token: %q", token)
	}
	if g.Access != "own" && g.Access != "any" {
		return Grant{}, fmt.Errorf("invalid access in permission token: %q", token)
	}
	return g, nil
}

// UserGrants loads the user's permission tokens. A user with no permission
// row simply has no grants. The grants column accepts either a JSON array or
// a single JSON string.
func UserGrants(db *gorm.DB, userID uint64) ([]string, error) {
	var perm models.UserPermission
	err := db.Where("user_id = ?", userID).First(&perm).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(perm.Grants.JSON) == 0 {
		return nil, nil
	}

	var grants types.FlexList[string]
	if err := json.Unmarshal(perm.Grants.JSON, &grants); err != nil {
		return nil, fmt.Errorf("invalid grants for user %d: %w", userID, err)
	}
	return grants.Slice(), nil
}

// HasGrant reports whether the user holds the exact permission token.
func HasGrant(db *gorm.DB, userID uint64, token string) (bool, error) {
	grants, err := UserGrants(db, userID)
	if err != nil {
		return false, err
	}
	for _, g := range grants {
		if g == token {
			return true, nil
		}
	}
	return false, nil
}

// CanMutate decides whether the acting user may perform action on an entity:
// owners are allowed outright, non-owners need the ":any" grant.
func CanMutate(db *gorm.DB, userID uint64, action, entity string, isOwner bool) (bool, error) {
	if isOwner {
		return true, nil
	}
	return HasGrant(db, userID, fmt.Sprintf("%s:%s:any", action, entity))
}

// RequirePermission is CanMutate with a Forbidden error on deny.
func RequirePermission(db *gorm.DB, userID uint64, action, entity string, isOwner bool) error {
	allowed, err := CanMutate(db, userID, action, entity, isOwner)
	if err != nil {
		return err
	}
	if !allowed {
		return types.ErrForbidden
	}
	return nil
}

// SetUserGrants replaces the user's grant tokens. Tokens are validated before
// the row is written.
func SetUserGrants(db *gorm.DB, userID uint64, tokens []string) error {
	for _, token := range tokens {
		if _, err := ParseGrant(token); err != nil {
			return err
		}
	}

	raw, err := json.Marshal(tokens)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var perm models.UserPermission
		err := tx.Where("user_id = ?", userID).First(&perm).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			perm = models.UserPermission{UserID: userID}
		} else if err != nil {
			return err
		}
		perm.Grants.JSON = raw
		return tx.Save(&perm).Error
	})
}
