package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jobwell/jobtrack/internal/models"
	"github.com/jobwell/jobtrack/internal/types"
	"gorm.io/gorm"
)

// EnsureUser resolves the local user row mirroring an Authorizer account,
// creating it on first sight. Email is the natural key; the username defaults
// to the email's local part when Authorizer has none, falling back to the
// full email when another account already holds that username.
func EnsureUser(db *gorm.DB, email, username string) (*models.User, error) {
	if email == "" {
		return nil, errors.New("email is required")
	}
	if username == "" {
		username = email
		if at := strings.IndexByte(email, '@'); at > 0 {
			username = email[:at]
		}
	}

	for _, candidate := range []string{username, email} {
		var user models.User
		err := db.Where("email = ?", email).
			FirstOrCreate(&user, models.User{Email: email, Username: candidate}).Error
		if err == nil {
			return &user, nil
		}
		if !isDuplicateKey(err) {
			return nil, err
		}

		// Either a concurrent first sight on this email, or the candidate
		// username belongs to a different account.
		lookupErr := db.Where("email = ?", email).First(&user).Error
		if lookupErr == nil {
			return &user, nil
		}
		if !errors.Is(lookupErr, gorm.ErrRecordNotFound) {
			return nil, lookupErr
		}
	}

	// The email is unique, so the fallback can only lose a concurrent race
	// that the lookup above would have found.
	return nil, fmt.Errorf("could not allocate a username for %s", email)
}

// UserByID retrieves a user by primary key.
func UserByID(db *gorm.DB, userID uint64) (*models.User, error) {
	var user models.User
	err := db.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
