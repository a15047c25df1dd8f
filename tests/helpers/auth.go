package helpers

import (
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/authorizerdev/authorizer-go"
)

func randInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GeneratePassword returns a 12 character password satisfying the Authorizer
// strength rules (upper, lower, digit, special).
func GeneratePassword() string {
	classes := []string{
		"ABCDEFGHIJKLMNOPQRSTUVWXYZ",
		"abcdefghijklmnopqrstuvwxyz",
		"0123456789",
		"!@#$%^&*",
	}

	var all string
	for _, c := range classes {
		all += c
	}

	password := make([]byte, 12)
	for i, c := range classes {
		password[i] = c[randInt(len(c))]
	}
	for i := len(classes); i < len(password); i++ {
		password[i] = all[randInt(len(all))]
	}

	// Shuffle so the class characters are not positional
	for i := range password {
		j := randInt(len(password))
		password[i], password[j] = password[j], password[i]
	}

	return string(password)
}

// AcquireAccount signs up (or reuses) an Authorizer account and logs in,
// returning the access token for the session.
func AcquireAccount(t *testing.T, authzURL, email, password string, roles []string) string {
	client, err := authorizer.NewAuthorizerClient("test_client", authzURL, "", nil)
	if err != nil {
		t.Fatalf("Failed to create authorizer client: %v", err)
	}

	rolesPtrs := make([]*string, len(roles))
	for i := range roles {
		rolesPtrs[i] = &roles[i]
	}

	if _, err = client.SignUp(&authorizer.SignUpInput{
		Email:           &email,
		Password:        password,
		ConfirmPassword: password,
		Roles:           rolesPtrs,
	}); err != nil {
		// Existing account from a prior subtest is fine, login decides
		t.Logf("Signup failed (may already exist): %v", err)
	}

	res, err := client.Login(&authorizer.LoginInput{
		Email:    &email,
		Password: password,
	})
	if err != nil {
		t.Fatalf("Login failed for %s: %v", email, err)
	}
	if res.AccessToken == nil {
		t.Fatalf("Login for %s returned no access token", email)
	}

	return *res.AccessToken
}
