// Package validation provides input validation for account registration.
package validation

import (
	"errors"
	"regexp"
	"strings"
)

const passwordSpecials = "@$!%*?&"

var (
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_]{4,20}$`)
	nameRegex     = regexp.MustCompile(`^[a-zA-Z\s'-]{2,30}$`)
	passwordChars = regexp.MustCompile(`^[A-Za-z\d@$!%*?&]{8,64}$`)
)

// ValidateUsername requires 4-20 letters, digits or underscores.
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return errors.New("Username must be 4-20 characters and contain only letters, numbers, and underscores")
	}
	return nil
}

// ValidateEmail requires an address on exactly the given domain.
func ValidateEmail(email, domain string) error {
	pattern := `^[a-zA-Z0-9._-]+@` + regexp.QuoteMeta(strings.ToLower(domain)) + `$`
	if !regexp.MustCompile(pattern).MatchString(strings.ToLower(email)) {
		return errors.New("Email must be a valid @" + domain + " address")
	}
	return nil
}

// ValidatePassword requires 8-64 characters from the allowed set with at
// least one upper case letter, lower case letter, digit and special character.
func ValidatePassword(password string) error {
	if !passwordChars.MatchString(password) {
		return errors.New("Password must be 8-64 characters using letters, numbers, and @$!%*?&")
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return errors.New("Password must include an uppercase letter, a lowercase letter, a number, and a special character (@$!%*?&)")
	}
	return nil
}

// ValidateName checks a first or last name.
func ValidateName(name string) error {
	if !nameRegex.MatchString(name) {
		return errors.New("must be 2-30 letters, spaces, apostrophes, or hyphens")
	}
	return nil
}

// Registration is the untrusted sign-up payload.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Validate returns a field-keyed map of problems, or nil when r is acceptable.
func (r Registration) Validate(domain string) map[string]string {
	errs := map[string]string{}
	if err := ValidateUsername(r.Username); err != nil {
		errs["username"] = err.Error()
	}
	if err := ValidateEmail(r.Email, domain); err != nil {
		errs["email"] = err.Error()
	}
	if err := ValidatePassword(r.Password); err != nil {
		errs["password"] = err.Error()
	}
	if err := ValidateName(r.FirstName); err != nil {
		errs["first_name"] = "First name " + err.Error()
	}
	if err := ValidateName(r.LastName); err != nil {
		errs["last_name"] = "Last name " + err.Error()
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
