package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Valid", "Secure12!", false},
		{"Exactly Min Length", "Abcde1@x", false},
		{"Exactly Max Length", "A" + strings.Repeat("b", 61) + "1!", false},
		{"Too Short", "Ab1!abc", true},
		{"Too Long", "A" + strings.Repeat("b", 62) + "1!", true},
		{"No Upper", "secure12!", true},
		{"No Lower", "SECURE12!", true},
		{"No Digit", "SecurePass!", true},
		{"No Special", "SecurePass12", true},
		{"Disallowed Special", "Secure12#x", true},
		{"Space Not Allowed", "Secure 12!", true},
		{"Unicode Not Allowed", "Ångström12!", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUsername(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"Valid", "gator_123", false},
		{"Min Length", "abcd", false},
		{"Max Length", strings.Repeat("a", 20), false},
		{"Too Short", "abc", true},
		{"Too Long", strings.Repeat("a", 21), true},
		{"Hyphen", "gator-fan", true},
		{"At Sign", "user@123", true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := ValidateUsername(tt.username)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	t.Parallel()
	tests := []struct {
		email   string
		domain  string
		wantErr bool
	}{
		{"student@sfsu.edu", "sfsu.edu", false},
		{"first.last-1@sfsu.edu", "sfsu.edu", false},
		{"Student@SFSU.edu", "sfsu.edu", false},
		{"student@gmail.com", "sfsu.edu", true},
		{"student@mail.sfsu.edu", "sfsu.edu", true},
		{"student@sfsuXedu", "sfsu.edu", true},
		{"student+tag@sfsu.edu", "sfsu.edu", true},
		{"student@example.org", "example.org", false},
	}
	for _, tt := range tests {
		err := ValidateEmail(tt.email, tt.domain)
		if tt.wantErr {
			assert.Error(t, err, tt.email)
		} else {
			assert.NoError(t, err, tt.email)
		}
	}
}

func TestValidateName(t *testing.T) {
	t.Parallel()
	assert.NoError(t, ValidateName("Mary-Jane"))
	assert.NoError(t, ValidateName("O'Neil"))
	assert.NoError(t, ValidateName("Van Der Berg"))
	assert.Error(t, ValidateName("J"))
	assert.Error(t, ValidateName("R2D2"))
	assert.Error(t, ValidateName(strings.Repeat("a", 31)))
}

func TestRegistration_Validate(t *testing.T) {
	t.Parallel()

	valid := Registration{
		Username:  "gator_fan",
		Email:     "gator@sfsu.edu",
		Password:  "Secure12!",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	assert.Nil(t, valid.Validate("sfsu.edu"))

	bad := Registration{
		Username:  "x",
		Email:     "gator@gmail.com",
		Password:  "weak",
		FirstName: "A",
		LastName:  "L0vel4ce",
	}
	errs := bad.Validate("sfsu.edu")
	assert.Len(t, errs, 5)
	for _, field := range []string{"username", "email", "password", "first_name", "last_name"} {
		assert.Contains(t, errs, field)
	}

	onlyEmail := valid
	onlyEmail.Email = "gator@berkeley.edu"
	errs = onlyEmail.Validate("sfsu.edu")
	assert.Equal(t, []string{"email"}, keys(errs))
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
