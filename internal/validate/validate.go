package validate

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	nameRe     = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ' -]{2,30}$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9][0-9\s()-]{8,}$`)
)

// Registration holds the raw form values of a registration attempt.
type Registration struct {
	Username     string
	FirstName    string
	LastName     string
	PhoneNumber  string
	Email        string
	Password     string
	Confirmation string
}

// Check runs the registration rules in fixed order and returns the message
// for the first rule that fails, or "" when every rule passes. Presence of
// all fields is checked before any format rule.
func (r Registration) Check() string {
	switch {
	case r.Username == "":
		return "Username is required."
	case r.FirstName == "":
		return "First name is required."
	case r.LastName == "":
		return "Last name is required."
	case r.PhoneNumber == "":
		return "Phone number is required."
	case r.Email == "":
		return "E-mail is required."
	case r.Password == "":
		return "Password is required."
	case r.Confirmation == "":
		return "Password confirmation is required."
	}

	switch {
	case !usernameRe.MatchString(r.Username):
		return "Username must be 3-20 characters, letters, numbers and underscores only."
	case !nameRe.MatchString(r.FirstName) || !nameRe.MatchString(r.LastName):
		return "Names must be 2-30 letters and may include accents, hyphens or apostrophes."
	case !phoneRe.MatchString(r.PhoneNumber):
		return "Phone number must be valid."
	case !validPassword(r.Password):
		return "Password must be 6-30 characters long and include at least one letter and one digit."
	case r.Password != r.Confirmation:
		return "Password and confirmation must match."
	case !ValidEmail(r.Email):
		return "E-mail must be valid."
	}

	return ""
}

func validPassword(pw string) bool {
	n := utf8.RuneCountInString(pw)
	if n < 6 || n > 30 {
		return false
	}

	var letter, digit bool
	for _, c := range pw {
		switch {
		case c >= '0' && c <= '9':
			digit = true
		case (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z'):
			letter = true
		}
	}

	return letter && digit
}

// ValidEmail reports whether addr is a structurally valid bare address
// (local-part@domain with at least two well-formed domain labels). It does
// not check deliverability.
func ValidEmail(addr string) bool {
	parsed, err := mail.ParseAddress(addr)
	if err != nil || parsed.Address != addr {
		return false
	}

	at := strings.LastIndex(addr, "@")
	domain := addr[at+1:]
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}

	for _, label := range labels {
		if !validLabel(label) {
			return false
		}
	}

	return true
}

func validLabel(label string) bool {
	if len(label) == 0 || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		ok := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
		if !ok {
			return false
		}
	}
	return true
}
