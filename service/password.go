package service

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"expo/repository"

	"github.com/pmezard/go-difflib/difflib"
)

const (
	minPasswordLength = 8
	maxSimilarity     = 0.7
)

// commonPasswords most frequently leaked passwords, lower case
var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		123456 123456789 12345678 password qwerty123 qwerty1 111111 12345 secret 123123
		1234567890 1234567 000000 qwerty abc123 password1 iloveyou 11111111 dragon monkey
		123321 654321 666666 121212 aaaaaa 1q2w3e4r 1qaz2wsx qwertyuiop superman letmein
		sunshine princess football baseball welcome shadow master admin admin123 login
		passw0rd trustno1 michael jennifer hunter2 starwars whatever freedom computer
		internet charlie donald batman qazwsx zaq12wsx asdfghjkl zxcvbnm 987654321
		password123 welcome1 changeme default expenses`) {
		commonPasswords[p] = struct{}{}
	}
}

// ValidatePassword applies the account password policy: minimum length, not
// entirely numeric, not a common password, not too similar to the username.
// All violations are reported together.
func ValidatePassword(password, username string) error {
	var problems []string

	if utf8.RuneCountInString(password) < minPasswordLength {
		problems = append(problems, "This password is too short. It must contain at least 8 characters.")
	}
	if isNumeric(password) {
		problems = append(problems, "This password is entirely numeric.")
	}
	if _, ok := commonPasswords[strings.ToLower(strings.TrimSpace(password))]; ok {
		problems = append(problems, "This password is too common.")
	}
	if tooSimilar(password, username) {
		problems = append(problems, "The password is too similar to the username.")
	}

	if len(problems) == 0 {
		return nil
	}
	return &repository.ValidationError{Field: "password1", Message: strings.Join(problems, " ")}
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// tooSimilar compares the password with the username and each of its parts
func tooSimilar(password, username string) bool {
	password = strings.ToLower(password)
	username = strings.ToLower(strings.TrimSpace(username))
	if password == "" || username == "" {
		return false
	}

	candidates := append([]string{username}, strings.FieldsFunc(username, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})...)
	for _, c := range candidates {
		if similarity(password, c) >= maxSimilarity {
			return true
		}
	}
	return false
}

// similarity difflib ratio in [0, 1], matched rune by rune
func similarity(a, b string) float64 {
	return difflib.NewMatcher(runeStrings(a), runeStrings(b)).Ratio()
}

func runeStrings(s string) []string {
	out := make([]string, 0, utf8.RuneCountInString(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
