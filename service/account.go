package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"expo/models"
	"expo/repository"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials unknown username or wrong password
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrAccountLocked the account exists but may not log in
	ErrAccountLocked = errors.New("account is locked")

	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	validate        = validator.New()
)

const maxUsernameLength = 50

// SignupInput account creation form
type SignupInput struct {
	Username  string
	Email     string
	Password1 string
	Password2 string
}

// AccountService signup and login
type AccountService struct {
	users *repository.UserRepository
	cost  int
}

// NewAccountService creates an account service
func NewAccountService(users *repository.UserRepository) *AccountService {
	return &AccountService{users: users, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost
func (s *AccountService) WithCost(cost int) *AccountService {
	return &AccountService{users: s.users, cost: cost}
}

// Register validates in and creates an active account. Checks run in order:
// password confirmation, username collision, password policy.
func (s *AccountService) Register(ctx context.Context, in SignupInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, &repository.ValidationError{Field: "username", Message: "Username is required."}
	}
	if utf8.RuneCountInString(username) > maxUsernameLength || !usernamePattern.MatchString(username) {
		return nil, &repository.ValidationError{
			Field:   "username",
			Message: "Enter a valid username of at most 50 letters, digits and @/./+/-/_ characters.",
		}
	}

	email := strings.TrimSpace(in.Email)
	if email != "" {
		if err := validate.Var(email, "email"); err != nil {
			return nil, &repository.ValidationError{Field: "email", Message: "Enter a valid email address."}
		}
	}

	if in.Password1 != in.Password2 {
		return nil, &repository.ValidationError{Field: "password2", Message: "Passwords do not match!"}
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, usernameTaken()
	}

	if err := ValidatePassword(in.Password1, username); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hash),
		Email:    email,
		Status:   models.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// lost a race against a concurrent signup
		if taken, _ := s.users.UsernameExists(ctx, username); taken {
			return nil, usernameTaken()
		}
		return nil, err
	}
	return user, nil
}

// Authenticate returns the user when username and password match
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.CanLogin() {
		return nil, ErrAccountLocked
	}
	return user, nil
}

func usernameTaken() error {
	return &repository.ValidationError{Field: "username", Message: "Username already exists!"}
}
