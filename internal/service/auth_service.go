// internal/service/auth_service.go
package service

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	appErrors "github.com/unclebandit/crm-backend/internal/errors"
	"github.com/unclebandit/crm-backend/internal/mailer"
	"github.com/unclebandit/crm-backend/internal/model"
	"github.com/unclebandit/crm-backend/internal/repository"
)

// TokenIssuer issues login tokens; satisfied by token.Issuer.
type TokenIssuer interface {
	Issue(u *model.User) (string, error)
}

type AuthService struct {
	UserRepo repository.UserRepositoryInterface
	Tokens   TokenIssuer
	Mailer   mailer.Mailer
}

// RegisterRequest is the self-registration payload.
type RegisterRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	Email      string `json:"email"`
	Age        *int   `json:"age,omitempty"`
	NationalID string `json:"national_id,omitempty"`
	Address    string `json:"address,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

// Register creates a PENDING customer account and sends a confirmation
// email best-effort.
func (s *AuthService) Register(req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Password == "" {
		return nil, appErrors.NewValidation("username and password are required")
	}

	existing, err := s.UserRepo.GetByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.NewValidation("username already taken: " + req.Username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Email:        req.Email,
		Age:          req.Age,
		NationalID:   req.NationalID,
		Address:      req.Address,
		Phone:        req.Phone,
		Role:         model.RoleCustomer,
		Status:       model.UserPending, // new users wait for admin approval
		JoinDate:     time.Now(),
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.Mailer.SendPlain(user.Email, "Registration Confirmation", mailer.RegistrationConfirmation); err != nil {
		log.Println("⚠️ failed to send registration email:", err)
	}
	return user, nil
}

// Login validates credentials and the requested role, and issues a
// bearer token. A PENDING account cannot log in.
func (s *AuthService) Login(username, password, role string) (string, int, error) {
	user, err := s.UserRepo.GetByUsername(username)
	if err != nil {
		return "", 0, err
	}
	if user == nil {
		return "", 0, appErrors.NewUnauthorized("Invalid username or password")
	}
	// Account state is checked before credentials: a pending user is
	// told to wait for approval regardless of the password given.
	if user.Status != model.UserActive {
		return "", 0, appErrors.NewUnauthorized("Your account is not yet active. Please wait for admin approval.")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", 0, appErrors.NewUnauthorized("Invalid username or password")
	}

	requestedRole, err := model.ParseRole(role)
	if err != nil {
		return "", 0, appErrors.NewUnauthorized("Invalid credentials for the selected role.")
	}
	if user.Role != requestedRole {
		return "", 0, appErrors.NewUnauthorized("Invalid credentials for the selected role.")
	}

	tokenString, err := s.Tokens.Issue(user)
	if err != nil {
		return "", 0, err
	}
	return tokenString, user.ID, nil
}
