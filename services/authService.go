package services

import (
	"PharmaDesk/models"
	"PharmaDesk/utils"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Credential is one login entry in the session directory, built from the
// loaded collections at startup.
type Credential struct {
	UserID       int
	Role         models.Role
	Username     string
	PasswordHash string
}

// Session is the explicit authentication-context value handed to the menu
// layer on a successful login. It replaces process-wide attempt maps: all
// lockout state lives inside the AuthService and dies with it.
type Session struct {
	ID       uuid.UUID
	UserID   int
	Role     models.Role
	Token    string
	IssuedAt time.Time
}

// AuthService verifies credentials and throttles repeated failures per
// username with a token-bucket limiter spanning the lockout window.
type AuthService struct {
	log         zerolog.Logger
	key         []byte
	creds       map[string]Credential
	mu          sync.Mutex
	limiters    map[string]*rate.Limiter
	maxAttempts int
	window      time.Duration
}

func NewAuthService(log zerolog.Logger, key []byte, creds []Credential, maxAttempts int, window time.Duration) *AuthService {
	index := make(map[string]Credential, len(creds))
	for _, c := range creds {
		index[c.Username] = c
	}
	return &AuthService{
		log:         log,
		key:         key,
		creds:       index,
		limiters:    make(map[string]*rate.Limiter),
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// BuildDirectory flattens the loaded collections into login credentials.
func BuildDirectory(patients []*models.Patient, doctors []*models.Doctor, pharmacists []*models.Pharmacist, admins []models.Admin) []Credential {
	var creds []Credential
	for _, p := range patients {
		creds = append(creds, Credential{UserID: p.ID, Role: models.RolePatient, Username: p.Username, PasswordHash: p.PasswordHash})
	}
	for _, d := range doctors {
		creds = append(creds, Credential{UserID: d.ID, Role: models.RoleDoctor, Username: d.Username, PasswordHash: d.PasswordHash})
	}
	for _, p := range pharmacists {
		creds = append(creds, Credential{UserID: p.ID, Role: models.RolePharmacist, Username: p.Username, PasswordHash: p.PasswordHash})
	}
	for _, a := range admins {
		creds = append(creds, Credential{UserID: a.ID, Role: models.RoleAdmin, Username: a.Username, PasswordHash: a.PasswordHash})
	}
	return creds
}

// Login checks the username's attempt budget, verifies the password and
// mints a session with a fresh PASETO token. A throttled username fails
// with ErrLockedOut before the password is even looked at.
func (s *AuthService) Login(username, password string) (*Session, error) {
	if !s.limiter(username).Allow() {
		s.log.Warn().Str("username", username).Msg("Login throttled")
		return nil, ErrLockedOut
	}
	cred, ok := s.creds[username]
	if !ok || !utils.CheckPassword(cred.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	token, err := utils.GenerateSessionToken(s.key, cred.UserID, string(cred.Role), utils.SessionTokenExpiry)
	if err != nil {
		return nil, err
	}
	s.clearLimiter(username)
	return &Session{
		ID:       uuid.New(),
		UserID:   cred.UserID,
		Role:     cred.Role,
		Token:    token,
		IssuedAt: time.Now(),
	}, nil
}

// Validate checks a session token and optionally narrows by role.
func (s *AuthService) Validate(token string, requiredRoles ...models.Role) (*utils.TokenClaims, error) {
	roles := make([]string, len(requiredRoles))
	for i, r := range requiredRoles {
		roles[i] = string(r)
	}
	claims, err := utils.ValidateSessionToken(s.key, token, roles...)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// limiter returns the per-username attempt budget: maxAttempts tokens
// refilling over the lockout window.
func (s *AuthService) limiter(username string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.limiters[username]
	if !ok {
		l = rate.NewLimiter(rate.Every(s.window/time.Duration(s.maxAttempts)), s.maxAttempts)
		s.limiters[username] = l
	}
	return l
}

func (s *AuthService) clearLimiter(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.limiters, username)
}
