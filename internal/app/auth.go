package app

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"staywise/internal/domain"
)

// SignupInput is the validated registration request.
type SignupInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type sessionClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
	jwt.RegisteredClaims
}

// AuthService handles signup, login and the HS256 session tokens that
// ride in the "session" cookie.
type AuthService struct {
	users      domain.UserRepository
	secret     []byte
	sessionTTL time.Duration
}

func NewAuthService(users domain.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), sessionTTL: ttl}
}

func (s *AuthService) SessionTTL() time.Duration { return s.sessionTTL }

func (s *AuthService) Signup(ctx context.Context, in SignupInput) (domain.SafeUser, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.SafeUser{}, "", err
	}
	u := domain.User{
		ID:           uuid.NewString(),
		Name:         in.Name,
		Email:        strings.ToLower(in.Email),
		PasswordHash: string(hash),
		City:         in.City,
		Country:      in.Country,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return domain.SafeUser{}, "", err
	}
	token, err := s.issueToken(u)
	return u.Safe(), token, err
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.SafeUser, string, error) {
	u, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return domain.SafeUser{}, "", domain.ErrUnauthorized
	}
	if err != nil {
		return domain.SafeUser{}, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return domain.SafeUser{}, "", domain.ErrUnauthorized
	}
	token, err := s.issueToken(u)
	return u.Safe(), token, err
}

func (s *AuthService) issueToken(u domain.User) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Name:  u.Name,
		Email: u.Email,
		City:  u.City,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyToken parses a session token and returns the safe-user it
// carries. Expired or tampered tokens return ErrUnauthorized.
func (s *AuthService) VerifyToken(token string) (domain.SafeUser, error) {
	var claims sessionClaims
	t, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return domain.SafeUser{}, domain.ErrUnauthorized
	}
	return domain.SafeUser{ID: claims.Subject, Name: claims.Name, Email: claims.Email, City: claims.City}, nil
}

// UpdatePreferences replaces the caller's explicit preference block
// after canonicalizing the category values.
func (s *AuthService) UpdatePreferences(ctx context.Context, userID string, p domain.Preferences) (domain.Preferences, error) {
	if p.HotelType != "" {
		v, ok := domain.NormalizeHotelType(p.HotelType)
		if !ok {
			return domain.Preferences{}, errors.New("unknown hotel type")
		}
		p.HotelType = v
	}
	if p.PriceRange != "" {
		v, ok := domain.NormalizePriceRange(p.PriceRange)
		if !ok {
			return domain.Preferences{}, errors.New("unknown price range")
		}
		p.PriceRange = v
	}
	if p.GroupSize != "" {
		v, ok := domain.NormalizeGroupSize(p.GroupSize)
		if !ok {
			return domain.Preferences{}, errors.New("unknown group size")
		}
		p.GroupSize = v
	}
	for i, a := range p.Amenities {
		v, ok := domain.NormalizeAmenity(a)
		if !ok {
			return domain.Preferences{}, errors.New("empty amenity")
		}
		p.Amenities[i] = v
	}
	if err := s.users.UpdatePreferences(ctx, userID, p); err != nil {
		return domain.Preferences{}, err
	}
	return p, nil
}
