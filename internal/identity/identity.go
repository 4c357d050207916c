// Package identity is the session service: password sign-in, cookie-borne
// JWT sessions and refresh-token rotation.
package identity

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Olajosh80/Realms/internal/models"
	"github.com/Olajosh80/Realms/pkg/hash"
	"github.com/Olajosh80/Realms/pkg/logging"
	"github.com/Olajosh80/Realms/pkg/tokens"
)

var (
	// Messages are shown to the user verbatim.
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrUserExists         = errors.New("User already registered")
	ErrInvalidEmail       = errors.New("Unable to validate email address: invalid format")
	ErrWeakPassword       = errors.New("Password should be at least 6 characters")

	ErrNoSession      = errors.New("auth session missing")
	ErrSessionExpired = errors.New("auth session expired")
	ErrRefreshRevoked = errors.New("refresh token expired or revoked")
)

const minPasswordLen = 6

type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

type Session struct {
	User         User
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

type Service struct {
	DB            *gorm.DB
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

func NewService(db *gorm.DB, accessSecret, refreshSecret []byte) *Service {
	return &Service{
		DB:            db,
		AccessSecret:  accessSecret,
		RefreshSecret: refreshSecret,
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// SignUp creates the identity and its customer profile in one transaction.
func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (*User, error) {
	l := logging.FromContext(ctx).With("svc", "identity.sign_up")

	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return nil, ErrWeakPassword
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("sign_up_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	u := models.AuthUser{Email: email, PasswordHash: pwHash}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.AuthUser{}).Where("email = ?", email).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrUserExists
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserProfile{
			ID:       u.ID,
			Email:    email,
			FullName: fullName,
			Role:     models.RoleCustomer,
		}).Error
	})
	if err != nil {
		if !errors.Is(err, ErrUserExists) {
			l.Error("sign_up_failed", "error", err)
		}
		return nil, err
	}

	l.Info("signed_up", "user_id", u.ID)
	return &User{ID: u.ID, Email: u.Email}, nil
}

func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	l := logging.FromContext(ctx).With("svc", "identity.sign_in")

	var u models.AuthUser
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		l.Error("sign_in_failed", "error", err)
		return nil, err
	}
	if !hash.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	sess, err := s.issue(ctx, s.DB.WithContext(ctx), User{ID: u.ID, Email: u.Email})
	if err != nil {
		l.Error("sign_in_failed", "reason", "issue session", "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.DB.WithContext(ctx).Model(&models.AuthUser{}).Where("id = ?", u.ID).
		Update("last_sign_in_at", now).Error; err != nil {
		l.Warn("last_sign_in_not_recorded", "error", err)
	}
	return sess, nil
}

func (s *Service) issue(_ context.Context, db *gorm.DB, u User) (*Session, error) {
	accessExp := time.Now().Add(s.AccessTTL)
	access, err := tokens.NewAccessToken(s.AccessSecret, u.ID.String(), u.Email, accessExp)
	if err != nil {
		return nil, err
	}

	refreshExp := time.Now().Add(s.RefreshTTL)
	refresh, jti, err := tokens.NewRefreshToken(s.RefreshSecret, u.ID.String(), refreshExp)
	if err != nil {
		return nil, err
	}

	if err := db.Create(&models.RefreshToken{
		Token:     tokens.Sha256Hex(refresh),
		UserID:    u.ID,
		JTI:       jti,
		ExpiresAt: refreshExp.Unix(),
	}).Error; err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	return &Session{
		User:         u,
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// GetUser resolves the user an access token was issued to.
func (s *Service) GetUser(ctx context.Context, accessToken string) (*User, error) {
	if accessToken == "" {
		return nil, ErrNoSession
	}
	claims, err := tokens.AccessClaimsFromToken(accessToken, s.AccessSecret)
	if errors.Is(err, jwt.ErrTokenExpired) {
		return nil, ErrSessionExpired
	}
	if err != nil {
		return nil, ErrNoSession
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrNoSession
	}
	var u models.AuthUser
	err = s.DB.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	return &User{ID: u.ID, Email: u.Email}, nil
}

// Refresh revokes the presented refresh token and issues a new session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := tokens.RefreshClaimsFromToken(refreshToken, s.RefreshSecret)
	if err != nil {
		return nil, ErrNoSession
	}

	var sess *Session
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stored models.RefreshToken
		if err := tx.Where("jti = ?", claims.ID).First(&stored).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSession
			}
			return err
		}
		if stored.Revoked || stored.ExpiresAt < time.Now().Unix() || stored.Token != tokens.Sha256Hex(refreshToken) {
			return ErrRefreshRevoked
		}
		if err := tx.Model(&models.RefreshToken{}).Where("jti = ?", claims.ID).Update("revoked", true).Error; err != nil {
			return err
		}

		var u models.AuthUser
		if err := tx.Where("id = ?", stored.UserID).First(&u).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNoSession
			}
			return err
		}

		var err error
		sess, err = s.issue(ctx, tx, User{ID: u.ID, Email: u.Email})
		return err
	})
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// SignOut revokes refreshToken. An empty token is a no-op.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.DB.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token = ?", tokens.Sha256Hex(refreshToken)).
		Update("revoked", true).Error
}
