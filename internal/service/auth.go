package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"devfolio/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// AuthService checks admin console credentials and resolves tokens to an Actor.
type AuthService struct {
	Collection *mongo.Collection
	JWTSecret  []byte
	TokenTTL   time.Duration
	now        func() time.Time
}

type actorClaims struct {
	Username string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

func NewAuthService(db *mongo.Database, secret string, ttl time.Duration) *AuthService {
	var coll *mongo.Collection
	if db != nil {
		coll = db.Collection(domain.CollectionAdmins)
	}
	return &AuthService{
		Collection: coll,
		JWTSecret:  []byte(secret),
		TokenTTL:   ttl,
		now:        time.Now,
	}
}

// InitAdmin creates the bootstrap admin when no admin exists yet.
func (s *AuthService) InitAdmin(ctx context.Context, username, password string) error {
	count, err := s.Collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("count admins: %w", err)
	}
	if count > 0 {
		return nil
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if _, err := s.Collection.InsertOne(ctx, domain.Admin{Username: username, Password: string(hashed)}); err != nil {
		return fmt.Errorf("insert admin: %w", err)
	}
	logrus.Infof("[Auth] 已建立預設管理者 %s", username)
	return nil
}

// Login verifies the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	var admin domain.Admin
	err := s.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&admin)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.IssueToken(domain.Actor{ID: admin.ID.Hex(), Username: admin.Username, Role: domain.RoleAdmin})
}

func (s *AuthService) IssueToken(actor domain.Actor) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, actorClaims{
		Username: actor.Username,
		Role:     actor.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TokenTTL)),
		},
	})
	return token.SignedString(s.JWTSecret)
}

// Authenticate resolves a bearer token to the acting user.
func (s *AuthService) Authenticate(tokenString string) (*domain.Actor, error) {
	var claims actorClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.JWTSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return &domain.Actor{ID: claims.Subject, Username: claims.Username, Role: claims.Role}, nil
}
