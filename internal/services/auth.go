package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	userrepo "github.com/edulearn/edulearn-backend/internal/data/repos/user"
	types "github.com/edulearn/edulearn-backend/internal/domain"
	"github.com/edulearn/edulearn-backend/internal/platform/apierr"
	"github.com/edulearn/edulearn-backend/internal/platform/logger"
)

const bcryptCost = 12

// Identity is the authenticated principal extracted from an access token.
type Identity struct {
	UserID uuid.UUID
	Role   types.Role
}

type AuthService interface {
	Register(ctx context.Context, name, email, password string, role types.Role) (*types.User, string, error)
	Login(ctx context.Context, email, password string) (*types.User, string, error)
	IdentityFromToken(ctx context.Context, tokenString string) (Identity, error)
	AccessTTL() time.Duration
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  userrepo.UserRepo
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo userrepo.UserRepo, jwtSecret string, accessTTL time.Duration) AuthService {
	return &authService{
		db:        db,
		log:       baseLog.With("service", "AuthService"),
		userRepo:  userRepo,
		jwtSecret: []byte(jwtSecret),
		accessTTL: accessTTL,
	}
}

func (as *authService) Register(ctx context.Context, name, email, password string, role types.Role) (*types.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, "", apierr.Validation("missing_fields", errors.New("name, email and password are required"))
	}
	if utf8.RuneCountInString(name) < 2 {
		return nil, "", apierr.Validation("invalid_name", errors.New("name must be at least 2 characters"))
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return nil, "", apierr.Validation("invalid_email", fmt.Errorf("%q is not a valid email address", email))
	}
	if len(password) < 6 {
		return nil, "", apierr.Validation("weak_password", errors.New("password must be at least 6 characters"))
	}
	if role == "" {
		role = types.RoleStudent
	}
	if !role.Valid() || role == types.RoleAdmin {
		return nil, "", apierr.Validation("invalid_role", fmt.Errorf("role %q is not allowed at registration", role))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.Internal(err)
	}
	if exists {
		return nil, "", apierr.Conflict("email_taken", fmt.Errorf("email %s is already registered", email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, "", apierr.Internal(err)
	}

	user := &types.User{
		ID:       uuid.New(),
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     role,
		IsActive: true,
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, "", apierr.Internal(fmt.Errorf("create user: %w", err))
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, "", apierr.Internal(err)
	}
	as.log.Info("user registered", "userId", user.ID, "role", user.Role)
	return user, token, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*types.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", apierr.Validation("missing_fields", errors.New("email and password are required"))
	}

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, "", apierr.Internal(err)
	}
	if user == nil {
		return nil, "", apierr.Unauthorized("invalid_credentials", errors.New("invalid email or password"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", apierr.Unauthorized("invalid_credentials", errors.New("invalid email or password"))
	}
	if !user.IsActive {
		return nil, "", apierr.Forbidden("account_deactivated", errors.New("account has been deactivated"))
	}

	token, err := as.generateAccessToken(user)
	if err != nil {
		return nil, "", apierr.Internal(err)
	}
	return user, token, nil
}

func (as *authService) IdentityFromToken(ctx context.Context, tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return as.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, apierr.Unauthorized("invalid_token", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apierr.Unauthorized("invalid_token", errors.New("unexpected claims type"))
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, apierr.Unauthorized("invalid_token", fmt.Errorf("bad subject claim: %w", err))
	}
	roleStr, _ := claims["role"].(string)
	role := types.Role(roleStr)
	if !role.Valid() {
		return Identity{}, apierr.Unauthorized("invalid_token", fmt.Errorf("bad role claim %q", roleStr))
	}

	// Identity is re-checked against the user table so revoked or deactivated
	// accounts lose access before token expiry.
	user, err := as.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return Identity{}, apierr.Internal(err)
	}
	if user == nil {
		return Identity{}, apierr.Unauthorized("invalid_token", errors.New("user no longer exists"))
	}
	if !user.IsActive {
		return Identity{}, apierr.Forbidden("account_deactivated", errors.New("account has been deactivated"))
	}
	return Identity{UserID: user.ID, Role: user.Role}, nil
}

func (as *authService) AccessTTL() time.Duration { return as.accessTTL }

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID.String(),
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(as.accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(as.jwtSecret)
}
