package user

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/okayr/okayr-api/internal/auth"
	"github.com/okayr/okayr-api/internal/config"
	"github.com/okayr/okayr-api/internal/mail"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is pending activation")
	ErrUsernameTaken      = errors.New("username is already registered")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrValidation         = errors.New("invalid input")
)

type Service interface {
	Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*LoginResponse, string, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Get(ctx context.Context) (*UserResponse, error)
}

type service struct {
	repo     Repository
	mailer   mail.Mailer
	validate *validator.Validate
}

func NewService(repo Repository, mailer mail.Mailer) Service {
	return &service{
		repo:     repo,
		mailer:   mailer,
		validate: validator.New(),
	}
}

func (s *service) Register(ctx context.Context, dto RegisterDTO) (*UserResponse, error) {
	log := config.WithContext(ctx)

	if err := s.validate.Struct(dto); err != nil {
		log.WithError(err).Warn("Rejected registration payload")
		return nil, ErrValidation
	}

	taken, err := s.repo.ExistsByUsername(dto.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	taken, err = s.repo.ExistsByEmail(dto.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// Accounts start inactive and wait for back-office approval.
	u := User{
		ID:             uuid.New(),
		FirstName:      dto.FirstName,
		LastName:       dto.LastName,
		Username:       dto.Username,
		Email:          dto.Email,
		Mobile:         dto.Mobile,
		HashedPassword: string(hashed),
		Role:           RoleUser,
		IsActive:       false,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := s.repo.Create(&u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	if err := s.mailer.SendWelcome(ctx, u.Email, u.FirstName); err != nil {
		log.WithError(err).Warnf("Failed to send welcome email to %s", u.Email)
	}
	if err := s.mailer.SendAdminNewUser(ctx, mail.NewUserInfo{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
		Username:  u.Username,
		Mobile:    u.Mobile,
	}); err != nil {
		log.WithError(err).Warn("Failed to send admin notification email")
	}

	log.WithField("user_id", u.ID).Info("User registered, pending activation")
	return ToResponse(&u), nil
}

func (s *service) Login(ctx context.Context, dto LoginDTO) (*LoginResponse, string, error) {
	log := config.WithContext(ctx)

	if err := s.validate.Struct(dto); err != nil {
		return nil, "", ErrValidation
	}

	u, err := s.repo.FindByUsernameOrEmail(dto.Username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(dto.Password)); err != nil {
		log.WithField("username", dto.Username).Warn("Failed login attempt")
		return nil, "", ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, "", ErrAccountInactive
	}

	accessToken, err := auth.GenerateJWT(u.ID.String(), string(u.Role), auth.AccessTokenDuration)
	if err != nil {
		return nil, "", err
	}
	refreshToken, err := auth.GenerateJWT(u.ID.String(), string(u.Role), auth.RefreshTokenDuration)
	if err != nil {
		return nil, "", err
	}

	log.WithField("user_id", u.ID).Info("User logged in")
	return &LoginResponse{AccessToken: accessToken, User: *ToResponse(u)}, refreshToken, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := auth.ValidateJWT(refreshToken)
	if err != nil {
		return "", ErrUnauthorized
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return "", ErrUnauthorized
	}

	// Re-read the account so a deactivation invalidates refresh immediately.
	u, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", err
	}
	if !u.IsActive {
		return "", ErrAccountInactive
	}

	return auth.GenerateJWT(u.ID.String(), string(u.Role), auth.AccessTokenDuration)
}

func (s *service) Get(ctx context.Context) (*UserResponse, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, ErrUnauthorized
	}

	u, err := s.repo.FindByID(uuid.MustParse(claims.UserID))
	if err != nil {
		return nil, err
	}
	return ToResponse(u), nil
}
