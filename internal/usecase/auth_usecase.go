package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"campus-clinic-api/config"
	"campus-clinic-api/internal/converter"
	"campus-clinic-api/internal/delivery/dto"
	"campus-clinic-api/internal/domain/entity"
	"campus-clinic-api/internal/domain/repository"
	"campus-clinic-api/internal/service"
	"campus-clinic-api/pkg/jwt"
	"campus-clinic-api/pkg/throttle"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)

// LockedError reports that the login throttle blocked the attempt.
type LockedError struct {
	RetryAfter time.Duration
}

func (e *LockedError) Error() string {
	return fmt.Sprintf("too many failed login attempts, retry in %s", e.RetryAfter)
}

const resetTokenExpiry = 15 * time.Minute

type AuthUsecase interface {
	Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, roleID int, accessTokenID, refreshTokenID string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	RequestPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error
	ConfirmPasswordReset(ctx context.Context, req *dto.ConfirmResetPasswordRequest) error
	GoogleAuthURL(state string) string
	LoginWithGoogle(ctx context.Context, code string) (*dto.TokenResponse, error)
	HandleIdentityEvent(ctx context.Context, req *dto.IdentityEventRequest) error
}

type authUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	userRepo     repository.UserRepository
	activity     service.ActivityService
	jwtService   *jwt.JWTService
	redisClient  redis.Cmdable
	throttle     *throttle.LoginThrottle
	googleConfig *oauth2.Config
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	activity service.ActivityService,
	jwtService *jwt.JWTService,
	redisClient redis.Cmdable,
	loginThrottle *throttle.LoginThrottle,
	oauthCfg config.OAuthConfig,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		userRepo:    userRepo,
		activity:    activity,
		jwtService:  jwtService,
		redisClient: redisClient,
		throttle:    loginThrottle,
		googleConfig: &oauth2.Config{
			ClientID:     oauthCfg.GoogleClientID,
			ClientSecret: oauthCfg.GoogleClientSecret,
			RedirectURL:  oauthCfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

func (u *authUsecase) Signup(ctx context.Context, req *dto.SignupRequest) (*dto.UserResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	active := true
	user := &entity.User{
		Email:    strings.ToLower(req.Email),
		Password: string(hashedPassword),
		FullName: strings.TrimSpace(req.FirstName + " " + req.LastName),
		RoleID:   entity.RoleIDStudent,
		IsActive: &active,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.activity.Log(tx, &user.ID, user.RoleID, entity.ActivityActionUserRegister, nil); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	email := strings.ToLower(req.Email)

	// Throttle check runs before any credential verification so locked
	// attempts never reach the password comparison.
	locked, retryAfter, err := u.throttle.Check(ctx, email)
	if err != nil {
		u.log.Warnf("Login throttle check failed: %+v", err)
		return nil, err
	}
	if locked {
		return nil, &LockedError{RetryAfter: retryAfter}
	}

	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}
	if user == nil {
		u.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		u.recordFailedAttempt(ctx, email)
		return nil, ErrInvalidCredentials
	}

	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrUserInactive
	}

	if err := u.throttle.Reset(ctx, email); err != nil {
		u.log.Warnf("Failed to reset login throttle: %+v", err)
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := u.activity.Log(u.db.WithContext(ctx), &user.ID, user.RoleID, entity.ActivityActionUserLogin, nil); err != nil {
		// the session is already established; a failed log entry does
		// not abort the login
		u.log.Warnf("Failed to log login activity: %+v", err)
	}

	return tokens, nil
}

func (u *authUsecase) recordFailedAttempt(ctx context.Context, email string) {
	if err := u.throttle.RecordFailure(ctx, email); err != nil {
		u.log.Warnf("Failed to record login attempt: %+v", err)
	}
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}

	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(user.ID, user.Email, user.RoleID)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	accessKey := fmt.Sprintf("access_token:%s:%s", user.ID.String(), accessTokenID)
	refreshKey := fmt.Sprintf("refresh_token:%s:%s", user.ID.String(), refreshTokenID)

	if err := u.redisClient.Set(ctx, accessKey, "valid", u.jwtService.GetAccessExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store access token in Redis: %+v", err)
		return nil, err
	}
	if err := u.redisClient.Set(ctx, refreshKey, "valid", u.jwtService.GetRefreshExpiry()).Err(); err != nil {
		u.log.Warnf("Failed to store refresh token in Redis: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		RedirectTo:   entity.DashboardRouteForRole(user.RoleID),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, userID uuid.UUID, roleID int, accessTokenID, refreshTokenID string) error {
	accessPattern := fmt.Sprintf("access_token:*:%s", accessTokenID)
	refreshPattern := fmt.Sprintf("refresh_token:*:%s", refreshTokenID)

	for _, pattern := range []string{accessPattern, refreshPattern} {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			u.log.Warnf("Failed to get token keys: %+v", err)
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				u.log.Warnf("Failed to delete tokens: %+v", err)
				return err
			}
		}
	}

	if err := u.activity.Log(u.db.WithContext(ctx), &userID, roleID, entity.ActivityActionUserLogout, nil); err != nil {
		// the tokens are already revoked; a failed log entry does not
		// abort the logout
		u.log.Warnf("Failed to log logout activity: %+v", err)
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	refreshKey := fmt.Sprintf("refresh_token:%s:%s", claims.UserID.String(), claims.TokenID)
	exists, err := u.redisClient.Exists(ctx, refreshKey).Result()
	if err != nil {
		u.log.Warnf("Failed to check refresh token in Redis: %+v", err)
		return nil, err
	}
	if exists == 0 {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single-use
	if err := u.redisClient.Del(ctx, refreshKey).Err(); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrUserInactive
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) RequestPasswordReset(ctx context.Context, req *dto.ResetPasswordRequest) error {
	email := strings.ToLower(req.Email)
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if user == nil {
		// don't reveal whether the address is registered
		return nil
	}

	token := uuid.New().String()
	resetKey := fmt.Sprintf("reset_token:%s", token)
	if err := u.redisClient.Set(ctx, resetKey, user.ID.String(), resetTokenExpiry).Err(); err != nil {
		u.log.Warnf("Failed to store reset token: %+v", err)
		return err
	}

	// Email delivery is handled by an external service; the token is
	// logged so operators can relay it in environments without one.
	u.log.WithFields(logrus.Fields{
		"user_id": user.ID,
		"token":   token,
	}).Info("Password reset token issued")

	if err := u.activity.Log(u.db.WithContext(ctx), &user.ID, user.RoleID, entity.ActivityActionPasswordResetRequest, nil); err != nil {
		u.log.Warnf("Failed to log reset request activity: %+v", err)
	}

	return nil
}

func (u *authUsecase) ConfirmPasswordReset(ctx context.Context, req *dto.ConfirmResetPasswordRequest) error {
	resetKey := fmt.Sprintf("reset_token:%s", req.Token)
	userIDStr, err := u.redisClient.Get(ctx, resetKey).Result()
	if err == redis.Nil {
		return ErrResetTokenInvalid
	}
	if err != nil {
		u.log.Warnf("Failed to read reset token: %+v", err)
		return err
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ErrResetTokenInvalid
	}

	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return err
	}

	user.Password = string(hashedPassword)
	if err := u.userRepo.Update(u.db.WithContext(ctx), user); err != nil {
		u.log.Warnf("Failed to update password: %+v", err)
		return err
	}

	if err := u.redisClient.Del(ctx, resetKey).Err(); err != nil {
		u.log.Warnf("Failed to delete reset token: %+v", err)
	}

	// Existing sessions die with the old password
	if err := u.revokeAllUserTokens(ctx, user.ID); err != nil {
		u.log.Warnf("Failed to revoke sessions after password reset: %+v", err)
	}

	if err := u.activity.Log(u.db.WithContext(ctx), &user.ID, user.RoleID, entity.ActivityActionPasswordResetConfirm, nil); err != nil {
		u.log.Warnf("Failed to log reset confirm activity: %+v", err)
	}

	return nil
}

func (u *authUsecase) GoogleAuthURL(state string) string {
	return u.googleConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// googleUserInfo is the subset of the userinfo endpoint payload we use.
type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

func (u *authUsecase) LoginWithGoogle(ctx context.Context, code string) (*dto.TokenResponse, error) {
	oauthToken, err := u.googleConfig.Exchange(ctx, code)
	if err != nil {
		u.log.Warnf("Failed to exchange OAuth code: %+v", err)
		return nil, ErrInvalidToken
	}

	client := u.googleConfig.Client(ctx, oauthToken)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		u.log.Warnf("Failed to fetch Google userinfo: %+v", err)
		return nil, err
	}
	defer resp.Body.Close()

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		u.log.Warnf("Failed to decode Google userinfo: %+v", err)
		return nil, err
	}
	if info.Email == "" {
		return nil, ErrInvalidCredentials
	}

	email := strings.ToLower(info.Email)
	user, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, err
	}

	if user == nil {
		user, err = u.provisionExternalUser(ctx, email, info.Name, info.Picture)
		if err != nil {
			return nil, err
		}
	}
	if user.IsActive != nil && !*user.IsActive {
		return nil, ErrUserInactive
	}

	tokens, err := u.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := u.activity.Log(u.db.WithContext(ctx), &user.ID, user.RoleID, entity.ActivityActionUserLogin, entity.JSON{"provider": "google"}); err != nil {
		u.log.Warnf("Failed to log OAuth login activity: %+v", err)
	}

	return tokens, nil
}

func (u *authUsecase) HandleIdentityEvent(ctx context.Context, req *dto.IdentityEventRequest) error {
	if req.Type != "user.created" {
		return nil
	}

	email := strings.ToLower(req.Data.Email)
	existing, err := u.userRepo.FindByEmail(u.db.WithContext(ctx), email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return err
	}
	if existing != nil {
		// event replay; the account already exists
		return nil
	}

	fullName := strings.TrimSpace(req.Data.FirstName + " " + req.Data.LastName)
	_, err = u.provisionExternalUser(ctx, email, fullName, req.Data.AvatarURL)
	return err
}

// provisionExternalUser creates an account for an externally-authenticated
// identity. The stored password is random so password login stays unusable
// until the user resets it.
func (u *authUsecase) provisionExternalUser(ctx context.Context, email, fullName, avatarURL string) (*entity.User, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	randomSecret, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash placeholder password: %+v", err)
		return nil, err
	}

	if fullName == "" {
		fullName = email
	}

	active := true
	user := &entity.User{
		Email:     email,
		Password:  string(randomSecret),
		FullName:  fullName,
		AvatarURL: avatarURL,
		RoleID:    entity.RoleIDStudent,
		IsActive:  &active,
	}

	if err := u.userRepo.Create(tx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, err
	}

	if err := u.activity.Log(tx, &user.ID, user.RoleID, entity.ActivityActionUserRegister, entity.JSON{"source": "external"}); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return user, nil
}

func (u *authUsecase) revokeAllUserTokens(ctx context.Context, userID uuid.UUID) error {
	patterns := []string{
		fmt.Sprintf("access_token:%s:*", userID.String()),
		fmt.Sprintf("refresh_token:%s:*", userID.String()),
	}
	for _, pattern := range patterns {
		keys, err := u.redisClient.Keys(ctx, pattern).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := u.redisClient.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint violation
// containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}

// isForeignKeyError checks if the error is a PostgreSQL foreign key violation
// containing the specified constraint name
func isForeignKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23503 = foreign_key_violation
		if pgErr.Code == "23503" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
