package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"campusbazaar/internal/domain/entity"
	"campusbazaar/internal/domain/repository"
	"campusbazaar/pkg/config"
	"campusbazaar/pkg/errors"
	"campusbazaar/pkg/logger"
)

var (
	campusEmailPattern = regexp.MustCompile(`^(\d{2})([a-z]+)(\d{3})@(.+)$`)
	phonePattern       = regexp.MustCompile(`^[6-9]\d{9}$`)
)

// branchRollLimits maps a branch code to its highest valid roll number.
var branchRollLimits = map[string]int{
	"bec": 150,
	"bcs": 350,
	"bsm": 99,
	"bme": 99,
	"bds": 99,
}

var branchDepartments = map[string]string{
	"bec": "Electronics and Communication Engineering",
	"bcs": "Computer Science and Engineering",
	"bsm": "Smart Manufacturing",
	"bme": "Mechanical Engineering",
	"bds": "Design",
}

type AuthUseCase struct {
	userRepo    repository.UserRepository
	authClient  FirebaseAuthClient
	emailDomain string
}

func NewAuthUseCase(userRepo repository.UserRepository, authClient FirebaseAuthClient, cfg *config.Config) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		authClient:  authClient,
		emailDomain: cfg.CampusEmailDomain,
	}
}

type RegisterInput struct {
	Name       string `json:"name" validate:"required,min=2,max=80"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Phone      string `json:"phone" validate:"required"`
	Hostel     string `json:"hostel" validate:"omitempty,max=40"`
	RoomNumber string `json:"room_number" validate:"omitempty,max=10"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileInput struct {
	Name       string `json:"name" validate:"omitempty,min=2,max=80"`
	Phone      string `json:"phone" validate:"omitempty"`
	Hostel     string `json:"hostel" validate:"omitempty,max=40"`
	RoomNumber string `json:"room_number" validate:"omitempty,max=10"`
}

type AuthResponse struct {
	User         *entity.User `json:"user"`
	Token        string       `json:"token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register creates the Firebase account and the profile document. Only
// institute email addresses are accepted; batch and department are derived
// from the roll number encoded in the address.
func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	batch, department, err := uc.parseCampusEmail(email)
	if err != nil {
		return nil, err
	}

	if err := validatePhone(input.Phone); err != nil {
		return nil, err
	}

	if existing, err := uc.userRepo.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, errors.Conflict("An account with this email already exists", nil)
	}

	uid, err := uc.authClient.CreateUser(ctx, email, input.Password, input.Name)
	if err != nil {
		logger.Error("auth: firebase create user failed for %s: %v", email, err)
		return nil, errors.Internal("Failed to create account", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:         uid,
		Name:       input.Name,
		Email:      email,
		Phone:      input.Phone,
		Batch:      batch,
		Department: department,
		Hostel:     input.Hostel,
		RoomNumber: input.RoomNumber,
		Role:       entity.RoleUser,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Roll back the orphaned auth account so the email can retry.
		if delErr := uc.authClient.DeleteUser(ctx, uid); delErr != nil {
			logger.Error("auth: failed to roll back firebase user %s: %v", uid, delErr)
		}
		return nil, err
	}

	idToken, refreshToken, _, err := uc.authClient.SignInWithEmailPassword(ctx, email, input.Password)
	if err != nil {
		logger.Error("auth: post-register sign-in failed for %s: %v", email, err)
		return nil, errors.Internal("Account created but sign-in failed, please log in", err)
	}

	return &AuthResponse{User: user, Token: idToken, RefreshToken: refreshToken}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	idToken, refreshToken, uid, err := uc.authClient.SignInWithEmailPassword(ctx, email, input.Password)
	if err != nil {
		logger.Warn("auth: sign-in failed for %s: %v", email, err)
		return nil, errors.Unauthorized("Invalid email or password", err)
	}

	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{User: user, Token: idToken, RefreshToken: refreshToken}, nil
}

func (uc *AuthUseCase) RefreshToken(ctx context.Context, refreshToken string) (token, newRefreshToken string, err error) {
	token, newRefreshToken, err = uc.authClient.RefreshIdToken(ctx, refreshToken)
	if err != nil {
		return "", "", errors.Unauthorized("Invalid or expired refresh token", err)
	}
	return token, newRefreshToken, nil
}

func (uc *AuthUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Phone != "" {
		if err := validatePhone(input.Phone); err != nil {
			return nil, err
		}
		user.Phone = input.Phone
	}
	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Hostel != "" {
		user.Hostel = input.Hostel
	}
	if input.RoomNumber != "" {
		user.RoomNumber = input.RoomNumber
	}
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// parseCampusEmail checks an address against the institute roll-number
// format and returns the batch year and department it encodes.
func (uc *AuthUseCase) parseCampusEmail(email string) (batch, department string, err error) {
	matches := campusEmailPattern.FindStringSubmatch(email)
	if matches == nil || matches[4] != uc.emailDomain {
		return "", "", errors.BadRequest(fmt.Sprintf("Email must be a valid @%s address", uc.emailDomain), nil)
	}

	year, _ := strconv.Atoi(matches[1])
	if year < 21 || year > 25 {
		return "", "", errors.BadRequest("Email does not match a recognized batch year", nil)
	}

	branch := matches[2]
	limit, ok := branchRollLimits[branch]
	if !ok {
		return "", "", errors.BadRequest("Email does not match a recognized branch", nil)
	}

	roll, _ := strconv.Atoi(matches[3])
	if roll < 1 || roll > limit {
		return "", "", errors.BadRequest("Email does not match a valid roll number", nil)
	}

	return fmt.Sprintf("20%02d", year), branchDepartments[branch], nil
}

func validatePhone(phone string) error {
	if !phonePattern.MatchString(phone) {
		return errors.BadRequest("Phone number must be a valid 10-digit mobile number", nil)
	}
	for i := 1; i < len(phone); i++ {
		if phone[i] != phone[0] {
			return nil
		}
	}
	return errors.BadRequest("Phone number must be a valid 10-digit mobile number", nil)
}
