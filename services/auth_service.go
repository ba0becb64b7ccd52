package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"gorm.io/gorm"
)

type RegisterInput struct {
	Username string
	Password string
	FullName string
	Role     string
}

type LoginInput struct {
	Username string
	Password string
}

type AuthUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type LoginOutput struct {
	Token string   `json:"token"`
	User  AuthUser `json:"user"`
}

type ProfileOutput struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (AuthUser, error)
	Login(ctx context.Context, in LoginInput) (LoginOutput, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error
	GetProfile(ctx context.Context, userID uint) (ProfileOutput, error)
}

type authService struct {
	users     repositories.UserRepository
	blacklist repositories.TokenBlacklistRepository
}

func NewAuthService(users repositories.UserRepository, blacklist repositories.TokenBlacklistRepository) AuthService {
	return &authService{users: users, blacklist: blacklist}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (AuthUser, error) {
	role := in.Role
	if role == "" {
		role = models.RoleStudent
	}
	if role != models.RoleTeacher && role != models.RoleStudent {
		return AuthUser{}, newAppErrorWithData(http.StatusBadRequest, "Dados inválidos", map[string]string{
			"role": "Perfil desconhecido",
		}, nil)
	}

	count, err := s.users.CountByUsername(ctx, in.Username)
	if err != nil {
		return AuthUser{}, newAppError(http.StatusInternalServerError, "Falha ao verificar o utilizador", err)
	}
	if count > 0 {
		return AuthUser{}, newAppError(http.StatusBadRequest, "O nome de utilizador já existe", nil)
	}

	hashedPassword, err := utils.HashPassword(in.Password)
	if err != nil {
		return AuthUser{}, newAppError(http.StatusInternalServerError, "Falha ao processar a palavra-passe", err)
	}

	user := models.User{
		Username: in.Username,
		Password: hashedPassword,
		FullName: in.FullName,
		Role:     role,
	}
	if err := s.users.Create(ctx, nil, &user); err != nil {
		return AuthUser{}, newAppError(http.StatusInternalServerError, "Falha ao criar o utilizador", err)
	}

	return AuthUser{ID: user.ID, Username: user.Username, FullName: user.FullName, Role: user.Role}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	user, err := s.users.GetByUsername(ctx, nil, in.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginOutput{}, newAppError(http.StatusUnauthorized, "Utilizador ou palavra-passe inválidos", nil)
		}
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar o utilizador", err)
	}

	if !utils.CheckPassword(in.Password, user.Password) {
		return LoginOutput{}, newAppError(http.StatusUnauthorized, "Utilizador ou palavra-passe inválidos", nil)
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return LoginOutput{}, newAppError(http.StatusInternalServerError, "Falha ao gerar o token", err)
	}

	return LoginOutput{
		Token: token,
		User:  AuthUser{ID: user.ID, Username: user.Username, FullName: user.FullName, Role: user.Role},
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if err := s.blacklist.Add(ctx, token, time.Until(expiresAt)); err != nil {
		return newAppError(http.StatusInternalServerError, "Falha ao terminar a sessão", err)
	}
	return nil
}

func (s *authService) GetProfile(ctx context.Context, userID uint) (ProfileOutput, error) {
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ProfileOutput{}, newAppError(http.StatusNotFound, "Utilizador não encontrado", nil)
		}
		return ProfileOutput{}, newAppError(http.StatusInternalServerError, "Falha ao consultar o utilizador", err)
	}

	return ProfileOutput{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.FullName,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}
