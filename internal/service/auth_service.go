package service

import (
	"errors"
	"strings"
	"time"

	"pcs-crm/internal/dto"
	"pcs-crm/internal/model"
	"pcs-crm/internal/pkg/config"
	"pcs-crm/internal/pkg/crypto"
	"pcs-crm/internal/pkg/jwt"
	"pcs-crm/internal/repository"
	"pcs-crm/pkg/constants"
	pkgErrors "pcs-crm/pkg/errors"
)

type AuthService interface {
	Signup(req *dto.SignupRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	VerifyToken(token string) (*dto.UserInfo, error)
	Me(userID int64) (*dto.UserInfo, error)
}

type authService struct {
	cfg         *config.AuthConfig
	userRepo    repository.UserRepository
	ldapService LDAPService
	now         func() time.Time
}

func NewAuthService(
	cfg *config.AuthConfig,
	userRepo repository.UserRepository,
	ldapService LDAPService,
) AuthService {
	return &authService{
		cfg:         cfg,
		userRepo:    userRepo,
		ldapService: ldapService,
		now:         time.Now,
	}
}

// Signup 注册员工账号，邮箱/工号/手机号均需唯一
func (s *authService) Signup(req *dto.SignupRequest) (*dto.UserResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, pkgErrors.ErrPasswordMismatch
	}

	email := normalizeEmail(req.Email)
	employeeID := strings.TrimSpace(req.EmployeeID)
	phone := strings.TrimSpace(req.Phone)
	exists, err := s.userRepo.ExistsUnique(email, employeeID, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, pkgErrors.ErrUserExists
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}

	user := &model.User{
		EmployeeID:   employeeID,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        phone,
		Branch:       req.Branch,
		Designation:  req.Designation,
		Role:         constants.RoleEmployee,
		AuthProvider: constants.AuthTypeLocal,
		Password:     hash,
		Skills:       []string{},
	}
	// 唯一索引兜底并发注册
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	authType := req.AuthType
	if authType == "" {
		authType = constants.AuthTypeLocal
	}

	var user *model.User
	var err error

	switch authType {
	case constants.AuthTypeLDAP:
		if !s.cfg.LDAP.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "LDAP认证未启用")
		}
		user, err = s.authenticateLDAP(req.Email, req.Password)

	case constants.AuthTypeLocal:
		if !s.cfg.Local.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "本地认证未启用")
		}
		user, err = s.authenticateLocal(req.Email, req.Password)

	default:
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "不支持的认证类型")
	}
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateLastActive(user.ID, s.now()); err != nil {
		return nil, err
	}

	return s.issueTokens(user, authType)
}

func (s *authService) authenticateLocal(email, password string) (*model.User, error) {
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pkgErrors.ErrUserNotFound) {
			return nil, pkgErrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password == "" || !crypto.CheckPassword(password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}
	return user, nil
}

// authenticateLDAP 目录认证通过后按邮箱匹配CRM档案
func (s *authService) authenticateLDAP(login, password string) (*model.User, error) {
	identity, err := s.ldapService.Authenticate(login, password)
	if err != nil {
		return nil, err
	}

	email := identity.Email
	if email == "" {
		email = login
	}
	user, err := s.userRepo.FindByEmail(normalizeEmail(email))
	if err != nil {
		if errors.Is(err, pkgErrors.ErrUserNotFound) {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "目录账号未关联CRM员工档案")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) issueTokens(user *model.User, authType string) (*dto.LoginResponse, error) {
	identity := jwt.Identity{
		UserID:   user.ID,
		Email:    user.Email,
		Name:     user.FullName(),
		Role:     user.Role,
		AuthType: authType,
	}

	accessToken, err := jwt.GenerateAccessToken(identity)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成AccessToken失败", err)
	}

	refreshToken, err := jwt.GenerateRefreshToken(identity)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成RefreshToken失败", err)
	}

	info := toUserInfo(user)
	info.AuthType = authType

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    s.cfg.JWT.AccessTokenExpire,
		User:         info,
	}, nil
}

func (s *authService) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	claims, err := jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	if claims.Type != constants.JWTTypeRefresh {
		return nil, pkgErrors.New(pkgErrors.CodeUnauthorized, "无效的RefreshToken")
	}

	// 重新读取用户，角色变更后立即生效
	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		if errors.Is(err, pkgErrors.ErrUserNotFound) {
			return nil, pkgErrors.ErrInvalidToken
		}
		return nil, err
	}

	return s.issueTokens(user, claims.AuthType)
}

func (s *authService) VerifyToken(token string) (*dto.UserInfo, error) {
	claims, err := jwt.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	return &dto.UserInfo{
		ID:       claims.UserID,
		Name:     claims.Name,
		Email:    claims.Email,
		Role:     claims.Role,
		AuthType: claims.AuthType,
	}, nil
}

func (s *authService) Me(userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return nil, err
	}
	return toUserInfo(user), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
