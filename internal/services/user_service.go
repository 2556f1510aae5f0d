package services

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"

	"github.com/freeboard/internal/auth"
	"github.com/freeboard/internal/logging"
	"github.com/freeboard/internal/models"
	"github.com/freeboard/internal/repositories"
	"github.com/freeboard/internal/session"
)

// UserService 定义了注册、登录、登出的接口
type UserService interface {
	// Register 账号已存在时返回 false
	Register(ctx context.Context, form models.UserForm) (bool, error)
	// RegisterAdmin 创建管理员账号，只供命令行使用
	RegisterAdmin(ctx context.Context, form models.UserForm) (bool, error)
	// Login 校验成功后把用户绑定到 sess，失败返回 ErrAuthenticationFailed 且不修改 sess
	Login(ctx context.Context, form models.UserForm, sess *session.Context) (*session.Identity, error)
	// Logout 清除 sess 中的用户，可重复调用
	Logout(ctx context.Context, sess *session.Context) error
	GetUser(ctx context.Context, accountID string) (*models.UserDto, error)
}

// userService 是 UserService 的实现
type userService struct {
	store repositories.Store
}

// NewUserService 创建一个新的 userService 实例
func NewUserService(store repositories.Store) UserService {
	return &userService{store: store}
}

func (s *userService) Register(ctx context.Context, form models.UserForm) (bool, error) {
	return s.register(ctx, form, models.RoleUser)
}

func (s *userService) RegisterAdmin(ctx context.Context, form models.UserForm) (bool, error) {
	return s.register(ctx, form, models.RoleAdmin)
}

// normalizeAccountID 统一为 NFC，避免外观相同但编码不同的账号被重复注册
func normalizeAccountID(accountID string) string {
	return norm.NFC.String(accountID)
}

func (s *userService) register(ctx context.Context, form models.UserForm, role models.UserRole) (bool, error) {
	form.AccountID = normalizeAccountID(form.AccountID)
	hash, err := auth.HashPassword(form.Password)
	if err != nil {
		return false, errors.Wrap(err, "hash password")
	}

	created := false
	err = s.store.Transaction(ctx, func(tx repositories.Store) error {
		_, err := tx.Users().FindByAccountID(ctx, form.AccountID)
		if err == nil {
			return nil
		} else if !errors.Is(err, repositories.ErrRecordNotFound) {
			return err
		}

		user := &models.User{AccountID: form.AccountID, PasswordHash: hash, Role: role}
		if err := tx.Users().Create(ctx, user); err != nil {
			// 并发注册同一账号时由唯一索引兜底
			if errors.Is(err, repositories.ErrAccountIDExists) {
				return nil
			}
			return err
		}
		created = true
		return nil
	})
	if err != nil {
		return false, err
	}

	if created {
		logging.GetSystemLogger().WithField("accountId", form.AccountID).Infof("user registered with role %s", role)
	}
	return created, nil
}

func (s *userService) Login(ctx context.Context, form models.UserForm, sess *session.Context) (*session.Identity, error) {
	form.AccountID = normalizeAccountID(form.AccountID)
	user, err := s.store.Users().FindByAccountID(ctx, form.AccountID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrAuthenticationFailed
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, form.Password) {
		return nil, ErrAuthenticationFailed
	}

	identity := session.Identity{AccountID: user.AccountID, Role: user.Role}
	if err := sess.SetCurrentUser(ctx, identity); err != nil {
		return nil, errors.Wrap(err, "bind session")
	}
	return &identity, nil
}

func (s *userService) Logout(ctx context.Context, sess *session.Context) error {
	if sess == nil {
		return nil
	}
	return sess.Clear(ctx)
}

func (s *userService) GetUser(ctx context.Context, accountID string) (*models.UserDto, error) {
	user, err := s.store.Users().FindByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	dto := models.NewUserDto(user)
	return &dto, nil
}
