package application

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/komunitech/komunitech/internal/api/middleware"
	"github.com/komunitech/komunitech/internal/domain/user"
	"github.com/komunitech/komunitech/internal/repository"
	"github.com/komunitech/komunitech/pkg/utils"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordHashFailure = errors.New("failed to hash password")

type UserService struct {
	Repos    *repository.Repos
	tokenTTL time.Duration
	log      zerolog.Logger
}

func NewUserService(repos *repository.Repos, tokenTTL time.Duration, log zerolog.Logger) *UserService {
	return &UserService{
		Repos:    repos,
		tokenTTL: tokenTTL,
		log:      log.With().Str("service", "user").Logger(),
	}
}

func (s *UserService) Register(input user.RegisterInput) (*user.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.Repos.User.GetUserByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !repository.IsNotFound(err) {
		return nil, err
	}
	if _, err := s.Repos.User.GetUserByEmail(email); err == nil {
		return nil, ErrUsernameTaken
	} else if !repository.IsNotFound(err) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrPasswordHashFailure
	}

	u := &user.User{
		Username:     username,
		Email:        email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: string(hashed),
		Role:         user.RoleRegular,
		IsActive:     true,
	}
	if err := s.Repos.User.CreateUser(u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	s.log.Info().Uint("user_id", u.ID).Str("username", u.Username).Msg("user registered")
	return u, nil
}

// Login checks the password and issues a token. It returns the user, the
// token and whether the user is an admin.
func (s *UserService) Login(username, password string) (user.User, string, bool, error) {
	u, err := s.Repos.User.GetUserByUsername(strings.TrimSpace(username))
	if err != nil {
		return user.User{}, "", false, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return user.User{}, "", false, ErrInvalidCredentials
	}
	if !u.IsActive {
		return user.User{}, "", false, ErrUserInactive
	}

	token, err := middleware.GenerateToken(u.ID, u.Username, u.IsAdmin(), s.tokenTTL)
	if err != nil {
		return user.User{}, "", false, err
	}

	u.LastSeen = time.Now()
	if err := s.Repos.User.SaveUser(&u); err != nil {
		s.log.Warn().Err(err).Uint("user_id", u.ID).Msg("update last_seen")
	}
	return u, token, u.IsAdmin(), nil
}

func (s *UserService) GetUser(id uint) (*user.User, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	return &u, nil
}

func (s *UserService) ListUsers(params repository.UserQueryParams) ([]user.User, int64, error) {
	return s.Repos.User.ListUsersPaging(params)
}

func (s *UserService) UpdateProfile(id uint, input user.UpdateProfileInput) (*user.User, error) {
	u, err := s.Repos.User.GetUserByID(id)
	if err != nil {
		return nil, notFound(err, ErrUserNotFound)
	}
	if input.Name != nil {
		u.Name = strings.TrimSpace(*input.Name)
	}
	if input.Bio != nil {
		u.Bio = *input.Bio
	}
	if input.AvatarURL != nil {
		u.AvatarURL = input.AvatarURL
	}
	if err := s.Repos.User.SaveUser(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ChangePassword replaces the password of id after verifying the current
// one. The audit row records the action only, never either hash.
func (s *UserService) ChangePassword(c *gin.Context, id uint, current, newPassword string) error {
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		u, err := tx.User.GetUserByID(id)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)); err != nil {
			return ErrWrongPassword
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return ErrPasswordHashFailure
		}
		u.PasswordHash = string(hashed)
		if err := tx.User.SaveUser(&u); err != nil {
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:     id,
			Action:      "change_password",
			EntityType:  "user",
			EntityID:    id,
			Description: "password changed",
		})
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("user_id", id).Msg("password changed")
	return nil
}

func (s *UserService) UpdateUserRole(c *gin.Context, actorID, id uint, role user.Role) (*user.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidInput, role)
	}
	if actorID == id && role != user.RoleAdmin {
		return nil, fmt.Errorf("%w: admins cannot demote themselves", ErrForbidden)
	}
	return s.mutate(c, actorID, id, "update_user_role", func(u *user.User) {
		u.Role = role
	})
}

func (s *UserService) SetUserActive(c *gin.Context, actorID, id uint, active bool) (*user.User, error) {
	if actorID == id && !active {
		return nil, fmt.Errorf("%w: admins cannot deactivate themselves", ErrForbidden)
	}
	return s.mutate(c, actorID, id, "set_user_active", func(u *user.User) {
		u.IsActive = active
	})
}

// DeleteUser removes the account and, through cascades, everything it owns.
func (s *UserService) DeleteUser(c *gin.Context, actorID, id uint) error {
	if actorID == id {
		return fmt.Errorf("%w: admins cannot delete themselves", ErrForbidden)
	}
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		u, err := tx.User.GetUserByID(id)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		if err := tx.User.DeleteUser(id); err != nil {
			return err
		}
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     "delete_user",
			EntityType: "user",
			EntityID:   id,
			Before:     u,
		})
	})
	if err != nil {
		return err
	}
	s.log.Info().Uint("user_id", id).Uint("actor_id", actorID).Msg("user deleted")
	return nil
}

func (s *UserService) mutate(c *gin.Context, actorID, id uint, action string, apply func(*user.User)) (*user.User, error) {
	var out user.User
	err := s.Repos.ExecTx(func(tx *repository.Repos) error {
		u, err := tx.User.GetUserByID(id)
		if err != nil {
			return notFound(err, ErrUserNotFound)
		}
		old := u
		apply(&u)
		if err := tx.User.SaveUser(&u); err != nil {
			return err
		}
		out = u
		return utils.LogAudit(c, tx.Audit, utils.AuditEntry{
			ActorID:    actorID,
			Action:     action,
			EntityType: "user",
			EntityID:   id,
			Before:     old,
			After:      u,
		})
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Uint("user_id", id).Uint("actor_id", actorID).Str("action", action).Msg("user updated")
	return &out, nil
}
