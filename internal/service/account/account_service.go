package account

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/domain"
	"github.com/vladislavdragonenkov/beershop/internal/validation"
)

// Service — операции над учётными записями: регистрация, вход, токены,
// смена пароля. Вся криптография спрятана за domain.AuthenticationHelper.
type Service struct {
	users     domain.UserRepository
	auth      domain.AuthenticationHelper
	validator *validation.Validator
	logger    *log.Entry
}

// NewService создаёт сервис учётных записей.
func NewService(users domain.UserRepository, auth domain.AuthenticationHelper, validator *validation.Validator, logger *log.Entry) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "account")
	}
	if validator == nil {
		validator = validation.New()
	}
	return &Service{users: users, auth: auth, validator: validator, logger: logger}
}

// CreateUser собирает учётную запись из регистрационных данных:
// валидация, свежая соль, хеш пароля. Запись ещё не сохраняется.
func (s *Service) CreateUser(username, password, role string) (domain.User, error) {
	if err := s.validator.ValidateCreateUser(username, password, role); err != nil {
		return domain.User{}, err
	}

	salt, err := s.auth.GenerateSalt()
	if err != nil {
		return domain.User{}, err
	}

	return domain.User{
		Username:     username,
		PasswordHash: s.auth.GenerateHash(password, salt),
		Salt:         salt,
		Role:         role,
	}, nil
}

// AddUser сохраняет учётную запись; имя пользователя уникально
// без учёта регистра.
func (s *Service) AddUser(user domain.User) (domain.User, error) {
	if err := s.validator.ValidateUser(&user); err != nil {
		return domain.User{}, err
	}

	existing, err := s.users.ListAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range existing {
		if strings.EqualFold(u.Username, user.Username) {
			return domain.User{}, domain.ErrDuplicateUsername
		}
	}

	created, err := s.users.Add(user)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.WithFields(log.Fields{
		"user_id":  created.ID,
		"username": created.Username,
	}).Info("user registered")
	return created, nil
}

// Register — регистрация за один шаг: CreateUser + AddUser.
func (s *Service) Register(username, password, role string) (domain.User, error) {
	user, err := s.CreateUser(username, password, role)
	if err != nil {
		return domain.User{}, err
	}
	return s.AddUser(user)
}

// Login проверяет учётные данные и выпускает токен доступа.
func (s *Service) Login(input domain.LoginInput) (string, error) {
	if input.Username == "" || input.Password == "" {
		return "", domain.ErrMissingCredentials
	}

	user, err := s.findByUsername(input.Username)
	if err != nil {
		s.logger.WithField("username", input.Username).Warn("login attempt for unknown user")
		return "", err
	}

	if err := s.auth.ValidateLogin(user, input); err != nil {
		s.logger.WithField("username", input.Username).Warn("login attempt with wrong password")
		return "", err
	}

	token, err := s.auth.GenerateToken(user)
	if err != nil {
		return "", err
	}
	s.logger.WithField("username", input.Username).Info("user logged in")
	return token, nil
}

// UpdatePassword меняет пароль после проверки старого; соль пересоздаётся.
func (s *Service) UpdatePassword(userID int64, input domain.UpdatePasswordInput) (domain.User, error) {
	if userID <= 0 {
		return domain.User{}, domain.ErrIncorrectID
	}
	if input.OldPassword == "" || input.NewPassword == "" {
		return domain.User{}, domain.ErrMissingCredentials
	}
	if len(input.NewPassword) < 8 {
		return domain.User{}, domain.NewError(domain.KindValidation, "Password must be minimum 8 characters")
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return domain.User{}, err
	}

	login := domain.LoginInput{Username: user.Username, Password: input.OldPassword}
	if err := s.auth.ValidateLogin(user, login); err != nil {
		return domain.User{}, err
	}

	salt, err := s.auth.GenerateSalt()
	if err != nil {
		return domain.User{}, err
	}
	user.Salt = salt
	user.PasswordHash = s.auth.GenerateHash(input.NewPassword, salt)

	updated, err := s.users.Update(user)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.WithField("user_id", userID).Info("password updated")
	return updated, nil
}

// UpdateUser перезаписывает учётную запись.
func (s *Service) UpdateUser(user domain.User) (domain.User, error) {
	if err := s.validator.ValidateUser(&user); err != nil {
		return domain.User{}, err
	}
	if user.ID <= 0 {
		return domain.User{}, domain.ErrIncorrectID
	}
	return s.users.Update(user)
}

// DeleteUser удаляет учётную запись.
func (s *Service) DeleteUser(id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, domain.ErrIncorrectID
	}
	deleted, err := s.users.Delete(id)
	if err != nil {
		return domain.User{}, err
	}
	s.logger.WithField("user_id", id).Info("user deleted")
	return deleted, nil
}

// GetUserByID возвращает учётную запись по идентификатору.
func (s *Service) GetUserByID(id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, domain.ErrIncorrectID
	}
	return s.users.Get(id)
}

func (s *Service) findByUsername(username string) (domain.User, error) {
	users, err := s.users.ListAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Username, username) {
			return u, nil
		}
	}
	return domain.User{}, domain.ErrUnknownUser
}
