package domain

// User — учётная запись для входа в магазин.
type User struct {
	ID       int64
	Username string
	// PasswordHash и Salt хранятся отдельно: хеш считается
	// AuthenticationHelper-ом от пароля и соли.
	PasswordHash []byte
	Salt         []byte
	Role         string
}

// LoginInput — данные формы входа.
type LoginInput struct {
	Username string
	Password string
}

// UpdatePasswordInput — данные смены пароля.
type UpdatePasswordInput struct {
	OldPassword string
	NewPassword string
}
