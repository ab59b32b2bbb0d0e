package accounts

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidRole возвращается при недопустимой роли
	ErrInvalidRole = errors.New("role is not allowed")

	// ErrEmptyProfileUpdate возвращается, когда в запросе нет ни одного поля профиля
	ErrEmptyProfileUpdate = errors.New("no profile fields to update")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("user not found")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
