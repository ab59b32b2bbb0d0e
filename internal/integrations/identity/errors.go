package identity

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном email или пароле
	ErrInvalidCredentials = errors.New("identity: invalid credentials")

	// ErrUserNotFound возвращается, когда пользователь не найден
	ErrUserNotFound = errors.New("identity: user not found")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("identity: email already registered")

	// ErrInvalidRole возвращается при попытке зарегистрироваться с недопустимой ролью
	ErrInvalidRole = errors.New("identity: role is not allowed")

	// ErrInternal возвращается при внутренних ошибках провайдера
	ErrInternal = errors.New("identity: internal error")
)
