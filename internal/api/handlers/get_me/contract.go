package get_me

import (
	"context"

	"github.com/m04kA/WeddingMarketService/internal/service/accounts/models"
)

type AccountService interface {
	Me(ctx context.Context, userID int64) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
