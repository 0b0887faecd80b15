package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/ds"
	"orders-backend/internal/app/dto"
	redisclient "orders-backend/internal/app/redis"
	"orders-backend/internal/app/repository"
	"orders-backend/internal/app/role"
)

const userContextKey = "userInfo"

// Identity разрешает пользователя запроса по имени: GET-запросы несут
// username в query, POST — в JSON-теле. Сессионных токенов нет, каждый
// запрос проходит через разрешение заново; Redis-кэш (если настроен)
// ограничивает полный проход по вкладкам мастер-книги.
type Identity struct {
	Repository  *repository.Repository
	RedisClient *redisclient.Client // nil, если кэш не настроен
}

func NewIdentity(repo *repository.Repository, redisClient *redisclient.Client) *Identity {
	return &Identity{
		Repository:  repo,
		RedisClient: redisClient,
	}
}

// WithUserCheck middleware: разрешает пользователя и при необходимости
// требует один из перечисленных уровней доступа
func (m *Identity) WithUserCheck(levels ...role.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Query("username")
		if username == "" && c.Request.Method != http.MethodGet {
			// тело кэшируется, обработчик прочитает его повторно
			var probe struct {
				Username string `json:"username"`
			}
			_ = c.ShouldBindBodyWith(&probe, binding.JSON)
			username = probe.Username
		}

		if username == "" {
			abort(c, http.StatusBadRequest, "не указано имя пользователя")
			return
		}

		user, err := m.resolve(c, username)
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrUserNotFound):
				abort(c, http.StatusBadRequest, repository.ErrUserNotFound.Error())
			case errors.Is(err, repository.ErrMissingConfiguration):
				logrus.Error("identity: ", err)
				abort(c, http.StatusInternalServerError, repository.ErrMissingConfiguration.Error())
			default:
				logrus.Error("identity: ", err)
				abort(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
			}
			return
		}

		if len(levels) > 0 && !hasLevel(user.Level, levels) {
			abort(c, http.StatusForbidden, repository.ErrForbidden.Error())
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// UserFromContext пользователь, сохранённый middleware
func UserFromContext(c *gin.Context) (*ds.UserInfo, bool) {
	v, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*ds.UserInfo)
	return user, ok
}

func (m *Identity) resolve(c *gin.Context, username string) (*ds.UserInfo, error) {
	ctx := c.Request.Context()

	if m.RedisClient != nil {
		user, err := m.RedisClient.GetUserInfo(ctx, username)
		if err != nil {
			logrus.Warnf("user cache read failed for %s: %v", username, err)
		} else if user != nil {
			return user, nil
		}
	}

	user, err := m.Repository.ResolveByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if m.RedisClient != nil {
		if err := m.RedisClient.SetUserInfo(ctx, user); err != nil {
			logrus.Warnf("user cache write failed for %s: %v", username, err)
		}
	}
	return user, nil
}

func hasLevel(level role.Level, levels []role.Level) bool {
	for _, l := range levels {
		if level == l {
			return true
		}
	}
	return false
}

func abort(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}
