package pkg

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"orders-backend/internal/app/config"
	"orders-backend/internal/app/handler"
	"orders-backend/internal/app/middleware"
)

type Application struct {
	Config   *config.Config
	Router   *gin.Engine
	Handler  *handler.Handler
	Identity *middleware.Identity
}

func NewApp(c *config.Config, r *gin.Engine, h *handler.Handler, i *middleware.Identity) *Application {
	return &Application{
		Config:   c,
		Router:   r,
		Handler:  h,
		Identity: i,
	}
}

func (a *Application) RunApp() {
	logrus.Info("Server start up")

	// Регистрируем статические файлы и маршруты
	a.Handler.RegisterStatic(a.Router)
	a.Handler.RegisterAPIRoutes(a.Router, a.Identity)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	logrus.Infof("Starting server on %s", serverAddress)

	if err := a.Router.Run(serverAddress); err != nil {
		logrus.Fatal(err)
	}

	logrus.Info("Server down")
}
