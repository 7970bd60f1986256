package server

import (
	logger "github.com/sirupsen/logrus"

	"tracepage/src/database"
	"tracepage/src/middleware"
	"tracepage/src/repository"
	"tracepage/src/settings"
)

// NewApp builds the demo application. A failed database connection is
// logged and leaves the note routes failing, so the failure can be
// inspected on the debug page.
func NewApp(debug settings.Config) (*App, error) {
	dbConfig := database.GetConfig()
	if err := database.InitMainDB(); err != nil {
		logger.WithError(err).Warn("Failed to connect to database")
	}

	m, err := middleware.FromConfig(debug, map[string]any{
		"database_url": dbConfig.DatabaseURL,
		"app_token":    "demo-app-token",
	})
	if err != nil {
		return nil, err
	}
	return &App{
		Notes: repository.NewNoteRepository(database.MainDB),
		Debug: m.WithSession(CookieSession),
	}, nil
}

// Run starts the demo server from the environment.
func Run() error {
	config := GetConfig()
	SetupLogger(config)
	logger.WithField("app", config.AppName).Info("Starting demo server")

	app, err := NewApp(settings.GetConfig())
	if err != nil {
		return err
	}
	return StartServer(config.Port, NewRouter(app))
}
