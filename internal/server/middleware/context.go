package middleware

import (
	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"
)

// AppUser is the authenticated caller extracted from the bearer token.
type AppUser struct {
	UserID      int64
	Role        string
	Permissions []string
}

// App carries the process-wide dependencies handlers need.
type App struct {
	DBConn         *pgxpool.Pool
	Queue          *amqp091.Channel
	Key            *keyfunc.Keyfunc
	MasterAPIKey   string
	MasterUserID   int64
	MasterUserRole string
}

// AppContext wraps the echo context with the app dependencies and the
// authenticated user.
type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

// AppContextMiddleware attaches the shared App to every request context.
func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app, nil})
		}
	}
}
