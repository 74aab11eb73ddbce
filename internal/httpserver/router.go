package httpserver

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Skotchmaster/book_library/internal/metrics"
	authmw "github.com/Skotchmaster/book_library/internal/middleware/auth"
)

type Deps struct {
	AuthHandler     *AuthHTTP
	BookHandler     *BookHTTP
	FavoriteHandler *FavoriteHTTP
	AdminHandler    *AdminHTTP
	SearchHandler   *SearchHTTP
	AuthMW          *authmw.Middleware
	Metrics         *metrics.Collector
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	if d.Metrics != nil {
		e.Use(d.Metrics.Middleware())
		e.GET("/metrics", echo.WrapHandler(d.Metrics.Handler()))
	}

	api := e.Group("/api")

	auth := api.Group("/auth", middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20)))
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/refresh", d.AuthHandler.Refresh)

	books := api.Group("/books")
	books.GET("", d.BookHandler.GetBooks)
	books.GET("/category/:category", d.BookHandler.GetBooksByCategory)
	books.GET("/search", d.BookHandler.SearchBooks)
	books.GET("/:id", d.BookHandler.GetBook)

	if d.SearchHandler != nil {
		api.GET("/search", d.SearchHandler.Search)
	}

	favorites := api.Group("/favorites", d.AuthMW.RequireUser)
	favorites.GET("/user/:userId", d.FavoriteHandler.GetUserFavorites)
	favorites.GET("/check", d.FavoriteHandler.CheckFavorite)
	favorites.POST("", d.FavoriteHandler.AddFavorite)
	favorites.PUT("/:id/read", d.FavoriteHandler.ToggleRead)
	favorites.DELETE("/:id", d.FavoriteHandler.RemoveFavorite)

	admin := api.Group("/admin", d.AuthMW.RequireAdmin)
	admin.GET("/users", d.AdminHandler.ListUsers)
	admin.GET("/users/:id", d.AdminHandler.GetUser)
	admin.POST("/users", d.AdminHandler.CreateUser)
	admin.PUT("/users/:id", d.AdminHandler.UpdateUser)
	admin.DELETE("/users/:id", d.AdminHandler.DeleteUser)

	admin.POST("/books", d.AdminHandler.CreateBook)
	admin.PUT("/books/:id", d.AdminHandler.UpdateBook)
	admin.DELETE("/books/:id", d.AdminHandler.DeleteBook)
}
