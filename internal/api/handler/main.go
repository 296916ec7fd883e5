package handler

import (
	"net/http"

	"workshop/internal/services"

	"github.com/hiendaovinh/toolkit/pkg/httpx-echo"
	"github.com/labstack/echo-contrib/pprof"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/samber/do"
)

type Config struct {
	Container *do.Injector
	Mode      string
	Origins   []string
}

func New(cfg *Config) (http.Handler, error) {
	r := echo.New()
	r.Pre(middleware.RemoveTrailingSlash())
	if cfg.Mode == "debug" {
		r.Debug = true
		pprof.Register(r)
	}

	r.JSONSerializer = httpx.SegmentJSONSerializer{}
	r.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339}\t${method}\t${uri}\t${status}\t${latency_human}\n",
	}))
	r.Use(middleware.Recover())

	r.GET("", func(c echo.Context) error {
		return c.String(http.StatusOK, "✨")
	})

	bot, err := do.Invoke[*services.Bot](cfg.Container)
	if err != nil {
		return nil, err
	}

	cors := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Origins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		MaxAge:           60 * 60,
	})

	routesAPI := r.Group("/api")
	routesAPI.Use(cors)
	routesAPI.Use(Authn(bot)) // Authn will NOT terminate unauthenticated requests.

	routesUsers := routesAPI.Group("/users")
	{
		u := groupUser{cfg.Container}
		routesUsers.GET("/:id", u.Show)
		routesUsers.POST("/register", u.Register)
		routesUsers.POST("/change-role", u.ChangeRole)
	}

	routesWebapp := routesAPI.Group("/webapp")
	{
		u := groupUser{cfg.Container}
		routesWebapp.GET("/roles", u.GetRoles)
		routesWebapp.GET("/characters/:roleId", u.GetCharacters)
		routesWebapp.GET("/leaderboard", u.GetLeaderboard)
		routesWebapp.GET("/activity", u.GetActivity)

		q := groupQuiz{cfg.Container}
		routesWebapp.GET("/quizzes", q.List)
		routesWebapp.POST("/quizzes/:id/submit", q.Submit)

		m := groupMarathon{cfg.Container}
		routesWebapp.GET("/marathons", m.List)
		routesWebapp.POST("/marathons/:id/start", m.Start)
		routesWebapp.POST("/marathons/:id/submit-day", m.SubmitDay)

		i := groupInteractive{cfg.Container}
		routesWebapp.GET("/interactives", i.List)
		routesWebapp.POST("/interactives/:id/submit", i.Submit)

		s := groupShop{cfg.Container}
		routesWebapp.GET("/shop/items", s.GetItems)
		routesWebapp.POST("/shop/purchase", s.Purchase)
		routesWebapp.GET("/shop/purchases", s.GetPurchases)

		ct := groupContent{cfg.Container}
		routesWebapp.POST("/upload-work", ct.UploadWork)
		routesWebapp.GET("/my-works", ct.GetMyWorks)
		routesWebapp.GET("/channel-posts", ct.GetChannelPosts)
		routesWebapp.POST("/posts/:postId/review", ct.SubmitReview)
	}

	routesAdmin := routesAPI.Group("/admin")
	{
		a := groupAdmin{cfg.Container}
		routesAdmin.POST("/login", a.Login)

		routesAdmin.Use(AuthnAdmin(cfg.Container))

		routesAdmin.GET("/roles", a.GetRoles)
		routesAdmin.POST("/roles", a.CreateRole)
		routesAdmin.PUT("/roles/:id", a.EditRole)
		routesAdmin.DELETE("/roles/:id", a.DeleteRole)

		routesAdmin.GET("/characters", a.GetCharacters)
		routesAdmin.POST("/characters", a.CreateCharacter)
		routesAdmin.PUT("/characters/:id", a.EditCharacter)
		routesAdmin.DELETE("/characters/:id", a.DeleteCharacter)

		routesAdmin.GET("/quizzes", a.GetQuizzes)
		routesAdmin.POST("/quizzes", a.CreateQuiz)
		routesAdmin.PUT("/quizzes/:id", a.EditQuiz)
		routesAdmin.DELETE("/quizzes/:id", a.DeleteQuiz)

		routesAdmin.GET("/marathons", a.GetMarathons)
		routesAdmin.POST("/marathons", a.CreateMarathon)
		routesAdmin.PUT("/marathons/:id", a.EditMarathon)
		routesAdmin.DELETE("/marathons/:id", a.DeleteMarathon)

		routesAdmin.GET("/shop/items", a.GetShopItems)
		routesAdmin.POST("/shop/items", a.CreateShopItem)
		routesAdmin.PUT("/shop/items/:id", a.EditShopItem)
		routesAdmin.DELETE("/shop/items/:id", a.DeleteShopItem)

		routesAdmin.GET("/channel-posts", a.GetChannelPosts)
		routesAdmin.POST("/channel-posts", a.CreateChannelPost)
		routesAdmin.PUT("/channel-posts/:id", a.EditChannelPost)
		routesAdmin.DELETE("/channel-posts/:id", a.DeleteChannelPost)

		routesAdmin.GET("/interactives", a.GetInteractives)
		routesAdmin.POST("/interactives", a.CreateInteractive)
		routesAdmin.PUT("/interactives/:id", a.EditInteractive)
		routesAdmin.DELETE("/interactives/:id", a.DeleteInteractive)

		routesAdmin.GET("/settings", a.GetSettings)
		routesAdmin.PUT("/settings", a.SetSetting)

		routesAdmin.GET("/user-works", a.GetPendingWorks)
		routesAdmin.POST("/user-works/:id/moderate", a.ModerateWork)
		routesAdmin.GET("/reviews", a.GetPendingReviews)
		routesAdmin.POST("/reviews/:id/moderate", a.ModerateReview)

		routesAdmin.GET("/stats", a.GetStats)
		routesAdmin.GET("/full-stats", a.GetFullStats)
		routesAdmin.GET("/users-report", a.GetUsersReport)
	}

	return r, nil
}
