package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/nursingassoc/website/internal/app/controllers"
	"github.com/nursingassoc/website/internal/app/models"
	"github.com/nursingassoc/website/internal/middleware"
)

// Controllers groups every HTTP controller
type Controllers struct {
	Auth         *controllers.AuthController
	News         *controllers.NewsController
	Event        *controllers.EventController
	Member       *controllers.MemberController
	Registration *controllers.RegistrationController
	Nomination   *controllers.NominationController
	Document     *controllers.DocumentController
	Luminance    *controllers.LuminanceController
	Upload       *controllers.UploadController
	Page         *controllers.PageController
}

// SetupRouter configures all application routes. maxUploadSize bounds the
// body of upload routes; the limit includes multipart overhead.
func SetupRouter(
	router *gin.Engine,
	c *Controllers,
	authMiddleware *middleware.AuthMiddleware,
	maxUploadSize int64,
) {
	uploadLimit := middleware.MaxBodySize(maxUploadSize + 1<<20)
	staff := []gin.HandlerFunc{
		authMiddleware.JWTAuth(),
		authMiddleware.RoleRequired(models.RoleAdmin, models.RoleEditor),
	}

	api := router.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	{
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", c.Auth.Logout)

		authenticated := auth.Group("")
		authenticated.Use(authMiddleware.JWTAuth())
		{
			authenticated.GET("/me", c.Auth.Me)
			authenticated.PUT("/password", c.Auth.ChangePassword)
		}
	}

	// --- Legacy news routes ---
	news := api.Group("/news")
	{
		news.GET("", c.News.List)
		news.GET("/:title", c.News.GetByTitle)
		news.POST("", append(staff, c.News.Create)...)
	}

	// --- Public routes ---
	events := api.Group("/events")
	{
		events.GET("", c.Event.List)
		events.GET("/upcoming", c.Event.Upcoming)
		events.GET("/latest", c.Event.Latest)
		events.GET("/:id", c.Event.Get)
		events.POST("/:id/register", c.Registration.Register)
	}

	api.POST("/members/apply", c.Member.Apply)
	api.POST("/nominations", c.Nomination.Submit)

	documents := api.Group("/documents")
	{
		documents.GET("", c.Document.List)
		documents.GET("/:id", c.Document.Get)
	}

	luminance := api.Group("/luminance")
	{
		luminance.GET("", c.Luminance.List)
		luminance.GET("/current", c.Luminance.Current)
		luminance.GET("/:id", c.Luminance.Get)
	}

	api.POST("/uploads", append(staff, uploadLimit, c.Upload.Upload)...)

	// --- Admin routes ---
	admin := api.Group("/admin")
	admin.Use(staff...)
	{
		adminEvents := admin.Group("/events")
		{
			adminEvents.GET("", c.Event.List)
			adminEvents.POST("", c.Event.Create)
			adminEvents.GET("/:id", c.Event.Get)
			adminEvents.PUT("/:id", c.Event.Update)
			adminEvents.DELETE("/:id", c.Event.Delete)
			adminEvents.PUT("/:id/latest", c.Event.SetLatest)
			adminEvents.PUT("/:id/finished", c.Event.SetFinished)
			adminEvents.GET("/:id/registrations", c.Registration.ListByEvent)
		}

		registrations := admin.Group("/registrations")
		{
			registrations.PUT("/:id/approve", c.Registration.Approve)
			registrations.DELETE("/:id", c.Registration.Remove)
		}

		nonMembers := admin.Group("/non-members")
		{
			nonMembers.GET("", c.Registration.ListNonMembers)
			nonMembers.DELETE("/:id", c.Registration.DeleteNonMember)
		}

		members := admin.Group("/members")
		{
			members.GET("", c.Member.List)
			members.GET("/stats", c.Member.Stats)
			members.GET("/:id", c.Member.Get)
			members.PUT("/:id", c.Member.Update)
			members.PUT("/:id/status", c.Member.UpdateStatus)
			// Only admins may delete; it also removes the member's registrations
			members.DELETE("/:id", authMiddleware.RoleRequired(models.RoleAdmin), c.Member.Delete)
		}

		nominations := admin.Group("/nominations")
		{
			nominations.GET("", c.Nomination.List)
			nominations.GET("/:id", c.Nomination.Get)
			nominations.PUT("/:id/status", c.Nomination.UpdateStatus)
			nominations.DELETE("/:id", c.Nomination.Delete)
		}

		adminDocuments := admin.Group("/documents")
		{
			adminDocuments.POST("", uploadLimit, c.Document.Create)
			adminDocuments.PUT("/:id", c.Document.Update)
			adminDocuments.DELETE("/:id", c.Document.Delete)
		}

		adminLuminance := admin.Group("/luminance")
		{
			adminLuminance.POST("", c.Luminance.Create)
			adminLuminance.PUT("/:id", c.Luminance.Update)
			adminLuminance.PUT("/:id/current", c.Luminance.SetCurrent)
			adminLuminance.DELETE("/:id", c.Luminance.Delete)
		}
	}

	// --- Public site ---
	router.GET("/", c.Page.Home)
	router.GET("/about", c.Page.About)
	router.GET("/membership", c.Page.Membership)
	router.POST("/membership", c.Page.SubmitMembership)
	router.GET("/board", c.Page.Board)
	router.GET("/events", c.Page.Events)
	router.GET("/events/:id", c.Page.Event)
	router.POST("/events/:id/register", c.Page.RegisterForEvent)
	router.GET("/documents", c.Page.Documents)
	router.GET("/awards", c.Page.Awards)
	router.POST("/awards", c.Page.SubmitNomination)

	router.NoRoute(c.Page.NotFound)
}
