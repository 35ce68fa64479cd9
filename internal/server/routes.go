// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	// Load env
	_ "github.com/joho/godotenv/autoload"

	"github.com/nateekarni/dsu-intensive-global/internal/auth"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/application"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/contact"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/dashboard"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/file"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/notification"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/program"
	"github.com/nateekarni/dsu-intensive-global/internal/controller/review"
	"github.com/nateekarni/dsu-intensive-global/internal/middleware"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	r := gin.Default()

	allowOrginsStr := os.Getenv("ALLOW_ORIGIN")
	allowOrgins := strings.Split(allowOrginsStr, ",")

	googleOauth := &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_AUTH_CLIENT"),
		ClientSecret: os.Getenv("GOOGLE_AUTH_SECRET"),
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
			"https://www.googleapis.com/auth/userinfo.openid",
		},
		Endpoint:    google.Endpoint,
		RedirectURL: os.Getenv("OAUTH_REDIRECT_URL"),
	}

	gAuth := auth.NewOauthLoginHandler(s.DB, googleOauth, "https://www.googleapis.com/oauth2/v2/userinfo")
	lAuth := auth.NewLocalAuthHandler(s.DB)
	logout := auth.NewLogoutController(s.Blacklist)

	programCtrl := program.NewProgramController(s.DB)
	applicationCtrl := application.NewApplicationController(s.DB)
	reviewCtrl := review.NewReviewController(s.DB, s.Bus)
	dashboardCtrl := dashboard.NewDashboardController(s.DB)
	fileCtrl := file.NewFileController(s.DB, s.Storage, s.Bus)
	notificationCtrl := notification.NewNotificationController(s.DB)
	contactCtrl := contact.NewContactController(s.DB)

	r.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrgins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader(), middleware.EnvRateLimitMiddleware())

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)
	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		{
			authRoute.POST("google/student", gAuth.StudentGoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)

			authRoute.POST("login", lAuth.LocalLoginHandler)
			authRoute.POST("register", lAuth.LocalRegisterHandler)
		}

		// Public catalogue and contact form
		v1.GET("program", programCtrl.GetPrograms)
		v1.GET("program/:id", programCtrl.GetProgramByID)
		v1.POST("contact", contactCtrl.SubmitHandler)

		needAuth := v1.Group("")
		{
			needAuth.Use(middleware.RequireAuth(s.DB), middleware.JwtBlacklistCheck(s.Blacklist))

			needAuth.POST("logout", logout.LogoutHandler)
			needAuth.GET("file/:id", fileCtrl.GetFile)

			notificationRoute := needAuth.Group("/notification")
			{
				notificationRoute.GET("", notificationCtrl.GetMyNotifications)
				notificationRoute.POST(":id/read", notificationCtrl.MarkRead)
			}

			needStudent := needAuth.Group("")
			{
				needStudent.Use(middleware.CheckRole(model.RoleStudent))

				studentRoute := needStudent.Group("/student")
				{
					studentRoute.GET("profile", applicationCtrl.GetProfile)
					studentRoute.PATCH("profile", applicationCtrl.UpdateProfile)
				}

				applicationRoute := needStudent.Group("/application")
				{
					applicationRoute.POST("program/:id", applicationCtrl.ApplyHandler)
					applicationRoute.GET("me", applicationCtrl.GetMyApplications)
					applicationRoute.GET(":id", applicationCtrl.GetMyApplicationByID)
					applicationRoute.POST(":id/document/:documentId", middleware.SizeLimit(10<<20), fileCtrl.UploadDocument)
					applicationRoute.POST(":id/payment/slip", middleware.SizeLimit(10<<20), fileCtrl.UploadSlip)
				}
			}

			needAdmin := needAuth.Group("/admin")
			{
				needAdmin.Use(middleware.CheckRole(model.RoleAdmin))

				needAdmin.POST("program", programCtrl.CreateProgramHandler)
				needAdmin.PATCH("program/:id", programCtrl.EditProgramHandler)
				needAdmin.POST("program/:id/archive", programCtrl.ArchiveProgramHandler)
				needAdmin.GET("program/:id/roster", reviewCtrl.GetRoster)
				needAdmin.POST("document/:documentId/template", middleware.SizeLimit(10<<20), fileCtrl.UploadTemplate)

				applicantRoute := needAdmin.Group("/applicant")
				{
					applicantRoute.GET(":id", reviewCtrl.GetApplicantByID)
					applicantRoute.PATCH(":id/document/:documentId", reviewCtrl.ReviewDocumentHandler)
					applicantRoute.POST(":id/payment/cash", reviewCtrl.RecordCashPaymentHandler)
					applicantRoute.POST(":id/interview", reviewCtrl.RecordInterviewHandler)
					applicantRoute.POST(":id/interview/reset", reviewCtrl.ResetInterviewHandler)
				}

				needAdmin.GET("dashboard", dashboardCtrl.GetOverview)
				needAdmin.GET("students", dashboardCtrl.GetStudents)
				needAdmin.GET("contact", contactCtrl.ListHandler)
				needAdmin.PATCH("contact/:id", contactCtrl.UpdateStatusHandler)
			}
		}
	}

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	resp := make(map[string]string)
	resp["message"] = "Hello World"

	c.JSON(http.StatusOK, resp)
}

func (s *MyServer) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.DB.Health())
}
