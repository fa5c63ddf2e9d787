package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"

	"github.com/studentnest/studentnest-backend/internal/app"
	"github.com/studentnest/studentnest-backend/internal/cache"
	"github.com/studentnest/studentnest-backend/internal/config"
	"github.com/studentnest/studentnest-backend/internal/controllers"
	"github.com/studentnest/studentnest-backend/internal/middleware"
	"github.com/studentnest/studentnest-backend/internal/repositories"
	"github.com/studentnest/studentnest-backend/internal/routes"
	"github.com/studentnest/studentnest-backend/internal/services"
	"github.com/studentnest/studentnest-backend/internal/utils"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()
	defer cfg.Close()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize studentnest-backend:", err)
	}
	defer application.Close()

	userRepo := repositories.NewUserRepository(application.DB)
	propRepo := repositories.NewPropertyRepository(application.DB)
	inquiryRepo := repositories.NewInquiryRepository(application.DB)
	viewingRepo := repositories.NewViewingRepository(application.DB)
	savedRepo := repositories.NewSavedPropertyRepository(application.DB)
	notificationRepo := repositories.NewNotificationRepository(application.DB)

	var notificationCache cache.Cache
	if application.Redis != nil {
		notificationCache = cache.NewRedisCache(application.Redis)
	}

	authSvc := services.NewAuthService(userRepo)
	listingSvc := services.NewListingService(propRepo, userRepo, cfg.LDFlag_BrowseActiveOnly)
	notificationSvc := services.NewNotificationService(notificationRepo, notificationCache)
	engagementSvc := services.NewEngagementService(inquiryRepo, viewingRepo, propRepo, userRepo, notificationSvc)
	savedSvc := services.NewSavedPropertyService(savedRepo, propRepo, userRepo)
	dashboardSvc := services.NewDashboardService(propRepo, inquiryRepo, viewingRepo, notificationRepo, userRepo)
	sweepSvc := services.NewViewingSweepService(viewingRepo)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedTestData(context.Background(), userRepo, propRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		} else {
			utils.Logger.Info("Seeded test data successfully")
		}
	}

	healthController := controllers.NewHealthCheckController(application.DB)
	authController := controllers.NewAuthController(authSvc)
	listingController := controllers.NewListingController(listingSvc, authSvc)
	engagementController := controllers.NewEngagementController(engagementSvc, authSvc)
	savedController := controllers.NewSavedPropertyController(savedSvc, authSvc)
	notificationController := controllers.NewNotificationController(notificationSvc, authSvc)
	dashboardController := controllers.NewDashboardController(dashboardSvc, authSvc)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.CheckHealth).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.AuthSession, authController.CreateSession).Methods(http.MethodPost)
	secured.HandleFunc(routes.AuthRole, authController.SelectRole).Methods(http.MethodPost)

	secured.HandleFunc(routes.PropertiesMy, listingController.ListMy).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertiesMyDetail, engagementController.GetPropertyEngagement).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertiesUpsert, listingController.Upsert).Methods(http.MethodPost)
	secured.HandleFunc(routes.PropertiesBrowse, listingController.Browse).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertiesDetail, listingController.GetByID).Methods(http.MethodGet)
	secured.HandleFunc(routes.PropertiesDelete, listingController.Delete).Methods(http.MethodDelete)

	secured.HandleFunc(routes.Inquiries, engagementController.SendInquiry).Methods(http.MethodPost)
	secured.HandleFunc(routes.InquiryResponse, engagementController.RespondToInquiry).Methods(http.MethodPost)
	secured.HandleFunc(routes.InquiryStatus, engagementController.UpdateInquiryStatus).Methods(http.MethodPatch)
	secured.HandleFunc(routes.Viewings, engagementController.ScheduleViewing).Methods(http.MethodPost)
	secured.HandleFunc(routes.ViewingStatus, engagementController.UpdateViewingStatus).Methods(http.MethodPatch)
	secured.HandleFunc(routes.EngagementMyInquiries, engagementController.GetMyEngagement).Methods(http.MethodGet)

	secured.HandleFunc(routes.SavedToggle, savedController.Toggle).Methods(http.MethodPost)
	secured.HandleFunc(routes.SavedList, savedController.List).Methods(http.MethodGet)

	secured.HandleFunc(routes.Notifications, notificationController.List).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationsUnread, notificationController.UnreadCount).Methods(http.MethodGet)
	secured.HandleFunc(routes.NotificationMarkRead, notificationController.MarkRead).Methods(http.MethodPost)
	secured.HandleFunc(routes.NotificationMarkAllRead, notificationController.MarkAllRead).Methods(http.MethodPost)

	secured.HandleFunc(routes.Dashboard, dashboardController.Get).Methods(http.MethodGet)

	c := cron.New()
	_, sweepErr := c.AddFunc("@every 10m", func() {
		if e := sweepSvc.RunCompletionSweep(context.Background()); e != nil {
			utils.Logger.WithError(e).Error("Viewing completion sweep failed")
		}
	})
	if sweepErr != nil {
		utils.Logger.WithError(sweepErr).Fatal("Failed to schedule viewing completion sweep")
	}
	c.Start()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("studentnest-backend failed to start:", err)
	}
}
