package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"fitlink-backend/internal/handler"
	"fitlink-backend/internal/logger"
	appmw "fitlink-backend/internal/middleware"
	"fitlink-backend/internal/realtime"
	"fitlink-backend/internal/repository"
	"fitlink-backend/internal/service"
	"fitlink-backend/internal/storage"
)

type Server struct {
	e   *echo.Echo
	log *logger.Logger

	ledgerRepo   repository.XPLedgerRepository
	achRepo      repository.AchievementRepository
	notifRepo    repository.NotificationRepository
	postRepo     repository.PostRepository
	friendRepo   repository.FriendRequestRepository
	convRepo     repository.ConversationRepository
	challRepo    repository.ChallengeRepository
	eventRepo    repository.EventRepository
	placeRepo    repository.PlaceRepository
	listingRepo  repository.ListingRepository
	orderRepo    repository.OrderRepository
	sync         *realtime.SyncAdapter
	sha          string
	build        string
}

// authUnavailable stands in for RequireAuth when the token verifier could
// not be constructed. Gated routes must never run open, so every request
// is rejected until auth is configured.
func authUnavailable(echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("auth_unavailable", "authentication is not configured"))
	}
}

func New(log *logger.Logger, bus realtime.Bus, uploader storage.Uploader, firebaseProjectID, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	ledgerRepo := repository.NewXPLedgerRepository(nil)
	ledgerRepo.SetBus(bus)
	achRepo := repository.NewAchievementRepository(nil)
	notifRepo := repository.NewNotificationRepository(nil)
	postRepo := repository.NewPostRepository(nil)
	friendRepo := repository.NewFriendRequestRepository(nil)
	convRepo := repository.NewConversationRepository(nil)
	challRepo := repository.NewChallengeRepository(nil)
	eventRepo := repository.NewEventRepository(nil)
	placeRepo := repository.NewPlaceRepository(nil)
	listingRepo := repository.NewListingRepository(nil)
	orderRepo := repository.NewOrderRepository(nil)

	notifSvc := service.NewNotificationService(notifRepo)
	xpSvc := service.NewXPService(ledgerRepo, achRepo, notifSvc)
	feedSvc := service.NewFeedService(postRepo, xpSvc)
	socialSvc := service.NewSocialService(friendRepo, xpSvc)
	chatSvc := service.NewChatService(convRepo, xpSvc)
	challSvc := service.NewChallengeService(challRepo, xpSvc)
	eventSvc := service.NewEventService(eventRepo, xpSvc, notifSvc)
	placeSvc := service.NewPlaceService(placeRepo)
	marketSvc := service.NewMarketplaceService(listingRepo, orderRepo, xpSvc, notifSvc)

	syncAdapter := realtime.NewSyncAdapter(log, bus, ledgerRepo)

	xpHandler := handler.NewXPHandler(xpSvc, syncAdapter)
	notifHandler := handler.NewNotificationHandler(notifSvc)
	feedHandler := handler.NewFeedHandler(feedSvc)
	socialHandler := handler.NewSocialHandler(socialSvc)
	chatHandler := handler.NewChatHandler(chatSvc)
	challHandler := handler.NewChallengeHandler(challSvc)
	eventHandler := handler.NewEventHandler(eventSvc)
	placeHandler := handler.NewPlaceHandler(placeSvc)
	marketHandler := handler.NewMarketplaceHandler(marketSvc)
	uploadHandler := handler.NewUploadHandler(uploader)

	authMw, err := appmw.NewAuthMiddleware(context.Background(), firebaseProjectID)
	if err != nil {
		log.Error("firebase auth unavailable, auth-gated routes reject", "error", err)
	}
	requireAuth := authUnavailable
	if authMw != nil {
		requireAuth = authMw.RequireAuth
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api")

	api.GET("/me/xp", xpHandler.GetMe, requireAuth)
	api.GET("/me/xp/stream", xpHandler.Stream, requireAuth)
	api.GET("/me/achievements", xpHandler.ListAchievements, requireAuth)
	api.POST("/me/wearable/sync", xpHandler.WearableSync, requireAuth)
	api.GET("/me/notifications", notifHandler.List, requireAuth)
	api.POST("/me/notifications/read", notifHandler.MarkAllRead, requireAuth)

	api.GET("/posts", feedHandler.List)
	api.POST("/posts", feedHandler.Create, requireAuth)
	api.POST("/posts/:id/like", feedHandler.Like, requireAuth)
	api.GET("/posts/:id/comments", feedHandler.ListComments)
	api.POST("/posts/:id/comments", feedHandler.Comment, requireAuth)

	api.GET("/friend-requests", socialHandler.List, requireAuth)
	api.POST("/friend-requests", socialHandler.SendRequest, requireAuth)
	api.POST("/friend-requests/:id/accept", socialHandler.Accept, requireAuth)
	api.POST("/friend-requests/:id/reject", socialHandler.Reject, requireAuth)

	api.GET("/conversations", chatHandler.ListConversations, requireAuth)
	api.POST("/conversations", chatHandler.Start, requireAuth)
	api.GET("/conversations/:id/messages", chatHandler.ListMessages, requireAuth)
	api.POST("/conversations/:id/messages", chatHandler.Send, requireAuth)

	api.GET("/challenges", challHandler.List)
	api.GET("/challenges/:id", challHandler.Get)
	api.POST("/challenges", challHandler.Create, requireAuth)
	api.POST("/challenges/:id/join", challHandler.Join, requireAuth)

	api.GET("/events", eventHandler.List)
	api.GET("/events/:id", eventHandler.Get)
	api.POST("/events", eventHandler.Create, requireAuth)
	api.POST("/events/:id/register", eventHandler.Register, requireAuth)

	api.GET("/places", placeHandler.List)
	api.GET("/places/:id", placeHandler.Get)
	api.POST("/places", placeHandler.Create, requireAuth)

	api.GET("/listings", marketHandler.ListListings)
	api.GET("/listings/:id", marketHandler.GetListing)
	api.POST("/listings", marketHandler.CreateListing, requireAuth)
	api.POST("/listings/:id/order", marketHandler.PlaceOrder, requireAuth)
	api.GET("/me/listings", marketHandler.ListMine, requireAuth)
	api.GET("/me/orders", marketHandler.ListOrders, requireAuth)
	api.POST("/orders/:id/complete", marketHandler.CompleteOrder, requireAuth)
	api.POST("/orders/:id/cancel", marketHandler.CancelOrder, requireAuth)

	api.POST("/uploads", uploadHandler.Upload, requireAuth)

	return &Server{
		e:           e,
		log:         log,
		ledgerRepo:  ledgerRepo,
		achRepo:     achRepo,
		notifRepo:   notifRepo,
		postRepo:    postRepo,
		friendRepo:  friendRepo,
		convRepo:    convRepo,
		challRepo:   challRepo,
		eventRepo:   eventRepo,
		placeRepo:   placeRepo,
		listingRepo: listingRepo,
		orderRepo:   orderRepo,
		sync:        syncAdapter,
		sha:         sha,
		build:       buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

// StartSync begins listening for ledger change signals. Safe to call once
// the bus connection is up, even if the DB is still being wired.
func (s *Server) StartSync(ctx context.Context) error {
	return s.sync.Start(ctx)
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.sync.Close()
	return s.e.Shutdown(ctx)
}

// SetDB late-binds the database so the HTTP listener can come up before
// the Cloud SQL connection is ready.
func (s *Server) SetDB(db *gorm.DB) {
	s.ledgerRepo.SetDB(db)
	s.achRepo.SetDB(db)
	s.notifRepo.SetDB(db)
	s.postRepo.SetDB(db)
	s.friendRepo.SetDB(db)
	s.convRepo.SetDB(db)
	s.challRepo.SetDB(db)
	s.eventRepo.SetDB(db)
	s.placeRepo.SetDB(db)
	s.listingRepo.SetDB(db)
	s.orderRepo.SetDB(db)
}
