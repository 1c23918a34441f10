package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"lot-bidding/internal/auction"
	"lot-bidding/internal/auth"
	bidding "lot-bidding/internal/biddingService"
	"lot-bidding/internal/broadcast"
	"lot-bidding/internal/config"
	"lot-bidding/internal/db"
	model "lot-bidding/internal/models"
	"lot-bidding/internal/notify"
	"lot-bidding/internal/repository"
	"lot-bidding/internal/server"
	"lot-bidding/internal/sweep"
	"lot-bidding/utils"
)

func main() {
	cfg, err := config.Load(os.Getenv("LOT_CONFIG"))
	if err != nil {
		utils.Fatal("failed to load config", map[string]any{"error": err.Error()})
	}
	utils.Configure(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, closeRepo := openRepository(cfg.DB)
	defer closeRepo()

	var (
		layer  broadcast.Layer = broadcast.NewLocalLayer()
		outbox notify.Outbox   = notify.NewMemoryOutbox()
	)
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			utils.Fatal("failed to reach redis", map[string]any{"addr": cfg.Redis.Addr, "error": err.Error()})
		}
		layer = broadcast.NewRedisLayer(rdb, cfg.Redis.ChannelPrefix)
		outbox = notify.NewRedisOutbox(rdb, cfg.Redis.OutboxKey)
		utils.Info("using redis broadcast layer", map[string]any{"addr": cfg.Redis.Addr})
	}

	clock := auction.NewClock(cfg.Bidding.ExtensionWindow, cfg.Bidding.MaxExtension)
	gate := auction.NewGate(clock, cfg.Bidding.FirstBidDelay, cfg.Bidding.ChatGrace)
	biddingSvc := bidding.NewBiddingService(repo,
		bidding.WithClock(clock),
		bidding.WithGate(gate),
		bidding.WithOutbox(outbox),
	)

	hub := broadcast.NewHub(layer, biddingSvc, cfg.Broadcast.ReplayLimit, cfg.Broadcast.ClientBuffer)
	if err := hub.Start(ctx); err != nil {
		utils.Fatal("failed to start broadcast hub", map[string]any{"error": err.Error()})
	}
	biddingSvc.SetPublisher(hub)

	if cfg.Sweep.Enabled {
		runner := sweep.NewRunner(ctx)
		closer := sweep.NewCloser(biddingSvc, cfg.Sweep.BatchSize)
		if _, err := runner.Add(cfg.Sweep.Schedule, closer.Job); err != nil {
			utils.Fatal("invalid sweep schedule", map[string]any{"schedule": cfg.Sweep.Schedule, "error": err.Error()})
		}
		runner.Start()
		defer runner.Stop()
	}

	secret := cfg.Auth.JWTSecret
	if secret == "" {
		if secret, err = utils.GenerateSecret(); err != nil {
			utils.Fatal("failed to generate jwt secret", map[string]any{"error": err.Error()})
		}
		utils.Warn("auth.jwt_secret is empty; using a random secret, tokens will not survive a restart", nil)
	}
	jwt := auth.JWT{Secret: []byte(secret), TokenTTL: cfg.Auth.TokenTTL}

	router := server.SetupRouter(biddingSvc, hub, jwt, server.Options{AllowedOrigins: cfg.Server.AllowedOrigins})
	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		utils.Info("starting auction server", map[string]any{"addr": cfg.Server.HTTPAddr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Fatal("failed to start server", map[string]any{"error": err.Error()})
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("server shutdown failed", map[string]any{"error": err.Error()})
	}
	utils.Info("server stopped", nil)
}

// openRepository returns the Postgres store when a DSN is configured and a
// seeded in-memory store otherwise
func openRepository(cfg config.DBConfig) (repository.AuctionDB, func()) {
	if cfg.DSN == "" {
		repo := repository.NewMemoryRepo()
		prepopulateLots(repo)
		utils.Info("using in-memory repository", nil)
		return repo, func() {}
	}

	conn, err := db.Open(cfg)
	if err != nil {
		utils.Fatal("failed to open database", map[string]any{"error": err.Error()})
	}
	if cfg.AutoMigrate {
		if err := db.AutoMigrate(conn); err != nil {
			utils.Fatal("failed to migrate database", map[string]any{"error": err.Error()})
		}
	}
	return repository.NewGormRepo(conn.Gorm), func() {
		if err := db.Close(conn); err != nil {
			utils.Warn("failed to close database", map[string]any{"error": err.Error()})
		}
	}
}

// prepopulateLots adds sample users and lots to the in-memory repo
func prepopulateLots(repo *repository.MemoryRepo) {
	now := time.Now().UTC()
	created := now.Add(-time.Hour)
	soon := now.Add(10 * time.Minute)
	later := now.Add(2 * time.Hour)
	buyNow := int64(500)

	users := []model.User{
		{UserID: "seller1", Username: "seller1"},
		{UserID: "user1", Username: "user1"},
		{UserID: "user2", Username: "user2"},
	}
	for _, u := range users {
		repo.AddUser(u)
	}

	repo.AddAuction(model.Auction{AuctionID: "auction1", OwnerID: "seller1", Title: "Spring sale", StartTime: created, ChatEnabled: true})
	auctionID := "auction1"

	lots := []model.Lot{
		{LotID: "lot1", AuctionID: &auctionID, SellerID: "seller1", Title: "Brass lamp", ReservePrice: 100, DateCreated: created, DateEnd: &later, DynamicEnd: true, ChatEnabled: true},
		{LotID: "lot2", SellerID: "seller1", Title: "Oak chair", ReservePrice: 200, BuyNowPrice: &buyNow, DateCreated: created, DateEnd: &soon, DynamicEnd: true, ChatEnabled: true},
		{LotID: "lot3", SellerID: "seller1", Title: "Sealed painting", ReservePrice: 150, DateCreated: created, DateEnd: &later, SealedBid: true, ChatEnabled: true},
	}
	for _, lot := range lots {
		repo.AddLot(lot)
	}
}
