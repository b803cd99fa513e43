package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"ttreviews/bot"
	"ttreviews/config"
	"ttreviews/db"
	"ttreviews/handler/review"
	"ttreviews/model"
	"ttreviews/moderation"
	"ttreviews/storage"
	"ttreviews/web"
)

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := config.LoadConfig(); err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if config.Cfg.Token == "" {
		log.Warn("Discord token is empty!")
	}

	db.InitDB(config.Cfg.Database.Path)

	var assets moderation.AssetStore
	if config.Cfg.Assets.Endpoint != "" {
		store, err := storage.NewAssetStore(config.Cfg.Assets)
		if err != nil {
			log.Fatalf("Error connecting to object storage: %v", err)
		}
		assets = store
	}

	store := db.NewStore()
	svc := moderation.New(store, assets)
	svc.OnApproved(model.KindEquipment, db.PublishEquipment)
	svc.OnApproved(model.KindPlayer, db.PublishPlayer)
	svc.OnApproved(model.KindPlayerEdit, db.ApplyPlayerEdit)
	svc.AddNotifier(db.NewStatsRecorder())

	review.RegisterHandlers(svc)

	dg, err := bot.New(config.Cfg.Token)
	if err != nil {
		log.Fatalf("Error creating Discord session: %v", err)
	}

	if err := dg.Open(); err != nil {
		log.Fatalf("Error opening Discord connection: %v", err)
	}
	defer dg.Close()

	bot.RegisterCommands(dg, config.Cfg.Commands.AllowGuilds)

	// Decisions made through the admin API get announced on Discord too.
	svc.AddNotifier(review.NewAnnouncer(dg))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := web.NewServer(svc, store, config.Cfg.Admin)
	go func() {
		if err := server.ListenAndServe(ctx); err != nil {
			log.Errorf("Admin API stopped: %v", err)
		}
	}()

	log.Info("Bot is now running. Press CTRL-C to exit.")
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc
}
