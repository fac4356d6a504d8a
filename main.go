package main

import (
	"context"
	"heartflow/app/client/judge"
	"heartflow/app/config"
	"heartflow/app/server"
	"heartflow/app/service/chatstate"
	"heartflow/app/service/conversation"
	"heartflow/app/service/engine"
	"heartflow/app/service/heartflow"
	"heartflow/app/service/persona"
	"heartflow/app/service/queue"
	"heartflow/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, judge.NewClient)
	do.Provide(di, chatstate.New)
	do.Provide(di, conversation.New)
	do.Provide(di, persona.New)
	do.Provide(di, func(di *do.Injector) (*persona.Summarizer, error) {
		return persona.NewSummarizer(do.MustInvoke[*judge.Client](di)), nil
	})
	do.Provide(di, queue.New)
	do.Provide(di, heartflow.New)
	do.Provide(di, engine.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	engineSvc := do.MustInvoke[*engine.Service](di)

	go engineSvc.Run(appCtx)
	go do.MustInvoke[*server.Server](di).Run()

	// The host reply path attaches here: every accepted message should go
	// through the same generation pipeline as a direct mention.
	go func() {
		for msg := range engineSvc.Accepted() {
			slog.Info("message handed to the reply path",
				"chat_id", msg.ChatID,
				"sender", msg.SenderName,
				"addressed", msg.Addressed())
		}
	}()

	<-appCtx.Done()
}
