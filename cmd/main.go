package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/saeidalz13/battleship-client/api"
	"github.com/saeidalz13/battleship-client/internal/config"
	mb "github.com/saeidalz13/battleship-client/models/battleship"
)

func main() {
	cfg, err := config.Load(".env", os.Args[1:])
	if err != nil {
		panic(err)
	}

	match, err := mb.NewMatch(cfg.PlayerName, cfg.BoardRows, cfg.BoardCols)
	if err != nil {
		panic(err)
	}
	log.SetPrefix(fmt.Sprintf("[%s] ", match.Uuid))
	match.Fleet.SetLegacyRotation(cfg.Rotation == config.RotationLegacy)

	dialer, err := api.NewDialer(cfg.Transport, cfg.WsPath, api.DefaultDialTimeout)
	if err != nil {
		panic(err)
	}

	client := api.NewClient(
		match,
		api.WithAddr(cfg.ServerHost, cfg.ServerPort),
		api.WithDialer(dialer),
		api.WithReplyTimeout(cfg.ReplyTimeout),
		api.WithPushTimeout(cfg.PushTimeout),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	console := NewConsole(match, os.Stdin, os.Stdout)
	go func() {
		// Leaving the console leaves the match.
		_ = console.Run(ctx)
		stop()
	}()

	log.Printf("player %s connecting to %s over %s\n", cfg.PlayerName, client.Addr(), cfg.Transport)
	err = client.Run(ctx)

	switch {
	case err == nil:
		log.Printf("match finished: %s\n", match.State.Phase())

	case errors.Is(err, context.Canceled):
		log.Println("match abandoned")

	default:
		log.Println("client stopped:", err)
		stop()
		os.Exit(1)
	}
}
