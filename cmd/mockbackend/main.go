package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := initializeServer()
	if err != nil {
		log.Fatalf("failed to wire mock backend: %v", err)
	}

	if err := server.Run(ctx); err != nil {
		log.Fatalf("mock backend stopped with error: %v", err)
	}
}
