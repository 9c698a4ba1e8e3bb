package main

import (
	"context"
	"log"

	"github.com/Gaucho-Racing/Sentinel/internal/app/bootstrap"
	"github.com/dalemusser/waffle/app"
)

func main() {
	if err := app.Run(context.Background(), bootstrap.Hooks); err != nil {
		log.Fatal(err)
	}
}
