package main

import (
	"log"

	"github.com/MrSnakeDoc/recommendations/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ recommendations failed to start: %v", err)
	}
}
