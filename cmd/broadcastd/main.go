package main

import (
	"log"

	"github.com/zbreeden/FourTwentyAnalytics/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ broadcastd failed to start: %v", err)
	}
}
