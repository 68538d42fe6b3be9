package main

import (
	"log"

	"github.com/MrSnakeDoc/planopro/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("❌ planopro failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("❌ planopro stopped with error: %v", err)
	}
}
