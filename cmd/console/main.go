package main

import (
	"log"

	"github.com/relabs-tech/activity_recognizer/internal/app"
	"github.com/relabs-tech/activity_recognizer/internal/config"
)

func main() {
	log.Println("starting activity-recognizer console (MQTT subscriber)")

	if err := config.InitGlobal("activity_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunConsole(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
