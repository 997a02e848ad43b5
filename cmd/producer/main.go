// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"

	"github.com/relabs-tech/activity_recognizer/internal/app"
	"github.com/relabs-tech/activity_recognizer/internal/config"
)

func main() {
	log.Println("starting activity-recognizer producer")

	// Load configuration
	if err := config.InitGlobal("activity_config.txt"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunActivityProducer(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
