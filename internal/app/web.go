// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"

	"github.com/relabs-tech/activity_recognizer/internal/activity"
	"github.com/relabs-tech/activity_recognizer/internal/config"
	"github.com/relabs-tech/activity_recognizer/internal/orientation"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// wsHub fans each activity report out to all connected websocket clients.
type wsHub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]struct{}
}

func newWSHub() *wsHub {
	return &wsHub{clients: make(map[*websocket.Conn]struct{})}
}

func (h *wsHub) add(conn *websocket.Conn) {
	h.mu.Lock()
	h.clients[conn] = struct{}{}
	h.mu.Unlock()
}

func (h *wsHub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, conn)
	h.mu.Unlock()
	conn.Close()
}

// broadcast writes payload to every client, dropping the ones that fail.
func (h *wsHub) broadcast(payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("web: websocket write error, dropping client: %v", err)
			delete(h.clients, conn)
			conn.Close()
		}
	}
}

// RunWeb subscribes to the activity and pose topics and serves the browser
// UI: a JSON snapshot API, a websocket push channel, and the static files.
func RunWeb() error {
	cfg := config.Get()

	var (
		mu         sync.RWMutex
		lastReport activity.Report
		haveReport bool
		lastPose   orientation.Pose
		havePose   bool
	)
	hub := newWSHub()

	// 1) Connect to MQTT broker
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("web: connected to MQTT broker at %s", cfg.MQTTBroker)

	// 2) Cache the latest report and push it to websocket clients
	reportToken := client.Subscribe(cfg.TopicActivity, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r activity.Report
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			log.Printf("web: report unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastReport = r
		haveReport = true
		mu.Unlock()

		hub.broadcast(msg.Payload())
	})
	reportToken.Wait()
	if reportToken.Error() != nil {
		return reportToken.Error()
	}
	log.Printf("web: subscribed to MQTT topic %s", cfg.TopicActivity)

	poseToken := client.Subscribe(cfg.TopicPose, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var p orientation.Pose
		if err := json.Unmarshal(msg.Payload(), &p); err != nil {
			log.Printf("web: pose unmarshal error: %v", err)
			return
		}
		mu.Lock()
		lastPose = p
		havePose = true
		mu.Unlock()
	})
	poseToken.Wait()
	if poseToken.Error() != nil {
		return poseToken.Error()
	}
	log.Printf("web: subscribed to MQTT topic %s", cfg.TopicPose)

	// 3) JSON API endpoints: latest report and pose
	http.HandleFunc("/api/activity", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !haveReport {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastReport); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	http.HandleFunc("/api/orientation", func(w http.ResponseWriter, r *http.Request) {
		mu.RLock()
		defer mu.RUnlock()

		if !havePose {
			http.Error(w, "no data yet", http.StatusServiceUnavailable)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(lastPose); err != nil {
			log.Printf("web: json encode error: %v", err)
		}
	})

	// 4) Websocket: each client gets every report as it arrives
	http.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("web: websocket upgrade error: %v", err)
			return
		}
		hub.add(conn)
		log.Printf("web: websocket client connected from %s", r.RemoteAddr)

		// Seed the new client with the current state, if any.
		mu.RLock()
		if haveReport {
			if payload, err := json.Marshal(lastReport); err == nil {
				conn.WriteMessage(websocket.TextMessage, payload)
			}
		}
		mu.RUnlock()

		// Drain reads so we notice the client going away.
		go func() {
			defer hub.remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	})

	// 5) Static files from ./web as the root
	fs := http.FileServer(http.Dir("web"))
	http.Handle("/", fs)

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	log.Printf("web: server listening on %s", addr)
	return http.ListenAndServe(addr, nil)
}
