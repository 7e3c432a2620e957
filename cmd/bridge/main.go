package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/tuio-bridge/backend/internal/bridge"
	"github.com/tuio-bridge/backend/internal/config"
	"github.com/tuio-bridge/backend/internal/monitor"
	"github.com/tuio-bridge/backend/internal/udp"
	"github.com/tuio-bridge/backend/internal/ws"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to config file")
	port := flag.Int("port", 0, "Override inbound listen port")
	tuioHost := flag.String("tuio-host", "", "Override TUIO destination host")
	tuioPort := flag.Int("tuio-port", 0, "Override TUIO destination port")
	flag.Parse()

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *tuioHost != "" {
		cfg.TUIO.Host = *tuioHost
	}
	if *tuioPort > 0 {
		cfg.TUIO.Port = *tuioPort
	}

	sender, err := udp.Dial(cfg.TUIO.Host, cfg.TUIO.Port)
	if err != nil {
		log.Fatalf("Failed to open TUIO destination: %v", err)
	}
	log.Printf("Sending TUIO datagrams to %s:%d", cfg.TUIO.Host, cfg.TUIO.Port)

	b := bridge.New(sender)

	health, err := monitor.NewHealth()
	if err != nil {
		log.Printf("Process health unavailable: %v", err)
	}

	server := ws.NewServer(b, health)
	mux := http.NewServeMux()
	server.SetupRoutes(mux)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("Shutting down...")
		sender.Close()
		os.Exit(0)
	}()

	if err := ws.ListenAndServe(cfg.Server.Host, cfg.Server.Port, mux); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
