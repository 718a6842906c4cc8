package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/rosettapad/rosettapad/internal/api"
	"github.com/rosettapad/rosettapad/internal/bluetooth"
	"github.com/rosettapad/rosettapad/internal/lightbar"
	"github.com/rosettapad/rosettapad/internal/preview"
	"github.com/rosettapad/rosettapad/internal/profile"
)

const shutdownTimeout = 5 * time.Second

func startServer(configFile string) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)

	conf, err := readConfig(configFile)
	if err != nil {
		log.Fatalf("Could not read config: %v", err)
	}
	if err := os.MkdirAll(conf.DataDir, 0o755); err != nil {
		log.Fatalf("Could not create data directory: %v", err)
	}

	registry := lightbar.NewRegistry(conf.animationsPath())
	hub := api.NewHub()

	fileSink, err := lightbar.NewFileSink(conf.IPCPath)
	if err != nil {
		log.Fatalf("Could not create the IPC sink: %v", err)
	}
	sinks := lightbar.MultiSink{fileSink, hub}
	if conf.Preview {
		strip, err := preview.NewStrip()
		if err != nil {
			log.Fatalf("Could not initialize preview strip: %v", err)
		}
		defer strip.Close()
		sinks = append(sinks, strip)
	}

	engine := lightbar.NewEngine(registry, sinks)
	defer engine.Stop()

	profiles, err := profile.Open(conf.profilesPath())
	if err != nil {
		log.Fatalf("Could not open profile store: %v", err)
	}
	defer profiles.Close()

	controllers := bluetooth.NewControllerStore(conf.controllersPath())
	var bt bluetooth.Manager
	if conf.Bluetooth.UseReal {
		bt = bluetooth.NewBluetoothctl(controllers, engine.SetBattery)
	} else {
		log.Info("Using the stub bluetooth manager")
		bt = bluetooth.NewStub(controllers, engine.SetBattery)
	}

	server := api.New(api.Deps{
		Addr:      conf.Listen,
		Engine:    engine,
		Registry:  registry,
		Profiles:  profiles,
		Bluetooth: bt,
		Hub:       hub,
		Version:   buildVersion,
	})

	// Light the bar up so the panel is visibly alive before anyone talks
	// to the API.
	if err := engine.Apply(lightbar.DefaultConfig()); err != nil {
		log.Warnf("Could not apply the startup config: %v", err)
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	log.Infof("rosettapad %s is up", buildVersion)

	select {
	case <-signalChan:
		log.Info("Shutting down...")
	case err := <-errChan:
		if err != nil {
			log.Errorf("API server failed: %v", err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Warnf("Shutdown was not clean: %v", err)
	}

	log.Info("Done...")
}
