// Command headless runs the locomotion and camera simulation without a window,
// driving it with scripted input and logging the actor and camera state.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/logging"
	"github.com/automoto/thirdperson/scenes"
	"github.com/automoto/thirdperson/systems"
	"go.uber.org/zap"
)

func main() {
	duration := flag.Duration("duration", 30*time.Second, "Simulated time to run")
	tickRate := flag.Int("tickrate", cfg.World.TickRate, "Simulation tick rate (updates per second)")
	seed := flag.Uint64("seed", 1, "Seed for obstacle placement")
	realtime := flag.Bool("realtime", false, "Pace ticks with the wall clock")
	level := flag.String("log", cfg.C.LogLevel, "Log level")
	flag.Parse()

	logger, err := logging.New(*level)
	if err != nil {
		log.Fatal(err)
	}
	defer logging.Install(logger)()

	if *tickRate <= 0 {
		zap.L().Fatal("tick rate must be positive", zap.Int("tickrate", *tickRate))
	}

	scene := scenes.NewGameScene(*seed)
	scenes.Subscribe(scene, systems.SceneResetEvent, func(systems.SceneReset) {
		zap.L().Info("scene reset")
	})
	scenes.Subscribe(scene, systems.ObstacleSpawnedEvent, func(e systems.ObstacleSpawned) {
		zap.L().Debug("obstacle spawned", zap.Float64s("at", e.Position[:]))
	})

	loop := NewGameLoop(scene, *tickRate)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		zap.L().Info("shutting down")
		loop.Stop()
	}()

	loop.Run(*duration, *realtime)
}
