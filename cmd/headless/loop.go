package main

import (
	"math"
	"time"

	cfg "github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/scenes"
	"github.com/automoto/thirdperson/systems/factory"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// GameLoop ticks a GameScene at a fixed rate and feeds it scripted input.
type GameLoop struct {
	scene    *scenes.GameScene
	tickRate int
	ticks    int
	stopChan chan struct{}
}

func NewGameLoop(scene *scenes.GameScene, tickRate int) *GameLoop {
	return &GameLoop{
		scene:    scene,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
	}
}

// Run ticks until duration of simulated time has passed or Stop is called.
// realtime paces ticks with a ticker; otherwise they run back to back.
func (g *GameLoop) Run(duration time.Duration, realtime bool) {
	total := int(duration.Seconds() * float64(g.tickRate))
	zap.L().Info("game loop started",
		zap.Int("tickRate", g.tickRate), zap.Int("ticks", total), zap.Bool("realtime", realtime))

	var tickC <-chan time.Time
	if realtime {
		ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
		defer ticker.Stop()
		tickC = ticker.C
	}

	for g.ticks <= total {
		if tickC != nil {
			select {
			case <-g.stopChan:
				zap.L().Info("game loop stopped", zap.Int("tick", g.ticks))
				return
			case <-tickC:
			}
		} else {
			select {
			case <-g.stopChan:
				zap.L().Info("game loop stopped", zap.Int("tick", g.ticks))
				return
			default:
			}
		}
		g.tick()
	}
	g.report()
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}

func (g *GameLoop) now() float64 {
	return float64(g.ticks) / float64(g.tickRate)
}

func (g *GameLoop) tick() {
	g.script(g.now())
	g.scene.Update(g.now())
	if g.ticks%g.tickRate == 0 {
		g.report()
	}
	g.ticks++
}

// script walks a square, orbits the camera for a while and fires actions on a
// fixed schedule. The side of the square changes every two seconds.
func (g *GameLoop) script(now float64) {
	sides := []mgl64.Vec2{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	g.scene.SetLocomotionInput(sides[int(now/2)%len(sides)])

	if phase := math.Mod(now, 10); phase >= 6 && phase < 7 {
		g.scene.SetOrbitInput(mgl64.Vec2{1, 0})
	} else {
		g.scene.SetOrbitInput(mgl64.Vec2{})
	}

	second := g.ticks%g.tickRate == 0
	switch s := int(now); {
	case !second:
	case s%3 == 1:
		g.scene.RequestAction(cfg.ActionAttack)
	case s%5 == 2:
		g.scene.RequestAction(cfg.ActionSpawnObstacle)
	case s%7 == 3:
		g.scene.RequestAction(cfg.ActionHide)
	case s%13 == 12:
		g.scene.RequestCameraTransition(factory.OverviewAnchor, -1)
	case s%13 == 0 && s > 0:
		g.scene.RequestAction(cfg.ActionResetScene)
	}
}

func (g *GameLoop) report() {
	pose := g.scene.ActorPose()
	cam := g.scene.CameraTransform()
	zap.L().Info("tick",
		zap.Int("tick", g.ticks),
		zap.Float64("time", g.now()),
		zap.Float64s("actor", pose.Position[:]),
		zap.Float64("heading", g.scene.ActorHeading()),
		zap.String("anchor", g.scene.ActiveAnchor()),
		zap.Float64s("camera", cam.Position[:]),
		zap.Int("obstacles", g.scene.Obstacles()),
		zap.Int("projectiles", g.scene.Projectiles()),
		zap.Bool("hidden", g.scene.Hidden()),
	)
}
