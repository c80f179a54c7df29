package main

import (
	"fmt"
	"image"
	"image/color"
	"log"

	"github.com/automoto/thirdperson/components"
	"github.com/automoto/thirdperson/config"
	"github.com/automoto/thirdperson/logging"
	"github.com/automoto/thirdperson/scenes"
	"github.com/automoto/thirdperson/systems"
	"github.com/automoto/thirdperson/systems/factory"
	"github.com/automoto/thirdperson/tags"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Standard gamepad layout buttons mapped to controller inputs.
var gamepadButtons = map[ebiten.StandardGamepadButton]config.Button{
	ebiten.StandardGamepadButtonRightBottom:      config.ButtonA,
	ebiten.StandardGamepadButtonRightRight:       config.ButtonB,
	ebiten.StandardGamepadButtonRightLeft:        config.ButtonX,
	ebiten.StandardGamepadButtonRightTop:         config.ButtonY,
	ebiten.StandardGamepadButtonFrontTopLeft:     config.ButtonLeftShoulder,
	ebiten.StandardGamepadButtonFrontTopRight:    config.ButtonRightShoulder,
	ebiten.StandardGamepadButtonFrontBottomLeft:  config.ButtonLeftTrigger,
	ebiten.StandardGamepadButtonFrontBottomRight: config.ButtonRightTrigger,
	ebiten.StandardGamepadButtonCenterLeft:       config.ButtonOptions,
	ebiten.StandardGamepadButtonCenterRight:      config.ButtonMenu,
}

// Raw buttons of gamepads without a standard layout, read as the micro profile.
var microButtons = map[ebiten.GamepadButton]config.Button{
	ebiten.GamepadButton0: config.ButtonA,
	ebiten.GamepadButton1: config.ButtonX,
	ebiten.GamepadButton2: config.ButtonMenu,
}

var keyButtons = map[ebiten.Key]config.Button{
	ebiten.KeySpace:     config.ButtonA,
	ebiten.KeyShiftLeft: config.ButtonB,
	ebiten.KeyE:         config.ButtonX,
	ebiten.KeyR:         config.ButtonY,
	ebiten.KeyTab:       config.ButtonOptions,
	ebiten.KeyEscape:    config.ButtonMenu,
}

type stickKey struct {
	device int
	stick  config.Stick
}

type Game struct {
	scene    *scenes.GameScene
	frame    int
	gamepads []ebiten.GamepadID
	devices  map[ebiten.GamepadID]bool
	sticks   map[stickKey]mgl64.Vec2
	overview bool
}

func NewGame() *Game {
	return &Game{
		scene:   scenes.NewGameScene(uint64(config.World.TickRate)),
		devices: make(map[ebiten.GamepadID]bool),
		sticks:  make(map[stickKey]mgl64.Vec2),
	}
}

func (g *Game) Update() error {
	g.pollDevices()
	g.pollKeyboard()
	g.pollGamepads()

	g.scene.Update(float64(g.frame) / float64(ebiten.TPS()))
	g.frame++
	return nil
}

// stick forwards a directional input only when it changed, so an idle device
// does not override another one.
func (g *Game) stick(device int, s config.Stick, v mgl64.Vec2) {
	k := stickKey{device, s}
	if prev, ok := g.sticks[k]; ok && prev == v {
		return
	}
	g.sticks[k] = v
	g.scene.HandleStick(device, s, v)
}

func (g *Game) pollDevices() {
	g.gamepads = inpututil.AppendJustConnectedGamepadIDs(g.gamepads[:0])
	for _, id := range g.gamepads {
		profile := config.ProfileMicro
		if ebiten.IsStandardGamepadLayoutAvailable(id) {
			profile = config.ProfileExtended
		}
		zap.L().Info("gamepad connected", zap.String("name", ebiten.GamepadName(id)))
		g.devices[id] = true
		g.scene.OnDeviceConnected(int(id), profile)
	}

	for id := range g.devices {
		if !inpututil.IsGamepadJustDisconnected(id) {
			continue
		}
		delete(g.devices, id)
		for k := range g.sticks {
			if k.device == int(id) {
				delete(g.sticks, k)
			}
		}
		g.scene.OnDeviceDisconnected(int(id))
	}
}

func (g *Game) pollKeyboard() {
	var move, orbit mgl64.Vec2
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move[0]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move[1]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyJ) {
		orbit[0]--
	}
	if ebiten.IsKeyPressed(ebiten.KeyL) {
		orbit[0]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyI) {
		orbit[1]++
	}
	if ebiten.IsKeyPressed(ebiten.KeyK) {
		orbit[1]--
	}
	g.stick(scenes.KeyboardDevice, config.StickDPad, move)
	g.stick(scenes.KeyboardDevice, config.StickRight, orbit)

	for key, button := range keyButtons {
		if inpututil.IsKeyJustPressed(key) {
			g.scene.HandleButton(scenes.KeyboardDevice, button, true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.toggleOverview()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		systems.CycleOrbitSpeed()
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		systems.CycleTransitionTime()
		g.saveSettings()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		config.Camera.InvertOrbitY = !config.Camera.InvertOrbitY
		g.saveSettings()
	}
}

func (g *Game) pollGamepads() {
	for _, id := range ebiten.AppendGamepadIDs(g.gamepads[:0]) {
		device := int(id)
		if !ebiten.IsStandardGamepadLayoutAvailable(id) {
			for raw, button := range microButtons {
				if inpututil.IsGamepadButtonJustPressed(id, raw) {
					g.scene.HandleButton(device, button, true)
				}
			}
			g.stick(device, config.StickDPad, mgl64.Vec2{
				ebiten.GamepadAxisValue(id, 0),
				-ebiten.GamepadAxisValue(id, 1),
			})
			continue
		}

		for pad, button := range gamepadButtons {
			if inpututil.IsStandardGamepadButtonJustPressed(id, pad) {
				g.scene.HandleButton(device, button, true)
			}
		}

		var dpad mgl64.Vec2
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			dpad[0]--
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			dpad[0]++
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftTop) {
			dpad[1]++
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftBottom) {
			dpad[1]--
		}
		g.stick(device, config.StickDPad, dpad)
		// standard layout axes report +Y down
		g.stick(device, config.StickLeft, mgl64.Vec2{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical),
		})
		g.stick(device, config.StickRight, mgl64.Vec2{
			ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal),
			-ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical),
		})
	}
}

func (g *Game) toggleOverview() {
	target := factory.OverviewAnchor
	if g.overview {
		target = config.Camera.GameAnchor
	}
	if g.scene.RequestCameraTransition(target, -1) {
		g.overview = !g.overview
	}
}

func (g *Game) saveSettings() {
	if err := systems.SaveSettings(systems.CurrentSettings()); err != nil {
		zap.L().Warn("could not save settings", zap.Error(err))
	}
}

var (
	colorWall     = color.RGBA{0x60, 0x60, 0x70, 0xff}
	colorObstacle = color.RGBA{0xc0, 0x80, 0x30, 0xff}
	colorActor    = color.RGBA{0x40, 0xd0, 0x60, 0xff}
	colorHidden   = color.RGBA{0x20, 0x60, 0x30, 0xff}
	colorCamera   = color.RGBA{0xe0, 0xe0, 0x40, 0xff}
	colorShot     = color.RGBA{0xf0, 0x40, 0x20, 0xff}
)

// fillBox draws the XZ footprint of an axis-aligned box in the top-down view.
func fillBox(screen *ebiten.Image, center, size mgl64.Vec3, clr color.Color) {
	s := config.C.MapScale
	cx, cy := float64(config.C.Width)/2, float64(config.C.Height)/2
	r := image.Rect(
		int(cx+(center.X()-size.X()/2)*s), int(cy+(center.Z()-size.Z()/2)*s),
		int(cx+(center.X()+size.X()/2)*s), int(cy+(center.Z()+size.Z()/2)*s),
	)
	if r.Dx() < 2 {
		r.Max.X = r.Min.X + 2
	}
	if r.Dy() < 2 {
		r.Max.Y = r.Min.Y + 2
	}
	screen.SubImage(r.Intersect(screen.Bounds())).(*ebiten.Image).Fill(clr)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	world := g.scene.ECS().World

	tags.Static.Each(world, func(e *donburi.Entry) {
		if obj := components.Object.Get(e); obj.Name != "floor" {
			fillBox(screen, obj.WorldPosition(), components.Body.Get(e).Size, colorWall)
		}
	})
	tags.Obstacle.Each(world, func(e *donburi.Entry) {
		fillBox(screen, components.Object.Get(e).WorldPosition(), components.Body.Get(e).Size, colorObstacle)
	})
	tags.Projectile.Each(world, func(e *donburi.Entry) {
		fillBox(screen, components.Object.Get(e).WorldPosition(), mgl64.Vec3{0.3, 0, 0.3}, colorShot)
	})

	actorColor := colorActor
	if g.scene.Hidden() {
		actorColor = colorHidden
	}
	pose := g.scene.ActorPose()
	fillBox(screen, pose.Position, mgl64.Vec3{0.8, 0, 0.8}, actorColor)
	cam := g.scene.CameraTransform()
	fillBox(screen, cam.Position, mgl64.Vec3{0.5, 0, 0.5}, colorCamera)

	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"TPS %.0f\nactor %.2f %.2f %.2f heading %.2f\ncamera %s %.2f %.2f %.2f\norbit speed %.3f  transition %.1fs  invert %v\n"+
			"WASD move  IJKL orbit  Space attack  Shift hide  E box  R reset  C overview  O/T/V settings",
		ebiten.ActualTPS(),
		pose.Position.X(), pose.Position.Y(), pose.Position.Z(), g.scene.ActorHeading(),
		g.scene.ActiveAnchor(), cam.Position.X(), cam.Position.Y(), cam.Position.Z(),
		config.Camera.OrbitSpeed, config.Camera.TransitionTime, config.Camera.InvertOrbitY,
	))
}

func (g *Game) Layout(width, height int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	logger, err := logging.New(config.C.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logging.Install(logger)()

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	ebiten.SetTPS(config.World.TickRate)

	// Initialize persistence and load saved settings
	if err := systems.InitPersistence(); err == nil {
		if saved, err := systems.LoadSettings(); err == nil && saved != nil {
			systems.ApplySavedSettings(saved)
		}
	}

	if err := ebiten.RunGame(NewGame()); err != nil {
		zap.L().Fatal("game stopped", zap.Error(err))
	}
}
