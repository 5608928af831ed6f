// Interactive viewer: steps a world from a config file and draws it.
package main

import (
	"flag"
	"fmt"
	"os"

	"collide3d/internal/camera"
	"collide3d/internal/config"
	"collide3d/internal/log"
	"collide3d/internal/physics"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var configPath = flag.String("config", "scenes/drop.yaml", "world description (.yaml, .toml or .json)")

type viewer struct {
	cfg    *config.Config
	logger *log.Logger
	world  *physics.PhysicsWorld
	cam    *camera.OrbitCamera

	paused      bool
	stepOnce    bool
	gravityOn   bool
	impulse     float32
	lastContact string
	selected    *physics.Body
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger := log.New(level)
	defer logger.Sync()

	v := &viewer{
		cfg:       cfg,
		logger:    logger,
		cam:       camera.New(rl.Vector3{}, 60),
		gravityOn: true,
		impulse:   50,
	}
	if err := v.reset(); err != nil {
		logger.Error("build world", log.Err(err))
		os.Exit(1)
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(1280, 720, "collide3d viewer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		v.update()
		v.draw()
	}
}

func (v *viewer) reset() error {
	w, err := physics.NewPhysicsWorldFromConfig(v.cfg, v.logger)
	if err != nil {
		return err
	}
	w.OnContactEnter.AddListener(func(c physics.Contact) {
		v.lastContact = fmt.Sprintf("%s hit %s at t=%.2f", c.A.Name, c.Other(), c.Hit.Time)
	})
	if !v.gravityOn {
		w.Gravity = rl.Vector3Zero()
	}
	v.world = w
	v.selected = nil
	return nil
}

func (v *viewer) update() {
	in := camera.Input{
		MouseDelta: rl.GetMouseDelta(),
		Orbiting:   rl.IsMouseButtonDown(rl.MouseRightButton),
		Wheel:      rl.GetMouseWheelMove(),
	}
	if rl.IsKeyDown(rl.KeyW) {
		in.Pan.Y++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Pan.Y--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Pan.X++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Pan.X--
	}
	v.cam.Update(in, rl.GetFrameTime())

	if rl.IsKeyPressed(rl.KeySpace) {
		v.paused = !v.paused
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := v.reset(); err != nil {
			v.logger.Error("reset world", log.Err(err))
		}
	}

	// Left-click on a body kicks it away from the camera
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !v.mouseInPanel() {
		ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), v.cam.GetRaylibCamera())
		if hit, ok := v.world.Raycast(ray.Position, ray.Direction, 1000); ok && hit.Body != nil {
			v.selected = hit.Body
			hit.Body.Phys.AddImpulse(rl.Vector3Scale(ray.Direction, v.impulse))
			v.logger.Debug("picked", log.String("body", hit.Body.Name), log.Float32("distance", hit.Distance))
		}
	}

	if !v.paused || v.stepOnce {
		v.world.Step(v.cfg.World.TimeStep)
		v.stepOnce = false
	}
}

func (v *viewer) mouseInPanel() bool {
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), panelBounds)
}

var panelBounds = rl.Rectangle{X: 10, Y: 10, Width: 220, Height: 210}

func (v *viewer) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.RayWhite)

	rl.BeginMode3D(v.cam.GetRaylibCamera())
	rl.DrawGrid(40, 5)
	for _, s := range v.world.Statics {
		drawShape(s.Shape, rl.Gray)
	}
	for _, b := range v.world.Bodies {
		c := rl.DarkBlue
		if b == v.selected {
			c = rl.Orange
		}
		drawShape(b.Current(), c)
	}
	for _, c := range v.world.Contacts() {
		rl.DrawSphere(c.Hit.HitPos, 0.3, rl.Red)
		rl.DrawLine3D(c.Hit.HitPos, rl.Vector3Add(c.Hit.HitPos, rl.Vector3Scale(c.Hit.HitNormal, 3)), rl.Red)
	}
	rl.EndMode3D()

	v.drawPanel()
	rl.EndDrawing()
}

func (v *viewer) drawPanel() {
	gui.Panel(panelBounds, "Simulation")
	x, y := panelBounds.X+10, panelBounds.Y+35

	label := "Pause"
	if v.paused {
		label = "Resume"
	}
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 95, Height: 24}, label) {
		v.paused = !v.paused
	}
	if gui.Button(rl.Rectangle{X: x + 105, Y: y, Width: 95, Height: 24}, "Step") {
		v.paused = true
		v.stepOnce = true
	}
	y += 32
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 200, Height: 24}, "Reset") {
		if err := v.reset(); err != nil {
			v.logger.Error("reset world", log.Err(err))
		}
	}
	y += 32
	gravityOn := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 20, Height: 20}, "Gravity", v.gravityOn)
	if gravityOn != v.gravityOn {
		v.gravityOn = gravityOn
		if gravityOn {
			v.world.Gravity = v.cfg.World.Gravity.V()
		} else {
			v.world.Gravity = rl.Vector3Zero()
		}
	}
	y += 30
	v.impulse = gui.Slider(rl.Rectangle{X: x + 50, Y: y, Width: 110, Height: 20}, "Kick", fmt.Sprintf("%.0f", v.impulse), v.impulse, 0, 500)
	y += 30

	rl.DrawText(fmt.Sprintf("step %d  contacts %d", v.world.Steps(), len(v.world.Contacts())), int32(x), int32(y), 10, rl.DarkGray)
	rl.DrawText(v.lastContact, int32(x), int32(y+14), 10, rl.DarkGray)
}
