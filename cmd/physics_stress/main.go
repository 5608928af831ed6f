// Stress test comparing the spatial hash broad-phase against brute force
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"collide3d/internal/collision"
	"collide3d/internal/physics"
	"collide3d/internal/primitive"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var seed = flag.Int64("seed", 42, "random seed")

func main() {
	flag.Parse()

	// Test various object counts
	testCounts := []int{100, 500, 1000, 2000, 5000}

	missed := 0
	for _, count := range testCounts {
		missed += testBroadPhase(count)
	}
	if missed > 0 {
		os.Exit(1)
	}
}

func spawn(count int, rng *rand.Rand) *physics.PhysicsWorld {
	w := physics.NewPhysicsWorld()

	// Spawn in a cube, size scales with count to keep density reasonable
	spawnSize := float32(50.0) + float32(count)/100.0

	for i := 0; i < count; i++ {
		pos := rl.Vector3{
			X: rng.Float32()*spawnSize - spawnSize/2,
			Y: rng.Float32()*spawnSize - spawnSize/2,
			Z: rng.Float32()*spawnSize - spawnSize/2,
		}
		var shape primitive.Shape = primitive.Sphere{Radius: 0.5 + rng.Float32()*0.5, Position: pos}
		if i%4 == 0 {
			shape = primitive.NewCapsule(0.4, pos, rl.Vector3Add(pos, rl.Vector3{Y: 1.5}))
		}
		b, err := w.AddBody(fmt.Sprintf("b%d", i), shape, 1)
		if err != nil {
			panic(err)
		}
		b.Phys.SetVelocity(rl.Vector3{X: rng.Float32()*20 - 10, Z: rng.Float32()*20 - 10})
		b.Phys.Update(physics.DefaultTimeStep, false)
	}
	return w
}

// testBroadPhase returns how many touching pairs the grid failed to report.
func testBroadPhase(count int) int {
	w := spawn(count, rand.New(rand.NewSource(*seed)))

	// Time grid
	const iterations = 10
	gridStart := time.Now()
	var gridPairs [][2]*physics.Body
	for i := 0; i < iterations; i++ {
		gridPairs = w.Pairs()
	}
	gridTime := time.Since(gridStart) / iterations

	found := make(map[[2]*physics.Body]bool, len(gridPairs))
	for _, p := range gridPairs {
		found[p] = true
	}

	// Time brute force on the current shapes
	bruteStart := time.Now()
	var touching [][2]*physics.Body
	for i := 0; i < len(w.Bodies); i++ {
		a := w.Bodies[i].Current()
		for j := i + 1; j < len(w.Bodies); j++ {
			if collision.Overlaps(a, w.Bodies[j].Current()) {
				touching = append(touching, [2]*physics.Body{w.Bodies[i], w.Bodies[j]})
			}
		}
	}
	bruteTime := time.Since(bruteStart)

	missed := 0
	for _, p := range touching {
		if !found[p] {
			missed++
		}
	}

	speedup := float64(bruteTime) / float64(gridTime)
	fmt.Printf("%5d bodies: grid %8v (%5d candidates) | brute %10v (%4d touching, %d missed) | %.1fx\n",
		count, gridTime.Round(time.Microsecond), len(gridPairs),
		bruteTime.Round(time.Microsecond), len(touching), missed, speedup)
	return missed
}
