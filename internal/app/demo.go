package app

import (
	"fmt"

	"github.com/Faultbox/midgard-sr/internal/config"
	"github.com/Faultbox/midgard-sr/internal/engine/lighting"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/internal/engine/scene"
	"github.com/Faultbox/midgard-sr/internal/engine/texture"
	"github.com/Faultbox/midgard-sr/pkg/color"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// SceneFromConfig builds the demo scene, loading the floor texture named
// by cfg if any.
func SceneFromConfig(cfg *config.Config) (*scene.Node, error) {
	if cfg.Scene.FloorTexture == "" {
		return DemoScene(nil), nil
	}

	var (
		tex *model.ImageTexture
		err error
	)
	if cfg.Scene.ColorKey != "" {
		key, kerr := config.ParseColor(cfg.Scene.ColorKey)
		if kerr != nil {
			return nil, kerr
		}
		tex, err = texture.LoadWithKey(cfg.Scene.FloorTexture, key)
	} else {
		tex, err = texture.Load(cfg.Scene.FloorTexture)
	}
	if err != nil {
		return nil, fmt.Errorf("loading floor texture: %w", err)
	}
	return DemoScene(tex), nil
}

// DemoScene builds the default scene: a floor with three cubes, lit by an
// ambient term, a sun and a warm point light. A nil floor texture means a
// checkerboard.
func DemoScene(floorTex model.Texture) *scene.Node {
	root := scene.NewNode("root")

	floorMat := model.DefaultMaterial()
	floorMat.Name = "floor"
	floorMat.Specular = color.Gray(0.1)
	if floorTex == nil {
		floorTex = model.NewChecker(8, color.Pack(200, 200, 200, 255), color.Pack(60, 60, 70, 255))
	}
	floorMat.SetMap(model.DiffuseMap, floorTex)
	floor := root.AddChild(scene.NewNode("floor"))
	floor.Model = model.NewModel3D("floor", model.Plane(6, 6, 4), floorMat)

	cubes := []struct {
		name    string
		diffuse color.RGB
		x, z    float32
		size    float32
		yaw     float32
	}{
		{"red", color.RGB{R: 0.9, G: 0.2, B: 0.2}, -1.2, 0.4, 1, 0.3},
		{"green", color.RGB{R: 0.2, G: 0.8, B: 0.3}, 1.1, -0.6, 0.8, -0.5},
		{"blue", color.RGB{R: 0.25, G: 0.35, B: 0.9}, 0.2, 1.3, 0.6, 0.9},
	}
	for _, c := range cubes {
		mat := model.DefaultMaterial()
		mat.Name = c.name
		mat.Diffuse = c.diffuse
		n := root.AddChild(scene.NewNode(c.name))
		n.Model = model.NewModel3D(c.name, model.Cube(c.size), mat)
		n.Transform = math.Translate(c.x, c.size/2, c.z).Mul(math.RotateY(c.yaw))
	}

	ambient := lighting.Ambient(color.Gray(1), 0.25)
	root.AddChild(&scene.Node{Name: "ambient", Light: &ambient, Transform: math.Identity()})

	sun := lighting.Sun(math.Radians(35), math.Radians(50), 0.8)
	root.AddChild(&scene.Node{Name: "sun", Light: &sun, Transform: math.Identity()})

	lamp := lighting.Point(math.Vec3{}, color.RGB{R: 1, G: 0.8, B: 0.5}, 6)
	root.AddChild(&scene.Node{Name: "lamp", Light: &lamp, Transform: math.Translate(0, 2.5, 0)})

	return root
}
