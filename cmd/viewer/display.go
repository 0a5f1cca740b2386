package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-sr/internal/app"
	"github.com/Faultbox/midgard-sr/internal/engine/input"
	"github.com/Faultbox/midgard-sr/internal/engine/window"
)

// bindings maps keys to viewer actions.
var bindings = map[sdl.Scancode]app.Action{
	sdl.SCANCODE_SPACE: app.ActionToggleSpin,
	sdl.SCANCODE_M:     app.ActionNextMode,
	sdl.SCANCODE_P:     app.ActionNextProjection,
	sdl.SCANCODE_A:     app.ActionToggleAntialiasing,
	sdl.SCANCODE_N:     app.ActionToggleNormals,
	sdl.SCANCODE_B:     app.ActionToggleBounds,
	sdl.SCANCODE_F12:   app.ActionScreenshot,
	sdl.SCANCODE_S:     app.ActionScreenshot,
	sdl.SCANCODE_R:     app.ActionResetCamera,
}

// display adapts the SDL window and input to app.Display.
type display struct {
	win *window.Window
	in  *input.Input
}

func (d *display) Poll() app.Controls {
	var c app.Controls
	if d.in.Update() {
		c.Quit = true
		return c
	}

	c.DragX, c.DragY = d.in.Drag()
	c.Zoom = d.in.Wheel()
	for _, e := range d.in.Events() {
		if e.Type == input.EventMouseDown && e.Button == sdl.BUTTON_RIGHT {
			if w, h := d.win.GetSize(); w > 0 && h > 0 {
				c.Pick = true
				c.PickX = float32(e.MouseX) / float32(w)
				c.PickY = float32(e.MouseY) / float32(h)
			}
			continue
		}
		if e.Type != input.EventKeyDown {
			continue
		}
		if e.Key == sdl.SCANCODE_ESCAPE {
			c.Quit = true
			return c
		}
		if act, ok := bindings[e.Key]; ok {
			c.Actions = append(c.Actions, act)
		}
	}
	return c
}

func (d *display) Present(pixels []uint32, width, height int) error {
	return d.win.Present(pixels, width, height)
}
