package viz

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func initWindow() (*glfw.Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)

	window, err := glfw.CreateWindow(WindowWidth, WindowHeight, "Orb", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	return window, nil
}

// Input tracks key edges so a held key fires once.
type Input struct {
	held map[glfw.Key]bool
}

func NewInput() *Input {
	return &Input{held: make(map[glfw.Key]bool)}
}

// JustPressed reports a press edge for the given key.
func (in *Input) JustPressed(w *glfw.Window, key glfw.Key) bool {
	down := w.GetKey(key) == glfw.Press
	was := in.held[key]
	in.held[key] = down
	return down && !was
}
