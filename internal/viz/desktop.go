package viz

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/sirupsen/logrus"
)

// RunDesktop opens the window and drives the render loop until the window
// closes. trackPath may be empty; audio then stays silent until one is
// loaded some other way.
//
// Keys: Space toggles playback, 1-4 force a status, Esc quits.
func RunDesktop(trackPath string) error {
	runtime.LockOSThread()

	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	window, err := initWindow()
	if err != nil {
		return err
	}
	defer glfw.Terminate()
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	seed := uint64(time.Now().UnixNano())
	if s := os.Getenv("ORB_SEED"); s != "" {
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			seed = v
		}
	}

	track := SilentTrack()
	if trackPath != "" {
		t, err := LoadTrack(trackPath)
		if err != nil {
			log.WithError(err).WithField("path", trackPath).
				Warn("track load failed, running silent")
		} else {
			track = t
		}
	}

	engine, err := NewEngine(seed, NewClock(), log)
	if err != nil {
		return err
	}
	engine.SetSource(track)

	rend, err := NewRenderer()
	if err != nil {
		return fmt.Errorf("renderer: %w", err)
	}
	defer rend.Destroy()

	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	input := NewInput()
	statusKeys := map[glfw.Key]Status{
		glfw.Key1: StatusIdle,
		glfw.Key2: StatusListening,
		glfw.Key3: StatusProcessing,
		glfw.Key4: StatusPlayingAudio,
	}

	lastFPSLog := glfw.GetTime()

	for !window.ShouldClose() {
		glfw.PollEvents()
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
			continue
		}

		if input.JustPressed(window, glfw.KeySpace) {
			if track.IsPlaying() {
				track.Stop()
				engine.NotifyStatus(StatusIdle)
			} else {
				track.Play(track.Stop)
				engine.NotifyStatus(StatusPlayingAudio)
			}
		}
		for key, st := range statusKeys {
			if input.JustPressed(window, key) {
				engine.NotifyStatus(st)
			}
		}
		if engine.Status() == StatusPlayingAudio && !track.IsPlaying() {
			engine.NotifyStatus(StatusIdle)
		}

		fbW, fbH := window.GetFramebufferSize()
		if fbW <= 0 || fbH <= 0 {
			continue
		}

		batches := engine.RenderFrame()
		rend.DrawFrame(batches, fbW, fbH)
		window.SwapBuffers()

		if now := glfw.GetTime(); now-lastFPSLog > 5 {
			lastFPSLog = now
			log.WithFields(logrus.Fields{
				"fps":    fmt.Sprintf("%.1f", batches.FPS),
				"status": engine.Status().String(),
			}).Debug("frame stats")
		}
	}
	return nil
}
