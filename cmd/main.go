package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/polyfan/internal/app"
	"github.com/irfansharif/polyfan/internal/palette"
)

const logFlags = log.Ltime | log.Lshortfile

var runtimeLogger *log.Logger = log.New(io.Discard, "", 0)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
	log.SetFlags(logFlags)

	if os.Getenv("POLYFAN_DEBUG_RUNTIME") == "1" {
		runtimeLogger = log.New(os.Stdout, "[runtime] ", log.Ltime|log.Lmsgprefix)
	}
}

func makeTitle(title string, fps, avgFrameTime float64, polygons, pending, triangles int) string {
	return fmt.Sprintf("%s (%.1f FPS, %.2fms/frame, %d polygons, %d pending points, %d triangles)",
		title,
		fps,
		avgFrameTime,
		polygons,
		pending,
		triangles,
	)
}

func main() {
	flag.Parse()

	cfg, err := loadConfig(os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("Failed to initialize GLFW: %v", err)
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1. The window is not
	// resizable: clicks are normalized against the configured size.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		log.Fatalf("Failed to create window: %v", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		log.Fatalf("Failed to initialize OpenGL: %v", err)
	}
	runtimeLogger.Printf("OpenGL %s, %dx%d window", gl.GoStr(gl.GetString(gl.VERSION)), cfg.Width, cfg.Height)

	application, err := app.NewApp(window, cfg.Width, cfg.Height, cfg.Palette)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Cleanup()

	// Initialize event handlers.
	NewEventHandlers(application)

	bgR, bgG, bgB, bgA := palette.RGBA(cfg.Palette.Background)
	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()

	// Main loop.
	for !application.Window.ShouldClose() {
		frameStart := time.Now()

		glfw.PollEvents()
		application.ProcessEvents()
		if err := application.PrepareRenderer(); err != nil {
			log.Fatalf("Failed to prepare renderer: %v", err)
		}

		w, h := application.Window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(bgR, bgG, bgB, bgA)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		if err := application.Renderer.Draw(); err != nil {
			log.Fatalf("Draw failed: %v", err)
		}
		application.Window.SwapBuffers()

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			session := application.Session
			polygons, pending, triangles := session.Polygons(), len(session.Pending()), session.Buffer().Triangles()
			renderStats := application.Renderer.Stats()

			application.Window.SetTitle(
				makeTitle(cfg.Title, fps, avgFrameTime, polygons, pending, triangles),
			)

			runtimeLogger.Println("=== Performance statistics ===")
			runtimeLogger.Printf("Frame rate:     %.1f FPS (%.2f ms/frame)", fps, avgFrameTime)
			runtimeLogger.Printf("Shapes:         %d polygons, %d triangles, %d vertices, %d pending points", polygons, triangles, session.Buffer().Len(), pending)
			runtimeLogger.Printf("Render time:    %.2f µs (last draw), %.2f ms (last prepare)", renderStats.LastDrawTimeUs, renderStats.LastPrepareTimeMs)
			runtimeLogger.Println("==============================")

			application.MemoryController.PrintStats()
		}
	}
}
