package app

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/polyfan/internal/memory"
	"github.com/irfansharif/polyfan/internal/palette"
	"github.com/irfansharif/polyfan/internal/render"
)

// App encapsulates the main application state and logic.
type App struct {
	Window           *glfw.Window
	Renderer         *render.Renderer
	Session          *Session
	Queue            *EventQueue
	Palette          palette.Palette
	MemoryController *memory.Controller
}

// NewApp creates a new application instance for a window of the given fixed
// size. The window's GL context must be current.
func NewApp(window *glfw.Window, w, h int, pal palette.Palette) (*App, error) {
	memController := memory.NewController()
	renderer, err := render.NewRenderer(memController)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return &App{
		Window:           window,
		Renderer:         renderer,
		Session:          NewSession(w, h, palette.Vec3(pal.Fill)),
		Queue:            &EventQueue{},
		Palette:          pal,
		MemoryController: memController,
	}, nil
}

// ProcessEvents hands every queued click to the session, in order.
func (app *App) ProcessEvents() int {
	return app.Queue.Drain(func(ev ClickEvent) {
		app.Session.Click(ev.Position)
	})
}

// PrepareRenderer uploads any newly triangulated polygons.
func (app *App) PrepareRenderer() error {
	return app.Renderer.Prepare(app.Session.Buffer())
}

// Cleanup releases GPU resources.
func (app *App) Cleanup() {
	app.MemoryController.Cleanup()
	app.Renderer.Cleanup()
}
