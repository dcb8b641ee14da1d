package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/polyfan/internal/app"
	"github.com/irfansharif/polyfan/internal/geom"
)

// EventHandlers translates window callbacks into queued application events.
// Callbacks run inside glfw.PollEvents and only enqueue; the frame loop
// processes the queue afterwards.
type EventHandlers struct {
	application *app.App
}

// NewEventHandlers creates a new event handlers manager.
func NewEventHandlers(application *app.App) *EventHandlers {
	eh := &EventHandlers{application: application}
	eh.SetupCallbacks(application.Window)
	return eh
}

// SetupCallbacks configures all GLFW event callbacks.
func (eh *EventHandlers) SetupCallbacks(window *glfw.Window) {
	window.SetMouseButtonCallback(func(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleMouseButton(wnd, button, action) // for placing points
	})
	window.SetKeyCallback(func(wnd *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		eh.handleKey(wnd, key, action)
	})
}

// handleMouseButton queues a click at the cursor on left button presses.
func (eh *EventHandlers) handleMouseButton(wnd *glfw.Window, button glfw.MouseButton, action glfw.Action) {
	if button != glfw.MouseButtonLeft || action != glfw.Press {
		return // nothing to do
	}

	// Window coordinates, matching the fixed W×H used for normalization.
	x, y := wnd.GetCursorPos()
	eh.application.Queue.Push(app.ClickEvent{Position: geom.MakePoint(x, y)})
}

// handleKey closes the window on Escape.
func (eh *EventHandlers) handleKey(wnd *glfw.Window, key glfw.Key, action glfw.Action) {
	if key == glfw.KeyEscape && action == glfw.Press {
		wnd.SetShouldClose(true)
	}
}
