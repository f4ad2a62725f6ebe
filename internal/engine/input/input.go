// Package input translates SDL2 events into window-level events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type    EventType
	Key     sdl.Scancode
	KeyName string // Layout-aware key name, e.g. "W", "F12", "Escape"
	Repeat  bool
	Width   int
	Height  int
}

// Input handles all input processing.
type Input struct {
	events []Event
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
	}
}

// Update polls SDL events and converts them to input events.
// Returns true if the window should close.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			typ := EventKeyUp
			if e.Type == sdl.KEYDOWN {
				typ = EventKeyDown
			}
			i.events = append(i.events, Event{
				Type:    typ,
				Key:     e.Keysym.Scancode,
				KeyName: sdl.GetKeyName(e.Keysym.Sym),
				Repeat:  e.Repeat != 0,
			})
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// KeyPresses returns the names of keys pressed this frame, ignoring
// auto-repeat.
func (i *Input) KeyPresses() []string {
	return KeyPresses(i.events)
}

// KeyPresses filters events down to fresh key presses.
func KeyPresses(events []Event) []string {
	var names []string
	for _, e := range events {
		if e.Type == EventKeyDown && !e.Repeat && e.KeyName != "" {
			names = append(names, e.KeyName)
		}
	}
	return names
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(scancode sdl.Scancode) bool {
	for _, e := range i.events {
		if e.Type == EventKeyDown && e.Key == scancode {
			return true
		}
	}
	return false
}
