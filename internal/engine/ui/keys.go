package ui

import "github.com/AllenDang/cimgui-go/imgui"

// shortcut pairs an ImGui key with the layout name used by controls.
type shortcut struct {
	key  imgui.Key
	name string
}

var shortcuts = []shortcut{
	{imgui.Key1, "1"},
	{imgui.Key2, "2"},
	{imgui.Key3, "3"},
	{imgui.Key4, "4"},
	{imgui.KeyB, "B"},
	{imgui.KeyN, "N"},
	{imgui.KeyW, "W"},
	{imgui.KeyH, "H"},
	{imgui.KeyKeypad1, "1"},
	{imgui.KeyKeypad2, "2"},
	{imgui.KeyKeypad3, "3"},
	{imgui.KeyKeypad4, "4"},
	{imgui.KeyF12, "F12"},
	{imgui.KeyEscape, "Escape"},
}

// pressedShortcuts returns the names of shortcut keys pressed this frame.
func pressedShortcuts() []string {
	var names []string
	for _, s := range shortcuts {
		if imgui.IsKeyChordPressed(imgui.KeyChord(s.key)) {
			names = append(names, s.name)
		}
	}
	return names
}
