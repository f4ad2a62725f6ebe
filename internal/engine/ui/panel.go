package ui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Faultbox/oceanview/internal/controls"
	"github.com/Faultbox/oceanview/internal/ocean"
)

// Panel draws mode selection and parameter sliders for a controller.
type Panel struct {
	ctrl    *controls.Controller
	title   string
	message string
}

// NewPanel creates a panel for ctrl. title is shown in the panel header.
func NewPanel(ctrl *controls.Controller, title string) *Panel {
	return &Panel{ctrl: ctrl, title: title}
}

// SetMessage shows a one-line status, e.g. the last screenshot path.
func (p *Panel) SetMessage(msg string) {
	p.message = msg
}

// Draw lays the panel out at pos with the given size.
func (p *Panel) Draw(pos, size imgui.Vec2) {
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(pos)
	imgui.SetNextWindowSize(size)
	if imgui.BeginV(p.title, nil, flags) {
		p.drawModes()
		imgui.Separator()
		p.drawSliders()
		imgui.Separator()
		p.drawActions()
	}
	imgui.End()
}

func (p *Panel) drawModes() {
	imgui.Text("Visualization")
	current := p.ctrl.Mode()
	for _, info := range ocean.Modes() {
		label := fmt.Sprintf("%s  [%s]", info.Name, strings.ToUpper(strings.Join(info.Keys, "/")))
		if imgui.SelectableBoolV(label, info.Mode == current, 0, imgui.NewVec2(0, 0)) {
			_ = p.ctrl.SelectMode(info.Mode)
		}
	}
}

func (p *Panel) drawSliders() {
	imgui.Text("Waves")
	for _, s := range p.ctrl.Sliders() {
		label := s.Label + "##" + s.Name
		if s.Integer {
			v := int32(s.Value)
			if imgui.SliderIntV(label, &v, int32(s.Min), int32(s.Max), "%d", imgui.SliderFlagsNone) {
				_ = p.ctrl.SetParam(s.Name, float32(v))
			}
			continue
		}

		v := s.Value
		if imgui.SliderFloatV(label, &v, s.Min, s.Max, "%.2f", imgui.SliderFlagsNone) {
			_ = p.ctrl.SetParam(s.Name, v)
		}
	}
}

func (p *Panel) drawActions() {
	if imgui.Button("Reset") {
		p.ctrl.ResetParams()
	}
	imgui.SameLine()
	if imgui.Button("Screenshot (F12)") {
		p.ctrl.HandleKey(controls.KeyScreenshot)
	}

	imgui.Text(fmt.Sprintf("%.0f FPS", imgui.CurrentIO().Framerate()))
	if p.message != "" {
		imgui.TextWrapped(p.message)
	}
}
