package config

import (
	"fmt"

	"github.com/Faultbox/oceanview/internal/engine/camera"
	"github.com/Faultbox/oceanview/internal/ocean"
	"github.com/Faultbox/oceanview/pkg/math"
)

// Settings converts the scene section into ocean settings. Zero camera
// projection values keep the camera defaults.
func (sc SceneConfig) Settings() (ocean.Settings, error) {
	mode, err := ocean.ParseMode(sc.Mode)
	if err != nil {
		return ocean.Settings{}, fmt.Errorf("scene mode: %w", err)
	}

	cam := camera.New(math.V3(sc.Camera.Eye), math.V3(sc.Camera.Target), math.V3(sc.Camera.Up))
	if sc.Camera.FOV > 0 {
		cam.FovY = math.Radians(sc.Camera.FOV)
	}
	if sc.Camera.Near > 0 {
		cam.Near = sc.Camera.Near
	}
	if sc.Camera.Far > 0 {
		cam.Far = sc.Camera.Far
	}

	return ocean.Settings{
		Rows:    sc.GridSize,
		Cols:    sc.GridSize,
		Spacing: sc.GridSpacing,
		Mode:    mode,
		Params:  sc.Params,
		Camera:  cam,
	}, nil
}
