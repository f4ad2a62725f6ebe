package ocean

import "reflect"

// Params are the live-tunable values forwarded to the shading stage.
type Params struct {
	WaveHeight    float32 `yaml:"wave_height"`
	WaveScale     float32 `yaml:"wave_scale"`
	WaveSpeed     float32 `yaml:"wave_speed"`
	WaveChop      float32 `yaml:"wave_chop"`
	FBMStrength   float32 `yaml:"fbm_strength"`
	FBMOctaves    int32   `yaml:"fbm_octaves"`
	FBMLacunarity float32 `yaml:"fbm_lacunarity"`
	FBMGain       float32 `yaml:"fbm_gain"`
}

// DefaultParams returns the values the demo starts with.
func DefaultParams() Params {
	return Params{
		WaveHeight:    0.6,
		WaveScale:     0.9,
		WaveSpeed:     1.0,
		WaveChop:      0.4,
		FBMStrength:   0.25,
		FBMOctaves:    4,
		FBMLacunarity: 2.0,
		FBMGain:       0.5,
	}
}

// Update is a sparse parameter update. Nil fields are left untouched.
type Update struct {
	WaveHeight    *float32
	WaveScale     *float32
	WaveSpeed     *float32
	WaveChop      *float32
	FBMStrength   *float32
	FBMOctaves    *int32
	FBMLacunarity *float32
	FBMGain       *float32
}

// apply merges the non-nil fields of u into p.
func (u Update) apply(p *Params) {
	if u.WaveHeight != nil {
		p.WaveHeight = *u.WaveHeight
	}
	if u.WaveScale != nil {
		p.WaveScale = *u.WaveScale
	}
	if u.WaveSpeed != nil {
		p.WaveSpeed = *u.WaveSpeed
	}
	if u.WaveChop != nil {
		p.WaveChop = *u.WaveChop
	}
	if u.FBMStrength != nil {
		p.FBMStrength = *u.FBMStrength
	}
	if u.FBMOctaves != nil {
		p.FBMOctaves = *u.FBMOctaves
	}
	if u.FBMLacunarity != nil {
		p.FBMLacunarity = *u.FBMLacunarity
	}
	if u.FBMGain != nil {
		p.FBMGain = *u.FBMGain
	}
}

// ParamSpec describes one parameter for slider-style controls. Ranges are
// advisory; the scene stores whatever it is given.
type ParamSpec struct {
	Name    string // Uniform name, also the key accepted by SetParamValues
	Label   string
	Min     float32
	Max     float32
	Integer bool

	get func(*Params) float32
}

// Get reads the parameter from p.
func (s ParamSpec) Get(p Params) float32 {
	return s.get(&p)
}

// Set returns an Update that writes v to this parameter.
func (s ParamSpec) Set(v float32) Update {
	var u Update
	switch s.Name {
	case "waveHeight":
		u.WaveHeight = &v
	case "waveScale":
		u.WaveScale = &v
	case "waveSpeed":
		u.WaveSpeed = &v
	case "waveChop":
		u.WaveChop = &v
	case "fbmStrength":
		u.FBMStrength = &v
	case "fbmOctaves":
		n := int32(v)
		u.FBMOctaves = &n
	case "fbmLacunarity":
		u.FBMLacunarity = &v
	case "fbmGain":
		u.FBMGain = &v
	}
	return u
}

var paramSpecs = []ParamSpec{
	{
		Name: "waveHeight", Label: "Wave height", Min: 0, Max: 2,
		get: func(p *Params) float32 { return p.WaveHeight },
	},
	{
		Name: "waveScale", Label: "Wave scale", Min: 0.1, Max: 4,
		get: func(p *Params) float32 { return p.WaveScale },
	},
	{
		Name: "waveSpeed", Label: "Wave speed", Min: 0, Max: 4,
		get: func(p *Params) float32 { return p.WaveSpeed },
	},
	{
		Name: "waveChop", Label: "Chop", Min: 0, Max: 1,
		get: func(p *Params) float32 { return p.WaveChop },
	},
	{
		Name: "fbmStrength", Label: "FBM strength", Min: 0, Max: 1,
		get: func(p *Params) float32 { return p.FBMStrength },
	},
	{
		Name: "fbmOctaves", Label: "FBM octaves", Min: 1, Max: 8, Integer: true,
		get: func(p *Params) float32 { return float32(p.FBMOctaves) },
	},
	{
		Name: "fbmLacunarity", Label: "FBM lacunarity", Min: 1, Max: 4,
		get: func(p *Params) float32 { return p.FBMLacunarity },
	},
	{
		Name: "fbmGain", Label: "FBM gain", Min: 0, Max: 1,
		get: func(p *Params) float32 { return p.FBMGain },
	},
}

// ParamSpecs lists every parameter in display order.
func ParamSpecs() []ParamSpec {
	out := make([]ParamSpec, len(paramSpecs))
	copy(out, paramSpecs)
	return out
}

func paramSpec(name string) (ParamSpec, bool) {
	for _, s := range paramSpecs {
		if s.Name == name {
			return s, true
		}
	}
	return ParamSpec{}, false
}

// numeric converts any Go integer or float to float32. Everything else,
// including strings that look like numbers and bools, is rejected.
func numeric(v any) (float32, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float32(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float32(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return float32(rv.Float()), true
	default:
		return 0, false
	}
}
