package io

import (
	"github.com/matzehuels/boxdeform/pkg/cage"
	"github.com/matzehuels/boxdeform/pkg/host"
	"github.com/matzehuels/boxdeform/pkg/prefs"
)

type vec [3]float64

type document struct {
	Mode    host.Mode       `json:"mode"`
	Active  string          `json:"active,omitempty"`
	Camera  *camera         `json:"camera,omitempty"`
	Prefs   *prefs.Settings `json:"prefs,omitempty"`
	Objects []object        `json:"objects"`
}

type camera struct {
	Eye        vec     `json:"eye"`
	Target     vec     `json:"target"`
	Up         vec     `json:"up"`
	FovY       float64 `json:"fov_y,omitempty"`
	HalfHeight float64 `json:"half_height,omitempty"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
}

type object struct {
	ID             string           `json:"id,omitempty"`
	Name           string           `json:"name"`
	Kind           string           `json:"kind,omitempty"`
	Matrix         *[16]float64     `json:"matrix,omitempty"`
	ActiveLayer    *int             `json:"active_layer,omitempty"`
	MultiFrameEdit bool             `json:"multi_frame_edit,omitempty"`
	DrawOnBack     bool             `json:"draw_on_back,omitempty"`
	Layers         []layer          `json:"layers,omitempty"`
	Groups         map[string][]ref `json:"groups,omitempty"`
	Deformers      []deformer       `json:"deformers,omitempty"`
}

type layer struct {
	Name        string  `json:"name"`
	ActiveFrame *int    `json:"active_frame,omitempty"`
	Lock        bool    `json:"lock,omitempty"`
	Hide        bool    `json:"hide,omitempty"`
	Frames      []frame `json:"frames"`
}

type frame struct {
	Number  int      `json:"number"`
	Select  bool     `json:"select,omitempty"`
	Strokes []stroke `json:"strokes"`
}

type stroke struct {
	Select bool    `json:"select,omitempty"`
	Points []point `json:"points"`
}

type point struct {
	Co     vec  `json:"co"`
	Select bool `json:"select,omitempty"`
}

// ref is a [layer, frame, stroke, point] tuple.
type ref [4]int

type deformer struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Temporary bool       `json:"temporary,omitempty"`
	Group     string     `json:"group,omitempty"`
	Layer     string     `json:"layer,omitempty"`
	Cage      *cage.Cage `json:"cage,omitempty"`
}
