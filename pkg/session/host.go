package session

import (
	"github.com/matzehuels/boxdeform/pkg/binding"
	"github.com/matzehuels/boxdeform/pkg/cage"
	"github.com/matzehuels/boxdeform/pkg/geom"
	"github.com/matzehuels/boxdeform/pkg/host"
	"github.com/matzehuels/boxdeform/pkg/prefs"
)

// Host is everything a session needs from its environment.
type Host interface {
	binding.Selector
	prefs.Store

	// ActiveObject returns the current target, if any.
	ActiveObject() (host.ObjectID, bool)
	// IsDrawable reports whether id is a stroke object.
	IsDrawable(id host.ObjectID) bool

	Mode() host.Mode
	SetMode(m host.Mode) error

	// View returns the viewport the cage is aligned to.
	View() geom.View
	// SelectedPoints gathers the points a session started in mode works on.
	SelectedPoints(id host.ObjectID, mode host.Mode) (host.PointSet, error)

	// CreateDeformer puts a temporary lattice deformer driven by c on id,
	// restricted to group and layer when set.
	CreateDeformer(id host.ObjectID, c *cage.Cage, group, layer string) (host.DeformerID, error)
	// Bake applies the deformer to the stored points and removes it.
	Bake(id host.ObjectID, d host.DeformerID) error
	// Discard removes the deformer without applying it.
	Discard(id host.ObjectID, d host.DeformerID) error
	// Alive reports whether the deformer still exists.
	Alive(id host.ObjectID, d host.DeformerID) bool
	// Deformers lists the deformer stack of id.
	Deformers(id host.ObjectID) []host.DeformerInfo
}
