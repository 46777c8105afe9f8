package scene

import (
	"fmt"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/matzehuels/boxdeform/pkg/cage"
	"github.com/matzehuels/boxdeform/pkg/host"
)

// Deformer is a lattice deformer on an object's stack. The cage is shared
// with the session that created it, so cage edits show up on the next
// evaluation.
type Deformer struct {
	ID        host.DeformerID
	Name      string
	Temporary bool
	Cage      *cage.Cage
	// Group restricts influence to a point group; empty means every point.
	Group string
	// Layer restricts influence to one layer; empty means every layer.
	Layer string
}

func (d *Deformer) influences(o *Object, ref host.PointRef) bool {
	if d.Layer != "" && o.Layers[ref.Layer].Name != d.Layer {
		return false
	}
	return true
}

// targets returns the points d displaces.
func (d *Deformer) targets(o *Object) []host.PointRef {
	var refs []host.PointRef
	if d.Group != "" {
		for _, ref := range o.Groups[d.Group] {
			if o.Point(ref) != nil && d.influences(o, ref) {
				refs = append(refs, ref)
			}
		}
		return refs
	}
	o.Each(func(ref host.PointRef, _ *Point) {
		if d.influences(o, ref) {
			refs = append(refs, ref)
		}
	})
	return refs
}

// CreateDeformer puts a temporary lattice deformer driven by c at the top of
// the stack of id, restricted to group and layer when they are set.
func (s *Scene) CreateDeformer(id host.ObjectID, c *cage.Cage, group, layer string) (host.DeformerID, error) {
	o, err := s.object(id)
	if err != nil {
		return "", err
	}
	if o.Kind != KindStrokes {
		return "", fmt.Errorf("object %q cannot be deformed", o.Name)
	}
	d := &Deformer{
		ID:        host.DeformerID(uuid.NewString()),
		Name:      c.Name,
		Temporary: true,
		Cage:      c,
		Group:     group,
		Layer:     layer,
	}
	o.Deformers = append([]*Deformer{d}, o.Deformers...)
	return d.ID, nil
}

// Deformers describes the stack of id.
func (s *Scene) Deformers(id host.ObjectID) []host.DeformerInfo {
	o := s.Object(id)
	if o == nil {
		return nil
	}
	out := make([]host.DeformerInfo, len(o.Deformers))
	for i, d := range o.Deformers {
		out[i] = host.DeformerInfo{ID: d.ID, Name: d.Name, Lattice: true, Temporary: d.Temporary}
	}
	return out
}

// Alive reports whether deformer did is still on the stack of id.
func (s *Scene) Alive(id host.ObjectID, did host.DeformerID) bool {
	o := s.Object(id)
	return o != nil && o.deformer(did) >= 0
}

// Bake applies deformer did to the stored points of id and removes it.
func (s *Scene) Bake(id host.ObjectID, did host.DeformerID) error {
	o, err := s.object(id)
	if err != nil {
		return err
	}
	i := o.deformer(did)
	if i < 0 {
		return fmt.Errorf("deformer %s not found on %q", did, o.Name)
	}
	d := o.Deformers[i]

	inv, err := o.Matrix.Inverse()
	if err != nil {
		return fmt.Errorf("object %q: %w", o.Name, err)
	}
	for _, ref := range d.targets(o) {
		p := o.Point(ref)
		world := d.Cage.Deform(o.Matrix.MulPoint(p.Co))
		p.Co = inv.MulPoint(world)
	}
	o.removeDeformer(i)
	return nil
}

// Discard removes deformer did without touching the points.
func (s *Scene) Discard(id host.ObjectID, did host.DeformerID) error {
	o, err := s.object(id)
	if err != nil {
		return err
	}
	i := o.deformer(did)
	if i < 0 {
		return fmt.Errorf("deformer %s not found on %q", did, o.Name)
	}
	o.removeDeformer(i)
	return nil
}

// Evaluate returns the world positions of every point of id after the
// deformer stack.
func (s *Scene) Evaluate(id host.ObjectID) (host.PointSet, error) {
	o, err := s.object(id)
	if err != nil {
		return host.PointSet{}, err
	}
	var set host.PointSet
	index := map[host.PointRef]int{}
	o.Each(func(ref host.PointRef, p *Point) {
		index[ref] = len(set.Refs)
		set.Refs = append(set.Refs, ref)
		set.Positions = append(set.Positions, o.Matrix.MulPoint(p.Co))
	})
	for _, d := range o.Deformers {
		if d.Cage == nil {
			continue
		}
		for _, ref := range d.targets(o) {
			i := index[ref]
			set.Positions[i] = d.Cage.Deform(set.Positions[i])
		}
	}
	return set, nil
}

// World returns the world position of the stored point at ref.
func (o *Object) World(ref host.PointRef) (r3.Vec, bool) {
	p := o.Point(ref)
	if p == nil {
		return r3.Vec{}, false
	}
	return o.Matrix.MulPoint(p.Co), true
}

func (o *Object) deformer(did host.DeformerID) int {
	for i, d := range o.Deformers {
		if d.ID == did {
			return i
		}
	}
	return -1
}

func (o *Object) removeDeformer(i int) {
	o.Deformers = append(o.Deformers[:i], o.Deformers[i+1:]...)
}
