// Package render turns scene records and scan samples into drawable visuals.
//
// Visuals are plain values drawn in raylib immediate mode each frame. Their
// owners (the beam adapter, the stage) release them explicitly when the thing
// they represent goes away, so nothing stale is drawn after a release.
package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

type Kind int

const (
	KindBox Kind = iota
	KindPlane
	KindGroup
)

func (k Kind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindPlane:
		return "plane"
	case KindGroup:
		return "group"
	}
	return "unknown"
}

// Box is a cuboid centered on Center, rotated Angle degrees about Axis.
// A zero Axis means no rotation.
type Box struct {
	Center rl.Vector3
	Size   rl.Vector3
	Axis   rl.Vector3
	Angle  float32
	Color  rl.Color
	Wires  bool
}

// Plane is a horizontal rectangle.
type Plane struct {
	Center rl.Vector3
	Size   rl.Vector2
	Color  rl.Color
}

// Visual is one node of a visual tree. Exactly one payload is meaningful,
// selected by Kind.
type Visual struct {
	kind     Kind
	box      Box
	plane    Plane
	children []*Visual
	released bool
}

func NewBox(b Box) *Visual {
	return &Visual{kind: KindBox, box: b}
}

func NewPlane(p Plane) *Visual {
	return &Visual{kind: KindPlane, plane: p}
}

func NewGroup(children ...*Visual) *Visual {
	return &Visual{kind: KindGroup, children: children}
}

func (v *Visual) Kind() Kind {
	return v.kind
}

func (v *Visual) Box() (Box, bool) {
	return v.box, v.kind == KindBox
}

func (v *Visual) Plane() (Plane, bool) {
	return v.plane, v.kind == KindPlane
}

// SetBox replaces the payload of a box visual. It is a no-op for other kinds.
func (v *Visual) SetBox(b Box) {
	if v.kind == KindBox {
		v.box = b
	}
}

// Add appends a child to a group. It is a no-op for other kinds.
func (v *Visual) Add(child *Visual) {
	if v.kind == KindGroup && child != nil {
		v.children = append(v.children, child)
	}
}

func (v *Visual) Children() []*Visual {
	return v.children
}

// Leaves counts the unreleased boxes and planes under v.
func (v *Visual) Leaves() int {
	if v == nil || v.released {
		return 0
	}
	switch v.kind {
	case KindGroup:
		n := 0
		for _, c := range v.children {
			n += c.Leaves()
		}
		return n
	default:
		return 1
	}
}

// Release frees the node. A group releases every child first and forgets
// them. Releasing twice is harmless.
func (v *Visual) Release() {
	if v == nil || v.released {
		return
	}
	switch v.kind {
	case KindGroup:
		for _, c := range v.children {
			c.Release()
		}
		v.children = nil
	case KindBox:
		v.box = Box{}
	case KindPlane:
		v.plane = Plane{}
	}
	v.released = true
}

func (v *Visual) Released() bool {
	return v.released
}
