package machine

import (
	"fmt"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/setting"
)

// KinematicSystem maps cartesian coordinates to motor positions.
type KinematicSystem interface {
	config.Variant
}

// KinematicSystems is the registry of kinematic variants.
var KinematicSystems config.Factory[KinematicSystem]

func init() {
	KinematicSystems.Register("Cartesian", func() KinematicSystem { return &Cartesian{} })
	KinematicSystems.Register("CoreXY", func() KinematicSystem { return &CoreXY{} })
	KinematicSystems.Register("WallPlotter", func() KinematicSystem { return NewWallPlotter() })
}

// Kinematics is the section holding the kinematic system.
type Kinematics struct {
	System KinematicSystem
}

// Group implements config.Configurable.
func (k *Kinematics) Group(h config.Handler) {
	KinematicSystems.Apply(h, &k.System)
}

// AfterParse falls back to the wall plotter when no system was named.
func (k *Kinematics) AfterParse() {
	if k.System == nil {
		k.System = NewWallPlotter()
	}
}

// Cartesian maps each axis to one motor.
type Cartesian struct{}

// Name implements config.Variant.
func (*Cartesian) Name() string { return "Cartesian" }

// Group implements config.Configurable.
func (*Cartesian) Group(config.Handler) {}

// CoreXY drives X and Y with two belts working together.
type CoreXY struct{}

// Name implements config.Variant.
func (*CoreXY) Name() string { return "CoreXY" }

// Group implements config.Configurable.
func (*CoreXY) Group(config.Handler) {}

// WallPlotter hangs the tool from two cords wound by the left and right
// motors.
type WallPlotter struct {
	LeftAxis      setting.Setting[uint8]
	LeftAnchorX   setting.Setting[float32]
	LeftAnchorY   setting.Setting[float32]
	RightAxis     setting.Setting[uint8]
	RightAnchorX  setting.Setting[float32]
	RightAnchorY  setting.Setting[float32]
	SegmentLength setting.Setting[float32]
}

// NewWallPlotter returns a wall plotter with a 534 mm anchor span.
func NewWallPlotter() *WallPlotter {
	w := &WallPlotter{}
	w.LeftAxis.Set(0)
	w.LeftAnchorX.Set(-534 / 2)
	w.LeftAnchorY.Set(250)
	w.RightAxis.Set(1)
	w.RightAnchorX.Set(534 / 2)
	w.RightAnchorY.Set(250)
	w.SegmentLength.Set(10)
	return w
}

// Name implements config.Variant.
func (*WallPlotter) Name() string { return "WallPlotter" }

// Group implements config.Configurable.
func (w *WallPlotter) Group(h config.Handler) {
	config.ItemUint8(h, "left_axis", &w.LeftAxis, 0, uint8(len(AxisNames)-1))
	h.ItemFloat("left_anchor_x", &w.LeftAnchorX, -100000, 100000)
	h.ItemFloat("left_anchor_y", &w.LeftAnchorY, -100000, 100000)
	config.ItemUint8(h, "right_axis", &w.RightAxis, 0, uint8(len(AxisNames)-1))
	h.ItemFloat("right_anchor_x", &w.RightAnchorX, -100000, 100000)
	h.ItemFloat("right_anchor_y", &w.RightAnchorY, -100000, 100000)
	h.ItemFloat("segment_length", &w.SegmentLength, 0.1, 1000)
}

// Validate implements config.Validator.
func (w *WallPlotter) Validate() error {
	if w.LeftAxis.Value() == w.RightAxis.Value() {
		return fmt.Errorf("%w: both are %s", ErrSameAxis, AxisNames[w.LeftAxis.Value()])
	}
	if w.LeftAnchorX.Value() >= w.RightAnchorX.Value() {
		return ErrAnchors
	}
	return nil
}

// axes returns the motor axes the system drives.
func (w *WallPlotter) axes() []int {
	return []int{int(w.LeftAxis.Value()), int(w.RightAxis.Value())}
}
