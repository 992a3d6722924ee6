package canvas

import "strings"

// LayoutMode is the auto layout direction of a container.
type LayoutMode string

const (
	LayoutNone       LayoutMode = "NONE"
	LayoutHorizontal LayoutMode = "HORIZONTAL"
	LayoutVertical   LayoutMode = "VERTICAL"
)

// Align positions children along an axis.
type Align string

const (
	AlignMin          Align = "MIN"
	AlignCenter       Align = "CENTER"
	AlignMax          Align = "MAX"
	AlignSpaceBetween Align = "SPACE_BETWEEN"
)

// ParseAlign accepts the canvas spellings in any case, with "-" for "_";
// anything else is rejected.
func ParseAlign(s string) (Align, bool) {
	switch a := Align(normalizeEnum(s)); a {
	case AlignMin, AlignCenter, AlignMax, AlignSpaceBetween:
		return a, true
	}
	return "", false
}

// SizingMode says whether an axis hugs its content or keeps a fixed size.
type SizingMode string

const (
	SizingAuto  SizingMode = "AUTO"
	SizingFixed SizingMode = "FIXED"
)

// ParseSizingMode accepts AUTO and FIXED, plus HUG as an alias of AUTO.
func ParseSizingMode(s string) (SizingMode, bool) {
	switch normalizeEnum(s) {
	case "AUTO", "HUG":
		return SizingAuto, true
	case "FIXED":
		return SizingFixed, true
	}
	return "", false
}

func normalizeEnum(s string) string {
	return strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_")
}

// Sides holds one value per edge.
type Sides struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Uniform returns Sides with v on every edge.
func Uniform(v float64) Sides {
	return Sides{Top: v, Right: v, Bottom: v, Left: v}
}

// AutoLayout is the resolved auto layout of a container.
type AutoLayout struct {
	Mode          LayoutMode `json:"mode"`
	PrimaryAlign  Align      `json:"primaryAxisAlignItems"`
	CounterAlign  Align      `json:"counterAxisAlignItems"`
	ItemSpacing   float64    `json:"itemSpacing"`
	Padding       Sides      `json:"padding"`
	PrimarySizing SizingMode `json:"primaryAxisSizingMode"`
	CounterSizing SizingMode `json:"counterAxisSizingMode"`
}

// Constraint pins a child along one axis of its parent.
type Constraint string

const (
	ConstraintMin     Constraint = "MIN"
	ConstraintCenter  Constraint = "CENTER"
	ConstraintMax     Constraint = "MAX"
	ConstraintStretch Constraint = "STRETCH"
)

// Constraints pairs the horizontal and vertical constraint of a node.
type Constraints struct {
	Horizontal Constraint `json:"horizontal"`
	Vertical   Constraint `json:"vertical"`
}

var (
	// Centered keeps a node centered on both axes.
	Centered = Constraints{Horizontal: ConstraintCenter, Vertical: ConstraintCenter}
	// StretchTop fills the parent width and pins to the top.
	StretchTop = Constraints{Horizontal: ConstraintStretch, Vertical: ConstraintMin}
)
