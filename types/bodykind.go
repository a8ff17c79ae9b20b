package types

import "github.com/rotisserie/eris"

// BodyKind selects which side of the ECS<->physics boundary drives a body's
// motion each tick:
//
//   - Dynamic bodies are driven by the solver; their transform is written back
//     into the entity's Position after every step.
//   - Fixed bodies never move and are never synchronized.
//   - Kinematic bodies are driven by the ECS: position-based bodies follow the
//     entity's Position component, velocity-based bodies follow its Velocity.
type BodyKind uint8

const (
	BodyDynamic BodyKind = iota
	BodyFixed
	BodyKinematicPositionBased
	BodyKinematicVelocityBased
)

const (
	bodyDynamicName                = "Dynamic"
	bodyFixedName                  = "Fixed"
	bodyKinematicPositionBasedName = "KinematicPositionBased"
	bodyKinematicVelocityBasedName = "KinematicVelocityBased"
)

func (k BodyKind) String() string {
	switch k {
	case BodyDynamic:
		return bodyDynamicName
	case BodyFixed:
		return bodyFixedName
	case BodyKinematicPositionBased:
		return bodyKinematicPositionBasedName
	case BodyKinematicVelocityBased:
		return bodyKinematicVelocityBasedName
	}
	return "Unknown"
}

// IsKinematic reports whether the body is driven by ECS state.
func (k BodyKind) IsKinematic() bool {
	return k == BodyKinematicPositionBased || k == BodyKinematicVelocityBased
}

// MarshalText encodes the kind with its scene-file spelling.
func (k BodyKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *BodyKind) UnmarshalText(text []byte) error {
	parsed, err := ParseBodyKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseBodyKind converts the scene-file spelling of a body kind.
func ParseBodyKind(s string) (BodyKind, error) {
	switch s {
	case bodyDynamicName:
		return BodyDynamic, nil
	case bodyFixedName:
		return BodyFixed, nil
	case bodyKinematicPositionBasedName:
		return BodyKinematicPositionBased, nil
	case bodyKinematicVelocityBasedName:
		return BodyKinematicVelocityBased, nil
	}
	return BodyDynamic, eris.Errorf("unknown body kind %q", s)
}
