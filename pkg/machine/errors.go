package machine

import "errors"

// Validation errors.
var (
	ErrSoftLimitsNeedHoming = errors.New("soft limits need a homing section")
	ErrNoLimitPin           = errors.New("hard limits need a limit pin")
	ErrNoStepPin            = errors.New("motor has a direction pin but no step pin")
	ErrPinCapability        = errors.New("pin cannot be used this way")
	ErrNoOutputPin          = errors.New("output pin is required")
	ErrEmptySpeedMap        = errors.New("speed map is empty")
	ErrSameAxis             = errors.New("left and right axis must differ")
	ErrAnchors              = errors.New("left anchor must be left of right anchor")
	ErrMissingAxis          = errors.New("kinematics names an axis that is not configured")
	ErrNoSSID               = errors.New("ssid is required")
	ErrUartPins             = errors.New("uart needs txd and rxd pins")
	ErrUnknownFormat        = errors.New("unknown dump format")
)
