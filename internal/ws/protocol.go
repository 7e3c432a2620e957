package ws

import (
	"github.com/tuio-bridge/backend/internal/bridge"
	"github.com/tuio-bridge/backend/internal/session"
)

// Control notification types, alongside the three entity class names.
const (
	TypeFrame = "frame"
	TypeReset = "reset"
)

// Notification is one inbound event payload. The numeric fields are a flat
// union across the three entity classes; only the ones relevant to Type
// carry meaning, the rest decode to zero.
type Notification struct {
	Type      string `json:"type"`
	Action    string `json:"action"`
	SessionID int32  `json:"sessionId"`

	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	XSpeed      float32 `json:"xSpeed"`
	YSpeed      float32 `json:"ySpeed"`
	MotionAccel float32 `json:"motionAccel"`

	SymbolID      int32   `json:"symbolId"`
	Angle         float32 `json:"angle"`
	RotationSpeed float32 `json:"rotationSpeed"`
	RotationAccel float32 `json:"rotationAccel"`

	Width  float32 `json:"width"`
	Height float32 `json:"height"`
	Area   float32 `json:"area"`
}

// event narrows the flat notification to the typed bridge event for class.
func (n Notification) event(class session.Class, action bridge.Action) bridge.Event {
	evt := bridge.Event{Class: class, Action: action, ID: n.SessionID}
	switch class {
	case session.Cursor:
		evt.Cursor = session.CursorState{
			X: n.X, Y: n.Y,
			XSpeed: n.XSpeed, YSpeed: n.YSpeed,
			MotionAccel: n.MotionAccel,
		}
	case session.Object:
		evt.Object = session.ObjectState{
			SymbolID: n.SymbolID,
			X:        n.X, Y: n.Y, Angle: n.Angle,
			XSpeed: n.XSpeed, YSpeed: n.YSpeed, RotationSpeed: n.RotationSpeed,
			MotionAccel: n.MotionAccel, RotationAccel: n.RotationAccel,
		}
	case session.Blob:
		evt.Blob = session.BlobState{
			X: n.X, Y: n.Y, Angle: n.Angle,
			Width: n.Width, Height: n.Height, Area: n.Area,
			XSpeed: n.XSpeed, YSpeed: n.YSpeed, RotationSpeed: n.RotationSpeed,
			MotionAccel: n.MotionAccel, RotationAccel: n.RotationAccel,
		}
	}
	return evt
}
