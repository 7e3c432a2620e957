package session

// Class identifies one of the three tracked entity classes, each with its
// own registry and TUIO profile.
type Class int

const (
	Cursor Class = iota
	Object
	Blob
)

var classNames = map[Class]string{
	Cursor: "cursor",
	Object: "object",
	Blob:   "blob",
}

var classFromName = map[string]Class{
	"cursor": Cursor,
	"object": Object,
	"blob":   Blob,
}

func (c Class) String() string {
	if s, ok := classNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseClass maps an inbound type string to its Class. ok is false for
// anything that is not one of the three known classes.
func ParseClass(s string) (Class, bool) {
	c, ok := classFromName[s]
	return c, ok
}

// CursorState is the full attribute snapshot for one touch point.
type CursorState struct {
	X           float32 `json:"x"`
	Y           float32 `json:"y"`
	XSpeed      float32 `json:"xSpeed"`
	YSpeed      float32 `json:"ySpeed"`
	MotionAccel float32 `json:"motionAccel"`
}

// ObjectState is the full attribute snapshot for one tagged object
// (fiducial marker).
type ObjectState struct {
	SymbolID      int32   `json:"symbolId"`
	X             float32 `json:"x"`
	Y             float32 `json:"y"`
	Angle         float32 `json:"angle"`
	XSpeed        float32 `json:"xSpeed"`
	YSpeed        float32 `json:"ySpeed"`
	RotationSpeed float32 `json:"rotationSpeed"`
	MotionAccel   float32 `json:"motionAccel"`
	RotationAccel float32 `json:"rotationAccel"`
}

// BlobState is the full attribute snapshot for one untagged blob region.
type BlobState struct {
	X             float32 `json:"x"`
	Y             float32 `json:"y"`
	Angle         float32 `json:"angle"`
	Width         float32 `json:"width"`
	Height        float32 `json:"height"`
	Area          float32 `json:"area"`
	XSpeed        float32 `json:"xSpeed"`
	YSpeed        float32 `json:"ySpeed"`
	RotationSpeed float32 `json:"rotationSpeed"`
	MotionAccel   float32 `json:"motionAccel"`
	RotationAccel float32 `json:"rotationAccel"`
}
