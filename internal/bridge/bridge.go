package bridge

import (
	"log"
	"sync"

	"github.com/tuio-bridge/backend/internal/osc"
	"github.com/tuio-bridge/backend/internal/session"
)

// TUIO 2D profile addresses, one per entity class.
const (
	CursorAddress = "/tuio/2Dcur"
	ObjectAddress = "/tuio/2Dobj"
	BlobAddress   = "/tuio/2Dblb"
)

func address(class session.Class) string {
	switch class {
	case session.Object:
		return ObjectAddress
	case session.Blob:
		return BlobAddress
	default:
		return CursorAddress
	}
}

// Sender ships one encoded datagram to the TUIO destination, best effort.
// Send must not block; failures are the sender's to report.
type Sender interface {
	Send(datagram []byte)
}

// Action classifies an inbound lifecycle notification.
type Action int

const (
	Add Action = iota
	Update
	Remove
)

var actionFromName = map[string]Action{
	"add":    Add,
	"update": Update,
	"remove": Remove,
}

// ParseAction maps an inbound action string to its Action. ok is false
// for anything unrecognized.
func ParseAction(s string) (Action, bool) {
	a, ok := actionFromName[s]
	return a, ok
}

// Event is one classified inbound notification. Exactly one of the state
// fields is meaningful, selected by Class.
type Event struct {
	Class  session.Class
	Action Action
	ID     int32
	Cursor session.CursorState
	Object session.ObjectState
	Blob   session.BlobState
}

// Bridge owns the three session registries and the frame counter, and
// translates lifecycle events into TUIO set/alive/fseq messages. All
// exported methods serialize on one mutex: no two events interleave their
// registry writes, and no frame observes a half-applied mutation.
type Bridge struct {
	mu      sync.Mutex
	reg     *session.Registry
	frameID int64
	sender  Sender

	sent    int64
	dropped int64
}

func New(sender Sender) *Bridge {
	return &Bridge{
		reg:    session.NewRegistry(),
		sender: sender,
	}
}

// Handle applies one lifecycle event to the registry and emits the
// corresponding message:
//
//   - add: upsert unconditionally (an already-active id is overwritten
//     silently), emit a set message.
//   - update: only if the session exists, overwrite and emit a set message.
//   - remove: only if the session exists, emit an alive message carrying
//     just this id, then delete the entry.
//
// Updates and removes for unknown ids are silent no-ops: nothing is sent
// and the registry is untouched.
func (b *Bridge) Handle(evt Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch evt.Action {
	case Add:
		b.upsert(evt)
		b.send(setMessage(evt))
	case Update:
		if !b.reg.Has(evt.Class, evt.ID) {
			return
		}
		b.upsert(evt)
		b.send(setMessage(evt))
	case Remove:
		if !b.reg.Has(evt.Class, evt.ID) {
			return
		}
		b.send(osc.NewMessage(address(evt.Class), osc.String("alive"), osc.Int(evt.ID)))
		b.reg.Remove(evt.Class, evt.ID)
	default:
		// Unrecognized action: ignored.
	}
}

func (b *Bridge) upsert(evt Event) {
	switch evt.Class {
	case session.Cursor:
		b.reg.UpsertCursor(evt.ID, evt.Cursor)
	case session.Object:
		b.reg.UpsertObject(evt.ID, evt.Object)
	case session.Blob:
		b.reg.UpsertBlob(evt.ID, evt.Blob)
	}
}

// setMessage builds the full attribute snapshot message for one session,
// in the TUIO 2D profile argument order for its class.
func setMessage(evt Event) osc.Message {
	switch evt.Class {
	case session.Object:
		o := evt.Object
		return osc.NewMessage(ObjectAddress,
			osc.String("set"), osc.Int(evt.ID), osc.Int(o.SymbolID),
			osc.Float(o.X), osc.Float(o.Y), osc.Float(o.Angle),
			osc.Float(o.XSpeed), osc.Float(o.YSpeed), osc.Float(o.RotationSpeed),
			osc.Float(o.MotionAccel), osc.Float(o.RotationAccel))
	case session.Blob:
		bl := evt.Blob
		return osc.NewMessage(BlobAddress,
			osc.String("set"), osc.Int(evt.ID),
			osc.Float(bl.X), osc.Float(bl.Y), osc.Float(bl.Angle),
			osc.Float(bl.Width), osc.Float(bl.Height), osc.Float(bl.Area),
			osc.Float(bl.XSpeed), osc.Float(bl.YSpeed), osc.Float(bl.RotationSpeed),
			osc.Float(bl.MotionAccel), osc.Float(bl.RotationAccel))
	default:
		c := evt.Cursor
		return osc.NewMessage(CursorAddress,
			osc.String("set"), osc.Int(evt.ID),
			osc.Float(c.X), osc.Float(c.Y),
			osc.Float(c.XSpeed), osc.Float(c.YSpeed), osc.Float(c.MotionAccel))
	}
}

// EmitFrame sends one complete frame: for each class an alive message
// listing all active ids (skipped when the class has none), then an fseq
// message with the current frame id for every class regardless. The frame
// counter increments once after all three classes are processed, so the
// three fseq messages share one id.
func (b *Bridge) EmitFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.emitFrame()
}

func (b *Bridge) emitFrame() {
	for _, class := range []session.Class{session.Cursor, session.Object, session.Blob} {
		ids := b.reg.ActiveIDs(class)
		if len(ids) > 0 {
			args := make([]osc.Arg, 0, len(ids)+1)
			args = append(args, osc.String("alive"))
			for _, id := range ids {
				args = append(args, osc.Int(id))
			}
			b.send(osc.NewMessage(address(class), args...))
		}
		b.send(osc.NewMessage(address(class), osc.String("fseq"), osc.Int(int32(b.frameID))))
	}
	b.frameID++
}

// TeardownAlive is the best-effort cleanup signal sent when the inbound
// connection is lost: an alive message with zero ids on the cursor address
// (an explicit "clear everyone"), followed by a full frame. The empty alive
// goes only to the cursor profile, not object/blob; downstream TUIO clients
// are calibrated to this exact sequence, so the asymmetry stays.
func (b *Bridge) TeardownAlive() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.teardownAlive()
}

func (b *Bridge) teardownAlive() {
	b.send(osc.NewMessage(CursorAddress, osc.String("alive")))
	b.emitFrame()
}

// Reset clears all three registries, zeroes the frame counter, then runs
// the teardown sequence.
func (b *Bridge) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.reg.Clear(session.Cursor)
	b.reg.Clear(session.Object)
	b.reg.Clear(session.Blob)
	b.frameID = 0
	b.teardownAlive()
}

// send encodes and submits one message. An encoding failure drops that one
// message; remaining messages in the same operation still go out.
func (b *Bridge) send(msg osc.Message) {
	data, err := msg.Encode()
	if err != nil {
		log.Printf("bridge: dropping message for %s: %v", msg.Addr, err)
		b.dropped++
		return
	}
	b.sender.Send(data)
	b.sent++
}

// Stats is a snapshot of the bridge counters for the stats endpoint.
type Stats struct {
	FrameID         int64 `json:"frameId"`
	MessagesSent    int64 `json:"messagesSent"`
	MessagesDropped int64 `json:"messagesDropped"`
	ActiveCursors   int   `json:"activeCursors"`
	ActiveObjects   int   `json:"activeObjects"`
	ActiveBlobs     int   `json:"activeBlobs"`
}

// Stats returns a snapshot of the bridge counters.
func (b *Bridge) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		FrameID:         b.frameID,
		MessagesSent:    b.sent,
		MessagesDropped: b.dropped,
		ActiveCursors:   b.reg.Count(session.Cursor),
		ActiveObjects:   b.reg.Count(session.Object),
		ActiveBlobs:     b.reg.Count(session.Blob),
	}
}

// ActiveSessions returns the active session ids per class, keyed by class
// name, for the sessions endpoint.
func (b *Bridge) ActiveSessions() map[string][]int32 {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make(map[string][]int32, 3)
	for _, class := range []session.Class{session.Cursor, session.Object, session.Blob} {
		ids := b.reg.ActiveIDs(class)
		if ids == nil {
			ids = []int32{}
		}
		out[class.String()] = ids
	}
	return out
}
