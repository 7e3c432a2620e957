package session

import "sort"

// Registry holds the last-known attribute set for every active session,
// one map per entity class. Map membership is the single source of truth
// for "is this session currently alive".
//
// The registry performs no validation and no locking: attribute values are
// stored verbatim, and callers are expected to serialize access (the bridge
// holds its own mutex around every registry operation).
type Registry struct {
	cursors map[int32]CursorState
	objects map[int32]ObjectState
	blobs   map[int32]BlobState
}

func NewRegistry() *Registry {
	return &Registry{
		cursors: make(map[int32]CursorState),
		objects: make(map[int32]ObjectState),
		blobs:   make(map[int32]BlobState),
	}
}

// UpsertCursor stores the snapshot for id, replacing any previous one.
func (r *Registry) UpsertCursor(id int32, state CursorState) {
	r.cursors[id] = state
}

func (r *Registry) UpsertObject(id int32, state ObjectState) {
	r.objects[id] = state
}

func (r *Registry) UpsertBlob(id int32, state BlobState) {
	r.blobs[id] = state
}

// Has reports whether a session with id is active in class.
func (r *Registry) Has(class Class, id int32) bool {
	switch class {
	case Cursor:
		_, ok := r.cursors[id]
		return ok
	case Object:
		_, ok := r.objects[id]
		return ok
	case Blob:
		_, ok := r.blobs[id]
		return ok
	}
	return false
}

// Remove deletes the session with id from class, reporting whether it
// existed. Removing an unknown id is a no-op.
func (r *Registry) Remove(class Class, id int32) bool {
	if !r.Has(class, id) {
		return false
	}
	switch class {
	case Cursor:
		delete(r.cursors, id)
	case Object:
		delete(r.objects, id)
	case Blob:
		delete(r.blobs, id)
	}
	return true
}

// ActiveIDs returns every active session id in class, sorted ascending so
// emitted alive lists are deterministic.
func (r *Registry) ActiveIDs(class Class) []int32 {
	var ids []int32
	switch class {
	case Cursor:
		for id := range r.cursors {
			ids = append(ids, id)
		}
	case Object:
		for id := range r.objects {
			ids = append(ids, id)
		}
	case Blob:
		for id := range r.blobs {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Count returns the number of active sessions in class.
func (r *Registry) Count(class Class) int {
	switch class {
	case Cursor:
		return len(r.cursors)
	case Object:
		return len(r.objects)
	case Blob:
		return len(r.blobs)
	}
	return 0
}

// Clear removes every session in class.
func (r *Registry) Clear(class Class) {
	switch class {
	case Cursor:
		r.cursors = make(map[int32]CursorState)
	case Object:
		r.objects = make(map[int32]ObjectState)
	case Blob:
		r.blobs = make(map[int32]BlobState)
	}
}
