package resource

import "sort"

// Notification describes a change to watched resources as a delta of
// store-relative paths. A notification is immutable once constructed.
//
// A listener on a single file receives a delta holding just that path. A
// listener on a directory receives the added and removed children by name,
// plus the directory's own path when the directory or any current child was
// modified. Deleted paths remain in the delta but resolve to Undefined
// resources.
type Notification struct {
	store Store
	delta []string
}

// NewNotification reports a change to a single path.
func NewNotification(store Store, path string) Notification {
	return Notification{store: store, delta: []string{Clean(path)}}
}

// NotificationFromPaths reports changes to an unordered set of paths. The
// delta is sorted lexicographically on construction. Duplicate elimination is
// the producer's responsibility.
func NotificationFromPaths(store Store, paths []string) Notification {
	delta := make([]string, len(paths))
	for i, p := range paths {
		delta[i] = Clean(p)
	}
	sort.Strings(delta)
	return Notification{store: store, delta: delta}
}

// NotificationFromFiles reports changes to platform file locations under
// base. Each file is converted to its store-relative path; discovery order is
// preserved. Files outside base are skipped.
func NotificationFromFiles(store Store, base string, files []string) Notification {
	delta := make([]string, 0, len(files))
	for _, f := range files {
		if p, ok := Convert(base, f); ok {
			delta = append(delta, p)
		}
	}
	return Notification{store: store, delta: delta}
}

// Delta returns the changed paths. Callers must not modify the returned
// slice.
func (n Notification) Delta() []string {
	return n.delta
}

// Resource resolves the first delta entry through the owning store, or nil
// for an empty delta.
func (n Notification) Resource() Resource {
	if len(n.delta) == 0 {
		return nil
	}
	return n.store.Get(n.delta[0])
}
