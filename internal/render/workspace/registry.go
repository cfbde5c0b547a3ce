package workspace

import (
	"path/filepath"
	"sync"
)

// Registry tracks workspaces whose render is still in progress so the
// sweeper leaves them alone. Entries are keyed by directory name.
type Registry struct {
	mu   sync.Mutex
	dirs map[string]struct{}
}

func NewRegistry() *Registry {
	return &Registry{dirs: make(map[string]struct{})}
}

// Add marks dir as live
func (r *Registry) Add(dir string) {
	r.mu.Lock()
	r.dirs[filepath.Base(dir)] = struct{}{}
	r.mu.Unlock()
}

// Remove forgets dir
func (r *Registry) Remove(dir string) {
	r.mu.Lock()
	delete(r.dirs, filepath.Base(dir))
	r.mu.Unlock()
}

// Contains reports whether dir belongs to a running render. A nil
// registry contains nothing.
func (r *Registry) Contains(dir string) bool {
	if r == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.dirs[filepath.Base(dir)]
	return ok
}

// Len is the number of live workspaces
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dirs)
}
