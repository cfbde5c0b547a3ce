package workspace

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper periodically removes workspaces left behind by a crashed or
// killed server process. Workspaces in the live registry are never touched.
type Sweeper struct {
	root   string
	maxAge time.Duration
	live   *Registry
	cron   *cron.Cron
	now    func() time.Time
}

// NewSweeper creates a sweeper for workspaces under root (empty = OS temp dir).
// live may be nil when no renders run in this process.
func NewSweeper(root string, maxAge time.Duration, live *Registry) *Sweeper {
	if root == "" {
		root = os.TempDir()
	}
	return &Sweeper{
		root:   root,
		maxAge: maxAge,
		live:   live,
		now:    time.Now,
	}
}

// Start schedules the sweep. An empty schedule disables it.
func (s *Sweeper) Start(schedule string) error {
	if schedule == "" {
		log.Println("[info] workspace sweeper disabled")
		return nil
	}
	if s.maxAge <= 0 {
		return fmt.Errorf("sweeper max age must be positive, got %s", s.maxAge)
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		removed, err := s.Sweep()
		if err != nil {
			log.Printf("[warn] workspace sweep failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("[info] workspace sweep removed %d stale workspace(s)", removed)
		}
	}); err != nil {
		return err
	}

	s.cron = c
	c.Start()
	log.Printf("[info] workspace sweeper started (schedule=%s max_age=%s root=%s)", schedule, s.maxAge, s.root)
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish
func (s *Sweeper) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
}

// Sweep removes stale workspaces once and reports how many were deleted
func (s *Sweeper) Sweep() (int, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.maxAge)
	removed := 0
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), Prefix) || s.live.Contains(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(s.root, e.Name())); err != nil {
			log.Printf("[warn] failed to remove stale workspace %s: %v", e.Name(), err)
			continue
		}
		removed++
	}
	return removed, nil
}
