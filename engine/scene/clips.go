package scene

import (
	"log"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/cow-world/engine/animation"
)

// requestLayerClip starts a one-shot animation on a secondary layer.
// A cached clip plays immediately; otherwise the catalog load runs on the
// worker pool so a cold load never stalls the frame, and the finished clip
// plays when the next tick drains it. Duplicate requests for a clip already
// in flight are dropped.
func (s *scene) requestLayerClip(layer animation.LayerKey, name string) {
	if name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cow == nil {
		return
	}

	if clip, ok := s.clipCache[name]; ok {
		s.cow.animator.PlaySecondary(layer, clip, false)
		return
	}
	if s.inFlight[name] {
		return
	}
	s.inFlight[name] = true

	catalog := s.cow.catalog
	results := s.clipResults
	s.nextTaskID++
	s.clipPool.SubmitTask(worker.Task{
		ID: s.nextTaskID,
		Do: func() (any, error) {
			clip, err := catalog.Load(name)
			results <- clipResult{name: name, layer: layer, clip: clip, err: err}
			return nil, nil
		},
	})
}

// drainClipResults consumes every finished clip load without blocking,
// caching successes and starting their one-shot playback.
func (s *scene) drainClipResults() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for {
		select {
		case res := <-s.clipResults:
			delete(s.inFlight, res.name)
			if res.err != nil {
				log.Printf("[scene] loading clip %q: %v", res.name, res.err)
				continue
			}
			s.clipCache[res.name] = res.clip
			if s.cow != nil {
				s.cow.animator.PlaySecondary(res.layer, res.clip, false)
			}
		default:
			return
		}
	}
}
