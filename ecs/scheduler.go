package ecs

// System updates a world once per frame.
type System interface {
	Update(w *World)
}

type Scheduler struct {
	systems []System
	frame   int
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Update runs every system in order, then ends the world frame.
func (s *Scheduler) Update(w *World) {
	for _, system := range s.systems {
		system.Update(w)
	}
	w.EndFrame()
	s.frame++
}

// Frame returns the number of completed updates.
func (s *Scheduler) Frame() int {
	return s.frame
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
