package gem

import (
	"fmt"
	"math"
)

// checkSolution validates the state after a yearly update: the glacier may
// not thicken past the domain edge, and the solution must stay finite.
// Both are fatal for the run; nothing is clamped.
func (s *Simulator) checkSolution() error {
	if t := s.fl.TerminusThick(); t > s.cfg.DomainEdgeThick {
		return fmt.Errorf("%w: %.1f m of ice on the terminal bin", ErrDomainBoundary, t)
	}
	for i, h := range s.fl.Thick() {
		if math.IsNaN(h) || math.IsInf(h, 0) {
			return fmt.Errorf("%w: thickness at bin %d", ErrNumericalInstability, i)
		}
	}
	return nil
}
