package component

import "github.com/milk9111/vitals/health"

// Health attaches a health.State to an actor entity.
type Health struct {
	State *health.State
}

var HealthComponent = NewComponent[Health]()
