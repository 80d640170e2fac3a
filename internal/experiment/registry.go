package experiment

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/san-kum/ballistic/internal/dynamo"
	"github.com/san-kum/ballistic/internal/integrators"
)

// Registry maps method names to stepper constructors in registration order,
// so listings and comparison tables are stable.
type Registry struct {
	integrators *orderedmap.OrderedMap[string, func() dynamo.Stepper]
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: orderedmap.NewOrderedMap[string, func() dynamo.Stepper](),
	}

	r.Register("euler", func() dynamo.Stepper { return integrators.NewEuler() })
	r.Register("rk4", func() dynamo.Stepper { return integrators.NewRK4() })

	return r
}

// Register adds or replaces a method. Replacing keeps the original position.
func (r *Registry) Register(name string, fn func() dynamo.Stepper) {
	r.integrators.Set(name, fn)
}

func (r *Registry) GetIntegrator(name string) (dynamo.Stepper, error) {
	fn, ok := r.integrators.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownMethod, name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	return r.integrators.Keys()
}
