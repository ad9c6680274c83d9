package nn

import (
	"fmt"

	"github.com/orbit-ml/orbit/internal/tensor"
)

// Sequential is a container that chains modules together.
//
// The output of each module becomes the input of the next. This is the
// standard way to express a feed-forward network:
//
//	model := nn.NewSequential[B](
//	    nn.NewLinear(2, 16, backend),
//	    nn.NewReLU[B](),
//	    nn.NewLinear(16, 8, backend),
//	    nn.NewReLU[B](),
//	    nn.NewLinear(8, 1, backend),
//	    nn.NewSigmoid[B](),
//	)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

// NewSequential creates a sequential container from the given modules.
func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

// Forward passes the input through all modules in order.
func (s *Sequential[B]) Forward(input *tensor.Tensor[float32, B]) *tensor.Tensor[float32, B] {
	output := input
	for _, module := range s.modules {
		output = module.Forward(output)
	}
	return output
}

// Parameters returns all trainable parameters from all modules.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var params []*Parameter[B]
	for _, module := range s.modules {
		params = append(params, module.Parameters()...)
	}
	return params
}

// Add appends a module to the container.
func (s *Sequential[B]) Add(module Module[B]) {
	s.modules = append(s.modules, module)
}

// Len returns the number of modules in the container.
func (s *Sequential[B]) Len() int {
	return len(s.modules)
}

// Module returns the module at the given index.
func (s *Sequential[B]) Module(index int) Module[B] {
	if index < 0 || index >= len(s.modules) {
		panic(fmt.Sprintf("Sequential.Module: index %d out of range [0, %d)", index, len(s.modules)))
	}
	return s.modules[index]
}

// StateDict collects the state of all stateful modules, prefixing each
// entry with the module index ("0.weight", "0.bias", "2.weight", ...).
func (s *Sequential[B]) StateDict() map[string]*tensor.RawTensor {
	state := make(map[string]*tensor.RawTensor)
	for i, module := range s.modules {
		stateful, ok := module.(StatefulModule)
		if !ok {
			continue
		}
		for name, raw := range stateful.StateDict() {
			state[fmt.Sprintf("%d.%s", i, name)] = raw
		}
	}
	return state
}

// LoadStateDict restores the state of all stateful modules from a
// dictionary produced by StateDict.
func (s *Sequential[B]) LoadStateDict(stateDict map[string]*tensor.RawTensor) error {
	for i, module := range s.modules {
		stateful, ok := module.(StatefulModule)
		if !ok {
			continue
		}

		prefix := fmt.Sprintf("%d.", i)
		moduleState := make(map[string]*tensor.RawTensor)
		for name, raw := range stateDict {
			if len(name) > len(prefix) && name[:len(prefix)] == prefix {
				moduleState[name[len(prefix):]] = raw
			}
		}

		if err := stateful.LoadStateDict(moduleState); err != nil {
			return fmt.Errorf("module %d: %w", i, err)
		}
	}
	return nil
}
