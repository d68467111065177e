package algorithms

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"spectral-workbench/internal/algorithms/homomorphic"
	"spectral-workbench/internal/algorithms/spectrum"
	"spectral-workbench/internal/algorithms/wavelet"
	"spectral-workbench/internal/grid"
)

var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Algorithm is a transform stage driven by a loosely typed parameter map.
type Algorithm interface {
	Name() string
	DefaultParameters() map[string]interface{}
	ValidateParameters(params map[string]interface{}) error
	Process(ctx context.Context, input *grid.Grid, params map[string]interface{}) (*grid.Grid, error)
}

type Manager struct {
	algorithms       map[string]Algorithm
	currentAlgorithm string
	parameters       map[string]map[string]interface{}
	mu               sync.RWMutex
}

// NewManager registers every processor with its default parameters and
// selects the Fourier spectrum.
func NewManager() *Manager {
	manager := &Manager{
		algorithms: make(map[string]Algorithm),
		parameters: make(map[string]map[string]interface{}),
	}

	spectrumAlg := spectrum.NewProcessor()
	manager.register(spectrumAlg)
	manager.register(homomorphic.NewProcessor())
	manager.register(wavelet.NewProcessor())
	manager.currentAlgorithm = spectrumAlg.Name()

	return manager
}

func (m *Manager) register(algorithm Algorithm) {
	m.algorithms[algorithm.Name()] = algorithm
	m.parameters[algorithm.Name()] = algorithm.DefaultParameters()
}

func (m *Manager) SetCurrentAlgorithm(algorithm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.algorithms[algorithm]; !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}

	m.currentAlgorithm = algorithm
	return nil
}

func (m *Manager) CurrentAlgorithm() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentAlgorithm
}

// Parameters returns a copy of the stored parameters for algorithm.
func (m *Manager) Parameters(algorithm string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]interface{})
	for k, v := range m.parameters[algorithm] {
		result[k] = v
	}
	return result
}

// SetParameter stores value only if the algorithm accepts the resulting
// parameter set.
func (m *Manager) SetParameter(algorithm, name string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alg, exists := m.algorithms[algorithm]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}

	candidate := make(map[string]interface{}, len(m.parameters[algorithm])+1)
	for k, v := range m.parameters[algorithm] {
		candidate[k] = v
	}
	candidate[name] = value

	if err := alg.ValidateParameters(candidate); err != nil {
		return err
	}

	m.parameters[algorithm] = candidate
	return nil
}

// ResetParameters restores the defaults of algorithm.
func (m *Manager) ResetParameters(algorithm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	alg, exists := m.algorithms[algorithm]
	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownAlgorithm, algorithm)
	}
	m.parameters[algorithm] = alg.DefaultParameters()
	return nil
}

func (m *Manager) Algorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownAlgorithm, name)
}

// AvailableAlgorithms lists the registered names in sorted order.
func (m *Manager) AvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.algorithms))
	for name := range m.algorithms {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

// Run processes input with the current algorithm and its stored parameters.
func (m *Manager) Run(ctx context.Context, input *grid.Grid) (*grid.Grid, string, error) {
	name := m.CurrentAlgorithm()

	alg, err := m.Algorithm(name)
	if err != nil {
		return nil, name, err
	}

	output, err := alg.Process(ctx, input, m.Parameters(name))
	return output, name, err
}
