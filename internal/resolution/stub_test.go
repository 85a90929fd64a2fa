package resolution

import (
	"t3scan/internal/installation"
)

// stubStrategy is the configurable test double used across the registry,
// recovery and service tests. It counts Resolve calls so tests can assert a
// strategy was never reached.
type stubStrategy struct {
	id           string
	pathTypes    []installation.PathType
	installTypes []installation.Type
	priority     int
	canHandle    bool
	envErrs      []error
	resolveFunc  func(*Request) (*Response, error)
	resolveCalls int
}

func newStubStrategy(id string, pt installation.PathType) *stubStrategy {
	return &stubStrategy{
		id:           id,
		pathTypes:    []installation.PathType{pt},
		installTypes: installation.AllTypes(),
		priority:     50,
		canHandle:    true,
		resolveFunc: func(req *Request) (*Response, error) {
			return NewSuccess("/resolved/"+id, []string{"/resolved/" + id}), nil
		},
	}
}

func (s *stubStrategy) Identifier() string { return s.id }

func (s *stubStrategy) SupportedPathTypes() []installation.PathType { return s.pathTypes }

func (s *stubStrategy) SupportedInstallationTypes() []installation.Type { return s.installTypes }

func (s *stubStrategy) Priority(installation.PathType, installation.Type) int { return s.priority }

func (s *stubStrategy) CanHandle(*Request) bool { return s.canHandle }

func (s *stubStrategy) ValidateEnvironment() []error { return s.envErrs }

func (s *stubStrategy) Resolve(req *Request) (*Response, error) {
	s.resolveCalls++
	return s.resolveFunc(req)
}
