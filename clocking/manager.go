package clocking

import "math"

// ResetPolicy describes how a domain's reset line is handled.
type ResetPolicy int

const (
	// ResetPending marks a derived domain that has not been
	// synchronized yet. Nothing may bind to it.
	ResetPending ResetPolicy = iota

	// ResetNone marks an external oscillator that is stable on its
	// own and needs no synchronizer.
	ResetNone

	// ResetAsyncSynchronized marks a domain whose reset is held until
	// its guard condition is satisfied.
	ResetAsyncSynchronized
)

// A Domain is one clock of the design. Source names the domain or
// oscillator it is derived from; an oscillator has an empty Source.
// Phase is stored verbatim in degrees. The value a caller supplies may
// be a best-available approximation rather than the electrically ideal
// shift; the manager never second-guesses it.
type Domain struct {
	Name       string
	Source     string
	Freq       Freq
	PhaseDeg   float64
	Reset      ResetPolicy
	ResetGuard string
}

// A Manager registers reference oscillators and derives named clock
// domains from them. Derivation requires the source to be registered
// already, so every domain traces back to exactly one oscillator and
// the source graph cannot contain a cycle.
type Manager struct {
	domains   []Domain
	nameIndex map[string]int
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		nameIndex: make(map[string]int),
	}
}

// RegisterSource registers an external oscillator. Oscillators are
// externally stable and pass BindCheck without synchronization.
func (m *Manager) RegisterSource(name string, freq Freq) (Domain, error) {
	return m.add(Domain{
		Name:  name,
		Freq:  freq,
		Reset: ResetNone,
	})
}

// Derive creates a domain from an already-registered source with the
// given output frequency and phase shift in degrees. The new domain
// starts with a pending reset and must be synchronized before use.
func (m *Manager) Derive(
	name, from string,
	freq Freq,
	phaseDeg float64,
) (Domain, error) {
	if _, exists := m.nameIndex[from]; !exists {
		return Domain{}, ClockSourceCycleError{Name: name, From: from}
	}

	return m.add(Domain{
		Name:     name,
		Source:   from,
		Freq:     freq,
		PhaseDeg: normalizePhase(phaseDeg),
		Reset:    ResetPending,
	})
}

func (m *Manager) add(d Domain) (Domain, error) {
	if _, exists := m.nameIndex[d.Name]; exists {
		return Domain{}, DomainRedefinedError{Name: d.Name}
	}

	m.domains = append(m.domains, d)
	m.nameIndex[d.Name] = len(m.domains) - 1

	return d, nil
}

// SynchronizeReset marks the domain's reset line as held until the
// guard condition is satisfied, e.g. "pll locked & external reset
// released". It must be called before any peripheral binds to the
// domain.
func (m *Manager) SynchronizeReset(name, guard string) error {
	i, exists := m.nameIndex[name]
	if !exists {
		return DomainNotFoundError{Name: name}
	}

	m.domains[i].Reset = ResetAsyncSynchronized
	m.domains[i].ResetGuard = guard

	return nil
}

// BindCheck reports whether a peripheral may bind to the domain. A
// derived domain whose reset is still pending fails with
// UnsynchronizedDomainError.
func (m *Manager) BindCheck(name string) error {
	i, exists := m.nameIndex[name]
	if !exists {
		return DomainNotFoundError{Name: name}
	}

	if m.domains[i].Reset == ResetPending {
		return UnsynchronizedDomainError{Name: name}
	}

	return nil
}

// Resolve returns the domain registered under the given name.
func (m *Manager) Resolve(name string) (Domain, error) {
	i, exists := m.nameIndex[name]
	if !exists {
		return Domain{}, DomainNotFoundError{Name: name}
	}

	return m.domains[i], nil
}

// Domains returns a copy of all domains in registration order.
func (m *Manager) Domains() []Domain {
	domains := make([]Domain, len(m.domains))
	copy(domains, m.domains)

	return domains
}

func normalizePhase(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}

	return deg
}
