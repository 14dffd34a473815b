package main

// BuildMode selects how the backend is started. It is fixed at compile time
// by the "production" build tag and never read from configuration.
type BuildMode int

const (
	Development BuildMode = iota
	Production
)

func (m BuildMode) String() string {
	switch m {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return "unknown"
	}
}
