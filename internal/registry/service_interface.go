package registry

// Service is the interface for long-running agent services
type Service interface {
	Start() error
	Stop() error
}
