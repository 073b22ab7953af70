package lease

// TransitionRecorder registra transiciones de estado de inquilinos (métricas).
type TransitionRecorder interface {
	TenantTransition(from, to string)
}

type nopRecorder struct{}

func (nopRecorder) TenantTransition(string, string) {}
