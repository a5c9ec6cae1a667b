package authz

type Gatekeeper struct{}

func NewGatekeeper() *Gatekeeper {
	return &Gatekeeper{}
}

func (g *Gatekeeper) Can(perms map[string]bool, permission string) bool {
	ctx := Context{Permissions: perms, CurrentPermission: permission}
	if ctx.HasPermission(Superuser) {
		return true
	}
	for _, candidate := range implied(permission) {
		if ctx.HasPermission(candidate) {
			return true
		}
	}
	return false
}
