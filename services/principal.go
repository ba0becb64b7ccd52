package services

import "github.com/PedroMFC99/PlataformaEDUGEP-sub000/models"

// Principal identifies the authenticated caller. Services take it as an
// explicit parameter; they never read identity from request-global state.
type Principal struct {
	UserID uint
	Role   string
}

func (p Principal) IsTeacher() bool {
	return p.Role == models.RoleTeacher
}
