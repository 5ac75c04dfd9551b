// Package permission decides whether a role may perform an action on a
// module. Every decision is a fresh lookup of the role's grant row.
package permission

import (
	"context"
	"errors"
	"fmt"

	"granja/internal/model"
	"granja/pkg/apperror"
	"granja/pkg/metrics"
)

// Action is one of the four operation kinds a grant covers.
type Action string

const (
	ActionInsert Action = "insertar"
	ActionSelect Action = "seleccionar"
	ActionUpdate Action = "actualizar"
	ActionDelete Action = "borrar"
)

// ParseAction validates a raw action name.
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.Valid() {
		return "", apperror.ErrInvalidAction.WithInternal(fmt.Errorf("permission: unknown action %q", s))
	}
	return a, nil
}

func (a Action) Valid() bool {
	switch a {
	case ActionInsert, ActionSelect, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// allowed reads the flag matching a on p.
func (a Action) allowed(p *model.Permission) bool {
	switch a {
	case ActionInsert:
		return p.CanInsert
	case ActionSelect:
		return p.CanSelect
	case ActionUpdate:
		return p.CanUpdate
	case ActionDelete:
		return p.CanDelete
	}
	return false
}

// Grants looks up the single grant row for (role, module). A missing row is
// reported as apperror.ErrNotFound.
type Grants interface {
	FindGrant(ctx context.Context, roleID, moduleID uint) (*model.Permission, error)
}

// invalidActionLabel replaces caller-supplied action strings in metrics.
const invalidActionLabel = "invalid"

type Gate struct {
	grants Grants
}

func NewGate(grants Grants) (*Gate, error) {
	if grants == nil {
		return nil, errors.New("permission: grants source is required")
	}
	return &Gate{grants: grants}, nil
}

// Authorize reports whether roleID may perform action on module. A role
// with no grant row for the module is denied every action. It never returns
// true together with an error.
func (g *Gate) Authorize(ctx context.Context, roleID uint, module Module, action Action) (bool, error) {
	if !action.Valid() {
		metrics.PermissionChecks.WithLabelValues(module.String(), invalidActionLabel, "error").Inc()
		return false, apperror.ErrInvalidAction.WithInternal(fmt.Errorf("permission: unknown action %q", action))
	}

	grant, err := g.grants.FindGrant(ctx, roleID, uint(module))
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			metrics.PermissionChecks.WithLabelValues(module.String(), string(action), "denied").Inc()
			return false, nil
		}
		metrics.PermissionChecks.WithLabelValues(module.String(), string(action), "error").Inc()
		return false, apperror.ErrAuthorizationIndeterminate.WithInternal(err)
	}

	ok := action.allowed(grant)
	result := "denied"
	if ok {
		result = "allowed"
	}
	metrics.PermissionChecks.WithLabelValues(module.String(), string(action), result).Inc()
	return ok, nil
}
