// Package gate decides who may run privileged workflows.
package gate

import "github.com/aretw0/steward/pkg/domain"

// CanAdminister reports whether actor may run privileged workflows.
// Without a configured admin role it delegates to the platform administrator flag;
// otherwise the actor must hold exactly that role.
func CanAdminister(actor domain.Actor, cfg domain.Config) bool {
	if cfg.AdminRoleID == "" {
		return actor.Administrator
	}
	return actor.HasRole(cfg.AdminRoleID)
}
