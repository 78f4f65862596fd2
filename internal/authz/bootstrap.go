package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// 预置角色名称
const (
	RoleSuperAdmin     = "super_admin"
	RoleCatalogManager = "catalog_manager"
	RoleOrderManager   = "order_manager"
)

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: RoleSuperAdmin,
			Policies: []Policy{
				{Object: "/admin/*", Action: "*"},
				{Object: "/settings/*", Action: "*"},
			},
			Immutable: true,
		},
		{
			Role: RoleCatalogManager,
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/categories", Action: "*"},
				{Object: "/admin/categories/:id", Action: "*"},
				{Object: "/admin/subcategories", Action: "*"},
				{Object: "/admin/subcategories/:id", Action: "*"},
				{Object: "/admin/products", Action: "*"},
				{Object: "/admin/products/:id", Action: "*"},
				{Object: "/admin/products/:id/images", Action: "POST"},
				{Object: "/admin/products/:id/variants", Action: "POST"},
				{Object: "/admin/product-images/:id", Action: "*"},
				{Object: "/admin/product-variants/:id", Action: "*"},
				{Object: "/admin/sliders", Action: "*"},
				{Object: "/admin/sliders/:id", Action: "*"},
				{Object: "/admin/reviews", Action: "GET"},
				{Object: "/admin/reviews/:id", Action: "*"},
				{Object: "/admin/upload", Action: "POST"},
			},
			Immutable: true,
		},
		{
			Role: RoleOrderManager,
			Policies: []Policy{
				{Object: "/admin/me", Action: "GET"},
				{Object: "/admin/orders", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "GET"},
				{Object: "/admin/orders/:id", Action: "PATCH"},
				{Object: "/admin/users", Action: "GET"},
				{Object: "/admin/user-login-logs", Action: "GET"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色、继承关系与默认策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	e, err := s.ready()
	if err != nil {
		return err
	}
	for _, seed := range BuiltinRoleSeeds() {
		role, err := s.EnsureRole(seed.Role)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", seed.Role, err)
		}
		for _, parent := range seed.Inherits {
			parentRole, err := s.EnsureRole(parent)
			if err != nil {
				return err
			}
			if _, err := e.AddNamedGroupingPolicy("g", role, parentRole); err != nil {
				return fmt.Errorf("link role inheritance failed: %w", err)
			}
		}
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(role, policy.Object, policy.Action); err != nil {
				return fmt.Errorf("seed policy for %s: %w", seed.Role, err)
			}
		}
	}
	return nil
}
