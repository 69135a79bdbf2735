package user

// Seed returns the accounts a fresh storefront starts with.
func Seed() []User {
	return []User{
		{
			ID:          "superadmin-01",
			Name:        "Root",
			Email:       "root@megatec.com",
			Password:    "admin",
			Role:        RoleSuperAdmin,
			Avatar:      "https://avatar.vercel.sh/root.png",
			Permissions: AllPermissions(),
		},
		{
			ID:       "admin-01",
			Name:     "Ana García",
			Email:    "ana.garcia@megatec.com",
			Password: "admin",
			Role:     RoleAdmin,
			Avatar:   "https://avatar.vercel.sh/ana.png",
			Permissions: Permissions{
				CanManagePublications: true,
				CanManageCategories:   true,
				CanManageChats:        true,
			},
		},
		{
			ID:       "admin-02",
			Name:     "Carlos Ruiz",
			Email:    "carlos.ruiz@megatec.com",
			Password: "admin",
			Role:     RoleAdmin,
			Avatar:   "https://avatar.vercel.sh/carlos.png",
			Permissions: Permissions{
				CanManagePublications: true,
				CanManageBanners:      true,
			},
		},
		{
			ID:       "admin-03",
			Name:     "Laura Méndez",
			Email:    "laura.mendez@megatec.com",
			Password: "admin",
			Role:     RoleAdmin,
			Avatar:   "https://avatar.vercel.sh/laura.png",
			Permissions: Permissions{
				CanManagePublications: true,
				CanManageChats:        true,
			},
		},
		{
			ID:       "user-01",
			Name:     "Juan Perez",
			Email:    "juan.perez@email.com",
			Password: "user",
			Role:     RoleUser,
			Avatar:   "https://avatar.vercel.sh/juan.png",
		},
	}
}
