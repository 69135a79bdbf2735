package store

import (
	"context"

	"github.com/frahmantamala/marketplace-storefront/internal"
	"github.com/frahmantamala/marketplace-storefront/internal/auth"
	"github.com/frahmantamala/marketplace-storefront/internal/user"
)

// Login matches credential against email or display name, ignoring case. On
// failure it returns internal.ErrInvalidCredentials and the session is unchanged.
// Before hydration it returns internal.ErrStoreNotReady, since hydration would
// replace the session anyway.
func (s *Store) Login(ctx context.Context, credential, password string) (user.User, error) {
	if !s.Ready() {
		return user.User{}, internal.ErrStoreNotReady
	}
	var signedIn user.User
	err := s.apply(ctx, "login", func(st *state) ([]string, error) {
		found, err := s.auth.Authenticate(st.users, auth.LoginDTO{Credential: credential, Password: password})
		if err != nil {
			return nil, err
		}
		st.session = found
		signedIn = found
		return []string{SliceUser}, nil
	})

	if signedIn.ID == "" {
		s.metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		return user.User{}, err
	}
	s.metrics.LoginAttempts.WithLabelValues("accepted").Inc()
	s.log(ctx).Info("user logged in", "user_id", signedIn.ID, "role", signedIn.Role)
	return signedIn, err
}

// Logout returns to the guest session and empties the cart.
func (s *Store) Logout(ctx context.Context) error {
	return s.apply(ctx, "logout", func(st *state) ([]string, error) {
		st.session = user.Guest()
		st.cart = nil
		return []string{SliceUser, SliceCart}, nil
	})
}

// UpdateUser merges patch into the user with id, and into the session when it is
// the same user. An unknown id is a no-op.
func (s *Store) UpdateUser(ctx context.Context, id string, patch user.Patch) error {
	if patch.Role != nil && !patch.Role.Valid() {
		return internal.NewValidationFieldError("role", "role must be guest, user, admin or superadmin", internal.ErrCodeValidationFailed)
	}
	if patch.IsEmpty() {
		return nil
	}
	if patch.Password != nil && s.hashNewPasswords && !auth.IsHashed(*patch.Password) {
		hash, err := s.auth.HashPassword(*patch.Password)
		if err != nil {
			return internal.NewInternalError("failed to hash password", err)
		}
		patch.Password = &hash
	}

	return s.apply(ctx, "update_user", func(st *state) ([]string, error) {
		idx := user.FindByID(st.users, id)
		if idx < 0 {
			return nil, nil
		}
		users := cloneUsers(st.users)
		users[idx].Apply(patch)
		st.users = users

		changed := []string{SliceUsers}
		if st.session.ID == id {
			st.session.Apply(patch)
			changed = append(changed, SliceUser)
		}
		return changed, nil
	})
}

// AddUser appends a new operator. The id is the next free count-based number,
// the role defaults to admin and every permission starts off.
func (s *Store) AddUser(ctx context.Context, data user.NewUser) (user.User, error) {
	if err := data.Validate(); err != nil {
		return user.User{}, err
	}

	password := data.Password
	if password != "" && s.hashNewPasswords && !auth.IsHashed(password) {
		hash, err := s.auth.HashPassword(password)
		if err != nil {
			return user.User{}, internal.NewInternalError("failed to hash password", err)
		}
		password = hash
	}

	role := data.Role
	if role == "" {
		role = user.RoleAdmin
	}

	var created user.User
	err := s.apply(ctx, "add_user", func(st *state) ([]string, error) {
		created = user.User{
			ID:          nextCountID(len(st.users), func(id string) bool { return user.FindByID(st.users, id) >= 0 }),
			Name:        data.Name,
			Email:       data.Email,
			Role:        role,
			Avatar:      data.Avatar,
			Phone:       data.Phone,
			Password:    password,
			Permissions: user.Permissions{},
		}
		st.users = append(cloneUsers(st.users), created)
		return []string{SliceUsers}, nil
	})
	return created, err
}

// DeleteUser removes the user with id. Products keep the operator name they were stamped with.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	return s.apply(ctx, "delete_user", func(st *state) ([]string, error) {
		idx := user.FindByID(st.users, id)
		if idx < 0 {
			return nil, nil
		}
		users := make([]user.User, 0, len(st.users)-1)
		users = append(users, st.users[:idx]...)
		users = append(users, st.users[idx+1:]...)
		st.users = users
		return []string{SliceUsers}, nil
	})
}

func cloneUsers(users []user.User) []user.User {
	out := make([]user.User, len(users))
	copy(out, users)
	return out
}
