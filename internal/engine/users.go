package engine

import (
	"fmt"
	"strings"

	"go-almacen-pos/internal/model"
)

// UserSpec carries operator-account fields. PasswordHash is the bcrypt hash
// computed by the caller; the engine never sees a plaintext password.
type UserSpec struct {
	Username     string
	Name         string
	PasswordHash string
	Role         model.UserRole
}

func CreateUser(st model.AppState, env Env, spec UserSpec) (model.AppState, error) {
	username := strings.TrimSpace(spec.Username)
	if username == "" || strings.TrimSpace(spec.Name) == "" {
		return st, validationf("username and name are required")
	}
	if spec.PasswordHash == "" {
		return st, validationf("password is required")
	}
	if spec.Role != model.RoleAdmin && spec.Role != model.RoleSeller {
		return st, validationf("role must be admin or seller")
	}
	for _, u := range st.Users {
		if strings.EqualFold(u.Username, username) {
			return st, validationf("username %q already exists", username)
		}
	}

	next := st.Clone()
	next.Users = append(next.Users, model.User{
		ID:       env.NewID(),
		Username: username,
		Password: spec.PasswordHash,
		Name:     strings.TrimSpace(spec.Name),
		Role:     spec.Role,
	})
	appendLog(&next, env, env.Now(), "CREATE_USER",
		fmt.Sprintf("Created user %q (%s)", username, spec.Role))
	return next, nil
}

// UpdateUser changes name, role and optionally the password hash. The username
// is identity here and stays fixed.
func UpdateUser(st model.AppState, env Env, id string, spec UserSpec) (model.AppState, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return st, validationf("name is required")
	}
	if spec.Role != model.RoleAdmin && spec.Role != model.RoleSeller {
		return st, validationf("role must be admin or seller")
	}

	next := st.Clone()
	for i := range next.Users {
		if next.Users[i].ID != id {
			continue
		}
		next.Users[i].Name = strings.TrimSpace(spec.Name)
		next.Users[i].Role = spec.Role
		if spec.PasswordHash != "" {
			next.Users[i].Password = spec.PasswordHash
		}
		appendLog(&next, env, env.Now(), "EDIT_USER",
			fmt.Sprintf("Updated user %q", next.Users[i].Username))
		return next, nil
	}
	return st, &NotFoundError{Kind: "user", ID: id}
}

func DeleteUser(st model.AppState, env Env, id string) (model.AppState, error) {
	if id == model.DefaultAdminID {
		return st, validationf("the default administrator cannot be deleted")
	}

	next := st.Clone()
	for i := range next.Users {
		if next.Users[i].ID != id {
			continue
		}
		username := next.Users[i].Username
		next.Users = append(next.Users[:i], next.Users[i+1:]...)
		appendLog(&next, env, env.Now(), "DELETE_USER",
			fmt.Sprintf("Deleted user %q", username))
		return next, nil
	}
	return st, &NotFoundError{Kind: "user", ID: id}
}
