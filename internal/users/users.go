// Package users is the user administration controller. Mutating
// operations are gated client-side on the top_user role; the backend
// enforces the same rule authoritatively.
package users

import (
	"context"
	"fmt"

	"github.com/SHAIK-07/sunmax/internal/backend"
)

const RoleTopUser = "top_user"

// RoleError is the notice shown when a non-top user attempts a gated
// operation. Nothing is sent to the backend.
type RoleError struct {
	Action string
}

func (e *RoleError) Error() string {
	return fmt.Sprintf("Only top users can %s", e.Action)
}

type Admin struct {
	client *backend.Client
}

func NewAdmin(client *backend.Client) *Admin {
	return &Admin{client: client}
}

// List and Get are not role-gated; every admin page shows the table.

func (a *Admin) List(ctx context.Context) ([]backend.User, error) {
	return a.client.ListUsers(ctx)
}

func (a *Admin) Get(ctx context.Context, id int64) (*backend.User, error) {
	return a.client.GetUser(ctx, id)
}

func (a *Admin) Create(ctx context.Context, actorRole string, u backend.NewUser) (*backend.User, error) {
	if actorRole != RoleTopUser {
		return nil, &RoleError{Action: "add new users"}
	}
	return a.client.CreateUser(ctx, u)
}

func (a *Admin) Update(ctx context.Context, actorRole string, id int64, u backend.UserUpdate) (*backend.User, error) {
	if actorRole != RoleTopUser {
		return nil, &RoleError{Action: "update user information"}
	}
	return a.client.UpdateUser(ctx, id, u)
}

func (a *Admin) Delete(ctx context.Context, actorRole string, id int64) error {
	if actorRole != RoleTopUser {
		return &RoleError{Action: "delete users"}
	}
	return a.client.DeleteUser(ctx, id)
}
