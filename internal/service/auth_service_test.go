package service

import (
	"errors"
	"testing"

	"go-almacen-pos/internal/model"
)

func newAuthFixture(t *testing.T) (AuthService, *PosService) {
	t.Helper()
	ms := newMemStore(model.AppState{}) // normalization seeds the default accounts
	pos, err := NewPosService(ms, nil)
	if err != nil {
		t.Fatalf("service init failed: %v", err)
	}
	return NewAuthService(pos), pos
}

func TestLoginIsCaseInsensitive(t *testing.T) {
	auth, _ := newAuthFixture(t)

	for _, username := range []string{"admin", "ADMIN", "Admin"} {
		resp, err := auth.Login(username, "admin123")
		if err != nil {
			t.Fatalf("login as %q failed: %v", username, err)
		}
		if resp.Token == "" {
			t.Fatalf("login returned an empty token")
		}
		if resp.User.Username != "admin" || resp.User.Role != model.RoleAdmin {
			t.Fatalf("unexpected user payload: %+v", resp.User)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	auth, _ := newAuthFixture(t)

	if _, err := auth.Login("admin", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if _, err := auth.Login("nobody", "admin123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestLoginResponseNeverCarriesTheHash(t *testing.T) {
	auth, _ := newAuthFixture(t)

	resp, err := auth.Login("vendedor", "vend123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if resp.User.ID == "" || resp.User.Name == "" {
		t.Fatalf("user payload incomplete: %+v", resp.User)
	}
}

func TestValidateTokenRoundTrip(t *testing.T) {
	auth, pos := newAuthFixture(t)

	resp, err := auth.Login("admin", "admin123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	validated, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("token validation failed: %v", err)
	}
	if validated.User.Username != "admin" {
		t.Fatalf("unexpected validated user: %+v", validated.User)
	}

	if _, err := auth.ValidateToken("not-a-token"); err == nil {
		t.Fatalf("garbage token validated")
	}

	// A token for a deleted account must stop working even before expiry.
	u, _ := pos.UserByUsername("vendedor")
	sellerResp, err := auth.Login("vendedor", "vend123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := pos.DeleteUser("admin", u.ID); err != nil {
		t.Fatalf("delete user failed: %v", err)
	}
	if _, err := auth.ValidateToken(sellerResp.Token); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials for deleted user, got %v", err)
	}
}

func TestResetPassword(t *testing.T) {
	auth, _ := newAuthFixture(t)

	if err := auth.ResetPassword("vendedor", "wrong", "newpass1"); !errors.Is(err, ErrWrongPassword) {
		t.Fatalf("expected wrong-password error, got %v", err)
	}
	if err := auth.ResetPassword("ghost", "x", "y"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}

	if err := auth.ResetPassword("vendedor", "vend123", "newpass1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	if _, err := auth.Login("vendedor", "vend123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password still works")
	}
	if _, err := auth.Login("vendedor", "newpass1"); err != nil {
		t.Fatalf("new password rejected: %v", err)
	}
}
