package auth

import (
	"errors"
	"testing"

	"github.com/nhle/workdesk/internal/credential"
)

func TestVerify(t *testing.T) {
	a := New("admin", credential.NewMemory())

	if err := a.Verify("admin", "secret"); !errors.Is(err, ErrNoCredential) {
		t.Fatalf("err = %v, want ErrNoCredential", err)
	}

	if err := a.SetPassword("short"); err == nil {
		t.Fatal("short password accepted")
	}
	if err := a.SetPassword("s3cret-pass"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	tests := []struct {
		name, user, pass string
		wantErr          error
	}{
		{"valid", "admin", "s3cret-pass", nil},
		{"wrong password", "admin", "nope", ErrInvalidCredentials},
		{"wrong user", "root", "s3cret-pass", ErrInvalidCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := a.Verify(tt.user, tt.pass); !errors.Is(err, tt.wantErr) {
				t.Fatalf("Verify err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
