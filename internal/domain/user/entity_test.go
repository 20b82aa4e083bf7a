package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestPatch_Apply(t *testing.T) {
	base := User{ID: 1, Username: "John Doe", Email: "1@1.com"}

	tests := []struct {
		name  string
		patch Patch
		want  User
	}{
		{
			name:  "empty patch leaves record unchanged",
			patch: Patch{},
			want:  base,
		},
		{
			name:  "username only",
			patch: Patch{Username: strPtr("Jane")},
			want:  User{ID: 1, Username: "Jane", Email: "1@1.com"},
		},
		{
			name:  "both fields",
			patch: Patch{Username: strPtr("Jane"), Email: strPtr("2@2.com")},
			want:  User{ID: 1, Username: "Jane", Email: "2@2.com"},
		},
		{
			name:  "explicit empty string is applied",
			patch: Patch{Email: strPtr("")},
			want:  User{ID: 1, Username: "John Doe", Email: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Apply(base))
		})
	}
}

func TestPatch_FieldsAndIsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.Empty(t, Patch{}.Fields())

	p := Patch{Username: strPtr("Jane")}
	assert.False(t, p.IsEmpty())
	assert.Equal(t, map[string]any{"username": "Jane"}, p.Fields())
}
