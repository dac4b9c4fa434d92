package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pcs-crm/internal/model"
	"pcs-crm/internal/pkg/crypto"
	"pcs-crm/pkg/errors"
)

type memStore struct {
	users map[string]*model.User
}

func (m *memStore) FindByEmail(email string) (*model.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, errors.ErrUserNotFound
}

func (m *memStore) Create(user *model.User) error {
	user.ID = int64(len(m.users) + 1)
	m.users[user.Email] = user
	return nil
}

const sample = `
users:
  - employee_id: E001
    first_name: Ada
    last_name: Admin
    email: Admin@Example.com
    phone: "0123456789"
    role: admin
    password: secret1
  - employee_id: E002
    first_name: Eve
    last_name: Worker
    email: eve@example.com
    phone: "0123456780"
    password: secret2
    skills: [go, sql]
`

func TestParse(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, f.Users, 2)

	assert.Equal(t, "admin", f.Users[0].Role)
	assert.Equal(t, "employee", f.Users[1].Role)
	assert.Equal(t, []string{"go", "sql"}, f.Users[1].Skills)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad yaml":     "users: [",
		"unknown role": "users:\n  - {employee_id: E1, email: a@b.c, phone: '0123456789', role: root, password: secret1}",
		"short pass":   "users:\n  - {employee_id: E1, email: a@b.c, phone: '0123456789', password: abc}",
		"no email":     "users:\n  - {employee_id: E1, phone: '0123456789', password: secret1}",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.Error(t, err)
		})
	}
}

func TestApply_SkipsExisting(t *testing.T) {
	f, err := Parse([]byte(sample))
	require.NoError(t, err)

	store := &memStore{users: map[string]*model.User{}}
	created, err := Apply(store, f)
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	admin := store.users["admin@example.com"]
	require.NotNil(t, admin)
	assert.True(t, crypto.CheckPassword("secret1", admin.Password))
	assert.Equal(t, "local", admin.AuthProvider)

	created, err = Apply(store, f)
	require.NoError(t, err)
	assert.Zero(t, created)
}
