package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_View_Redacts(t *testing.T) {
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	u := &User{
		ID: "1", Name: "Ann", Email: "ann@x.io", Mobile: "555",
		Password: "$2a$10$hash", Token: "jwt", Status: true, CreatedAt: created,
	}

	v := u.View()
	assert.Equal(t, UserView{ID: "1", Name: "Ann", Email: "ann@x.io", Mobile: "555", Status: true, CreatedAt: created}, v)

	b, err := json.Marshal(v)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "password")
	assert.NotContains(t, string(b), "token")
	assert.NotContains(t, string(b), "$2a$10$hash")
}

func TestViews_PreservesOrder(t *testing.T) {
	in := []*User{{ID: "b"}, {ID: "a"}}
	out := Views(in)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)

	assert.Empty(t, Views(nil))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Active", StatusLabel(true))
	assert.Equal(t, "Inactive", StatusLabel(false))
}
