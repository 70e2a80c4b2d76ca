package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Toggle(t *testing.T) {
	assert.Equal(t, StatusInactive, StatusActive.Toggle())
	assert.Equal(t, StatusActive, StatusInactive.Toggle())
	assert.True(t, StatusActive.Valid())
	assert.False(t, Status("banned").Valid())
}

func TestParseStatusFilter(t *testing.T) {
	for _, s := range []string{"active", "inactive", "all"} {
		f, ok := ParseStatusFilter(s)
		assert.True(t, ok, s)
		assert.Equal(t, StatusFilter(s), f)
	}
	_, ok := ParseStatusFilter("disabled")
	assert.False(t, ok)
}

func TestUpdateUserRequest_OmitsEmptyPassword(t *testing.T) {
	b, err := json.Marshal(UpdateUserRequest{Username: "bobby"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bobby"}`, string(b))

	b, err = json.Marshal(UpdateUserRequest{Username: "bobby", Password: "p", ConfirmPassword: "p"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"username":"bobby","password":"p","confirmPassword":"p"}`, string(b))
}

func TestUserPage_DecodesServerBody(t *testing.T) {
	body := `{"data":[{"id":7,"username":"bob","status":"active",
		"createdAt":"2026-01-02T03:04:05Z","updatedAt":"2026-01-02T03:04:05Z"}],"total":31}`

	var p UserPage
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	require.Len(t, p.Data, 1)
	assert.Equal(t, int64(7), p.Data[0].ID)
	assert.Equal(t, StatusActive, p.Data[0].Status)
	assert.Equal(t, 31, p.Total)
	assert.Equal(t, 2026, p.Data[0].CreatedAt.Year())
}

func TestPagination_PageCount(t *testing.T) {
	p := Pagination{Page: 1, PageSize: 10}
	assert.Equal(t, 1, p.PageCount(0))
	assert.Equal(t, 1, p.PageCount(10))
	assert.Equal(t, 2, p.PageCount(11))
	assert.Equal(t, 1, Pagination{}.PageCount(50))
}

func TestSortAndPageSizeHelpers(t *testing.T) {
	assert.False(t, Sort{}.Active())
	assert.True(t, Sort{Field: "username", Direction: SortAsc}.Active())
	assert.True(t, IsSortable("createdAt"))
	assert.False(t, IsSortable("actions"))
	assert.True(t, IsPageSize(20))
	assert.False(t, IsPageSize(50))
}

func TestFieldErrors_Clone(t *testing.T) {
	var nilErrs FieldErrors
	assert.Nil(t, nilErrs.Clone())

	orig := FieldErrors{FieldUsername: "required"}
	c := orig.Clone()
	c[FieldUsername] = "changed"
	assert.Equal(t, "required", orig[FieldUsername])
}
