package opid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oafront/parser"
)

func TestGenerateUsesOperationID(t *testing.T) {
	used := map[string]bool{}

	id := Generate("/pets", "get", &parser.Operation{OperationID: "listPets"}, used)

	assert.Equal(t, "listPets", id)
	assert.True(t, used["listPets"], "generated id is recorded")
}

func TestGenerateSanitizesOperationID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"list-pets", "listPets"},
		{"pets.list_all", "petsListAll"},
		{"Find Pets By Tag", "findPetsByTag"},
		{"get(pets)/$all", "getPets$all"},
		{"2fa-verify", "faVerify"},
		{"delete", "deletePets"},
		{"---", "deletePets"},
		{"", "deletePets"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			id := Generate("/pets", "delete", &parser.Operation{OperationID: tt.in}, map[string]bool{})
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestGenerateDerivesFromPath(t *testing.T) {
	tests := []struct {
		path   string
		method string
		want   string
	}{
		{"/pets", "get", "getPets"},
		{"/pets/{petId}", "get", "getPetsPetId"},
		{"/users/{user-id}/avatar.png", "put", "putUsersUserIdAvatarPng"},
		{"/", "get", "getRoot"},
		{"/v1/health-check", "POST", "postV1HealthCheck"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.path, tt.method, &parser.Operation{}, map[string]bool{}))
		})
	}

	assert.Equal(t, "getPets", Generate("/pets", "get", nil, map[string]bool{}))
}

func TestGenerateCollisions(t *testing.T) {
	used := map[string]bool{}
	op := &parser.Operation{OperationID: "getUser"}

	ids := []string{
		Generate("/users/{id}", "get", op, used),
		Generate("/v2/users/{id}", "get", op, used),
		Generate("/v3/users/{id}", "get", op, used),
	}

	assert.Equal(t, []string{"getUser", "getUser2", "getUser3"}, ids)
	assert.Len(t, used, 3)
}

func TestGenerateCollisionSkipsTakenSuffix(t *testing.T) {
	used := map[string]bool{"getPets": true, "getPets2": true}

	assert.Equal(t, "getPets3", Generate("/pets", "get", &parser.Operation{}, used))
}

func TestGenerateAvoidsTakenNames(t *testing.T) {
	tests := []struct {
		operationID string
		want        string
	}{
		{ConfigBinding, "config2"},
		{SetBaseURLBinding, "setBaseUrl2"},
		{"fetch", "fetch2"},
		{"URLSearchParams", "URLSearchParams2"},
		{"JSON", "JSON2"},
		{"Object", "Object2"},
		{"Error", "Error2"},
		{"fetchPets", "fetchPets"},
	}
	for _, tt := range tests {
		t.Run(tt.operationID, func(t *testing.T) {
			used := map[string]bool{}
			id := Generate("/pets", "get", &parser.Operation{OperationID: tt.operationID}, used)
			assert.Equal(t, tt.want, id)
			assert.True(t, used[tt.want])
			assert.False(t, IsTaken(id))
		})
	}
}

func TestIsTaken(t *testing.T) {
	assert.True(t, IsTaken("config"))
	assert.True(t, IsTaken("setBaseUrl"))
	assert.True(t, IsTaken("fetch"))
	assert.False(t, IsTaken("Config"))
	assert.False(t, IsTaken("listPets"))
}
