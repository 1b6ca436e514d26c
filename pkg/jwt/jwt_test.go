package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pos-api/pkg/jwt"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u1", "caja-3", jwt.RoleCashier, "pos-api", 5)
	require.NoError(t, err)

	userID, sessionID, role, err := jwt.Parse("secreto", token)

	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "caja-3", sessionID)
	assert.Equal(t, jwt.RoleCashier, role)
}

func TestParse_SinSesionUsaUsuario(t *testing.T) {
	token, err := jwt.Generate("secreto", "u1", "", jwt.RoleAdmin, "pos-api", 5)
	require.NoError(t, err)

	_, sessionID, _, err := jwt.Parse("secreto", token)

	require.NoError(t, err)
	assert.Equal(t, "u1", sessionID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := jwt.Generate("secreto", "u1", "s1", jwt.RoleAdmin, "pos-api", 5)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("otro", token)

	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := jwt.Generate("secreto", "u1", "s1", jwt.RoleAdmin, "pos-api", -1)
	require.NoError(t, err)

	_, _, _, err = jwt.Parse("secreto", token)

	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := jwt.Generate("", "u1", "s1", jwt.RoleAdmin, "pos-api", 5)

	assert.Error(t, err)
}
