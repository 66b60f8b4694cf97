package dto

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
)

func TestValidFileName(t *testing.T) {
	v := validator.New()
	require.NoError(t, v.RegisterValidation("filename", validFileName))

	require.NoError(t, v.Var("contract.pdf", "filename"))
	require.NoError(t, v.Var("Passport Copy.jpeg", "filename"))

	require.Error(t, v.Var("", "filename"))
	require.Error(t, v.Var("contract", "filename"))
	require.Error(t, v.Var("../etc/contract.pdf", "filename"))
	require.Error(t, v.Var(`docs\contract.pdf`, "filename"))
}
