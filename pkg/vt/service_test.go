package vt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminServiceSMD(t *testing.T) {
	info := AdminService{}.SMD()

	for _, name := range []string{"Rates", "SetRate", "GrantTariff", "DeleteTransaction"} {
		require.Contains(t, info.Methods, name)
	}

	assert.Equal(t, "rates", RPC.AdminService.Rates)
	assert.Equal(t, "deletetransaction", RPC.AdminService.DeleteTransaction)

	del := info.Methods["DeleteTransaction"]
	require.Len(t, del.Parameters, 2)
	assert.Equal(t, "userID", del.Parameters[0].Name)
	assert.Equal(t, "transactionID", del.Parameters[1].Name)
}
