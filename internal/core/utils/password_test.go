package utils_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xcommerce/backend/internal/core/utils"
)

func TestPassword_HashAndCompare(t *testing.T) {
	hashed, err := utils.HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)

	assert.NoError(t, utils.ComparePassword("s3cret", hashed))
	assert.Error(t, utils.ComparePassword("wrong", hashed))
}
