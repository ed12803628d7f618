package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestType_Valid(t *testing.T) {
	for _, typ := range Types {
		assert.True(t, typ.Valid(), typ)
	}

	assert.False(t, Type("COOKING").Valid())
	assert.False(t, Type("computer").Valid())
	assert.False(t, Type("").Valid())
}
