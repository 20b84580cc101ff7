package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "%%", escapeLike(""))
	assert.Equal(t, "%music%", escapeLike("music"))
	assert.Equal(t, `%100\%%`, escapeLike("100%"))
	assert.Equal(t, `%snake\_case%`, escapeLike("snake_case"))
	assert.Equal(t, `%back\\slash%`, escapeLike(`back\slash`))
}
