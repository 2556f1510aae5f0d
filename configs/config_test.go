package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInt(t *testing.T) {
	t.Setenv("FREEBOARD_TEST_INT", "")
	assert.Equal(t, 10, getInt("FREEBOARD_TEST_INT", 10))

	t.Setenv("FREEBOARD_TEST_INT", "30")
	assert.Equal(t, 30, getInt("FREEBOARD_TEST_INT", 10))

	// 非法值与非正数都回退到默认值
	t.Setenv("FREEBOARD_TEST_INT", "abc")
	assert.Equal(t, 10, getInt("FREEBOARD_TEST_INT", 10))
	t.Setenv("FREEBOARD_TEST_INT", "-1")
	assert.Equal(t, 10, getInt("FREEBOARD_TEST_INT", 10))
}

func TestGetString(t *testing.T) {
	t.Setenv("FREEBOARD_TEST_STRING", "")
	assert.Equal(t, "fallback", getString("FREEBOARD_TEST_STRING", "fallback"))

	t.Setenv("FREEBOARD_TEST_STRING", "redis")
	assert.Equal(t, "redis", getString("FREEBOARD_TEST_STRING", "fallback"))
}
