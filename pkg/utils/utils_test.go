package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_TempPassword(t *testing.T) {
	assert.Equal(t, "jane@1234", TempPassword("Jane", "jane1234@school.org"))
	// short local parts are used whole
	assert.Equal(t, "bo@ann", TempPassword("Bo", "ann@school.org"))
	// no @ in the address still derives something usable
	assert.Equal(t, "jane@lane", TempPassword("Jane", "janelane"))
}

func Test_ParseAcceptLanguage(t *testing.T) {
	res := ParseAcceptLanguage("en-US,en;q=0.9,zh-CN;q=0.8")
	assert.Len(t, res, 3)
	assert.Equal(t, "en-US", res[0].Tag)
	assert.Equal(t, 1.0, res[0].Weight)

	// ordered by weight, not position
	res = ParseAcceptLanguage("en;q=0.5,zh-CN")
	assert.Equal(t, "zh-CN", res[0].Tag)

	assert.Empty(t, ParseAcceptLanguage(""))
}

func Test_RandomStr(t *testing.T) {
	s := RandomStr(64)
	assert.Len(t, s, 64)
	assert.NotEqual(t, s, RandomStr(64))
}

func Test_MD5(t *testing.T) {
	assert.Equal(t, "5d41402abc4b2a76b9719d911017c592", MD5("hello"))
}
