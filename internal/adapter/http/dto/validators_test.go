package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPFPattern(t *testing.T) {
	valid := []string{"12345678900", "123.456.789-00"}
	invalid := []string{"", "123", "123.456.789-0", "123456789001", "abc.def.ghi-jk", "123-456-789.00"}

	for _, s := range valid {
		assert.True(t, cpfRe.MatchString(s), "expected %q to be valid", s)
	}
	for _, s := range invalid {
		assert.False(t, cpfRe.MatchString(s), "expected %q to be invalid", s)
	}
}

func TestSanitizeStruct(t *testing.T) {
	phone := "  <b>+5511</b>  "
	req := ContactRequest{
		Name:    "  João <script>alert(1)</script>  ",
		Email:   " joao@example.com ",
		Phone:   &phone,
		Message: "hello",
	}

	SanitizeStruct(&req)

	assert.Equal(t, "João &lt;script&gt;alert(1)&lt;/script&gt;", req.Name)
	assert.Equal(t, "joao@example.com", req.Email)
	assert.Equal(t, "&lt;b&gt;+5511&lt;/b&gt;", *req.Phone)
	assert.Equal(t, "hello", req.Message)
}

func TestSanitizeStruct_NonStructIsNoop(t *testing.T) {
	s := "  plain  "
	SanitizeStruct(&s)
	assert.Equal(t, "  plain  ", s)
}
