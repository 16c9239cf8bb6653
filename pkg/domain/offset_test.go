package domain_test

import (
	"testing"

	"github.com/aretw0/sileo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOffsetFor(t *testing.T) {
	o := domain.Offset{Top: "1px", Right: "2px", Bottom: "3px", Left: "4px"}

	assert.Equal(t, map[domain.Side]string{domain.SideTop: "1px", domain.SideRight: "2px"}, o.For(domain.TopRight))
	assert.Equal(t, map[domain.Side]string{domain.SideBottom: "3px"}, o.For(domain.BottomCenter))
	assert.Equal(t, map[domain.Side]string{domain.SideBottom: "3px", domain.SideLeft: "4px"}, o.For(domain.BottomLeft))
	assert.Nil(t, domain.Offset{}.For(domain.TopLeft))
	assert.Nil(t, domain.Offset{Bottom: "3px"}.For(domain.TopLeft))
}

func TestOffsetLength(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"2rem", "2rem"},
		{16, "16px"},
		{int64(8), "8px"},
		{12.5, "12.5px"},
	}
	for _, tt := range tests {
		got, err := domain.OffsetLength(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := domain.OffsetLength(true)
	assert.ErrorIs(t, err, domain.ErrInvalidConfig)
}

func TestUniformOffset(t *testing.T) {
	o := domain.UniformOffset("8px")
	assert.False(t, o.IsZero())
	assert.True(t, domain.Offset{}.IsZero())
	assert.Equal(t, "8px", o.Left)
}
