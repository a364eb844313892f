package images

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizerURL(t *testing.T) {
	raw := "https://media.rawg.io/media/games/20a/20aa03a10cda45239fe22d035c0ebe64.jpg"

	tests := []struct {
		ctx     Context
		w, h, q string
	}{
		{Card, "400", "300", "75"},
		{Hero, "800", "600", "90"},
		{Background, "1200", "800", "90"},
		{Search, "200", "150", "60"},
		{Screenshot, "600", "400", "75"},
		{Default, "500", "400", "75"},
		{Context("poster"), "500", "400", "75"},
	}
	o := NewOptimizer("")
	for _, tt := range tests {
		t.Run(string(tt.ctx), func(t *testing.T) {
			got := o.URL(raw, tt.ctx)

			u, err := url.Parse(got)
			require.NoError(t, err)
			assert.Equal(t, "images.weserv.nl", u.Host)
			q := u.Query()
			assert.Equal(t, raw, q.Get("url"))
			assert.Equal(t, tt.w, q.Get("w"))
			assert.Equal(t, tt.h, q.Get("h"))
			assert.Equal(t, tt.q, q.Get("q"))
			assert.Equal(t, "webp", q.Get("output"))
		})
	}
}

func TestOptimizeEmpty(t *testing.T) {
	assert.Equal(t, "", NewOptimizer("").URL("", Card))
}

func TestCustomProxy(t *testing.T) {
	o := NewOptimizer("http://localhost:8080")
	got := o.URL("https://a/b.jpg", Card)
	assert.Equal(t, "http://localhost:8080/?url=https%3A%2F%2Fa%2Fb.jpg&w=400&h=300&q=75&output=webp", got)
}
