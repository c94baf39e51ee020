package session

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	persona, err := s.GetPersona(ctx)
	require.NoError(t, err)
	assert.Empty(t, persona)

	require.NoError(t, s.SetPersona(ctx, "Finance Admin"))
	persona, err = s.GetPersona(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Finance Admin", persona)

	n, err := s.IncrUploadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	n, err = s.IncrUploadCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestMiddleware_HeaderWinsOverStoredSlot(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := NewMemoryStore()
	require.NoError(t, store.SetPersona(context.Background(), "Account Manager"))

	var got Context
	r := gin.New()
	r.Use(Middleware(store))
	r.GET("/probe", func(c *gin.Context) {
		got = FromGin(c)
		c.Status(204)
	})

	// Header set: header wins.
	req := httptest.NewRequest("GET", "/probe", nil)
	req.Header.Set("X-Persona", "Product Manager")
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "Product Manager", got.Persona)

	// No header: stored slot.
	req = httptest.NewRequest("GET", "/probe", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "Account Manager", got.Persona)
}

func TestFromGin_ZeroWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, FromGin(c).Persona)
}
