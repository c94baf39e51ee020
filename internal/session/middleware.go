package session

import (
	"github.com/gin-gonic/gin"
)

const ginKey = "session"

// Middleware resolves the acting persona for the request: the X-Persona
// header wins, otherwise the stored slot is read. An empty persona is
// allowed; permission checks downstream treat it as view-only.
func Middleware(store Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		persona := c.GetHeader("X-Persona")
		if persona == "" {
			stored, err := store.GetPersona(c.Request.Context())
			if err == nil {
				persona = stored
			}
		}
		c.Set(ginKey, Context{Persona: persona})
		c.Next()
	}
}

// FromGin returns the session resolved by Middleware, or a zero Context.
func FromGin(c *gin.Context) Context {
	if v, ok := c.Get(ginKey); ok {
		if sc, ok := v.(Context); ok {
			return sc
		}
	}
	return Context{}
}
