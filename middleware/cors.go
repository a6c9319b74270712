package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// CORSMiddleware calcula os cabeçalhos de CORS por request a partir da
// allow-list configurada. Regras:
//   - sem header Origin (cliente não-browser): libera tudo ("*");
//   - Origin presente e na lista (comparação exata, sem barra final): ecoa a origem;
//   - Origin presente e fora da lista: NÃO emite Access-Control-Allow-Origin.
//     A request segue normalmente - quem bloqueia a leitura é o browser.
//
// Preflight (OPTIONS) sempre responde 204 sem corpo.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimSuffix(strings.TrimSpace(o), "/")] = true
	}

	return func(c *gin.Context) {
		header := c.Writer.Header()

		origin := c.GetHeader("Origin")
		if origin == "" {
			header.Set("Access-Control-Allow-Origin", "*")
		} else if allowed[strings.TrimSuffix(origin, "/")] {
			header.Set("Access-Control-Allow-Origin", origin)
			header.Set("Vary", "Origin")
		}

		header.Set("Access-Control-Allow-Credentials", "true")
		header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Application-Version")
		header.Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
