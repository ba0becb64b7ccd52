package middleware

import (
	"net/http"
	"strings"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/repositories"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(blacklist repositories.TokenBlacklistRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, http.StatusUnauthorized, "Token de autenticação em falta")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, http.StatusUnauthorized, "Formato do token de autenticação inválido")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(parts[1])
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Token de autenticação inválido ou expirado")
			c.Abort()
			return
		}

		revoked, err := blacklist.Contains(c.Request.Context(), parts[1])
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Falha ao validar a sessão")
			c.Abort()
			return
		}
		if revoked {
			utils.Error(c, http.StatusUnauthorized, "A sessão foi terminada")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("token", parts[1])
		if claims.ExpiresAt != nil {
			c.Set("token_expires_at", claims.ExpiresAt.Time)
		}
		c.Next()
	}
}
