package handlers

import (
	"net/http"
	"time"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/services"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"github.com/gin-gonic/gin"
)

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	FullName string `json:"full_name" binding:"required,max=255"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	user, err := getServices().Auth.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "Utilizador registado", user)
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	out, err := getServices().Auth.Login(c.Request.Context(), services.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

func Logout(c *gin.Context) {
	token := c.GetString("token")
	expiresAt, _ := c.Get("token_expires_at")
	expiry, ok := expiresAt.(time.Time)
	if token == "" || !ok {
		utils.Error(c, http.StatusUnauthorized, "Sessão inválida")
		return
	}

	if respondServiceError(c, getServices().Auth.Logout(c.Request.Context(), token, expiry)) {
		return
	}

	utils.SuccessWithMessage(c, "Sessão terminada", nil)
}

func GetProfile(c *gin.Context) {
	profile, err := getServices().Auth.GetProfile(c.Request.Context(), c.GetUint("user_id"))
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, profile)
}
