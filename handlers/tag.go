package handlers

import (
	"net/http"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"github.com/gin-gonic/gin"
)

type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

func ListTags(c *gin.Context) {
	tags, err := getServices().Tag.ListTags(c.Request.Context())
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, tags)
}

func CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	tag, err := getServices().Tag.CreateTag(c.Request.Context(), principalFrom(c), req.Name)
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "Etiqueta criada", tag)
}

func DeleteTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if respondServiceError(c, getServices().Tag.DeleteTag(c.Request.Context(), principalFrom(c), tagID)) {
		return
	}

	utils.SuccessWithMessage(c, "Etiqueta removida", nil)
}
