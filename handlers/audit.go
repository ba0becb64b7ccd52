package handlers

import (
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"github.com/gin-gonic/gin"
)

func ListFolderAudits(c *gin.Context) {
	page, pageSize := pageParams(c)

	out, err := getServices().Audit.ListFolderAudits(c.Request.Context(), principalFrom(c), page, pageSize)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

func ListFileAudits(c *gin.Context) {
	page, pageSize := pageParams(c)

	out, err := getServices().Audit.ListFileAudits(c.Request.Context(), principalFrom(c), page, pageSize)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}
