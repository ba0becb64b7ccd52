package handlers

import (
	"net/http"
	"strconv"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/services"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"github.com/gin-gonic/gin"
)

type FolderRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	IsHidden bool   `json:"is_hidden"`
	TagIDs   []uint `json:"tag_ids"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.Error(c, http.StatusBadRequest, "Identificador inválido")
		return 0, false
	}
	return uint(id), true
}

func ListFolders(c *gin.Context) {
	search := c.Query("search")
	sort := c.DefaultQuery("sort", "name_asc")
	tagID, _ := strconv.ParseUint(c.DefaultQuery("tag_id", "0"), 10, 32)

	out, err := getServices().Folder.ListFolders(c.Request.Context(), principalFrom(c), search, sort, uint(tagID))
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

func GetFolder(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	out, err := getServices().Folder.GetFolder(c.Request.Context(), principalFrom(c), folderID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

func CreateFolder(c *gin.Context) {
	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	folder, err := getServices().Folder.CreateFolder(c.Request.Context(), principalFrom(c), services.FolderInput{
		Name:     req.Name,
		IsHidden: req.IsHidden,
		TagIDs:   req.TagIDs,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "Pasta criada", folder)
}

func EditFolder(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req FolderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "Dados inválidos: "+err.Error())
		return
	}

	folder, err := getServices().Folder.EditFolder(c.Request.Context(), principalFrom(c), folderID, services.FolderInput{
		Name:     req.Name,
		IsHidden: req.IsHidden,
		TagIDs:   req.TagIDs,
	})
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "Pasta atualizada", folder)
}

func DeleteFolder(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if respondServiceError(c, getServices().Folder.DeleteFolder(c.Request.Context(), principalFrom(c), folderID)) {
		return
	}

	utils.SuccessWithMessage(c, "Pasta removida", nil)
}

func ToggleFolderLike(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	liked, err := getServices().Folder.ToggleLike(c.Request.Context(), principalFrom(c), folderID)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, gin.H{"liked": liked})
}
