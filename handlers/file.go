package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/config"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/services"
	"github.com/PedroMFC99/PlataformaEDUGEP-sub000/utils"

	"github.com/gin-gonic/gin"
)

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "0"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > config.AppConfig.Pagination.MaxPageSize {
		pageSize = config.AppConfig.Pagination.DefaultPageSize
	}
	return page, pageSize
}

func ListFiles(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	search := c.Query("search")
	page, pageSize := pageParams(c)
	sortBy := c.DefaultQuery("sort_by", "upload_date")
	order := c.DefaultQuery("order", "desc")

	out, err := getServices().File.ListFiles(c.Request.Context(), principalFrom(c), folderID, search, page, pageSize, sortBy, order)
	if respondServiceError(c, err) {
		return
	}

	utils.Success(c, out)
}

func UploadFile(c *gin.Context) {
	folderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	title := c.PostForm("title")
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		utils.ErrorWithData(c, http.StatusBadRequest, "Dados inválidos", map[string]string{
			"file": "O ficheiro é obrigatório",
		})
		return
	}
	defer file.Close()

	stored, err := getServices().File.UploadFile(c.Request.Context(), principalFrom(c), folderID, title, file, header)
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "Ficheiro carregado", stored)
}

func EditFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	in := services.EditFileInput{Title: c.PostForm("title")}
	if folderIDStr := c.PostForm("folder_id"); folderIDStr != "" {
		folderID, err := strconv.ParseUint(folderIDStr, 10, 32)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, "Identificador de pasta inválido")
			return
		}
		in.FolderID = uint(folderID)
	}

	// Payload replacement is optional on edit.
	if file, header, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		in.Payload = file
		in.Header = header
	}

	stored, err := getServices().File.EditFile(c.Request.Context(), principalFrom(c), fileID, in)
	if respondServiceError(c, err) {
		return
	}

	utils.SuccessWithMessage(c, "Ficheiro atualizado", stored)
}

func DeleteFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if respondServiceError(c, getServices().File.DeleteFile(c.Request.Context(), principalFrom(c), fileID)) {
		return
	}

	utils.SuccessWithMessage(c, "Ficheiro removido", nil)
}

func DownloadFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	out, err := getServices().File.GetDownloadInfo(c.Request.Context(), principalFrom(c), fileID)
	if respondServiceError(c, err) {
		return
	}
	defer out.Content.Close()

	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, out.DownloadName),
	}
	c.DataFromReader(http.StatusOK, out.Size, out.ContentType, out.Content, extraHeaders)
}

// PreviewFile streams the payload inline instead of as an attachment.
func PreviewFile(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	out, err := getServices().File.GetDownloadInfo(c.Request.Context(), principalFrom(c), fileID)
	if respondServiceError(c, err) {
		return
	}
	defer out.Content.Close()

	c.DataFromReader(http.StatusOK, out.Size, out.ContentType, out.Content, nil)
}

func GetThumbnail(c *gin.Context) {
	fileID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	out, err := getServices().File.GetThumbnailInfo(c.Request.Context(), principalFrom(c), fileID)
	if respondServiceError(c, err) {
		return
	}
	defer out.Content.Close()

	c.Header("Cache-Control", "public, max-age=86400")
	c.DataFromReader(http.StatusOK, out.Size, out.ContentType, out.Content, nil)
}
