package controllers

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ishala/illegal-waste-reporter-BE/services"
	"github.com/ishala/illegal-waste-reporter-BE/utils"
)

// multipartMemory caps the part of a form held in memory; larger files spill to disk.
const multipartMemory = 32 << 20

type MediaController struct {
	Media *services.MediaService
}

func NewMediaController(media *services.MediaService) *MediaController {
	return &MediaController{Media: media}
}

// uploadedFiles collects files sent as files or files[].
func uploadedFiles(form *multipart.Form) []services.MediaFile {
	if form == nil {
		return nil
	}
	var headers []*multipart.FileHeader
	headers = append(headers, form.File["files"]...)
	headers = append(headers, form.File["files[]"]...)

	files := make([]services.MediaFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		files = append(files, services.MediaFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
		})
	}
	return files
}

func (mc *MediaController) Upload(c *gin.Context) {
	reportID, ok := parseUUIDParam(c, "report_id")
	if !ok {
		return
	}
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		respondBindingError(c, err)
		return
	}
	defer c.Request.MultipartForm.RemoveAll()

	files := uploadedFiles(c.Request.MultipartForm)
	if len(files) == 0 {
		RespondError(c, &HTTPError{
			Status:  http.StatusUnprocessableEntity,
			Code:    CodeMissingRequiredField,
			Message: "missing required field: files",
			Details: gin.H{"fields": []string{"files"}},
		})
		return
	}

	media, err := mc.Media.Upload(c.Request.Context(), utils.GetUser(c), reportID, files)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Media uploaded", media)
}

func (mc *MediaController) List(c *gin.Context) {
	reportID, ok := parseUUIDParam(c, "report_id")
	if !ok {
		return
	}
	media, err := mc.Media.List(c.Request.Context(), reportID)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Media retrieved", media)
}

func (mc *MediaController) URL(c *gin.Context) {
	reportID, ok := parseUUIDParam(c, "report_id")
	if !ok {
		return
	}
	mediaID, ok := parseUUIDParam(c, "media_id")
	if !ok {
		return
	}
	var query MediaURLQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBindingError(c, err)
		return
	}

	expires := time.Duration(query.Expires) * time.Second
	url, err := mc.Media.URL(c.Request.Context(), reportID, mediaID, expires)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Media URL generated", gin.H{"url": url})
}

func (mc *MediaController) Delete(c *gin.Context) {
	reportID, ok := parseUUIDParam(c, "report_id")
	if !ok {
		return
	}
	mediaID, ok := parseUUIDParam(c, "media_id")
	if !ok {
		return
	}
	if err := mc.Media.Delete(c.Request.Context(), utils.GetUser(c), reportID, mediaID); err != nil {
		RespondError(c, err)
		return
	}
	respond(c, http.StatusOK, "Media deleted", nil)
}
