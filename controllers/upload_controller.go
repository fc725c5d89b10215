package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/princinho/stonevitrine/storage"
	"github.com/princinho/stonevitrine/utils"
)

const uploadField = "image"

// UploadImage validates the multipart "image" field and relays it to the
// configured store. Nothing is written unless size and type checks pass.
func UploadImage(v *storage.ImageValidator, uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		// leave headroom for the multipart envelope, the file size itself is checked below
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, v.MaxSize()+1<<20)

		fh, err := c.FormFile(uploadField)
		if err != nil {
			var tooLarge *http.MaxBytesError
			switch {
			case errors.As(err, &tooLarge):
				utils.RespondError(c, utils.NewValidationError("file too large"))
			case errors.Is(err, http.ErrMissingFile):
				utils.RespondError(c, utils.NewValidationError("no file uploaded"))
			default:
				utils.RespondError(c, utils.NewValidationError("invalid multipart body"))
			}
			return
		}

		obj, err := v.Open(fh)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrFileTooLarge), errors.Is(err, storage.ErrUnsupportedType), errors.Is(err, storage.ErrNoFile):
				utils.RespondError(c, utils.NewValidationError("%s", err.Error()))
			default:
				utils.RespondError(c, err)
			}
			return
		}
		defer obj.Close()

		url, err := uploader.Upload(c.Request.Context(), obj)
		if err != nil {
			utils.RespondError(c, &utils.UpstreamError{Service: "upload", Err: err})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message":  "file uploaded",
			"imageUrl": url,
			"filename": obj.Name,
		})
	}
}
