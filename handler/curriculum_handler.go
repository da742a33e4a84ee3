package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Aashish23092/curriculum-ats/dto"
	"github.com/Aashish23092/curriculum-ats/logger"
	"github.com/Aashish23092/curriculum-ats/service"
)

const (
	uploadSuccessMessage = "Currículo processado e salvo com sucesso!"
	updateSuccessMessage = "Perfil atualizado com sucesso!"
)

var errorCodes = map[int]string{
	http.StatusBadRequest:            "INVALID_REQUEST",
	http.StatusUnauthorized:          "UNAUTHORIZED",
	http.StatusNotFound:              "NOT_FOUND",
	http.StatusRequestEntityTooLarge: "FILE_TOO_LARGE",
	http.StatusUnsupportedMediaType:  "UNSUPPORTED_FORMAT",
	http.StatusInternalServerError:   "PROCESSING_FAILED",
}

type CurriculumHandler struct {
	curriculumService *service.CurriculumService
	maxFileSize       int64
}

func NewCurriculumHandler(curriculumService *service.CurriculumService, maxFileSize int64) *CurriculumHandler {
	return &CurriculumHandler{
		curriculumService: curriculumService,
		maxFileSize:       maxFileSize,
	}
}

// RegisterRoutes mounts the curriculum endpoints on rg. Every route requires
// a user id.
func (h *CurriculumHandler) RegisterRoutes(rg *gin.RouterGroup) {
	curriculum := rg.Group("/curriculum", RequireUser())
	{
		curriculum.POST("/upload", h.Upload)
		curriculum.GET("/profile", h.GetProfile)
		curriculum.PUT("/profile", h.UpdateProfile)
		curriculum.GET("/files", h.GetFiles)
	}
}

// Upload handles the POST /curriculum/upload endpoint
func (h *CurriculumHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.sendError(c, http.StatusBadRequest, dto.ErrFileRequired.Error(), nil)
		return
	}

	request := &dto.CurriculumUploadRequest{
		UserID: currentUserID(c),
		File:   fileHeader,
	}
	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, statusFor(err), err.Error(), err)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to open uploaded file", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.sendError(c, http.StatusBadRequest, "Failed to read uploaded file", err)
		return
	}

	logger.Ctx(c.Request.Context()).Info().
		Str("user_id", request.UserID).
		Str("file_name", fileHeader.Filename).
		Int64("size", fileHeader.Size).
		Msg("received curriculum upload")

	profile, err := h.curriculumService.ProcessAndSaveCurriculum(c.Request.Context(), request.UserID, service.UploadedFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Data:        data,
	})
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to process curriculum", err)
		return
	}

	c.JSON(http.StatusOK, dto.UploadResponse{
		Message: uploadSuccessMessage,
		Profile: profile,
	})
}

// GetProfile handles the GET /curriculum/profile endpoint
func (h *CurriculumHandler) GetProfile(c *gin.Context) {
	record, err := h.curriculumService.GetProfile(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to load profile", err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// UpdateProfile handles the PUT /curriculum/profile endpoint
func (h *CurriculumHandler) UpdateProfile(c *gin.Context) {
	var request dto.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		h.sendError(c, http.StatusBadRequest, "Invalid request body", fmt.Errorf("%w: %w", service.ErrInvalidUpdate, err))
		return
	}

	record, err := h.curriculumService.UpdateProfile(c.Request.Context(), currentUserID(c), request)
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to update profile", err)
		return
	}

	c.JSON(http.StatusOK, dto.ProfileUpdateResponse{
		Message: updateSuccessMessage,
		Profile: record,
	})
}

// GetFiles handles the GET /curriculum/files endpoint. The body is null when
// the user has not uploaded anything.
func (h *CurriculumHandler) GetFiles(c *gin.Context) {
	meta, err := h.curriculumService.GetFilesMetadata(c.Request.Context(), currentUserID(c))
	if err != nil {
		h.sendError(c, statusFor(err), "Failed to load file metadata", err)
		return
	}
	c.JSON(http.StatusOK, meta)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, dto.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, dto.ErrUserIDRequired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrProfileNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidUpdate),
		errors.Is(err, service.ErrEmptyDocument),
		errors.Is(err, dto.ErrFileRequired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// sendError sends a structured error response
func (h *CurriculumHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		event := logger.Ctx(c.Request.Context()).Warn()
		if statusCode >= http.StatusInternalServerError {
			event = logger.Ctx(c.Request.Context()).Error()
		}
		event.Err(err).Int("status", statusCode).Msg(message)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   errorCodes[statusCode],
		Message: errorMsg,
		Code:    statusCode,
	})
}
