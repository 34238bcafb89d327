package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sergio11/instangular-rest-api/internal/apicodes"
	"github.com/sergio11/instangular-rest-api/internal/dto"
	"github.com/sergio11/instangular-rest-api/internal/model"
	"github.com/sergio11/instangular-rest-api/internal/service"
)

func (h *Handler) mediaCreate(c *gin.Context) {
	user := h.getUser(c)

	var input dto.CreateMediaRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	media, err := h.services.Media.Create(c.Request.Context(), user.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.CreateMediaSuccess, media))
}

func (h *Handler) mediaGet(c *gin.Context) {
	mediaID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, service.ErrMediaNotFound)
		return
	}

	media, err := h.services.Media.Get(c.Request.Context(), mediaID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.MediaFound, media))
}

func (h *Handler) mediaListOwn(c *gin.Context) {
	user := h.getUser(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil {
		respondValidationError(c, "\"limit\" must be a number")
		return
	}
	if limit < 0 {
		respondValidationError(c, "\"limit\" must be larger than or equal to 0")
		return
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil {
		respondValidationError(c, "\"skip\" must be a number")
		return
	}
	if skip < 0 {
		respondValidationError(c, "\"skip\" must be larger than or equal to 0")
		return
	}

	medias, err := h.services.Media.ListOwn(c.Request.Context(), user.ID, limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}

	if medias == nil {
		medias = []*model.Media{}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.MediaList, medias))
}

func (h *Handler) mediaSearch(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		respondValidationError(c, "\"lat\" must be a number")
		return
	}

	lon, err := strconv.ParseFloat(c.Query("lon"), 64)
	if err != nil {
		respondValidationError(c, "\"lon\" must be a number")
		return
	}

	medias, err := h.services.Media.Search(c.Request.Context(), lat, lon)
	if err != nil {
		respondError(c, err)
		return
	}

	if medias == nil {
		medias = []*model.Media{}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.MediaSearchResults, medias))
}

func (h *Handler) mediaRemove(c *gin.Context) {
	user := h.getUser(c)

	mediaID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, service.ErrMediaNotFound)
		return
	}

	media, err := h.services.Media.Remove(c.Request.Context(), user.ID, mediaID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.MediaDeleted, media))
}

func (h *Handler) mediaComments(c *gin.Context) {
	mediaID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, service.ErrMediaNotFound)
		return
	}

	comments, err := h.services.Media.Comments(c.Request.Context(), mediaID)
	if err != nil {
		respondError(c, err)
		return
	}

	if comments == nil {
		comments = []*model.Comment{}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.MediaFound, comments))
}

func (h *Handler) mediaAddComment(c *gin.Context) {
	user := h.getUser(c)

	mediaID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, service.ErrMediaNotFound)
		return
	}

	var input dto.AddCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	comment, err := h.services.Media.AddComment(c.Request.Context(), user.ID, mediaID, input.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.CreateMediaSuccess, comment))
}
