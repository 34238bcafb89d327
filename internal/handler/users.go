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

func (h *Handler) usersSelf(c *gin.Context) {
	user := h.getUser(c)

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UserFound, dto.GetUserDtoFromUser(*user)))
}

func (h *Handler) usersGetByID(c *gin.Context) {
	userID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, service.ErrUserNotFound)
		return
	}

	user, err := h.services.User.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UserFound, user))
}

func (h *Handler) usersList(c *gin.Context) {
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

	users, err := h.services.User.List(c.Request.Context(), limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UserList, users))
}

func (h *Handler) usersUpdate(c *gin.Context) {
	user := h.getUser(c)

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		respondValidationError(c, err.Error())
		return
	}

	updated, err := h.services.User.Update(c.Request.Context(), *user, updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UpdateUserSuccess, updated))
}

func (h *Handler) usersDelete(c *gin.Context) {
	user := h.getUser(c)

	deleted, err := h.services.User.Delete(c.Request.Context(), *user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UserDeleted, deleted))
}

func (h *Handler) usersFollow(c *gin.Context) {
	user := h.getUser(c)

	followedID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, service.ErrUserNotFound)
		return
	}

	edge, err := h.services.Follow.Follow(c.Request.Context(), user.ID, followedID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.FollowingTheUser, edge))
}

func (h *Handler) usersUnfollow(c *gin.Context) {
	user := h.getUser(c)

	followedID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondError(c, service.ErrUserNotFound)
		return
	}

	edge, err := h.services.Follow.Unfollow(c.Request.Context(), user.ID, followedID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UnfollowingTheUser, edge))
}

func (h *Handler) usersFollows(c *gin.Context) {
	user := h.getUser(c)

	follows, err := h.services.Follow.Follows(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if follows == nil {
		follows = []*model.UserSummary{}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UserFollows, follows))
}

func (h *Handler) usersFollowedBy(c *gin.Context) {
	user := h.getUser(c)

	followers, err := h.services.Follow.FollowedBy(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	if followers == nil {
		followers = []*model.UserSummary{}
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(apicodes.UserFollowedBy, followers))
}
