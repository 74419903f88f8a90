package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"academy_backend/internal/logger"
	"academy_backend/internal/services"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// UserHandler - управление пользователями из админки
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

// ListUsers godoc
// @Summary Все пользователи
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.UserResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// GetUser godoc
// @Summary Пользователь по ID
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateRole godoc
// @Summary Сменить роль
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body dto.UpdateRoleRequest true "Роль: user или admin"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} apperrors.ErrorResponse
// @Router /admin/users/{id}/role [put]
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req dto.UpdateRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	userID := c.Param("id")
	if err := h.userService.UpdateRole(c.Request.Context(), h.GetDB(c), userID, req.Role); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "User role changed", "target_user_id", userID, "role", req.Role)
	c.JSON(http.StatusOK, dto.OK())
}

// SetSubscriptions godoc
// @Summary Заменить подписки пользователя
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body dto.SetSubscriptionsRequest true "ID программ"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/users/{id}/subscriptions [put]
func (h *UserHandler) SetSubscriptions(c *gin.Context) {
	var req dto.SetSubscriptionsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.SetSubscriptions(c.Request.Context(), h.GetDB(c), c.Param("id"), req.Subscriptions); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// GetCourses godoc
// @Summary Курсы, выданные пользователю напрямую
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Success 200 {object} dto.UserCoursesResponse
// @Router /admin/users/{id}/courses [get]
func (h *UserHandler) GetCourses(c *gin.Context) {
	courses, err := h.userService.GetUserCourses(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// SetCourses godoc
// @Summary Заменить набор курсов
// @Description Тело: {"courses": [...]} или просто массив ID
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param request body dto.SetCoursesRequest true "ID курсов"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/users/{id}/courses [put]
func (h *UserHandler) SetCourses(c *gin.Context) {
	req, ok := h.bindCourseIDs(c)
	if !ok {
		return
	}

	if err := h.userService.SetCourses(c.Request.Context(), h.GetDB(c), c.Param("id"), req.Courses); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// AddCourse godoc
// @Summary Выдать доступ к курсу
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param course_id path string true "ID курса"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/users/{id}/courses/{course_id} [post]
func (h *UserHandler) AddCourse(c *gin.Context) {
	courseID, ok := h.courseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.AddCourse(c.Request.Context(), h.GetDB(c), c.Param("id"), courseID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// RemoveCourse godoc
// @Summary Забрать доступ к курсу
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID пользователя"
// @Param course_id path string true "ID курса"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/users/{id}/courses/{course_id} [delete]
func (h *UserHandler) RemoveCourse(c *gin.Context) {
	courseID, ok := h.courseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.RemoveCourse(c.Request.Context(), h.GetDB(c), c.Param("id"), courseID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// courseIDParam - ID курса из пути, для /courses/add и /courses/remove из query
func (h *UserHandler) courseIDParam(c *gin.Context) (string, bool) {
	courseID := c.Param("course_id")
	if courseID == "" {
		courseID = c.Query("course_id")
	}
	if courseID == "" {
		apperrors.HandleError(c, apperrors.ValidationError(map[string]string{"course_id": "This field is required"}))
		return "", false
	}
	return courseID, true
}

func (h *UserHandler) bindCourseIDs(c *gin.Context) (*dto.SetCoursesRequest, bool) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return nil, false
	}

	var req dto.SetCoursesRequest
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &req.Courses)
	} else {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return nil, false
	}
	if !h.validate(c, &req) {
		return nil, false
	}
	return &req, true
}
