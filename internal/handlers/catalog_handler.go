package handlers

import (
	"net/http"

	"academy_backend/internal/services"
	"academy_backend/internal/services/dto"
	"academy_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// CatalogHandler - программы, курсы, уроки, модули и видео
type CatalogHandler struct {
	*BaseHandler
	programService services.ProgramService
	courseService  services.CourseService
	moduleService  services.ModuleService
}

func NewCatalogHandler(
	base *BaseHandler,
	programService services.ProgramService,
	courseService services.CourseService,
	moduleService services.ModuleService,
) *CatalogHandler {
	return &CatalogHandler{
		BaseHandler:    base,
		programService: programService,
		courseService:  courseService,
		moduleService:  moduleService,
	}
}

// ---------------- Programs ----------------

// ListPrograms godoc
// @Summary Активные программы
// @Tags programs
// @Produce json
// @Success 200 {array} models.Program
// @Router /programs [get]
func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programService.ListActive(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// GetProgram godoc
// @Summary Программа по ID
// @Tags programs
// @Produce json
// @Param id path string true "ID программы"
// @Success 200 {object} models.Program
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /programs/{id} [get]
func (h *CatalogHandler) GetProgram(c *gin.Context) {
	program, err := h.programService.Get(c.Request.Context(), h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// AdminListPrograms godoc
// @Summary Все программы (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Program
// @Router /admin/programs [get]
func (h *CatalogHandler) AdminListPrograms(c *gin.Context) {
	programs, err := h.programService.ListAll(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

// CreateProgram godoc
// @Summary Создать программу
// @Description create_stripe_price=true создает продукт и ежемесячную цену в Stripe
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProgramRequest true "Программа"
// @Success 200 {object} models.Program
// @Failure 400 {object} apperrors.ErrorResponse
// @Failure 502 {object} apperrors.ErrorResponse
// @Router /admin/programs [post]
func (h *CatalogHandler) CreateProgram(c *gin.Context) {
	var req dto.ProgramRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	program, err := h.programService.Create(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, program)
}

// UpdateProgram godoc
// @Summary Обновить программу
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID программы"
// @Param request body dto.ProgramRequest true "Программа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/programs/{id} [put]
func (h *CatalogHandler) UpdateProgram(c *gin.Context) {
	var req dto.ProgramRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.programService.Update(c.Request.Context(), h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// DeleteProgram godoc
// @Summary Удалить программу
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID программы"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /admin/programs/{id} [delete]
func (h *CatalogHandler) DeleteProgram(c *gin.Context) {
	if err := h.programService.Delete(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// ---------------- Courses ----------------

// ListCourses godoc
// @Summary Активные курсы с количеством уроков
// @Tags courses
// @Produce json
// @Param program_id query string false "Фильтр по программе"
// @Success 200 {array} dto.CourseResponse
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses(c.Request.Context(), h.GetDB(c), c.Query("program_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// GetCourse godoc
// @Summary Курс с уроками
// @Description Нужна подписка на программу курса или прямой доступ к курсу
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID курса"
// @Success 200 {object} dto.CourseDetailResponse
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /courses/{id} [get]
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	course, err := h.courseService.GetCourseForUser(c.Request.Context(), h.GetDB(c), h.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// AdminListCourses godoc
// @Summary Все курсы (админ)
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CourseResponse
// @Router /admin/courses [get]
func (h *CatalogHandler) AdminListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCoursesAdmin(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// CreateCourse godoc
// @Summary Создать курс
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Курс"
// @Success 200 {object} models.Course
// @Router /admin/courses [post]
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	course, err := h.courseService.CreateCourse(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// UpdateCourse godoc
// @Summary Обновить курс
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID курса"
// @Param request body dto.CourseRequest true "Курс"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/courses/{id} [put]
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	var req dto.CourseRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.courseService.UpdateCourse(c.Request.Context(), h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// DeleteCourse godoc
// @Summary Удалить курс вместе с уроками
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID курса"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/courses/{id} [delete]
func (h *CatalogHandler) DeleteCourse(c *gin.Context) {
	if err := h.courseService.DeleteCourse(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// ---------------- Lessons ----------------

// ListLessons godoc
// @Summary Уроки курса
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param course_id path string true "ID курса"
// @Success 200 {array} models.Lesson
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /lessons/{course_id} [get]
func (h *CatalogHandler) ListLessons(c *gin.Context) {
	lessons, err := h.courseService.ListLessonsForUser(c.Request.Context(), h.GetDB(c), h.CurrentUser(c), c.Param("course_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lessons)
}

// GetLesson godoc
// @Summary Урок
// @Description Бесплатные уроки доступны любому авторизованному пользователю
// @Tags lessons
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID урока"
// @Success 200 {object} models.Lesson
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /lesson/{id} [get]
func (h *CatalogHandler) GetLesson(c *gin.Context) {
	lesson, err := h.courseService.GetLessonForUser(c.Request.Context(), h.GetDB(c), h.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// CreateLesson godoc
// @Summary Создать урок
// @Description order=0 ставит урок в конец курса
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.LessonRequest true "Урок"
// @Success 200 {object} models.Lesson
// @Router /admin/lessons [post]
func (h *CatalogHandler) CreateLesson(c *gin.Context) {
	var req dto.LessonRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lesson, err := h.courseService.CreateLesson(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// UpdateLesson godoc
// @Summary Обновить урок
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID урока"
// @Param request body dto.LessonRequest true "Урок"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/lessons/{id} [put]
func (h *CatalogHandler) UpdateLesson(c *gin.Context) {
	var req dto.LessonRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.courseService.UpdateLesson(c.Request.Context(), h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// ReorderLessons godoc
// @Summary Изменить порядок уроков
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body []dto.LessonOrderItem true "Новые позиции"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/lessons/reorder [put]
func (h *CatalogHandler) ReorderLessons(c *gin.Context) {
	var items []dto.LessonOrderItem
	if err := c.ShouldBindJSON(&items); err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid request body: "+err.Error()))
		return
	}
	for i := range items {
		if !h.validate(c, &items[i]) {
			return
		}
	}

	if err := h.courseService.ReorderLessons(c.Request.Context(), h.GetDB(c), items); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// DeleteLesson godoc
// @Summary Удалить урок
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID урока"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/lessons/{id} [delete]
func (h *CatalogHandler) DeleteLesson(c *gin.Context) {
	if err := h.courseService.DeleteLesson(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// ---------------- Modules & videos ----------------

// ListModules godoc
// @Summary Модули курса
// @Tags modules
// @Produce json
// @Param course_id query string false "Фильтр по курсу"
// @Success 200 {array} models.Module
// @Router /modules [get]
func (h *CatalogHandler) ListModules(c *gin.Context) {
	modules, err := h.moduleService.ListModules(c.Request.Context(), h.GetDB(c), c.Query("course_id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, modules)
}

// ListModuleVideos godoc
// @Summary Видео модуля
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID модуля"
// @Success 200 {array} models.Video
// @Failure 403 {object} apperrors.ErrorResponse
// @Router /modules/{id}/videos [get]
func (h *CatalogHandler) ListModuleVideos(c *gin.Context) {
	videos, err := h.moduleService.ListVideosForUser(c.Request.Context(), h.GetDB(c), h.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, videos)
}

// GetVideo godoc
// @Summary Видео
// @Tags modules
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID видео"
// @Success 200 {object} models.Video
// @Failure 403 {object} apperrors.ErrorResponse
// @Failure 404 {object} apperrors.ErrorResponse
// @Router /videos/{id} [get]
func (h *CatalogHandler) GetVideo(c *gin.Context) {
	video, err := h.moduleService.GetVideoForUser(c.Request.Context(), h.GetDB(c), h.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// CreateModule godoc
// @Summary Создать модуль
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ModuleRequest true "Модуль"
// @Success 200 {object} models.Module
// @Router /admin/modules [post]
func (h *CatalogHandler) CreateModule(c *gin.Context) {
	var req dto.ModuleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	module, err := h.moduleService.CreateModule(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, module)
}

// UpdateModule godoc
// @Summary Обновить модуль
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID модуля"
// @Param request body dto.ModuleRequest true "Модуль"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/modules/{id} [put]
func (h *CatalogHandler) UpdateModule(c *gin.Context) {
	var req dto.ModuleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.moduleService.UpdateModule(c.Request.Context(), h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// DeleteModule godoc
// @Summary Удалить модуль вместе с видео
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID модуля"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/modules/{id} [delete]
func (h *CatalogHandler) DeleteModule(c *gin.Context) {
	if err := h.moduleService.DeleteModule(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// CreateVideo godoc
// @Summary Добавить видео (Mux)
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.VideoRequest true "Видео"
// @Success 200 {object} models.Video
// @Router /admin/videos [post]
func (h *CatalogHandler) CreateVideo(c *gin.Context) {
	var req dto.VideoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	video, err := h.moduleService.CreateVideo(c.Request.Context(), h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

// UpdateVideo godoc
// @Summary Обновить видео
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID видео"
// @Param request body dto.VideoRequest true "Видео"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/videos/{id} [put]
func (h *CatalogHandler) UpdateVideo(c *gin.Context) {
	var req dto.VideoRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.moduleService.UpdateVideo(c.Request.Context(), h.GetDB(c), c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}

// DeleteVideo godoc
// @Summary Удалить видео
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID видео"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/videos/{id} [delete]
func (h *CatalogHandler) DeleteVideo(c *gin.Context) {
	if err := h.moduleService.DeleteVideo(c.Request.Context(), h.GetDB(c), c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OK())
}
