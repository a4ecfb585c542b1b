package api_router

import (
	"net/http"
	"strconv"

	internalApp "github.com/haierkeys/shared-notes-service/internal/app"
	"github.com/haierkeys/shared-notes-service/internal/dto"
	"github.com/haierkeys/shared-notes-service/pkg/app"
	"github.com/haierkeys/shared-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Note 笔记 API 路由处理器
type Note struct {
	container *internalApp.App
}

// NewNoteHandler 创建 Note 路由处理器实例
func NewNoteHandler(container *internalApp.App) *Note {
	return &Note{container: container}
}

// parseNoteID validates the path parameter before any access check runs,
// so a malformed id is always a validation error, never a lookup.
// parseNoteID 在任何权限检查之前校验路径参数
func parseNoteID(c *gin.Context) (int64, error) {
	raw := c.Param("noteId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, code.ErrorValidation.WithMsg("resource id is invalid")
	}
	return id, nil
}

// List 列出当前用户可访问的全部笔记
func (h *Note) List(c *gin.Context) {
	response := app.NewResponse(c)

	notes, err := h.container.NoteService.List(c.Request.Context(), app.GetUID(c))
	if err != nil {
		h.container.Logger().Error("api_router.note.List svc List err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}
	response.ToResponse(http.StatusOK, notes)
}

// Get 获取单个笔记
func (h *Note) Get(c *gin.Context) {
	response := app.NewResponse(c)

	noteID, err := parseNoteID(c)
	if err != nil {
		response.ToErrorResponse(code.FromError(err))
		return
	}

	note, err := h.container.NoteService.Get(c.Request.Context(), app.GetUID(c), noteID)
	if err != nil {
		h.container.Logger().Error("api_router.note.Get svc Get err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}
	response.ToResponse(http.StatusOK, note)
}

// Create 创建笔记
func (h *Note) Create(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteCreateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		h.container.Logger().Error("api_router.note.Create.BindAndValid errs", zap.Error(errs))
		response.ToErrorResponse(code.ErrorValidation.WithMsg(errs.Error()).WithDetails(errs.Errors()...))
		return
	}

	note, err := h.container.NoteService.Create(c.Request.Context(), app.GetUID(c), params)
	if err != nil {
		h.container.Logger().Error("api_router.note.Create svc Create err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}
	response.ToResponse(http.StatusOK, note)
}

// Update 更新笔记内容
func (h *Note) Update(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteUpdateRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		h.container.Logger().Error("api_router.note.Update.BindAndValid errs", zap.Error(errs))
		response.ToErrorResponse(code.ErrorValidation.WithMsg(errs.Error()).WithDetails(errs.Errors()...))
		return
	}

	note, err := h.container.NoteService.Update(c.Request.Context(), app.GetUID(c), params)
	if err != nil {
		h.container.Logger().Error("api_router.note.Update svc Update err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}
	response.ToResponse(http.StatusOK, note)
}

// Delete 删除笔记及其全部授权行
func (h *Note) Delete(c *gin.Context) {
	response := app.NewResponse(c)

	noteID, err := parseNoteID(c)
	if err != nil {
		response.ToErrorResponse(code.FromError(err))
		return
	}

	if err := h.container.NoteService.Delete(c.Request.Context(), app.GetUID(c), noteID); err != nil {
		h.container.Logger().Error("api_router.note.Delete svc Delete err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}
	response.ToNoContent()
}

// Share 将笔记分享给另一个用户
func (h *Note) Share(c *gin.Context) {
	response := app.NewResponse(c)
	params := &dto.NoteShareRequest{}

	valid, errs := app.BindAndValid(c, params)
	if !valid {
		h.container.Logger().Error("api_router.note.Share.BindAndValid errs", zap.Error(errs))
		response.ToErrorResponse(code.ErrorValidation.WithMsg(errs.Error()).WithDetails(errs.Errors()...))
		return
	}

	if err := h.container.NoteService.Share(c.Request.Context(), app.GetUID(c), params); err != nil {
		h.container.Logger().Error("api_router.note.Share svc Share err", zap.Error(err))
		response.ToErrorResponse(code.FromError(err))
		return
	}
	// success is an empty 200
	c.Status(http.StatusOK)
}
