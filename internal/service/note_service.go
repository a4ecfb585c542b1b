package service

import (
	"context"
	"errors"
	"time"

	"github.com/haierkeys/shared-notes-service/internal/domain"
	"github.com/haierkeys/shared-notes-service/internal/dto"
	"github.com/haierkeys/shared-notes-service/pkg/code"

	"go.uber.org/zap"
)

// DefaultTitleLayout formats the fallback title for untitled notes.
// DefaultTitleLayout 无标题笔记的默认标题日期格式
const DefaultTitleLayout = "02-01-2006"

// NoteService 定义笔记业务服务接口
// Every read/update/delete/share verifies the acting user holds a grant
// row before the note store is touched.
type NoteService interface {
	// List 列出用户可访问的全部笔记
	List(ctx context.Context, uid int64) ([]*dto.NoteDTO, error)

	// Get 获取单个笔记
	Get(ctx context.Context, uid, noteID int64) (*dto.NoteDTO, error)

	// Create 创建笔记并授予创建者访问权
	Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error)

	// Update 更新笔记内容
	Update(ctx context.Context, uid int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error)

	// Delete 删除笔记并级联授权行
	Delete(ctx context.Context, uid, noteID int64) error

	// Share 将笔记分享给另一个用户（幂等）
	Share(ctx context.Context, uid int64, params *dto.NoteShareRequest) error
}

type noteService struct {
	noteRepo  domain.NoteRepository
	grantRepo domain.GrantRepository
	userRepo  domain.UserRepository
	logger    *zap.Logger
}

// NewNoteService 创建 NoteService 实例
func NewNoteService(noteRepo domain.NoteRepository, grantRepo domain.GrantRepository, userRepo domain.UserRepository, logger *zap.Logger) NoteService {
	return &noteService{
		noteRepo:  noteRepo,
		grantRepo: grantRepo,
		userRepo:  userRepo,
		logger:    logger,
	}
}

func toNoteDTO(note *domain.Note) *dto.NoteDTO {
	return &dto.NoteDTO{
		ID:                  note.ID,
		Title:               note.Title,
		Body:                note.Body,
		CreatedByUserID:     note.CreatedByUID,
		LastUpdatedByUserID: note.LastUpdatedByUID,
	}
}

// requireAccess collapses "no grant row" into ResourceNotFound so callers
// cannot distinguish notes they cannot see from notes that do not exist.
// requireAccess 将无授权与不存在统一折叠为 ResourceNotFound
func (s *noteService) requireAccess(ctx context.Context, uid, noteID int64) error {
	ok, err := s.grantRepo.HasAccess(ctx, uid, noteID)
	if err != nil {
		return code.ErrorDatabase.WithDetails(err.Error())
	}
	if !ok {
		return code.ErrorResourceNotFound
	}
	return nil
}

// List 列出用户可访问的全部笔记
func (s *noteService) List(ctx context.Context, uid int64) ([]*dto.NoteDTO, error) {
	notes, err := s.noteRepo.ListByUID(ctx, uid)
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	out := make([]*dto.NoteDTO, 0, len(notes))
	for _, note := range notes {
		out = append(out, toNoteDTO(note))
	}
	return out, nil
}

// Get 获取单个笔记
func (s *noteService) Get(ctx context.Context, uid, noteID int64) (*dto.NoteDTO, error) {
	if err := s.requireAccess(ctx, uid, noteID); err != nil {
		return nil, err
	}
	note, err := s.noteRepo.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorResourceNotFound
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	return toNoteDTO(note), nil
}

// Create 创建笔记，笔记行与创建者授权行作为单个原子工作单元写入
func (s *noteService) Create(ctx context.Context, uid int64, params *dto.NoteCreateRequest) (*dto.NoteDTO, error) {
	title := params.Title
	if title == "" {
		title = time.Now().Format(DefaultTitleLayout)
	}

	note, err := s.noteRepo.CreateWithGrant(ctx, &domain.Note{
		Title:            title,
		Body:             params.Body,
		CreatedByUID:     uid,
		LastUpdatedByUID: uid,
	})
	if err != nil {
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	return toNoteDTO(note), nil
}

// Update 更新笔记内容并记录更新者
func (s *noteService) Update(ctx context.Context, uid int64, params *dto.NoteUpdateRequest) (*dto.NoteDTO, error) {
	if err := s.requireAccess(ctx, uid, params.ID); err != nil {
		return nil, err
	}
	note, err := s.noteRepo.Update(ctx, params.ID, params.Title, params.Body, uid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, code.ErrorResourceNotFound
		}
		return nil, code.ErrorDatabase.WithDetails(err.Error())
	}
	return toNoteDTO(note), nil
}

// Delete 删除笔记并级联删除授权行
func (s *noteService) Delete(ctx context.Context, uid, noteID int64) error {
	if err := s.requireAccess(ctx, uid, noteID); err != nil {
		return err
	}
	if err := s.noteRepo.DeleteCascade(ctx, noteID); err != nil {
		return code.ErrorDatabase.WithDetails(err.Error())
	}
	return nil
}

// Share grants the target user access to the note. Repeated shares of the
// same pair are a silent no-op.
// Share 分享笔记给目标用户，重复分享为静默成功
func (s *noteService) Share(ctx context.Context, uid int64, params *dto.NoteShareRequest) error {
	if params.UserID == uid {
		return code.ErrorValidation.WithMsg("user cannot share note with itself")
	}

	if err := s.requireAccess(ctx, uid, params.NoteID); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByUID(ctx, params.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return code.ErrorResourceNotFound
		}
		return code.ErrorDatabase.WithDetails(err.Error())
	}

	err := s.grantRepo.Create(ctx, params.UserID, params.NoteID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// already shared, idempotent grant
			return nil
		}
		return code.ErrorDatabase.WithDetails(err.Error())
	}

	s.logger.Info("note shared",
		zap.Int64("uid", uid),
		zap.Int64("targetUid", params.UserID),
		zap.Int64("noteId", params.NoteID))
	return nil
}
