package apihandlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/case-framework/discovery-builder/pkg/apihelpers"
	mw "github.com/case-framework/discovery-builder/pkg/apihelpers/middlewares"
	"github.com/case-framework/discovery-builder/pkg/survey/builder"
	"github.com/case-framework/discovery-builder/pkg/survey/trash"
	"github.com/case-framework/discovery-builder/pkg/survey/types"
	"github.com/case-framework/discovery-builder/pkg/utils"
	"github.com/gin-gonic/gin"
)

func (h *HttpEndpoints) AddTrashAPI(rg *gin.RouterGroup) {
	trashGroup := rg.Group("/trash")
	trashGroup.Use(mw.HasValidAPIKey(h.apiKeys))
	{
		trashGroup.GET("/", h.getTrashItems)
		trashGroup.DELETE("/", h.emptyTrash)
		trashGroup.DELETE("/:itemID", h.deleteTrashItem)
	}
}

func (h *HttpEndpoints) getTrashItems(c *gin.Context) {
	query, err := apihelpers.ParsePaginatedQueryFromCtx(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items := h.trashBin.Items()
	c.JSON(http.StatusOK, gin.H{
		"items": apihelpers.Paginate(items, *query),
		"total": len(items),
		"page":  query.Page,
		"limit": query.Limit,
	})
}

func (h *HttpEndpoints) emptyTrash(c *gin.Context) {
	if err := h.trashBin.EmptyTrash(); err != nil {
		slog.Error("failed to empty trash", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to empty trash"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "trash emptied"})
}

func (h *HttpEndpoints) deleteTrashItem(c *gin.Context) {
	itemID := c.Param("itemID")
	if !utils.IsURLSafe(itemID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}
	if err := h.trashBin.PermanentDelete(itemID); err != nil {
		writeTrashError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item deleted"})
}

func writeTrashError(c *gin.Context, err error) {
	if errors.Is(err, trash.ErrTrashItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	slog.Error("trash operation failed", slog.String("error", err.Error()))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "trash operation failed"})
}

var (
	errBlockNotFound    = errors.New("block not found")
	errQuestionNotFound = errors.New("question not found")
	errNoRestoreTarget  = errors.New("no block to restore the question into")
	errAlreadyInSurvey  = errors.New("item is already part of the survey")
)

func writeSessionTrashError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errBlockNotFound), errors.Is(err, errQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, errNoRestoreTarget), errors.Is(err, errAlreadyInSurvey):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		writeTrashError(c, err)
	}
}

// moveToTrash dispatches the delete and stores the removed item in the trash bin. The item is
// stored while the builder is locked, so it always matches what the delete removes.
func (h *HttpEndpoints) moveToTrash(c *gin.Context, s *builderSession, action builder.Action, store func(present *types.Survey) (types.TrashItem, error)) {
	var item types.TrashItem
	_, changed, err := s.builder.DispatchIf(action, func(present *types.Survey) error {
		var err error
		item, err = store(present)
		return err
	})
	if err != nil {
		writeSessionTrashError(c, err)
		return
	}
	if !changed {
		if err := h.trashBin.PermanentDelete(item.ID); err != nil {
			slog.Error("failed to drop trash item of a failed delete", slog.String("itemID", item.ID), slog.String("error", err.Error()))
		}
		c.JSON(http.StatusConflict, gin.H{"error": "survey changed while deleting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"trashItem": item, "session": newSessionResponse(s)})
}

// trashBlock moves a block of the session's document into the trash bin.
func (h *HttpEndpoints) trashBlock(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	blockID := c.Param("blockID")

	h.moveToTrash(c, s, builder.DeleteBlock{BlockID: blockID}, func(present *types.Survey) (types.TrashItem, error) {
		if present == nil {
			return types.TrashItem{}, errBlockNotFound
		}
		index, found := present.FindBlock(blockID)
		if !found {
			return types.TrashItem{}, errBlockNotFound
		}
		return h.trashBin.AddBlock(present.Blocks[index])
	})
}

// trashQuestion moves a question of the session's document into the trash bin.
func (h *HttpEndpoints) trashQuestion(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	blockID := c.Param("blockID")
	questionID := c.Param("questionID")

	h.moveToTrash(c, s, builder.DeleteQuestion{BlockID: blockID, QuestionID: questionID}, func(present *types.Survey) (types.TrashItem, error) {
		if present == nil {
			return types.TrashItem{}, errBlockNotFound
		}
		blockIndex, found := present.FindBlock(blockID)
		if !found {
			return types.TrashItem{}, errBlockNotFound
		}
		block := present.Blocks[blockIndex]
		questionIndex, found := block.FindQuestion(questionID)
		if !found {
			return types.TrashItem{}, errQuestionNotFound
		}
		return h.trashBin.AddQuestion(block.Questions[questionIndex], blockID)
	})
}

// restoreFromTrash puts a trashed block at the end of the document, or a trashed question at the
// end of its original block. Questions whose block no longer exists go to the first block.
func (h *HttpEndpoints) restoreFromTrash(c *gin.Context) {
	s, ok := h.sessionFromParams(c)
	if !ok {
		return
	}
	itemID := c.Param("itemID")
	if !utils.IsURLSafe(itemID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
		return
	}

	item, found := h.trashBin.Get(itemID)
	if !found {
		writeTrashError(c, trash.ErrTrashItemNotFound)
		return
	}

	build := func(present *types.Survey) (builder.Action, error) {
		if present == nil {
			return nil, errNoRestoreTarget
		}
		var action builder.Action
		switch item.Type {
		case types.TRASH_ITEM_TYPE_BLOCK:
			if _, exists := present.FindBlock(item.Block.ID); exists {
				return nil, errAlreadyInSurvey
			}
			action = builder.AddBlock{Block: *item.Block}
		case types.TRASH_ITEM_TYPE_QUESTION:
			for _, q := range present.AllQuestions() {
				if q.ID == item.Question.ID {
					return nil, errAlreadyInSurvey
				}
			}
			target := restoreTargetBlock(present, item.OriginalBlockID)
			if target == "" {
				return nil, errNoRestoreTarget
			}
			action = builder.AddQuestion{BlockID: target, Question: *item.Question}
		default:
			return nil, errors.New("unknown trash item type: " + string(item.Type))
		}
		// leaves the bin only once the restore is certain
		if _, err := h.trashBin.RestoreFromTrash(itemID); err != nil {
			return nil, err
		}
		return action, nil
	}

	if _, _, err := s.builder.DispatchFunc(build); err != nil {
		writeSessionTrashError(c, err)
		return
	}
	c.JSON(http.StatusOK, newSessionResponse(s))
}

func restoreTargetBlock(survey *types.Survey, originalBlockID string) string {
	if survey == nil || len(survey.Blocks) == 0 {
		return ""
	}
	if _, ok := survey.FindBlock(originalBlockID); ok {
		return originalBlockID
	}
	return survey.Blocks[0].ID
}
