package core

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type Handlers interface {
	PostParse(gctx *gin.Context)
	PostEvents(gctx *gin.Context)
	PostVoiceEvents(gctx *gin.Context)
	GetEvents(gctx *gin.Context)
	ListEvents(gctx *gin.Context)
	DeleteEvents(gctx *gin.Context)
	GetCalendarFeed(gctx *gin.Context)
}

type handlers struct {
	repository Repository
	parser     *VoiceParser
}

func NewHandlers(repository Repository, parser *VoiceParser) Handlers {
	return &handlers{repository: repository, parser: parser}
}

type parseRequest struct {
	Text string `json:"text"`
}

// PostParse runs the voice parser over a transcript. A transcript that
// matches no pattern is not a server error; the caller is expected to prompt
// for clarification.
func (h *handlers) PostParse(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var request parseRequest

	err := gctx.ShouldBindJSON(&request)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to bind JSON")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("failed to bind JSON", err))

		return
	}

	if request.Text == "" {
		log.Ctx(ctx).Error().Msg("text is required")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("text is required"))

		return
	}

	parsed := h.parser.Parse(request.Text)
	if parsed == nil {
		log.Ctx(ctx).Info().Str("text", request.Text).Msg("no pattern matched")
		gctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, NewError("could not parse input"))

		return
	}

	gctx.JSON(http.StatusOK, parsed)
}

func (h *handlers) PostEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var event Event

	err := gctx.ShouldBindJSON(&event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to bind JSON")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("failed to bind JSON", err))

		return
	}

	err = ValidateEvent(event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("event validation failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("event validation failed", err))

		return
	}

	savedEvent, err := h.repository.SaveEvent(ctx, &event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("saving event failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("saving event failed", err))

		return
	}

	gctx.JSON(http.StatusCreated, savedEvent)
}

// PostVoiceEvents creates an event from the loosely-typed voice/form record.
// The converter never fails, so everything past binding degrades instead of
// erroring.
func (h *handlers) PostVoiceEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	var voiceData VoiceEventData

	err := gctx.ShouldBindJSON(&voiceData)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to bind JSON")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("failed to bind JSON", err))

		return
	}

	if voiceData.Title == "" {
		log.Ctx(ctx).Error().Msg("title is required")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("title is required"))

		return
	}

	formData := h.parser.ConvertVoiceData(voiceData)

	event, err := eventFromFormData(formData, voiceData.Provider)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("form data conversion failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("form data conversion failed", err))

		return
	}

	savedEvent, err := h.repository.SaveEvent(ctx, event)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("saving event failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("saving event failed", err))

		return
	}

	gctx.JSON(http.StatusCreated, savedEvent)
}

func eventFromFormData(formData EventFormData, provider string) (*Event, error) {
	startTime, err := time.Parse(time.RFC3339, formData.Start)
	if err != nil {
		return nil, err
	}

	endTime, err := time.Parse(time.RFC3339, formData.End)
	if err != nil {
		return nil, err
	}

	recurrence, err := EncodeRepeat(formData.Repeat, startTime)
	if err != nil {
		return nil, err
	}

	return &Event{
		Title:       formData.Title,
		Description: formData.Description,
		Location:    formData.Location,
		Provider:    provider,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAllDay:    formData.IsAllDay,
		Recurrence:  recurrence,
	}, nil
}

func (h *handlers) GetEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	id := gctx.Param("id")
	if len(id) == 0 {
		log.Ctx(ctx).Error().Msg("parameter 'id' is required")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("parameter 'id' is required"))

		return
	}

	event, err := h.repository.GetEventById(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			log.Ctx(ctx).Info().Str("id", id).Msg("event not found")
			gctx.AbortWithStatusJSON(http.StatusNotFound, NewError("event not found", err))

			return
		}

		log.Ctx(ctx).Error().Err(err).Msg("fetching event failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("fetching event failed", err))

		return
	}

	gctx.JSON(http.StatusOK, event)
}

func (h *handlers) ListEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	events, err := h.repository.ListEvents(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("listing events failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("listing events failed", err))

		return
	}

	if events == nil {
		events = []Event{}
	}

	gctx.JSON(http.StatusOK, events)
}

func (h *handlers) DeleteEvents(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	id := gctx.Param("id")
	if len(id) == 0 {
		log.Ctx(ctx).Error().Msg("parameter 'id' is required")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("parameter 'id' is required"))

		return
	}

	err := h.repository.DeleteEvent(ctx, id)
	if err != nil {
		if errors.Is(err, ErrEventNotFound) {
			log.Ctx(ctx).Info().Str("id", id).Msg("event not found")
			gctx.AbortWithStatusJSON(http.StatusNotFound, NewError("event not found", err))

			return
		}

		log.Ctx(ctx).Error().Err(err).Msg("deleting event failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("deleting event failed", err))

		return
	}

	gctx.Status(http.StatusNoContent)
}

func (h *handlers) GetCalendarFeed(gctx *gin.Context) {
	ctx := gctx.Request.Context()

	events, err := h.repository.ListEvents(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("listing events failed")
		gctx.AbortWithStatusJSON(http.StatusBadRequest, NewError("listing events failed", err))

		return
	}

	cal := BuildCalendar(events, time.Now())

	gctx.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(cal.Serialize()))
}
