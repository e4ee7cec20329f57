package study

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/kanjisaya/kanji-srs/internal/catalog"
	"github.com/kanjisaya/kanji-srs/internal/domain"
	"github.com/kanjisaya/kanji-srs/internal/domain/srs"
	"github.com/kanjisaya/kanji-srs/internal/events"
	"github.com/kanjisaya/kanji-srs/internal/platform/logger"
	"github.com/kanjisaya/kanji-srs/internal/session"
)

// Verify interface compliance at compile time
var _ StudyService = (*studyServiceImpl)(nil)

// Option configures a StudyService.
type Option func(*studyServiceImpl)

// WithClock replaces time.Now as the source of the current instant.
func WithClock(clock func() time.Time) Option {
	return func(s *studyServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithBuiltinDecks replaces the embedded catalog.
func WithBuiltinDecks(decks []domain.Deck) Option {
	return func(s *studyServiceImpl) {
		s.builtin = decks
	}
}

type studyServiceImpl struct {
	progressRepo ProgressRepository
	deckRepo     DeckRepository
	srsService   srs.Service
	emitter      events.EventEmitter
	clock        func() time.Time
	logger       *slog.Logger

	// mu guards everything below
	mu       sync.Mutex
	builtin  []domain.Deck
	custom   []domain.Deck
	progress domain.Progress
	session  *session.State
}

// NewStudyService creates a new StudyService implementation. emitter may be
// nil, in which case no events are published.
func NewStudyService(
	progressRepo ProgressRepository,
	deckRepo DeckRepository,
	srsService srs.Service,
	emitter events.EventEmitter,
	logger *slog.Logger,
	opts ...Option,
) StudyService {
	if progressRepo == nil {
		panic("progressRepo cannot be nil")
	}
	if deckRepo == nil {
		panic("deckRepo cannot be nil")
	}
	if srsService == nil {
		panic("srsService cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &studyServiceImpl{
		progressRepo: progressRepo,
		deckRepo:     deckRepo,
		srsService:   srsService,
		emitter:      emitter,
		clock:        time.Now,
		logger:       logger.With(slog.String("component", "study_service")),
		builtin:      catalog.BuiltinDecks(),
		progress:     domain.NewProgress(nil),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements StudyService.Load.
func (s *studyServiceImpl) Load(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	progress, err := s.progressRepo.Load(ctx)
	if err != nil {
		log.Error("failed to load progress", slog.String("error", err.Error()))
		return NewLoadError("failed to load progress", err)
	}

	stored, err := s.deckRepo.Load(ctx)
	if err != nil {
		log.Error("failed to load custom decks", slog.String("error", err.Error()))
		return NewLoadError("failed to load custom decks", err)
	}

	custom := make([]domain.Deck, 0, len(stored))
	for _, deck := range stored {
		if s.isBuiltin(deck.ID) {
			log.Warn("ignoring stored deck that shadows a built-in deck",
				slog.String("deck_id", deck.ID.String()))
			continue
		}
		custom = append(custom, deck)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = progress
	s.custom = custom
	if s.session != nil && s.findDeck(s.session.DeckID) == nil {
		s.session = nil
	}

	log.Info("study state loaded",
		slog.Int("progress_entries", progress.Len()),
		slog.Int("custom_decks", len(custom)))
	return nil
}

// ListDecks implements StudyService.ListDecks.
func (s *studyServiceImpl) ListDecks(ctx context.Context) ([]DeckOverview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	out := make([]DeckOverview, 0, len(s.builtin)+len(s.custom))
	for i := range s.builtin {
		out = append(out, DeckOverview{
			DeckSummary: s.srsService.Summarize(&s.builtin[i], s.progress, now),
			Builtin:     true,
		})
	}
	for i := range s.custom {
		out = append(out, DeckOverview{
			DeckSummary: s.srsService.Summarize(&s.custom[i], s.progress, now),
		})
	}
	return out, nil
}

// GetDeck implements StudyService.GetDeck.
func (s *studyServiceImpl) GetDeck(ctx context.Context, deckID domain.ID) (domain.Deck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck := s.findDeck(deckID)
	if deck == nil {
		return domain.Deck{}, ErrDeckNotFound
	}
	return deck.Clone(), nil
}

// DueCards implements StudyService.DueCards.
func (s *studyServiceImpl) DueCards(ctx context.Context, deckID domain.ID) ([]domain.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck := s.findDeck(deckID)
	if deck == nil {
		return nil, ErrDeckNotFound
	}
	return s.srsService.DueList(deck, s.progress, s.clock()), nil
}

// EnterDeck implements StudyService.EnterDeck.
func (s *studyServiceImpl) EnterDeck(ctx context.Context, deckID domain.ID) (View, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	deck := s.findDeck(deckID)
	if deck == nil {
		return View{}, ErrDeckNotFound
	}

	state := session.Enter(deckID)
	s.session = &state

	log.Debug("entered deck", slog.String("deck_id", deckID.String()))
	return s.render(deck, s.clock()), nil
}

// Current implements StudyService.Current.
func (s *studyServiceImpl) Current(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.activeDeck()
	if err != nil {
		return View{}, err
	}
	return s.render(deck, s.clock()), nil
}

// Flip implements StudyService.Flip.
func (s *studyServiceImpl) Flip(ctx context.Context) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.activeDeck()
	if err != nil {
		return View{}, err
	}

	now := s.clock()
	due := s.srsService.DueList(deck, s.progress, now)
	if len(due) == 0 {
		return View{}, ErrNoCurrentCard
	}

	state := s.session.Reconcile(len(due)).Flip()
	s.session = &state
	return s.render(deck, now), nil
}

// Next implements StudyService.Next.
func (s *studyServiceImpl) Next(ctx context.Context) (View, error) {
	return s.move(func(state session.State, length int) session.State {
		return state.Next(length)
	})
}

// Prev implements StudyService.Prev.
func (s *studyServiceImpl) Prev(ctx context.Context) (View, error) {
	return s.move(func(state session.State, length int) session.State {
		return state.Prev(length)
	})
}

func (s *studyServiceImpl) move(step func(session.State, int) session.State) (View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.activeDeck()
	if err != nil {
		return View{}, err
	}

	now := s.clock()
	due := s.srsService.DueList(deck, s.progress, now)
	state := step(s.session.Reconcile(len(due)), len(due))
	s.session = &state
	return s.render(deck, now), nil
}

// Rate implements StudyService.Rate.
func (s *studyServiceImpl) Rate(ctx context.Context, rating domain.Rating) (RateResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rating.Validate(); err != nil {
		log.Debug("rejected rating", slog.String("rating", string(rating)))
		return RateResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deck, err := s.activeDeck()
	if err != nil {
		return RateResult{}, err
	}

	now := s.clock()
	before := s.srsService.DueList(deck, s.progress, now)
	state := s.session.Reconcile(len(before))
	index, ok := state.Current(len(before))
	if !ok {
		return RateResult{}, ErrNoCurrentCard
	}
	card := before[index]

	progress, nextDue, err := s.srsService.Rate(s.progress, card.ID, rating, now)
	if err != nil {
		return RateResult{}, NewRateError("failed to schedule card", err)
	}

	if err := s.progressRepo.Save(ctx, progress); err != nil {
		log.Error("failed to persist progress",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return RateResult{}, NewRateError("failed to persist progress", err)
	}
	s.progress = progress

	after := s.srsService.DueList(deck, s.progress, now)
	state = state.AfterRating(rating, len(before), len(after))
	s.session = &state

	log.Debug("card rated",
		slog.String("deck_id", deck.ID.String()),
		slog.String("card_id", card.ID.String()),
		slog.String("rating", string(rating)),
		slog.Time("next_due", nextDue))

	s.emit(ctx, events.TypeCardRated, events.CardRated{
		DeckID:  deck.ID.String(),
		CardID:  card.ID.String(),
		Rating:  string(rating),
		NextDue: nextDue,
	})
	if len(after) == 0 {
		log.Info("deck completed", slog.String("deck_id", deck.ID.String()))
		s.emit(ctx, events.TypeDeckCompleted, events.DeckCompleted{DeckID: deck.ID.String()})
	}

	return RateResult{
		View:     s.render(deck, now),
		CardID:   card.ID,
		Rating:   rating,
		NextDue:  nextDue,
		Feedback: FeedbackMessage(rating),
	}, nil
}

// Leave implements StudyService.Leave.
func (s *studyServiceImpl) Leave(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = nil
	return nil
}

// ImportDeck implements StudyService.ImportDeck.
func (s *studyServiceImpl) ImportDeck(ctx context.Context, raw []byte) (ImportResult, error) {
	deck, err := catalog.ParseDeck(raw)
	if err != nil {
		return ImportResult{}, err
	}
	return s.AddDeck(ctx, deck)
}

// AddDeck implements StudyService.AddDeck.
func (s *studyServiceImpl) AddDeck(ctx context.Context, deck domain.Deck) (ImportResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := deck.Validate(); err != nil {
		return ImportResult{}, fmt.Errorf("%w: %w", catalog.ErrInvalidDeckFormat, err)
	}
	deck = deck.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isBuiltin(deck.ID) {
		return ImportResult{}, ErrBuiltinDeck
	}

	replaced := false
	updated := make([]domain.Deck, 0, len(s.custom)+1)
	for _, existing := range s.custom {
		if existing.ID == deck.ID {
			replaced = true
			continue
		}
		updated = append(updated, existing)
	}
	updated = append(updated, deck)

	if err := s.deckRepo.Save(ctx, updated); err != nil {
		log.Error("failed to persist custom decks",
			slog.String("error", err.Error()),
			slog.String("deck_id", deck.ID.String()))
		return ImportResult{}, NewAddDeckError("failed to persist custom decks", err)
	}
	s.custom = updated

	if s.session != nil && s.session.DeckID == deck.ID {
		state := session.Enter(deck.ID)
		s.session = &state
	}

	log.Info("deck imported",
		slog.String("deck_id", deck.ID.String()),
		slog.Int("cards", len(deck.Cards)),
		slog.Bool("replaced", replaced))

	s.emit(ctx, events.TypeDeckImported, events.DeckImported{
		DeckID:   deck.ID.String(),
		Title:    deck.Title,
		Cards:    len(deck.Cards),
		Replaced: replaced,
	})

	stored := &s.custom[len(s.custom)-1]
	return ImportResult{
		Deck:     DeckOverview{DeckSummary: s.srsService.Summarize(stored, s.progress, s.clock())},
		Replaced: replaced,
	}, nil
}

// findDeck looks a deck up by id. Callers must hold mu.
func (s *studyServiceImpl) findDeck(id domain.ID) *domain.Deck {
	for i := range s.builtin {
		if s.builtin[i].ID == id {
			return &s.builtin[i]
		}
	}
	for i := range s.custom {
		if s.custom[i].ID == id {
			return &s.custom[i]
		}
	}
	return nil
}

func (s *studyServiceImpl) isBuiltin(id domain.ID) bool {
	for i := range s.builtin {
		if s.builtin[i].ID == id {
			return true
		}
	}
	return false
}

// activeDeck returns the deck of the running session. Callers must hold mu.
func (s *studyServiceImpl) activeDeck() (*domain.Deck, error) {
	if s.session == nil {
		return nil, ErrNotStudying
	}
	deck := s.findDeck(s.session.DeckID)
	if deck == nil {
		s.session = nil
		return nil, ErrNotStudying
	}
	return deck, nil
}

// render recomputes the due list at now, reconciles the cursor against it and
// builds the screen. Callers must hold mu and have an active session.
func (s *studyServiceImpl) render(deck *domain.Deck, now time.Time) View {
	due := s.srsService.DueList(deck, s.progress, now)
	state := s.session.Reconcile(len(due))
	s.session = &state

	view := View{
		DeckID:   deck.ID,
		Title:    deck.Title,
		DueCount: len(due),
		Total:    len(deck.Cards),
		Flipped:  state.Flipped,
		Feedback: state.Feedback,
		Message:  FeedbackMessage(state.Feedback),
	}

	index, ok := state.Current(len(due))
	if !ok {
		view.Completed = true
		view.Flipped = false
		return view
	}

	card := due[index]
	view.Card = &card
	view.Index = index
	return view
}

func (s *studyServiceImpl) emit(ctx context.Context, eventType string, payload interface{}) {
	if s.emitter == nil {
		return
	}

	log := logger.FromContextOrDefault(ctx, s.logger)
	event, err := events.NewEvent(eventType, payload)
	if err != nil {
		log.Error("failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
		return
	}
	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		log.Warn("event handler failed",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()))
	}
}
