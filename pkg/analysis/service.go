package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/klokku/meeting-fatigue/internal/metrics"
	"github.com/klokku/meeting-fatigue/pkg/analytics"
	"github.com/klokku/meeting-fatigue/pkg/categorizer"
	"github.com/klokku/meeting-fatigue/pkg/meeting"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

var (
	ErrMissingToken  = errors.New("missing or invalid authorization token")
	ErrFetchUser     = errors.New("failed to fetch user info")
	ErrFetchCalendar = errors.New("failed to fetch calendar events")
)

type CalendarSource interface {
	GetEvents(ctx context.Context, token string, days int) ([]meeting.RawEvent, error)
}

type IdentitySource interface {
	GetUserInfo(ctx context.Context, token string) (meeting.UserInfo, error)
}

type Result struct {
	Analysis analytics.AnalysisResult
	UserInfo meeting.UserInfo
	Message  string
}

type Service interface {
	Analyze(ctx context.Context, token string, days int) (Result, error)
}

type ServiceImpl struct {
	calendar    CalendarSource
	identity    IdentitySource
	categorizer categorizer.Service
	engine      *analytics.Engine
	metrics     *metrics.Recorder
}

func NewService(calendar CalendarSource, identity IdentitySource, categorizer categorizer.Service, engine *analytics.Engine, recorder *metrics.Recorder) *ServiceImpl {
	return &ServiceImpl{
		calendar:    calendar,
		identity:    identity,
		categorizer: categorizer,
		engine:      engine,
		metrics:     recorder,
	}
}

// Analyze fetches the user's identity and events for the last days, categorizes
// them and computes the fatigue analysis. Every call builds its own state.
func (s *ServiceImpl) Analyze(ctx context.Context, token string, days int) (Result, error) {
	started := time.Now()
	if token == "" {
		s.metrics.Analysis("unauthorized", time.Since(started))
		return Result{}, ErrMissingToken
	}
	if days <= 0 {
		days = analytics.DefaultWindowDays
	}

	var userInfo meeting.UserInfo
	var events []meeting.RawEvent
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := s.identity.GetUserInfo(gctx, token)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchUser, err)
		}
		userInfo = info
		return nil
	})
	g.Go(func() error {
		log.Debugf("Fetching calendar events for last %d days", days)
		fetched, err := s.calendar.GetEvents(gctx, token, days)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFetchCalendar, err)
		}
		events = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Errorf("analysis failed: %v", err)
		s.metrics.Analysis("error", time.Since(started))
		return Result{}, err
	}

	if len(events) == 0 {
		s.metrics.Analysis("empty", time.Since(started))
		return Result{
			Analysis: analytics.NoMeetingsResult(),
			UserInfo: userInfo,
			Message:  "No meetings found in the specified period",
		}, nil
	}

	log.Debugf("Found %d meetings, categorizing", len(events))
	categories := s.categorizer.Categorize(ctx, events)

	result, err := s.engine.WithWindow(days).Analyze(events, categories, userInfo.Email)
	if err != nil {
		log.Errorf("analysis failed: %v", err)
		s.metrics.Analysis("error", time.Since(started))
		return Result{}, err
	}

	s.metrics.Analysis("success", time.Since(started))
	return Result{
		Analysis: result,
		UserInfo: userInfo,
		Message:  fmt.Sprintf("Analyzed %d meetings from the last %d days", len(events), days),
	}, nil
}

// StaticIdentity reports a fixed user, for sources without an identity provider.
type StaticIdentity struct {
	Info meeting.UserInfo
}

func (s StaticIdentity) GetUserInfo(context.Context, string) (meeting.UserInfo, error) {
	return s.Info, nil
}
