package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// reportScheduler runs the daily report job: once per day at the configured
// hour it generates an AI report for every user who doesn't have one yet.
// The per-user computation is the same pure aggregate + prompt used by the
// on-demand endpoint.
type reportScheduler struct {
	db    *pgxpool.Pool
	agent *agent
	cache *cache
	hour  int
}

func newReportScheduler(db *pgxpool.Pool, agent *agent, cache *cache, hour int) *reportScheduler {
	return &reportScheduler{db: db, agent: agent, cache: cache, hour: hour}
}

// nextReportRun returns the next occurrence of hour:00 strictly after now,
// in now's location.
func nextReportRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// start launches the timer loop. The loop exits when ctx is cancelled.
func (s *reportScheduler) start(ctx context.Context) {
	go func() {
		log.Info().Int("hour", s.hour).Msg("report scheduler started")
		for {
			wait := time.Until(nextReportRun(time.Now(), s.hour))
			select {
			case <-ctx.Done():
				log.Info().Msg("report scheduler stopped")
				return
			case <-time.After(wait):
				s.runDailyReports(ctx)
			}
		}
	}()
}

// runDailyReports generates today's report for every user. Users that
// already have a report with text are skipped; per-user failures are logged
// and do not stop the sweep.
func (s *reportScheduler) runDailyReports(ctx context.Context) {
	today := time.Now().Format("2006-01-02")

	rows, err := s.db.Query(ctx, "SELECT id FROM users ORDER BY id")
	if err != nil {
		log.Error().Err(err).Msg("report job: failed to list users")
		return
	}
	userIDs, err := pgx.CollectRows(rows, pgx.RowTo[int])
	if err != nil {
		log.Error().Err(err).Msg("report job: failed to scan users")
		return
	}

	for _, userID := range userIDs {
		if err := s.generateForUser(ctx, userID, today); err != nil {
			log.Error().Err(err).Int("user_id", userID).Msg("report job: user failed")
		}
	}
}

// generateForUser produces and stores one user's report for the date,
// skipping when a report with text already exists.
func (s *reportScheduler) generateForUser(ctx context.Context, userID int, date string) error {
	existing, err := s.loadReport(ctx, userID, date)
	if err == nil && existing.ReportContent != nil && existing.ReportContent.Text != "" {
		log.Debug().Int("user_id", userID).Msg("report job: report exists, skipping")
		return nil
	}

	lockKey := fmt.Sprintf("report:lock:%d:%s", userID, date)
	if !s.cache.acquireLock(ctx, lockKey, time.Minute) {
		return nil
	}
	defer s.cache.releaseLock(ctx, lockKey)

	agg, err := s.aggregateForDate(ctx, userID, date)
	if err != nil {
		return err
	}

	text, err := s.agent.generateText(ctx, buildReportPrompt(date, agg))
	if err != nil {
		log.Error().Err(err).Int("user_id", userID).Msg("report job: generation failed")
		text = reportFallbackText
	}

	content, err := json.Marshal(reportContent{
		Text:          text,
		CaloriesIn:    agg.CaloriesIn,
		CaloriesOut:   agg.CaloriesOut,
		Protein:       agg.Protein,
		Carbs:         agg.Carbs,
		Fat:           agg.Fat,
		ExerciseCount: agg.ExerciseCount,
	})
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx,
		`INSERT INTO daily_reports (user_id, date, report_content)
		 VALUES (@userID, @date, @content::jsonb)
		 ON CONFLICT (user_id, date) DO UPDATE SET report_content = EXCLUDED.report_content`,
		pgx.NamedArgs{"userID": userID, "date": date, "content": string(content)})
	if err == nil {
		log.Info().Int("user_id", userID).Str("date", date).Msg("report job: report generated")
	}
	return err
}

func (s *reportScheduler) loadReport(ctx context.Context, userID int, date string) (dailyReport, error) {
	rows, err := s.db.Query(ctx,
		"SELECT * FROM daily_reports WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		return dailyReport{}, err
	}
	return pgx.CollectOneRow(rows, pgx.RowToStructByName[dailyReport])
}

func (s *reportScheduler) aggregateForDate(ctx context.Context, userID int, date string) (dailyAggregate, error) {
	dietRows, err := s.db.Query(ctx,
		"SELECT * FROM diet_logs WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		return dailyAggregate{}, err
	}
	diet, err := pgx.CollectRows(dietRows, pgx.RowToStructByName[dietLog])
	if err != nil {
		return dailyAggregate{}, err
	}

	exerciseRows, err := s.db.Query(ctx,
		"SELECT * FROM exercise_logs WHERE user_id = @userID AND date = @date",
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		return dailyAggregate{}, err
	}
	exercise, err := pgx.CollectRows(exerciseRows, pgx.RowToStructByName[exerciseLog])
	if err != nil {
		return dailyAggregate{}, err
	}

	return aggregateDay(diet, exercise), nil
}
