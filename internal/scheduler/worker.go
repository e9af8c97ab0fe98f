package scheduler

import (
	"context"
	"errors"
	"fmt"

	authrepo "salescrm_backend/internal/auth/repository"
	"salescrm_backend/internal/events"
	"salescrm_backend/internal/intelligence/engine"
	leadsrepo "salescrm_backend/internal/leads/repository"
	"salescrm_backend/platform/clock"
	"salescrm_backend/platform/config"
	"salescrm_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	leads  *leadsrepo.Repository
	users  *authrepo.Repository
	engine *engine.Engine
	bus    events.Bus
	log    *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, pool *pgxpool.Pool, bus events.Bus, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server: server,
		mux:    mux,
		leads:  leadsrepo.New(pool),
		users:  authrepo.New(pool),
		engine: engine.New(clock.System{}),
		bus:    bus,
		log:    log,
	}

	mux.HandleFunc(TaskLeadFollowUpReminder, w.handleFollowUpReminder)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleFollowUpReminder(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseFollowUpReminderPayload(task)
	if err != nil {
		return err
	}

	lead, err := w.leads.GetByID(ctx, payload.LeadID)
	if err != nil {
		// Deleted leads need no reminder.
		if errors.Is(err, leadsrepo.ErrNotFound) {
			return nil
		}
		return err
	}

	// The lead moved on since the reminder was scheduled.
	if lead.Status != payload.Status {
		return nil
	}
	if lead.AssignedTo == nil {
		return nil
	}

	agent, err := w.users.GetUserByID(ctx, *lead.AssignedTo)
	if err != nil {
		if errors.Is(err, authrepo.ErrNotFound) {
			return nil
		}
		return err
	}
	if !agent.IsActive {
		return nil
	}

	if w.bus == nil {
		return nil
	}

	w.bus.Publish(ctx, events.LeadFollowUpDue{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		Name:       lead.Name,
		Status:     lead.Status,
		AgentID:    agent.ID,
		AgentEmail: agent.Email,
		AgentName:  agent.Name,
		NextAction: w.engine.NextAction(toEngineLead(lead)),
	})

	return nil
}

func toEngineLead(lead leadsrepo.Lead) engine.Lead {
	createdAt := lead.CreatedAt
	updatedAt := lead.UpdatedAt

	return engine.Lead{
		ID:          lead.ID,
		Name:        lead.Name,
		Email:       lead.Email,
		Status:      lead.Status,
		CreatedAt:   &createdAt,
		UpdatedAt:   &updatedAt,
		LastContact: lead.LastContact,
	}
}
