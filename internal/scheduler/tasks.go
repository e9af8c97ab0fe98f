package scheduler

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const TaskLeadFollowUpReminder = "leads.followup.reminder"

// FollowUpReminder is the payload for a scheduled lead follow-up reminder.
// Status records the pipeline stage at scheduling time so the worker can
// skip reminders for leads that have since moved on.
type FollowUpReminder struct {
	LeadID uuid.UUID `json:"leadId"`
	Status string    `json:"status"`
}

func NewFollowUpReminderTask(payload FollowUpReminder) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadFollowUpReminder, data), nil
}

func ParseFollowUpReminderPayload(task *asynq.Task) (FollowUpReminder, error) {
	var payload FollowUpReminder
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return FollowUpReminder{}, err
	}
	return payload, nil
}
