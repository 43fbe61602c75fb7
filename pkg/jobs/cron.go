package jobs

import (
	"context"
	"time"

	"github.com/jordanlanch/leadcrm/pkg/campaigns"
	"github.com/jordanlanch/leadcrm/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CronManager runs scheduled jobs, currently the recurring campaign sweep.
type CronManager struct {
	cron      *cron.Cron
	campaigns *campaigns.Service
	log       logger.Logger
}

func NewCronManager(campaigns *campaigns.Service, log logger.Logger) *CronManager {
	return &CronManager{
		cron:      cron.New(),
		campaigns: campaigns,
		log:       log,
	}
}

// SetupJobs registers all scheduled jobs.
func (cm *CronManager) SetupJobs() error {
	// Every 5 minutes: run due recurring campaigns
	_, err := cm.cron.AddFunc("*/5 * * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
		defer cancel()

		if err := cm.RunDueCampaigns(ctx); err != nil {
			cm.log.Error("recurring campaign sweep failed", "error", err)
		}
	})
	return err
}

// RunDueCampaigns generates leads for every recurring campaign whose
// scheduled time has passed, then pushes its schedule forward. One failing
// campaign does not stop the rest.
func (cm *CronManager) RunDueCampaigns(ctx context.Context) error {
	now := time.Now()
	due, err := cm.campaigns.DueRecurring(ctx, now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	cm.log.Info("running recurring campaigns", "count", len(due))
	for i := range due {
		c := &due[i]
		if _, err := cm.campaigns.GenerateLeads(ctx, c.ID, c.CreatedBy); err != nil {
			cm.log.Error("recurring generation failed",
				"campaign_id", c.ID,
				"campaign", c.Name,
				"error", err)
			continue
		}
		if err := cm.campaigns.AdvanceSchedule(ctx, c, now); err != nil {
			cm.log.Error("failed to advance schedule",
				"campaign_id", c.ID,
				"error", err)
		}
	}
	return nil
}

// Start begins executing scheduled jobs.
func (cm *CronManager) Start() {
	cm.cron.Start()
}

// Stop halts the scheduler and waits for running jobs.
func (cm *CronManager) Stop() {
	ctx := cm.cron.Stop()
	<-ctx.Done()
}
