package cron

import (
	"context"
	"fmt"
	"time"
)

type incomeRunner interface {
	RunMonthly(ctx context.Context, period time.Time) (int, error)
}

type GuaranteedIncomeJobParams struct {
	Scheduler incomeRunner
	// RunDay is the day of the month the payout run fires on. Cycles on
	// other days are no-ops, and rerunning on the same day is safe because
	// the scheduler keys rows by period.
	RunDay int
}

func NewGuaranteedIncomeJob(params GuaranteedIncomeJobParams) (Job, error) {
	if params.Scheduler == nil {
		return nil, fmt.Errorf("income scheduler required")
	}
	runDay := params.RunDay
	if runDay < 1 || runDay > 28 {
		runDay = 1
	}
	return &guaranteedIncomeJob{
		scheduler: params.Scheduler,
		runDay:    runDay,
		now:       time.Now,
	}, nil
}

type guaranteedIncomeJob struct {
	scheduler incomeRunner
	runDay    int
	now       func() time.Time
}

func (j *guaranteedIncomeJob) Name() string { return "guaranteed-income" }

func (j *guaranteedIncomeJob) Run(ctx context.Context) error {
	today := j.now().UTC()
	if today.Day() != j.runDay {
		return nil
	}
	if _, err := j.scheduler.RunMonthly(ctx, today); err != nil {
		return fmt.Errorf("guaranteed income: %w", err)
	}
	return nil
}
