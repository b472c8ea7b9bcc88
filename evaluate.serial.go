package gem

import (
	"context"
	"fmt"

	"github.com/gosuri/uiprogress"
	"github.com/maseology/gem/massbalance"
)

// EvaluateSerial runs one parameter set year by year behind a progress
// bar, writing the run's binary outputs under outdirprfx when given.
func (e *Ensemble) EvaluateSerial(par massbalance.Params, outdirprfx string) (Result, error) {
	s, mb, err := e.buildRealization(par)
	if err != nil {
		return Result{}, err
	}

	uiprogress.Start()
	yearstep := make(chan string)
	bar := uiprogress.AddBar(e.Cfg.NYears).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return <-yearstep
	})

	for yr := 0; yr < e.Cfg.NYears; yr++ {
		yearstep <- fmt.Sprint(e.Cfg.StartYear + yr)
		if err := s.RunUntil(context.Background(), yr+1); err != nil {
			close(yearstep)
			uiprogress.Stop()
			return Result{}, err
		}
		bar.Incr()
	}
	close(yearstep)
	uiprogress.Stop()

	res := e.collect(0, par, s, mb)
	if len(outdirprfx) > 0 {
		e.saveToBins(res, s.Diagnostics(), outdirprfx)
	}
	return res, nil
}
