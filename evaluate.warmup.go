package watergap

import (
	"context"
	"fmt"
)

// WarmUp repeats the first calendar year of frc years times, discarding the
// output. With fill the water bodies start at their maximum storage.
func (ev *Evaluator) WarmUp(ctx context.Context, frc *Forcing, years int, fill bool) error {
	if err := frc.Validate(ev.strc.Nc, ev.set.WetlandSnow == 1); err != nil {
		return fmt.Errorf("WarmUp: %w", err)
	}
	if fill {
		ev.fill()
	}
	ev.forecast(frc)
	ev.initRelease()

	js := frc.firstYear()
	dc := ev.newDayContext()
	ev.yearly(dc, frc.T[0].Year())
	for y := 0; y < years; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, j := range js {
			if err := ev.day(ctx, dc, frc, j); err != nil {
				return fmt.Errorf("WarmUp: %w", err)
			}
		}
		ev.log.V(1).Info("warm-up", "year", y+1, "of", years)
	}
	return nil
}
