package calendar

import (
	"fmt"
	"strings"

	"github.com/saulo-duarte/atarax-lambda/internal/training"
	gcal "google.golang.org/api/calendar/v3"
)

const dateLayout = "2006-01-02"

// buildEvent turns a scheduled workout into an all-day event. Workouts
// without a scheduled date have nothing to place and return nil.
func buildEvent(w *training.Workout) *gcal.Event {
	if w.ScheduledDate.IsZero() {
		return nil
	}

	return &gcal.Event{
		Summary:     w.Name,
		Description: describe(w),
		Start:       &gcal.EventDateTime{Date: w.ScheduledDate.Format(dateLayout)},
		// End is exclusive for all-day events.
		End: &gcal.EventDateTime{Date: w.ScheduledDate.AddDays(1).Format(dateLayout)},
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		},
		ExtendedProperties: &gcal.EventExtendedProperties{
			Private: map[string]string{"workout_id": w.ID.String()},
		},
	}
}

func describe(w *training.Workout) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s, %s intensity, %d min", w.Type, w.Intensity, w.DurationMinutes)
	if w.DistanceMiles != nil {
		fmt.Fprintf(&b, ", %.1f mi", *w.DistanceMiles)
	}
	if w.TotalYards != nil {
		fmt.Fprintf(&b, ", %d yd", *w.TotalYards)
	}
	b.WriteString("\n")
	if w.WeeklyFocus != "" {
		fmt.Fprintf(&b, "Week %d focus: %s\n", w.WeekNumber, w.WeeklyFocus)
	}
	for _, part := range []string{w.Description, w.Instructions} {
		if part = strings.TrimSpace(part); part != "" {
			b.WriteString("\n" + part + "\n")
		}
	}
	if len(w.Exercises) > 0 {
		b.WriteString("\n")
		for _, e := range w.Exercises {
			b.WriteString("- " + e + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
