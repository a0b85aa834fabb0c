// Package delivery holds the per-user state of the daily vacancy delivery:
// when the user wants it, in which timezone, and which vacancies were
// already sent.
//
// The schedule gate is evaluated against the user's local wall clock:
//
//	prefs := delivery.RestorePreferences("09:00", "Asia/Novosibirsk", sentIDs, lastSentAt)
//	if ok, reason := prefs.Gate(time.Now(), false); !ok {
//	    logger.Debug("skip", "reason", reason)
//	}
package delivery
