package affect

import "log"

func logf(format string, args ...any) {
	log.Printf("[AFFECT] "+format, args...)
}
