package entities

import "crvparking/internal/db"

// ExitResult is what the till shows after an exit: the closed stay and the
// payment recorded for it.
type ExitResult struct {
	Stay    db.Stay
	Payment db.Payment
}
