package order

import "time"

const (
	StatusNew = "N"
)

type Order struct {
	ID            int
	AccountNumber string
	StatusID      string
	Canceled      bool
	DateStatus    time.Time
}
