package game

const (
	StatusOngoing  = "ongoing"
	StatusFinished = "finished"

	// ResultDraw is reported as the winner of a finished game nobody won.
	ResultDraw = "-"
)
